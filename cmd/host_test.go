package cmd

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_NotConnected(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("status")
	env.contains(out, "DaVinci Resolve Status:")
	env.contains(out, "- Connection: Not connected")
	env.contains(out, "- Error: ")
}

func TestStatus_JSON(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("status", "-o", "json")

	var got struct {
		Connected bool   `json:"connected"`
		Error     string `json:"error"`
		Server    string `json:"server"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	assert.False(t, got.Connected)
	assert.Contains(t, got.Error, missingPython)
	assert.Equal(t, "dev", got.Server)
}

func TestStatus_ModuleDirs(t *testing.T) {
	env := newTestEnv(t)
	api := filepath.Join(env.dir, "Scripting")
	env.run("config", "--local", "resolve.script_api", api)

	out := env.run("status")
	env.contains(out, "- Module: DaVinciResolveScript not found in "+filepath.Join(api, "Modules"))

	env.writeFile(filepath.Join("Scripting", "Modules", "DaVinciResolveScript.py"), "# stub\n")
	out = env.run("status")
	env.contains(out, "- Module: DaVinciResolveScript found in "+filepath.Join(api, "Modules"))

	out = env.run("status", "-o", "json")
	var got struct {
		ModuleDirs []string `json:"module_dirs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	assert.Contains(t, got.ModuleDirs, filepath.Join(api, "Modules"))
}

func TestHostCommands_NotConnected(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"project", []string{"project"}},
		{"project create", []string{"project", "create", "Trailer"}},
		{"project save", []string{"project", "save"}},
		{"timeline ls", []string{"timeline", "ls"}},
		{"timeline show", []string{"timeline", "show"}},
		{"timeline use", []string{"timeline", "use", "1"}},
		{"media volumes", []string{"media", "volumes"}},
		{"media clips", []string{"media", "clips"}},
		{"media mkdir", []string{"media", "mkdir", "Selects"}},
		{"page", []string{"page"}},
		{"page open", []string{"page", "fusion"}},
		{"fusion node", []string{"fusion", "node", "Blur"}},
		{"fusion chain", []string{"fusion", "chain", "Blur", "Merge"}},
		{"python", []string{"python", "result = 1"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			out, err := env.runErr(tc.args...)
			require.Error(t, err, out)
			env.contains(out, "Not connected to DaVinci Resolve.")
			env.notContains(out, "Error: Error:")
		})
	}
}

func TestHostCommands_ValidateFirst(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		contain string
	}{
		{"blank project name", []string{"project", "create", "  "}, "project name is empty"},
		{"unknown page", []string{"page", "timeline"}, "Invalid page name. Valid pages are: media, cut, edit, fusion, color, fairlight, deliver."},
		{"timeline index not a number", []string{"timeline", "use", "two"}, `invalid timeline index "two"`},
		{"clip index not a number", []string{"timeline", "append", "1", "x"}, `invalid clip index "x"`},
		{"bad node param", []string{"fusion", "node", "Blur", "--param", "XBlurSize"}, "want key=value"},
		{"no paths", []string{"media", "import", " "}, "No file paths specified."},
		{"comp needs item", []string{"fusion", "comp"}, `required flag(s) "item" not set`},
		{"bad track", []string{"fusion", "comp", "--item", "1", "--track", "bogus"}, "Invalid track type"},
		{"item below one", []string{"fusion", "comp", "--item", "0"}, "Invalid item index. Must be 1 or greater."},
		{"track index below one", []string{"fusion", "comp", "--item", "1", "--track-index", "0"}, "Invalid track index. Must be 1 or greater."},
		{"timeline below one", []string{"fusion", "comp", "--item", "1", "--timeline", "0"}, "Invalid timeline index. Must be 1 or greater."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			out, err := env.runErr(tc.args...)
			require.Error(t, err, out)
			env.contains(out, tc.contain)
			env.notContains(out, "Not connected")
		})
	}
}

func TestHostCommands_JSONError(t *testing.T) {
	env := newTestEnv(t)

	out, _ := env.runErr("project", "-o", "json")

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	assert.Equal(t, "Not connected to DaVinci Resolve.", got["error"])
}

func TestScripting_Disabled(t *testing.T) {
	env := newTestEnv(t)
	env.run("config", "scripting.enabled", "false")

	out, err := env.runErr("python", "result = 1")
	require.Error(t, err)
	env.contains(out, "scripting is disabled")

	out, err = env.runStdinErr("return 1", "lua")
	require.Error(t, err)
	env.contains(out, "scripting is disabled")
}

func TestScripting_NoSource(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runStdinErr("   \n", "python")
	require.Error(t, err)
	env.contains(out, "no Python source given")
}

func TestMediaImport_FromFile(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile("paths.txt", "\n  \n")

	out, err := env.runErr("media", "import", "--file", "paths.txt")
	require.Error(t, err)
	env.contains(out, "No file paths specified.")
}
