// locate.go finds the vendor's DaVinciResolveScript module on disk.
//
// The vendor installs the module in a different place on every platform and
// documents RESOLVE_SCRIPT_API as the override. Per-platform defaults live in
// build-tagged files (locate_windows.go, locate_darwin.go, locate_linux.go)
// so each OS only compiles the paths it can have.

package resolve

import (
	"os"
	"path/filepath"
	"slices"
)

// Environment variables documented by the vendor for external scripting.
const (
	EnvScriptAPI = "RESOLVE_SCRIPT_API"
	EnvScriptLib = "RESOLVE_SCRIPT_LIB"
)

// ModuleName is the vendor module the bridge imports.
const ModuleName = "DaVinciResolveScript"

// Tests replace these to pin the environment.
var (
	getenv      = os.Getenv
	userHomeDir = os.UserHomeDir
)

// ModuleDirs returns the directories that may contain the scripting module,
// in the order they should be tried. scriptAPI is the configured scripting
// directory (the parent of Modules); when empty RESOLVE_SCRIPT_API is used.
// An explicit directory is tried first, then the platform defaults.
func ModuleDirs(scriptAPI string) []string {
	if scriptAPI == "" {
		scriptAPI = getenv(EnvScriptAPI)
	}

	var dirs []string
	if scriptAPI != "" {
		dirs = append(dirs, filepath.Join(scriptAPI, "Modules"))
	}
	for _, d := range platformModuleDirs() {
		if !slices.Contains(dirs, d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// ScriptLib returns the fusionscript library override, preferring the
// configured value over RESOLVE_SCRIPT_LIB. Empty means the module picks
// its own default.
func ScriptLib(configured string) string {
	if configured != "" {
		return configured
	}
	return getenv(EnvScriptLib)
}

// ExistingModuleDirs filters dirs down to those holding the module file.
func ExistingModuleDirs(dirs []string) []string {
	var found []string
	for _, d := range dirs {
		if _, err := os.Stat(filepath.Join(d, ModuleName+".py")); err == nil {
			found = append(found, d)
		}
	}
	return found
}
