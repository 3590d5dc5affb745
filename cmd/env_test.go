// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that run the real binary:
// command parsing -> extension -> bridge client -> interpreter process.
//
// No test here needs DaVinci Resolve. Each environment points python.path
// at an interpreter that does not exist, so every host command takes the
// not-connected path. Host behaviour itself is covered by the internal/mcp
// tests against the fake in internal/resolve/resolvetest.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the resolvemcp binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "resolvemcp-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "resolvemcp"
		if os.PathSeparator == '\\' {
			binaryName = "resolvemcp.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Project root is the parent of cmd/
		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// missingPython is an interpreter path that cannot exist.
const missingPython = "/nonexistent/resolvemcp-test/python3"

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newTestEnv creates a working directory and a private HOME so config and
// the audit log never touch the user's real files.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
	}
	env.run("config", "--local", "python.path", missingPython)
	return env
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.home,
		"USERPROFILE="+e.home,
		"RESOLVE_SCRIPT_API=",
		"RESOLVE_SCRIPT_LIB=",
	)
	return cmd
}

// run executes resolvemcp with the given args and returns its output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("resolvemcp %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes resolvemcp and returns its output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdinErr executes resolvemcp with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// writeFile creates name under the working directory.
func (e *testEnv) writeFile(name, content string) {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatal(err)
	}
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// notContains checks that output does not contain s.
func (e *testEnv) notContains(output, s string) {
	e.t.Helper()
	assert.NotContains(e.t, output, s)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}
