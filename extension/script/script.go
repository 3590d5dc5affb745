// Package script provides the script extension for resolvemcp.
// It registers the lua and python commands and, when scripting.enabled is
// set, the execute_lua and execute_python MCP tools.
//
// Scripts run unsandboxed with full access to DaVinci Resolve. The
// scripting.enabled switch is the only gate, and it closes both surfaces.
package script

import (
	"context"
	"errors"

	"github.com/jpl-au/resolvemcp/extension"
	"github.com/jpl-au/resolvemcp/internal/format"
	"github.com/jpl-au/resolvemcp/internal/resolve"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// ErrDisabled is returned when scripting.enabled is false.
var ErrDisabled = errors.New("scripting is disabled (scripting.enabled = false)")

// Extension implements the script extension.
type Extension struct {
	host    resolve.Host
	enabled bool
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "script".
func (e *Extension) Name() string { return "script" }

// Init reads the scripting switch and receives the shared host.
func (e *Extension) Init(ctx extension.Context) error {
	e.host = ctx.Host()
	e.enabled = ctx.Config().ScriptingEnabled()
	return nil
}

// Commands returns the lua and python commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newLuaCmd(),
		e.newPythonCmd(),
	}
}

// Language is a scripting language the host runs.
type Language struct {
	Name    string // as shown to users
	Success string // reported when the script returns nothing
	Failure string // prefix for errors raised by the script
	run     func(h resolve.Host, ctx context.Context, src string) (string, bool, error)
}

// Languages the host runs.
var (
	Lua = Language{
		Name:    "Lua",
		Success: "Script executed successfully.",
		Failure: "Error executing Lua script: ",
		run:     resolve.Host.ExecuteLua,
	}
	Python = Language{
		Name:    "Python",
		Success: "Code executed successfully.",
		Failure: "Error executing code: ",
		run:     resolve.Host.ExecutePython,
	}
)

// Run executes src in lang and returns the text reported to the caller.
// The error text is caller-facing: guard failures use the shared wording
// and failures inside the script get the language's prefix. The guard
// sentinel stays reachable through errors.Is.
func Run(ctx context.Context, host resolve.Host, lang Language, src string) (string, error) {
	if !host.Connected(ctx) {
		return "", &runError{msg: format.MsgNotConnected, err: resolve.ErrNotConnected}
	}
	result, ok, err := lang.run(host, ctx, src)
	if err != nil {
		var be *resolve.BridgeError
		if errors.As(err, &be) {
			return "", &runError{msg: lang.Failure + be.Message, err: err}
		}
		return "", &runError{msg: format.Message(err), err: err}
	}
	if !ok {
		return lang.Success, nil
	}
	return result, nil
}

type runError struct {
	msg string
	err error
}

func (e *runError) Error() string { return e.msg }
func (e *runError) Unwrap() error { return e.err }
