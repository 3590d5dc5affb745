package script

import (
	"context"
	"strings"
	"testing"

	"github.com/jpl-au/resolvemcp/extension"
	"github.com/jpl-au/resolvemcp/internal/config"
	"github.com/jpl-au/resolvemcp/internal/format"
	"github.com/jpl-au/resolvemcp/internal/resolve"
	"github.com/jpl-au/resolvemcp/internal/resolve/resolvetest"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Python(t *testing.T) {
	h := resolvetest.New()
	h.Python = func(code string) (string, bool, error) {
		if strings.Contains(code, "result") {
			return "Demo", true, nil
		}
		return "", false, nil
	}

	out, err := Run(context.Background(), h, Python, "result = current_project.GetName()")
	require.NoError(t, err)
	assert.Equal(t, "Demo", out)

	out, err = Run(context.Background(), h, Python, "x = 1")
	require.NoError(t, err)
	assert.Equal(t, "Code executed successfully.", out)
}

func TestRun_Lua(t *testing.T) {
	h := resolvetest.New()

	out, err := Run(context.Background(), h, Lua, "comp:Lock()")
	require.NoError(t, err)
	assert.Equal(t, "Script executed successfully.", out)
	assert.True(t, h.Called("ExecuteLua"))
}

func TestRun_ScriptError(t *testing.T) {
	h := resolvetest.New()
	h.Python = func(string) (string, bool, error) {
		return "", false, &resolve.BridgeError{Op: "script.python", Message: "name 'foo' is not defined"}
	}
	h.Lua = func(string) (string, bool, error) {
		return "", false, &resolve.BridgeError{Op: "script.lua", Message: "attempt to call a nil value"}
	}

	_, err := Run(context.Background(), h, Python, "foo()")
	assert.EqualError(t, err, "Error executing code: name 'foo' is not defined")

	_, err = Run(context.Background(), h, Lua, "foo()")
	assert.EqualError(t, err, "Error executing Lua script: attempt to call a nil value")
}

func TestRun_Guards(t *testing.T) {
	t.Run("not connected", func(t *testing.T) {
		h := resolvetest.New()
		h.Offline = true

		_, err := Run(context.Background(), h, Python, "x = 1")
		assert.EqualError(t, err, format.MsgNotConnected)
		assert.ErrorIs(t, err, resolve.ErrNotConnected)
		assert.False(t, h.Called("ExecutePython"))
	})

	t.Run("no fusion", func(t *testing.T) {
		h := resolvetest.New()
		h.NoFusion = true

		_, err := Run(context.Background(), h, Lua, "return 1")
		assert.EqualError(t, err, format.MsgNoFusion)
		assert.ErrorIs(t, err, resolve.ErrNoFusion)
	})
}

func TestSource(t *testing.T) {
	src, err := source([]string{"print(1)"}, "", strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "print(1)", src)

	src, err = source(nil, "", strings.NewReader("print(2)\n"))
	require.NoError(t, err)
	assert.Equal(t, "print(2)\n", src)

	_, err = source([]string{"print(1)"}, "x.py", nil)
	assert.Error(t, err)
}

func newExtension(t *testing.T, enabled bool) (*Extension, extension.Context, *resolvetest.Host) {
	t.Helper()
	h := resolvetest.New()
	cfg := &config.Config{}
	cfg.Scripting.Enabled = &enabled
	ctx := extension.NewContext(h, cfg)

	e := &Extension{}
	require.NoError(t, e.Init(ctx))
	return e, ctx, h
}

func TestMCPTools_Disabled(t *testing.T) {
	e, _, _ := newExtension(t, false)
	assert.Empty(t, e.MCPTools())
}

func TestMCPTools_Enabled(t *testing.T) {
	e, ctx, h := newExtension(t, true)
	h.Python = func(string) (string, bool, error) { return "42", true, nil }

	tools := e.MCPTools()
	require.Len(t, tools, 2)
	assert.Equal(t, "execute_python", tools[0].Tool.Name)
	assert.Equal(t, "execute_lua", tools[1].Tool.Name)

	call := func(tool extension.MCPTool, args map[string]any) *mcp.CallToolResult {
		var req mcp.CallToolRequest
		req.Params.Name = tool.Tool.Name
		req.Params.Arguments = args
		res, err := tool.Handler(context.Background(), ctx, req)
		require.NoError(t, err)
		return res
	}
	text := func(res *mcp.CallToolResult) string {
		require.NotEmpty(t, res.Content)
		tc, ok := res.Content[0].(mcp.TextContent)
		require.True(t, ok)
		return tc.Text
	}

	res := call(tools[0], map[string]any{"code": "result = 6 * 7"})
	assert.False(t, res.IsError)
	assert.Equal(t, "42", text(res))

	res = call(tools[1], map[string]any{"script": "return nil"})
	assert.False(t, res.IsError)
	assert.Equal(t, "Script executed successfully.", text(res))

	res = call(tools[0], map[string]any{})
	assert.True(t, res.IsError)
	assert.Equal(t, "code is required", text(res))
}
