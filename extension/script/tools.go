// tools.go defines the execute_python and execute_lua MCP tools.

package script

import (
	"context"

	"github.com/jpl-au/resolvemcp/extension"
	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTools returns the scripting tools, or nil when scripting is disabled.
func (e *Extension) MCPTools() []extension.MCPTool {
	if !e.enabled {
		return nil
	}
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("execute_python",
				mcp.WithDescription("Execute Python code inside the DaVinci Resolve scripting bridge. "+
					"The names resolve, fusion, project_manager, current_project, media_storage and media_pool are bound. "+
					"Assign to result to return a value; otherwise printed output is returned."),
				mcp.WithString("code", mcp.Required(), mcp.Description("Python code to execute")),
			),
			Handler: scriptHandler(Python, "code"),
		},
		{
			Tool: mcp.NewTool("execute_lua",
				mcp.WithDescription("Execute a Lua script in DaVinci Resolve's Fusion and return its result."),
				mcp.WithString("script", mcp.Required(), mcp.Description("Lua script to execute")),
			),
			Handler: scriptHandler(Lua, "script"),
		},
	}
}

// scriptHandler runs the source in the named argument through Run.
func scriptHandler(lang Language, arg string) extension.MCPHandler {
	return func(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		src, err := req.RequireString(arg)
		if err != nil {
			return mcp.NewToolResultError(arg + " is required"), nil //nolint:nilerr
		}

		text, err := Run(ctx, extCtx.Host(), lang, src)
		log.Event("mcp:execute_"+lowerName(lang), "execute").Author("mcp").
			Detail("bytes", len(src)).
			Write(err)

		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}
