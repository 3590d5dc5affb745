// tools_project.go implements the project tools.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/jpl-au/resolvemcp/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// createProject handles create_project tool calls.
func (h *handlers) createProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireConnected(ctx); r != nil {
		return r, nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return required("name"), nil //nolint:nilerr
	}
	if name, err = validate.Name("project", name); err != nil {
		return invalid(err), nil
	}

	ok, err := h.host.CreateProject(ctx, name)
	log.Event("mcp:create_project", "create").Author("mcp").Target(name).Write(outcome(err, ok))

	if err != nil {
		return hostError(err), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create project '%s'. The project may already exist.", name)), nil
	}
	log.SetProject(name)
	return mcp.NewToolResultText(fmt.Sprintf("Successfully created project '%s'.", name)), nil
}

// loadProject handles load_project tool calls.
func (h *handlers) loadProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireConnected(ctx); r != nil {
		return r, nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return required("name"), nil //nolint:nilerr
	}
	if name, err = validate.Name("project", name); err != nil {
		return invalid(err), nil
	}

	ok, err := h.host.LoadProject(ctx, name)
	log.Event("mcp:load_project", "load").Author("mcp").Target(name).Write(outcome(err, ok))

	if err != nil {
		return hostError(err), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to load project '%s'. The project may not exist.", name)), nil
	}
	log.SetProject(name)
	return mcp.NewToolResultText(fmt.Sprintf("Successfully loaded project '%s'.", name)), nil
}

// saveProject handles save_project tool calls.
func (h *handlers) saveProject(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireConnected(ctx); r != nil {
		return r, nil
	}

	name, ok, err := h.host.SaveProject(ctx)
	log.Event("mcp:save_project", "save").Author("mcp").Target(name).Write(outcome(err, ok))

	if err != nil {
		return hostError(err), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save project '%s'.", name)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully saved project '%s'.", name)), nil
}
