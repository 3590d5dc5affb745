// tools_timeline.go implements the timeline tools.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/jpl-au/resolvemcp/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// createTimeline handles create_timeline tool calls.
func (h *handlers) createTimeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireConnected(ctx); r != nil {
		return r, nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return required("name"), nil //nolint:nilerr
	}
	if name, err = validate.Name("timeline", name); err != nil {
		return invalid(err), nil
	}

	ok, err := h.host.CreateTimeline(ctx, name)
	log.Event("mcp:create_timeline", "create").Author("mcp").Target(name).Write(outcome(err, ok))

	if err != nil {
		return hostError(err), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create timeline '%s'. The timeline may already exist.", name)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully created timeline '%s'.", name)), nil
}

// setCurrentTimeline handles set_current_timeline tool calls.
func (h *handlers) setCurrentTimeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireConnected(ctx); r != nil {
		return r, nil
	}
	index, ok := getInt(req, "index")
	if !ok {
		return required("index"), nil
	}

	p, err := h.host.CurrentProject(ctx)
	if err != nil {
		return hostError(err), nil
	}
	if err := validate.Index("timeline", index, p.TimelineCount); err != nil {
		return invalid(err), nil
	}

	name, ok, err := h.host.SetCurrentTimeline(ctx, index)
	log.Event("mcp:set_current_timeline", "select").Author("mcp").Target(name).Detail("index", index).Write(outcome(err, ok))

	switch {
	case err != nil:
		return hostError(err), nil
	case name == "":
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get timeline at index %d.", index)), nil
	case !ok:
		return mcp.NewToolResultError(fmt.Sprintf("Failed to set current timeline to '%s'.", name)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully set current timeline to '%s'.", name)), nil
}

// importTimeline handles import_timeline tool calls.
func (h *handlers) importTimeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireConnected(ctx); r != nil {
		return r, nil
	}
	path := strings.TrimSpace(getString(req, "file_path", ""))
	if path == "" {
		return required("file_path"), nil
	}

	name, ok, err := h.host.ImportTimeline(ctx, path)
	log.Event("mcp:import_timeline", "import").Author("mcp").Target(name).Detail("path", path).Write(outcome(err, ok))

	if err != nil {
		return hostError(err), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to import timeline from '%s'. Check that the file exists and is an AAF, EDL, XML or FCPXML file.", path)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully imported timeline '%s'.", name)), nil
}
