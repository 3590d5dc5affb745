// tools_page.go implements page navigation.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/jpl-au/resolvemcp/internal/resolve"
	"github.com/jpl-au/resolvemcp/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// openPage handles open_page tool calls. Page names are matched
// case-insensitively.
func (h *handlers) openPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireConnected(ctx); r != nil {
		return r, nil
	}
	page, err := validate.Page(getString(req, "page_name", ""))
	if err != nil {
		return invalid(err), nil
	}

	ok, err := h.host.OpenPage(ctx, page)
	log.Event("mcp:open_page", "open").Author("mcp").Target(string(page)).Write(outcome(err, ok))

	if err != nil {
		return hostError(err), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to open the %s page.", page.Title())), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully opened the %s page.", page.Title())), nil
}

// getCurrentPage handles get_current_page tool calls.
func (h *handlers) getCurrentPage(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireConnected(ctx); r != nil {
		return r, nil
	}
	page, err := h.host.CurrentPage(ctx)
	log.Event("mcp:get_current_page", "read").Author("mcp").Target(page).Write(err)
	if err != nil {
		return hostError(err), nil
	}
	if page == "" {
		return mcp.NewToolResultText("No page is currently shown."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Current page: %s", resolve.Page(page).Title())), nil
}
