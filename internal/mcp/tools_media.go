// tools_media.go implements the media pool and media storage tools.
//
// Clip indices address the clips of the current media pool folder in the
// order the host lists them. Every index is checked before the host is
// asked to do anything, so a bad index never leaves a half-built timeline.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/resolvemcp/internal/format"
	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/jpl-au/resolvemcp/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	msgNoClips    = "No clips in the current folder."
	msgNoSelected = "No clip indices specified."
)

// importMedia handles import_media tool calls.
func (h *handlers) importMedia(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireConnected(ctx); r != nil {
		return r, nil
	}
	paths, err := validate.Paths(getStrings(req, "file_paths"))
	if errors.Is(err, validate.ErrNoPaths) {
		return mcp.NewToolResultError("No file paths specified."), nil
	}

	n, err := h.host.ImportMedia(ctx, paths)
	log.Event("mcp:import_media", "import").Author("mcp").
		Detail("requested", len(paths)).
		Detail("imported", n).
		Write(outcome(err, n > 0))

	if err != nil {
		return hostError(err), nil
	}
	if n == 0 {
		return mcp.NewToolResultError("Failed to import media files. Check that the file paths are valid."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully imported %d media files.", n)), nil
}

// createFolder handles create_folder tool calls.
func (h *handlers) createFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireConnected(ctx); r != nil {
		return r, nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return required("name"), nil //nolint:nilerr
	}
	if name, err = validate.Name("folder", name); err != nil {
		return invalid(err), nil
	}

	ok, err := h.host.AddFolder(ctx, name)
	log.Event("mcp:create_folder", "create").Author("mcp").Target(name).Write(outcome(err, ok))

	if err != nil {
		return hostError(err), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create folder '%s'. The folder may already exist.", name)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully created folder '%s'.", name)), nil
}

// createTimelineFromClips handles create_timeline_from_clips tool calls.
func (h *handlers) createTimelineFromClips(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	indices, ok := getInts(req, "clip_indices")
	if !ok {
		return required("clip_indices"), nil
	}
	if r := h.checkClips(ctx, indices); r != nil {
		return r, nil
	}

	ok, err = h.host.CreateTimelineFromClips(ctx, name, indices)
	log.Event("mcp:create_timeline_from_clips", "create").Author("mcp").Target(name).
		Detail("clips", indices).
		Write(outcome(err, ok))

	if err != nil {
		return hostError(err), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create timeline '%s'.", name)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully created timeline '%s' with %d clips.", name, len(indices))), nil
}

// appendToTimeline handles append_to_timeline tool calls.
func (h *handlers) appendToTimeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireConnected(ctx); r != nil {
		return r, nil
	}
	indices, ok := getInts(req, "clip_indices")
	if !ok {
		return required("clip_indices"), nil
	}

	tl, err := h.host.CurrentTimeline(ctx)
	if err != nil {
		return hostError(err), nil
	}
	if r := h.checkClips(ctx, indices); r != nil {
		return r, nil
	}

	ok, err = h.host.AppendToTimeline(ctx, indices)
	log.Event("mcp:append_to_timeline", "append").Author("mcp").Target(tl.Name).
		Detail("clips", indices).
		Write(outcome(err, ok))

	if err != nil {
		return hostError(err), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to append clips to timeline '%s'.", tl.Name)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully appended %d clips to timeline '%s'.", len(indices), tl.Name)), nil
}

// checkClips validates indices against the current folder's clips.
func (h *handlers) checkClips(ctx context.Context, indices []int) *mcp.CallToolResult {
	f, err := h.host.CurrentFolder(ctx)
	if err != nil {
		return hostError(err)
	}
	if len(f.Clips) == 0 {
		return mcp.NewToolResultError(msgNoClips)
	}
	if len(indices) == 0 {
		return mcp.NewToolResultError(msgNoSelected)
	}
	if err := validate.Indices("clip", indices, len(f.Clips)); err != nil {
		return invalid(err)
	}
	return nil
}

// browseStorage handles browse_storage tool calls.
func (h *handlers) browseStorage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireConnected(ctx); r != nil {
		return r, nil
	}
	path := strings.TrimSpace(getString(req, "path", ""))
	if path == "" {
		return required("path"), nil
	}

	l, err := h.host.Browse(ctx, path)
	log.Event("mcp:browse_storage", "browse").Author("mcp").Target(path).Write(err)
	if err != nil {
		return hostError(err), nil
	}
	return mcp.NewToolResultText(format.Listing(l)), nil
}
