// resources.go implements the read-only MCP resources.
//
// Guard failures (no connection, no project, ...) are returned as resource
// content rather than protocol errors so the client can show them as-is.

package mcp

import (
	"context"
	"errors"

	"github.com/jpl-au/resolvemcp/internal/format"
	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/jpl-au/resolvemcp/internal/resolve"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const mimeText = "text/plain"

func registerResources(s *server.MCPServer, h *handlers) {
	for _, r := range []struct {
		uri, name, desc string
		read            func(context.Context) string
	}{
		{"system://status", "System Status", "Connection state, current project and current timeline", h.status},
		{"project://current", "Current Project", "Name, timeline count and current timeline of the open project", h.currentProject},
		{"project://timelines", "Project Timelines", "Numbered list of the timelines in the open project", h.timelines},
		{"timeline://current", "Current Timeline", "Name, duration and track counts of the current timeline", h.currentTimeline},
		{"mediapool://folders", "Media Pool Folders", "Folder tree of the media pool", h.folders},
		{"mediapool://current", "Current Media Pool Folder", "Clips in the current media pool folder", h.currentFolder},
		{"storage://volumes", "Mounted Volumes", "Volumes mounted in media storage", h.volumes},
	} {
		read := r.read
		s.AddResource(
			mcp.NewResource(r.uri, r.name,
				mcp.WithResourceDescription(r.desc),
				mcp.WithMIMEType(mimeText),
			),
			func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return []mcp.ResourceContents{
					mcp.TextResourceContents{
						URI:      req.Params.URI,
						MIMEType: mimeText,
						Text:     read(ctx),
					},
				}, nil
			},
		)
	}
}

// status never fails: a missing project or timeline is part of the report.
func (h *handlers) status(ctx context.Context) string {
	if !h.host.Connected(ctx) {
		return format.Status(h.host.Info(), "", "")
	}
	var project, timeline string
	if p, err := h.host.CurrentProject(ctx); err == nil {
		project, timeline = p.Name, p.CurrentTimeline
		log.SetProject(p.Name)
	}
	return format.Status(h.host.Info(), project, timeline)
}

func (h *handlers) currentProject(ctx context.Context) string {
	p, err := h.host.CurrentProject(ctx)
	if err != nil {
		return format.Message(err)
	}
	return format.Project(p)
}

func (h *handlers) timelines(ctx context.Context) string {
	refs, err := h.host.Timelines(ctx)
	if err != nil {
		return format.Message(err)
	}
	return format.Timelines(refs)
}

func (h *handlers) currentTimeline(ctx context.Context) string {
	t, err := h.host.CurrentTimeline(ctx)
	if err != nil {
		return format.Message(err)
	}
	return format.Timeline(t)
}

func (h *handlers) folders(ctx context.Context) string {
	root, err := h.host.FolderTree(ctx)
	if errors.Is(err, resolve.ErrNoFolder) {
		return format.MsgNoRootFolder
	}
	if err != nil {
		return format.Message(err)
	}
	return format.FolderTree(root)
}

func (h *handlers) currentFolder(ctx context.Context) string {
	f, err := h.host.CurrentFolder(ctx)
	if err != nil {
		return format.Message(err)
	}
	return format.CurrentFolder(f, h.clipLimit)
}

func (h *handlers) volumes(ctx context.Context) string {
	vols, err := h.host.Volumes(ctx)
	if err != nil {
		return format.Message(err)
	}
	return format.Volumes(vols)
}
