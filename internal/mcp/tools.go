// tools.go declares the built-in MCP tools. Handlers live in the
// tools_*.go file for their area of the host.

package mcp

import (
	"strings"

	"github.com/jpl-au/resolvemcp/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(s *server.MCPServer, h *handlers) {
	// Projects
	s.AddTool(
		mcp.NewTool("create_project",
			mcp.WithDescription("Create a new DaVinci Resolve project"),
			mcp.WithString("name", mcp.Required(), mcp.Description("The name of the project to create")),
		),
		h.createProject,
	)
	s.AddTool(
		mcp.NewTool("load_project",
			mcp.WithDescription("Load an existing DaVinci Resolve project"),
			mcp.WithString("name", mcp.Required(), mcp.Description("The name of the project to load")),
		),
		h.loadProject,
	)
	s.AddTool(
		mcp.NewTool("save_project",
			mcp.WithDescription("Save the current DaVinci Resolve project"),
		),
		h.saveProject,
	)

	// Timelines
	s.AddTool(
		mcp.NewTool("create_timeline",
			mcp.WithDescription("Create a new empty timeline in the current project and make it current"),
			mcp.WithString("name", mcp.Required(), mcp.Description("The name of the timeline to create")),
		),
		h.createTimeline,
	)
	s.AddTool(
		mcp.NewTool("set_current_timeline",
			mcp.WithDescription("Set the current timeline by index"),
			mcp.WithNumber("index", mcp.Required(), mcp.Description("The index of the timeline (1-based)")),
		),
		h.setCurrentTimeline,
	)
	s.AddTool(
		mcp.NewTool("import_timeline",
			mcp.WithDescription("Import a timeline from an AAF, EDL, XML or FCPXML file into the media pool"),
			mcp.WithString("file_path", mcp.Required(), mcp.Description("Path of the timeline file")),
		),
		h.importTimeline,
	)

	// Media
	s.AddTool(
		mcp.NewTool("import_media",
			mcp.WithDescription("Import media files into the current media pool folder"),
			mcp.WithArray("file_paths", mcp.Required(),
				mcp.Description("A list of file paths to import"),
				mcp.Items(map[string]any{"type": "string"}),
			),
		),
		h.importMedia,
	)
	s.AddTool(
		mcp.NewTool("create_folder",
			mcp.WithDescription("Create a new folder in the current media pool folder"),
			mcp.WithString("name", mcp.Required(), mcp.Description("The name of the folder to create")),
		),
		h.createFolder,
	)
	s.AddTool(
		mcp.NewTool("create_timeline_from_clips",
			mcp.WithDescription("Create a new timeline from clips in the current media pool folder"),
			mcp.WithString("name", mcp.Required(), mcp.Description("The name of the timeline to create")),
			mcp.WithArray("clip_indices", mcp.Required(),
				mcp.Description("Clip indices (1-based) in the current folder to include in the timeline"),
				mcp.Items(map[string]any{"type": "integer"}),
			),
		),
		h.createTimelineFromClips,
	)
	s.AddTool(
		mcp.NewTool("append_to_timeline",
			mcp.WithDescription("Append clips from the current media pool folder to the current timeline"),
			mcp.WithArray("clip_indices", mcp.Required(),
				mcp.Description("Clip indices (1-based) in the current folder to append"),
				mcp.Items(map[string]any{"type": "integer"}),
			),
		),
		h.appendToTimeline,
	)
	s.AddTool(
		mcp.NewTool("browse_storage",
			mcp.WithDescription("List the sub-folders and files of a media storage path"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Absolute path on a mounted volume")),
		),
		h.browseStorage,
	)

	// Fusion
	s.AddTool(
		mcp.NewTool("add_fusion_comp_to_clip",
			mcp.WithDescription("Add a Fusion composition to a clip in the timeline"),
			mcp.WithNumber("timeline_index", mcp.Required(), mcp.Description("The index of the timeline (1-based)")),
			mcp.WithString("track_type", mcp.Required(),
				mcp.Description("The type of track"),
				mcp.Enum("video", "audio", "subtitle"),
			),
			mcp.WithNumber("track_index", mcp.Required(), mcp.Description("The index of the track (1-based)")),
			mcp.WithNumber("item_index", mcp.Required(), mcp.Description("The index of the item in the track (1-based)")),
		),
		h.addFusionCompToClip,
	)
	s.AddTool(
		mcp.NewTool("create_fusion_node",
			mcp.WithDescription("Create a Fusion node in the current composition"),
			mcp.WithString("node_type", mcp.Required(), mcp.Description("The type of node to create (e.g., 'Blur', 'ColorCorrector', 'Text')")),
			mcp.WithObject("parameters", mcp.Description("Optional inputs to set on the node")),
		),
		h.createFusionNode,
	)
	s.AddTool(
		mcp.NewTool("create_fusion_node_chain",
			mcp.WithDescription("Create a chain of connected Fusion nodes in the current composition"),
			mcp.WithArray("node_chain", mcp.Required(),
				mcp.Description("Nodes in chain order; each has 'type', an optional 'name' and optional 'params'"),
				mcp.Items(map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type":   map[string]any{"type": "string"},
						"name":   map[string]any{"type": "string"},
						"params": map[string]any{"type": "object"},
					},
					"required": []string{"type"},
				}),
			),
		),
		h.createFusionNodeChain,
	)

	// Pages
	s.AddTool(
		mcp.NewTool("open_page",
			mcp.WithDescription("Open a specific page in DaVinci Resolve"),
			mcp.WithString("page_name", mcp.Required(),
				mcp.Description("The name of the page to open ("+strings.Join(validate.PageNames(), ", ")+")"),
			),
		),
		h.openPage,
	)
	s.AddTool(
		mcp.NewTool("get_current_page",
			mcp.WithDescription("Get the page DaVinci Resolve is currently showing"),
		),
		h.getCurrentPage,
	)
}
