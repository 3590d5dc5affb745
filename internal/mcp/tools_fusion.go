// tools_fusion.go implements the Fusion tools.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/jpl-au/resolvemcp/internal/resolve"
	"github.com/jpl-au/resolvemcp/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// addFusionCompToClip handles add_fusion_comp_to_clip tool calls.
//
// Checks run in a fixed order (project, timeline, track type, track,
// track contents, item) so the first problem reported is the outermost.
func (h *handlers) addFusionCompToClip(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireConnected(ctx); r != nil {
		return r, nil
	}
	ref := resolve.ClipRef{}
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"timeline_index", &ref.Timeline},
		{"track_index", &ref.TrackIndex},
		{"item_index", &ref.Item},
	} {
		v, ok := getInt(req, p.name)
		if !ok {
			return required(p.name), nil
		}
		*p.dst = v
	}

	p, err := h.host.CurrentProject(ctx)
	if err != nil {
		return hostError(err), nil
	}
	if err := validate.Index("timeline", ref.Timeline, p.TimelineCount); err != nil {
		return invalid(err), nil
	}
	if ref.Track, err = validate.TrackType(getString(req, "track_type", "")); err != nil {
		return invalid(err), nil
	}

	tracks, err := h.host.TrackCount(ctx, ref.Timeline, ref.Track)
	if err != nil {
		return hostError(err), nil
	}
	if err := validate.Index("track", ref.TrackIndex, tracks); err != nil {
		return invalid(err), nil
	}

	items, err := h.host.TrackItems(ctx, ref.Timeline, ref.Track, ref.TrackIndex)
	if err != nil {
		return hostError(err), nil
	}
	if len(items) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("No items in %s track %d.", ref.Track, ref.TrackIndex)), nil
	}
	if err := validate.Index("item", ref.Item, len(items)); err != nil {
		return invalid(err), nil
	}

	ok, err := h.host.AddFusionComp(ctx, ref)
	log.Event("mcp:add_fusion_comp_to_clip", "add").Author("mcp").Target(items[ref.Item-1]).
		Detail("clip", ref.String()).
		Write(outcome(err, ok))

	if err != nil {
		return hostError(err), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to add Fusion composition to %s.", ref)), nil
	}

	// The composition is edited on the Fusion page; failing to switch
	// does not undo the composition.
	if _, err := h.host.OpenPage(ctx, resolve.PageFusion); err != nil {
		log.Event("mcp:add_fusion_comp_to_clip", "open").Author("mcp").Target(string(resolve.PageFusion)).Write(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully added Fusion composition to %s.", ref)), nil
}

// createFusionNode handles create_fusion_node tool calls.
func (h *handlers) createFusionNode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireConnected(ctx); r != nil {
		return r, nil
	}
	nodeType := strings.TrimSpace(getString(req, "node_type", ""))
	if nodeType == "" {
		return required("node_type"), nil
	}
	params := getMap(req, "parameters")

	created, err := h.host.AddTool(ctx, nodeType, "", params)
	log.Event("mcp:create_fusion_node", "create").Author("mcp").Target(nodeType).
		Detail("parameters", len(params)).
		Write(outcome(err, created != ""))

	if err != nil {
		return hostError(err), nil
	}
	if created == "" {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create %s node. Check that the node type is valid.", nodeType)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully created %s node in the Fusion composition.", nodeType)), nil
}

// createFusionNodeChain handles create_fusion_node_chain tool calls.
func (h *handlers) createFusionNodeChain(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireConnected(ctx); r != nil {
		return r, nil
	}
	chain := getMaps(req, "node_chain")
	if len(chain) == 0 {
		return mcp.NewToolResultError("No nodes specified in the chain."), nil
	}

	nodes := make([]resolve.ChainNode, len(chain))
	for i, node := range chain {
		nodes[i].Type, _ = node["type"].(string)
		nodes[i].Name, _ = node["name"].(string)
		nodes[i].Params, _ = node["params"].(map[string]any)
	}
	created, err := resolve.BuildChain(ctx, h.host, nodes)

	log.Event("mcp:create_fusion_node_chain", "create").Author("mcp").
		Detail("requested", len(chain)).
		Detail("created", created).
		Write(outcome(err, len(created) > 0))

	if err != nil {
		var be *resolve.BridgeError
		if errors.As(err, &be) {
			return mcp.NewToolResultError("Error creating node chain: " + be.Message), nil
		}
		return hostError(err), nil
	}
	if len(created) == 0 {
		return mcp.NewToolResultError("Failed to create any nodes in the chain."), nil
	}
	return mcp.NewToolResultText("Successfully created node chain: " + strings.Join(created, " -> ")), nil
}
