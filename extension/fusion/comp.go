// comp.go implements "resolvemcp fusion" and its subcommands.

package fusion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/resolvemcp/cmd"
	"github.com/jpl-au/resolvemcp/extension"
	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/jpl-au/resolvemcp/internal/resolve"
	"github.com/jpl-au/resolvemcp/internal/validate"
	"github.com/spf13/cobra"
)

func (e *Extension) newFusionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "fusion",
		Short: "Build Fusion compositions",
		Long: `Add Fusion compositions to timeline clips and nodes to the active composition.

  resolvemcp fusion comp --item 2
  resolvemcp fusion node Blur --param XBlurSize=4
  resolvemcp fusion chain Blur ColorCorrector:Grade Merge`,
	}
	c.AddCommand(e.newCompCmd(), e.newNodeCmd(), e.newChainCmd())
	return c
}

func (e *Extension) newCompCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "comp",
		Short: "Add a Fusion composition to a timeline clip",
		Long: `Add a Fusion composition to one item of a timeline track, then open the
Fusion page. All indices are 1-based; --timeline defaults to the current
timeline.`,
		Args: cobra.NoArgs,
		RunE: e.runComp,
	}
	c.Flags().IntP(extension.FlagTimeline, "t", 0, "Timeline index (default: current timeline)")
	c.Flags().String(extension.FlagTrack, string(resolve.TrackVideo), "Track type: video, audio, subtitle")
	c.Flags().Int(extension.FlagTrackIndex, 1, "Track index within the track type")
	c.Flags().IntP(extension.FlagItem, "i", 0, "Item index on the track")
	_ = c.MarkFlagRequired(extension.FlagItem)
	return c
}

func (e *Extension) runComp(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	var ref resolve.ClipRef
	ref.Timeline, _ = c.Flags().GetInt(extension.FlagTimeline)
	ref.TrackIndex, _ = c.Flags().GetInt(extension.FlagTrackIndex)
	ref.Item, _ = c.Flags().GetInt(extension.FlagItem)
	track, _ := c.Flags().GetString(extension.FlagTrack)
	explicit := c.Flags().Changed(extension.FlagTimeline)

	if err := checkFlags(&ref, track, explicit); err != nil {
		return cmd.PrintJSONError(err)
	}
	item, err := e.checkClip(ctx, &ref, explicit)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	stop := cmd.Spin("Adding Fusion composition")
	ok, err := e.host.AddFusionComp(ctx, ref)
	stop()

	log.Event("fusion:comp", "add").Author(cmd.Author()).Target(item).
		Detail("clip", ref.String()).
		Write(cmd.Outcome(err, ok))

	if err != nil {
		return cmd.HostError(err)
	}
	if !ok {
		return cmd.Failed(fmt.Sprintf("Failed to add Fusion composition to %s.", ref))
	}
	if _, err := e.host.OpenPage(ctx, resolve.PageFusion); err != nil {
		log.Event("fusion:comp", "open").Author(cmd.Author()).Target(string(resolve.PageFusion)).Write(err)
	}
	return cmd.Done(item, fmt.Sprintf("Successfully added Fusion composition to %s.", ref))
}

// checkFlags rejects flag values no host state could make valid. The
// error is not printed.
func checkFlags(ref *resolve.ClipRef, track string, explicit bool) error {
	var err error
	if ref.Track, err = validate.TrackType(track); err != nil {
		return cmd.NewInvalidError(err)
	}
	for _, f := range []struct {
		label string
		v     int
		check bool
	}{
		{"timeline", ref.Timeline, explicit},
		{"track", ref.TrackIndex, true},
		{"item", ref.Item, true},
	} {
		if f.check && f.v < 1 {
			return cmd.NewInvalidError(fmt.Errorf("%w: Invalid %s index. Must be 1 or greater.", validate.ErrInvalidIndex, f.label))
		}
	}
	return nil
}

// checkClip resolves and validates ref against the host from the outermost
// level inwards and returns the addressed item's name. The error is not
// printed.
func (e *Extension) checkClip(ctx context.Context, ref *resolve.ClipRef, explicit bool) (string, error) {
	p, err := e.host.CurrentProject(ctx)
	if err != nil {
		return "", cmd.NewHostError(err)
	}
	if !explicit {
		if ref.Timeline, err = e.currentTimelineIndex(ctx, p); err != nil {
			return "", cmd.NewHostError(err)
		}
	}
	if err := validate.Index("timeline", ref.Timeline, p.TimelineCount); err != nil {
		return "", cmd.NewInvalidError(err)
	}

	tracks, err := e.host.TrackCount(ctx, ref.Timeline, ref.Track)
	if err != nil {
		return "", cmd.NewHostError(err)
	}
	if err := validate.Index("track", ref.TrackIndex, tracks); err != nil {
		return "", cmd.NewInvalidError(err)
	}

	items, err := e.host.TrackItems(ctx, ref.Timeline, ref.Track, ref.TrackIndex)
	if err != nil {
		return "", cmd.NewHostError(err)
	}
	if len(items) == 0 {
		return "", cmd.NewFailedError(fmt.Sprintf("No items in %s track %d.", ref.Track, ref.TrackIndex))
	}
	if err := validate.Index("item", ref.Item, len(items)); err != nil {
		return "", cmd.NewInvalidError(err)
	}
	return items[ref.Item-1], nil
}

// currentTimelineIndex finds the project index of the current timeline.
func (e *Extension) currentTimelineIndex(ctx context.Context, p *resolve.Project) (int, error) {
	if p.CurrentTimeline == "" {
		return 0, resolve.ErrNoTimeline
	}
	refs, err := e.host.Timelines(ctx)
	if err != nil {
		return 0, err
	}
	for _, r := range refs {
		if r.Name == p.CurrentTimeline {
			return r.Index, nil
		}
	}
	return 0, resolve.ErrNoTimeline
}

func (e *Extension) newNodeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "node <type>",
		Short: "Add a node to the active Fusion composition",
		Long: `Add a node of the given tool type (Blur, ColorCorrector, Merge, Transform,
Text+, ...) to the active composition. Inputs are set with repeated --param
flags; numbers and true/false are passed as such, anything else as text.

  resolvemcp fusion node Blur --param XBlurSize=4 --param Blend=0.5
  resolvemcp fusion node Text+ --name Title --param StyledText="Hello"`,
		Args: cobra.ExactArgs(1),
		RunE: e.runNode,
	}
	c.Flags().String(extension.FlagName, "", "Name for the node")
	c.Flags().StringArrayP(extension.FlagParam, "p", nil, "Input as key=value (repeatable)")
	return c
}

func (e *Extension) runNode(c *cobra.Command, args []string) error {
	nodeType := strings.TrimSpace(args[0])
	name, _ := c.Flags().GetString(extension.FlagName)
	raw, _ := c.Flags().GetStringArray(extension.FlagParam)

	params, err := ParseParams(raw)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	created, err := e.host.AddTool(c.Context(), nodeType, strings.TrimSpace(name), params)
	log.Event("fusion:node", "create").Author(cmd.Author()).Target(nodeType).
		Detail("parameters", len(params)).
		Write(cmd.Outcome(err, created != ""))

	if err != nil {
		return cmd.HostError(err)
	}
	if created == "" {
		return cmd.Failed(fmt.Sprintf("Failed to create %s node. Check that the node type is valid.", nodeType))
	}
	return cmd.Done(created, fmt.Sprintf("Successfully created %s node in the Fusion composition.", nodeType))
}

func (e *Extension) newChainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chain <type[:name]>...",
		Short: "Add connected nodes to the active Fusion composition",
		Long: `Add nodes in order, connecting each node's main input to the previous one.
A node can be named with type:name. Node types the composition rejects are
skipped and the chain closes over the gap.

  resolvemcp fusion chain Blur ColorCorrector:Grade Merge`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runChain,
	}
}

// chainJSON is the JSON shape of the chain command.
type chainJSON struct {
	Created []string `json:"created"`
	Message string   `json:"message"`
}

func (e *Extension) runChain(c *cobra.Command, args []string) error {
	nodes := make([]resolve.ChainNode, len(args))
	for i, a := range args {
		nodes[i].Type, nodes[i].Name, _ = strings.Cut(a, ":")
	}

	created, err := resolve.BuildChain(c.Context(), e.host, nodes)
	log.Event("fusion:chain", "create").Author(cmd.Author()).
		Detail("requested", len(nodes)).
		Detail("created", created).
		Write(cmd.Outcome(err, len(created) > 0))

	if err != nil {
		var be *resolve.BridgeError
		if errors.As(err, &be) {
			return cmd.Failed("Error creating node chain: " + be.Message)
		}
		return cmd.HostError(err)
	}
	if len(created) == 0 {
		return cmd.Failed("Failed to create any nodes in the chain.")
	}
	msg := "Successfully created node chain: " + strings.Join(created, " -> ")
	return cmd.Report(chainJSON{Created: created, Message: msg}, msg)
}
