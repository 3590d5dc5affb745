// timeline.go implements the "resolvemcp timeline" command and its
// subcommands.
//
// Clip arguments to append and from-clips are 1-based positions in the
// current media pool folder, as listed by "resolvemcp media clips". All of
// them are checked before DaVinci Resolve is asked to change anything.

package project

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/resolvemcp/cmd"
	"github.com/jpl-au/resolvemcp/internal/format"
	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/jpl-au/resolvemcp/internal/validate"
	"github.com/spf13/cobra"
)

func (e *Extension) newTimelineCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "timeline",
		Short: "List, create and switch timelines",
		Long: `Work with the timelines of the current project.

  resolvemcp timeline ls
  resolvemcp timeline show
  resolvemcp timeline create "Assembly"
  resolvemcp timeline use 2
  resolvemcp timeline import ./edit.fcpxml
  resolvemcp timeline from-clips "Selects" 1 3 4
  resolvemcp timeline append 5 6`,
	}
	c.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List timelines in the current project",
		Args:  cobra.NoArgs,
		RunE:  e.runTimelineLs,
	})
	c.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current timeline",
		Args:  cobra.NoArgs,
		RunE:  e.runTimelineShow,
	})
	c.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty timeline and make it current",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runTimelineCreate,
	})
	c.AddCommand(&cobra.Command{
		Use:   "use <index>",
		Short: "Make the timeline at index current",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runTimelineUse,
	})
	c.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Import an AAF, EDL, XML or FCPXML timeline",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runTimelineImport,
	})
	c.AddCommand(&cobra.Command{
		Use:   "from-clips <name> <clip-index>...",
		Short: "Create a timeline from clips in the current folder",
		Args:  cobra.MinimumNArgs(2),
		RunE:  e.runTimelineFromClips,
	})
	c.AddCommand(&cobra.Command{
		Use:   "append <clip-index>...",
		Short: "Append clips from the current folder to the current timeline",
		Args:  cobra.MinimumNArgs(1),
		RunE:  e.runTimelineAppend,
	})
	return c
}

// timelineRow is the JSON shape of one timeline in ls output.
type timelineRow struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Current bool   `json:"current"`
}

func (e *Extension) runTimelineLs(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	p, err := e.host.CurrentProject(ctx)
	if err != nil {
		return cmd.HostError(err)
	}
	refs, err := e.host.Timelines(ctx)
	if err != nil {
		return cmd.HostError(err)
	}

	rows := make([]timelineRow, len(refs))
	for i, r := range refs {
		rows[i] = timelineRow{Index: r.Index, Name: r.Name, Current: r.Name == p.CurrentTimeline}
	}
	if cmd.JSON() {
		return cmd.PrintJSON(rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(cmd.Out(), format.MsgNoTimelines)
		return nil
	}

	table := make([][]string, len(rows))
	for i, r := range rows {
		mark := ""
		if r.Current {
			mark = "*"
		}
		table[i] = []string{strconv.Itoa(r.Index), r.Name, mark}
	}
	return format.Table(cmd.Out(), []string{"#", "Name", "Current"}, table, 0)
}

func (e *Extension) runTimelineShow(c *cobra.Command, _ []string) error {
	t, err := e.host.CurrentTimeline(c.Context())
	if err != nil {
		return cmd.HostError(err)
	}
	return cmd.Report(t, format.Timeline(t))
}

func (e *Extension) runTimelineCreate(c *cobra.Command, args []string) error {
	name, err := validate.Name("timeline", args[0])
	if err != nil {
		return cmd.Invalid(err)
	}

	ok, err := e.host.CreateTimeline(c.Context(), name)
	log.Event("timeline:create", "create").Author(cmd.Author()).Target(name).Write(cmd.Outcome(err, ok))

	if err != nil {
		return cmd.HostError(err)
	}
	if !ok {
		return cmd.Failed(fmt.Sprintf("Failed to create timeline '%s'. The timeline may already exist.", name))
	}
	return cmd.Done(name, fmt.Sprintf("Successfully created timeline '%s'.", name))
}

func (e *Extension) runTimelineUse(c *cobra.Command, args []string) error {
	ctx := c.Context()
	idx, err := cmd.Indices("timeline", args)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	index := idx[0]

	p, err := e.host.CurrentProject(ctx)
	if err != nil {
		return cmd.HostError(err)
	}
	if err := validate.Index("timeline", index, p.TimelineCount); err != nil {
		return cmd.Invalid(err)
	}

	name, ok, err := e.host.SetCurrentTimeline(ctx, index)
	log.Event("timeline:use", "select").Author(cmd.Author()).Target(name).Detail("index", index).Write(cmd.Outcome(err, ok))

	switch {
	case err != nil:
		return cmd.HostError(err)
	case name == "":
		return cmd.Failed(fmt.Sprintf("Failed to get timeline at index %d.", index))
	case !ok:
		return cmd.Failed(fmt.Sprintf("Failed to set current timeline to '%s'.", name))
	}
	return cmd.Done(name, fmt.Sprintf("Successfully set current timeline to '%s'.", name))
}

func (e *Extension) runTimelineImport(c *cobra.Command, args []string) error {
	path := strings.TrimSpace(args[0])
	if path == "" {
		return cmd.PrintJSONError(fmt.Errorf("file path is required"))
	}

	stop := cmd.Spin("Importing timeline")
	name, ok, err := e.host.ImportTimeline(c.Context(), path)
	stop()

	log.Event("timeline:import", "import").Author(cmd.Author()).Target(name).Detail("path", path).Write(cmd.Outcome(err, ok))

	if err != nil {
		return cmd.HostError(err)
	}
	if !ok {
		return cmd.Failed(fmt.Sprintf("Failed to import timeline from '%s'. Check that the file exists and is an AAF, EDL, XML or FCPXML file.", path))
	}
	return cmd.Done(name, fmt.Sprintf("Successfully imported timeline '%s'.", name))
}

func (e *Extension) runTimelineFromClips(c *cobra.Command, args []string) error {
	ctx := c.Context()
	name, err := validate.Name("timeline", args[0])
	if err != nil {
		return cmd.Invalid(err)
	}
	clips, err := cmd.Indices("clip", args[1:])
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	if err := e.checkClips(ctx, clips); err != nil {
		return cmd.PrintJSONError(err)
	}

	ok, err := e.host.CreateTimelineFromClips(ctx, name, clips)
	log.Event("timeline:from-clips", "create").Author(cmd.Author()).Target(name).Detail("clips", clips).Write(cmd.Outcome(err, ok))

	if err != nil {
		return cmd.HostError(err)
	}
	if !ok {
		return cmd.Failed(fmt.Sprintf("Failed to create timeline '%s'.", name))
	}
	msg := fmt.Sprintf("Successfully created timeline '%s' with %d clips.", name, len(clips))
	return cmd.Report(cmd.Result{Target: name, Count: len(clips), Message: msg}, msg)
}

func (e *Extension) runTimelineAppend(c *cobra.Command, args []string) error {
	ctx := c.Context()
	clips, err := cmd.Indices("clip", args)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	t, err := e.host.CurrentTimeline(ctx)
	if err != nil {
		return cmd.HostError(err)
	}
	if err := e.checkClips(ctx, clips); err != nil {
		return cmd.PrintJSONError(err)
	}

	ok, err := e.host.AppendToTimeline(ctx, clips)
	log.Event("timeline:append", "append").Author(cmd.Author()).Target(t.Name).Detail("clips", clips).Write(cmd.Outcome(err, ok))

	if err != nil {
		return cmd.HostError(err)
	}
	if !ok {
		return cmd.Failed(fmt.Sprintf("Failed to append clips to timeline '%s'.", t.Name))
	}
	msg := fmt.Sprintf("Successfully appended %d clips to timeline '%s'.", len(clips), t.Name)
	return cmd.Report(cmd.Result{Target: t.Name, Count: len(clips), Message: msg}, msg)
}

// checkClips validates clip indices against the current media pool folder.
// The error is not printed.
func (e *Extension) checkClips(ctx context.Context, clips []int) error {
	f, err := e.host.CurrentFolder(ctx)
	if err != nil {
		return cmd.NewHostError(err)
	}
	if len(f.Clips) == 0 {
		return cmd.NewFailedError("No clips in the current folder.")
	}
	return cmd.NewInvalidError(validate.Indices("clip", clips, len(f.Clips)))
}
