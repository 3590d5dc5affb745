// pool.go implements the media pool subcommands: folders, clips and mkdir.

package media

import (
	"fmt"
	"strconv"

	"github.com/jpl-au/resolvemcp/cmd"
	"github.com/jpl-au/resolvemcp/extension"
	"github.com/jpl-au/resolvemcp/internal/format"
	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/jpl-au/resolvemcp/internal/resolve"
	"github.com/jpl-au/resolvemcp/internal/validate"
	"github.com/spf13/cobra"
)

func (e *Extension) newFoldersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "folders",
		Short: "Show the media pool folder tree",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			root, err := e.host.FolderTree(c.Context())
			if err != nil {
				return cmd.HostError(err)
			}
			return cmd.Report(root, format.FolderTree(root))
		},
	}
}

func (e *Extension) newClipsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "clips",
		Short: "List clips in the current media pool folder",
		Long: `List clips in the current media pool folder with the 1-based index that
"timeline from-clips" and "timeline append" take.

The list is cut at mediapool.clip_limit unless --limit is given
(0 lists everything).`,
		Args: cobra.NoArgs,
		RunE: e.runClips,
	}
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Maximum clips to list (0 for all)")
	return c
}

// clipsJSON is the JSON shape of the clips command.
type clipsJSON struct {
	Folder string   `json:"folder"`
	Count  int      `json:"count"`
	Clips  []string `json:"clips"`
}

func (e *Extension) runClips(c *cobra.Command, _ []string) error {
	limit := e.cfg.ClipLimit()
	if c.Flags().Changed(extension.FlagLimit) {
		limit, _ = c.Flags().GetInt(extension.FlagLimit)
	}

	f, err := e.host.CurrentFolder(c.Context())
	if err != nil {
		return cmd.HostError(err)
	}

	shown := f.Clips
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	if cmd.JSON() {
		if shown == nil {
			shown = []string{}
		}
		return cmd.PrintJSON(clipsJSON{Folder: f.Name, Count: len(f.Clips), Clips: shown})
	}
	return writeClips(f, shown)
}

func writeClips(f *resolve.Folder, shown []string) error {
	w := cmd.Out()
	fmt.Fprintf(w, "Current Folder: %s\nClip Count: %d\n", f.Name, len(f.Clips))
	if len(f.Clips) == 0 {
		fmt.Fprintln(w, "No clips in this folder.")
		return nil
	}

	rows := make([][]string, len(shown))
	for i, name := range shown {
		rows[i] = []string{strconv.Itoa(i + 1), name}
	}
	if err := format.Table(w, []string{"#", "Clip"}, rows, 0); err != nil {
		return err
	}
	if more := len(f.Clips) - len(shown); more > 0 {
		fmt.Fprintf(w, "... and %d more clips\n", more)
	}
	return nil
}

func (e *Extension) newMkdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <name>",
		Short: "Create a sub-folder of the current media pool folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			name, err := validate.Name("folder", args[0])
			if err != nil {
				return cmd.Invalid(err)
			}

			ok, err := e.host.AddFolder(c.Context(), name)
			log.Event("media:mkdir", "create").Author(cmd.Author()).Target(name).Write(cmd.Outcome(err, ok))

			if err != nil {
				return cmd.HostError(err)
			}
			if !ok {
				return cmd.Failed(fmt.Sprintf("Failed to create folder '%s'. The folder may already exist.", name))
			}
			return cmd.Done(name, fmt.Sprintf("Successfully created folder '%s'.", name))
		},
	}
}
