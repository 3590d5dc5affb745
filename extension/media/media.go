// Package media provides the media extension for resolvemcp.
// It registers the media command with subcommands volumes, folders, clips,
// browse, import and mkdir.
package media

import (
	"github.com/jpl-au/resolvemcp/extension"
	"github.com/jpl-au/resolvemcp/internal/config"
	"github.com/jpl-au/resolvemcp/internal/resolve"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the media extension.
type Extension struct {
	host resolve.Host
	cfg  *config.Config
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "media".
func (e *Extension) Name() string { return "media" }

// Init receives the shared host and config from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.host = ctx.Host()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the media command.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "media",
		Short: "Browse media storage and the media pool",
		Long: `Media storage is the disk as DaVinci Resolve sees it; the media pool holds
the clips of the current project.

  resolvemcp media volumes
  resolvemcp media browse /Volumes/Media/Day1
  resolvemcp media import /Volumes/Media/Day1/A001.mov
  resolvemcp media folders
  resolvemcp media clips
  resolvemcp media mkdir "Selects"`,
	}
	c.AddCommand(
		e.newVolumesCmd(),
		e.newBrowseCmd(),
		e.newImportCmd(),
		e.newFoldersCmd(),
		e.newClipsCmd(),
		e.newMkdirCmd(),
	)
	return []*cobra.Command{c}
}

// MCPTools returns nil - media tools are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
