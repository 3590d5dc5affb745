// Package fusion provides the fusion extension for resolvemcp.
// It registers commands: page, and fusion (with subcommands comp, node,
// chain).
package fusion

import (
	"fmt"

	"github.com/jpl-au/resolvemcp/cmd"
	"github.com/jpl-au/resolvemcp/extension"
	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/jpl-au/resolvemcp/internal/resolve"
	"github.com/jpl-au/resolvemcp/internal/validate"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the fusion extension.
type Extension struct {
	host resolve.Host
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "fusion".
func (e *Extension) Name() string { return "fusion" }

// Init receives the shared host from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.host = ctx.Host()
	return nil
}

// Commands returns the page and fusion commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newPageCmd(),
		e.newFusionCmd(),
	}
}

// MCPTools returns nil - Fusion and page tools are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

func (e *Extension) newPageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "page [name]",
		Short: "Show or switch the DaVinci Resolve page",
		Long: `Without an argument, shows the page DaVinci Resolve is on. With one, opens it.

Pages: media, cut, edit, fusion, color, fairlight, deliver.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: validate.PageNames(),
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) == 0 {
				return e.showPage(c)
			}
			return e.openPage(c, args[0])
		},
	}
}

func (e *Extension) showPage(c *cobra.Command) error {
	page, err := e.host.CurrentPage(c.Context())
	if err != nil {
		return cmd.HostError(err)
	}
	if page == "" {
		return cmd.Report(map[string]string{"page": ""}, "No page is currently shown.")
	}
	return cmd.Report(map[string]string{"page": page}, "Current page: "+resolve.Page(page).Title())
}

func (e *Extension) openPage(c *cobra.Command, name string) error {
	page, err := validate.Page(name)
	if err != nil {
		return cmd.Invalid(err)
	}

	ok, err := e.host.OpenPage(c.Context(), page)
	log.Event("fusion:page", "open").Author(cmd.Author()).Target(string(page)).Write(cmd.Outcome(err, ok))

	if err != nil {
		return cmd.HostError(err)
	}
	if !ok {
		return cmd.Failed(fmt.Sprintf("Failed to open the %s page.", page.Title()))
	}
	return cmd.Done(string(page), fmt.Sprintf("Successfully opened the %s page.", page.Title()))
}
