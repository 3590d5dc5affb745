// status.go implements the "resolvemcp status" command.
//
// Prints the same text as the system://status resource. A missing host is
// a report, not a failure, so status exits zero either way.

package core

import (
	"fmt"
	"strings"

	"github.com/jpl-au/resolvemcp/cmd"
	"github.com/jpl-au/resolvemcp/internal/format"
	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/jpl-au/resolvemcp/internal/resolve"
	"github.com/jpl-au/resolvemcp/internal/version"
	"github.com/spf13/cobra"
)

// statusJSON is the JSON shape of the status command.
type statusJSON struct {
	resolve.Info
	Project  string `json:"project,omitempty"`
	Timeline string `json:"timeline,omitempty"`
	Server   string `json:"server"`

	// ModuleDirs lists the searched directories that hold the scripting
	// module. Only reported when the host is unreachable.
	ModuleDirs []string `json:"module_dirs,omitempty"`
}

func (e *Extension) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the connection to DaVinci Resolve",
		Long: `Starts the bridge, reports whether DaVinci Resolve is reachable and, if so,
the open project and timeline.

  resolvemcp status
  resolvemcp status -o json`,
		Args: cobra.NoArgs,
		RunE: e.runStatus,
	}
}

func (e *Extension) runStatus(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	host := e.ctx.Host()

	stop := cmd.Spin("Connecting to DaVinci Resolve")
	connected := host.Connected(ctx)
	var project, timeline string
	if connected {
		if p, err := host.CurrentProject(ctx); err == nil {
			project = p.Name
			timeline = p.CurrentTimeline
			log.SetProject(p.Name)
		}
	}
	stop()

	info := host.Info()
	log.Event("core:status", "status").
		Author(cmd.Author()).
		Target(project).
		Detail("connected", connected).
		Write(nil)

	var searched, found []string
	if !info.Connected {
		searched = resolve.ModuleDirs(e.ctx.Config().Resolve.ScriptAPI)
		found = resolve.ExistingModuleDirs(searched)
	}

	if cmd.JSON() {
		return cmd.PrintJSON(statusJSON{
			Info:       info,
			Project:    project,
			Timeline:   timeline,
			Server:     version.Short(),
			ModuleDirs: found,
		})
	}
	fmt.Fprintln(cmd.Out(), format.Status(info, project, timeline))
	if !info.Connected {
		fmt.Fprintln(cmd.Out(), moduleReport(searched, found))
	}
	return nil
}

// moduleReport says where the scripting module was found, or where it was
// looked for.
func moduleReport(searched, found []string) string {
	if len(found) > 0 {
		return "- Module: " + resolve.ModuleName + " found in " + strings.Join(found, ", ")
	}
	if len(searched) == 0 {
		return "- Module: no search path; set resolve.script_api"
	}
	return "- Module: " + resolve.ModuleName + " not found in " + strings.Join(searched, ", ")
}
