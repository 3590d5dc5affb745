// Package project provides the project extension for resolvemcp.
// It registers commands: project (show, create, load, save) and timeline
// (ls, show, create, use, import, append, from-clips).
package project

import (
	"fmt"

	"github.com/jpl-au/resolvemcp/cmd"
	"github.com/jpl-au/resolvemcp/extension"
	"github.com/jpl-au/resolvemcp/internal/format"
	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/jpl-au/resolvemcp/internal/resolve"
	"github.com/jpl-au/resolvemcp/internal/validate"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the project extension.
type Extension struct {
	host resolve.Host
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "project".
func (e *Extension) Name() string { return "project" }

// Init receives the shared host from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.host = ctx.Host()
	return nil
}

// Commands returns the project and timeline commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newProjectCmd(),
		e.newTimelineCmd(),
	}
}

// MCPTools returns nil - project and timeline tools are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// --- project command with subcommands ---

func (e *Extension) newProjectCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "project",
		Short: "Show or manage the current project",
		Long: `Without a subcommand, shows the project open in DaVinci Resolve.

  resolvemcp project
  resolvemcp project create "Trailer"
  resolvemcp project load "Trailer"
  resolvemcp project save`,
		Args: cobra.NoArgs,
		RunE: e.runProjectShow,
	}
	c.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current project",
		Args:  cobra.NoArgs,
		RunE:  e.runProjectShow,
	})
	c.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a project and open it",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runProjectCreate,
	})
	c.AddCommand(&cobra.Command{
		Use:   "load <name>",
		Short: "Open an existing project",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runProjectLoad,
	})
	c.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Save the current project",
		Args:  cobra.NoArgs,
		RunE:  e.runProjectSave,
	})
	return c
}

func (e *Extension) runProjectShow(c *cobra.Command, _ []string) error {
	p, err := e.host.CurrentProject(c.Context())
	if err != nil {
		return cmd.HostError(err)
	}
	log.SetProject(p.Name)
	return cmd.Report(p, format.Project(p))
}

func (e *Extension) runProjectCreate(c *cobra.Command, args []string) error {
	name, err := validate.Name("project", args[0])
	if err != nil {
		return cmd.Invalid(err)
	}

	stop := cmd.Spin("Creating project")
	ok, err := e.host.CreateProject(c.Context(), name)
	stop()

	log.Event("project:create", "create").Author(cmd.Author()).Target(name).Write(cmd.Outcome(err, ok))

	if err != nil {
		return cmd.HostError(err)
	}
	if !ok {
		return cmd.Failed(fmt.Sprintf("Failed to create project '%s'. The project may already exist.", name))
	}
	log.SetProject(name)
	return cmd.Done(name, fmt.Sprintf("Successfully created project '%s'.", name))
}

func (e *Extension) runProjectLoad(c *cobra.Command, args []string) error {
	name, err := validate.Name("project", args[0])
	if err != nil {
		return cmd.Invalid(err)
	}

	stop := cmd.Spin("Loading project")
	ok, err := e.host.LoadProject(c.Context(), name)
	stop()

	log.Event("project:load", "load").Author(cmd.Author()).Target(name).Write(cmd.Outcome(err, ok))

	if err != nil {
		return cmd.HostError(err)
	}
	if !ok {
		return cmd.Failed(fmt.Sprintf("Failed to load project '%s'. The project may not exist.", name))
	}
	log.SetProject(name)
	return cmd.Done(name, fmt.Sprintf("Successfully loaded project '%s'.", name))
}

func (e *Extension) runProjectSave(c *cobra.Command, _ []string) error {
	stop := cmd.Spin("Saving project")
	name, ok, err := e.host.SaveProject(c.Context())
	stop()

	log.Event("project:save", "save").Author(cmd.Author()).Target(name).Write(cmd.Outcome(err, ok))

	if err != nil {
		return cmd.HostError(err)
	}
	if !ok {
		return cmd.Failed(fmt.Sprintf("Failed to save project '%s'.", name))
	}
	return cmd.Done(name, fmt.Sprintf("Successfully saved project '%s'.", name))
}
