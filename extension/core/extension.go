// Package core provides the core extension for resolvemcp.
// It registers commands: serve, status, config, guide, version.
package core

import (
	"github.com/jpl-au/resolvemcp/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Hostless      = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Init stores the context for the status command.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newServeCmd(),
		e.newStatusCmd(),
		newConfigCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil. The built-in resources and tools are registered by
// the server itself.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoHostCommands returns commands that never touch DaVinci Resolve.
// serve: builds its own bridge client with the server's logger.
// config, guide, version: work without Resolve installed.
func (e *Extension) NoHostCommands() []string {
	return []string{"serve", "config", "guide", "version"}
}
