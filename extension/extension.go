// Package extension provides the plugin architecture for resolvemcp.
// Extensions encapsulate related functionality (commands, MCP tools) and
// register at init time, so a feature area can be added without touching
// the root command or the MCP server.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for resolvemcp extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server. Called once
	// the configuration is loaded, so extensions may offer tools
	// conditionally.
	MCPTools() []MCPTool
}

// Initializable extensions receive the Context once it exists, before any
// command runs or the MCP server registers tools.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Hostless is an optional interface for extensions with commands that
// never talk to DaVinci Resolve. Commands returned by NoHostCommands()
// do not get a host connection in PersistentPreRunE.
//
// Use cases:
// 1. Commands that manage their own connection lifecycle (serve)
// 2. Utility commands that only touch local files (config, guide, version)
type Hostless interface {
	NoHostCommands() []string
}
