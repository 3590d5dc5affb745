// serve.go implements the "resolvemcp serve" command for MCP server operation.
//
// Serve blocks handling MCP requests over stdio. It is hostless: the server
// creates its own bridge client so operational logs go through the logger
// it installs on stderr.

package core

import (
	"fmt"

	"github.com/jpl-au/resolvemcp/cmd"
	"github.com/jpl-au/resolvemcp/internal/config"
	"github.com/jpl-au/resolvemcp/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

The server starts whether or not DaVinci Resolve is running and connects
when the application becomes reachable. Logs go to stderr; use -v for
bridge output.

  resolvemcp serve
  resolvemcp serve -v`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	return mcp.Serve(mcp.Options{Config: cfg, Verbose: cmd.Verbose()})
}
