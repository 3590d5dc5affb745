/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// PersistentPreRunE connects extensions to DaVinci Resolve lazily: only
// commands that talk to the host trigger extension init, so guide, config
// and version work on machines without Resolve installed.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resolvemcp",
	Short: "MCP server and CLI for DaVinci Resolve",
	Long: `Exposes DaVinci Resolve's scripting API to LLM clients over the Model Context
Protocol, and to humans through the same operations on the command line.

Run "resolvemcp serve" from your MCP client configuration.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		// A missing .env is normal; RESOLVE_SCRIPT_API and friends may
		// come from the real environment instead.
		_ = godotenv.Load()

		if author == "" {
			author = detectAuthor()
		}

		if !noHostCommands[topLevelCmdName(cmd)] {
			if err := initExtensions(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return fmt.Errorf("initialise extensions: %w", err)
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "resolvemcp timeline use 2", returns "timeline".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, registers extensions, executes the command, and
// stops the bridge process before exit. Exit code 1 indicates error.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	registerExtensions()
	err := rootCmd.Execute()

	if extHost != nil {
		if closeErr := extHost.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: stopping bridge: %v\n", closeErr)
		}
	}

	if err != nil {
		log.Close()
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
