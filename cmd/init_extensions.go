/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Extensions register during init() but aren't initialised until the first
// command that needs DaVinci Resolve runs. The bridge client is created
// once and shared by all extensions through the Context; it does not start
// the bridge process until the first host call.

package cmd

import (
	"log/slog"
	"os"
	"sync"

	"github.com/jpl-au/resolvemcp/extension"
	"github.com/jpl-au/resolvemcp/internal/config"
	"github.com/jpl-au/resolvemcp/internal/mcp"
	"github.com/jpl-au/resolvemcp/internal/resolve"
)

// noHostCommands lists commands that bypass host initialisation.
// Built from extension-declared hostless commands.
var noHostCommands map[string]bool

func buildNoHostCommands() map[string]bool {
	cmds := map[string]bool{
		"help":       true,
		"completion": true,
	}
	for _, ext := range extension.All() {
		if h, ok := ext.(extension.Hostless); ok {
			for _, name := range h.NoHostCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extHost    *resolve.Client
	initOnce   sync.Once
	initErr    error
)

// initExtensions creates the bridge client and injects it into extensions.
func initExtensions() error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		// Commands report connection failures themselves; the bridge's
		// own warnings are only wanted with -v.
		level := slog.LevelError
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		extHost = resolve.New(mcp.ClientOptions(cfg, logger))
		extContext = extension.NewContext(extHost, cfg)

		for _, ext := range extension.All() {
			if ie, ok := ext.(extension.Initializable); ok {
				if err := ie.Init(extContext); err != nil {
					initErr = err
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		noHostCommands = buildNoHostCommands()
	})
}
