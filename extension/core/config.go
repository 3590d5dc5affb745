// config.go implements the "resolvemcp config" command for configuration
// management.
//
// Config follows a cascade model similar to git: local config
// (.resolvemcp/config.yaml) takes precedence over global
// (~/.resolvemcp/config.yaml). The --local flag forces the local file even
// if it doesn't exist yet, so a project directory can pin its own
// interpreter or scripting path.

package core

import (
	"fmt"

	"github.com/jpl-au/resolvemcp/cmd"
	"github.com/jpl-au/resolvemcp/extension"
	"github.com/jpl-au/resolvemcp/internal/config"
	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/spf13/cobra"
)

// configValue is the JSON shape of a single key.
type configValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Scope string `json:"scope,omitempty"`
}

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  resolvemcp config                          # show config
  resolvemcp config python.path              # show python.path
  resolvemcp config python.path /usr/bin/python3.11
  resolvemcp config scripting.enabled false  # hide execute_python/execute_lua

Configuration locations:
  Global: ~/.resolvemcp/config.yaml
  Local:  .resolvemcp/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
		Args: cobra.MaximumNArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.ValidKeys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.resolvemcp/config.yaml)")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)

	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		log.Event("core:config", "list").Author(cmd.Author()).Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(cfg.All())
		}
		for _, k := range config.ValidKeys() {
			v, _ := cfg.Get(k)
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, v)
		}

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Author(cmd.Author()).Target(args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(configValue{Key: args[0], Value: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Author(cmd.Author()).Target(args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		// Value not logged; paths can identify the user's machine layout.
		log.Event("core:config", "set").Author(cmd.Author()).Target(args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(configValue{Key: args[0], Value: args[1], Scope: scopeName})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], args[1], scopeName)
	}
	return nil
}
