// commands.go implements the "resolvemcp lua" and "resolvemcp python"
// commands.
//
// Source comes from the argument, from --file, or from stdin when neither
// is given, so heredocs and pipes work without quoting.

package script

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jpl-au/resolvemcp/cmd"
	"github.com/jpl-au/resolvemcp/extension"
	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newLuaCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "lua [script]",
		Short: "Run a Lua script in Fusion",
		Long: `Run a Lua script through Fusion and print what it returns.

  resolvemcp lua 'return comp:GetAttrs().COMPS_Name'
  resolvemcp lua --file macros/rename.lua`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runner(Lua),
	}
	c.Flags().StringP(extension.FlagFile, "f", "", "Read the script from a file")
	return c
}

func (e *Extension) newPythonCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "python [code]",
		Short: "Run Python code against DaVinci Resolve",
		Long: `Run Python code in the scripting bridge with resolve, fusion,
project_manager, current_project, media_storage and media_pool bound.
Prints the value assigned to result, or whatever the code printed.

  resolvemcp python 'result = current_project.GetName()'
  resolvemcp python < report.py`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runner(Python),
	}
	c.Flags().StringP(extension.FlagFile, "f", "", "Read the code from a file")
	return c
}

// scriptJSON is the JSON shape of a script run.
type scriptJSON struct {
	Language string `json:"language"`
	Result   string `json:"result"`
}

func (e *Extension) runner(lang Language) func(*cobra.Command, []string) error {
	return func(c *cobra.Command, args []string) error {
		if !e.enabled {
			return cmd.PrintJSONError(ErrDisabled)
		}

		file, _ := c.Flags().GetString(extension.FlagFile)
		src, err := source(args, file, c.InOrStdin())
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		if strings.TrimSpace(src) == "" {
			return cmd.PrintJSONError(fmt.Errorf("no %s source given", lang.Name))
		}

		text, err := Run(c.Context(), e.host, lang, src)
		log.Event("script:"+lowerName(lang), "execute").Author(cmd.Author()).
			Detail("bytes", len(src)).
			Write(err)

		if err != nil {
			return cmd.HostError(err)
		}
		return cmd.Report(scriptJSON{Language: lowerName(lang), Result: text}, text)
	}
}

// source picks the script from the argument, the file, or stdin.
func source(args []string, file string, stdin io.Reader) (string, error) {
	switch {
	case len(args) > 0 && file != "":
		return "", fmt.Errorf("give the source as an argument or with --file, not both")
	case len(args) > 0:
		return args[0], nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(b), nil
	default:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
}

func lowerName(lang Language) string {
	return strings.ToLower(lang.Name)
}
