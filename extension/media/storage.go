// storage.go implements the media storage subcommands: volumes, browse and
// import.

package media

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/resolvemcp/cmd"
	"github.com/jpl-au/resolvemcp/extension"
	"github.com/jpl-au/resolvemcp/internal/format"
	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/jpl-au/resolvemcp/internal/validate"
	"github.com/spf13/cobra"
)

func (e *Extension) newVolumesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "volumes",
		Short: "List mounted media storage volumes",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			vols, err := e.host.Volumes(c.Context())
			if err != nil {
				return cmd.HostError(err)
			}
			if vols == nil {
				vols = []string{}
			}
			return cmd.Report(vols, format.Volumes(vols))
		},
	}
}

func (e *Extension) newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <path>",
		Short: "List sub-folders and files of a media storage path",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			l, err := e.host.Browse(c.Context(), args[0])
			if err != nil {
				return cmd.HostError(err)
			}
			return cmd.Report(l, format.Listing(l))
		},
	}
}

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import [path]...",
		Short: "Import files into the current media pool folder",
		Long: `Import files into the current media pool folder.

Paths come from the arguments and, with --file, from a file holding one
path per line ("-" reads standard input).

  resolvemcp media import A001.mov A002.mov
  find /Volumes/Media/Day1 -name '*.mov' | resolvemcp media import --file -`,
		RunE: e.runImport,
	}
	c.Flags().StringP(extension.FlagFile, "f", "", "Read paths from file, one per line (- for stdin)")
	return c
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	file, _ := c.Flags().GetString(extension.FlagFile)

	paths := args
	if file != "" {
		listed, err := readLines(file)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("read %s: %w", file, err))
		}
		paths = append(paths, listed...)
	}

	paths, err := validate.Paths(paths)
	if errors.Is(err, validate.ErrNoPaths) {
		return cmd.Failed("No file paths specified.")
	}

	stop := cmd.Spin(fmt.Sprintf("Importing %d files", len(paths)))
	n, err := e.host.ImportMedia(c.Context(), paths)
	stop()

	log.Event("media:import", "import").Author(cmd.Author()).
		Detail("requested", len(paths)).
		Detail("imported", n).
		Write(cmd.Outcome(err, n > 0))

	if err != nil {
		return cmd.HostError(err)
	}
	if n == 0 {
		return cmd.Failed("Failed to import media files. Check that the file paths are valid.")
	}
	msg := fmt.Sprintf("Successfully imported %d media files.", n)
	return cmd.Report(cmd.Result{Count: n, Message: msg}, msg)
}

// readLines returns the lines of name, or of stdin when name is "-".
func readLines(name string) ([]string, error) {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
