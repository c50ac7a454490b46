package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/appshelf/internal/catalog"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
	Dated  bool
}

// ExportResult describes an export written to a file.
type ExportResult struct {
	Path string `json:"path"`
	Size int    `json:"size"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as JSON",
		Long: `Export the whole catalog as a pretty-printed JSON array.

Without --output the JSON is written to stdout as-is. With --dated the file
is named android-apps-YYYY-MM-DD.json, inside the --output directory if one
is given.

Examples:
  appshelf export > backup.json
  appshelf export -o backup.json
  appshelf export --dated -o ~/backups`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "file to write (directory with --dated)")
	cmd.Flags().BoolVar(&opts.Dated, "dated", false, "name the file after today's date")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	session, err := openCatalog(opts.RootOptions)
	if err != nil {
		return err
	}
	defer session.Close()

	data, err := session.store.Export(commandContext(cmd))
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStorage, "failed to export catalog", err)
	}

	f.VerboseLog("exported %d bytes", len(data))

	path := opts.Output
	if opts.Dated {
		path = filepath.Join(opts.Output, catalog.ExportFileName(opts.now()))
	}
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), data)
		return err
	}

	if err := os.WriteFile(path, []byte(data+"\n"), 0o644); err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to write export", err)
	}

	result := ExportResult{Path: path, Size: len(data) + 1}
	return f.Success(result, func(w io.Writer) error {
		fmt.Fprintf(w, "Exported catalog to %s\n", path)
		return nil
	})
}
