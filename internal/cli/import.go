package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// ImportResult describes a completed import.
type ImportResult struct {
	Source  string `json:"source"`
	Records int    `json:"records"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the catalog with an exported JSON file",
		Long: `Replace the whole catalog with the apps in a JSON export. This is not
a merge: apps missing from the file are gone afterwards. Export first if you
want to keep them.

Use - to read from stdin.

Examples:
  appshelf import backup.json
  cat backup.json | appshelf import -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runImport(opts *RootOptions, source string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	data, err := readSource(source, cmd.InOrStdin())
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to read import data", err)
	}
	f.VerboseLog("read %d bytes from %s", len(data), source)

	session, err := openCatalog(opts)
	if err != nil {
		return err
	}
	defer session.Close()

	records, err := session.store.Import(commandContext(cmd), string(data))
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeImport, "import rejected", err)
	}

	result := ImportResult{Source: source, Records: len(records)}
	return f.Success(result, func(w io.Writer) error {
		fmt.Fprintf(w, "Imported %d apps from %s\n", len(records), source)
		return nil
	})
}

func readSource(source string, stdin io.Reader) ([]byte, error) {
	if source == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(source)
}
