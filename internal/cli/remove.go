package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/appshelf/internal/catalog"
)

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove an app from the catalog",
		Long: `Remove an app from the catalog. The rest of the catalog keeps its order.

Example:
  appshelf remove 0190a6b2-...`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRemove(opts *RootOptions, id string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	ctx := commandContext(cmd)

	session, err := openCatalog(opts)
	if err != nil {
		return err
	}
	defer session.Close()

	records, err := session.store.GetAll(ctx)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStorage, "failed to read catalog", err)
	}
	i := catalog.IndexOf(records, id)
	if i < 0 {
		return f.Fail(ExitFailure, ErrCodeNotFound, fmt.Sprintf("app %q not found", id), nil)
	}
	removed := records[i]

	records = slices.Delete(records, i, i+1)
	if err := session.store.SaveAll(ctx, records); err != nil {
		return f.Fail(ExitCommandError, ErrCodeStorage, "failed to save catalog", err)
	}

	return f.Success(removed, func(w io.Writer) error {
		fmt.Fprintf(w, "Removed %s (%s)\n", removed.Name, removed.ID)
		return nil
	})
}
