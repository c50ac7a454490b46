package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/appshelf/internal/catalog"
)

// MoveOptions holds flags for the move command.
type MoveOptions struct {
	*RootOptions
	To int
}

// NewMoveCommand creates the move command.
func NewMoveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MoveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move an app to another position",
		Long: `Move an app to a 0-based position in the catalog. Positions past the
end move the app to the end.

Examples:
  appshelf move 0190a6b2-... --to 0`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.To, "to", 0, "target position, 0-based (required)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runMove(opts *MoveOptions, id string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	if opts.To < 0 {
		return NewExitError(ExitCommandError, "--to must not be negative")
	}

	session, err := openCatalog(opts.RootOptions)
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

	records = moveRecord(records, i, opts.To)
	if err := session.store.SaveAll(ctx, records); err != nil {
		return f.Fail(ExitCommandError, ErrCodeStorage, "failed to save catalog", err)
	}

	pos := catalog.IndexOf(records, id)
	return f.Success(map[string]any{"id": id, "position": pos}, func(w io.Writer) error {
		fmt.Fprintf(w, "Moved %s to position %d\n", id, pos)
		return nil
	})
}

// moveRecord moves records[from] to index to, clamped to the slice.
func moveRecord(records []catalog.Record, from, to int) []catalog.Record {
	r := records[from]
	records = slices.Delete(records, from, from+1)
	to = min(to, len(records))
	return slices.Insert(records, to, r)
}
