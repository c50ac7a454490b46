package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/appshelf/internal/catalog"
)

// NewTagsCommand creates the tags command.
func NewTagsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the tags used in the catalog",
		Long: `List every tag used by at least one app, sorted alphabetically with
accents and case handled the way a reader expects.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTags(rootOpts, cmd)
		},
	}

	return cmd
}

func runTags(opts *RootOptions, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	session, err := openCatalog(opts)
	if err != nil {
		return err
	}
	defer session.Close()

	records, err := session.store.GetAll(commandContext(cmd))
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStorage, "failed to read catalog", err)
	}
	tags := catalog.AllTags(records)

	return f.Success(tags, func(w io.Writer) error {
		for _, tag := range tags {
			fmt.Fprintln(w, tag)
		}
		return nil
	})
}
