package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/appshelf/internal/catalog"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Tags []string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List apps in catalog order",
		Long: `List the apps in the catalog, in the order they were saved.

With --tag, only apps carrying at least one of the given tags are shown.

Examples:
  appshelf list
  appshelf list --tag social --tag tools
  appshelf list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "only show apps with this tag (repeatable)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	session, err := openCatalog(opts.RootOptions)
	if err != nil {
		return err
	}
	defer session.Close()

	all, err := session.store.GetAll(commandContext(cmd))
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStorage, "failed to read catalog", err)
	}
	records := catalog.FilterByTags(all, opts.Tags)

	return f.Success(records, func(w io.Writer) error {
		switch {
		case len(all) == 0:
			fmt.Fprintln(w, "No apps yet. Add one with `appshelf add`.")
			return nil
		case len(records) == 0:
			fmt.Fprintln(w, "No apps match the selected filters")
			return nil
		}
		return writeTable(w, records)
	})
}

// writeTable prints records as aligned columns.
func writeTable(w io.Writer, records []catalog.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPACKAGE\tTAGS\tICON")
	for _, r := range records {
		icon := "-"
		if r.HasIcon() {
			icon = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.PackageIdentifier, strings.Join(r.Categories, ", "), icon)
	}
	return tw.Flush()
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
