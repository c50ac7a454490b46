package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/appshelf/internal/catalog"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Name        string
	Package     string
	Categories  []string
	Description string
	IconFile    string
	ClearIcon   bool
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an app in place",
		Long: `Change the fields of one app. Only the flags given are changed; the
app keeps its id and its position in the catalog.

Passing --category replaces all tags of the app.

Examples:
  appshelf edit 0190a6b2-... --description "Open source app store"
  appshelf edit 0190a6b2-... --category tools --category foss
  appshelf edit 0190a6b2-... --clear-icon`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "app name")
	cmd.Flags().StringVar(&opts.Package, "package", "", "package identifier")
	cmd.Flags().StringArrayVar(&opts.Categories, "category", nil, "category tag, replaces existing tags (repeatable)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "free-form description")
	cmd.Flags().StringVar(&opts.IconFile, "icon-file", "", "image file to embed as the icon")
	cmd.Flags().BoolVar(&opts.ClearIcon, "clear-icon", false, "remove the icon")
	cmd.MarkFlagsMutuallyExclusive("icon-file", "clear-icon")

	return cmd
}

func runEdit(opts *EditOptions, id string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)
	flags := cmd.Flags()

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

	record := records[i].Clone()
	if flags.Changed("name") {
		record.Name = opts.Name
	}
	if flags.Changed("package") {
		record.PackageIdentifier = opts.Package
	}
	if flags.Changed("category") {
		record.Categories = dedupe(opts.Categories)
	}
	if flags.Changed("description") {
		record.Description = opts.Description
	}
	switch {
	case opts.IconFile != "":
		icon, err := readIcon(opts.IconFile)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to read icon", err)
		}
		record.Icon = &icon
	case opts.ClearIcon:
		record.Icon = nil
	}
	if err := record.Validate(); err != nil {
		return f.Fail(ExitFailure, ErrCodeInvalid, "invalid app", err)
	}

	records[i] = record
	if err := session.store.SaveAll(ctx, records); err != nil {
		return f.Fail(ExitCommandError, ErrCodeStorage, "failed to save catalog", err)
	}

	return f.Success(record, func(w io.Writer) error {
		fmt.Fprintf(w, "Updated %s (%s)\n", record.Name, record.ID)
		return nil
	})
}
