package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/appshelf/internal/catalog"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Name        string
	Title       string
	Package     string
	Categories  []string
	Description string
	IconFile    string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an app to the end of the catalog",
		Long: `Add an app to the end of the catalog.

The name can be given directly with --name, or taken from a store share
title with --title: the text inside the first pair of quotes is used.

Examples:
  appshelf add --name Signal --package org.thoughtcrime.securesms --category social
  appshelf add --title "Check out 'Signal' on Google Play" --package org.thoughtcrime.securesms
  appshelf add --name F-Droid --package org.fdroid.fdroid --icon-file fdroid.png`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "app name")
	cmd.Flags().StringVar(&opts.Title, "title", "", "store share title to take the name from")
	cmd.Flags().StringVar(&opts.Package, "package", "", "package identifier (required)")
	cmd.Flags().StringArrayVar(&opts.Categories, "category", nil, "category tag (repeatable)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "free-form description")
	cmd.Flags().StringVar(&opts.IconFile, "icon-file", "", "image file to embed as the icon")
	_ = cmd.MarkFlagRequired("package")
	cmd.MarkFlagsMutuallyExclusive("name", "title")

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	name := opts.Name
	if name == "" && opts.Title != "" {
		name = catalog.ExtractAppName(opts.Title)
	}

	record := catalog.Record{
		ID:                opts.newID(),
		Name:              name,
		PackageIdentifier: opts.Package,
		Categories:        dedupe(opts.Categories),
		Description:       opts.Description,
	}
	if opts.IconFile != "" {
		icon, err := readIcon(opts.IconFile)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to read icon", err)
		}
		record.Icon = &icon
	}
	if err := record.Validate(); err != nil {
		return f.Fail(ExitFailure, ErrCodeInvalid, "invalid app", err)
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
	records = append(records, record)
	if err := session.store.SaveAll(ctx, records); err != nil {
		return f.Fail(ExitCommandError, ErrCodeStorage, "failed to save catalog", err)
	}

	return f.Success(record, func(w io.Writer) error {
		fmt.Fprintf(w, "Added %s (%s)\n", record.Name, record.ID)
		return nil
	})
}

// readIcon loads an image file as a data URI.
func readIcon(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return catalog.IconDataURI(data)
}

// dedupe drops repeated and empty tags, keeping first occurrences in order.
// Never returns nil, so records always carry a category array.
func dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := []string{}
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
