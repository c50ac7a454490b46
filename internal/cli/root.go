package cli

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/appshelf/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Database   string
	KVStore    string

	// NewID allows overriding record id generation (for testing).
	// If nil, ids are UUIDv7.
	NewID func() string
	// Now allows overriding the clock used for dated exports (for testing).
	Now func() time.Time

	cfg *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the appshelf CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "appshelf",
		Short: "appshelf - a personal catalog of mobile apps",
		Long: `Keep a local, ordered catalog of the mobile apps you track.

Apps are stored in a SQLite database next to a small key/value file that
takes over when the database is unavailable. Catalogs written by earlier
versions are migrated on first use.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			cfg, err := opts.config()
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load configuration", err)
			}
			level, err := cfg.Level()
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load configuration", err)
			}
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), level))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.KVStore, "kv", "", "path to fallback key/value file (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewMoveCommand(opts))
	cmd.AddCommand(NewTagsCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}

// config resolves configuration once: file and environment first, then the
// --db and --kv flags.
func (o *RootOptions) config() (config.Config, error) {
	if o.cfg != nil {
		return *o.cfg, nil
	}
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if o.Database != "" {
		cfg.Database = o.Database
	}
	if o.KVStore != "" {
		cfg.KVStore = o.KVStore
	}
	o.cfg = &cfg
	return cfg, nil
}

func (o *RootOptions) newID() string {
	if o.NewID != nil {
		return o.NewID()
	}
	return uuid.Must(uuid.NewV7()).String()
}

func (o *RootOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
