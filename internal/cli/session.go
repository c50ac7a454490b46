package cli

import (
	"log/slog"

	"github.com/roach88/appshelf/internal/kvstore"
	"github.com/roach88/appshelf/internal/store"
)

// catalogSession is an opened catalog and the key/value file behind it.
type catalogSession struct {
	store *store.Store
	kv    kvstore.Store
}

// openCatalog opens the catalog named by the resolved configuration.
//
// If the key/value file cannot be opened the session continues with an
// in-memory one: the database still works, but writes that fall back will
// not outlive the process.
func openCatalog(opts *RootOptions) (*catalogSession, error) {
	cfg, err := opts.config()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to prepare data directory", err)
	}

	logger := slog.Default()

	var kv kvstore.Store
	bolt, err := kvstore.OpenBolt(cfg.KVStore, kvstore.WithLogger(logger))
	if err != nil {
		logger.Warn("fallback store unavailable, using memory", "path", cfg.KVStore, "error", err)
		kv = kvstore.NewMemory()
	} else {
		kv = bolt
	}

	logger.Debug("opening catalog", "db", cfg.Database, "kv", cfg.KVStore)
	return &catalogSession{
		store: store.New(cfg.Database, kv, store.WithLogger(logger)),
		kv:    kv,
	}, nil
}

// Close closes the store, then the key/value file.
func (c *catalogSession) Close() {
	if err := c.store.Close(); err != nil {
		slog.Error("error closing catalog", "error", err)
	}
	if err := c.kv.Close(); err != nil {
		slog.Error("error closing fallback store", "error", err)
	}
}
