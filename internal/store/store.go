package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/sync/singleflight"

	"github.com/roach88/appshelf/internal/kvstore"
)

// LegacyKey is the fixed key of the catalog blob in legacy_kv and in the
// key/value store.
const LegacyKey = "android-apps-data"

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("store: closed")

// Store is the catalog persistence engine.
//
// The database handle is opened lazily on first use and shared by every
// operation for the lifetime of the Store. Concurrent first callers wait on
// the same open instead of racing to open their own.
type Store struct {
	path   string
	kv     kvstore.Store
	logger *slog.Logger

	opening singleflight.Group

	mu     sync.Mutex
	db     *sql.DB
	opens  int
	closed bool

	migrateMu sync.Mutex
	migrated  bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New returns a Store backed by the SQLite file at path, falling back to kv.
// Nothing is opened until the first operation. A nil kv gets an in-memory
// store, which only lasts as long as the process.
//
// The Store does not own kv; closing the Store leaves kv open.
func New(path string, kv kvstore.Store, opts ...Option) *Store {
	if kv == nil {
		kv = kvstore.NewMemory()
	}
	s := &Store{
		path:   path,
		kv:     kv,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the database connection if it was opened.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// conn returns the shared database handle, opening it on first use.
// A failed open is not remembered; the next call tries again. The open is
// shared by every waiting caller, so it ignores cancellation of ctx.
func (s *Store) conn(ctx context.Context) (*sql.DB, error) {
	if db, err := s.cached(); db != nil || err != nil {
		return db, err
	}

	v, err, _ := s.opening.Do("open", func() (any, error) {
		if db, err := s.cached(); db != nil || err != nil {
			return db, err
		}

		db, err := openDatabase(context.WithoutCancel(ctx), s.path)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			db.Close()
			return nil, ErrClosed
		}
		s.db = db
		s.opens++
		s.logger.Debug("catalog database opened", "path", s.path, "generation", currentGeneration)
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.DB), nil
}

func (s *Store) cached() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.db, nil
}

// openDatabase opens the SQLite file, applies pragmas and brings the schema
// up to the current generation.
func openDatabase(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := upgrade(ctx, db, currentGeneration); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to upgrade schema: %w", err)
	}

	return db, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}
