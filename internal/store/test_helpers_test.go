package store

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/roach88/appshelf/internal/catalog"
	"github.com/roach88/appshelf/internal/kvstore"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// createTestStore creates a store over a fresh database file and an empty
// in-memory key/value store.
func createTestStore(t *testing.T) (*Store, *kvstore.Memory, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	kv := kvstore.NewMemory()
	return openTestStore(t, path, kv), kv, path
}

// openTestStore opens a store over an existing path and key/value store.
func openTestStore(t *testing.T, path string, kv kvstore.Store) *Store {
	t.Helper()
	s := New(path, kv, WithLogger(discardLogger))
	t.Cleanup(func() { s.Close() })
	return s
}

// seedGeneration1 creates a generation-1 database at path holding blob under
// LegacyKey in legacy_kv.
func seedGeneration1(t *testing.T, path, blob string) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	defer db.Close()

	if err := upgrade(context.Background(), db, 1); err != nil {
		t.Fatalf("upgrade(1) failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO legacy_kv (key, value) VALUES (?, ?)`, LegacyKey, blob); err != nil {
		t.Fatalf("seed legacy_kv failed: %v", err)
	}
}

// rawDB returns the store's open database handle.
func rawDB(t *testing.T, s *Store) *sql.DB {
	t.Helper()
	db, err := s.conn(context.Background())
	if err != nil {
		t.Fatalf("conn() failed: %v", err)
	}
	return db
}

func testRecords() []catalog.Record {
	return []catalog.Record{
		{
			ID:                "c3",
			Name:              "Signal",
			PackageIdentifier: "org.thoughtcrime.securesms",
			Categories:        []string{"social", "privacy"},
			Description:       "Private messenger",
			Icon:              catalog.StringPtr("data:image/png;base64,iVBORw0KGgo="),
		},
		{
			ID:                "a1",
			Name:              "F-Droid",
			PackageIdentifier: "org.fdroid.fdroid",
			Categories:        []string{},
			Description:       "",
		},
		{
			ID:                "b2",
			Name:              "Blank Icon",
			PackageIdentifier: "com.example.blank",
			Categories:        []string{"tools", "tools"},
			Description:       "duplicate tags are kept",
			Icon:              catalog.StringPtr(""),
		},
	}
}

func ids(records []catalog.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
