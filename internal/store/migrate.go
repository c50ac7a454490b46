package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Legacy data sources, in lookup order.
const (
	sourceLegacyTable = "legacy_kv"
	sourceKVStore     = "kvstore"
)

// ensureMigrated runs migrate once per Store. Failures are logged and left
// for the next read to retry; they never reach the caller, because the read
// path falls back on its own.
func (s *Store) ensureMigrated(ctx context.Context, db *sql.DB) {
	s.migrateMu.Lock()
	defer s.migrateMu.Unlock()

	if s.migrated {
		return
	}
	if err := s.migrate(ctx, db); err != nil {
		s.logger.Warn("legacy migration failed", "error", err)
		return
	}
	s.migrated = true
}

// migrate copies the legacy catalog blob into records and the order index.
//
// Nothing happens when the catalog already lives in generation 2: records is
// non-empty, or an order index was written (an emptied catalog must not be
// refilled from stale legacy data). The legacy_kv entry is removed in the
// same transaction as the copy; the key/value store entry is left alone.
func (s *Store) migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate: begin tx: %w", err)
	}
	defer tx.Rollback()

	done, err := alreadyMigrated(ctx, tx)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	blob, source, err := s.findLegacy(ctx, tx)
	if err != nil {
		return err
	}
	if source == "" {
		return nil
	}

	records, err := unmarshalRecords(blob)
	if errors.Is(err, ErrInvalidFormat) {
		s.logger.Debug("legacy catalog is not an array, ignoring", "source", source)
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate: parse %s: %w", source, err)
	}

	// replaceAllTx also removes the legacy_kv entry.
	if err := replaceAllTx(ctx, tx, records); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit: %w", err)
	}

	s.logger.Info("migrated legacy catalog", "source", source, "records", len(records))
	return nil
}

func alreadyMigrated(ctx context.Context, tx *sql.Tx) (bool, error) {
	var done bool
	err := tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM records)
		    OR EXISTS (SELECT 1 FROM meta WHERE key = ?)
	`, orderKey).Scan(&done)
	if err != nil {
		return false, fmt.Errorf("migrate: check records: %w", err)
	}
	return done, nil
}

// findLegacy returns the legacy blob and where it came from. source is empty
// when neither place holds one.
func (s *Store) findLegacy(ctx context.Context, tx *sql.Tx) (blob []byte, source string, err error) {
	var raw []byte
	err = tx.QueryRowContext(ctx, `SELECT value FROM legacy_kv WHERE key = ?`, LegacyKey).Scan(&raw)
	switch {
	case err == nil && raw != nil:
		return raw, sourceLegacyTable, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return nil, "", fmt.Errorf("migrate: read legacy_kv: %w", err)
	}

	value, ok, err := s.kv.Get(LegacyKey)
	if err != nil {
		return nil, "", fmt.Errorf("migrate: read kvstore: %w", err)
	}
	if !ok {
		return nil, "", nil
	}
	return []byte(value), sourceKVStore, nil
}
