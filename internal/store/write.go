package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/appshelf/internal/catalog"
)

// orderKey is the meta key holding the order index.
const orderKey = "order"

// SaveAll replaces the whole catalog with records, in the given order.
//
// The database write is one transaction: clear, insert, rewrite the order
// index. If it fails the collection is written to the key/value store as a
// single blob instead. An error is returned only when every tier failed, or
// when ctx ends before a tier succeeded; nothing falls back in that case.
func (s *Store) SaveAll(ctx context.Context, records []catalog.Record) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("save all: %w", err)
	}

	var failures []error
	for _, t := range s.tiers() {
		err := t.replace(ctx, records)
		if err != nil && (interrupted(err) || ctx.Err() != nil) {
			return fmt.Errorf("save all: %s: %w", t.name, errors.Join(err, ctx.Err()))
		}
		if err == nil {
			if len(failures) > 0 {
				s.logger.Warn("catalog saved to fallback tier", "tier", t.name, "records", len(records))
			}
			return nil
		}
		s.logger.Warn("catalog write failed", "tier", t.name, "error", err)
		failures = append(failures, fmt.Errorf("%s: %w", t.name, err))
	}
	return fmt.Errorf("save all: %w", errors.Join(failures...))
}

// replaceDatabase runs the write algorithm against the database tier.
func (s *Store) replaceDatabase(ctx context.Context, records []catalog.Record) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace all: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := replaceAllTx(ctx, tx, records); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace all: commit: %w", err)
	}
	return nil
}

// replaceAllTx clears records, inserts the collection and rewrites the order
// index inside tx. Records sharing an id collapse to the last one written;
// the order index keeps the ids exactly as supplied.
//
// A full replace supersedes any legacy blob, so the legacy_kv entry is
// removed in the same transaction.
func replaceAllTx(ctx context.Context, tx *sql.Tx, records []catalog.Record) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("replace all: clear: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM legacy_kv WHERE key = ?`, LegacyKey); err != nil {
		return fmt.Errorf("replace all: delete legacy entry: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO records (id, data) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("replace all: prepare: %w", err)
	}
	defer stmt.Close()

	ids := make([]string, 0, len(records))
	for _, r := range records {
		data, err := marshalRecord(r)
		if err != nil {
			return fmt.Errorf("replace all: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, r.ID, data); err != nil {
			return fmt.Errorf("replace all: insert %q: %w", r.ID, err)
		}
		ids = append(ids, r.ID)
	}

	order, err := marshalOrder(ids)
	if err != nil {
		return fmt.Errorf("replace all: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, orderKey, order)
	if err != nil {
		return fmt.Errorf("replace all: write order index: %w", err)
	}

	return nil
}
