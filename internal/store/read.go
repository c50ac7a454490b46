package store

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/roach88/appshelf/internal/catalog"
)

// GetAll returns the whole catalog in user order.
//
// Legacy data is migrated first if needed. If the database cannot be opened
// or read, the key/value store blob is returned instead (empty if absent).
// An error is returned only when every tier failed, or when ctx ends before a
// tier succeeded. The result is never nil on success.
func (s *Store) GetAll(ctx context.Context) ([]catalog.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("get all: %w", err)
	}

	var failures []error
	for _, t := range s.tiers() {
		records, err := t.load(ctx)
		if err != nil && (interrupted(err) || ctx.Err() != nil) {
			return nil, fmt.Errorf("get all: %s: %w", t.name, errors.Join(err, ctx.Err()))
		}
		if err == nil {
			if len(failures) > 0 {
				s.logger.Warn("catalog read from fallback tier", "tier", t.name, "records", len(records))
			}
			return records, nil
		}
		s.logger.Warn("catalog read failed", "tier", t.name, "error", err)
		failures = append(failures, fmt.Errorf("%s: %w", t.name, err))
	}
	return nil, fmt.Errorf("get all: %w", errors.Join(failures...))
}

// loadDatabase runs the read algorithm against the database tier.
func (s *Store) loadDatabase(ctx context.Context) ([]catalog.Record, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	s.ensureMigrated(ctx, db)

	tx, err := db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("read all: begin tx: %w", err)
	}
	defer tx.Rollback()

	records, err := readRecords(ctx, tx)
	if err != nil {
		return nil, err
	}
	order, err := readOrder(ctx, tx)
	if err != nil {
		return nil, err
	}

	sortByOrder(records, order)
	return records, nil
}

// readRecords returns every stored record in enumeration (id) order.
func readRecords(ctx context.Context, tx *sql.Tx) ([]catalog.Record, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, data FROM records ORDER BY id COLLATE BINARY ASC`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []catalog.Record{}
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r, err := unmarshalRecord(data)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", id, err)
		}
		r.ID = id
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// readOrder returns the order index, or nil if none was ever written.
func readOrder(ctx context.Context, q queryRower) ([]string, error) {
	var data string
	err := q.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, orderKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order index: %w", err)
	}
	return unmarshalOrder(data)
}

// unranked sorts after every real position in an order index.
const unranked = math.MaxInt

// sortByOrder stable-sorts records by their first position in order.
// Records absent from order keep their relative order at the end.
func sortByOrder(records []catalog.Record, order []string) {
	rank := make(map[string]int, len(order))
	for i, id := range order {
		if _, ok := rank[id]; !ok {
			rank[id] = i
		}
	}

	rankOf := func(r catalog.Record) int {
		if i, ok := rank[r.ID]; ok {
			return i
		}
		return unranked
	}

	slices.SortStableFunc(records, func(a, b catalog.Record) int {
		return cmp.Compare(rankOf(a), rankOf(b))
	})
}
