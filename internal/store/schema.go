package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema generations:
// 0 - no database
// 1 - legacy_kv: untyped key/value pairs, the catalog blob under LegacyKey
// 2 - records keyed by id, meta holding the order index
const currentGeneration = 2

// upgradeStep creates the structures of one generation. Steps only create
// tables; moving data is migrate's job.
type upgradeStep struct {
	generation int
	name       string
	stmts      []string
}

// upgradeSteps are applied in ascending generation order. Every statement must
// be safe to run against a database that already has the structure.
var upgradeSteps = []upgradeStep{
	{
		generation: 1,
		name:       "legacy store",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS legacy_kv (
				key   TEXT PRIMARY KEY,
				value
			)`,
		},
	},
	{
		generation: 2,
		name:       "record and metadata stores",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS records (
				id   TEXT PRIMARY KEY,
				data TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS meta (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			)`,
		},
	},
}

// upgrade applies every step newer than the stored generation, up to and
// including target, in one transaction.
func upgrade(ctx context.Context, db *sql.DB, target int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upgrade: begin tx: %w", err)
	}
	defer tx.Rollback()

	version, err := generation(ctx, tx)
	if err != nil {
		return err
	}
	if version >= target {
		return nil
	}

	for _, step := range upgradeSteps {
		if step.generation <= version || step.generation > target {
			continue
		}
		for _, stmt := range step.stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("upgrade to generation %d (%s): %w", step.generation, step.name, err)
			}
		}
	}

	// PRAGMA does not accept bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", target)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upgrade: commit: %w", err)
	}
	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func generation(ctx context.Context, q queryRower) (int, error) {
	var version int
	if err := q.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("get user_version: %w", err)
	}
	return version, nil
}
