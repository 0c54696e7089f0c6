package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// DDL is kept portable across the two supported drivers: TEXT primary keys,
// plain column types, no server-side defaults for generated values. One
// statement per entry; pgx rejects multi-statement Exec.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS employees (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS business_cards (
	id TEXT PRIMARY KEY,
	image_path TEXT NOT NULL,
	organization TEXT NOT NULL DEFAULT '',
	department TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	telephone TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	fax TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	employee_id TEXT REFERENCES employees(id),
	created_at TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_business_cards_created_at ON business_cards(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_business_cards_employee_id ON business_cards(employee_id)`,
}

// EnsureSchema creates the employees and business_cards tables if missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range schemaDDL {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute schema ddl: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
