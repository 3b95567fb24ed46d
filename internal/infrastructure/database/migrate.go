package database

import (
	"context"
	"database/sql"
	"fmt"

	pkgdb "library-api/pkg/database"
)

var schema = map[string][]string{
	DialectPostgres: {
		`CREATE TABLE IF NOT EXISTS books (
			id             BIGSERIAL PRIMARY KEY,
			title          TEXT NOT NULL,
			author         TEXT NOT NULL,
			published_date TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS members (
			id              BIGSERIAL PRIMARY KEY,
			name            TEXT NOT NULL,
			email           TEXT NOT NULL,
			membership_date TEXT
		)`,
	},
	// AUTOINCREMENT keeps ids of deleted rows from being handed out again
	DialectSQLite: {
		`CREATE TABLE IF NOT EXISTS books (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			title          TEXT NOT NULL,
			author         TEXT NOT NULL,
			published_date TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS members (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			name            TEXT NOT NULL,
			email           TEXT NOT NULL,
			membership_date TEXT
		)`,
	},
}

// Migrate creates the books and members tables if they do not exist yet, in one transaction.
func Migrate(ctx context.Context, s *Store) error {
	stmts, ok := schema[s.Dialect()]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", s.Dialect())
	}

	return pkgdb.WithTransaction(ctx, s.sqlDB, func(tx *sql.Tx) error {
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		return nil
	})
}
