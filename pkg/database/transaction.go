package database

import (
	"context"
	"database/sql"
	"fmt"
)

// TxFunc is executed inside a transaction.
type TxFunc func(*sql.Tx) error

// WithTransaction runs fn in a transaction on db. The transaction is rolled back when fn
// returns an error or panics, and committed otherwise.
func WithTransaction(ctx context.Context, db *sql.DB, fn TxFunc) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
