package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/doug-martin/goqu/v9/exp"
)

// goqu dialect names
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

const colID = "id"

// Store is the relational store shared by the repositories: a database/sql handle
// plus the goqu dialect used to render predicate queries for it.
type Store struct {
	sqlDB   *sql.DB
	dialect string
	db      *goqu.Database
}

// NewStore wraps sqlDB for the given goqu dialect.
func NewStore(sqlDB *sql.DB, dialect string) *Store {
	return &Store{
		sqlDB:   sqlDB,
		dialect: dialect,
		db:      goqu.New(dialect, sqlDB),
	}
}

// DB returns the goqu database used to build and execute queries.
func (s *Store) DB() *goqu.Database {
	return s.db
}

func (s *Store) Dialect() string {
	return s.dialect
}

// Contains is a case-sensitive substring predicate on column.
// LIKE is avoided because SQLite's LIKE folds ASCII case and both engines treat % and _ as wildcards.
func (s *Store) Contains(column, term string) exp.Expression {
	if s.dialect == DialectPostgres {
		return goqu.L("strpos(?, ?) > 0", goqu.I(column), term)
	}
	return goqu.L("instr(?, ?) > 0", goqu.I(column), term)
}

// InsertReturningID executes ds and returns the id assigned by the store.
func (s *Store) InsertReturningID(ctx context.Context, ds *goqu.InsertDataset) (int64, error) {
	if s.dialect == DialectPostgres {
		var id int64
		found, err := ds.Returning(goqu.C(colID)).Executor().ScanValContext(ctx, &id)
		if err != nil {
			return 0, err
		}
		if !found {
			return 0, fmt.Errorf("insert returned no id")
		}
		return id, nil
	}

	res, err := ds.Executor().ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Ping verifies the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.sqlDB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.sqlDB.Close()
}

// Nullable turns a nil *string into an untyped nil so goqu renders NULL.
func Nullable(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// RowsAffected reports the number of rows touched by an update or delete.
func RowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
