package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	sqlDB, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "store.db"))
	require.NoError(t, err)

	s := NewStore(sqlDB, DialectSQLite)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrate_Idempotent(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, s))
	require.NoError(t, Migrate(ctx, s))
	require.NoError(t, s.Ping(ctx))

	var count int
	found, err := s.DB().
		From("sqlite_master").
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{"type": "table", "name": []string{"books", "members"}}).
		ScanValContext(ctx, &count)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, count)
}

func TestMigrate_UnknownDialect(t *testing.T) {
	s := newSQLiteStore(t)
	s.dialect = "mysql"

	assert.Error(t, Migrate(context.Background(), s))
}

func TestContains_RendersPerDialect(t *testing.T) {
	pg := NewStore(nil, DialectPostgres)
	sql, args, err := pg.DB().From("books").Prepared(true).Where(pg.Contains("title", "Du")).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, sql, `strpos("title", $1) > 0`)
	assert.Equal(t, []interface{}{"Du"}, args)

	lite := NewStore(nil, DialectSQLite)
	sql, _, err = lite.DB().From("books").Prepared(true).Where(lite.Contains("title", "Du")).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, sql, "instr(`title`, ?) > 0")
}

func TestInsertReturningID_SQLite(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, s))

	for want := int64(1); want <= 2; want++ {
		id, err := s.InsertReturningID(ctx, s.DB().Insert("members").Rows(goqu.Record{
			"name":            "Ann",
			"email":           "ann@example.com",
			"membership_date": Nullable(nil),
		}))
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}
