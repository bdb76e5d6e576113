package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/sqlite"
	"github.com/stretchr/testify/require"
)

func newDatabase(t *testing.T) (*sqlite.Database, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "school.db")
	require.NoError(t, sqlite.Create(path))

	db, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)

	return db, path
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.db")
	require.NoError(t, sqlite.Create(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Zero(t, info.Size())

	require.Error(t, sqlite.Create(path), "existing files are not overwritten")
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	_, err := sqlite.Open(ctx, filepath.Join(dir, "missing.db"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(errors.Cause(err)))

	_, err = sqlite.Open(ctx, dir)
	require.ErrorContains(t, err, "directory")
}

func TestDatabase_Tables(t *testing.T) {
	ctx := context.Background()
	db, path := newDatabase(t)
	defer func() { require.NoError(t, db.Close(ctx, false)) }()

	require.Equal(t, path, db.Path())

	_, err := db.ExecContext(ctx, "CREATE TABLE students (id INTEGER PRIMARY KEY, name TEXT)")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `CREATE TABLE "odd ""name""" (x)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "CREATE TABLE classes (id INTEGER, title TEXT, room TEXT)")
	require.NoError(t, err)

	tables, err := db.Tables(ctx)
	require.NoError(t, err)
	require.Equal(t, []sqlite.Table{
		{Name: "classes", Columns: []string{"id", "title", "room"}},
		{Name: `odd "name"`, Columns: []string{"x"}},
		{Name: "students", Columns: []string{"id", "name"}},
	}, tables)
}

func TestDatabase_TablesNameWithQuotes(t *testing.T) {
	ctx := context.Background()
	db, _ := newDatabase(t)
	defer func() { require.NoError(t, db.Close(ctx, false)) }()

	_, err := db.ExecContext(ctx, "CREATE TABLE x (plain)")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `CREATE TABLE """x""" (quoted)`)
	require.NoError(t, err)

	tables, err := db.Tables(ctx)
	require.NoError(t, err)
	require.Equal(t, []sqlite.Table{
		{Name: `"x"`, Columns: []string{"quoted"}},
		{Name: "x", Columns: []string{"plain"}},
	}, tables)
}

func TestDatabase_TablesEmpty(t *testing.T) {
	ctx := context.Background()
	db, _ := newDatabase(t)
	defer func() { require.NoError(t, db.Close(ctx, false)) }()

	tables, err := db.Tables(ctx)
	require.NoError(t, err)
	require.Empty(t, tables)
}

func TestDatabase_ForeignKeys(t *testing.T) {
	ctx := context.Background()
	db, _ := newDatabase(t)
	defer func() { require.NoError(t, db.Close(ctx, false)) }()

	rows, err := db.QueryContext(ctx, "PRAGMA foreign_keys")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	require.True(t, rows.Next())
	var enabled int
	require.NoError(t, rows.Scan(&enabled))
	require.Equal(t, 1, enabled)
}

func TestDatabase_CloseCommitsOpenTransaction(t *testing.T) {
	ctx := context.Background()
	db, path := newDatabase(t)

	_, err := db.ExecContext(ctx, "CREATE TABLE t (a)")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "BEGIN")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO t VALUES (1)")
	require.NoError(t, err)
	require.NoError(t, db.Close(ctx, true))

	db, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close(ctx, false)) }()

	rows, err := db.QueryContext(ctx, "SELECT count(*) FROM t")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	require.True(t, rows.Next())
	var n int
	require.NoError(t, rows.Scan(&n))
	require.Equal(t, 1, n)
}

func TestDatabase_CloseWithoutTransaction(t *testing.T) {
	ctx := context.Background()
	db, _ := newDatabase(t)

	// COMMIT fails when no transaction is open, and close still succeeds
	require.NoError(t, db.Close(ctx, true))
}
