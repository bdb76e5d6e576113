package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/executor"
	"github.com/pseudomuto/sqldesk/pkg/format"
	"github.com/pseudomuto/sqldesk/pkg/session"
	"github.com/pseudomuto/sqldesk/pkg/sqlite"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) (*session.Session, string) {
	t.Helper()

	dir := t.TempDir()
	s, err := session.New(session.Params{StateDir: filepath.Join(dir, "state"), RecentMax: 3})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	return s, dir
}

func readLines(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSession_RunWithoutDatabase(t *testing.T) {
	s, _ := newSession(t)

	results := s.Run(context.Background(), "SELECT 1;")
	require.Len(t, results, 1)
	require.Equal(t, executor.StatusInfo, results[0].Status)
	require.Equal(t, session.NoDatabase, results[0].Message)

	_, err := s.ListTables(context.Background())
	require.ErrorIs(t, err, session.ErrNoConnection)
}

func TestSession_CreateAndRun(t *testing.T) {
	ctx := context.Background()
	s, dir := newSession(t)

	path := filepath.Join(dir, "school.db")
	require.NoError(t, s.CreateDatabase(ctx, path))
	require.Equal(t, path, s.Database())
	require.Equal(t, []string{path}, s.RecentDatabases().Items())

	results := s.Run(ctx, "CREATE TABLE students (id INTEGER, name TEXT); INSERT INTO students VALUES (1, 'Ann');")
	require.Zero(t, executor.Failed(results))

	tables, err := s.ListTables(ctx)
	require.NoError(t, err)
	require.Equal(t, []sqlite.Table{{Name: "students", Columns: []string{"id", "name"}}}, tables)

	// recent databases are persisted as soon as they change
	require.Equal(t, path+"\n", readLines(t, filepath.Join(dir, "state", "recent_db_files.txt")))
}

func TestSession_CreateExistingFile(t *testing.T) {
	ctx := context.Background()
	s, dir := newSession(t)

	path := filepath.Join(dir, "taken.db")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	require.Error(t, s.CreateDatabase(ctx, path))
	require.Empty(t, s.Database())
	require.Zero(t, s.RecentDatabases().Len())
}

func TestSession_OpenMissingDatabase(t *testing.T) {
	ctx := context.Background()
	s, dir := newSession(t)

	path := filepath.Join(dir, "gone.db")
	require.NoError(t, s.CreateDatabase(ctx, path))
	require.NoError(t, s.CloseDatabase(ctx))
	require.NoError(t, os.Remove(path))

	err := s.OpenDatabase(ctx, path)
	require.Error(t, err)
	require.Equal(t, session.ErrNotFound, errors.Cause(err))
	require.Zero(t, s.RecentDatabases().Len())
}

func TestSession_SwitchDatabaseCommitsOpenTransaction(t *testing.T) {
	ctx := context.Background()
	s, dir := newSession(t)

	first := filepath.Join(dir, "first.db")
	second := filepath.Join(dir, "second.db")

	require.NoError(t, s.CreateDatabase(ctx, first))
	require.Zero(t, executor.Failed(s.Run(ctx, "CREATE TABLE t (a); BEGIN; INSERT INTO t VALUES (1);")))

	require.NoError(t, s.CreateDatabase(ctx, second))
	require.Equal(t, second, s.Database())
	require.Equal(t, []string{second, first}, s.RecentDatabases().Items())

	require.NoError(t, s.OpenDatabase(ctx, first))
	results := s.Run(ctx, "SELECT count(*) FROM t;")
	require.Equal(t, [][]any{{int64(1)}}, results[0].Rows)
	require.Equal(t, []string{first, second}, s.RecentDatabases().Items())
}

func TestSession_SQLFiles(t *testing.T) {
	s, dir := newSession(t)
	path := filepath.Join(dir, "query.sql")

	require.NoError(t, s.SaveSQLFile(path, "select * from t where a = 'x'"))
	require.Equal(t, "SELECT * FROM t WHERE a = 'x'", readLines(t, path))
	require.Equal(t, path, s.SQLFile())

	text, err := s.OpenSQLFile(path)
	require.NoError(t, err)
	require.Equal(t, "SELECT *\nFROM t\nWHERE a = 'x'", text)
	require.Equal(t, []string{path}, s.RecentSQLFiles().Items())
}

func TestSession_SaveFailureLeavesRecentsAlone(t *testing.T) {
	s, dir := newSession(t)

	err := s.SaveSQLFile(filepath.Join(dir, "missing", "dir", "q.sql"), "SELECT 1;")
	require.Error(t, err)
	require.Zero(t, s.RecentSQLFiles().Len())
	require.Empty(t, s.SQLFile())
}

func TestSession_OpenMissingSQLFile(t *testing.T) {
	s, dir := newSession(t)

	_, err := s.OpenSQLFile(filepath.Join(dir, "nope.sql"))
	require.Equal(t, session.ErrNotFound, errors.Cause(err))
}

func TestSession_StrictFormatter(t *testing.T) {
	dir := t.TempDir()
	s, err := session.New(session.Params{
		StateDir:  dir,
		Formatter: format.New(format.Options{UppercaseKeywords: true, Strict: true}),
	})
	require.NoError(t, err)

	path := filepath.Join(dir, "q.sql")
	require.NoError(t, s.SaveSQLFile(path, "select 'select' from t"))
	require.Equal(t, "SELECT 'select' FROM t", readLines(t, path))
}

func TestSession_CloseAndReload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	state := filepath.Join(dir, "state")

	s, err := session.New(session.Params{StateDir: state})
	require.NoError(t, err)

	db := filepath.Join(dir, "a.db")
	script := filepath.Join(dir, "a.sql")
	require.NoError(t, s.CreateDatabase(ctx, db))
	require.NoError(t, s.SaveSQLFile(script, "SELECT 1;"))
	require.NoError(t, s.Close(ctx))
	require.Empty(t, s.Database())

	reloaded, err := session.New(session.Params{StateDir: state})
	require.NoError(t, err)
	require.Equal(t, []string{db}, reloaded.RecentDatabases().Items())
	require.Equal(t, []string{script}, reloaded.RecentSQLFiles().Items())
}

func TestSession_CleanRecent(t *testing.T) {
	ctx := context.Background()
	s, dir := newSession(t)

	keep := filepath.Join(dir, "keep.db")
	drop := filepath.Join(dir, "drop.db")
	require.NoError(t, s.CreateDatabase(ctx, drop))
	require.NoError(t, s.CreateDatabase(ctx, keep))
	require.NoError(t, os.Remove(drop))

	require.Equal(t, []string{drop}, s.CleanRecent())
	require.Equal(t, []string{keep}, s.RecentDatabases().Items())
}
