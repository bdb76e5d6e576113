package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pseudomuto/sqldesk/pkg/config"
	"github.com/pseudomuto/sqldesk/pkg/consts"
	"github.com/pseudomuto/sqldesk/pkg/sqlite"
	"github.com/stretchr/testify/require"
)

// WorkspaceFixture is a temporary working directory with a configuration
// whose state directory lives inside it.
type WorkspaceFixture struct {
	Dir    string
	Config *config.Config
	t      *testing.T
}

// NewWorkspace creates a workspace in a temp directory and makes it the
// working directory for the rest of the test.
func NewWorkspace(t *testing.T) *WorkspaceFixture {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	cfg := config.Default()
	cfg.StateDir = filepath.Join(dir, ".sqldesk")

	return &WorkspaceFixture{Dir: dir, Config: cfg, t: t}
}

// Path returns the absolute path of name inside the workspace.
func (w *WorkspaceFixture) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// WithFile writes content to name, creating parent directories as needed.
func (w *WorkspaceFixture) WithFile(name, content string) *WorkspaceFixture {
	w.t.Helper()

	path := w.Path(name)
	require.NoError(w.t, os.MkdirAll(filepath.Dir(path), consts.ModeDir), "Failed to create directory for %s", name)
	require.NoError(w.t, os.WriteFile(path, []byte(content), consts.ModeFile), "Failed to write file: %s", name)

	return w
}

// WithDatabase creates the database name and runs setup on it.
func (w *WorkspaceFixture) WithDatabase(name string, setup ...string) *WorkspaceFixture {
	w.t.Helper()

	ctx := context.Background()
	path := w.Path(name)
	require.NoError(w.t, sqlite.Create(path), "Failed to create database: %s", name)

	db, err := sqlite.Open(ctx, path)
	require.NoError(w.t, err)
	defer func() { require.NoError(w.t, db.Close(ctx, false)) }()

	for _, stmt := range setup {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(w.t, err, "Failed to run setup statement: %s", stmt)
	}

	return w
}

// WithRecentDatabases records paths, most recent first, as the recently used
// databases.
func (w *WorkspaceFixture) WithRecentDatabases(paths ...string) *WorkspaceFixture {
	w.t.Helper()
	return w.withRecent(consts.RecentDBFile, paths)
}

// WithRecentSQLFiles records paths, most recent first, as the recently used
// scripts.
func (w *WorkspaceFixture) WithRecentSQLFiles(paths ...string) *WorkspaceFixture {
	w.t.Helper()
	return w.withRecent(consts.RecentSQLFile, paths)
}

func (w *WorkspaceFixture) withRecent(file string, paths []string) *WorkspaceFixture {
	var content string
	for _, p := range paths {
		content += p + "\n"
	}

	path := filepath.Join(w.Config.StateDir, file)
	require.NoError(w.t, os.MkdirAll(filepath.Dir(path), consts.ModeDir))
	require.NoError(w.t, os.WriteFile(path, []byte(content), consts.ModeFile))

	return w
}

// RecentFile returns the path of a recent file list in the state directory.
func (w *WorkspaceFixture) RecentFile(name string) string {
	return filepath.Join(w.Config.StateDir, name)
}
