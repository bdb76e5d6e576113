// Package session holds the state of one sqldesk session: the single live
// database connection, the current SQL script and the recent file lists.
//
// A Session is created once at startup, changed only through its methods and
// closed at shutdown, which commits any open transaction and persists the
// recent file lists. It is not safe for concurrent use.
package session

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/consts"
	"github.com/pseudomuto/sqldesk/pkg/executor"
	"github.com/pseudomuto/sqldesk/pkg/format"
	"github.com/pseudomuto/sqldesk/pkg/recent"
	"github.com/pseudomuto/sqldesk/pkg/sqlite"
)

// NoDatabase is reported when SQL is run before a database is opened.
const NoDatabase = "No database selected."

var (
	// ErrNoConnection is returned by operations that need an open database.
	ErrNoConnection = errors.New("no database selected")

	// ErrNotFound is returned when a database or script file does not exist.
	ErrNotFound = errors.New("file not found")
)

type (
	// Params configures a new Session.
	Params struct {
		// StateDir is where the recent file lists are stored
		StateDir string

		// RecentMax caps both recent file lists
		RecentMax int

		// Formatter formats opened scripts and cases keywords of saved ones.
		// Defaults to format.New(format.Defaults).
		Formatter *format.Formatter
	}

	// Session is the explicit state shared by every sqldesk operation.
	Session struct {
		formatter *format.Formatter
		db        *sqlite.Database
		exec      *executor.Executor
		sqlFile   string
		recentSQL *recent.List
		recentDB  *recent.List
	}
)

// New creates a session and loads the recent file lists from the state
// directory.
func New(p Params) (*Session, error) {
	if p.StateDir == "" {
		p.StateDir = consts.DefaultStateDir
	}
	if p.Formatter == nil {
		p.Formatter = format.New(format.Defaults)
	}

	recentSQL, err := recent.Load(filepath.Join(p.StateDir, consts.RecentSQLFile), p.RecentMax)
	if err != nil {
		return nil, err
	}

	recentDB, err := recent.Load(filepath.Join(p.StateDir, consts.RecentDBFile), p.RecentMax)
	if err != nil {
		return nil, err
	}

	return &Session{
		formatter: p.Formatter,
		recentSQL: recentSQL,
		recentDB:  recentDB,
	}, nil
}

// Database returns the path of the open database, or "" when none is open.
func (s *Session) Database() string {
	if s.db == nil {
		return ""
	}
	return s.db.Path()
}

// SQLFile returns the path of the script last opened or saved.
func (s *Session) SQLFile() string {
	return s.sqlFile
}

// RecentSQLFiles returns the list of recently used scripts.
func (s *Session) RecentSQLFiles() *recent.List {
	return s.recentSQL
}

// RecentDatabases returns the list of recently used database files.
func (s *Session) RecentDatabases() *recent.List {
	return s.recentDB
}

// OpenDatabase makes path the active database. A missing file is reported
// with ErrNotFound and dropped from the recent databases. Otherwise the
// previous connection is closed, committing any open transaction, before the
// new one is opened.
func (s *Session) OpenDatabase(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve database path: %s", path)
	}

	if _, err := os.Stat(abs); os.IsNotExist(err) {
		if s.recentDB.Remove(abs) {
			s.persist(s.recentDB)
		}
		return errors.Wrapf(ErrNotFound, "database %s", path)
	}

	if prev := s.Database(); prev != "" {
		if err := s.CloseDatabase(ctx); err != nil {
			slog.Warn("Failed to close previous database", "path", prev, "err", err)
		}
	}

	db, err := sqlite.Open(ctx, abs)
	if err != nil {
		return err
	}

	s.db = db
	s.exec = executor.New(executor.Config{Conn: db})
	s.record(s.recentDB, abs)

	slog.Debug("Opened database", "path", abs)
	return nil
}

// CreateDatabase creates an empty database file at path and opens it. The
// recent databases are left untouched when the file cannot be created.
func (s *Session) CreateDatabase(ctx context.Context, path string) error {
	if err := sqlite.Create(path); err != nil {
		return err
	}

	return s.OpenDatabase(ctx, path)
}

// CloseDatabase closes the active connection, committing an open transaction
// first. It does nothing when no database is open.
func (s *Session) CloseDatabase(ctx context.Context) error {
	if s.db == nil {
		return nil
	}

	db, inTx := s.db, s.exec.InTransaction()
	s.db, s.exec = nil, nil

	return db.Close(ctx, inTx)
}

// Run executes text on the active database. Without one, a single
// informational result is returned.
func (s *Session) Run(ctx context.Context, text string) []*executor.ExecutionResult {
	if s.db == nil {
		return []*executor.ExecutionResult{executor.Info(NoDatabase)}
	}

	return s.exec.Run(ctx, text)
}

// ListTables returns every table of the active database with its columns.
func (s *Session) ListTables(ctx context.Context) ([]sqlite.Table, error) {
	if s.db == nil {
		return nil, ErrNoConnection
	}

	return s.db.Tables(ctx)
}

// OpenSQLFile reads the script at path and returns it formatted. The file
// becomes the current script and moves to the front of the recent scripts.
func (s *Session) OpenSQLFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve script path: %s", path)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			if s.recentSQL.Remove(abs) {
				s.persist(s.recentSQL)
			}
			return "", errors.Wrapf(ErrNotFound, "script %s", path)
		}
		return "", errors.Wrapf(err, "failed to read script: %s", path)
	}

	s.sqlFile = abs
	s.record(s.recentSQL, abs)

	return s.formatter.Format(string(data)), nil
}

// SaveSQLFile writes text to path with keywords uppercased. The recent
// scripts are only updated when the write succeeds.
func (s *Session) SaveSQLFile(path, text string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve script path: %s", path)
	}

	if err := os.WriteFile(abs, []byte(s.formatter.Keywords(text)), consts.ModeFile); err != nil {
		return errors.Wrapf(err, "failed to save script: %s", path)
	}

	s.sqlFile = abs
	s.record(s.recentSQL, abs)
	return nil
}

// CleanRecent drops entries whose files no longer exist from both recent
// lists and returns the removed paths.
func (s *Session) CleanRecent() []string {
	var removed []string
	for _, l := range []*recent.List{s.recentSQL, s.recentDB} {
		if gone := l.Prune(recent.Exists); len(gone) > 0 {
			removed = append(removed, gone...)
			s.persist(l)
		}
	}

	return removed
}

// Close ends the session: the database is closed and both recent lists are
// written to the state directory.
func (s *Session) Close(ctx context.Context) error {
	closeErr := s.CloseDatabase(ctx)

	for _, l := range []*recent.List{s.recentSQL, s.recentDB} {
		if err := l.Save(); err != nil {
			if closeErr == nil {
				closeErr = err
				continue
			}
			slog.Warn("Failed to save recent files", "file", l.File(), "err", err)
		}
	}

	return closeErr
}

func (s *Session) record(l *recent.List, path string) {
	l.Add(path)
	s.persist(l)
}

func (s *Session) persist(l *recent.List) {
	if err := l.Save(); err != nil {
		slog.Warn("Failed to save recent files", "file", l.File(), "err", err)
	}
}
