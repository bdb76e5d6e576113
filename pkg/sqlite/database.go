package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/consts"
	"github.com/pseudomuto/sqldesk/pkg/utils"

	// registers the "sqlite" database/sql driver
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver name registered by modernc.org/sqlite.
const DriverName = "sqlite"

type (
	// Database is a single live connection to a SQLite database file.
	//
	// The underlying pool is capped at one connection and that connection is
	// pinned for the lifetime of the Database, so session state such as an
	// explicit BEGIN or PRAGMA settings carries over from one statement to the
	// next exactly as it would in an interactive shell.
	Database struct {
		path string
		db   *sql.DB
		conn *sql.Conn
	}

	// Table describes a table and its column names.
	Table struct {
		Name    string
		Columns []string
	}
)

// Open connects to an existing SQLite database file and enables foreign key
// enforcement on the connection. A missing file is an error rather than an
// implicitly created database.
//
// Example usage:
//
//	db, err := sqlite.Open(ctx, "school.db")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close(ctx, false)
func Open(ctx context.Context, path string) (*Database, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to access database file: %s", path)
	}
	if info.IsDir() {
		return nil, errors.Errorf("database path is a directory: %s", path)
	}

	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", path)
	}
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to connect to database: %s", path)
	}

	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		slog.Debug("Could not enable foreign keys", "path", path, "err", err)
	}

	return &Database{path: path, db: db, conn: conn}, nil
}

// Create creates a new, empty database file. It refuses to overwrite an
// existing file.
func Create(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, consts.ModeFile)
	if err != nil {
		return errors.Wrapf(err, "failed to create database file: %s", path)
	}

	return errors.Wrapf(f.Close(), "failed to create database file: %s", path)
}

// Path returns the database file path.
func (d *Database) Path() string {
	return d.path
}

// ExecContext runs a statement that returns no rows on the pinned connection.
func (d *Database) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.conn.ExecContext(ctx, query, args...)
}

// QueryContext runs a statement that may return rows on the pinned connection.
func (d *Database) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.conn.QueryContext(ctx, query, args...)
}

// Tables lists every table in the database with its columns, ordered by name.
func (d *Database) Tables(ctx context.Context) ([]Table, error) {
	rows, err := d.conn.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tables")
	}

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return nil, errors.Wrap(err, "failed to read table name")
		}
		names = append(names, name)
	}
	if err := rows.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to list tables")
	}

	tables := make([]Table, 0, len(names))
	for _, name := range names {
		columns, err := d.columns(ctx, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, Table{Name: name, Columns: columns})
	}

	return tables, nil
}

func (d *Database) columns(ctx context.Context, table string) ([]string, error) {
	rows, err := d.conn.QueryContext(ctx, "PRAGMA table_info("+utils.EscapeIdentifier(table)+")")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read columns of table: %s", table)
	}
	defer func() { _ = rows.Close() }()

	var (
		cid       int
		name      string
		typ       string
		notNull   int
		dfltValue any
		pk        int
		columns   []string
	)

	for rows.Next() {
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &pk); err != nil {
			return nil, errors.Wrapf(err, "failed to read columns of table: %s", table)
		}
		columns = append(columns, name)
	}

	return columns, errors.Wrapf(rows.Err(), "failed to read columns of table: %s", table)
}

// Close terminates the connection. When inTransaction is set, the open
// transaction is committed first and rolled back if the commit fails.
func (d *Database) Close(ctx context.Context, inTransaction bool) error {
	if inTransaction {
		if _, err := d.conn.ExecContext(ctx, "COMMIT"); err != nil {
			slog.Warn("Commit failed on close, rolling back", "path", d.path, "err", err)
			if _, err := d.conn.ExecContext(ctx, "ROLLBACK"); err != nil {
				slog.Debug("Rollback failed on close", "path", d.path, "err", err)
			}
		}
	}

	connErr := d.conn.Close()
	if err := d.db.Close(); err != nil {
		return errors.Wrapf(err, "failed to close database: %s", d.path)
	}

	return errors.Wrapf(connErr, "failed to close connection: %s", d.path)
}
