package sqlite

import (
	"strings"

	"modernc.org/libc"
	sqlite3 "modernc.org/sqlite/lib"
)

// Completer answers SQLite's own "is this a complete statement" question for
// pieces of SQL text. It owns a libc thread-local state, so a Completer must
// not be shared between goroutines and must be closed when no longer needed.
type Completer struct {
	tls *libc.TLS
}

// NewCompleter allocates a Completer.
func NewCompleter() *Completer {
	return &Completer{tls: libc.NewTLS()}
}

// IsComplete reports whether sql ends with a complete SQL statement according
// to sqlite3_complete: the last token is a semicolon that is not inside a
// string literal, a quoted identifier, a comment or a trigger body. Trailing
// whitespace and comments after the semicolon are allowed.
//
// sqlite3_complete reads a C string, so NUL bytes are checked as spaces
// rather than ending the text early.
func (c *Completer) IsComplete(sql string) bool {
	cs, err := libc.CString(strings.ReplaceAll(sql, "\x00", " "))
	if err != nil {
		return false
	}
	defer libc.Xfree(c.tls, cs)

	return sqlite3.Xsqlite3_complete(c.tls, cs) != 0
}

// Close releases the thread-local state.
func (c *Completer) Close() {
	if c.tls != nil {
		c.tls.Close()
		c.tls = nil
	}
}
