// Package splitter turns a SQL script into the ordered list of statements it
// contains, so each one can be executed and reported on separately.
//
// Splitting on every semicolon is wrong for string literals such as
// 'a;b', for comments, and for trigger bodies that embed their own
// statements. Instead the text is scanned left to right and, at each
// semicolon, SQLite itself is asked whether the text accumulated so far forms
// a complete statement:
//
//	stmts := splitter.Split("SELECT 1; INSERT INTO t VALUES ('a;b');")
//	// []string{"SELECT 1;", "INSERT INTO t VALUES ('a;b');"}
//
// Whatever remains after the last complete statement is returned as a final
// statement when it is not blank, which lets a single statement typed without
// a trailing semicolon still run:
//
//	stmts := splitter.Split("SELECT 1")
//	// []string{"SELECT 1"}
package splitter

import (
	"strings"

	"github.com/pseudomuto/sqldesk/pkg/sqlite"
)

// CompleteFunc reports whether sql ends with a complete statement.
type CompleteFunc func(sql string) bool

// Split splits text into trimmed statements using SQLite's completeness check.
// It returns nil for empty or whitespace-only input.
func Split(text string) []string {
	c := sqlite.NewCompleter()
	defer c.Close()

	return SplitFunc(text, c.IsComplete)
}

// SplitFunc splits text like Split but with a caller supplied completeness
// predicate. The predicate is consulted only at semicolons, since no statement
// can be complete without ending in one.
func SplitFunc(text string, complete CompleteFunc) []string {
	var (
		stmts []string
		start int
	)

	for i := 0; i < len(text); i++ {
		if text[i] != ';' {
			continue
		}

		buf := text[start : i+1]
		if !complete(buf) {
			continue
		}

		if stmt := strings.TrimSpace(buf); stmt != "" {
			stmts = append(stmts, stmt)
		}
		start = i + 1
	}

	if rest := strings.TrimSpace(text[start:]); rest != "" {
		stmts = append(stmts, rest)
	}

	return stmts
}
