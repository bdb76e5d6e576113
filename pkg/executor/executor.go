package executor

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/lexer"
	"github.com/pseudomuto/sqldesk/pkg/splitter"
	"github.com/pseudomuto/sqldesk/pkg/table"
)

const (
	// NoSQL is reported when there is nothing to execute.
	NoSQL = "No SQL to execute."

	// Executed is reported for statements that return no columns.
	Executed = "Statement executed successfully."
)

type (
	// Conn defines the database operations required by the executor. It is
	// satisfied by *sql.Conn, *sql.DB and *sqlite.Database.
	Conn interface {
		ExecContext(context.Context, string, ...any) (sql.Result, error)
		QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	}

	// Executor runs SQL scripts statement by statement on a single connection.
	//
	// Statements run in order. A failing statement is reported and the
	// remaining statements still run; SQLite rolls back only the failed
	// statement when no explicit transaction is open.
	//
	// Example usage:
	//
	//	exec := executor.New(executor.Config{Conn: db})
	//	results := exec.Run(ctx, "CREATE TABLE t (a); INSERT INTO t VALUES (1); SELECT * FROM t;")
	//	fmt.Print(executor.Report(results))
	Executor struct {
		conn  Conn
		split func(string) []string
		inTx  bool
	}

	// Config contains configuration options for creating a new Executor.
	Config struct {
		// Conn is the connection statements are run on
		Conn Conn

		// Splitter breaks a script into statements. Defaults to splitter.Split.
		Splitter func(string) []string
	}

	// ExecutionResult is the outcome of a single statement.
	ExecutionResult struct {
		// Index is the 1-based position of the statement in the script, 0 for
		// informational results that do not belong to a statement
		Index int

		// SQL is the statement text
		SQL string

		// Status indicates the outcome of the statement
		Status ExecutionStatus

		// Columns and Rows hold the returned row set, if any
		Columns []string
		Rows    [][]any

		// RowsAffected is set for INSERT, UPDATE, DELETE and REPLACE statements
		RowsAffected int64

		// Message is the user-facing text for the result
		Message string

		// Error contains the error that made the statement fail
		Error error

		// Duration records how long the statement took
		Duration time.Duration
	}

	// ExecutionStatus represents the outcome of a statement.
	ExecutionStatus string
)

const (
	// StatusSuccess indicates the statement was executed successfully
	StatusSuccess ExecutionStatus = "success"

	// StatusFailed indicates the statement returned an error
	StatusFailed ExecutionStatus = "failed"

	// StatusSkipped indicates the statement held nothing to execute
	StatusSkipped ExecutionStatus = "skipped"

	// StatusInfo indicates an informational result that ran nothing
	StatusInfo ExecutionStatus = "info"
)

// New creates a new executor with the provided configuration.
func New(config Config) *Executor {
	split := config.Splitter
	if split == nil {
		split = splitter.Split
	}

	return &Executor{conn: config.Conn, split: split}
}

// Info returns an informational result carrying msg.
func Info(msg string) *ExecutionResult {
	return &ExecutionResult{Status: StatusInfo, Message: msg}
}

// InTransaction reports whether an explicit transaction opened by a previous
// statement is still open.
func (e *Executor) InTransaction() bool {
	return e.inTx
}

// Run splits text into statements and executes each of them in order,
// returning one result per statement. Blank text yields a single
// informational result.
func (e *Executor) Run(ctx context.Context, text string) []*ExecutionResult {
	if strings.TrimSpace(text) == "" {
		return []*ExecutionResult{Info(NoSQL)}
	}

	statements := e.split(text)
	results := make([]*ExecutionResult, 0, len(statements))
	for i, stmt := range statements {
		results = append(results, e.execute(ctx, i+1, stmt))
	}

	return results
}

func (e *Executor) execute(ctx context.Context, index int, stmt string) *ExecutionResult {
	result := &ExecutionResult{Index: index, SQL: stmt, Status: StatusSuccess}

	words := statementWords(stmt)
	if len(words) == 0 {
		slog.Debug("Skipping statement without SQL", "index", index)
		result.Status = StatusSkipped
		return result
	}

	start := time.Now()
	var err error
	if isWrite(words) {
		err = e.exec(ctx, result)
	} else {
		err = e.query(ctx, result)
	}
	result.Duration = time.Since(start)

	if err != nil {
		result.Status = StatusFailed
		result.Error = err
		result.Message = fmt.Sprintf("Error in statement %d: %v", index, err)
		return result
	}

	e.track(words)
	return result
}

func (e *Executor) exec(ctx context.Context, result *ExecutionResult) error {
	res, err := e.conn.ExecContext(ctx, result.SQL)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}

	result.RowsAffected = n
	result.Message = fmt.Sprintf("%d row(s) affected.", n)
	return nil
}

func (e *Executor) query(ctx context.Context, result *ExecutionResult) error {
	rows, err := e.conn.QueryContext(ctx, result.SQL)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return errors.Wrap(err, "failed to read result columns")
	}

	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return errors.Wrap(err, "failed to read result row")
		}
		result.Rows = append(result.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return err
	}

	if len(columns) == 0 {
		result.Message = Executed
		return nil
	}

	result.Columns = columns
	result.Message = table.Render(columns, result.Rows)
	return nil
}

// track follows explicit transaction boundaries so the session knows whether
// to commit before closing the connection.
func (e *Executor) track(words []string) {
	switch words[0] {
	case "BEGIN", "SAVEPOINT":
		e.inTx = true
	case "COMMIT", "END":
		e.inTx = false
	case "ROLLBACK":
		// ROLLBACK TO keeps the transaction open
		if len(words) < 2 || words[1] != "TO" {
			e.inTx = false
		}
	}
}

// statementWords returns the uppercased words of stmt outside comments, string
// literals and quoted identifiers. An empty result means the statement holds
// nothing but comments and punctuation.
func statementWords(stmt string) []string {
	var words []string
	for _, tok := range lexer.Tokenize(stmt) {
		if tok.Kind == lexer.Word {
			words = append(words, strings.ToUpper(tok.Value))
		}
	}
	return words
}

func isWrite(words []string) bool {
	switch words[0] {
	case "INSERT", "UPDATE", "DELETE", "REPLACE":
	default:
		return false
	}

	for _, w := range words[1:] {
		if w == "RETURNING" {
			return false
		}
	}
	return true
}

// Report renders results as the text shown to the user, one block per
// result separated by blank lines. Skipped statements are left out.
func Report(results []*ExecutionResult) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		if r.Status == StatusSkipped {
			continue
		}
		blocks = append(blocks, strings.TrimSpace(r.Message))
	}

	if len(blocks) == 0 {
		return NoSQL + "\n"
	}

	return strings.Join(blocks, "\n\n") + "\n"
}

// Failed returns the number of failed results.
func Failed(results []*ExecutionResult) int {
	n := 0
	for _, r := range results {
		if r.Status == StatusFailed {
			n++
		}
	}
	return n
}
