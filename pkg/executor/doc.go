// Package executor runs SQL scripts against a live database connection.
//
// A script is split into statements with the splitter package and every
// statement runs to completion before the next one starts. Each statement
// produces an ExecutionResult:
//
//   - INSERT, UPDATE, DELETE and REPLACE report the number of affected rows
//   - statements returning columns render a result table
//   - anything else reports "Statement executed successfully."
//   - a failing statement reports "Error in statement N: ..." and execution
//     carries on with the next statement
//
// # Usage Example
//
//	db, err := sqlite.Open(ctx, "school.db")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close(ctx, false)
//
//	exec := executor.New(executor.Config{Conn: db})
//	results := exec.Run(ctx, script)
//	for _, result := range results {
//		switch result.Status {
//		case executor.StatusSuccess:
//			fmt.Printf("✓ statement %d in %v\n", result.Index, result.Duration)
//		case executor.StatusFailed:
//			fmt.Printf("✗ statement %d: %v\n", result.Index, result.Error)
//		}
//	}
//
// # Transactions
//
// The executor keeps track of explicit transactions opened with BEGIN or
// SAVEPOINT. InTransaction tells the owner of the connection whether a commit
// is still pending when it wants to close it.
package executor
