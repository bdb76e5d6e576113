package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/config"
	"github.com/pseudomuto/sqldesk/pkg/executor"
	"github.com/pseudomuto/sqldesk/pkg/session"
	"github.com/urfave/cli/v3"
)

// runCmd executes a script, a range of its lines or an inline statement
// against a database and prints the result of every statement.
//
// Statements run in order. A failing statement is reported and the rest of
// the script still runs; the command exits non-zero when any statement failed.
//
// Examples:
//
//	# Run a whole script on the most recently used database
//	sqldesk run homework.sql
//
//	# Run lines 10 to 14 of a script, like running a selection
//	sqldesk run --db school.db --lines 10:14 homework.sql
//
//	# Run inline SQL
//	sqldesk run --db school.db -e "SELECT * FROM students;"
func runCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Execute SQL against a database",
		ArgsUsage: "[<path>]",
		Flags: []cli.Flag{
			dbFlag,
			&cli.StringFlag{
				Name:    "execute",
				Aliases: []string{"e"},
				Usage:   "SQL to execute instead of a script file",
			},
			&cli.StringFlag{
				Name:  "lines",
				Usage: "only execute the given 1-based line range of the script (A:B, A:, :B or A)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			inline := cmd.String("execute")
			if (inline == "") == (cmd.Args().Len() == 0) || cmd.Args().Len() > 1 {
				return errors.New("either a script path or --execute is required")
			}

			return withSession(ctx, cfg, func(s *session.Session) error {
				text := inline
				if text == "" {
					path := cmd.Args().First()

					var err error
					if text, err = readSQL(path); err != nil {
						return err
					}

					if path != "-" {
						if abs, err := filepath.Abs(path); err == nil {
							s.RecentSQLFiles().Add(abs)
						}
					}
				}

				if lines := cmd.String("lines"); lines != "" {
					var err error
					if text, err = selectLines(text, lines); err != nil {
						return err
					}
				}

				if err := openDefaultDatabase(ctx, cmd, cfg, s); err != nil {
					return err
				}

				results := s.Run(ctx, text)
				if _, err := fmt.Fprint(output(cmd), executor.Report(results)); err != nil {
					return errors.Wrap(err, "failed to write results")
				}

				if failed := executor.Failed(results); failed > 0 {
					slog.Debug("Statements failed", "failed", failed, "total", len(results))
					return errors.Errorf("%d of %d statement(s) failed", failed, len(results))
				}

				return nil
			})
		},
	}
}
