package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/config"
	"github.com/pseudomuto/sqldesk/pkg/session"
	"github.com/urfave/cli/v3"
)

// tablesCmd lists the tables of a database along with their columns.
func tablesCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "tables",
		Usage: "List the tables of a database",
		Flags: []cli.Flag{dbFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withSession(ctx, cfg, func(s *session.Session) error {
				if err := openDefaultDatabase(ctx, cmd, cfg, s); err != nil {
					return err
				}

				var b strings.Builder
				tables, err := s.ListTables(ctx)
				switch {
				case errors.Is(err, session.ErrNoConnection):
					b.WriteString(session.NoDatabase + "\n")
				case err != nil:
					return err
				case len(tables) == 0:
					b.WriteString("No tables found in the current database.\n")
				default:
					b.WriteString("Tables in current database:\n\n")
					for _, t := range tables {
						fmt.Fprintf(&b, "• %s (%s)\n", t.Name, strings.Join(t.Columns, ", "))
					}
				}

				_, err = fmt.Fprint(output(cmd), b.String())
				return errors.Wrap(err, "failed to write tables")
			})
		},
	}
}
