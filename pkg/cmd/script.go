package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/config"
	"github.com/pseudomuto/sqldesk/pkg/session"
	"github.com/urfave/cli/v3"
)

// scriptCmd opens and saves scripts the way the desk does. Opening prints the
// script in its canonical form; saving uppercases keywords only. Both make the
// script the most recent one.
//
// Examples:
//
//	sqldesk script open homework.sql
//	sqldesk script save --from draft.sql homework.sql
//	pbpaste | sqldesk script save homework.sql
func scriptCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "script",
		Usage: "Open or save SQL scripts",
		Commands: []*cli.Command{
			{
				Name:      "open",
				Usage:     "Print a script formatted and record it as recent",
				ArgsUsage: "<path>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return errors.New("exactly one path argument is required")
					}

					return withSession(ctx, cfg, func(s *session.Session) error {
						text, err := s.OpenSQLFile(cmd.Args().First())
						if err != nil {
							return err
						}

						_, err = fmt.Fprintf(output(cmd), "-- %s\n%s\n", s.SQLFile(), text)
						return errors.Wrap(err, "failed to write script")
					})
				},
			},
			{
				Name:      "save",
				Usage:     "Save SQL to a script with keywords uppercased",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "from",
						Usage: "read the SQL from this file instead of standard input",
						Value: "-",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return errors.New("exactly one path argument is required")
					}

					text, err := readSQL(cmd.String("from"))
					if err != nil {
						return err
					}

					return withSession(ctx, cfg, func(s *session.Session) error {
						if err := s.SaveSQLFile(cmd.Args().First(), text); err != nil {
							return err
						}

						_, err := fmt.Fprintf(output(cmd), "Saved script: %s\n", s.SQLFile())
						return errors.Wrap(err, "failed to write output")
					})
				},
			},
		},
	}
}
