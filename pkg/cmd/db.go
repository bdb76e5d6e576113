package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/config"
	"github.com/pseudomuto/sqldesk/pkg/session"
	"github.com/urfave/cli/v3"
)

// dbCmd manages database files. Both subcommands make the database the most
// recently used one, which later commands fall back to when no --db is given.
//
// Examples:
//
//	sqldesk db create school.db
//	sqldesk db open archive/2023.db
func dbCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "Create or open database files",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create a new, empty database file",
				ArgsUsage: "<path>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return dbAction(ctx, cmd, cfg, "Created", func(s *session.Session, path string) error {
						return s.CreateDatabase(ctx, path)
					})
				},
			},
			{
				Name:      "open",
				Usage:     "Open an existing database file",
				ArgsUsage: "<path>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return dbAction(ctx, cmd, cfg, "Opened", func(s *session.Session, path string) error {
						return s.OpenDatabase(ctx, path)
					})
				},
			},
		},
	}
}

func dbAction(ctx context.Context, cmd *cli.Command, cfg *config.Config, verb string, fn func(*session.Session, string) error) error {
	if cmd.Args().Len() != 1 {
		return errors.New("exactly one path argument is required")
	}

	return withSession(ctx, cfg, func(s *session.Session) error {
		if err := fn(s, cmd.Args().First()); err != nil {
			return err
		}

		tables, err := s.ListTables(ctx)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(output(cmd), "%s database: %s (%d tables)\n", verb, s.Database(), len(tables))
		return errors.Wrap(err, "failed to write output")
	})
}
