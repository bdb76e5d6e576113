package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/config"
	"github.com/pseudomuto/sqldesk/pkg/consts"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Config     *config.Config
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run registers the sqldesk CLI application with the fx lifecycle. The
// application runs once the fx app has started and shuts the fx app down with
// exit code 1 when the command fails.
//
// Global Flags:
//   - --dir, -d: Working directory holding sqldesk.yaml (defaults to current directory)
//   - --verbose: Enable debug logging
//
// Example usage:
//
//	sqldesk fmt -w queries/
//	sqldesk --dir ~/classes/week3 run --db school.db homework.sql
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := newApp(p.Config, p.Version.Version, p.Commands)

	p.Lifecycle.Append(fx.StartHook(func() {
		go func() {
			if err := app.Run(p.Ctx, p.Args); err != nil {
				slog.Error("Error running command", "err", err)
				_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				return
			}

			_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
		}()
	}))
}

func newApp(cfg *config.Config, version string, commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:  "sqldesk",
		Usage: "A SQL desk for learning SQL with SQLite",
		Description: `sqldesk formats, highlights, splits and runs SQL scripts against local
SQLite database files. It keeps track of recently used scripts and databases
so the last database is picked up automatically.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "the working directory",
				Value:       ".",
				DefaultText: "Current directory",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}

			if err := os.Chdir(cmd.String("dir")); err != nil {
				return ctx, errors.Wrapf(err, "failed to change to directory: %s", cmd.String("dir"))
			}

			loaded, err := config.Load(consts.ConfigFile)
			if err != nil {
				return ctx, err
			}

			*cfg = *loaded
			slog.Debug("Loaded configuration", "state_dir", cfg.StateDir, "database", cfg.Database)
			return ctx, nil
		},
		Commands: commands,
	}
}
