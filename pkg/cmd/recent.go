package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/config"
	"github.com/pseudomuto/sqldesk/pkg/recent"
	"github.com/pseudomuto/sqldesk/pkg/session"
	"github.com/urfave/cli/v3"
)

// recentCmd lists the recently used scripts and databases, most recent first.
// With --clean, entries whose files are gone are removed first.
func recentCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "recent",
		Usage: "List recently used scripts and databases",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Usage: "only list one kind of file: sql or db",
			},
			&cli.BoolFlag{
				Name:  "clean",
				Usage: "remove entries whose files no longer exist",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			kind := strings.ToLower(cmd.String("kind"))
			if kind != "" && kind != "sql" && kind != "db" {
				return errors.Errorf("unknown kind %q, expected sql or db", kind)
			}

			return withSession(ctx, cfg, func(s *session.Session) error {
				var b strings.Builder
				if cmd.Bool("clean") {
					for _, path := range s.CleanRecent() {
						fmt.Fprintf(&b, "Removed missing file: %s\n", path)
					}
				}

				if kind != "db" {
					writeRecent(&b, "Recent SQL files", s.RecentSQLFiles())
				}
				if kind != "sql" {
					writeRecent(&b, "Recent databases", s.RecentDatabases())
				}

				_, err := fmt.Fprint(output(cmd), b.String())
				return errors.Wrap(err, "failed to write recent files")
			})
		},
	}
}

func writeRecent(b *strings.Builder, title string, l *recent.List) {
	fmt.Fprintf(b, "%s (%d of %d):\n", title, l.Len(), l.Max())

	items := l.Items()
	if len(items) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, item := range items {
		fmt.Fprintf(b, "  %d. %s\n", i+1, item)
	}
}
