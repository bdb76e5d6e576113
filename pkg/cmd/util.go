package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/config"
	"github.com/pseudomuto/sqldesk/pkg/session"
	"github.com/urfave/cli/v3"
)

var dbFlag = &cli.StringFlag{
	Name:  "db",
	Usage: "the SQLite database file (defaults to the configured or most recent database)",
	Config: cli.StringConfig{
		TrimSpace: true,
	},
}

// output returns the writer command output goes to.
func output(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}

// withSession opens a session from cfg, hands it to fn and closes it
// afterwards, which persists the recent file lists.
func withSession(ctx context.Context, cfg *config.Config, fn func(*session.Session) error) error {
	s, err := session.New(session.Params{
		StateDir:  cfg.StateDir,
		RecentMax: cfg.Recent.Max,
		Formatter: cfg.GetFormatter(),
	})
	if err != nil {
		return err
	}

	fnErr := fn(s)
	if err := s.Close(ctx); err != nil {
		if fnErr == nil {
			return err
		}
		slog.Warn("Failed to close session", "err", err)
	}

	return fnErr
}

// openDefaultDatabase opens the --db database, else the configured one, else
// the most recently used one. It does nothing when none of them is set.
func openDefaultDatabase(ctx context.Context, cmd *cli.Command, cfg *config.Config, s *session.Session) error {
	path := cmd.String("db")
	if path == "" {
		path = cfg.Database
	}
	if path == "" {
		if items := s.RecentDatabases().Items(); len(items) > 0 {
			path = items[0]
		}
	}

	if path == "" {
		slog.Debug("No database configured")
		return nil
	}

	return s.OpenDatabase(ctx, path)
}

// readSQL returns the contents of path, or standard input when path is "-".
func readSQL(path string) (string, error) {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return "", errors.Wrapf(err, "failed to read file: %s", path)
	}

	return string(data), nil
}

// selectLines returns the 1-based, inclusive line range described by rng:
// "A:B", "A:", ":B" or a single line "A".
func selectLines(text, rng string) (string, error) {
	lines := strings.Split(text, "\n")

	from, to, found := strings.Cut(rng, ":")
	if !found {
		to = from
	}

	start, err := lineNumber(from, 1)
	if err != nil {
		return "", errors.Wrapf(err, "invalid line range: %s", rng)
	}

	end, err := lineNumber(to, len(lines))
	if err != nil {
		return "", errors.Wrapf(err, "invalid line range: %s", rng)
	}

	if start < 1 || end < start || start > len(lines) {
		return "", errors.Errorf("invalid line range: %s", rng)
	}

	end = min(end, len(lines))
	return strings.Join(lines[start-1:end], "\n"), nil
}

func lineNumber(s string, fallback int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	return strconv.Atoi(s)
}
