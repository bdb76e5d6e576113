package cmd

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/pseudomuto/sqldesk/pkg/cmd/testutil"
	"github.com/pseudomuto/sqldesk/pkg/config"
	"github.com/pseudomuto/sqldesk/pkg/consts"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// probeCmd prints the parts of the configuration the root command loads.
func probeCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name: "probe",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(output(cmd), "%s %s %d", cfg.Database, cfg.StateDir, cfg.Recent.Max)
			return err
		},
	}
}

func runRoot(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	return runRootWith(t, cfg, []*cli.Command{probeCmd(cfg)}, args...)
}

func runRootWith(t *testing.T, cfg *config.Config, commands []*cli.Command, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	app := newApp(cfg, "test", commands)
	app.Writer = &buf

	err := app.Run(context.Background(), append([]string{"sqldesk"}, args...))
	return buf.String(), err
}

func TestRoot_LoadsConfigFromDir(t *testing.T) {
	w := testutil.NewWorkspace(t).WithFile("class/"+consts.ConfigFile, "database: school.db\nstate_dir: .state\nrecent:\n  max: 3\n")

	cfg := config.Default()
	output, err := runRoot(t, cfg, "--dir", w.Path("class"), "probe")
	require.NoError(t, err)
	require.Equal(t, "school.db .state 3", output)
}

func TestRoot_DefaultsWithoutConfig(t *testing.T) {
	testutil.NewWorkspace(t)

	cfg := config.Default()
	cfg.Database = "stale.db"

	output, err := runRoot(t, cfg, "probe")
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf(" . %d", consts.DefaultRecentMax), output)
}

func TestRoot_CommandsUseLoadedSettings(t *testing.T) {
	testutil.NewWorkspace(t).
		WithFile(consts.ConfigFile, "format:\n  linebreaks: false\n  blank_lines: false\n  uppercase_keywords: true\n").
		WithFile("q.sql", "select a from t; select 1;")

	cfg := config.Default()
	output, err := runRootWith(t, cfg, []*cli.Command{fmtCmd(cfg)}, "fmt", "q.sql")
	require.NoError(t, err)
	require.Equal(t, "SELECT a FROM t; SELECT 1;\n", output)
}

func TestRoot_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		w := testutil.NewWorkspace(t)

		_, err := runRoot(t, config.Default(), "--dir", w.Path("nope"), "probe")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to change to directory")
	})

	t.Run("invalid config", func(t *testing.T) {
		testutil.NewWorkspace(t).WithFile(consts.ConfigFile, "recent:\n  max: 0\n")

		_, err := runRoot(t, config.Default(), "probe")
		require.Error(t, err)
		require.Contains(t, err.Error(), "recent.max must be positive")
	})
}
