package cmd

import (
	"testing"

	"github.com/pseudomuto/sqldesk/pkg/cmd/testutil"
	"github.com/stretchr/testify/require"
)

func TestSplitCommand(t *testing.T) {
	w := testutil.NewWorkspace(t).WithFile("script.sql", "SELECT 1; INSERT INTO t VALUES ('a;b');\nSELECT 2")

	output, err := testutil.RunCommand(t, splitCmd(), w.Path("script.sql"))
	require.NoError(t, err)
	require.Equal(t, "-- statement 1\nSELECT 1;\n\n"+
		"-- statement 2\nINSERT INTO t VALUES ('a;b');\n\n"+
		"-- statement 3\nSELECT 2\n\n", output)
}

func TestSplitCommand_Empty(t *testing.T) {
	w := testutil.NewWorkspace(t).WithFile("script.sql", "\n  \n")

	output, err := testutil.RunCommand(t, splitCmd(), w.Path("script.sql"))
	require.NoError(t, err)
	require.Empty(t, output)
}

func TestSplitCommand_RequiresPath(t *testing.T) {
	_, err := testutil.RunCommand(t, splitCmd())
	require.Error(t, err)
	require.Contains(t, err.Error(), "exactly one path argument is required")
}
