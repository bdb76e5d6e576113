package cmd

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/cmd/testutil"
	"github.com/pseudomuto/sqldesk/pkg/consts"
	"github.com/pseudomuto/sqldesk/pkg/session"
	"github.com/stretchr/testify/require"
)

func TestScriptCommand_Open(t *testing.T) {
	w := testutil.NewWorkspace(t).WithFile("homework.sql", "select a from t; select 1;")

	output, err := testutil.RunCommand(t, scriptCmd(w.Config), "open", "homework.sql")
	require.NoError(t, err)
	require.Equal(t, "-- "+w.Path("homework.sql")+"\n"+formattedSQL, output)

	// Opening does not rewrite the file
	testutil.RequireFileExists(t, w.Path("homework.sql"), testutil.RequireFileEquals(t, "select a from t; select 1;"))
	testutil.RequireRecent(t, w.RecentFile(consts.RecentSQLFile), w.Path("homework.sql"))
}

func TestScriptCommand_OpenMissing(t *testing.T) {
	w := testutil.NewWorkspace(t)
	w.WithRecentSQLFiles(w.Path("gone.sql"), "/work/kept.sql")

	_, err := testutil.RunCommand(t, scriptCmd(w.Config), "open", "gone.sql")
	require.Error(t, err)
	require.True(t, errors.Is(err, session.ErrNotFound))

	testutil.RequireRecent(t, w.RecentFile(consts.RecentSQLFile), "/work/kept.sql")
}

func TestScriptCommand_Save(t *testing.T) {
	w := testutil.NewWorkspace(t).WithFile("draft.sql", "select a\nfrom t;\n")

	output, err := testutil.RunCommand(t, scriptCmd(w.Config), "save", "--from", "draft.sql", "homework.sql")
	require.NoError(t, err)
	require.Equal(t, "Saved script: "+w.Path("homework.sql")+"\n", output)

	testutil.RequireFileExists(t, w.Path("homework.sql"), testutil.RequireFileEquals(t, "SELECT a\nFROM t;\n"))
	testutil.RequireRecent(t, w.RecentFile(consts.RecentSQLFile), w.Path("homework.sql"))
}

func TestScriptCommand_SaveFailureKeepsRecent(t *testing.T) {
	w := testutil.NewWorkspace(t).WithFile("draft.sql", "SELECT 1;")

	_, err := testutil.RunCommand(t, scriptCmd(w.Config), "save", "--from", "draft.sql", "missing/dir/homework.sql")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to save script")
	testutil.RequireRecent(t, w.RecentFile(consts.RecentSQLFile))
}

func TestScriptCommand_RequiresPath(t *testing.T) {
	for _, sub := range []string{"open", "save"} {
		t.Run(sub, func(t *testing.T) {
			w := testutil.NewWorkspace(t)

			_, err := testutil.RunCommand(t, scriptCmd(w.Config), sub)
			require.Error(t, err)
			require.Contains(t, err.Error(), "exactly one path argument is required")
		})
	}
}
