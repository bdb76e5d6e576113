package cmd

import (
	"testing"

	"github.com/pseudomuto/sqldesk/pkg/cmd/testutil"
	"github.com/stretchr/testify/require"
)

func TestTablesCommand(t *testing.T) {
	tests := []struct {
		name     string
		setup    []string
		expected string
	}{
		{
			name:     "no tables",
			expected: "No tables found in the current database.\n",
		},
		{
			name: "tables with columns",
			setup: []string{
				"CREATE TABLE students (id INTEGER PRIMARY KEY, name TEXT)",
				"CREATE TABLE courses (code TEXT, title TEXT, credits INTEGER)",
			},
			expected: "Tables in current database:\n\n" +
				"• courses (code, title, credits)\n" +
				"• students (id, name)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.NewWorkspace(t).WithDatabase("school.db", tt.setup...)

			output, err := testutil.RunCommand(t, tablesCmd(w.Config), "--db", "school.db")
			require.NoError(t, err)
			require.Equal(t, tt.expected, output)
		})
	}
}

func TestTablesCommand_NoDatabase(t *testing.T) {
	w := testutil.NewWorkspace(t)

	output, err := testutil.RunCommand(t, tablesCmd(w.Config))
	require.NoError(t, err)
	require.Equal(t, "No database selected.\n", output)
}
