package sqlite_test

import (
	"testing"

	"github.com/pseudomuto/sqldesk/pkg/sqlite"
	"github.com/stretchr/testify/require"
)

func TestIsComplete(t *testing.T) {
	tests := []struct {
		sql      string
		expected bool
	}{
		{"SELECT 1;", true},
		{"SELECT 1", false},
		{"SELECT 1; -- trailing comment", true},
		{"SELECT 1;   \n", true},
		{"SELECT 'a;", false},
		{"SELECT 'a;b';", true},
		{`SELECT "x;`, false},
		{"SELECT 1 /* ; */", false},
		{"CREATE TRIGGER tr AFTER INSERT ON t BEGIN UPDATE t SET a = 1;", false},
		{"CREATE TRIGGER tr AFTER INSERT ON t BEGIN UPDATE t SET a = 1; END;", true},
		{"SELECT 'x\x00;';", true},
		{"SELECT 'x\x00;", false},
		{"SELECT 1;\x00", true},
		{";", true},
		{"", false},
	}

	c := sqlite.NewCompleter()
	defer c.Close()

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			require.Equal(t, tt.expected, c.IsComplete(tt.sql))
		})
	}
}

func TestCompleter_CloseTwice(t *testing.T) {
	c := sqlite.NewCompleter()
	c.Close()
	c.Close()
}
