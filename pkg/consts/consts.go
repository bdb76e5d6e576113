package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// ConfigFile is the name of the sqldesk configuration file
	ConfigFile = "sqldesk.yaml"

	// RecentSQLFile holds the most recently used SQL scripts, one path per line
	RecentSQLFile = "recent_sql_files.txt"

	// RecentDBFile holds the most recently used database files, one path per line
	RecentDBFile = "recent_db_files.txt"

	// DefaultRecentMax caps the length of each recent file list
	DefaultRecentMax = 10

	// DefaultStateDir is where recent file lists are stored when not configured
	DefaultStateDir = "."

	// DefaultKeywordColor is the foreground colour for keyword spans
	DefaultKeywordColor = "#3B5C8A"

	// DefaultCommentColor is the foreground colour for comment spans
	DefaultCommentColor = "#4F7F6F"
)
