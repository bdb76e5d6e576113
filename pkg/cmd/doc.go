// Package cmd provides CLI commands for the sqldesk tool.
//
// This package implements the command-line interface for sqldesk. Every
// command is a thin layer over the core packages: the formatter, the
// highlighter, the statement splitter and the session that owns the database
// connection and the recent file lists.
//
// # Available Commands
//
//   - init: Write a default sqldesk.yaml
//   - fmt: Format SQL files or directories of SQL files
//   - highlight: Print SQL with keywords and comments coloured
//   - split: Show how a script is split into statements
//   - run: Execute a script, a line range of it or inline SQL
//   - tables: List the tables of a database with their columns
//   - db create/open: Create or open a database file
//   - recent: List (and clean) the recently used files
//   - script open/save: Open a script formatted or save one with keywords uppercased
//   - keywords: List the recognised keywords or linebreak phrases
//
// # Command Structure
//
// Each command is implemented as a separate function that returns a
// *cli.Command, following the urfave/cli/v3 pattern. The commands are
// provided to the root command through an fx value group (see Module).
//
// # Global Options
//
// All commands support global flags:
//   - --dir, -d: Specify the working directory (defaults to current directory)
//   - --verbose: Enable debug logging
//   - --help, -h: Display command help
//   - --version: Display version information
//
// # Example Usage
//
//	sqldesk init --database school.db
//	sqldesk db create school.db
//	sqldesk run -e "CREATE TABLE students (id INTEGER PRIMARY KEY, name TEXT);"
//	sqldesk run --lines 3:7 homework.sql
//	sqldesk fmt -w homework.sql
//	sqldesk tables
package cmd
