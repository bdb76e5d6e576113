package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/config"
	"github.com/pseudomuto/sqldesk/pkg/consts"
	"github.com/pseudomuto/sqldesk/pkg/format"
	"github.com/urfave/cli/v3"
)

// fmtCmd creates a CLI command for formatting SQL files.
// This command provides goimports-like functionality for SQL files, allowing users
// to format individual files or entire directory trees recursively.
//
// The command supports two output modes:
//   - Stdout mode (default): Formatted SQL is written to standard output
//   - Write mode (-w flag): Files are modified in-place with formatted content
//
// Path handling:
//   - File paths: Format the specified SQL file directly
//   - Directory paths: Recursively find and format all .sql files
//   - "-": Format standard input
//
// Formatting never fails on invalid SQL; the formatter is purely textual and
// follows the format section of sqldesk.yaml.
//
// Examples:
//
//	# Format single file to stdout
//	sqldesk fmt homework.sql
//
//	# Format all SQL files in directory tree in-place
//	sqldesk fmt -w queries/
func fmtCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format SQL files",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one path argument is required")
			}

			path := cmd.Args().First()
			writeBack := cmd.Bool("write")

			if path == "-" {
				if writeBack {
					return errors.New("cannot write standard input back")
				}

				text, err := readSQL(path)
				if err != nil {
					return err
				}
				return writeFormatted(output(cmd), cfg.GetFormatter().Format(text))
			}

			return formatPath(cfg.GetFormatter(), path, writeBack, output(cmd))
		},
	}
}

// formatPath handles formatting of either a single file or directory recursively.
func formatPath(f *format.Formatter, path string, writeBack bool, writer io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to access path: %s", path)
	}

	if info.IsDir() {
		return formatDirectory(f, path, writeBack, writer)
	}

	return formatFile(f, path, writeBack, writer)
}

// formatDirectory recursively walks through a directory and formats all .sql files.
// It processes files in lexicographical order for consistent behavior across platforms.
func formatDirectory(f *format.Formatter, dir string, writeBack bool, writer io.Writer) error {
	var sqlFiles []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			sqlFiles = append(sqlFiles, path)
		}

		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to walk directory: %s", dir)
	}

	if len(sqlFiles) == 0 {
		return errors.Errorf("no SQL files found in directory: %s", dir)
	}

	for _, sqlFile := range sqlFiles {
		if err := formatFile(f, sqlFile, writeBack, writer); err != nil {
			return errors.Wrapf(err, "failed to format file: %s", sqlFile)
		}
	}

	return nil
}

// formatFile formats a single SQL file and either writes to stdout or back to the file.
// Files that are already formatted are not rewritten.
func formatFile(f *format.Formatter, path string, writeBack bool, writer io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read file: %s", path)
	}

	formatted := f.Format(string(content))
	if formatted != "" {
		formatted += "\n"
	}

	if !writeBack {
		return writeFormatted(writer, formatted)
	}

	if formatted == string(content) {
		return nil
	}

	if err := os.WriteFile(path, []byte(formatted), consts.ModeFile); err != nil {
		return errors.Wrapf(err, "failed to write formatted content to file: %s", path)
	}

	return nil
}

func writeFormatted(w io.Writer, formatted string) error {
	if formatted != "" && !strings.HasSuffix(formatted, "\n") {
		formatted += "\n"
	}

	if _, err := fmt.Fprint(w, formatted); err != nil {
		return errors.Wrap(err, "failed to write formatted content to output")
	}

	return nil
}
