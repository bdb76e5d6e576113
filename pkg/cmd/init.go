package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/config"
	"github.com/pseudomuto/sqldesk/pkg/consts"
	"github.com/urfave/cli/v3"
)

// initCmd writes a sqldesk.yaml with the default settings to the working
// directory. An existing file is only replaced with --force.
//
// Examples:
//
//	sqldesk init
//	sqldesk --dir ~/classes/week3 init --database school.db
func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default sqldesk.yaml",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "database",
				Usage: "the default database file to record in the config",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "overwrite an existing sqldesk.yaml",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
			if !cmd.Bool("force") {
				flags |= os.O_EXCL
			}

			f, err := os.OpenFile(consts.ConfigFile, flags, consts.ModeFile)
			if err != nil {
				if os.IsExist(err) {
					return errors.Errorf("%s already exists, use --force to overwrite it", consts.ConfigFile)
				}
				return errors.Wrapf(err, "failed to create file: %s", consts.ConfigFile)
			}

			cfg := config.Default()
			cfg.Database = cmd.String("database")

			if err := cfg.Write(f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return errors.Wrapf(err, "failed to write file: %s", consts.ConfigFile)
			}

			_, err = fmt.Fprintf(output(cmd), "Created %s\n", consts.ConfigFile)
			return errors.Wrap(err, "failed to write output")
		},
	}
}
