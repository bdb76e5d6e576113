package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/splitter"
	"github.com/urfave/cli/v3"
)

// splitCmd prints the statements of a script the way the executor would run
// them, one numbered block per statement.
func splitCmd() *cli.Command {
	return &cli.Command{
		Name:      "split",
		Usage:     "Split a SQL script into statements",
		ArgsUsage: "<path>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one path argument is required")
			}

			text, err := readSQL(cmd.Args().First())
			if err != nil {
				return err
			}

			w := output(cmd)
			for i, stmt := range splitter.Split(text) {
				if _, err := fmt.Fprintf(w, "-- statement %d\n%s\n\n", i+1, stmt); err != nil {
					return errors.Wrap(err, "failed to write statements")
				}
			}

			return nil
		},
	}
}
