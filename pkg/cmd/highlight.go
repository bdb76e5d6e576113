package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/config"
	"github.com/urfave/cli/v3"
)

// highlightCmd prints a script with keywords and comments coloured, or with
// --spans the list of spans a UI would apply as styles.
//
// Examples:
//
//	sqldesk highlight homework.sql
//	sqldesk highlight --format homework.sql
//	sqldesk highlight --spans homework.sql
func highlightCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "highlight",
		Usage:     "Print SQL with syntax highlighting",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "spans",
				Usage: "list the highlight spans instead of colouring the text",
			},
			&cli.BoolFlag{
				Name:  "format",
				Usage: "format the SQL before highlighting it",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one path argument is required")
			}

			text, err := readSQL(cmd.Args().First())
			if err != nil {
				return err
			}

			if cmd.Bool("format") {
				text = cfg.GetFormatter().Format(text)
			}

			h := cfg.GetHighlighter()
			w := output(cmd)

			if !cmd.Bool("spans") {
				return h.Render(w, text)
			}

			for _, s := range h.Spans(text) {
				if _, err := fmt.Fprintf(w, "%-13s %5d %5d %q\n", s.Kind, s.Start, s.End, s.Text(text)); err != nil {
					return errors.Wrap(err, "failed to write spans")
				}
			}

			return nil
		},
	}
}
