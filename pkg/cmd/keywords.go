package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/keywords"
	"github.com/urfave/cli/v3"
)

// keywordsCmd lists the keywords the formatter and highlighter recognise, or
// with --linebreaks the phrases the formatter starts a new line before.
func keywordsCmd() *cli.Command {
	return &cli.Command{
		Name:  "keywords",
		Usage: "List the recognised SQL keywords",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "linebreaks",
				Usage: "list the linebreak phrases, longest first",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			words := keywords.All()
			if cmd.Bool("linebreaks") {
				words = words[:0]
				for _, p := range keywords.Linebreaks() {
					words = append(words, p.String())
				}
			}

			_, err := fmt.Fprintln(output(cmd), strings.Join(words, "\n"))
			return errors.Wrap(err, "failed to write keywords")
		},
	}
}
