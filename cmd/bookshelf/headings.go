package main

import (
	"fmt"
	"os"

	"github.com/nothingbut/bookshelf/pkg/headings"
	"github.com/nothingbut/bookshelf/pkg/textenc"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func headingsCommand() *cli.Command {
	return &cli.Command{
		Name:      "headings",
		Usage:     "print the chapter headings found in a legacy text file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "encoding", Value: "gbk", Usage: "encoding of the file when it isn't UTF-8"},
			&cli.BoolFlag{Name: "prologues", Value: true, Usage: "also match prologue headings such as 楔子"},
			&cli.IntFlag{Name: "max", Value: 10000, Usage: "fail when more headings than this are found (0 disables)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one file", 2)
			}

			raw, err := os.ReadFile(c.Args().First())
			if err != nil {
				return errors.WithStack(err)
			}

			text, err := textenc.Decode(raw, textenc.Sniff(raw, c.String("encoding")))
			if err != nil {
				return err
			}

			d := headings.NewDetector(headings.Options{
				MaxMatches:       c.Int("max"),
				IncludePrologues: c.Bool("prologues"),
			})
			hs, err := d.Detect(text)
			if err != nil {
				return err
			}

			w := c.App.Writer
			for _, h := range hs {
				fmt.Fprintf(w, "%d\t%s\t%s\n", h.Offset, h.Kind, h.Line)
			}
			return nil
		},
	}
}
