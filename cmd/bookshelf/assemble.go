package main

import (
	"github.com/nothingbut/bookshelf/pkg/export"
	"github.com/nothingbut/bookshelf/pkg/library"
	"github.com/nothingbut/bookshelf/pkg/pipeline"
	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"
)

func assembleCommand() *cli.Command {
	return &cli.Command{
		Name:  "assemble",
		Usage: "assemble books and write them out",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "format", Value: cli.NewStringSlice("json", "markdown"), Usage: "output formats (json, markdown)"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output directory (defaults to output_dir)"},
			&cli.StringSliceFlag{Name: "book", Usage: "only assemble these book IDs"},
			&cli.StringFlag{Name: "category", Usage: "only assemble books in this category"},
		},
		Action: func(c *cli.Context) error {
			cfg, db, err := openDatabase(c)
			if err != nil {
				return err
			}
			defer db.Close()

			dir := c.String("output")
			if dir == "" {
				dir = cfg.OutputDir
			}
			sink, err := export.ForFormats(dir, c.StringSlice("format"))
			if err != nil {
				return err
			}

			opts := pipeline.OptionsFromConfig(cfg)
			opts.Books = library.ListBooksOptions{IDs: c.StringSlice("book")}
			if category := c.String("category"); category != "" {
				opts.Books.CategoryID = &category
			}

			p, err := pipeline.New(library.NewService(db), opts)
			if err != nil {
				return err
			}

			log := logger.New()
			report, err := p.Run(log.WithContext(c.Context), sink)
			if err != nil {
				return err
			}

			failed := report.Failed()
			for _, res := range failed {
				log.Err(res.Err).Error("book not assembled", logger.Data{"book_id": res.BookID, "title": res.Title})
			}
			log.Info("done", logger.Data{
				"run_id":    report.RunID,
				"output":    dir,
				"succeeded": len(report.Succeeded()),
				"failed":    len(failed),
			})

			if len(failed) > 0 {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}
