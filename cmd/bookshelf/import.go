package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nothingbut/bookshelf/pkg/library"
	"github.com/nothingbut/bookshelf/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "store a legacy text file as a book in the export database",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Required: true},
			&cli.StringFlag{Name: "title", Usage: "defaults to the file name"},
			&cli.StringFlag{Name: "author"},
			&cli.StringFlag{Name: "category", Required: true},
			&cli.StringFlag{Name: "category-name", Usage: "also create or rename the category"},
			&cli.StringFlag{Name: "category-parent", Usage: "parent of the category created by --category-name"},
			&cli.StringFlag{Name: "brief"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one file", 2)
			}
			path := c.Args().First()

			raw, err := os.ReadFile(path)
			if err != nil {
				return errors.WithStack(err)
			}

			_, db, err := openDatabase(c)
			if err != nil {
				return err
			}
			defer db.Close()

			title := c.String("title")
			if title == "" {
				title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			book := &models.BookMetadata{
				ID:         c.String("id"),
				Title:      title,
				Author:     c.String("author"),
				CategoryID: c.String("category"),
			}
			svc := library.NewService(db)
			if name := c.String("category-name"); name != "" {
				err := svc.CreateCategories(c.Context, []*models.Category{{
					ID:       c.String("category"),
					Name:     name,
					ParentID: c.String("category-parent"),
				}})
				if err != nil {
					return err
				}
			}

			err = svc.ImportBook(c.Context, book, library.ImportBookOptions{
				Text:  raw,
				Brief: c.String("brief"),
			})
			if err != nil {
				return err
			}

			logger.New().Info("book imported", logger.Data{"book_id": book.ID, "bytes": len(raw)})
			return nil
		},
	}
}
