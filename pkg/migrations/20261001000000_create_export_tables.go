package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE categories (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				parent_id TEXT NOT NULL DEFAULT ''
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`
			CREATE TABLE books (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				author TEXT NOT NULL DEFAULT '',
				category_id TEXT NOT NULL
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE INDEX ix_books_category_id ON books(category_id)`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`
			CREATE TABLE chapters (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				book_id TEXT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
				position INTEGER NOT NULL,
				volume TEXT NOT NULL DEFAULT '',
				title TEXT NOT NULL,
				body TEXT NOT NULL DEFAULT ''
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		// Chapters are always read back in position order per book.
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_chapters_book_position ON chapters(book_id, position)`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`
			CREATE TABLE briefs (
				book_id TEXT PRIMARY KEY REFERENCES books(id) ON DELETE CASCADE,
				text TEXT NOT NULL DEFAULT ''
			)
		`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		for _, table := range []string{"briefs", "chapters", "books", "categories"} {
			if _, err := db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
