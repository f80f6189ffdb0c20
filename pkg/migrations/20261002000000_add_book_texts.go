package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		// Raw legacy-encoded text for books that were never split into
		// chapter rows.
		_, err := db.Exec(`
			CREATE TABLE book_texts (
				book_id TEXT PRIMARY KEY REFERENCES books(id) ON DELETE CASCADE,
				content BLOB NOT NULL
			)
		`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("DROP TABLE IF EXISTS book_texts")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
