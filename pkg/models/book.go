package models

import "github.com/uptrace/bun"

type BookMetadata struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID         string `bun:",pk" json:"id"`
	Title      string `bun:",notnull" json:"title"`
	Author     string `bun:",notnull" json:"author"`
	CategoryID string `bun:",notnull" json:"category_id"`
	Brief      string `bun:"-" json:"brief"`
}

// Brief is the summary text of a book, stored apart from the book row because
// the export fetches it separately.
type Brief struct {
	bun.BaseModel `bun:"table:briefs,alias:br"`

	BookID string `bun:",pk" json:"book_id"`
	Text   string `bun:",notnull" json:"text"`
}

// BookText holds the raw, possibly legacy-encoded, text of a book that has no
// chapter rows.
type BookText struct {
	bun.BaseModel `bun:"table:book_texts,alias:bt"`

	BookID  string `bun:",pk" json:"book_id"`
	Content []byte `bun:",notnull" json:"-"`
}
