package models

import "github.com/uptrace/bun"

// DefaultVolume is the label given to chapters that appear before any volume
// heading in a plain text source.
const DefaultVolume = "正文"

// RawChapter is a chapter row as delivered by the legacy export. Position is
// the only ordering signal.
type RawChapter struct {
	bun.BaseModel `bun:"table:chapters,alias:ch"`

	ID       int    `bun:",pk,autoincrement" json:"-"`
	BookID   string `bun:",notnull" json:"book_id"`
	Position int    `bun:",notnull" json:"position"`
	Volume   string `bun:",notnull" json:"volume"`
	Title    string `bun:",notnull" json:"title"`
	Body     string `bun:",notnull" json:"body"`
}

// Chapter is the normalized form of a RawChapter.
type Chapter struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Index int    `json:"index"`
}
