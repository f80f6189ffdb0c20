package models

import "github.com/uptrace/bun"

// Category is one node of the library taxonomy. An empty ParentID marks a
// root category.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID       string `bun:",pk" json:"id"`
	Name     string `bun:",notnull" json:"name"`
	ParentID string `bun:",notnull" json:"parent_id"`
}

func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}
