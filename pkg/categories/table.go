package categories

import "github.com/nothingbut/bookshelf/pkg/models"

// Table is an identifier-indexed category table. It is not modified after
// construction, so concurrent lookups are safe.
type Table struct {
	byID map[string]*models.Category
}

// NewTable indexes cats by identifier. When an identifier repeats, the last
// record wins.
func NewTable(cats []*models.Category) *Table {
	byID := make(map[string]*models.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	return &Table{byID: byID}
}

func (t *Table) LookupCategory(id string) (*models.Category, bool) {
	c, ok := t.byID[id]
	return c, ok
}

func (t *Table) Len() int {
	return len(t.byID)
}
