package categories

import (
	"fmt"
	"slices"

	"github.com/nothingbut/bookshelf/pkg/models"
)

// DefaultMaxHops bounds the parent walk when no ceiling is configured.
const DefaultMaxHops = 64

// Lookup gives read access to the category table by identifier.
type Lookup interface {
	LookupCategory(id string) (*models.Category, bool)
}

// LookupFunc adapts a plain function to Lookup.
type LookupFunc func(id string) (*models.Category, bool)

func (f LookupFunc) LookupCategory(id string) (*models.Category, bool) {
	return f(id)
}

// NotFoundError is returned when the walk reaches an identifier that has no
// category record.
type NotFoundError struct {
	ID      string
	StartID string
}

func (e *NotFoundError) Error() string {
	if e.ID == e.StartID {
		return fmt.Sprintf("category %q not found", e.ID)
	}
	return fmt.Sprintf("category %q (parent in the chain of %q) not found", e.ID, e.StartID)
}

// CycleError is returned when the walk follows more parent links than the
// ceiling allows, which means the taxonomy is cyclic or malformed.
type CycleError struct {
	StartID string
	MaxHops int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("category %q does not reach a root within %d hops", e.StartID, e.MaxHops)
}

// ResolvePath walks parent links from startID to the taxonomy root and
// returns the display names in root-to-leaf order. At most maxHops parent
// links are followed; maxHops <= 0 means DefaultMaxHops.
func ResolvePath(startID string, lookup Lookup, maxHops int) ([]string, error) {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}

	var names []string
	id := startID
	for hops := 0; ; hops++ {
		if hops > maxHops {
			return nil, &CycleError{StartID: startID, MaxHops: maxHops}
		}

		cat, ok := lookup.LookupCategory(id)
		if !ok {
			return nil, &NotFoundError{ID: id, StartID: startID}
		}
		names = append(names, cat.Name)

		if cat.IsRoot() {
			break
		}
		id = cat.ParentID
	}

	// The walk collects leaf first.
	slices.Reverse(names)
	return names, nil
}
