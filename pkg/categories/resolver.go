package categories

import (
	"sync"

	"github.com/patrickmn/go-cache"
)

// Resolver resolves category paths against one table and remembers the
// results. A path only changes when the table does, so entries never expire;
// Reset drops them all along with the old table.
type Resolver struct {
	mu      sync.RWMutex
	lookup  Lookup
	maxHops int
	paths   *cache.Cache
}

func NewResolver(lookup Lookup, maxHops int) *Resolver {
	return &Resolver{
		lookup:  lookup,
		maxHops: maxHops,
		paths:   cache.New(cache.NoExpiration, 0),
	}
}

// Resolve returns the root-to-leaf path of startID. Failures are not
// remembered.
func (r *Resolver) Resolve(startID string) ([]string, error) {
	// Held across the walk so Reset can't interleave a flush with a Set
	// computed from the previous table.
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cached, ok := r.paths.Get(startID); ok {
		return clonePath(cached.([]string)), nil
	}

	path, err := ResolvePath(startID, r.lookup, r.maxHops)
	if err != nil {
		return nil, err
	}

	r.paths.Set(startID, path, cache.NoExpiration)
	return clonePath(path), nil
}

// Reset replaces the table and forgets every resolved path.
func (r *Resolver) Reset(lookup Lookup) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lookup = lookup
	r.paths.Flush()
}

func clonePath(path []string) []string {
	out := make([]string, len(path))
	copy(out, path)
	return out
}
