package mem

import (
	"sync"

	"github.com/goserg/darts/internal/normalize"
)

// Cache keeps a computed list and looks its entries up by player name. It is
// empty until the first Update and after every Invalidate.
type Cache[T any] struct {
	mu      sync.RWMutex
	valid   bool
	gen     uint64
	name    func(T) string
	ordered []T
	byName  map[string]T
}

func New[T any](name func(T) string) *Cache[T] {
	return &Cache[T]{
		name:   name,
		byName: make(map[string]T),
	}
}

// Generation changes on every Invalidate.
func (c *Cache[T]) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// Update stores items computed when the cache was at generation gen. It is a
// no-op if the cache was invalidated since.
func (c *Cache[T]) Update(gen uint64, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return false
	}
	c.ordered = make([]T, len(items))
	copy(c.ordered, items)
	c.byName = make(map[string]T, len(items))
	for i := range items {
		c.byName[normalize.Name(c.name(items[i]))] = items[i]
	}
	c.valid = true
	return true
}

func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.valid = false
	c.ordered = nil
	c.byName = make(map[string]T)
}

// All returns a copy of the cached list, false if it must be recomputed.
func (c *Cache[T]) All() ([]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid {
		return nil, false
	}
	out := make([]T, len(c.ordered))
	copy(out, c.ordered)
	return out, true
}

func (c *Cache[T]) GetByName(name string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.byName[normalize.Name(name)]
	return item, ok
}
