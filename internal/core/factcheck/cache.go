package factcheck

import (
	"github.com/newsmesh/cognition/internal/lookup"
)

// Cache memoizes lookup outcomes per (name, type) pair for the lifetime of
// one validator. It is owned by a single pipeline instance and accessed
// from one goroutine, so it carries no locking.
type Cache struct {
	entries map[cacheKey]lookup.Result
}

type cacheKey struct {
	name string
	typ  string
}

func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]lookup.Result)}
}

func (c *Cache) Get(name, entityType string) (lookup.Result, bool) {
	res, ok := c.entries[cacheKey{name: name, typ: entityType}]
	return res, ok
}

func (c *Cache) Put(name, entityType string, res lookup.Result) {
	c.entries[cacheKey{name: name, typ: entityType}] = res
}
