package emailpattern

import "sync"

// Cache is a read-through per-run detection cache keyed by normalized
// organization key. Population is idempotent: Detect is pure, so
// concurrent callers may compute the same key redundantly and the
// first stored result wins. Callers inject a Cache rather than sharing
// hidden package state so tests and concurrent runs stay isolated.
type Cache struct {
	m sync.Map // orgKey -> Detection
}

// NewCache returns an empty detection cache.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns the detection for key, computing it from compute() on
// first use.
func (c *Cache) Get(key string, compute func() Detection) Detection {
	if v, ok := c.m.Load(key); ok {
		return v.(Detection)
	}
	det := compute()
	actual, _ := c.m.LoadOrStore(key, det)
	return actual.(Detection)
}
