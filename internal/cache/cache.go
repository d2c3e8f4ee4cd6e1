// Package cache memoizes toolpath patterns that repeat across layers.
//
// Towers print the same rings and wheels on many layers; a Cache keyed by
// the pattern parameters lets concurrent layer workers share them.
//
//	c := cache.New[meshKey, geom.Shape](256)
//	mesh, ok := c.Get(key)
//	if !ok {
//	    mesh = build()
//	    c.Set(key, mesh)
//	}
package cache

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"
)

// Cache is a thread-safe map with a soft size limit. Once the limit is
// exceeded the least recently used quarter of the entries is dropped.
//
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*entry[V]
	softLimit int
	tick      int64

	hits, misses atomic.Uint64
}

type entry[V any] struct {
	value V
	atime int64
}

// New creates a cache. A softLimit of 0 means unlimited.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*entry[V]),
		softLimit: softLimit,
	}
}

// Get returns the value stored for key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	c.tick++
	e.atime = c.tick
	return e.value, true
}

// Set stores value for key, replacing any previous value.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(key, value)
}

// GetOrCreate returns the cached value or stores the result of create.
// create runs under the cache lock and must not call back into the cache.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.hits.Add(1)
		c.tick++
		e.atime = c.tick
		return e.value
	}
	c.misses.Add(1)
	value := create()
	c.store(key, value)
	return value
}

// Caller must hold c.mu.
func (c *Cache[K, V]) store(key K, value V) {
	c.tick++
	c.entries[key] = &entry[V]{value: value, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evict()
	}
}

// evict drops the oldest entries until three quarters of the limit remain.
// Caller must hold c.mu.
func (c *Cache[K, V]) evict() {
	target := max(c.softLimit*3/4, 1)
	type aged struct {
		key   K
		atime int64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{k, e.atime})
	}
	slices.SortFunc(all, func(a, b aged) int { return cmp.Compare(a.atime, b.atime) })
	for _, a := range all[:len(all)-target] {
		delete(c.entries, a.key)
	}
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats contains cache statistics.
type Stats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// Stats returns the current statistics.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{Len: c.Len(), Hits: c.hits.Load(), Misses: c.misses.Load()}
}
