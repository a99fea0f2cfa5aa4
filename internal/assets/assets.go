// Package assets caches values decoded from files, reloading an entry when
// its file changes on disk.
package assets

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// LoadFunc decodes the file at path.
type LoadFunc[V any] func(path string) (V, error)

type entry[V any] struct {
	modTime time.Time
	size    int64
	value   V
}

// Cache maps file paths to decoded values. An entry is reused while the
// file's size and modification time are unchanged.
type Cache[V any] struct {
	load    LoadFunc[V]
	entries map[string]entry[V]
	mu      sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a cache backed by load.
func NewCache[V any](load LoadFunc[V]) *Cache[V] {
	return &Cache[V]{
		load:    load,
		entries: make(map[string]entry[V]),
	}
}

// Get returns the cached value for path, loading it when absent or stale.
func (c *Cache[V]) Get(path string) (V, error) {
	var zero V
	fi, err := os.Stat(path)
	if err != nil {
		return zero, fmt.Errorf("stat %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[path]; ok && e.size == fi.Size() && e.modTime.Equal(fi.ModTime()) {
		c.hits++
		return e.value, nil
	}
	c.misses++

	v, err := c.load(path)
	if err != nil {
		delete(c.entries, path)
		return zero, err
	}
	c.entries[path] = entry[V]{modTime: fi.ModTime(), size: fi.Size(), value: v}
	return v, nil
}

// Evict drops path from the cache.
func (c *Cache[V]) Evict(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear clears the cache.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache[V]) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
