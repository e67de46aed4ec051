package datefmt

import (
	"sync"
	"sync/atomic"

	"github.com/golang/groupcache/lru"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the capacity used by NewFormatter when no cache is given.
const DefaultCacheSize = 4096

// Cache memoises formatted date strings. Entries never change once written,
// so a concurrent miss on the same key computes the value only once.
// A Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries *lru.Cache
	flight  singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCache returns a cache holding at most capacity entries, evicting the
// least recently used. A capacity of zero or less means no limit.
func NewCache(capacity int) *Cache {
	if capacity < 0 {
		capacity = 0
	}
	return &Cache{entries: lru.New(capacity)}
}

// Stats reports cache hits, misses and the current number of entries.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

func (c *Cache) lookup(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (c *Cache) store(key, value string) {
	c.mu.Lock()
	c.entries.Add(key, value)
	c.mu.Unlock()
}

// GetOrCompute returns the value cached under key, calling compute to fill
// it on a miss.
func (c *Cache) GetOrCompute(key string, compute func() string) string {
	if v, ok := c.lookup(key); ok {
		c.hits.Add(1)
		return v
	}
	v, _, _ := c.flight.Do(key, func() (interface{}, error) {
		if v, ok := c.lookup(key); ok {
			c.hits.Add(1)
			return v, nil
		}
		c.misses.Add(1)
		s := compute()
		c.store(key, s)
		return s, nil
	})
	return v.(string)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Entries: c.Len()}
}

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries.Clear()
	c.mu.Unlock()
	c.hits.Store(0)
	c.misses.Store(0)
}
