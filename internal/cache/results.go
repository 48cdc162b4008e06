// Package cache holds the process-wide search result cache: TTL-bounded,
// capacity-bounded, FIFO eviction beyond capacity and lazy expiry by age.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/erpworks/tablescout/internal/domain"
)

type entry struct {
	results    []domain.MergedRecord
	insertedAt time.Time
}

// ResultCache stores merged result lists keyed by normalized query text.
// Safe for concurrent use by simultaneous requests.
type ResultCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	entries  map[string]*entry
	order    []string // keys in insertion order, oldest first
	now      func() time.Time
}

// New creates a ResultCache with the given TTL and capacity.
func New(ttl time.Duration, capacity int) *ResultCache {
	return &ResultCache{
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[string]*entry, capacity),
		now:      time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (c *ResultCache) WithClock(now func() time.Time) *ResultCache {
	c.now = now
	return c
}

// Normalize canonicalizes query text into a cache key: trimmed and
// lower-cased. Context and user id are deliberately not part of the key.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Get returns the cached results for the key, or ok=false if the entry is
// absent or older than the TTL. Expired entries are removed lazily here.
func (c *ResultCache) Get(key string) ([]domain.MergedRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.insertedAt) > c.ttl {
		c.remove(key)
		return nil, false
	}

	// Shallow copy so callers can truncate without touching the cached slice.
	out := make([]domain.MergedRecord, len(e.results))
	copy(out, e.results)
	return out, true
}

// Put inserts or overwrites the entry for the key. When the cache would
// exceed its capacity in distinct keys, the single oldest-inserted entry is
// evicted (FIFO, not LRU). Overwriting keeps the key's original position.
func (c *ResultCache) Put(key string, results []domain.MergedRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.results = results
		e.insertedAt = c.now()
		return
	}

	if len(c.entries) >= c.capacity && len(c.order) > 0 {
		c.remove(c.order[0])
	}

	c.entries[key] = &entry{results: results, insertedAt: c.now()}
	c.order = append(c.order, key)
}

// Len returns the number of cached entries, expired or not.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove deletes a key from the map and the insertion order. Caller holds
// the lock.
func (c *ResultCache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
