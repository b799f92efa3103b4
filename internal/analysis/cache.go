package analysis

import (
	"sync"
	"time"

	"scanax/internal/models"
)

type cacheEntry struct {
	result    []models.Finding
	createdAt time.Time
}

// Cache maps a content hash to a previously validated finding set.
// Entries expire after the TTL but are only removed lazily, the first
// time a lookup observes a stale entry; there is no background sweep
// and no size bound.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry

	// now is swapped out in tests to exercise expiry without sleeping.
	now func() time.Time
}

// NewCache creates a cache whose entries stay fresh for ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached result for hash if it exists and is still
// fresh. A stale entry found here is deleted before reporting a miss.
func (c *Cache) Get(hash string) ([]models.Finding, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[hash]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.createdAt) > c.ttl {
		delete(c.entries, hash)
		return nil, false
	}
	return entry.result, true
}

// Put unconditionally stores result under hash, overwriting any prior
// entry and restarting its TTL.
func (c *Cache) Put(hash string, result []models.Finding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[hash] = cacheEntry{result: result, createdAt: c.now()}
}

// Len reports the number of entries currently held, stale or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
