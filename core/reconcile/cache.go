package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// RunFunc produces a fresh reconciliation result.
type RunFunc func(ctx context.Context) (*Result, error)

// cacheEntry is one stored result.
type cacheEntry struct {
	result *Result
	built  time.Time
}

// Cache holds reconciliation results keyed by a job fingerprint.
// Results are immutable, so a hit hands out the stored value as is.
type Cache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cacheEntry
	sf      singleflight.Group
	now     func() time.Time
}

// NewCache creates a cache whose entries live for ttl. A zero ttl disables
// storage; concurrent identical runs are still collapsed into one.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *Cache) expired(e cacheEntry) bool {
	if c.ttl == 0 {
		return true
	}
	return c.now().Sub(e.built) > c.ttl
}

// GetOrRun returns the cached result for key, or runs fn and stores its result.
// The boolean reports a cache hit.
func (c *Cache) GetOrRun(ctx context.Context, key string, fn RunFunc) (*Result, bool, error) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if exists && !c.expired(entry) {
		return entry.result, true, nil
	}

	hit := false
	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after winning the flight.
		c.mu.RLock()
		entry, exists := c.entries[key]
		c.mu.RUnlock()
		if exists && !c.expired(entry) {
			hit = true
			return entry.result, nil
		}

		res, err := fn(ctx)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[key] = cacheEntry{result: res, built: c.now()}
			c.mu.Unlock()
		}
		return res, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*Result), hit, nil
}

// Invalidate drops the entry for key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
