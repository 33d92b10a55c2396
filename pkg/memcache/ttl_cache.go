package mem

import (
	"sync"
	"time"
)

// TTLCache is a small expiring map used for memoising slow upstream lookups.
// Expired entries are swept on every Set and the map never holds more than
// maxEntries values; when full, the entry closest to expiry is evicted.
type TTLCache[V any] struct {
	mu         sync.RWMutex
	data       map[string]ttlEntry[V]
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// NewTTLCache creates a cache; maxEntries <= 0 leaves the size unbounded.
func NewTTLCache[V any](ttl time.Duration, maxEntries int) *TTLCache[V] {
	return &TTLCache[V]{
		data:       make(map[string]ttlEntry[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		if cur, still := c.data[key]; still && c.now().After(cur.expiresAt) {
			delete(c.data, key)
		}
		c.mu.Unlock()

		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepLocked()
	if _, exists := c.data[key]; !exists && c.maxEntries > 0 && len(c.data) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.data[key] = ttlEntry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Len reports the number of stored entries, expired ones included until the next sweep.
func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func (c *TTLCache[V]) sweepLocked() {
	now := c.now()
	for k, e := range c.data {
		if now.After(e.expiresAt) {
			delete(c.data, k)
		}
	}
}

func (c *TTLCache[V]) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for k, e := range c.data {
		if !found || e.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt, found = k, e.expiresAt, true
		}
	}
	if found {
		delete(c.data, oldestKey)
	}
}
