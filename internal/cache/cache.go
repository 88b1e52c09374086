package cache

import (
	"sync"
	"time"
)

// DefaultTTL matches the legacy analytics memoization window.
const DefaultTTL = 15 * time.Minute

// Well-known keys.
const (
	KeyTransferStatistics = "transfer_statistics"
	KeyRateStatistics     = "rate_statistics"
)

type Cache interface {
	Get(key string) (any, bool)
	Put(key string, val any, ttl time.Duration)
	Invalidate(key string)
	SweepExpired() int
}

type entry struct {
	data   any
	expiry time.Time
}

type ttlCache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewTTLCache() Cache {
	return &ttlCache{
		entries: make(map[string]entry),
	}
}

// Get returns the cached value if present and fresh. Expired entries are
// dropped on read; there is no background sweeper.
func (c *ttlCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiry) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}

	return e.data, true
}

func (c *ttlCache) Put(key string, val any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c.mu.Lock()
	c.entries[key] = entry{
		data:   val,
		expiry: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *ttlCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// SweepExpired removes every expired entry and reports how many were dropped.
// Callers run it opportunistically, not on a timer.
func (c *ttlCache) SweepExpired() int {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiry) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}
