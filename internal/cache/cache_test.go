package cache_test

import (
	"testing"
	"time"

	"globalven/internal/cache"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache_PutGet(t *testing.T) {
	c := cache.NewTTLCache()

	c.Put("k", "v", time.Minute)

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestTTLCache_ExpiredEntryDroppedOnRead(t *testing.T) {
	c := cache.NewTTLCache()

	c.Put("k", "v", time.Nanosecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)

	// already removed by the read, nothing left to sweep
	assert.Equal(t, 0, c.SweepExpired())
}

func TestTTLCache_Invalidate(t *testing.T) {
	c := cache.NewTTLCache()

	c.Put("k", "v", time.Minute)
	c.Invalidate("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestTTLCache_SweepExpired(t *testing.T) {
	c := cache.NewTTLCache()

	c.Put("stale1", 1, time.Nanosecond)
	c.Put("stale2", 2, time.Nanosecond)
	c.Put("fresh", 3, time.Minute)
	time.Sleep(5 * time.Millisecond)

	assert.Equal(t, 2, c.SweepExpired())

	got, ok := c.Get("fresh")
	assert.True(t, ok)
	assert.Equal(t, 3, got)
}

func TestTTLCache_ZeroTTLUsesDefault(t *testing.T) {
	c := cache.NewTTLCache()

	c.Put("k", "v", 0)

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}
