package mem

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewTTLCache[int](time.Hour, 0)
	cache.now = func() time.Time { return now }

	_, ok := cache.Get("k")
	assert.False(t, ok)

	cache.Set("k", 42)
	v, ok := cache.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	now = now.Add(59 * time.Minute)
	_, ok = cache.Get("k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get("k")
	assert.False(t, ok)
}

func TestTTLCache_SetSweepsExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewTTLCache[int](time.Hour, 0)
	cache.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		cache.Set(fmt.Sprintf("city-%d", i), i)
	}
	assert.Equal(t, 1000, cache.Len())

	now = now.Add(2 * time.Hour)
	_, ok := cache.Get("city-1")
	assert.False(t, ok)

	cache.Set("fresh", 1)
	assert.Equal(t, 1, cache.Len(), "expired entries are dropped on set")
}

func TestTTLCache_SizeCap(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewTTLCache[string](time.Hour, 3)
	cache.now = func() time.Time { return now }

	for _, k := range []string{"a", "b", "c"} {
		cache.Set(k, k)
		now = now.Add(time.Minute)
	}
	cache.Set("d", "d")
	assert.Equal(t, 3, cache.Len())

	_, ok := cache.Get("a")
	assert.False(t, ok, "entry closest to expiry is evicted")
	for _, k := range []string{"b", "c", "d"} {
		v, ok := cache.Get(k)
		assert.True(t, ok)
		assert.Equal(t, k, v)
	}

	cache.Set("d", "again")
	assert.Equal(t, 3, cache.Len(), "overwriting a key does not evict")
}
