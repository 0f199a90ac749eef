package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetPut(t *testing.T) {
	t.Parallel()

	c := New[string, int](time.Minute)

	_, ok := c.Get("kr")
	assert.False(t, ok, "empty cache should miss")

	c.Put("kr", 42)

	v, ok := c.Get("kr")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	// A different key still misses.
	_, ok = c.Get("us")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	t.Parallel()

	c := New[string, string](20 * time.Millisecond)
	c.Put("kr", "value")

	_, ok := c.Get("kr")
	require.True(t, ok, "fresh entry should hit")

	time.Sleep(30 * time.Millisecond)

	_, ok = c.Get("kr")
	assert.False(t, ok, "expired entry must be treated as absent")
	assert.Equal(t, 0, c.Len(), "expired entry is dropped on access")
}

func TestCacheInvalidate(t *testing.T) {
	t.Parallel()

	c := New[string, int](time.Hour)
	c.Put("kr", 1)
	c.Put("us", 2)
	require.Equal(t, 2, c.Len())

	c.Invalidate()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("kr")
	assert.False(t, ok, "invalidate must clear entries regardless of TTL")
}

func TestCacheOverwriteRefreshesTimestamp(t *testing.T) {
	t.Parallel()

	c := New[string, int](40 * time.Millisecond)
	c.Put("kr", 1)

	time.Sleep(25 * time.Millisecond)
	c.Put("kr", 2)
	time.Sleep(25 * time.Millisecond)

	v, ok := c.Get("kr")
	require.True(t, ok, "re-put entry should still be fresh")
	assert.Equal(t, 2, v)
}
