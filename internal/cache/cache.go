// Package cache provides a process-wide memoization cache with a fixed TTL.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

func (e entry[V]) isValid(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.fetchedAt) < ttl
}

// Cache memoizes values by key until they outlive the configured TTL.
// Expired entries are treated as absent and never served.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[K]entry[V]
}

// New creates an empty cache with the given TTL.
func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		ttl:     ttl,
		entries: make(map[K]entry[V]),
	}
}

// Get returns the cached value for key if present and still within the TTL.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !e.isValid(time.Now(), c.ttl) {
		var zero V
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Put stores value under key with a fresh timestamp.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{value: value, fetchedAt: time.Now()}
}

// Invalidate clears all entries unconditionally, regardless of TTL state.
func (c *Cache[K, V]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]entry[V])
}

// Len returns the number of stored entries, including expired ones that have
// not been touched since expiry.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
