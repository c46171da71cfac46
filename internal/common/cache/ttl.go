// Package cache provides a small in-memory TTL cache. Entries expire a fixed
// duration after insertion; Get on an expired entry behaves as a miss and
// evicts it, and an optional sweeper proactively evicts expired entries to
// bound memory. Safe for concurrent use.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is a keyed store with per-entry expiry measured from insertion time.
type Cache[V any] struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
	store map[string]entry[V]
}

// New returns a cache with the given TTL. Zero or negative ttl disables
// caching entirely: Get always misses and Set is a no-op.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl:   ttl,
		now:   time.Now,
		store: make(map[string]entry[V]),
	}
}

// NewWithClock returns a cache using the supplied clock. Used by tests to
// step time across the TTL boundary without sleeping.
func NewWithClock[V any](ttl time.Duration, now func() time.Time) *Cache[V] {
	c := New[V](ttl)
	c.now = now
	return c
}

// Get retrieves an entry if still fresh. Expired entries are evicted lazily.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil || c.ttl <= 0 {
		return zero, false
	}

	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		c.mu.Lock()
		delete(c.store, key)
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Set stores a value under key, restarting its TTL.
func (c *Cache[V]) Set(key string, value V) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.store[key] = entry[V]{value: value, storedAt: c.now()}
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Sweep evicts every expired entry and returns how many were removed.
func (c *Cache[V]) Sweep() int {
	if c == nil || c.ttl <= 0 {
		return 0
	}
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, e := range c.store {
		if now.Sub(e.storedAt) > c.ttl {
			delete(c.store, k)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
func (c *Cache[V]) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
}

// Key joins the parts that influence a cached payload into a stable key.
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}

// HashIDs hashes an ordered id sequence so a cache hit is only valid for the
// exact same candidate set.
func HashIDs(ids []string) string {
	sum := sha256.Sum256([]byte(strings.Join(ids, "\x00")))
	return hex.EncodeToString(sum[:])
}
