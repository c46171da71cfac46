// internal/common/cache/ttl_test.go
package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock steps time manually.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func TestCache_SetGet(t *testing.T) {
	c := New[string](5 * time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", "v")
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestCache_ExpiryIsLazy(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock[int](10*time.Minute, clock.Now)

	c.Set("k", 42)

	clock.Advance(9 * time.Minute)
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 42, got)

	clock.Advance(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
	// Expired entry must have been evicted by the miss.
	assert.Equal(t, 0, c.Len())
}

func TestCache_SetRestartsTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock[int](10*time.Minute, clock.Now)

	c.Set("k", 1)
	clock.Advance(8 * time.Minute)
	c.Set("k", 2)
	clock.Advance(8 * time.Minute)

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestCache_Sweep(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock[string](5*time.Minute, clock.Now)

	c.Set("old1", "a")
	c.Set("old2", "b")
	clock.Advance(6 * time.Minute)
	c.Set("fresh", "c")

	removed := c.Sweep()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())

	got, ok := c.Get("fresh")
	assert.True(t, ok)
	assert.Equal(t, "c", got)
}

func TestCache_ZeroTTLDisables(t *testing.T) {
	c := New[string](0)
	c.Set("k", "v")
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int](time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c.Set(Key("k", string(rune('a'+n))), j)
			}
		}(i)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c.Get(Key("k", string(rune('a'+n))))
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 8, c.Len())
}

func TestHashIDs_OrderSensitive(t *testing.T) {
	a := HashIDs([]string{"p1", "p2", "p3"})
	b := HashIDs([]string{"p2", "p1", "p3"})
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, HashIDs([]string{"p1", "p2", "p3"}))
}
