package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
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

func TestCache_GetSet(t *testing.T) {
	t.Parallel()

	c := New()

	v, ok := c.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, v)

	c.Set("a", 1).Set("b", "two")

	v, ok = c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = c.Get("b")
	require.True(t, ok)
	assert.Equal(t, "two", v)

	stats := c.Statistics()
	assert.Equal(t, uint64(2), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 2, stats.Size)
	assert.NotNil(t, stats.AccessedAt)
	assert.NotNil(t, stats.UpdatedAt)
	assert.Nil(t, stats.ClearedAt)
}

func TestCache_Expiry(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := New(WithTimeToLive(10*time.Second), WithClock(clock.Now))
	c.Set("k", "v")

	clock.Advance(9 * time.Second)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	// Entry is expired exactly at TTL.
	clock.Advance(1 * time.Second)
	v, ok = c.Get("k")
	assert.False(t, ok)
	assert.Nil(t, v)

	stats := c.Statistics()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(1), stats.Expired)
	assert.Equal(t, 0, stats.Size, "expired entry should be evicted on access")

	// A second access is an ordinary miss.
	_, ok = c.Get("k")
	assert.False(t, ok)
	stats = c.Statistics()
	assert.Equal(t, uint64(1), stats.Expired)
	assert.Equal(t, uint64(2), stats.Misses)
}

func TestCache_ExpiryIsLazy(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := New(WithTimeToLive(time.Second), WithClock(clock.Now))
	c.Set("a", 1).Set("b", 2)

	clock.Advance(time.Hour)

	assert.Equal(t, 2, c.Size(), "expired entries stay until accessed")
	assert.False(t, c.Has("a"))
	assert.Equal(t, uint64(0), c.Statistics().Expired, "Has does not count expiries")

	entry, ok := c.Peek("a")
	require.True(t, ok)
	assert.True(t, entry.Expired(clock.Now()))

	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Size())
	assert.Equal(t, []string{"b"}, c.Keys())
}

func TestCache_NoTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := New(WithClock(clock.Now))
	c.Set("k", "v")

	clock.Advance(24 * 365 * time.Hour)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestCache_SetOverwritesWithFreshEntry(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := New(WithTimeToLive(10*time.Second), WithClock(clock.Now))
	c.Set("k", "old")
	_, _ = c.Get("k")

	clock.Advance(8 * time.Second)
	c.Set("k", "new")

	entry, ok := c.Peek("k")
	require.True(t, ok)
	assert.Equal(t, "new", entry.Value)
	assert.Equal(t, clock.Now(), entry.CreatedAt)
	assert.Nil(t, entry.AccessedAt, "overwrite should not carry timestamps over")

	clock.Advance(8 * time.Second)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestCache_GetTouchesEntry(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := New(WithClock(clock.Now))
	c.Set("k", "v")

	entry, _ := c.Peek("k")
	assert.Nil(t, entry.AccessedAt)

	clock.Advance(time.Minute)
	_, _ = c.Get("k")

	entry, _ = c.Peek("k")
	require.NotNil(t, entry.AccessedAt)
	assert.Equal(t, clock.Now(), *entry.AccessedAt)
}

func TestCache_Delete(t *testing.T) {
	t.Parallel()

	c := New()
	c.Set("a", 1).Set("b", 2)

	c.Delete("a").Delete("missing")

	assert.Equal(t, []string{"b"}, c.Keys())
	assert.False(t, c.Has("a"))
	assert.True(t, c.Has("b"))
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := New(WithClock(clock.Now))
	created := c.Statistics().CreatedAt

	c.Set("a", 1)
	_, _ = c.Get("a")
	_, _ = c.Get("b")

	clock.Advance(time.Minute)
	c.Clear()

	stats := c.Statistics()
	assert.True(t, c.Empty())
	assert.Equal(t, uint64(0), stats.Hits)
	assert.Equal(t, uint64(0), stats.Misses)
	assert.Equal(t, uint64(0), stats.Expired)
	assert.Equal(t, created, stats.CreatedAt, "creation time survives a clear")
	require.NotNil(t, stats.ClearedAt)
	assert.Equal(t, clock.Now(), *stats.ClearedAt)
	require.NotNil(t, stats.UpdatedAt)
	assert.Equal(t, clock.Now(), *stats.UpdatedAt)
}

func TestCache_CounterInvariant(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := New(WithTimeToLive(5*time.Second), WithClock(clock.Now))

	gets := 0
	for i := 0; i < 20; i++ {
		key := fmt.Sprintf("k%d", i%4)
		if i%3 == 0 {
			c.Set(key, i)
		}
		_, _ = c.Get(key)
		gets++
		clock.Advance(2 * time.Second)
	}

	stats := c.Statistics()
	assert.Equal(t, uint64(gets), stats.Hits+stats.Misses)
	assert.LessOrEqual(t, stats.Expired, stats.Misses)
}

func TestCache_MaxEntries(t *testing.T) {
	t.Parallel()

	var evicted []string
	c := New(
		WithMaxEntries(2),
		WithEvictionHook(func(key string, reason EvictionReason) {
			assert.Equal(t, ReasonCapacity, reason)
			evicted = append(evicted, key)
		}),
	)

	c.Set("a", 1).Set("b", 2)
	_, _ = c.Get("a") // b is now least recently used
	c.Set("c", 3)

	assert.Equal(t, []string{"a", "c"}, c.Keys())
	assert.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, uint64(1), c.Statistics().Evictions)

	// Overwriting an existing key never evicts.
	c.Set("a", 10)
	assert.Equal(t, 2, c.Size())
	assert.Len(t, evicted, 1)
}

func TestCache_EvictionHookOnExpiry(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	type event struct {
		key    string
		reason EvictionReason
	}
	var events []event

	var c *Cache
	c = New(
		WithTimeToLive(time.Second),
		WithClock(clock.Now),
		WithEvictionHook(func(key string, reason EvictionReason) {
			// Hooks run outside the lock, so re-entering must not deadlock.
			_ = c.Size()
			events = append(events, event{key, reason})
		}),
	)

	c.Set("k", 1)
	clock.Advance(2 * time.Second)
	_, ok := c.Get("k")

	assert.False(t, ok)
	assert.Equal(t, []event{{"k", ReasonExpired}}, events)
}

func TestCache_CacheTimeToLive(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	var reasons []EvictionReason
	c := New(
		WithCacheTimeToLive(time.Minute),
		WithClock(clock.Now),
		WithEvictionHook(func(_ string, reason EvictionReason) {
			reasons = append(reasons, reason)
		}),
	)

	c.Set("a", 1).Set("b", 2)
	_, _ = c.Get("a")

	clock.Advance(59 * time.Second)
	_, ok := c.Get("b")
	require.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.True(t, c.Empty())
	assert.Equal(t, []EvictionReason{ReasonReset, ReasonReset}, reasons)

	stats := c.Statistics()
	require.NotNil(t, stats.ClearedAt)
	assert.Equal(t, uint64(0), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses, "the triggering Get counts against the fresh cache")

	// The next window is measured from the reset.
	c.Set("a", 1)
	clock.Advance(30 * time.Second)
	_, ok = c.Get("a")
	assert.True(t, ok)
}

func TestCache_CacheTimeToLiveOnEveryOperation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		check func(t *testing.T, c *Cache)
	}{
		{
			name:  "has",
			check: func(t *testing.T, c *Cache) { assert.False(t, c.Has("a")) },
		},
		{
			name:  "size",
			check: func(t *testing.T, c *Cache) { assert.Equal(t, 0, c.Size()) },
		},
		{
			name:  "empty",
			check: func(t *testing.T, c *Cache) { assert.True(t, c.Empty()) },
		},
		{
			name:  "keys",
			check: func(t *testing.T, c *Cache) { assert.Empty(t, c.Keys()) },
		},
		{
			name: "delete",
			check: func(t *testing.T, c *Cache) {
				c.Delete("other")
				assert.Equal(t, 0, c.Statistics().Size)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clock := newFakeClock()
			var (
				mu     sync.Mutex
				events []string
			)
			c := New(
				WithCacheTimeToLive(time.Minute),
				WithClock(clock.Now),
				WithEvictionHook(func(key string, reason EvictionReason) {
					mu.Lock()
					defer mu.Unlock()
					events = append(events, key+":"+string(reason))
				}),
			)
			c.Set("a", 1)

			clock.Advance(2 * time.Minute)
			tt.check(t, c)

			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, []string{"a:reset"}, events)

			stats := c.Statistics()
			assert.NotNil(t, stats.ClearedAt)
			assert.Equal(t, 0, stats.Size)
		})
	}
}

func TestCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := New(WithMaxEntries(16))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g+i)%32)
				c.Set(key, i)
				_, _ = c.Get(key)
				if i%10 == 0 {
					c.Delete(key)
				}
			}
		}(g)
	}
	wg.Wait()

	stats := c.Statistics()
	assert.Equal(t, uint64(8*200), stats.Hits+stats.Misses)
	assert.LessOrEqual(t, c.Size(), 16)
}
