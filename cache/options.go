package cache

import "time"

// Option configures a Cache.
type Option func(*config)

type config struct {
	entryTTL   time.Duration
	cacheTTL   time.Duration
	maxEntries int
	clock      func() time.Time
	onEvict    func(key string, reason EvictionReason)
}

func defaultConfig() config {
	return config{
		clock: time.Now,
	}
}

// WithTimeToLive sets the TTL applied to every entry created by Set.
// Zero or a negative duration means entries never expire.
func WithTimeToLive(ttl time.Duration) Option {
	return func(c *config) {
		c.entryTTL = ttl
	}
}

// WithCacheTimeToLive sets a TTL for the cache as a whole. Once it elapses
// (measured from creation or the last Clear) the next operation clears the
// cache before proceeding.
func WithCacheTimeToLive(ttl time.Duration) Option {
	return func(c *config) {
		c.cacheTTL = ttl
	}
}

// WithMaxEntries bounds the number of entries. When a new key would exceed
// the bound the least recently used entry is evicted. Zero means unbounded.
func WithMaxEntries(n int) Option {
	return func(c *config) {
		c.maxEntries = n
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithEvictionHook registers a callback invoked after an entry is evicted
// because it expired, exceeded capacity or the cache was reset.
// The hook runs outside the cache lock and may call back into the cache.
func WithEvictionHook(fn func(key string, reason EvictionReason)) Option {
	return func(c *config) {
		c.onEvict = fn
	}
}
