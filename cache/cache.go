package cache

import (
	"container/list"
	"sort"
	"sync"
	"time"
)

// Cache is an in-memory key-value store with lazy expiration and
// hit/miss accounting.
//
// Entries are kept in a recency list so that a bounded cache can drop the
// least recently used entry. Expired entries are only removed when a Get
// observes them.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	lru     *list.List
	meta    *Meta
	cfg     config
}

// item is the value stored in each recency list element.
type item struct {
	key   string
	entry *Entry
}

// eviction is an entry removal pending notification to the eviction hook.
type eviction struct {
	key    string
	reason EvictionReason
}

// New creates an empty Cache.
func New(opts ...Option) *Cache {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Cache{
		entries: make(map[string]*list.Element),
		lru:     list.New(),
		meta:    newMeta(cfg.clock()),
		cfg:     cfg,
	}
}

// Get returns the value stored under key.
//
// A missing key is a miss. A key whose entry has expired is counted as both
// an expiry and a miss; the entry is evicted and not found is reported.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	now := c.cfg.clock()
	evicted := c.checkCacheExpired(now)

	el, ok := c.entries[key]
	if !ok {
		c.meta.miss(now)
		c.mu.Unlock()
		c.notify(evicted)
		return nil, false
	}

	it := el.Value.(*item)
	if it.entry.Expired(now) {
		c.meta.miss(now)
		c.meta.expire()
		evicted = append(evicted, c.evictExpired(el))
		c.mu.Unlock()
		c.notify(evicted)
		return nil, false
	}

	c.meta.hit(now)
	it.entry.touch(now)
	c.lru.MoveToFront(el)
	value := it.entry.Value
	c.mu.Unlock()
	c.notify(evicted)

	return value, true
}

// Has reports whether key holds an unexpired entry. It does not touch the
// entry or the counters.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	now := c.cfg.clock()
	evicted := c.checkCacheExpired(now)

	el, ok := c.entries[key]
	found := ok && !el.Value.(*item).entry.Expired(now)
	c.mu.Unlock()
	c.notify(evicted)

	return found
}

// Peek returns a copy of the entry stored under key, expired or not, without
// touching it or the counters. It does not apply the cache-level TTL.
func (c *Cache) Peek(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	return *el.Value.(*item).entry, true
}

// Set stores value under key, replacing any previous entry. The new entry
// gets a fresh creation time and the cache's configured TTL.
func (c *Cache) Set(key string, value any) *Cache {
	c.mu.Lock()
	now := c.cfg.clock()
	evicted := c.checkCacheExpired(now)

	entry := &Entry{
		Value:      value,
		CreatedAt:  now,
		TimeToLive: c.cfg.entryTTL,
	}

	if el, ok := c.entries[key]; ok {
		el.Value.(*item).entry = entry
		c.lru.MoveToFront(el)
	} else {
		if c.cfg.maxEntries > 0 {
			for c.lru.Len() >= c.cfg.maxEntries {
				evicted = append(evicted, c.evictOldest())
			}
		}
		c.entries[key] = c.lru.PushFront(&item{key: key, entry: entry})
	}
	c.meta.update(now)
	c.mu.Unlock()
	c.notify(evicted)

	return c
}

// Delete removes key. Deleting a missing key is a no-op.
func (c *Cache) Delete(key string) *Cache {
	c.mu.Lock()
	now := c.cfg.clock()
	evicted := c.checkCacheExpired(now)

	if el, ok := c.entries[key]; ok {
		c.lru.Remove(el)
		delete(c.entries, key)
		c.meta.update(now)
	}
	c.mu.Unlock()
	c.notify(evicted)

	return c
}

// Clear removes every entry and resets the counters. The creation time is
// preserved.
func (c *Cache) Clear() *Cache {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reset(c.cfg.clock())
	return c
}

// Size returns the number of stored entries, including expired ones that
// have not been accessed yet.
func (c *Cache) Size() int {
	c.mu.Lock()
	evicted := c.checkCacheExpired(c.cfg.clock())
	n := len(c.entries)
	c.mu.Unlock()
	c.notify(evicted)

	return n
}

// Empty reports whether the cache holds no entries.
func (c *Cache) Empty() bool {
	return c.Size() == 0
}

// Keys returns the stored keys in ascending order.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	evicted := c.checkCacheExpired(c.cfg.clock())
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	c.mu.Unlock()
	c.notify(evicted)

	sort.Strings(keys)
	return keys
}

// Statistics returns the cache metadata merged with its current size. It is
// a passive snapshot and does not apply the cache-level TTL.
func (c *Cache) Statistics() Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.meta.snapshot(len(c.entries))
}

// evictExpired removes an entry that was observed expired. Callers must
// hold c.mu.
func (c *Cache) evictExpired(el *list.Element) eviction {
	it := el.Value.(*item)
	c.lru.Remove(el)
	delete(c.entries, it.key)
	return eviction{key: it.key, reason: ReasonExpired}
}

// evictOldest removes the least recently used entry. Callers must hold c.mu.
func (c *Cache) evictOldest() eviction {
	el := c.lru.Back()
	it := el.Value.(*item)
	c.lru.Remove(el)
	delete(c.entries, it.key)
	c.meta.evict()
	return eviction{key: it.key, reason: ReasonCapacity}
}

// checkCacheExpired resets the whole cache once its cache-level TTL has
// elapsed. Callers must hold c.mu.
func (c *Cache) checkCacheExpired(now time.Time) []eviction {
	if c.cfg.cacheTTL <= 0 || now.Sub(c.meta.epoch()) < c.cfg.cacheTTL {
		return nil
	}

	var evicted []eviction
	if c.cfg.onEvict != nil {
		evicted = make([]eviction, 0, len(c.entries))
		for k := range c.entries {
			evicted = append(evicted, eviction{key: k, reason: ReasonReset})
		}
	}
	c.reset(now)
	return evicted
}

// reset empties the store. Callers must hold c.mu.
func (c *Cache) reset(now time.Time) {
	c.entries = make(map[string]*list.Element)
	c.lru.Init()
	c.meta.reset(now)
}

func (c *Cache) notify(evicted []eviction) {
	if c.cfg.onEvict == nil {
		return
	}
	for _, ev := range evicted {
		c.cfg.onEvict(ev.key, ev.reason)
	}
}
