package cache

import "time"

// Meta tracks hit/miss/expiry counters and lifecycle timestamps for one cache.
//
// Meta is owned by a Cache and mutated only under the cache's lock.
type Meta struct {
	createdAt  time.Time
	accessedAt *time.Time
	updatedAt  *time.Time
	clearedAt  *time.Time

	hits      uint64
	misses    uint64
	expired   uint64
	evictions uint64
}

func newMeta(now time.Time) *Meta {
	return &Meta{createdAt: now}
}

// hit records a successful lookup.
func (m *Meta) hit(now time.Time) {
	m.accessedAt = &now
	m.hits++
}

// miss records a failed lookup.
func (m *Meta) miss(now time.Time) {
	m.accessedAt = &now
	m.misses++
}

// expire records an entry observed past its TTL at access time.
func (m *Meta) expire() {
	m.expired++
}

// evict records an entry dropped to stay within capacity.
func (m *Meta) evict() {
	m.evictions++
}

// update stamps a write to the store.
func (m *Meta) update(now time.Time) {
	m.updatedAt = &now
}

// reset zeroes the counters and stamps the clear. CreatedAt is kept.
func (m *Meta) reset(now time.Time) {
	m.updatedAt = &now
	m.clearedAt = &now
	m.hits = 0
	m.misses = 0
	m.expired = 0
	m.evictions = 0
}

// epoch is the point the cache-level TTL is measured from.
func (m *Meta) epoch() time.Time {
	if m.clearedAt != nil {
		return *m.clearedAt
	}
	return m.createdAt
}

func (m *Meta) snapshot(size int) Statistics {
	return Statistics{
		CreatedAt:  m.createdAt,
		AccessedAt: m.accessedAt,
		UpdatedAt:  m.updatedAt,
		ClearedAt:  m.clearedAt,
		Hits:       m.hits,
		Misses:     m.misses,
		Expired:    m.expired,
		Evictions:  m.evictions,
		Size:       size,
	}
}
