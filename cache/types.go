package cache

import "time"

// EvictionReason describes why an entry left a cache without being deleted
// explicitly.
type EvictionReason string

const (
	// ReasonExpired is reported when an access finds an entry past its TTL.
	ReasonExpired EvictionReason = "expired"
	// ReasonCapacity is reported when an entry is dropped to honor MaxEntries.
	ReasonCapacity EvictionReason = "capacity"
	// ReasonReset is reported for every entry dropped because the whole cache
	// outlived its cache-level TTL.
	ReasonReset EvictionReason = "reset"
)

// Entry represents a single value held by a Cache.
type Entry struct {
	// Value is the cached value.
	Value any
	// CreatedAt is when the entry was stored.
	CreatedAt time.Time
	// AccessedAt is when the entry was last returned by Get. Nil if never.
	AccessedAt *time.Time
	// TimeToLive is how long the entry stays valid. Zero means no expiration.
	TimeToLive time.Duration
}

// Expired reports whether the entry has exceeded its TTL at the given time.
// An entry is expired once now - CreatedAt >= TimeToLive.
func (e *Entry) Expired(now time.Time) bool {
	if e.TimeToLive <= 0 {
		return false
	}
	return now.Sub(e.CreatedAt) >= e.TimeToLive
}

// touch stamps the entry as accessed.
func (e *Entry) touch(now time.Time) {
	e.AccessedAt = &now
}

// Statistics is a point-in-time view of a cache's metadata plus its size.
type Statistics struct {
	CreatedAt  time.Time  `json:"created_at"`
	AccessedAt *time.Time `json:"accessed_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
	ClearedAt  *time.Time `json:"cleared_at"`
	Hits       uint64     `json:"hits"`
	Misses     uint64     `json:"misses"`
	Expired    uint64     `json:"expired"`
	Evictions  uint64     `json:"evictions"`
	Size       int        `json:"size"`
}

// HitRate returns hits / (hits + misses), or 0 when the cache was never read.
func (s Statistics) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total)
}
