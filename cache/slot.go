package cache

// Slot is a typed view over a single key of a Cache.
//
// It is used where a cache memoizes exactly one constructed value, such as a
// search index built from a remote listing.
type Slot[T any] struct {
	cache *Cache
	key   string
}

// NewSlot returns a Slot reading and writing key in c.
func NewSlot[T any](c *Cache, key string) *Slot[T] {
	return &Slot[T]{cache: c, key: key}
}

// Load returns the stored value. A missing, expired or differently typed
// value reports false.
func (s *Slot[T]) Load() (T, bool) {
	var zero T

	v, ok := s.cache.Get(s.key)
	if !ok {
		return zero, false
	}

	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Store replaces the stored value.
func (s *Slot[T]) Store(v T) {
	s.cache.Set(s.key, v)
}

// Reset removes the stored value.
func (s *Slot[T]) Reset() {
	s.cache.Delete(s.key)
}

// Cache returns the underlying cache.
func (s *Slot[T]) Cache() *Cache {
	return s.cache
}
