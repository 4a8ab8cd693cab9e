package cache

import (
	"sort"
	"sync"
)

// Manager is a registry of named caches.
//
// A Manager is an ordinary value: clients that should share lookups are given
// the same Manager, clients that should not are given different ones.
type Manager struct {
	mu     sync.RWMutex
	caches map[string]*Cache
}

// NewManager creates an empty registry.
func NewManager() *Manager {
	return &Manager{
		caches: make(map[string]*Cache),
	}
}

// Create builds a new cache and registers it under id, replacing any cache
// already registered there.
func (m *Manager) Create(id string, opts ...Option) *Cache {
	c := New(opts...)

	m.mu.Lock()
	m.caches[id] = c
	m.mu.Unlock()

	return c
}

// LoadOrCreate returns the cache registered under id, creating it with opts
// when absent. The boolean reports whether the cache already existed.
func (m *Manager) LoadOrCreate(id string, opts ...Option) (*Cache, bool) {
	m.mu.RLock()
	c, ok := m.caches[id]
	m.mu.RUnlock()
	if ok {
		return c, true
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-check after acquiring the write lock.
	if c, ok := m.caches[id]; ok {
		return c, true
	}
	c = New(opts...)
	m.caches[id] = c
	return c, false
}

// Get returns the cache registered under id.
func (m *Manager) Get(id string) (*Cache, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.caches[id]
	return c, ok
}

// Has reports whether a cache is registered under id.
func (m *Manager) Has(id string) bool {
	_, ok := m.Get(id)
	return ok
}

// Destroy unregisters the cache under id and returns it.
func (m *Manager) Destroy(id string) (*Cache, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.caches[id]
	if ok {
		delete(m.caches, id)
	}
	return c, ok
}

// IDs returns the registered identifiers in ascending order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	ids := make([]string, 0, len(m.caches))
	for id := range m.caches {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// Statistics returns a snapshot of every registered cache keyed by id.
func (m *Manager) Statistics() map[string]Statistics {
	m.mu.RLock()
	caches := make(map[string]*Cache, len(m.caches))
	for id, c := range m.caches {
		caches[id] = c
	}
	m.mu.RUnlock()

	stats := make(map[string]Statistics, len(caches))
	for id, c := range caches {
		stats[id] = c.Statistics()
	}
	return stats
}
