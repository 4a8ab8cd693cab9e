// Package cache provides the in-memory caches used by the wargamer client.
//
// The package implements a small keyed store with optional time-to-live
// handling and hit/miss accounting. It is designed to:
//
//   - Memoize remote lookups (search indexes, translation tables)
//   - Expire entries lazily, on access, rather than with a background sweep
//   - Keep per-cache statistics for observability
//   - Let several clients share caches through an explicit registry
//
// # Architecture Overview
//
//   - Entry: a single value with creation/access timestamps and an optional TTL
//   - Meta: hit/miss/expiry counters and lifecycle timestamps for one cache
//   - Cache: the keyed store; owns its entries and its Meta
//   - Slot: a typed, single-key view over a Cache
//   - Manager: a registry mapping string identifiers to caches
//   - Collector: a prometheus.Collector exporting Manager statistics
//
// # Entry Lifecycle
//
// 1. **Creation**: Set creates a fresh Entry using the cache's per-entry TTL
// 2. **Access**: a successful Get stamps the entry's AccessedAt
// 3. **Expiration**: a Get that finds an expired entry counts an expiry,
// evicts the entry and reports not found
// 4. **Removal**: Delete, Clear, overwrites and capacity evictions destroy it
//
// Absence is never an error. Get reports it through its boolean result.
//
// # Thread Safety
//
// Cache, Slot and Manager are safe for concurrent use by multiple goroutines.
// Mutations are last-writer-wins; the values held here are always derivable
// from the remote API, so a lost write only costs a re-fetch.
package cache
