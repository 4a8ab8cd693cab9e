package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// LogHit logs a cache hit event.
func LogHit(ctx context.Context, logger *slog.Logger, cacheID, key string) {
	if logger == nil {
		return
	}

	logger.DebugContext(ctx, "cache hit",
		"cache", cacheID,
		"key", key,
		"result", "hit")
}

// LogMiss logs a cache miss event.
func LogMiss(ctx context.Context, logger *slog.Logger, cacheID, key string) {
	if logger == nil {
		return
	}

	logger.DebugContext(ctx, "cache miss",
		"cache", cacheID,
		"key", key,
		"result", "miss")
}

// LogEviction logs an eviction event.
func LogEviction(ctx context.Context, logger *slog.Logger, cacheID, key string, reason EvictionReason) {
	if logger == nil {
		return
	}

	logger.DebugContext(ctx, "cache entry evicted",
		"cache", cacheID,
		"key", key,
		"reason", string(reason))
}

// EvictionLogger returns an eviction hook that logs through logger.
func EvictionLogger(logger *slog.Logger, cacheID string) func(string, EvictionReason) {
	return func(key string, reason EvictionReason) {
		LogEviction(context.Background(), logger, cacheID, key, reason)
	}
}

// LogStatistics logs a statistics snapshot for one cache.
func LogStatistics(ctx context.Context, logger *slog.Logger, cacheID string, stats Statistics) {
	if logger == nil {
		return
	}

	logger.InfoContext(ctx, "cache statistics",
		"cache", cacheID,
		"hit_rate", fmt.Sprintf("%.2f", stats.HitRate()),
		"hits", stats.Hits,
		"misses", stats.Misses,
		"expired", stats.Expired,
		"evictions", stats.Evictions,
		"entries", stats.Size,
	)
}
