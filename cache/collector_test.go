package cache

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Parallel()

	m := NewManager()
	names := m.Create("wot:names", WithMaxEntries(1))
	names.Set("a", 1).Set("b", 2)
	_, _ = names.Get("b")
	_, _ = names.Get("a")
	m.Create("wot:meta")

	collector := NewCollector(m, "wargamer")

	expected := `
# HELP wargamer_cache_hits_total Number of cache lookups that returned a value.
# TYPE wargamer_cache_hits_total counter
wargamer_cache_hits_total{cache="wot:meta"} 0
wargamer_cache_hits_total{cache="wot:names"} 1
# HELP wargamer_cache_misses_total Number of cache lookups that found nothing usable.
# TYPE wargamer_cache_misses_total counter
wargamer_cache_misses_total{cache="wot:meta"} 0
wargamer_cache_misses_total{cache="wot:names"} 1
# HELP wargamer_cache_evictions_total Number of entries evicted to stay within capacity.
# TYPE wargamer_cache_evictions_total counter
wargamer_cache_evictions_total{cache="wot:meta"} 0
wargamer_cache_evictions_total{cache="wot:names"} 1
# HELP wargamer_cache_entries Number of entries currently stored.
# TYPE wargamer_cache_entries gauge
wargamer_cache_entries{cache="wot:meta"} 0
wargamer_cache_entries{cache="wot:names"} 1
`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"wargamer_cache_hits_total",
		"wargamer_cache_misses_total",
		"wargamer_cache_evictions_total",
		"wargamer_cache_entries",
	)
	require.NoError(t, err)

	assert.Equal(t, 10, testutil.CollectAndCount(collector))
}

func TestCollector_Register(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(NewCollector(NewManager(), "wargamer")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Empty(t, families, "an empty manager exports no series")
}

func TestLogStatistics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := New()
	c.Set("k", "v")
	_, _ = c.Get("k")
	_, _ = c.Get("missing")

	LogStatistics(context.Background(), logger, "wot:names", c.Statistics())
	EvictionLogger(logger, "wot:names")("k", ReasonCapacity)

	out := buf.String()
	assert.Contains(t, out, "cache statistics")
	assert.Contains(t, out, "hit_rate=0.50")
	assert.Contains(t, out, "cache=wot:names")
	assert.Contains(t, out, "reason=capacity")

	// A nil logger is tolerated.
	LogHit(context.Background(), nil, "x", "k")
}
