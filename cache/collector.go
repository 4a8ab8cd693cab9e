package cache

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports the statistics of every cache registered in a Manager.
//
// Counters restart from zero when a cache is cleared, which Prometheus treats
// as a counter reset.
type Collector struct {
	manager *Manager

	hits      *prometheus.Desc
	misses    *prometheus.Desc
	expired   *prometheus.Desc
	evictions *prometheus.Desc
	entries   *prometheus.Desc
}

// NewCollector returns a prometheus.Collector for manager. Metric names are
// prefixed with namespace.
func NewCollector(manager *Manager, namespace string) *Collector {
	labels := []string{"cache"}
	fq := func(name string) string {
		return prometheus.BuildFQName(namespace, "cache", name)
	}

	return &Collector{
		manager: manager,
		hits: prometheus.NewDesc(fq("hits_total"),
			"Number of cache lookups that returned a value.", labels, nil),
		misses: prometheus.NewDesc(fq("misses_total"),
			"Number of cache lookups that found nothing usable.", labels, nil),
		expired: prometheus.NewDesc(fq("expired_total"),
			"Number of entries found expired on access.", labels, nil),
		evictions: prometheus.NewDesc(fq("evictions_total"),
			"Number of entries evicted to stay within capacity.", labels, nil),
		entries: prometheus.NewDesc(fq("entries"),
			"Number of entries currently stored.", labels, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.expired
	ch <- c.evictions
	ch <- c.entries
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for id, stats := range c.manager.Statistics() {
		ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(stats.Hits), id)
		ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(stats.Misses), id)
		ch <- prometheus.MustNewConstMetric(c.expired, prometheus.CounterValue, float64(stats.Expired), id)
		ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(stats.Evictions), id)
		ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(stats.Size), id)
	}
}
