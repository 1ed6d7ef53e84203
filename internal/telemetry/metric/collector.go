package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/redikv/internal/storage/memory"
)

// KeyspaceSource reports keyspace counts on demand.
type KeyspaceSource interface {
	Stats() memory.Stats
}

// KeyspaceCollector reads the backend counts at scrape time.
type KeyspaceCollector struct {
	src KeyspaceSource

	keys   *prometheus.Desc
	hashes *prometheus.Desc
	fields *prometheus.Desc
}

// NewKeyspaceCollector creates a collector over src.
func NewKeyspaceCollector(src KeyspaceSource) *KeyspaceCollector {
	return &KeyspaceCollector{
		src: src,
		keys: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "keyspace", "keys"),
			"Keys holding a plain value.", nil, nil),
		hashes: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "keyspace", "hashes"),
			"Keys holding a hash.", nil, nil),
		fields: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "keyspace", "fields"),
			"Fields across all hashes.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *KeyspaceCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keys
	ch <- c.hashes
	ch <- c.fields
}

// Collect implements prometheus.Collector.
func (c *KeyspaceCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(s.Keys))
	ch <- prometheus.MustNewConstMetric(c.hashes, prometheus.GaugeValue, float64(s.Hashes))
	ch <- prometheus.MustNewConstMetric(c.fields, prometheus.GaugeValue, float64(s.Fields))
}
