package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// KeyCountFunc returns the current number of keys per store type.
type KeyCountFunc func() map[string]int

// KeyCollector reports rudis_keys{type} from a live source at scrape time.
type KeyCollector struct {
	source KeyCountFunc
	desc   *prometheus.Desc
}

// NewKeyCollector creates a collector that calls source on every scrape.
func NewKeyCollector(source KeyCountFunc) *KeyCollector {
	return &KeyCollector{
		source: source,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "keys"),
			"Keys currently held, by store type.",
			[]string{"type"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *KeyCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *KeyCollector) Collect(ch chan<- prometheus.Metric) {
	for typ, n := range c.source() {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(n), typ)
	}
}
