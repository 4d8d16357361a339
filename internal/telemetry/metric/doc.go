// Package metric provides Prometheus metrics for rudis.
//
//   - prometheus.go: the registry, command and connection metrics, and the
//     /metrics handler
//   - collector.go: a collector that reports live key counts per store
//
// Metrics are exposed by the admin HTTP server at /metrics.
package metric
