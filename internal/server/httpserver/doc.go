// Package httpserver provides the admin HTTP server for rudis.
//
// Endpoints, all read-only:
//
//   - /health and /ready for probes
//   - /metrics in the Prometheus exposition format
//   - /stats with key counts, open connections and uptime as JSON
//
// Every route runs behind RequestID, Recover and Logging middleware.
package httpserver
