// Command rudis-server runs the rudis key-value server.
//
// It serves the text protocol on server.text.addr and, unless disabled,
// health, readiness, stats and Prometheus metrics on server.http.addr.
//
// Usage:
//
//	rudis-server [--config rudis.yaml] [--addr host:port] [--version]
//
// Editing log.level in the config file while the server runs changes the
// log level without a restart.
package main
