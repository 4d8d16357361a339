// Package logger provides structured logging for rudis.
//
// It wraps log/slog:
//
//   - logger.go: handler construction, global level and default logger
//   - context.go: context-aware logging with connection IDs
//   - clip.go: truncation of oversized values supplied by clients
//
// Keys and values arrive from the network unchecked, so any string
// attribute longer than MaxValueLen is clipped before it is written.
package logger
