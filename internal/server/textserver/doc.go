// Package textserver serves the rudis plain-text command protocol over TCP.
//
// Each read from a connection is one command: the bytes are parsed by
// package command, dispatched to the matching store operation, and answered
// with exactly one write of raw text. There is no framing and no
// pipelining.
//
// Connections are tracked in a sharded registry so that Shutdown can close
// them, and each gets a ULID used in logs.
package textserver
