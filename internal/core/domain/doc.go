// Package domain defines the core domain errors for rudis.
//
// Every command either succeeds or fails with a DomainError. The error
// carries a stable code (RD-<AREA>-<NNNN>) used in logs and metrics, and a
// fixed message that is sent to the client verbatim:
//
//   - CMD: malformed or unrecognized commands
//   - KEY: absent keys, fields, members, empty lists
//   - BIT: bitmap offsets outside capacity
//   - RATE, SYS: server-side rejections
//
// No DomainError is fatal to a connection.
package domain
