// Package connection provides the rudis-cli client for the text protocol.
//
// One write carries one command. A reply is whatever the server sends back
// before the reply timeout; commands that produce nothing send no bytes,
// so a timeout with nothing read is an empty reply, not an error.
package connection
