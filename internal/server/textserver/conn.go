package textserver

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

// newConnID uses ulid.Make, whose entropy source is safe for concurrent use.
func newConnID() string {
	return ulid.Make().String()
}

// Conn is one client connection.
type Conn struct {
	id      string
	netConn net.Conn
	opened  time.Time

	commands atomic.Uint64
	closed   atomic.Bool
}

func newConn(c net.Conn) *Conn {
	return &Conn{
		id:      newConnID(),
		netConn: c,
		opened:  time.Now(),
	}
}

// ID returns the connection's ULID.
func (c *Conn) ID() string {
	return c.id
}

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// PeerIP returns the peer's IP without the port.
func (c *Conn) PeerIP() string {
	addr := c.netConn.RemoteAddr()
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}

// Commands returns how many commands the connection has sent.
func (c *Conn) Commands() uint64 {
	return c.commands.Load()
}

// Close closes the underlying connection once.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}
