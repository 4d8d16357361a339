package connection

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// HelpPrefix starts the server's HELP reply.
const HelpPrefix = "supported commands:"

// drainTimeout is how long to keep reading once a reply has started
// arriving, for replies larger than one segment.
const drainTimeout = 20 * time.Millisecond

// Client talks to one rudis server.
type Client struct {
	addr         string
	dialTimeout  time.Duration
	replyTimeout time.Duration
	conn         net.Conn
}

// Option configures a Client.
type Option func(*Client)

// WithDialTimeout bounds connection setup.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.dialTimeout = d
	}
}

// WithReplyTimeout sets how long to wait for the first reply byte.
func WithReplyTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.replyTimeout = d
	}
}

// NewClient creates a client for addr. It connects lazily.
func NewClient(addr string, opts ...Option) *Client {
	c := &Client{
		addr:         addr,
		dialTimeout:  3 * time.Second,
		replyTimeout: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Connect dials the server if not already connected.
func (c *Client) Connect() error {
	if c.conn != nil {
		return nil
	}
	conn, err := net.DialTimeout("tcp", c.addr, c.dialTimeout)
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.addr, err)
	}
	c.conn = conn
	return nil
}

// Close closes the connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Execute sends one command and returns the reply. An empty string means
// the server sent nothing within the reply timeout.
func (c *Client) Execute(cmd string) (string, error) {
	if err := c.Connect(); err != nil {
		return "", err
	}

	if _, err := c.conn.Write([]byte(cmd)); err != nil {
		c.Close()
		return "", fmt.Errorf("send: %w", err)
	}

	reply, err := c.readReply()
	if err != nil {
		c.Close()
		return "", err
	}
	return reply, nil
}

func (c *Client) readReply() (string, error) {
	var sb strings.Builder
	buf := make([]byte, 4096)
	timeout := c.replyTimeout

	for {
		if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return "", err
		}
		n, err := c.conn.Read(buf)
		sb.Write(buf[:n])

		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return sb.String(), nil
			}
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", fmt.Errorf("read reply: %w", err)
		}
		timeout = drainTimeout
	}
}

// Ping checks that a rudis server answers HELP.
func (c *Client) Ping() (time.Duration, error) {
	start := time.Now()
	reply, err := c.Execute("HELP")
	if err != nil {
		return 0, err
	}
	if !strings.HasPrefix(reply, HelpPrefix) {
		return 0, fmt.Errorf("unexpected reply %q", reply)
	}
	return time.Since(start), nil
}
