package textserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/rudis-go/internal/storage/memory"
	"github.com/yndnr/rudis-go/internal/telemetry/logger"
	"github.com/yndnr/rudis-go/internal/telemetry/metric"
	"github.com/yndnr/rudis-go/pkg/cmap"
)

// Config holds the text server configuration.
type Config struct {
	// Addr is the TCP listen address.
	Addr string
	// ReadBuffer is the fixed size of each read. One read is one command.
	ReadBuffer int
	// IdleTimeout closes a connection that sends nothing for this long.
	// Zero disables it.
	IdleTimeout time.Duration
	// WriteTimeout bounds each reply write. Zero disables it.
	WriteTimeout time.Duration
	// RateLimit is commands per second per peer IP. Zero disables it.
	RateLimit int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:         "127.0.0.1:6666",
		ReadBuffer:   1024,
		IdleTimeout:  5 * time.Minute,
		WriteTimeout: 30 * time.Second,
	}
}

// Server accepts connections and serves commands against one store.
type Server struct {
	cfg     *Config
	store   *memory.Store
	handler *CommandHandler
	log     logger.Logger
	metrics *metric.Registry

	ln      net.Listener
	conns   *cmap.Map[*Conn]
	running atomic.Bool
	wg      sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithMetrics records command and connection metrics into r.
func WithMetrics(r *metric.Registry) Option {
	return func(s *Server) {
		s.metrics = r
	}
}

// New creates a server over store. A nil cfg uses DefaultConfig.
func New(cfg *Config, store *memory.Store, opts ...Option) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.ReadBuffer <= 0 {
		cfg.ReadBuffer = DefaultConfig().ReadBuffer
	}

	s := &Server{
		cfg:   cfg,
		store: store,
		log:   logger.Default(),
		conns: cmap.New[*Conn](),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.handler = NewCommandHandler(store, s.metrics, cfg.RateLimit)
	return s
}

// Start binds the listener and accepts connections in the background.
// It returns once the listener is ready.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	s.ln = ln
	s.running.Store(true)

	s.log.Info("text server listening", "address", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx, ln); err != nil {
			s.log.Error("text server accept loop stopped", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Running reports whether the listener is accepting connections.
func (s *Server) Running() bool {
	return s.running.Load()
}

// ActiveConns returns the number of open client connections.
func (s *Server) ActiveConns() int {
	return s.conns.Count()
}

// Shutdown stops accepting, closes every open connection and waits for
// their goroutines or ctx, whichever comes first.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var firstErr error
	if s.ln != nil {
		if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			firstErr = err
		}
	}

	for _, c := range s.conns.Values() {
		_ = c.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.log.Info("text server stopped")
	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		nc, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		c := newConn(nc)
		if !s.track(c) {
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.release(c)
			s.serveConn(ctx, c)
		}()
	}
}

// track registers c. Shutdown clears running before it sweeps the
// registry, so a conn registered after the sweep sees false here and is
// closed instead of being served.
func (s *Server) track(c *Conn) bool {
	s.conns.Set(c.ID(), c)
	if !s.running.Load() {
		s.conns.Delete(c.ID())
		_ = c.Close()
		return false
	}
	if s.metrics != nil {
		s.metrics.ConnOpened()
	}
	return true
}

func (s *Server) release(c *Conn) {
	_ = c.Close()
	if _, ok := s.conns.Pop(c.ID()); ok && s.metrics != nil {
		s.metrics.ConnClosed()
	}
}

func (s *Server) serveConn(ctx context.Context, c *Conn) {
	ctx = logger.WithConnID(logger.WithLogger(ctx, s.log), c.ID())
	log := logger.L(ctx)
	peer := c.PeerIP()

	log.Info("client connected", "remote", c.RemoteAddr().String())
	defer func() {
		log.Info("client disconnected", "commands", c.Commands())
	}()

	buf := make([]byte, s.cfg.ReadBuffer)
	for {
		if s.cfg.IdleTimeout > 0 {
			if err := c.netConn.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout)); err != nil {
				return
			}
		}

		n, err := c.netConn.Read(buf)
		if n > 0 {
			c.commands.Add(1)
			reply := s.handler.Handle(ctx, peer, buf[:n])
			if werr := s.writeReply(c, reply); werr != nil {
				log.Debug("write failed", "error", werr)
				return
			}
		}

		if err != nil {
			var netErr net.Error
			switch {
			case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
			case errors.As(err, &netErr) && netErr.Timeout():
				log.Debug("connection idle timeout")
			default:
				log.Debug("connection read error", "error", err)
			}
			return
		}
	}
}

// writeReply sends reply in a single write. An empty reply sends nothing.
func (s *Server) writeReply(c *Conn, reply []byte) error {
	if len(reply) == 0 {
		return nil
	}
	if s.cfg.WriteTimeout > 0 {
		if err := c.netConn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
			return err
		}
	}
	_, err := c.netConn.Write(reply)
	return err
}
