package redisserver

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/redikv/internal/command"
	"github.com/yndnr/redikv/internal/resp"
	"github.com/yndnr/redikv/internal/telemetry/logger"
	"github.com/yndnr/redikv/internal/telemetry/metric"
)

// ErrServerClosed is returned by Start and Serve after Shutdown.
var ErrServerClosed = errors.New("redisserver: server closed")

var errTooManyConns = errors.New("redisserver: too many connections")

// Config holds the Redis server configuration.
type Config struct {
	// Address is the TCP listen address used by Start.
	Address string
	// IdleTimeout closes a connection that sends no complete request for
	// this long. Zero disables it.
	IdleTimeout time.Duration
	// WriteTimeout bounds each reply flush. Zero disables it.
	WriteTimeout time.Duration
	// RateLimit is the sustained requests per second allowed on one
	// connection. Zero disables limiting.
	RateLimit float64
	// RateBurst is the limiter bucket size; zero uses max(1, RateLimit).
	RateBurst int
	// MaxConnections caps concurrent clients. Zero means unlimited.
	MaxConnections int
	// Limits bounds decoded request frames.
	Limits resp.Limits
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Address: "127.0.0.1:6379",
		Limits:  resp.DefaultLimits(),
	}
}

// Server accepts client connections and serves commands.
type Server struct {
	cfg     Config
	handler *Handler
	dec     *resp.Decoder
	log     logger.Logger
	metrics *metric.Registry

	mu       sync.Mutex
	ln       net.Listener
	conns    map[net.Conn]struct{}
	closing  atomic.Bool
	active   atomic.Int64
	wg       sync.WaitGroup // Serve calls and tracked connections
	stopConn context.CancelFunc
	connCtx  context.Context
}

// New creates a server that executes commands against backend. log and
// metrics may be nil.
func New(cfg Config, backend command.Backend, log logger.Logger, metrics *metric.Registry) *Server {
	if log == nil {
		log = logger.Default()
	}
	log = log.With("component", "redisserver")

	connCtx, stop := context.WithCancel(context.Background())
	return &Server{
		cfg:      cfg,
		handler:  NewHandler(backend, log, metrics),
		dec:      resp.NewDecoder(cfg.Limits),
		log:      log,
		metrics:  metrics,
		conns:    make(map[net.Conn]struct{}),
		connCtx:  connCtx,
		stopConn: stop,
	}
}

// Start listens on cfg.Address and serves in the background until ctx is
// cancelled or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}

	go func() {
		if err := s.Serve(ctx, ln); err != nil && !errors.Is(err, ErrServerClosed) {
			s.log.Error("redis server stopped", "error", err)
		}
	}()
	return nil
}

// Serve accepts connections on ln until ctx is cancelled or Shutdown is
// called. It always closes ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.closing.Load() {
		s.mu.Unlock()
		ln.Close()
		return ErrServerClosed
	}
	s.ln = ln
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	s.log.Info("redis server listening", "address", ln.Addr().String())

	for {
		c, err := ln.Accept()
		if err != nil {
			if s.closing.Load() {
				return ErrServerClosed
			}
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			return err
		}

		// Count the connection before the next Accept so a burst cannot
		// overshoot MaxConnections.
		if err := s.track(c, s.cfg.MaxConnections); err != nil {
			if errors.Is(err, errTooManyConns) {
				s.reject(c)
			} else {
				c.Close()
			}
			continue
		}

		go s.serve(ctx, c)
	}
}

func (s *Server) reject(c net.Conn) {
	s.metrics.ConnRejected()
	s.log.Warn("connection rejected", "remote", c.RemoteAddr().String(), "max_connections", s.cfg.MaxConnections)

	_ = c.SetWriteDeadline(time.Now().Add(time.Second))
	if b, err := resp.Encode(resp.Error("ERR max number of clients reached")); err == nil {
		_, _ = c.Write(b)
	}
	c.Close()
}

// Addr returns the listener address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Ready reports whether the server is accepting connections.
func (s *Server) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ln != nil && !s.closing.Load()
}

// ActiveConnections returns the number of connections being served.
func (s *Server) ActiveConnections() int {
	return int(s.active.Load())
}

// Shutdown stops accepting connections and lets every connection finish
// the request it is processing. Connections still open when ctx expires
// are closed forcibly and ctx.Err() is returned.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing.Store(true)
	var err error
	if s.ln != nil {
		if cerr := s.ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
			err = cerr
		}
	}
	// Wake connections blocked waiting for the next request.
	for c := range s.conns {
		_ = c.SetReadDeadline(time.Now())
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.stopConn()
		return err
	case <-ctx.Done():
		s.stopConn()
		<-done
		return ctx.Err()
	}
}

// track registers c as served. A positive limit caps the number of
// tracked connections.
func (s *Server) track(c net.Conn, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing.Load() {
		return ErrServerClosed
	}
	if limit > 0 && len(s.conns) >= limit {
		return errTooManyConns
	}
	s.conns[c] = struct{}{}
	s.active.Add(1)
	s.wg.Add(1)
	return nil
}

func (s *Server) untrack(c net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conns[c]; ok {
		delete(s.conns, c)
		s.active.Add(-1)
		s.wg.Done()
	}
}
