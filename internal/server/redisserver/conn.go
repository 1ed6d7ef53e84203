package redisserver

import (
	"context"
	"errors"
	"io"
	"math"
	"net"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/redikv/internal/resp"
	"github.com/yndnr/redikv/internal/telemetry/logger"
)

// conn is the per-connection state owned by one ServeConn goroutine.
type conn struct {
	id      string
	nc      net.Conn
	rd      *resp.Reader
	wr      *resp.Writer
	limiter *rate.Limiter
	log     logger.Logger
}

// ServeConn serves one client connection until either side ends it. It
// closes nc before returning.
func (s *Server) ServeConn(ctx context.Context, nc net.Conn) {
	if err := s.track(nc, 0); err != nil {
		nc.Close()
		return
	}
	s.serve(ctx, nc)
}

// serve runs a connection already registered with track.
func (s *Server) serve(ctx context.Context, nc net.Conn) {
	defer s.untrack(nc)
	defer nc.Close()

	c := &conn{
		id:      ulid.Make().String(),
		nc:      nc,
		rd:      resp.NewReader(nc, s.dec),
		wr:      resp.NewWriter(nc),
		limiter: s.newLimiter(),
	}
	ctx = logger.WithConnID(logger.WithLogger(ctx, s.log), c.id)
	c.log = logger.L(ctx)

	// Closing the socket unblocks any pending read or write.
	stopCtx := context.AfterFunc(ctx, func() { nc.Close() })
	defer stopCtx()
	stopSrv := context.AfterFunc(s.connCtx, func() { nc.Close() })
	defer stopSrv()

	s.metrics.ConnOpened()
	defer s.metrics.ConnClosed()

	c.log.Debug("connection opened", "remote", remoteAddr(nc))
	reason := s.loop(ctx, c)
	c.log.Debug("connection closed", "remote", remoteAddr(nc), "reason", reason, "unread", c.rd.Buffered())
}

// loop runs the request cycle and returns why it ended.
func (s *Server) loop(ctx context.Context, c *conn) string {
	for {
		if err := s.armReadDeadline(c); err != nil {
			return "deadline: " + err.Error()
		}
		if s.closing.Load() && !c.rd.HasFrame() {
			return "server shutdown"
		}

		req, err := c.rd.ReadFrame()
		if err != nil {
			return s.readFailed(ctx, c, err)
		}

		reply := s.handler.Handle(ctx, req, c.limiter)
		if err := c.wr.WriteFrame(reply); err != nil {
			// Either the reply cannot be encoded or the buffer flush
			// failed; the second write tells them apart.
			c.log.Warn("reply encoding failed", "error", err)
			if err := c.wr.WriteFrame(resp.Error("ERR reply cannot be encoded: " + err.Error())); err != nil {
				return "write: " + err.Error()
			}
		}

		// Answer every complete pipelined request before flushing. A
		// partial request still gets the pending replies sent first.
		if c.rd.HasFrame() {
			continue
		}
		if err := s.flush(c); err != nil {
			return "write: " + err.Error()
		}
	}
}

func (s *Server) readFailed(ctx context.Context, c *conn, err error) string {
	switch {
	case errors.Is(err, io.EOF):
		return "client closed"
	case errors.Is(err, resp.ErrInvalidFrame):
		reason := "invalid_frame"
		if errors.Is(err, resp.ErrLimitExceeded) {
			reason = "limit_exceeded"
		}
		s.metrics.ProtocolError(reason)
		c.log.Warn("protocol error", "remote", remoteAddr(c.nc), "error", err)
		if werr := c.wr.WriteFrame(resp.Error("ERR protocol error: " + err.Error())); werr == nil {
			_ = s.flush(c)
		}
		return "protocol error"
	case ctx.Err() != nil:
		return "context cancelled"
	case isTimeout(err):
		if s.closing.Load() {
			return "server shutdown"
		}
		return "idle timeout"
	case errors.Is(err, net.ErrClosed):
		return "connection closed"
	default:
		c.log.Debug("read failed", "error", err)
		return "read: " + err.Error()
	}
}

// armReadDeadline sets the idle deadline for the next request. Shutdown
// sets an immediate deadline after raising the closing flag; the loop
// checks the flag after this call so that deadline is never lost.
func (s *Server) armReadDeadline(c *conn) error {
	var deadline time.Time
	if s.cfg.IdleTimeout > 0 {
		deadline = time.Now().Add(s.cfg.IdleTimeout)
	}
	return c.nc.SetReadDeadline(deadline)
}

func (s *Server) flush(c *conn) error {
	if s.cfg.WriteTimeout > 0 {
		if err := c.nc.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
			return err
		}
	}
	return c.wr.Flush()
}

func (s *Server) newLimiter() *rate.Limiter {
	if s.cfg.RateLimit <= 0 {
		return nil
	}
	burst := s.cfg.RateBurst
	if burst <= 0 {
		burst = int(math.Max(1, math.Ceil(s.cfg.RateLimit)))
	}
	return rate.NewLimiter(rate.Limit(s.cfg.RateLimit), burst)
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func remoteAddr(c net.Conn) string {
	if a := c.RemoteAddr(); a != nil {
		return a.String()
	}
	return ""
}
