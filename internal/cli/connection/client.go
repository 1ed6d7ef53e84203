package connection

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/yndnr/redikv/internal/resp"
)

// DefaultTimeout bounds dialing and each request round trip.
const DefaultTimeout = 5 * time.Second

// ErrClosed is returned by Do after Close.
var ErrClosed = errors.New("connection: client closed")

// Client is a single connection to a redikv server. It is not safe for
// concurrent use; share connections through a Pool instead.
type Client struct {
	addr    string
	conn    net.Conn
	rd      *resp.Reader
	wr      *resp.Writer
	timeout time.Duration
	closed  bool
}

// Dial connects to addr. A zero timeout uses DefaultTimeout.
func Dial(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return newClient(addr, conn, timeout), nil
}

func newClient(addr string, conn net.Conn, timeout time.Duration) *Client {
	return &Client{
		addr:    addr,
		conn:    conn,
		rd:      resp.NewReader(conn, nil),
		wr:      resp.NewWriter(conn),
		timeout: timeout,
	}
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Do sends args as one request and returns the reply. Error replies are
// returned as frames, not errors; err is set only for transport and
// protocol failures, after which the client should be discarded.
func (c *Client) Do(ctx context.Context, args ...string) (resp.Frame, error) {
	if c.closed {
		return resp.Frame{}, ErrClosed
	}
	if len(args) == 0 {
		return resp.Frame{}, errors.New("connection: empty command")
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return resp.Frame{}, err
	}
	stop := context.AfterFunc(ctx, func() { _ = c.conn.SetDeadline(time.Now()) })
	defer stop()

	if err := c.wr.WriteFrame(Request(args...)); err != nil {
		return resp.Frame{}, err
	}
	if err := c.wr.Flush(); err != nil {
		return resp.Frame{}, c.wrapErr(ctx, err)
	}

	reply, err := c.rd.ReadFrame()
	if err != nil {
		return resp.Frame{}, c.wrapErr(ctx, err)
	}
	return reply, nil
}

func (c *Client) wrapErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("%s: %w", c.addr, err)
}

// Close closes the connection.
func (c *Client) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

// Request encodes a command line as an array of bulk strings.
func Request(args ...string) resp.Frame {
	elems := make([]resp.Frame, len(args))
	for i, a := range args {
		elems[i] = resp.BulkString(a)
	}
	return resp.Array(elems...)
}
