package connection

import (
	"context"
	"errors"
	"time"

	pool "github.com/jolestar/go-commons-pool/v2"

	"github.com/yndnr/redikv/internal/resp"
)

// PoolConfig sizes a Pool.
type PoolConfig struct {
	// MaxTotal caps open connections. Borrow blocks while all are in use.
	MaxTotal int
	// MaxIdle caps connections kept open while unused.
	MaxIdle int
	// Timeout is passed to Dial and applies to each request.
	Timeout time.Duration
}

// Pool hands out Clients connected to one server.
type Pool struct {
	objects *pool.ObjectPool
}

// NewPool creates a pool for addr. Connections are dialed on demand.
func NewPool(ctx context.Context, addr string, cfg PoolConfig) *Pool {
	pc := pool.NewDefaultPoolConfig()
	if cfg.MaxTotal > 0 {
		pc.MaxTotal = cfg.MaxTotal
	}
	if cfg.MaxIdle > 0 {
		pc.MaxIdle = cfg.MaxIdle
	} else {
		pc.MaxIdle = pc.MaxTotal
	}
	pc.BlockWhenExhausted = true

	factory := &clientFactory{addr: addr, timeout: cfg.Timeout}
	return &Pool{objects: pool.NewObjectPool(ctx, factory, pc)}
}

// Borrow returns an idle client or dials a new one.
func (p *Pool) Borrow(ctx context.Context) (*Client, error) {
	obj, err := p.objects.BorrowObject(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := obj.(*Client)
	if !ok {
		return nil, errors.New("connection: pool returned unexpected type")
	}
	return c, nil
}

// Return gives c back to the pool. Clients that failed a request must be
// passed to Invalidate instead.
func (p *Pool) Return(ctx context.Context, c *Client) error {
	return p.objects.ReturnObject(ctx, c)
}

// Invalidate closes c and removes it from the pool.
func (p *Pool) Invalidate(ctx context.Context, c *Client) error {
	return p.objects.InvalidateObject(ctx, c)
}

// Do runs one request on a pooled client.
func (p *Pool) Do(ctx context.Context, args ...string) (resp.Frame, error) {
	c, err := p.Borrow(ctx)
	if err != nil {
		return resp.Frame{}, err
	}
	reply, err := c.Do(ctx, args...)
	if err != nil {
		_ = p.Invalidate(ctx, c)
		return resp.Frame{}, err
	}
	return reply, p.Return(ctx, c)
}

// Active returns the number of borrowed clients.
func (p *Pool) Active() int {
	return p.objects.GetNumActive()
}

// Idle returns the number of clients waiting in the pool.
func (p *Pool) Idle() int {
	return p.objects.GetNumIdle()
}

// Close closes every idle client. Borrowed clients are closed when
// returned.
func (p *Pool) Close(ctx context.Context) {
	p.objects.Close(ctx)
}

type clientFactory struct {
	addr    string
	timeout time.Duration
}

func (f *clientFactory) MakeObject(ctx context.Context) (*pool.PooledObject, error) {
	c, err := Dial(ctx, f.addr, f.timeout)
	if err != nil {
		return nil, err
	}
	return pool.NewPooledObject(c), nil
}

func (f *clientFactory) DestroyObject(_ context.Context, obj *pool.PooledObject) error {
	if c, ok := obj.Object.(*Client); ok {
		return c.Close()
	}
	return nil
}

func (f *clientFactory) ValidateObject(_ context.Context, obj *pool.PooledObject) bool {
	c, ok := obj.Object.(*Client)
	return ok && !c.closed
}

func (f *clientFactory) ActivateObject(context.Context, *pool.PooledObject) error {
	return nil
}

func (f *clientFactory) PassivateObject(context.Context, *pool.PooledObject) error {
	return nil
}
