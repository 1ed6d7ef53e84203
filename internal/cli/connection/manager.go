package connection

import (
	"context"
	"time"

	"github.com/yndnr/redikv/internal/resp"
)

// Manager tracks the server the interactive shell talks to. The
// connection is dialed lazily and re-dialed after a transport failure.
type Manager struct {
	addr    string
	timeout time.Duration
	client  *Client
}

// NewManager creates a manager for addr.
func NewManager(addr string, timeout time.Duration) *Manager {
	return &Manager{addr: addr, timeout: timeout}
}

// Connect switches to addr, closing any open connection.
func (m *Manager) Connect(ctx context.Context, addr string) error {
	c, err := Dial(ctx, addr, m.timeout)
	if err != nil {
		return err
	}
	m.Disconnect()
	m.addr = addr
	m.client = c
	return nil
}

// Disconnect closes the current connection. The address is kept so the
// next Do dials again.
func (m *Manager) Disconnect() {
	if m.client != nil {
		_ = m.client.Close()
		m.client = nil
	}
}

// Addr returns the current server address.
func (m *Manager) Addr() string {
	return m.addr
}

// IsConnected reports whether a connection is open.
func (m *Manager) IsConnected() bool {
	return m.client != nil
}

// Do sends a request on the current connection, dialing if needed.
func (m *Manager) Do(ctx context.Context, args ...string) (resp.Frame, error) {
	if m.client == nil {
		c, err := Dial(ctx, m.addr, m.timeout)
		if err != nil {
			return resp.Frame{}, err
		}
		m.client = c
	}

	reply, err := m.client.Do(ctx, args...)
	if err != nil {
		m.Disconnect()
		return resp.Frame{}, err
	}
	return reply, nil
}
