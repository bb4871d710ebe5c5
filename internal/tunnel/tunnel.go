// Package tunnel owns the single public tunnel opened for a run.
package tunnel

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"gint/internal/config"
	"gint/internal/domain"
)

// Tunnel is a live public endpoint forwarding to a local address
type Tunnel interface {
	URL() string
	Close(ctx context.Context) error
}

// Dialer establishes tunnels
type Dialer interface {
	Dial(ctx context.Context, cfg config.Tunnel) (Tunnel, error)
}

// ErrAlreadyOpen is returned by Open while a tunnel is live.
var ErrAlreadyOpen = errors.New("a tunnel is already open")

// Manager opens at most one tunnel and closes it exactly once
type Manager struct {
	dialer Dialer
	log    *zap.Logger

	mu     sync.Mutex
	active Tunnel
}

// NewManager creates a new Manager
func NewManager(dialer Dialer, log *zap.Logger) *Manager {
	return &Manager{dialer: dialer, log: log.Named("tunnel")}
}

// Open establishes the tunnel and returns its public URL.
func (m *Manager) Open(ctx context.Context, cfg config.Tunnel) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		return "", &domain.TunnelError{Op: "open", Err: ErrAlreadyOpen}
	}

	m.log.Debug("opening tunnel", zap.String("addr", cfg.Addr), zap.String("proto", cfg.Proto), zap.Bool("bind_tls", cfg.BindTLS))
	tun, err := m.dialer.Dial(ctx, cfg)
	if err != nil {
		return "", &domain.TunnelError{Op: "open", Err: err}
	}
	if tun.URL() == "" {
		_ = tun.Close(ctx)
		return "", &domain.TunnelError{Op: "open", Err: errors.New("tunnel reported an empty public URL")}
	}

	m.active = tun
	m.log.Info("tunnel opened", zap.String("url", tun.URL()))
	return tun.URL(), nil
}

// Close releases the tunnel. Calling it again, or without an open tunnel, does nothing.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	tun := m.active
	m.active = nil
	m.mu.Unlock()

	if tun == nil {
		return nil
	}

	if err := tun.Close(ctx); err != nil {
		return &domain.TunnelError{Op: "close", Err: err}
	}
	m.log.Info("tunnel closed", zap.String("url", tun.URL()))
	return nil
}
