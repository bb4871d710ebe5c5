package tunnel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"gint/internal/config"
	"gint/internal/domain"
)

type fakeTunnel struct {
	url      string
	closeErr error
	closed   int
}

func (f *fakeTunnel) URL() string { return f.url }

func (f *fakeTunnel) Close(context.Context) error {
	f.closed++
	return f.closeErr
}

type fakeDialer struct {
	tun   *fakeTunnel
	err   error
	dials int
	got   config.Tunnel
}

func (f *fakeDialer) Dial(_ context.Context, cfg config.Tunnel) (Tunnel, error) {
	f.dials++
	f.got = cfg
	if f.err != nil {
		return nil, f.err
	}
	return f.tun, nil
}

func TestManager_OpenClose(t *testing.T) {
	tun := &fakeTunnel{url: "https://abc.ngrok.app"}
	dialer := &fakeDialer{tun: tun}
	m := NewManager(dialer, zaptest.NewLogger(t))
	ctx := context.Background()

	cfg := config.Tunnel{Addr: "3000", Proto: "http", BindTLS: true}
	url, err := m.Open(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://abc.ngrok.app", url)
	assert.Equal(t, cfg, dialer.got)

	_, err = m.Open(ctx, cfg)
	require.ErrorIs(t, err, ErrAlreadyOpen)
	assert.Equal(t, 1, dialer.dials)

	require.NoError(t, m.Close(ctx))
	require.NoError(t, m.Close(ctx))
	assert.Equal(t, 1, tun.closed, "close must reach the tunnel exactly once")

	_, err = m.Open(ctx, cfg)
	require.NoError(t, err, "a closed manager can open a new tunnel")
	assert.Equal(t, 2, dialer.dials)
}

func TestManager_OpenFailure(t *testing.T) {
	dialer := &fakeDialer{err: errors.New("authentication failed")}
	m := NewManager(dialer, zaptest.NewLogger(t))

	_, err := m.Open(context.Background(), config.Tunnel{Addr: "3000"})
	var tunnelErr *domain.TunnelError
	require.ErrorAs(t, err, &tunnelErr)
	assert.Equal(t, "open", tunnelErr.Op)

	assert.NoError(t, m.Close(context.Background()), "close without an open tunnel is a no-op")
}

func TestManager_EmptyURL(t *testing.T) {
	tun := &fakeTunnel{}
	m := NewManager(&fakeDialer{tun: tun}, zaptest.NewLogger(t))

	_, err := m.Open(context.Background(), config.Tunnel{Addr: "3000"})
	require.Error(t, err)
	assert.Equal(t, 1, tun.closed)
}

func TestManager_CloseFailure(t *testing.T) {
	tun := &fakeTunnel{url: "https://abc.ngrok.app", closeErr: errors.New("session gone")}
	m := NewManager(&fakeDialer{tun: tun}, zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := m.Open(ctx, config.Tunnel{Addr: "3000"})
	require.NoError(t, err)

	err = m.Close(ctx)
	var tunnelErr *domain.TunnelError
	require.ErrorAs(t, err, &tunnelErr)
	assert.Equal(t, "close", tunnelErr.Op)

	require.NoError(t, m.Close(ctx))
	assert.Equal(t, 1, tun.closed)
}

func TestBackendURL(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Tunnel
		expected string
	}{
		{name: "bare port", cfg: config.Tunnel{Addr: "3000", Proto: "http"}, expected: "http://localhost:3000"},
		{name: "host and port", cfg: config.Tunnel{Addr: "127.0.0.1:8080", Proto: "http"}, expected: "http://127.0.0.1:8080"},
		{name: "empty host", cfg: config.Tunnel{Addr: ":8080"}, expected: "http://localhost:8080"},
		{name: "tcp", cfg: config.Tunnel{Addr: "5432", Proto: "tcp"}, expected: "tcp://localhost:5432"},
		{name: "full url", cfg: config.Tunnel{Addr: "https://app.local:8443", Proto: "http"}, expected: "https://app.local:8443"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := BackendURL(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, u.String())
		})
	}

	_, err := BackendURL(config.Tunnel{})
	assert.Error(t, err)
}

func TestEndpointConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Tunnel
		expected string
		wantErr  bool
	}{
		{name: "http", cfg: config.Tunnel{Proto: "http"}, expected: "http"},
		{name: "default proto", cfg: config.Tunnel{}, expected: "http"},
		{name: "http bound to tls", cfg: config.Tunnel{Proto: "http", BindTLS: true}, expected: "https"},
		{name: "tcp", cfg: config.Tunnel{Proto: "tcp"}, expected: "tcp"},
		{name: "tcp ignores bind tls", cfg: config.Tunnel{Proto: "tcp", BindTLS: true}, expected: "tcp"},
		{name: "tls", cfg: config.Tunnel{Proto: "tls"}, expected: "tls"},
		{name: "unknown", cfg: config.Tunnel{Proto: "udp"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint, err := endpointConfig(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "udp")
				assert.Nil(t, endpoint)
				return
			}
			require.NoError(t, err)
			proto, ok := endpoint.(interface{ Proto() string })
			require.True(t, ok, "endpoint %T does not report its protocol", endpoint)
			assert.Equal(t, tt.expected, proto.Proto())
		})
	}
}
