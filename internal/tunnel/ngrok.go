package tunnel

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokconfig "golang.ngrok.com/ngrok/config"

	"gint/internal/config"
)

// NgrokDialer opens tunnels through the ngrok agent SDK
type NgrokDialer struct {
	log *zap.Logger
}

// NewNgrokDialer creates a new NgrokDialer
func NewNgrokDialer(log *zap.Logger) *NgrokDialer {
	return &NgrokDialer{log: log.Named("ngrok")}
}

// Dial connects an ngrok session and forwards a new endpoint to cfg.Addr.
func (d *NgrokDialer) Dial(ctx context.Context, cfg config.Tunnel) (Tunnel, error) {
	backend, err := BackendURL(cfg)
	if err != nil {
		return nil, err
	}
	endpoint, err := endpointConfig(cfg)
	if err != nil {
		return nil, err
	}

	opts := []ngrok.ConnectOption{ngrok.WithAuthtokenFromEnv()}
	if cfg.Authtoken != "" {
		opts = []ngrok.ConnectOption{ngrok.WithAuthtoken(cfg.Authtoken)}
	}

	d.log.Debug("connecting ngrok session", zap.Stringer("backend", backend))
	fwd, err := ngrok.ListenAndForward(ctx, backend, endpoint, opts...)
	if err != nil {
		return nil, fmt.Errorf("ngrok listen: %w", err)
	}
	return &ngrokTunnel{fwd: fwd}, nil
}

type ngrokTunnel struct {
	fwd ngrok.Forwarder
}

func (t *ngrokTunnel) URL() string {
	return t.fwd.URL()
}

// Close stops forwarding and then shuts the agent session down.
func (t *ngrokTunnel) Close(ctx context.Context) error {
	err := t.fwd.CloseWithContext(ctx)
	if serr := t.fwd.Session().Close(); serr != nil {
		err = errors.Join(err, fmt.Errorf("close session: %w", serr))
	}
	return err
}

func endpointConfig(cfg config.Tunnel) (ngrokconfig.Tunnel, error) {
	switch cfg.Proto {
	case "", "http":
		scheme := ngrokconfig.SchemeHTTP
		if cfg.BindTLS {
			scheme = ngrokconfig.SchemeHTTPS
		}
		return ngrokconfig.HTTPEndpoint(ngrokconfig.WithScheme(scheme)), nil
	case "tcp":
		return ngrokconfig.TCPEndpoint(), nil
	case "tls":
		return ngrokconfig.TLSEndpoint(), nil
	default:
		return nil, fmt.Errorf("unsupported tunnel protocol %q", cfg.Proto)
	}
}

// BackendURL turns the configured address into the URL traffic is forwarded to.
// A bare port means localhost; a full URL is used as is.
func BackendURL(cfg config.Tunnel) (*url.URL, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("tunnel address is empty")
	}
	if strings.Contains(addr, "://") {
		u, err := url.Parse(addr)
		if err != nil {
			return nil, fmt.Errorf("parse tunnel address: %w", err)
		}
		return u, nil
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		host, port = "localhost", addr
	}
	if host == "" {
		host = "localhost"
	}

	scheme := "tcp"
	if cfg.Proto == "" || cfg.Proto == "http" {
		scheme = "http"
	}
	return &url.URL{Scheme: scheme, Host: net.JoinHostPort(host, port)}, nil
}
