package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Named servers accepted by Config.Server.
const (
	ServerProduction = "production"
	ServerSandbox    = "sandbox"
)

// Servers maps server names to their base URLs.
var Servers = map[string]string{
	ServerProduction: "https://api.polar.sh",
	ServerSandbox:    "https://sandbox-api.polar.sh",
}

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "paykit-go/0.1"
)

// Config configures a Client. BaseURL takes precedence over Server; when
// both are empty the production server is used.
type Config struct {
	BaseURL   string        `yaml:"base_url"`
	Token     string        `yaml:"token"`
	Server    string        `yaml:"server"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

func (c Config) resolveBaseURL() (*url.URL, error) {
	raw := c.BaseURL
	if raw == "" {
		server := c.Server
		if server == "" {
			server = ServerProduction
		}
		var ok bool
		if raw, ok = Servers[server]; !ok {
			return nil, fmt.Errorf("unknown server %q", server)
		}
	}

	u, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", raw)
	}
	return u, nil
}

// Option customizes a Client.
type Option func(*Client) error

// WithHTTPClient replaces the HTTP client. Config.Timeout is ignored when
// this option is used.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		c.httpClient = hc
		return nil
	}
}

// WithMetrics records request counts and latencies in reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) error {
		m, err := NewMetrics(reg)
		if err != nil {
			return err
		}
		c.metrics = m
		return nil
	}
}

// WithIdempotencyKeys sends a random Idempotency-Key header with every POST
// that does not carry one from its context.
func WithIdempotencyKeys() Option {
	return func(c *Client) error {
		c.idempotencyKeys = true
		return nil
	}
}
