package httpclient

import (
	"net"
	"net/http"
	"time"
)

// Config sizes the transport used for chat-completion calls.
type Config struct {
	// Timeout bounds a whole call, body included. A context deadline can
	// still end it sooner.
	Timeout time.Duration

	DialTimeout     time.Duration
	KeepAlive       time.Duration
	TLSHandshake    time.Duration
	IdleConnTimeout time.Duration

	// MaxConnsPerHost caps concurrent connections to the provider; zero means no cap.
	MaxConnsPerHost int
}

// DefaultConfig waits long for a reply: the model answers in one piece after
// generating the whole completion, so there is no separate header timeout.
func DefaultConfig() Config {
	return Config{
		Timeout:         120 * time.Second,
		DialTimeout:     5 * time.Second,
		KeepAlive:       30 * time.Second,
		TLSHandshake:    5 * time.Second,
		IdleConnTimeout: 90 * time.Second,
	}
}

// WithTimeout returns a copy of cfg with the total timeout replaced.
// Non-positive values keep the current timeout.
func (cfg Config) WithTimeout(d time.Duration) Config {
	if d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// ForAgents sizes the connection pool for n concurrent agents so a fan-out
// reuses connections instead of dialing per call.
func (cfg Config) ForAgents(n int) Config {
	if n > 0 {
		cfg.MaxConnsPerHost = n
	}
	return cfg
}

func New(cfg Config) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	idle := cfg.MaxConnsPerHost
	if idle <= 0 {
		idle = http.DefaultMaxIdleConnsPerHost
	}

	tr := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		DialContext:       dialer.DialContext,
		ForceAttemptHTTP2: true,

		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		MaxIdleConnsPerHost: idle,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.TLSHandshake,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   cfg.Timeout,
	}
}
