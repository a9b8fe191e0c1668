package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"
)

// MaxBodyBytes caps how much of a response body is kept.
const MaxBodyBytes = 8 << 20

// Response is a fully read HTTP response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
	// Truncated is set when the body was longer than MaxBodyBytes.
	Truncated bool
	Duration  time.Duration
}

// OK reports a 2xx status.
func (r Response) OK() bool {
	return r.Status >= 200 && r.Status <= 299
}

// Executor sends requests and reads their bodies with a per-call deadline.
type Executor struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

type ExecutorOption func(*Executor)

// WithTimeout sets the deadline applied to each call.
func WithTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) { e.timeout = timeout }
}

func WithClient(client *http.Client) ExecutorOption {
	return func(e *Executor) { e.client = client }
}

// WithUserAgent sets the User-Agent header on requests that lack one.
func WithUserAgent(ua string) ExecutorOption {
	return func(e *Executor) { e.userAgent = ua }
}

func NewExecutor(opts ...ExecutorOption) *Executor {
	cfg := DefaultConfig()
	e := &Executor{
		client:  New(cfg),
		timeout: cfg.Timeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Do sends req and reads the whole body. Duration is set even on failure.
func (e *Executor) Do(ctx context.Context, req *http.Request) (Response, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	if e.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", e.userAgent)
	}

	start := time.Now()
	resp, err := e.client.Do(req.WithContext(ctx))
	if err != nil {
		return Response{Duration: time.Since(start)}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	out := Response{
		Status:   resp.StatusCode,
		Header:   resp.Header.Clone(),
		Duration: time.Since(start),
	}
	if err != nil {
		return out, err
	}
	if len(body) > MaxBodyBytes {
		body = body[:MaxBodyBytes]
		out.Truncated = true
	}
	out.Body = body
	return out, nil
}
