package glm

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MistByteX/predictor/internal/buildinfo"
	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/infra/httpclient"
	"github.com/MistByteX/predictor/internal/ports"
)

// ErrorMessagePath locates the provider's error text in a failed response.
const ErrorMessagePath = "$.error.message"

// UserAgent is sent with every request.
var UserAgent = "predictor/" + buildinfo.Version

// Client calls the GLM chat-completions endpoint.
type Client struct {
	exec         *httpclient.Executor
	baseURL      string
	apiKey       string
	model        string
	temperature  float64
	responsePath string
	logger       *slog.Logger
}

type Option func(*Client)

// WithExecutor replaces the HTTP executor (tests point it at httptest servers).
func WithExecutor(e *httpclient.Executor) Option {
	return func(c *Client) { c.exec = e }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a client from the loaded configuration.
func New(cfg domain.Config, opts ...Option) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	httpCfg := httpclient.DefaultConfig().WithTimeout(timeout).ForAgents(cfg.MaxParallelAgents)

	c := &Client{
		exec: httpclient.NewExecutor(
			httpclient.WithClient(httpclient.New(httpCfg)),
			httpclient.WithTimeout(httpCfg.Timeout),
			httpclient.WithUserAgent(UserAgent),
		),
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		temperature:  cfg.Temperature,
		responsePath: cfg.ResponsePath,
		logger:       slog.Default(),
	}
	if c.responsePath == "" {
		c.responsePath = domain.DefaultResponsePath
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.LLMClient = (*Client)(nil)

// Model returns the model name sent with every request.
func (c *Client) Model() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// Send posts one chat completion and returns the reply text.
// Transport failures become network errors, everything else an *domain.APIError.
func (c *Client) Send(ctx context.Context, prompt, system string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if strings.TrimSpace(system) != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	req, err := httpclient.BuildJSONRequest(ctx, httpclient.JSONRequest{
		Method:      http.MethodPost,
		URL:         c.baseURL + "/chat/completions",
		BearerToken: c.apiKey,
		Body: chatRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: c.temperature,
		},
	})
	if err != nil {
		return "", err
	}

	c.logger.Debug("glm request", "model", c.model, "prompt_chars", len([]rune(prompt)), "system", system != "")

	resp, err := c.exec.Do(ctx, req)
	if err != nil {
		nerr := domain.NetworkError("glm.send", err)
		c.logger.Warn("glm transport failure", "error", nerr, "duration_ms", resp.Duration.Milliseconds())
		return "", nerr
	}

	if !resp.OK() {
		msg, _ := extractString(resp.Body, ErrorMessagePath)
		if msg == "" {
			msg = http.StatusText(resp.Status)
		}
		apiErr := &domain.APIError{StatusCode: resp.Status, Message: msg}
		c.logger.Warn("glm api failure", "status", resp.Status, "message", msg, "duration_ms", resp.Duration.Milliseconds())
		return "", apiErr
	}

	if resp.Truncated {
		return "", &domain.APIError{StatusCode: resp.Status, Message: "malformed response: body exceeds size limit"}
	}

	reply, err := extractString(resp.Body, c.responsePath)
	if err != nil {
		return "", &domain.APIError{StatusCode: resp.Status, Message: "malformed response: " + err.Error()}
	}

	c.logger.Debug("glm response", "status", resp.Status, "duration_ms", resp.Duration.Milliseconds(), "reply_chars", len([]rune(reply)))
	return reply, nil
}
