package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/MistByteX/predictor/internal/domain"
)

// JSONRequest describes an outgoing call with a JSON body.
type JSONRequest struct {
	Method      string // defaults to POST
	URL         string
	Headers     map[string]string
	BearerToken string
	Body        any // nil sends no body
}

// BuildJSONRequest encodes spec.Body and sets the JSON and auth headers.
func BuildJSONRequest(ctx context.Context, spec JSONRequest) (*http.Request, error) {
	if strings.TrimSpace(spec.URL) == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("request url is empty"),
		}
	}

	method := strings.ToUpper(strings.TrimSpace(spec.Method))
	if method == "" {
		method = http.MethodPost
	}

	var payload []byte
	if spec.Body != nil {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		// Prompts are mostly CJK text; keep <, > and & readable on the wire.
		enc.SetEscapeHTML(false)
		if err := enc.Encode(spec.Body); err != nil {
			return nil, &domain.OpError{
				Op:   "httpclient.build",
				Kind: domain.KindInvalidConfig,
				Err:  err,
			}
		}
		payload = bytes.TrimRight(buf.Bytes(), "\n")
	}

	req, err := http.NewRequestWithContext(ctx, method, spec.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}
	if spec.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+spec.BearerToken)
	}
	if payload != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	return req, nil
}
