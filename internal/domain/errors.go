package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidConfig  = errors.New("invalid config")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnresolvedVars = errors.New("unresolved placeholders")
	ErrMissingAPIKey  = errors.New("api key not configured")
	ErrExecution      = errors.New("execution error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindValidation    ErrorKind = "validation"
	KindTemplate      ErrorKind = "template"
	KindNetwork       ErrorKind = "network"
	KindAPI           ErrorKind = "api"
	KindExecution     ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return kind == KindAPI
	}
	return false
}

// ValidationError reports bad user input (flags, JSON variables, numbers).
func ValidationError(op string, format string, args ...any) error {
	return &OpError{
		Op:   op,
		Kind: KindValidation,
		Err:  fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput),
	}
}

// APIError is a non-success answer from the LLM provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.StatusCode == 0 {
		return fmt.Sprintf("api error: %s", e.Message)
	}
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// IsAuth reports whether the provider rejected the credentials.
func (e *APIError) IsAuth() bool {
	return e != nil && (e.StatusCode == 401 || e.StatusCode == 403)
}

// IsRateLimited reports whether the provider throttled the call.
func (e *APIError) IsRateLimited() bool {
	return e != nil && e.StatusCode == 429
}
