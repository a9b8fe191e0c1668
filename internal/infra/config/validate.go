package config

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/MistByteX/predictor/internal/domain"
)

var (
	httpURL     = regexp.MustCompile(`^https?://[^\s]+$`)
	jsonPathExp = regexp.MustCompile(`^\$`)
)

// Validate checks the loaded configuration values.
func Validate(cfg domain.Config) error {
	err := validation.ValidateStruct(&cfg,
		validation.Field(&cfg.BaseURL, validation.Required, validation.Match(httpURL).Error("must be an http(s) URL")),
		validation.Field(&cfg.Model, validation.Required),
		validation.Field(&cfg.Temperature, validation.Min(0.0), validation.Max(2.0)),
		validation.Field(&cfg.TimeoutSeconds, validation.Required, validation.Min(1), validation.Max(600)),
		validation.Field(&cfg.MaxParallelAgents, validation.Required, validation.Min(1), validation.Max(32)),
		validation.Field(&cfg.ResponsePath, validation.Required, validation.Match(jsonPathExp).Error("must be a JSONPath starting with $")),
	)
	if err != nil {
		return &domain.OpError{
			Op:   "config.validate",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err),
		}
	}
	return nil
}

// RequireAPIKey fails when no API key is configured.
func RequireAPIKey(cfg domain.Config) error {
	if cfg.APIKey != "" {
		return nil
	}
	return &domain.OpError{
		Op:   "config.api_key",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("%w (tip: run `predictor init` or `predictor config set api_key <key>`)", domain.ErrMissingAPIKey),
	}
}
