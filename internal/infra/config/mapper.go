package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/MistByteX/predictor/internal/domain"
)

// MapConfig applies the set fields of dto on top of base.
func MapConfig(base domain.Config, dto jsonConfig) domain.Config {
	cfg := base

	if v := strings.TrimSpace(dto.APIKey); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(dto.BaseURL); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(dto.Model); v != "" {
		cfg.Model = v
	}
	if dto.Temperature != nil {
		cfg.Temperature = *dto.Temperature
	}
	if dto.TimeoutSeconds != nil {
		cfg.TimeoutSeconds = *dto.TimeoutSeconds
	}
	if dto.MaxParallelAgents != nil {
		cfg.MaxParallelAgents = *dto.MaxParallelAgents
	}
	if v := strings.TrimSpace(dto.ResponsePath); v != "" {
		cfg.ResponsePath = v
	}
	if v := strings.TrimSpace(dto.TemplatesDir); v != "" {
		cfg.Paths.TemplatesDir = v
	}
	if v := strings.TrimSpace(dto.PredictionsDir); v != "" {
		cfg.Paths.PredictionsDir = v
	}
	if dto.Masking != nil {
		cfg.Masking.Enabled = *dto.Masking
	}
	return cfg
}

// ToDTO converts a config to its on-disk form.
func ToDTO(cfg domain.Config) jsonConfig {
	temp := cfg.Temperature
	timeout := cfg.TimeoutSeconds
	parallel := cfg.MaxParallelAgents
	masking := cfg.Masking.Enabled
	return jsonConfig{
		APIKey:            cfg.APIKey,
		BaseURL:           cfg.BaseURL,
		Model:             cfg.Model,
		Temperature:       &temp,
		TimeoutSeconds:    &timeout,
		MaxParallelAgents: &parallel,
		ResponsePath:      cfg.ResponsePath,
		TemplatesDir:      cfg.Paths.TemplatesDir,
		PredictionsDir:    cfg.Paths.PredictionsDir,
		Masking:           &masking,
	}
}

// setters are the keys accepted by `config set`.
var setters = map[string]func(*domain.Config, string) error{
	"api_key":  func(c *domain.Config, v string) error { c.APIKey = v; return nil },
	"base_url": func(c *domain.Config, v string) error { c.BaseURL = strings.TrimRight(v, "/"); return nil },
	"model":    func(c *domain.Config, v string) error { c.Model = v; return nil },
	"temperature": func(c *domain.Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		c.Temperature = f
		return nil
	},
	"timeout_seconds": func(c *domain.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.TimeoutSeconds = n
		return nil
	},
	"max_parallel_agents": func(c *domain.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.MaxParallelAgents = n
		return nil
	},
	"response_path":   func(c *domain.Config, v string) error { c.ResponsePath = v; return nil },
	"templates_dir":   func(c *domain.Config, v string) error { c.Paths.TemplatesDir = v; return nil },
	"predictions_dir": func(c *domain.Config, v string) error { c.Paths.PredictionsDir = v; return nil },
	"masking": func(c *domain.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		c.Masking.Enabled = b
		return nil
	},
}

// Keys lists the settable keys in sorted order.
func Keys() []string {
	out := make([]string, 0, len(setters))
	for k := range setters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Set updates one key and validates the result.
func Set(cfg domain.Config, key, value string) (domain.Config, error) {
	set, ok := setters[strings.TrimSpace(key)]
	if !ok {
		return cfg, domain.ValidationError("config.set", "unknown key %q (expected one of %s)", key, strings.Join(Keys(), ", "))
	}

	out := cfg
	if err := set(&out, strings.TrimSpace(value)); err != nil {
		return cfg, domain.ValidationError("config.set", "invalid value %q for %s: %v", value, key, err)
	}
	if err := Validate(out); err != nil {
		return cfg, err
	}
	return out, nil
}

// MaskKey hides all but the last four characters of an API key.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return fmt.Sprintf("%s%s", strings.Repeat("*", 8), key[len(key)-4:])
}
