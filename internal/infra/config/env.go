package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/MistByteX/predictor/internal/domain"
)

// Environment variables that override config.json.
const (
	EnvHome    = "PREDICTOR_HOME"
	EnvAPIKey  = "PREDICTOR_API_KEY"
	EnvBaseURL = "PREDICTOR_BASE_URL"
	EnvModel   = "PREDICTOR_MODEL"
)

// LoadDotEnv loads KEY=VALUE pairs from a .env file into the process environment.
// Variables already set win; a missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return &domain.OpError{
		Op:   "config.dotenv",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  err,
	}
}

// ApplyEnv overlays environment overrides; getenv is os.Getenv outside tests.
func ApplyEnv(cfg domain.Config, getenv func(string) string) domain.Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	out := cfg
	if v := strings.TrimSpace(getenv(EnvAPIKey)); v != "" {
		out.APIKey = v
	}
	if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
		out.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(getenv(EnvModel)); v != "" {
		out.Model = v
	}
	return out
}
