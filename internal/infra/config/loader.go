package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/MistByteX/predictor/internal/domain"
)

// FileName is the config file name inside the home directory.
const FileName = "config.json"

// Load reads config.json and applies it on top of defaults. A missing file
// returns the defaults together with a KindNotFound error.
func Load(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto jsonConfig
	if err := json.Unmarshal(b, &dto); err != nil {
		return cfg, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapConfig(cfg, dto), nil
}

// Save writes cfg to path as indented JSON, readable only by the owner.
func Save(path string, cfg domain.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &domain.OpError{
			Op:   "config.save",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToDTO(cfg)); err != nil {
		return &domain.OpError{
			Op:   "config.save",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return &domain.OpError{
			Op:   "config.save",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "config.save",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return nil
}
