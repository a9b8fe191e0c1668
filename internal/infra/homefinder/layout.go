package homefinder

import (
	"path/filepath"

	"github.com/MistByteX/predictor/internal/domain"
)

// Layout holds the absolute paths used inside a home directory.
type Layout struct {
	Root           string
	ConfigFile     string
	EnvFile        string
	AgentsFile     string
	TemplatesDir   string
	PredictionsDir string
	LogsDir        string
}

// LayoutFor resolves cfg paths against root. Absolute paths are kept as is.
func LayoutFor(root string, cfg domain.Config) Layout {
	return Layout{
		Root:           root,
		ConfigFile:     filepath.Join(root, "config.json"),
		EnvFile:        filepath.Join(root, ".env"),
		AgentsFile:     filepath.Join(root, "agents.yaml"),
		TemplatesDir:   resolve(root, cfg.Paths.TemplatesDir, "templates"),
		PredictionsDir: resolve(root, cfg.Paths.PredictionsDir, "predictions"),
		LogsDir:        resolve(root, cfg.Paths.LogsDir, "logs"),
	}
}

func resolve(root, p, fallback string) string {
	if p == "" {
		p = fallback
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
