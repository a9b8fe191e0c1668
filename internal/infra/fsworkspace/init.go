package fsworkspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/infra/config"
	"github.com/MistByteX/predictor/internal/ports"
)

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.HomeInitializer = (*Initializer)(nil)

// Init lays out the home directory: config.json, starter templates, agent
// personas and the predictions/logs directories. Existing files are kept
// unless force is set; the API key and base URL from spec always win.
func (i *Initializer) Init(spec domain.HomeSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	cfg, err := writeConfig(root, spec, force)
	if err != nil {
		return err
	}

	dirs := []string{
		resolveDir(root, cfg.Paths.TemplatesDir),
		resolveDir(root, cfg.Paths.PredictionsDir),
		resolveDir(root, cfg.Paths.LogsDir),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return initError(d, err)
		}
	}

	if err := ensureGitignore(root); err != nil {
		return initError(filepath.Join(root, ".gitignore"), err)
	}

	return fs.WalkDir(seedFS, "seed", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, "seed/")
		dst := filepath.Join(root, filepath.FromSlash(rel))
		if after, ok := strings.CutPrefix(rel, "templates/"); ok {
			dst = filepath.Join(resolveDir(root, cfg.Paths.TemplatesDir), filepath.FromSlash(after))
		}

		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				return nil
			}
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return initError(dst, err)
		}

		b, err := fs.ReadFile(seedFS, p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dst, b, 0o644); err != nil {
			return initError(dst, err)
		}
		return nil
	})
}

func writeConfig(root string, spec domain.HomeSpec, force bool) (domain.Config, error) {
	path := filepath.Join(root, config.FileName)

	cfg, err := config.Load(path)
	switch {
	case err == nil && !force && spec.APIKey == "" && spec.BaseURL == "":
		return cfg, nil
	case err != nil && !domain.IsKind(err, domain.KindNotFound) && !force:
		return cfg, err
	case force:
		// Reset to defaults but never drop a working key.
		key := cfg.APIKey
		cfg = domain.DefaultConfig()
		cfg.APIKey = key
	}

	if spec.APIKey != "" {
		cfg.APIKey = strings.TrimSpace(spec.APIKey)
	}
	if spec.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(strings.TrimSpace(spec.BaseURL), "/")
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, config.Save(path, cfg)
}

func resolveDir(root, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

func initError(path string, err error) error {
	return &domain.OpError{
		Op:   "fsworkspace.init",
		Kind: domain.KindExecution,
		Path: path,
		Err:  err,
	}
}

// ensureGitignore keeps secrets and generated files out of version control
// for users who track their templates in git.
func ensureGitignore(root string) error {
	const header = "# predictor"
	entries := []string{
		"config.json",
		".env",
		"predictions/",
		"logs/",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 64)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
