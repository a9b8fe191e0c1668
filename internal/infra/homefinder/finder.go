package homefinder

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/MistByteX/predictor/internal/domain"
)

// DefaultDirName is the home directory created under the user's home.
const DefaultDirName = ".predictor"

// Finder resolves the predictor home directory.
type Finder struct {
	EnvVar      string // defaults to "PREDICTOR_HOME"
	Getenv      func(string) string
	UserHomeDir func() (string, error)
}

func NewFinder() *Finder {
	return &Finder{
		EnvVar:      "PREDICTOR_HOME",
		Getenv:      os.Getenv,
		UserHomeDir: os.UserHomeDir,
	}
}

// Resolve picks the home directory: explicit override, then the environment,
// then ~/.predictor. The directory does not need to exist.
func (f *Finder) Resolve(override string) (string, error) {
	dir := strings.TrimSpace(override)
	if dir == "" && f.Getenv != nil {
		dir = strings.TrimSpace(f.Getenv(f.EnvVar))
	}

	if dir == "" {
		if f.UserHomeDir == nil {
			return "", &domain.OpError{
				Op:   "homefinder.resolve",
				Kind: domain.KindInvalidConfig,
				Err:  errors.New("no home directory resolver"),
			}
		}
		userHome, err := f.UserHomeDir()
		if err != nil {
			return "", &domain.OpError{
				Op:   "homefinder.resolve",
				Kind: domain.KindInvalidConfig,
				Err:  err,
			}
		}
		dir = filepath.Join(userHome, DefaultDirName)
	}

	if strings.HasPrefix(dir, "~"+string(filepath.Separator)) && f.UserHomeDir != nil {
		if userHome, err := f.UserHomeDir(); err == nil {
			dir = filepath.Join(userHome, dir[2:])
		}
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "homefinder.resolve",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}
	return filepath.Clean(abs), nil
}
