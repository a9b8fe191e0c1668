package yamlagents

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/ports"
)

// Loader reads agent personas from agents.yaml.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

var _ ports.PersonaLoader = (*Loader)(nil)

type yamlAgents struct {
	Agents []yamlPersona `yaml:"agents"`
}

type yamlPersona struct {
	Name   string `yaml:"name"`
	System string `yaml:"system"`
}

// LoadPersonas returns the configured personas, or the built-in ones when the
// file is missing or lists none.
func (l *Loader) LoadPersonas() ([]domain.Persona, error) {
	b, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultPersonas(), nil
		}
		return nil, &domain.OpError{
			Op:   "yamlagents.load",
			Kind: domain.KindExecution,
			Path: l.path,
			Err:  err,
		}
	}

	var y yamlAgents
	if err := yaml.Unmarshal(b, &y); err != nil {
		return nil, &domain.OpError{
			Op:   "yamlagents.load",
			Kind: domain.KindInvalidConfig,
			Path: l.path,
			Err:  err,
		}
	}
	if len(y.Agents) == 0 {
		return domain.DefaultPersonas(), nil
	}

	out := make([]domain.Persona, 0, len(y.Agents))
	for i, a := range y.Agents {
		name := strings.TrimSpace(a.Name)
		system := strings.TrimSpace(a.System)
		if system == "" {
			return nil, invalidField(l.path, fmt.Sprintf("agents[%d].system", i), "system prompt is required")
		}
		if name == "" {
			name = fmt.Sprintf("agent-%d", i+1)
		}
		out = append(out, domain.Persona{Name: name, System: system})
	}
	return out, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlagents.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s", field, msg),
	}
}
