package mdtemplate

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MistByteX/predictor/internal/domain"
)

const fence = "---"

type frontMatter struct {
	Description string         `yaml:"description"`
	System      string         `yaml:"system"`
	Variables   []yamlVariable `yaml:"variables"`
}

type yamlVariable struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Default     string `yaml:"default"`
	Required    bool   `yaml:"required"`
}

// parse splits an optional YAML front matter block from the Markdown body.
// The front matter must start on the first line with "---" and end with a
// line holding only "---". Without it the whole input is the body.
func parse(b []byte) (frontMatter, string, error) {
	var fm frontMatter

	text := string(bytes.TrimPrefix(b, []byte("\ufeff")))
	first, rest, ok := cutLine(text)
	if !ok || strings.TrimRight(first, " \t\r") != fence {
		return fm, text, nil
	}

	var head strings.Builder
	for {
		line, next, more := cutLine(rest)
		if strings.TrimRight(line, " \t\r") == fence {
			if err := yaml.Unmarshal([]byte(head.String()), &fm); err != nil {
				return fm, "", fmt.Errorf("front matter: %w", err)
			}
			if err := fm.validate(); err != nil {
				return fm, "", err
			}
			return fm, strings.TrimLeft(next, "\r\n"), nil
		}
		if !more {
			// Unterminated fence: treat as plain Markdown.
			return frontMatter{}, text, nil
		}
		head.WriteString(line)
		head.WriteByte('\n')
		rest = next
	}
}

func (fm frontMatter) validate() error {
	seen := map[string]bool{}
	for i, v := range fm.Variables {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			return fmt.Errorf("field variables[%d].name: variable name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("field variables[%d].name: duplicate variable %q", i, name)
		}
		seen[name] = true
	}
	return nil
}

func (fm frontMatter) toTemplate(name, path, body string) domain.Template {
	t := domain.Template{
		Name:        name,
		Path:        path,
		Description: strings.TrimSpace(fm.Description),
		System:      strings.TrimSpace(fm.System),
		Body:        body,
	}
	for _, v := range fm.Variables {
		t.Variables = append(t.Variables, domain.VariableSpec{
			Name:        strings.TrimSpace(v.Name),
			Description: v.Description,
			Default:     v.Default,
			Required:    v.Required,
		})
	}
	return t
}

func cutLine(s string) (line, rest string, ok bool) {
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}
