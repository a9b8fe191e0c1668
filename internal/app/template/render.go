package template

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MistByteX/predictor/internal/domain"
)

// Options controls how Fill treats placeholders it cannot resolve.
type Options struct {
	// Strict rejects unresolved placeholders with a template error.
	// The default leaves them verbatim in the output.
	Strict bool
}

// RenderString replaces {name} placeholders with vars values. Text outside the
// replaced spans, including anything inside {{...}}, is copied byte-for-byte. It returns the names of placeholders
// that had no value, in order of appearance, without duplicates.
func RenderString(input string, vars map[string]string) (string, []string) {
	if input == "" {
		return "", nil
	}

	var out strings.Builder
	out.Grow(len(input))

	var unresolved []string
	seen := map[string]bool{}

	rest := input
	for {
		start := strings.IndexByte(rest, '{')
		if start == -1 {
			out.WriteString(rest)
			return out.String(), unresolved
		}

		out.WriteString(rest[:start])
		rest = rest[start:]

		// "{{...}}" is literal text, inner braces included.
		if strings.HasPrefix(rest, "{{") {
			end := strings.Index(rest[2:], "}}")
			if end == -1 {
				out.WriteString("{{")
				rest = rest[2:]
				continue
			}
			out.WriteString(rest[:end+4])
			rest = rest[end+4:]
			continue
		}

		name, width := scanPlaceholder(rest)
		if width == 0 {
			// Not a placeholder (JSON, code): keep the brace and move on.
			out.WriteByte('{')
			rest = rest[1:]
			continue
		}

		if value, ok := vars[name]; ok {
			out.WriteString(value)
		} else {
			out.WriteString(rest[:width])
			if !seen[name] {
				seen[name] = true
				unresolved = append(unresolved, name)
			}
		}
		rest = rest[width:]
	}
}

// Placeholders lists the placeholder names in body in order of first appearance.
func Placeholders(body string) []string {
	_, names := RenderString(body, nil)
	return names
}

// Fill fills a template body with vars, falling back to the template's declared
// defaults, and appends the divination description when one is given.
func Fill(t domain.Template, vars domain.Vars, divination string, opts Options) (string, error) {
	merged := domain.Merge(t.Defaults(), vars)

	out, unresolved := RenderString(t.Body, merged)
	if opts.Strict && len(unresolved) > 0 {
		return "", &domain.OpError{
			Op:   "template.fill",
			Kind: domain.KindTemplate,
			Path: t.Path,
			Err:  fmt.Errorf("%w in %q: %s", domain.ErrUnresolvedVars, t.Name, strings.Join(unresolved, ", ")),
		}
	}

	if strings.TrimSpace(divination) != "" {
		out = strings.TrimRight(out, "\n") + "\n\n" + divination
	}
	return out, nil
}

// scanPlaceholder reports the name and byte width of a placeholder starting at
// s[0] == '{'. A zero width means s does not start with a placeholder.
func scanPlaceholder(s string) (string, int) {
	i := 1
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == '}' {
			if i == 1 {
				return "", 0
			}
			return s[1:i], i + 1
		}
		if !isNameRune(r) {
			return "", 0
		}
		i += size
	}
	return "", 0
}

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.'
}
