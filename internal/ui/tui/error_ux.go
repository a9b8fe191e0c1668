package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/MistByteX/predictor/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// Hint returns a one-line suggestion for a failed command, or "" when there
// is nothing more useful to say than the error itself.
func Hint(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, domain.ErrMissingAPIKey) {
		return "Run `predictor init` or set PREDICTOR_API_KEY"
	}

	var ae *domain.APIError
	if errors.As(err, &ae) {
		switch {
		case ae.IsAuth():
			return "The API key was rejected; update it with `predictor config set api_key <key>`"
		case ae.IsRateLimited():
			return "Rate limited by the provider; retry later or use fewer agents"
		}
		return ""
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		return ""
	}

	switch oe.Kind {
	case domain.KindNotFound:
		switch {
		case strings.Contains(oe.Op, "mdtemplate"):
			return "Template not found; see `predictor list-templates`"
		case strings.Contains(oe.Op, "historystore"):
			return "Prediction not found; see `predictor history`"
		}
		return ""

	case domain.KindTemplate:
		if errors.Is(err, domain.ErrUnresolvedVars) {
			return "Pass the missing variables with -v or drop --strict"
		}
		return ""

	case domain.KindNetwork:
		return "Check network connectivity and glm_base_url"

	case domain.KindInvalidConfig:
		base := "config"
		if strings.TrimSpace(oe.Path) != "" {
			base = filepath.Base(oe.Path)
		}
		if line := extractLine(err.Error()); line != "" && looksLikeYAMLProblem(err.Error()) {
			return "Invalid YAML at " + base + " line " + line
		}
		return "Fix " + base + " or run `predictor init --force`"
	}
	return ""
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
