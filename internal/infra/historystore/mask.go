package historystore

import (
	"sort"
	"strings"

	"github.com/MistByteX/predictor/internal/domain"
)

// maskRecord returns a masked copy (does NOT mutate the input).
// Sensitive values are also scrubbed from the text they were filled into.
func maskRecord(rec domain.PredictionRecord) domain.PredictionRecord {
	out := rec
	if rec.Variables == nil {
		return out
	}

	var secrets []string
	out.Variables = make(domain.Vars, len(rec.Variables))
	for k, v := range rec.Variables {
		if isSensitiveKey(k) && v != "" {
			secrets = append(secrets, v)
			v = maskValue
		}
		out.Variables[k] = v
	}
	if len(secrets) == 0 {
		return out
	}

	// Longest first so a secret containing another is replaced whole.
	sort.Slice(secrets, func(i, j int) bool { return len(secrets[i]) > len(secrets[j]) })
	pairs := make([]string, 0, 2*len(secrets))
	for _, v := range secrets {
		pairs = append(pairs, v, maskValue)
	}
	r := strings.NewReplacer(pairs...)

	out.Prompt = r.Replace(rec.Prompt)
	out.System = r.Replace(rec.System)
	out.Description = r.Replace(rec.Description)
	return out
}

func isSensitiveKey(k string) bool {
	kk := strings.ToLower(strings.TrimSpace(k))
	if kk == "key" || strings.HasSuffix(kk, "_key") || strings.HasSuffix(kk, "-key") || strings.HasSuffix(kk, ".key") {
		return true
	}
	return strings.Contains(kk, "token") ||
		strings.Contains(kk, "secret") ||
		strings.Contains(kk, "password") ||
		strings.Contains(kk, "apikey")
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
