package tui

import (
	"strings"
	"unicode/utf8"
)

// Clamp shortens s to maxLen runes, marking the cut with an ellipsis.
// Newlines are folded into spaces so the result fits on one line.
func Clamp(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}
