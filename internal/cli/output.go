package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/ui/tui"
)

var theme = tui.DefaultTheme()

func checkFormat(format string) error {
	switch format {
	case "pretty", "", "json":
		return nil
	default:
		return domain.ValidationError("cli.format", "unsupported format %q (expected pretty|json)", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", theme.Label.Render(fmt.Sprintf("%-11s", label+":")), value)
}

func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, theme.Warn.Render("warning: "+fmt.Sprintf(format, args...)))
}

// printPrediction renders a record. verbose adds the prompt that was sent.
func printPrediction(w io.Writer, rec domain.PredictionRecord, format string, verbose bool) error {
	switch format {
	case "json":
		return writeJSON(w, rec)
	case "pretty", "":
		printPrettyPrediction(w, rec, verbose)
		return nil
	default:
		return checkFormat(format)
	}
}

func printPrettyPrediction(w io.Writer, rec domain.PredictionRecord, verbose bool) {
	fmt.Fprintln(w, theme.Title.Render("Prediction"))
	if rec.ID != "" {
		field(w, "ID", rec.ID)
	}
	field(w, "Template", rec.Template)
	if rec.Description != "" {
		field(w, "About", rec.Description)
	}
	field(w, "Model", rec.Model)
	if !rec.CreatedAt.IsZero() {
		field(w, "Created", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	if d := rec.Divination; d != nil {
		field(w, "Divination", fmt.Sprintf("%s → %s（第%d爻动）", d.Primary, d.Transformed, d.ChangingLine))
	}

	if verbose {
		fmt.Fprintln(w)
		if rec.System != "" {
			fmt.Fprintln(w, theme.Subtitle.Render("System:"))
			fmt.Fprintln(w, strings.TrimRight(rec.System, "\n"))
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, theme.Subtitle.Render("Prompt:"))
		fmt.Fprintln(w, strings.TrimRight(rec.Prompt, "\n"))
	}

	multi := len(rec.Responses) > 1
	for _, r := range rec.Responses {
		fmt.Fprintln(w)
		if multi {
			head := fmt.Sprintf("Agent %d", r.Agent)
			if r.Persona != "" {
				head += " · " + r.Persona
			}
			fmt.Fprintf(w, "%s %s\n", theme.Accent.Render(head), theme.Help.Render(fmt.Sprintf("(%dms)", r.LatencyMS)))
		}
		if r.Failed() {
			fmt.Fprintln(w, theme.Error.Render("failed: "+r.Error))
			continue
		}
		fmt.Fprintln(w, strings.TrimRight(r.Content, "\n"))
	}
}
