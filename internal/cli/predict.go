package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/usecase"
)

func predictCmd(o *rootOptions) *cobra.Command {
	var varsJSON string
	var meihua bool
	var div divinationFlags
	var agents int
	var times int
	var system string
	var strict bool
	var format string

	c := &cobra.Command{
		Use:   "predict <template>",
		Short: "Fill a template with variables and ask the model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			vars, err := parseVars(varsJSON)
			if err != nil {
				return err
			}
			if agents < 1 {
				return domain.ValidationError("cli.predict", "--agents must be >= 1, got %d", agents)
			}
			if times < 1 {
				return domain.ValidationError("cli.predict", "--times must be >= 1, got %d", times)
			}

			h, err := o.loadHome()
			if err != nil {
				return err
			}
			uc, err := h.predictor()
			if err != nil {
				return err
			}

			name := strings.TrimSpace(args[0])
			w := cmd.OutOrStdout()
			var records []domain.PredictionRecord

			for i := 1; i <= times; i++ {
				req := usecase.PredictRequest{
					Kind:      domain.KindPredict,
					Template:  name,
					Variables: vars,
					System:    system,
					Agents:    agents,
					Strict:    strict,
				}
				if meihua {
					reading, err := div.cast(divinationQuestion(name, vars), o.now())
					if err != nil {
						return err
					}
					req.Divination = &reading
				}

				out, err := uc.Execute(cmd.Context(), req)
				if err != nil {
					if times > 1 {
						return fmt.Errorf("prediction %d/%d: %w", i, times, err)
					}
					return err
				}
				if out.HistoryErr != nil {
					warn(cmd.ErrOrStderr(), "prediction not saved: %v", out.HistoryErr)
				}

				if format == "json" {
					records = append(records, out.Record)
					continue
				}
				if times > 1 {
					if i > 1 {
						fmt.Fprintln(w)
					}
					fmt.Fprintln(w, theme.Accent.Render(fmt.Sprintf("Run %d/%d", i, times)))
				}
				if err := printPrediction(w, out.Record, format, false); err != nil {
					return err
				}
			}

			switch {
			case format != "json":
				return nil
			case len(records) == 1:
				return writeJSON(w, records[0])
			default:
				return writeJSON(w, records)
			}
		},
	}

	c.Flags().StringVarP(&varsJSON, "vars", "v", "", `Template variables as a JSON object, e.g. '{"event":"rain"}'`)
	c.Flags().BoolVarP(&meihua, "meihua", "m", false, "Add a Plum Blossom divination to the prompt")
	div.register(c, "")
	c.Flags().IntVarP(&agents, "agents", "a", 1, "Number of agents to ask in parallel")
	c.Flags().IntVarP(&times, "times", "n", 1, "Repeat the prediction this many times")
	c.Flags().StringVar(&system, "system", "", "System prompt (overrides the template's)")
	c.Flags().BoolVar(&strict, "strict", false, "Fail on unresolved placeholders instead of sending them verbatim")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

// parseVars decodes a JSON object into template variables. Strings are kept
// as is; numbers keep their literal form; other values are re-encoded as JSON.
func parseVars(raw string) (domain.Vars, error) {
	raw = strings.TrimSpace(raw)
	out := domain.Vars{}
	if raw == "" {
		return out, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var m map[string]any
	err := dec.Decode(&m)
	if err == nil && dec.More() {
		err = errors.New("unexpected data after the object")
	}
	if err != nil {
		return nil, domain.ValidationError("cli.vars", "invalid JSON in --vars %q: %v", raw, err)
	}

	for k, v := range m {
		switch t := v.(type) {
		case string:
			out[k] = t
		case nil:
			out[k] = ""
		case json.Number:
			out[k] = t.String()
		default:
			b, err := json.Marshal(t)
			if err != nil {
				return nil, domain.ValidationError("cli.vars", "variable %q: %v", k, err)
			}
			out[k] = string(b)
		}
	}
	return out, nil
}

// divinationQuestion is the text a template prediction is cast on: the
// variable values in key order, or the template name when there are none.
func divinationQuestion(template string, vars domain.Vars) string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := strings.TrimSpace(vars[k]); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return template
	}
	return strings.Join(parts, " ")
}
