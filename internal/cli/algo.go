package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/MistByteX/predictor/internal/forecast"
)

func algoCmd() *cobra.Command {
	var data string
	var steps int
	var algorithm string
	var format string

	c := &cobra.Command{
		Use:   "algo",
		Short: "Forecast a numeric series (ma, ema, linear, trend, ensemble)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			series, err := forecast.ParseSeries(data)
			if err != nil {
				return err
			}
			return runForecast(cmd.OutOrStdout(), series, steps, strings.ToLower(strings.TrimSpace(algorithm)), format)
		},
	}

	c.Flags().StringVarP(&data, "data", "d", "", "Comma-separated series, e.g. 10,12,13.5 (required)")
	c.Flags().IntVarP(&steps, "steps", "s", 1, "Number of steps to forecast")
	c.Flags().StringVarP(&algorithm, "algorithm", "a", "ensemble", "Algorithm: ma|ema|linear|trend|ensemble")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	_ = c.MarkFlagRequired("data")
	return c
}

type forecastJSON struct {
	Algorithm   string    `json:"algorithm"`
	Steps       int       `json:"steps"`
	Predictions []float64 `json:"predictions"`
}

func runForecast(w io.Writer, series []float64, steps int, algorithm, format string) error {
	switch algorithm {
	case "trend":
		t := forecast.AnalyzeTrend(series)
		if format == "json" {
			return writeJSON(w, t)
		}
		printTrend(w, t)
		return nil

	case "ensemble":
		res, err := forecast.Ensemble(series, steps)
		if err != nil {
			return err
		}
		if format == "json" {
			return writeJSON(w, res)
		}
		fmt.Fprintln(w, theme.Title.Render("Ensemble forecast"))
		printTrend(w, res.Trend)
		fmt.Fprintln(w)
		for _, c := range res.Components {
			field(w, c.Name, fmt.Sprintf("%s (weight %.2f)", num(c.Value), c.Weight))
		}
		field(w, "ensemble", theme.Accent.Render(num(res.Value)))
		return nil

	default:
		p, err := forecast.ByName(algorithm)
		if err != nil {
			return err
		}
		values, err := p.Predict(series, steps)
		if err != nil {
			return err
		}
		if format == "json" {
			return writeJSON(w, forecastJSON{Algorithm: p.Name(), Steps: steps, Predictions: values})
		}
		fmt.Fprintln(w, theme.Title.Render(p.Name()+" forecast"))
		for i, v := range values {
			field(w, fmt.Sprintf("t+%d", i+1), num(v))
		}
		return nil
	}
}

func printTrend(w io.Writer, t forecast.Trend) {
	field(w, "trend", theme.Accent.Render(t.Direction))
	field(w, "strength", fmt.Sprintf("%.2f", t.Strength))
	field(w, "avg change", fmt.Sprintf("%.2f%%", t.AvgChangePct))
	field(w, "volatility", fmt.Sprintf("%.4f", t.Volatility))
	field(w, "confidence", fmt.Sprintf("%.2f", t.Confidence))
}

func num(v float64) string {
	return humanize.CommafWithDigits(v, 4)
}
