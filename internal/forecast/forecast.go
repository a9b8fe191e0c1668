// Package forecast implements small classical forecasting formulas over a
// numeric series: moving average, exponential smoothing, linear regression,
// trend analysis and a weighted ensemble of the three predictors.
package forecast

import (
	"math"
	"strconv"
	"strings"

	"github.com/MistByteX/predictor/internal/domain"
)

// Defaults used by the algo command.
const (
	DefaultWindow = 5
	DefaultAlpha  = 0.3
)

// Predictor extrapolates a series steps values ahead.
type Predictor interface {
	Name() string
	Predict(data []float64, steps int) ([]float64, error)
}

// MovingAverage repeats the mean of the last Window points. Shorter series
// use the mean of all points.
type MovingAverage struct {
	Window int
}

func (MovingAverage) Name() string { return "ma" }

func (m MovingAverage) Predict(data []float64, steps int) ([]float64, error) {
	if err := checkInput("forecast.ma", data, steps); err != nil {
		return nil, err
	}
	if m.Window < 1 {
		return nil, domain.ValidationError("forecast.ma", "window must be >= 1, got %d", m.Window)
	}

	tail := data
	if len(data) >= m.Window {
		tail = data[len(data)-m.Window:]
	}
	return repeat(mean(tail), steps), nil
}

// ExponentialSmoothing repeats the last smoothed level
// s[i] = Alpha*x[i] + (1-Alpha)*s[i-1], seeded with the first point.
type ExponentialSmoothing struct {
	Alpha float64
}

func (ExponentialSmoothing) Name() string { return "ema" }

func (e ExponentialSmoothing) Predict(data []float64, steps int) ([]float64, error) {
	if err := checkInput("forecast.ema", data, steps); err != nil {
		return nil, err
	}
	if e.Alpha <= 0 || e.Alpha > 1 || math.IsNaN(e.Alpha) {
		return nil, domain.ValidationError("forecast.ema", "alpha must be in (0, 1], got %v", e.Alpha)
	}

	level := data[0]
	for _, x := range data[1:] {
		level = e.Alpha*x + (1-e.Alpha)*level
	}
	return repeat(level, steps), nil
}

// LinearRegression fits y = slope*x + intercept over x = 0..n-1 by least
// squares and extends the line to x = n, n+1, ...
type LinearRegression struct{}

func (LinearRegression) Name() string { return "linear" }

// Fit returns the least-squares line. A single point yields a flat line.
func (LinearRegression) Fit(data []float64) (slope, intercept float64) {
	n := len(data)
	if n == 0 {
		return 0, 0
	}
	yMean := mean(data)
	if n < 2 {
		return 0, yMean
	}

	xMean := float64(n-1) / 2
	var num, den float64
	for i, y := range data {
		dx := float64(i) - xMean
		num += dx * (y - yMean)
		den += dx * dx
	}
	if den != 0 {
		slope = num / den
	}
	return slope, yMean - slope*xMean
}

func (l LinearRegression) Predict(data []float64, steps int) ([]float64, error) {
	if err := checkInput("forecast.linear", data, steps); err != nil {
		return nil, err
	}

	slope, intercept := l.Fit(data)
	n := len(data)
	out := make([]float64, steps)
	for i := range out {
		out[i] = slope*float64(n+i) + intercept
	}
	return out, nil
}

// ByName returns the predictor registered under name with default settings.
func ByName(name string) (Predictor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ma":
		return MovingAverage{Window: DefaultWindow}, nil
	case "ema":
		return ExponentialSmoothing{Alpha: DefaultAlpha}, nil
	case "linear":
		return LinearRegression{}, nil
	default:
		return nil, domain.ValidationError("forecast.algorithm", "unknown algorithm %q (expected ma, ema, linear, trend or ensemble)", name)
	}
}

// ParseSeries parses "1, 2.5,3" into numbers. Blank input or a non-numeric
// item is a validation error quoting the item.
func ParseSeries(csv string) ([]float64, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, domain.ValidationError("forecast.parse", "data is empty")
	}

	parts := strings.Split(csv, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, domain.ValidationError("forecast.parse", "invalid number %q", p)
		}
		out = append(out, v)
	}
	return out, nil
}

func checkInput(op string, data []float64, steps int) error {
	if len(data) == 0 {
		return domain.ValidationError(op, "data is empty")
	}
	if steps < 1 {
		return domain.ValidationError(op, "steps must be >= 1, got %d", steps)
	}
	return nil
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
