package forecast

import "math"

// Trend directions.
const (
	TrendUp       = "上涨"
	TrendDown     = "下跌"
	TrendSideways = "震荡"
	TrendUnknown  = "未知"
)

// trendThreshold is the mean relative change separating up/down from sideways.
const trendThreshold = 0.05

// Trend summarizes the relative changes between consecutive points.
type Trend struct {
	Direction string  `json:"trend"`
	Strength  float64 `json:"strength"`
	// AvgChangePct is the mean relative change in percent.
	AvgChangePct float64 `json:"avg_change_rate"`
	// Volatility is the population standard deviation of the relative changes.
	Volatility float64 `json:"volatility"`
	// Confidence is the share of changes agreeing with the majority sign.
	Confidence float64 `json:"confidence"`
}

// AnalyzeTrend classifies the series. Changes from a zero point are skipped;
// with fewer than two usable points the direction is TrendUnknown.
func AnalyzeTrend(data []float64) Trend {
	if len(data) < 2 {
		return Trend{Direction: TrendUnknown}
	}

	changes := make([]float64, 0, len(data)-1)
	for i := 1; i < len(data); i++ {
		if data[i-1] != 0 {
			changes = append(changes, (data[i]-data[i-1])/data[i-1])
		}
	}
	if len(changes) == 0 {
		return Trend{Direction: TrendUnknown}
	}

	avg := mean(changes)

	t := Trend{AvgChangePct: avg * 100}
	switch {
	case avg > trendThreshold:
		t.Direction = TrendUp
		t.Strength = math.Min(math.Abs(avg)*10, 1)
	case avg < -trendThreshold:
		t.Direction = TrendDown
		t.Strength = math.Min(math.Abs(avg)*10, 1)
	default:
		t.Direction = TrendSideways
		t.Strength = 0.5
	}

	var variance float64
	positive, negative := 0, 0
	for _, c := range changes {
		variance += (c - avg) * (c - avg)
		switch {
		case c > 0:
			positive++
		case c < 0:
			negative++
		}
	}
	t.Volatility = math.Sqrt(variance / float64(len(changes)))
	t.Confidence = float64(max(positive, negative)) / float64(len(changes))

	return t
}
