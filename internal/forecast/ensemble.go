package forecast

import "github.com/MistByteX/predictor/internal/domain"

// MinEnsemblePoints is the shortest series Ensemble accepts.
const MinEnsemblePoints = 3

// Component is one predictor's first-step value inside an ensemble.
type Component struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

// EnsembleResult combines the trend with the weighted first-step forecasts.
type EnsembleResult struct {
	Trend      Trend       `json:"trend"`
	Components []Component `json:"predictions"`
	Value      float64     `json:"ensemble"`
	Steps      int         `json:"steps"`
}

type weighted struct {
	p      Predictor
	weight float64
}

func ensembleMembers() []weighted {
	return []weighted{
		{MovingAverage{Window: DefaultWindow}, 0.30},
		{ExponentialSmoothing{Alpha: DefaultAlpha}, 0.35},
		{LinearRegression{}, 0.35},
	}
}

// Ensemble runs MA, EMA and linear regression and averages their first-step
// predictions with weights 0.30 / 0.35 / 0.35.
func Ensemble(data []float64, steps int) (EnsembleResult, error) {
	if err := checkInput("forecast.ensemble", data, steps); err != nil {
		return EnsembleResult{}, err
	}
	if len(data) < MinEnsemblePoints {
		return EnsembleResult{}, domain.ValidationError("forecast.ensemble", "need at least %d data points, got %d", MinEnsemblePoints, len(data))
	}

	res := EnsembleResult{Trend: AnalyzeTrend(data), Steps: steps}

	var total, weightSum float64
	for _, m := range ensembleMembers() {
		pred, err := m.p.Predict(data, steps)
		if err != nil {
			return EnsembleResult{}, err
		}
		res.Components = append(res.Components, Component{Name: m.p.Name(), Value: pred[0], Weight: m.weight})
		total += pred[0] * m.weight
		weightSum += m.weight
	}
	if weightSum > 0 {
		res.Value = total / weightSum
	}
	return res, nil
}
