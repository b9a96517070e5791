package analytics

import "math"

const (
	// DefaultTargetCdh is the degree-hour total treated as a mature pile.
	DefaultTargetCdh = 1000.0

	idealMoisturePct     = 60.0
	moistureTolerancePct = 20.0

	// maxStableTempStdDev is the temperature spread treated as fully
	// unstable, in °C.
	maxStableTempStdDev = 6.0
)

// ReadinessResult is the composite maturity score on a 0-100 scale, with
// each component rescaled to 0-100 for display breakdown.
type ReadinessResult struct {
	Readiness  float64             `json:"readiness"`
	Components ReadinessComponents `json:"components"`
}

type ReadinessComponents struct {
	Cdh       float64 `json:"cdh"`
	Moisture  float64 `json:"moisture"`
	Stability float64 `json:"stability"`
}

// ComputeReadiness scores compost maturity from degree-hour progress (70%),
// moisture deviation from the ideal band (20%) and temperature stability
// (10%). Pass NaN for moisture when no reading is available; it and a
// temperature series shorter than three samples score a neutral 0.5.
func ComputeReadiness(cdh, targetCdh, moisture float64, temps []float64) ReadinessResult {
	if targetCdh <= 0 {
		targetCdh = DefaultTargetCdh
	}
	target := targetCdh
	if target < 1 {
		target = 1
	}
	normCdh := clamp(cdh/target, 0, 1)

	moistureScore := 0.5
	if isFinite(moisture) {
		moistureScore = 1 - clamp(math.Abs(moisture-idealMoisturePct)/moistureTolerancePct, 0, 1)
	}

	stability := 0.5
	if len(temps) >= 3 {
		stability = 1 - clamp(popStdDev(temps)/maxStableTempStdDev, 0, 1)
	}

	readiness := clamp(0.7*normCdh+0.2*moistureScore+0.1*stability, 0, 1) * 100
	return ReadinessResult{
		Readiness: round1(readiness),
		Components: ReadinessComponents{
			Cdh:       round1(normCdh * 100),
			Moisture:  round1(moistureScore * 100),
			Stability: round1(stability * 100),
		},
	}
}

// Per-field weights and normalization scales for the overall stability
// score. A series needs at least four samples to contribute.
var stabilityFields = []struct {
	key    string
	weight float64
	scale  float64
}{
	{"temperature", 0.35, 12},
	{"moisture", 0.35, 10},
	{"nitrogen", 0.1, 100},
	{"phosphorus", 0.1, 100},
	{"potassium", 0.1, 100},
}

// OverallStabilityScore rates the pile's short-term variability across all
// monitored fields on a 0-100 scale, 100 meaning fully settled. Each
// contributing series subtracts min(1, stddev/scale)·weight·100 from the
// ceiling.
func OverallStabilityScore(series map[string][]float64) float64 {
	score := 100.0
	for _, f := range stabilityFields {
		vals := series[f.key]
		if len(vals) < 4 {
			continue
		}
		penalty := popStdDev(vals) / f.scale
		if penalty > 1 {
			penalty = 1
		}
		score -= penalty * f.weight * 100
	}
	return round1(clamp(score, 0, 100))
}
