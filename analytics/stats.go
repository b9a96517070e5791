// Package analytics holds the pure numeric toolkit behind the dashboard:
// summary statistics, trend estimation, anomaly flagging, correlation,
// rate projections, degree-hour accumulation and readiness scoring.
// Every function is stateless and reads its arguments only; malformed or
// degenerate numeric input degrades to a documented sentinel (zero, empty
// slice, NaN or nil) instead of panicking.
package analytics

import (
	"math"

	"github.com/montanaflynn/stats"
)

// DefaultMovingAverageWindow is the smoothing window the dashboard charts use.
const DefaultMovingAverageWindow = 5

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// StdDev returns the population standard deviation rounded to two decimals,
// or 0 for an empty slice.
func StdDev(values []float64) float64 {
	return round2(popStdDev(values))
}

// Min returns the smallest value, or 0 for an empty slice.
func Min(values []float64) float64 {
	m, err := stats.Min(values)
	if err != nil {
		return 0
	}
	return m
}

// Max returns the largest value, or 0 for an empty slice.
func Max(values []float64) float64 {
	m, err := stats.Max(values)
	if err != nil {
		return 0
	}
	return m
}

// MovingAverage returns the trailing moving average of values. The window
// shrinks near the start of the series so the output always has the same
// length as the input, with each element rounded to two decimals.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 0 {
		window = DefaultMovingAverageWindow
	}
	out := make([]float64, len(values))
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		var sum float64
		for _, v := range values[start : i+1] {
			sum += v
		}
		out[i] = round2(sum / float64(i-start+1))
	}
	return out
}

// popStdDev is the unrounded population standard deviation used internally
// by the z-score and stability computations.
func popStdDev(values []float64) float64 {
	sd, err := stats.StandardDeviationPopulation(values)
	if err != nil {
		return 0
	}
	return sd
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
