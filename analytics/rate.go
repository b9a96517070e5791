package analytics

import (
	"math"
	"time"
)

const (
	msPerHour = 3_600_000.0

	// rateWindowSamples bounds the regression window for hourly rates.
	rateWindowSamples = 48

	// minMeaningfulSlope separates a real trend from regression noise; below
	// it a target projection would produce absurd ETAs.
	minMeaningfulSlope = 1e-6
)

// RateResult carries an hourly rate of change, rounded to four decimals.
type RateResult struct {
	SlopePerHour float64 `json:"slopePerHour"`
}

// TargetProjection is a linear extrapolation to a target value.
type TargetProjection struct {
	Hours float64 `json:"hours"`
	ETA   int64   `json:"eta"` // epoch milliseconds
}

// RateOfChangePerHour estimates the hourly rate of change by least-squares
// regression over at most the 48 most recent samples. Timestamps are used
// only when they align 1:1 with the values; otherwise each sample counts as
// one hour, a known approximation. Fewer than two points, or a non-finite
// slope, yield a zero rate.
func RateOfChangePerHour(values []float64, timestamps []int64) RateResult {
	n := len(values)
	aligned := len(timestamps) == n
	if n > rateWindowSamples {
		values = values[n-rateWindowSamples:]
		if aligned {
			timestamps = timestamps[n-rateWindowSamples:]
		}
		n = rateWindowSamples
	}
	if n < 2 {
		return RateResult{}
	}

	xs := make([]float64, n)
	if aligned {
		t0 := timestamps[0]
		for i, t := range timestamps {
			xs[i] = float64(t-t0) / msPerHour
		}
	} else {
		for i := range xs {
			xs[i] = float64(i)
		}
	}

	slope := olsSlope(xs, values)
	if !isFinite(slope) {
		return RateResult{}
	}
	return RateResult{SlopePerHour: round4(slope)}
}

// TimeToTarget extrapolates the recent hourly rate to a target value.
// It returns nil when there is no data, the rate is not finite, or the rate
// is too small to mean anything.
func TimeToTarget(values []float64, timestamps []int64, target float64) *TargetProjection {
	if len(values) == 0 {
		return nil
	}
	rate := RateOfChangePerHour(values, timestamps).SlopePerHour
	if !isFinite(rate) || math.Abs(rate) < minMeaningfulSlope {
		return nil
	}
	hours := (target - values[len(values)-1]) / rate
	if !isFinite(hours) {
		return nil
	}
	return &TargetProjection{
		Hours: hours,
		ETA:   time.Now().UnixMilli() + int64(hours*msPerHour),
	}
}
