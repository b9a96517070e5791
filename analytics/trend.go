package analytics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Trend classification labels.
const (
	TrendNA              = "N/A"
	TrendRising          = "Rising"
	TrendFalling         = "Falling"
	TrendSlightlyRising  = "Slightly rising"
	TrendSlightlyFalling = "Slightly falling"
	TrendStable          = "Stable"
)

const msPerDay = 86_400_000.0

// TrendSettings are the classifier thresholds. They are injected by the
// caller, which loads them from the persisted settings blob on each request.
type TrendSettings struct {
	SlopeNormThreshold float64 `bson:"slopeNormThreshold" json:"slopeNormThreshold"`
	PctThreshold       float64 `bson:"pctThreshold"       json:"pctThreshold"`
	SlightPct          float64 `bson:"slightPct"          json:"slightPct"`
}

// DefaultTrendSettings returns the hardcoded thresholds applied when the
// stored blob is missing or unusable.
func DefaultTrendSettings() TrendSettings {
	return TrendSettings{
		SlopeNormThreshold: 0.6,
		PctThreshold:       3,
		SlightPct:          1.5,
	}
}

// TrendResult is the output of ComputeTrend. Pct is the first-to-last percent
// change, Slope the regression slope (per day with timestamps, per sample
// without), and SlopeNorm a dimensionless trend-strength signal.
type TrendResult struct {
	Pct       float64 `json:"pct"`
	Slope     float64 `json:"slope"`
	SlopeNorm float64 `json:"slopeNorm"`
	Trend     string  `json:"trend"`
	Interp    string  `json:"interp"`

	// Degraded reports that the regression produced a non-finite
	// intermediate and the slope fields were reset to zero.
	Degraded bool `json:"-"`
}

// ComputeTrend classifies the direction of a series. With fewer than two
// samples the result is the N/A sentinel. When timestamps (epoch ms) cover
// the series, the regression runs against elapsed days; otherwise against the
// sample index. A zero-value settings struct falls back to the defaults.
func ComputeTrend(values []float64, timestamps []int64, s TrendSettings) TrendResult {
	n := len(values)
	if n < 2 {
		return TrendResult{Trend: TrendNA, Interp: "Not enough data"}
	}
	if s == (TrendSettings{}) {
		s = DefaultTrendSettings()
	}

	first, last := values[0], values[n-1]
	var pct float64
	if first != 0 {
		pct = (last - first) / math.Abs(first) * 100
	}

	slope, slopeNorm, degraded := regress(values, timestamps)

	var trend string
	switch {
	case slopeNorm > s.SlopeNormThreshold || pct > s.PctThreshold:
		trend = TrendRising
	case slopeNorm < -s.SlopeNormThreshold || pct < -s.PctThreshold:
		trend = TrendFalling
	case math.Abs(pct) > s.SlightPct && pct > 0:
		trend = TrendSlightlyRising
	case math.Abs(pct) > s.SlightPct:
		trend = TrendSlightlyFalling
	default:
		trend = TrendStable
	}

	return TrendResult{
		Pct:       pct,
		Slope:     slope,
		SlopeNorm: slopeNorm,
		Trend:     trend,
		Interp:    interpFor(trend),
		Degraded:  degraded,
	}
}

// regress runs ordinary least squares of values against elapsed days (when
// timestamps cover the series) or against the sample index, and normalizes
// the slope by the covered span and the series mean. A zero time span counts
// as one day and a near-zero mean as one unit, keeping the result finite.
func regress(values []float64, timestamps []int64) (slope, slopeNorm float64, degraded bool) {
	n := len(values)
	xs := make([]float64, n)
	var span float64
	if len(timestamps) >= n {
		ts := timestamps[len(timestamps)-n:]
		t0 := ts[0]
		for i, t := range ts {
			xs[i] = float64(t-t0) / msPerDay
		}
		span = xs[n-1]
		if span <= 0 {
			span = 1
		}
	} else {
		for i := range xs {
			xs[i] = float64(i)
		}
		span = float64(n)
	}

	slope = olsSlope(xs, values)

	m := math.Abs(Mean(values))
	if m < 1 {
		m = 1
	}
	slopeNorm = slope * span / m

	if !isFinite(slope) || !isFinite(slopeNorm) {
		return 0, 0, true
	}
	return slope, slopeNorm, false
}

// olsSlope is the least-squares slope of ys against xs. A degenerate
// denominator is replaced with 1 so flat inputs yield 0 instead of NaN.
func olsSlope(xs, ys []float64) float64 {
	n := float64(len(ys))
	var sumX, sumY, sumXX, sumXY float64
	for i, y := range ys {
		x := xs[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}
	den := n*sumXX - sumX*sumX
	if den == 0 {
		den = 1
	}
	return (n*sumXY - sumX*sumY) / den
}

// interpFor maps a trend label to its dashboard interpretation string.
// The slight variants share the stable string, matching the dashboard copy.
func interpFor(trend string) string {
	switch trend {
	case TrendRising:
		return "Increasing — investigate causes"
	case TrendFalling:
		return "Decreasing — consider corrective action"
	default:
		return "Stable — within expected variation"
	}
}

// FormatValue renders a reading for display. Non-finite values render as
// "--", temperatures and percentages keep one decimal, ppm readings round to
// whole numbers.
func FormatValue(v float64, unit string) string {
	if !isFinite(v) {
		return "--"
	}
	switch {
	case unit == "":
		return strconv.Itoa(int(math.Round(v)))
	case unit == "°C" || unit == "%":
		return fmt.Sprintf("%.1f%s", v, unit)
	case strings.Contains(strings.ToLower(unit), "ppm"):
		return fmt.Sprintf("%d ppm", int(math.Round(v)))
	case v == math.Trunc(v):
		return fmt.Sprintf("%d %s", int64(v), unit)
	default:
		return fmt.Sprintf("%.1f %s", v, unit)
	}
}
