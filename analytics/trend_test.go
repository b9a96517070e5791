package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTrendTooShort(t *testing.T) {
	for _, values := range [][]float64{nil, {}, {7}} {
		got := ComputeTrend(values, nil, DefaultTrendSettings())
		assert.Equal(t, TrendNA, got.Trend)
		assert.Equal(t, "Not enough data", got.Interp)
		assert.Zero(t, got.Pct)
		assert.Zero(t, got.Slope)
		assert.Zero(t, got.SlopeNorm)
	}
}

func TestComputeTrendRisingByPct(t *testing.T) {
	got := ComputeTrend([]float64{10, 11, 12, 14}, nil, DefaultTrendSettings())
	assert.Equal(t, TrendRising, got.Trend)
	assert.Equal(t, "Increasing — investigate causes", got.Interp)
	assert.InDelta(t, 40, got.Pct, 1e-9)
}

func TestComputeTrendFalling(t *testing.T) {
	got := ComputeTrend([]float64{14, 12, 11, 10}, nil, DefaultTrendSettings())
	assert.Equal(t, TrendFalling, got.Trend)
	assert.Equal(t, "Decreasing — consider corrective action", got.Interp)
}

func TestComputeTrendSlightlyRisingSharesStableInterp(t *testing.T) {
	// pct of 2 sits between slightPct (1.5) and pctThreshold (3).
	got := ComputeTrend([]float64{100, 102}, nil, DefaultTrendSettings())
	assert.Equal(t, TrendSlightlyRising, got.Trend)
	assert.Equal(t, "Stable — within expected variation", got.Interp)
}

func TestComputeTrendStable(t *testing.T) {
	got := ComputeTrend([]float64{100, 100.5}, nil, DefaultTrendSettings())
	assert.Equal(t, TrendStable, got.Trend)
	assert.Equal(t, "Stable — within expected variation", got.Interp)
}

func TestComputeTrendTimeWeighted(t *testing.T) {
	// 10 -> 20 over two days: 5 units per day.
	ts := []int64{0, 2 * 86_400_000}
	got := ComputeTrend([]float64{10, 20}, ts, DefaultTrendSettings())
	assert.InDelta(t, 5, got.Slope, 1e-9)
	assert.InDelta(t, 5*2/15.0, got.SlopeNorm, 1e-9)
	assert.Equal(t, TrendRising, got.Trend)
}

func TestComputeTrendTimestampsTrailingAligned(t *testing.T) {
	// Extra leading timestamps are legal; only the trailing two count.
	ts := []int64{-999, 0, 2 * 86_400_000}
	got := ComputeTrend([]float64{10, 20}, ts, DefaultTrendSettings())
	assert.InDelta(t, 5, got.Slope, 1e-9)
}

func TestComputeTrendZeroFirstValue(t *testing.T) {
	got := ComputeTrend([]float64{0, 10}, nil, DefaultTrendSettings())
	assert.Zero(t, got.Pct)
	// The regression still sees the climb.
	assert.Equal(t, TrendRising, got.Trend)
}

func TestComputeTrendZeroTimeSpan(t *testing.T) {
	got := ComputeTrend([]float64{10, 20}, []int64{5, 5}, DefaultTrendSettings())
	assert.Zero(t, got.Slope)
	assert.Zero(t, got.SlopeNorm)
	// Percent change alone still classifies.
	assert.Equal(t, TrendRising, got.Trend)
	assert.False(t, got.Degraded)
}

func TestComputeTrendDegradesOnNaN(t *testing.T) {
	got := ComputeTrend([]float64{1, math.NaN(), 3}, nil, DefaultTrendSettings())
	assert.True(t, got.Degraded)
	assert.Zero(t, got.Slope)
	assert.Zero(t, got.SlopeNorm)
}

func TestComputeTrendZeroSettingsFallBack(t *testing.T) {
	values := []float64{100, 102}
	assert.Equal(t,
		ComputeTrend(values, nil, DefaultTrendSettings()),
		ComputeTrend(values, nil, TrendSettings{}))
}

func TestComputeTrendCustomSettings(t *testing.T) {
	loose := TrendSettings{SlopeNormThreshold: 10, PctThreshold: 50, SlightPct: 45}
	got := ComputeTrend([]float64{10, 11, 12, 14}, nil, loose)
	assert.Equal(t, TrendStable, got.Trend)
}

func TestComputeTrendIdempotent(t *testing.T) {
	values := []float64{10, 12, 11, 15, 14}
	ts := []int64{0, 3_600_000, 7_200_000, 10_800_000, 14_400_000}
	first := ComputeTrend(values, ts, DefaultTrendSettings())
	second := ComputeTrend(values, ts, DefaultTrendSettings())
	assert.Equal(t, first, second)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v    float64
		unit string
		want string
	}{
		{math.NaN(), "", "--"},
		{math.Inf(1), "°C", "--"},
		{72.456, "%", "72.5%"},
		{23.44, "°C", "23.4°C"},
		{430, "ppm", "430 ppm"},
		{430.4, "PPM", "430 ppm"},
		{4.6, "", "5"},
		{12, "mg/kg", "12 mg/kg"},
		{12.34, "mg/kg", "12.3 mg/kg"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatValue(tc.v, tc.unit), "FormatValue(%v, %q)", tc.v, tc.unit)
	}
}
