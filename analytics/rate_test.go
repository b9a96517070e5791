package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateOfChangePerHourTooShort(t *testing.T) {
	assert.Equal(t, RateResult{}, RateOfChangePerHour(nil, nil))
	assert.Equal(t, RateResult{}, RateOfChangePerHour([]float64{5}, []int64{0}))
}

func TestRateOfChangePerHourIndexFallback(t *testing.T) {
	got := RateOfChangePerHour([]float64{1, 2, 3}, nil)
	assert.Equal(t, 1.0, got.SlopePerHour)
}

func TestRateOfChangePerHourTimestamped(t *testing.T) {
	// 10 units per 30 minutes is 20 per hour.
	ts := []int64{0, 1_800_000, 3_600_000}
	got := RateOfChangePerHour([]float64{10, 20, 30}, ts)
	assert.Equal(t, 20.0, got.SlopePerHour)
}

func TestRateOfChangePerHourMisalignedTimestampsIgnored(t *testing.T) {
	// A partial timestamp series does not align; each sample counts as one hour.
	got := RateOfChangePerHour([]float64{10, 20, 30}, []int64{0, 1_800_000})
	assert.Equal(t, 10.0, got.SlopePerHour)
}

func TestRateOfChangePerHourBoundedWindow(t *testing.T) {
	// A flat head outside the 48-sample window must not drag the slope down.
	values := make([]float64, 60)
	for i := 12; i < 60; i++ {
		values[i] = float64(i - 11)
	}
	got := RateOfChangePerHour(values, nil)
	assert.Equal(t, 1.0, got.SlopePerHour)
}

func TestRateOfChangePerHourRounding(t *testing.T) {
	ts := []int64{0, 3 * 3_600_000}
	got := RateOfChangePerHour([]float64{0, 1}, ts)
	assert.Equal(t, 0.3333, got.SlopePerHour)
}

func TestTimeToTargetNilCases(t *testing.T) {
	assert.Nil(t, TimeToTarget(nil, nil, 50))
	// A flat series has no meaningful trend.
	assert.Nil(t, TimeToTarget([]float64{5, 5, 5}, nil, 50))
}

func TestTimeToTarget(t *testing.T) {
	ts := []int64{0, 3_600_000, 7_200_000}
	got := TimeToTarget([]float64{10, 20, 30}, ts, 60)
	if assert.NotNil(t, got) {
		assert.InDelta(t, 3, got.Hours, 1e-9)
		want := time.Now().UnixMilli() + 3*3_600_000
		assert.InDelta(t, float64(want), float64(got.ETA), 5000)
	}
}

func TestTimeToTargetFallingSeries(t *testing.T) {
	ts := []int64{0, 3_600_000, 7_200_000}
	got := TimeToTarget([]float64{30, 20, 10}, ts, 0)
	if assert.NotNil(t, got) {
		assert.InDelta(t, 1, got.Hours, 1e-9)
	}
}
