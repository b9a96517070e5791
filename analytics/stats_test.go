package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Mean([]float64{}))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{5, 5, 5, 5}))

	// Population variance, N in the denominator.
	assert.Equal(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}))
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, 0.0, Min(nil))
	assert.Equal(t, 0.0, Max(nil))
	assert.Equal(t, 1.0, Min([]float64{3, 1, 2}))
	assert.Equal(t, 3.0, Max([]float64{3, 1, 2}))
}

func TestMovingAverageShrinksAtStart(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4, 5}, 3)
	assert.Equal(t, []float64{1, 1.5, 2, 3, 4}, got)
}

func TestMovingAverageEmptyAndDefaults(t *testing.T) {
	assert.Empty(t, MovingAverage(nil, 3))

	// Non-positive window falls back to the default of 5.
	vals := []float64{2, 2, 2, 2, 2, 2}
	assert.Equal(t, MovingAverage(vals, DefaultMovingAverageWindow), MovingAverage(vals, 0))
}

func TestMovingAverageRounding(t *testing.T) {
	got := MovingAverage([]float64{1, 2}, 3)
	assert.Equal(t, []float64{1, 1.5}, got)

	got = MovingAverage([]float64{1, 1, 2}, 3)
	assert.Equal(t, []float64{1, 1, 1.33}, got)
}
