package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPearsonCorrelationPerfect(t *testing.T) {
	assert.Equal(t, 1.0, PearsonCorrelation([]float64{1, 2, 3}, []float64{2, 4, 6}))
	assert.Equal(t, -1.0, PearsonCorrelation([]float64{1, 2, 3}, []float64{3, 2, 1}))
}

func TestPearsonCorrelationInsufficientOverlap(t *testing.T) {
	assert.True(t, math.IsNaN(PearsonCorrelation([]float64{1}, []float64{1})))
	assert.True(t, math.IsNaN(PearsonCorrelation([]float64{1, 2}, []float64{1})))
	assert.True(t, math.IsNaN(PearsonCorrelation(nil, nil)))
}

func TestPearsonCorrelationZeroVariance(t *testing.T) {
	assert.True(t, math.IsNaN(PearsonCorrelation([]float64{1, 1, 1}, []float64{1, 2, 3})))
	assert.True(t, math.IsNaN(PearsonCorrelation([]float64{1, 2, 3}, []float64{4, 4, 4})))
}

func TestPearsonCorrelationTrailingAlignment(t *testing.T) {
	// The longer series contributes only its last three samples.
	assert.Equal(t, 1.0, PearsonCorrelation([]float64{9, 1, 2, 3}, []float64{2, 4, 6}))
}

func TestPearsonCorrelationRounded(t *testing.T) {
	got := PearsonCorrelation([]float64{1, 2, 4}, []float64{1, 2, 3})
	assert.Equal(t, 0.98, got)
}
