package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectAnomaliesConstantSeries(t *testing.T) {
	values := []float64{5, 5, 5, 5}
	assert.Empty(t, DetectAnomalies(values, 2))
	assert.Empty(t, DetectAnomalies(values, 0.1))
}

func TestDetectAnomaliesEmpty(t *testing.T) {
	assert.Empty(t, DetectAnomalies(nil, 2))
}

func TestDetectAnomaliesFlagsOutlier(t *testing.T) {
	// mean 28, population stddev 36: only the spike reaches |z| >= 2.
	got := DetectAnomalies([]float64{10, 10, 10, 10, 100}, 2)
	assert.Equal(t, []int{4}, got)
}

func TestDetectAnomaliesPreservesOrder(t *testing.T) {
	got := DetectAnomalies([]float64{100, 10, 10, 10, 100}, 1)
	assert.Equal(t, []int{0, 4}, got)
}

func TestDetectAnomaliesDefaultThreshold(t *testing.T) {
	values := []float64{10, 10, 10, 10, 100}
	assert.Equal(t, DetectAnomalies(values, DefaultZThreshold), DetectAnomalies(values, 0))
}
