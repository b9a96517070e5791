package analytics

import (
	"math"

	"github.com/montanaflynn/stats"
)

// PearsonCorrelation computes Pearson's r over the trailing overlap of two
// series. Differing lengths are aligned by end, not by start. The overlap
// must have at least two points and both windows must vary; otherwise the
// result is NaN. The result is rounded to two decimals.
func PearsonCorrelation(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 2 {
		return math.NaN()
	}
	x := a[len(a)-n:]
	y := b[len(b)-n:]

	if popStdDev(x) == 0 || popStdDev(y) == 0 {
		return math.NaN()
	}

	r, err := stats.Pearson(x, y)
	if err != nil || !isFinite(r) {
		return math.NaN()
	}
	return round2(r)
}
