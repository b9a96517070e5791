package analytics

import "math"

// DefaultZThreshold flags samples at least two standard deviations from the mean.
const DefaultZThreshold = 2.0

// DetectAnomalies returns the indices of samples whose z-score magnitude
// meets the threshold, in series order. A constant series has no defined
// anomalies and yields an empty slice. A non-positive threshold falls back
// to the default.
func DetectAnomalies(values []float64, zThreshold float64) []int {
	if zThreshold <= 0 {
		zThreshold = DefaultZThreshold
	}
	out := []int{}
	sd := popStdDev(values)
	if sd == 0 {
		return out
	}
	m := Mean(values)
	for i, v := range values {
		if math.Abs((v-m)/sd) >= zThreshold {
			out = append(out, i)
		}
	}
	return out
}
