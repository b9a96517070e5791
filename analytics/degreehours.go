package analytics

import "math"

const (
	// DefaultCdhBaseline is the temperature floor for degree-hour
	// accumulation, in °C.
	DefaultCdhBaseline = 20.0

	// DefaultCdhRateWindowHours is the trailing window for the degree-hour
	// growth rate.
	DefaultCdhRateWindowHours = 6.0

	// simulatorIntervalSeconds is the cadence assumed for series without
	// timestamps; it matches the built-in reading simulator.
	simulatorIntervalSeconds = 9.0
)

// CdhResult is a cumulative degree-hour integral: the final total plus the
// running total after each sample, rounded to three decimals. The series is
// monotonic non-decreasing.
type CdhResult struct {
	Cdh    float64   `json:"cdh"`
	Series []float64 `json:"series"`
}

// ComputeCdh integrates temperature excess above baseline over time. With
// timestamps (epoch ms, trailing-aligned) each sample's interval is the
// forward difference to the next one, so the final sample closes the
// integral without opening a new interval. Without timestamps every sample
// counts as one simulator tick. Negative intervals from non-monotonic
// timestamps contribute nothing.
func ComputeCdh(temps []float64, timestamps []int64, baseline float64) CdhResult {
	n := len(temps)
	series := make([]float64, n)
	hasTs := len(timestamps) >= n
	var ts []int64
	if hasTs {
		ts = timestamps[len(timestamps)-n:]
	}

	var total float64
	for i, t := range temps {
		var dtHours float64
		if hasTs {
			if i+1 < n {
				dtHours = float64(ts[i+1]-ts[i]) / msPerHour
			}
		} else {
			dtHours = simulatorIntervalSeconds / 3600
		}
		if excess := t - baseline; excess > 0 && dtHours > 0 {
			total += excess * dtHours
		}
		series[i] = round3(total)
	}
	return CdhResult{Cdh: round3(total), Series: series}
}

// EstimateCdhRate approximates the recent growth rate of a cumulative
// degree-hour series over a trailing window, in degree-hours per hour.
// With timestamps the window start is located by real deltas; without them
// the simulator cadence converts the window to a sample count. Fewer than
// two points, or a degenerate span, yield 0.
func EstimateCdhRate(series []float64, timestamps []int64, windowHours float64) float64 {
	n := len(series)
	if n < 2 {
		return 0
	}
	if windowHours <= 0 {
		windowHours = DefaultCdhRateWindowHours
	}

	var start int
	var spanHours float64
	if len(timestamps) >= n {
		ts := timestamps[len(timestamps)-n:]
		last := ts[n-1]
		start = n - 1
		for start > 0 && float64(last-ts[start-1]) <= windowHours*msPerHour {
			start--
		}
		spanHours = float64(last-ts[start]) / msPerHour
	} else {
		samples := int(windowHours * 3600 / simulatorIntervalSeconds)
		if samples > n-1 {
			samples = n - 1
		}
		start = n - 1 - samples
		spanHours = float64(n-1-start) * simulatorIntervalSeconds / 3600
	}
	if spanHours <= 0 {
		return 0
	}
	return (series[n-1] - series[start]) / spanHours
}

// HarvestOptions parameterize a harvest report. Zero values fall back to the
// 20°C baseline and the 1000 degree-hour target.
type HarvestOptions struct {
	BaseTemp  float64 `json:"baseTemp"`
	TargetCdh float64 `json:"targetCdh"`
}

// HarvestReport bundles degree-hour accumulation, its recent growth rate and
// the readiness composite into one maturity report. PercentToTarget is a
// fraction clamped to [0,1]; EtaHours is nil when the rate is not positive.
type HarvestReport struct {
	Cdh             float64         `json:"cdh"`
	Series          []float64       `json:"series"`
	TargetCdh       float64         `json:"targetCdh"`
	PercentToTarget float64         `json:"percentToTarget"`
	RatePerHour     float64         `json:"ratePerHour"`
	EtaHours        *float64        `json:"etaHours"`
	Readiness       ReadinessResult `json:"readiness"`
}

// HarvestMetrics composes ComputeCdh, EstimateCdhRate and ComputeReadiness.
// The moisture series contributes only its most recent value; an empty one
// leaves the readiness moisture component at its neutral default.
func HarvestMetrics(temps []float64, timestamps []int64, moisture []float64, opts HarvestOptions) HarvestReport {
	if opts.BaseTemp == 0 {
		opts.BaseTemp = DefaultCdhBaseline
	}
	if opts.TargetCdh <= 0 {
		opts.TargetCdh = DefaultTargetCdh
	}

	res := ComputeCdh(temps, timestamps, opts.BaseTemp)
	rate := EstimateCdhRate(res.Series, timestamps, DefaultCdhRateWindowHours)

	target := opts.TargetCdh
	if target < 1 {
		target = 1
	}

	lastMoisture := math.NaN()
	if len(moisture) > 0 {
		lastMoisture = moisture[len(moisture)-1]
	}

	report := HarvestReport{
		Cdh:             res.Cdh,
		Series:          res.Series,
		TargetCdh:       opts.TargetCdh,
		PercentToTarget: clamp(res.Cdh/target, 0, 1),
		RatePerHour:     round4(rate),
		Readiness:       ComputeReadiness(res.Cdh, opts.TargetCdh, lastMoisture, temps),
	}
	if rate > 0 {
		hours := (opts.TargetCdh - res.Cdh) / rate
		if isFinite(hours) {
			if hours < 0 {
				hours = 0
			}
			report.EtaHours = &hours
		}
	}
	return report
}
