package pqcal

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrEmptyInput is returned when no measurement points are supplied.
	ErrEmptyInput = errors.New("no measurements")
	// ErrInvalidMeasurement is returned for non-positive luminance readings,
	// out-of-range signal levels, or duplicate signal levels.
	ErrInvalidMeasurement = errors.New("invalid measurement")
)

// Calibrate computes a correction curve for a set of grayscale measurements.
//
// For each point the ideal PQ luminance is computed and clipped to the peak
// from opts, and the correction ratio target/measured is recorded. The result
// has one entry per input point, sorted by ascending signal level, with
// monotone non-decreasing target luminance.
func Calibrate(measurements []Measurement, opts CalibrateOptions) (Curve, error) {
	if len(measurements) == 0 {
		return nil, ErrEmptyInput
	}
	peak := opts.PeakNits
	if peak <= 0 {
		peak = defaultPeakNits
	}

	norm, err := normalizeSignals(measurements)
	if err != nil {
		return nil, err
	}

	curve := make(Curve, len(norm))
	for i, m := range norm {
		target := EOTF(m.Signal)
		if target > peak {
			target = peak
		}
		curve[i] = CurvePoint{
			Signal:       m.Signal,
			MeasuredNits: m.Nits,
			TargetNits:   target,
		}
	}
	sort.Slice(curve, func(i, j int) bool { return curve[i].Signal < curve[j].Signal })

	for i := 1; i < len(curve); i++ {
		if curve[i].Signal == curve[i-1].Signal {
			return nil, fmt.Errorf("%w: duplicate signal level %g", ErrInvalidMeasurement, curve[i].Signal)
		}
	}

	// A reversal here would put banding into the generated LUT, so clamp
	// upward to the preceding corrected value before deriving ratios.
	targets := make([]float64, len(curve))
	for i, p := range curve {
		targets[i] = p.TargetNits
	}
	clampMonotonic(targets)
	for i := range curve {
		curve[i].TargetNits = targets[i]
		curve[i].Ratio = targets[i] / curve[i].MeasuredNits
	}

	return curve, nil
}

// normalizeSignals validates measurements and maps signal levels to [0, 1].
// If any signal exceeds 1, the whole set is taken to be in PQ percent.
func normalizeSignals(measurements []Measurement) ([]Measurement, error) {
	percent := false
	for _, m := range measurements {
		if m.Signal > 1 {
			percent = true

			break
		}
	}

	out := make([]Measurement, len(measurements))
	for i, m := range measurements {
		if m.Nits <= 0 {
			return nil, fmt.Errorf("%w: point %d: luminance %g nits, must be positive", ErrInvalidMeasurement, i, m.Nits)
		}
		if m.Signal < 0 || m.Signal > 100 {
			return nil, fmt.Errorf("%w: point %d: signal level %g out of range [0, 100]", ErrInvalidMeasurement, i, m.Signal)
		}
		s := m.Signal
		if percent {
			s /= 100
		}
		out[i] = Measurement{Signal: s, Nits: m.Nits}
	}

	return out, nil
}

// clampMonotonic raises every value below its predecessor to the predecessor.
func clampMonotonic(vals []float64) {
	for i := 1; i < len(vals); i++ {
		if vals[i] < vals[i-1] {
			vals[i] = vals[i-1]
		}
	}
}
