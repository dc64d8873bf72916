package pqcal

import (
	"fmt"
	"sort"
)

// BuildLUT resamples a correction curve onto size evenly spaced input codes.
//
// For each grid code the desired target luminance is found by piecewise-linear
// interpolation over the measured signal levels, then mapped back through the
// inverse of the measured display response to the output code that actually
// produces it. Outputs are clamped to [0, 1] and monotone non-decreasing even
// when the raw measurements are not.
//
// A size of 0 selects the default of 256 points.
func BuildLUT(curve Curve, size int) (*LUT, error) {
	if len(curve) == 0 {
		return nil, ErrEmptyInput
	}
	if size == 0 {
		size = defaultLUTSize
	}
	if size < 2 {
		return nil, fmt.Errorf("lut size %d: need at least 2 points", size)
	}

	signals := make([]float64, len(curve))
	targets := make([]float64, len(curve))
	measured := make([]float64, len(curve))
	for i, p := range curve {
		signals[i] = p.Signal
		targets[i] = p.TargetNits
		measured[i] = p.MeasuredNits
	}
	invNits, invCodes := increasingResponse(measured, signals)

	lut := &LUT{
		In:  make([]float64, size),
		Out: make([]float64, size),
	}
	for i := 0; i < size; i++ {
		code := float64(i) / float64(size-1)
		nits := interp(signals, targets, code)
		out := interp(invNits, invCodes, nits)
		if out < 0 {
			out = 0
		}
		if out > 1 {
			out = 1
		}
		lut.In[i] = code
		lut.Out[i] = out
	}
	clampMonotonic(lut.Out)

	return lut, nil
}

// increasingResponse reduces the measured response to a strictly increasing
// luminance sequence so it can be inverted. Points where a display measured
// darker than an earlier, lower signal level carry no usable inverse and are
// dropped.
func increasingResponse(nits, codes []float64) ([]float64, []float64) {
	outNits := make([]float64, 0, len(nits))
	outCodes := make([]float64, 0, len(codes))
	for i := range nits {
		if len(outNits) > 0 && nits[i] <= outNits[len(outNits)-1] {
			continue
		}
		outNits = append(outNits, nits[i])
		outCodes = append(outCodes, codes[i])
	}

	return outNits, outCodes
}

// interp evaluates piecewise-linear interpolation of (xs, ys) at x, holding
// edge values flat outside the knot range. xs must be strictly increasing.
func interp(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	i := sort.SearchFloat64s(xs, x)
	if xs[i] == x {
		return ys[i]
	}
	t := (x - xs[i-1]) / (xs[i] - xs[i-1])

	return ys[i-1] + t*(ys[i]-ys[i-1])
}
