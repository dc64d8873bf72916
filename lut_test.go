package pqcal

import (
	"errors"
	"math"
	"testing"
)

// idealCurve calibrates a perfectly behaved display measured at n evenly
// spaced signal levels starting above zero.
func idealCurve(t *testing.T, n int, peak float64) Curve {
	t.Helper()
	measurements := make([]Measurement, n)
	for i := range measurements {
		s := float64(i+1) / float64(n)
		nits := EOTF(s)
		if nits > peak {
			nits = peak
		}
		measurements[i] = Measurement{Signal: s, Nits: nits}
	}
	curve, err := Calibrate(measurements, CalibrateOptions{PeakNits: peak})
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}

	return curve
}

func TestBuildLUTIdentityForIdealDisplay(t *testing.T) {
	curve := idealCurve(t, 20, pqMaxNits)
	lut, err := BuildLUT(curve, 256)
	if err != nil {
		t.Fatalf("build lut: %v", err)
	}
	if len(lut.In) != 256 || len(lut.Out) != 256 {
		t.Fatalf("lut has %d/%d entries, want 256", len(lut.In), len(lut.Out))
	}
	first := curve[0].Signal
	for i := range lut.In {
		if lut.In[i] < first {
			// Below the first measured knot the fill holds the edge value.
			if math.Abs(lut.Out[i]-first) > 1e-9 {
				t.Fatalf("code %g: out %g, want edge fill %g", lut.In[i], lut.Out[i], first)
			}

			continue
		}
		if math.Abs(lut.Out[i]-lut.In[i]) > 1e-9 {
			t.Fatalf("code %g: out %g, want identity", lut.In[i], lut.Out[i])
		}
	}
}

func TestBuildLUTMonotoneWithNoisyMeasurements(t *testing.T) {
	measurements := []Measurement{
		{Signal: 10, Nits: 0.4},
		{Signal: 25, Nits: 5.5},
		{Signal: 40, Nits: 30.1},
		{Signal: 50, Nits: 28.7}, // reversal in the raw data
		{Signal: 60, Nits: 260},
		{Signal: 75, Nits: 590},
		{Signal: 100, Nits: 601},
	}
	curve, err := Calibrate(measurements, CalibrateOptions{PeakNits: 600})
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	lut, err := BuildLUT(curve, 128)
	if err != nil {
		t.Fatalf("build lut: %v", err)
	}
	for i := range lut.Out {
		if lut.Out[i] < 0 || lut.Out[i] > 1 {
			t.Fatalf("code %g: out %g outside [0,1]", lut.In[i], lut.Out[i])
		}
		if i > 0 && lut.Out[i] < lut.Out[i-1] {
			t.Fatalf("reversal at code %g: %g < %g", lut.In[i], lut.Out[i], lut.Out[i-1])
		}
	}
}

func TestBuildLUTBoostsDimDisplay(t *testing.T) {
	// A display at half the ideal luminance needs output codes above the
	// input code in the mid range.
	measurements := make([]Measurement, 20)
	for i := range measurements {
		s := float64(i+1) / 20
		measurements[i] = Measurement{Signal: s, Nits: EOTF(s) / 2}
	}
	curve, err := Calibrate(measurements, CalibrateOptions{PeakNits: pqMaxNits})
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	lut, err := BuildLUT(curve, 64)
	if err != nil {
		t.Fatalf("build lut: %v", err)
	}
	boosted := false
	for i := range lut.In {
		if lut.In[i] > 0.3 && lut.In[i] < 0.9 && lut.Out[i] > lut.In[i]+1e-6 {
			boosted = true
		}
	}
	if !boosted {
		t.Fatalf("expected output codes above input codes for a dim display")
	}
}

func TestBuildLUTErrors(t *testing.T) {
	if _, err := BuildLUT(nil, 256); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want %v", err, ErrEmptyInput)
	}
	curve := idealCurve(t, 5, 600)
	if _, err := BuildLUT(curve, 1); err == nil {
		t.Fatalf("expected error for lut size 1")
	}
}

func TestBuildLUTDefaultSize(t *testing.T) {
	lut, err := BuildLUT(idealCurve(t, 5, 600), 0)
	if err != nil {
		t.Fatalf("build lut: %v", err)
	}
	if len(lut.In) != 256 {
		t.Fatalf("default lut has %d entries, want 256", len(lut.In))
	}
}

func TestInterpEdgesAndKnots(t *testing.T) {
	xs := []float64{0.2, 0.5, 1.0}
	ys := []float64{10, 40, 100}
	cases := []struct {
		x, want float64
	}{
		{x: 0.0, want: 10},  // flat below
		{x: 0.2, want: 10},  // knot
		{x: 0.35, want: 25}, // midpoint
		{x: 0.5, want: 40},  // knot
		{x: 2.0, want: 100}, // flat above
	}
	for _, c := range cases {
		if got := interp(xs, ys, c.x); math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("interp(%g) = %g, want %g", c.x, got, c.want)
		}
	}
}

func TestIncreasingResponseDropsReversals(t *testing.T) {
	nits := []float64{1, 5, 4, 4.5, 20}
	codes := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
	gotNits, gotCodes := increasingResponse(nits, codes)
	wantNits := []float64{1, 5, 20}
	wantCodes := []float64{0.1, 0.3, 0.9}
	if len(gotNits) != len(wantNits) {
		t.Fatalf("kept %d points, want %d", len(gotNits), len(wantNits))
	}
	for i := range wantNits {
		if gotNits[i] != wantNits[i] || gotCodes[i] != wantCodes[i] {
			t.Fatalf("point %d: (%g, %g), want (%g, %g)", i, gotNits[i], gotCodes[i], wantNits[i], wantCodes[i])
		}
	}
}
