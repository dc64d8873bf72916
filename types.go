package pqcal

// Measurement is one grayscale step produced by the measurement application.
type Measurement struct {
	// Signal is the PQ code value the display was driven with. Values in
	// (1, 100] are treated as PQ percent; a set containing any such value is
	// normalized as a whole, so 1.0 means full signal unless the set also
	// contains values above 1.
	Signal float64 `json:"signal"`
	// Nits is the measured luminance in cd/m². Must be positive.
	Nits float64 `json:"nits"`
}

// CurvePoint is one entry of a computed correction curve.
type CurvePoint struct {
	Signal       float64 // normalized PQ code value in [0, 1]
	MeasuredNits float64
	TargetNits   float64 // ideal luminance clipped to peak, monotone across the curve
	Ratio        float64 // TargetNits / MeasuredNits
}

// Curve is a correction curve sorted by ascending signal level.
type Curve []CurvePoint

// CalibrateOptions controls correction computation.
type CalibrateOptions struct {
	// PeakNits bounds the PQ target curve (e.g. 600 for a 600 nit display).
	// If <= 0, 1000 is used.
	PeakNits float64
}

// LUT is a 1D grayscale correction table over evenly spaced input code values.
type LUT struct {
	In  []float64 // input codes, evenly spaced over [0, 1]
	Out []float64 // corrected output codes in [0, 1], non-decreasing
}
