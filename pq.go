package pqcal

import "math"

// SMPTE ST 2084 constants.
const (
	pqM1 = 2610.0 / 16384.0
	pqM2 = 2523.0 / 4096.0 * 128.0
	pqC1 = 3424.0 / 4096.0
	pqC2 = 2413.0 / 4096.0 * 32.0
	pqC3 = 2392.0 / 4096.0 * 32.0
)

// EOTF maps a normalized PQ code value in [0, 1] to absolute luminance in nits
// against the 10000 nit ST 2084 reference. Input outside [0, 1] is clamped.
func EOTF(signal float64) float64 {
	if signal <= 0 {
		return 0
	}
	if signal > 1 {
		signal = 1
	}
	p := math.Pow(signal, 1/pqM2)
	num := p - pqC1
	if num < 0 {
		return 0
	}
	den := pqC2 - pqC3*p
	if den <= 0 {
		return 0
	}
	return math.Pow(num/den, 1/pqM1) * pqMaxNits
}

// InverseEOTF maps luminance in nits to the normalized PQ code value that
// reproduces it. Luminance above the 10000 nit reference is clamped.
func InverseEOTF(nits float64) float64 {
	if nits <= 0 {
		return 0
	}
	if nits > pqMaxNits {
		nits = pqMaxNits
	}
	y := math.Pow(nits/pqMaxNits, pqM1)
	return math.Pow((pqC1+pqC2*y)/(1+pqC3*y), pqM2)
}
