// Package pqcal computes grayscale corrections for displays calibrated against
// the SMPTE ST 2084 (PQ) EOTF.
//
// Given (signal level, measured nits) pairs from a measurement run, it derives
// per-point correction targets bounded by the display's peak luminance,
// resamples them into a 1D LUT, and writes the result as an ArgyllCMS-compatible
// .cal file that a profiling toolkit applies as a pre-correction table.
package pqcal
