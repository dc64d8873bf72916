package pqcal

const (
	pqMaxNits = 10000.0
)

const (
	defaultPeakNits = 1000.0
	defaultLUTSize  = 256
)

const (
	calDescriptor = "PQ Calibration LUT"
	calOriginator = "pqcal"
)
