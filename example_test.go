package pqcal_test

import (
	"fmt"
	"os"

	"github.com/vearutop/pqcal"
)

func ExampleCalibrate() {
	curve, err := pqcal.Calibrate([]pqcal.Measurement{
		{Signal: 0.5, Nits: 92.0},
	}, pqcal.CalibrateOptions{PeakNits: 600})
	if err != nil {
		return
	}
	fmt.Printf("%.3f\n", curve[0].Ratio)
	// Output: 1.003
}

func ExampleWriteCALFile() {
	session, err := pqcal.LoadSession("eotf_measurements.json")
	if err != nil {
		return
	}
	curve, err := pqcal.Calibrate(session.MeasurementPoints(), pqcal.CalibrateOptions{PeakNits: session.PeakNits})
	if err != nil {
		return
	}
	lut, err := pqcal.BuildLUT(curve, session.LUTSize)
	if err != nil {
		return
	}
	if err := pqcal.WriteCALFile(session.CALFilename, lut, pqcal.CALOptions{}); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
