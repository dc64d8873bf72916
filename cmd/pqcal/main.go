package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/vearutop/pqcal"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "calibrate":
		if err := runCalibrate(os.Args[2:]); err != nil {
			fail(err)
		}
	case "target":
		if err := runTarget(os.Args[2:]); err != nil {
			fail(err)
		}
	case "verify":
		if err := runVerify(os.Args[2:]); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: pqcal <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  calibrate -session eotf_measurements.json [-out file.cal] [-desc \"...\"]")
	fmt.Fprintln(os.Stderr, "  target    -signal 0.62 [-peak 600]")
	fmt.Fprintln(os.Stderr, "  verify    -in file.cal")
}

func runCalibrate(args []string) error {
	fs := flag.NewFlagSet("calibrate", flag.ContinueOnError)
	sessionPath := fs.String("session", "", "calibration session JSON")
	outPath := fs.String("out", "", "output .cal file (default: filename_cal from the session)")
	desc := fs.String("desc", "", "DESCRIPTOR for the CAL header")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sessionPath == "" {
		return errors.New("missing required arguments")
	}

	session, err := pqcal.LoadSession(*sessionPath)
	if err != nil {
		return err
	}
	curve, err := pqcal.Calibrate(session.MeasurementPoints(), pqcal.CalibrateOptions{PeakNits: session.PeakNits})
	if err != nil {
		return err
	}

	fmt.Printf("Target peak luminance: %.1f nits\n", session.PeakNits)
	fmt.Printf("%-10s | %-20s | %-28s\n", "Input %", "Measured Y (nits)", "Target Y (nits)")
	fmt.Printf("%s-+-%s-+-%s\n", strings.Repeat("-", 10), strings.Repeat("-", 20), strings.Repeat("-", 28))
	for _, p := range curve {
		fmt.Printf("%-10.1f | %-20.3f | %-28.3f\n", p.Signal*100, p.MeasuredNits, p.TargetNits)
	}

	lut, err := pqcal.BuildLUT(curve, session.LUTSize)
	if err != nil {
		return err
	}
	path := *outPath
	if path == "" {
		path = session.CALFilename
	}
	if err := pqcal.WriteCALFile(path, lut, pqcal.CALOptions{Descriptor: *desc}); err != nil {
		return err
	}
	fmt.Printf("wrote %d-point LUT to %s\n", session.LUTSize, path)

	return nil
}

func runTarget(args []string) error {
	fs := flag.NewFlagSet("target", flag.ContinueOnError)
	signal := fs.Float64("signal", -1, "PQ signal level, [0,1] or percent (0,100]")
	peak := fs.Float64("peak", 0, "clip targets to this peak luminance in nits (0 = no clipping)")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	s := *signal
	if s > 1 && s <= 100 {
		s /= 100
	}
	if s < 0 || s > 1 {
		return errors.New("missing or out-of-range -signal")
	}
	nits := pqcal.EOTF(s)
	if *peak > 0 && nits > *peak {
		nits = *peak
	}
	fmt.Printf("%.6f nits\n", nits)

	return nil
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	inPath := fs.String("in", "", "input .cal file")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}

	cal, err := pqcal.ParseCALFile(*inPath)
	if err != nil {
		return err
	}
	for i, v := range cal.LUT.Out {
		if v < 0 || v > 1 {
			return fmt.Errorf("set %d: output %g outside [0,1]", i, v)
		}
		if i > 0 && v < cal.LUT.Out[i-1] {
			return fmt.Errorf("set %d: output %g reverses below %g", i, v, cal.LUT.Out[i-1])
		}
	}
	fmt.Printf("ok: %q, %d sets, monotone\n", cal.Descriptor, len(cal.LUT.Out))

	return nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
