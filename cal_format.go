package pqcal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// calCreatedLayout matches the ctime-style CREATED stamp ArgyllCMS writes.
const calCreatedLayout = "Mon Jan 02 15:04:05 2006"

// CALOptions controls the header fields of an emitted .cal file.
type CALOptions struct {
	Descriptor string    // DESCRIPTOR, defaults to "PQ Calibration LUT"
	Originator string    // ORIGINATOR, defaults to "pqcal"
	Created    time.Time // CREATED, zero value means current UTC time
}

// CALFile is a parsed ArgyllCMS calibration file.
type CALFile struct {
	Descriptor string
	Originator string
	Fields     []string
	LUT        LUT
}

// WriteCAL emits lut as an ArgyllCMS-compatible .cal 1D table. The same
// corrected value is written for R, G and B (grayscale correction).
func WriteCAL(w io.Writer, lut *LUT, opts CALOptions) error {
	if len(lut.In) == 0 || len(lut.In) != len(lut.Out) {
		return fmt.Errorf("malformed lut: %d inputs, %d outputs", len(lut.In), len(lut.Out))
	}
	desc := opts.Descriptor
	if desc == "" {
		desc = calDescriptor
	}
	orig := opts.Originator
	if orig == "" {
		orig = calOriginator
	}
	created := opts.Created
	if created.IsZero() {
		created = time.Now().UTC()
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "CAL\n")
	fmt.Fprintf(bw, "DESCRIPTOR %q\n", desc)
	fmt.Fprintf(bw, "ORIGINATOR %q\n", orig)
	fmt.Fprintf(bw, "CREATED %q\n", created.Format(calCreatedLayout))
	fmt.Fprintf(bw, "DEVICE_CLASS \"DISPLAY\"\n")
	fmt.Fprintf(bw, "COLOR_REP \"RGB\"\n")
	fmt.Fprintf(bw, "TABLE_RGB_FROM_DISPLAY_PRIMARIES\n")
	fmt.Fprintf(bw, "NUMBER_OF_FIELDS 4\n")
	fmt.Fprintf(bw, "BEGIN_DATA_FORMAT\n")
	fmt.Fprintf(bw, "RGB_I RGB_R RGB_G RGB_B\n")
	fmt.Fprintf(bw, "END_DATA_FORMAT\n\n")
	fmt.Fprintf(bw, "NUMBER_OF_SETS %d\n", len(lut.In))
	fmt.Fprintf(bw, "BEGIN_DATA\n")
	for i := range lut.In {
		fmt.Fprintf(bw, "%.14f\t%.14f\t%.14f\t%.14f\n", lut.In[i], lut.Out[i], lut.Out[i], lut.Out[i])
	}
	fmt.Fprintf(bw, "END_DATA\n")

	return bw.Flush()
}

// WriteCALFile writes lut to path in .cal format.
func WriteCALFile(path string, lut *LUT, opts CALOptions) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := WriteCAL(f, lut, opts); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}

// ParseCAL reads a .cal file of the dialect WriteCAL emits. The first data
// column becomes LUT.In and the second LUT.Out; unknown header keywords are
// skipped.
func ParseCAL(r io.Reader) (*CALFile, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return nil, fmt.Errorf("empty calibration file")
	}
	if strings.TrimSpace(sc.Text()) != "CAL" {
		return nil, fmt.Errorf("not a CAL file: first line %q", strings.TrimSpace(sc.Text()))
	}

	cal := &CALFile{}
	sets := -1
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		keyword, rest, _ := strings.Cut(line, " ")
		switch keyword {
		case "DESCRIPTOR":
			cal.Descriptor = unquote(rest)
		case "ORIGINATOR":
			cal.Originator = unquote(rest)
		case "BEGIN_DATA_FORMAT":
			fields, err := parseDataFormat(sc)
			if err != nil {
				return nil, err
			}
			cal.Fields = fields
		case "NUMBER_OF_SETS":
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("bad NUMBER_OF_SETS %q", rest)
			}
			sets = n
		case "BEGIN_DATA":
			if sets < 0 {
				return nil, fmt.Errorf("BEGIN_DATA before NUMBER_OF_SETS")
			}
			if err := parseData(sc, sets, len(cal.Fields), &cal.LUT); err != nil {
				return nil, err
			}

			return cal, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return nil, fmt.Errorf("missing BEGIN_DATA section")
}

// ParseCALFile reads path as a .cal file.
func ParseCALFile(path string) (*CALFile, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseCAL(f)
}

func parseDataFormat(sc *bufio.Scanner) ([]string, error) {
	var fields []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "END_DATA_FORMAT" {
			return fields, nil
		}
		fields = append(fields, strings.Fields(line)...)
	}

	return nil, fmt.Errorf("unterminated BEGIN_DATA_FORMAT")
}

func parseData(sc *bufio.Scanner, sets, fields int, lut *LUT) error {
	if fields == 0 {
		fields = 4
	}
	if fields < 2 {
		return fmt.Errorf("data format has %d fields, need an input and an output column", fields)
	}
	lut.In = make([]float64, 0, sets)
	lut.Out = make([]float64, 0, sets)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "END_DATA" {
			if len(lut.In) != sets {
				return fmt.Errorf("NUMBER_OF_SETS %d but %d data rows", sets, len(lut.In))
			}

			return nil
		}
		cols := strings.Fields(line)
		if len(cols) != fields {
			return fmt.Errorf("data row %d: %d columns, want %d", len(lut.In), len(cols), fields)
		}
		in, err := strconv.ParseFloat(cols[0], 64)
		if err != nil {
			return fmt.Errorf("data row %d: %v", len(lut.In), err)
		}
		out, err := strconv.ParseFloat(cols[1], 64)
		if err != nil {
			return fmt.Errorf("data row %d: %v", len(lut.In), err)
		}
		lut.In = append(lut.In, in)
		lut.Out = append(lut.Out, out)
	}

	return fmt.Errorf("unterminated BEGIN_DATA")
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"")
}
