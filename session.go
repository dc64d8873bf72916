package pqcal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Session mirrors the JSON document produced by the measurement workflow
// (eotf_measurements.json): target peak, LUT size, output path, and the
// [PQ%, measured nits] pairs.
type Session struct {
	PeakNits     float64      `json:"peak_luminance"`
	LUTSize      int          `json:"lut_size"`
	CALFilename  string       `json:"filename_cal"`
	Measurements [][2]float64 `json:"measurements"`
}

// LoadSession reads and validates a calibration session file.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("session %s: %w", path, err)
	}

	return &s, nil
}

// Validate checks the keys the calibration run cannot proceed without.
func (s *Session) Validate() error {
	if s.PeakNits <= 0 {
		return fmt.Errorf("missing or invalid 'peak_luminance'")
	}
	if s.LUTSize < 2 {
		return fmt.Errorf("missing or invalid 'lut_size'")
	}
	if s.CALFilename == "" {
		return fmt.Errorf("missing 'filename_cal'")
	}
	if len(s.Measurements) == 0 {
		return fmt.Errorf("missing 'measurements'")
	}

	return nil
}

// MeasurementPoints converts the raw [signal, nits] pairs to Measurement values.
func (s *Session) MeasurementPoints() []Measurement {
	points := make([]Measurement, len(s.Measurements))
	for i, m := range s.Measurements {
		points[i] = Measurement{Signal: m[0], Nits: m[1]}
	}

	return points
}
