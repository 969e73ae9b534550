// Package config persists waterfall settings between runs as a flat JSON
// record. The pipeline core never sees this package; settings flow through
// the spectro setters, which clamp every field.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/askne/specfall/internal/spectro"
)

// State is the persisted record. Field names follow the on-disk format;
// fftSize is twice the bin count.
type State struct {
	Device        string  `json:"device,omitempty"`
	FFTSize       int     `json:"fftSize"`
	RowsPerSecond float64 `json:"decimation"`
	DynRangeDb    float64 `json:"dynRange"`
	Contrast      float64 `json:"contrast"`
	Luminosity    float64 `json:"luminosity"`
	Sensitivity   float64 `json:"sensitivity"`
	FreqScale     string  `json:"frequencyScale"`
}

// Path returns the default settings location under the user config dir.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "specfall", "settings.json"), nil
}

// FromSettings captures the current settings into a persistable record.
func FromSettings(s *spectro.Settings, device string) State {
	return State{
		Device:        device,
		FFTSize:       2 * s.BinCount(),
		RowsPerSecond: s.RowsPerSecond(),
		DynRangeDb:    s.DynamicRangeDb(),
		Contrast:      s.Contrast(),
		Luminosity:    s.Luminosity(),
		Sensitivity:   s.Sensitivity(),
		FreqScale:     s.ScaleMode().String(),
	}
}

// Apply pushes the record through the settings setters, so out-of-range
// values from a hand-edited file are clamped rather than trusted.
func (st State) Apply(s *spectro.Settings) {
	if st.FFTSize > 0 {
		s.SetBinCount(st.FFTSize / 2)
	}
	if st.RowsPerSecond > 0 {
		s.SetRowsPerSecond(st.RowsPerSecond)
	}
	if st.DynRangeDb > 0 {
		s.SetDynamicRangeDb(st.DynRangeDb)
	}
	if st.Contrast > 0 {
		s.SetContrast(st.Contrast)
	}
	if st.Luminosity != 0 {
		s.SetLuminosity(st.Luminosity)
	}
	if st.Sensitivity > 0 {
		s.SetSensitivity(st.Sensitivity)
	}
	if st.FreqScale == "mel" {
		s.SetScaleMode(spectro.ScaleMel)
	} else if st.FreqScale != "" {
		s.SetScaleMode(spectro.ScaleLinear)
	}
}

// Load reads the record at path. A missing file is not an error: the zero
// State leaves the defaults untouched.
func Load(path string) (State, error) {
	var st State
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return st, nil
		}
		return st, fmt.Errorf("reading settings: %w", err)
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("parsing settings: %w", err)
	}
	return st, nil
}

// Save writes the record atomically (temp file + rename).
func Save(path string, st State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing settings: %w", err)
	}
	return nil
}
