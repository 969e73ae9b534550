package spectro

// Valid ranges enforced at the settings boundary. Values outside a range are
// clamped by the setter, never inside the pipeline stages.
const (
	MinRowsPerSecond = 1.0
	MaxRowsPerSecond = 2000.0

	MinDynamicRangeDb = 10.0
	MaxDynamicRangeDb = 140.0

	MinSensitivity = 0.01
	MaxSensitivity = 10.0

	MinContrast = 0.1
	MaxContrast = 5.0

	MinLuminosity = -1.0
	MaxLuminosity = 1.0

	// Bin counts are powers of two. The ceiling is host-specific; this one
	// keeps the largest FFT at 65536 samples.
	MinBinCount = 32
	MaxBinCount = 32768
)

// Settings holds the tunable pipeline parameters. Setters clamp to the valid
// range; a change takes effect on the next produced row.
type Settings struct {
	scaleMode      ScaleMode
	dynamicRangeDb float64
	contrast       float64
	luminosity     float64
	sensitivity    float64
	rowsPerSecond  float64
	binCount       int
}

// Snapshot is an immutable copy of the settings, taken once per tick so no
// stage observes a half-applied change.
type Snapshot struct {
	ScaleMode      ScaleMode
	DynamicRangeDb float64
	Contrast       float64
	Luminosity     float64
	Sensitivity    float64
	RowsPerSecond  float64
	BinCount       int
}

// DefaultSettings returns the session defaults.
func DefaultSettings() *Settings {
	return &Settings{
		scaleMode:      ScaleLinear,
		dynamicRangeDb: 80,
		contrast:       1,
		luminosity:     0,
		sensitivity:    1,
		rowsPerSecond:  30,
		binCount:       1024,
	}
}

// Snapshot returns a copy of the current values.
func (s *Settings) Snapshot() Snapshot {
	return Snapshot{
		ScaleMode:      s.scaleMode,
		DynamicRangeDb: s.dynamicRangeDb,
		Contrast:       s.contrast,
		Luminosity:     s.luminosity,
		Sensitivity:    s.sensitivity,
		RowsPerSecond:  s.rowsPerSecond,
		BinCount:       s.binCount,
	}
}

func (s *Settings) ScaleMode() ScaleMode    { return s.scaleMode }
func (s *Settings) DynamicRangeDb() float64 { return s.dynamicRangeDb }
func (s *Settings) Contrast() float64       { return s.contrast }
func (s *Settings) Luminosity() float64     { return s.luminosity }
func (s *Settings) Sensitivity() float64    { return s.sensitivity }
func (s *Settings) RowsPerSecond() float64  { return s.rowsPerSecond }
func (s *Settings) BinCount() int           { return s.binCount }

func (s *Settings) SetScaleMode(m ScaleMode) {
	if m != ScaleMel {
		m = ScaleLinear
	}
	s.scaleMode = m
}

func (s *Settings) SetDynamicRangeDb(db float64) {
	s.dynamicRangeDb = clampRange(db, MinDynamicRangeDb, MaxDynamicRangeDb)
}

func (s *Settings) SetContrast(c float64) {
	s.contrast = clampRange(c, MinContrast, MaxContrast)
}

func (s *Settings) SetLuminosity(l float64) {
	s.luminosity = clampRange(l, MinLuminosity, MaxLuminosity)
}

func (s *Settings) SetSensitivity(v float64) {
	s.sensitivity = clampRange(v, MinSensitivity, MaxSensitivity)
}

func (s *Settings) SetRowsPerSecond(r float64) {
	s.rowsPerSecond = clampRange(r, MinRowsPerSecond, MaxRowsPerSecond)
}

// SetBinCount rounds n to the nearest power of two and clamps it to
// [MinBinCount, MaxBinCount].
func (s *Settings) SetBinCount(n int) {
	s.binCount = roundPow2(n, MinBinCount, MaxBinCount)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundPow2(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	lower := 1
	for lower*2 <= n {
		lower *= 2
	}
	upper := lower * 2
	if n-lower <= upper-n || upper > hi {
		return lower
	}
	return upper
}
