package spectro

import "time"

// RGB is one pixel color triple.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// ColorFunc maps a normalized intensity in [0,1] to a pixel color. It should
// be monotonic in perceived brightness so the waterfall stays readable.
type ColorFunc func(v float64) RGB

// RawFrame is a single magnitude capture: one amplitude byte per frequency
// bin, linearly spaced from 0 Hz to Nyquist, plus the sampling rate in effect
// and a timestamp on the capture-domain monotonic clock. Immutable once
// produced.
type RawFrame struct {
	Bins       []uint8
	SampleRate int
	Timestamp  time.Duration
}

// MagnitudeSource produces RawFrames on demand. Sample must not block; it
// returns the most recent buffered magnitudes.
type MagnitudeSource interface {
	Sample() RawFrame
	SampleRate() int
}

// AxisContext is a read-only snapshot of everything the axis renderer needs.
type AxisContext struct {
	SampleRate    int
	BinCount      int
	RowsPerSecond float64
	Start         time.Duration // session start on the capture clock
	Now           time.Duration // current capture-clock reading
}
