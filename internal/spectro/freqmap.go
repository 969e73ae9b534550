package spectro

import "math"

// ScaleMode selects how frequency bins spread across pixel columns.
type ScaleMode uint8

const (
	// ScaleLinear spaces columns evenly in Hz.
	ScaleLinear ScaleMode = iota
	// ScaleMel spaces columns evenly in perceived pitch, denser at low
	// frequencies.
	ScaleMel
)

func (m ScaleMode) String() string {
	if m == ScaleMel {
		return "mel"
	}
	return "linear"
}

// Displayed band limits. The lower edge tracks very low Nyquist rates so the
// band never collapses to nothing.
const (
	minDisplayHz = 20.0
	maxDisplayHz = 16000.0
)

// displayBand returns the [fmin,fmax] frequency window shown on screen for a
// given Nyquist frequency, guarding against a degenerate range.
func displayBand(nyquist float64) (fmin, fmax float64) {
	fmin = math.Max(minDisplayHz, nyquist/20000)
	fmax = math.Min(maxDisplayHz, nyquist)
	if fmin >= fmax {
		fmin = fmax * 0.9999
	}
	return fmin, fmax
}

func melScale(f float64) float64 {
	return 2595 * math.Log10(1+f/700)
}

func melInverse(m float64) float64 {
	return 700 * (math.Pow(10, m/2595) - 1)
}

// Mapper resamples a normalized bin row onto pixel columns. The column→bin
// plan is computed once per (mode, width, binCount, sampleRate) combination
// and reused for every row, so mode dispatch happens at plan build time, not
// per pixel.
type Mapper struct {
	mode       ScaleMode
	width      int
	binCount   int
	sampleRate int
	plan       []float64 // fractional bin index per column
}

// NewMapper builds a mapper for the given geometry. width and binCount must
// be at least 1; sampleRate at least 2.
func NewMapper(mode ScaleMode, width, binCount, sampleRate int) *Mapper {
	if width < 1 {
		width = 1
	}
	if binCount < 1 {
		binCount = 1
	}
	if sampleRate < 2 {
		sampleRate = 2
	}
	m := &Mapper{mode: mode, width: width, binCount: binCount, sampleRate: sampleRate}
	m.rebuild()
	return m
}

// Matches reports whether the mapper's plan is valid for the given geometry.
func (m *Mapper) Matches(mode ScaleMode, width, binCount, sampleRate int) bool {
	return m.mode == mode && m.width == width && m.binCount == binCount && m.sampleRate == sampleRate
}

func (m *Mapper) rebuild() {
	nyquist := float64(m.sampleRate) / 2
	fmin, fmax := displayBand(nyquist)
	melMin := melScale(fmin)
	melMax := melScale(fmax)
	den := float64(m.width - 1)
	if den <= 0 {
		den = 1
	}
	maxIdx := float64(m.binCount - 1)

	m.plan = make([]float64, m.width)
	for x := range m.plan {
		t := float64(x) / den
		var f float64
		if m.mode == ScaleMel {
			f = melInverse(melMin + t*(melMax-melMin))
		} else {
			f = fmin + t*(fmax-fmin)
		}
		idx := f / nyquist * maxIdx
		if idx < 0 {
			idx = 0
		}
		if idx > maxIdx {
			idx = maxIdx
		}
		m.plan[x] = idx
	}
}

// BinIndex returns the fractional bin index for pixel column x, always within
// [0, binCount-1].
func (m *Mapper) BinIndex(x int) float64 {
	if x < 0 {
		x = 0
	}
	if x >= len(m.plan) {
		x = len(m.plan) - 1
	}
	return m.plan[x]
}

// Width returns the pixel width the plan was built for.
func (m *Mapper) Width() int { return m.width }

// MapRow resamples norm (length binCount) into a pixel row of the planned
// width. Each column linearly interpolates the two bins straddling its
// fractional index, then applies contrast and luminosity shaping before the
// color function.
func (m *Mapper) MapRow(norm []float64, contrast, luminosity float64, color ColorFunc, dst []RGB) []RGB {
	if cap(dst) < m.width {
		dst = make([]RGB, m.width)
	}
	dst = dst[:m.width]
	last := len(norm) - 1
	if last < 0 {
		for x := range dst {
			dst[x] = color(0)
		}
		return dst
	}
	for x, idx := range m.plan {
		lo := int(idx)
		if lo > last {
			lo = last
		}
		hi := lo + 1
		if hi > last {
			hi = last
		}
		t := idx - float64(lo)
		v := norm[lo]*(1-t) + norm[hi]*t
		v = clamp01((v-0.5)*contrast + 0.5 + luminosity)
		dst[x] = color(v)
	}
	return dst
}
