// Package capture turns decoded PCM into per-bin magnitude frames for the
// waterfall pipeline. Playback tees every PCM block into a drop-oldest tap;
// the analyzer windows the most recent samples and measures bin power with a
// real FFT on demand.
package capture

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/askne/specfall/internal/spectro"
)

// tapSeconds sizes the PCM tap: enough history for the largest FFT window at
// common rates.
const tapSeconds = 4

// Analyzer implements spectro.MagnitudeSource over a PCM tap. Sample never
// blocks; it analyzes whatever the tap currently holds. The capture-domain
// clock is derived from the total sample frames written, so it advances with
// playback and freezes when playback pauses.
type Analyzer struct {
	tap        *Tap
	sampleRate int
	channels   int

	mu       sync.Mutex
	written  int64 // total sample frames seen
	gain     float64
	binCount int

	fft    *fourier.FFT
	raw    []int16
	frame  []float64
	coeffs []complex128
	bins   []uint8
}

// NewAnalyzer creates an analyzer for interleaved 16-bit PCM at the given
// rate and channel count. binCount is the number of magnitude bins per frame
// (FFT size is twice that).
func NewAnalyzer(sampleRate, channels, binCount int) *Analyzer {
	if sampleRate < 1 {
		sampleRate = 1
	}
	if channels < 1 {
		channels = 1
	}
	a := &Analyzer{
		tap:        NewTap(sampleRate * channels * tapSeconds),
		sampleRate: sampleRate,
		channels:   channels,
		gain:       1,
	}
	a.setBinCountLocked(binCount)
	return a
}

// SampleRate returns the PCM sampling rate in Hz.
func (a *Analyzer) SampleRate() int { return a.sampleRate }

// SetGain sets the sensitivity multiplier applied to samples before analysis.
func (a *Analyzer) SetGain(g float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gain = g
}

// SetBinCount changes the number of bins per frame; analysis buffers are
// reallocated for the next Sample. The caller supplies an already-validated
// power of two.
func (a *Analyzer) SetBinCount(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.setBinCountLocked(n)
}

func (a *Analyzer) setBinCountLocked(n int) {
	if n < 1 {
		n = 1
	}
	if n == a.binCount {
		return
	}
	fftSize := 2 * n
	a.binCount = n
	a.fft = fourier.NewFFT(fftSize)
	a.raw = make([]int16, fftSize*a.channels)
	a.frame = make([]float64, fftSize)
	a.coeffs = make([]complex128, fftSize/2+1)
	a.bins = make([]uint8, n)
}

// WritePCM feeds interleaved signed 16-bit little-endian PCM into the tap and
// advances the capture clock. Safe to call from the playback goroutine.
func (a *Analyzer) WritePCM(p []byte) {
	n := len(p) / 2
	if n == 0 {
		return
	}
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(p[i*2:]))
	}
	a.tap.Write(samples)

	a.mu.Lock()
	a.written += int64(n / a.channels)
	a.mu.Unlock()
}

// Clock returns the capture-domain monotonic time: total frames written
// divided by the sampling rate.
func (a *Analyzer) Clock() time.Duration {
	a.mu.Lock()
	frames := a.written
	a.mu.Unlock()
	return time.Duration(frames * int64(time.Second) / int64(a.sampleRate))
}

// Sample analyzes the most recent FFT window from the tap: mono mix with
// gain, Hann window, real FFT, bin power in dB quantized to amplitude bytes
// against [spectro.MinDb, spectro.MaxDb].
func (a *Analyzer) Sample() spectro.RawFrame {
	a.mu.Lock()
	defer a.mu.Unlock()

	fftSize := len(a.frame)
	a.tap.Latest(a.raw)

	scale := a.gain / (32768 * float64(a.channels))
	for i := 0; i < fftSize; i++ {
		var mix float64
		base := i * a.channels
		for c := 0; c < a.channels; c++ {
			mix += float64(a.raw[base+c])
		}
		a.frame[i] = mix * scale
	}
	window.Hann(a.frame)

	a.fft.Coefficients(a.coeffs, a.frame)

	// Single-sided amplitude; the Hann window halves the coherent gain, so
	// fold its factor of 2 back in alongside the FFT normalization.
	norm := 4.0 / float64(fftSize)
	dbSpan := spectro.MaxDb - spectro.MinDb
	for k := range a.bins {
		c := a.coeffs[k]
		amp := math.Hypot(real(c), imag(c)) * norm
		db := 20 * math.Log10(amp+1e-12)
		v := (db - spectro.MinDb) / dbSpan * 255
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		a.bins[k] = uint8(v)
	}

	frame := spectro.RawFrame{
		Bins:       make([]uint8, len(a.bins)),
		SampleRate: a.sampleRate,
		Timestamp:  time.Duration(a.written * int64(time.Second) / int64(a.sampleRate)),
	}
	copy(frame.Bins, a.bins)
	return frame
}
