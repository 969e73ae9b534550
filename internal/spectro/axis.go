package spectro

import (
	"fmt"
	"math"
)

// Tick is one axis mark: a pixel offset along its axis and a printable label.
type Tick struct {
	Pos   int
	Label string
}

// Nice step candidates. Frequency steps apply to the linear mode; the mel
// axis instead places a fixed set of round frequencies at their mel position,
// since equal Hz steps are not equally spaced there.
var (
	freqStepsHz = []float64{10, 20, 50, 100, 200, 500, 1000, 2000, 5000, 10000}
	melTicksHz  = []float64{20, 50, 100, 200, 500, 1000, 2000, 5000, 10000, 16000, 20000}
	timeStepsS  = []float64{0.2, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600, 1800, 3600}
)

// FreqTicks computes tick marks for the bottom frequency axis at the given
// pixel width. Degenerate input yields no ticks rather than an error; the
// selection is deterministic for identical inputs.
func FreqTicks(ctx AxisContext, width int, mode ScaleMode) []Tick {
	if width <= 1 || ctx.SampleRate <= 0 {
		return nil
	}
	nyquist := float64(ctx.SampleRate) / 2
	fmin, fmax := displayBand(nyquist)
	if mode == ScaleMel {
		return melFreqTicks(fmin, fmax, width)
	}
	return linearFreqTicks(fmin, fmax, width)
}

func linearFreqTicks(fmin, fmax float64, width int) []Tick {
	target := clampInt(width/120, 6, 12)
	raw := fmax / float64(target)
	step := freqStepsHz[len(freqStepsHz)-1]
	for _, c := range freqStepsHz {
		if c >= raw {
			step = c
			break
		}
	}

	var ticks []Tick
	span := fmax - fmin
	for f := math.Ceil(fmin/step) * step; f <= fmax+step*1e-9; f += step {
		x := int(math.Round((f - fmin) / span * float64(width-1)))
		if x < 0 || x >= width {
			continue
		}
		ticks = append(ticks, Tick{Pos: x, Label: formatHz(f)})
	}
	return ticks
}

func melFreqTicks(fmin, fmax float64, width int) []Tick {
	melMin := melScale(fmin)
	melMax := melScale(fmax)
	span := melMax - melMin
	if span <= 0 {
		return nil
	}

	var ticks []Tick
	for _, f := range melTicksHz {
		if f < fmin || f > fmax {
			continue
		}
		t := (melScale(f) - melMin) / span
		x := int(math.Round(t * float64(width-1)))
		if x < 0 || x >= width {
			continue
		}
		ticks = append(ticks, Tick{Pos: x, Label: formatHz(f)})
	}
	return ticks
}

// TimeTicks computes tick marks for the right-hand time axis. Pos is the
// pixel row (0 = newest); each row spans 1/rowsPerSecond seconds. Ticks fall
// on round multiples of a nice step of elapsed session time.
func TimeTicks(ctx AxisContext, height int) []Tick {
	if height <= 1 || ctx.RowsPerSecond <= 0 {
		return nil
	}
	secPerRow := 1 / ctx.RowsPerSecond
	span := float64(height) * secPerRow
	target := clampInt(height/80, 4, 12)
	raw := span / float64(target)
	step := timeStepsS[len(timeStepsS)-1]
	for _, c := range timeStepsS {
		if c >= raw {
			step = c
			break
		}
	}

	elapsed := (ctx.Now - ctx.Start).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	var ticks []Tick
	for t := math.Floor(elapsed/step) * step; t >= 0 && t > elapsed-span-step; t -= step {
		y := int(math.Round((elapsed - t) / secPerRow))
		if y < 0 || y >= height {
			continue
		}
		ticks = append(ticks, Tick{Pos: y, Label: formatSeconds(t, step)})
	}
	return ticks
}

func formatHz(f float64) string {
	if f >= 1000 {
		v := f / 1000
		if v == math.Trunc(v) {
			return fmt.Sprintf("%.0fk", v)
		}
		return fmt.Sprintf("%.1fk", v)
	}
	return fmt.Sprintf("%.0f", f)
}

// formatSeconds labels an elapsed time, switching to m:ss above a minute.
// Sub-second steps keep one decimal so adjacent labels stay distinct.
func formatSeconds(t, step float64) string {
	if t >= 60 {
		total := int(math.Round(t))
		return fmt.Sprintf("%d:%02d", total/60, total%60)
	}
	if step < 1 {
		return fmt.Sprintf("%.1fs", t)
	}
	return fmt.Sprintf("%.0fs", t)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
