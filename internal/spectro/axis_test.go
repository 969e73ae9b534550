package spectro

import (
	"reflect"
	"testing"
	"time"
)

func TestFreqTicksLinear(t *testing.T) {
	ctx := AxisContext{SampleRate: 48000}
	got := FreqTicks(ctx, 512, ScaleLinear)

	// Band is [20, 16000]; six target ticks give a raw step of ~2667 Hz,
	// rounded up to the 5000 Hz nice step.
	want := []Tick{
		{Pos: 159, Label: "5k"},
		{Pos: 319, Label: "10k"},
		{Pos: 479, Label: "15k"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FreqTicks() = %v, want %v", got, want)
	}
}

func TestFreqTicksDeterministic(t *testing.T) {
	ctx := AxisContext{SampleRate: 44100}
	for _, mode := range []ScaleMode{ScaleLinear, ScaleMel} {
		a := FreqTicks(ctx, 300, mode)
		b := FreqTicks(ctx, 300, mode)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("mode %v: identical inputs produced %v then %v", mode, a, b)
		}
	}
}

func TestFreqTicksMelSpansBand(t *testing.T) {
	ctx := AxisContext{SampleRate: 48000}
	got := FreqTicks(ctx, 512, ScaleMel)
	if len(got) == 0 {
		t.Fatal("FreqTicks() mel = empty")
	}

	if got[0].Pos != 0 || got[0].Label != "20" {
		t.Fatalf("first mel tick = %v, want {0 20}", got[0])
	}
	last := got[len(got)-1]
	if last.Pos != 511 || last.Label != "16k" {
		t.Fatalf("last mel tick = %v, want {511 16k}", last)
	}

	// Mel spacing compresses high frequencies: the gap between consecutive
	// ticks in pixels must widen toward the low end relative to Hz spacing.
	prev := -1
	for _, tick := range got {
		if tick.Pos <= prev {
			t.Fatalf("mel tick positions not increasing: %v", got)
		}
		prev = tick.Pos
	}
}

func TestFreqTicksDegenerateInputs(t *testing.T) {
	if got := FreqTicks(AxisContext{SampleRate: 48000}, 0, ScaleLinear); got != nil {
		t.Fatalf("FreqTicks(width=0) = %v, want nil", got)
	}
	if got := FreqTicks(AxisContext{SampleRate: 0}, 512, ScaleLinear); got != nil {
		t.Fatalf("FreqTicks(rate=0) = %v, want nil", got)
	}
}

func TestTimeTicks(t *testing.T) {
	ctx := AxisContext{SampleRate: 48000, RowsPerSecond: 20, Start: 0, Now: 5 * time.Second}
	got := TimeTicks(ctx, 200)

	// 200 rows at 50ms each span 10s; four target ticks give a 5s step.
	want := []Tick{
		{Pos: 0, Label: "5s"},
		{Pos: 100, Label: "0s"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TimeTicks() = %v, want %v", got, want)
	}
}

func TestTimeTicksMinuteLabels(t *testing.T) {
	ctx := AxisContext{SampleRate: 48000, RowsPerSecond: 1, Start: 0, Now: 150 * time.Second}
	got := TimeTicks(ctx, 400)
	if len(got) == 0 {
		t.Fatal("TimeTicks() = empty")
	}
	for _, tick := range got {
		if tick.Label == "120s" {
			t.Fatalf("label %q should use minutes above 60s", tick.Label)
		}
	}
	if got[0].Pos != 30 || got[0].Label != "2:00" {
		t.Fatalf("first tick = %v, want {30 2:00}", got[0])
	}
}

func TestTimeTicksDegenerateInputs(t *testing.T) {
	ctx := AxisContext{SampleRate: 48000, RowsPerSecond: 20}
	if got := TimeTicks(ctx, 0); got != nil {
		t.Fatalf("TimeTicks(height=0) = %v, want nil", got)
	}
	if got := TimeTicks(AxisContext{SampleRate: 48000}, 100); got != nil {
		t.Fatalf("TimeTicks(rps=0) = %v, want nil", got)
	}
}
