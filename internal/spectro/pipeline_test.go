package spectro

import (
	"testing"
	"time"
)

type fakeSource struct {
	bins  []uint8
	rate  int
	calls int
}

func (f *fakeSource) Sample() RawFrame {
	f.calls++
	return RawFrame{Bins: f.bins, SampleRate: f.rate}
}

func (f *fakeSource) SampleRate() int { return f.rate }

func loudBins(n int) []uint8 {
	bins := make([]uint8, n)
	for i := range bins {
		bins[i] = 255
	}
	return bins
}

func testPipeline(t *testing.T) (*Pipeline, *fakeSource, *Settings) {
	t.Helper()
	src := &fakeSource{bins: loudBins(64), rate: 48000}
	settings := DefaultSettings()
	settings.SetRowsPerSecond(20)
	return NewPipeline(src, settings, 32, 8), src, settings
}

func TestTickHonorsCadence(t *testing.T) {
	p, src, _ := testPipeline(t)

	if !p.Tick(0) {
		t.Fatal("Tick(0) = false, want a row at the anchor")
	}
	if p.Tick(10 * time.Millisecond) {
		t.Fatal("Tick(10ms) = true, want skip before 50ms")
	}
	if !p.Tick(50 * time.Millisecond) {
		t.Fatal("Tick(50ms) = false, want a row")
	}
	if src.calls != 2 {
		t.Fatalf("source sampled %d times, want 2", src.calls)
	}
}

func TestTickInsertsNewestOnTop(t *testing.T) {
	p, src, _ := testPipeline(t)

	p.Tick(0)
	src.bins = make([]uint8, 64) // silence
	p.Tick(50 * time.Millisecond)

	top := p.Buffer().At(0, 0)
	below := p.Buffer().At(0, 1)
	if top == below {
		t.Fatalf("top row %v equals previous row %v; want newest on top", top, below)
	}
	if top != HeatColor(0) {
		t.Fatalf("top row = %v, want the silence color %v", top, HeatColor(0))
	}
	if below != HeatColor(1) {
		t.Fatalf("second row = %v, want the full-scale color %v", below, HeatColor(1))
	}
}

func TestHiddenProductionIsCappedAndQueued(t *testing.T) {
	p, _, _ := testPipeline(t)
	p.Tick(0)

	p.SetVisible(false)
	// Hidden cadence caps at 10 rows/s even though the target is 20.
	if !p.Tick(1 * time.Millisecond) {
		t.Fatal("first hidden Tick = false, want queued row at anchor")
	}
	if p.Tick(60 * time.Millisecond) {
		t.Fatal("Tick(60ms) = true, want skip before the 100ms hidden slot")
	}
	if !p.Tick(101 * time.Millisecond) {
		t.Fatal("Tick(101ms) = false, want queued row")
	}
	if p.QueueLen() != 2 {
		t.Fatalf("QueueLen() = %d, want 2", p.QueueLen())
	}
}

func TestVisibilityRestoreDrainsInOrder(t *testing.T) {
	p, src, _ := testPipeline(t)
	p.Tick(0)
	p.SetVisible(false)

	src.bins = loudBins(64)
	p.Tick(1 * time.Millisecond) // queued: loud
	src.bins = make([]uint8, 64)
	p.Tick(101 * time.Millisecond) // queued: silence

	resumed := false
	p.SetOnResume(func() { resumed = true })
	p.SetVisible(true)

	if !resumed {
		t.Fatal("resume callback not invoked on visibility restore")
	}
	if p.QueueLen() != 0 {
		t.Fatalf("QueueLen() = %d after drain, want 0", p.QueueLen())
	}
	// FIFO drain: the loud row went in first, so it sits below the silence.
	if got := p.Buffer().At(0, 0); got != HeatColor(0) {
		t.Fatalf("top row = %v, want last-queued silence %v", got, HeatColor(0))
	}
	if got := p.Buffer().At(0, 1); got != HeatColor(1) {
		t.Fatalf("second row = %v, want first-queued loud %v", got, HeatColor(1))
	}
}

func TestSetVisibleSameStateIsNoop(t *testing.T) {
	p, _, _ := testPipeline(t)
	resumed := 0
	p.SetOnResume(func() { resumed++ })

	p.SetVisible(true) // already visible
	if resumed != 0 {
		t.Fatalf("resume callback ran %d times, want 0", resumed)
	}
}

func TestResizeTakesEffectOnNextRow(t *testing.T) {
	p, _, _ := testPipeline(t)
	p.Tick(0)

	p.Resize(16, 4)
	if p.Buffer().Width() != 16 || p.Buffer().Height() != 4 {
		t.Fatalf("buffer dims = %dx%d, want 16x4", p.Buffer().Width(), p.Buffer().Height())
	}
	if !p.Tick(50 * time.Millisecond) {
		t.Fatal("Tick after resize = false, want a row at the new width")
	}
	if got := len(p.Buffer().Row(0)); got != 16 {
		t.Fatalf("row length = %d, want 16", got)
	}
}

func TestTickSkipsDegenerateGeometry(t *testing.T) {
	src := &fakeSource{bins: loudBins(64), rate: 48000}
	p := NewPipeline(src, DefaultSettings(), 0, 0)
	if p.Tick(0) {
		t.Fatal("Tick with a zero-size buffer = true, want false")
	}
}

func TestTickSkipsEmptyFrames(t *testing.T) {
	src := &fakeSource{bins: nil, rate: 48000}
	p := NewPipeline(src, DefaultSettings(), 32, 8)
	if p.Tick(0) {
		t.Fatal("Tick with an empty frame = true, want false")
	}
}

func TestContextSnapshot(t *testing.T) {
	p, _, settings := testPipeline(t)
	p.Tick(3 * time.Second)

	ctx := p.Context()
	if ctx.SampleRate != 48000 {
		t.Fatalf("Context().SampleRate = %d, want 48000", ctx.SampleRate)
	}
	if ctx.RowsPerSecond != settings.RowsPerSecond() {
		t.Fatalf("Context().RowsPerSecond = %v, want %v", ctx.RowsPerSecond, settings.RowsPerSecond())
	}
	if ctx.Start != 3*time.Second || ctx.Now != 3*time.Second {
		t.Fatalf("Context() clock = start %v now %v, want 3s/3s", ctx.Start, ctx.Now)
	}
}
