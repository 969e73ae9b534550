// Package spectro is the signal-to-pixel core of the waterfall: cadenced row
// production, magnitude normalization, frequency-to-column remapping, the
// scrolling pixel buffer, and the bounded queue that absorbs rows while the
// display is hidden. It is host-agnostic; the TUI is one driving loop.
package spectro

import (
	"math"
	"time"
)

// hiddenMaxRate caps row production while the display is hidden, trading
// time resolution for bounded work when nobody is watching.
const hiddenMaxRate = 10.0

// Pipeline wires a magnitude source through normalization and frequency
// mapping into the scroll buffer, or into the backpressure queue while the
// display is hidden.
//
// Everything is single-threaded by contract: the host calls Tick, SetVisible
// and Resize from one logical thread of control, so no stage needs a lock.
type Pipeline struct {
	source   MagnitudeSource
	settings *Settings
	buffer   *ScrollBuffer
	queue    *RowQueue
	visSched *Scheduler
	hidSched *Scheduler
	mapper   *Mapper
	color    ColorFunc
	smoother *Smoother
	onResume func()

	visible bool
	started bool
	start   time.Duration
	now     time.Duration
	normBuf []float64
}

// NewPipeline builds a pipeline rendering into a width×height scroll buffer.
// The pipeline starts visible with the default heat color ramp.
func NewPipeline(source MagnitudeSource, settings *Settings, width, height int) *Pipeline {
	s := settings.Snapshot()
	return &Pipeline{
		source:   source,
		settings: settings,
		buffer:   NewScrollBuffer(width, height),
		queue:    NewRowQueue(DefaultQueueCapacity),
		visSched: NewScheduler(s.RowsPerSecond),
		hidSched: NewScheduler(math.Min(s.RowsPerSecond, hiddenMaxRate)),
		color:    HeatColor,
		visible:  true,
	}
}

// Buffer exposes the scroll buffer for blitting. The host must not mutate it.
func (p *Pipeline) Buffer() *ScrollBuffer { return p.buffer }

// QueueLen reports how many rows are waiting for visibility to return.
func (p *Pipeline) QueueLen() int { return p.queue.Len() }

// Visible reports the current visibility state.
func (p *Pipeline) Visible() bool { return p.visible }

// SetColorFunc replaces the intensity→color mapping. A nil fn restores the
// default ramp.
func (p *Pipeline) SetColorFunc(fn ColorFunc) {
	if fn == nil {
		fn = HeatColor
	}
	p.color = fn
}

// SetSmoother installs an optional per-bin smoother, or removes it with nil.
func (p *Pipeline) SetSmoother(s *Smoother) { p.smoother = s }

// SetOnResume registers a callback run when visibility is restored, used to
// resume a capture domain that was suspended while hidden.
func (p *Pipeline) SetOnResume(fn func()) { p.onResume = fn }

// Resize reallocates the scroll buffer. History is cleared; the column plan
// is rebuilt on the next row.
func (p *Pipeline) Resize(width, height int) {
	p.buffer.Resize(width, height)
	p.mapper = nil
}

// SetVisible switches between live rendering and queued production. On the
// hidden→visible edge the queue drains into the scroll buffer in FIFO order,
// the resume callback runs, and the normal cadence restarts from now.
func (p *Pipeline) SetVisible(visible bool) {
	if visible == p.visible {
		return
	}
	p.visible = visible
	if visible {
		p.queue.Drain(p.buffer.InsertRow)
		if p.onResume != nil {
			p.onResume()
		}
		p.visSched.Reset(p.now)
		return
	}
	p.hidSched.Reset(p.now)
}

// Context returns the axis snapshot for the current tick.
func (p *Pipeline) Context() AxisContext {
	s := p.settings.Snapshot()
	return AxisContext{
		SampleRate:    p.source.SampleRate(),
		BinCount:      s.BinCount,
		RowsPerSecond: s.RowsPerSecond,
		Start:         p.start,
		Now:           p.now,
	}
}

// Tick is one scheduling opportunity at capture-clock time now. It produces
// at most one row: sample → normalize → map → insert (visible) or enqueue
// (hidden). Returns whether a row was produced. Settings are snapshotted once
// at entry and hold for the whole row.
func (p *Pipeline) Tick(now time.Duration) bool {
	if !p.started {
		p.started = true
		p.start = now
		p.visSched.Reset(now)
		p.hidSched.Reset(now)
	}
	p.now = now

	s := p.settings.Snapshot()
	p.visSched.SetRate(s.RowsPerSecond)
	p.hidSched.SetRate(math.Min(s.RowsPerSecond, hiddenMaxRate))

	sched := p.visSched
	if !p.visible {
		sched = p.hidSched
	}
	if !sched.Due(now) {
		return false
	}

	frame := p.source.Sample()
	if len(frame.Bins) == 0 || frame.SampleRate <= 0 {
		return false
	}
	width := p.buffer.Width()
	if width <= 0 || p.buffer.Height() <= 0 {
		return false
	}

	norm := Normalizer{MinDb: MinDb, MaxDb: MaxDb, RangeDb: s.DynamicRangeDb}.Row(frame, p.normBuf)
	p.normBuf = norm
	if p.smoother != nil {
		p.smoother.Apply(norm)
	}

	if p.mapper == nil || !p.mapper.Matches(s.ScaleMode, width, len(frame.Bins), frame.SampleRate) {
		p.mapper = NewMapper(s.ScaleMode, width, len(frame.Bins), frame.SampleRate)
	}

	// Queued rows outlive the tick, so each row gets its own backing array.
	row := p.mapper.MapRow(norm, s.Contrast, s.Luminosity, p.color, nil)
	if p.visible {
		p.buffer.InsertRow(row)
	} else {
		p.queue.Push(row)
	}
	return true
}
