package spectro

import "time"

// dueTolerance lets a firing opportunity that arrives just short of the due
// time still count, so refresh-rate jitter cannot starve row production.
const dueTolerance = 2 * time.Millisecond

// Scheduler meters row production at a target rate. The host's driving loop
// calls Due on every scheduling opportunity; Due reports true at most once
// per 1/rate interval. The next due time advances by exactly one period from
// the previous due time, never from "now", so individual late frames do not
// accumulate drift and the long-run rate converges to the target.
//
// All times are readings of the capture-domain monotonic clock, keeping the
// visual time axis in lock-step with the sample stream.
type Scheduler struct {
	period  time.Duration
	nextDue time.Duration
	started bool
}

// NewScheduler creates a scheduler firing rowsPerSecond times per second,
// clamped to [MinRowsPerSecond, MaxRowsPerSecond].
func NewScheduler(rowsPerSecond float64) *Scheduler {
	s := &Scheduler{}
	s.SetRate(rowsPerSecond)
	return s
}

// SetRate changes the target rate, clamped to the valid range. The pending
// due time is kept, so a rate change takes effect from the next firing.
func (s *Scheduler) SetRate(rowsPerSecond float64) {
	if rowsPerSecond < MinRowsPerSecond {
		rowsPerSecond = MinRowsPerSecond
	}
	if rowsPerSecond > MaxRowsPerSecond {
		rowsPerSecond = MaxRowsPerSecond
	}
	s.period = time.Duration(float64(time.Second) / rowsPerSecond)
}

// Rate returns the effective rate in rows per second.
func (s *Scheduler) Rate() float64 {
	return float64(time.Second) / float64(s.period)
}

// Reset re-anchors the schedule so the next firing is due at now.
func (s *Scheduler) Reset(now time.Duration) {
	s.nextDue = now
	s.started = true
}

// Due reports whether a row is due at now and, if so, advances the schedule.
// When not due it has no side effects.
func (s *Scheduler) Due(now time.Duration) bool {
	if !s.started {
		s.Reset(now)
	}
	if now+dueTolerance < s.nextDue {
		return false
	}
	s.nextDue += s.period
	return true
}
