package core

import "time"

// FixedStep paces simulation ticks at a steady rate independent of the
// frame rate of the host loop.
type FixedStep struct {
	step    time.Duration
	pending time.Duration
	last    time.Time
	now     func() time.Time
}

// NewFixedStep returns a timer targeting tps ticks per second. The first
// call to ShouldStep or Due always yields one tick.
func NewFixedStep(tps int) *FixedStep {
	f := &FixedStep{now: time.Now}
	f.SetTPS(tps)
	f.pending = f.step
	return f
}

// SetTPS changes the tick rate; non-positive values mean 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step is the duration of one tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// Restart forgets elapsed time, e.g. after a pause, and arms one tick.
func (f *FixedStep) Restart() {
	f.last = time.Time{}
	f.pending = f.step
}

func (f *FixedStep) advance() {
	now := f.now()
	if !f.last.IsZero() {
		f.pending += now.Sub(f.last)
	}
	f.last = now
}

// ShouldStep reports whether one tick is due and consumes it.
func (f *FixedStep) ShouldStep() bool {
	f.advance()
	if f.pending >= f.step {
		f.pending -= f.step
		return true
	}
	return false
}

// Due returns how many ticks are owed, at most limit, and consumes them.
// Backlog beyond limit is dropped so a stalled host does not spiral.
func (f *FixedStep) Due(limit int) int {
	f.advance()
	n := int(f.pending / f.step)
	if limit > 0 && n > limit {
		n = limit
		f.pending = 0
		return n
	}
	f.pending -= time.Duration(n) * f.step
	return n
}
