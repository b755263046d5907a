// Package session tracks elapsed time from session start to completion.
package session

import "time"

// Timer measures one sorting session. It starts on session (re)init and
// stops exactly once, when every item is bucketed; after Stop the elapsed
// value is frozen until the next Reset.
type Timer struct {
	now     func() time.Time
	started time.Time
	frozen  time.Duration
	running bool
}

func NewTimer() *Timer {
	return &Timer{now: time.Now}
}

// NewTimerAt uses the given clock instead of time.Now. Tests inject a fake
// clock here to make elapsed values deterministic.
func NewTimerAt(now func() time.Time) *Timer {
	return &Timer{now: now}
}

func (t *Timer) Start() {
	t.started = t.now()
	t.frozen = 0
	t.running = true
}

// Stop freezes the elapsed duration. Stopping a stopped timer is a no-op.
func (t *Timer) Stop() {
	if !t.running {
		return
	}
	t.frozen = t.now().Sub(t.started)
	t.running = false
}

// Reset re-arms the timer from zero.
func (t *Timer) Reset() {
	t.Start()
}

func (t *Timer) Running() bool { return t.running }

func (t *Timer) Elapsed() time.Duration {
	if t.running {
		return t.now().Sub(t.started)
	}
	return t.frozen
}

func (t *Timer) ElapsedMs() int64 {
	return t.Elapsed().Milliseconds()
}
