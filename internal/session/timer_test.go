package session

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestTimerElapsed(t *testing.T) {
	clock := newFakeClock()
	timer := NewTimerAt(clock.now)

	timer.Start()
	if !timer.Running() {
		t.Fatal("timer should be running after start")
	}

	clock.advance(1500 * time.Millisecond)
	if got := timer.ElapsedMs(); got != 1500 {
		t.Errorf("elapsed = %dms, want 1500", got)
	}
}

func TestTimerMonotonicWhileRunning(t *testing.T) {
	clock := newFakeClock()
	timer := NewTimerAt(clock.now)
	timer.Start()

	prev := int64(-1)
	for i := 0; i < 10; i++ {
		clock.advance(17 * time.Millisecond)
		got := timer.ElapsedMs()
		if got < prev {
			t.Fatalf("elapsed went backwards: %d after %d", got, prev)
		}
		prev = got
	}
}

func TestTimerStopFreezes(t *testing.T) {
	clock := newFakeClock()
	timer := NewTimerAt(clock.now)
	timer.Start()

	clock.advance(2 * time.Second)
	timer.Stop()
	if timer.Running() {
		t.Error("timer should not be running after stop")
	}

	frozen := timer.ElapsedMs()
	clock.advance(time.Hour)
	if got := timer.ElapsedMs(); got != frozen {
		t.Errorf("elapsed changed after stop: %d != %d", got, frozen)
	}

	// Second stop must not re-freeze with a later value.
	timer.Stop()
	if got := timer.ElapsedMs(); got != frozen {
		t.Errorf("double stop changed elapsed: %d != %d", got, frozen)
	}
}

func TestTimerReset(t *testing.T) {
	clock := newFakeClock()
	timer := NewTimerAt(clock.now)
	timer.Start()

	clock.advance(5 * time.Second)
	timer.Stop()
	timer.Reset()

	if !timer.Running() {
		t.Error("timer should run after reset")
	}
	if got := timer.ElapsedMs(); got != 0 {
		t.Errorf("elapsed after reset = %d, want 0", got)
	}
}
