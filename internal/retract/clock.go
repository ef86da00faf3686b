package retract

import (
	"sync"
	"time"
)

// Clock schedules deferred callbacks. The production scheduler uses
// the system clock; tests inject ManualClock to advance time
// deterministically.
type Clock interface {
	AfterFunc(d time.Duration, f func())
}

// SystemClock defers to time.AfterFunc.
type SystemClock struct{}

func (SystemClock) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// ManualClock holds callbacks until Advance moves its notion of now
// past their deadline. Callbacks run synchronously inside Advance.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []manualTimer
}

type manualTimer struct {
	deadline time.Time
	f        func()
}

// NewManualClock starts at an arbitrary fixed instant.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timers = append(c.timers, manualTimer{deadline: c.now.Add(d), f: f})
}

// Advance moves the clock forward and fires every callback whose
// deadline has passed, in scheduling order.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)

	var due []func()
	var remaining []manualTimer
	for _, t := range c.timers {
		if !t.deadline.After(c.now) {
			due = append(due, t.f)
		} else {
			remaining = append(remaining, t)
		}
	}
	c.timers = remaining
	c.mu.Unlock()

	for _, f := range due {
		f()
	}
}

// PendingTimers returns how many callbacks have not fired yet.
func (c *ManualClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}
