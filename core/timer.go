package core

import (
	"sync"
	"time"
)

// Clock is the time source for the toggle loop. Sampling intervals and the
// settle hold are expressed against it so tests can run without real time.
type Clock interface {
	// Now returns the time elapsed since the clock started.
	Now() time.Duration

	// Sleep blocks for d.
	Sleep(d time.Duration)
}

// SystemClock uses the runtime's monotonic clock and time.Sleep.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() time.Duration { return time.Since(c.start) }

func (c *SystemClock) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// ManualClock only advances when Sleep is called. OnSleep, if set, runs
// after every advance with the new time; tests use it to change input levels
// "while" the loop is waiting.
type ManualClock struct {
	mu  sync.Mutex
	now time.Duration

	OnSleep func(now time.Duration)
}

// NewManualClock returns a clock stopped at zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Sleep(d time.Duration) {
	c.mu.Lock()
	c.now += d
	now := c.now
	hook := c.OnSleep
	c.mu.Unlock()

	if hook != nil {
		hook(now)
	}
}

// Advance moves the clock forward by d without running OnSleep.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}
