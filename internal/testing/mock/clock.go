package mock

import (
	"sync"
	"time"
)

// Clock is a controllable time source. Pass Clock.Now wherever a
// func() time.Time is accepted.
type Clock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewClock creates a clock set to t, or to the current time if t is zero.
func NewClock(t time.Time) *Clock {
	if t.IsZero() {
		t = time.Now()
	}
	return &Clock{current: t}
}

// Now returns the clock time.
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}
