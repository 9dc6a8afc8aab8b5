package sim

import (
	"time"

	"github.com/magellan-fc/ak8963/hal"
)

// Clock is a manually advanced clock for tests and simulation.
// Sleep advances simulated time instantly instead of blocking.
type Clock struct {
	now time.Time
}

// compile-time interface check
var _ hal.Clock = (*Clock)(nil)

// NewClock returns a clock starting at an arbitrary fixed epoch.
func NewClock() *Clock {
	return &Clock{now: time.Unix(0, 0)}
}

// Now returns the current simulated time.
func (c *Clock) Now() time.Time {
	return c.now
}

// Sleep advances simulated time by d without blocking.
func (c *Clock) Sleep(d time.Duration) {
	c.now = c.now.Add(d)
}

// Advance moves simulated time forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
