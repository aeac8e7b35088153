package clock

import (
	"fmt"
	"time"
)

// DefaultTimeLimit is the length of one puzzle round.
const DefaultTimeLimit = 120 * time.Second

// Countdown is a one-tick-per-second game timer.
// It is stopped until Start is called and raises its expiry exactly once.
type Countdown struct {
	total     int // whole seconds
	remaining int
	carry     time.Duration // elapsed time not yet converted to a tick
	running   bool
	expired   bool
}

// NewCountdown creates a stopped countdown of the given length,
// truncated to whole seconds.
func NewCountdown(total time.Duration) *Countdown {
	secs := int(total / time.Second)
	return &Countdown{total: secs, remaining: secs}
}

// Start (re)starts the countdown from its full length.
// Calling it on a running countdown restarts it.
func (c *Countdown) Start() {
	c.remaining = c.total
	c.carry = 0
	c.expired = false
	c.running = c.total > 0
	if c.total <= 0 {
		c.expired = true
	}
}

// Stop halts the countdown, keeping the remaining time. Safe to call repeatedly.
func (c *Countdown) Stop() {
	c.running = false
	c.carry = 0
}

// Advance feeds elapsed time into the countdown. It decrements once per
// whole second and returns true on the call that reaches zero.
func (c *Countdown) Advance(dt time.Duration) bool {
	if !c.running || dt <= 0 {
		return false
	}
	c.carry += dt
	for c.carry >= time.Second && c.remaining > 0 {
		c.carry -= time.Second
		c.remaining--
	}
	if c.remaining == 0 {
		c.running = false
		c.expired = true
		c.carry = 0
		return true
	}
	return false
}

// Remaining returns the whole seconds left.
func (c *Countdown) Remaining() int {
	return c.remaining
}

// Total returns the configured length in seconds.
func (c *Countdown) Total() int {
	return c.total
}

// Running reports whether the countdown is ticking.
func (c *Countdown) Running() bool {
	return c.running
}

// Expired reports whether the countdown reached zero since the last Start.
func (c *Countdown) Expired() bool {
	return c.expired
}

// Format renders the remaining time as mm:ss.
func (c *Countdown) Format() string {
	return fmt.Sprintf("%02d:%02d", c.remaining/60, c.remaining%60)
}
