package frame

import "time"

// Clock is a monotonic elapsed-time counter sampled once per tick.
type Clock struct {
	now     func() time.Time
	start   time.Time
	last    time.Time
	elapsed time.Duration
	delta   time.Duration
	started bool
}

// NewClock returns a clock reading now, or time.Now when now is nil. The clock
// starts at its first Tick.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Tick samples the time source.
func (c *Clock) Tick() {
	t := c.now()
	if !c.started {
		c.start = t
		c.last = t
		c.started = true
	}
	c.delta = t.Sub(c.last)
	c.elapsed = t.Sub(c.start)
	c.last = t
}

// Elapsed is the time between the first and the latest Tick.
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// Delta is the time between the two latest Ticks.
func (c *Clock) Delta() time.Duration {
	return c.delta
}
