package graph

import "time"

// MaxFrameStep bounds the time a single frame may advance animations, so
// that resuming after a stall does not jump animations forward.
const MaxFrameStep = 32 * time.Millisecond

// FrameClock converts frame timestamps into clamped frame deltas.
type FrameClock struct {
	last    time.Time
	running bool
}

// Step returns the time elapsed since the previous step, clamped to
// MaxFrameStep. The first step after construction or Pause returns zero.
func (c *FrameClock) Step(now time.Time) time.Duration {
	if !c.running {
		c.running = true
		c.last = now
		return 0
	}
	dt := now.Sub(c.last)
	c.last = now
	return clamp(dt, 0, MaxFrameStep)
}

// Pause stops the clock until the next Step.
func (c *FrameClock) Pause() {
	c.running = false
}

// Running reports whether the clock is between a Step and a Pause.
func (c *FrameClock) Running() bool {
	return c.running
}
