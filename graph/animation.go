package graph

import "gioui.org/f32"

// Animation interpolates a single GraphPoint from one position to another.
// Durations and delays are in seconds.
type Animation struct {
	from, to f32.Point
	point    *GraphPoint
	index    int
	easing   Easing
	duration float64
	delay    float64
	elapsed  float64
	finished bool
}

func newAnimation(point *GraphPoint, to f32.Point, easing Easing, duration, delay float64) *Animation {
	if easing == nil {
		easing = EaseOutQuad
	}
	return &Animation{
		from:     point.Pt(),
		to:       to,
		point:    point,
		easing:   easing,
		duration: duration,
		delay:    delay,
	}
}

// Finished reports whether the animation has applied its final position.
func (a *Animation) Finished() bool {
	return a.finished
}

// Update advances the animation by dt seconds. Calling it with dt == 0 does
// not move the point unless the animation has nothing left to wait for.
func (a *Animation) Update(dt float64) {
	if a.finished {
		return
	}
	if a.delay > 0 {
		a.delay -= dt
		if a.delay > 0 {
			return
		}
		// Carry the part of the step that exceeded the delay.
		dt = -a.delay
		a.delay = 0
	}
	a.elapsed += dt
	if a.elapsed >= a.duration {
		a.Finish()
		return
	}
	progress := float32(a.easing(a.elapsed / a.duration))
	a.point.set(a.from.Add(a.to.Sub(a.from).Mul(progress)))
}

// Finish applies the final position immediately.
func (a *Animation) Finish() {
	a.point.set(a.to)
	a.finished = true
}
