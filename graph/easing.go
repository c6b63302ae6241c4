package graph

import (
	"fmt"
	"math"
	"strings"
)

// Easing maps linear animation progress in [0,1] onto eased progress.
// Easings must return 0 for 0 and 1 for 1, but may overshoot in between.
type Easing func(t float64) float64

// Linear performs no easing.
func Linear(t float64) float64 {
	return t
}

// EaseOutQuad decelerates towards the end of the animation.
func EaseOutQuad(t float64) float64 {
	return -t * (t - 2)
}

// EaseOutElastic overshoots the target and settles with a decaying
// oscillation.
func EaseOutElastic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	const period = 0.3
	return math.Pow(2, -10*t)*math.Sin((t-period/4)*(2*math.Pi)/period) + 1
}

// AnimationKind selects the easing used for point animations.
type AnimationKind uint8

const (
	AnimationEaseOut AnimationKind = iota
	AnimationElastic
	AnimationCustom
)

func (k AnimationKind) String() string {
	switch k {
	case AnimationEaseOut:
		return "ease-out"
	case AnimationElastic:
		return "elastic"
	case AnimationCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ParseAnimationKind parses the names produced by AnimationKind.String.
func ParseAnimationKind(s string) (AnimationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ease-out", "easeout":
		return AnimationEaseOut, nil
	case "elastic":
		return AnimationElastic, nil
	case "custom":
		return AnimationCustom, nil
	}
	return 0, fmt.Errorf("unknown animation kind %q", s)
}

// easing resolves the easing function for the kind. A custom kind without
// a custom function falls back to EaseOutQuad.
func (k AnimationKind) easing(custom Easing) Easing {
	switch k {
	case AnimationElastic:
		return EaseOutElastic
	case AnimationCustom:
		if custom != nil {
			return custom
		}
	}
	return EaseOutQuad
}
