package graph

import (
	"math"

	"golang.org/x/exp/constraints"
)

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	return max(min(v, hi), lo)
}

func floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

// cleanZero turns a negative zero into a positive one.
func cleanZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
