package graph

import "fmt"

// DefaultOverscan is the number of off-screen points kept active on each
// side of the viewport, so paths do not visibly end at its edges.
const DefaultOverscan = 2

// Interval is the half-open range [Lo,Hi) of data indices.
type Interval struct {
	Lo, Hi int
}

func (i Interval) String() string {
	return fmt.Sprintf("[%d,%d)", i.Lo, i.Hi)
}

// Len returns the number of indices in the interval.
func (i Interval) Len() int {
	return max(i.Hi-i.Lo, 0)
}

// Empty reports whether the interval contains no indices.
func (i Interval) Empty() bool {
	return i.Len() == 0
}

// Contains reports whether index lies within the interval.
func (i Interval) Contains(index int) bool {
	return index >= i.Lo && index < i.Hi
}

// Indices lists the interval's indices in ascending order.
func (i Interval) Indices() []int {
	out := make([]int, 0, i.Len())
	for index := i.Lo; index < i.Hi; index++ {
		out = append(out, index)
	}
	return out
}

// ActiveInterval returns the indices of the points that are visible, or
// within overscan points of being visible, when the viewport of the given
// width is scrolled to offset. It is empty when there are no points.
func ActiveInterval(offset, viewportWidth, spacing float32, totalPoints, overscan int) Interval {
	if totalPoints <= 0 || spacing <= 0 {
		return Interval{}
	}
	rawLo := int(floor(offset / spacing))
	rawHi := int(floor((offset + viewportWidth) / spacing))
	last := totalPoints - 1
	lo := clamp(rawLo-overscan, 0, last)
	hi := clamp(rawHi+overscan, 0, last)
	return Interval{Lo: lo, Hi: hi + 1}
}

// Activated returns the indices in curr that are not in prev.
func Activated(prev, curr Interval) []int {
	return difference(curr, prev)
}

// Deactivated returns the indices in prev that are not in curr.
func Deactivated(prev, curr Interval) []int {
	return difference(prev, curr)
}

func difference(a, b Interval) []int {
	var out []int
	for index := a.Lo; index < a.Hi; index++ {
		if !b.Contains(index) {
			out = append(out, index)
		}
	}
	return out
}
