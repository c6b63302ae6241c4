package graph

import "gioui.org/f32"

// GraphPoint is the screen position of one data point of a plot. Positions
// are in content coordinates: x grows with the data index and does not
// account for the scroll offset.
type GraphPoint struct {
	X, Y float32
}

// Pt returns the point as an f32.Point.
func (p GraphPoint) Pt() f32.Point {
	return f32.Pt(p.X, p.Y)
}

func (p *GraphPoint) set(to f32.Point) {
	p.X, p.Y = to.X, to.Y
}
