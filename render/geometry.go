package render

import (
	"gioui.org/f32"
	"gioui.org/x/stroke"
)

// smoothControls returns the control points of a cubic segment from a to b
// that leaves and enters both points horizontally.
func smoothControls(a, b f32.Point, curviness float32) (f32.Point, f32.Point) {
	dx := (b.X - a.X) * curviness
	return f32.Pt(a.X+dx, a.Y), f32.Pt(b.X-dx, b.Y)
}

// lineSegments builds the stroke path through points.
func lineSegments(dst []stroke.Segment, points []f32.Point, smooth bool, curviness float32) []stroke.Segment {
	if len(points) == 0 {
		return dst
	}
	dst = append(dst, stroke.MoveTo(points[0]))
	for i := 1; i < len(points); i++ {
		if smooth {
			c0, c1 := smoothControls(points[i-1], points[i], curviness)
			dst = append(dst, stroke.CubeTo(c0, c1, points[i]))
		} else {
			dst = append(dst, stroke.LineTo(points[i]))
		}
	}
	return dst
}

// barBounds returns the rectangle of a bar of the given width centred on
// p's x and spanning from p down (or up) to zeroY.
func barBounds(p f32.Point, zeroY, width float32) (lo, hi f32.Point) {
	half := width / 2
	top, bottom := p.Y, zeroY
	if top > bottom {
		top, bottom = bottom, top
	}
	return f32.Pt(p.X-half, top), f32.Pt(p.X+half, bottom)
}

// dotPolygon returns the corners of a polygonal dot of the given size
// centred on c, in drawing order. Circles have no corners.
func dotPolygon(shape DotShape, c f32.Point, size float32) []f32.Point {
	half := size / 2
	switch shape {
	case DotSquare:
		return []f32.Point{
			{X: c.X - half, Y: c.Y - half},
			{X: c.X + half, Y: c.Y - half},
			{X: c.X + half, Y: c.Y + half},
			{X: c.X - half, Y: c.Y + half},
		}
	case DotTriangle:
		return []f32.Point{
			{X: c.X, Y: c.Y - half},
			{X: c.X + half, Y: c.Y + half},
			{X: c.X - half, Y: c.Y + half},
		}
	default:
		return nil
	}
}

// rectSegments outlines the rectangle from lo to hi.
func rectSegments(dst []stroke.Segment, lo, hi f32.Point) []stroke.Segment {
	return append(dst,
		stroke.MoveTo(lo),
		stroke.LineTo(f32.Pt(hi.X, lo.Y)),
		stroke.LineTo(hi),
		stroke.LineTo(f32.Pt(lo.X, hi.Y)),
		stroke.LineTo(lo),
	)
}
