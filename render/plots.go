package render

import (
	"image"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/x/stroke"
)

func (g *Graph) layoutLinePlot(gtx layout.Context, points []f32.Point, zeroY float32, style LineStyle) {
	if len(points) == 0 {
		return
	}
	if style.Fill.Kind != FillNone {
		g.fillLine(gtx, points, zeroY, style)
	}
	if len(points) < 2 {
		return
	}
	g.segments = lineSegments(g.segments[:0], points, style.Smooth, style.Curviness)
	paint.FillShape(gtx.Ops, style.Color, stroke.Stroke{
		Path:  stroke.Path{Segments: g.segments},
		Width: float32(gtx.Dp(style.Width)),
		Cap:   style.Cap,
		Join:  style.Join,
	}.Op(gtx.Ops))
}

// fillLine paints the area enclosed by the line and the zero line.
func (g *Graph) fillLine(gtx layout.Context, points []f32.Point, zeroY float32, style LineStyle) {
	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(f32.Pt(points[0].X, zeroY))
	p.LineTo(points[0])
	for i := 1; i < len(points); i++ {
		if style.Smooth {
			c0, c1 := smoothControls(points[i-1], points[i], style.Curviness)
			p.CubeTo(c0, c1, points[i])
		} else {
			p.LineTo(points[i])
		}
	}
	p.LineTo(f32.Pt(points[len(points)-1].X, zeroY))
	p.Close()

	stack := clip.Outline{Path: p.End()}.Op().Push(gtx.Ops)
	defer stack.Pop()
	switch style.Fill.Kind {
	case FillSolid:
		paint.ColorOp{Color: style.Fill.Color}.Add(gtx.Ops)
	case FillGradient:
		top := points[0].Y
		for _, pt := range points[1:] {
			top = min(top, pt.Y)
		}
		paint.LinearGradientOp{
			Stop1:  f32.Pt(0, top),
			Color1: style.Fill.Color,
			Stop2:  f32.Pt(0, zeroY),
			Color2: style.Fill.GradientEnd,
		}.Add(gtx.Ops)
	}
	paint.PaintOp{}.Add(gtx.Ops)
}

func (g *Graph) layoutBarPlot(gtx layout.Context, points []f32.Point, zeroY float32, style BarStyle) {
	width := float32(gtx.Dp(style.Width))
	outline := float32(gtx.Dp(style.OutlineWidth))
	for _, pt := range points {
		lo, hi := barBounds(pt, zeroY, width)
		r := image.Rect(int(lo.X), int(lo.Y), int(hi.X+0.5), int(hi.Y+0.5))
		if style.Rounded {
			radius := min(r.Dx(), r.Dy()) / 2
			paint.FillShape(gtx.Ops, style.Color, clip.UniformRRect(r, radius).Op(gtx.Ops))
		} else {
			paint.FillShape(gtx.Ops, style.Color, clip.Rect(r).Op())
		}
		if outline > 0 {
			g.segments = rectSegments(g.segments[:0], lo, hi)
			paint.FillShape(gtx.Ops, style.OutlineColor, stroke.Stroke{
				Path:  stroke.Path{Segments: g.segments},
				Width: outline,
				Cap:   stroke.SquareCap,
				Join:  stroke.BevelJoin,
			}.Op(gtx.Ops))
		}
	}
}

func (g *Graph) layoutDotPlot(gtx layout.Context, points []f32.Point, style DotStyle) {
	size := float32(gtx.Dp(style.Size))
	for _, pt := range points {
		corners := dotPolygon(style.Shape, pt, size)
		if corners == nil {
			half := size / 2
			r := image.Rect(int(pt.X-half), int(pt.Y-half), int(pt.X+half+0.5), int(pt.Y+half+0.5))
			paint.FillShape(gtx.Ops, style.Color, clip.Ellipse(r).Op(gtx.Ops))
			continue
		}
		var p clip.Path
		p.Begin(gtx.Ops)
		p.MoveTo(corners[0])
		for _, c := range corners[1:] {
			p.LineTo(c)
		}
		p.Close()
		paint.FillShape(gtx.Ops, style.Color, clip.Outline{Path: p.End()}.Op())
	}
}

// rec records w and returns its dimensions with the recorded call.
func rec(gtx layout.Context, w layout.Widget) (layout.Dimensions, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}
