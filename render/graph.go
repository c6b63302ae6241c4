package render

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/richtext"
	"gioui.org/x/stroke"

	"git.sr.ht/~whereswaldon/scroll-graph/graph"
)

// Graph draws a controller's current state.
type Graph struct {
	Theme      *material.Theme
	Background color.NRGBA
	// Styles maps plot IDs to their styles. Plots without an entry use
	// DefaultPlotStyle with the theme's contrast background.
	Styles    map[string]PlotStyle
	Reference ReferenceStyle
	// LabelColor and LabelSize apply to data point labels.
	LabelColor color.NRGBA
	LabelSize  unit.Sp

	// points and segments are scratch slices reused by every plot.
	points   []f32.Point
	segments []stroke.Segment
	rich     map[*graph.DataLabel]*richtext.InteractiveText
}

// NewGraph returns a Graph drawing with th.
func NewGraph(th *material.Theme) *Graph {
	return &Graph{
		Theme:      th,
		Styles:     make(map[string]PlotStyle),
		Reference:  DefaultReferenceStyle(),
		LabelColor: th.Fg,
		LabelSize:  12,
		rich:       make(map[*graph.DataLabel]*richtext.InteractiveText),
	}
}

// Style returns the style used for p.
func (g *Graph) Style(p *graph.Plot) PlotStyle {
	if s, ok := g.Styles[p.ID()]; ok {
		return s
	}
	return DefaultPlotStyle(g.Theme.ContrastBg)
}

// Layout draws c into the maximum constraints. Reference lines stay in
// place while the plots and labels move with the scroll offset.
func (g *Graph) Layout(gtx layout.Context, c *graph.Controller) layout.Dimensions {
	size := gtx.Constraints.Max
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	if g.Background.A > 0 {
		paint.Fill(gtx.Ops, g.Background)
	}
	if c.State() != graph.StateReady {
		return layout.Dimensions{Size: size}
	}
	g.layoutReferenceLines(gtx, c)

	content := op.Affine(f32.Affine2D{}.Offset(f32.Pt(-c.Offset(), 0))).Push(gtx.Ops)
	zeroY := c.ZeroY()
	for _, p := range c.Plots() {
		g.points = p.ActivePoints(g.points[:0])
		style := g.Style(p)
		switch p.Kind() {
		case graph.PlotLine:
			g.layoutLinePlot(gtx, g.points, zeroY, style.Line)
		case graph.PlotBar:
			g.layoutBarPlot(gtx, g.points, zeroY, style.Bar)
		case graph.PlotDot:
			g.layoutDotPlot(gtx, g.points, style.Dot)
		}
	}
	for _, p := range c.Plots() {
		if p.ShowLabels {
			g.layoutPlotLabels(gtx, c.PlotLabels(p.ID()), g.Style(p).LabelColor)
		}
	}
	g.layoutDataLabels(gtx, c.DataLabels())
	content.Pop()
	return layout.Dimensions{Size: size}
}

func (g *Graph) layoutReferenceLines(gtx layout.Context, c *graph.Controller) {
	settings := c.ReferenceSettings()
	lines := c.ReferenceLines()
	if settings == nil || len(lines) == 0 {
		return
	}
	width := float32(gtx.Constraints.Max.X)
	lineWidth := float32(gtx.Dp(g.Reference.LineWidth))
	labelGtx := gtx
	labelGtx.Constraints.Min = image.Point{}

	g.segments = g.segments[:0]
	for _, line := range lines {
		if line.Label == "" {
			g.segments = append(g.segments,
				stroke.MoveTo(f32.Pt(0, line.Y)),
				stroke.LineTo(f32.Pt(width, line.Y)),
			)
			continue
		}
		label := material.Label(g.Theme, g.Reference.TextSize, line.Label)
		label.Color = g.Reference.LabelColor
		label.MaxLines = 1
		dims, call := rec(labelGtx, label.Layout)
		labelWidth := float32(dims.Size.X)
		for _, s := range graph.SplitLine(0, width, settings.LabelGaps(width, labelWidth)) {
			g.segments = append(g.segments,
				stroke.MoveTo(f32.Pt(s.Start, line.Y)),
				stroke.LineTo(f32.Pt(s.End, line.Y)),
			)
		}
		for _, x := range settings.LabelX(width, labelWidth) {
			stack := op.Offset(image.Pt(int(x), int(line.Y)-dims.Size.Y/2)).Push(gtx.Ops)
			call.Add(gtx.Ops)
			stack.Pop()
		}
	}
	paint.FillShape(gtx.Ops, g.Reference.LineColor, stroke.Stroke{
		Path:  stroke.Path{Segments: g.segments},
		Width: lineWidth,
		Cap:   stroke.FlatCap,
	}.Op(gtx.Ops))
}

// layoutDataLabels centres each label horizontally on its anchor, below
// it.
func (g *Graph) layoutDataLabels(gtx layout.Context, labels []*graph.DataLabel) {
	gtx.Constraints.Min = image.Point{}
	for _, l := range labels {
		var w layout.Widget
		if l.Rich != nil {
			state, ok := g.rich[l]
			if !ok {
				state = new(richtext.InteractiveText)
				g.rich[l] = state
			}
			w = richtext.Text(state, g.Theme.Shaper, l.Rich...).Layout
		} else {
			label := material.Label(g.Theme, g.LabelSize, l.Text)
			label.Color = g.LabelColor
			label.MaxLines = 1
			w = label.Layout
		}
		dims, call := rec(gtx, w)
		stack := op.Offset(image.Pt(int(l.Anchor.X)-dims.Size.X/2, int(l.Anchor.Y))).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
}

// layoutPlotLabels centres each label horizontally on its anchor, above
// it.
func (g *Graph) layoutPlotLabels(gtx layout.Context, labels []*graph.DataLabel, col color.NRGBA) {
	gtx.Constraints.Min = image.Point{}
	for _, l := range labels {
		label := material.Label(g.Theme, g.LabelSize, l.Text)
		label.Color = col
		label.MaxLines = 1
		dims, call := rec(gtx, label.Layout)
		stack := op.Offset(image.Pt(int(l.Anchor.X)-dims.Size.X/2, int(l.Anchor.Y)-dims.Size.Y)).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
}
