// Package render draws a graph.Controller's plots, reference lines and
// labels with Gio. It reads positions from the controller and never
// changes them.
package render

import (
	"image/color"

	"gioui.org/unit"
	"gioui.org/x/stroke"
)

// FillKind selects how the area below a line is filled.
type FillKind uint8

const (
	FillNone FillKind = iota
	FillSolid
	FillGradient
)

// Fill describes the area between a line and the zero line.
type Fill struct {
	Kind  FillKind
	Color color.NRGBA
	// GradientEnd is the colour at the zero line for FillGradient.
	GradientEnd color.NRGBA
}

// LineStyle describes a PlotLine.
type LineStyle struct {
	Color  color.NRGBA
	Width  unit.Dp
	Smooth bool
	// Curviness in [0,1] displaces the control points of smooth segments
	// horizontally by this fraction of the segment width.
	Curviness float32
	Cap       stroke.StrokeCap
	Join      stroke.StrokeJoin
	Fill      Fill
}

// BarStyle describes a PlotBar.
type BarStyle struct {
	Color        color.NRGBA
	Width        unit.Dp
	Rounded      bool
	OutlineColor color.NRGBA
	OutlineWidth unit.Dp
}

// DotShape is the marker drawn by a PlotDot.
type DotShape uint8

const (
	DotCircle DotShape = iota
	DotSquare
	DotTriangle
)

// DotStyle describes a PlotDot.
type DotStyle struct {
	Color color.NRGBA
	Size  unit.Dp
	Shape DotShape
}

// PlotStyle holds the style of every plot kind. Only the one matching the
// plot's kind is used.
type PlotStyle struct {
	Line LineStyle
	Bar  BarStyle
	Dot  DotStyle
	// LabelColor is the colour of the plot's value labels.
	LabelColor color.NRGBA
}

// DefaultPlotStyle returns a style using c for every kind.
func DefaultPlotStyle(c color.NRGBA) PlotStyle {
	fill := c
	fill.A = 0x80
	return PlotStyle{
		Line: LineStyle{
			Color:     c,
			Width:     2,
			Curviness: 0.5,
			Cap:       stroke.RoundCap,
			Join:      stroke.RoundJoin,
			Fill:      Fill{Color: fill, GradientEnd: color.NRGBA{R: c.R, G: c.G, B: c.B}},
		},
		Bar: BarStyle{
			Color:        c,
			Width:        20,
			OutlineColor: c,
		},
		Dot: DotStyle{
			Color: c,
			Size:  5,
		},
		LabelColor: c,
	}
}

// ReferenceStyle describes reference lines and their labels.
type ReferenceStyle struct {
	LineColor  color.NRGBA
	LineWidth  unit.Dp
	LabelColor color.NRGBA
	TextSize   unit.Sp
}

// DefaultReferenceStyle draws faint grey lines.
func DefaultReferenceStyle() ReferenceStyle {
	return ReferenceStyle{
		LineColor:  color.NRGBA{A: 0x40},
		LineWidth:  0.5,
		LabelColor: color.NRGBA{A: 0xc0},
		TextSize:   12,
	}
}
