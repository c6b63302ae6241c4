package config

import (
	"fmt"
	"image/color"

	"gioui.org/unit"

	"git.sr.ht/~whereswaldon/scroll-graph/graph"
	"git.sr.ht/~whereswaldon/scroll-graph/render"
)

// PlotConfig configures the plot of one series. Colours are "#rrggbb" or
// "#rrggbbaa" and default to the colour the chart assigns the series.
type PlotConfig struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	Color       string  `json:"color,omitempty"`
	ShowLabels  bool    `json:"show_labels"`
	LabelOffset float32 `json:"label_offset"`

	LineWidth        float32 `json:"line_width,omitempty"`
	Smooth           bool    `json:"smooth"`
	Curviness        float32 `json:"curviness,omitempty"`
	Fill             string  `json:"fill,omitempty"`
	FillColor        string  `json:"fill_color,omitempty"`
	GradientEndColor string  `json:"gradient_end_color,omitempty"`

	BarWidth     float32 `json:"bar_width,omitempty"`
	Rounded      bool    `json:"rounded"`
	OutlineColor string  `json:"outline_color,omitempty"`
	OutlineWidth float32 `json:"outline_width,omitempty"`

	DotShape string  `json:"dot_shape,omitempty"`
	DotSize  float32 `json:"dot_size,omitempty"`
}

// ToGraph builds the plot and its style, using fallback where no colour is
// configured.
func (p PlotConfig) ToGraph(fallback color.NRGBA) (*graph.Plot, render.PlotStyle, error) {
	kind, err := graph.ParsePlotKind(p.Kind)
	if err != nil {
		return nil, render.PlotStyle{}, err
	}
	base, err := colorOr(p.Color, fallback)
	if err != nil {
		return nil, render.PlotStyle{}, err
	}
	style := render.DefaultPlotStyle(base)

	if p.LineWidth > 0 {
		style.Line.Width = unit.Dp(p.LineWidth)
	}
	style.Line.Smooth = p.Smooth
	if p.Curviness > 0 {
		style.Line.Curviness = p.Curviness
	}
	switch p.Fill {
	case "", "none":
		style.Line.Fill.Kind = render.FillNone
	case "solid":
		style.Line.Fill.Kind = render.FillSolid
	case "gradient":
		style.Line.Fill.Kind = render.FillGradient
	default:
		return nil, render.PlotStyle{}, fmt.Errorf("unknown fill %q", p.Fill)
	}
	if style.Line.Fill.Color, err = colorOr(p.FillColor, style.Line.Fill.Color); err != nil {
		return nil, render.PlotStyle{}, err
	}
	if style.Line.Fill.GradientEnd, err = colorOr(p.GradientEndColor, style.Line.Fill.GradientEnd); err != nil {
		return nil, render.PlotStyle{}, err
	}

	if p.BarWidth > 0 {
		style.Bar.Width = unit.Dp(p.BarWidth)
	}
	style.Bar.Rounded = p.Rounded
	style.Bar.OutlineWidth = unit.Dp(p.OutlineWidth)
	if style.Bar.OutlineColor, err = colorOr(p.OutlineColor, style.Bar.OutlineColor); err != nil {
		return nil, render.PlotStyle{}, err
	}

	switch p.DotShape {
	case "", "circle":
		style.Dot.Shape = render.DotCircle
	case "square":
		style.Dot.Shape = render.DotSquare
	case "triangle":
		style.Dot.Shape = render.DotTriangle
	default:
		return nil, render.PlotStyle{}, fmt.Errorf("unknown dot shape %q", p.DotShape)
	}
	if p.DotSize > 0 {
		style.Dot.Size = unit.Dp(p.DotSize)
	}

	plot := graph.NewPlot(p.ID, kind)
	plot.ShowLabels = p.ShowLabels
	plot.LabelOffset = p.LabelOffset
	return plot, style, nil
}
