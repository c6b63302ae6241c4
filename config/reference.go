package config

import (
	"fmt"

	"gioui.org/unit"

	"git.sr.ht/~whereswaldon/scroll-graph/graph"
	"git.sr.ht/~whereswaldon/scroll-graph/render"
)

type ReferenceConfig struct {
	Positions           string    `json:"positions"`
	RelativePositions   []float64 `json:"relative_positions,omitempty"`
	AbsolutePositions   []float64 `json:"absolute_positions,omitempty"`
	IncludeMinMax       bool      `json:"include_min_max"`
	Units               string    `json:"units,omitempty"`
	DecimalPlaces       int       `json:"decimal_places"`
	Grouping            bool      `json:"grouping"`
	LabelIntermediate   bool      `json:"label_intermediate"`
	UnitsOnIntermediate bool      `json:"units_on_intermediate"`
	Side                string    `json:"side"`
	LineColor           string    `json:"line_color,omitempty"`
	LineWidth           float32   `json:"line_width,omitempty"`
	LabelColor          string    `json:"label_color,omitempty"`
	TextSize            float32   `json:"text_size,omitempty"`
}

func DefaultReferenceConfig() ReferenceConfig {
	r := graph.DefaultReferenceLines()
	return ReferenceConfig{
		Positions:         "relative",
		RelativePositions: r.RelativePositions,
		IncludeMinMax:     r.IncludeMinMax,
		LabelIntermediate: r.LabelIntermediate,
		Side:              "left",
	}
}

// ToGraph converts the options into reference line settings and their
// style.
func (r ReferenceConfig) ToGraph() (graph.ReferenceLines, render.ReferenceStyle, error) {
	lines := graph.ReferenceLines{
		RelativePositions:   r.RelativePositions,
		AbsolutePositions:   r.AbsolutePositions,
		IncludeMinMax:       r.IncludeMinMax,
		Units:               r.Units,
		DecimalPlaces:       r.DecimalPlaces,
		Grouping:            r.Grouping,
		LabelIntermediate:   r.LabelIntermediate,
		UnitsOnIntermediate: r.UnitsOnIntermediate,
	}
	style := render.DefaultReferenceStyle()
	switch r.Positions {
	case "", "relative":
		lines.Positions = graph.RelativePositions
		for _, rel := range r.RelativePositions {
			if rel < 0 || rel > 1 {
				return lines, style, fmt.Errorf("relative reference position %v outside [0,1]", rel)
			}
		}
	case "absolute":
		lines.Positions = graph.AbsolutePositions
	default:
		return lines, style, fmt.Errorf("unknown reference positions %q", r.Positions)
	}
	switch r.Side {
	case "", "left":
		lines.Side = graph.LabelLeft
	case "right":
		lines.Side = graph.LabelRight
	case "both":
		lines.Side = graph.LabelBoth
	default:
		return lines, style, fmt.Errorf("unknown label side %q", r.Side)
	}
	if r.DecimalPlaces < 0 {
		return lines, style, fmt.Errorf("decimal_places must be >= 0")
	}
	var err error
	if style.LineColor, err = colorOr(r.LineColor, style.LineColor); err != nil {
		return lines, style, err
	}
	if style.LabelColor, err = colorOr(r.LabelColor, style.LabelColor); err != nil {
		return lines, style, err
	}
	if r.LineWidth > 0 {
		style.LineWidth = unit.Dp(r.LineWidth)
	}
	if r.TextSize > 0 {
		style.TextSize = unit.Sp(r.TextSize)
	}
	return lines, style, nil
}
