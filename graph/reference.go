package graph

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReferencePositions selects how reference line positions are interpreted.
type ReferencePositions uint8

const (
	// RelativePositions are fractions of the usable height, 0 at the
	// bottom and 1 at the top.
	RelativePositions ReferencePositions = iota
	// AbsolutePositions are y values.
	AbsolutePositions
)

// LabelSide selects on which side of the viewport reference line labels
// are drawn.
type LabelSide uint8

const (
	LabelLeft LabelSide = iota
	LabelRight
	LabelBoth
)

// Spacing around reference line labels.
const (
	referenceLabelMargin     = 4
	referenceLeftLabelInset  = 10
	referenceRightLabelInset = 10
)

// ReferenceLines describes the horizontal lines drawn across the viewport
// to indicate values.
type ReferenceLines struct {
	Positions         ReferencePositions
	RelativePositions []float64
	AbsolutePositions []float64
	// IncludeMinMax adds labelled lines at the top and bottom of the range.
	IncludeMinMax bool
	Units         string
	DecimalPlaces int
	// Grouping separates thousands in labels.
	Grouping bool
	// LabelIntermediate labels the lines other than the min/max lines.
	LabelIntermediate bool
	// UnitsOnIntermediate appends Units to intermediate labels.
	UnitsOnIntermediate bool
	Side                LabelSide
}

// DefaultReferenceLines returns reference lines at every fifth of the
// usable height.
func DefaultReferenceLines() ReferenceLines {
	return ReferenceLines{
		Positions:         RelativePositions,
		RelativePositions: []float64{0, 0.2, 0.4, 0.6, 0.8, 1},
		IncludeMinMax:     true,
		LabelIntermediate: true,
		Side:              LabelLeft,
	}
}

// ReferenceLine is a single horizontal line at viewport height Y. Lines
// without a label have an empty Label.
type ReferenceLine struct {
	Y     float32
	Label string
}

// Lines computes the reference lines for the mapper's range and geometry.
func (r ReferenceLines) Lines(m Mapper) []ReferenceLine {
	var lines []ReferenceLine
	if r.IncludeMinMax {
		lines = append(lines,
			ReferenceLine{Y: m.TopMargin, Label: r.format(m.Range.Max, true)},
			ReferenceLine{Y: m.TopMargin + m.UsableHeight(), Label: r.format(m.Range.Min, true)},
		)
	}
	switch r.Positions {
	case RelativePositions:
		for _, rel := range r.RelativePositions {
			if r.IncludeMinMax && (rel == 0 || rel == 1) {
				continue
			}
			y := m.TopMargin + m.UsableHeight()*float32(1-rel)
			lines = append(lines, r.intermediate(m, y))
		}
	case AbsolutePositions:
		for _, v := range r.AbsolutePositions {
			lines = append(lines, r.intermediate(m, m.Y(v)))
		}
	}
	return lines
}

func (r ReferenceLines) intermediate(m Mapper, y float32) ReferenceLine {
	line := ReferenceLine{Y: y}
	if r.LabelIntermediate {
		line.Label = r.format(m.Value(y), r.UnitsOnIntermediate)
	}
	return line
}

var groupingPrinter = message.NewPrinter(language.English)

func (r ReferenceLines) format(v float64, units bool) string {
	v = cleanZero(v)
	var s string
	if r.Grouping {
		s = groupingPrinter.Sprintf("%."+strconv.Itoa(r.DecimalPlaces)+"f", v)
	} else {
		s = strconv.FormatFloat(v, 'f', r.DecimalPlaces, 64)
	}
	// Rounding may produce a negative zero such as "-0.00".
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == 0 && len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}
	if units && r.Units != "" {
		s += " " + r.Units
	}
	return s
}

// Gap is a horizontal span [Start,End) left out of a reference line.
type Gap struct {
	Start, End float32
}

// Segment is a horizontal span of a reference line that is drawn.
type Segment struct {
	Start, End float32
}

// LabelGaps returns the gaps cut out of a reference line of the given
// width for a label of labelWidth on the configured sides, in left to
// right order.
func (r ReferenceLines) LabelGaps(width, labelWidth float32) []Gap {
	left := Gap{
		Start: referenceLeftLabelInset - referenceLabelMargin,
		End:   referenceLeftLabelInset + labelWidth + referenceLabelMargin,
	}
	right := Gap{
		Start: width - referenceRightLabelInset - labelWidth - referenceLabelMargin,
		End:   width - referenceRightLabelInset + referenceLabelMargin,
	}
	switch r.Side {
	case LabelRight:
		return []Gap{right}
	case LabelBoth:
		return []Gap{left, right}
	default:
		return []Gap{left}
	}
}

// LabelX returns the x position of the left edge of each label of
// labelWidth, matching the order of LabelGaps.
func (r ReferenceLines) LabelX(width, labelWidth float32) []float32 {
	left := float32(referenceLeftLabelInset)
	right := width - referenceRightLabelInset - labelWidth
	switch r.Side {
	case LabelRight:
		return []float32{right}
	case LabelBoth:
		return []float32{left, right}
	default:
		return []float32{left}
	}
}

// SplitLine returns the parts of the span [start,end) that remain after
// removing gaps, which must be sorted and non-overlapping.
func SplitLine(start, end float32, gaps []Gap) []Segment {
	segments := make([]Segment, 0, len(gaps)+1)
	cursor := start
	for _, g := range gaps {
		if g.Start > cursor {
			segments = append(segments, Segment{Start: cursor, End: min(g.Start, end)})
		}
		cursor = max(cursor, g.End)
		if cursor >= end {
			return segments
		}
	}
	segments = append(segments, Segment{Start: cursor, End: end})
	return segments
}
