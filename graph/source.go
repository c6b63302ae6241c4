package graph

import (
	"gioui.org/f32"
	"gioui.org/x/richtext"
)

// DataSource provides the data a Controller displays. Values are requested
// lazily for the indices inside the active window only.
type DataSource interface {
	ValueSource
	// NumberOfPoints is the number of points of every plot. It must not
	// change between a reload and the next.
	NumberOfPoints() int
	// Label is the text of the data point label at index.
	Label(index int) string
}

// RichLabeler may be implemented by a DataSource to provide styled data
// point labels. When ok is false the plain Label is used.
type RichLabeler interface {
	RichLabel(index int) (spans []richtext.SpanStyle, ok bool)
}

// PlotLabeler may be implemented by a DataSource to label individual points
// of plots with ShowLabels set. When ok is false the point has no label.
type PlotLabeler interface {
	PlotLabel(plotID string, index int) (text string, ok bool)
}

// DataLabel is a pooled label handle. Anchor is the top centre of the label
// for data point labels and the bottom centre for plot labels, in content
// coordinates.
type DataLabel struct {
	Index  int
	Text   string
	Rich   []richtext.SpanStyle
	Anchor f32.Point
}

func newDataLabel() *DataLabel {
	return &DataLabel{Index: -1}
}
