package graph

import "gioui.org/f32"

// Mapper converts between data (index, value) pairs and screen positions
// for a given range and viewport geometry.
type Mapper struct {
	Range   Range
	Spacing float32
	// LeftPadding is the x position of the first point.
	LeftPadding float32
	// TopMargin is the y position of Range.Max.
	TopMargin    float32
	BottomMargin float32
	// LabelRowHeight is reserved below the bottom margin for data point
	// labels.
	LabelRowHeight float32
	Height         float32
}

// UsableHeight is the height onto which the range is mapped.
func (m Mapper) UsableHeight() float32 {
	return m.Height - m.TopMargin - m.BottomMargin - m.LabelRowHeight
}

// X returns the x position of the point at index.
func (m Mapper) X(index int) float32 {
	return float32(index)*m.Spacing + m.LeftPadding
}

// Y returns the y position of value.
func (m Mapper) Y(value float64) float32 {
	y := ((value-m.Range.Max)/(m.Range.Min-m.Range.Max))*float64(m.UsableHeight()) + float64(m.TopMargin)
	return float32(cleanZero(y))
}

// Position returns the screen position of the point at index with value.
func (m Mapper) Position(index int, value float64) f32.Point {
	return f32.Pt(m.X(index), m.Y(value))
}

// Value is the inverse of Y: it returns the value drawn at y.
func (m Mapper) Value(y float32) float64 {
	v := (float64(y-m.TopMargin)/float64(m.UsableHeight()))*(m.Range.Min-m.Range.Max) + m.Range.Max
	return cleanZero(v)
}

// ZeroY returns the y position of the baseline that baseline-relative
// shapes such as bars are drawn from: the position of zero if the range
// contains it, otherwise the nearest range bound.
func (m Mapper) ZeroY() float32 {
	return m.Y(clamp(0, m.Range.Min, m.Range.Max))
}
