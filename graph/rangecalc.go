package graph

import "math"

// Range is the span of y values mapped onto the viewport's usable height.
type Range struct {
	Min, Max float64
}

// RangeOptions controls how raw value extents are turned into ranges.
type RangeOptions struct {
	// StartAtZero forces the minimum of every range to zero.
	StartAtZero bool
	// FallbackMin and FallbackMax are used when a window holds no values,
	// and FallbackMax also replaces a maximum that StartAtZero would make
	// degenerate.
	FallbackMin, FallbackMax float64
}

// Extent returns the minimum and maximum of the finite values. The boolean
// is false if there are none.
func Extent(values []float64) (Range, bool) {
	var r Range
	found := false
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !found {
			r = Range{Min: v, Max: v}
			found = true
			continue
		}
		r.Min = min(r.Min, v)
		r.Max = max(r.Max, v)
	}
	return r, found
}

// Clean widens degenerate ranges so that Min < Max always holds afterwards.
func (o RangeOptions) Clean(r Range) Range {
	if r.Min == r.Max {
		r.Max++
	}
	if o.StartAtZero {
		r.Min = 0
		// A window with no positive values would leave nothing above zero.
		if r.Max <= 0 {
			r.Max = o.FallbackMax
		}
	}
	return r
}

func (o RangeOptions) fallback() Range {
	return Range{Min: o.FallbackMin, Max: o.FallbackMax}
}

// ValueSource provides values of a plot by index.
type ValueSource interface {
	Value(plotID string, index int) float64
}

// WindowValues reads the values of plotID within window.
func WindowValues(src ValueSource, plotID string, window Interval) []float64 {
	values := make([]float64, 0, window.Len())
	for index := window.Lo; index < window.Hi; index++ {
		values = append(values, src.Value(plotID, index))
	}
	return values
}

// PlotRange computes the cleaned range of a single plot's values within
// window, or the fallback range when the window is empty.
func PlotRange(src ValueSource, plotID string, window Interval, opts RangeOptions) Range {
	r, ok := Extent(WindowValues(src, plotID, window))
	if !ok {
		return opts.fallback()
	}
	return opts.Clean(r)
}

// PlotsRange combines the ranges of several plots, taking the smallest
// minimum and the largest maximum.
func PlotsRange(src ValueSource, plotIDs []string, window Interval, opts RangeOptions) Range {
	if len(plotIDs) == 0 {
		return opts.fallback()
	}
	combined := PlotRange(src, plotIDs[0], window, opts)
	for _, id := range plotIDs[1:] {
		r := PlotRange(src, id, window, opts)
		combined.Min = min(combined.Min, r.Min)
		combined.Max = max(combined.Max, r.Max)
	}
	return combined
}
