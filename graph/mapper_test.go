package graph

import (
	"math"
	"testing"
)

func testMapper() Mapper {
	return Mapper{
		Range:        Range{0, 100},
		Spacing:      40,
		LeftPadding:  50,
		TopMargin:    10,
		BottomMargin: 10,
		Height:       100,
	}
}

func TestMapperPosition(t *testing.T) {
	m := testMapper()
	type testcase struct {
		index int
		value float64
		x, y  float32
	}
	for _, tc := range []testcase{
		{index: 0, value: 0, x: 50, y: 90},
		{index: 0, value: 100, x: 50, y: 10},
		{index: 3, value: 50, x: 170, y: 50},
		{index: 1, value: 25, x: 90, y: 70},
	} {
		p := m.Position(tc.index, tc.value)
		if p.X != tc.x || p.Y != tc.y {
			t.Errorf("(%d,%v): expected (%v,%v), got (%v,%v)", tc.index, tc.value, tc.x, tc.y, p.X, p.Y)
		}
	}
}

func TestMapperRoundTrip(t *testing.T) {
	m := testMapper()
	y := m.Position(0, 0).Y
	v := m.Value(y)
	if v != 0 || math.Signbit(v) {
		t.Errorf("expected positive zero, got %v (signbit %v)", v, math.Signbit(v))
	}
	for _, value := range []float64{-20, 0, 12.5, 33, 100, 150} {
		got := m.Value(m.Y(value))
		if math.Abs(got-value) > 1e-3 {
			t.Errorf("expected %v to round trip, got %v", value, got)
		}
	}
}

func TestMapperLabelRow(t *testing.T) {
	m := testMapper()
	m.LabelRowHeight = 20
	if got := m.UsableHeight(); got != 60 {
		t.Errorf("expected usable height 60, got %v", got)
	}
	if got := m.Y(0); got != 70 {
		t.Errorf("expected range min at 70, got %v", got)
	}
}

func TestMapperZeroY(t *testing.T) {
	m := testMapper()
	type testcase struct {
		rng      Range
		expected float32
	}
	for _, tc := range []testcase{
		{rng: Range{0, 100}, expected: 90},
		{rng: Range{-100, 100}, expected: 50},
		{rng: Range{20, 100}, expected: 90},
		{rng: Range{-100, -20}, expected: 10},
	} {
		m.Range = tc.rng
		if got := m.ZeroY(); got != tc.expected {
			t.Errorf("range %v: expected zero y %v, got %v", tc.rng, tc.expected, got)
		}
	}
}
