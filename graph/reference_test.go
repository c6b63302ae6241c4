package graph

import (
	"slices"
	"testing"
)

func TestReferenceLines(t *testing.T) {
	r := DefaultReferenceLines()
	r.Units = "W"
	lines := r.Lines(testMapper())
	expected := []ReferenceLine{
		{Y: 10, Label: "100 W"},
		{Y: 90, Label: "0 W"},
		{Y: 74, Label: "20"},
		{Y: 58, Label: "40"},
		{Y: 42, Label: "60"},
		{Y: 26, Label: "80"},
	}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d: %v", len(expected), len(lines), lines)
	}
	for i := range expected {
		if lines[i].Label != expected[i].Label || abs32(lines[i].Y-expected[i].Y) > 1e-3 {
			t.Errorf("line %d: expected %v, got %v", i, expected[i], lines[i])
		}
	}
}

func TestReferenceLinesAbsolute(t *testing.T) {
	r := ReferenceLines{
		Positions:         AbsolutePositions,
		AbsolutePositions: []float64{25, 50},
		LabelIntermediate: true,
		DecimalPlaces:     1,
	}
	lines := r.Lines(testMapper())
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Y != 70 || lines[0].Label != "25.0" {
		t.Errorf("expected line at 70 labelled 25.0, got %v", lines[0])
	}
}

func TestReferenceFormat(t *testing.T) {
	type testcase struct {
		value    float64
		places   int
		grouping bool
		expected string
	}
	for _, tc := range []testcase{
		{value: 12345.678, places: 1, grouping: true, expected: "12,345.7"},
		{value: 12345.678, places: 0, expected: "12346"},
		{value: -0.0001, places: 2, expected: "0.00"},
		{value: 3, places: 0, expected: "3"},
	} {
		r := ReferenceLines{DecimalPlaces: tc.places, Grouping: tc.grouping}
		if got := r.format(tc.value, false); got != tc.expected {
			t.Errorf("expected %q, got %q", tc.expected, got)
		}
	}
}

func TestLabelGaps(t *testing.T) {
	r := ReferenceLines{Side: LabelBoth}
	gaps := r.LabelGaps(400, 30)
	expected := []Gap{{Start: 6, End: 44}, {Start: 356, End: 394}}
	if !slices.Equal(gaps, expected) {
		t.Errorf("expected %v, got %v", expected, gaps)
	}
	segments := SplitLine(0, 400, gaps)
	expectedSegments := []Segment{{0, 6}, {44, 356}, {394, 400}}
	if !slices.Equal(segments, expectedSegments) {
		t.Errorf("expected %v, got %v", expectedSegments, segments)
	}
}

func TestSplitLine(t *testing.T) {
	type testcase struct {
		name       string
		start, end float32
		gaps       []Gap
		expected   []Segment
	}
	for _, tc := range []testcase{
		{name: "no gaps", start: 0, end: 100, expected: []Segment{{0, 100}}},
		{name: "gap before start", start: 10, end: 100, gaps: []Gap{{0, 20}}, expected: []Segment{{20, 100}}},
		{name: "gap past end", start: 0, end: 100, gaps: []Gap{{90, 120}}, expected: []Segment{{0, 90}}},
		{name: "gap covers all", start: 0, end: 100, gaps: []Gap{{-5, 105}}, expected: []Segment{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitLine(tc.start, tc.end, tc.gaps)
			if !slices.Equal(got, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
