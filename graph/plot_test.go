package graph

import (
	"testing"

	"gioui.org/f32"
)

type testHost struct {
	active Interval
	queued int
}

func (h *testHost) Position(index int, value float64) f32.Point {
	return f32.Pt(float32(index*10), float32(value))
}

func (h *testHost) ActiveInterval() Interval {
	return h.active
}

func (h *testHost) AnimationQueued() {
	h.queued++
}

func newTestPlot(host *testHost, count int) *Plot {
	p := NewPlot("test", PlotLine)
	cfg := DefaultConfig()
	cfg.Animation = AnimationCustom
	cfg.CustomEasing = Linear
	cfg.AnimationDuration = 1
	p.attach(host, cfg)
	p.createPoints(count, 0)
	return p
}

func TestPlotSetPositions(t *testing.T) {
	host := &testHost{active: Interval{0, 3}}
	p := newTestPlot(host, 5)
	p.SetPositions([]int{0, 1, 2}, []float64{7, 8, 9})
	got := p.ActivePoints(nil)
	expected := []f32.Point{{X: 0, Y: 7}, {X: 10, Y: 8}, {X: 20, Y: 9}}
	if len(got) != len(expected) {
		t.Fatalf("expected %d points, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("point %d: expected %v, got %v", i, expected[i], got[i])
		}
	}
	if p.Point(4).Pt() != f32.Pt(40, 0) {
		t.Errorf("expected inactive point on the baseline, got %v", p.Point(4).Pt())
	}
}

func TestPlotAnimateStagger(t *testing.T) {
	host := &testHost{active: Interval{0, 2}}
	p := newTestPlot(host, 2)
	p.Animate([]int{0, 1}, []float64{100, 100}, 0.5)
	if host.queued != 1 {
		t.Errorf("expected host to be told once about new animations, got %d", host.queued)
	}
	p.Tick(0.5)
	if y := p.Point(0).Y; y != 50 {
		t.Errorf("expected first point halfway, got %v", y)
	}
	if y := p.Point(1).Y; y != 0 {
		t.Errorf("expected second point to still be waiting, got %v", y)
	}
	p.Tick(0.5)
	p.Tick(0.5)
	if p.Point(0).Y != 100 || p.Point(1).Y != 100 {
		t.Errorf("expected both points at 100, got %v and %v", p.Point(0).Y, p.Point(1).Y)
	}
	if p.Animating() {
		t.Errorf("expected no pending animations")
	}
}

func TestPlotAnimateReplaces(t *testing.T) {
	host := &testHost{}
	p := newTestPlot(host, 1)
	p.Animate([]int{0}, []float64{100}, 0)
	p.Tick(0.5)
	p.Animate([]int{0}, []float64{0}, 0)
	if n := len(p.inFlight); n != 1 {
		t.Errorf("expected a single in-flight animation, got %d", n)
	}
	p.FlushAnimations()
	if y := p.Point(0).Y; y != 0 {
		t.Errorf("expected the latest target to win, got %v", y)
	}
}

func TestPlotSetPositionsCancels(t *testing.T) {
	host := &testHost{}
	p := newTestPlot(host, 1)
	p.Animate([]int{0}, []float64{100}, 0)
	p.SetPositions([]int{0}, []float64{20})
	if p.Animating() {
		t.Errorf("expected the animation to be cancelled")
	}
	p.Tick(1)
	if y := p.Point(0).Y; y != 20 {
		t.Errorf("expected y=20, got %v", y)
	}
}

func TestPlotTeardownFlushes(t *testing.T) {
	host := &testHost{}
	p := newTestPlot(host, 3)
	p.Animate([]int{0, 1, 2}, []float64{1, 2, 3}, 1)
	p.teardown()
	if p.Animating() {
		t.Errorf("expected torn down plot to have no animations")
	}
	if p.Len() != 0 {
		t.Errorf("expected torn down plot to have no points, got %d", p.Len())
	}
}

func TestPlotResize(t *testing.T) {
	host := &testHost{}
	p := newTestPlot(host, 2)
	p.SetPositions([]int{0, 1}, []float64{5, 6})
	p.resize(4, 1)
	if p.Len() != 4 {
		t.Fatalf("expected 4 points, got %d", p.Len())
	}
	if p.Point(1).Y != 6 || p.Point(3).Pt() != f32.Pt(30, 1) {
		t.Errorf("expected kept points and new points on the baseline, got %v and %v", p.Point(1).Pt(), p.Point(3).Pt())
	}
	p.resize(1, 0)
	if p.Len() != 1 {
		t.Errorf("expected 1 point, got %d", p.Len())
	}
}
