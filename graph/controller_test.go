package graph

import (
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"
)

type testSource struct {
	values map[string][]float64
	count  int
	// queried records the index of every Value call.
	queried []int
}

func (s *testSource) Value(plotID string, index int) float64 {
	s.queried = append(s.queried, index)
	return s.values[plotID][index]
}

func (s *testSource) NumberOfPoints() int {
	return s.count
}

func (s *testSource) Label(index int) string {
	return strconv.Itoa(index)
}

func (s *testSource) PlotLabel(plotID string, index int) (string, bool) {
	if index%3 != 0 {
		return "", false
	}
	return strconv.FormatFloat(s.values[plotID][index], 'f', 0, 64), true
}

func rampSource(plotID string, n int) *testSource {
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i)
	}
	return &testSource{values: map[string][]float64{plotID: values}, count: n}
}

func staticConfig() Config {
	cfg := DefaultConfig()
	cfg.AdaptRange = true
	cfg.AnimateOnAdapt = false
	cfg.AnimateOnStartup = false
	return cfg
}

func newReadyController(t *testing.T, src *testSource, cfg Config, plots ...*Plot) *Controller {
	t.Helper()
	c, err := NewController(src, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range plots {
		c.Handle(PlotAdded{Plot: p})
	}
	c.Handle(ResizeChanged{Width: 320, Height: 100})
	if c.State() != StateReady {
		t.Fatalf("expected ready controller, got %v", c.State())
	}
	return c
}

func TestControllerSetup(t *testing.T) {
	src := rampSource("a", 29)
	c, err := NewController(src, staticConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := NewPlot("a", PlotLine)
	c.Handle(PlotAdded{Plot: p})
	if c.State() != StateUninitialized {
		t.Errorf("expected uninitialized controller before sizing, got %v", c.State())
	}
	if p.Len() != 0 {
		t.Errorf("expected queued plot to have no points, got %d", p.Len())
	}
	c.Handle(ResizeChanged{Width: 320, Height: 100})
	if c.State() != StateReady {
		t.Fatalf("expected ready controller, got %v", c.State())
	}
	if got := c.ActiveInterval(); got != (Interval{0, 11}) {
		t.Errorf("expected active interval [0,11), got %v", got)
	}
	if got := c.Range(); got != (Range{0, 10}) {
		t.Errorf("expected range (0,10), got %v", got)
	}
	if p.Len() != 29 {
		t.Errorf("expected 29 points, got %d", p.Len())
	}
	if got := p.Point(10).Pt(); got.X != 450 || got.Y != 10 {
		t.Errorf("expected point 10 at (450,10), got %v", got)
	}
	if got := p.Point(0).Pt(); got.X != 50 || got.Y != 90 {
		t.Errorf("expected point 0 at (50,90), got %v", got)
	}
	if !c.TakeStale() {
		t.Errorf("expected setup to mark the graph stale")
	}
	if c.TakeStale() {
		t.Errorf("expected stale flag to be cleared")
	}
}

func TestControllerWaitsForData(t *testing.T) {
	src := &testSource{values: map[string][]float64{"a": nil}}
	c, err := NewController(src, staticConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Handle(PlotAdded{Plot: NewPlot("a", PlotLine)})
	c.Handle(ResizeChanged{Width: 320, Height: 100})
	if c.State() != StateUninitialized {
		t.Errorf("expected controller without data to wait, got %v", c.State())
	}
	src.values["a"] = []float64{1, 2, 3}
	src.count = 3
	c.Handle(DataReloaded{})
	if c.State() != StateReady {
		t.Errorf("expected controller to set up once data arrives, got %v", c.State())
	}
}

func TestControllerScroll(t *testing.T) {
	src := rampSource("a", 29)
	p := NewPlot("a", PlotLine)
	c := newReadyController(t, src, staticConfig(), p)
	c.TakeStale()

	c.Handle(ScrollChanged{Offset: 400})
	if got := c.ActiveInterval(); got != (Interval{8, 21}) {
		t.Errorf("expected active interval [8,21), got %v", got)
	}
	if got := c.PreviousInterval(); got != (Interval{0, 11}) {
		t.Errorf("expected previous interval [0,11), got %v", got)
	}
	if got := c.Range(); got != (Range{8, 20}) {
		t.Errorf("expected range (8,20), got %v", got)
	}
	if got := p.Point(20).Y; got != 10 {
		t.Errorf("expected newly active point 20 at the top, got %v", got)
	}
	if got := p.Point(8).Y; got != 90 {
		t.Errorf("expected point 8 at the bottom, got %v", got)
	}
	if !c.TakeStale() {
		t.Errorf("expected scrolling to mark the graph stale")
	}

	c.Handle(ScrollChanged{Offset: 401})
	if got := c.ActiveInterval(); got != (Interval{8, 21}) {
		t.Errorf("expected unchanged active interval, got %v", got)
	}
	if !c.TakeStale() {
		t.Errorf("expected any scroll to mark the graph stale")
	}
}

func TestControllerQueriesActiveWindow(t *testing.T) {
	src := rampSource("a", 200)
	c := newReadyController(t, src, staticConfig(), NewPlot("a", PlotLine))
	inWindow := func(stage string) {
		t.Helper()
		active := c.ActiveInterval()
		for _, index := range src.queried {
			if !active.Contains(index) {
				t.Errorf("%s: expected queries within %v, got index %d", stage, active, index)
			}
		}
	}
	if len(src.queried) == 0 {
		t.Errorf("expected setup to read values")
	}
	inWindow("setup")

	src.queried = nil
	c.Handle(ScrollChanged{Offset: 400})
	if len(src.queried) == 0 {
		t.Errorf("expected a new window to read values")
	}
	inWindow("scroll")

	src.queried = nil
	c.Handle(ScrollChanged{Offset: 401})
	c.Handle(ScrollChanged{Offset: 405})
	if len(src.queried) != 0 {
		t.Errorf("expected no reads within the same window, got %d", len(src.queried))
	}
}

func TestControllerFixedRange(t *testing.T) {
	src := rampSource("a", 29)
	cfg := staticConfig()
	cfg.AdaptRange = false
	c := newReadyController(t, src, cfg, NewPlot("a", PlotLine))
	c.Handle(ScrollChanged{Offset: 400})
	if got := c.Range(); got != (Range{0, 100}) {
		t.Errorf("expected fixed range (0,100), got %v", got)
	}
}

func TestControllerStartupAnimation(t *testing.T) {
	src := rampSource("a", 29)
	cfg := staticConfig()
	cfg.AnimateOnStartup = true
	invalidated := 0
	c, err := NewController(src, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.SetInvalidator(func() { invalidated++ })
	p := NewPlot("a", PlotLine)
	c.Handle(PlotAdded{Plot: p})
	c.Handle(ResizeChanged{Width: 320, Height: 100})

	if !c.Animating() {
		t.Fatalf("expected startup animation")
	}
	if invalidated == 0 {
		t.Errorf("expected the controller to request a frame")
	}
	if got := p.Point(10).Y; got != 90 {
		t.Errorf("expected point 10 to start on the baseline, got %v", got)
	}
	now := time.Unix(0, 0)
	for frames := 0; c.Animating(); frames++ {
		if frames > 10000 {
			t.Fatalf("animation did not finish")
		}
		c.Frame(now)
		now = now.Add(16 * time.Millisecond)
	}
	if got := p.Point(10).Y; got != 10 {
		t.Errorf("expected point 10 to end at the top, got %v", got)
	}
}

func TestControllerAnimatedAdapt(t *testing.T) {
	src := rampSource("a", 29)
	cfg := staticConfig()
	cfg.AnimateOnAdapt = true
	p := NewPlot("a", PlotLine)
	c := newReadyController(t, src, cfg, p)
	c.Handle(ScrollChanged{Offset: 400})
	if !c.Animating() {
		t.Fatalf("expected range change to animate")
	}
	c.StopAnimations()
	if c.Animating() {
		t.Errorf("expected flushed animations")
	}
	if got := p.Point(8).Y; got != 90 {
		t.Errorf("expected flushed point 8 at the bottom, got %v", got)
	}
}

func TestControllerDataLabels(t *testing.T) {
	src := rampSource("a", 29)
	cfg := staticConfig()
	cfg.ShowDataPointLabels = true
	cfg.LabelSparsity = 2
	c := newReadyController(t, src, cfg, NewPlot("a", PlotLine))

	indices := func() []int {
		var out []int
		for _, l := range c.DataLabels() {
			out = append(out, l.Index)
		}
		slices.Sort(out)
		return out
	}
	if got, expected := indices(), []int{0, 2, 4, 6, 8, 10}; !slices.Equal(got, expected) {
		t.Errorf("expected labels %v, got %v", expected, got)
	}
	m := c.Mapper()
	for _, l := range c.DataLabels() {
		if l.Text != strconv.Itoa(l.Index) {
			t.Errorf("expected label text %q, got %q", strconv.Itoa(l.Index), l.Text)
		}
		if l.Anchor.Y != m.Y(c.Range().Min)+cfg.DataPointLabelTopMargin {
			t.Errorf("expected label below the graph, got y=%v", l.Anchor.Y)
		}
	}
	for offset := float32(0); offset <= c.MaxOffset(); offset += 17 {
		c.Handle(ScrollChanged{Offset: offset})
	}
	c.Handle(ScrollChanged{Offset: 400})
	if got, expected := indices(), []int{8, 10, 12, 14, 16, 18, 20}; !slices.Equal(got, expected) {
		t.Errorf("expected labels %v, got %v", expected, got)
	}
	if n := c.labels.Len(); n > 8 {
		t.Errorf("expected labels to be reused, got %d allocated", n)
	}
}

func TestControllerPlotLabels(t *testing.T) {
	src := rampSource("a", 29)
	p := NewPlot("a", PlotDot)
	p.ShowLabels = true
	p.LabelOffset = -5
	c := newReadyController(t, src, staticConfig(), p)
	labels := c.PlotLabels("a")
	if len(labels) != 4 {
		t.Fatalf("expected labels for 0, 3, 6 and 9, got %d", len(labels))
	}
	for _, l := range labels {
		at := c.Position(l.Index, float64(l.Index))
		if l.Anchor.X != at.X || l.Anchor.Y != at.Y-5 {
			t.Errorf("expected label %d at %v, got %v", l.Index, at, l.Anchor)
		}
	}
}

func TestControllerDuplicatePlot(t *testing.T) {
	src := rampSource("a", 29)
	c := newReadyController(t, src, staticConfig(), NewPlot("a", PlotLine))
	defer func() {
		if recover() == nil {
			t.Errorf("expected duplicate plot to panic")
		}
	}()
	c.Handle(PlotAdded{Plot: NewPlot("a", PlotBar)})
}

func TestControllerPlotAddRemove(t *testing.T) {
	src := rampSource("a", 29)
	src.values["b"] = make([]float64, 29)
	for i := range src.values["b"] {
		src.values["b"][i] = -float64(i)
	}
	c := newReadyController(t, src, staticConfig(), NewPlot("a", PlotLine))
	b := NewPlot("b", PlotBar)
	c.Handle(PlotAdded{Plot: b})
	if got := c.Range(); got != (Range{-10, 10}) {
		t.Errorf("expected combined range (-10,10), got %v", got)
	}
	if got := c.ZeroY(); got != 50 {
		t.Errorf("expected zero line at 50, got %v", got)
	}
	if b.Len() != 29 {
		t.Errorf("expected added plot to have 29 points, got %d", b.Len())
	}
	c.Handle(PlotRemoved{ID: "a"})
	if got := c.Range(); got != (Range{-10, 0}) {
		t.Errorf("expected range (-10,0), got %v", got)
	}
	if len(c.Plots()) != 1 {
		t.Errorf("expected 1 plot, got %d", len(c.Plots()))
	}
	c.Handle(PlotRemoved{ID: "b"})
	if got := c.Range(); got != (Range{0, 100}) {
		t.Errorf("expected fallback range without plots, got %v", got)
	}
}

func TestControllerReload(t *testing.T) {
	src := rampSource("a", 29)
	p := NewPlot("a", PlotLine)
	c := newReadyController(t, src, staticConfig(), p)
	c.Handle(ScrollChanged{Offset: 400})

	for i := range src.values["a"] {
		src.values["a"][i] *= 2
	}
	c.Handle(DataReloaded{})
	if got := c.ActiveInterval(); got != (Interval{8, 21}) {
		t.Errorf("expected reload to keep the window, got %v", got)
	}
	if got := c.Range(); got != (Range{16, 40}) {
		t.Errorf("expected range (16,40), got %v", got)
	}

	src.values["a"] = src.values["a"][:5]
	src.count = 5
	c.Handle(DataReloaded{})
	if p.Len() != 5 {
		t.Errorf("expected 5 points, got %d", p.Len())
	}
	if c.Offset() != 0 {
		t.Errorf("expected offset clamped to 0, got %v", c.Offset())
	}
	if got := c.ActiveInterval(); got != (Interval{0, 5}) {
		t.Errorf("expected active interval [0,5), got %v", got)
	}
}

func TestControllerDirection(t *testing.T) {
	src := rampSource("a", 29)
	cfg := staticConfig()
	cfg.Direction = RightToLeft
	c := newReadyController(t, src, cfg, NewPlot("a", PlotLine))
	if got := c.ContentWidth(); got != 1220 {
		t.Errorf("expected content width 1220, got %v", got)
	}
	if got := c.Offset(); got != 900 {
		t.Errorf("expected initial offset 900, got %v", got)
	}
	if got := c.ActiveInterval(); got != (Interval{20, 29}) {
		t.Errorf("expected active interval [20,29), got %v", got)
	}
}

func TestControllerResize(t *testing.T) {
	src := rampSource("a", 29)
	p := NewPlot("a", PlotLine)
	c := newReadyController(t, src, staticConfig(), p)
	c.Handle(ResizeChanged{Width: 640, Height: 200})
	if got := c.ActiveInterval(); got != (Interval{0, 19}) {
		t.Errorf("expected active interval [0,19), got %v", got)
	}
	if got := p.Point(0).Y; got != 190 {
		t.Errorf("expected point 0 at the new bottom, got %v", got)
	}
}

func TestControllerResizeWithoutRoom(t *testing.T) {
	src := rampSource("a", 29)
	p := NewPlot("a", PlotLine)
	c := newReadyController(t, src, staticConfig(), p)
	r := DefaultReferenceLines()
	c.SetReferenceLines(&r)
	for _, height := range []float32{20, 5} {
		c.Handle(ResizeChanged{Width: 320, Height: height})
		if w, h := c.Viewport(); w != 320 || h != 100 {
			t.Errorf("height %v: expected the last usable viewport 320x100, got %vx%v", height, w, h)
		}
		for _, l := range c.ReferenceLines() {
			if strings.Contains(l.Label, "NaN") {
				t.Errorf("height %v: expected finite reference labels, got %q", height, l.Label)
			}
		}
		if got := p.Point(0).Y; got != 90 {
			t.Errorf("height %v: expected point 0 to stay at 90, got %v", height, got)
		}
	}
	c.Handle(ResizeChanged{Width: 320, Height: 200})
	if got := p.Point(0).Y; got != 190 {
		t.Errorf("expected point 0 at the new bottom once there is room, got %v", got)
	}
}

func TestControllerReferenceLines(t *testing.T) {
	src := rampSource("a", 29)
	c := newReadyController(t, src, staticConfig(), NewPlot("a", PlotLine))
	if lines := c.ReferenceLines(); lines != nil {
		t.Errorf("expected no reference lines, got %v", lines)
	}
	r := DefaultReferenceLines()
	c.SetReferenceLines(&r)
	lines := c.ReferenceLines()
	if len(lines) != 6 {
		t.Fatalf("expected 6 reference lines, got %d", len(lines))
	}
	if lines[0].Label != "10" || lines[1].Label != "0" {
		t.Errorf("expected max and min labels 10 and 0, got %q and %q", lines[0].Label, lines[1].Label)
	}
}

func TestNewControllerValidates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PointSpacing = 0
	if _, err := NewController(rampSource("a", 1), cfg); err == nil {
		t.Errorf("expected invalid config to be rejected")
	}
}
