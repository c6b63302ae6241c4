package graph

import (
	"fmt"
	"slices"
	"time"

	"gioui.org/f32"
)

// State is the lifecycle state of a Controller.
type State uint8

const (
	// StateUninitialized waits for a usable viewport and data.
	StateUninitialized State = iota
	// StateSetup is entered while plots are attached and their points
	// created.
	StateSetup
	// StateReady handles every event.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSetup:
		return "setup"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Controller owns the plots of a scrollable graph and keeps their point
// positions, the y range, and the labels in step with the scroll offset,
// the viewport size and the data.
//
// A Controller is not safe for concurrent use. Feed it events and frames
// from the goroutine that draws it.
type Controller struct {
	cfg Config
	src DataSource

	state State
	count int

	width, height float32
	// requested is the latest viewport size, which may be too small to use.
	requested f32.Point
	offset    float32

	active, previous Interval
	rng              Range

	plots      []*Plot
	queued     []*Plot
	labels     *LabelPool[*DataLabel]
	plotLabels map[string]*LabelPool[*DataLabel]
	reference  *ReferenceLines

	clock      FrameClock
	stale      bool
	invalidate func()
}

// NewController validates cfg and returns a controller reading from src.
// The controller stays uninitialized until it has a viewport with room for
// the graph and src has at least one point.
func NewController(src DataSource, cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph config: %w", err)
	}
	return &Controller{
		cfg:        cfg,
		src:        src,
		rng:        Range{Min: cfg.RangeMin, Max: cfg.RangeMax},
		labels:     NewLabelPool(newDataLabel),
		plotLabels: make(map[string]*LabelPool[*DataLabel]),
	}, nil
}

// SetInvalidator installs a function called whenever the controller needs
// a new frame.
func (c *Controller) SetInvalidator(invalidate func()) {
	c.invalidate = invalidate
}

// SetReferenceLines enables reference lines, or disables them when r is
// nil.
func (c *Controller) SetReferenceLines(r *ReferenceLines) {
	c.reference = r
	c.markStale()
}

// SetDataSource replaces the data source and reloads.
func (c *Controller) SetDataSource(src DataSource) {
	c.src = src
	c.Handle(DataReloaded{})
}

// Handle applies a single event.
func (c *Controller) Handle(ev Event) {
	switch ev := ev.(type) {
	case ScrollChanged:
		c.scrollChanged(ev.Offset)
	case ResizeChanged:
		c.resizeChanged(ev.Width, ev.Height)
	case DataReloaded:
		c.dataReloaded()
	case PlotAdded:
		c.plotAdded(ev.Plot)
	case PlotRemoved:
		c.plotRemoved(ev.ID)
	default:
		panic(fmt.Errorf("unknown graph event %T", ev))
	}
}

// Config returns the controller's options.
func (c *Controller) Config() Config {
	return c.cfg
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Offset returns the scroll offset.
func (c *Controller) Offset() float32 {
	return c.offset
}

// Viewport returns the viewport size.
func (c *Controller) Viewport() (width, height float32) {
	return c.width, c.height
}

// Len returns the number of data points.
func (c *Controller) Len() int {
	return c.count
}

// ContentWidth returns the width of the scrollable content.
func (c *Controller) ContentWidth() float32 {
	return c.cfg.ContentWidth(c.count)
}

// MaxOffset returns the largest scroll offset that keeps the viewport
// within the content.
func (c *Controller) MaxOffset() float32 {
	return max(c.ContentWidth()-c.width, 0)
}

// InitialOffset returns the offset a newly set up graph starts from: the
// start of the content for LeftToRight, the end for RightToLeft.
func (c *Controller) InitialOffset() float32 {
	if c.cfg.Direction == RightToLeft {
		return c.MaxOffset()
	}
	return 0
}

// Range returns the current y range.
func (c *Controller) Range() Range {
	return c.rng
}

// ActiveInterval returns the indices whose points are positioned and
// labelled.
func (c *Controller) ActiveInterval() Interval {
	return c.active
}

// PreviousInterval returns the active interval before the last change.
func (c *Controller) PreviousInterval() Interval {
	return c.previous
}

// Mapper returns the mapping for the current range and viewport.
func (c *Controller) Mapper() Mapper {
	return Mapper{
		Range:          c.rng,
		Spacing:        c.cfg.PointSpacing,
		LeftPadding:    c.cfg.LeftPadding,
		TopMargin:      c.cfg.TopMargin,
		BottomMargin:   c.cfg.BottomMargin,
		LabelRowHeight: c.cfg.labelRowHeight(),
		Height:         c.height,
	}
}

// Position returns the screen position of the point at index with value.
func (c *Controller) Position(index int, value float64) f32.Point {
	return c.Mapper().Position(index, value)
}

// ZeroY returns the y position bars are drawn from.
func (c *Controller) ZeroY() float32 {
	return c.Mapper().ZeroY()
}

// Plots returns the attached plots in the order they were added.
func (c *Controller) Plots() []*Plot {
	return c.plots
}

// Plot returns the attached or queued plot with the given ID.
func (c *Controller) Plot(id string) (*Plot, bool) {
	for _, p := range c.plots {
		if p.id == id {
			return p, true
		}
	}
	for _, p := range c.queued {
		if p.id == id {
			return p, true
		}
	}
	return nil, false
}

// DataLabels returns the visible data point labels.
func (c *Controller) DataLabels() []*DataLabel {
	if !c.cfg.ShowDataPointLabels {
		return nil
	}
	return c.labels.ActiveLabels()
}

// PlotLabels returns the visible labels of the plot with the given ID.
func (c *Controller) PlotLabels(id string) []*DataLabel {
	pool, ok := c.plotLabels[id]
	if !ok {
		return nil
	}
	return pool.ActiveLabels()
}

// ReferenceLines returns the reference lines for the current range, or nil
// when they are disabled.
func (c *Controller) ReferenceLines() []ReferenceLine {
	if c.reference == nil || c.state != StateReady {
		return nil
	}
	return c.reference.Lines(c.Mapper())
}

// ReferenceSettings returns the reference line settings, or nil.
func (c *Controller) ReferenceSettings() *ReferenceLines {
	return c.reference
}

// Animating reports whether any plot has a pending animation.
func (c *Controller) Animating() bool {
	for _, p := range c.plots {
		if p.Animating() {
			return true
		}
	}
	return false
}

// AnimationQueued requests a frame so that the new animation starts.
func (c *Controller) AnimationQueued() {
	if c.invalidate != nil {
		c.invalidate()
	}
}

// Frame advances animations to now. The frame clock pauses while no
// animation is pending, so the first frame after a pause does not move
// anything.
func (c *Controller) Frame(now time.Time) {
	if !c.Animating() {
		c.clock.Pause()
		return
	}
	c.Tick(c.clock.Step(now))
	if !c.Animating() {
		c.clock.Pause()
	}
}

// Tick advances every animation by dt, clamped to MaxFrameStep.
func (c *Controller) Tick(dt time.Duration) {
	seconds := clamp(dt, 0, MaxFrameStep).Seconds()
	moved := false
	for _, p := range c.plots {
		if p.Tick(seconds) {
			moved = true
		}
	}
	if moved {
		c.markStale()
	}
}

// StopAnimations moves every animating point to its destination.
func (c *Controller) StopAnimations() {
	for _, p := range c.plots {
		p.FlushAnimations()
	}
	c.markStale()
}

// Replay drops the active points back onto the baseline and plays the
// startup animation again.
func (c *Controller) Replay() {
	if c.state != StateReady {
		return
	}
	indices := c.active.Indices()
	baseline := make([]float64, len(indices))
	for i := range baseline {
		baseline[i] = c.rng.Min
	}
	for _, p := range c.plots {
		p.FlushAnimations()
		p.SetPositions(indices, baseline)
		p.Animate(indices, WindowValues(c.src, p.id, c.active), c.cfg.StartupStagger)
	}
	c.markStale()
}

// TakeStale reports whether anything drawn changed since the last call and
// clears the flag.
func (c *Controller) TakeStale() bool {
	stale := c.stale
	c.stale = false
	return stale
}

func (c *Controller) markStale() {
	c.stale = true
	if c.invalidate != nil {
		c.invalidate()
	}
}

func (c *Controller) computeActive() Interval {
	return ActiveInterval(c.offset, c.width, c.cfg.PointSpacing, c.count, c.cfg.Overscan)
}

func (c *Controller) computeRange(window Interval) Range {
	if !c.cfg.AdaptRange {
		return Range{Min: c.cfg.RangeMin, Max: c.cfg.RangeMax}
	}
	ids := make([]string, len(c.plots))
	for i, p := range c.plots {
		ids[i] = p.id
	}
	return PlotsRange(c.src, ids, window, c.cfg.rangeOptions())
}

func (c *Controller) trySetup() {
	if c.state != StateUninitialized || c.src == nil {
		return
	}
	if !c.usable(c.width, c.height) {
		return
	}
	if c.src.NumberOfPoints() <= 0 {
		return
	}
	c.setup()
}

func (c *Controller) setup() {
	c.state = StateSetup
	c.count = c.src.NumberOfPoints()
	c.offset = clamp(c.InitialOffset(), 0, c.MaxOffset())
	c.previous = Interval{}
	c.active = c.computeActive()

	for _, p := range c.queued {
		c.attach(p)
	}
	c.queued = nil
	c.rng = c.computeRange(c.active)
	for _, p := range c.plots {
		p.createPoints(c.count, c.rng.Min)
	}
	graphLogger.Debug("graph setup",
		"points", c.count,
		"plots", len(c.plots),
		"window", c.active,
		"min", c.rng.Min,
		"max", c.rng.Max,
	)

	indices := c.active.Indices()
	for _, p := range c.plots {
		values := WindowValues(c.src, p.id, c.active)
		if c.cfg.AnimateOnStartup {
			p.Animate(indices, values, c.cfg.StartupStagger)
		} else {
			p.SetPositions(indices, values)
		}
	}
	c.state = StateReady
	c.refreshLabels()
	c.markStale()
}

func (c *Controller) attach(p *Plot) {
	p.attach(c, c.cfg)
	c.plots = append(c.plots, p)
	c.plotLabels[p.id] = NewLabelPool(newDataLabel)
}

func (c *Controller) scrollChanged(offset float32) {
	if offset == c.offset {
		return
	}
	c.offset = offset
	if c.state != StateReady {
		return
	}
	// Scrolling moves the whole content, so a redraw is needed even if the
	// window is unchanged.
	if !c.updateWindow() {
		c.markStale()
	}
}

// updateWindow recomputes the active interval and, if it changed, the
// range, the positions of newly active points and the labels.
func (c *Controller) updateWindow() bool {
	next := c.computeActive()
	if next == c.active {
		return false
	}
	c.previous, c.active = c.active, next
	activated := Activated(c.previous, c.active)
	deactivated := Deactivated(c.previous, c.active)

	rangeChanged := false
	if c.cfg.AdaptRange {
		if r := c.computeRange(c.active); r != c.rng {
			c.rng = r
			rangeChanged = true
		}
	}
	for _, p := range c.plots {
		p.SetPositions(activated, c.values(p.id, activated))
	}
	c.updateLabels(deactivated, activated)
	if rangeChanged {
		c.rangeChanged()
	}
	c.markStale()
	return true
}

// rangeChanged moves every active point to its position in the new range.
func (c *Controller) rangeChanged() {
	graphLogger.Debug("range changed", "min", c.rng.Min, "max", c.rng.Max, "window", c.active)
	indices := c.active.Indices()
	for _, p := range c.plots {
		c.reposition(p, indices)
	}
	c.repositionLabels()
}

func (c *Controller) reposition(p *Plot, indices []int) {
	values := c.values(p.id, indices)
	if c.cfg.AnimateOnAdapt {
		p.Animate(indices, values, c.cfg.StaggerDelay)
		return
	}
	p.FlushAnimations()
	p.SetPositions(indices, values)
}

func (c *Controller) resizeChanged(width, height float32) {
	size := f32.Pt(width, height)
	if size == c.requested {
		return
	}
	c.requested = size
	if c.state != StateReady {
		c.width, c.height = width, height
		c.trySetup()
		return
	}
	// The graph keeps its last layout until there is room to draw it again.
	if !c.usable(width, height) {
		return
	}
	if width == c.width && height == c.height {
		return
	}
	c.width, c.height = width, height
	c.StopAnimations()
	c.offset = clamp(c.offset, 0, c.MaxOffset())
	c.refit()
}

// usable reports whether a viewport of the given size leaves room for the
// graph.
func (c *Controller) usable(width, height float32) bool {
	m := c.Mapper()
	m.Height = height
	return width > 0 && m.UsableHeight() > 0
}

func (c *Controller) dataReloaded() {
	if c.state != StateReady {
		c.trySetup()
		return
	}
	c.StopAnimations()
	if n := c.src.NumberOfPoints(); n != c.count {
		graphLogger.Debug("point count changed", "from", c.count, "to", n)
		c.count = n
		for _, p := range c.plots {
			p.resize(n, c.rng.Min)
		}
		c.offset = clamp(c.offset, 0, c.MaxOffset())
	}
	c.refit()
}

// refit recomputes the window and the range from scratch and moves every
// active point to its new position.
func (c *Controller) refit() {
	next := c.computeActive()
	if next != c.active {
		c.previous, c.active = c.active, next
		activated := Activated(c.previous, c.active)
		for _, p := range c.plots {
			p.SetPositions(activated, c.values(p.id, activated))
		}
	}
	c.rng = c.computeRange(c.active)
	indices := c.active.Indices()
	for _, p := range c.plots {
		c.reposition(p, indices)
	}
	c.refreshLabels()
	c.markStale()
}

func (c *Controller) plotAdded(p *Plot) {
	if p == nil {
		panic("graph: nil plot")
	}
	if _, dup := c.Plot(p.id); dup {
		panic(fmt.Errorf("graph: duplicate plot id %q", p.id))
	}
	if c.state != StateReady {
		c.queued = append(c.queued, p)
		return
	}
	c.attach(p)
	p.createPoints(c.count, c.rng.Min)
	if r := c.computeRange(c.active); r != c.rng {
		c.rng = r
		c.rangeChanged()
	} else {
		indices := c.active.Indices()
		values := c.values(p.id, indices)
		if c.cfg.AnimateOnStartup {
			p.Animate(indices, values, c.cfg.StartupStagger)
		} else {
			p.SetPositions(indices, values)
		}
	}
	c.updatePlotLabels(p, nil, c.active.Indices())
	c.markStale()
}

func (c *Controller) plotRemoved(id string) {
	if i := slices.IndexFunc(c.queued, func(p *Plot) bool { return p.id == id }); i >= 0 {
		c.queued = slices.Delete(c.queued, i, i+1)
		return
	}
	i := slices.IndexFunc(c.plots, func(p *Plot) bool { return p.id == id })
	if i < 0 {
		return
	}
	p := c.plots[i]
	c.plots = slices.Delete(c.plots, i, i+1)
	p.teardown()
	delete(c.plotLabels, id)
	if c.state == StateReady {
		if r := c.computeRange(c.active); r != c.rng {
			c.rng = r
			c.rangeChanged()
		}
	}
	c.markStale()
}

func (c *Controller) values(plotID string, indices []int) []float64 {
	values := make([]float64, len(indices))
	for i, index := range indices {
		values[i] = c.src.Value(plotID, index)
	}
	return values
}

// labelled filters indices down to the ones that carry labels.
func (c *Controller) labelled(indices []int) []int {
	if c.cfg.LabelSparsity <= 1 {
		return indices
	}
	kept := make([]int, 0, len(indices)/c.cfg.LabelSparsity+1)
	for _, index := range indices {
		if index%c.cfg.LabelSparsity == 0 {
			kept = append(kept, index)
		}
	}
	return kept
}

func (c *Controller) updateLabels(deactivated, activated []int) {
	if c.cfg.ShowDataPointLabels {
		for _, index := range deactivated {
			c.labels.Deactivate(index)
		}
		for _, index := range c.labelled(activated) {
			c.fillDataLabel(c.labels.Activate(index), index)
		}
	}
	for _, p := range c.plots {
		c.updatePlotLabels(p, deactivated, activated)
	}
}

func (c *Controller) updatePlotLabels(p *Plot, deactivated, activated []int) {
	pool := c.plotLabels[p.id]
	for _, index := range deactivated {
		pool.Deactivate(index)
	}
	labeler, ok := c.src.(PlotLabeler)
	if !p.ShowLabels || !ok {
		return
	}
	for _, index := range c.labelled(activated) {
		text, ok := labeler.PlotLabel(p.id, index)
		if !ok {
			pool.Deactivate(index)
			continue
		}
		l := pool.Activate(index)
		l.Index = index
		l.Text = text
		l.Anchor = c.plotLabelAnchor(p, index)
	}
}

func (c *Controller) fillDataLabel(l *DataLabel, index int) {
	l.Index = index
	l.Text = c.src.Label(index)
	l.Rich = nil
	if rich, ok := c.src.(RichLabeler); ok {
		if spans, ok := rich.RichLabel(index); ok {
			l.Rich = spans
		}
	}
	l.Anchor = c.dataLabelAnchor(index)
}

func (c *Controller) dataLabelAnchor(index int) f32.Point {
	m := c.Mapper()
	return f32.Pt(m.X(index), m.Y(c.rng.Min)+c.cfg.DataPointLabelTopMargin)
}

func (c *Controller) plotLabelAnchor(p *Plot, index int) f32.Point {
	at := c.Position(index, c.src.Value(p.id, index))
	at.Y += p.LabelOffset
	return at
}

// refreshLabels rebinds every label to the active interval.
func (c *Controller) refreshLabels() {
	c.labels.Reset()
	for _, pool := range c.plotLabels {
		pool.Reset()
	}
	c.updateLabels(nil, c.active.Indices())
}

// repositionLabels moves bound labels to the current range.
func (c *Controller) repositionLabels() {
	for _, index := range c.labels.Bound() {
		l, _ := c.labels.Label(index)
		l.Anchor = c.dataLabelAnchor(index)
	}
	for _, p := range c.plots {
		pool := c.plotLabels[p.id]
		for _, index := range pool.Bound() {
			l, _ := pool.Label(index)
			l.Anchor = c.plotLabelAnchor(p, index)
		}
	}
}
