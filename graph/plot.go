package graph

import (
	"fmt"
	"strings"

	"gioui.org/f32"
)

// PlotKind is the visual representation of a plot.
type PlotKind uint8

const (
	PlotLine PlotKind = iota
	PlotBar
	PlotDot
)

func (k PlotKind) String() string {
	switch k {
	case PlotLine:
		return "line"
	case PlotBar:
		return "bar"
	case PlotDot:
		return "dot"
	default:
		return "unknown"
	}
}

// ParsePlotKind parses the names produced by PlotKind.String.
func ParsePlotKind(s string) (PlotKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "line":
		return PlotLine, nil
	case "bar":
		return PlotBar, nil
	case "dot":
		return PlotDot, nil
	}
	return 0, fmt.Errorf("unknown plot kind %q", s)
}

// Host is implemented by the component a plot is attached to. It provides
// the coordinate mapping and learns about newly queued animations.
type Host interface {
	Position(index int, value float64) f32.Point
	ActiveInterval() Interval
	AnimationQueued()
}

// Plot holds the screen positions of every data point of one series. Its
// values live in the data source and are looked up with the plot's ID.
type Plot struct {
	id   string
	kind PlotKind

	// ShowLabels enables per-point value labels for the plot. The data
	// source must implement PlotLabeler for labels to appear.
	ShowLabels bool
	// LabelOffset is added to the y position of the plot's labels.
	LabelOffset float32
	// AnimationDuration in seconds. Zero uses the controller's setting.
	AnimationDuration float64
	// Easing for the plot's animations. Nil uses the controller's setting.
	Easing Easing

	host       Host
	points     []GraphPoint
	animations []*Animation
	inFlight   map[int]*Animation
}

// NewPlot creates a plot. The id selects the plot's values from the data
// source and must be unique within a controller.
func NewPlot(id string, kind PlotKind) *Plot {
	return &Plot{
		id:       id,
		kind:     kind,
		inFlight: make(map[int]*Animation),
	}
}

// ID returns the plot's identifier.
func (p *Plot) ID() string {
	return p.id
}

// Kind returns the plot's visual kind.
func (p *Plot) Kind() PlotKind {
	return p.kind
}

// Len returns the number of points the plot holds.
func (p *Plot) Len() int {
	return len(p.points)
}

// Point returns the current position of the point at index.
func (p *Plot) Point(index int) GraphPoint {
	return p.points[index]
}

// Points appends the positions of the points within interval to dst.
func (p *Plot) Points(interval Interval, dst []f32.Point) []f32.Point {
	for index := interval.Lo; index < interval.Hi; index++ {
		dst = append(dst, p.points[index].Pt())
	}
	return dst
}

// ActivePoints appends the positions of the host's active points to dst.
func (p *Plot) ActivePoints(dst []f32.Point) []f32.Point {
	if p.host == nil {
		return dst
	}
	return p.Points(p.host.ActiveInterval(), dst)
}

// Animating reports whether any animation is pending.
func (p *Plot) Animating() bool {
	return len(p.animations) > 0
}

func (p *Plot) attach(host Host, cfg Config) {
	p.host = host
	if p.AnimationDuration == 0 {
		p.AnimationDuration = cfg.AnimationDuration
	}
	if p.Easing == nil {
		p.Easing = cfg.Animation.easing(cfg.CustomEasing)
	}
}

// createPoints allocates count points, all placed on the baseline value.
func (p *Plot) createPoints(count int, baseline float64) {
	p.points = make([]GraphPoint, count)
	for i := range p.points {
		p.points[i].set(p.host.Position(i, baseline))
	}
}

// resize changes the number of points, placing new points on baseline.
func (p *Plot) resize(count int, baseline float64) {
	p.FlushAnimations()
	old := len(p.points)
	if count <= old {
		p.points = p.points[:count]
		return
	}
	p.points = append(p.points, make([]GraphPoint, count-old)...)
	for i := old; i < count; i++ {
		p.points[i].set(p.host.Position(i, baseline))
	}
}

// SetPositions moves the points at indices to the positions of the
// corresponding values immediately. Pending animations of those points are
// cancelled.
func (p *Plot) SetPositions(indices []int, values []float64) {
	for i, index := range indices {
		p.cancel(index)
		p.points[index].set(p.host.Position(index, values[i]))
	}
	p.sweep()
}

// Animate starts animating the points at indices towards the positions of
// the corresponding values. The n-th point waits n*stagger seconds before
// starting. A point that is already animating restarts from where it is.
func (p *Plot) Animate(indices []int, values []float64, stagger float64) {
	for i, index := range indices {
		p.cancel(index)
		target := p.host.Position(index, values[i])
		a := newAnimation(&p.points[index], target, p.Easing, p.AnimationDuration, float64(i)*stagger)
		a.index = index
		p.animations = append(p.animations, a)
		p.inFlight[index] = a
	}
	if len(indices) > 0 && p.host != nil {
		p.host.AnimationQueued()
	}
}

// Tick advances every pending animation by dt seconds and drops the ones
// that finished. It reports whether any animation was pending.
func (p *Plot) Tick(dt float64) bool {
	if len(p.animations) == 0 {
		return false
	}
	for _, a := range p.animations {
		a.Update(dt)
	}
	p.sweep()
	return true
}

// FlushAnimations applies the final position of every pending animation
// and clears the queue.
func (p *Plot) FlushAnimations() {
	for _, a := range p.animations {
		if !a.finished {
			a.Finish()
		}
	}
	p.animations = p.animations[:0]
	clear(p.inFlight)
}

func (p *Plot) cancel(index int) {
	if a, ok := p.inFlight[index]; ok {
		a.finished = true
		delete(p.inFlight, index)
	}
}

func (p *Plot) sweep() {
	kept := p.animations[:0]
	for _, a := range p.animations {
		if a.finished {
			if p.inFlight[a.index] == a {
				delete(p.inFlight, a.index)
			}
			continue
		}
		kept = append(kept, a)
	}
	clear(p.animations[len(kept):])
	p.animations = kept
}

// teardown releases the plot's points. Animations are flushed first so no
// task outlives the points it refers to.
func (p *Plot) teardown() {
	p.FlushAnimations()
	p.points = nil
	p.host = nil
}
