package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"slices"
	"strings"
	"time"

	"gioui.org/font"
	"gioui.org/gesture"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"gioui.org/x/richtext"

	"git.sr.ht/~whereswaldon/scroll-graph/backend"
	"git.sr.ht/~whereswaldon/scroll-graph/config"
	"git.sr.ht/~whereswaldon/scroll-graph/graph"
	"git.sr.ht/~whereswaldon/scroll-graph/render"
)

// emphasisPrefix marks row labels that are drawn in bold.
const emphasisPrefix = "*"

// labelSource adds rich data point labels to a dataset. Labels starting
// with emphasisPrefix are drawn in bold without the prefix.
type labelSource struct {
	*backend.Dataset
	size  unit.Sp
	color color.NRGBA
}

var _ graph.RichLabeler = labelSource{}

func (l labelSource) Label(index int) string {
	return strings.TrimPrefix(l.Dataset.Label(index), emphasisPrefix)
}

func (l labelSource) RichLabel(index int) ([]richtext.SpanStyle, bool) {
	raw := l.Dataset.Label(index)
	if !strings.HasPrefix(raw, emphasisPrefix) {
		return nil, false
	}
	return []richtext.SpanStyle{{
		Content: strings.TrimPrefix(raw, emphasisPrefix),
		Size:    l.size,
		Color:   l.color,
		Font:    font.Font{Weight: font.Bold},
	}}, true
}

// GraphView is the scrollable graph widget. It owns the controller and
// translates gestures, size changes and new sessions into its events.
type GraphView struct {
	cfg        config.ChartConfig
	th         *material.Theme
	invalidate func()

	ctrl    *graph.Controller
	graph   *render.Graph
	src     labelSource
	names   []string
	version int
	err     error

	// extents caches the visible extent of each plot until the controller
	// reports a change.
	extents []extent

	pan      gesture.Scroll
	panBar   widget.Scrollbar
	keyTable component.GridState
}

type extent struct {
	graph.Range
	ok bool
}

func NewGraphView(th *material.Theme, cfg config.ChartConfig, invalidate func()) *GraphView {
	return &GraphView{
		cfg:        cfg,
		th:         th,
		invalidate: invalidate,
		version:    -1,
	}
}

// Err reports why the graph could not be built, if it could not.
func (v *GraphView) Err() error {
	return v.err
}

// SetSession shows the session's data. A dataset with the series the view
// already shows is reloaded in place, anything else rebuilds the graph.
func (v *GraphView) SetSession(s backend.Session) {
	if s.Data == nil || s.Version <= v.version {
		return
	}
	v.version = s.Version
	v.extents = nil
	src := labelSource{Dataset: s.Data, size: 12, color: v.th.Fg}
	if v.ctrl != nil && slices.Equal(v.names, s.Data.Names) {
		v.src = src
		v.ctrl.SetDataSource(src)
		return
	}
	v.err = v.build(src)
	if v.err != nil {
		log.Printf("failed building graph: %v", v.err)
	}
}

func (v *GraphView) build(src labelSource) error {
	gcfg, err := v.cfg.Graph.ToGraph()
	if err != nil {
		return err
	}
	ctrl, err := graph.NewController(src, gcfg)
	if err != nil {
		return err
	}
	ctrl.SetInvalidator(v.invalidate)

	g := render.NewGraph(v.th)
	if g.Background, err = config.ParseColor(v.cfg.Background); err != nil {
		return err
	}
	if v.cfg.ReferenceLines != nil {
		lines, style, err := v.cfg.ReferenceLines.ToGraph()
		if err != nil {
			return err
		}
		ctrl.SetReferenceLines(&lines)
		g.Reference = style
	}
	for i, name := range src.Names {
		pc, ok := v.cfg.Plot(name)
		if !ok {
			pc = config.PlotConfig{ID: name}
		}
		plot, style, err := pc.ToGraph(seriesColor(i))
		if err != nil {
			return fmt.Errorf("plot %q: %w", name, err)
		}
		g.Styles[name] = style
		ctrl.Handle(graph.PlotAdded{Plot: plot})
	}
	for _, pc := range v.cfg.Plots {
		if src.SeriesIndex(pc.ID) < 0 {
			log.Printf("no series %q in data, skipping its plot", pc.ID)
		}
	}

	v.ctrl = ctrl
	v.graph = g
	v.src = src
	v.names = slices.Clone(src.Names)
	return nil
}

// Replay plays the startup animation again.
func (v *GraphView) Replay() {
	if v.ctrl != nil {
		v.ctrl.Replay()
	}
}

func (v *GraphView) scrollTo(offset float32) {
	offset = min(max(offset, 0), v.ctrl.MaxOffset())
	v.ctrl.Handle(graph.ScrollChanged{Offset: offset})
}

func (v *GraphView) Layout(gtx C) D {
	if v.ctrl == nil {
		return D{Size: gtx.Constraints.Max}
	}
	if dist := v.panBar.ScrollDistance(); dist != 0 {
		v.scrollTo(v.ctrl.Offset() + dist*v.ctrl.ContentWidth())
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, v.layoutPlot),
		layout.Rigid(func(gtx C) D {
			content := v.ctrl.ContentWidth()
			if content <= 0 {
				return D{}
			}
			width, _ := v.ctrl.Viewport()
			start := v.ctrl.Offset() / content
			end := min((v.ctrl.Offset()+width)/content, 1)
			scrollbar := material.Scrollbar(v.th, &v.panBar)
			scrollbar.Track.MajorPadding = 0
			scrollbar.Indicator.CornerRadius = 0
			return scrollbar.Layout(gtx, layout.Horizontal, start, end)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Max.Y = min(gtx.Constraints.Max.Y, gtx.Dp(150))
			return v.layoutLegend(gtx)
		}),
	)
}

// advance moves animations to now and drops cached values once the
// controller reports a change.
func (v *GraphView) advance(now time.Time) {
	v.ctrl.Frame(now)
	if v.ctrl.TakeStale() {
		v.extents = nil
	}
}

func (v *GraphView) layoutPlot(gtx C) D {
	size := gtx.Constraints.Max
	v.ctrl.Handle(graph.ResizeChanged{Width: float32(size.X), Height: float32(size.Y)})
	dist := v.pan.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Horizontal, image.Rect(-1e6, 0, 1e6, 0))
	if dist != 0 {
		v.scrollTo(v.ctrl.Offset() + float32(dist))
	}

	v.advance(gtx.Now)

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	v.pan.Add(gtx.Ops)
	dims := v.graph.Layout(gtx, v.ctrl)
	if v.ctrl.Animating() {
		v.invalidate()
	}
	return dims
}

// visibleExtents returns the extent of each plot within the active interval.
func (v *GraphView) visibleExtents(plots []*graph.Plot) []extent {
	if len(v.extents) == len(plots) {
		return v.extents
	}
	active := v.ctrl.ActiveInterval()
	v.extents = make([]extent, len(plots))
	for i, p := range plots {
		v.extents[i].Range, v.extents[i].ok = graph.Extent(graph.WindowValues(v.src, p.ID(), active))
	}
	return v.extents
}

func (v *GraphView) layoutLegend(gtx C) D {
	th := v.th
	table := component.Table(th, &v.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	const (
		colorCol = iota
		idCol
		kindCol
		minCol
		maxCol
		numCols
	)
	plots := v.ctrl.Plots()
	extents := v.visibleExtents(plots)
	colorColWidth := gtx.Dp(50)
	valueColWidth := gtx.Dp(100)
	kindColWidth := gtx.Dp(60)
	idColWidth := max(gtx.Constraints.Max.X-colorColWidth-kindColWidth-2*valueColWidth-gtx.Dp(table.VScrollbarStyle.Width()), 0)
	rowHeight := gtx.Sp(20)
	return table.Layout(gtx, len(plots), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case colorCol:
				size = colorColWidth
			case idCol:
				size = idColWidth
			case kindCol:
				size = kindColWidth
			default:
				size = valueColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case colorCol:
				l = material.Body1(th, "Color")
			case idCol:
				l = material.Body1(th, "Series")
				l.Alignment = text.Middle
			case kindCol:
				l = material.Body1(th, "Kind")
			case minCol:
				l = material.Body1(th, "Visible Min")
				l.Alignment = text.End
			case maxCol:
				l = material.Body1(th, "Visible Max")
				l.Alignment = text.End
			}
			l.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			p := plots[row]
			style := v.graph.Style(p)
			ext := extents[row]
			dims = layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return layout.Center.Layout(gtx, func(gtx C) D {
						sideLen := gtx.Dp(10)
						sz := image.Pt(sideLen, sideLen)
						paint.FillShape(gtx.Ops, style.LabelColor, clip.Rect{Max: sz}.Op())
						return D{Size: sz}
					})
				case idCol:
					return material.Body2(th, p.ID()).Layout(gtx)
				case kindCol:
					return material.Body2(th, p.Kind().String()).Layout(gtx)
				case minCol, maxCol:
					txt := "-"
					if ext.ok {
						value := ext.Min
						if col == maxCol {
							value = ext.Max
						}
						txt = fmt.Sprintf("%.2f", value)
					}
					l := material.Body2(th, txt)
					l.Alignment = text.End
					return l.Layout(gtx)
				default:
					return D{Size: gtx.Constraints.Max}
				}
			})
			if row&1 != 0 {
				paint.FillShape(gtx.Ops, withAlpha(style.LabelColor, 50), clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return dims
		})
}
