package main

import (
	"image"
	"image/color"
	"log"
	"strconv"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/scroll-graph/backend"
	"git.sr.ht/~whereswaldon/scroll-graph/config"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	tabGraph = "graph"
	tabData  = "data"
)

var openIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.FileFolderOpen)
	return icon
}()

var reloadIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.NavigationRefresh)
	return icon
}()

var replayIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVReplay)
	return icon
}()

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer

	view      *GraphView
	tab       widget.Enum
	openBtn   widget.Clickable
	reloadBtn widget.Clickable
	replayBtn widget.Clickable
	dataTable component.GridState
	loadErr   string

	th            *material.Theme
	sessionStream *stream.Stream[backend.Session]
	session       backend.Session
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, cfg config.ChartConfig, invalidate func()) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	return &UI{
		ws:            ws,
		th:            th,
		expl:          expl,
		tab:           widget.Enum{Value: tabGraph},
		view:          NewGraphView(th, cfg, invalidate),
		sessionStream: stream.New(ws.Controller, ws.Bundle.Datasource.Snapshots),
	}
}

// Update the state of the UI from the latest session and button clicks.
func (ui *UI) Update(gtx C) {
	ui.sessionStream.ReadInto(gtx, &ui.session, backend.Session{})
	ui.view.SetSession(ui.session)
	ui.tab.Update(gtx)
	ds := ui.ws.Bundle.Datasource
	if ui.openBtn.Clicked(gtx) {
		go func() {
			if err := ds.LoadFromFile(ui.expl); err != nil {
				log.Printf("failed opening data file: %v", err)
			}
		}()
	}
	if ui.reloadBtn.Clicked(gtx) {
		go func() {
			if err := ds.Reload(); err != nil {
				log.Printf("failed reloading: %v", err)
			}
		}()
	}
	if ui.replayBtn.Clicked(gtx) {
		ui.view.Replay()
	}
	ui.loadErr = ""
	if ui.session.Err != nil {
		ui.loadErr = ui.session.Err.Error()
	} else if err := ui.view.Err(); err != nil {
		ui.loadErr = err.Error()
	}
}

type TabStyle struct {
	state  *widget.Enum
	label  material.LabelStyle
	border widget.Border
	inset  layout.Inset
	value  string
	fill   color.NRGBA
}

func Tab(th *material.Theme, state *widget.Enum, value, display string) TabStyle {
	selected := state.Value == value
	ts := TabStyle{
		state: state,
		label: material.Body1(th, display),
		inset: layout.UniformInset(2),
		border: widget.Border{
			Width: 2,
			Color: th.ContrastBg,
		},
		value: value,
	}
	ts.label.Alignment = text.Middle
	if selected {
		ts.label.Color = th.ContrastFg
		ts.fill = th.ContrastBg
	}
	return ts
}

func (t TabStyle) Layout(gtx C) D {
	return t.inset.Layout(gtx, func(gtx C) D {
		return t.border.Layout(gtx, func(gtx C) D {
			return t.inset.Layout(gtx, func(gtx C) D {
				return t.state.Layout(gtx, t.value, func(gtx C) D {
					return layout.Background{}.Layout(gtx, func(gtx C) D {
						paint.FillShape(gtx.Ops, t.fill, clip.Rect{Max: gtx.Constraints.Min}.Op())
						return D{Size: gtx.Constraints.Min}
					}, t.label.Layout)
				})
			})
		})
	})
}

func (ui *UI) layoutToolbar(gtx C) D {
	button := func(btn *widget.Clickable, icon *widget.Icon, desc string) layout.FlexChild {
		return layout.Rigid(func(gtx C) D {
			b := material.IconButton(ui.th, btn, icon, desc)
			b.Size = 20
			b.Inset = layout.UniformInset(6)
			return layout.UniformInset(2).Layout(gtx, b.Layout)
		})
	}
	title := "Generated data"
	if ui.session.Path != "" {
		title = ui.session.Path
	}
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		button(&ui.openBtn, openIcon, "Open data file"),
		button(&ui.reloadBtn, reloadIcon, "Reload"),
		button(&ui.replayBtn, replayIcon, "Replay animation"),
		layout.Rigid(layout.Spacer{Width: 8}.Layout),
		layout.Flexed(1, func(gtx C) D {
			l := material.Body2(ui.th, title)
			l.MaxLines = 1
			return l.Layout(gtx)
		}),
		layout.Flexed(1, func(gtx C) D {
			return layout.Flex{}.Layout(gtx,
				layout.Flexed(1, Tab(ui.th, &ui.tab, tabGraph, "Graph").Layout),
				layout.Flexed(1, Tab(ui.th, &ui.tab, tabData, "Data").Layout),
			)
		}),
	)
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(ui.layoutToolbar),
		layout.Rigid(func(gtx C) D {
			if len(ui.loadErr) == 0 {
				return D{}
			}
			l := material.Body1(ui.th, ui.loadErr)
			l.Color = color.NRGBA{R: 150, A: 255}
			return l.Layout(gtx)
		}),
		layout.Flexed(1, func(gtx C) D {
			if ui.tab.Value == tabData {
				return ui.layoutDataTable(gtx)
			}
			return ui.view.Layout(gtx)
		}),
	)
}

// layoutDataTable shows the loaded rows, label column first.
func (ui *UI) layoutDataTable(gtx C) D {
	data := ui.session.Data
	th := ui.th
	table := component.Table(th, &ui.dataTable)
	colWidth := gtx.Dp(100)
	rowHeight := gtx.Sp(20)
	return table.Layout(gtx, data.NumberOfPoints(), len(data.Names)+1,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			return min(colWidth, constraint)
		},
		func(gtx C, index int) D {
			heading := data.LabelHeading
			if index > 0 {
				heading = data.Names[index-1]
			}
			l := material.Body1(th, heading)
			l.Color = th.ContrastFg
			l.MaxLines = 1
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
			txt := data.Label(row)
			if col > 0 {
				txt = strconv.FormatFloat(data.Values[col-1][row], 'f', -1, 64)
			}
			return layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				l := material.Body2(th, txt)
				l.MaxLines = 1
				if col > 0 {
					l.Alignment = text.End
				}
				return l.Layout(gtx)
			})
		})
}

func (ui *UI) layoutStartScreen(gtx C) D {
	msg := "No data yet."
	if ui.loadErr != "" {
		msg = ui.loadErr
	}
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body1(ui.th, msg).Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.openBtn, "Open Data File").Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.session.Data.Initialized() {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
