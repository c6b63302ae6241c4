package graph

// Event is an input to Controller.Handle.
type Event interface {
	isEvent()
}

// ScrollChanged reports a new horizontal scroll offset in pixels.
type ScrollChanged struct {
	Offset float32
}

// ResizeChanged reports a new viewport size in pixels.
type ResizeChanged struct {
	Width, Height float32
}

// DataReloaded reports that the data source's values or point count
// changed.
type DataReloaded struct{}

// PlotAdded adds a plot. Plots added before the controller is ready are
// attached during setup, in the order they were added.
type PlotAdded struct {
	Plot *Plot
}

// PlotRemoved removes the plot with the given ID.
type PlotRemoved struct {
	ID string
}

func (ScrollChanged) isEvent() {}
func (ResizeChanged) isEvent() {}
func (DataReloaded) isEvent()  {}
func (PlotAdded) isEvent()     {}
func (PlotRemoved) isEvent()   {}
