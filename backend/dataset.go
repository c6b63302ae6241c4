package backend

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
)

// Dataset is an immutable table of series sharing one row of labels. It
// implements graph.DataSource with the series names as plot IDs.
type Dataset struct {
	// LabelHeading names the label column.
	LabelHeading string
	// Names lists the series in column order.
	Names  []string
	Labels []string
	// Values holds one slice per series, each as long as Labels.
	Values [][]float64
}

// Initialized reports whether the dataset holds any series.
func (d *Dataset) Initialized() bool {
	return d != nil && len(d.Names) != 0
}

// NumberOfPoints returns the number of rows.
func (d *Dataset) NumberOfPoints() int {
	if d == nil {
		return 0
	}
	return len(d.Labels)
}

// SeriesIndex returns the column of the named series, or -1.
func (d *Dataset) SeriesIndex(name string) int {
	return slices.Index(d.Names, name)
}

// Value returns the value of series plotID at index. It panics if the
// series does not exist.
func (d *Dataset) Value(plotID string, index int) float64 {
	i := d.SeriesIndex(plotID)
	if i < 0 {
		panic(fmt.Errorf("dataset has no series %q", plotID))
	}
	return d.Values[i][index]
}

// Label returns the row label at index.
func (d *Dataset) Label(index int) string {
	return d.Labels[index]
}

// PlotLabel formats the value of series plotID at index.
func (d *Dataset) PlotLabel(plotID string, index int) (string, bool) {
	i := d.SeriesIndex(plotID)
	if i < 0 {
		return "", false
	}
	return strconv.FormatFloat(d.Values[i][index], 'f', -1, 64), true
}

// Records returns the dataset as rows of cells, heading first.
func (d *Dataset) Records() [][]string {
	records := make([][]string, 0, len(d.Labels)+1)
	records = append(records, append([]string{d.LabelHeading}, d.Names...))
	for row, label := range d.Labels {
		record := make([]string, 0, len(d.Names)+1)
		record = append(record, label)
		for col := range d.Names {
			record = append(record, strconv.FormatFloat(d.Values[col][row], 'f', -1, 64))
		}
		records = append(records, record)
	}
	return records
}

// RandomWalk generates a dataset of series random walks of the given
// length, starting at 50 and staying within [0,100].
func RandomWalk(rng *rand.Rand, names []string, points int) *Dataset {
	d := &Dataset{
		LabelHeading: "label",
		Names:        slices.Clone(names),
		Labels:       make([]string, points),
		Values:       make([][]float64, len(names)),
	}
	for i := range d.Labels {
		d.Labels[i] = strconv.Itoa(i + 1)
	}
	for s := range d.Values {
		walker := NewWalker(rng, 50)
		d.Values[s] = make([]float64, points)
		for i := range d.Values[s] {
			d.Values[s][i] = walker.Next()
		}
	}
	return d
}

// Walker produces a bounded random walk.
type Walker struct {
	rng   *rand.Rand
	value float64
}

// NewWalker starts a walk at start.
func NewWalker(rng *rand.Rand, start float64) *Walker {
	return &Walker{rng: rng, value: start}
}

// Next advances the walk by up to 10 in either direction, staying within
// [0,100], and returns the new value.
func (w *Walker) Next() float64 {
	w.value += (w.rng.Float64() - 0.5) * 20
	w.value = min(max(w.value, 0), 100)
	return float64(int(w.value*100)) / 100
}
