package graph

import (
	"errors"
	"fmt"
)

// Direction is the side of the graph the user starts scrolling from.
type Direction uint8

const (
	LeftToRight Direction = iota
	RightToLeft
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "left-to-right"
	case RightToLeft:
		return "right-to-left"
	default:
		return "unknown"
	}
}

// Config holds the options a Controller consults during setup and when
// handling events. Lengths are in pixels and times in seconds.
type Config struct {
	// AdaptRange recomputes the y range from the active points whenever
	// the active window changes. Otherwise RangeMin and RangeMax are used.
	AdaptRange bool
	// StartAtZero pins the minimum of adapted ranges to zero.
	StartAtZero bool
	// AnimateOnAdapt animates points to their new positions when the range
	// changes instead of moving them immediately.
	AnimateOnAdapt bool
	// AnimateOnStartup animates the initial points up from the baseline.
	AnimateOnStartup bool

	RangeMin, RangeMax float64

	PointSpacing float32
	LeftPadding  float32
	RightPadding float32
	TopMargin    float32
	BottomMargin float32

	Direction Direction
	Overscan  int

	// StaggerDelay delays the animation of each point in the window by
	// its position in the window times this value.
	StaggerDelay float64
	// StartupStagger is the stagger used for startup animations.
	StartupStagger    float64
	AnimationDuration float64
	Animation         AnimationKind
	// CustomEasing is used when Animation is AnimationCustom.
	CustomEasing Easing

	// ShowDataPointLabels enables a label per active data point below the
	// graph, taken from the data source.
	ShowDataPointLabels bool
	// DataPointLabelHeight is the height of a data point label, which
	// together with its margins is reserved below the graph.
	DataPointLabelHeight       float32
	DataPointLabelTopMargin    float32
	DataPointLabelBottomMargin float32
	// LabelSparsity shows only every n-th data point label.
	LabelSparsity int
}

// DefaultConfig returns the default options.
func DefaultConfig() Config {
	return Config{
		AnimateOnAdapt:             true,
		AnimateOnStartup:           true,
		RangeMin:                   0,
		RangeMax:                   100,
		PointSpacing:               40,
		LeftPadding:                50,
		RightPadding:               50,
		TopMargin:                  10,
		BottomMargin:               10,
		Overscan:                   DefaultOverscan,
		StartupStagger:             0.15,
		AnimationDuration:          1.5,
		Animation:                  AnimationEaseOut,
		DataPointLabelHeight:       12,
		DataPointLabelTopMargin:    10,
		DataPointLabelBottomMargin: 0,
		LabelSparsity:              1,
	}
}

var errNonPositiveSpacing = errors.New("point spacing must be > 0")

// Validate reports the first invalid option.
func (c Config) Validate() error {
	if c.PointSpacing <= 0 {
		return errNonPositiveSpacing
	}
	for _, length := range []struct {
		name  string
		value float32
	}{
		{"left padding", c.LeftPadding},
		{"right padding", c.RightPadding},
		{"top margin", c.TopMargin},
		{"bottom margin", c.BottomMargin},
	} {
		if length.value < 0 {
			return fmt.Errorf("%s must be >= 0, got %v", length.name, length.value)
		}
	}
	if c.RangeMax <= c.RangeMin {
		return fmt.Errorf("range max (%v) must be greater than range min (%v)", c.RangeMax, c.RangeMin)
	}
	if c.StartAtZero && c.RangeMax <= 0 {
		return fmt.Errorf("range max must be > 0 when the range starts at zero, got %v", c.RangeMax)
	}
	if c.Overscan < 0 {
		return fmt.Errorf("overscan must be >= 0, got %d", c.Overscan)
	}
	if c.StaggerDelay < 0 || c.StartupStagger < 0 || c.AnimationDuration < 0 {
		return fmt.Errorf("animation durations and delays must be >= 0")
	}
	if c.LabelSparsity < 1 {
		return fmt.Errorf("label sparsity must be >= 1, got %d", c.LabelSparsity)
	}
	return nil
}

func (c Config) rangeOptions() RangeOptions {
	return RangeOptions{
		StartAtZero: c.StartAtZero,
		FallbackMin: c.RangeMin,
		FallbackMax: c.RangeMax,
	}
}

// labelRowHeight is the height reserved for data point labels.
func (c Config) labelRowHeight() float32 {
	if !c.ShowDataPointLabels {
		return 0
	}
	return c.DataPointLabelHeight + c.DataPointLabelTopMargin + c.DataPointLabelBottomMargin
}

// ContentWidth returns the width of a graph of count points.
func (c Config) ContentWidth(count int) float32 {
	if count <= 0 {
		return c.LeftPadding + c.RightPadding
	}
	return float32(count-1)*c.PointSpacing + c.LeftPadding + c.RightPadding
}
