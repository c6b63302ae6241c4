package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"git.sr.ht/~whereswaldon/scroll-graph/graph"
)

const (
	DefaultChartConfigPath = "config/chart.json"
	defaultReloadInterval  = 250
)

// ChartConfig is the JSON document describing a chart.
type ChartConfig struct {
	Graph GraphConfig `json:"graph"`
	// ReferenceLines are drawn unless omitted.
	ReferenceLines *ReferenceConfig `json:"reference_lines,omitempty"`
	// Plots configures plots by series name. Series without an entry get
	// a default line plot.
	Plots            []PlotConfig `json:"plots,omitempty"`
	Background       string       `json:"background,omitempty"`
	ReloadIntervalMS int          `json:"reload_interval_ms"`
}

type GraphConfig struct {
	AdaptRange           bool    `json:"adapt_range"`
	StartAtZero          bool    `json:"start_at_zero"`
	AnimateOnAdapt       bool    `json:"animate_on_adapt"`
	AnimateOnStartup     bool    `json:"animate_on_startup"`
	RangeMin             float64 `json:"range_min"`
	RangeMax             float64 `json:"range_max"`
	PointSpacing         float32 `json:"point_spacing"`
	LeftPadding          float32 `json:"left_padding"`
	RightPadding         float32 `json:"right_padding"`
	TopMargin            float32 `json:"top_margin"`
	BottomMargin         float32 `json:"bottom_margin"`
	Direction            string  `json:"direction"`
	StaggerDelay         float64 `json:"stagger_delay"`
	StartupStagger       float64 `json:"startup_stagger"`
	AnimationDuration    float64 `json:"animation_duration"`
	Animation            string  `json:"animation"`
	ShowDataPointLabels  bool    `json:"show_data_point_labels"`
	DataPointLabelHeight float32 `json:"data_point_label_height"`
	LabelSparsity        int     `json:"label_sparsity"`
}

func DefaultChartConfig() ChartConfig {
	g := graph.DefaultConfig()
	refs := DefaultReferenceConfig()
	return ChartConfig{
		Graph: GraphConfig{
			AdaptRange:           true,
			AnimateOnAdapt:       g.AnimateOnAdapt,
			AnimateOnStartup:     g.AnimateOnStartup,
			RangeMin:             g.RangeMin,
			RangeMax:             g.RangeMax,
			PointSpacing:         g.PointSpacing,
			LeftPadding:          g.LeftPadding,
			RightPadding:         g.RightPadding,
			TopMargin:            g.TopMargin,
			BottomMargin:         g.BottomMargin,
			Direction:            g.Direction.String(),
			StaggerDelay:         g.StaggerDelay,
			StartupStagger:       g.StartupStagger,
			AnimationDuration:    g.AnimationDuration,
			Animation:            g.Animation.String(),
			ShowDataPointLabels:  true,
			DataPointLabelHeight: g.DataPointLabelHeight,
			LabelSparsity:        g.LabelSparsity,
		},
		ReferenceLines:   &refs,
		ReloadIntervalMS: defaultReloadInterval,
	}
}

func ResolveChartConfigPath() string {
	if fromEnv := os.Getenv("SCROLL_GRAPH_CONFIG"); fromEnv != "" {
		return fromEnv
	}
	return DefaultChartConfigPath
}

// LoadChartConfig reads the config at path on top of the defaults. A
// missing file yields the defaults.
func LoadChartConfig(path string) (ChartConfig, error) {
	cfg := DefaultChartConfig()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return DefaultChartConfig(), fmt.Errorf("failed decoding %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c *ChartConfig) applyDefaults() {
	if c.Graph.PointSpacing == 0 {
		c.Graph.PointSpacing = graph.DefaultConfig().PointSpacing
	}
	if c.Graph.LabelSparsity == 0 {
		c.Graph.LabelSparsity = 1
	}
	if c.ReloadIntervalMS == 0 {
		c.ReloadIntervalMS = defaultReloadInterval
	}
}

func (c ChartConfig) Validate() error {
	if _, err := c.Graph.ToGraph(); err != nil {
		return err
	}
	if c.ReloadIntervalMS < 0 {
		return fmt.Errorf("reload_interval_ms must be >= 0")
	}
	if _, err := ParseColor(c.Background); err != nil {
		return fmt.Errorf("invalid background: %w", err)
	}
	if c.ReferenceLines != nil {
		if _, _, err := c.ReferenceLines.ToGraph(); err != nil {
			return err
		}
	}
	seen := make(map[string]bool, len(c.Plots))
	for i, p := range c.Plots {
		if p.ID == "" {
			return fmt.Errorf("plot %d has no id", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate plot id %q", p.ID)
		}
		seen[p.ID] = true
		if _, _, err := p.ToGraph(color.NRGBA{A: 0xff}); err != nil {
			return fmt.Errorf("plot %q: %w", p.ID, err)
		}
	}
	return nil
}

// ReloadInterval returns the pacing of reloads caused by file changes.
func (c ChartConfig) ReloadInterval() time.Duration {
	return time.Duration(c.ReloadIntervalMS) * time.Millisecond
}

// Plot returns the configuration of the plot with the given id.
func (c ChartConfig) Plot(id string) (PlotConfig, bool) {
	for _, p := range c.Plots {
		if p.ID == id {
			return p, true
		}
	}
	return PlotConfig{}, false
}

// ToGraph converts the options into a validated graph.Config.
func (g GraphConfig) ToGraph() (graph.Config, error) {
	cfg := graph.DefaultConfig()
	cfg.AdaptRange = g.AdaptRange
	cfg.StartAtZero = g.StartAtZero
	cfg.AnimateOnAdapt = g.AnimateOnAdapt
	cfg.AnimateOnStartup = g.AnimateOnStartup
	cfg.RangeMin = g.RangeMin
	cfg.RangeMax = g.RangeMax
	cfg.PointSpacing = g.PointSpacing
	cfg.LeftPadding = g.LeftPadding
	cfg.RightPadding = g.RightPadding
	cfg.TopMargin = g.TopMargin
	cfg.BottomMargin = g.BottomMargin
	cfg.StaggerDelay = g.StaggerDelay
	cfg.StartupStagger = g.StartupStagger
	cfg.AnimationDuration = g.AnimationDuration
	cfg.ShowDataPointLabels = g.ShowDataPointLabels
	cfg.LabelSparsity = g.LabelSparsity
	if g.DataPointLabelHeight > 0 {
		cfg.DataPointLabelHeight = g.DataPointLabelHeight
	}
	switch g.Direction {
	case "", graph.LeftToRight.String():
		cfg.Direction = graph.LeftToRight
	case graph.RightToLeft.String():
		cfg.Direction = graph.RightToLeft
	default:
		return cfg, fmt.Errorf("unknown direction %q", g.Direction)
	}
	kind, err := graph.ParseAnimationKind(g.Animation)
	if err != nil {
		return cfg, err
	}
	cfg.Animation = kind
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
