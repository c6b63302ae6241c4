package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"

	"git.sr.ht/~whereswaldon/scroll-graph/backend"
	"git.sr.ht/~whereswaldon/scroll-graph/config"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: scrollable graph of CSV or XLSX series
Usage:

 %[1]s -input data.csv

OR

 scroll-graph-gen -output data.csv & %[1]s -input data.csv

The input file is reloaded whenever it changes. Without -input a generated
dataset is shown.

`, os.Args[0])
	flag.PrintDefaults()
}

// demoDataset generates a random walk per configured plot, or three
// series when no plots are configured. Every tenth label is emphasised.
func demoDataset(cfg config.ChartConfig, points int) *backend.Dataset {
	names := make([]string, 0, len(cfg.Plots))
	for _, p := range cfg.Plots {
		names = append(names, p.ID)
	}
	if len(names) == 0 {
		names = []string{"alpha", "beta", "gamma"}
	}
	now := uint64(time.Now().UnixNano())
	data := backend.RandomWalk(rand.New(rand.NewPCG(now, now>>1)), names, points)
	for i := 0; i < len(data.Labels); i += 10 {
		data.Labels[i] = emphasisPrefix + data.Labels[i]
	}
	return data
}

func main() {
	flag.Usage = usage
	configPath := flag.String("config", config.ResolveChartConfigPath(), "Chart configuration file")
	input := flag.String("input", "", "CSV or XLSX file to display")
	sheet := flag.String("sheet", "", "Worksheet to read from XLSX files (default: the first)")
	demoPoints := flag.Int("demo-points", 200, "Number of points generated when no input is given")
	flag.Parse()

	cfg, err := config.LoadChartConfig(*configPath)
	if err != nil {
		log.Fatalf("failed loading chart config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ds, err := backend.NewDatasource(ctx, cfg.ReloadInterval(), *sheet)
	if err != nil {
		log.Fatal(err)
	}
	if *input != "" {
		if err := ds.Load(*input); err != nil {
			log.Printf("failed loading %q: %v", *input, err)
		}
	} else {
		ds.Publish(demoDataset(cfg, *demoPoints))
	}

	go func() {
		w := app.NewWindow(app.Title("Scroll Graph"))
		bundle := backend.NewBundle(ds)
		err := loop(ctx, w, bundle, cfg)
		cancel()
		if closeErr := bundle.Close(); closeErr != nil {
			log.Printf("failed closing backend: %v", closeErr)
		}
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(ctx context.Context, w *app.Window, bundle backend.Bundle, cfg config.ChartConfig) error {
	expl := explorer.NewExplorer(w)
	ws := backend.NewWindowState(ctx, bundle, w.Invalidate)
	ui := NewUI(ws, expl, cfg, w.Invalidate)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
