package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"git.sr.ht/~whereswaldon/scroll-graph/backend"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: generate random walk series as CSV
Usage:

 %[1]s > file

OR

 %[1]s -output data.csv & scroll-graph -input data.csv

Rows are appended every -sample-interval until interrupted. An -output ending
in .xlsx writes -points rows to a workbook and exits.

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	dur := flag.Duration("sample-interval", time.Second, "Interval between emitting new rows")
	outputName := flag.String("output", "-", "Output file for CSV data")
	seriesNames := flag.String("series", "rain,sun,wind", "Comma-separated series names")
	points := flag.Int("points", 50, "Number of rows written before streaming starts")
	flag.Parse()

	var names []string
	for _, name := range strings.Split(*seriesNames, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) < 1 {
		log.Fatalf("no series names given")
	}
	seed := uint64(time.Now().UnixNano())
	rng := rand.New(rand.NewPCG(seed, seed>>1))

	if strings.EqualFold(filepath.Ext(*outputName), ".xlsx") {
		if err := backend.WriteXLSX(*outputName, backend.RandomWalk(rng, names, *points)); err != nil {
			log.Fatalf("failed writing workbook: %v", err)
		}
		return
	}

	var output io.WriteCloser
	if *outputName == "-" {
		output = os.Stdout
	} else {
		f, err := os.Create(*outputName)
		if err != nil {
			log.Fatalf("failed opening output file %q: %v", *outputName, err)
		}
		output = f
	}
	w := csv.NewWriter(output)
	walkers := make([]*backend.Walker, len(names))
	for i := range walkers {
		walkers[i] = backend.NewWalker(rng, 50)
	}
	row := 0
	record := make([]string, len(names)+1)
	writeRow := func() {
		row++
		record[0] = strconv.Itoa(row)
		for i, walker := range walkers {
			record[i+1] = strconv.FormatFloat(walker.Next(), 'f', -1, 64)
		}
		if err := w.Write(record); err != nil {
			log.Fatalf("failed writing row: %v", err)
		}
	}

	if err := w.Write(append([]string{"label"}, names...)); err != nil {
		log.Fatalf("failed writing headings: %v", err)
	}
	for range *points {
		writeRow()
	}
	w.Flush()

	ticker := time.NewTicker(*dur)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer ticker.Stop()
	for {
		select {
		case <-sigChan:
			// We've gotten an interrupt; shut down.
			w.Flush()
			if err := output.Close(); err != nil {
				log.Printf("failed closing output: %v", err)
			}
			return
		case <-ticker.C:
			writeRow()
			w.Flush()
			if err := w.Error(); err != nil {
				log.Fatalf("failed flushing output: %v", err)
			}
		}
	}
}
