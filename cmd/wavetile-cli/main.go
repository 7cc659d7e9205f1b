// wavetile.go - a web-based wave-function-collapse map builder.
// Copyright (C) 2025 the wavetile.go authors.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
// Licensed under the LGPL v3.  See the LICENSE file for details

// Command-line map builder: solves offline from a rule-grid
// summary file, without the web server or the storage tiers.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/greenfold/wavetile.go/wfc"
)

// exit codes
const (
	cleanShutdown = iota
	usageShutdown
	layoutShutdown
	contradictionShutdown
)

func main() {
	os.Exit(run(os.Stdout, os.Args[1:]))
}

// run does all the work of main, against an argument list and an
// output stream the tests can control.
func run(out io.Writer, args []string) int {
	flags := flag.NewFlagSet("wavetile-cli", flag.ContinueOnError)
	var (
		layoutPath = flags.String("layout", "", "path to a rule-grid summary JSON file (default: a built-in meadow)")
		width      = flags.Int("width", 16, "output map width")
		height     = flags.Int("height", 10, "output map height")
		seed       = flags.Int64("seed", 0, "random seed (default: time-based)")
		steps      = flags.Int("steps", 0, "propagation steps per tick (default: solver default)")
		history    = flags.Int("history", -1, "guesses kept for backtracking (default: solver default)")
		ticks      = flags.Int("ticks", 100000, "maximum solver ticks before giving up")
		legend     = flags.Bool("legend", false, "print the palette legend under the map")
	)
	if err := flags.Parse(args); err != nil {
		return usageShutdown
	}

	summary, err := loadSummary(*layoutPath)
	if err != nil {
		log.Printf("Couldn't load layout: %v", err)
		return layoutShutdown
	}
	rules, err := wfc.New(summary)
	if err != nil {
		log.Printf("Layout won't build a rule grid: %v", err)
		return layoutShutdown
	}

	tuning := wfc.DefaultTuning()
	if *steps > 0 {
		tuning.StepsPerTick = *steps
	}
	if *history >= 0 {
		tuning.HistorySize = *history
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	solver, err := wfc.NewSolver(rules, *width, *height, tuning, *seed)
	if err != nil {
		log.Printf("Couldn't build a solver: %v", err)
		return usageShutdown
	}

	progress := solver.Progress()
	if progress == wfc.ProgressUnconfigured {
		log.Printf("Layout has no exemplar tiles; nothing to solve.")
		return layoutShutdown
	}
	start := time.Now()
	tick := 0
	for ; tick < *ticks && progress == wfc.ProgressWorking; tick++ {
		progress = solver.Tick()
	}
	log.Printf("Went %v after %d ticks in %v.", progress, tick, time.Since(start))

	fmt.Fprint(out, solver.Grid().String())
	if *legend {
		fmt.Fprint(out, rules.Palette().Legend())
	}

	state := solver.State()
	if progress != wfc.ProgressStable || state.Impossible > 0 {
		log.Printf("Map has %d contradicted cells.", state.Impossible)
		return contradictionShutdown
	}
	return cleanShutdown
}

// loadSummary reads a rule-grid summary from the given JSON file,
// or returns the built-in meadow exemplar when no file is named.
func loadSummary(path string) (*wfc.Summary, error) {
	if path == "" {
		return meadowSummary(), nil
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var summary wfc.Summary
	if err := json.Unmarshal(bytes, &summary); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return &summary, nil
}

// meadowSummary is a small exemplar over the default palette: a
// path running through grass, so the CLI can demonstrate a solve
// with no inputs at all.
func meadowSummary() *wfc.Summary {
	const (
		protoGrass        = 3
		protoPathStraight = 13
		protoPathTile     = 14
	)
	tile := func(proto int, o wfc.Orientation) *wfc.TileRef {
		return &wfc.TileRef{Prototype: proto, Orientation: o}
	}
	// a 3x3 meadow with a path crossing west to east; cells are
	// in x-major order with y growing northward
	return &wfc.Summary{
		Width:  3,
		Height: 3,
		Cells: []*wfc.TileRef{
			tile(protoGrass, wfc.North),
			tile(protoPathStraight, wfc.East),
			tile(protoGrass, wfc.North),
			tile(protoGrass, wfc.North),
			tile(protoPathTile, wfc.North),
			tile(protoGrass, wfc.North),
			tile(protoGrass, wfc.North),
			tile(protoPathStraight, wfc.East),
			tile(protoGrass, wfc.North),
		},
	}
}
