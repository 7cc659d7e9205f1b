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

// Package wfc generates fully-tiled rectangular maps from a small
// hand-authored rule grid, using wave function collapse.  It supports
// both a golang interface and a web interface to the solver.
//
// In this package, the rule grid is an exemplar: a small grid whose
// cells are either empty or hold a concrete oriented tile.  Reading
// the exemplar produces an adjacency table that records, for every
// tile and every cardinal direction, the set of tiles seen next to it
// in that direction.  The table is then closed over the rotation
// group: every authored adjacency also holds in its four rotated
// forms, with rotationally symmetric tiles collapsing to their
// canonical orientation along the way.
//
// The output grid starts with every cell in superposition over the
// whole tile universe.  The solver repeatedly observes the cell with
// the fewest remaining candidates, commits it to one of them at
// random, and propagates the resulting restrictions to its neighbors
// until no cell changes.  A cell whose candidate set becomes empty is
// impossible; that is a displayed state, not a failure, and the
// solver keeps working on the rest of the grid.  When snapshot
// history is enabled the solver instead rolls back the most recent
// guess and tries another candidate.
package wfc

/*

Rule grid summaries

*/

// A Summary is the serializable form of a rule grid: its dimensions,
// its palette, and one optional tile per cell.  Cells are stored in
// x-major order: index x*height + y, with y growing northward.  A nil
// cell is an empty exemplar slot.  Summaries are the form in which
// rule grids travel to web clients, to files, and to storage.
type Summary struct {
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Palette []PaletteEntry `json:"palette,omitempty"`
	Cells   []*TileRef     `json:"cells"`
}

// A PaletteEntry describes one prototype in a summary: a display
// name for the underlying asset and its rotational equivalence
// class.  The prototype's index is its position in the palette.
type PaletteEntry struct {
	Name        string      `json:"name"`
	Equivalence Equivalence `json:"equivalence"`
}

// A TileRef names a concrete oriented tile by prototype index and
// orientation.
type TileRef struct {
	Prototype   int         `json:"prototype"`
	Orientation Orientation `json:"orientation"`
}

// New builds a rule grid from a summary.  The summary's palette may
// be empty, in which case the default palette is used.  The cell
// count must match the dimensions, every referenced prototype must
// exist in the palette, and every orientation must be cardinal.
// Orientations of symmetric prototypes are canonicalized on the way
// in, so reloading a summary never yields more tile variants than
// the palette allows.
//
// When an error is returned from this function, it is always an
// Error value.
func New(summary *Summary) (*RuleGrid, error) {
	if summary == nil {
		return nil, Error{
			Scope:     ArgumentScope,
			Condition: EmptyArgumentCondition,
		}
	}
	palette := DefaultPalette()
	if len(summary.Palette) > 0 {
		palette = NewPalette(summary.Palette)
	}
	rg, err := NewRuleGrid(summary.Width, summary.Height, palette)
	if err != nil {
		return nil, err
	}
	if len(summary.Cells) != summary.Width*summary.Height {
		return nil, Error{
			Scope:     SummaryScope,
			Attribute: CellsAttribute,
			Condition: WrongCountCondition,
			Values:    ErrorData{len(summary.Cells), summary.Width * summary.Height},
		}
	}
	for i, ref := range summary.Cells {
		if ref == nil {
			continue
		}
		x, y := i/summary.Height, i%summary.Height
		if err := rg.Set(x, y, Tile{ref.Prototype, ref.Orientation}); err != nil {
			return nil, err
		}
	}
	return rg, nil
}

/*

Solver progress and cell states

*/

// Progress reports how far a solver has gotten.
type Progress int

// Constants for the solver progress values.
const (
	// ProgressUnconfigured: the rule grid has no filled cells yet,
	// so there is no tile universe and nothing to solve.
	ProgressUnconfigured Progress = iota
	// ProgressWorking: there are cells left to observe or
	// restrictions left to propagate.
	ProgressWorking
	// ProgressStable: no cell has more than one candidate left.
	// Some cells may be impossible; stability does not imply
	// success.
	ProgressStable
)

var progressNames = map[Progress]string{
	ProgressUnconfigured: "unconfigured",
	ProgressWorking:      "working",
	ProgressStable:       "stable",
}

func (p Progress) String() string {
	if n, ok := progressNames[p]; ok {
		return n
	}
	return "invalid"
}

// CellState classifies one output cell by its candidate count.
type CellState int

// Constants for the cell states.  Unconfigured is distinct from
// impossible: a cell with no candidates because no rules have been
// authored yet has not failed at anything.
const (
	CellUnconfigured CellState = iota
	CellUndecided
	CellResolved
	CellImpossible
)

var cellStateNames = map[CellState]string{
	CellUnconfigured: "unconfigured",
	CellUndecided:    "undecided",
	CellResolved:     "resolved",
	CellImpossible:   "impossible",
}

func (s CellState) String() string {
	if n, ok := cellStateNames[s]; ok {
		return n
	}
	return "invalid"
}
