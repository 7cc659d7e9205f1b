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

package wfc

/*

Output grids

*/

// Side length limits for output grids.
const (
	minGridSide = 1
	maxGridSide = 256
)

// noNeighbor marks a missing connectivity entry at a grid edge.
const noNeighbor = -1

// A waveCell is one output cell: its superposition, a dirty flag set
// while a propagation pass still owes it a visit, and its
// connectivity, the arena index of each cardinal neighbor.
// Connectivity is computed once at grid construction and never
// changes.
type waveCell struct {
	wave      tileset
	dirty     bool
	neighbors [orientationCount]int
}

// A Grid is the output map being solved: a dense arena of wave
// cells.  Only the solver mutates cell waves; everything else reads
// cell states through the accessors.
type Grid struct {
	width, height int
	cells         []waveCell
	configured    bool
}

// newGrid creates an output grid with empty waves and precomputed
// connectivity.
func newGrid(width, height int) (*Grid, error) {
	if width < minGridSide || width > maxGridSide {
		return nil, rangeError(WidthAttribute, width, minGridSide, maxGridSide)
	}
	if height < minGridSide || height > maxGridSide {
		return nil, rangeError(HeightAttribute, height, minGridSide, maxGridSide)
	}
	g := &Grid{width: width, height: height, cells: make([]waveCell, width*height)}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			c := &g.cells[g.index(x, y)]
			for _, o := range Orientations() {
				nc := o.Offset(Coordinates{x, y})
				if nc.X >= 0 && nc.X < width && nc.Y >= 0 && nc.Y < height {
					c.neighbors[o] = g.index(nc.X, nc.Y)
				} else {
					c.neighbors[o] = noNeighbor
				}
			}
		}
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) index(x, y int) int {
	return x*g.height + y
}

// reset discards all solving progress: every cell's wave becomes the
// full tile universe of the given ruleset and no cell is dirty.
// With an empty ruleset the grid is unconfigured rather than
// impossible.
func (g *Grid) reset(rs *Ruleset) {
	universe := rs.Universe()
	for i := range g.cells {
		g.cells[i].wave = newTilesetCopy(universe)
		g.cells[i].dirty = false
	}
	g.configured = !rs.Empty()
}

// StateAt classifies the cell at the given coordinates.
func (g *Grid) StateAt(x, y int) CellState {
	if !g.configured {
		return CellUnconfigured
	}
	switch len(g.cells[g.index(x, y)].wave) {
	case 0:
		return CellImpossible
	case 1:
		return CellResolved
	}
	return CellUndecided
}

// EntropyAt returns the number of candidates left in a cell.
func (g *Grid) EntropyAt(x, y int) int {
	return len(g.cells[g.index(x, y)].wave)
}

// ResolvedAt returns the unique candidate of a resolved cell, and
// whether the cell is resolved at all.
func (g *Grid) ResolvedAt(x, y int) (Tile, bool) {
	wave := g.cells[g.index(x, y)].wave
	if len(wave) != 1 {
		return Tile{}, false
	}
	return tileFromCode(wave[0]), true
}

// CandidatesAt returns a copy of a cell's remaining candidates, in
// deterministic order.
func (g *Grid) CandidatesAt(x, y int) []Tile {
	return g.cells[g.index(x, y)].wave.tiles()
}

// hasUndecided reports whether any cell still has more than one
// candidate.
func (g *Grid) hasUndecided() bool {
	for i := range g.cells {
		if len(g.cells[i].wave) > 1 {
			return true
		}
	}
	return false
}

// countStates tallies resolved, undecided, and impossible cells.
func (g *Grid) countStates() (resolved, undecided, impossible int) {
	for i := range g.cells {
		switch len(g.cells[i].wave) {
		case 0:
			impossible++
		case 1:
			resolved++
		default:
			undecided++
		}
	}
	return
}
