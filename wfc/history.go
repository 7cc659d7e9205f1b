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

Guess history

*/

// A guess records one observation: the cell that was collapsed, the
// tile it was collapsed to, and a snapshot of every cell's wave just
// before the collapse.  Restoring the snapshot and removing the tile
// from the cell's candidates is exactly "undo this guess and don't
// try it again".
type guess struct {
	cell  int
	tile  int // tile code
	waves []tileset
}

// A guessHistory is a bounded log of guesses, oldest first.  When
// the limit is reached the oldest snapshots are dropped, so deep
// contradictions may outrun the history; those are left standing.
type guessHistory struct {
	limit   int
	guesses []guess
}

func (h *guessHistory) clear() {
	h.guesses = nil
}

func (h *guessHistory) push(g guess) {
	if h.limit <= 0 {
		return
	}
	h.guesses = append(h.guesses, g)
	if len(h.guesses) > h.limit {
		over := len(h.guesses) - h.limit
		h.guesses = append(h.guesses[:0], h.guesses[over:]...)
	}
}

func (h *guessHistory) pop() (guess, bool) {
	if len(h.guesses) == 0 {
		return guess{}, false
	}
	g := h.guesses[len(h.guesses)-1]
	h.guesses[len(h.guesses)-1] = guess{} // release snapshot storage
	h.guesses = h.guesses[:len(h.guesses)-1]
	return g, true
}

// snapshotWaves copies every cell's wave.
func snapshotWaves(g *Grid) []tileset {
	waves := make([]tileset, len(g.cells))
	for i := range g.cells {
		waves[i] = newTilesetCopy(g.cells[i].wave)
	}
	return waves
}

// restoreWaves puts a snapshot back and clears all dirty flags; the
// caller decides what to re-propagate.
func restoreWaves(g *Grid, waves []tileset) {
	for i := range g.cells {
		g.cells[i].wave = newTilesetCopy(waves[i])
		g.cells[i].dirty = false
	}
}
