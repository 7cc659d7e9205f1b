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

import (
	"strings"
)

/*

Print forms of cells

Each cell prints as two characters.  A resolved cell shows its
prototype letter and an orientation mark (^ > v <).  An undecided
cell shows its entropy, in a single base-36-ish digit with + for
anything bigger.  An impossible cell shows " !", an unconfigured one
" .".

*/

var entropyDigits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// estr renders a candidate count.
func estr(entropy int) string {
	if entropy < len(entropyDigits) {
		return " " + string(entropyDigits[entropy])
	}
	return " +"
}

// protoLetter renders a prototype index.
func protoLetter(index int) byte {
	if index < 26 {
		return byte('a' + index)
	}
	return '?'
}

func tstr(t Tile) string {
	return string([]byte{protoLetter(t.Prototype), orientationMarks[t.Orientation]})
}

/*

Pretty-printed grids in strings, for debugging and the terminal
client.

*/

// String gives a pretty-printed view of the output grid, north row
// first.
func (g *Grid) String() (result string) {
	if g == nil {
		return
	}
	for y := g.height - 1; y >= 0; y-- {
		parts := make([]string, g.width)
		for x := 0; x < g.width; x++ {
			switch g.StateAt(x, y) {
			case CellUnconfigured:
				parts[x] = " ."
			case CellImpossible:
				parts[x] = " !"
			case CellResolved:
				t, _ := g.ResolvedAt(x, y)
				parts[x] = tstr(t)
			default:
				parts[x] = estr(g.EntropyAt(x, y))
			}
		}
		result += strings.Join(parts, " ") + "\n"
	}
	return
}

// String gives a pretty-printed view of the rule grid, north row
// first, with empty slots as " .".
func (rg *RuleGrid) String() (result string) {
	if rg == nil {
		return
	}
	for y := rg.height - 1; y >= 0; y-- {
		parts := make([]string, rg.width)
		for x := 0; x < rg.width; x++ {
			if t, ok := rg.At(x, y); ok {
				parts[x] = tstr(t)
			} else {
				parts[x] = " ."
			}
		}
		result += strings.Join(parts, " ") + "\n"
	}
	return
}

// Legend returns one line per palette entry mapping its print letter
// to its name, for use under a printed grid.
func (pal Palette) Legend() (result string) {
	for _, p := range pal {
		result += string(protoLetter(p.Index)) + ": " + p.Name + " (" + p.Equivalence.String() + ")\n"
	}
	return
}
