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

Tile sets

*/

// A tileset is a set of tile codes, represented as a sorted slice.
// We use tilesets for cell superpositions, adjacency table entries,
// and the tile universe.  The sorted representation gives us
// deterministic iteration, which keeps seeded solver runs
// reproducible.
type tileset []int

// newTilesetCopy: make a copy of a tileset.
func newTilesetCopy(in tileset) tileset {
	if in == nil {
		return nil
	}
	out := make(tileset, len(in))
	copy(out, in)
	return out
}

// Find value v, returning where it should be in the tileset and
// whether it was found there.
func (ts *tileset) find(v int) (int, bool) {
	end := len(*ts)
	where := end
	for i := 0; i < end; i++ {
		if (*ts)[i] == v {
			return i, true
		}
		if (*ts)[i] > v {
			where = i
			break
		}
	}
	return where, false
}

// contains reports whether v is in the set.
func (ts tileset) contains(v int) bool {
	_, found := ts.find(v)
	return found
}

// Insert value v, returning whether it was there already.
func (ts *tileset) insert(v int) bool {
	end := len(*ts)
	where, found := ts.find(v)
	if found {
		return true
	}
	// insert by lengthening, shifting, inserting
	*ts = append(*ts, v)
	if where < end {
		copy((*ts)[where+1:], (*ts)[where:])
		(*ts)[where] = v
	}
	return false
}

// Remove value v, returning whether it was there.
func (ts *tileset) remove(v int) bool {
	end := len(*ts)
	for i := 0; i < end; i++ {
		tv := (*ts)[i]
		if tv == v {
			copy((*ts)[i:], (*ts)[i+1:])
			*ts = (*ts)[:end-1]
			return true
		}
		if tv > v {
			return false
		}
	}
	return false
}

// Intersect the passed tileset in place, returning whether anything
// was removed.
func (ts *tileset) intersect(xs tileset) bool {
	tend, xend := len(*ts), len(xs)
	ti := 0
	newend := ti
	for xi := 0; ti < tend && xi < xend; {
		tv, xv := (*ts)[ti], xs[xi]
		switch {
		case tv == xv:
			if newend != ti {
				(*ts)[newend] = tv
			}
			newend++
			ti++
			xi++
		case tv < xv:
			ti++
		case tv > xv:
			xi++
		}
	}
	*ts = (*ts)[:newend]
	return newend < tend
}

// Merge the passed tileset into this one (set union).
func (ts *tileset) merge(xs tileset) {
	for _, v := range xs {
		ts.insert(v)
	}
}

// equal reports whether two tilesets hold the same values.
func (ts tileset) equal(xs tileset) bool {
	if len(ts) != len(xs) {
		return false
	}
	for i := range ts {
		if ts[i] != xs[i] {
			return false
		}
	}
	return true
}

// tiles unpacks the set into Tile values, in set order.
func (ts tileset) tiles() []Tile {
	out := make([]Tile, len(ts))
	for i, code := range ts {
		out[i] = tileFromCode(code)
	}
	return out
}
