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

Rule grids

*/

// Side length limits for rule grids.  The exemplar is hand-authored,
// so it stays small.
const (
	minRuleSide = 1
	maxRuleSide = 64
)

// emptyCell marks an unauthored exemplar slot in the cells array.
const emptyCell = -1

// A RuleGrid is the hand-authored exemplar the adjacency rules are
// read from.  Every edit bumps the generation counter; solvers
// compare generations to notice rule changes and rebuild themselves
// before doing anything else.
type RuleGrid struct {
	width, height int
	palette       Palette
	cells         []int // tile code per cell, emptyCell if unauthored
	generation    uint64
}

// NewRuleGrid creates an empty exemplar of the given dimensions over
// the given palette.
//
// When an error is returned from this function, it is always an
// Error value.
func NewRuleGrid(width, height int, palette Palette) (*RuleGrid, error) {
	if width < minRuleSide || width > maxRuleSide {
		return nil, rangeError(WidthAttribute, width, minRuleSide, maxRuleSide)
	}
	if height < minRuleSide || height > maxRuleSide {
		return nil, rangeError(HeightAttribute, height, minRuleSide, maxRuleSide)
	}
	cells := make([]int, width*height)
	for i := range cells {
		cells[i] = emptyCell
	}
	return &RuleGrid{width: width, height: height, palette: palette, cells: cells}, nil
}

func (rg *RuleGrid) Width() int       { return rg.width }
func (rg *RuleGrid) Height() int      { return rg.height }
func (rg *RuleGrid) Palette() Palette { return rg.palette }

// Generation returns the edit counter.  It changes on every Set and
// Clear, never otherwise.
func (rg *RuleGrid) Generation() uint64 { return rg.generation }

func (rg *RuleGrid) index(x, y int) int {
	return x*rg.height + y
}

func (rg *RuleGrid) inBounds(x, y int) bool {
	return x >= 0 && x < rg.width && y >= 0 && y < rg.height
}

// At returns the tile authored at the given coordinates.  Empty
// slots and out-of-bounds coordinates both report absence, never an
// error: a missing neighbor is a fact about the exemplar, not a
// failure.
func (rg *RuleGrid) At(x, y int) (Tile, bool) {
	if !rg.inBounds(x, y) {
		return Tile{}, false
	}
	code := rg.cells[rg.index(x, y)]
	if code == emptyCell {
		return Tile{}, false
	}
	return tileFromCode(code), true
}

// Set authors a tile at the given coordinates, canonicalizing its
// orientation through the prototype's equivalence class first.
//
// When an error is returned from this function, it is always an
// Error value.
func (rg *RuleGrid) Set(x, y int, t Tile) error {
	if !rg.inBounds(x, y) {
		return coordinatesError(x, y, rg.width, rg.height)
	}
	if t.Prototype < 0 || t.Prototype >= len(rg.palette) {
		return Error{
			Scope:     SummaryScope,
			Attribute: PrototypeAttribute,
			Condition: UnknownPrototypeCondition,
			Values:    ErrorData{t.Prototype, len(rg.palette)},
		}
	}
	if !t.Orientation.valid() {
		return Error{
			Scope:     SummaryScope,
			Attribute: OrientationAttribute,
			Condition: NotInSetCondition,
			Values:    ErrorData{int(t.Orientation)},
		}
	}
	rg.cells[rg.index(x, y)] = rg.palette.canonical(t).code()
	rg.generation++
	return nil
}

// Clear removes the tile at the given coordinates, if any.
func (rg *RuleGrid) Clear(x, y int) error {
	if !rg.inBounds(x, y) {
		return coordinatesError(x, y, rg.width, rg.height)
	}
	rg.cells[rg.index(x, y)] = emptyCell
	rg.generation++
	return nil
}

// Summary returns the serializable form of the rule grid.
func (rg *RuleGrid) Summary() *Summary {
	cells := make([]*TileRef, len(rg.cells))
	for i, code := range rg.cells {
		if code == emptyCell {
			continue
		}
		t := tileFromCode(code)
		cells[i] = &TileRef{Prototype: t.Prototype, Orientation: t.Orientation}
	}
	return &Summary{
		Width:   rg.width,
		Height:  rg.height,
		Palette: rg.palette.Entries(),
		Cells:   cells,
	}
}

/*

Adjacency rulesets

*/

// A Ruleset is the adjacency table extracted from a rule grid: for
// every tile in the universe, and every direction, the set of tiles
// which may sit next to it in that direction.  A direction with an
// empty set means the exemplar never showed a neighbor there; during
// propagation nothing is admitted through it.  Rulesets are built
// whole and never mutated, so a solver can read one freely until the
// next rule change swaps in a replacement.
type Ruleset struct {
	allowed  map[int]*[orientationCount]tileset
	universe tileset
}

// Empty reports whether the exemplar had no filled cells at all.
func (rs *Ruleset) Empty() bool {
	return len(rs.universe) == 0
}

// Size returns the number of distinct tiles in the universe.
func (rs *Ruleset) Size() int {
	return len(rs.universe)
}

// Universe returns the sorted codes of every known tile.  Callers
// must not modify it.
func (rs *Ruleset) Universe() tileset {
	return rs.universe
}

// Allowed returns the neighbor set for a tile code in a direction.
// The result may be nil or empty; callers must not modify it.
func (rs *Ruleset) Allowed(code int, o Orientation) tileset {
	entry, ok := rs.allowed[code]
	if !ok {
		return nil
	}
	return entry[o]
}

// AllowedTiles is the exported form of Allowed, for clients that
// want to display or debug the extracted rules.
func (rs *Ruleset) AllowedTiles(t Tile, o Orientation) []Tile {
	return rs.Allowed(t.code(), o).tiles()
}

// ensureEntry returns the direction table for a tile code, creating
// it if needed.  Creating the entry is what puts the tile in the
// universe, so even a tile with no recorded neighbors is a valid
// candidate everywhere.
func ensureEntry(table map[int]*[orientationCount]tileset, code int) *[orientationCount]tileset {
	entry, ok := table[code]
	if !ok {
		entry = new([orientationCount]tileset)
		table[code] = entry
	}
	return entry
}

// extract reads the exemplar and builds the adjacency table:
// a neighbor scan over every filled cell, then closure over the
// rotation group.
func (rg *RuleGrid) extract() *Ruleset {
	raw := make(map[int]*[orientationCount]tileset)
	for x := 0; x < rg.width; x++ {
		for y := 0; y < rg.height; y++ {
			t, ok := rg.At(x, y)
			if !ok {
				continue
			}
			entry := ensureEntry(raw, t.code())
			for _, o := range Orientations() {
				nc := o.Offset(Coordinates{x, y})
				if n, ok := rg.At(nc.X, nc.Y); ok {
					entry[o].insert(n.code())
				}
			}
		}
	}
	expanded := expandRotations(raw, rg.palette)
	rs := &Ruleset{allowed: expanded}
	for code := range expanded {
		rs.universe.insert(code)
	}
	return rs
}

// expandRotations closes an adjacency table over the rotation group:
// every authored rule also holds with both tiles and the direction
// rotated by the same amount.  Rotated tiles are canonicalized
// through their equivalence classes, so symmetric prototypes
// generate fewer than four distinct copies and duplicate insertions
// collapse.
func expandRotations(raw map[int]*[orientationCount]tileset, pal Palette) map[int]*[orientationCount]tileset {
	expanded := make(map[int]*[orientationCount]tileset)
	for code, entry := range raw {
		t := tileFromCode(code)
		proto := pal[t.Prototype]
		for k := 0; k < orientationCount; k++ {
			rotated := proto.MakeRotatedTile(t.Orientation, k)
			target := ensureEntry(expanded, rotated.code())
			for _, o := range Orientations() {
				allowed := entry[o]
				if len(allowed) == 0 {
					continue
				}
				dst := &target[o.Rotated(k)]
				for _, ac := range allowed {
					at := tileFromCode(ac)
					ap := pal[at.Prototype]
					dst.insert(ap.MakeRotatedTile(at.Orientation, k).code())
				}
			}
		}
	}
	return expanded
}
