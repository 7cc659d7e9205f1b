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
	"fmt"
)

/*

Equivalence classes

*/

// An Equivalence is the rotational symmetry class of a prototype's
// visual asset.  A 2-fold-symmetric model looks the same after a
// half turn, a 4-fold-symmetric one after any quarter turn, so some
// nominally different orientations denote the same tile.
type Equivalence int

// Constants for the equivalence classes.
const (
	// EquivNone: all four orientations are distinct.
	EquivNone Equivalence = iota
	// EquivHalfTurn: orientations collapse pairwise, north/south to
	// north and east/west to east.
	EquivHalfTurn
	// EquivQuarterTurn: every orientation collapses to north.
	EquivQuarterTurn
)

var equivalenceNames = map[Equivalence]string{
	EquivNone:        "none",
	EquivHalfTurn:    "half-turn",
	EquivQuarterTurn: "quarter-turn",
}

func (e Equivalence) String() string {
	if n, ok := equivalenceNames[e]; ok {
		return n
	}
	return "invalid"
}

// Variants returns how many distinct oriented tiles a prototype of
// this class produces.
func (e Equivalence) Variants() int {
	switch e {
	case EquivHalfTurn:
		return 2
	case EquivQuarterTurn:
		return 1
	}
	return orientationCount
}

/*

Prototypes and tiles

*/

// A Prototype identifies one entry of the asset palette: an index,
// a display name for the underlying model, and the model's
// equivalence class.  Prototypes are the factories for Tile values.
type Prototype struct {
	Index       int
	Name        string
	Equivalence Equivalence
}

// MakeTile produces the tile for this prototype at the given
// orientation, without canonicalization.
func (p Prototype) MakeTile(o Orientation) Tile {
	return Tile{p.Index, o}
}

// MakeRotatedTile rotates the given base orientation by the given
// number of quarter turns and then canonicalizes the result through
// the prototype's equivalence class.  Different rotation amounts can
// therefore yield the same tile; set operations rely on that.
func (p Prototype) MakeRotatedTile(base Orientation, amount int) Tile {
	return Tile{p.Index, p.canonical(base.Rotated(amount))}
}

// canonical maps an orientation to the representative of its
// equivalence class.
func (p Prototype) canonical(o Orientation) Orientation {
	switch p.Equivalence {
	case EquivHalfTurn:
		return o.halved()
	case EquivQuarterTurn:
		return North
	}
	return o
}

// halved collapses a half-turn pair to its representative.
func (o Orientation) halved() Orientation {
	switch o {
	case South:
		return North
	case West:
		return East
	}
	return o
}

// A Tile is a concrete oriented tile: a prototype index plus an
// orientation.  Tiles are the domain elements of the constraint
// problem; they are small comparable values, so they can key maps
// and live in sets.
type Tile struct {
	Prototype   int         `json:"prototype"`
	Orientation Orientation `json:"orientation"`
}

// code packs a tile into a small integer so tilesets can hold sorted
// int slices.  The packing is dense: four codes per prototype.
func (t Tile) code() int {
	return t.Prototype*orientationCount + int(t.Orientation)
}

// tileFromCode unpacks a tileset element.
func tileFromCode(code int) Tile {
	return Tile{code / orientationCount, Orientation(code % orientationCount)}
}

func (t Tile) String() string {
	return fmt.Sprintf("%d@%s", t.Prototype, t.Orientation)
}

/*

Palettes

*/

// A Palette is the ordered table of prototypes a rule grid draws
// from.  The solver never looks at the underlying assets; it only
// needs indices and equivalence classes.
type Palette []Prototype

// NewPalette builds a palette from summary entries.
func NewPalette(entries []PaletteEntry) Palette {
	pal := make(Palette, len(entries))
	for i, e := range entries {
		pal[i] = Prototype{Index: i, Name: e.Name, Equivalence: e.Equivalence}
	}
	return pal
}

// Entries returns the palette's serializable form.
func (pal Palette) Entries() []PaletteEntry {
	entries := make([]PaletteEntry, len(pal))
	for i, p := range pal {
		entries[i] = PaletteEntry{Name: p.Name, Equivalence: p.Equivalence}
	}
	return entries
}

// canonical canonicalizes a tile's orientation through its
// prototype's equivalence class.  The prototype index must be in
// range.
func (pal Palette) canonical(t Tile) Tile {
	return Tile{t.Prototype, pal[t.Prototype].canonical(t.Orientation)}
}

// DefaultPalette returns the palette of the bundled tile models.
func DefaultPalette() Palette {
	names := []struct {
		name  string
		equiv Equivalence
	}{
		{"bridge_center_wood", EquivHalfTurn},
		{"bridge_side_wood", EquivNone},
		{"bridge_wood", EquivHalfTurn},
		{"ground_grass", EquivQuarterTurn},
		{"ground_pathBend", EquivNone},
		{"ground_pathCross", EquivQuarterTurn},
		{"ground_pathCorner", EquivNone},
		{"ground_pathCornerSmall", EquivNone},
		{"ground_pathEndClosed", EquivNone},
		{"ground_pathOpen", EquivQuarterTurn},
		{"ground_pathSide", EquivNone},
		{"ground_pathSideOpen", EquivNone},
		{"ground_pathSplit", EquivNone},
		{"ground_pathStraight", EquivHalfTurn},
		{"ground_pathTile", EquivQuarterTurn},
		{"ground_riverBendBank", EquivNone},
		{"ground_riverCorner", EquivNone},
		{"ground_riverCross", EquivQuarterTurn},
		{"ground_riverCornerSmall", EquivNone},
		{"ground_riverEndClosed", EquivNone},
		{"ground_riverOpen", EquivQuarterTurn},
		{"ground_riverSide", EquivNone},
		{"ground_riverSideOpen", EquivNone},
		{"ground_riverSplit", EquivNone},
		{"ground_riverStraight", EquivHalfTurn},
	}
	pal := make(Palette, len(names))
	for i, n := range names {
		pal[i] = Prototype{Index: i, Name: n.name, Equivalence: n.equiv}
	}
	return pal
}
