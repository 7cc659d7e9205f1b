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
	"testing"
)

func TestOrientationRotated(t *testing.T) {
	if o := North.Rotated(-2); o != South {
		t.Errorf("North rotated -2: got %v, want %v", o, South)
	}
	if o := South.Rotated(1); o != West {
		t.Errorf("South rotated 1: got %v, want %v", o, West)
	}
	if o := West.Rotated(5); o != North {
		t.Errorf("West rotated 5: got %v, want %v", o, North)
	}
	for _, o := range Orientations() {
		if r := o.Rotated(4); r != o {
			t.Errorf("%v rotated 4: got %v", o, r)
		}
		if r := o.Opposite().Opposite(); r != o {
			t.Errorf("%v double opposite: got %v", o, r)
		}
	}
}

func TestOrientationOffset(t *testing.T) {
	origin := Coordinates{3, 5}
	wants := map[Orientation]Coordinates{
		North: {3, 6},
		East:  {4, 5},
		South: {3, 4},
		West:  {2, 5},
	}
	for o, want := range wants {
		if got := o.Offset(origin); got != want {
			t.Errorf("%v offset of %v: got %v, want %v", o, origin, got, want)
		}
	}
}

func TestOppositeOffsetsCancel(t *testing.T) {
	origin := Coordinates{0, 0}
	for _, o := range Orientations() {
		if back := o.Opposite().Offset(o.Offset(origin)); back != origin {
			t.Errorf("%v then %v moved %v to %v", o, o.Opposite(), origin, back)
		}
	}
}

func TestRotationClosure(t *testing.T) {
	protos := []Prototype{
		{0, "plain", EquivNone},
		{1, "straight", EquivHalfTurn},
		{2, "cross", EquivQuarterTurn},
	}
	for _, p := range protos {
		for _, base := range Orientations() {
			tile := p.MakeRotatedTile(base, 0) // canonical form of base
			if got := p.MakeRotatedTile(tile.Orientation, 4); got != tile {
				t.Errorf("%s: %v rotated by 4: got %v, want %v", p.Name, tile, got, tile)
			}
			if got := p.MakeRotatedTile(tile.Orientation, -4); got != tile {
				t.Errorf("%s: %v rotated by -4: got %v, want %v", p.Name, tile, got, tile)
			}
		}
	}
}

func TestEquivalenceCardinality(t *testing.T) {
	cases := []struct {
		equiv Equivalence
		want  int
	}{
		{EquivNone, 4},
		{EquivHalfTurn, 2},
		{EquivQuarterTurn, 1},
	}
	for _, c := range cases {
		p := Prototype{0, "test", c.equiv}
		distinct := make(map[Tile]bool)
		for k := 0; k < 4; k++ {
			distinct[p.MakeRotatedTile(North, k)] = true
		}
		if len(distinct) != c.want {
			t.Errorf("%v: got %d distinct tiles, want %d", c.equiv, len(distinct), c.want)
		}
		if c.equiv.Variants() != c.want {
			t.Errorf("%v variants: got %d, want %d", c.equiv, c.equiv.Variants(), c.want)
		}
	}
}

func TestCanonicalization(t *testing.T) {
	half := Prototype{0, "straight", EquivHalfTurn}
	if got := half.MakeRotatedTile(North, 2); got != half.MakeTile(North) {
		t.Errorf("half-turn north+2: got %v, want north", got)
	}
	if got := half.MakeRotatedTile(East, 2); got != half.MakeTile(East) {
		t.Errorf("half-turn east+2: got %v, want east", got)
	}
	if got := half.MakeRotatedTile(North, 1); got != half.MakeTile(East) {
		t.Errorf("half-turn north+1: got %v, want east", got)
	}
	quarter := Prototype{1, "cross", EquivQuarterTurn}
	for k := 0; k < 4; k++ {
		if got := quarter.MakeRotatedTile(East, k); got != quarter.MakeTile(North) {
			t.Errorf("quarter-turn east+%d: got %v, want north", k, got)
		}
	}
}

func TestTileCodeRoundTrip(t *testing.T) {
	for proto := 0; proto < 5; proto++ {
		for _, o := range Orientations() {
			tile := Tile{proto, o}
			if got := tileFromCode(tile.code()); got != tile {
				t.Errorf("code round trip of %v: got %v", tile, got)
			}
		}
	}
}

func TestPaletteEntries(t *testing.T) {
	pal := DefaultPalette()
	if len(pal) == 0 {
		t.Fatal("default palette is empty")
	}
	rebuilt := NewPalette(pal.Entries())
	if len(rebuilt) != len(pal) {
		t.Fatalf("rebuilt palette has %d entries, want %d", len(rebuilt), len(pal))
	}
	for i := range pal {
		if rebuilt[i] != pal[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, rebuilt[i], pal[i])
		}
	}
}
