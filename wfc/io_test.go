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

func TestEntropyDigits(t *testing.T) {
	cases := []struct {
		entropy int
		want    string
	}{
		{2, " 2"},
		{10, " A"},
		{35, " Z"},
		{36, " +"},
		{100, " +"},
	}
	for _, c := range cases {
		if got := estr(c.entropy); got != c.want {
			t.Errorf("estr(%d): got %q, want %q", c.entropy, got, c.want)
		}
	}
}

func TestTileString(t *testing.T) {
	cases := []struct {
		tile Tile
		want string
	}{
		{Tile{0, North}, "a^"},
		{Tile{1, East}, "b>"},
		{Tile{2, South}, "cv"},
		{Tile{3, West}, "d<"},
		{Tile{26, North}, "?^"},
	}
	for _, c := range cases {
		if got := tstr(c.tile); got != c.want {
			t.Errorf("tstr(%v): got %q, want %q", c.tile, got, c.want)
		}
	}
}

func TestRuleGridString(t *testing.T) {
	rg := rowRules(t)
	if got := rg.String(); got != "a^ b^\n" {
		t.Errorf("row exemplar: got %q", got)
	}

	rg2, _ := NewRuleGrid(2, 2, twoLetterPalette())
	rg2.Set(0, 1, Tile{0, East})
	rg2.Set(1, 0, Tile{1, West})
	want := "a>  .\n . b<\n"
	if got := rg2.String(); got != want {
		t.Errorf("sparse exemplar: got %q, want %q", got, want)
	}

	if got := (*RuleGrid)(nil).String(); got != "" {
		t.Errorf("nil rule grid: got %q", got)
	}
}

// Four cells in four states, printed north row first.
func TestGridString(t *testing.T) {
	g, _ := newGrid(2, 2)
	want := " .  .\n .  .\n"
	if got := g.String(); got != want {
		t.Errorf("unconfigured grid: got %q, want %q", got, want)
	}

	g.reset(rowRules(t).extract())
	want = " 8  8\n 8  8\n"
	if got := g.String(); got != want {
		t.Errorf("reset grid: got %q, want %q", got, want)
	}

	g.cells[g.index(0, 1)].wave = tileset{Tile{0, East}.code()}
	g.cells[g.index(1, 1)].wave = tileset{}
	g.cells[g.index(1, 0)].wave = tileset{Tile{0, North}.code(), Tile{1, South}.code()}
	want = "a>  !\n 8  2\n"
	if got := g.String(); got != want {
		t.Errorf("mixed grid: got %q, want %q", got, want)
	}

	if got := (*Grid)(nil).String(); got != "" {
		t.Errorf("nil grid: got %q", got)
	}
}

func TestPaletteLegend(t *testing.T) {
	pal := NewPalette([]PaletteEntry{
		{Name: "black", Equivalence: EquivQuarterTurn},
		{Name: "straight", Equivalence: EquivHalfTurn},
		{Name: "bend", Equivalence: EquivNone},
	})
	want := "a: black (quarter-turn)\nb: straight (half-turn)\nc: bend (none)\n"
	if got := pal.Legend(); got != want {
		t.Errorf("legend: got %q, want %q", got, want)
	}
}
