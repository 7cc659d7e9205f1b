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

func TestTilesetInsert(t *testing.T) {
	var ts tileset
	inserts := []int{5, 1, 9, 5, 3, 1, 7}
	for _, v := range inserts {
		ts.insert(v)
	}
	want := tileset{1, 3, 5, 7, 9}
	if !ts.equal(want) {
		t.Errorf("after inserts: got %v, want %v", ts, want)
	}
	if !ts.insert(3) {
		t.Error("reinserting 3 reported absence")
	}
	if ts.insert(4) {
		t.Error("inserting 4 reported presence")
	}
	if !ts.equal(tileset{1, 3, 4, 5, 7, 9}) {
		t.Errorf("after inserting 4: got %v", ts)
	}
}

func TestTilesetRemove(t *testing.T) {
	ts := tileset{1, 3, 5, 7}
	if ts.remove(4) {
		t.Error("removing absent 4 reported presence")
	}
	if !ts.remove(1) || !ts.remove(7) {
		t.Error("removing present values reported absence")
	}
	if !ts.equal(tileset{3, 5}) {
		t.Errorf("after removals: got %v", ts)
	}
}

func TestTilesetFind(t *testing.T) {
	ts := tileset{2, 4, 6}
	if !ts.contains(4) {
		t.Error("4 not found")
	}
	if ts.contains(5) {
		t.Error("5 found")
	}
	if where, found := ts.find(5); found || where != 2 {
		t.Errorf("find(5): got (%d, %v), want (2, false)", where, found)
	}
}

func TestTilesetIntersect(t *testing.T) {
	cases := []struct {
		in, xs, want tileset
		changed      bool
	}{
		{tileset{1, 2, 3, 4}, tileset{2, 4, 6}, tileset{2, 4}, true},
		{tileset{1, 2, 3}, tileset{1, 2, 3}, tileset{1, 2, 3}, false},
		{tileset{1, 2, 3}, tileset{}, tileset{}, true},
		{tileset{}, tileset{1, 2}, tileset{}, false},
		{tileset{1, 3, 5}, tileset{2, 4, 6}, tileset{}, true},
	}
	for i, c := range cases {
		in := newTilesetCopy(c.in)
		changed := in.intersect(c.xs)
		if changed != c.changed {
			t.Errorf("case %d: changed %v, want %v", i, changed, c.changed)
		}
		if !in.equal(c.want) {
			t.Errorf("case %d: got %v, want %v", i, in, c.want)
		}
	}
}

func TestTilesetMerge(t *testing.T) {
	ts := tileset{2, 6}
	ts.merge(tileset{1, 2, 7})
	ts.merge(nil)
	if !ts.equal(tileset{1, 2, 6, 7}) {
		t.Errorf("after merges: got %v", ts)
	}
}

func TestTilesetCopyIsIndependent(t *testing.T) {
	orig := tileset{1, 2, 3}
	dup := newTilesetCopy(orig)
	dup.remove(2)
	if !orig.equal(tileset{1, 2, 3}) {
		t.Errorf("copy mutation leaked into original: %v", orig)
	}
	if newTilesetCopy(nil) != nil {
		t.Error("copy of nil is not nil")
	}
}
