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

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/greenfold/wavetile.go/wfc"
)

/*

known-good data for layout entries

*/

// testSummary: a 2x2 exemplar over a two-prototype palette, with
// one empty slot.
func testSummary() *wfc.Summary {
	return &wfc.Summary{
		Width:  2,
		Height: 2,
		Palette: []wfc.PaletteEntry{
			{Name: "black", Equivalence: wfc.EquivQuarterTurn},
			{Name: "stripe", Equivalence: wfc.EquivHalfTurn},
		},
		Cells: []*wfc.TileRef{
			{Prototype: 0, Orientation: wfc.North},
			{Prototype: 1, Orientation: wfc.East},
			nil,
			{Prototype: 1, Orientation: wfc.North},
		},
	}
}

/*

flattening of summaries into entries

*/

func TestEntrySummaryRoundTrip(t *testing.T) {
	summary := testSummary()
	entry, err := entryFromSummary("test-layout", "Test Layout", summary)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Width != 2 || entry.Height != 2 {
		t.Errorf("entry is %dx%d", entry.Width, entry.Height)
	}
	wantCells := []int32{0, 5, emptyCellCode, 4}
	if !reflect.DeepEqual(entry.Cells, wantCells) {
		t.Errorf("flattened cells: got %v, want %v", entry.Cells, wantCells)
	}
	if entry.Palette == "" {
		t.Error("palette not stored")
	}

	back, err := entry.makeSummary()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, summary) {
		t.Errorf("round trip: got %+v, want %+v", back, summary)
	}
}

// A summary on the default palette stores no palette text and
// restores to an empty palette list.
func TestEntryDefaultPalette(t *testing.T) {
	summary := &wfc.Summary{Width: 1, Height: 1,
		Cells: []*wfc.TileRef{{Prototype: 3, Orientation: wfc.West}}}
	entry, err := entryFromSummary("bare", "Bare", summary)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Palette != "" {
		t.Errorf("palette text: got %q, want empty", entry.Palette)
	}
	back, err := entry.makeSummary()
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Palette) != 0 {
		t.Errorf("restored palette: got %v", back.Palette)
	}
	if back.Cells[0] == nil || *back.Cells[0] != (wfc.TileRef{Prototype: 3, Orientation: wfc.West}) {
		t.Errorf("restored cell: got %+v", back.Cells[0])
	}
}

func TestEntryCorruption(t *testing.T) {
	entry := &layoutEntry{LayoutId: "bad", Width: 1, Height: 1,
		Palette: "{nope", Cells: []int32{0}}
	if _, err := entry.makeSummary(); err == nil {
		t.Error("corrupt palette text accepted")
	}
	entry = &layoutEntry{LayoutId: "bad", Width: 1, Height: 1, Cells: []int32{-7}}
	if _, err := entry.makeSummary(); err == nil {
		t.Error("negative cell code accepted")
	}
}

// An entry restored and fed through the core package builds a rule
// grid that matches the original summary.
func TestEntryMakeRules(t *testing.T) {
	entry, err := entryFromSummary("rules", "Rules", testSummary())
	if err != nil {
		t.Fatal(err)
	}
	rules := entry.makeRules()
	direct, err := wfc.New(testSummary())
	if err != nil {
		t.Fatal(err)
	}
	if rules.String() != direct.String() {
		t.Errorf("restored rules: got %q, want %q", rules.String(), direct.String())
	}
}

/*

keys and sorting

*/

func TestKeys(t *testing.T) {
	rdInit()
	session := &Session{SID: "abc"}
	if got := session.key(); got != rdEnv+":SID:abc" {
		t.Errorf("session key: got %q", got)
	}
	if got := session.workKey(); got != session.key()+":Work" {
		t.Errorf("work key: got %q", got)
	}
	entry := &layoutEntry{LayoutId: "xyz"}
	if got := entry.key(); got != rdEnv+":LID:xyz" {
		t.Errorf("layout key: got %q", got)
	}
}

func TestByName(t *testing.T) {
	infos := []*LayoutInfo{{Name: "c"}, {Name: "a"}, {Name: "b"}}
	sort.Sort(ByName(infos))
	for i, want := range []string{"a", "b", "c"} {
		if infos[i].Name != want {
			t.Fatalf("sorted names: got %v", infos)
		}
	}
}

/*

live storage tests, skipped when no servers are reachable

*/

// connectOrSkip: connect to live storage, or skip the test when the
// backing servers aren't there.
func connectOrSkip(t *testing.T) {
	t.Helper()
	os.Setenv("DBPREP_PATH", filepath.Join("..", "dbprep"))
	if _, _, err := Connect(); err != nil {
		t.Skipf("No live storage: %v", err)
	}
}

func TestConnect(t *testing.T) {
	os.Setenv("DBPREP_PATH", filepath.Join("..", "dbprep"))
	cid, dbid, err := Connect()
	if err != nil {
		t.Skipf("No live storage: %v", err)
	}
	defer Close()
	if cid != rdUrl || dbid != pgUrl {
		t.Errorf("Connected to wrong cache (%s) or wrong database (%s)", cid, dbid)
	}
}

func TestLayoutEntryStorage(t *testing.T) {
	connectOrSkip(t)
	defer Close()

	id := fmt.Sprintf("test-%d", time.Now().UnixNano())
	entry, err := entryFromSummary(id, "Storage Test", testSummary())
	if err != nil {
		t.Fatal(err)
	}
	entry.databaseInsert()

	// first load misses the cache and backfills it
	loaded, found := loadLayoutEntry(id)
	if !found {
		t.Fatalf("Inserted layout %q not found", id)
	}
	if !reflect.DeepEqual(loaded, entry) {
		t.Errorf("database load: got %+v, want %+v", loaded, entry)
	}

	// second load hits the cache
	cached := &layoutEntry{LayoutId: id}
	if !cached.cacheLoad() {
		t.Error("backfill left no cache entry")
	}

	if _, found := loadLayoutEntry("no-such-layout"); found {
		t.Error("missing layout reported found")
	}
}

func TestSessionStorage(t *testing.T) {
	connectOrSkip(t)
	defer Close()

	sid := fmt.Sprintf("test-session-%d", time.Now().UnixNano())
	session := &Session{SID: sid, Created: time.Now().Format(time.RFC3339)}
	if session.Lookup() {
		t.Fatal("fresh session found in cache")
	}

	session.StartLayout("default")
	if session.LID != DefaultLayoutId {
		t.Errorf("layout id: got %q, want %q", session.LID, DefaultLayoutId)
	}
	if session.Summary == nil {
		t.Fatal("no summary after StartLayout")
	}

	// edits survive the save/load round trip
	edited := testSummary()
	session.SaveWork(edited)
	reloaded := &Session{SID: sid}
	if !reloaded.Lookup() {
		t.Fatal("saved session not found")
	}
	if reloaded.LID != session.LID {
		t.Errorf("reloaded layout id: got %q, want %q", reloaded.LID, session.LID)
	}
	if !reloaded.LoadWork() {
		t.Fatal("saved work not found")
	}
	if !reflect.DeepEqual(reloaded.Summary, edited) {
		t.Errorf("reloaded work: got %+v, want %+v", reloaded.Summary, edited)
	}

	// an unknown layout id falls back to the default
	session.StartLayout("no-such-layout")
	if session.LID != DefaultLayoutId {
		t.Errorf("fallback layout id: got %q", session.LID)
	}
}
