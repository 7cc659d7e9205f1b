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
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx"

	"github.com/greenfold/wavetile.go/wfc"
)

/*

layout entries

*/

// emptyCellCode marks an empty exemplar slot in a flattened cell
// list.
const emptyCellCode = int32(-1)

// orientationCount is the number of cardinal orientations a
// flattened tile code encodes.
const orientationCount = 4

// A layoutEntry represents the stored form of a rule-grid layout.
// The cell list is flattened to one int32 per slot: emptyCellCode
// for an empty slot, otherwise prototype*4 + orientation.  The
// palette is stored as a JSON array of palette entries; empty means
// the default palette.  Entries are JSON serializable so they can go
// into the cache as well as the database.
type layoutEntry struct {
	LayoutId string // layout signature
	Name     string // user-facing name
	Width    int32
	Height   int32
	Palette  string
	Cells    []int32
}

// entryFromSummary flattens a rule-grid summary into a storable
// layout entry.
func entryFromSummary(id, name string, summary *wfc.Summary) (*layoutEntry, error) {
	entry := &layoutEntry{
		LayoutId: id,
		Name:     name,
		Width:    int32(summary.Width),
		Height:   int32(summary.Height),
		Cells:    make([]int32, len(summary.Cells)),
	}
	if len(summary.Palette) > 0 {
		bytes, err := json.Marshal(summary.Palette)
		if err != nil {
			return nil, fmt.Errorf("Failed to marshal palette of layout %q: %v", id, err)
		}
		entry.Palette = string(bytes)
	}
	for i, ref := range summary.Cells {
		if ref == nil {
			entry.Cells[i] = emptyCellCode
			continue
		}
		entry.Cells[i] = int32(ref.Prototype)*orientationCount + int32(ref.Orientation)
	}
	return entry, nil
}

// makeSummary unflattens a layout entry back into a rule-grid
// summary.
func (le *layoutEntry) makeSummary() (*wfc.Summary, error) {
	summary := &wfc.Summary{
		Width:  int(le.Width),
		Height: int(le.Height),
		Cells:  make([]*wfc.TileRef, len(le.Cells)),
	}
	if le.Palette != "" {
		if err := json.Unmarshal([]byte(le.Palette), &summary.Palette); err != nil {
			return nil, fmt.Errorf("Failed to unmarshal palette of layout %q: %v", le.LayoutId, err)
		}
	}
	for i, code := range le.Cells {
		if code == emptyCellCode {
			continue
		}
		if code < 0 {
			return nil, fmt.Errorf("Bad cell code %d in layout %q", code, le.LayoutId)
		}
		summary.Cells[i] = &wfc.TileRef{
			Prototype:   int(code / orientationCount),
			Orientation: wfc.Orientation(code % orientationCount),
		}
	}
	return summary, nil
}

// makeRules builds the rule grid a layout entry describes.  Panics
// on a corrupt entry, because entries are validated on the way in.
func (le *layoutEntry) makeRules() *wfc.RuleGrid {
	summary, err := le.makeSummary()
	if err != nil {
		panic(err)
	}
	rules, err := wfc.New(summary)
	if err != nil {
		panic(fmt.Errorf("Failed to create rules for layout %q: %v", le.LayoutId, err))
	}
	return rules
}

// loadLayoutEntry first checks the cache, then the database, to
// find the layout's entry.  If it loads from the database, it
// caches the result.  Returns whether the entry was found at all.
func loadLayoutEntry(id string) (*layoutEntry, bool) {
	le := &layoutEntry{LayoutId: id}
	if le.cacheLoad() {
		return le, true
	}
	// cache miss, try the database and backfill the cache
	if !le.databaseLoad() {
		return nil, false
	}
	le.cacheInsert()
	return le, true
}

// key: compute the cache key for a layoutEntry.
func (le *layoutEntry) key() string {
	return rdEnv + ":LID:" + le.LayoutId
}

// cacheLoad: load an already cached layout entry.  Returns
// whether the entry was found in the cache.
func (le *layoutEntry) cacheLoad() bool {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("GET", le.key()))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading layoutEntry %q: %v", le.LayoutId, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return false
	}
	var sle *layoutEntry
	err := json.Unmarshal(bytes, &sle)
	if err != nil {
		panic(fmt.Errorf("Failed to unmarshal layoutEntry %q: %v", le.LayoutId, err))
	}
	if sle.LayoutId != le.LayoutId {
		panic(fmt.Errorf("Cached layoutEntry (id: %q) found for layout %q!",
			sle.LayoutId, le.LayoutId))
	}
	*le = *sle
	return true
}

// databaseLoad: load a layout entry from the database.  Returns
// whether there is a saved entry with the given id.
func (le *layoutEntry) databaseLoad() (found bool) {
	body := func(tx *pgx.Tx) error {
		row := tx.QueryRow(
			"SELECT name, width, height, palette, cellList FROM layouts "+
				"WHERE layoutId = $1", le.LayoutId)
		err := row.Scan(&le.Name, &le.Width, &le.Height, &le.Palette, &le.Cells)
		if err == pgx.ErrNoRows {
			return nil
		}
		if err != nil {
			return fmt.Errorf("Failure looking up layout %q: %v", le.LayoutId, err)
		}
		found = true
		return nil
	}
	pgExecute(body)
	return
}

// cacheInsert: insert a layout entry into the cache.  Replaces
// any existing entry with the same id.
func (le *layoutEntry) cacheInsert() {
	bytes, e := json.Marshal(le)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal layoutEntry %q: %v", le.LayoutId, e))
	}
	body := func(tx redis.Conn) (err error) {
		_, err = tx.Do("SET", le.key(), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving layout entry %q: %v", le.LayoutId, err)
		}
		return
	}
	rdExecute(body)
}

// databaseInsert: insert a new layout entry into the database.
// Panics if there is already a saved entry with the given id.
func (le *layoutEntry) databaseInsert() {
	body := func(tx *pgx.Tx) (err error) {
		_, err = tx.Exec(
			"INSERT INTO layouts (layoutId, name, width, height, palette, cellList, created) "+
				"VALUES ($1, $2, $3, $4, $5, $6, $7)",
			le.LayoutId, le.Name, le.Width, le.Height, le.Palette, le.Cells, time.Now())
		if err != nil {
			err = fmt.Errorf("Database error saving layout entry %q: %v", le.LayoutId, err)
		}
		return
	}
	pgExecute(body)
}

/*

layout info

*/

// A LayoutInfo is the exported form of a stored layout, enough for
// clients to show a picker.
type LayoutInfo struct {
	LayoutId string // unique ID for this layout
	Name     string // user-facing name of the layout
	Width    int    // exemplar width
	Height   int    // exemplar height
}

// ListLayouts returns the info for every stored layout, sorted by
// name.
func ListLayouts() []*LayoutInfo {
	var infos []*LayoutInfo
	body := func(tx *pgx.Tx) error {
		rows, err := tx.Query("SELECT layoutId, name, width, height FROM layouts")
		if err != nil {
			return fmt.Errorf("Failure listing layouts: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			var info LayoutInfo
			var width, height int32
			if err := rows.Scan(&info.LayoutId, &info.Name, &width, &height); err != nil {
				return fmt.Errorf("Failure scanning layout row: %v", err)
			}
			info.Width, info.Height = int(width), int(height)
			infos = append(infos, &info)
		}
		return rows.Err()
	}
	pgExecute(body)
	sort.Sort(ByName(infos))
	return infos
}

// sorting of info sequences by layout name
type ByName []*LayoutInfo

func (li ByName) Len() int           { return len(li) }
func (li ByName) Swap(i, j int)      { li[i], li[j] = li[j], li[i] }
func (li ByName) Less(i, j int) bool { return li[i].Name < li[j].Name }
