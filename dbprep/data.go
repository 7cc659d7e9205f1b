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

package dbprep

import (
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx"

	"github.com/greenfold/wavetile.go/wfc"
)

/*

entries

*/

type dataFunction func(*pgx.Tx) error

var (
	upFunctions = []dataFunction{
		insertSamples,
	}
	downFunctions = []dataFunction{
		deleteSamples,
	}
)

// DataUp: load the sample layouts into the database.  You should
// do this after you get the schema up!
func DataUp() error {
	return applyFunctions(upFunctions)
}

// DataDown: remove the sample layouts from the database.  You
// should do this before you tear the schema down!
func DataDown() error {
	return applyFunctions(downFunctions)
}

// apply dataFunctions to the database.  Each is applied in a
// separate transaction, so later ones can rely on the effect of
// earlier ones having been committed.
func applyFunctions(fns []dataFunction) error {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/wavetile?sslmode=disable"
	}

	// open the database, defer the close
	cfg, err := pgx.ParseURI(url)
	if err != nil {
		return err
	}
	conn, err := pgx.Connect(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	// helper that runs each function inside a transaction, and
	// ensures that any problems are rolled back.
	runFunc := func(fn dataFunction) error {
		tx, err := conn.Begin()
		if err != nil {
			return err
		}
		defer func() {
			if e := recover(); e != nil {
				tx.Rollback()
				panic(e)
			}
		}()
		if err := fn(tx); err != nil {
			tx.Rollback()
			return err
		}
		return tx.Commit()
	}

	// run the functions
	for _, fn := range fns {
		if err := runFunc(fn); err != nil {
			return fmt.Errorf("%v failed: %v", fn, err)
		}
	}
	return nil
}

/*

sample layouts

*/

// tc packs a default-palette tile into its flattened cell code.
func tc(proto int, o wfc.Orientation) int32 {
	return int32(proto)*4 + int32(o)
}

// Default-palette prototype indices the samples use.
const (
	protoBridge       = 2  // bridge_wood
	protoGrass        = 3  // ground_grass
	protoPathStraight = 13 // ground_pathStraight
	protoPathTile     = 14 // ground_pathTile
	protoRiverOpen    = 20 // ground_riverOpen
	protoRiverStr     = 24 // ground_riverStraight
)

// A sampleLayout is authored visually: rows run north to south,
// cells west to east, exactly as the exemplar prints.
type sampleLayout struct {
	id, name string
	rows     [][]int32
}

var (
	grass    = tc(protoGrass, wfc.North)
	pathNS   = tc(protoPathStraight, wfc.North)
	tiled    = tc(protoPathTile, wfc.North)
	riverEW  = tc(protoRiverStr, wfc.East)
	pond     = tc(protoRiverOpen, wfc.North)
	bridgeNS = tc(protoBridge, wfc.North)

	sampleLayouts = []sampleLayout{
		{"sample-1", "meadow path", [][]int32{
			{grass, pathNS, grass},
			{grass, pathNS, grass},
			{grass, pathNS, grass},
		}},
		{"sample-2", "river crossing", [][]int32{
			{grass, grass, pathNS, grass, grass},
			{riverEW, riverEW, bridgeNS, riverEW, riverEW},
			{grass, grass, pathNS, grass, grass},
		}},
		{"sample-3", "tiled court", [][]int32{
			{tiled, grass, tiled, grass},
			{grass, tiled, grass, tiled},
			{tiled, grass, tiled, grass},
			{grass, tiled, grass, tiled},
		}},
		{"sample-4", "lake shore", [][]int32{
			{pond, pond, grass},
			{pond, pond, grass},
			{riverEW, riverEW, grass},
		}},
	}
)

// cells flattens a sample's visual rows into the stored x-major
// cell list (index x*height + y, y growing northward).
func (sl sampleLayout) cells() []int32 {
	height := len(sl.rows)
	width := len(sl.rows[0])
	cells := make([]int32, width*height)
	for r, row := range sl.rows {
		y := height - 1 - r
		for x, code := range row {
			cells[x*height+y] = code
		}
	}
	return cells
}

// Create and insert the sample layouts
func insertSamples(tx *pgx.Tx) error {
	// idempotency: if the first sample already exists, we are done
	var count int64
	row := tx.QueryRow("SELECT COUNT(*) FROM layouts "+
		"WHERE layoutId = $1", sampleLayouts[0].id)
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("Database error looking for layout %q: %v", sampleLayouts[0].id, err)
	}
	if count > 0 {
		return nil
	}

	// get the timestamp of this load
	now := time.Now()

	for _, sl := range sampleLayouts {
		_, err := tx.Exec(
			"INSERT INTO layouts (layoutId, name, width, height, palette, cellList, created) "+
				"VALUES ($1, $2, $3, $4, $5, $6, $7)",
			sl.id, sl.name, int32(len(sl.rows[0])), int32(len(sl.rows)), "", sl.cells(), now)
		if err != nil {
			return fmt.Errorf("Database error saving sample layout %q: %v", sl.id, err)
		}
	}
	return nil
}

// Remove the sample layouts
func deleteSamples(tx *pgx.Tx) error {
	if _, err := tx.Exec("DELETE FROM layouts WHERE layoutId LIKE 'sample-%'"); err != nil {
		return fmt.Errorf("Database error deleting sample layouts: %v", err)
	}
	return nil
}
