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
	"testing"
)

// requireStores: skip when the backing servers aren't reachable.
func requireStores(t *testing.T) {
	t.Helper()
	if err := ClearCache(); err != nil {
		t.Skipf("No live cache: %v", err)
	}
	if _, err := SchemaVersion(); err != nil {
		t.Skipf("No live database: %v", err)
	}
}

func TestSchemaUpDown(t *testing.T) {
	requireStores(t)
	if err := SchemaUp(); err != nil {
		t.Errorf("Schema up failed: %v", err)
	}
	if err := SchemaDown(); err != nil {
		t.Errorf("Schema down failed: %v", err)
	}
}

func TestSchemaDoubleUp(t *testing.T) {
	requireStores(t)
	if err := SchemaUp(); err != nil {
		t.Errorf("Schema up failed: %v", err)
	}
	if err := SchemaUp(); err != nil {
		t.Errorf("Schema 2nd up failed: %v", err)
	}
	if err := SchemaDown(); err != nil {
		t.Errorf("Schema down failed: %v", err)
	}
}

func TestDataUpDown(t *testing.T) {
	requireStores(t)
	if err := SchemaUp(); err != nil {
		t.Errorf("Schema up failed: %v", err)
	}
	if err := DataUp(); err != nil {
		t.Errorf("Data up failed: %v", err)
	}
	if err := DataUp(); err != nil {
		t.Errorf("Data 2nd up failed: %v", err)
	}
	if err := DataDown(); err != nil {
		t.Errorf("Data down failed: %v", err)
	}
	if err := SchemaDown(); err != nil {
		t.Errorf("Schema down failed: %v", err)
	}
}

func TestEnsureRemove(t *testing.T) {
	requireStores(t)
	if err := EnsureData(); err != nil {
		t.Errorf("Ensure failed: %v", err)
	}
	if err := EnsureData(); err != nil {
		t.Errorf("2nd ensure failed: %v", err)
	}
	if err := RemoveData(); err != nil {
		t.Errorf("Remove failed: %v", err)
	}
	if err := EnsureData(); err != nil {
		t.Errorf("Ensure after remove failed: %v", err)
	}
}
