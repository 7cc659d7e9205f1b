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

Orientations and coordinates

*/

// An Orientation is one of the four cardinal directions.  It serves
// two roles: the facing of an oriented tile, and the direction from a
// cell to one of its neighbors.  The numeric order exists only so
// iteration is deterministic; it carries no solving meaning.
type Orientation int

// Constants for the four orientations.  Quarter turns are clockwise:
// rotating north by one gives east.
const (
	North Orientation = iota
	East
	South
	West
)

// orientationCount is the order of the rotation group.
const orientationCount = 4

// Orientations returns the four orientations in their iteration
// order.
func Orientations() [orientationCount]Orientation {
	return [orientationCount]Orientation{North, East, South, West}
}

// Rotated returns the orientation advanced by the given number of
// quarter turns.  Negative amounts rotate counterclockwise.
func (o Orientation) Rotated(amount int) Orientation {
	r := (int(o) + amount) % orientationCount
	if r < 0 {
		r += orientationCount
	}
	return Orientation(r)
}

// Opposite returns the reverse direction: the direction a neighbor
// looks back along.
func (o Orientation) Opposite() Orientation {
	return o.Rotated(2)
}

// Offset returns the coordinates one step away in this direction.
// North is +y, east is +x.
func (o Orientation) Offset(c Coordinates) Coordinates {
	switch o {
	case North:
		return Coordinates{c.X, c.Y + 1}
	case East:
		return Coordinates{c.X + 1, c.Y}
	case South:
		return Coordinates{c.X, c.Y - 1}
	default:
		return Coordinates{c.X - 1, c.Y}
	}
}

var orientationNames = [orientationCount]string{"north", "east", "south", "west"}

// orientationMarks are the single-rune print forms used by the
// pretty printers.
var orientationMarks = [orientationCount]byte{'^', '>', 'v', '<'}

func (o Orientation) String() string {
	if o < 0 || o >= orientationCount {
		return "invalid"
	}
	return orientationNames[o]
}

// valid reports whether the orientation is one of the four cardinal
// values.  Summaries arriving from clients can hold anything.
func (o Orientation) valid() bool {
	return o >= 0 && o < orientationCount
}

// Coordinates designate a cell position in a rule grid or an output
// grid.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}
