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

Errors

Solver outcomes are never errors: contradictions, under-constrained
tiles, and un-authored rule grids are all ordinary cell states that
clients display.  Error values appear only at the boundaries, where
summaries, arguments, and requests can be malformed.

*/

// An Error describes a problem with an argument, a summary, or a
// request.  It can produce an error message in English, but it is
// also JSON-serializable so web clients can do their own messaging.
type Error struct {
	Scope     ErrorScope     `json:"scope"`
	Attribute ErrorAttribute `json:"attribute,omitempty"`
	Condition ErrorCondition `json:"condition,omitempty"`
	Values    ErrorData      `json:"values,omitempty"`
	Message   string         `json:"message,omitempty"` // custom message
}

// An ErrorScope tells what kind of thing the error is about.
type ErrorScope int

// Constants for the error scopes.
const (
	UnknownScope ErrorScope = iota
	ArgumentScope
	SummaryScope
	RequestScope
	InternalScope
	MaxScope
)

// An ErrorAttribute names the attribute that has a problem.
type ErrorAttribute int

// Constants for the attribute codes.
const (
	UnknownAttribute ErrorAttribute = iota
	WidthAttribute
	HeightAttribute
	CellsAttribute
	CoordinatesAttribute
	PrototypeAttribute
	OrientationAttribute
	StepsAttribute
	HistoryAttribute
	DecodeAttribute
	EncodeAttribute
	MethodAttribute
	MaxAttribute
)

// The ErrorCondition is the predicate the value failed to satisfy.
type ErrorCondition int

// Constants for the error conditions.
const (
	UnknownCondition ErrorCondition = iota
	GeneralCondition
	TooLargeCondition
	TooSmallCondition
	WrongCountCondition
	NotInSetCondition
	UnknownPrototypeCondition
	OutOfBoundsCondition
	EmptyArgumentCondition
	MaxCondition
)

// ErrorData is the supplemental values of an error.
type ErrorData []interface{}

var attributeNames = map[ErrorAttribute]string{
	WidthAttribute:       "width",
	HeightAttribute:      "height",
	CellsAttribute:       "cell list",
	CoordinatesAttribute: "coordinates",
	PrototypeAttribute:   "prototype",
	OrientationAttribute: "orientation",
	StepsAttribute:       "steps per tick",
	HistoryAttribute:     "history size",
	DecodeAttribute:      "request body",
	EncodeAttribute:      "response body",
	MethodAttribute:      "request method",
}

func (a ErrorAttribute) String() string {
	if n, ok := attributeNames[a]; ok {
		return n
	}
	return "value"
}

// Error produces an English-language message for the error.  Errors
// with a custom Message use it verbatim.
func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Condition {
	case TooSmallCondition:
		return fmt.Sprintf("%s (%v) is below the minimum (%v)", e.Attribute, e.value(0), e.value(1))
	case TooLargeCondition:
		return fmt.Sprintf("%s (%v) is above the maximum (%v)", e.Attribute, e.value(0), e.value(1))
	case WrongCountCondition:
		return fmt.Sprintf("%s has %v entries, wanted %v", e.Attribute, e.value(0), e.value(1))
	case NotInSetCondition:
		return fmt.Sprintf("%s (%v) is not an allowed value", e.Attribute, e.value(0))
	case UnknownPrototypeCondition:
		return fmt.Sprintf("%s index %v is outside the palette (size %v)", e.Attribute, e.value(0), e.value(1))
	case OutOfBoundsCondition:
		return fmt.Sprintf("%s %v are outside the grid (%v)", e.Attribute, e.value(0), e.value(1))
	case EmptyArgumentCondition:
		return "required argument is missing"
	case GeneralCondition:
		return fmt.Sprintf("%s failure: %v", e.Attribute, e.value(0))
	}
	return fmt.Sprintf("unexpected error: %+v", e.Values)
}

func (e Error) value(i int) interface{} {
	if i < len(e.Values) {
		return e.Values[i]
	}
	return "?"
}

// rangeError returns an Error that describes an out-of-range value.
func rangeError(attr ErrorAttribute, val, min, max int) Error {
	err := Error{
		Scope:     ArgumentScope,
		Attribute: attr,
		Condition: TooLargeCondition,
		Values:    ErrorData{val, max},
	}
	if val < min {
		err.Condition = TooSmallCondition
		err.Values[1] = min
	}
	return err
}

// coordinatesError returns an Error for cell coordinates outside a
// grid.
func coordinatesError(x, y, width, height int) Error {
	return Error{
		Scope:     ArgumentScope,
		Attribute: CoordinatesAttribute,
		Condition: OutOfBoundsCondition,
		Values: ErrorData{
			fmt.Sprintf("(%d, %d)", x, y),
			fmt.Sprintf("%dx%d", width, height),
		},
	}
}
