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
	"encoding/json"
	"io"
	"net/http"
)

/*

The wrapped web service

The handlers in this section are a RESTful wrapper over a Solver, so
web servers can expose one per user session.  The solver itself
stays single-threaded: serializing requests per solver is the
server's job, not ours.

*/

// A CellInfo is the wire form of one output cell: its arena index,
// its state, its entropy, and its tile if resolved.
type CellInfo struct {
	Index   int      `json:"index"`
	State   string   `json:"state"`
	Entropy int      `json:"entropy"`
	Tile    *TileRef `json:"tile,omitempty"`
}

// A GridState is the wire form of the whole solve: dimensions,
// progress, state tallies, and every cell.  Undecided cells carry
// their entropy so clients can shade them by remaining-candidate
// fraction.
type GridState struct {
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Universe   int        `json:"universe"`
	Progress   string     `json:"progress"`
	Resolved   int        `json:"resolved"`
	Undecided  int        `json:"undecided"`
	Impossible int        `json:"impossible"`
	Cells      []CellInfo `json:"cells"`
}

// A StepRequest asks the solver to advance.  A zero Steps means
// "use the tuned per-tick budget".
type StepRequest struct {
	Steps int `json:"steps,omitempty"`
}

// State assembles the wire form of the current solve.
func (s *Solver) State() *GridState {
	progress := s.Progress()
	g := s.grid
	state := &GridState{
		Width:    g.width,
		Height:   g.height,
		Universe: s.ruleset.Size(),
		Progress: progress.String(),
		Cells:    make([]CellInfo, len(g.cells)),
	}
	if progress != ProgressUnconfigured {
		state.Resolved, state.Undecided, state.Impossible = g.countStates()
	}
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			i := g.index(x, y)
			info := CellInfo{
				Index:   i,
				State:   g.StateAt(x, y).String(),
				Entropy: g.EntropyAt(x, y),
			}
			if t, ok := g.ResolvedAt(x, y); ok && progress != ProgressUnconfigured {
				info.Tile = &TileRef{Prototype: t.Prototype, Orientation: t.Orientation}
			}
			state.Cells[i] = info
		}
	}
	return state
}

/*

Solver Downloads

*/

// StateHandler responds with the solve's GridState.  If we can't
// encode the response to the client successfully, we give both the
// client and the golang caller an Error response.
func (s *Solver) StateHandler(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(s.State(), http.StatusOK, w, r)
}

// SummaryHandler responds with the current rule grid's summary.
func (s *Solver) SummaryHandler(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(s.rules.Summary(), http.StatusOK, w, r)
}

// TuningHandler responds with the solver's tuning.
func (s *Solver) TuningHandler(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(s.tuning, http.StatusOK, w, r)
}

/*

Solver Updates

*/

// RulesHandler is a POST handler that reads a JSON-encoded Summary
// from the request body and replaces the solver's rule grid with
// it, which restarts the solve from scratch.  The poster gets the
// reset GridState back.
//
// If we can't decode or validate the posted summary, we send a 400
// response and return the error to the caller.
func (s *Solver) RulesHandler(w http.ResponseWriter, r *http.Request) error {
	dec := json.NewDecoder(r.Body)
	var summary Summary
	if e := dec.Decode(&summary); e != nil {
		return writeError(decodingError(e), w, r)
	}
	rules, e := New(&summary)
	if e != nil {
		return writeError(asError(e), w, r)
	}
	s.ReplaceRules(rules)
	return s.StateHandler(w, r)
}

// StepHandler is a POST handler that advances the solve.  The body
// is an optional StepRequest; without one (or with zero steps) the
// tuned per-tick budget is used.  The poster gets the advanced
// GridState back.
func (s *Solver) StepHandler(w http.ResponseWriter, r *http.Request) error {
	var req StepRequest
	if r.Body != nil {
		dec := json.NewDecoder(r.Body)
		if e := dec.Decode(&req); e != nil && e != io.EOF {
			return writeError(decodingError(e), w, r)
		}
	}
	if req.Steps > 0 {
		s.Step(req.Steps)
	} else {
		s.Tick()
	}
	return s.StateHandler(w, r)
}

// SetTuningHandler is a POST handler that replaces the solver's
// tuning with a posted Tuning value.
func (s *Solver) SetTuningHandler(w http.ResponseWriter, r *http.Request) error {
	dec := json.NewDecoder(r.Body)
	var t Tuning
	if e := dec.Decode(&t); e != nil {
		return writeError(decodingError(e), w, r)
	}
	if e := s.SetTuning(t); e != nil {
		return writeError(asError(e), w, r)
	}
	return s.TuningHandler(w, r)
}

/*

helpers

*/

// decodingError wraps a JSON decode failure.
func decodingError(e error) Error {
	return Error{
		Scope:     RequestScope,
		Attribute: DecodeAttribute,
		Condition: GeneralCondition,
		Values:    ErrorData{e.Error()},
	}
}

// asError coerces a returned error to an Error value.  All the
// constructors in this package already return Error values, but we
// guard anyway, the way the RESTful wrappers guard everywhere.
func asError(e error) Error {
	if err, ok := e.(Error); ok {
		return err
	}
	return Error{
		Scope:     InternalScope,
		Condition: GeneralCondition,
		Values:    ErrorData{e.Error()},
	}
}

// writeJSON sends any value as a JSON response with the given
// status.  An encoding failure (which should never happen) gets the
// client a 500 and the golang caller the Error.
func writeJSON(v interface{}, status int, w http.ResponseWriter, r *http.Request) error {
	body, e := json.Marshal(v)
	if e != nil {
		err := Error{
			Scope:     InternalScope,
			Attribute: EncodeAttribute,
			Condition: GeneralCondition,
			Values:    ErrorData{e.Error()},
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return err
	}
	hs := w.Header()
	hs.Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
	return nil
}

// writeError sends an Error as a 400 JSON response and returns it
// to the golang caller.
func writeError(err Error, w http.ResponseWriter, r *http.Request) error {
	err.Message = err.Error()
	if e := writeJSON(err, http.StatusBadRequest, w, r); e != nil {
		return e
	}
	return err
}
