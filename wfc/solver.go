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
	"math/rand"
)

/*

The solver

The solve loop alternates two moves.  Observation picks, uniformly
at random, one of the cells tied for the smallest candidate count
above one, and collapses it to a single candidate, also chosen
uniformly at random.  Propagation then drains the dirty set: for
each dirty cell, each neighbor's wave is intersected with the union
of what the dirty cell's remaining candidates allow in that
direction.  A shrunken neighbor becomes dirty in turn; a neighbor
shrunken to nothing is a contradiction and is left alone so the
damage doesn't spread.  Observation never happens while any cell is
dirty, so each guess sees a fully settled grid.

Both random choices matter.  Taking the first minimal cell or the
first candidate instead would bias generated maps toward one corner
of the grid and the low end of the palette.

Stepping is budgeted: each call to Step performs at most a given
number of propagation visits before returning, so a large grid can
be solved across many ticks of an interactive caller without
blocking it.  The solver resumes from its retained dirty set on the
next call.

*/

// Tuning holds the solver's adjustable knobs.
type Tuning struct {
	// StepsPerTick is the propagation budget for Tick.  Must be at
	// least 1.
	StepsPerTick int `json:"stepsPerTick"`
	// HistorySize bounds the guess snapshot log used to back out of
	// contradictions.  Zero disables recovery entirely:
	// contradictions are left standing.
	HistorySize int `json:"historySize"`
}

// DefaultTuning returns the tuning used when nothing else is asked
// for.
func DefaultTuning() Tuning {
	return Tuning{StepsPerTick: 100, HistorySize: 100}
}

// A Solver owns an output grid and solves it against a rule grid.
// Solvers are single-threaded: callers must not invoke methods
// concurrently, and nothing but the solver mutates the grid's waves.
type Solver struct {
	rules   *RuleGrid
	tuning  Tuning
	rng     *rand.Rand
	grid    *Grid
	ruleset *Ruleset
	queue   []int // indices of dirty cells, oldest first
	history guessHistory
	seen    uint64 // rule generation last synced to
	synced  bool
}

// NewSolver creates a solver for a width x height output grid over
// the given rule grid.  The seed makes runs reproducible: two
// solvers with the same rules, dimensions, tuning, and seed produce
// identical grids.
//
// When an error is returned from this function, it is always an
// Error value.
func NewSolver(rules *RuleGrid, width, height int, tuning Tuning, seed int64) (*Solver, error) {
	if rules == nil {
		return nil, Error{Scope: ArgumentScope, Condition: EmptyArgumentCondition}
	}
	if err := checkTuning(tuning); err != nil {
		return nil, err
	}
	grid, err := newGrid(width, height)
	if err != nil {
		return nil, err
	}
	return &Solver{
		rules:  rules,
		tuning: tuning,
		rng:    rand.New(rand.NewSource(seed)),
		grid:   grid,
	}, nil
}

func checkTuning(t Tuning) error {
	if t.StepsPerTick < 1 {
		return rangeError(StepsAttribute, t.StepsPerTick, 1, maxGridSide*maxGridSide)
	}
	if t.HistorySize < 0 {
		return rangeError(HistoryAttribute, t.HistorySize, 0, maxGridSide*maxGridSide)
	}
	return nil
}

// Grid returns the output grid for reading cell states.
func (s *Solver) Grid() *Grid { return s.grid }

// Rules returns the rule grid the solver is solving against.
func (s *Solver) Rules() *RuleGrid { return s.rules }

// Ruleset returns the current adjacency table, rebuilding it first
// if the rules have changed.
func (s *Solver) Ruleset() *Ruleset {
	s.sync()
	return s.ruleset
}

// Tuning returns the current tuning.
func (s *Solver) Tuning() Tuning { return s.tuning }

// SetTuning replaces the tuning.  Shrinking the history size takes
// effect on the next guess.
func (s *Solver) SetTuning(t Tuning) error {
	if err := checkTuning(t); err != nil {
		return err
	}
	s.tuning = t
	s.history.limit = t.HistorySize
	return nil
}

// ReplaceRules adopts a different rule grid.  All solving progress
// is discarded on the next entry point, exactly as if the current
// rules had been edited.
func (s *Solver) ReplaceRules(rules *RuleGrid) error {
	if rules == nil {
		return Error{Scope: ArgumentScope, Condition: EmptyArgumentCondition}
	}
	s.rules = rules
	s.synced = false
	return nil
}

// sync rebuilds the adjacency table and resets the grid if the rule
// grid has changed since the last entry point.  A rule edit is a
// hard interrupt: the dirty set, all partial waves, and the guess
// history are discarded wholesale.
func (s *Solver) sync() {
	if s.synced && s.seen == s.rules.Generation() {
		return
	}
	s.ruleset = s.rules.extract()
	s.grid.reset(s.ruleset)
	s.queue = s.queue[:0]
	s.history.clear()
	s.history.limit = s.tuning.HistorySize
	s.seen = s.rules.Generation()
	s.synced = true
}

// Progress reports where the solve stands without advancing it
// (beyond a rebuild if the rules changed).
func (s *Solver) Progress() Progress {
	s.sync()
	return s.progress()
}

func (s *Solver) progress() Progress {
	if s.ruleset.Empty() {
		return ProgressUnconfigured
	}
	if len(s.queue) > 0 || s.grid.hasUndecided() {
		return ProgressWorking
	}
	return ProgressStable
}

// Tick advances the solve by the tuned per-tick budget.  Callers
// driving a real-time loop call this once per frame.
func (s *Solver) Tick() Progress {
	return s.Step(s.tuning.StepsPerTick)
}

// Step advances the solve by at most maxSteps propagation visits,
// observing a new cell whenever the dirty set drains, and returns
// the resulting progress.  Budgets below 1 are treated as 1.
func (s *Solver) Step(maxSteps int) Progress {
	s.sync()
	if s.ruleset.Empty() {
		return ProgressUnconfigured
	}
	if maxSteps < 1 {
		maxSteps = 1
	}
	for steps := 0; steps < maxSteps; steps++ {
		if len(s.queue) == 0 {
			if !s.observe() {
				return ProgressStable
			}
		}
		s.propagateOne()
	}
	return s.progress()
}

// Solve runs the solver to completion, or until maxTicks budgeted
// ticks have elapsed.
func (s *Solver) Solve(maxTicks int) Progress {
	progress := s.Progress()
	for tick := 0; tick < maxTicks && progress == ProgressWorking; tick++ {
		progress = s.Tick()
	}
	return progress
}

/*

observation

*/

// observe collapses one cell with the smallest entropy above 1 to a
// single random candidate and marks it dirty.  Ties between cells
// are broken uniformly at random.  Cells with zero candidates never
// participate.  Returns false when no cell is left to observe.
func (s *Solver) observe() bool {
	minEntropy := 0
	var candidates []int
	for i := range s.grid.cells {
		entropy := len(s.grid.cells[i].wave)
		if entropy <= 1 {
			continue
		}
		if minEntropy == 0 || entropy < minEntropy {
			minEntropy = entropy
			candidates = candidates[:0]
		}
		if entropy == minEntropy {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return false
	}
	ci := candidates[s.rng.Intn(len(candidates))]
	cell := &s.grid.cells[ci]
	pick := cell.wave[s.rng.Intn(len(cell.wave))]
	if s.tuning.HistorySize > 0 {
		s.history.push(guess{cell: ci, tile: pick, waves: snapshotWaves(s.grid)})
	}
	cell.wave = tileset{pick}
	s.markDirty(ci)
	return true
}

func (s *Solver) markDirty(i int) {
	c := &s.grid.cells[i]
	if c.dirty {
		return
	}
	c.dirty = true
	s.queue = append(s.queue, i)
}

/*

propagation

*/

// propagateOne visits one dirty cell and restricts its neighbors.
// Neighbors that are already resolved or impossible are skipped:
// nothing can usefully shrink them, and an impossible cell must not
// push its emptiness outward.
func (s *Solver) propagateOne() {
	ci := s.queue[0]
	s.queue = s.queue[1:]
	cell := &s.grid.cells[ci]
	cell.dirty = false
	if len(cell.wave) == 0 {
		return
	}
	for _, o := range Orientations() {
		ni := cell.neighbors[o]
		if ni == noNeighbor {
			continue
		}
		neighbor := &s.grid.cells[ni]
		if len(neighbor.wave) <= 1 {
			continue
		}
		var union tileset
		for _, code := range cell.wave {
			union.merge(s.ruleset.Allowed(code, o))
		}
		if !neighbor.wave.intersect(union) {
			continue
		}
		if len(neighbor.wave) > 0 {
			s.markDirty(ni)
			continue
		}
		// newly-empty wave: the branch is dead here
		if s.rollback() {
			return
		}
	}
}

// rollback backs out of the most recent guess after a
// contradiction: restore the snapshot taken before the guess, strike
// the guessed tile from that cell's candidates, and re-propagate
// from it.  If striking the tile empties the cell every candidate of
// that guess has failed, so unwind to the guess before it.  With the
// history exhausted (or disabled) the contradiction stands and false
// is returned.
func (s *Solver) rollback() bool {
	for {
		g, ok := s.history.pop()
		if !ok {
			return false
		}
		restoreWaves(s.grid, g.waves)
		s.queue = s.queue[:0]
		cell := &s.grid.cells[g.cell]
		cell.wave.remove(g.tile)
		if len(cell.wave) > 0 {
			s.markDirty(g.cell)
			return true
		}
	}
}
