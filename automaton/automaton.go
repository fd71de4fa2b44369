// Package automaton simulates fixed-width one-dimensional binary cellular
// automata with null (always 0) boundaries.
package automaton

import "strings"

// Rule is an elementary automaton rule in Wolfram numbering.
type Rule uint8

// Next returns the next value of the center cell for the given neighborhood.
func (r Rule) Next(left, center, right uint8) uint8 {
	index := (left&1)<<2 | (center&1)<<1 | right&1
	return uint8(r>>index) & 1
}

// Automaton holds one generation of cells and evolves it under a fixed rule.
type Automaton struct {
	rule  Rule
	state []uint8
	next  []uint8
}

func New(rule Rule) *Automaton {
	return &Automaton{rule: rule}
}

// Init replaces the current generation. The slice is copied and any non-zero
// cell is stored as 1.
func (a *Automaton) Init(state []uint8) {
	a.state = make([]uint8, len(state))
	a.next = make([]uint8, len(state))
	for i, cell := range state {
		if cell != 0 {
			a.state[i] = 1
		}
	}
}

// Step advances one generation. Every new cell is computed from the previous
// generation; the buffers are swapped only after the full pass.
func (a *Automaton) Step() {
	n := len(a.state)
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		var left, right uint8
		if i > 0 {
			left = a.state[i-1]
		}
		if i < n-1 {
			right = a.state[i+1]
		}
		a.next[i] = a.rule.Next(left, a.state[i], right)
	}
	a.state, a.next = a.next, a.state
}

// Evolve runs Step the given number of times.
func (a *Automaton) Evolve(steps int) {
	for i := 0; i < steps; i++ {
		a.Step()
	}
}

// State returns a copy of the current generation.
func (a *Automaton) State() []uint8 {
	out := make([]uint8, len(a.state))
	copy(out, a.state)
	return out
}

func (a *Automaton) Rule() Rule { return a.rule }
func (a *Automaton) Len() int   { return len(a.state) }

// String renders live cells as full blocks and dead cells as spaces.
func (a *Automaton) String() string {
	var sb strings.Builder
	for _, cell := range a.state {
		if cell == 1 {
			sb.WriteString("█")
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// SingleSeed returns a row of the given width with only the middle cell alive.
func SingleSeed(width int) []uint8 {
	if width <= 0 {
		return nil
	}
	row := make([]uint8, width)
	row[width/2] = 1
	return row
}
