package nfa

import (
	"errors"
	"io"
	"unicode/utf8"
)

// stateSet is one generation of the simulation. seen records every state
// visited while computing epsilon closures, Split states included, so that
// epsilon cycles such as the one in (a*)* terminate. states holds only the
// Consume and Accept states, each at most once.
type stateSet struct {
	seen   sparseSet
	states []StateID
}

func newStateSet(n int) stateSet {
	return stateSet{
		seen:   newSparseSet(n),
		states: make([]StateID, 0, n),
	}
}

func (s *stateSet) clear() {
	s.seen.clear()
	s.states = s.states[:0]
}

type simulation struct {
	curr, next stateSet
	stack      []StateID
}

func newSimulation(n int) *simulation {
	return &simulation{
		curr:  newStateSet(n),
		next:  newStateSet(n),
		stack: make([]StateID, 0, n),
	}
}

// addClosure adds the epsilon closure of id to set.
func (a *Automaton) addClosure(sim *simulation, set *stateSet, id StateID) {
	stack := append(sim.stack[:0], id)
	for len(stack) > 0 {
		id = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !set.seen.insert(id) {
			continue
		}
		s := &a.states[id]
		if s.Kind == Split {
			stack = append(stack, s.Out1, s.Out)
			continue
		}
		set.states = append(set.states, id)
	}
	sim.stack = stack
}

func (a *Automaton) acquire() *simulation {
	sim := a.pool.Get().(*simulation)
	sim.curr.clear()
	sim.next.clear()
	a.addClosure(sim, &sim.curr, a.start)
	return sim
}

func (a *Automaton) release(sim *simulation) {
	a.pool.Put(sim)
}

// step advances sim past r and reports whether any state is still active.
func (a *Automaton) step(sim *simulation, r rune) bool {
	sim.next.clear()
	for _, id := range sim.curr.states {
		s := &a.states[id]
		if s.Kind == Consume && s.Rune == r {
			a.addClosure(sim, &sim.next, s.Out)
		}
	}
	sim.curr, sim.next = sim.next, sim.curr
	return len(sim.curr.states) > 0
}

func (a *Automaton) accepting(sim *simulation) bool {
	return sim.curr.seen.contains(a.accept)
}

// Match reports whether the automaton accepts the whole of input.
func (a *Automaton) Match(input string) bool {
	sim := a.acquire()
	defer a.release(sim)

	for _, r := range input {
		if !a.step(sim, r) {
			return false
		}
	}
	return a.accepting(sim)
}

// MatchBytes is like Match but reads UTF-8 from a byte slice.
func (a *Automaton) MatchBytes(input []byte) bool {
	sim := a.acquire()
	defer a.release(sim)

	for len(input) > 0 {
		r, size := utf8.DecodeRune(input)
		input = input[size:]
		if !a.step(sim, r) {
			return false
		}
	}
	return a.accepting(sim)
}

// MatchReader is like Match but reads runes from r until io.EOF. Reading
// stops as soon as no state is active. Any other read error is returned.
func (a *Automaton) MatchReader(r io.RuneReader) (bool, error) {
	sim := a.acquire()
	defer a.release(sim)

	for {
		c, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			return a.accepting(sim), nil
		}
		if err != nil {
			return false, err
		}
		if !a.step(sim, c) {
			return false, nil
		}
	}
}

// Closure returns the Consume and Accept states reachable from id through
// Split states only, in discovery order.
func (a *Automaton) Closure(id StateID) []StateID {
	sim := newSimulation(len(a.states))
	a.addClosure(sim, &sim.curr, id)
	return sim.curr.states
}
