// Package nfa builds Thompson automata from postfix patterns and runs them
// with a breadth-first state-set simulation.
//
// States live in one arena slice owned by the Automaton and refer to each
// other by index, so the cycles introduced by '*' and '+' need no shared
// ownership. An Automaton never changes after Build returns.
package nfa

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
)

// StateID is the arena index of a state.
type StateID uint32

// NoState marks an edge that has not been patched yet.
const NoState StateID = math.MaxUint32

// Kind discriminates the three state shapes.
type Kind uint8

const (
	// Consume matches one rune and has exactly one outgoing edge (Out).
	Consume Kind = iota
	// Split is an epsilon branch with two outgoing edges (Out, Out1).
	Split
	// Accept is the single terminal state; it has no outgoing edges.
	Accept
)

func (k Kind) String() string {
	switch k {
	case Consume:
		return "consume"
	case Split:
		return "split"
	case Accept:
		return "accept"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// State is a node of the automaton graph.
type State struct {
	Kind Kind
	Rune rune    // consumed rune, Consume only
	Out  StateID // Consume and Split
	Out1 StateID // Split only
}

// Automaton is a compiled Thompson NFA. It is safe for concurrent use.
type Automaton struct {
	states []State
	start  StateID
	accept StateID

	// scratch simulations, one per concurrent matcher
	pool sync.Pool
}

func newAutomaton(states []State, start, accept StateID) *Automaton {
	a := &Automaton{
		states: states,
		start:  start,
		accept: accept,
	}
	a.pool.New = func() any {
		return newSimulation(len(a.states))
	}
	return a
}

// Start returns the entry state.
func (a *Automaton) Start() StateID { return a.start }

// AcceptState returns the terminal state.
func (a *Automaton) AcceptState() StateID { return a.accept }

// Len returns the number of states.
func (a *Automaton) Len() int { return len(a.states) }

// State returns the state with the given id. It panics if id is out of range.
func (a *Automaton) State(id StateID) State { return a.states[id] }

// Count returns the number of states of the given kind.
func (a *Automaton) Count(kind Kind) int {
	n := 0
	for i := range a.states {
		if a.states[i].Kind == kind {
			n++
		}
	}
	return n
}

// Validate checks the structural invariants of the automaton: every edge a
// state must have is set and in range, exactly one Accept state exists and
// every state is reachable from the start state.
func (a *Automaton) Validate() error {
	n := StateID(len(a.states))
	if a.start >= n {
		return fmt.Errorf("start state %d out of range", a.start)
	}

	accepts := 0
	for i, s := range a.states {
		id := StateID(i)
		switch s.Kind {
		case Consume:
			if s.Out >= n {
				return fmt.Errorf("state %d: consume edge not set", id)
			}
		case Split:
			if s.Out >= n || s.Out1 >= n {
				return fmt.Errorf("state %d: split edge not set", id)
			}
		case Accept:
			if id != a.accept {
				return fmt.Errorf("state %d: unexpected accept state", id)
			}
			accepts++
		default:
			return fmt.Errorf("state %d: unknown kind %v", id, s.Kind)
		}
	}
	if accepts != 1 {
		return errors.New("automaton has no accept state")
	}

	reached := make([]bool, n)
	stack := []StateID{a.start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reached[id] {
			continue
		}
		reached[id] = true
		switch s := a.states[id]; s.Kind {
		case Consume:
			stack = append(stack, s.Out)
		case Split:
			stack = append(stack, s.Out, s.Out1)
		}
	}
	for i, ok := range reached {
		if !ok {
			return fmt.Errorf("state %d unreachable from start", i)
		}
	}
	return nil
}

// String dumps the automaton one state per line.
func (a *Automaton) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "start %d\n", a.start)
	for i, s := range a.states {
		switch s.Kind {
		case Consume:
			fmt.Fprintf(&b, "%d: consume %q -> %d\n", i, s.Rune, s.Out)
		case Split:
			fmt.Fprintf(&b, "%d: split -> %d, %d\n", i, s.Out, s.Out1)
		default:
			fmt.Fprintf(&b, "%d: %v\n", i, s.Kind)
		}
	}
	return b.String()
}
