package compiler

import (
	"github.com/hao-wang/bfalgo/internal/nfa"
)

// Analysis summarises the shape of an automaton for engine selection.
type Analysis struct {
	States        int
	ConsumeStates int
	SplitStates   int
	Cyclic        bool // some state can reach itself ('*' or '+')
	Multibyte     bool // some consumed rune needs more than one UTF-8 byte
	Alphabet      []rune
	Engine        string
}

// analyzeAutomaton walks every state once and picks the engine.
func analyzeAutomaton(a *nfa.Automaton) Analysis {
	an := Analysis{
		States:        a.Len(),
		ConsumeStates: a.Count(nfa.Consume),
		SplitStates:   a.Count(nfa.Split),
		Cyclic:        isCyclic(a),
		Engine:        EngineTable,
	}
	if an.States <= MaxBitsetStates {
		an.Engine = EngineBitset
	}

	seen := make(map[rune]bool)
	for id := 0; id < a.Len(); id++ {
		s := a.State(nfa.StateID(id))
		if s.Kind != nfa.Consume || seen[s.Rune] {
			continue
		}
		seen[s.Rune] = true
		an.Alphabet = append(an.Alphabet, s.Rune)
		if s.Rune >= 0x80 {
			an.Multibyte = true
		}
	}
	return an
}

// isCyclic reports whether the state graph contains a cycle, using an
// iterative three-colour depth-first search from the start state.
func isCyclic(a *nfa.Automaton) bool {
	const (
		white = iota
		grey
		black
	)
	color := make([]uint8, a.Len())

	type frame struct {
		id   nfa.StateID
		next int // index of the next edge to explore
	}
	successors := func(id nfa.StateID) []nfa.StateID {
		switch s := a.State(id); s.Kind {
		case nfa.Consume:
			return []nfa.StateID{s.Out}
		case nfa.Split:
			return []nfa.StateID{s.Out, s.Out1}
		}
		return nil
	}

	stack := []frame{{id: a.Start()}}
	color[a.Start()] = grey
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		succ := successors(top.id)
		if top.next == len(succ) {
			color[top.id] = black
			stack = stack[:len(stack)-1]
			continue
		}
		to := succ[top.next]
		top.next++
		switch color[to] {
		case grey:
			return true
		case white:
			color[to] = grey
			stack = append(stack, frame{id: to})
		}
	}
	return false
}

// closureMask returns the epsilon closure of id as a bitset. The automaton
// must have at most MaxBitsetStates states.
func closureMask(a *nfa.Automaton, id nfa.StateID) uint64 {
	var mask uint64
	for _, s := range a.Closure(id) {
		mask |= 1 << s
	}
	return mask
}
