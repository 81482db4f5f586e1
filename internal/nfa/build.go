package nfa

import (
	"errors"
	"fmt"

	"github.com/hao-wang/bfalgo/internal/postfix"
)

// ErrMalformedPostfix is wrapped by every error Build returns.
var ErrMalformedPostfix = errors.New("malformed postfix")

// BuildError describes why a postfix stream did not reduce to one fragment.
type BuildError struct {
	Postfix string
	Offset  int // byte offset of the offending token, len(Postfix) at end of input
	Reason  string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%v %q at offset %d: %s", ErrMalformedPostfix, e.Postfix, e.Offset, e.Reason)
}

func (e *BuildError) Unwrap() error {
	return ErrMalformedPostfix
}

// slot names an unset edge: edge 0 is Out, edge 1 is Out1.
type slot struct {
	state StateID
	edge  uint8
}

// fragment is a partially built automaton with one entry and a list of
// dangling edges. Fragments only live on the build stack.
type fragment struct {
	start StateID
	out   []slot
}

type builder struct {
	states []State
	stack  []fragment
}

func (b *builder) add(s State) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, s)
	return id
}

func (b *builder) split(out StateID) StateID {
	return b.add(State{Kind: Split, Out: out, Out1: NoState})
}

// patch points every dangling edge in out at to.
func (b *builder) patch(out []slot, to StateID) {
	for _, sl := range out {
		if sl.edge == 0 {
			b.states[sl.state].Out = to
		} else {
			b.states[sl.state].Out1 = to
		}
	}
}

func (b *builder) push(f fragment) {
	b.stack = append(b.stack, f)
}

func (b *builder) pop() fragment {
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return f
}

// Build constructs an automaton from a postfix stream as produced by
// postfix.Translate.
func Build(post string) (*Automaton, error) {
	b := &builder{
		states: make([]State, 0, len(post)+1),
	}

	malformed := func(offset int, format string, args ...any) error {
		return &BuildError{Postfix: post, Offset: offset, Reason: fmt.Sprintf(format, args...)}
	}
	need := func(offset int, op rune, n int) error {
		if len(b.stack) < n {
			return malformed(offset, "operator %q needs %d operand(s), have %d", op, n, len(b.stack))
		}
		return nil
	}

	escaped := false
	for offset, r := range post {
		switch {
		case escaped:
			escaped = false
			b.literal(r)
			continue
		case r == postfix.Escape:
			escaped = true
			continue
		case !postfix.IsOperator(r):
			b.literal(r)
			continue
		}

		if err := need(offset, r, arity(r)); err != nil {
			return nil, err
		}
		switch r {
		case postfix.Concat:
			e2 := b.pop()
			e1 := b.pop()
			b.patch(e1.out, e2.start)
			b.push(fragment{start: e1.start, out: e2.out})

		case postfix.Alt:
			e2 := b.pop()
			e1 := b.pop()
			s := b.add(State{Kind: Split, Out: e1.start, Out1: e2.start})
			b.push(fragment{start: s, out: append(e1.out, e2.out...)})

		case postfix.Star:
			e := b.pop()
			s := b.split(e.start)
			b.patch(e.out, s)
			b.push(fragment{start: s, out: []slot{{state: s, edge: 1}}})

		case postfix.Plus:
			e := b.pop()
			s := b.split(e.start)
			b.patch(e.out, s)
			b.push(fragment{start: e.start, out: []slot{{state: s, edge: 1}}})

		case postfix.Quest:
			e := b.pop()
			s := b.split(e.start)
			b.push(fragment{start: s, out: append(e.out, slot{state: s, edge: 1})})
		}
	}

	if escaped {
		return nil, malformed(len(post)-1, "trailing escape")
	}
	if len(b.stack) != 1 {
		return nil, malformed(len(post), "expected 1 fragment at end of input, have %d", len(b.stack))
	}

	e := b.pop()
	accept := b.add(State{Kind: Accept, Out: NoState, Out1: NoState})
	b.patch(e.out, accept)

	return newAutomaton(b.states, e.start, accept), nil
}

// arity returns the number of fragments operator op pops.
func arity(op rune) int {
	if op == postfix.Concat || op == postfix.Alt {
		return 2
	}
	return 1
}

func (b *builder) literal(r rune) {
	s := b.add(State{Kind: Consume, Rune: r, Out: NoState, Out1: NoState})
	b.push(fragment{start: s, out: []slot{{state: s, edge: 0}}})
}
