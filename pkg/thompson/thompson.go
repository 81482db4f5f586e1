// Package thompson compiles small regular expressions into Thompson NFAs
// and matches whole strings against them in linear time.
//
// The syntax is literal characters, concatenation, alternation (|),
// grouping (()) and the repetition operators *, + and ?. There is no escape
// mechanism; every other character is a literal.
package thompson

import (
	"fmt"
	"io"

	"github.com/hao-wang/bfalgo/internal/nfa"
	"github.com/hao-wang/bfalgo/internal/postfix"
)

// Errors reported by Translate, Build and Compile. Use errors.Is.
var (
	ErrUnbalancedParen     = postfix.ErrUnbalancedParen
	ErrEmptyGroup          = postfix.ErrEmptyGroup
	ErrDanglingAlternation = postfix.ErrDanglingAlternation
	ErrDanglingRepetition  = postfix.ErrDanglingRepetition
	ErrMalformedPostfix    = nfa.ErrMalformedPostfix
)

// Error is returned by Compile, Build and Analyze. Op names the failing
// stage: "translate", "build" or "analyze".
type Error struct {
	Op      string
	Pattern string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("thompson: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Regexp is a compiled pattern. It is safe for concurrent use.
type Regexp struct {
	pattern string
	postfix string
	nfa     *nfa.Automaton
}

// Translate converts an infix pattern to its postfix form, writing
// concatenation explicitly as '.'.
func Translate(pattern string) (string, error) {
	post, err := postfix.Translate(pattern)
	if err != nil {
		return "", &Error{Op: "translate", Pattern: pattern, Err: err}
	}
	return post, nil
}

// Build compiles a postfix stream, as returned by Translate, directly.
func Build(post string) (*Regexp, error) {
	a, err := nfa.Build(post)
	if err != nil {
		return nil, &Error{Op: "build", Pattern: post, Err: err}
	}
	return &Regexp{pattern: post, postfix: post, nfa: a}, nil
}

// Compile translates and builds pattern.
func Compile(pattern string) (*Regexp, error) {
	post, err := Translate(pattern)
	if err != nil {
		return nil, err
	}
	a, err := nfa.Build(post)
	if err != nil {
		return nil, &Error{Op: "build", Pattern: pattern, Err: err}
	}
	return &Regexp{pattern: pattern, postfix: post, nfa: a}, nil
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// MatchString reports whether re matches all of s.
func (re *Regexp) MatchString(s string) bool {
	return re.nfa.Match(s)
}

// MatchBytes reports whether re matches all of b.
func (re *Regexp) MatchBytes(b []byte) bool {
	return re.nfa.MatchBytes(b)
}

// MatchReader reports whether re matches everything r yields before io.EOF.
func (re *Regexp) MatchReader(r io.RuneReader) (bool, error) {
	return re.nfa.MatchReader(r)
}

// String returns the source text used to compile re.
func (re *Regexp) String() string { return re.pattern }

// Postfix returns the postfix form of re.
func (re *Regexp) Postfix() string { return re.postfix }

// NumStates returns the number of automaton states.
func (re *Regexp) NumStates() int { return re.nfa.Len() }

// WriteDOT writes the automaton in Graphviz format.
func (re *Regexp) WriteDOT(w io.Writer) error {
	return re.nfa.WriteDOT(w)
}
