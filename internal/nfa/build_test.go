package nfa

import (
	"errors"
	"strings"
	"testing"

	"github.com/hao-wang/bfalgo/internal/postfix"
)

// compile translates and builds pattern, failing the test on error.
func compile(t testing.TB, pattern string) *Automaton {
	t.Helper()
	post, err := postfix.Translate(pattern)
	if err != nil {
		t.Fatalf("Translate(%q): %v", pattern, err)
	}
	a, err := Build(post)
	if err != nil {
		t.Fatalf("Build(%q): %v", post, err)
	}
	return a
}

func TestBuildShape(t *testing.T) {
	tests := []struct {
		postfix string
		want    []string
	}{
		{"ab.", []string{
			"start 0",
			"0: consume 'a' -> 1",
			"1: consume 'b' -> 2",
			"2: accept",
		}},
		{"ab|", []string{
			"start 2",
			"0: consume 'a' -> 3",
			"1: consume 'b' -> 3",
			"2: split -> 0, 1",
			"3: accept",
		}},
		{"a*", []string{
			"start 1",
			"0: consume 'a' -> 1",
			"1: split -> 0, 2",
			"2: accept",
		}},
		{"a+", []string{
			"start 0",
			"0: consume 'a' -> 1",
			"1: split -> 0, 2",
			"2: accept",
		}},
		{"a?", []string{
			"start 1",
			"0: consume 'a' -> 2",
			"1: split -> 0, 2",
			"2: accept",
		}},
		{`\.\\.`, []string{
			"start 0",
			"0: consume '.' -> 1",
			`1: consume '\\' -> 2`,
			"2: accept",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.postfix, func(t *testing.T) {
			a, err := Build(tt.postfix)
			if err != nil {
				t.Fatalf("Build(%q): %v", tt.postfix, err)
			}
			want := strings.Join(tt.want, "\n") + "\n"
			if got := a.String(); got != want {
				t.Errorf("Build(%q) =\n%s\nwant\n%s", tt.postfix, got, want)
			}
		})
	}
}

func TestBuildInvariants(t *testing.T) {
	patterns := []string{
		"a",
		"ab",
		"a|b",
		"a*",
		"a+",
		"a?",
		"(a*)*",
		"(a|b)*abb",
		"(ab)?ba",
		"a(bb)+a",
		"a(bb)?c*b|abc",
		"a(b|c)c*a+|abc|a(a+)",
		"((a?)+)*",
	}

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			a := compile(t, pattern)
			if err := a.Validate(); err != nil {
				t.Fatalf("Validate: %v\n%s", err, a)
			}
			if n := a.Count(Accept); n != 1 {
				t.Errorf("Count(Accept) = %d, want 1", n)
			}
			if got := a.State(a.AcceptState()).Kind; got != Accept {
				t.Errorf("AcceptState kind = %v, want accept", got)
			}
		})
	}
}

func TestBuildDeterministic(t *testing.T) {
	const pattern = "a(b|c)c*a+|abc|a(a+)"
	first := compile(t, pattern).String()
	for i := 0; i < 10; i++ {
		if got := compile(t, pattern).String(); got != first {
			t.Fatalf("build %d differs:\n%s\nwant\n%s", i, got, first)
		}
	}
}

func TestBuildMalformed(t *testing.T) {
	tests := []struct {
		postfix string
		offset  int
	}{
		{"", 0},
		{"ab", 2},
		{".", 0},
		{"a.", 1},
		{"a|", 1},
		{"*", 0},
		{"+a", 0},
		{"?", 0},
		{`a\`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.postfix, func(t *testing.T) {
			a, err := Build(tt.postfix)
			if err == nil {
				t.Fatalf("Build(%q) succeeded:\n%s", tt.postfix, a)
			}
			if !errors.Is(err, ErrMalformedPostfix) {
				t.Errorf("Build(%q) error = %v, want ErrMalformedPostfix", tt.postfix, err)
			}
			var buildErr *BuildError
			if !errors.As(err, &buildErr) {
				t.Fatalf("Build(%q) error has type %T", tt.postfix, err)
			}
			if buildErr.Offset != tt.offset {
				t.Errorf("Build(%q) offset = %d, want %d", tt.postfix, buildErr.Offset, tt.offset)
			}
		})
	}
}

func TestValidateRejectsBrokenGraphs(t *testing.T) {
	tests := []struct {
		name   string
		states []State
		start  StateID
		accept StateID
	}{
		{
			name:   "dangling consume",
			states: []State{{Kind: Consume, Rune: 'a', Out: NoState}, {Kind: Accept}},
			start:  0,
			accept: 1,
		},
		{
			name:   "dangling split",
			states: []State{{Kind: Split, Out: 1, Out1: NoState}, {Kind: Accept}},
			start:  0,
			accept: 1,
		},
		{
			name:   "unreachable",
			states: []State{{Kind: Consume, Rune: 'a', Out: 2}, {Kind: Consume, Rune: 'b', Out: 2}, {Kind: Accept}},
			start:  0,
			accept: 2,
		},
		{
			name:   "two accepts",
			states: []State{{Kind: Split, Out: 1, Out1: 2}, {Kind: Accept}, {Kind: Accept}},
			start:  0,
			accept: 1,
		},
		{
			name:   "no accept",
			states: []State{{Kind: Consume, Rune: 'a', Out: 0}},
			start:  0,
			accept: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAutomaton(tt.states, tt.start, tt.accept)
			if err := a.Validate(); err == nil {
				t.Errorf("Validate() = nil, want error for %s", tt.name)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Consume, "consume"},
		{Split, "split"},
		{Accept, "accept"},
		{Kind(7), "Kind(7)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", uint8(tt.kind), got, tt.want)
		}
	}
}
