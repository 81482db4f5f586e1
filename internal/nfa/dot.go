package nfa

import (
	"bufio"
	"fmt"
	"io"
)

// WriteDOT writes a Graphviz rendering of the automaton to w. Consume edges
// are labelled with their rune, Split edges with ε, and the Accept state is
// drawn as a double circle.
func (a *Automaton) WriteDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "digraph nfa {")
	fmt.Fprintln(bw, "    rankdir=LR;")
	for i, s := range a.states {
		shape := "circle"
		if s.Kind == Accept {
			shape = "doublecircle"
		}
		fmt.Fprintf(bw, "    s%d [shape=%s, label=\"%d\"];\n", i, shape, i)
	}
	for i, s := range a.states {
		switch s.Kind {
		case Consume:
			fmt.Fprintf(bw, "    s%d -> s%d [label=%q];\n", i, s.Out, string(s.Rune))
		case Split:
			fmt.Fprintf(bw, "    s%d -> s%d [label=\"ε\"];\n", i, s.Out)
			fmt.Fprintf(bw, "    s%d -> s%d [label=\"ε\", style=dashed];\n", i, s.Out1)
		}
	}
	fmt.Fprintf(bw, "    _start [shape=point]; _start -> s%d;\n", a.start)
	fmt.Fprintln(bw, "}")

	return bw.Flush()
}
