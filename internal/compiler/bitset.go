package compiler

import (
	"github.com/dave/jennifer/jen"
	"github.com/hao-wang/bfalgo/internal/codegen"
	"github.com/hao-wang/bfalgo/internal/nfa"
)

// BitsetGenerator generates Thompson NFA simulation code that keeps the
// state set in a single uint64, one bit per state. Epsilon closures are
// precomputed, so each input rune costs one switch and a few mask tests.
type BitsetGenerator struct {
	compiler     *Compiler
	automaton    *nfa.Automaton
	stateCount   int
	startClosure uint64   // Epsilon closure of the start state
	acceptMask   uint64   // Bit of the accept state
	closures     []uint64 // Closure of each consume state's successor, indexed by state
	transitions  []runeTransitions
}

// runeTransitions lists the consume states of one rune.
type runeTransitions struct {
	r      rune
	states []nfa.StateID
}

// NewBitsetGenerator creates a new bitset generator. It returns nil when
// the automaton has more than MaxBitsetStates states.
func NewBitsetGenerator(c *Compiler) *BitsetGenerator {
	a := c.config.Automaton
	if a == nil || a.Len() > MaxBitsetStates {
		return nil
	}

	g := &BitsetGenerator{
		compiler:     c,
		automaton:    a,
		stateCount:   a.Len(),
		startClosure: closureMask(a, a.Start()),
		acceptMask:   1 << a.AcceptState(),
		closures:     make([]uint64, a.Len()),
	}
	g.transitions = groupByRune(a)
	for _, t := range g.transitions {
		for _, id := range t.states {
			g.closures[id] = closureMask(a, a.State(id).Out)
		}
	}
	return g
}

// groupByRune collects consume states by rune, runes in order of first
// appearance in the arena.
func groupByRune(a *nfa.Automaton) []runeTransitions {
	var out []runeTransitions
	index := make(map[rune]int)
	for i := 0; i < a.Len(); i++ {
		id := nfa.StateID(i)
		s := a.State(id)
		if s.Kind != nfa.Consume {
			continue
		}
		j, ok := index[s.Rune]
		if !ok {
			j = len(out)
			index[s.Rune] = j
			out = append(out, runeTransitions{r: s.Rune})
		}
		out[j].states = append(out[j].states, id)
	}
	return out
}

func (g *BitsetGenerator) name(suffix string) string {
	return codegen.Prefixed(g.compiler.config.Name, suffix)
}

// generateStep emits the state masks and the step function.
func (g *BitsetGenerator) generateStep() {
	f := g.compiler.file
	g.compiler.logger.Log("Generating bitset step function (states: %d, runes: %d)",
		g.stateCount, len(g.transitions))

	f.Const().Defs(
		jen.Id(g.name(codegen.StartName)).Uint64().Op("=").Lit(g.startClosure),
		jen.Id(g.name(codegen.AcceptName)).Uint64().Op("=").Lit(g.acceptMask),
	)
	f.Line()

	cases := make([]jen.Code, 0, len(g.transitions))
	for _, t := range g.transitions {
		body := make([]jen.Code, 0, len(t.states))
		for _, id := range t.states {
			body = append(body,
				jen.Comment(codegen.StateComment(uint32(id), t.r)),
				jen.If(jen.Id(codegen.CurrentName).Op("&").Lit(uint64(1)<<id).Op("!=").Lit(0)).Block(
					jen.Id(codegen.NextName).Op("|=").Lit(g.closures[id]),
				),
			)
		}
		cases = append(cases, jen.Case(jen.LitRune(t.r)).Block(body...))
	}

	f.Comment(g.name(codegen.StepName) + " returns the state set reached from current by consuming " + codegen.RuneName + ".")
	f.Func().Id(g.name(codegen.StepName)).
		Params(jen.Id(codegen.CurrentName).Uint64(), jen.Id(codegen.RuneName).Rune()).
		Uint64().
		Block(
			jen.Var().Id(codegen.NextName).Uint64(),
			jen.Switch(jen.Id(codegen.RuneName)).Block(cases...),
			jen.Return(jen.Id(codegen.NextName)),
		)
	f.Line()
}

// GenerateMatchFunction generates the body of MatchString or MatchBytes.
func (g *BitsetGenerator) GenerateMatchFunction(isBytes bool) []jen.Code {
	step := []jen.Code{
		jen.Id(codegen.CurrentName).Op("=").Id(g.name(codegen.StepName)).Call(jen.Id(codegen.CurrentName), jen.Id(codegen.RuneName)),
		jen.If(jen.Id(codegen.CurrentName).Op("==").Lit(0)).Block(
			jen.Return(jen.False()),
		),
	}

	return []jen.Code{
		jen.Id(codegen.CurrentName).Op(":=").Id(g.name(codegen.StartName)),
		runeLoop(isBytes, step),
		jen.Return(jen.Id(codegen.CurrentName).Op("&").Id(g.name(codegen.AcceptName)).Op("!=").Lit(0)),
	}
}

// runeLoop wraps body in a loop that binds each input rune to c.
func runeLoop(isBytes bool, body []jen.Code) jen.Code {
	if !isBytes {
		return jen.For(
			jen.List(jen.Id("_"), jen.Id(codegen.RuneName)).Op(":=").Range().Id(codegen.InputName),
		).Block(body...)
	}

	decode := []jen.Code{
		jen.List(jen.Id(codegen.RuneName), jen.Id(codegen.SizeName)).Op(":=").
			Qual("unicode/utf8", "DecodeRune").Call(jen.Id(codegen.InputName)),
		jen.Id(codegen.InputName).Op("=").Id(codegen.InputName).Index(jen.Id(codegen.SizeName).Op(":")),
	}
	return jen.For(jen.Len(jen.Id(codegen.InputName)).Op(">").Lit(0)).Block(append(decode, body...)...)
}
