package compiler

import (
	"github.com/dave/jennifer/jen"
	"github.com/hao-wang/bfalgo/internal/codegen"
	"github.com/hao-wang/bfalgo/internal/nfa"
)

// TableGenerator generates a table-driven Thompson simulation for automata
// too large for a bitset. The state set is a slice of state ids, duplicates
// are suppressed with a generation-stamped mark array, and the epsilon
// closure of every consume state's successor is precomputed into a table.
type TableGenerator struct {
	compiler   *Compiler
	automaton  *nfa.Automaton
	stateCount int
}

// NewTableGenerator creates a new table generator.
func NewTableGenerator(c *Compiler) *TableGenerator {
	return &TableGenerator{
		compiler:   c,
		automaton:  c.config.Automaton,
		stateCount: c.config.Automaton.Len(),
	}
}

func (g *TableGenerator) name(suffix string) string {
	return codegen.Prefixed(g.compiler.config.Name, suffix)
}

func stateLits(ids []nfa.StateID) []jen.Code {
	lits := make([]jen.Code, len(ids))
	for i, id := range ids {
		lits[i] = jen.Lit(int(id))
	}
	return lits
}

// generateTables emits the rune table, the closure table and the scratch type.
func (g *TableGenerator) generateTables() {
	f := g.compiler.file
	a := g.automaton
	g.compiler.logger.Log("Generating transition tables (states: %d)", g.stateCount)

	f.Const().Defs(
		jen.Id(g.name(codegen.NumStateName)).Op("=").Lit(g.stateCount),
		jen.Id(g.name(codegen.AcceptName)).Op("=").Lit(int(a.AcceptState())),
	)
	f.Line()

	runes := make([]jen.Code, g.stateCount)
	closures := make([]jen.Code, g.stateCount)
	for i := 0; i < g.stateCount; i++ {
		s := a.State(nfa.StateID(i))
		if s.Kind != nfa.Consume {
			runes[i] = jen.Lit(-1)
			closures[i] = jen.Nil()
			continue
		}
		runes[i] = jen.LitRune(s.Rune)
		closures[i] = jen.Values(stateLits(a.Closure(s.Out))...)
	}

	f.Comment(g.name(codegen.StartName) + " is the epsilon closure of the start state.")
	f.Var().Id(g.name(codegen.StartName)).Op("=").Index().Uint32().Values(stateLits(a.Closure(a.Start()))...)
	f.Line()
	f.Comment(g.name(codegen.RunesName) + " holds the rune consumed by each state, -1 for split and accept states.")
	f.Var().Id(g.name(codegen.RunesName)).Op("=").Index().Rune().Values(runes...)
	f.Line()
	f.Comment(g.name(codegen.ClosuresName) + " holds the epsilon closure of each consume state's successor.")
	f.Var().Id(g.name(codegen.ClosuresName)).Op("=").Index().Index().Uint32().Values(closures...)
	f.Line()

	scratch := g.name(codegen.ScratchType)
	f.Type().Id(scratch).Struct(
		jen.List(jen.Id(codegen.CurrentName), jen.Id(codegen.NextName)).Index().Uint32(),
		jen.Id("mark").Index().Uint32(),
		jen.Id("gen").Uint32(),
	)
	f.Line()

	f.Func().Id("new" + codegen.UpperFirst(scratch)).Params().Op("*").Id(scratch).Block(
		jen.Return(jen.Op("&").Id(scratch).Values(jen.Dict{
			jen.Id(codegen.CurrentName): jen.Make(jen.Index().Uint32(), jen.Lit(0), jen.Id(g.name(codegen.NumStateName))),
			jen.Id(codegen.NextName):    jen.Make(jen.Index().Uint32(), jen.Lit(0), jen.Id(g.name(codegen.NumStateName))),
			jen.Id("mark"):              jen.Make(jen.Index().Uint32(), jen.Id(g.name(codegen.NumStateName))),
		})),
	)
	f.Line()
}

// generateStep emits the step and accept functions.
func (g *TableGenerator) generateStep() {
	f := g.compiler.file
	s := codegen.ScratchName
	scratch := g.name(codegen.ScratchType)

	f.Comment(g.name(codegen.StepName) + " advances the state set in " + s + " past " + codegen.RuneName +
		" and reports whether any state is still active.")
	f.Func().Id(g.name(codegen.StepName)).
		Params(jen.Id(s).Op("*").Id(scratch), jen.Id(codegen.RuneName).Rune()).
		Bool().
		Block(
			jen.Id(s).Dot("gen").Op("++"),
			jen.If(jen.Id(s).Dot("gen").Op("==").Lit(0)).Block(
				jen.For(jen.Id("i").Op(":=").Range().Id(s).Dot("mark")).Block(
					jen.Id(s).Dot("mark").Index(jen.Id("i")).Op("=").Lit(0),
				),
				jen.Id(s).Dot("gen").Op("=").Lit(1),
			),
			jen.Id(s).Dot(codegen.NextName).Op("=").Id(s).Dot(codegen.NextName).Index(jen.Empty(), jen.Lit(0)),
			jen.For(jen.List(jen.Id("_"), jen.Id(codegen.StateIDName)).Op(":=").Range().Id(s).Dot(codegen.CurrentName)).Block(
				jen.If(jen.Id(g.name(codegen.RunesName)).Index(jen.Id(codegen.StateIDName)).Op("!=").Id(codegen.RuneName)).Block(
					jen.Continue(),
				),
				jen.For(jen.List(jen.Id("_"), jen.Id(codegen.TargetName)).Op(":=").Range().Id(g.name(codegen.ClosuresName)).Index(jen.Id(codegen.StateIDName))).Block(
					jen.If(jen.Id(s).Dot("mark").Index(jen.Id(codegen.TargetName)).Op("!=").Id(s).Dot("gen")).Block(
						jen.Id(s).Dot("mark").Index(jen.Id(codegen.TargetName)).Op("=").Id(s).Dot("gen"),
						jen.Id(s).Dot(codegen.NextName).Op("=").Append(jen.Id(s).Dot(codegen.NextName), jen.Id(codegen.TargetName)),
					),
				),
			),
			jen.List(jen.Id(s).Dot(codegen.CurrentName), jen.Id(s).Dot(codegen.NextName)).Op("=").
				List(jen.Id(s).Dot(codegen.NextName), jen.Id(s).Dot(codegen.CurrentName)),
			jen.Return(jen.Len(jen.Id(s).Dot(codegen.CurrentName)).Op(">").Lit(0)),
		)
	f.Line()

	f.Func().Id(g.name("Accepting")).
		Params(jen.Id(s).Op("*").Id(scratch)).
		Bool().
		Block(
			jen.For(jen.List(jen.Id("_"), jen.Id(codegen.StateIDName)).Op(":=").Range().Id(s).Dot(codegen.CurrentName)).Block(
				jen.If(jen.Id(codegen.StateIDName).Op("==").Id(g.name(codegen.AcceptName))).Block(
					jen.Return(jen.True()),
				),
			),
			jen.Return(jen.False()),
		)
	f.Line()
}

// GenerateMatchFunction generates the body of MatchString or MatchBytes.
func (g *TableGenerator) GenerateMatchFunction(isBytes bool) []jen.Code {
	s := codegen.ScratchName
	var code []jen.Code
	if g.compiler.config.UsePool {
		code = append(code, g.compiler.generatePooledScratchInit()...)
	} else {
		code = append(code,
			jen.Id(s).Op(":=").Id("new"+codegen.UpperFirst(g.name(codegen.ScratchType))).Call(),
		)
	}

	step := []jen.Code{
		jen.If(jen.Op("!").Id(g.name(codegen.StepName)).Call(jen.Id(s), jen.Id(codegen.RuneName))).Block(
			jen.Return(jen.False()),
		),
	}

	return append(code,
		jen.Id(s).Dot(codegen.CurrentName).Op("=").Append(
			jen.Id(s).Dot(codegen.CurrentName).Index(jen.Empty(), jen.Lit(0)),
			jen.Id(g.name(codegen.StartName)).Op("..."),
		),
		runeLoop(isBytes, step),
		jen.Return(jen.Id(g.name("Accepting")).Call(jen.Id(s))),
	)
}
