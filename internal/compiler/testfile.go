package compiler

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/hao-wang/bfalgo/internal/codegen"
)

// testFilePath derives the test file path from the output file path.
func testFilePath(outputFile string) string {
	return strings.TrimSuffix(outputFile, ".go") + "_test.go"
}

// generateTestFile writes a test file next to the generated matcher. The
// expected verdict of every input is computed with the in-process
// simulator, so the generated tests check that the generated engine agrees
// with it.
func (c *Compiler) generateTestFile() error {
	inputs := c.config.TestFileInputs
	if len(inputs) == 0 {
		inputs = []string{""}
	}

	f := jen.NewFile(c.config.Package)
	f.HeaderComment(fmt.Sprintf("Code generated by thompson for pattern %q. DO NOT EDIT.", c.config.Pattern))

	cases := make([]jen.Code, 0, len(inputs))
	for _, in := range inputs {
		cases = append(cases, jen.Values(jen.Lit(in), jen.Lit(c.config.Automaton.Match(in))))
	}

	compiled := jen.Id(fmt.Sprintf("Compiled%s", c.config.Name))
	testsVar := codegen.Prefixed(c.config.Name, "Tests")

	f.Var().Id(testsVar).Op("=").Index().Struct(
		jen.Id(codegen.InputName).String(),
		jen.Id("want").Bool(),
	).Values(cases...)
	f.Line()

	f.Func().Id(fmt.Sprintf("Test%sMatchString", c.config.Name)).
		Params(jen.Id("t").Op("*").Qual("testing", "T")).
		Block(
			jen.For(jen.List(jen.Id("_"), jen.Id("tt")).Op(":=").Range().Id(testsVar)).Block(
				jen.If(
					jen.Id("got").Op(":=").Add(compiled).Dot("MatchString").Call(jen.Id("tt").Dot(codegen.InputName)),
					jen.Id("got").Op("!=").Id("tt").Dot("want"),
				).Block(
					jen.Id("t").Dot("Errorf").Call(jen.Lit("MatchString(%q) = %v, want %v"),
						jen.Id("tt").Dot(codegen.InputName), jen.Id("got"), jen.Id("tt").Dot("want")),
				),
			),
		)
	f.Line()

	f.Func().Id(fmt.Sprintf("Test%sMatchBytes", c.config.Name)).
		Params(jen.Id("t").Op("*").Qual("testing", "T")).
		Block(
			jen.For(jen.List(jen.Id("_"), jen.Id("tt")).Op(":=").Range().Id(testsVar)).Block(
				jen.If(
					jen.Id("got").Op(":=").Add(compiled).Dot("MatchBytes").Call(jen.Index().Byte().Parens(jen.Id("tt").Dot(codegen.InputName))),
					jen.Id("got").Op("!=").Id("tt").Dot("want"),
				).Block(
					jen.Id("t").Dot("Errorf").Call(jen.Lit("MatchBytes(%q) = %v, want %v"),
						jen.Id("tt").Dot(codegen.InputName), jen.Id("got"), jen.Id("tt").Dot("want")),
				),
			),
		)
	f.Line()

	f.Func().Id(fmt.Sprintf("Benchmark%sMatchString", c.config.Name)).
		Params(jen.Id("b").Op("*").Qual("testing", "B")).
		Block(
			jen.For(jen.Id("i").Op(":=").Lit(0), jen.Id("i").Op("<").Id("b").Dot("N"), jen.Id("i").Op("++")).Block(
				jen.For(jen.List(jen.Id("_"), jen.Id("tt")).Op(":=").Range().Id(testsVar)).Block(
					jen.Add(compiled).Dot("MatchString").Call(jen.Id("tt").Dot(codegen.InputName)),
				),
			),
		)

	path := testFilePath(c.config.OutputFile)
	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to save test file: %w", err)
	}
	c.logger.Log("Wrote %s (%d cases)", path, len(inputs))
	return nil
}
