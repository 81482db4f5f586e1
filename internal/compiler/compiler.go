package compiler

import (
	"errors"
	"fmt"
	"go/format"
	"io"
	"os"

	"github.com/dave/jennifer/jen"
	"github.com/hao-wang/bfalgo/internal/codegen"
	"github.com/hao-wang/bfalgo/internal/nfa"
)

// Config holds the configuration for code generation.
type Config struct {
	Pattern          string         // Source pattern, used in comments only
	Automaton        *nfa.Automaton // Compiled automaton to generate a matcher for
	Name             string         // Name of the generated type
	Package          string         // Go package of the generated file
	OutputFile       string         // Path of the generated file
	UsePool          bool           // Recycle table-engine scratch space through sync.Pool
	GenerateTestFile bool           // Generate test file with tests and benchmarks
	TestFileInputs   []string       // Test inputs for generated test file
	ForceTable       bool           // Use the table engine even for small automata
	Verbose          bool           // Enable verbose logging of analysis decisions
	LogOutput        io.Writer      // Destination of verbose logging, stderr when nil
}

// Compiler generates matcher code for an automaton.
type Compiler struct {
	config   Config
	file     *jen.File
	logger   *Logger
	analysis Analysis
}

// New creates a new compiler instance.
func New(config Config) *Compiler {
	c := &Compiler{
		config: config,
		file:   jen.NewFile(config.Package),
		logger: NewLogger(config.Verbose),
	}
	if config.LogOutput != nil {
		c.logger.SetOutput(config.LogOutput)
	}
	if config.Automaton != nil {
		c.analyzeAndLog()
	}
	return c
}

// NewCompiler is an alias for New.
func NewCompiler(config Config) *Compiler {
	return New(config)
}

// SetOutputFile sets the output file path.
func (c *Compiler) SetOutputFile(path string) {
	c.config.OutputFile = path
}

// analyzeAndLog performs automaton analysis and logs the results if verbose mode is enabled.
func (c *Compiler) analyzeAndLog() {
	c.logger.Section("Pattern Analysis")
	c.logger.Log("Pattern: %s", c.config.Pattern)

	c.analysis = analyzeAutomaton(c.config.Automaton)
	c.logger.Log("NFA states: %d (consume %d, split %d)",
		c.analysis.States, c.analysis.ConsumeStates, c.analysis.SplitStates)
	c.logger.Log("Alphabet size: %d", len(c.analysis.Alphabet))
	c.logger.Log("Has loops: %v", c.analysis.Cyclic)
	c.logger.Log("Has multibyte runes: %v", c.analysis.Multibyte)

	c.logger.Section("Engine Selection")
	if c.config.ForceTable && c.analysis.Engine != EngineTable {
		c.analysis.Engine = EngineTable
		c.logger.Log("Match engine: table (forced by user)")
	} else if c.analysis.Engine == EngineBitset {
		c.logger.Log("Match engine: bitset (%d <= %d states)", c.analysis.States, MaxBitsetStates)
	} else {
		c.logger.Log("Match engine: table (%d > %d states)", c.analysis.States, MaxBitsetStates)
	}
	if c.analysis.Engine == EngineTable {
		c.logger.Log("Scratch pool: %v", c.config.UsePool)
	}
}

// method returns a jen.Statement for declaring a method on the generated struct.
func (c *Compiler) method(name string) *jen.Statement {
	return c.file.Func().
		Params(jen.Id(c.config.Name)).
		Id(name)
}

// Generate generates the Go code and writes it to the output file.
func (c *Compiler) Generate() error {
	if c.config.Automaton == nil {
		return errors.New("no automaton to generate code for")
	}

	c.file.HeaderComment(fmt.Sprintf("Code generated by thompson for pattern %q. DO NOT EDIT.", c.config.Pattern))

	// Generate the main struct type
	c.file.Comment(fmt.Sprintf("%s matches whole inputs against %q.", c.config.Name, c.config.Pattern))
	c.file.Type().Id(c.config.Name).Struct()
	c.file.Line()

	// Generate convenience variable for direct usage
	c.file.Var().Id(fmt.Sprintf("Compiled%s", c.config.Name)).Op("=").Id(c.config.Name).Values()
	c.file.Line()

	c.logger.Section("Code Generation")
	var matchStringCode, matchBytesCode []jen.Code
	switch c.analysis.Engine {
	case EngineBitset:
		g := NewBitsetGenerator(c)
		g.generateStep()
		matchStringCode = g.GenerateMatchFunction(false)
		matchBytesCode = g.GenerateMatchFunction(true)
	default:
		g := NewTableGenerator(c)
		g.generateTables()
		if c.config.UsePool {
			c.generateScratchPool(g.stateCount)
		}
		g.generateStep()
		matchStringCode = g.GenerateMatchFunction(false)
		matchBytesCode = g.GenerateMatchFunction(true)
	}

	// Add MatchString method
	c.file.Comment("MatchString reports whether the whole of input matches.")
	c.method("MatchString").
		Params(jen.Id(codegen.InputName).String()).
		Params(jen.Bool()).
		Block(matchStringCode...)
	c.file.Line()

	// Add MatchBytes method
	c.file.Comment("MatchBytes reports whether the whole of input, read as UTF-8, matches.")
	c.method("MatchBytes").
		Params(jen.Id(codegen.InputName).Index().Byte()).
		Params(jen.Bool()).
		Block(matchBytesCode...)

	// Save to file
	if err := c.file.Save(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	// Format the generated file
	if err := formatFile(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to format file: %w", err)
	}
	c.logger.Log("Wrote %s", c.config.OutputFile)

	// Generate test file if requested
	if c.config.GenerateTestFile {
		if err := c.generateTestFile(); err != nil {
			return fmt.Errorf("failed to generate test file: %w", err)
		}
	}

	return nil
}

// formatFile reads a file, formats it with go/format, and writes it back.
func formatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	formatted, err := format.Source(src)
	if err != nil {
		return err
	}

	return os.WriteFile(path, formatted, 0644)
}
