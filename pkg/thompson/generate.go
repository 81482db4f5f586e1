package thompson

import (
	"fmt"
	"io"

	"github.com/hao-wang/bfalgo/internal/compiler"
)

// Options configures matcher code generation.
type Options struct {
	// Pattern is the regular expression to compile
	Pattern string

	// Name is the name of the generated type (e.g., "Email" generates "Email" and "CompiledEmail")
	Name string

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code
	Package string

	// NoPool disables sync.Pool for scratch reuse in the table engine
	NoPool bool

	// ForceTable selects the table engine even when the automaton fits a bitset
	ForceTable bool

	// GenerateTestFile generates a test file with tests and a benchmark (default: true if TestFileInputs provided)
	GenerateTestFile bool

	// TestFileInputs is a list of test inputs for the generated test file. If empty and GenerateTestFile is true, defaults to []string{""}
	TestFileInputs []string

	// Verbose logs analysis and engine selection
	Verbose bool

	// LogOutput receives verbose logging (default: os.Stderr)
	LogOutput io.Writer
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Pattern == "" {
		return fmt.Errorf("pattern cannot be empty")
	}
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	return nil
}

// Generate writes a standalone Go matcher for opts.Pattern to opts.OutputFile.
// It returns an error if the pattern is invalid or code generation fails.
func Generate(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	re, err := Compile(opts.Pattern)
	if err != nil {
		return err
	}

	generateTestFile := opts.GenerateTestFile
	testInputs := opts.TestFileInputs
	if len(testInputs) > 0 {
		generateTestFile = true
	} else if generateTestFile {
		testInputs = []string{""}
	}

	c := compiler.NewCompiler(compiler.Config{
		Pattern:          opts.Pattern,
		Automaton:        re.nfa,
		Name:             opts.Name,
		Package:          opts.Package,
		UsePool:          !opts.NoPool, // Invert: NoPool flag disables pool
		ForceTable:       opts.ForceTable,
		GenerateTestFile: generateTestFile,
		TestFileInputs:   testInputs,
		Verbose:          opts.Verbose,
		LogOutput:        opts.LogOutput,
	})
	c.SetOutputFile(opts.OutputFile)

	if err := c.Generate(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	return nil
}
