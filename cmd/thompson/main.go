// Command thompson compiles a pattern into a Thompson NFA and prints the
// inputs it matches. It can also show the postfix form, draw the automaton,
// run case files and generate a standalone Go matcher.
//
// Usage:
//
//	thompson [flags] <pattern> [input ...]
//	thompson -lines FILE <pattern>
//	thompson -cases FILE
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hao-wang/bfalgo/internal/casefile"
	"github.com/hao-wang/bfalgo/pkg/thompson"
	"github.com/hao-wang/bfalgo/stream"
)

// arrayFlags collects a repeatable string flag.
type arrayFlags []string

func (a arrayFlags) String() string {
	return strings.Join(a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

type options struct {
	postfix    bool
	dot        string
	cases      string
	lines      string
	gen        bool
	name       string
	pkg        string
	output     string
	noPool     bool
	forceTable bool
	testInputs arrayFlags
	verbose    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns its exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("thompson", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.postfix, "postfix", false, "print the postfix form and exit")
	fs.StringVar(&opts.dot, "dot", "", "write the automaton as Graphviz DOT to `file` (\"-\" for stdout)")
	fs.StringVar(&opts.cases, "cases", "", "run the case `file` instead of a pattern")
	fs.StringVar(&opts.lines, "lines", "", "print the lines of `file` that match (\"-\" for stdin)")
	fs.BoolVar(&opts.gen, "gen", false, "generate a Go matcher (requires -name, -package and -output)")
	fs.StringVar(&opts.name, "name", "", "name of the generated type")
	fs.StringVar(&opts.pkg, "package", "", "package of the generated file")
	fs.StringVar(&opts.output, "output", "", "path of the generated file")
	fs.BoolVar(&opts.noPool, "no-pool", false, "disable sync.Pool in the generated table engine")
	fs.BoolVar(&opts.forceTable, "table", false, "always generate the table engine")
	fs.Var(&opts.testInputs, "test-input", "input for the generated test file (repeatable)")
	fs.BoolVar(&opts.verbose, "verbose", false, "log analysis and engine selection")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: thompson [flags] <pattern> [input ...]")
		fmt.Fprintln(stderr, "       thompson -cases FILE")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if opts.cases != "" {
		return runCases(opts.cases, stdout, stderr)
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}
	pattern := fs.Arg(0)

	re, err := thompson.Compile(pattern)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if opts.postfix {
		fmt.Fprintln(stdout, re.Postfix())
		return 0
	}

	if opts.dot != "" {
		if err := writeDOT(re, opts.dot, stdout); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}

	if opts.gen {
		err := thompson.Generate(thompson.Options{
			Pattern:        pattern,
			Name:           opts.name,
			OutputFile:     opts.output,
			Package:        opts.pkg,
			NoPool:         opts.noPool,
			ForceTable:     opts.forceTable,
			TestFileInputs: opts.testInputs,
			Verbose:        opts.verbose,
			LogOutput:      stderr,
		})
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stderr, "✓ Generated %s\n", opts.output)
	}

	if opts.lines != "" {
		if err := printLines(re, opts.lines, stdin, stdout); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}

	for _, input := range fs.Args()[1:] {
		if re.MatchString(input) {
			fmt.Fprintln(stdout, input)
		}
	}
	return 0
}

func printLines(re *thompson.Regexp, path string, stdin io.Reader, stdout io.Writer) error {
	src := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		src = f
	}

	if _, err := io.Copy(stdout, stream.MatchLines(src, re)); err != nil {
		return fmt.Errorf("failed to filter lines: %w", err)
	}
	return nil
}

func writeDOT(re *thompson.Regexp, path string, stdout io.Writer) error {
	if path == "-" {
		return re.WriteDOT(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create DOT file: %w", err)
	}
	if err := re.WriteDOT(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write DOT file: %w", err)
	}
	return f.Close()
}

func runCases(path string, stdout, stderr io.Writer) int {
	f, err := casefile.ParseFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	report := f.Run(thompson.Compile)
	failed := report.Failed()
	for _, res := range failed {
		fmt.Fprintln(stdout, res)
	}
	fmt.Fprintf(stdout, "%d checks, %d failed\n", len(report.Results), len(failed))
	if len(failed) > 0 {
		return 1
	}
	return 0
}
