package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/hao-wang/bfalgo/pkg/thompson"
)

var testCases = []TestCase{
	{
		Name:    "Classic",
		Pattern: `a(b|c)*d`,
		Input: []string{
			"a" + strings.Repeat("bc", 50) + "d",
			"a" + strings.Repeat("bc", 50),
		},
	},
	{
		Name:    "Suffix",
		Pattern: `(a|b)*abb`,
		Input: []string{
			strings.Repeat("ab", 100) + "abb",
			strings.Repeat("ab", 100) + "aba",
		},
	},
	{
		Name:    "Pathological",
		Pattern: strings.Repeat("a?", 30) + strings.Repeat("a", 30),
		Input: []string{
			strings.Repeat("a", 30),
			strings.Repeat("a", 61),
		},
	},
	{
		Name:    "NestedStar",
		Pattern: `(a*)*b`,
		Input: []string{
			strings.Repeat("a", 100) + "b",
			strings.Repeat("a", 100),
		},
	},
	{
		Name:    "Keywords",
		Pattern: `(select|insert|update|delete) (from|into) (users|orders|items)`,
		Input: []string{
			"select from users",
			"update into orders",
			"drop from users",
		},
		Table: true,
	},
}

var testTemplate = `
package generated

import (
	"testing"

	"github.com/hao-wang/bfalgo/pkg/thompson"
)


func Test{{ .Name }}MatchString(t *testing.T) {
	pattern := {{ quote .Pattern }}
	re := thompson.MustCompile(pattern)
	{{ $out := . }}
	{{ range $index, $input := .Input }}
	t.Run("test input {{ $index }}", func(t *testing.T) {
		input := {{ quote $input }}
		isNFAMatch := re.MatchString(input)
		isGeneratedMatch := {{ $out.Name }}{}.MatchString(input)
		if isNFAMatch != isGeneratedMatch {
			t.Fatalf("pattern %s nfaMatch - %v, generatedMatch - %v", input, isNFAMatch, isGeneratedMatch)
		}
	})

	{{ end }}
}

func Benchmark{{ .Name }}MatchString(b *testing.B) {
	pattern := {{ quote .Pattern }}
	re := thompson.MustCompile(pattern)
	{{ $out := . }}
	{{ range $index, $input := .Input }}

	b.Run("nfa {{ $index }}", func(b *testing.B) {
		b.ReportAllocs()
		input := {{ quote $input }}
		for b.Loop() {
			re.MatchString(input)
		}
	})

	b.Run("generated {{ $index }}", func(b *testing.B) {
		b.ReportAllocs()
		input := {{ quote $input }}
		for b.Loop() {
			{{ $out.Name }}{}.MatchString(input)
		}
	})

	{{ end }}
}
`

var cwd string

func init() {
	var err error
	cwd, err = os.Getwd()
	if err != nil {
		panic(fmt.Errorf("unable to get cwd: %w", err))
	}
}

type TestCase struct {
	Name    string   `json:"name"`
	Pattern string   `json:"pattern"`
	Input   []string `json:"input"`
	Table   bool     `json:"table"`
}

func main() {
	testTemplate, err := template.New("auto_gen_test").Funcs(map[string]interface{}{
		"quote": func(v string) string { return strconv.Quote(v) },
	}).Parse(testTemplate)

	if err != nil {
		panic(err)
	}

	outputDir := filepath.Join(cwd, "benchmarks", "generated")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		panic(err)
	}

	for _, testCase := range testCases {
		if err := thompson.Generate(thompson.Options{
			Pattern:    testCase.Pattern,
			Name:       testCase.Name,
			OutputFile: filepath.Join(outputDir, fmt.Sprintf("%s.go", testCase.Name)),
			Package:    "generated",
			ForceTable: testCase.Table,
		}); err != nil {
			panic(err)
		}

		testFile, err := os.Create(filepath.Join(outputDir, fmt.Sprintf("%s_test.go", testCase.Name)))
		if err != nil {
			panic(err)
		}
		if err := testTemplate.Execute(testFile, testCase); err != nil {
			panic(err)
		}
		if err := testFile.Close(); err != nil {
			panic(err)
		}
	}

	fmt.Printf("✓ Generated %d matchers\n", len(testCases))
}
