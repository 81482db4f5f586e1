package e2e

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"text/template"

	"github.com/hao-wang/bfalgo/pkg/thompson"
)

// TestCase represents a test case with a pattern and inputs
type TestCase struct {
	Pattern string   `json:"pattern"`
	Inputs  []string `json:"inputs"`
	Table   bool     `json:"table"`
	NoPool  bool     `json:"no_pool"`
}

// TestE2E generates a matcher for every pattern and runs its generated tests,
// which compare the generated engine against the in-process simulator.
func TestE2E(t *testing.T) {
	// Read test data
	testDataPath := filepath.Join("testdata.json")
	data, err := os.ReadFile(testDataPath)
	if err != nil {
		t.Fatalf("Failed to read test data: %v", err)
	}

	var testCases []TestCase
	if err := json.Unmarshal(data, &testCases); err != nil {
		t.Fatalf("Failed to parse test data: %v", err)
	}

	if len(testCases) == 0 {
		t.Fatal("No test cases found in testdata.json")
	}

	t.Logf("Running %d e2e test cases", len(testCases))

	// Create a temporary directory for all test outputs
	// This directory will be automatically cleaned up after the test
	tempDir := t.TempDir()

	for i, tc := range testCases {
		tc := tc // capture range variable
		testName := fmt.Sprintf("Pattern%02d", i+1)

		t.Run(testName, func(t *testing.T) {
			// Create a subdirectory for this test case
			caseDir := filepath.Join(tempDir, testName)
			if err := os.MkdirAll(caseDir, 0755); err != nil {
				t.Fatalf("Failed to create test directory: %v", err)
			}

			// Step 1: Generate code
			t.Logf("Generating code for pattern: %s", tc.Pattern)
			outputFile := filepath.Join(caseDir, fmt.Sprintf("%s.go", testName))

			opts := thompson.Options{
				Pattern:          tc.Pattern,
				Name:             testName,
				OutputFile:       outputFile,
				Package:          "generated",
				NoPool:           tc.NoPool,
				ForceTable:       tc.Table,
				GenerateTestFile: true,
				TestFileInputs:   tc.Inputs,
			}

			if err := thompson.Generate(opts); err != nil {
				t.Fatalf("Failed to generate code: %v", err)
			}

			// Verify the generated file exists
			if _, err := os.Stat(outputFile); os.IsNotExist(err) {
				t.Fatalf("Generated file does not exist: %s", outputFile)
			}

			// Verify the test file was generated
			testFile := filepath.Join(caseDir, fmt.Sprintf("%s_test.go", testName))
			if _, err := os.Stat(testFile); os.IsNotExist(err) {
				t.Fatalf("Generated test file does not exist: %s", testFile)
			}

			t.Logf("Generated files: %s and %s", outputFile, testFile)

			// Step 1b: Check string and byte matching on invalid UTF-8
			if err := writeUTF8Test(caseDir, testName, tc); err != nil {
				t.Fatalf("Failed to write UTF-8 test: %v", err)
			}

			// Step 2: Initialize go module in the test directory
			t.Logf("Initializing go module...")
			initCmd := exec.Command("go", "mod", "init", "testmodule")
			initCmd.Dir = caseDir
			if output, err := initCmd.CombinedOutput(); err != nil {
				t.Fatalf("Failed to initialize go module:\nOutput: %s\nError: %v", string(output), err)
			}

			// Step 3: Run the generated tests
			t.Logf("Running generated tests...")
			cmd := exec.Command("go", "test", "-v")
			cmd.Dir = caseDir

			output, err := cmd.CombinedOutput()
			if err != nil {
				t.Fatalf("Generated tests failed:\nOutput: %s\nError: %v", string(output), err)
			}

			// Count how many tests ran
			testCount := countTests(string(output))
			if testCount == 0 {
				t.Fatalf("No tests were executed! Output: %s", string(output))
			}

			t.Logf("✓ Ran %d generated tests", testCount)
		})
	}

	t.Logf("All %d e2e test cases passed successfully", len(testCases))
}

var utf8Template = template.Must(template.New("utf8_test").Funcs(map[string]interface{}{
	"quote": strconv.Quote,
}).Parse(`package generated

import "testing"

func Test{{ .Name }}InvalidUTF8(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
	{{- range .Cases }}
		{ {{ quote .Input }}, {{ .Want }} },
	{{- end }}
	}
	for _, tt := range tests {
		if got := Compiled{{ .Name }}.MatchString(tt.input); got != tt.want {
			t.Errorf("MatchString(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if got := Compiled{{ .Name }}.MatchBytes([]byte(tt.input)); got != tt.want {
			t.Errorf("MatchBytes(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
`))

type utf8Case struct {
	Input string
	Want  bool
}

// writeUTF8Test writes a test feeding the generated matcher invalid UTF-8
// variants of the case inputs. Every invalid byte decodes to U+FFFD, so
// both entry points must agree with the in-process simulator.
func writeUTF8Test(dir, name string, tc TestCase) error {
	re := thompson.MustCompile(tc.Pattern)

	var inputs []string
	for _, in := range tc.Inputs {
		inputs = append(inputs,
			in+"\xff",
			"\xc3"+in,
			strings.ReplaceAll(in, "\uFFFD", "\xff"),
		)
		if len(in) > 1 {
			// May cut a multibyte rune in half.
			inputs = append(inputs, in[:len(in)-1])
		}
	}

	cases := make([]utf8Case, len(inputs))
	for i, in := range inputs {
		cases[i] = utf8Case{Input: in, Want: re.MatchBytes([]byte(in))}
	}

	f, err := os.Create(filepath.Join(dir, "utf8_test.go"))
	if err != nil {
		return err
	}
	if err := utf8Template.Execute(f, struct {
		Name  string
		Cases []utf8Case
	}{name, cases}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// countTests counts the number of tests that were executed by parsing the output
func countTests(output string) int {
	count := 0
	lines := strings.Split(output, "\n")
	for _, line := range lines {
		// Look for lines like "=== RUN   TestPattern01MatchString"
		if strings.HasPrefix(strings.TrimSpace(line), "=== RUN") {
			count++
		}
	}
	return count
}
