package thompson

import (
	"github.com/hao-wang/bfalgo/internal/compiler"
)

// AnalysisResult contains the results of pattern analysis without code generation.
type AnalysisResult = compiler.AnalysisResult

// Analyze compiles pattern and reports its structure without generating code.
//
//   - FeatureLabels: derived from pattern structure (e.g., "Alternation", "Loops")
//   - EngineLabels: the engine Generate would select ("Bitset" or "Table")
//
// Both label arrays are sorted alphabetically for deterministic comparison.
func Analyze(pattern string) (*AnalysisResult, error) {
	res, err := compiler.AnalyzePattern(pattern)
	if err != nil {
		return nil, &Error{Op: "analyze", Pattern: pattern, Err: err}
	}
	return res, nil
}
