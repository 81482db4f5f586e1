package compiler

import (
	"sort"
	"strings"

	"github.com/hao-wang/bfalgo/internal/nfa"
	"github.com/hao-wang/bfalgo/internal/postfix"
)

// AnalysisResult contains the results of pattern analysis without code generation.
type AnalysisResult struct {
	// FeatureLabels are derived from pattern structure (sorted alphabetically)
	FeatureLabels []string `json:"feature_labels"`

	// EngineLabels name the engine Generate would select (sorted alphabetically)
	EngineLabels []string `json:"engine_labels"`

	Postfix     string `json:"postfix"`
	NFAStates   int    `json:"nfa_states"`
	Cyclic      bool   `json:"cyclic"`
	AlphabetLen int    `json:"alphabet_len"`
}

// AnalyzePattern compiles pattern and reports its features and engine
// without generating code. It returns an error if the pattern is invalid.
func AnalyzePattern(pattern string) (*AnalysisResult, error) {
	post, err := postfix.Translate(pattern)
	if err != nil {
		return nil, err
	}
	a, err := nfa.Build(post)
	if err != nil {
		return nil, err
	}

	an := analyzeAutomaton(a)
	return &AnalysisResult{
		FeatureLabels: deriveFeatureLabels(pattern, post, an),
		EngineLabels:  []string{an.Engine},
		Postfix:       post,
		NFAStates:     an.States,
		Cyclic:        an.Cyclic,
		AlphabetLen:   len(an.Alphabet),
	}, nil
}

func deriveFeatureLabels(pattern, post string, an Analysis) []string {
	var labels []string
	if strings.ContainsRune(pattern, '(') {
		labels = append(labels, "Groups")
	}
	if strings.ContainsRune(pattern, postfix.Alt) {
		labels = append(labels, "Alternation")
	}
	if strings.ContainsAny(post, "*+?") {
		labels = append(labels, "Quantifiers")
	}
	if an.Cyclic {
		labels = append(labels, "Loops")
	}
	if an.Multibyte {
		labels = append(labels, "Multibyte")
	}
	sort.Strings(labels)
	return labels
}
