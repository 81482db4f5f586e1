package casefile

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/hao-wang/bfalgo/pkg/thompson"
)

// CompileFunc compiles a pattern. thompson.Compile is the usual choice.
type CompileFunc func(pattern string) (*thompson.Regexp, error)

// Result is the outcome of one expectation.
type Result struct {
	Pos     lexer.Position
	Pattern string
	Verdict string // "match", "reject" or "fails"
	Input   string // the checked input, or the expected error text for "fails"
	Passed  bool
	Got     string // what happened instead, set when Passed is false
}

func (r Result) String() string {
	status := "ok"
	if !r.Passed {
		status = "FAIL: got " + r.Got
	}
	return fmt.Sprintf("%s: %q %s %q: %s", r.Pos, r.Pattern, r.Verdict, r.Input, status)
}

// Report collects the results of running a file.
type Report struct {
	Results []Result
}

// Failed returns the results that did not pass.
func (r Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.Passed {
			failed = append(failed, res)
		}
	}
	return failed
}

// OK reports whether every expectation passed.
func (r Report) OK() bool {
	return len(r.Failed()) == 0
}

// Run compiles every pattern in f with compile and checks each expectation.
// A pattern that fails to compile fails all of its checks.
func (f *File) Run(compile CompileFunc) Report {
	var report Report
	for _, c := range f.Cases {
		re, err := compile(c.Pattern)

		if c.Fails != nil {
			res := Result{Pos: c.Pos, Pattern: c.Pattern, Verdict: "fails", Input: *c.Fails}
			switch {
			case err == nil:
				res.Got = "no error"
			case !strings.Contains(err.Error(), *c.Fails):
				res.Got = err.Error()
			default:
				res.Passed = true
			}
			report.Results = append(report.Results, res)
			continue
		}

		for _, chk := range c.Checks {
			res := Result{Pos: chk.Pos, Pattern: c.Pattern, Verdict: chk.Verdict, Input: chk.Input}
			if err != nil {
				res.Got = err.Error()
				report.Results = append(report.Results, res)
				continue
			}
			got := "reject"
			if re.MatchString(chk.Input) {
				got = "match"
			}
			res.Passed = got == chk.Verdict
			if !res.Passed {
				res.Got = got
			}
			report.Results = append(report.Results, res)
		}
	}
	return report
}
