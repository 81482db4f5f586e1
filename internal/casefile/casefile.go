// Package casefile reads batches of match expectations for a pattern:
//
//	# comment
//	pattern "a(b|c)*d"
//	  match  "abcbd"
//	  reject "ab"
//	pattern "(a" fails "unbalanced"
//
// Strings use Go escape syntax. A fails clause passes when compiling the
// pattern fails with an error whose message contains the given text.
package casefile

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// File is a parsed case file.
type File struct {
	Cases []*Case `parser:"@@*"`
}

// Case is one pattern with either its expected compile failure or a list
// of inputs to check.
type Case struct {
	Pos lexer.Position

	Pattern string   `parser:"'pattern' @String"`
	Fails   *string  `parser:"( 'fails' @String"`
	Checks  []*Check `parser:"| @@+ )?"`
}

// Check expects one input to match or to be rejected.
type Check struct {
	Pos lexer.Position

	Verdict string `parser:"@('match' | 'reject')"`
	Input   string `parser:"@String"`
}

var caseLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Keyword", Pattern: `[a-z]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[File](
	participle.Lexer(caseLexer),
	participle.Unquote("String"),
	participle.Elide("Comment", "Whitespace"),
)

// Parse parses src. name is used in positions and error messages.
func Parse(name, src string) (*File, error) {
	return parser.ParseString(name, src)
}

// ParseFile reads and parses the case file at path.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case file: %w", err)
	}
	return parser.ParseBytes(path, data)
}
