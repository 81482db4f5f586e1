package postfix

import (
	"errors"
	"fmt"
)

// Syntax errors reported by Translate. They are always wrapped in a
// *SyntaxError; compare with errors.Is.
var (
	ErrUnbalancedParen     = errors.New("unbalanced parenthesis")
	ErrEmptyGroup          = errors.New("empty group")
	ErrDanglingAlternation = errors.New("alternation without operand")
	ErrDanglingRepetition  = errors.New("repetition without operand")
)

// SyntaxError describes where an infix pattern was rejected.
type SyntaxError struct {
	Err     error  // one of the Err* sentinels
	Pattern string // the rejected pattern
	Offset  int    // byte offset of the offending rune, len(Pattern) at end of input
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d in %q", e.Err, e.Offset, e.Pattern)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func syntaxError(err error, pattern string, offset int) *SyntaxError {
	return &SyntaxError{Err: err, Pattern: pattern, Offset: offset}
}
