// Package postfix converts infix patterns into the postfix token stream
// consumed by the automaton builder.
//
// Precedence, from tightest to loosest: grouping, repetition (* + ?),
// concatenation, alternation. Concatenation is implicit in the infix form
// and written explicitly as '.' in the postfix form.
package postfix

import "strings"

// Postfix operators.
const (
	Concat = '.'
	Alt    = '|'
	Star   = '*'
	Plus   = '+'
	Quest  = '?'

	// Escape precedes a literal '.' or '\' in the postfix stream so that
	// it cannot be read back as an operator.
	Escape = '\\'
)

// IsOperator reports whether r is a postfix operator.
func IsOperator(r rune) bool {
	switch r {
	case Concat, Alt, Star, Plus, Quest:
		return true
	}
	return false
}

// scope holds the counters saved when a group opens.
type scope struct {
	operands     int
	alternations int
	offset       int // offset of the '(' that opened the group
}

// Translate converts an infix pattern to postfix.
//
// Two counters drive the conversion: operands counts the operands that are
// still waiting to be concatenated at the current nesting level, and
// alternations counts the '|' seen at that level. Each '(' saves both
// counters and starts a fresh level; the matching ')' flushes the level and
// counts the whole group as one operand of the enclosing level.
//
// A trailing '|' is rejected here with ErrDanglingAlternation rather than
// being passed on as a postfix stream the builder cannot reduce.
func Translate(pattern string) (string, error) {
	var (
		dst          strings.Builder
		operands     int
		alternations int
		scopes       []scope
	)
	dst.Grow(2 * len(pattern))

	flushConcat := func() {
		for ; operands > 1; operands-- {
			dst.WriteByte(Concat)
		}
	}
	flushAlt := func() {
		for ; alternations > 0; alternations-- {
			dst.WriteByte(Alt)
		}
	}

	for offset, r := range pattern {
		switch r {
		case '(':
			if operands > 1 {
				operands--
				dst.WriteByte(Concat)
			}
			scopes = append(scopes, scope{operands: operands, alternations: alternations, offset: offset})
			operands, alternations = 0, 0

		case ')':
			if len(scopes) == 0 {
				return "", syntaxError(ErrUnbalancedParen, pattern, offset)
			}
			if operands == 0 {
				return "", syntaxError(ErrEmptyGroup, pattern, offset)
			}
			flushConcat()
			flushAlt()
			outer := scopes[len(scopes)-1]
			scopes = scopes[:len(scopes)-1]
			operands, alternations = outer.operands+1, outer.alternations

		case Alt:
			if operands == 0 {
				return "", syntaxError(ErrDanglingAlternation, pattern, offset)
			}
			flushConcat()
			// Operands on the two sides of '|' never concatenate.
			operands = 0
			alternations++

		case Star, Plus, Quest:
			if operands == 0 {
				return "", syntaxError(ErrDanglingRepetition, pattern, offset)
			}
			dst.WriteRune(r)

		default:
			if operands > 1 {
				operands--
				dst.WriteByte(Concat)
			}
			writeLiteral(&dst, r)
			operands++
		}
	}

	if len(scopes) != 0 {
		return "", syntaxError(ErrUnbalancedParen, pattern, scopes[len(scopes)-1].offset)
	}
	if operands == 0 && alternations > 0 {
		// Trailing '|': the right-hand side is missing.
		return "", syntaxError(ErrDanglingAlternation, pattern, len(pattern))
	}
	flushConcat()
	flushAlt()

	return dst.String(), nil
}

func writeLiteral(dst *strings.Builder, r rune) {
	if r == Concat || r == Escape {
		dst.WriteByte(Escape)
	}
	dst.WriteRune(r)
}
