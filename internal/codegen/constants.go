// Package codegen provides code generation helpers and constants.
package codegen

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Variable names used in generated code
const (
	InputName    = "input"
	RuneName     = "c"
	SizeName     = "size"
	CurrentName  = "current"
	NextName     = "next"
	ScratchName  = "s"
	StateIDName  = "id"
	TargetName   = "to"
	StepName     = "Step"
	ScratchType  = "Scratch"
	PoolName     = "ScratchPool"
	RunesName    = "Runes"
	ClosuresName = "Closures"
	StartName    = "Start"
	AcceptName   = "Accept"
	NumStateName = "NumStates"
)

// StateComment returns the comment placed above the code for a state.
func StateComment(id uint32, r rune) string {
	return fmt.Sprintf("state %d: %q", id, r)
}

// Prefixed returns the unexported package-level identifier for suffix,
// e.g. Prefixed("Email", "Step") == "emailStep".
func Prefixed(name, suffix string) string {
	return LowerFirst(name) + suffix
}

// LowerFirst converts the first character of a string to lowercase.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
