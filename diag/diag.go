// Package diag defines the fatal error kinds reported by the preprocessor.
// Every error carries the source position it was detected at; none of them
// are recoverable, processing stops at the first one.
package diag

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// SyntaxError reports a malformed directive: an unexpected token in a
// condition, a missing "then", an unterminated block, or an #elif/#else/#end
// with no open #if.
type SyntaxError struct {
	Pos lexer.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", e.Pos, e.Msg)
}

// TypeError reports a comparison between operands of different types, or a
// =~ with a non-string operand. The message cites both operand types.
type TypeError struct {
	Pos lexer.Position
	Msg string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: type error: %s", e.Pos, e.Msg)
}

// NameError reports a comparison referencing a variable that is not bound
// in the environment. defined/undefined never produce it.
type NameError struct {
	Pos  lexer.Position
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%s: name error: %s is not defined", e.Pos, e.Name)
}

// FormatError reports a =~ operand that does not parse as a version or
// range specifier.
type FormatError struct {
	Pos  lexer.Position
	Text string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: format error: %q is not a major.minor.patch version", e.Pos, e.Text)
}
