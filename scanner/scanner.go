// Package scanner tokenizes source text and classifies conditional
// directive markers.
//
// The scanner passes every token of the underlying source through
// unchanged; its only addition is tagging #if, #elif, #else and #end
// tokens as directive markers when they open a line. The classification is
// purely positional: a directive spelling in the middle of a line is an
// ordinary token, and a line that happens to begin with one is always a
// marker, whatever the surrounding code looks like.
package scanner

import (
	"io"

	"github.com/alecthomas/participle/v2/lexer"
)

// Definition is the lexer shared by the scanner and the condition parser.
// Sharing one definition keeps token types consistent between the two.
var Definition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Directive", Pattern: `#(?:if|elif|else|end)\b`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Float", Pattern: `-?[0-9]+\.[0-9]+`},
	{Name: "Int", Pattern: `-?[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_']*`},
	{Name: "AndOp", Pattern: `&&`},
	{Name: "OrOp", Pattern: `\|\|`},
	{Name: "CmpOp", Pattern: `=~|<=|>=|[=<>]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Punct", Pattern: `[^\s]`},
})

var (
	directiveType  = Definition.Symbols()["Directive"]
	whitespaceType = Definition.Symbols()["Whitespace"]
)

// Token is a lexical token plus its directive classification.
type Token struct {
	lexer.Token
	Marker bool // a directive keyword appearing as the first token on its line
}

// Scanner reads tokens from a source and tags beginning-of-line directives.
type Scanner struct {
	lex      lexer.Lexer
	lastLine int
	started  bool
}

// New returns a scanner over r. The filename is only used in positions.
func New(filename string, r io.Reader) (*Scanner, error) {
	lex, err := Definition.Lex(filename, r)
	if err != nil {
		return nil, err
	}
	return &Scanner{lex: lex}, nil
}

// NewString returns a scanner over src.
func NewString(filename, src string) (*Scanner, error) {
	lex, err := Definition.LexString(filename, src)
	if err != nil {
		return nil, err
	}
	return &Scanner{lex: lex}, nil
}

// Next returns the next non-whitespace token. At end of input it returns a
// token for which EOF() is true.
func (s *Scanner) Next() (Token, error) {
	for {
		t, err := s.lex.Next()
		if err != nil {
			return Token{}, err
		}
		if t.Type == whitespaceType {
			continue
		}
		tok := Token{Token: t}
		if t.EOF() {
			return tok, nil
		}
		if t.Type == directiveType && (!s.started || t.Pos.Line > s.lastLine) {
			tok.Marker = true
		}
		s.started = true
		s.lastLine = t.Pos.Line
		return tok, nil
	}
}

// EOF reports whether the token marks the end of input.
func (t Token) EOF() bool {
	return t.Type == lexer.EOF
}
