// Package parser builds condition expression trees from scanned tokens
// using participle.
package parser

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/sansecio/bspp/ast"
	"github.com/sansecio/bspp/diag"
	"github.com/sansecio/bspp/scanner"
)

var condParser = participle.MustBuild[conditionGrammar](
	participle.Lexer(scanner.Definition),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// tokenSource replays an already-scanned token span for participle.
type tokenSource struct {
	toks []lexer.Token
	end  lexer.Position
	i    int
}

func (s *tokenSource) Next() (lexer.Token, error) {
	if s.i >= len(s.toks) {
		return lexer.EOFToken(s.end), nil
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}

// ParseCondition parses the token span between a directive marker and its
// terminating "then" keyword. at is the position reported when the span
// itself gives no better one (empty condition, unexpected end).
func ParseCondition(toks []lexer.Token, at lexer.Position) (ast.Expr, error) {
	if len(toks) == 0 {
		return nil, &diag.SyntaxError{Pos: at, Msg: "missing condition"}
	}
	end := toks[len(toks)-1].Pos
	plex, err := lexer.Upgrade(&tokenSource{toks: toks, end: end})
	if err != nil {
		return nil, syntaxError(err, at)
	}
	g, err := condParser.ParseFromLexer(plex)
	if err != nil {
		return nil, syntaxError(err, at)
	}
	return convertOr(g.Expr), nil
}

func syntaxError(err error, fallback lexer.Position) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		return &diag.SyntaxError{Pos: perr.Position(), Msg: perr.Message()}
	}
	return &diag.SyntaxError{Pos: fallback, Msg: err.Error()}
}

// Condition conversion, grammar structs to AST.

func convertOr(e *orExpr) ast.Expr {
	left := convertAnd(e.Left)
	for _, right := range e.Right {
		left = ast.Or{Left: left, Right: convertAnd(right)}
	}
	return left
}

func convertAnd(e *andExpr) ast.Expr {
	left := convertPredicate(e.Left)
	for _, right := range e.Right {
		left = ast.And{Left: left, Right: convertPredicate(right)}
	}
	return left
}

func convertPredicate(p *predicate) ast.Expr {
	switch {
	case p.Defined != nil:
		return ast.Defined{Name: *p.Defined}
	case p.Undefined != nil:
		return ast.Undefined{Name: *p.Undefined}
	}
	left := convertAtom(p.Cmp.Left)
	if p.Cmp.Rest == nil {
		return left
	}
	return ast.Compare{
		Op:    p.Cmp.Rest.Op,
		Left:  left,
		Right: convertAtom(p.Cmp.Rest.Right),
		Pos:   p.Cmp.Rest.Pos,
	}
}

func convertAtom(a *atomGrammar) ast.Atom {
	atom := ast.Atom{Pos: a.Pos}
	switch {
	case a.Ident != nil:
		atom.Kind, atom.Text = ast.AtomIdent, *a.Ident
	case a.Int != nil:
		atom.Kind, atom.Text = ast.AtomInt, *a.Int
	case a.Float != nil:
		atom.Kind, atom.Text = ast.AtomFloat, *a.Float
	case a.Str != nil:
		atom.Kind, atom.Text = ast.AtomString, unquote(*a.Str)
	}
	return atom
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	s = s[1 : len(s)-1]
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
