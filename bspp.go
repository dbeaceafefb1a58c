// Package bspp implements a single-pass conditional-compilation
// preprocessor over a token stream.
//
// Source text selects among branches of #if/#elif/#else/#end blocks based
// on compile-time facts (compiler version, platform, custom flags). There
// is no macro expansion and no substitution: tokens of the first branch
// whose condition holds pass through untouched, every other branch is
// dropped, and everything outside directive blocks is left alone.
package bspp

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/sansecio/bspp/ast"
	"github.com/sansecio/bspp/diag"
	"github.com/sansecio/bspp/env"
	"github.com/sansecio/bspp/parser"
	"github.com/sansecio/bspp/scanner"
)

// Filter reads tokens from sc, resolves conditional directives against e,
// and hands every surviving token to emit in source order. Processing is
// a single pass; the first error stops it and the output must be
// considered unusable.
func Filter(sc *scanner.Scanner, e *env.Env, emit func(scanner.Token) error) error {
	f := &filter{sc: sc, env: e, emit: emit}
	return f.run()
}

type filter struct {
	sc   *scanner.Scanner
	env  *env.Env
	emit func(scanner.Token) error
}

// run is the default state: plain tokens pass through until a directive
// marker opens a block. A branch marker with no open block is an error,
// which is also what makes a stray beginning-of-line #elif fatal.
func (f *filter) run() error {
	for {
		t, err := f.sc.Next()
		if err != nil {
			return err
		}
		if t.EOF() {
			return nil
		}
		if t.Marker {
			if t.Value != "#if" {
				return &diag.SyntaxError{Pos: t.Pos, Msg: t.Value + " without a matching #if"}
			}
			if err := f.block(t, true); err != nil {
				return err
			}
			continue
		}
		if err := f.emit(t); err != nil {
			return err
		}
	}
}

// block processes one #if .. #end unit. live is false inside a discarded
// outer branch; conditions are then still parsed for syntax but never
// evaluated, and nothing is emitted. The first branch whose condition
// holds wins; once a branch has matched, the remaining headers are
// consumed without evaluation.
func (f *filter) block(ifTok scanner.Token, live bool) error {
	cond, err := f.condition(ifTok)
	if err != nil {
		return err
	}
	taking := false
	if live {
		taking, err = Eval(cond, f.env)
		if err != nil {
			return err
		}
	}

	matched := false
	for {
		term, err := f.body(taking)
		if err != nil {
			return err
		}
		if taking {
			matched = true
		}
		switch term.Value {
		case "#end":
			return nil

		case "#elif":
			cond, err := f.condition(term)
			if err != nil {
				return err
			}
			taking = false
			if live && !matched {
				taking, err = Eval(cond, f.env)
				if err != nil {
					return err
				}
			}

		case "#else":
			term, err = f.body(live && !matched)
			if err != nil {
				return err
			}
			if term.Value != "#end" {
				return &diag.SyntaxError{Pos: term.Pos, Msg: term.Value + " after #else"}
			}
			return nil
		}
	}
}

// body forwards or discards branch tokens until the next marker at this
// block's depth. Nested blocks recurse so their markers never leak out,
// whether the surrounding branch is kept or dropped.
func (f *filter) body(emitting bool) (scanner.Token, error) {
	for {
		t, err := f.sc.Next()
		if err != nil {
			return scanner.Token{}, err
		}
		if t.EOF() {
			return scanner.Token{}, &diag.SyntaxError{Pos: t.Pos, Msg: "missing #end"}
		}
		if t.Marker {
			if t.Value == "#if" {
				if err := f.block(t, emitting); err != nil {
					return scanner.Token{}, err
				}
				continue
			}
			return t, nil
		}
		if emitting {
			if err := f.emit(t); err != nil {
				return scanner.Token{}, err
			}
		}
	}
}

// condition collects the header tokens of an #if or #elif up to the
// closing "then" keyword, which must appear on the marker's line, and
// parses them into an expression tree.
func (f *filter) condition(marker scanner.Token) (ast.Expr, error) {
	var toks []lexer.Token
	for {
		t, err := f.sc.Next()
		if err != nil {
			return nil, err
		}
		if t.EOF() || t.Pos.Line != marker.Pos.Line {
			return nil, &diag.SyntaxError{Pos: t.Pos, Msg: "expected then before end of line"}
		}
		if t.Value == "then" {
			break
		}
		toks = append(toks, t.Token)
	}
	return parser.ParseCondition(toks, marker.Pos)
}

// Process runs the preprocessor over src and reconstructs the surviving
// source text. Whitespace between surviving tokens is copied verbatim;
// dropped regions collapse to a single newline.
func Process(filename, src string, e *env.Env) (string, error) {
	sc, err := scanner.NewString(filename, src)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	prevEnd := -1
	err = Filter(sc, e, func(t scanner.Token) error {
		if prevEnd >= 0 {
			if gap := src[prevEnd:t.Pos.Offset]; strings.TrimSpace(gap) == "" {
				b.WriteString(gap)
			} else {
				b.WriteByte('\n')
			}
		}
		b.WriteString(t.Value)
		prevEnd = t.Pos.Offset + len(t.Value)
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// Tokens collects the filtered token stream for src.
func Tokens(filename, src string, e *env.Env) ([]scanner.Token, error) {
	sc, err := scanner.NewString(filename, src)
	if err != nil {
		return nil, err
	}
	var out []scanner.Token
	err = Filter(sc, e, func(t scanner.Token) error {
		out = append(out, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
