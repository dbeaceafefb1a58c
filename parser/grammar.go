package parser

// Grammar structs for the participle condition parser.
// Precedence is encoded in the grammar layers: || binds loosest, && binds
// tighter, comparison tightest. Both boolean operators are left-associative
// via the repetition loops.

import "github.com/alecthomas/participle/v2/lexer"

type conditionGrammar struct {
	Expr *orExpr `parser:"@@"`
}

type orExpr struct {
	Left  *andExpr   `parser:"@@"`
	Right []*andExpr `parser:"('||' @@)*"`
}

type andExpr struct {
	Left  *predicate   `parser:"@@"`
	Right []*predicate `parser:"('&&' @@)*"`
}

type predicate struct {
	Defined   *string     `parser:"'defined' @Ident"`
	Undefined *string     `parser:"| 'undefined' @Ident"`
	Cmp       *comparison `parser:"| @@"`
}

// comparison is an atom optionally followed by an operator and a second
// atom. A lone atom is a valid condition (it must resolve to a bool).
type comparison struct {
	Left *atomGrammar    `parser:"@@"`
	Rest *comparisonRest `parser:"@@?"`
}

type comparisonRest struct {
	Pos   lexer.Position
	Op    string       `parser:"@CmpOp"`
	Right *atomGrammar `parser:"@@"`
}

type atomGrammar struct {
	Pos   lexer.Position
	Ident *string `parser:"@Ident"`
	Int   *string `parser:"| @Int"`
	Float *string `parser:"| @Float"`
	Str   *string `parser:"| @String"`
}
