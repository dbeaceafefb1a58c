// Package ast defines the Abstract Syntax Tree types for conditional
// directives.
package ast

import "github.com/alecthomas/participle/v2/lexer"

// Expr represents a condition expression node.
type Expr interface {
	exprNode()
}

// And represents "left && right" with short-circuit evaluation.
type And struct {
	Left  Expr
	Right Expr
}

func (And) exprNode() {}

// Or represents "left || right" with short-circuit evaluation.
type Or struct {
	Left  Expr
	Right Expr
}

func (Or) exprNode() {}

// Compare represents "lhs op rhs" where op is =, <, >, <=, >= or =~.
// Both operands must resolve to the same type; =~ additionally requires
// both to be strings.
type Compare struct {
	Op    string
	Left  Atom
	Right Atom
	Pos   lexer.Position // operator position, for diagnostics
}

func (Compare) exprNode() {}

// Defined is true when the named variable is bound in the environment.
// It never fails, regardless of whether the binding exists.
type Defined struct {
	Name string
}

func (Defined) exprNode() {}

// Undefined is the negation of Defined.
type Undefined struct {
	Name string
}

func (Undefined) exprNode() {}

// AtomKind discriminates the leaf value forms.
type AtomKind int

const (
	AtomIdent AtomKind = iota
	AtomInt
	AtomFloat
	AtomString
)

// Atom is a leaf value: a literal, or a variable reference resolved against
// the environment at evaluation time rather than at parse time. A bare atom
// is itself a valid condition and holds when it resolves to the boolean
// true.
type Atom struct {
	Kind AtomKind
	Text string // literal text (unquoted for strings) or variable name
	Pos  lexer.Position
}

func (Atom) exprNode() {}
