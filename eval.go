package bspp

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/sansecio/bspp/ast"
	"github.com/sansecio/bspp/diag"
	"github.com/sansecio/bspp/env"
	"github.com/sansecio/bspp/semver"
)

// Eval reduces a condition expression to a boolean against the
// environment. && and || short-circuit, so a guard such as
// "defined X && X = ..." never reports an unbound X.
func Eval(expr ast.Expr, e *env.Env) (bool, error) {
	switch n := expr.(type) {
	case ast.And:
		left, err := Eval(n.Left, e)
		if err != nil || !left {
			return false, err
		}
		return Eval(n.Right, e)

	case ast.Or:
		left, err := Eval(n.Left, e)
		if err != nil || left {
			return left, err
		}
		return Eval(n.Right, e)

	case ast.Defined:
		return e.Defined(n.Name), nil

	case ast.Undefined:
		return !e.Defined(n.Name), nil

	case ast.Compare:
		return evalCompare(n, e)

	case ast.Atom:
		v, err := resolve(n, e)
		if err != nil {
			return false, err
		}
		if v.Type != env.Bool {
			return false, &diag.TypeError{Pos: n.Pos, Msg: fmt.Sprintf("condition must be a bool, got %s", v.Type)}
		}
		return v.Bool, nil

	default:
		return false, fmt.Errorf("unknown expression node %T", expr)
	}
}

func evalCompare(c ast.Compare, e *env.Env) (bool, error) {
	lhs, err := resolve(c.Left, e)
	if err != nil {
		return false, err
	}
	rhs, err := resolve(c.Right, e)
	if err != nil {
		return false, err
	}

	if c.Op == "=~" {
		if lhs.Type != env.String || rhs.Type != env.String {
			return false, &diag.TypeError{Pos: c.Pos, Msg: fmt.Sprintf("=~ needs string operands, got %s and %s", lhs.Type, rhs.Type)}
		}
		ok, err := semver.Satisfies(lhs.Raw, rhs.Raw)
		if err != nil {
			var ferr *diag.FormatError
			if errors.As(err, &ferr) {
				ferr.Pos = c.Pos
			}
			return false, err
		}
		return ok, nil
	}

	if lhs.Type != rhs.Type {
		return false, &diag.TypeError{Pos: c.Pos, Msg: fmt.Sprintf("cannot compare %s with %s using %s", lhs.Type, rhs.Type, c.Op)}
	}

	var ord int
	switch lhs.Type {
	case env.Bool:
		ord = compareBool(lhs.Bool, rhs.Bool)
	case env.Int:
		ord = cmp.Compare(lhs.Int, rhs.Int)
	case env.Float:
		ord = cmp.Compare(lhs.Float, rhs.Float)
	default:
		ord = strings.Compare(lhs.Raw, rhs.Raw)
	}

	switch c.Op {
	case "=":
		return ord == 0, nil
	case "<":
		return ord < 0, nil
	case ">":
		return ord > 0, nil
	case "<=":
		return ord <= 0, nil
	case ">=":
		return ord >= 0, nil
	default:
		return false, &diag.SyntaxError{Pos: c.Pos, Msg: fmt.Sprintf("unknown operator %s", c.Op)}
	}
}

// resolve produces the typed value of an atom. Identifiers are looked up
// in the environment only here, at evaluation time.
func resolve(a ast.Atom, e *env.Env) (env.Value, error) {
	switch a.Kind {
	case ast.AtomIdent:
		v, ok := e.Lookup(a.Text)
		if !ok {
			return env.Value{}, &diag.NameError{Pos: a.Pos, Name: a.Text}
		}
		return v, nil
	case ast.AtomString:
		// A string literal stays a string even when it looks numeric.
		return env.Value{Raw: a.Text, Type: env.String}, nil
	default:
		return env.Classify(a.Text), nil
	}
}

// false orders before true.
func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	default:
		return 1
	}
}
