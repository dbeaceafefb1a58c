package bspp

import (
	"errors"
	"testing"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/sansecio/bspp/ast"
	"github.com/sansecio/bspp/diag"
	"github.com/sansecio/bspp/env"
	"github.com/sansecio/bspp/parser"
	"github.com/sansecio/bspp/scanner"
)

func parseCond(t *testing.T, src string) ast.Expr {
	t.Helper()
	sc, err := scanner.NewString("test", src)
	if err != nil {
		t.Fatal(err)
	}
	var toks []lexer.Token
	for {
		tok, err := sc.Next()
		if err != nil {
			t.Fatal(err)
		}
		if tok.EOF() {
			break
		}
		toks = append(toks, tok.Token)
	}
	expr, err := parser.ParseCondition(toks, lexer.Position{})
	if err != nil {
		t.Fatalf("ParseCondition(%q): %v", src, err)
	}
	return expr
}

func TestEvalOrdering(t *testing.T) {
	tests := []struct {
		src  string
		vars map[string]string
		want bool
	}{
		// Strings order lexicographically.
		{`X < Y`, map[string]string{"X": "abc", "Y": "abd"}, true},
		{`X > Y`, map[string]string{"X": "abc", "Y": "abd"}, false},
		{`X = "hello"`, map[string]string{"X": "hello"}, true},
		// Bools order false < true.
		{`A > B`, map[string]string{"A": "true", "B": "false"}, true},
		{`A < B`, map[string]string{"A": "true", "B": "false"}, false},
		{`A = B`, map[string]string{"A": "true", "B": "true"}, true},
		// Numerics order numerically.
		{`N <= 64`, map[string]string{"N": "64"}, true},
		{`N < 64`, map[string]string{"N": "64"}, false},
		{`F < 2.5`, map[string]string{"F": "-3.14"}, true},
		{`F >= -3.14`, map[string]string{"F": "-3.14"}, true},
		{`9 < 10`, nil, true}, // not lexicographic
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := Eval(parseCond(t, tt.src), env.New(tt.vars, nil))
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvalTypeMismatch(t *testing.T) {
	tests := []struct {
		src  string
		vars map[string]string
	}{
		{`N = F`, map[string]string{"N": "1", "F": "1.0"}}, // int vs float, no promotion
		{`X = 1`, map[string]string{"X": "hello"}},
		{`B = "true"`, map[string]string{"B": "true"}}, // bool vs string literal
		{`1 = "a"`, nil},
		{`WORD_SIZE`, map[string]string{"WORD_SIZE": "64"}}, // bare atom must be bool
		{`1.0 =~ "1.0.0"`, nil},                             // =~ needs strings on both sides
		{`V =~ N`, map[string]string{"V": "1.2.3", "N": "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Eval(parseCond(t, tt.src), env.New(tt.vars, nil))
			var terr *diag.TypeError
			if !errors.As(err, &terr) {
				t.Errorf("Eval(%q): expected TypeError, got %T: %v", tt.src, err, err)
			}
		})
	}
}

func TestEvalSemver(t *testing.T) {
	vars := map[string]string{"V": "1.2.3", "R": "^1.0.0"}
	got, err := Eval(parseCond(t, `V =~ R`), env.New(vars, nil))
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !got {
		t.Error("1.2.3 should satisfy ^1.0.0")
	}

	got, err = Eval(parseCond(t, `V =~ "~1.3.0"`), env.New(vars, nil))
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got {
		t.Error("1.2.3 should not satisfy ~1.3.0")
	}
}

func TestEvalDefinedNeverErrors(t *testing.T) {
	e := env.New(map[string]string{"A": "1"}, nil)

	got, err := Eval(parseCond(t, `defined NOPE`), e)
	if err != nil || got {
		t.Errorf("defined NOPE = %v, %v", got, err)
	}
	got, err = Eval(parseCond(t, `undefined NOPE`), e)
	if err != nil || !got {
		t.Errorf("undefined NOPE = %v, %v", got, err)
	}
	got, err = Eval(parseCond(t, `defined A`), e)
	if err != nil || !got {
		t.Errorf("defined A = %v, %v", got, err)
	}
}

func TestEvalNameErrorPosition(t *testing.T) {
	_, err := Eval(parseCond(t, `A = MISSING`), env.New(map[string]string{"A": "x"}, nil))
	var nerr *diag.NameError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected NameError, got %T: %v", err, err)
	}
	if nerr.Pos.Column != 5 {
		t.Errorf("NameError at column %d, want 5", nerr.Pos.Column)
	}
}
