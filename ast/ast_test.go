package ast

import (
	"testing"

	"github.com/npillmayer/pengo"
	"github.com/npillmayer/pengo/lr/scanner"
)

func tok(lexeme string, line, col int) pengo.Token {
	return scanner.MakeDefaultToken(0, lexeme, pengo.At(line, col))
}

func TestSprint(t *testing.T) {
	// var x = 2 + 3 * 4;
	decl := &VarDecl{
		Name: tok("x", 1, 5),
		Value: &Binary{Op: Add,
			Left: &Literal{Token: tok("2", 1, 9), Value: int64(2)},
			Right: &Binary{Op: Mul,
				Left:  &Literal{Token: tok("3", 1, 13), Value: int64(3)},
				Right: &Literal{Token: tok("4", 1, 17), Value: int64(4)},
			},
		},
	}
	if s := Sprint(decl); s != "(var x (+ 2 (* 3 4)))" {
		t.Errorf("unexpected list notation %s", s)
	}
	if decl.Value.Pos() != pengo.At(1, 9) {
		t.Errorf("expected binary expression to start at (1:9), is %s", decl.Value.Pos())
	}
}

func TestIfChain(t *testing.T) {
	cond := &Literal{Token: tok("true", 1, 5), Value: true}
	last := &If{ElseIf: true, Cond: cond, Then: &Block{}}
	first := &If{Cond: cond, Then: &Block{},
		Else: &If{ElseIf: true, Cond: cond, Then: &Block{}, Else: last},
	}
	if first.Tail() != last {
		t.Errorf("tail of if chain not found")
	}
	if first.Pos() != pengo.At(1, 5) {
		t.Errorf("expected if statement at position of its condition, is %s", first.Pos())
	}
	expected := "(if true (block) (elseif true (block) (elseif true (block))))"
	if s := Sprint(first); s != expected {
		t.Errorf("unexpected list notation %s", s)
	}
}

func TestFormatLiteral(t *testing.T) {
	for _, c := range []struct {
		v interface{}
		s string
	}{
		{nil, "null"}, {int64(-7), "-7"}, {2.5, "2.5"}, {"a\"b", `"a\"b"`}, {false, "false"},
	} {
		if s := FormatLiteral(c.v); s != c.s {
			t.Errorf("expected %s, have %s", c.s, s)
		}
	}
}
