package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Sprint returns a list notation of an AST node, e.g.
//
//    var x = 2 + 3 * 4;   =>   (var x (+ 2 (* 3 4)))
//
func Sprint(n Node) string {
	var b strings.Builder
	format(&b, n)
	return b.String()
}

// SprintAll returns the list notations of a sequence of statements, separated
// by newlines.
func SprintAll(stmts []Statement) string {
	lines := make([]string, len(stmts))
	for i, s := range stmts {
		lines[i] = Sprint(s)
	}
	return strings.Join(lines, "\n")
}

func format(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *ExprStmt:
		list(b, "expr", n.X)
	case *VarDecl:
		list(b, "var "+n.Name.Lexeme(), n.Value)
	case *Assign:
		list(b, "set "+n.Name.Lexeme(), n.Value)
	case *Block:
		nodes := make([]Node, len(n.Stmts))
		for i, s := range n.Stmts {
			nodes[i] = s
		}
		list(b, "block", nodes...)
	case *If:
		head := "if"
		if n.ElseIf {
			head = "elseif"
		}
		if n.Else != nil {
			list(b, head, n.Cond, n.Then, n.Else)
		} else {
			list(b, head, n.Cond, n.Then)
		}
	case *While:
		list(b, "while", n.Cond, n.Body)
	case *Return:
		if n.Value != nil {
			list(b, "return", n.Value)
		} else {
			list(b, "return")
		}
	case *FuncDecl:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Lexeme()
		}
		list(b, fmt.Sprintf("func %s (%s)", n.Name.Lexeme(), strings.Join(params, " ")), n.Body)
	case *Break:
		b.WriteString("(break)")
	case *Continue:
		b.WriteString("(continue)")
	case *Literal:
		b.WriteString(FormatLiteral(n.Value))
	case *Var:
		b.WriteString(n.Name.Lexeme())
	case *Unary:
		list(b, n.Op.String(), n.X)
	case *Binary:
		list(b, n.Op.String(), n.Left, n.Right)
	case *Logical:
		list(b, n.Op.String(), n.Left, n.Right)
	case *Conditional:
		list(b, n.Op.String(), n.Left, n.Right)
	case *Call:
		args := make([]Node, 0, len(n.Args)+1)
		args = append(args, n.Callee)
		for _, a := range n.Args {
			args = append(args, a)
		}
		list(b, "call", args...)
	case nil:
		b.WriteString("<nil>")
	default:
		b.WriteString(fmt.Sprintf("<%T>", n))
	}
}

func list(b *strings.Builder, head string, nodes ...Node) {
	b.WriteByte('(')
	b.WriteString(head)
	for _, n := range nodes {
		b.WriteByte(' ')
		format(b, n)
	}
	b.WriteByte(')')
}

// FormatLiteral formats a literal value the way it would appear in source.
func FormatLiteral(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprintf("%v", v)
}
