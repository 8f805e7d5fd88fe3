package lang

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/pengo"
	"github.com/npillmayer/pengo/ast"
	"github.com/npillmayer/pengo/lr"
	"github.com/npillmayer/pengo/lr/lalr"
)

// StructureError is returned for parse trees which cannot be mapped to an
// AST, e.g. an else branch without a preceding if statement.
type StructureError struct {
	Pos pengo.Position
	Msg string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s %s", e.Pos, e.Msg)
}

func structureError(n *lalr.Node, format string, args ...interface{}) *StructureError {
	return &StructureError{Pos: n.Pos(), Msg: fmt.Sprintf(format, args...)}
}

type nodeClass int8

const (
	glueNode nodeClass = iota + 1 // lists of statements, no AST representation
	stmtNode
	exprNode
	opNode   // operator leaf
	listNode // parameter and argument lists
)

// nodeClasses maps the non-terminals of the grammar to the way the collapser
// handles them.
var nodeClasses = map[string]nodeClass{
	"File":          glueNode,
	"Statements":    glueNode,
	"Statement":     glueNode,
	"Block":         stmtNode,
	"VarDeclare":    stmtNode,
	"Assign":        stmtNode,
	"If":            stmtNode,
	"ElseIf":        stmtNode,
	"Else":          stmtNode,
	"While":         stmtNode,
	"FuncDeclare":   stmtNode,
	"Return":        stmtNode,
	"Break":         stmtNode,
	"Continue":      stmtNode,
	"Expression":    exprNode,
	"Logical":       exprNode,
	"Conditional":   exprNode,
	"Term":          exprNode,
	"Factor":        exprNode,
	"Unary":         exprNode,
	"Call":          exprNode,
	"Primary":       exprNode,
	"Grouping":      exprNode,
	"Literal":       exprNode,
	"Identifier":    exprNode,
	"LogicalOp":     opNode,
	"ConditionalOp": opNode,
	"TermOp":        opNode,
	"FactorOp":      opNode,
	"UnaryOp":       opNode,
	"Parameters":    listNode,
	"ParamRecurse":  listNode,
	"Arguments":     listNode,
	"ArgRecurse":    listNode,
}

// CheckCoverage verifies that the collapser is able to handle every tracked
// symbol of a grammar.
func CheckCoverage(g *lr.Grammar) error {
	var missing []string
	for _, A := range g.TrackedSymbols() {
		if _, ok := nodeClasses[A.Name]; !ok {
			missing = append(missing, A.Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("no AST mapping for node kinds %s", strings.Join(missing, ", "))
	}
	return nil
}

// Collapse converts a parse tree for the Pengo grammar into a sequence of
// statements.
func Collapse(root *lalr.Node) ([]ast.Statement, error) {
	if root == nil {
		return nil, nil
	}
	return statements(root)
}

// statements walks down the glue nodes below n and collects the statements
// found there, in input order. ElseIf and Else statements are attached to the
// if statement immediately preceding them.
func statements(n *lalr.Node) ([]ast.Statement, error) {
	var found []*lalr.Node
	stack := []*lalr.Node{n}
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if nodeClasses[next.Symbol.Name] == glueNode {
			stack = append(stack, next.Children...)
			continue
		}
		found = append(found, next)
	}
	for i, j := 0, len(found)-1; i < j; i, j = i+1, j-1 {
		found[i], found[j] = found[j], found[i]
	}
	stmts := make([]ast.Statement, 0, len(found))
	for _, node := range found {
		switch node.Symbol.Name {
		case "ElseIf":
			branch, err := ifStatement(node, true)
			if err != nil {
				return nil, err
			}
			if err = attach(stmts, branch, node, "elseif"); err != nil {
				return nil, err
			}
		case "Else":
			branch, err := block(node.Children[0])
			if err != nil {
				return nil, err
			}
			if err = attach(stmts, branch, node, "else"); err != nil {
				return nil, err
			}
		default:
			s, err := statement(node)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, s)
		}
	}
	return stmts, nil
}

func attach(stmts []ast.Statement, branch ast.Statement, n *lalr.Node, kw string) error {
	var head *ast.If
	if len(stmts) > 0 {
		head, _ = stmts[len(stmts)-1].(*ast.If)
	}
	if head == nil {
		return structureError(n, "%s without preceding if", kw)
	}
	tail := head.Tail()
	if tail.Else != nil {
		return structureError(n, "%s after else", kw)
	}
	tail.Else = branch
	return nil
}

func statement(n *lalr.Node) (ast.Statement, error) {
	switch n.Symbol.Name {
	case "Expression":
		x, err := expression(n)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: x}, nil
	case "VarDeclare", "Assign":
		x, err := expression(n.Children[1])
		if err != nil {
			return nil, err
		}
		name := n.Children[0].Token
		if n.Symbol.Name == "Assign" {
			return &ast.Assign{Name: name, Value: x}, nil
		}
		return &ast.VarDecl{Name: name, Value: x}, nil
	case "Block":
		return block(n)
	case "If":
		return ifStatement(n, false)
	case "While":
		cond, err := expression(n.Children[0])
		if err != nil {
			return nil, err
		}
		body, err := block(n.Children[1])
		if err != nil {
			return nil, err
		}
		return &ast.While{Cond: cond, Body: body}, nil
	case "FuncDeclare":
		var params []pengo.Token
		for p := n.Children[1]; len(p.Children) == 2; p = p.Children[1] {
			params = append(params, p.Children[0].Token)
		}
		body, err := block(n.Children[2])
		if err != nil {
			return nil, err
		}
		return &ast.FuncDecl{Name: n.Children[0].Token, Params: params, Body: body}, nil
	case "Return":
		if n.IsLeaf() {
			return &ast.Return{At: n.Token.Pos()}, nil
		}
		x, err := expression(n.Children[0])
		if err != nil {
			return nil, err
		}
		return &ast.Return{At: x.Pos(), Value: x}, nil
	case "Break":
		return &ast.Break{At: n.Token.Pos()}, nil
	case "Continue":
		return &ast.Continue{At: n.Token.Pos()}, nil
	}
	return nil, structureError(n, "unexpected %s node in statement list", n.Symbol.Name)
}

func block(n *lalr.Node) (*ast.Block, error) {
	if n.IsLeaf() { // empty block
		return &ast.Block{Start: n.Token.Pos()}, nil
	}
	stmts, err := statements(n.Children[0])
	if err != nil {
		return nil, err
	}
	return &ast.Block{Start: n.Pos(), Stmts: stmts}, nil
}

func ifStatement(n *lalr.Node, elseif bool) (*ast.If, error) {
	cond, err := expression(n.Children[0])
	if err != nil {
		return nil, err
	}
	then, err := block(n.Children[1])
	if err != nil {
		return nil, err
	}
	return &ast.If{ElseIf: elseif, Cond: cond, Then: then}, nil
}

// --- Expressions -----------------------------------------------------------

func expression(n *lalr.Node) (ast.Expression, error) {
	switch n.Symbol.Name {
	case "Expression", "Primary", "Grouping":
		return expression(n.Children[0])
	case "Logical", "Conditional", "Term", "Factor":
		if len(n.Children) == 1 { // precedence level without operator
			return expression(n.Children[0])
		}
		return binaryExpression(n)
	case "Unary":
		if len(n.Children) == 1 {
			return expression(n.Children[0])
		}
		op, err := operator(n.Children[0], true)
		if err != nil {
			return nil, err
		}
		x, err := expression(n.Children[1])
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, OpPos: n.Children[0].Token.Pos(), X: x}, nil
	case "Call":
		callee, err := expression(n.Children[0])
		if err != nil || len(n.Children) == 1 {
			return callee, err
		}
		var args []ast.Expression
		for a := n.Children[1]; len(a.Children) == 2; a = a.Children[1] {
			x, err := expression(a.Children[0])
			if err != nil {
				return nil, err
			}
			args = append(args, x)
		}
		return &ast.Call{Callee: callee, Args: args}, nil
	case "Literal":
		return literal(n)
	case "Identifier":
		return &ast.Var{Name: n.Token}, nil
	}
	return nil, structureError(n, "unexpected %s node in expression", n.Symbol.Name)
}

// binaryExpression handles nodes with children (left, operator, right).
func binaryExpression(n *lalr.Node) (ast.Expression, error) {
	if len(n.Children) != 3 {
		return nil, structureError(n, "%s node with %d children", n.Symbol.Name, len(n.Children))
	}
	left, err := expression(n.Children[0])
	if err != nil {
		return nil, err
	}
	op, err := operator(n.Children[1], false)
	if err != nil {
		return nil, err
	}
	right, err := expression(n.Children[2])
	if err != nil {
		return nil, err
	}
	pos := n.Children[1].Token.Pos()
	switch n.Symbol.Name {
	case "Logical":
		return &ast.Logical{Op: op, OpPos: pos, Left: left, Right: right}, nil
	case "Conditional":
		return &ast.Conditional{Op: op, OpPos: pos, Left: left, Right: right}, nil
	}
	return &ast.Binary{Op: op, OpPos: pos, Left: left, Right: right}, nil
}

var binaryOps = map[int]ast.Operator{
	PLUS: ast.Add, MINUS: ast.Sub, STAR: ast.Mul, SLASH: ast.Div,
	AND: ast.And, OR: ast.Or,
	EQ: ast.Eq, NE: ast.Ne, LT: ast.Lt, GT: ast.Gt, LE: ast.Le, GE: ast.Ge,
}

func operator(n *lalr.Node, unary bool) (ast.Operator, error) {
	if !n.IsLeaf() || nodeClasses[n.Symbol.Name] != opNode {
		return ast.NoOp, structureError(n, "expected operator, have %s", n.Symbol.Name)
	}
	tt := int(n.Token.TokType())
	if unary {
		switch tt {
		case MINUS:
			return ast.Neg, nil
		case BANG:
			return ast.Not, nil
		}
	} else if op, ok := binaryOps[tt]; ok {
		return op, nil
	}
	return ast.NoOp, structureError(n, "unknown operator %q", n.Token.Lexeme())
}

func literal(n *lalr.Node) (ast.Expression, error) {
	t := n.Token
	lit := &ast.Literal{Token: t}
	switch int(t.TokType()) {
	case NUMBER:
		i, err := strconv.ParseInt(t.Lexeme(), 10, 64)
		if err != nil {
			return nil, structureError(n, "integer literal %s out of range", t.Lexeme())
		}
		lit.Value = i
	case FLOAT:
		f, err := strconv.ParseFloat(t.Lexeme(), 64)
		if err != nil {
			return nil, structureError(n, "malformed float literal %s", t.Lexeme())
		}
		lit.Value = f
	case STRING:
		lit.Value = t.Lexeme()
	case TRUE:
		lit.Value = true
	case FALSE:
		lit.Value = false
	case NULL:
		lit.Value = nil
	default:
		return nil, structureError(n, "unexpected literal %q", t.Lexeme())
	}
	return lit, nil
}
