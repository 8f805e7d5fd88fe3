package ast

import (
	"github.com/npillmayer/pengo"
)

// Node is the common interface of statements and expressions.
type Node interface {
	Pos() pengo.Position
}

// Statement is a Pengo statement.
type Statement interface {
	Node
	stmtNode()
}

// Expression is a Pengo expression.
type Expression interface {
	Node
	exprNode()
}

// --- Operators -------------------------------------------------------------

// Operator is the kind of unary and binary operators.
type Operator int8

// Operators of Pengo.
const (
	NoOp Operator = iota
	Add           // +
	Sub           // -
	Mul           // *
	Div           // /
	And           // &&
	Or            // ||
	Eq            // ==
	Ne            // !=
	Lt            // <
	Gt            // >
	Le            // <=
	Ge            // >=
	Neg           // unary -
	Not           // !
)

var opnames = [...]string{"?", "+", "-", "*", "/", "&&", "||", "==", "!=", "<", ">", "<=", ">=", "-", "!"}

func (op Operator) String() string {
	if op < 0 || int(op) >= len(opnames) {
		return "?"
	}
	return opnames[op]
}

// --- Statements ------------------------------------------------------------

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	X Expression
}

// VarDecl declares a variable in the current scope.
type VarDecl struct {
	Name  pengo.Token
	Value Expression
}

// Assign assigns a value to a variable, declaring it if it does not exist.
type Assign struct {
	Name  pengo.Token
	Value Expression
}

// Block is a sequence of statements with its own scope.
type Block struct {
	Start pengo.Position
	Stmts []Statement
}

// If is a conditional statement. Else is nil, a *Block or an *If for an
// elseif branch.
type If struct {
	ElseIf bool
	Cond   Expression
	Then   *Block
	Else   Statement
}

// While is a loop.
type While struct {
	Cond Expression
	Body *Block
}

// Return returns from a function. Value is nil for a bare return.
type Return struct {
	At    pengo.Position
	Value Expression
}

// FuncDecl declares a function in the current scope.
type FuncDecl struct {
	Name   pengo.Token
	Params []pengo.Token
	Body   *Block
}

// Break leaves the innermost loop.
type Break struct {
	At pengo.Position
}

// Continue starts the next iteration of the innermost loop.
type Continue struct {
	At pengo.Position
}

func (s *ExprStmt) Pos() pengo.Position { return s.X.Pos() }
func (s *VarDecl) Pos() pengo.Position  { return s.Name.Pos() }
func (s *Assign) Pos() pengo.Position   { return s.Name.Pos() }
func (s *Block) Pos() pengo.Position    { return s.Start }
func (s *If) Pos() pengo.Position       { return s.Cond.Pos() }
func (s *While) Pos() pengo.Position    { return s.Cond.Pos() }
func (s *Return) Pos() pengo.Position   { return s.At }
func (s *FuncDecl) Pos() pengo.Position { return s.Name.Pos() }
func (s *Break) Pos() pengo.Position    { return s.At }
func (s *Continue) Pos() pengo.Position { return s.At }

func (*ExprStmt) stmtNode() {}
func (*VarDecl) stmtNode()  {}
func (*Assign) stmtNode()   {}
func (*Block) stmtNode()    {}
func (*If) stmtNode()       {}
func (*While) stmtNode()    {}
func (*Return) stmtNode()   {}
func (*FuncDecl) stmtNode() {}
func (*Break) stmtNode()    {}
func (*Continue) stmtNode() {}

// Tail returns the last If of an if/elseif chain.
func (s *If) Tail() *If {
	tail := s
	for {
		next, ok := tail.Else.(*If)
		if !ok {
			return tail
		}
		tail = next
	}
}

// --- Expressions -----------------------------------------------------------

// Literal is a constant. Value is an int64, float64, string, bool or nil.
type Literal struct {
	Token pengo.Token
	Value interface{}
}

// Var references a variable or function by name.
type Var struct {
	Name pengo.Token
}

// Unary is a prefix operation.
type Unary struct {
	Op    Operator
	OpPos pengo.Position
	X     Expression
}

// Binary is an arithmetic operation.
type Binary struct {
	Op          Operator
	OpPos       pengo.Position
	Left, Right Expression
}

// Logical is a boolean operation. The right operand is evaluated only if the
// left one does not determine the result.
type Logical struct {
	Op          Operator
	OpPos       pengo.Position
	Left, Right Expression
}

// Conditional is a comparison.
type Conditional struct {
	Op          Operator
	OpPos       pengo.Position
	Left, Right Expression
}

// Call is a function call.
type Call struct {
	Callee Expression
	Args   []Expression
}

func (x *Literal) Pos() pengo.Position     { return x.Token.Pos() }
func (x *Var) Pos() pengo.Position         { return x.Name.Pos() }
func (x *Unary) Pos() pengo.Position       { return x.OpPos }
func (x *Binary) Pos() pengo.Position      { return x.Left.Pos() }
func (x *Logical) Pos() pengo.Position     { return x.Left.Pos() }
func (x *Conditional) Pos() pengo.Position { return x.Left.Pos() }
func (x *Call) Pos() pengo.Position        { return x.Callee.Pos() }

func (*Literal) exprNode()     {}
func (*Var) exprNode()         {}
func (*Unary) exprNode()       {}
func (*Binary) exprNode()      {}
func (*Logical) exprNode()     {}
func (*Conditional) exprNode() {}
func (*Call) exprNode()        {}
