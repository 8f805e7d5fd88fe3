package lang

import (
	"sync"

	"github.com/npillmayer/pengo/lr"
)

// Names of the grammar's non-terminals which carry structure for the AST.
// Every one of them has to be handled by the collapser.
var nodeKinds = []string{
	"File", "Statements", "Statement", "Block",
	"VarDeclare", "Assign", "If", "ElseIf", "Else", "While", "FuncDeclare",
	"Parameters", "ParamRecurse", "Return", "Break", "Continue",
	"Expression", "Logical", "Conditional", "Term", "Factor", "Unary",
	"Call", "Arguments", "ArgRecurse", "Primary", "Grouping", "Literal", "Identifier",
	"LogicalOp", "ConditionalOp", "TermOp", "FactorOp", "UnaryOp",
}

// tok is a shortcut for use with lr.RuleBuilder.T.
func tok(tt int) (string, int) {
	return TokenName(tokType(tt)), tt
}

// Grammar creates the Pengo grammar.
func Grammar() (*lr.Grammar, error) {
	b := lr.NewGrammarBuilder("Pengo")
	b.LHS("File").N("Statements").End()
	b.LHS("File").Epsilon()
	b.LHS("Statements").N("Statements").N("Statement").End()
	b.LHS("Statements").N("Statement").End()
	for _, s := range []string{"Expression", "VarDeclare", "Assign", "Return", "Break", "Continue"} {
		b.LHS("Statement").N(s).T(tok(SEMICOLON)).End()
	}
	for _, s := range []string{"Block", "If", "ElseIf", "Else", "While", "FuncDeclare"} {
		b.LHS("Statement").N(s).End()
	}
	b.LHS("Block").T(tok(LBRACE)).N("Statements").T(tok(RBRACE)).End()
	b.LHS("Block").T(tok(LBRACE)).T(tok(RBRACE)).End()
	b.LHS("VarDeclare").T(tok(VAR)).N("Identifier").T(tok(ASSIGN)).N("Expression").End()
	b.LHS("Assign").N("Identifier").T(tok(ASSIGN)).N("Expression").End()
	b.LHS("If").T(tok(IF)).T(tok(LPAREN)).N("Expression").T(tok(RPAREN)).N("Block").End()
	b.LHS("ElseIf").T(tok(ELSEIF)).T(tok(LPAREN)).N("Expression").T(tok(RPAREN)).N("Block").End()
	b.LHS("Else").T(tok(ELSE)).N("Block").End()
	b.LHS("While").T(tok(WHILE)).T(tok(LPAREN)).N("Expression").T(tok(RPAREN)).N("Block").End()
	b.LHS("FuncDeclare").T(tok(FUNC)).N("Identifier").
		T(tok(LPAREN)).N("Parameters").T(tok(RPAREN)).N("Block").End()
	b.LHS("Parameters").N("Identifier").N("ParamRecurse").End()
	b.LHS("Parameters").Epsilon()
	b.LHS("ParamRecurse").T(tok(COMMA)).N("Identifier").N("ParamRecurse").End()
	b.LHS("ParamRecurse").Epsilon()
	b.LHS("Return").T(tok(RETURN)).N("Expression").End()
	b.LHS("Return").T(tok(RETURN)).End()
	b.LHS("Break").T(tok(BREAK)).End()
	b.LHS("Continue").T(tok(CONTINUE)).End()
	// expressions, by increasing precedence
	b.LHS("Expression").N("Logical").End()
	binary(b, "Logical", "Conditional", "LogicalOp", AND, OR)
	binary(b, "Conditional", "Term", "ConditionalOp", EQ, NE, LT, GT, LE, GE)
	binary(b, "Term", "Factor", "TermOp", PLUS, MINUS)
	binary(b, "Factor", "Unary", "FactorOp", STAR, SLASH)
	b.LHS("Unary").N("UnaryOp").N("Unary").End()
	b.LHS("Unary").N("Call").End()
	operators(b, "UnaryOp", MINUS, BANG)
	b.LHS("Call").N("Primary").T(tok(LPAREN)).N("Arguments").T(tok(RPAREN)).End()
	b.LHS("Call").N("Primary").End()
	b.LHS("Arguments").N("Expression").N("ArgRecurse").End()
	b.LHS("Arguments").Epsilon()
	b.LHS("ArgRecurse").T(tok(COMMA)).N("Expression").N("ArgRecurse").End()
	b.LHS("ArgRecurse").Epsilon()
	b.LHS("Primary").N("Identifier").End()
	b.LHS("Primary").N("Grouping").End()
	b.LHS("Primary").N("Literal").End()
	b.LHS("Grouping").T(tok(LPAREN)).N("Expression").T(tok(RPAREN)).End()
	operators(b, "Literal", NUMBER, FLOAT, STRING, TRUE, FALSE, NULL)
	b.LHS("Identifier").T(tok(IDENT)).End()
	b.Track(nodeKinds...)
	return b.Grammar()
}

// binary adds a left-recursive binary operator level
//
//     lhs ::= lhs op operand | operand
//
func binary(b *lr.GrammarBuilder, lhs, operand, op string, tts ...int) {
	b.LHS(lhs).N(lhs).N(op).N(operand).End()
	b.LHS(lhs).N(operand).End()
	operators(b, op, tts...)
}

// operators adds rules lhs ::= t for all token types tts.
func operators(b *lr.GrammarBuilder, lhs string, tts ...int) {
	for _, tt := range tts {
		b.LHS(lhs).T(tok(tt)).End()
	}
}

var tablesOnce struct {
	sync.Once
	gen    *lr.TableGenerator
	tables *lr.Tables
	err    error
}

// Tables returns the parser tables for Pengo. They are built at first use.
func Tables() (*lr.Tables, error) {
	_, tables, err := generator()
	return tables, err
}

// TableGenerator returns the table generator for Pengo, giving access to the
// LR automaton. Tables are built at first use.
func TableGenerator() (*lr.TableGenerator, error) {
	gen, _, err := generator()
	return gen, err
}

func generator() (*lr.TableGenerator, *lr.Tables, error) {
	tablesOnce.Do(func() {
		g, err := Grammar()
		if err != nil {
			tablesOnce.err = err
			return
		}
		tablesOnce.gen = lr.NewTableGenerator(g)
		tablesOnce.tables, tablesOnce.err = tablesOnce.gen.CreateTables()
		if tablesOnce.err == nil {
			tracer().Infof("Pengo tables: %d states, %d conflicts",
				tablesOnce.tables.StateCount(), len(tablesOnce.tables.Conflicts()))
		}
	})
	return tablesOnce.gen, tablesOnce.tables, tablesOnce.err
}
