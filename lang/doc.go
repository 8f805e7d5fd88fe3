/*
Package lang implements the front end of the Pengo language: token types,
the lexer, the grammar and the collapser, which turns generic parse trees into
ASTs.

Pengo is a small imperative language with C-like syntax:

    func fib(n) {
        if (n < 2) { return n; }
        return fib(n - 1) + fib(n - 2);
    }
    var i = 0;
    while (i < 10) {
        println(fib(i));
        i = i + 1;
    }

The grammar is compiled to LALR tables at first use. Parse runs the complete
pipeline: tokenize, parse and collapse.

Grammar

    File          ::= Statements | ε
    Statements    ::= Statements Statement | Statement
    Statement     ::= Expression ';' | VarDeclare ';' | Assign ';'
                    | Return ';' | Break ';' | Continue ';'
                    | Block | If | ElseIf | Else | While | FuncDeclare
    Block         ::= '{' Statements '}' | '{' '}'
    VarDeclare    ::= 'var' Identifier '=' Expression
    Assign        ::= Identifier '=' Expression
    If            ::= 'if' '(' Expression ')' Block
    ElseIf        ::= 'elseif' '(' Expression ')' Block
    Else          ::= 'else' Block
    While         ::= 'while' '(' Expression ')' Block
    FuncDeclare   ::= 'func' Identifier '(' Parameters ')' Block
    Parameters    ::= Identifier ParamRecurse | ε
    ParamRecurse  ::= ',' Identifier ParamRecurse | ε
    Return        ::= 'return' Expression | 'return'
    Break         ::= 'break'
    Continue      ::= 'continue'
    Expression    ::= Logical
    Logical       ::= Logical LogicalOp Conditional | Conditional
    Conditional   ::= Conditional ConditionalOp Term | Term
    Term          ::= Term TermOp Factor | Factor
    Factor        ::= Factor FactorOp Unary | Unary
    Unary         ::= UnaryOp Unary | Call
    Call          ::= Primary '(' Arguments ')' | Primary
    Arguments     ::= Expression ArgRecurse | ε
    ArgRecurse    ::= ',' Expression ArgRecurse | ε
    Primary       ::= Identifier | Grouping | Literal
    Grouping      ::= '(' Expression ')'
    Literal       ::= NUMBER | FLOAT | STRING | 'true' | 'false' | 'null'
    Identifier    ::= IDENT

Operator symbols are LogicalOp (&& ||), ConditionalOp (== != < > <= >=),
TermOp (+ -), FactorOp (* /) and UnaryOp (- !).

ElseIf and Else are statements of their own and are attached to the If
statement immediately preceding them by the collapser.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pengo.lang'.
func tracer() tracing.Trace {
	return tracing.Select("pengo.lang")
}
