/*
Package lr implements grammars and the construction of LR parser tables.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token value of type int. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a", 1).End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b", 2).End()         // B  ->  b
    b.LHS("B").Epsilon()               // B  ->
    b.LHS("D").T("d", 3).End()         // D  ->  d
    b.LHS("D").Epsilon()               // D  ->
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: [S] ::= [A a]
   1: [A] ::= [B D]
   2: [B] ::= [b]
   3: [B] ::= []
   4: [D] ::= [d]
   5: [D] ::= []

Every grammar contains an end-of-input terminal #eof with token value
text/scanner.EOF.

Parser Construction

A table generator augments the grammar with a start rule S' → S and
constructs the LR automaton from it. States with identical item cores are
merged, and lookaheads are computed by propagating them along the edges of
the automaton until a fixpoint is reached. The result corresponds to LALR(1)
tables.

    lrgen := lr.NewTableGenerator(g)
    tables, err := lrgen.CreateTables()
    for _, c := range tables.Conflicts() { ... }

Conflicting table entries are resolved by keeping the entry written last
(reduce entries are written after shift entries). All conflicts are recorded
and may be inspected by clients.

The automaton is not thrown away, but is made available to the client. This
is intended for debugging purposes. It can be exported to Graphviz's
Dot-format, the tables may be exported as HTML.
___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pengo.lr'.
func tracer() tracing.Trace {
	return tracing.Select("pengo.lr")
}
