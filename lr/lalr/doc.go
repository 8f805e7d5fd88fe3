/*
Package lalr provides a table driven shift-reduce parser. Clients have to use
the tools of package lr to prepare the necessary parse tables. The parser
utilizes these tables to create a right derivation for a given input,
provided through a scanner interface, and returns it as a generic parse tree.

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a", scanner.Ident).End()  // Var  --> Sign Id
	b.LHS("Sign").T("+", '+').End()                     // Sign --> +
	b.LHS("Sign").T("-", '-').End()                     // Sign --> -
	b.LHS("Sign").Epsilon()                             // Sign -->
	g, err := b.Grammar()

This grammar is subjected to table generation.

	tables, err := lr.NewTableGenerator(g).CreateTables()

Finally parse some input:

	p := lalr.NewParser(tables)
	tree, err := p.Parse(scanner.GoTokenizer("example", strings.NewReader("+a")))

Parse trees

Reducing a rule which consists of terminals only produces a leaf node, carrying
the token consumed last. All other rules produce an interior node with one
child for every non-terminal of the rule's right hand side. Terminals of such a
rule do not show up in the tree. Epsilon rules produce interior nodes without
children.

The parser stops at the first input token without an action, returning a
*SyntaxError. There is no error recovery.
___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lalr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pengo.lr'.
func tracer() tracing.Trace {
	return tracing.Select("pengo.lr")
}
