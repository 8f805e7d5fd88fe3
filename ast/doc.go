/*
Package ast defines the abstract syntax tree of Pengo programs.

Statements and expressions are closed sets of node types: the interfaces
Statement and Expression can only be implemented by the types of this package.
Clients dispatch on them with type switches.

AST nodes are created by the tree collapser of package lang and are treated
as immutable afterwards.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ast
