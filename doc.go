/*
Package pengo is a toolchain for a small imperative language.

It consists of an LALR parser-table generator and a tree-walking interpreter.
Package structure is as follows:

■ lr: Package lr implements grammars and the LR table generator, together with
a table-driven parser (lr/lalr) and scanners (lr/scanner).

■ ast: Package ast defines the typed abstract syntax tree of the Pengo language.

■ lang: Package lang contains the Pengo surface grammar, its tokenizer and the
collapser turning parse trees into ASTs.

■ runtime: Package runtime provides values and environment frames for the
interpreter.

■ interp: Package interp executes Pengo programs.

■ cmd/pengo: Command pengo runs programs from files or interactively.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pengo
