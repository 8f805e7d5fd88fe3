/*
Command pengo runs programs of the Pengo toy language.

Programs are run from a file

	pengo run prog.pengo [-d]

or entered interactively

	pengo repl

The generated LALR(1) tables may be inspected with

	pengo tables [--dot automaton.dot] [--html tables.html]

Exit codes are 0 for success, 1 for usage and I/O errors, 2 for lexical,
syntax and structure errors and 3 for runtime errors.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"os"

	"github.com/npillmayer/pengo/interp"
	"github.com/npillmayer/pengo/lang"
	"github.com/npillmayer/pengo/lr/lalr"
	"github.com/npillmayer/pengo/lr/scanner/lexmach"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
)

// tracer traces with key 'pengo.cli'.
func tracer() tracing.Trace {
	return tracing.Select("pengo.cli")
}

func main() {
	if err := Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	switch errors.Cause(err).(type) {
	case *lexmach.LexError, *lalr.SyntaxError, *lang.StructureError:
		return 2
	case *interp.RuntimeError:
		return 3
	}
	return 1
}
