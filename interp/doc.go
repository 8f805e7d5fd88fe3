/*
Package interp implements a tree-walking interpreter for Pengo ASTs.

The interpreter executes statements for their side effects. Values are
dynamically typed: integers, floats, strings, booleans, functions and null.
Arithmetic operators promote integers to floats if one operand is a float,
'+' concatenates if one of its operands is a string. Comparisons require
operands of the same type, relational operators require integers. Logical
operators require booleans and do not evaluate their right operand if the
left one determines the result.

Scopes

Every block opens a scope. Variables declared with 'var' are bound in the
current scope, shadowing outer bindings of the same name. Assignments to an
existing variable update the binding where it has been found, assignments to
unknown names declare a variable in the current scope. Functions are closures
over the scope they have been declared in.

Control flow is signalled through the runtime's memory frames: 'return' marks
the frame of the enclosing function call, 'break' and 'continue' mark the
frame of the current loop iteration. Blocks stop executing statements as soon
as a signal is pending.

Built-in functions

    print(x)        write x to the output
    println(x)      write x and a newline to the output
    input()         read a whitespace delimited word from the input
    int(x)          convert a string or float to an integer
    float(x)        convert a string or integer to a float
    random(lo, hi)  pseudo-random integer from [lo, hi]

Errors

Every error at runtime stops the interpreter and is reported as a
*RuntimeError, carrying the source position of the offending construct.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package interp

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pengo.interp'.
func tracer() tracing.Trace {
	return tracing.Select("pengo.interp")
}
