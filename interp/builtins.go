package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/pengo/runtime"
)

// BuiltinFunc is the implementation of a built-in function. It is called
// with the number of arguments the built-in has been declared with.
type BuiltinFunc func(ip *Interpreter, args []runtime.Value) (runtime.Value, error)

// Builtin is a function implemented natively.
type Builtin struct {
	name  string
	arity int
	fn    BuiltinFunc
}

var _ runtime.Callable = (*Builtin)(nil)

// NewBuiltin creates a built-in function.
func NewBuiltin(name string, arity int, fn BuiltinFunc) *Builtin {
	return &Builtin{name: name, arity: arity, fn: fn}
}

// Name is part of interface runtime.Callable.
func (b *Builtin) Name() string { return b.name }

// Arity is part of interface runtime.Callable.
func (b *Builtin) Arity() int { return b.arity }

// Builtins returns the predefined built-in functions.
func Builtins() []*Builtin {
	return []*Builtin{
		NewBuiltin("print", 1, builtinPrint),
		NewBuiltin("println", 1, builtinPrintln),
		NewBuiltin("input", 0, builtinInput),
		NewBuiltin("int", 1, builtinInt),
		NewBuiltin("float", 1, builtinFloat),
		NewBuiltin("random", 2, builtinRandom),
	}
}

func builtinPrint(ip *Interpreter, args []runtime.Value) (runtime.Value, error) {
	_, err := fmt.Fprint(ip.out, args[0].String())
	return runtime.Null, err
}

func builtinPrintln(ip *Interpreter, args []runtime.Value) (runtime.Value, error) {
	_, err := fmt.Fprintln(ip.out, args[0].String())
	return runtime.Null, err
}

// builtinInput reads the next word of input. At the end of input it returns
// null.
func builtinInput(ip *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if !ip.in.Scan() {
		return runtime.Null, ip.in.Err()
	}
	return runtime.Str(ip.in.Text()), nil
}

func builtinInt(ip *Interpreter, args []runtime.Value) (runtime.Value, error) {
	switch v := args[0]; v.Kind() {
	case runtime.IntKind:
		return v, nil
	case runtime.FloatKind:
		return runtime.Int(int64(v.AsFloat())), nil
	case runtime.StringKind:
		i, err := strconv.ParseInt(strings.TrimSpace(v.AsString()), 10, 64)
		if err != nil {
			return runtime.Null, fmt.Errorf("cannot convert %q to int", v.AsString())
		}
		return runtime.Int(i), nil
	default:
		return runtime.Null, fmt.Errorf("cannot convert %s to int", v.Kind())
	}
}

func builtinFloat(ip *Interpreter, args []runtime.Value) (runtime.Value, error) {
	switch v := args[0]; v.Kind() {
	case runtime.IntKind, runtime.FloatKind:
		return runtime.Float(v.AsFloat()), nil
	case runtime.StringKind:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.AsString()), 64)
		if err != nil {
			return runtime.Null, fmt.Errorf("cannot convert %q to float", v.AsString())
		}
		return runtime.Float(f), nil
	default:
		return runtime.Null, fmt.Errorf("cannot convert %s to float", v.Kind())
	}
}

// builtinRandom returns a pseudo-random integer from the closed interval
// [lo, hi].
func builtinRandom(ip *Interpreter, args []runtime.Value) (runtime.Value, error) {
	lo, hi := args[0], args[1]
	if lo.Kind() != runtime.IntKind || hi.Kind() != runtime.IntKind {
		return runtime.Null, fmt.Errorf("bounds must be int, have %s and %s", lo.Kind(), hi.Kind())
	}
	n := hi.AsInt() - lo.AsInt() + 1
	if n <= 0 {
		return runtime.Null, fmt.Errorf("empty or too large range [%d, %d]", lo.AsInt(), hi.AsInt())
	}
	return runtime.Int(lo.AsInt() + ip.rand.Int63n(n)), nil
}
