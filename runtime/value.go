package runtime

import (
	"fmt"
	"strconv"
)

// Kind is the dynamic type of a value.
type Kind int8

// Kinds of values.
const (
	NullKind Kind = iota
	IntKind
	FloatKind
	StringKind
	BoolKind
	FuncKind
)

var kindnames = [...]string{"null", "int", "float", "string", "bool", "function"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindnames) {
		return "?"
	}
	return kindnames[k]
}

// Callable is implemented by function values: built-ins and user-defined
// functions. Function values refer to a Callable, which is shared between
// all frames binding it.
type Callable interface {
	Name() string
	Arity() int
}

// Value is a tagged union of Pengo values. The zero value is null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	fn   Callable
}

// Null is the null value.
var Null = Value{}

// Int creates an integer value.
func Int(i int64) Value { return Value{kind: IntKind, i: i} }

// Float creates a float value.
func Float(f float64) Value { return Value{kind: FloatKind, f: f} }

// Str creates a string value.
func Str(s string) Value { return Value{kind: StringKind, s: s} }

// Bool creates a boolean value.
func Bool(b bool) Value {
	v := Value{kind: BoolKind}
	if b {
		v.i = 1
	}
	return v
}

// Func creates a function value.
func Func(fn Callable) Value { return Value{kind: FuncKind, fn: fn} }

// FromLiteral converts a literal constant (int64, float64, string, bool or
// nil) to a value.
func FromLiteral(c interface{}) (Value, error) {
	switch c := c.(type) {
	case nil:
		return Null, nil
	case int64:
		return Int(c), nil
	case float64:
		return Float(c), nil
	case string:
		return Str(c), nil
	case bool:
		return Bool(c), nil
	}
	return Null, fmt.Errorf("no value for constant of type %T", c)
}

// Kind returns the dynamic type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull is true for the null value.
func (v Value) IsNull() bool { return v.kind == NullKind }

// AsInt returns the integer of an int value.
func (v Value) AsInt() int64 { return v.i }

// AsFloat returns the float of a float value, or the converted integer of an
// int value.
func (v Value) AsFloat() float64 {
	if v.kind == IntKind {
		return float64(v.i)
	}
	return v.f
}

// AsString returns the string of a string value.
func (v Value) AsString() string { return v.s }

// AsBool returns the boolean of a bool value.
func (v Value) AsBool() bool { return v.kind == BoolKind && v.i != 0 }

// AsFunc returns the callable of a function value.
func (v Value) AsFunc() Callable { return v.fn }

// IsNumeric is true for int and float values.
func (v Value) IsNumeric() bool {
	return v.kind == IntKind || v.kind == FloatKind
}

// Equals compares two values of the same type. Functions are equal if they
// refer to the same callable.
func (v Value) Equals(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case FloatKind:
		return v.f == w.f
	case StringKind:
		return v.s == w.s
	case FuncKind:
		return v.fn == w.fn
	}
	return v.i == w.i
}

// String formats a value for output.
func (v Value) String() string {
	switch v.kind {
	case IntKind:
		return strconv.FormatInt(v.i, 10)
	case FloatKind:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case StringKind:
		return v.s
	case BoolKind:
		return strconv.FormatBool(v.AsBool())
	case FuncKind:
		return fmt.Sprintf("<func %s>", v.fn.Name())
	}
	return "null"
}
