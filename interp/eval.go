package interp

import (
	"github.com/npillmayer/pengo"
	"github.com/npillmayer/pengo/ast"
	"github.com/npillmayer/pengo/runtime"
)

func (ip *Interpreter) eval(x ast.Expression) (runtime.Value, error) {
	switch x := x.(type) {
	case *ast.Literal:
		v, err := runtime.FromLiteral(x.Value)
		if err != nil {
			return runtime.Null, runtimeError(x.Pos(), "%v", err)
		}
		return v, nil
	case *ast.Var:
		name := x.Name.Lexeme()
		v, fr := ip.rt.Current().Lookup(name)
		if fr == nil {
			return runtime.Null, undefined(x.Pos(), name, ip.rt.Current().Visible())
		}
		return v, nil
	case *ast.Unary:
		v, err := ip.eval(x.X)
		if err != nil {
			return runtime.Null, err
		}
		return unary(x.Op, x.OpPos, v)
	case *ast.Binary:
		l, r, err := ip.operands(x.Left, x.Right)
		if err != nil {
			return runtime.Null, err
		}
		return arithmetic(x.Op, x.OpPos, l, r)
	case *ast.Conditional:
		l, r, err := ip.operands(x.Left, x.Right)
		if err != nil {
			return runtime.Null, err
		}
		return compare(x.Op, x.OpPos, l, r)
	case *ast.Logical:
		return ip.logical(x)
	case *ast.Call:
		return ip.call(x)
	}
	return runtime.Null, runtimeError(x.Pos(), "cannot evaluate %T", x)
}

func (ip *Interpreter) operands(left, right ast.Expression) (runtime.Value, runtime.Value, error) {
	l, err := ip.eval(left)
	if err != nil {
		return l, runtime.Null, err
	}
	r, err := ip.eval(right)
	return l, r, err
}

func unary(op ast.Operator, pos pengo.Position, v runtime.Value) (runtime.Value, error) {
	switch {
	case op == ast.Neg && v.Kind() == runtime.IntKind:
		return runtime.Int(-v.AsInt()), nil
	case op == ast.Neg && v.Kind() == runtime.FloatKind:
		return runtime.Float(-v.AsFloat()), nil
	case op == ast.Not && v.Kind() == runtime.BoolKind:
		return runtime.Bool(!v.AsBool()), nil
	}
	return runtime.Null, runtimeError(pos, "invalid operand for unary %s: %s", op, v.Kind())
}

func arithmetic(op ast.Operator, pos pengo.Position, l, r runtime.Value) (runtime.Value, error) {
	if op == ast.Add && (l.Kind() == runtime.StringKind || r.Kind() == runtime.StringKind) {
		return runtime.Str(l.String() + r.String()), nil
	}
	if !l.IsNumeric() || !r.IsNumeric() {
		return runtime.Null, runtimeError(pos, "invalid operands for %s: %s and %s", op, l.Kind(), r.Kind())
	}
	if l.Kind() == runtime.FloatKind || r.Kind() == runtime.FloatKind {
		a, b := l.AsFloat(), r.AsFloat()
		switch op {
		case ast.Add:
			return runtime.Float(a + b), nil
		case ast.Sub:
			return runtime.Float(a - b), nil
		case ast.Mul:
			return runtime.Float(a * b), nil
		case ast.Div:
			return runtime.Float(a / b), nil
		}
	} else {
		a, b := l.AsInt(), r.AsInt()
		switch op {
		case ast.Add:
			return runtime.Int(a + b), nil
		case ast.Sub:
			return runtime.Int(a - b), nil
		case ast.Mul:
			return runtime.Int(a * b), nil
		case ast.Div:
			if b == 0 {
				return runtime.Null, runtimeError(pos, "integer division by zero")
			}
			return runtime.Int(a / b), nil
		}
	}
	return runtime.Null, runtimeError(pos, "unknown arithmetic operator %s", op)
}

func compare(op ast.Operator, pos pengo.Position, l, r runtime.Value) (runtime.Value, error) {
	if l.Kind() != r.Kind() {
		return runtime.Null, runtimeError(pos, "cannot compare %s with %s", l.Kind(), r.Kind())
	}
	switch op {
	case ast.Eq:
		return runtime.Bool(l.Equals(r)), nil
	case ast.Ne:
		return runtime.Bool(!l.Equals(r)), nil
	}
	if l.Kind() != runtime.IntKind {
		return runtime.Null, runtimeError(pos, "operator %s requires int operands, have %s", op, l.Kind())
	}
	a, b := l.AsInt(), r.AsInt()
	switch op {
	case ast.Lt:
		return runtime.Bool(a < b), nil
	case ast.Gt:
		return runtime.Bool(a > b), nil
	case ast.Le:
		return runtime.Bool(a <= b), nil
	case ast.Ge:
		return runtime.Bool(a >= b), nil
	}
	return runtime.Null, runtimeError(pos, "unknown comparison operator %s", op)
}

// logical evaluates && and ||. Both operands have to be bool, the right one
// is evaluated only if necessary.
func (ip *Interpreter) logical(x *ast.Logical) (runtime.Value, error) {
	l, err := ip.eval(x.Left)
	if err != nil {
		return runtime.Null, err
	}
	if l.Kind() != runtime.BoolKind {
		return runtime.Null, runtimeError(x.OpPos, "invalid left operand for %s: %s", x.Op, l.Kind())
	}
	if (x.Op == ast.And) != l.AsBool() { // false && _ , true || _
		return l, nil
	}
	r, err := ip.eval(x.Right)
	if err != nil {
		return runtime.Null, err
	}
	if r.Kind() != runtime.BoolKind {
		return runtime.Null, runtimeError(x.OpPos, "invalid right operand for %s: %s", x.Op, r.Kind())
	}
	return r, nil
}

// --- Calls -----------------------------------------------------------------

// Function is a user-defined function, closed over the frame it has been
// declared in.
type Function struct {
	decl *ast.FuncDecl
	env  *runtime.Frame
}

var _ runtime.Callable = (*Function)(nil)

// Name is part of interface runtime.Callable.
func (f *Function) Name() string { return f.decl.Name.Lexeme() }

// Arity is part of interface runtime.Callable.
func (f *Function) Arity() int { return len(f.decl.Params) }

func (ip *Interpreter) call(x *ast.Call) (runtime.Value, error) {
	callee, err := ip.eval(x.Callee)
	if err != nil {
		return runtime.Null, err
	}
	if callee.Kind() != runtime.FuncKind {
		return runtime.Null, runtimeError(x.Pos(), "cannot call %s value", callee.Kind())
	}
	fn := callee.AsFunc()
	args := make([]runtime.Value, len(x.Args))
	for i, a := range x.Args {
		if args[i], err = ip.eval(a); err != nil {
			return runtime.Null, err
		}
	}
	if len(args) != fn.Arity() {
		return runtime.Null, runtimeError(x.Pos(), "%s expects %d argument(s), called with %d",
			fn.Name(), fn.Arity(), len(args))
	}
	tracer().Debugf("call %s%v", fn.Name(), args)
	switch fn := fn.(type) {
	case *Builtin:
		v, err := fn.fn(ip, args)
		if err != nil {
			return runtime.Null, runtimeError(x.Pos(), "%s: %v", fn.name, err)
		}
		return v, nil
	case *Function:
		return ip.callFunction(fn, args, x.Pos())
	}
	return runtime.Null, runtimeError(x.Pos(), "cannot call %T", fn)
}

func (ip *Interpreter) callFunction(f *Function, args []runtime.Value, pos pengo.Position) (runtime.Value, error) {
	frame := runtime.NewFrame(f.Name(), runtime.FunctionFrame, f.env)
	for i, p := range f.decl.Params {
		frame.Define(p.Lexeme(), args[i])
	}
	if _, err := ip.rt.PushFrame(frame); err != nil {
		return runtime.Null, runtimeError(pos, "calling %s: %v", f.Name(), err)
	}
	err := ip.execStatements(f.decl.Body.Stmts)
	ip.rt.PopFrame()
	if err != nil {
		return runtime.Null, err
	}
	return frame.Return, nil
}
