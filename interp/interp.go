package interp

import (
	"bufio"
	"io"
	"os"
	"time"

	"golang.org/x/exp/rand"

	"github.com/npillmayer/pengo"
	"github.com/npillmayer/pengo/ast"
	"github.com/npillmayer/pengo/runtime"
)

// Interpreter executes Pengo programs. Global bindings persist between
// calls to Run, which makes an interpreter usable for REPLs.
type Interpreter struct {
	rt       *runtime.Runtime
	out      io.Writer
	in       *bufio.Scanner
	rand     *rand.Rand
	builtins []*Builtin
}

// Option configures an interpreter.
type Option func(ip *Interpreter)

// WithOutput sets the writer for print and println. Default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(ip *Interpreter) {
		ip.out = w
	}
}

// WithInput sets the reader for input. Default is os.Stdin.
func WithInput(r io.Reader) Option {
	return func(ip *Interpreter) {
		ip.in = wordScanner(r)
	}
}

// WithSeed seeds the pseudo-random number generator for random. Default is a
// seed derived from the current time.
func WithSeed(seed uint64) Option {
	return func(ip *Interpreter) {
		ip.rand = rand.New(rand.NewSource(seed))
	}
}

// WithBuiltins adds built-in functions. Built-ins replace predefined ones of
// the same name.
func WithBuiltins(builtins ...*Builtin) Option {
	return func(ip *Interpreter) {
		ip.builtins = append(ip.builtins, builtins...)
	}
}

// WithMaxDepth limits the nesting depth of blocks and function calls.
func WithMaxDepth(n int) Option {
	return func(ip *Interpreter) {
		ip.rt.MaxDepth = n
	}
}

// New creates an interpreter with a fresh global scope, containing the
// built-in functions.
func New(opts ...Option) *Interpreter {
	ip := &Interpreter{
		rt:       runtime.NewRuntimeEnvironment(),
		out:      os.Stdout,
		in:       wordScanner(os.Stdin),
		builtins: Builtins(),
	}
	for _, opt := range opts {
		opt(ip)
	}
	if ip.rand == nil {
		ip.rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	for _, b := range ip.builtins {
		ip.rt.Globals().DefineFunc(b.Name(), b)
	}
	return ip
}

func wordScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return sc
}

// Globals returns the global frame.
func (ip *Interpreter) Globals() *runtime.Frame {
	return ip.rt.Globals()
}

// Run executes a sequence of statements in the global scope. The first
// runtime error stops the execution and is returned as a *RuntimeError.
func (ip *Interpreter) Run(stmts []ast.Statement) error {
	err := ip.execStatements(stmts)
	if err != nil {
		tracer().Errorf("%v", err)
		ip.rt.Unwind()
	}
	return err
}

// Eval evaluates a single expression in the current scope.
func (ip *Interpreter) Eval(x ast.Expression) (runtime.Value, error) {
	v, err := ip.eval(x)
	if err != nil {
		ip.rt.Unwind()
	}
	return v, err
}

// --- Statements ------------------------------------------------------------

func (ip *Interpreter) execStatements(stmts []ast.Statement) error {
	for _, s := range stmts {
		if err := ip.exec(s); err != nil {
			return err
		}
		if ip.unwinding() {
			break
		}
	}
	return nil
}

// unwinding is true if a control-flow signal is pending for the current
// function call or loop iteration.
func (ip *Interpreter) unwinding() bool {
	for fr := ip.rt.Current(); fr != nil; fr = fr.Parent {
		if fr.Signal != runtime.NoSignal || fr.Stop {
			return true
		}
		if fr.Kind == runtime.FunctionFrame || fr.IsRoot() {
			break
		}
	}
	return false
}

func (ip *Interpreter) exec(s ast.Statement) error {
	cur := ip.rt.Current()
	switch s := s.(type) {
	case *ast.ExprStmt:
		_, err := ip.eval(s.X)
		return err
	case *ast.VarDecl:
		v, err := ip.eval(s.Value)
		if err != nil {
			return err
		}
		cur.Define(s.Name.Lexeme(), v)
	case *ast.Assign:
		v, err := ip.eval(s.Value)
		if err != nil {
			return err
		}
		if !cur.Assign(s.Name.Lexeme(), v) {
			cur.Define(s.Name.Lexeme(), v)
		}
	case *ast.Block:
		return ip.execBlock(s, "block", runtime.GenericFrame)
	case *ast.If:
		return ip.execIf(s)
	case *ast.While:
		return ip.execWhile(s)
	case *ast.FuncDecl:
		cur.DefineFunc(s.Name.Lexeme(), &Function{decl: s, env: cur})
	case *ast.Return:
		fr := cur.Enclosing(runtime.FunctionFrame)
		if fr == nil {
			return runtimeError(s.Pos(), "return outside of function")
		}
		v := runtime.Null
		if s.Value != nil {
			var err error
			if v, err = ip.eval(s.Value); err != nil {
				return err
			}
		}
		fr.Stop, fr.Signal, fr.Return = true, runtime.ReturnSignal, v
	case *ast.Break:
		return ip.signalLoop(s.Pos(), runtime.BreakSignal)
	case *ast.Continue:
		return ip.signalLoop(s.Pos(), runtime.ContinueSignal)
	default:
		return runtimeError(s.Pos(), "cannot execute %T", s)
	}
	return nil
}

func (ip *Interpreter) execBlock(b *ast.Block, name string, kind runtime.FrameKind) error {
	if _, err := ip.rt.PushNewFrame(name, kind); err != nil {
		return runtimeError(b.Pos(), "%v", err)
	}
	err := ip.execStatements(b.Stmts)
	ip.rt.PopFrame()
	return err
}

func (ip *Interpreter) execIf(s *ast.If) error {
	for {
		c, err := ip.condition(s.Cond, "if")
		if err != nil {
			return err
		}
		if c {
			return ip.execBlock(s.Then, "if", runtime.GenericFrame)
		}
		switch e := s.Else.(type) {
		case nil:
			return nil
		case *ast.If:
			s = e
		case *ast.Block:
			return ip.execBlock(e, "else", runtime.GenericFrame)
		default:
			return runtimeError(s.Pos(), "malformed else branch %T", e)
		}
	}
}

func (ip *Interpreter) execWhile(s *ast.While) error {
	for {
		c, err := ip.condition(s.Cond, "while")
		if err != nil || !c {
			return err
		}
		frame, err := ip.rt.PushNewFrame("while", runtime.LoopFrame)
		if err != nil {
			return runtimeError(s.Pos(), "%v", err)
		}
		err = ip.execStatements(s.Body.Stmts)
		ip.rt.PopFrame()
		if err != nil || frame.Signal == runtime.BreakSignal || ip.unwinding() {
			return err
		}
	}
}

func (ip *Interpreter) condition(x ast.Expression, kw string) (bool, error) {
	c, err := ip.eval(x)
	if err != nil {
		return false, err
	}
	if c.Kind() != runtime.BoolKind {
		return false, runtimeError(x.Pos(), "condition of %s must be bool, is %s", kw, c.Kind())
	}
	return c.AsBool(), nil
}

func (ip *Interpreter) signalLoop(pos pengo.Position, sig runtime.Signal) error {
	fr := ip.rt.Current().Enclosing(runtime.LoopFrame, runtime.FunctionFrame)
	if fr == nil || fr.Kind != runtime.LoopFrame {
		return runtimeError(pos, "%s outside of loop", sig)
	}
	fr.Signal = sig
	return nil
}
