package runtime

import (
	"fmt"
	"sort"
)

// This module implements memory frames. Frames hold the storage for active
// scopes and the control-flow signals of an interpreter.

// FrameKind is the kind of scope a frame has been opened for.
type FrameKind int8

// Kinds of frames.
const (
	GlobalFrame   FrameKind = iota
	FunctionFrame           // body of a function call
	LoopFrame               // single iteration of a loop body
	GenericFrame            // any other block
)

func (k FrameKind) String() string {
	switch k {
	case GlobalFrame:
		return "global"
	case FunctionFrame:
		return "function"
	case LoopFrame:
		return "loop"
	}
	return "block"
}

// Signal is a pending control-flow transfer.
type Signal int8

// Control-flow signals.
const (
	NoSignal Signal = iota
	ReturnSignal
	BreakSignal
	ContinueSignal
)

func (s Signal) String() string {
	switch s {
	case ReturnSignal:
		return "return"
	case BreakSignal:
		return "break"
	case ContinueSignal:
		return "continue"
	}
	return "none"
}

// Frame is a memory frame, representing a piece of memory for a scope.
// Variables and functions live in separate tables.
//
// Stop and Return are set on function frames by a return statement. Signal
// is set on the frame which consumes the control transfer: the function
// frame for return, the loop frame for break and continue.
type Frame struct {
	Name   string
	Kind   FrameKind
	Parent *Frame // lexical parent
	Stop   bool
	Signal Signal
	Return Value
	vars   *SymbolTable
	funcs  *SymbolTable
}

// NewFrame creates a new memory frame.
func NewFrame(name string, kind FrameKind, parent *Frame) *Frame {
	return &Frame{
		Name:   name,
		Kind:   kind,
		Parent: parent,
		vars:   NewSymbolTable(),
		funcs:  NewSymbolTable(),
	}
}

func (f *Frame) String() string {
	return fmt.Sprintf("<mem %s:%s>", f.Name, f.Kind)
}

// IsRoot is a predicate: Is this a root frame?
func (f *Frame) IsRoot() bool {
	return f.Parent == nil
}

// Define binds a variable in this frame, shadowing bindings of the same name
// in outer frames.
func (f *Frame) Define(name string, v Value) {
	tag, _ := f.vars.ResolveOrDefineTag(name)
	tag.Value = v
	tracer().P("mem", f.Name).Debugf("%s := %s", name, v)
}

// DefineFunc binds a function in this frame.
func (f *Frame) DefineFunc(name string, fn Callable) {
	tag, _ := f.funcs.ResolveOrDefineTag(name)
	tag.Value = Func(fn)
}

// Lookup finds a name, walking up the lexical chain. In every frame
// variables take precedence over functions. Returns the value and the frame
// it has been found in, or nil.
func (f *Frame) Lookup(name string) (Value, *Frame) {
	for fr := f; fr != nil; fr = fr.Parent {
		if tag := fr.vars.ResolveTag(name); tag != nil {
			return tag.Value, fr
		}
		if tag := fr.funcs.ResolveTag(name); tag != nil {
			return tag.Value, fr
		}
	}
	return Null, nil
}

// Assign stores a value into an existing variable, walking up the lexical
// chain. It returns false if no frame binds the name as a variable.
func (f *Frame) Assign(name string, v Value) bool {
	for fr := f; fr != nil; fr = fr.Parent {
		if tag := fr.vars.ResolveTag(name); tag != nil {
			tag.Value = v
			return true
		}
	}
	return false
}

// Enclosing returns the innermost frame of one of the given kinds, starting
// with f itself, or nil.
func (f *Frame) Enclosing(kinds ...FrameKind) *Frame {
	for fr := f; fr != nil; fr = fr.Parent {
		for _, k := range kinds {
			if fr.Kind == k {
				return fr
			}
		}
	}
	return nil
}

// Visible returns the sorted names of all variables and functions reachable
// from f.
func (f *Frame) Visible() []string {
	seen := make(map[string]bool)
	for fr := f; fr != nil; fr = fr.Parent {
		fr.vars.Each(func(name string, _ *Tag) { seen[name] = true })
		fr.funcs.Each(func(name string, _ *Tag) { seen[name] = true })
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset clears all control-flow signals of a frame.
func (f *Frame) Reset() {
	f.Stop = false
	f.Signal = NoSignal
	f.Return = Null
}
