/*
Package runtime implements an interpreter runtime, consisting of
values, memory frames and symbol tables (variable and function bindings).

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

Values

Values are small tagged unions over integers, floats, strings, booleans,
functions and null. Functions are held by reference, all other values are
copied on assignment.

Memory Frames

Memory frames are used by an interpreter to allocate local storage
for active scopes. Every frame links to its lexical parent, which is the
frame the scope has been opened in. Frames for function calls link to the
frame the function has been declared in, making functions closures over
their declaration environment. The runtime additionally keeps the stack of
active frames, which is the dynamic chain of blocks and calls.


----------------------------------------------------------------------

BSD License

Copyright (c) 2017-22, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software or the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package runtime

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pengo.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("pengo.runtime")
}

// DefaultMaxDepth is the default limit for the number of active frames.
const DefaultMaxDepth = 10000

// ErrStackOverflow is returned when pushing a frame would exceed the
// runtime's depth limit.
var ErrStackOverflow = errors.New("stack overflow")

// Runtime is a type implementing a runtime environment for an interpreter.
// It owns the global frame, which is created once and never popped, and the
// stack of active frames.
type Runtime struct {
	global   *Frame
	stack    []*Frame // active frames, TOS = current frame
	MaxDepth int      // limit for len(stack)
}

// NewRuntimeEnvironment constructs a new runtime environment, initialized
// with a global frame.
func NewRuntimeEnvironment() *Runtime {
	rt := &Runtime{MaxDepth: DefaultMaxDepth}
	rt.global = NewFrame("global", GlobalFrame, nil)
	rt.stack = []*Frame{rt.global}
	return rt
}

// Globals gets the outermost memory frame, containing global symbols.
func (rt *Runtime) Globals() *Frame {
	return rt.global
}

// Current gets the current memory frame (TOS).
func (rt *Runtime) Current() *Frame {
	return rt.stack[len(rt.stack)-1]
}

// Depth is the number of active frames, including the global one.
func (rt *Runtime) Depth() int {
	return len(rt.stack)
}

// PushNewFrame pushes a new frame as TOS. The recent TOS becomes the new
// frame's lexical parent.
func (rt *Runtime) PushNewFrame(name string, kind FrameKind) (*Frame, error) {
	return rt.PushFrame(NewFrame(name, kind, rt.Current()))
}

// PushFrame pushes a pre-created frame, which may link to any lexical parent.
func (rt *Runtime) PushFrame(f *Frame) (*Frame, error) {
	if rt.MaxDepth > 0 && len(rt.stack) >= rt.MaxDepth {
		return nil, ErrStackOverflow
	}
	rt.stack = append(rt.stack, f)
	tracer().Debugf("pushing %s frame [%s]", f.Kind, f.Name)
	return f, nil
}

// PopFrame pops the top-most memory frame. Returns the popped frame.
// The global frame cannot be popped.
func (rt *Runtime) PopFrame() *Frame {
	if len(rt.stack) == 1 {
		panic("attempt to pop global memory frame")
	}
	f := rt.stack[len(rt.stack)-1]
	tracer().Debugf("popping %s frame [%s]", f.Kind, f.Name)
	rt.stack[len(rt.stack)-1] = nil
	rt.stack = rt.stack[:len(rt.stack)-1]
	return f
}

// Unwind pops frames until only the global frame is left. Control-flow
// signals of the global frame are reset.
func (rt *Runtime) Unwind() {
	for len(rt.stack) > 1 {
		rt.PopFrame()
	}
	rt.global.Reset()
}
