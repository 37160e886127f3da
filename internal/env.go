package internal

import (
	"fmt"
	"sort"
	"strings"
)

// Frame is one scope's bindings.
type Frame map[Symbol]Value

// clone copies the frame, deep-copying list values.
func (f Frame) clone() Frame {
	r := make(Frame, len(f))
	for k, v := range f {
		r[k] = copyValue(v)
	}
	return r
}

// Environment is a stack of frames. Scope indices count from the innermost
// frame, which is scope 0; the outermost frame holds global definitions.
// An Environment always has at least one frame.
type Environment struct {
	// frames is stored outermost first so that opening a scope appends.
	frames []Frame
}

// NewEnvironment creates an environment with a single empty frame.
func NewEnvironment() *Environment {
	return &Environment{frames: []Frame{{}}}
}

// Depth returns the number of frames.
func (e *Environment) Depth() int {
	return len(e.frames)
}

// Frame returns the frame at scope index i, counting from the innermost.
// Panics if i is out of range.
func (e *Environment) Frame(i int) Frame {
	return e.frames[len(e.frames)-1-i]
}

// Global returns the outermost frame.
func (e *Environment) Global() Frame {
	return e.frames[0]
}

// BeginScope pushes a new empty innermost frame.
func (e *Environment) BeginScope() {
	e.frames = append(e.frames, Frame{})
}

// push adds f as the innermost frame.
func (e *Environment) push(f Frame) {
	e.frames = append(e.frames, f)
}

// EndScope pops the innermost n frames. Popping every frame leaves a single
// fresh empty frame.
func (e *Environment) EndScope(n int) {
	if n <= 0 {
		return
	}
	if n >= len(e.frames) {
		for i := range e.frames {
			e.frames[i] = nil
		}
		e.frames = append(e.frames[:0], Frame{})
		return
	}
	k := len(e.frames) - n
	for i := k; i < len(e.frames); i++ {
		e.frames[i] = nil
	}
	e.frames = e.frames[:k]
}

// FindScope returns the index of the innermost scope binding name, or -1.
func (e *Environment) FindScope(name Symbol) int {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if _, ok := e.frames[i][name]; ok {
			return len(e.frames) - 1 - i
		}
	}
	return -1
}

// Get returns the innermost binding of name.
func (e *Environment) Get(name Symbol) (Value, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if v, ok := e.frames[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Bind binds name to v in the given scope without evaluating anything.
// Scopes beyond the outermost clamp to the outermost.
func (e *Environment) Bind(name Symbol, v Value, scope int) {
	e.Frame(e.clamp(scope))[name] = v
}

func (e *Environment) clamp(scope int) int {
	if scope < 0 {
		return 0
	}
	if scope >= len(e.frames) {
		return len(e.frames) - 1
	}
	return scope
}

// Extend splices other's frames inside the current innermost frame, keeping
// their order, and returns the number of frames added. The frames are shared,
// so writes through e land in other.
func (e *Environment) Extend(other *Environment) int {
	if other == nil {
		return 0
	}
	e.frames = append(e.frames, other.frames...)
	return len(other.frames)
}

// Clone deep-copies the environment.
func (e *Environment) Clone() *Environment {
	r := &Environment{frames: make([]Frame, len(e.frames))}
	for i, f := range e.frames {
		r.frames[i] = f.clone()
	}
	return r
}

// locals copies every frame except the outermost into a new environment. If
// there are no such frames, the result has a single empty frame.
func (e *Environment) locals() *Environment {
	if len(e.frames) <= 1 {
		return NewEnvironment()
	}
	r := &Environment{frames: make([]Frame, len(e.frames)-1)}
	for i, f := range e.frames[1:] {
		r.frames[i] = f.clone()
	}
	return r
}

// String lists every scope and its bindings, innermost first.
func (e *Environment) String() string {
	var b strings.Builder
	for i := 0; i < len(e.frames); i++ {
		f := e.Frame(i)
		fmt.Fprintf(&b, "Scope %d\n", i)
		names := make([]string, 0, len(f))
		for k := range f {
			names = append(names, string(k))
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Fprintf(&b, "\t%s = %s\n", k, Print(f[Symbol(k)]))
		}
	}
	return b.String()
}
