package internal

import (
	"sync/atomic"
)

// ClosureID identifies an entry in an interpreter's closure registry. Values
// carry only the ID; the registry owns the environments.
type ClosureID uintptr

// closureCounter is the last allocated ClosureID. IDs are unique across all
// interpreters in the process.
var closureCounter uintptr

// nextClosure allocates a new ClosureID.
func nextClosure() ClosureID {
	return ClosureID(atomic.AddUintptr(&closureCounter, 1))
}

// newClosure registers env and returns its ID.
func (in *Interp) newClosure(env *Environment) ClosureID {
	id := nextClosure()
	in.closures[id] = env
	return id
}

// closure returns the environment registered for id.
func (in *Interp) closure(id ClosureID) (*Environment, error) {
	env, ok := in.closures[id]
	if !ok {
		return nil, &ClosureError{ID: id}
	}
	return env, nil
}

// ClosureTable returns a copy of the closure registry.
func (in *Interp) ClosureTable() map[ClosureID]*Environment {
	r := make(map[ClosureID]*Environment, len(in.closures))
	for k, v := range in.closures {
		r[k] = v
	}
	return r
}

// closureOf returns the registry ID carried by v, if any.
func closureOf(v Value) (ClosureID, bool) {
	switch x := v.(type) {
	case *Function:
		return x.Closure, true
	case *Template:
		return x.Closure, true
	case *Instance:
		return x.Closure, true
	}
	return 0, false
}

// release removes the registry entry of a value that was just unbound, unless
// something still reachable refers to it.
func (in *Interp) release(old Value) {
	id, ok := closureOf(old)
	if !ok {
		return
	}
	if _, ok := in.closures[id]; !ok {
		return
	}
	in.mark()
	if in.marks.Add(uintptr(id)) {
		delete(in.closures, id)
		in.Logger.Debug("released closure", "id", id)
	}
}

// Collect removes every registry entry that is unreachable from the
// environment, globals, extensions, imported modules, in-flight calls, and
// pinned arguments. It returns the number of entries removed.
func (in *Interp) Collect() int {
	in.mark()
	n := 0
	for id := range in.closures {
		if in.marks.Add(uintptr(id)) {
			delete(in.closures, id)
			n++
		}
	}
	in.Logger.Debug("collected closures", "removed", n, "remaining", len(in.closures))
	return n
}

// mark records the ID of every reachable registry entry in in.marks.
func (in *Interp) mark() {
	in.marks.Reset()
	stack := in.markStack[:0]
	for _, f := range in.Env.frames {
		for _, v := range f {
			stack = append(stack, v)
		}
	}
	for _, v := range in.Globals {
		stack = append(stack, v)
	}
	for _, e := range in.ext.funcs {
		stack = append(stack, e)
	}
	for _, m := range in.imports {
		for _, v := range m.Members {
			stack = append(stack, v)
		}
	}
	stack = append(stack, in.pins...)
	for _, id := range in.active {
		stack = in.markEnv(stack, id)
	}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch x := v.(type) {
		case List:
			stack = append(stack, x...)
		case *Instance:
			stack = append(stack, x.Template)
			stack = in.markEnv(stack, x.Closure)
		case *Function:
			stack = in.markEnv(stack, x.Closure)
		case *Template:
			stack = in.markEnv(stack, x.Closure)
		}
	}
	// Keep the stack's storage for the next mark.
	in.markStack = stack[:0]
}

// markEnv marks id and, if it was not already marked, pushes every value in
// its environment onto stack.
func (in *Interp) markEnv(stack []Value, id ClosureID) []Value {
	if !in.marks.Add(uintptr(id)) {
		return stack
	}
	env, ok := in.closures[id]
	if !ok {
		return stack
	}
	for _, f := range env.frames {
		for _, v := range f {
			stack = append(stack, v)
		}
	}
	return stack
}

// pin keeps v reachable until unpin is called with a mark at or below the
// current one. It returns v.
func (in *Interp) pin(v Value) Value {
	in.pins = append(in.pins, v)
	return v
}

// unpin drops pins made since mark.
func (in *Interp) unpin(mark int) {
	for i := mark; i < len(in.pins); i++ {
		in.pins[i] = nil
	}
	in.pins = in.pins[:mark]
}
