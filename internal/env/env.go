// Package env implements NumFu's chained lexical environment (spec.md
// §3): a chain of frames, the bottom one mutable (module top-level
// bindings), inner ones immutable after creation (pushed by `let … in`
// and closure calls).
package env

import "github.com/rphle/numfu/internal/value"

// Environment is one frame in the chain. The root frame (outer==nil)
// is the single mutable top frame every module/REPL session shares;
// closures capture a *Environment pointer directly so that rebinding
// the top frame is visible to every closure already holding it (spec
// §3 invariant on top-level mutual recursion).
type Environment struct {
	store map[string]value.Value
	outer *Environment
}

// FrameMarker satisfies value.Environment, letting Closure hold an
// *Environment without internal/value importing internal/env back.
func (e *Environment) FrameMarker() {}

// NewRoot creates the single mutable top frame of a module/session.
func NewRoot() *Environment {
	return &Environment{store: make(map[string]value.Value)}
}

// NewEnclosed pushes an immutable child frame, as `let … in …` and
// closure calls do.
func NewEnclosed(outer *Environment) *Environment {
	return &Environment{store: make(map[string]value.Value), outer: outer}
}

// Get walks child→parent, returning the first binding found.
func (e *Environment) Get(name string) (value.Value, bool) {
	for f := e; f != nil; f = f.outer {
		if v, ok := f.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// SetLocal binds name in this exact frame (used both for the mutable
// top frame's `let`/`del` and for populating a freshly pushed frame
// with simultaneous `let … in` / call-argument bindings).
func (e *Environment) SetLocal(name string, v value.Value) {
	e.store[name] = v
}

// Delete removes name from this exact frame (`del NAME`, top frame only).
func (e *Environment) Delete(name string) {
	delete(e.store, name)
}

// Root walks to the outermost frame.
func (e *Environment) Root() *Environment {
	f := e
	for f.outer != nil {
		f = f.outer
	}
	return f
}

// IsRoot reports whether e is the top-level mutable frame.
func (e *Environment) IsRoot() bool { return e.outer == nil }
