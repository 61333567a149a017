package value

import (
	"strings"

	"github.com/rphle/numfu/internal/ast"
	"github.com/rphle/numfu/internal/errs"
)

// Callable unifies Closure and Builtin under the one curry/placeholder
// protocol spec.md §3/§9 describes them sharing.
type Callable interface {
	Value
	MinArity() int
	HasRest() bool
	Ready() bool
	Overflowed() bool
	BoundArgs() []Arg
	// ApplyArgs composes incoming args via ComposeArgs and returns the
	// resulting (still-Callable) Value, boxed so callers don't need to
	// know which concrete type they started with.
	ApplyArgs(incoming []Arg) Value
}

// Arg is one resolved call argument: either a concrete Value or the
// Placeholder sentinel reserving a positional slot (spec §4.3).
type Arg struct {
	IsPlaceholder bool
	Value         Value
}

// PlaceholderArg is the sentinel produced by evaluating a bare `_` in
// a call's argument list.
var PlaceholderArg = Arg{IsPlaceholder: true}

// ComposeArgs implements spec §4.3 step 3: "fill earliest placeholders
// first, then append remaining new args". current is the callable's
// already-bound/placeheld argument list; incoming is this call's
// freshly evaluated arguments (after spread splicing).
func ComposeArgs(current []Arg, incoming []Arg) []Arg {
	result := make([]Arg, len(current))
	copy(result, current)
	idx := 0
	for i := range result {
		if result[i].IsPlaceholder && idx < len(incoming) {
			result[i] = incoming[idx]
			idx++
		}
	}
	if idx < len(incoming) {
		result = append(result, incoming[idx:]...)
	}
	return result
}

// HasPlaceholder reports whether any slot in args is still open.
func HasPlaceholder(args []Arg) bool {
	for _, a := range args {
		if a.IsPlaceholder {
			return true
		}
	}
	return false
}

// Closure is a user-defined callable: parameters, body AST, captured
// environment, and the arguments bound/placeheld so far (spec §3).
// Env is declared as an interface to avoid an import cycle with
// internal/env; the evaluator supplies the concrete *env.Environment.
type Closure struct {
	Params     []ast.Param
	Body       ast.Expression
	Env        Environment
	SelfName   string
	OrigLambda *ast.Lambda // identity used by closureEqual and printing
	Args       []Arg       // bound/placeheld args accumulated so far
}

// Environment is the subset of internal/env.Environment that the
// value package needs: just enough for Closure identity comparisons
// and for the evaluator to re-attach the right frame chain on call.
type Environment interface {
	// Marker method only; equality is by interface identity
	// (pointer equality of the concrete *env.Environment).
	FrameMarker()
}

func (c *Closure) Type() string { return "Closure" }

func (c *Closure) MinArity() int {
	n := len(c.Params)
	if n > 0 && c.Params[n-1].Rest {
		return n - 1
	}
	return n
}

func (c *Closure) HasRest() bool {
	n := len(c.Params)
	return n > 0 && c.Params[n-1].Rest
}

// Ready reports whether the closure has no remaining placeholders and
// enough bound arguments to invoke its body.
func (c *Closure) Ready() bool {
	if HasPlaceholder(c.Args) {
		return false
	}
	min := c.MinArity()
	if c.HasRest() {
		return len(c.Args) >= min
	}
	return len(c.Args) == min
}

// Overflowed reports whether, with no rest parameter, more arguments
// are bound than the closure declares (spec's "Cannot apply N more
// arguments" TypeError).
func (c *Closure) Overflowed() bool {
	return !c.HasRest() && !HasPlaceholder(c.Args) && len(c.Args) > c.MinArity()
}

// ApplyArgs returns a new partially- or fully-applied Closure, leaving
// c untouched (values are immutable, spec §3).
func (c *Closure) ApplyArgs(incoming []Arg) Value {
	n := *c
	n.Args = ComposeArgs(c.Args, incoming)
	return &n
}

func (c *Closure) BoundArgs() []Arg { return c.Args }

func (c *Closure) String() string  { return ReconstructClosure(c) }
func (c *Closure) Inspect() string { return c.String() }

// Applier lets a Builtin invoke a NumFu Closure/Builtin value as part
// of its own work (such as the `f >> g` composition) without
// internal/value depending on internal/eval; the evaluator
// supplies the real implementation when it invokes a Builtin.
type Applier func(callable Value, args []Value) (Value, *errs.NumFuError)

// BuiltinFunc is the native implementation behind a Builtin value. It
// receives the fully resolved argument list (arity/placeholder
// bookkeeping has already happened) plus an Applier for higher-order
// builtins, and returns a Value, or a NumFuError at its own Kind
// (TypeError, ValueError, IndexError, …). The position is filled in
// by the evaluator, which alone knows the call's source span.
type BuiltinFunc func(args []Value, call Applier) (Value, *errs.NumFuError)

// Builtin is a host-native callable sharing Closure's curry and
// placeholder protocol (spec §3, §9 "operators as values").
type Builtin struct {
	Name     string
	Min      int
	Rest     bool // variadic: accepts any number >= Min
	Fn       BuiltinFunc
	Args     []Arg
}

func NewBuiltin(name string, min int, rest bool, fn BuiltinFunc) *Builtin {
	return &Builtin{Name: name, Min: min, Rest: rest, Fn: fn}
}

func (b *Builtin) Type() string    { return "Builtin" }
func (b *Builtin) MinArity() int   { return b.Min }
func (b *Builtin) HasRest() bool   { return b.Rest }

func (b *Builtin) Ready() bool {
	if HasPlaceholder(b.Args) {
		return false
	}
	if b.Rest {
		return len(b.Args) >= b.Min
	}
	return len(b.Args) == b.Min
}

func (b *Builtin) Overflowed() bool {
	return !b.Rest && !HasPlaceholder(b.Args) && len(b.Args) > b.Min
}

func (b *Builtin) ApplyArgs(incoming []Arg) Value {
	n := *b
	n.Args = ComposeArgs(b.Args, incoming)
	return &n
}

func (b *Builtin) BoundArgs() []Arg { return b.Args }

func (b *Builtin) String() string {
	var sb strings.Builder
	sb.WriteString("<builtin ")
	sb.WriteString(b.Name)
	sb.WriteString(">")
	return sb.String()
}
func (b *Builtin) Inspect() string { return b.String() }
