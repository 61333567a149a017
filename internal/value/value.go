// Package value defines the NumFu runtime value model: the closed sum
// of Number/Boolean/String/List/Closure/Builtin/Unit described in
// spec.md §3, plus the shared call-argument bookkeeping (currying,
// placeholders, rest, spread) used by both Closure and Builtin.
//
// Values are tagged variants dispatched on concrete Go type, not a
// class hierarchy (spec.md §9 "Sum types for AST and Value").
package value

import "strings"

// Value is any NumFu runtime value.
type Value interface {
	// Type names the value's variant, for error messages and the
	// `type()` builtin.
	Type() string
	// String renders the value the way it prints at the top level
	// (spec §4.7): strings bare, everything else as its literal form.
	String() string
	// Inspect renders the value the way it appears nested inside a
	// structural context such as a list (e.g. strings get quotes).
	Inspect() string
}

// Bool is the Boolean value.
type Bool bool

func (b Bool) Type() string    { return "Boolean" }
func (b Bool) String() string  { if b { return "true" }; return "false" }
func (b Bool) Inspect() string { return b.String() }

// Str is the String value: a sequence of Unicode scalar values,
// indexed one rune at a time.
type Str string

func (s Str) Type() string   { return "String" }
func (s Str) String() string { return string(s) }
func (s Str) Inspect() string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range string(s) {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// Runes returns s as a slice of single-character strings, the unit
// NumFu indexes and slices String values by.
func (s Str) Runes() []rune { return []rune(string(s)) }

// List is a finite, immutable, heterogeneous, ordered sequence of
// Value. "Mutation" always produces a fresh List (spec §3 invariants).
type List struct {
	Items []Value
}

func NewList(items ...Value) *List { return &List{Items: items} }

func (l *List) Type() string { return "List" }
func (l *List) String() string {
	parts := make([]string, len(l.Items))
	for i, it := range l.Items {
		parts[i] = it.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *List) Inspect() string { return l.String() }

// Unit is the value of side-effecting calls with no meaningful
// result; it prints as nothing at the top level.
type Unit struct{}

func (Unit) Type() string    { return "Unit" }
func (Unit) String() string  { return "" }
func (Unit) Inspect() string { return "()" }

// Truthy implements spec §4.6: false, Number(0), "", [] are falsy;
// everything else (including nan, inf, any closure) is truthy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Bool:
		return bool(t)
	case *Number:
		return !t.IsZero()
	case Str:
		return t != ""
	case *List:
		return len(t.Items) > 0
	default:
		return true
	}
}

// Equal implements spec §4.6 structural equality: same variant, same
// contents (recursive for lists); cross-type is always false; nan is
// never equal to itself.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Str:
		y, ok := b.(Str)
		return ok && x == y
	case *Number:
		y, ok := b.(*Number)
		if !ok {
			return false
		}
		if x.IsNaN() || y.IsNaN() {
			return false
		}
		return x.Cmp(y) == 0
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case Unit:
		_, ok := b.(Unit)
		return ok
	case *Closure:
		y, ok := b.(*Closure)
		return ok && closureEqual(x, y)
	case *Builtin:
		y, ok := b.(*Builtin)
		return ok && x == y
	default:
		return false
	}
}

// closureEqual implements the §3 invariant: same AST node reference,
// same captured frame reference, same bound-args tuple.
func closureEqual(a, b *Closure) bool {
	if a.OrigLambda != b.OrigLambda || a.Env != b.Env {
		return false
	}
	if len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if a.Args[i].IsPlaceholder != b.Args[i].IsPlaceholder {
			return false
		}
		if !a.Args[i].IsPlaceholder && !Equal(a.Args[i].Value, b.Args[i].Value) {
			return false
		}
	}
	return true
}
