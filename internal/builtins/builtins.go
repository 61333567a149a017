// Package builtins registers the host-native functions spec.md §4.2
// says are wired into the root environment before builtins.nfu (the
// NumFu-native standard library layer) is loaded on top of them:
// list/string helpers (length, slice, reverse, sort, set), conversion
// and formatting (type, Number, format, sqrt), I/O (print, input), and
// the error/assert primitives spec §7-§8 describe. Operators used as
// values are built by internal/eval, not registered here.
package builtins

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/rphle/numfu/internal/env"
	"github.com/rphle/numfu/internal/errs"
	"github.com/rphle/numfu/internal/eval"
	"github.com/rphle/numfu/internal/token"
	"github.com/rphle/numfu/internal/value"
)

// IO bundles the streams print/input read and write; the CLI wires
// os.Stdout/os.Stdin, tests wire buffers. Logger is optional: if nil,
// RegisterAll installs a WriterLogger over Out, so a host only needs
// to set Logger when it wants to intercept or prefix print() output
// (e.g. the REPL echoing a distinct style from evaluated results).
type IO struct {
	Out    io.Writer
	In     *bufio.Reader
	Logger Logger
}

// RegisterAll installs every host-native into root, capturing ctx (for
// arithmetic precision) and streams (for print/input) in closures, per
// spec §4.2's "host-provided natives registered before loading
// builtins".
func RegisterAll(root *env.Environment, ctx *eval.Context, streams IO) {
	if streams.Logger == nil {
		streams.Logger = &WriterLogger{Out: streams.Out}
	}
	root.SetLocal("length", value.NewBuiltin("length", 1, false, biLength))
	root.SetLocal("slice", value.NewBuiltin("slice", 3, false, biSlice))
	root.SetLocal("reverse", value.NewBuiltin("reverse", 1, false, biReverse))
	root.SetLocal("sort", value.NewBuiltin("sort", 1, false, biSort))
	root.SetLocal("type", value.NewBuiltin("type", 1, false, biType))
	root.SetLocal("assert", value.NewBuiltin("assert", 1, false, biAssert))
	root.SetLocal("error", value.NewBuiltin("error", 1, true, biError))
	root.SetLocal("print", value.NewBuiltin("print", 1, false, biPrint(streams)))
	root.SetLocal("input", value.NewBuiltin("input", 0, false, biInput(streams)))
	root.SetLocal("format", value.NewBuiltin("format", 1, true, biFormat))
	root.SetLocal("Number", value.NewBuiltin("Number", 1, false, biNumber))
	root.SetLocal("set", value.NewBuiltin("set", 3, false, biSet))
	root.SetLocal("sqrt", value.NewBuiltin("sqrt", 1, false, biSqrt(ctx)))
}

func biLength(args []value.Value, call value.Applier) (value.Value, *errs.NumFuError) {
	switch v := args[0].(type) {
	case *value.List:
		return value.NumberFromInt64(int64(len(v.Items))), nil
	case value.Str:
		return value.NumberFromInt64(int64(len(v.Runes()))), nil
	default:
		return nil, errs.New(errs.TypeError, token.Position{}, "length expects a List or String, got %s", v.Type())
	}
}

// biSlice implements spec §4.6: end-inclusive, negative end means
// "length-1 + end + 1", end < start -> empty.
func biSlice(args []value.Value, call value.Applier) (value.Value, *errs.NumFuError) {
	start, ok1 := asIndex(args[1])
	end, ok2 := asIndex(args[2])
	if !ok1 || !ok2 {
		return nil, errs.New(errs.TypeError, token.Position{}, "slice bounds must be integers")
	}
	switch v := args[0].(type) {
	case *value.List:
		s, e := sliceBounds(start, end, len(v.Items))
		if e < s {
			return value.NewList(), nil
		}
		out := make([]value.Value, e-s+1)
		copy(out, v.Items[s:e+1])
		return value.NewList(out...), nil
	case value.Str:
		runes := v.Runes()
		s, e := sliceBounds(start, end, len(runes))
		if e < s {
			return value.Str(""), nil
		}
		return value.Str(string(runes[s : e+1])), nil
	default:
		return nil, errs.New(errs.TypeError, token.Position{}, "slice expects a List or String, got %s", v.Type())
	}
}

func asIndex(v value.Value) (int64, bool) {
	n, ok := v.(*value.Number)
	if !ok {
		return 0, false
	}
	return n.Int64()
}

func sliceBounds(start, end int64, length int) (int, int) {
	if start < 0 {
		start = int64(length) + start
	}
	if end < 0 {
		end = int64(length-1) + end + 1
	}
	if start < 0 {
		start = 0
	}
	if end >= int64(length) {
		end = int64(length) - 1
	}
	return int(start), int(end)
}

func biReverse(args []value.Value, call value.Applier) (value.Value, *errs.NumFuError) {
	switch v := args[0].(type) {
	case *value.List:
		out := make([]value.Value, len(v.Items))
		for i, item := range v.Items {
			out[len(out)-1-i] = item
		}
		return value.NewList(out...), nil
	case value.Str:
		runes := v.Runes()
		out := make([]rune, len(runes))
		for i, r := range runes {
			out[len(out)-1-i] = r
		}
		return value.Str(string(out)), nil
	default:
		return nil, errs.New(errs.TypeError, token.Position{}, "reverse expects a List or String, got %s", v.Type())
	}
}

// biSort implements spec §8 invariant 5: numbers numerically, strings
// lexicographically; mixed-type lists are a TypeError.
func biSort(args []value.Value, call value.Applier) (value.Value, *errs.NumFuError) {
	lst, ok := args[0].(*value.List)
	if !ok {
		return nil, errs.New(errs.TypeError, token.Position{}, "sort expects a List, got %s", args[0].Type())
	}
	out := make([]value.Value, len(lst.Items))
	copy(out, lst.Items)
	var sortErr *errs.NumFuError
	sort.SliceStable(out, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		switch a := out[i].(type) {
		case *value.Number:
			b, ok := out[j].(*value.Number)
			if !ok {
				sortErr = errs.New(errs.TypeError, token.Position{}, "cannot sort a list with mixed element types")
				return false
			}
			return a.Cmp(b) < 0
		case value.Str:
			b, ok := out[j].(value.Str)
			if !ok {
				sortErr = errs.New(errs.TypeError, token.Position{}, "cannot sort a list with mixed element types")
				return false
			}
			return string(a) < string(b)
		default:
			sortErr = errs.New(errs.TypeError, token.Position{}, "sort only supports Numbers and Strings, got %s", a.Type())
			return false
		}
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return value.NewList(out...), nil
}

func biType(args []value.Value, call value.Applier) (value.Value, *errs.NumFuError) {
	return value.Str(args[0].Type()), nil
}

func biAssert(args []value.Value, call value.Applier) (value.Value, *errs.NumFuError) {
	if !value.Truthy(args[0]) {
		return nil, errs.New(errs.AssertionError, token.Position{}, "assertion failed")
	}
	return value.Bool(true), nil
}

// biError implements `error(msg[, tag])` (spec §7): with no tag, the
// error's Kind is RuntimeError; a second string argument becomes a
// user-supplied Kind.
func biError(args []value.Value, call value.Applier) (value.Value, *errs.NumFuError) {
	msg, ok := args[0].(value.Str)
	if !ok {
		return nil, errs.New(errs.TypeError, token.Position{}, "error() message must be a String")
	}
	kind := errs.RuntimeError
	if len(args) > 1 {
		tag, ok := args[1].(value.Str)
		if !ok {
			return nil, errs.New(errs.TypeError, token.Position{}, "error() tag must be a String")
		}
		kind = errs.Kind(string(tag))
	}
	return nil, errs.New(kind, token.Position{}, "%s", string(msg))
}

// biFormat implements `format(template, ...args)` (spec §7): each `{}`
// in template is replaced, in order, by one argument's display form.
// A mismatch between the number of `{}` placeholders and the number of
// arguments is the `IndexError` spec §7 line 176 names.
func biFormat(args []value.Value, call value.Applier) (value.Value, *errs.NumFuError) {
	tmpl, ok := args[0].(value.Str)
	if !ok {
		return nil, errs.New(errs.TypeError, token.Position{}, "format expects a String template, got %s", args[0].Type())
	}
	rest := args[1:]
	s := string(tmpl)
	var sb strings.Builder
	used := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '{' && i+1 < len(s) && s[i+1] == '}' {
			if used >= len(rest) {
				return nil, errs.New(errs.IndexError, token.Position{}, "format: wrong number of placeholders: template has more than %d", len(rest))
			}
			sb.WriteString(formatArg(rest[used]))
			used++
			i++
			continue
		}
		sb.WriteByte(s[i])
	}
	if used != len(rest) {
		return nil, errs.New(errs.IndexError, token.Position{}, "format: wrong number of placeholders: template has %d, got %d arguments", used, len(rest))
	}
	return value.Str(sb.String()), nil
}

func formatArg(v value.Value) string {
	if s, ok := v.(value.Str); ok {
		return string(s)
	}
	return v.String()
}

// biNumber implements `Number(string)` (spec §7): a ValueError on an
// unparseable numeric literal.
func biNumber(args []value.Value, call value.Applier) (value.Value, *errs.NumFuError) {
	s, ok := args[0].(value.Str)
	if !ok {
		return nil, errs.New(errs.TypeError, token.Position{}, "Number expects a String, got %s", args[0].Type())
	}
	n, err := value.NumberFromString(string(s))
	if err != nil {
		return nil, errs.New(errs.ValueError, token.Position{}, "bad Number(%q) conversion", string(s))
	}
	return n, nil
}

// biSet implements `set(string, index, char)` (spec §7): replaces the
// rune at index with char, a ValueError if char isn't a single-rune
// String, an IndexError if index is out of range.
func biSet(args []value.Value, call value.Applier) (value.Value, *errs.NumFuError) {
	s, ok := args[0].(value.Str)
	if !ok {
		return nil, errs.New(errs.TypeError, token.Position{}, "set expects a String, got %s", args[0].Type())
	}
	i64, ok := asIndex(args[1])
	if !ok {
		return nil, errs.New(errs.TypeError, token.Position{}, "set index must be an integer")
	}
	repl, ok := args[2].(value.Str)
	if !ok {
		return nil, errs.New(errs.ValueError, token.Position{}, "set replacement must be a single-character String, got %s", args[2].Type())
	}
	replRunes := repl.Runes()
	if len(replRunes) != 1 {
		return nil, errs.New(errs.ValueError, token.Position{}, "set replacement must be a single character, got %d", len(replRunes))
	}
	runes := s.Runes()
	idx := resolveIndex(i64, len(runes))
	if idx < 0 || idx >= len(runes) {
		return nil, errs.New(errs.IndexError, token.Position{}, "string index %d out of range", i64)
	}
	out := make([]rune, len(runes))
	copy(out, runes)
	out[idx] = replRunes[0]
	return value.Str(string(out)), nil
}

// resolveIndex mirrors internal/eval's negative-index convention
// (index i<0 means length+i) for set's explicit index argument.
func resolveIndex(i int64, length int) int {
	if i < 0 {
		return length + int(i)
	}
	return int(i)
}

// biSqrt implements spec.md:131's "sqrt of negative -> nan" rule.
func biSqrt(ctx *eval.Context) value.BuiltinFunc {
	return func(args []value.Value, call value.Applier) (value.Value, *errs.NumFuError) {
		n, ok := args[0].(*value.Number)
		if !ok {
			return nil, errs.New(errs.TypeError, token.Position{}, "sqrt expects a Number, got %s", args[0].Type())
		}
		return value.Sqrt(ctx.Num, n), nil
	}
}

func biPrint(streams IO) value.BuiltinFunc {
	return func(args []value.Value, call value.Applier) (value.Value, *errs.NumFuError) {
		var s string
		if str, ok := args[0].(value.Str); ok {
			s = string(str)
		} else {
			s = args[0].String()
		}
		streams.Logger.LogLine(s)
		return value.Unit{}, nil
	}
}

func biInput(streams IO) value.BuiltinFunc {
	return func(args []value.Value, call value.Applier) (value.Value, *errs.NumFuError) {
		line, err := streams.In.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if err != nil && line == "" {
			return value.Str(""), nil
		}
		return value.Str(line), nil
	}
}
