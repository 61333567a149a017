package builtins

import (
	"bytes"
	"testing"

	"github.com/rphle/numfu/internal/env"
	"github.com/rphle/numfu/internal/eval"
	"github.com/rphle/numfu/internal/value"
)

func setup(out *bytes.Buffer) *env.Environment {
	root := env.NewRoot()
	ctx := &eval.Context{Num: value.NewContext(0), MaxRecDepth: 1000, MaxIterDepth: 100000}
	RegisterAll(root, ctx, IO{Out: out})
	return root
}

func getBuiltin(t *testing.T, root *env.Environment, name string) *value.Builtin {
	t.Helper()
	fn, ok := root.Get(name)
	if !ok {
		t.Fatalf("builtin %q not registered", name)
	}
	b, ok := fn.(*value.Builtin)
	if !ok {
		t.Fatalf("%q is not a *value.Builtin", name)
	}
	return b
}

func TestLengthOnListAndString(t *testing.T) {
	root := setup(&bytes.Buffer{})
	b := getBuiltin(t, root, "length")

	v, err := b.Fn([]value.Value{value.NewList(value.NumberFromInt64(1), value.NumberFromInt64(2))}, nil)
	if err != nil {
		t.Fatalf("length(list) error: %v", err)
	}
	n := v.(*value.Number)
	if got, _ := n.Int64(); got != 2 {
		t.Errorf("length([1,2]) = %v, want 2", got)
	}

	v, err = b.Fn([]value.Value{value.Str("héllo")}, nil)
	if err != nil {
		t.Fatalf("length(string) error: %v", err)
	}
	n = v.(*value.Number)
	if got, _ := n.Int64(); got != 5 {
		t.Errorf("length(\"héllo\") = %v, want 5 (rune count)", got)
	}
}

func TestSliceNegativeEnd(t *testing.T) {
	root := setup(&bytes.Buffer{})
	s := getBuiltin(t, root, "slice")
	list := value.NewList(value.NumberFromInt64(1), value.NumberFromInt64(2), value.NumberFromInt64(3), value.NumberFromInt64(4))
	v, err := s.Fn([]value.Value{list, value.NumberFromInt64(0), value.NumberFromInt64(-1)}, nil)
	if err != nil {
		t.Fatalf("slice error: %v", err)
	}
	out := v.(*value.List)
	if len(out.Items) != 4 {
		t.Fatalf("slice(list, 0, -1) length = %d, want 4 (whole list)", len(out.Items))
	}
}

func TestSliceEndBeforeStartIsEmpty(t *testing.T) {
	root := setup(&bytes.Buffer{})
	s := getBuiltin(t, root, "slice")
	list := value.NewList(value.NumberFromInt64(1), value.NumberFromInt64(2), value.NumberFromInt64(3))
	v, err := s.Fn([]value.Value{list, value.NumberFromInt64(2), value.NumberFromInt64(0)}, nil)
	if err != nil {
		t.Fatalf("slice error: %v", err)
	}
	out := v.(*value.List)
	if len(out.Items) != 0 {
		t.Errorf("slice with end < start = %d items, want 0", len(out.Items))
	}
}

func TestSortRejectsMixedTypes(t *testing.T) {
	root := setup(&bytes.Buffer{})
	s := getBuiltin(t, root, "sort")
	list := value.NewList(value.NumberFromInt64(1), value.Str("a"))
	_, err := s.Fn([]value.Value{list}, nil)
	if err == nil {
		t.Fatal("expected TypeError sorting mixed-type list")
	}
}

func TestSortNumbersAndStrings(t *testing.T) {
	root := setup(&bytes.Buffer{})
	s := getBuiltin(t, root, "sort")
	list := value.NewList(value.NumberFromInt64(3), value.NumberFromInt64(1), value.NumberFromInt64(2))
	v, err := s.Fn([]value.Value{list}, nil)
	if err != nil {
		t.Fatalf("sort error: %v", err)
	}
	out := v.(*value.List)
	want := []int64{1, 2, 3}
	for i, item := range out.Items {
		n := item.(*value.Number)
		got, _ := n.Int64()
		if got != want[i] {
			t.Errorf("sorted[%d] = %d, want %d", i, got, want[i])
		}
	}

	strs := value.NewList(value.Str("pear"), value.Str("apple"), value.Str("fig"))
	v, err = s.Fn([]value.Value{strs}, nil)
	if err != nil {
		t.Fatalf("sort strings error: %v", err)
	}
	wantStrs := []string{"apple", "fig", "pear"}
	for i, item := range v.(*value.List).Items {
		if got := string(item.(value.Str)); got != wantStrs[i] {
			t.Errorf("sorted strings[%d] = %q, want %q", i, got, wantStrs[i])
		}
	}
}

func TestPrintWritesToStream(t *testing.T) {
	var buf bytes.Buffer
	root := setup(&buf)
	p := getBuiltin(t, root, "print")
	if _, err := p.Fn([]value.Value{value.Str("hi")}, nil); err != nil {
		t.Fatalf("print error: %v", err)
	}
	if buf.String() != "hi\n" {
		t.Errorf("print output = %q, want %q", buf.String(), "hi\n")
	}
}
