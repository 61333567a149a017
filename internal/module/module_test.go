package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rphle/numfu/internal/builtins"
	"github.com/rphle/numfu/internal/env"
	"github.com/rphle/numfu/internal/eval"
	"github.com/rphle/numfu/internal/value"
)

func newTestCtx() (*env.Environment, *eval.Context) {
	root := env.NewRoot()
	ctx := &eval.Context{Num: value.NewContext(0), MaxRecDepth: 1000, MaxIterDepth: 100000}
	builtins.RegisterAll(root, ctx, builtins.IO{Out: os.Stdout})
	return root, ctx
}

func TestResolveSimpleModule(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "m.nfu"), []byte("let answer = 42\nexport answer\n"), 0644); err != nil {
		t.Fatal(err)
	}
	root, ctx := newTestCtx()
	r := NewResolver(root, ctx)
	exports, err := r.Resolve("m", dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	v, ok := exports["answer"]
	if !ok {
		t.Fatal("expected export \"answer\"")
	}
	n, ok := v.(*value.Number)
	if !ok || n.Float64() != 42 {
		t.Fatalf("answer = %v, want 42", v)
	}
}

func TestResolveCachesModule(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "m.nfu"), []byte("let x = 1\nexport x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	root, ctx := newTestCtx()
	r := NewResolver(root, ctx)
	if _, err := r.Resolve("m", dir); err != nil {
		t.Fatal(err)
	}
	if len(r.cache) != 1 {
		t.Fatalf("cache size = %d, want 1", len(r.cache))
	}
	if _, err := r.Resolve("m", dir); err != nil {
		t.Fatal(err)
	}
	if len(r.cache) != 1 {
		t.Fatalf("cache size after second resolve = %d, want 1 (should reuse entry)", len(r.cache))
	}
}

func TestResolveCyclicImportFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.nfu"), []byte(`import "b"` + "\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.nfu"), []byte(`import "a"` + "\n"), 0644); err != nil {
		t.Fatal(err)
	}
	root, ctx := newTestCtx()
	r := NewResolver(root, ctx)
	_, err := r.Resolve("a", dir)
	if err == nil {
		t.Fatal("expected cyclic import error, got nil")
	}
}

func TestResolveMissingModule(t *testing.T) {
	dir := t.TempDir()
	root, ctx := newTestCtx()
	r := NewResolver(root, ctx)
	if _, err := r.Resolve("nope", dir); err == nil {
		t.Fatal("expected error for missing module")
	}
}

func TestResolveInvalidModuleName(t *testing.T) {
	root, ctx := newTestCtx()
	r := NewResolver(root, ctx)
	if _, err := r.Resolve("../../etc/!!!", t.TempDir()); err == nil {
		t.Fatal("expected invalid module name error")
	}
}
