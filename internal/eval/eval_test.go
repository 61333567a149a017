package eval_test

import (
	"bytes"
	"testing"

	"github.com/rphle/numfu/internal/ast"
	"github.com/rphle/numfu/internal/builtins"
	"github.com/rphle/numfu/internal/env"
	"github.com/rphle/numfu/internal/eval"
	"github.com/rphle/numfu/internal/lexer"
	"github.com/rphle/numfu/internal/parser"
	"github.com/rphle/numfu/internal/value"
)

func parseExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors for %q: %v", src, errs)
	}
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected an ExpressionStatement, got %T", program.Statements[0])
	}
	return stmt.Expr
}

// evalSrc parses and runs src under a root env with every builtin
// registered (print writes to buf), a fixed iteration budget and a
// caller-supplied, deliberately low recursion budget so a test can
// tell a true tail call (which never charges MaxRecDepth) apart from
// a non-tail one (which does).
func evalSrc(t *testing.T, src string, maxRecDepth, maxIterDepth int) (value.Value, *bytes.Buffer) {
	t.Helper()
	root := env.NewRoot()
	var buf bytes.Buffer
	ctx := &eval.Context{Num: value.NewContext(0), MaxRecDepth: maxRecDepth, MaxIterDepth: maxIterDepth}
	builtins.RegisterAll(root, ctx, builtins.IO{Out: &buf})
	v, err := eval.Eval(parseExpr(t, src), root, ctx)
	if err != nil {
		t.Fatalf("eval(%q): %v", src, err)
	}
	return v, &buf
}

// evalSrcErr is evalSrc's counterpart for programs expected to fail.
func evalSrcErr(t *testing.T, src string, maxRecDepth, maxIterDepth int) {
	t.Helper()
	root := env.NewRoot()
	ctx := &eval.Context{Num: value.NewContext(0), MaxRecDepth: maxRecDepth, MaxIterDepth: maxIterDepth}
	builtins.RegisterAll(root, ctx, builtins.IO{Out: &bytes.Buffer{}})
	v, err := eval.Eval(parseExpr(t, src), root, ctx)
	if err == nil {
		t.Fatalf("eval(%q): expected an error, got %v", src, v)
	}
}

// --- Tail-position exhaustiveness (spec §4.5) ---
//
// Every test below uses a recursion budget (MaxRecDepth) far smaller
// than the loop count, so the test can only pass if the recursive
// call genuinely runs through the trampoline rather than the Go call
// stack. A regression back to evaluating a tail position with nonTail
// would blow the low MaxRecDepth well before the loop finishes.

func TestTailPositionIfDoesNotChargeRecDepth(t *testing.T) {
	src := `let count = {n -> if n <= 0 then 0 else count(n - 1)} in count(5000)`
	v, _ := evalSrc(t, src, 5, 1_000_000)
	n, ok := v.(*value.Number)
	if !ok {
		t.Fatalf("count(5000) = %v (%T), want a Number", v, v)
	}
	if got, _ := n.Int64(); got != 0 {
		t.Errorf("count(5000) = %d, want 0", got)
	}
}

func TestTailPositionLetDoesNotChargeRecDepth(t *testing.T) {
	src := `let count = {n -> if n <= 0 then 0 else (let m = n - 1 in count(m))} in count(5000)`
	v, _ := evalSrc(t, src, 5, 1_000_000)
	n, ok := v.(*value.Number)
	if !ok {
		t.Fatalf("count(5000) = %v (%T), want a Number", v, v)
	}
	if got, _ := n.Int64(); got != 0 {
		t.Errorf("count(5000) = %d, want 0", got)
	}
}

func TestTailPositionCallDoesNotChargeRecDepth(t *testing.T) {
	src := `let count = {n -> if n <= 0 then true else count(n - 1)} in count(200000)`
	v, _ := evalSrc(t, src, 3, 1_000_000)
	if !value.Truthy(v) {
		t.Errorf("count(200000) = %v, want truthy", v)
	}
}

// TestLogicalOrRightOperandDoesNotChargeRecDepth is the regression
// test for the &&/|| tail-position bug: the right operand of || used
// to be evaluated with nonTail, charging one MaxRecDepth unit per
// recursive step instead of running through the trampoline.
func TestLogicalOrRightOperandDoesNotChargeRecDepth(t *testing.T) {
	src := `let count = {n -> n <= 0 || count(n - 1)} in count(5000)`
	v, _ := evalSrc(t, src, 5, 1_000_000)
	if !value.Truthy(v) {
		t.Errorf("count(5000) = %v, want true", v)
	}
}

// TestLogicalAndRightOperandDoesNotChargeRecDepth mirrors the || case
// for &&: the recursive step runs while n>0 (left operand truthy),
// bottoming out at n<=0 where the left operand alone short-circuits.
func TestLogicalAndRightOperandDoesNotChargeRecDepth(t *testing.T) {
	src := `let count = {n -> (n > 0) && count(n - 1)} in count(5000)`
	v, _ := evalSrc(t, src, 5, 1_000_000)
	if value.Truthy(v) {
		t.Errorf("count(5000) = %v, want false", v)
	}
}

// TestLogicalOrNormalizesToBool checks the Normalize fix doesn't just
// make the tail call succeed but also still yields a Bool, matching
// the type its non-tail sibling branches (the short-circuit returns)
// already produce.
func TestLogicalOrNormalizesToBool(t *testing.T) {
	v, _ := evalSrc(t, `false || true`, 1000, 1000)
	if _, ok := v.(value.Bool); !ok {
		t.Fatalf("false || true = %v (%T), want value.Bool", v, v)
	}
	if !value.Truthy(v) {
		t.Errorf("false || true = %v, want true", v)
	}

	v, _ = evalSrc(t, `let x = 1 in x == 1 && x == 1`, 1000, 1000)
	if _, ok := v.(value.Bool); !ok {
		t.Fatalf("chained && = %v (%T), want value.Bool", v, v)
	}
}

// TestNonTailRecursionStillChargesRecDepth is a negative control: a
// recursive call inside an arithmetic expression is genuinely
// non-tail, so it must still hit RecursionError under a low budget.
// Without this control, a bug that made everything look tail-free
// (e.g. ignoring MaxRecDepth entirely) would pass the tests above too.
func TestNonTailRecursionStillChargesRecDepth(t *testing.T) {
	src := `let count = {n -> if n <= 0 then 0 else 1 + count(n - 1)} in count(50)`
	evalSrcErr(t, src, 5, 1_000_000)
}

// --- Spec §8 numeric edge cases ---

func TestDivisionByZeroEdgeCases(t *testing.T) {
	cases := []struct {
		src     string
		wantInf bool
		wantNeg bool
		wantNaN bool
	}{
		{"1 / 0", true, false, false},
		{"-1 / 0", true, true, false},
		{"0 / 0", false, false, true},
	}
	for _, c := range cases {
		v, _ := evalSrc(t, c.src, 1000, 1000)
		n, ok := v.(*value.Number)
		if !ok {
			t.Fatalf("%s = %v (%T), want a Number", c.src, v, v)
		}
		if n.IsInf() != c.wantInf {
			t.Errorf("%s: IsInf() = %v, want %v", c.src, n.IsInf(), c.wantInf)
		}
		if c.wantInf && n.Negative() != c.wantNeg {
			t.Errorf("%s: Negative() = %v, want %v", c.src, n.Negative(), c.wantNeg)
		}
		if n.IsNaN() != c.wantNaN {
			t.Errorf("%s: IsNaN() = %v, want %v", c.src, n.IsNaN(), c.wantNaN)
		}
	}
}

func TestNaNComparisonsAreAlwaysFalse(t *testing.T) {
	cases := []string{
		"(0 / 0) == (0 / 0)",
		"(0 / 0) > 42",
		"(0 / 0) < 42",
		"(0 / 0) != (0 / 0)", // NEQ is the one case a NaN comparison is true
	}
	want := []bool{false, false, false, true}
	for i, src := range cases {
		v, _ := evalSrc(t, src, 1000, 1000)
		if value.Truthy(v) != want[i] {
			t.Errorf("%s = %v, want %v", src, v, want[i])
		}
	}
}

// TestChainedComparisonEvaluatesSharedOperandOnce proves spec §8
// invariant 8: in `a < b < c`, the middle operand b is evaluated
// exactly once even though it participates in two comparisons. b is
// wrapped in a closure that prints as a side effect each time it
// actually runs, so the print count is an observable proxy for the
// number of evaluations.
func TestChainedComparisonEvaluatesSharedOperandOnce(t *testing.T) {
	src := `let tick = {x -> let p = print("tick") in x} in 1 < tick(2) < 3`
	v, buf := evalSrc(t, src, 1000, 1000)
	if !value.Truthy(v) {
		t.Fatalf("1 < tick(2) < 3 = %v, want true", v)
	}
	got := bytes.Count(buf.Bytes(), []byte("tick"))
	if got != 1 {
		t.Errorf("tick(2) was printed %d times, want exactly 1 (shared operand must be evaluated once)", got)
	}
}
