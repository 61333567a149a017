package numfu

import (
	"math"
	"strings"
	"testing"

	"github.com/rphle/numfu/internal/value"
)

func mustEval(t *testing.T, src string) value.Value {
	t.Helper()
	v, err := Evaluate(src, Options{})
	if err != nil {
		t.Fatalf("Evaluate(%q) returned error: %v", src, err)
	}
	return v
}

func wantFloat(t *testing.T, src string, want float64) {
	t.Helper()
	v := mustEval(t, src)
	n, ok := v.(*value.Number)
	if !ok {
		t.Fatalf("Evaluate(%q) = %T, want *value.Number", src, v)
	}
	got := n.Float64()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Evaluate(%q) = %v, want %v", src, got, want)
	}
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"1 + 2", 3},
		{"2 * (3 + 4)", 14},
		{"7 / 2", 3.5},
		{"2 ^ 10", 1024},
		{"-5 + 10", 5},
		{"10 % 3", 1},
	}
	for _, c := range cases {
		wantFloat(t, c.src, c.want)
	}
}

func TestComparisonChaining(t *testing.T) {
	v := mustEval(t, "1 < 2 < 3")
	if b, ok := v.(value.Bool); !ok || !bool(b) {
		t.Fatalf("1 < 2 < 3 = %v, want true", v)
	}
	v = mustEval(t, "1 < 2 > 3")
	if b, ok := v.(value.Bool); !ok || bool(b) {
		t.Fatalf("1 < 2 > 3 = %v, want false", v)
	}
}

func TestClosureAndCurrying(t *testing.T) {
	wantFloat(t, "let add = {a, b -> a + b} in add(1)(2)", 3)
	wantFloat(t, "let add = {a, b -> a + b} in add(1, 2)", 3)
}

func TestPlaceholderPartialApplication(t *testing.T) {
	wantFloat(t, "let inc = {x, y -> x + y}(_, 1) in inc(41)", 42)
}

func TestOperatorAsValue(t *testing.T) {
	wantFloat(t, "(_ + 1)(41)", 42)
}

func TestTailRecursionDoesNotOverflow(t *testing.T) {
	v := mustEval(t, "let go = {go: n, acc -> if n <= 0 then acc else go(n - 1, acc + 1)} in go(200000, 0)")
	n, ok := v.(*value.Number)
	if !ok {
		t.Fatalf("got %T, want *value.Number", v)
	}
	if got := n.Float64(); got != 200000 {
		t.Errorf("tail-recursive count loop = %v, want 200000", got)
	}
}

func TestListSpreadAndIndex(t *testing.T) {
	v := mustEval(t, "[1, 2, ...[3, 4]][2]")
	n, ok := v.(*value.Number)
	if !ok || n.Float64() != 3 {
		t.Fatalf("got %v, want 3", v)
	}
}

func TestComposeAndPipe(t *testing.T) {
	wantFloat(t, "let f = {x -> x + 1} >> {x -> x * 2} in f(3)", 8)
	wantFloat(t, "3 |> {x -> x * 2}", 6)
}

func TestStdlibMap(t *testing.T) {
	v := mustEval(t, "sum(map([1,2,3], {x -> x * 2}))")
	n, ok := v.(*value.Number)
	if !ok || n.Float64() != 12 {
		t.Fatalf("sum(map(...)) = %v, want 12", v)
	}
}

func TestAssertionSugarFailure(t *testing.T) {
	_, err := Evaluate(`1 + 1 ---> $ == 3`, Options{})
	if err == nil {
		t.Fatal("expected assertion failure, got nil error")
	}
	if !strings.Contains(err.Error(), "AssertionError") {
		t.Errorf("error = %v, want AssertionError", err)
	}
}

func TestTypeErrorOnMixedAddition(t *testing.T) {
	_, err := Evaluate(`1 + "a"`, Options{})
	if err == nil {
		t.Fatal("expected TypeError, got nil")
	}
	if !strings.Contains(err.Error(), "TypeError") {
		t.Errorf("error = %v, want TypeError", err)
	}
}

func TestNonTailRecursionHitsDepthBudget(t *testing.T) {
	_, err := Evaluate(
		"let go = {go: n -> if n <= 0 then 0 else 1 + go(n - 1)} in go(10000)",
		Options{RecDepth: 100},
	)
	if err == nil {
		t.Fatal("expected RecursionError, got nil")
	}
	if !strings.Contains(err.Error(), "RecursionError") {
		t.Errorf("error = %v, want RecursionError", err)
	}
}

func TestSessionPersistsTopLevelBindings(t *testing.T) {
	s, err := NewSession(Options{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := s.Run("let x = 10"); err != nil {
		t.Fatalf("Run let: %v", err)
	}
	v, err := s.Run("x + 5")
	if err != nil {
		t.Fatalf("Run expr: %v", err)
	}
	n, ok := v.(*value.Number)
	if !ok || n.Float64() != 15 {
		t.Fatalf("x + 5 = %v, want 15", v)
	}
}
