package value

import "testing"

func TestNumberFromStringRoundtrip(t *testing.T) {
	n, err := NumberFromString("3.14")
	if err != nil {
		t.Fatalf("NumberFromString: %v", err)
	}
	if got := n.Float64(); got != 3.14 {
		t.Errorf("Float64() = %v, want 3.14", got)
	}
}

func TestArithmeticBasics(t *testing.T) {
	ctx := NewContext(34)
	a, _ := NumberFromString("1")
	b, _ := NumberFromString("2")
	if got := Add(ctx, a, b).Float64(); got != 3 {
		t.Errorf("Add(1,2) = %v, want 3", got)
	}
	if got := Mul(ctx, a, b).Float64(); got != 2 {
		t.Errorf("Mul(1,2) = %v, want 2", got)
	}
	if got := Sub(ctx, b, a).Float64(); got != 1 {
		t.Errorf("Sub(2,1) = %v, want 1", got)
	}
}

func TestInfAndNaN(t *testing.T) {
	pinf := Inf(false)
	if !pinf.IsInf() || pinf.Negative() {
		t.Errorf("Inf(false) should be a non-negative infinity")
	}
	ninf := Inf(true)
	if !ninf.IsInf() || !ninf.Negative() {
		t.Errorf("Inf(true) should be a negative infinity")
	}
	nan := NaN()
	if !nan.IsNaN() {
		t.Errorf("NaN().IsNaN() should be true")
	}
}

func TestEqualAcrossTypes(t *testing.T) {
	a, _ := NumberFromString("1")
	b, _ := NumberFromString("1")
	if !Equal(a, b) {
		t.Errorf("two Numbers with the same value should be Equal")
	}
	if Equal(a, Str("1")) {
		t.Errorf("a Number and a String should never be Equal")
	}
	if !Equal(Str("x"), Str("x")) {
		t.Errorf("equal Strings should be Equal")
	}
}

func TestListEquality(t *testing.T) {
	a, _ := NumberFromString("1")
	b, _ := NumberFromString("1")
	l1 := NewList(a, Str("x"))
	l2 := NewList(b, Str("x"))
	if !Equal(l1, l2) {
		t.Errorf("structurally equal lists should be Equal")
	}
}
