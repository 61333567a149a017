package parser

import (
	"testing"

	"github.com/rphle/numfu/internal/ast"
	"github.com/rphle/numfu/internal/lexer"
)

func parseExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	p := New(lexer.New(src))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors for %q: %v", src, errs)
	}
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected ExpressionStatement, got %T", program.Statements[0])
	}
	return stmt.Expr
}

func TestArithmeticPrecedence(t *testing.T) {
	e := parseExpr(t, "1 + 2 * 3")
	bin, ok := e.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr, got %T", e)
	}
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected multiplication to bind tighter, right = %T", bin.Right)
	}
	if _, ok := bin.Left.(*ast.NumberLiteral); !ok {
		t.Fatalf("expected left operand to be the literal 1, got %T", bin.Left)
	}
}

func TestChainedComparisonParsesAsOneNode(t *testing.T) {
	e := parseExpr(t, "1 < 2 < 3")
	cc, ok := e.(*ast.ChainCompare)
	if !ok {
		t.Fatalf("expected ChainCompare, got %T", e)
	}
	if len(cc.Operands) != 3 || len(cc.Ops) != 2 {
		t.Fatalf("expected 3 operands/2 ops, got %d/%d", len(cc.Operands), len(cc.Ops))
	}
}

func TestSelfNamedLambdaForRecursion(t *testing.T) {
	e := parseExpr(t, "{go: n -> go(n)}")
	lam, ok := e.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected Lambda, got %T", e)
	}
	if lam.Name != "go" {
		t.Errorf("Lambda.Name = %q, want %q", lam.Name, "go")
	}
}

func TestRestParameter(t *testing.T) {
	e := parseExpr(t, "{a, ...rest -> a}")
	lam, ok := e.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected Lambda, got %T", e)
	}
	if len(lam.Params) != 2 || !lam.Params[1].Rest || lam.Params[1].Name != "rest" {
		t.Fatalf("unexpected params: %+v", lam.Params)
	}
}

func TestPlaceholderInCallArgs(t *testing.T) {
	e := parseExpr(t, "f(_, 1)")
	call, ok := e.(*ast.Call)
	if !ok {
		t.Fatalf("expected Call, got %T", e)
	}
	if _, ok := call.Args[0].(*ast.Placeholder); !ok {
		t.Fatalf("expected first arg to be a Placeholder, got %T", call.Args[0])
	}
}

func TestSpreadInCallArgs(t *testing.T) {
	e := parseExpr(t, "f(...xs)")
	call, ok := e.(*ast.Call)
	if !ok {
		t.Fatalf("expected Call, got %T", e)
	}
	if _, ok := call.Args[0].(*ast.SpreadExpr); !ok {
		t.Fatalf("expected a SpreadExpr arg, got %T", call.Args[0])
	}
}

func TestSyntaxErrorIsCollectedNotFatal(t *testing.T) {
	p := New(lexer.New("let x = "))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected at least one syntax error")
	}
}
