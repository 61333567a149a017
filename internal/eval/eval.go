// Package eval is NumFu's tree-walking, trampolined evaluator (spec.md
// §4.3-§4.6). It turns an AST produced by internal/parser into a
// internal/value.Value, threading a precision-aware apd.Context and
// the two depth limits (§4.5) through every call.
package eval

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/rphle/numfu/internal/ast"
	"github.com/rphle/numfu/internal/env"
	"github.com/rphle/numfu/internal/errs"
	"github.com/rphle/numfu/internal/token"
	"github.com/rphle/numfu/internal/value"
)

// Resolver loads and evaluates an imported module, returning its
// exported bindings. Implemented by internal/module; injected here to
// avoid an eval<->module import cycle (the resolver itself calls back
// into Eval to run a module's top-level statements).
type Resolver interface {
	Resolve(path string, fromDir string) (map[string]value.Value, error)
}

// Context carries everything a single top-level evaluation needs that
// isn't part of the lexical environment: numeric precision and the
// two trampoline limits from spec §4.5.
type Context struct {
	Num          *apd.Context
	MaxRecDepth  int
	MaxIterDepth int
	Resolver     Resolver
	ImporterDir  string // directory of the file currently being evaluated, for relative imports
}

// tail is the trampoline's continuation token: "evaluate Expr in Env
// next", without growing the Go call stack. Normalize marks a
// continuation whose eventual result must be coerced with
// value.Bool(value.Truthy(...)) once the trampoline settles — used for
// the right operand of &&/|| (spec §4.5), which is a tail position but
// must still produce a Bool like its non-tail sibling branches do.
type tail struct {
	Expr      ast.Expression
	Env       *env.Environment
	Normalize bool
}

// Eval runs expr to completion, trampolining through any tail calls.
// depth is the caller's current non-tail nesting depth (0 at the
// top-level entry point).
func Eval(expr ast.Expression, e *env.Environment, ctx *Context) (value.Value, *errs.NumFuError) {
	return evalAtDepth(expr, e, ctx, 0)
}

func evalAtDepth(expr ast.Expression, e *env.Environment, ctx *Context, depth int) (value.Value, *errs.NumFuError) {
	if depth > ctx.MaxRecDepth {
		return nil, errs.New(errs.RecursionError, expr.Pos(), "maximum recursion depth exceeded")
	}
	return runFrom(&tail{Expr: expr, Env: e}, ctx, depth)
}

// runFrom is the trampoline loop itself: it re-enters step at the same
// depth for every tail continuation, so an arbitrarily long chain of
// tail calls never grows the Go call stack (spec §4.5).
func runFrom(t *tail, ctx *Context, depth int) (value.Value, *errs.NumFuError) {
	cur, curEnv := t.Expr, t.Env
	normalize := t.Normalize
	for iter := 0; ; iter++ {
		if iter >= ctx.MaxIterDepth {
			return nil, errs.New(errs.RecursionError, cur.Pos(), "maximum tail-call iterations exceeded")
		}
		v, nt, err := step(cur, curEnv, ctx, depth)
		if err != nil {
			return nil, err
		}
		if nt == nil {
			if normalize {
				return value.Bool(value.Truthy(v)), nil
			}
			return v, nil
		}
		cur, curEnv = nt.Expr, nt.Env
		if nt.Normalize {
			normalize = true
		}
	}
}

// nonTail evaluates a subexpression that is NOT in tail position,
// consuming one level of the recursion-depth budget.
func nonTail(expr ast.Expression, e *env.Environment, ctx *Context, depth int) (value.Value, *errs.NumFuError) {
	return evalAtDepth(expr, e, ctx, depth+1)
}

// step evaluates one AST node. It either produces a final Value, or a
// *tail continuation for genuine tail positions (if/let/&&/||
// branches and closure-body calls), which the trampoline in
// runFrom then loops on without recursing.
func step(expr ast.Expression, e *env.Environment, ctx *Context, depth int) (value.Value, *tail, *errs.NumFuError) {
	switch n := expr.(type) {
	case *ast.NumberLiteral:
		num, err := value.NumberFromString(n.Literal)
		if err != nil {
			return nil, nil, errs.New(errs.SyntaxError, n.Pos(), "invalid number literal %q", n.Literal)
		}
		return num, nil, nil

	case *ast.StringLiteral:
		return value.Str(n.Value), nil, nil

	case *ast.BoolLiteral:
		return value.Bool(n.Value), nil, nil

	case *ast.Identifier:
		v, ok := e.Get(n.Name)
		if !ok {
			return nil, nil, errs.New(errs.NameError, n.Pos(), "%s is not defined", n.Name)
		}
		return v, nil, nil

	case *ast.DollarRef:
		v, ok := e.Get("$")
		if !ok {
			return nil, nil, errs.New(errs.NameError, n.Pos(), "$ is only valid on the right-hand side of --->")
		}
		return v, nil, nil

	case *ast.Placeholder:
		return nil, nil, errs.New(errs.NameError, n.Pos(), "_ is only valid inside a call's argument list")

	case *ast.ListLiteral:
		return evalList(n, e, ctx, depth)

	case *ast.Lambda:
		return evalLambda(n, e), nil, nil

	case *ast.UnaryExpr:
		return evalUnary(n, e, ctx, depth)

	case *ast.BinaryExpr:
		return evalBinary(n, e, ctx, depth)

	case *ast.ChainCompare:
		return evalChainCompare(n, e, ctx, depth)

	case *ast.LogicalExpr:
		return evalLogical(n, e, ctx, depth)

	case *ast.ComposeExpr:
		return evalCompose(n, e, ctx, depth)

	case *ast.PipeExpr:
		return evalPipe(n, e, ctx, depth)

	case *ast.IndexExpr:
		return evalIndex(n, e, ctx, depth)

	case *ast.MemberExpr:
		return evalMember(n, e, ctx, depth)

	case *ast.IfExpr:
		cond, err := nonTail(n.Cond, e, ctx, depth)
		if err != nil {
			return nil, nil, err
		}
		if value.Truthy(cond) {
			return nil, &tail{Expr: n.Then, Env: e}, nil
		}
		return nil, &tail{Expr: n.Else, Env: e}, nil

	case *ast.LetExpr:
		frame := env.NewEnclosed(e)
		vals := make([]value.Value, len(n.Bindings))
		for i, b := range n.Bindings {
			v, err := nonTail(b.Value, frame, ctx, depth)
			if err != nil {
				return nil, nil, err
			}
			vals[i] = v
		}
		for i, b := range n.Bindings {
			frame.SetLocal(b.Name, vals[i])
		}
		return nil, &tail{Expr: n.Body, Env: frame}, nil

	case *ast.Call:
		return evalCall(n, e, ctx, depth)

	default:
		return nil, nil, errs.New(errs.RuntimeError, expr.Pos(), "cannot evaluate %T", expr)
	}
}

func evalList(n *ast.ListLiteral, e *env.Environment, ctx *Context, depth int) (value.Value, *tail, *errs.NumFuError) {
	var items []value.Value
	for _, el := range n.Elements {
		if spread, ok := el.(*ast.SpreadExpr); ok {
			v, err := nonTail(spread.Value, e, ctx, depth)
			if err != nil {
				return nil, nil, err
			}
			lst, ok := v.(*value.List)
			if !ok {
				return nil, nil, errs.New(errs.TypeError, spread.Pos(), "cannot spread a %s", v.Type())
			}
			items = append(items, lst.Items...)
			continue
		}
		v, err := nonTail(el, e, ctx, depth)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, v)
	}
	return value.NewList(items...), nil, nil
}

func evalLambda(n *ast.Lambda, e *env.Environment) *value.Closure {
	if n.Name == "" {
		return &value.Closure{Params: n.Params, Body: n.Body, Env: e, OrigLambda: n}
	}
	frame := env.NewEnclosed(e)
	c := &value.Closure{Params: n.Params, Body: n.Body, Env: frame, SelfName: n.Name, OrigLambda: n}
	frame.SetLocal(n.Name, c)
	return c
}

func evalIndex(n *ast.IndexExpr, e *env.Environment, ctx *Context, depth int) (value.Value, *tail, *errs.NumFuError) {
	base, err := nonTail(n.Value, e, ctx, depth)
	if err != nil {
		return nil, nil, err
	}
	idxV, err := nonTail(n.Index, e, ctx, depth)
	if err != nil {
		return nil, nil, err
	}
	idxNum, ok := idxV.(*value.Number)
	if !ok {
		return nil, nil, errs.New(errs.TypeError, n.Index.Pos(), "index must be a Number, got %s", idxV.Type())
	}
	i64, ok := idxNum.Int64()
	if !ok {
		return nil, nil, errs.New(errs.TypeError, n.Index.Pos(), "index must be an integer")
	}
	switch v := base.(type) {
	case *value.List:
		idx := resolveIndex(i64, len(v.Items))
		if idx < 0 || idx >= len(v.Items) {
			return nil, nil, errs.New(errs.IndexError, n.Pos(), "list index %d out of range", i64)
		}
		return v.Items[idx], nil, nil
	case value.Str:
		runes := v.Runes()
		idx := resolveIndex(i64, len(runes))
		if idx < 0 || idx >= len(runes) {
			return nil, nil, errs.New(errs.IndexError, n.Pos(), "string index %d out of range", i64)
		}
		return value.Str(string(runes[idx])), nil, nil
	default:
		return nil, nil, errs.New(errs.TypeError, n.Value.Pos(), "cannot index a %s", base.Type())
	}
}

func resolveIndex(i int64, length int) int {
	if i < 0 {
		return length + int(i)
	}
	return int(i)
}

// evalMember resolves the prefixed-import access sugar `mod.name`
// (spec §4.1); see internal/ast.MemberExpr's doc comment.
func evalMember(n *ast.MemberExpr, e *env.Environment, ctx *Context, depth int) (value.Value, *tail, *errs.NumFuError) {
	ident, ok := n.Object.(*ast.Identifier)
	if !ok {
		return nil, nil, errs.New(errs.TypeError, n.Pos(), "member access is only valid on a prefixed import binding")
	}
	v, ok := e.Get(ident.Name + "." + n.Name)
	if !ok {
		return nil, nil, errs.New(errs.NameError, n.Pos(), "%s.%s is not defined", ident.Name, n.Name)
	}
	return v, nil, nil
}

func evalUnary(n *ast.UnaryExpr, e *env.Environment, ctx *Context, depth int) (value.Value, *tail, *errs.NumFuError) {
	v, err := nonTail(n.Value, e, ctx, depth)
	if err != nil {
		return nil, nil, err
	}
	switch n.Op {
	case token.BANG:
		return value.Bool(!value.Truthy(v)), nil, nil
	case token.MINUS:
		num, ok := v.(*value.Number)
		if !ok {
			return nil, nil, errs.New(errs.TypeError, n.Pos(), "unary - requires a Number, got %s", v.Type())
		}
		return value.Neg(num), nil, nil
	case token.PLUS:
		if _, ok := v.(*value.Number); !ok {
			return nil, nil, errs.New(errs.TypeError, n.Pos(), "unary + requires a Number, got %s", v.Type())
		}
		return v, nil, nil
	default:
		return nil, nil, errs.New(errs.SyntaxError, n.Pos(), "unsupported unary operator %s", n.Op)
	}
}

func evalLogical(n *ast.LogicalExpr, e *env.Environment, ctx *Context, depth int) (value.Value, *tail, *errs.NumFuError) {
	left, err := nonTail(n.Left, e, ctx, depth)
	if err != nil {
		return nil, nil, err
	}
	lt := value.Truthy(left)
	if n.Op == token.AND && !lt {
		return value.Bool(false), nil, nil
	}
	if n.Op == token.OR && lt {
		return value.Bool(true), nil, nil
	}
	return nil, &tail{Expr: n.Right, Env: e, Normalize: true}, nil
}

func evalCompose(n *ast.ComposeExpr, e *env.Environment, ctx *Context, depth int) (value.Value, *tail, *errs.NumFuError) {
	f, err := nonTail(n.Left, e, ctx, depth)
	if err != nil {
		return nil, nil, err
	}
	g, err := nonTail(n.Right, e, ctx, depth)
	if err != nil {
		return nil, nil, err
	}
	fc, ok := f.(value.Callable)
	if !ok {
		return nil, nil, errs.New(errs.TypeError, n.Left.Pos(), "left side of >> must be callable, got %s", f.Type())
	}
	gc, ok := g.(value.Callable)
	if !ok {
		return nil, nil, errs.New(errs.TypeError, n.Right.Pos(), "right side of >> must be callable, got %s", g.Type())
	}
	return newComposed(fc, gc), nil, nil
}

func evalPipe(n *ast.PipeExpr, e *env.Environment, ctx *Context, depth int) (value.Value, *tail, *errs.NumFuError) {
	x, err := nonTail(n.Left, e, ctx, depth)
	if err != nil {
		return nil, nil, err
	}
	f, err := nonTail(n.Right, e, ctx, depth)
	if err != nil {
		return nil, nil, err
	}
	callable, ok := f.(value.Callable)
	if !ok {
		return nil, nil, errs.New(errs.TypeError, n.Right.Pos(), "right side of |> must be callable, got %s", f.Type())
	}
	return resolveCall(callable, []value.Arg{{Value: x}}, n.Pos(), ctx, depth)
}
