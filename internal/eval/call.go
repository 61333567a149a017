package eval

import (
	"github.com/rphle/numfu/internal/ast"
	"github.com/rphle/numfu/internal/env"
	"github.com/rphle/numfu/internal/errs"
	"github.com/rphle/numfu/internal/token"
	"github.com/rphle/numfu/internal/value"
)

// evalCall implements spec §4.3's Call evaluation steps 1-2: resolve
// the callee, evaluate each argument (handling `_` and `...spread`),
// then hand off to resolveCall for the currying/placeholder
// composition and, if ready, invocation.
func evalCall(n *ast.Call, e *env.Environment, ctx *Context, depth int) (value.Value, *tail, *errs.NumFuError) {
	fnVal, err := nonTail(n.Fn, e, ctx, depth)
	if err != nil {
		return nil, nil, err
	}
	callable, ok := fnVal.(value.Callable)
	if !ok {
		return nil, nil, errs.New(errs.TypeError, n.Fn.Pos(), "value is not callable: %s", fnVal.Type())
	}

	hasSpread, hasPlaceholder := false, false
	var incoming []value.Arg
	for _, a := range n.Args {
		switch ae := a.(type) {
		case *ast.Placeholder:
			hasPlaceholder = true
			incoming = append(incoming, value.PlaceholderArg)
		case *ast.SpreadExpr:
			hasSpread = true
			v, err := nonTail(ae.Value, e, ctx, depth)
			if err != nil {
				return nil, nil, err
			}
			lst, ok := v.(*value.List)
			if !ok {
				return nil, nil, errs.New(errs.TypeError, ae.Pos(), "cannot spread a %s", v.Type())
			}
			for _, item := range lst.Items {
				incoming = append(incoming, value.Arg{Value: item})
			}
		default:
			v, err := nonTail(a, e, ctx, depth)
			if err != nil {
				return nil, nil, err
			}
			incoming = append(incoming, value.Arg{Value: v})
		}
	}
	if hasSpread && hasPlaceholder {
		return nil, nil, errs.New(errs.TypeError, n.Pos(), "cannot combine spread operator with argument placeholder")
	}

	return resolveCall(callable, incoming, n.Pos(), ctx, depth)
}

// resolveCall composes incoming with the callable's already-bound
// args (spec §4.3 step 3) and, once ready, either hands back a tail
// continuation for a Closure body (so the trampoline keeps running
// without growing the stack) or invokes a Builtin natively.
func resolveCall(callable value.Callable, incoming []value.Arg, pos token.Position, ctx *Context, depth int) (value.Value, *tail, *errs.NumFuError) {
	applied := callable.ApplyArgs(incoming).(value.Callable)

	if applied.Overflowed() {
		return nil, nil, errs.New(errs.TypeError, pos, "cannot apply %d more arguments to a fully-applied function", len(incoming))
	}
	if !applied.Ready() {
		return applied.(value.Value), nil, nil
	}

	switch cc := applied.(type) {
	case *value.Closure:
		frame := buildClosureFrame(cc)
		return nil, &tail{Expr: cc.Body, Env: frame}, nil
	case *value.Builtin:
		argv := make([]value.Value, len(cc.Args))
		for i, a := range cc.Args {
			argv[i] = a.Value
		}
		v, berr := cc.Fn(argv, makeApplier(ctx, depth))
		if berr != nil {
			if berr.Pos.Line == 0 {
				berr.Pos = pos
			}
			return nil, nil, berr
		}
		return v, nil, nil
	default:
		return nil, nil, errs.New(errs.RuntimeError, pos, "unknown callable kind %T", applied)
	}
}

// buildClosureFrame pushes the frame a ready Closure's body runs in:
// fixed parameters bound positionally, the rest parameter (if any)
// bound to a List of the trailing arguments (spec §4.3 step 4).
func buildClosureFrame(cc *value.Closure) *env.Environment {
	parent := cc.Env.(*env.Environment)
	frame := env.NewEnclosed(parent)
	fixed := cc.MinArity()
	for i := 0; i < fixed; i++ {
		frame.SetLocal(cc.Params[i].Name, cc.Args[i].Value)
	}
	if cc.HasRest() {
		restName := cc.Params[len(cc.Params)-1].Name
		rest := cc.Args[fixed:]
		items := make([]value.Value, len(rest))
		for i, a := range rest {
			items[i] = a.Value
		}
		frame.SetLocal(restName, value.NewList(items...))
	}
	return frame
}

// makeApplier gives a Builtin (such as the `f >> g` composition) a way
// to invoke another Callable to completion, charging one non-tail
// recursion-depth level for doing so.
func makeApplier(ctx *Context, depth int) value.Applier {
	return func(callable value.Value, args []value.Value) (value.Value, *errs.NumFuError) {
		c, ok := callable.(value.Callable)
		if !ok {
			return nil, errs.New(errs.TypeError, token.Position{}, "value is not callable: %s", callable.Type())
		}
		incoming := make([]value.Arg, len(args))
		for i, a := range args {
			incoming[i] = value.Arg{Value: a}
		}
		if depth+1 > ctx.MaxRecDepth {
			return nil, errs.New(errs.RecursionError, token.Position{}, "maximum recursion depth exceeded")
		}
		v, t, err := resolveCall(c, incoming, token.Position{}, ctx, depth+1)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return v, nil
		}
		return runFrom(t, ctx, depth+1)
	}
}
