package eval

import (
	"github.com/rphle/numfu/internal/ast"
	"github.com/rphle/numfu/internal/env"
	"github.com/rphle/numfu/internal/errs"
	"github.com/rphle/numfu/internal/token"
	"github.com/rphle/numfu/internal/value"
)

// evalBinary implements spec §4.6's mixed-type operator table. Every
// arithmetic/comparison operator is non-tail in both operands; the
// result is always a plain Value, never a continuation.
//
// A `_` operand is spec §9's "operators as values": `_ + 1` parses as
// a BinaryExpr whose Left is a Placeholder and desugars to the call
// `(+)(_, 1)`, yielding the closure-like partial application `{x -> x
// + 1}` rather than erroring as a bare Placeholder would.
func evalBinary(n *ast.BinaryExpr, e *env.Environment, ctx *Context, depth int) (value.Value, *tail, *errs.NumFuError) {
	_, leftHole := n.Left.(*ast.Placeholder)
	_, rightHole := n.Right.(*ast.Placeholder)
	if leftHole || rightHole {
		leftArg := value.PlaceholderArg
		if !leftHole {
			l, err := nonTail(n.Left, e, ctx, depth)
			if err != nil {
				return nil, nil, err
			}
			leftArg = value.Arg{Value: l}
		}
		rightArg := value.PlaceholderArg
		if !rightHole {
			r, err := nonTail(n.Right, e, ctx, depth)
			if err != nil {
				return nil, nil, err
			}
			rightArg = value.Arg{Value: r}
		}
		applied := operatorBuiltin(n.Op, ctx).ApplyArgs([]value.Arg{leftArg, rightArg})
		return applied, nil, nil
	}

	l, err := nonTail(n.Left, e, ctx, depth)
	if err != nil {
		return nil, nil, err
	}
	r, err := nonTail(n.Right, e, ctx, depth)
	if err != nil {
		return nil, nil, err
	}
	v, berr := applyBinary(n.Op, l, r, n.Pos(), ctx)
	return v, nil, berr
}

// operatorBuiltin wraps an operator as the Builtin value spec §9 says
// it desugars to when used with a Placeholder operand, sharing the
// same curry/placeholder protocol as any user-defined closure.
func operatorBuiltin(op token.Type, ctx *Context) *value.Builtin {
	return value.NewBuiltin(op.String(), 2, false, func(args []value.Value, call value.Applier) (value.Value, *errs.NumFuError) {
		return applyBinary(op, args[0], args[1], token.Position{}, ctx)
	})
}

// applyBinary is the pure dispatch table, shared by evalBinary and
// evalChainCompare.
func applyBinary(op token.Type, l, r value.Value, pos token.Position, ctx *Context) (value.Value, *errs.NumFuError) {
	switch op {
	case token.PLUS:
		switch lv := l.(type) {
		case *value.Number:
			if rv, ok := r.(*value.Number); ok {
				return value.Add(ctx.Num, lv, rv), nil
			}
		case value.Str:
			if rv, ok := r.(value.Str); ok {
				return value.Str(string(lv) + string(rv)), nil
			}
		case *value.List:
			if rv, ok := r.(*value.List); ok {
				items := make([]value.Value, 0, len(lv.Items)+len(rv.Items))
				items = append(items, lv.Items...)
				items = append(items, rv.Items...)
				return value.NewList(items...), nil
			}
		}
		return nil, typeErr(pos, "+", l, r)

	case token.MINUS:
		ln, lok := l.(*value.Number)
		rn, rok := r.(*value.Number)
		if !lok || !rok {
			return nil, typeErr(pos, "-", l, r)
		}
		return value.Sub(ctx.Num, ln, rn), nil

	case token.ASTERISK:
		switch lv := l.(type) {
		case *value.Number:
			if rv, ok := r.(*value.Number); ok {
				return value.Mul(ctx.Num, lv, rv), nil
			}
			if rv, ok := r.(value.Str); ok {
				return repeatString(rv, lv, pos)
			}
			if rv, ok := r.(*value.List); ok {
				return repeatList(rv, lv, pos)
			}
		case value.Str:
			if rv, ok := r.(*value.Number); ok {
				return repeatString(lv, rv, pos)
			}
		case *value.List:
			if rv, ok := r.(*value.Number); ok {
				return repeatList(lv, rv, pos)
			}
		}
		return nil, typeErr(pos, "*", l, r)

	case token.SLASH, token.PERCENT, token.CARET:
		ln, lok := l.(*value.Number)
		rn, rok := r.(*value.Number)
		if !lok || !rok {
			return nil, typeErr(pos, op.String(), l, r)
		}
		switch op {
		case token.SLASH:
			return value.Div(ctx.Num, ln, rn), nil
		case token.PERCENT:
			return value.Mod(ctx.Num, ln, rn), nil
		default:
			return value.Pow(ctx.Num, ln, rn), nil
		}

	case token.LT, token.GT, token.LE, token.GE:
		ln, lok := l.(*value.Number)
		rn, rok := r.(*value.Number)
		if !lok || !rok {
			return nil, typeErr(pos, op.String(), l, r)
		}
		if ln.IsNaN() || rn.IsNaN() {
			return value.Bool(false), nil
		}
		c := ln.Cmp(rn)
		switch op {
		case token.LT:
			return value.Bool(c < 0), nil
		case token.GT:
			return value.Bool(c > 0), nil
		case token.LE:
			return value.Bool(c <= 0), nil
		default:
			return value.Bool(c >= 0), nil
		}

	case token.EQ:
		return value.Bool(value.Equal(l, r)), nil
	case token.NEQ:
		return value.Bool(!value.Equal(l, r)), nil
	}
	return nil, errs.New(errs.RuntimeError, pos, "unsupported operator %s", op.String())
}

func typeErr(pos token.Position, op string, l, r value.Value) *errs.NumFuError {
	return errs.New(errs.TypeError, pos, "unsupported operand types for %s: %s and %s", op, l.Type(), r.Type())
}

func repeatString(s value.Str, n *value.Number, pos token.Position) (value.Value, *errs.NumFuError) {
	count, ok := n.Int64()
	if !ok || count < 0 {
		return nil, errs.New(errs.TypeError, pos, "string repeat count must be a non-negative integer")
	}
	runes := s.Runes()
	out := make([]rune, 0, len(runes)*int(count))
	for i := int64(0); i < count; i++ {
		out = append(out, runes...)
	}
	return value.Str(string(out)), nil
}

func repeatList(l *value.List, n *value.Number, pos token.Position) (value.Value, *errs.NumFuError) {
	count, ok := n.Int64()
	if !ok || count < 0 {
		return nil, errs.New(errs.TypeError, pos, "list repeat count must be a non-negative integer")
	}
	out := make([]value.Value, 0, len(l.Items)*int(count))
	for i := int64(0); i < count; i++ {
		out = append(out, l.Items...)
	}
	return value.NewList(out...), nil
}

// evalChainCompare desugars `a OP1 b OP2 c …` into `(a OP1 b) && (b OP2
// c) && …`, evaluating every interior operand exactly once (spec §4.1,
// §8 invariant 8) rather than re-evaluating shared operands as a naive
// left-fold would.
func evalChainCompare(n *ast.ChainCompare, e *env.Environment, ctx *Context, depth int) (value.Value, *tail, *errs.NumFuError) {
	operands := make([]value.Value, len(n.Operands))
	for i, o := range n.Operands {
		v, err := nonTail(o, e, ctx, depth)
		if err != nil {
			return nil, nil, err
		}
		operands[i] = v
	}
	for i, op := range n.Ops {
		res, err := applyBinary(op, operands[i], operands[i+1], n.Pos(), ctx)
		if err != nil {
			return nil, nil, err
		}
		b, ok := res.(value.Bool)
		if !ok || !bool(b) {
			return value.Bool(false), nil, nil
		}
	}
	return value.Bool(true), nil, nil
}
