package eval

import (
	"github.com/rphle/numfu/internal/errs"
	"github.com/rphle/numfu/internal/value"
)

// newComposed implements `f >> g` (spec §4.4): a synthetic always-unary
// Builtin wrapping `{x -> g(f(x))}`, invoking each side through the
// Applier supplied at call time so composed closures/builtins are
// invoked with the same currying/tail-call machinery as any other call.
func newComposed(f, g value.Callable) value.Value {
	return value.NewBuiltin("<composed>", 1, false, func(args []value.Value, call value.Applier) (value.Value, *errs.NumFuError) {
		r1, err := call(f, args)
		if err != nil {
			return nil, err
		}
		return call(g, []value.Value{r1})
	})
}
