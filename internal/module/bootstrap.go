package module

import (
	"github.com/rphle/numfu/internal/env"
	"github.com/rphle/numfu/internal/eval"
	"github.com/rphle/numfu/stdlib"
)

// LoadStdlib parses the embedded builtins.nfu source text at startup
// and evaluates it directly into root, after host natives have already
// been registered there. No build-time serialized AST is involved: the
// source is lexed and parsed on every call.
func LoadStdlib(root *env.Environment, ctx *eval.Context) error {
	r := NewResolver(root, ctx)
	_, err := r.runStatements(stdlib.Source, root, "")
	return err
}
