// Package numfu evaluates NumFu source (spec.md): a minimal,
// expression-oriented numeric language with curried functions, tail
// recursion, and arbitrary-precision decimal arithmetic.
package numfu

import (
	"fmt"
	"path/filepath"

	"github.com/rphle/numfu/internal/ast"
	"github.com/rphle/numfu/internal/builtins"
	"github.com/rphle/numfu/internal/env"
	"github.com/rphle/numfu/internal/errs"
	"github.com/rphle/numfu/internal/eval"
	"github.com/rphle/numfu/internal/lexer"
	"github.com/rphle/numfu/internal/module"
	"github.com/rphle/numfu/internal/parser"
	"github.com/rphle/numfu/internal/value"
)

// Options configures a single evaluation session (spec §4.6's
// precision, §4.5's recursion/iteration budgets, and the directory
// imports resolve relative to).
type Options struct {
	Precision int               // apd.Context precision; 0 uses the default (34)
	RecDepth  int               // non-tail recursion budget; 0 uses the default (1000)
	IterDepth int               // tail-call trampoline budget; 0 uses the default (1_000_000)
	SourceDir string            // directory imports in this source resolve relative to
	StdlibFS  map[string]string // PATH (no extension) -> source, the import fallback after the source directory; the embedded builtins.nfu is loaded regardless
	IO        builtins.IO
}

func (o Options) withDefaults() Options {
	if o.Precision <= 0 {
		o.Precision = 34
	}
	if o.RecDepth <= 0 {
		o.RecDepth = 1000
	}
	if o.IterDepth <= 0 {
		o.IterDepth = 1_000_000
	}
	return o
}

// Session is a prepared evaluation environment: stdlib and host
// natives already loaded into its root frame. Evaluate is a
// convenience wrapper around NewSession for one-shot use; a REPL
// instead builds one Session and calls Run repeatedly against it so
// that top-level bindings persist across inputs.
type Session struct {
	Root     *env.Environment
	Ctx      *eval.Context
	Resolver *module.Resolver
}

// NewSession builds a Session: registers host-native builtins, loads
// the embedded NumFu-level standard library (spec §4.2), and prepares
// the module resolver used for user `import` statements.
func NewSession(opts Options) (*Session, error) {
	opts = opts.withDefaults()

	root := env.NewRoot()
	ctx := &eval.Context{
		Num:          value.NewContext(opts.Precision),
		MaxRecDepth:  opts.RecDepth,
		MaxIterDepth: opts.IterDepth,
	}

	builtins.RegisterAll(root, ctx, opts.IO)

	if err := module.LoadStdlib(root, ctx); err != nil {
		return nil, fmt.Errorf("loading stdlib: %w", err)
	}

	resolver := module.NewResolver(root, ctx)
	resolver.StdlibFS = opts.StdlibFS
	ctx.Resolver = resolver
	ctx.ImporterDir = opts.SourceDir

	return &Session{Root: root, Ctx: ctx, Resolver: resolver}, nil
}

// Run parses and evaluates source against the session's shared root
// frame: `let` bindings at the top level persist for subsequent calls
// to Run, matching the REPL's "top-level mutual recursion" invariant
// (spec §3). Run returns the value of the last bare expression
// statement, or Unit if the program contained none.
func (s *Session) Run(source string) (value.Value, *errs.NumFuError) {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if errors := p.Errors(); len(errors) > 0 {
		return nil, errors[0]
	}
	return s.runProgram(program)
}

func (s *Session) runProgram(program *ast.Program) (value.Value, *errs.NumFuError) {
	var last value.Value = value.Unit{}
	for _, stmt := range program.Statements {
		v, err := s.runStatement(stmt)
		if err != nil {
			return nil, err
		}
		if v != nil {
			last = v
		}
	}
	return last, nil
}

// runStatement evaluates one top-level statement against the
// session's root frame, returning a non-nil value only for bare
// expression statements (so the REPL knows what to print).
func (s *Session) runStatement(stmt ast.Statement) (value.Value, *errs.NumFuError) {
	switch st := stmt.(type) {
	case *ast.ExpressionStatement:
		return eval.Eval(st.Expr, s.Root, s.Ctx)
	case *ast.LetStatement:
		v, err := eval.Eval(st.Value, s.Root, s.Ctx)
		if err != nil {
			return nil, err
		}
		s.Root.SetLocal(st.Name, v)
		return nil, nil
	case *ast.DelStatement:
		s.Root.Delete(st.Name)
		return nil, nil
	case *ast.ExportStatement:
		// `export` at a top-level REPL/run session has no module to
		// export into; it is a no-op outside of an imported file.
		return nil, nil
	case *ast.ImportStatement:
		return nil, s.runImport(st)
	case *ast.AssertStatement:
		return nil, s.runAssert(st)
	}
	return nil, errs.New(errs.RuntimeError, stmt.Pos(), "unsupported top-level statement")
}

func (s *Session) runImport(st *ast.ImportStatement) *errs.NumFuError {
	exports, err := s.Resolver.Resolve(st.Path, s.Ctx.ImporterDir)
	if err != nil {
		if nfe, ok := err.(*errs.NumFuError); ok {
			return nfe
		}
		return errs.New(errs.ImportError, st.Pos(), "%s", err)
	}
	switch {
	case st.Wildcard:
		for name, v := range exports {
			s.Root.SetLocal(name, v)
		}
	case st.Prefixed:
		base := filepath.Base(st.Path)
		for name, v := range exports {
			s.Root.SetLocal(base+"."+name, v)
		}
	default:
		for _, name := range st.Names {
			v, ok := exports[name]
			if !ok {
				return errs.New(errs.ImportError, st.Pos(), "module %s does not export an identifier named %s", st.Path, name)
			}
			s.Root.SetLocal(name, v)
		}
	}
	return nil
}

func (s *Session) runAssert(st *ast.AssertStatement) *errs.NumFuError {
	v, err := eval.Eval(st.Expr, s.Root, s.Ctx)
	if err != nil {
		return err
	}
	frame := env.NewEnclosed(s.Root)
	frame.SetLocal("$", v)
	result, err := eval.Eval(st.Pred, frame, s.Ctx)
	if err != nil {
		return err
	}
	if !value.Truthy(result) {
		return errs.New(errs.AssertionError, st.Expr.Pos(), "assertion failed")
	}
	return nil
}

// Evaluate runs a single, self-contained NumFu program: build a fresh
// Session, then Run source against it once. For a REPL or anything
// that needs top-level bindings to persist across multiple inputs,
// build a Session directly instead.
func Evaluate(source string, opts Options) (value.Value, error) {
	session, err := NewSession(opts)
	if err != nil {
		return nil, err
	}
	v, nerr := session.Run(source)
	if nerr != nil {
		return nil, nerr
	}
	return v, nil
}
