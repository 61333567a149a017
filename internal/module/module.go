// Package module implements NumFu's import resolver (spec.md §4.2):
// locating, parsing, evaluating, and caching modules by canonical
// path, with cycle detection and the standard-library fallback.
package module

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rphle/numfu/internal/ast"
	"github.com/rphle/numfu/internal/env"
	"github.com/rphle/numfu/internal/errs"
	"github.com/rphle/numfu/internal/eval"
	"github.com/rphle/numfu/internal/lexer"
	"github.com/rphle/numfu/internal/parser"
	"github.com/rphle/numfu/internal/token"
	"github.com/rphle/numfu/internal/value"
)

// state is a module cache entry's lifecycle (spec §4.2: Loading is
// how the resolver detects cyclic imports).
type state int

const (
	loading state = iota
	ready
	failed
)

type cacheEntry struct {
	state   state
	exports map[string]value.Value
	err     error
}

var validSegment = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

// Resolver loads and evaluates imported modules against a shared root
// environment, implementing internal/eval.Resolver.
type Resolver struct {
	Root     *env.Environment
	Ctx      *eval.Context
	StdlibFS map[string]string // PATH (no extension) -> source, the last place an import is looked up
	cache    map[string]*cacheEntry
}

func NewResolver(root *env.Environment, ctx *eval.Context) *Resolver {
	return &Resolver{Root: root, Ctx: ctx, cache: map[string]*cacheEntry{}}
}

// Resolve implements eval.Resolver: locate PATH relative to fromDir
// (spec resolution order: fromDir/PATH.nfu, fromDir/PATH/index.nfu,
// then r.StdlibFS, which is empty unless the host fills it), evaluate
// its top level once, and return its exported bindings. The embedded
// builtins.nfu is not among the importable modules.
func (r *Resolver) Resolve(path string, fromDir string) (map[string]value.Value, error) {
	if err := validateModuleName(path); err != nil {
		return nil, err
	}

	file, src, err := r.locate(path, fromDir)
	if err != nil {
		return nil, err
	}
	canon := file
	if file == "" {
		canon = "<stdlib>/" + filepath.Clean(path)
	} else if abs, absErr := filepath.Abs(file); absErr == nil {
		canon = abs
	}

	if entry, ok := r.cache[canon]; ok {
		switch entry.state {
		case loading:
			return nil, errs.New(errs.ImportError, token.Position{}, "cyclic import")
		case failed:
			return nil, entry.err
		default:
			return entry.exports, nil
		}
	}

	r.cache[canon] = &cacheEntry{state: loading}
	dir := fromDir
	if file != "" {
		dir = filepath.Dir(file)
	}
	exports, evalErr := r.evaluateModule(src, dir)
	if evalErr != nil {
		r.cache[canon] = &cacheEntry{state: failed, err: evalErr}
		return nil, evalErr
	}
	r.cache[canon] = &cacheEntry{state: ready, exports: exports}
	return exports, nil
}

func (r *Resolver) locate(path, fromDir string) (file string, src string, err error) {
	direct := filepath.Join(fromDir, path+".nfu")
	if b, readErr := os.ReadFile(direct); readErr == nil {
		return direct, string(b), nil
	}
	indexed := filepath.Join(fromDir, path, "index.nfu")
	if b, readErr := os.ReadFile(indexed); readErr == nil {
		return indexed, string(b), nil
	}
	if s, ok := r.StdlibFS[path]; ok {
		return "", s, nil
	}
	return "", "", errs.New(errs.ImportError, token.Position{}, "Cannot find module %s", path)
}

func validateModuleName(path string) error {
	if path == "" {
		return errs.New(errs.ImportError, token.Position{}, "%q is an invalid module name", path)
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == "." || seg == ".." || seg == "" {
			continue // relative navigation segments are allowed
		}
		if !validSegment.MatchString(seg) {
			return errs.New(errs.ImportError, token.Position{}, "%q is an invalid module name", path)
		}
	}
	return nil
}

// evaluateModule parses src and runs its top level in a fresh frame
// chained off the root environment, returning the bindings named by
// `export` statements/`export let`.
func (r *Resolver) evaluateModule(src string, dir string) (map[string]value.Value, error) {
	return r.runStatements(src, env.NewEnclosed(r.Root), dir)
}

// runStatements parses src and evaluates its statements directly
// against frame (the caller decides whether that's a fresh child
// frame, for an ordinary import, or the root frame itself, for the
// stdlib bootstrap), returning its exported bindings.
func (r *Resolver) runStatements(src string, frame *env.Environment, dir string) (map[string]value.Value, error) {
	l := lexer.New(src)
	p := parser.New(l)
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		return nil, fmt.Errorf("%s", p.Errors()[0])
	}

	exports := map[string]value.Value{}
	moduleCtx := *r.Ctx
	moduleCtx.Resolver = r
	moduleCtx.ImporterDir = dir

	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *ast.LetStatement:
			v, evalErr := eval.Eval(s.Value, frame, &moduleCtx)
			if evalErr != nil {
				return nil, evalErr
			}
			frame.SetLocal(s.Name, v)
			if s.Export {
				exports[s.Name] = v
			}
		case *ast.ExportStatement:
			for _, name := range s.Names {
				v, ok := frame.Get(name)
				if !ok {
					return nil, errs.New(errs.ImportError, s.Pos(), "cannot export undefined name %s", name)
				}
				exports[name] = v
			}
		case *ast.DelStatement:
			frame.Delete(s.Name)
		case *ast.ImportStatement:
			if evalErr := r.runImport(s, frame, &moduleCtx); evalErr != nil {
				return nil, evalErr
			}
		case *ast.ExpressionStatement:
			if _, evalErr := eval.Eval(s.Expr, frame, &moduleCtx); evalErr != nil {
				return nil, evalErr
			}
		case *ast.AssertStatement:
			if evalErr := runAssert(s, frame, &moduleCtx); evalErr != nil {
				return nil, evalErr
			}
		}
	}
	return exports, nil
}

// runAssert implements the `EXPR ---> PRED` sugar (spec §4.1): PRED is
// evaluated with `$` bound to EXPR's value.
func runAssert(s *ast.AssertStatement, frame *env.Environment, ctx *eval.Context) *errs.NumFuError {
	v, err := eval.Eval(s.Expr, frame, ctx)
	if err != nil {
		return err
	}
	predFrame := env.NewEnclosed(frame)
	predFrame.SetLocal("$", v)
	result, err := eval.Eval(s.Pred, predFrame, ctx)
	if err != nil {
		return err
	}
	if !value.Truthy(result) {
		return errs.New(errs.AssertionError, s.Expr.Pos(), "assertion failed")
	}
	return nil
}

func (r *Resolver) runImport(s *ast.ImportStatement, frame *env.Environment, ctx *eval.Context) error {
	exports, err := r.Resolve(s.Path, ctx.ImporterDir)
	if err != nil {
		return err
	}
	switch {
	case s.Wildcard:
		for name, v := range exports {
			frame.SetLocal(name, v)
		}
	case s.Prefixed:
		base := filepath.Base(s.Path)
		for name, v := range exports {
			frame.SetLocal(base+"."+name, v)
		}
	default:
		for _, name := range s.Names {
			v, ok := exports[name]
			if !ok {
				return errs.New(errs.ImportError, s.Pos(), "module %s does not export an identifier named %s", s.Path, name)
			}
			frame.SetLocal(name, v)
		}
	}
	return nil
}
