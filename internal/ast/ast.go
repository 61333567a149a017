// Package ast defines the NumFu abstract syntax tree as a set of
// tagged-variant node types (no class hierarchy, no virtual dispatch —
// the evaluator switches on concrete Go type).
package ast

import (
	"fmt"
	"strings"

	"github.com/rphle/numfu/internal/token"
)

// Node is any AST node; every node knows its own source position so
// runtime errors can carry the "innermost source span" required by
// spec.md §7.
type Node interface {
	Pos() token.Position
	String() string
}

// Statement is a top-level-module construct: let/del/import/export or
// a bare expression (optionally followed by the ---> assertion sugar).
type Statement interface {
	Node
	statementNode()
}

// Expression is anything that evaluates to a Value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of every parsed module.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{}
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ---- statements ----

// LetStatement is the module-top-level `let NAME = EXPR` form, which
// inserts-or-replaces NAME in the mutable top frame.
type LetStatement struct {
	Token  token.Token
	Name   string
	Value  Expression
	Export bool
}

func (s *LetStatement) statementNode()      {}
func (s *LetStatement) Pos() token.Position { return s.Token.Pos }
func (s *LetStatement) String() string {
	prefix := "let "
	if s.Export {
		prefix = "export let "
	}
	return fmt.Sprintf("%s%s = %s", prefix, s.Name, s.Value.String())
}

// DelStatement removes NAME from the top frame.
type DelStatement struct {
	Token token.Token
	Name  string
}

func (s *DelStatement) statementNode()      {}
func (s *DelStatement) Pos() token.Position { return s.Token.Pos }
func (s *DelStatement) String() string      { return "del " + s.Name }

// ImportStatement covers all three import forms (spec §4.1):
//
//	import N1, N2 from "PATH"   -> Names=[N1,N2]
//	import * from "PATH"        -> Wildcard=true
//	import "PATH"               -> Names==nil, Wildcard==false, Prefixed==true
type ImportStatement struct {
	Token    token.Token
	Names    []string
	Wildcard bool
	Prefixed bool
	Path     string
}

func (s *ImportStatement) statementNode()      {}
func (s *ImportStatement) Pos() token.Position { return s.Token.Pos }
func (s *ImportStatement) String() string {
	switch {
	case s.Wildcard:
		return fmt.Sprintf("import * from %q", s.Path)
	case s.Prefixed:
		return fmt.Sprintf("import %q", s.Path)
	default:
		return fmt.Sprintf("import %s from %q", strings.Join(s.Names, ", "), s.Path)
	}
}

// ExportStatement is `export N1, N2` — marks already-bound top-level
// names as part of the module's export set.
type ExportStatement struct {
	Token token.Token
	Names []string
}

func (s *ExportStatement) statementNode()      {}
func (s *ExportStatement) Pos() token.Position { return s.Token.Pos }
func (s *ExportStatement) String() string      { return "export " + strings.Join(s.Names, ", ") }

// AssertStatement is the top-level `EXPR ---> PRED` sugar.
type AssertStatement struct {
	Token token.Token
	Expr  Expression
	Pred  Expression
}

func (s *AssertStatement) statementNode()      {}
func (s *AssertStatement) Pos() token.Position { return s.Token.Pos }
func (s *AssertStatement) String() string {
	return fmt.Sprintf("%s ---> %s", s.Expr.String(), s.Pred.String())
}

// ExpressionStatement wraps a bare top-level expression.
type ExpressionStatement struct {
	Token token.Token
	Expr  Expression
}

func (s *ExpressionStatement) statementNode()      {}
func (s *ExpressionStatement) Pos() token.Position { return s.Token.Pos }
func (s *ExpressionStatement) String() string      { return s.Expr.String() }

// ---- expressions ----

type Identifier struct {
	Token token.Token
	Name  string
}

func (e *Identifier) expressionNode()     {}
func (e *Identifier) Pos() token.Position { return e.Token.Pos }
func (e *Identifier) String() string      { return e.Name }

// DollarRef is the reserved `$` identifier, valid only on the RHS of
// an assertion (spec §4.1).
type DollarRef struct {
	Token token.Token
}

func (e *DollarRef) expressionNode()     {}
func (e *DollarRef) Pos() token.Position { return e.Token.Pos }
func (e *DollarRef) String() string      { return "$" }

type NumberLiteral struct {
	Token   token.Token
	Literal string
}

func (e *NumberLiteral) expressionNode()     {}
func (e *NumberLiteral) Pos() token.Position { return e.Token.Pos }
func (e *NumberLiteral) String() string      { return e.Literal }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (e *StringLiteral) expressionNode()     {}
func (e *StringLiteral) Pos() token.Position { return e.Token.Pos }
func (e *StringLiteral) String() string      { return fmt.Sprintf("%q", e.Value) }

type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (e *BoolLiteral) expressionNode()     {}
func (e *BoolLiteral) Pos() token.Position { return e.Token.Pos }
func (e *BoolLiteral) String() string      { return fmt.Sprintf("%t", e.Value) }

type ListLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (e *ListLiteral) expressionNode()     {}
func (e *ListLiteral) Pos() token.Position { return e.Token.Pos }
func (e *ListLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Placeholder is the bare `_` argument marker.
type Placeholder struct {
	Token token.Token
}

func (e *Placeholder) expressionNode()     {}
func (e *Placeholder) Pos() token.Position { return e.Token.Pos }
func (e *Placeholder) String() string      { return "_" }

// SpreadExpr is `...EXPR` in a call's argument list.
type SpreadExpr struct {
	Token token.Token
	Value Expression
}

func (e *SpreadExpr) expressionNode()     {}
func (e *SpreadExpr) Pos() token.Position { return e.Token.Pos }
func (e *SpreadExpr) String() string      { return "..." + e.Value.String() }

// Param is one lambda parameter: a plain name, or `...name` if Rest.
type Param struct {
	Name string
	Rest bool
}

func (p Param) String() string {
	if p.Rest {
		return "..." + p.Name
	}
	return p.Name
}

// Lambda is `{P1, …, Pn -> BODY}`, optionally self-named via
// `{NAME: P1, … -> BODY}` for recursion (spec §4.1).
type Lambda struct {
	Token  token.Token
	Name   string // "" unless the named form was used
	Params []Param
	Body   Expression
}

func (e *Lambda) expressionNode()     {}
func (e *Lambda) Pos() token.Position { return e.Token.Pos }
func (e *Lambda) String() string {
	parts := make([]string, len(e.Params))
	for i, p := range e.Params {
		parts[i] = p.String()
	}
	prefix := ""
	if e.Name != "" {
		prefix = e.Name + ": "
	}
	return fmt.Sprintf("{%s%s -> %s}", prefix, strings.Join(parts, ", "), e.Body.String())
}

// Call is `FN(ARG1, …)`. Each Args element may be a Placeholder or a
// SpreadExpr in addition to an ordinary expression.
type Call struct {
	Token token.Token
	Fn    Expression
	Args  []Expression
}

func (e *Call) expressionNode()     {}
func (e *Call) Pos() token.Position { return e.Token.Pos }
func (e *Call) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Fn.String(), strings.Join(parts, ", "))
}

// IndexExpr is `VALUE[INDEX]`.
type IndexExpr struct {
	Token token.Token
	Value Expression
	Index Expression
}

func (e *IndexExpr) expressionNode()     {}
func (e *IndexExpr) Pos() token.Position { return e.Token.Pos }
func (e *IndexExpr) String() string      { return fmt.Sprintf("%s[%s]", e.Value.String(), e.Index.String()) }

// MemberExpr is `OBJECT.NAME`, sugar reserved for the prefixed-import
// access form `import "PATH"` produces (spec §4.1). It is not a general
// record/field-access mechanism: evaluation only looks up the binding
// literally named `OBJECT.NAME`.
type MemberExpr struct {
	Token  token.Token
	Object Expression
	Name   string
}

func (e *MemberExpr) expressionNode()     {}
func (e *MemberExpr) Pos() token.Position { return e.Token.Pos }
func (e *MemberExpr) String() string      { return e.Object.String() + "." + e.Name }

// UnaryExpr is a prefix `+`, `-`, or `!`.
type UnaryExpr struct {
	Token token.Token
	Op    token.Type
	Value Expression
}

func (e *UnaryExpr) expressionNode()     {}
func (e *UnaryExpr) Pos() token.Position { return e.Token.Pos }
func (e *UnaryExpr) String() string      { return e.Op.String() + e.Value.String() }

// BinaryExpr is an arithmetic or single (non-chained) comparison
// operator. When an operand is the `_` placeholder, evaluation turns it
// into a partial application of the operator as a built-in value (spec
// §9); otherwise the operator is applied directly to both operands.
type BinaryExpr struct {
	Token token.Token
	Op    token.Type
	Left  Expression
	Right Expression
}

func (e *BinaryExpr) expressionNode()     {}
func (e *BinaryExpr) Pos() token.Position { return e.Token.Pos }
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Op.String(), e.Right.String())
}

// ChainCompare is `a OP1 b OP2 c …`, desugared at evaluation time into
// `(a OP1 b) && (b OP2 c) && …` with every interior operand evaluated
// exactly once (spec §4.1, §8 invariant 8).
type ChainCompare struct {
	Token    token.Token
	Operands []Expression
	Ops      []token.Type
}

func (e *ChainCompare) expressionNode()     {}
func (e *ChainCompare) Pos() token.Position { return e.Token.Pos }
func (e *ChainCompare) String() string {
	var sb strings.Builder
	sb.WriteString(e.Operands[0].String())
	for i, op := range e.Ops {
		sb.WriteString(" ")
		sb.WriteString(op.String())
		sb.WriteString(" ")
		sb.WriteString(e.Operands[i+1].String())
	}
	return sb.String()
}

// LogicalExpr is `&&` or `||`, short-circuiting (spec §4.4).
type LogicalExpr struct {
	Token token.Token
	Op    token.Type
	Left  Expression
	Right Expression
}

func (e *LogicalExpr) expressionNode()     {}
func (e *LogicalExpr) Pos() token.Position { return e.Token.Pos }
func (e *LogicalExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Op.String(), e.Right.String())
}

// IfExpr is `if COND then THEN else ELSE`.
type IfExpr struct {
	Token token.Token
	Cond  Expression
	Then  Expression
	Else  Expression
}

func (e *IfExpr) expressionNode()     {}
func (e *IfExpr) Pos() token.Position { return e.Token.Pos }
func (e *IfExpr) String() string {
	return fmt.Sprintf("if %s then %s else %s", e.Cond.String(), e.Then.String(), e.Else.String())
}

// LetBinding is one `NAME = EXPR` pair inside a `let … in` expression.
type LetBinding struct {
	Name  string
	Value Expression
}

// LetExpr is `let B1, …, Bn in E`; every RHS is evaluated before any
// of the new names is bound, so no RHS sees a sibling's value (spec
// §4.1). Closures created by an RHS capture the new frame, so a
// let-bound lambda can call itself by name.
type LetExpr struct {
	Token    token.Token
	Bindings []LetBinding
	Body     Expression
}

func (e *LetExpr) expressionNode()     {}
func (e *LetExpr) Pos() token.Position { return e.Token.Pos }
func (e *LetExpr) String() string {
	parts := make([]string, len(e.Bindings))
	for i, b := range e.Bindings {
		parts[i] = fmt.Sprintf("%s = %s", b.Name, b.Value.String())
	}
	return fmt.Sprintf("let %s in %s", strings.Join(parts, ", "), e.Body.String())
}

// ComposeExpr is `f >> g` (spec §4.4).
type ComposeExpr struct {
	Token token.Token
	Left  Expression
	Right Expression
}

func (e *ComposeExpr) expressionNode()     {}
func (e *ComposeExpr) Pos() token.Position { return e.Token.Pos }
func (e *ComposeExpr) String() string      { return fmt.Sprintf("(%s >> %s)", e.Left.String(), e.Right.String()) }

// PipeExpr is `x |> f` (spec §4.4).
type PipeExpr struct {
	Token token.Token
	Left  Expression
	Right Expression
}

func (e *PipeExpr) expressionNode()     {}
func (e *PipeExpr) Pos() token.Position { return e.Token.Pos }
func (e *PipeExpr) String() string      { return fmt.Sprintf("(%s |> %s)", e.Left.String(), e.Right.String()) }
