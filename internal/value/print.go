package value

import (
	"fmt"
	"strings"

	"github.com/rphle/numfu/internal/ast"
)

// ReconstructClosure implements spec §4.7: print a partially applied
// closure by substituting its bound parameter identifiers with their
// values' own reconstruction, and listing only the still-open
// parameters (including any unfilled placeholders) in the signature.
func ReconstructClosure(c *Closure) string {
	subst := map[string]Value{}
	var openParams []ast.Param
	for i, p := range c.Params {
		if p.Rest {
			openParams = append(openParams, p)
			continue
		}
		if i < len(c.Args) && !c.Args[i].IsPlaceholder {
			subst[p.Name] = c.Args[i].Value
		} else {
			openParams = append(openParams, p)
		}
	}

	bodyStr := reconstructExpr(c.Body, subst)
	parts := make([]string, len(openParams))
	for i, p := range openParams {
		parts[i] = p.String()
	}
	prefix := ""
	if c.SelfName != "" {
		prefix = c.SelfName + ": "
	}
	return fmt.Sprintf("{%s%s -> %s}", prefix, strings.Join(parts, ", "), bodyStr)
}

// reconstructExpr walks e, substituting any Identifier present in subst
// with that value's Inspect() form, and otherwise rebuilding the
// surface syntax from scratch so minimal parenthesization is
// preserved (spec §9 "small pretty-printer").
func reconstructExpr(e ast.Expression, subst map[string]Value) string {
	switch n := e.(type) {
	case *ast.Identifier:
		if v, ok := subst[n.Name]; ok {
			return v.Inspect()
		}
		return n.Name
	case *ast.DollarRef:
		return "$"
	case *ast.NumberLiteral:
		return n.Literal
	case *ast.StringLiteral:
		return Str(n.Value).Inspect()
	case *ast.BoolLiteral:
		return fmt.Sprintf("%t", n.Value)
	case *ast.Placeholder:
		return "_"
	case *ast.SpreadExpr:
		return "..." + reconstructExpr(n.Value, subst)
	case *ast.ListLiteral:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = reconstructExpr(el, subst)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.Lambda:
		inner := map[string]Value{}
		for k, v := range subst {
			shadowed := false
			for _, p := range n.Params {
				if p.Name == k {
					shadowed = true
					break
				}
			}
			if !shadowed {
				inner[k] = v
			}
		}
		parts := make([]string, len(n.Params))
		for i, p := range n.Params {
			parts[i] = p.String()
		}
		prefix := ""
		if n.Name != "" {
			prefix = n.Name + ": "
		}
		return fmt.Sprintf("{%s%s -> %s}", prefix, strings.Join(parts, ", "), reconstructExpr(n.Body, inner))
	case *ast.Call:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = reconstructExpr(a, subst)
		}
		return fmt.Sprintf("%s(%s)", reconstructExpr(n.Fn, subst), strings.Join(parts, ", "))
	case *ast.IndexExpr:
		return fmt.Sprintf("%s[%s]", reconstructExpr(n.Value, subst), reconstructExpr(n.Index, subst))
	case *ast.MemberExpr:
		return reconstructExpr(n.Object, subst) + "." + n.Name
	case *ast.UnaryExpr:
		return n.Op.String() + reconstructExpr(n.Value, subst)
	case *ast.BinaryExpr:
		return fmt.Sprintf("%s %s %s", reconstructExpr(n.Left, subst), n.Op.String(), reconstructExpr(n.Right, subst))
	case *ast.ChainCompare:
		var sb strings.Builder
		sb.WriteString(reconstructExpr(n.Operands[0], subst))
		for i, op := range n.Ops {
			sb.WriteString(" ")
			sb.WriteString(op.String())
			sb.WriteString(" ")
			sb.WriteString(reconstructExpr(n.Operands[i+1], subst))
		}
		return sb.String()
	case *ast.LogicalExpr:
		return fmt.Sprintf("%s %s %s", reconstructExpr(n.Left, subst), n.Op.String(), reconstructExpr(n.Right, subst))
	case *ast.IfExpr:
		return fmt.Sprintf("if %s then %s else %s", reconstructExpr(n.Cond, subst), reconstructExpr(n.Then, subst), reconstructExpr(n.Else, subst))
	case *ast.LetExpr:
		parts := make([]string, len(n.Bindings))
		for i, b := range n.Bindings {
			parts[i] = fmt.Sprintf("%s = %s", b.Name, reconstructExpr(b.Value, subst))
		}
		return fmt.Sprintf("let %s in %s", strings.Join(parts, ", "), reconstructExpr(n.Body, subst))
	case *ast.ComposeExpr:
		return fmt.Sprintf("%s >> %s", reconstructExpr(n.Left, subst), reconstructExpr(n.Right, subst))
	case *ast.PipeExpr:
		return fmt.Sprintf("%s |> %s", reconstructExpr(n.Left, subst), reconstructExpr(n.Right, subst))
	default:
		if e == nil {
			return ""
		}
		return e.String()
	}
}
