package analyzer

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/typesystem"
)

// checkPipe implements spec §4.3.8's pipe rule. `e |> name` binds a fresh
// non-mutable variable to e's value unless name already names a function, in
// which case it calls that function with e as its sole argument; `e |> f`
// (target is an expression) always calls f with e as its sole argument. The
// three source operators (|>, |>>, |) carry no distinct type-level rule in
// this grammar beyond the binding/call distinction already made by the
// target's shape, so all three are checked identically here.
func (c *Checker) checkPipe(n *ast.Pipe) typesystem.Type {
	sourceType := c.checkExpr(n.Source, nil)

	if n.TargetIdent != "" {
		if sig := c.resolveCallee(n.TargetIdent, []typesystem.Type{sourceType}); sig != nil {
			return c.applySig(&ast.Call{SpanVal: n.SpanVal, Args: []ast.Expr{n.Source}}, sig, []typesystem.Type{sourceType})
		}
		if b, ok := c.lookupVar(n.TargetIdent); ok {
			if fn, ok := b.Type.(typesystem.Function); ok {
				return c.applyFunctionType(&ast.Call{SpanVal: n.SpanVal, Args: []ast.Expr{n.Source}}, fn, []typesystem.Type{sourceType})
			}
		}
		c.declareVar(n.TargetIdent, sourceType, false)
		return sourceType
	}

	ft := c.checkExpr(n.TargetExpr, nil)
	fn, ok := ft.(typesystem.Function)
	if !ok {
		c.report(diagnostics.TTypeMismatch, n.TargetExpr.Span(), "pipe target must be a function, got %s", ft)
		return typesystem.Unit{}
	}
	return c.applyFunctionType(&ast.Call{SpanVal: n.SpanVal, Args: []ast.Expr{n.Source}}, fn, []typesystem.Type{sourceType})
}
