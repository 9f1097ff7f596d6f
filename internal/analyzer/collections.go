package analyzer

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/source"
	"github.com/restrict-lang/rlc/internal/typesystem"
)

// checkListLit implements spec §4.3.1's empty-literal rule: an empty `[]`
// takes its element type from the expected type, falling back to a
// diagnostic when no expected type is available to resolve it against.
func (c *Checker) checkListLit(n *ast.ListLit, expected typesystem.Type) typesystem.Type {
	var elemExpected typesystem.Type
	if lst, ok := expected.(typesystem.List); ok {
		elemExpected = lst.Elem
	}
	if len(n.Elements) == 0 {
		if elemExpected != nil {
			return typesystem.List{Elem: elemExpected}
		}
		c.report(diagnostics.TUnknownType, n.Span(), "cannot infer element type of empty list literal")
		return typesystem.List{Elem: typesystem.Unit{}}
	}
	elemType := c.checkExpr(n.Elements[0], elemExpected)
	for _, el := range n.Elements[1:] {
		et := c.checkExpr(el, elemType)
		if !typesEqual(et, elemType) {
			c.report(diagnostics.TTypeMismatch, el.Span(), "list element type %s differs from %s", et, elemType)
		}
	}
	return typesystem.List{Elem: elemType}
}

// checkArrayLit mirrors checkListLit but additionally fixes the array's
// size to its element count (spec §4.3.1/§4.3.5: an Array's size is part of
// its type).
func (c *Checker) checkArrayLit(n *ast.ArrayLit, expected typesystem.Type) typesystem.Type {
	var elemExpected typesystem.Type
	if arr, ok := expected.(typesystem.Array); ok {
		elemExpected = arr.Elem
	}
	if len(n.Elements) == 0 {
		if elemExpected != nil {
			return typesystem.Array{Elem: elemExpected, Size: 0}
		}
		c.report(diagnostics.TUnknownType, n.Span(), "cannot infer element type of empty array literal")
		return typesystem.Array{Elem: typesystem.Unit{}, Size: 0}
	}
	elemType := c.checkExpr(n.Elements[0], elemExpected)
	for _, el := range n.Elements[1:] {
		et := c.checkExpr(el, elemType)
		if !typesEqual(et, elemType) {
			c.report(diagnostics.TTypeMismatch, el.Span(), "array element type %s differs from %s", et, elemType)
		}
	}
	return typesystem.Array{Elem: elemType, Size: len(n.Elements)}
}

// checkSomeExpr implements spec §4.3.5's Option construction: Some(v) takes
// its Elem type from v, refined against an expected Option's Elem when one
// is available.
func (c *Checker) checkSomeExpr(n *ast.SomeExpr, expected typesystem.Type) typesystem.Type {
	var elemExpected typesystem.Type
	if opt, ok := expected.(typesystem.Option); ok {
		elemExpected = opt.Elem
	}
	elemType := c.checkExpr(n.Value, elemExpected)
	return typesystem.Option{Elem: elemType}
}

// checkNoneExpr implements the empty-literal rule for `None`: its Elem type
// comes entirely from the expected type.
func (c *Checker) checkNoneExpr(expected typesystem.Type, span source.Span) typesystem.Type {
	if opt, ok := expected.(typesystem.Option); ok {
		return opt
	}
	c.report(diagnostics.TUnknownType, span, "cannot infer element type of None without a surrounding Option type")
	return typesystem.Option{Elem: typesystem.Unit{}}
}

// checkLambda infers each parameter's type from an expected Function type's
// matching position; with no expected type (or an arity mismatch) a
// parameter without its own declared type cannot be resolved.
func (c *Checker) checkLambda(n *ast.Lambda, expected typesystem.Type) typesystem.Type {
	fn, hasExpected := expected.(typesystem.Function)
	if hasExpected && len(fn.Params) != len(n.Params) {
		hasExpected = false
	}

	c.pushScope()
	paramTypes := make([]typesystem.Type, len(n.Params))
	for i, p := range n.Params {
		var pt typesystem.Type
		switch {
		case p.Type != nil:
			pt = c.convertType(p.Type)
		case hasExpected:
			pt = fn.Params[i]
		default:
			c.report(diagnostics.TUnknownType, n.Span(), "cannot infer type of lambda parameter %q", p.Name)
			pt = typesystem.Unit{}
		}
		paramTypes[i] = pt
		c.declareVar(p.Name, pt, false)
	}
	var retExpected typesystem.Type
	if hasExpected {
		retExpected = fn.Return
	}
	bodyType := c.checkExpr(n.Body, retExpected)
	c.popScope()

	return typesystem.Function{Params: paramTypes, Return: bodyType}
}
