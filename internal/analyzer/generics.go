package analyzer

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/source"
	"github.com/restrict-lang/rlc/internal/symbols"
	"github.com/restrict-lang/rlc/internal/typesystem"
)

// checkCall implements spec §4.3.7's generic-inference rule for both direct
// calls and OSV calls (spec §4.3.8 reduces OSV to the same check). A Call's
// Func may name a top-level function, a record's impl method (resolved by
// the first argument's record type taking precedence over a same-named
// global function), or a local variable holding a Function-typed value
// (a lambda).
func (c *Checker) checkCall(n *ast.Call) typesystem.Type {
	argTypes := make([]typesystem.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = c.checkExpr(a, nil)
	}

	name, isIdent := calleeName(n.Func)
	if !isIdent {
		ft := c.checkExpr(n.Func, nil)
		fn, ok := ft.(typesystem.Function)
		if !ok {
			c.report(diagnostics.TTypeMismatch, n.Func.Span(), "cannot call non-function value of type %s", ft)
			return typesystem.Unit{}
		}
		return c.applyFunctionType(n, fn, argTypes)
	}

	sig := c.resolveCallee(name, argTypes)
	if sig == nil {
		if b, ok := c.lookupVar(name); ok {
			if fn, ok := b.Type.(typesystem.Function); ok {
				c.checkExpr(n.Func, nil)
				return c.applyFunctionType(n, fn, argTypes)
			}
		}
		c.report(diagnostics.TUndefinedFunction, n.Span(), "undefined function %q", name)
		return typesystem.Unit{}
	}
	return c.applySig(n, sig, argTypes)
}

func calleeName(e ast.Expr) (string, bool) {
	id, ok := e.(*ast.Ident)
	if !ok {
		return "", false
	}
	return id.Name, true
}

// resolveCallee prefers a record-method binding when the first argument's
// type is a record with a matching method, else falls back to the global
// function table.
func (c *Checker) resolveCallee(name string, argTypes []typesystem.Type) *symbols.FuncSig {
	if len(argTypes) > 0 {
		if rec, ok := argTypes[0].(typesystem.Record); ok {
			if methods, ok := c.Table.Methods[rec.Name]; ok {
				if sig, ok := methods[name]; ok {
					return sig
				}
			}
		}
	}
	return c.Table.Functions[name]
}

func (c *Checker) applySig(n *ast.Call, sig *symbols.FuncSig, argTypes []typesystem.Type) typesystem.Type {
	if len(sig.Params) != len(argTypes) {
		c.report(diagnostics.TArityMismatch, n.Span(), "%q expects %d argument(s), got %d", sig.Name, len(sig.Params), len(argTypes))
		return sig.Return
	}
	subst := typesystem.Subst{}
	for i, p := range sig.Params {
		declared := p.Type.Apply(subst)
		s2, err := typesystem.Unify(declared, argTypes[i])
		if err != nil {
			c.report(diagnostics.TTypeMismatch, n.Args[i].Span(), "argument %d to %q: %s", i+1, sig.Name, err)
			continue
		}
		subst = subst.Compose(s2)
	}
	c.checkTraitBounds(n.Span(), sig.TypeParams, subst)

	return sig.Return.Apply(subst)
}

func (c *Checker) applyFunctionType(n *ast.Call, fn typesystem.Function, argTypes []typesystem.Type) typesystem.Type {
	if len(fn.Params) != len(argTypes) {
		c.report(diagnostics.TArityMismatch, n.Span(), "lambda expects %d argument(s), got %d", len(fn.Params), len(argTypes))
		return fn.Return
	}
	subst := typesystem.Subst{}
	for i, p := range fn.Params {
		s2, err := typesystem.Unify(p.Apply(subst), argTypes[i])
		if err != nil {
			c.report(diagnostics.TTypeMismatch, n.Args[i].Span(), "argument %d: %s", i+1, err)
			continue
		}
		subst = subst.Compose(s2)
	}
	return fn.Return.Apply(subst)
}

// checkTraitBounds implements spec §4.3.7's post-inference trait check:
// each bound type parameter's concrete type must implement every trait
// named in its bounds.
func (c *Checker) checkTraitBounds(span source.Span, tps []symbols.TypeParamBound, subst typesystem.Subst) {
	for _, tp := range tps {
		if len(tp.Bounds) == 0 {
			continue
		}
		concrete, ok := subst[tp.Name]
		if !ok {
			continue
		}
		for _, trait := range tp.Bounds {
			if !c.Table.TypeImplements(concrete, trait) {
				c.report(diagnostics.TUnsupportedFeature, span, "%s does not implement trait %s", concrete, trait)
			}
		}
	}
}
