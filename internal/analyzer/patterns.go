package analyzer

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/typesystem"
)

// checkPattern implements spec §4.3.5's pattern-typing table against
// scrutinee type st, binding any names the pattern introduces as
// non-mutable (pattern bindings are non-mutable by default, spec §4.3.2).
func (c *Checker) checkPattern(p ast.Pattern, st typesystem.Type) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		// no binding
	case *ast.IdentPattern:
		c.declareVar(pat.Name, st, false)
	case *ast.LiteralPattern:
		lt := c.checkExpr(pat.Value, st)
		if !typesEqual(lt, st) {
			c.report(diagnostics.TTypeMismatch, pat.Span(), "pattern literal type %s does not match scrutinee type %s", lt, st)
		}
	case *ast.RecordPattern:
		c.checkRecordPattern(pat, st)
	case *ast.SomePattern:
		opt, ok := st.(typesystem.Option)
		if !ok {
			c.report(diagnostics.TTypeMismatch, pat.Span(), "Some pattern requires an Option type, got %s", st)
			c.checkPattern(pat.Inner, typesystem.Unit{})
			return
		}
		c.checkPattern(pat.Inner, opt.Elem)
	case *ast.NonePattern:
		if _, ok := st.(typesystem.Option); !ok {
			c.report(diagnostics.TTypeMismatch, pat.Span(), "None pattern requires an Option type, got %s", st)
		}
	case *ast.EmptyListPattern:
		if _, ok := st.(typesystem.List); !ok {
			c.report(diagnostics.TTypeMismatch, pat.Span(), "[] pattern requires a List type, got %s", st)
		}
	case *ast.ListConsPattern:
		lst, ok := st.(typesystem.List)
		if !ok {
			c.report(diagnostics.TTypeMismatch, pat.Span(), "[h | t] pattern requires a List type, got %s", st)
			c.checkPattern(pat.Head, typesystem.Unit{})
			c.checkPattern(pat.Tail, typesystem.Unit{})
			return
		}
		c.checkPattern(pat.Head, lst.Elem)
		c.checkPattern(pat.Tail, lst)
	case *ast.ListExactPattern:
		lst, ok := st.(typesystem.List)
		if !ok {
			c.report(diagnostics.TTypeMismatch, pat.Span(), "list pattern requires a List type, got %s", st)
			for _, el := range pat.Elements {
				c.checkPattern(el, typesystem.Unit{})
			}
			return
		}
		for _, el := range pat.Elements {
			c.checkPattern(el, lst.Elem)
		}
	default:
		c.report(diagnostics.TUnsupportedFeature, p.Span(), "unsupported pattern %T", p)
	}
}

func (c *Checker) checkRecordPattern(pat *ast.RecordPattern, st typesystem.Type) {
	rec, ok := st.(typesystem.Record)
	if !ok || rec.Name != pat.Name {
		c.report(diagnostics.TTypeMismatch, pat.Span(), "pattern %q does not match scrutinee type %s", pat.Name, st)
		for _, f := range pat.Fields {
			c.checkPattern(f.Pattern, typesystem.Unit{})
		}
		return
	}
	def, ok := c.Table.Records[pat.Name]
	if !ok {
		c.report(diagnostics.TUndefinedRecord, pat.Span(), "undefined record %q", pat.Name)
		return
	}
	for _, f := range pat.Fields {
		ft, ok := def.FieldType(f.Name)
		if !ok {
			c.report(diagnostics.TUnknownField, pat.Span(), "record %q has no field %q", pat.Name, f.Name)
			c.checkPattern(f.Pattern, typesystem.Unit{})
			continue
		}
		c.checkPattern(f.Pattern, ft)
	}
}
