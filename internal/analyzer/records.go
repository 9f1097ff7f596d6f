package analyzer

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/typesystem"
)

// checkRecordLit implements spec §4.3.3's RecordLit rule: the name must be
// declared, every field must be present, and each field's expression type
// must equal the declared field type.
func (c *Checker) checkRecordLit(n *ast.RecordLit) typesystem.Type {
	def, ok := c.Table.Records[n.Name]
	if !ok {
		c.report(diagnostics.TUndefinedRecord, n.Span(), "undefined record %q", n.Name)
		for _, f := range n.Fields {
			c.checkExpr(f.Value, nil)
		}
		return typesystem.Unit{}
	}
	seen := map[string]bool{}
	for _, f := range n.Fields {
		seen[f.Name] = true
		declared, ok := def.FieldType(f.Name)
		if !ok {
			c.report(diagnostics.TUnknownField, n.Span(), "record %q has no field %q", n.Name, f.Name)
			c.checkExpr(f.Value, nil)
			continue
		}
		vt := c.checkExpr(f.Value, declared)
		if !typesEqual(vt, declared) {
			c.report(diagnostics.TTypeMismatch, f.Value.Span(), "field %q: expected %s, got %s", f.Name, declared, vt)
		}
	}
	for _, fd := range def.Fields {
		if !seen[fd.Name] {
			c.report(diagnostics.TUnknownField, n.Span(), "record %q: missing field %q", n.Name, fd.Name)
		}
	}
	return typesystem.Record{Name: n.Name, Frozen: false}
}

// checkClone implements spec §4.3.3's Clone rule: the base must be a
// non-frozen record, and each update field must exist with a matching type.
func (c *Checker) checkClone(n *ast.Clone) typesystem.Type {
	baseType := c.checkExpr(n.Base, nil)
	rec, ok := baseType.(typesystem.Record)
	if !ok {
		c.report(diagnostics.TTypeMismatch, n.Base.Span(), "clone base must be a record, got %s", baseType)
		for _, f := range n.Updates {
			c.checkExpr(f.Value, nil)
		}
		return typesystem.Unit{}
	}
	if rec.Frozen {
		c.report(diagnostics.TCloneFrozenRecord, n.Span(), "cannot clone frozen record %q", rec.Name)
	}
	def, ok := c.Table.Records[rec.Name]
	if !ok {
		for _, f := range n.Updates {
			c.checkExpr(f.Value, nil)
		}
		return typesystem.Record{Name: rec.Name, Frozen: false}
	}
	for _, f := range n.Updates {
		declared, ok := def.FieldType(f.Name)
		if !ok {
			c.report(diagnostics.TUnknownField, n.Span(), "record %q has no field %q", rec.Name, f.Name)
			c.checkExpr(f.Value, nil)
			continue
		}
		vt := c.checkExpr(f.Value, declared)
		if !typesEqual(vt, declared) {
			c.report(diagnostics.TTypeMismatch, f.Value.Span(), "field %q: expected %s, got %s", f.Name, declared, vt)
		}
	}
	return typesystem.Record{Name: rec.Name, Frozen: false}
}

// checkFreeze implements spec §4.3.3's Freeze rule.
func (c *Checker) checkFreeze(n *ast.Freeze) typesystem.Type {
	vt := c.checkExpr(n.Value, nil)
	rec, ok := vt.(typesystem.Record)
	if !ok {
		c.report(diagnostics.TTypeMismatch, n.Span(), "freeze requires a record, got %s", vt)
		return typesystem.Unit{}
	}
	if rec.Frozen {
		c.report(diagnostics.TFreezeAlreadyFrozen, n.Span(), "record %q is already frozen", rec.Name)
		return rec
	}
	return typesystem.Record{Name: rec.Name, Frozen: true}
}

// checkFieldAccess implements `obj.field`; field access counts as a single
// use of obj (spec §4.3.2).
func (c *Checker) checkFieldAccess(n *ast.FieldAccess) typesystem.Type {
	baseType := c.checkExpr(n.Base, nil)
	rec, ok := baseType.(typesystem.Record)
	if !ok {
		c.report(diagnostics.TTypeMismatch, n.Span(), "field access requires a record, got %s", baseType)
		return typesystem.Unit{}
	}
	def, ok := c.Table.Records[rec.Name]
	if !ok {
		c.report(diagnostics.TUndefinedRecord, n.Span(), "undefined record %q", rec.Name)
		return typesystem.Unit{}
	}
	ft, ok := def.FieldType(n.Field)
	if !ok {
		c.report(diagnostics.TUnknownField, n.Span(), "record %q has no field %q", rec.Name, n.Field)
		return typesystem.Unit{}
	}
	return ft
}
