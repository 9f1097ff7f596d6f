package analyzer

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/source"
	"github.com/restrict-lang/rlc/internal/typesystem"
)

// checkExhaustive implements spec §4.3.6: a wildcard or identifier pattern
// alone makes any arm set exhaustive; otherwise the scrutinee type dictates
// specific coverage rules (a List needs both a `[]` arm and a `[h | t]` arm).
func (c *Checker) checkExhaustive(span source.Span, st typesystem.Type, patterns []ast.Pattern) {
	for _, p := range patterns {
		switch p.(type) {
		case *ast.WildcardPattern, *ast.IdentPattern:
			return
		}
	}

	switch st.(type) {
	case typesystem.Boolean:
		var hasTrue, hasFalse bool
		for _, p := range patterns {
			lit, ok := p.(*ast.LiteralPattern)
			if !ok {
				continue
			}
			if b, ok := lit.Value.(*ast.BoolLit); ok {
				if b.Value {
					hasTrue = true
				} else {
					hasFalse = true
				}
			}
		}
		if !hasTrue || !hasFalse {
			c.report(diagnostics.TNonExhaustiveMatch, span, "match on Boolean must cover both true and false")
		}
	case typesystem.Option:
		var hasSome, hasNone bool
		for _, p := range patterns {
			switch p.(type) {
			case *ast.SomePattern:
				hasSome = true
			case *ast.NonePattern:
				hasNone = true
			}
		}
		if !hasSome || !hasNone {
			c.report(diagnostics.TNonExhaustiveMatch, span, "match on Option must cover both Some(_) and None")
		}
	case typesystem.Unit:
		hasUnit := false
		for _, p := range patterns {
			if lit, ok := p.(*ast.LiteralPattern); ok {
				if _, ok := lit.Value.(*ast.UnitLit); ok {
					hasUnit = true
				}
			}
		}
		if !hasUnit {
			c.report(diagnostics.TNonExhaustiveMatch, span, "match on Unit must cover the literal Unit value")
		}
	case typesystem.List:
		var hasEmpty, hasCons bool
		for _, p := range patterns {
			switch p.(type) {
			case *ast.EmptyListPattern:
				hasEmpty = true
			case *ast.ListConsPattern:
				hasCons = true
			}
		}
		if !hasEmpty || !hasCons {
			c.report(diagnostics.TNonExhaustiveMatch, span, "match on List must cover both [] and [h | t]")
		}
	default:
		c.report(diagnostics.TNonExhaustiveMatch, span, "match on %s requires a wildcard or identifier arm", st)
	}
}
