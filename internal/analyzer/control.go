package analyzer

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/typesystem"
)

// checkThen implements spec §4.3.4's Then rule: every condition must be
// Boolean; every branch must share one TypedType; a missing else forces
// that shared type to be Unit.
func (c *Checker) checkThen(n *ast.Then) typesystem.Type {
	c.checkBoolean(n.Cond, "then condition")
	result := c.checkBlock(n.ThenBody)
	for _, ei := range n.ElseIfs {
		c.checkBoolean(ei.Cond, "else-if condition")
		branchType := c.checkBlock(ei.Then)
		if !typesEqual(branchType, result) {
			c.report(diagnostics.TTypeMismatch, ei.Then.Span(), "else-if branch type %s differs from %s", branchType, result)
		}
	}
	if n.Else != nil {
		elseType := c.checkBlock(n.Else)
		if !typesEqual(elseType, result) {
			c.report(diagnostics.TTypeMismatch, n.Else.Span(), "else branch type %s differs from %s", elseType, result)
		}
		return result
	}
	if !typesEqual(result, typesystem.Unit{}) {
		c.report(diagnostics.TTypeMismatch, n.Span(), "then without else must produce Unit, got %s", result)
	}
	return typesystem.Unit{}
}

func (c *Checker) checkBoolean(e ast.Expr, what string) {
	t := c.checkExpr(e, typesystem.Boolean{})
	if !typesEqual(t, typesystem.Boolean{}) {
		c.report(diagnostics.TTypeMismatch, e.Span(), "%s must be Boolean, got %s", what, t)
	}
}

// checkWhile implements spec §4.3.4's While rule: Boolean condition, Unit
// result.
func (c *Checker) checkWhile(n *ast.While) typesystem.Type {
	c.checkBoolean(n.Cond, "while condition")
	c.checkBlock(n.Body)
	return typesystem.Unit{}
}

// checkMatch implements spec §4.3.4/§4.3.5/§4.3.6: each arm's pattern must
// be compatible with the scrutinee's type, all arm bodies must produce the
// same type, and the arm set must be exhaustive.
func (c *Checker) checkMatch(n *ast.Match) typesystem.Type {
	scrutType := c.checkExpr(n.Scrutinee, nil)
	var result typesystem.Type
	patterns := make([]ast.Pattern, len(n.Arms))
	for i, arm := range n.Arms {
		patterns[i] = arm.Pattern
		c.pushScope()
		c.checkPattern(arm.Pattern, scrutType)
		armType := c.checkBlock(arm.Body)
		c.popScope()
		if result == nil {
			result = armType
		} else if !typesEqual(armType, result) {
			c.report(diagnostics.TTypeMismatch, arm.Body.Span(), "match arm type %s differs from %s", armType, result)
		}
	}
	c.checkExhaustive(n.Span(), scrutType, patterns)
	if result == nil {
		return typesystem.Unit{}
	}
	return result
}
