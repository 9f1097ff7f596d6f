package analyzer

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/typesystem"
)

// checkExpr implements spec §4.3.1's check_expr(e, expected?): it returns e's
// TypedType, threading an optional expected type through for empty literals,
// lambda parameter inference, and numeric arithmetic.
func (c *Checker) checkExpr(e ast.Expr, expected typesystem.Type) typesystem.Type {
	t := c.checkExprInner(e, expected)
	c.TypeOf[e] = t
	return t
}

func (c *Checker) checkExprInner(e ast.Expr, expected typesystem.Type) typesystem.Type {
	switch n := e.(type) {
	case *ast.IntLit:
		return typesystem.Int32{}
	case *ast.FloatLit:
		return typesystem.Float64{}
	case *ast.StringLit:
		return typesystem.Str{}
	case *ast.CharLit:
		return typesystem.Char{}
	case *ast.BoolLit:
		return typesystem.Boolean{}
	case *ast.UnitLit:
		return typesystem.Unit{}
	case *ast.Ident:
		return c.checkIdent(n)
	case *ast.Block:
		return c.checkBlock(n)
	case *ast.RecordLit:
		return c.checkRecordLit(n)
	case *ast.Clone:
		return c.checkClone(n)
	case *ast.Freeze:
		return c.checkFreeze(n)
	case *ast.FieldAccess:
		return c.checkFieldAccess(n)
	case *ast.Then:
		return c.checkThen(n)
	case *ast.While:
		return c.checkWhile(n)
	case *ast.Match:
		return c.checkMatch(n)
	case *ast.Binary:
		return c.checkBinary(n, expected)
	case *ast.Call:
		return c.checkCall(n)
	case *ast.Pipe:
		return c.checkPipe(n)
	case *ast.With:
		return c.checkWith(n)
	case *ast.ListLit:
		return c.checkListLit(n, expected)
	case *ast.ArrayLit:
		return c.checkArrayLit(n, expected)
	case *ast.SomeExpr:
		return c.checkSomeExpr(n, expected)
	case *ast.NoneExpr:
		return c.checkNoneExpr(expected, n.Span())
	case *ast.Lambda:
		return c.checkLambda(n, expected)
	default:
		c.report(diagnostics.TUnsupportedFeature, e.Span(), "unsupported expression %T", e)
		return typesystem.Unit{}
	}
}

// checkIdent implements the affine-use rule (spec §4.3.2): a non-mutable
// binding's first reference marks it used; a second reference is rejected.
func (c *Checker) checkIdent(n *ast.Ident) typesystem.Type {
	b, ok := c.lookupVar(n.Name)
	if !ok {
		c.report(diagnostics.TUndefinedVariable, n.Span(), "undefined variable %q", n.Name)
		return typesystem.Unit{}
	}
	if !b.Mutable {
		if b.Used {
			c.report(diagnostics.TAffineViolation, n.Span(), "%q was already used", n.Name)
			return b.Type
		}
		b.Used = true
	}
	return b.Type
}

// checkBlock threads statement-by-statement checking through a fresh scope,
// giving the block Unit type when it has no trailing expression (spec
// §4.2's parseBlock note, formalized in §4.3.4).
func (c *Checker) checkBlock(b *ast.Block) typesystem.Type {
	c.pushScope()
	defer c.popScope()
	for _, stmt := range b.Statements {
		c.checkStmt(stmt)
	}
	if b.Expr == nil {
		return typesystem.Unit{}
	}
	return c.checkExpr(b.Expr, nil)
}

func (c *Checker) checkStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.StmtBinding:
		vt := c.checkExpr(st.Value, nil)
		c.declareVar(st.Name, vt, st.Mutable)
	case *ast.StmtAssignment:
		c.checkAssignment(st)
	case *ast.StmtExpr:
		c.checkExpr(st.Expr, nil)
	}
}

// checkAssignment implements `name = expr` (spec §4.3.2): requires a
// mutable binding and a type-matching value.
func (c *Checker) checkAssignment(s *ast.StmtAssignment) {
	b, ok := c.lookupVar(s.Name)
	if !ok {
		c.report(diagnostics.TUndefinedVariable, s.Span(), "undefined variable %q", s.Name)
		c.checkExpr(s.Value, nil)
		return
	}
	if !b.Mutable {
		c.report(diagnostics.TImmutableReassign, s.Span(), "%q is not mutable", s.Name)
	}
	vt := c.checkExpr(s.Value, b.Type)
	if !typesEqual(vt, b.Type) {
		c.report(diagnostics.TTypeMismatch, s.Span(), "cannot assign %s to %q of type %s", vt, s.Name, b.Type)
	}
}

func (c *Checker) checkBinary(n *ast.Binary, expected typesystem.Type) typesystem.Type {
	var elemExpected typesystem.Type
	if isArithOp(n.Op) {
		elemExpected = expected
	}
	lt := c.checkExpr(n.Left, elemExpected)
	rt := c.checkExpr(n.Right, lt)
	if !typesEqual(lt, rt) {
		c.report(diagnostics.TTypeMismatch, n.Span(), "operator %s: mismatched operand types %s and %s", n.Op, lt, rt)
	}
	if isComparisonOp(n.Op) {
		return typesystem.Boolean{}
	}
	return lt
}

func isArithOp(op ast.BinaryOp) bool {
	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return true
	}
	return false
}

func isComparisonOp(op ast.BinaryOp) bool {
	switch op {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return true
	}
	return false
}

// typesEqual compares two TypedTypes structurally, the way the checker's
// (occurs-check-free) unification treats fully-concrete types.
func typesEqual(a, b typesystem.Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	_, err := typesystem.Unify(a, b)
	return err == nil
}
