// Package analyzer implements THE CORE's type checker (spec §4.3): two
// entry points over a parsed Program — CheckProgram (strict, stops at the
// first diagnostic) and CheckProgramCollecting (gathers every diagnostic,
// deduplicated by the teacher's errorSet key pattern) — built on a two-pass
// register-then-check design (spec §4.3.1).
package analyzer

import (
	"fmt"

	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/source"
	"github.com/restrict-lang/rlc/internal/symbols"
	"github.com/restrict-lang/rlc/internal/typesystem"
)

// varBinding tracks one variable's declared type and its affine-use state
// (spec §4.3.2).
type varBinding struct {
	Type    typesystem.Type
	Mutable bool
	Used    bool
}

// Checker walks a Program and produces TypedType annotations, validating
// every rule in spec §4.3.
type Checker struct {
	Table *symbols.Table

	scopes       []map[string]*varBinding
	typeParams   []map[string]bool
	traitBounds  []map[string][]string
	contextStack []string

	collecting bool
	errorSet   map[string]*diagnostics.DiagnosticError

	// TypeOf records the TypedType inferred for each expression node, for
	// use by the code generator's lowering pass.
	TypeOf map[ast.Expr]typesystem.Type
}

// stopChecking is the strict-mode panic sentinel (mirrors the parser's
// stopParsing), unwinding to CheckProgram's recover on the first error.
type stopChecking struct{ err *diagnostics.DiagnosticError }

func newChecker(collecting bool) *Checker {
	c := &Checker{
		Table:      symbols.New(),
		collecting: collecting,
		errorSet:   map[string]*diagnostics.DiagnosticError{},
		TypeOf:     map[ast.Expr]typesystem.Type{},
	}
	c.pushScope()
	return c
}

func (c *Checker) pushScope() {
	c.scopes = append(c.scopes, map[string]*varBinding{})
	c.typeParams = append(c.typeParams, map[string]bool{})
	c.traitBounds = append(c.traitBounds, map[string][]string{})
}

func (c *Checker) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
	c.typeParams = c.typeParams[:len(c.typeParams)-1]
	c.traitBounds = c.traitBounds[:len(c.traitBounds)-1]
}

func (c *Checker) declareVar(name string, t typesystem.Type, mutable bool) {
	c.scopes[len(c.scopes)-1][name] = &varBinding{Type: t, Mutable: mutable}
}

func (c *Checker) lookupVar(name string) (*varBinding, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if b, ok := c.scopes[i][name]; ok {
			return b, true
		}
	}
	return nil, false
}

func (c *Checker) declareTypeParam(name string, bounds []string) {
	c.typeParams[len(c.typeParams)-1][name] = true
	if len(bounds) > 0 {
		c.traitBounds[len(c.traitBounds)-1][name] = bounds
	}
}

func (c *Checker) isTypeParam(name string) bool {
	for i := len(c.typeParams) - 1; i >= 0; i-- {
		if c.typeParams[i][name] {
			return true
		}
	}
	return false
}

// report records a diagnostic. In collecting mode it continues; in strict
// mode it panics to unwind to CheckProgram's recover.
func (c *Checker) report(code diagnostics.Code, span source.Span, format string, args ...interface{}) {
	d := diagnostics.New(diagnostics.PhaseChecker, code, span, format, args...)
	if c.collecting {
		c.errorSet[d.Key()] = d
		return
	}
	panic(stopChecking{d})
}

// CheckProgram type-checks prog strictly: the first violated rule aborts and
// is returned.
func CheckProgram(prog *ast.Program) (c *Checker, err error) {
	chk := newChecker(false)
	defer func() {
		if r := recover(); r != nil {
			sc, ok := r.(stopChecking)
			if !ok {
				panic(r)
			}
			err = sc.err
		}
	}()
	chk.checkProgram(prog)
	return chk, nil
}

// CheckProgramCollecting type-checks prog, gathering every diagnostic rather
// than stopping at the first (spec §4.3's editor-pipeline variant).
func CheckProgramCollecting(prog *ast.Program) (*Checker, []*diagnostics.DiagnosticError) {
	chk := newChecker(true)
	func() {
		defer func() {
			// Collecting mode reports without panicking, so this only
			// catches a stopChecking sentinel should one escape, and keeps
			// it as one more diagnostic. Any other panic (e.g. from a nil
			// AST node) is re-raised.
			if r := recover(); r != nil {
				if sc, ok := r.(stopChecking); ok {
					chk.errorSet[sc.err.Key()] = sc.err
					return
				}
				panic(r)
			}
		}()
		chk.checkProgram(prog)
	}()
	out := make([]*diagnostics.DiagnosticError, 0, len(chk.errorSet))
	for _, d := range chk.errorSet {
		out = append(out, d)
	}
	return chk, out
}

// checkProgram implements the two-pass design of spec §4.3.1's
// check_program: pass 1 registers every record/context/function signature
// (return type defaulted to Int32 until pass 2 refines it); pass 2
// type-checks each declaration's body in source order.
func (c *Checker) checkProgram(prog *ast.Program) {
	// Pre-seed record/context names before resolving any field types, so a
	// field can name a record or context declared later in the file.
	for _, decl := range prog.Declarations {
		switch d := unwrapExport(decl).(type) {
		case *ast.RecordDecl:
			c.Table.DeclareRecord(&symbols.RecordDef{Name: d.Name})
		case *ast.ContextDecl:
			c.Table.DeclareContext(&symbols.ContextDef{Name: d.Name})
		}
	}
	for _, decl := range prog.Declarations {
		c.registerDecl(unwrapExport(decl))
	}
	for _, decl := range prog.Declarations {
		c.checkDecl(unwrapExport(decl))
	}
}

func unwrapExport(d ast.TopDecl) ast.TopDecl {
	if e, ok := d.(*ast.Export); ok {
		return e.Decl
	}
	return d
}

func (c *Checker) registerDecl(decl ast.TopDecl) {
	switch d := decl.(type) {
	case *ast.RecordDecl:
		c.registerRecord(d)
	case *ast.ContextDecl:
		c.registerContext(d)
	case *ast.FunDecl:
		c.registerFunc(d, "")
	case *ast.ImplDecl:
		for _, m := range d.Methods {
			c.registerFunc(m, d.TargetName)
		}
	case *ast.BindDecl:
		// Top-level bindings are checked in pass 2 directly; nothing to
		// pre-register (spec §4.3.1 only calls out records and functions).
	default:
		panic(fmt.Sprintf("analyzer: unknown top-level declaration %T", decl))
	}
}

func (c *Checker) checkDecl(decl ast.TopDecl) {
	switch d := decl.(type) {
	case *ast.RecordDecl:
		// Fully handled during registration; field types were already
		// resolved there.
	case *ast.ContextDecl:
		// Likewise fully handled during registration.
	case *ast.FunDecl:
		c.checkFunBody(d, "")
	case *ast.ImplDecl:
		for _, m := range d.Methods {
			c.checkFunBody(m, d.TargetName)
		}
	case *ast.BindDecl:
		c.checkExpr(d.Value, nil)
	}
}
