package codegen

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/typesystem"
)

// localDecl is one WASM local slot: a parameter or a collected `val`
// binding.
type localDecl struct {
	Name string
	Type typesystem.Type
}

// collectLocals implements spec §4.4's pre-pass: walk a function body and
// gather every `val` binding, including ones in nested blocks, into an
// ordered list. Parameters occupy the first local indices (added by the
// caller); this only gathers the bindings that follow them.
func (m *Module) collectLocals(body *ast.Block) []localDecl {
	var out []localDecl
	m.walkBlockLocals(body, &out)
	return out
}

func (m *Module) walkBlockLocals(b *ast.Block, out *[]localDecl) {
	for _, stmt := range b.Statements {
		m.walkStmtLocals(stmt, out)
	}
	if b.Expr != nil {
		m.walkExprLocals(b.Expr, out)
	}
}

func (m *Module) walkStmtLocals(s ast.Stmt, out *[]localDecl) {
	switch st := s.(type) {
	case *ast.StmtBinding:
		*out = append(*out, localDecl{Name: st.Name, Type: m.TypeOf[st.Value]})
		m.walkExprLocals(st.Value, out)
	case *ast.StmtAssignment:
		m.walkExprLocals(st.Value, out)
	case *ast.StmtExpr:
		m.walkExprLocals(st.Expr, out)
	}
}

// walkExprLocals descends into every sub-block a val binding could hide in:
// block expressions, then/else-if/else bodies, while bodies, match arm
// bodies, and with-bodies, and also into the operands of binary, call, pipe,
// record/list/array literal, Some and field-access expressions, since any
// operand may itself be a block. A pipe whose target is a fresh binding
// (`e |> name`) also reserves a local for name.
func (m *Module) walkExprLocals(e ast.Expr, out *[]localDecl) {
	switch n := e.(type) {
	case *ast.Block:
		m.walkBlockLocals(n, out)
	case *ast.Then:
		m.walkExprLocals(n.Cond, out)
		m.walkBlockLocals(n.ThenBody, out)
		for _, ei := range n.ElseIfs {
			m.walkExprLocals(ei.Cond, out)
			m.walkBlockLocals(ei.Then, out)
		}
		if n.Else != nil {
			m.walkBlockLocals(n.Else, out)
		}
	case *ast.While:
		m.walkExprLocals(n.Cond, out)
		m.walkBlockLocals(n.Body, out)
	case *ast.Match:
		m.walkExprLocals(n.Scrutinee, out)
		scrutType := m.TypeOf[n.Scrutinee]
		for _, arm := range n.Arms {
			bindPatternLocals(arm.Pattern, scrutType, m, out)
			m.walkBlockLocals(arm.Body, out)
		}
	case *ast.With:
		m.walkBlockLocals(n.Body, out)
	case *ast.Binary:
		m.walkExprLocals(n.Left, out)
		m.walkExprLocals(n.Right, out)
	case *ast.Call:
		m.walkExprLocals(n.Func, out)
		for _, a := range n.Args {
			m.walkExprLocals(a, out)
		}
	case *ast.Pipe:
		m.walkExprLocals(n.Source, out)
		if _, isFunc := m.Table.Functions[n.TargetIdent]; n.TargetIdent != "" && !isFunc {
			*out = append(*out, localDecl{Name: n.TargetIdent, Type: m.TypeOf[n.Source]})
		}
	case *ast.RecordLit:
		for _, f := range n.Fields {
			m.walkExprLocals(f.Value, out)
		}
	case *ast.FieldAccess:
		m.walkExprLocals(n.Base, out)
	case *ast.ListLit:
		for _, el := range n.Elements {
			m.walkExprLocals(el, out)
		}
	case *ast.ArrayLit:
		for _, el := range n.Elements {
			m.walkExprLocals(el, out)
		}
	case *ast.SomeExpr:
		m.walkExprLocals(n.Value, out)
	}
}

// bindPatternLocals reserves a correctly-typed local slot for every
// identifier a match pattern binds (spec §4.4's match lowering: "Ident adds
// a local.set"), walking the scrutinee type alongside the pattern the same
// way the checker's checkPattern does (spec §4.3.5's pattern-typing table).
func bindPatternLocals(p ast.Pattern, st typesystem.Type, m *Module, out *[]localDecl) {
	switch pat := p.(type) {
	case *ast.IdentPattern:
		*out = append(*out, localDecl{Name: pat.Name, Type: st})
	case *ast.SomePattern:
		if opt, ok := st.(typesystem.Option); ok {
			bindPatternLocals(pat.Inner, opt.Elem, m, out)
		}
	case *ast.ListConsPattern:
		if lst, ok := st.(typesystem.List); ok {
			bindPatternLocals(pat.Head, lst.Elem, m, out)
			bindPatternLocals(pat.Tail, st, m, out)
		}
	case *ast.ListExactPattern:
		if lst, ok := st.(typesystem.List); ok {
			for _, el := range pat.Elements {
				bindPatternLocals(el, lst.Elem, m, out)
			}
		}
	case *ast.RecordPattern:
		def, ok := m.Table.Records[pat.Name]
		if !ok {
			return
		}
		for _, f := range pat.Fields {
			if ft, ok := def.FieldType(f.Name); ok {
				bindPatternLocals(f.Pattern, ft, m, out)
			}
		}
	}
}
