package codegen

import (
	"fmt"
	"strings"

	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/typesystem"
)

// lowerExpr implements spec §4.4's lowering table, one case per row. Node
// kinds the table doesn't cover (Clone, Freeze, With, Lambda, string/char
// literals — all checked fully by the analyzer but out of THE CORE's
// code-generator scope) report NotImplemented rather than silently
// mis-lowering.
func (f *fnCtx) lowerExpr(e ast.Expr) (string, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return fmt.Sprintf("(i32.const %d)", n.Value), nil
	case *ast.FloatLit:
		return fmt.Sprintf("(f64.const %v)", n.Value), nil
	case *ast.BoolLit:
		if n.Value {
			return "(i32.const 1)", nil
		}
		return "(i32.const 0)", nil
	case *ast.UnitLit:
		return "(i32.const 0)", nil
	case *ast.Ident:
		if _, ok := f.types[n.Name]; !ok {
			return "", fail(diagnostics.GUndefinedVariable, n.Span(), "undefined local %q", n.Name)
		}
		return fmt.Sprintf("(local.get $%s)", n.Name), nil
	case *ast.Binary:
		return f.lowerBinary(n)
	case *ast.Call:
		return f.lowerCall(n)
	case *ast.Pipe:
		return f.lowerPipe(n)
	case *ast.Then:
		return f.lowerThen(n)
	case *ast.Block:
		return f.lowerBlockAsExpr(n, f.m.TypeOf[n])
	case *ast.RecordLit:
		return f.lowerRecordLit(n)
	case *ast.FieldAccess:
		return f.lowerFieldAccess(n)
	case *ast.ListLit:
		return f.lowerListLit(n)
	case *ast.ArrayLit:
		return f.lowerArrayLit(n)
	case *ast.SomeExpr:
		return f.lowerSome(n)
	case *ast.NoneExpr:
		return f.lowerNone()
	case *ast.While:
		return f.lowerWhile(n)
	case *ast.Match:
		return f.lowerMatch(n)
	default:
		return "", fail(diagnostics.GNotImplemented, e.Span(), "code generation for %T is not implemented", e)
	}
}

// lowerBlockAsExpr lowers a block's statements, dropping non-final
// expression-statement values (spec §4.4: "emit each stmt; drop non-final
// expression statements"), then emits the trailing expression or
// synthesizes resultType's zero value when the block has none.
func (f *fnCtx) lowerBlockAsExpr(b *ast.Block, resultType typesystem.Type) (string, error) {
	var sb strings.Builder
	for _, stmt := range b.Statements {
		code, err := f.lowerStmt(stmt)
		if err != nil {
			return "", err
		}
		sb.WriteString(code)
	}
	if b.Expr != nil {
		code, err := f.lowerExpr(b.Expr)
		if err != nil {
			return "", err
		}
		sb.WriteString("    " + code + "\n")
	} else {
		sb.WriteString("    " + zeroLiteral(resultType) + "\n")
	}
	return sb.String(), nil
}

func (f *fnCtx) lowerStmt(s ast.Stmt) (string, error) {
	switch st := s.(type) {
	case *ast.StmtBinding:
		code, err := f.lowerExpr(st.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("    (local.set $%s %s)\n", st.Name, code), nil
	case *ast.StmtAssignment:
		code, err := f.lowerExpr(st.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("    (local.set $%s %s)\n", st.Name, code), nil
	case *ast.StmtExpr:
		code, err := f.lowerExpr(st.Expr)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("    (drop %s)\n", code), nil
	default:
		return "", fail(diagnostics.GNotImplemented, s.Span(), "code generation for statement %T is not implemented", s)
	}
}

func (f *fnCtx) lowerBinary(n *ast.Binary) (string, error) {
	lcode, err := f.lowerExpr(n.Left)
	if err != nil {
		return "", err
	}
	rcode, err := f.lowerExpr(n.Right)
	if err != nil {
		return "", err
	}
	operandType := f.m.TypeOf[n.Left]
	instr, err := binaryInstr(n.Op, operandType)
	if err != nil {
		return "", fail(diagnostics.GUnsupportedType, n.Span(), "%s", err)
	}
	return fmt.Sprintf("(%s %s %s)", instr, lcode, rcode), nil
}

func binaryInstr(op ast.BinaryOp, t typesystem.Type) (string, error) {
	isFloat := wasmType(t) == "f64"
	switch op {
	case ast.OpAdd:
		if isFloat {
			return "f64.add", nil
		}
		return "i32.add", nil
	case ast.OpSub:
		if isFloat {
			return "f64.sub", nil
		}
		return "i32.sub", nil
	case ast.OpMul:
		if isFloat {
			return "f64.mul", nil
		}
		return "i32.mul", nil
	case ast.OpDiv:
		if isFloat {
			return "f64.div", nil
		}
		return "i32.div_s", nil
	case ast.OpMod:
		if isFloat {
			return "", fmt.Errorf("%% has no float lowering")
		}
		return "i32.rem_s", nil
	case ast.OpEq:
		if isFloat {
			return "f64.eq", nil
		}
		return "i32.eq", nil
	case ast.OpNe:
		if isFloat {
			return "f64.ne", nil
		}
		return "i32.ne", nil
	case ast.OpLt:
		if isFloat {
			return "f64.lt", nil
		}
		return "i32.lt_s", nil
	case ast.OpLe:
		if isFloat {
			return "f64.le", nil
		}
		return "i32.le_s", nil
	case ast.OpGt:
		if isFloat {
			return "f64.gt", nil
		}
		return "i32.gt_s", nil
	case ast.OpGe:
		if isFloat {
			return "f64.ge", nil
		}
		return "i32.ge_s", nil
	}
	return "", fmt.Errorf("unknown binary operator %v", op)
}

// lowerCall resolves the same record-method-first priority the checker's
// resolveCallee uses, so a method call and a same-named free function never
// collide at the WAT level either.
func (f *fnCtx) lowerCall(n *ast.Call) (string, error) {
	id, ok := n.Func.(*ast.Ident)
	if !ok {
		return "", fail(diagnostics.GNotImplemented, n.Span(), "calling a non-named function value is not implemented")
	}
	argCodes := make([]string, len(n.Args))
	for i, a := range n.Args {
		code, err := f.lowerExpr(a)
		if err != nil {
			return "", err
		}
		argCodes[i] = code
	}
	target := f.resolveCalleeFuncName(id.Name, n.Args)
	return fmt.Sprintf("(call %s %s)", target, strings.Join(argCodes, " ")), nil
}

func (f *fnCtx) resolveCalleeFuncName(name string, args []ast.Expr) string {
	if len(args) > 0 {
		if rec, ok := f.m.TypeOf[args[0]].(typesystem.Record); ok {
			if methods, ok := f.m.Table.Methods[rec.Name]; ok {
				if _, ok := methods[name]; ok {
					return methodFuncName(rec.Name, name)
				}
			}
		}
	}
	return "$" + name
}

// lowerPipe implements both pipe rows of spec §4.4's table: `e |> name`
// binds (or, when name names a method of the source's record type or a
// top-level function, calls it — in the checker's own resolution order, see
// DESIGN.md; a local holding a lambda is not called), `e |> f` always calls.
func (f *fnCtx) lowerPipe(n *ast.Pipe) (string, error) {
	srcCode, err := f.lowerExpr(n.Source)
	if err != nil {
		return "", err
	}
	if n.TargetIdent != "" {
		_, isFunc := f.m.Table.Functions[n.TargetIdent]
		target := f.resolveCalleeFuncName(n.TargetIdent, []ast.Expr{n.Source})
		if isFunc || target != "$"+n.TargetIdent {
			return fmt.Sprintf("(call %s %s)", target, srcCode), nil
		}
		return fmt.Sprintf("(local.tee $%s %s)", n.TargetIdent, srcCode), nil
	}
	id, ok := n.TargetExpr.(*ast.Ident)
	if !ok {
		return "", fail(diagnostics.GNotImplemented, n.Span(), "pipe target must name a function")
	}
	return fmt.Sprintf("(call $%s %s)", id.Name, srcCode), nil
}

// lowerThen implements the if/else-if/else chain by folding from the
// innermost alternative outward (spec §4.4: "missing else yields 0-of-T").
func (f *fnCtx) lowerThen(n *ast.Then) (string, error) {
	resultType := f.m.TypeOf[n]
	wt := wasmType(resultType)

	var elseCode string
	if n.Else != nil {
		code, err := f.lowerBlockAsExpr(n.Else, resultType)
		if err != nil {
			return "", err
		}
		elseCode = code
	} else {
		elseCode = "    " + zeroLiteral(resultType) + "\n"
	}

	branches := append([]ast.ElseIf{{Cond: n.Cond, Then: n.ThenBody}}, n.ElseIfs...)
	for i := len(branches) - 1; i >= 0; i-- {
		condCode, err := f.lowerExpr(branches[i].Cond)
		if err != nil {
			return "", err
		}
		thenCode, err := f.lowerBlockAsExpr(branches[i].Then, resultType)
		if err != nil {
			return "", err
		}
		elseCode = fmt.Sprintf("(if (result %s) %s\n  (then\n%s  )\n  (else\n%s  ))\n", wt, condCode, thenCode, elseCode)
	}
	return elseCode, nil
}

// lowerWhile follows spec §4.4's literal skeleton: a labeled block wrapping
// a loop that branches out on a false condition. While always produces
// Unit.
func (f *fnCtx) lowerWhile(n *ast.While) (string, error) {
	condCode, err := f.lowerExpr(n.Cond)
	if err != nil {
		return "", err
	}
	bodyCode, err := f.lowerBlockAsExpr(n.Body, typesystem.Unit{})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(block\n  (loop\n    (br_if 1 (i32.eqz %s))\n    (drop\n%s    )\n    (br 0)\n  )\n)\n(i32.const 0)\n", condCode, bodyCode), nil
}

// lowerRecordLit allocates a packed struct and stores each field at its
// declared offset (spec §6: "Records are packed structs in declaration
// order at 4-byte offsets").
func (f *fnCtx) lowerRecordLit(n *ast.RecordLit) (string, error) {
	layout, ok := f.m.layouts[n.Name]
	if !ok {
		return "", fail(diagnostics.GUnsupportedType, n.Span(), "no layout for record %q", n.Name)
	}
	def := f.m.Table.Records[n.Name]
	ptr := f.freshLocal("rec", typesystem.Int32{})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("(local.set $%s (call $allocate (i32.const %d)))\n", ptr, layout.Size))
	for _, field := range n.Fields {
		valCode, err := f.lowerExpr(field.Value)
		if err != nil {
			return "", err
		}
		offset := layout.Offset[field.Name]
		store := "i32.store"
		if ft, ok := def.FieldType(field.Name); ok && wasmType(ft) == "f64" {
			store = "f64.store"
		}
		sb.WriteString(fmt.Sprintf("(%s (i32.add (local.get $%s) (i32.const %d)) %s)\n", store, ptr, offset, valCode))
	}
	sb.WriteString(fmt.Sprintf("(local.get $%s)\n", ptr))
	return sb.String(), nil
}

func (f *fnCtx) lowerFieldAccess(n *ast.FieldAccess) (string, error) {
	baseCode, err := f.lowerExpr(n.Base)
	if err != nil {
		return "", err
	}
	baseType, ok := f.m.TypeOf[n.Base].(typesystem.Record)
	if !ok {
		return "", fail(diagnostics.GUnsupportedType, n.Span(), "field access on non-record type %s", f.m.TypeOf[n.Base])
	}
	layout, ok := f.m.layouts[baseType.Name]
	if !ok {
		return "", fail(diagnostics.GUnsupportedType, n.Span(), "no layout for record %q", baseType.Name)
	}
	offset, ok := layout.Offset[n.Field]
	if !ok {
		return "", fail(diagnostics.GUnsupportedType, n.Span(), "record %q has no field %q", baseType.Name, n.Field)
	}
	def := f.m.Table.Records[baseType.Name]
	load := "i32.load"
	if ft, ok := def.FieldType(n.Field); ok && wasmType(ft) == "f64" {
		load = "f64.load"
	}
	return fmt.Sprintf("(%s (i32.add %s (i32.const %d)))", load, baseCode, offset), nil
}

// lowerListLit emits `[i32 length][i32 element...]` (spec §6).
func (f *fnCtx) lowerListLit(n *ast.ListLit) (string, error) {
	size := 4 + 4*len(n.Elements)
	ptr := f.freshLocal("list", typesystem.Int32{})
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("(local.set $%s (call $allocate (i32.const %d)))\n", ptr, size))
	sb.WriteString(fmt.Sprintf("(i32.store (local.get $%s) (i32.const %d))\n", ptr, len(n.Elements)))
	for i, el := range n.Elements {
		code, err := f.lowerExpr(el)
		if err != nil {
			return "", err
		}
		offset := 4 + 4*i
		sb.WriteString(fmt.Sprintf("(i32.store (i32.add (local.get $%s) (i32.const %d)) %s)\n", ptr, offset, code))
	}
	sb.WriteString(fmt.Sprintf("(local.get $%s)\n", ptr))
	return sb.String(), nil
}

// lowerArrayLit emits a raw element sequence with no length prefix (spec
// §6); an empty array lowers to a null pointer (spec §4.4).
func (f *fnCtx) lowerArrayLit(n *ast.ArrayLit) (string, error) {
	if len(n.Elements) == 0 {
		return "(i32.const 0)", nil
	}
	size := 4 * len(n.Elements)
	ptr := f.freshLocal("array", typesystem.Int32{})
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("(local.set $%s (call $allocate (i32.const %d)))\n", ptr, size))
	for i, el := range n.Elements {
		code, err := f.lowerExpr(el)
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf("(i32.store (i32.add (local.get $%s) (i32.const %d)) %s)\n", ptr, 4*i, code))
	}
	sb.WriteString(fmt.Sprintf("(local.get $%s)\n", ptr))
	return sb.String(), nil
}

// lowerSome/lowerNone emit `[i32 tag][i32 payload]` (spec §6).
func (f *fnCtx) lowerSome(n *ast.SomeExpr) (string, error) {
	payloadCode, err := f.lowerExpr(n.Value)
	if err != nil {
		return "", err
	}
	ptr := f.freshLocal("opt", typesystem.Int32{})
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("(local.set $%s (call $allocate (i32.const 8)))\n", ptr))
	sb.WriteString(fmt.Sprintf("(i32.store (local.get $%s) (i32.const 1))\n", ptr))
	sb.WriteString(fmt.Sprintf("(i32.store (i32.add (local.get $%s) (i32.const 4)) %s)\n", ptr, payloadCode))
	sb.WriteString(fmt.Sprintf("(local.get $%s)\n", ptr))
	return sb.String(), nil
}

func (f *fnCtx) lowerNone() (string, error) {
	ptr := f.freshLocal("opt", typesystem.Int32{})
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("(local.set $%s (call $allocate (i32.const 8)))\n", ptr))
	sb.WriteString(fmt.Sprintf("(i32.store (local.get $%s) (i32.const 0))\n", ptr))
	sb.WriteString(fmt.Sprintf("(i32.store (i32.add (local.get $%s) (i32.const 4)) (i32.const 0))\n", ptr))
	sb.WriteString(fmt.Sprintf("(local.get $%s)\n", ptr))
	return sb.String(), nil
}
