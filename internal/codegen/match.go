package codegen

import (
	"fmt"
	"strings"

	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/typesystem"
)

// lowerMatch implements spec §4.4's match lowering: the scrutinee is
// computed into a temporary, and each arm in order contributes a guard
// predicate synthesized from its pattern; the first matching arm's body is
// the match's value. Exhaustiveness is already guaranteed by the checker
// (spec §4.3.6), so the final fallback is `unreachable` rather than a
// synthesized zero value.
func (f *fnCtx) lowerMatch(n *ast.Match) (string, error) {
	scrutCode, err := f.lowerExpr(n.Scrutinee)
	if err != nil {
		return "", err
	}
	scrutType := f.m.TypeOf[n.Scrutinee]
	resultType := f.m.TypeOf[n]
	wt := wasmType(resultType)

	scrutLocal := f.freshLocal("scrut", scrutType)
	elseCode := "(unreachable)\n"
	for i := len(n.Arms) - 1; i >= 0; i-- {
		arm := n.Arms[i]
		guardCode, err := f.matchGuard(arm.Pattern, scrutLocal, scrutType)
		if err != nil {
			return "", err
		}
		bodyCode, err := f.lowerBlockAsExpr(arm.Body, resultType)
		if err != nil {
			return "", err
		}
		elseCode = fmt.Sprintf("(if (result %s) %s\n  (then\n%s  )\n  (else\n%s  ))\n", wt, guardCode, bodyCode, elseCode)
	}
	return fmt.Sprintf("(local.set $%s %s)\n%s", scrutLocal, scrutCode, elseCode), nil
}

// matchGuard returns a self-contained i32-valued WAT expression that is 1
// when p matches the value held in carrierLocal (typed st), binding any
// names the pattern introduces as a side effect of evaluating true.
func (f *fnCtx) matchGuard(p ast.Pattern, carrierLocal string, st typesystem.Type) (string, error) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return "(i32.const 1)", nil
	case *ast.IdentPattern:
		return fmt.Sprintf("(block (result i32) (local.set $%s (local.get $%s)) (i32.const 1))", pat.Name, carrierLocal), nil
	case *ast.LiteralPattern:
		litCode, err := f.lowerExpr(pat.Value)
		if err != nil {
			return "", err
		}
		instr, err := binaryInstr(ast.OpEq, st)
		if err != nil {
			return "", fail(diagnostics.GUnsupportedType, p.Span(), "%s", err)
		}
		return fmt.Sprintf("(%s (local.get $%s) %s)", instr, carrierLocal, litCode), nil
	case *ast.SomePattern:
		opt, ok := st.(typesystem.Option)
		if !ok {
			return "", fail(diagnostics.GUnsupportedType, p.Span(), "Some pattern against non-Option type %s", st)
		}
		payloadLocal := f.freshLocal("payload", opt.Elem)
		innerGuard, err := f.matchGuard(pat.Inner, payloadLocal, opt.Elem)
		if err != nil {
			return "", err
		}
		tagCheck := fmt.Sprintf("(i32.eq (i32.load (local.get $%s)) (i32.const 1))", carrierLocal)
		setup := fmt.Sprintf("(local.set $%s (i32.load (i32.add (local.get $%s) (i32.const 4))))\n%s", payloadLocal, carrierLocal, innerGuard)
		return guardAnd(tagCheck, setup), nil
	case *ast.NonePattern:
		return fmt.Sprintf("(i32.eq (i32.load (local.get $%s)) (i32.const 0))", carrierLocal), nil
	case *ast.EmptyListPattern:
		return fmt.Sprintf("(i32.eq (i32.load (local.get $%s)) (i32.const 0))", carrierLocal), nil
	case *ast.ListConsPattern:
		return f.matchListCons(pat, carrierLocal, st)
	case *ast.ListExactPattern:
		return f.matchListExact(pat, carrierLocal, st)
	case *ast.RecordPattern:
		return f.matchRecord(pat, carrierLocal, st)
	default:
		return "", fail(diagnostics.GNotImplemented, p.Span(), "match pattern %T is not implemented", p)
	}
}

// guardAnd short-circuits: condA gates whether condBBody (an i32-valued WAT
// expression, possibly with local.set setup statements ahead of its final
// value) is even evaluated.
func guardAnd(condA, condBBody string) string {
	return fmt.Sprintf("(if (result i32) %s (then %s) (else (i32.const 0)))", condA, condBBody)
}

func (f *fnCtx) matchListCons(pat *ast.ListConsPattern, carrierLocal string, st typesystem.Type) (string, error) {
	lst, ok := st.(typesystem.List)
	if !ok {
		return "", fail(diagnostics.GUnsupportedType, pat.Span(), "[h|t] pattern against non-List type %s", st)
	}
	lenCheck := fmt.Sprintf("(i32.gt_s (i32.load (local.get $%s)) (i32.const 0))", carrierLocal)

	headLocal := f.freshLocal("head", lst.Elem)
	tailLenLocal := f.freshLocal("taillen", typesystem.Int32{})
	tailLocal := f.freshLocal("tail", lst)

	headGuard, err := f.matchGuard(pat.Head, headLocal, lst.Elem)
	if err != nil {
		return "", err
	}
	tailGuard, err := f.matchGuard(pat.Tail, tailLocal, lst)
	if err != nil {
		return "", err
	}

	setup := fmt.Sprintf(`(local.set $%s (i32.load (i32.add (local.get $%s) (i32.const 4))))
(local.set $%s (i32.sub (i32.load (local.get $%s)) (i32.const 1)))
(local.set $%s (call $allocate (i32.add (i32.mul (local.get $%s) (i32.const 4)) (i32.const 4))))
(i32.store (local.get $%s) (local.get $%s))
(memory.copy (i32.add (local.get $%s) (i32.const 4)) (i32.add (local.get $%s) (i32.const 8)) (i32.mul (local.get $%s) (i32.const 4)))`,
		headLocal, carrierLocal,
		tailLenLocal, carrierLocal,
		tailLocal, tailLenLocal,
		tailLocal, tailLenLocal,
		tailLocal, carrierLocal, tailLenLocal)

	combined := fmt.Sprintf("(block (result i32)\n%s\n(i32.and %s %s)\n)", setup, headGuard, tailGuard)
	return guardAnd(lenCheck, combined), nil
}

func (f *fnCtx) matchListExact(pat *ast.ListExactPattern, carrierLocal string, st typesystem.Type) (string, error) {
	lst, ok := st.(typesystem.List)
	if !ok {
		return "", fail(diagnostics.GUnsupportedType, pat.Span(), "list pattern against non-List type %s", st)
	}
	lenCheck := fmt.Sprintf("(i32.eq (i32.load (local.get $%s)) (i32.const %d))", carrierLocal, len(pat.Elements))

	var setups []string
	guards := make([]string, len(pat.Elements))
	for i, el := range pat.Elements {
		elLocal := f.freshLocal("elem", lst.Elem)
		offset := 4 + 4*i
		setups = append(setups, fmt.Sprintf("(local.set $%s (i32.load (i32.add (local.get $%s) (i32.const %d))))", elLocal, carrierLocal, offset))
		g, err := f.matchGuard(el, elLocal, lst.Elem)
		if err != nil {
			return "", err
		}
		guards[i] = g
	}
	combined := fmt.Sprintf("(block (result i32)\n%s\n%s\n)", strings.Join(setups, "\n"), andChain(guards))
	return guardAnd(lenCheck, combined), nil
}

func (f *fnCtx) matchRecord(pat *ast.RecordPattern, carrierLocal string, st typesystem.Type) (string, error) {
	rec, ok := st.(typesystem.Record)
	if !ok {
		return "", fail(diagnostics.GUnsupportedType, pat.Span(), "record pattern %q against non-record type %s", pat.Name, st)
	}
	layout, ok := f.m.layouts[rec.Name]
	if !ok {
		return "", fail(diagnostics.GUnsupportedType, pat.Span(), "no layout for record %q", rec.Name)
	}
	def := f.m.Table.Records[rec.Name]

	var setups []string
	var guards []string
	for _, fp := range pat.Fields {
		ft, ok := def.FieldType(fp.Name)
		if !ok {
			return "", fail(diagnostics.GUnsupportedType, pat.Span(), "record %q has no field %q", rec.Name, fp.Name)
		}
		fieldLocal := f.freshLocal("field", ft)
		offset := layout.Offset[fp.Name]
		load := "i32.load"
		if wasmType(ft) == "f64" {
			load = "f64.load"
		}
		setups = append(setups, fmt.Sprintf("(local.set $%s (%s (i32.add (local.get $%s) (i32.const %d))))", fieldLocal, load, carrierLocal, offset))
		g, err := f.matchGuard(fp.Pattern, fieldLocal, ft)
		if err != nil {
			return "", err
		}
		guards = append(guards, g)
	}
	if len(guards) == 0 {
		return "(i32.const 1)", nil
	}
	return fmt.Sprintf("(block (result i32)\n%s\n%s\n)", strings.Join(setups, "\n"), andChain(guards)), nil
}

func andChain(guards []string) string {
	if len(guards) == 0 {
		return "(i32.const 1)"
	}
	acc := guards[0]
	for _, g := range guards[1:] {
		acc = fmt.Sprintf("(i32.and %s %s)", acc, g)
	}
	return acc
}
