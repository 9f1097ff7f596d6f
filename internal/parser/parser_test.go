package parser_test

import (
	"testing"

	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/parser"
)

// mustParse is a test helper: parses input strictly and fails the test on
// any error.
func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func firstFunBody(t *testing.T, prog *ast.Program, name string) *ast.Block {
	t.Helper()
	for _, d := range prog.Declarations {
		if fn, ok := d.(*ast.FunDecl); ok && fn.Name == name {
			return fn.Body
		}
	}
	t.Fatalf("no function named %q found among %d declarations", name, len(prog.Declarations))
	return nil
}

func TestParseRecordAndRecordLit(t *testing.T) {
	prog := mustParse(t, `record Point { x: Int y: Int }
fun main = { val p = Point { x = 10, y = 20 } p }`)
	if len(prog.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(prog.Declarations))
	}
	rec, ok := prog.Declarations[0].(*ast.RecordDecl)
	if !ok {
		t.Fatalf("expected RecordDecl, got %T", prog.Declarations[0])
	}
	if len(rec.Fields) != 2 || rec.Fields[0].Name != "x" || rec.Fields[1].Name != "y" {
		t.Fatalf("unexpected fields: %+v", rec.Fields)
	}

	body := firstFunBody(t, prog, "main")
	binding, ok := body.Statements[0].(*ast.StmtBinding)
	if !ok {
		t.Fatalf("expected StmtBinding, got %T", body.Statements[0])
	}
	lit, ok := binding.Value.(*ast.RecordLit)
	if !ok {
		t.Fatalf("expected RecordLit, got %T", binding.Value)
	}
	if lit.Name != "Point" || len(lit.Fields) != 2 {
		t.Fatalf("unexpected record literal: %+v", lit)
	}
}

func TestParseCloneAndFreeze(t *testing.T) {
	prog := mustParse(t, `record Point { x: Int y: Int }
fun main = {
	val p = Point { x = 10, y = 20 }
	val q = p.clone { x = 30 }
	val r = q freeze
	r
}`)
	body := firstFunBody(t, prog, "main")
	q := body.Statements[1].(*ast.StmtBinding)
	clone, ok := q.Value.(*ast.Clone)
	if !ok {
		t.Fatalf("expected Clone, got %T", q.Value)
	}
	if len(clone.Updates) != 1 || clone.Updates[0].Name != "x" {
		t.Fatalf("unexpected clone updates: %+v", clone.Updates)
	}
	r := body.Statements[2].(*ast.StmtBinding)
	if _, ok := r.Value.(*ast.Freeze); !ok {
		t.Fatalf("expected Freeze, got %T", r.Value)
	}
}

func TestParseDirectCallAndOSV(t *testing.T) {
	prog := mustParse(t, `fun add = a: Int b: Int { a + b }
fun main = {
	val x = add(10, 20)
	val y = (10, 20) add
	val z = 5 add
	x
}`)
	body := firstFunBody(t, prog, "main")

	direct := body.Statements[0].(*ast.StmtBinding).Value.(*ast.Call)
	if direct.IsOSV {
		t.Fatalf("expected direct call, got OSV")
	}
	if len(direct.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(direct.Args))
	}

	osv := body.Statements[1].(*ast.StmtBinding).Value.(*ast.Call)
	if !osv.IsOSV {
		t.Fatalf("expected OSV call, got direct")
	}
	if len(osv.Args) != 2 {
		t.Fatalf("expected 2 OSV args, got %d", len(osv.Args))
	}

	single := body.Statements[2].(*ast.StmtBinding).Value.(*ast.Call)
	if !single.IsOSV || len(single.Args) != 1 {
		t.Fatalf("expected single-arg OSV call, got %+v", single)
	}
}

func TestParseThenElseIf(t *testing.T) {
	prog := mustParse(t, `fun main = {
	val x = 1
	x then { 1 } else if x then { 2 } else { 3 }
}`)
	body := firstFunBody(t, prog, "main")
	then := body.Expr.(*ast.Then)
	if len(then.ElseIfs) != 1 {
		t.Fatalf("expected 1 else-if, got %d", len(then.ElseIfs))
	}
	if then.Else == nil {
		t.Fatalf("expected a trailing else block")
	}
}

func TestParseMatchArms(t *testing.T) {
	prog := mustParse(t, `fun main = {
	val xs = [1, 2, 3]
	xs match {
		[] => { 0 }
		[h | t] => { h }
	}
}`)
	body := firstFunBody(t, prog, "main")
	m := body.Expr.(*ast.Match)
	if len(m.Arms) != 2 {
		t.Fatalf("expected 2 match arms, got %d", len(m.Arms))
	}
	if _, ok := m.Arms[0].Pattern.(*ast.EmptyListPattern); !ok {
		t.Fatalf("expected EmptyListPattern, got %T", m.Arms[0].Pattern)
	}
	cons, ok := m.Arms[1].Pattern.(*ast.ListConsPattern)
	if !ok {
		t.Fatalf("expected ListConsPattern, got %T", m.Arms[1].Pattern)
	}
	if _, ok := cons.Head.(*ast.IdentPattern); !ok {
		t.Fatalf("expected head to be an IdentPattern, got %T", cons.Head)
	}
}

func TestParseWhile(t *testing.T) {
	prog := mustParse(t, `fun main = {
	val done = true
	done while { done }
}`)
	body := firstFunBody(t, prog, "main")
	w := body.Expr.(*ast.While)
	if _, ok := w.Cond.(*ast.Ident); !ok {
		t.Fatalf("expected Ident condition, got %T", w.Cond)
	}
}

func TestParsePipe(t *testing.T) {
	prog := mustParse(t, `fun inc = a: Int { a }
fun main = {
	val r = 1 |> inc
	r
}`)
	body := firstFunBody(t, prog, "main")
	pipe := body.Statements[0].(*ast.StmtBinding).Value.(*ast.Pipe)
	if pipe.Op != ast.PipeForward {
		t.Fatalf("expected PipeForward, got %v", pipe.Op)
	}
	if pipe.TargetIdent != "inc" {
		t.Fatalf("expected TargetIdent %q, got %q", "inc", pipe.TargetIdent)
	}
}

func TestParseWithContext(t *testing.T) {
	prog := mustParse(t, `context DB { host: String }
fun f = { with (DB) { 42 } }`)
	body := firstFunBody(t, prog, "f")
	w := body.Expr.(*ast.With)
	if len(w.Contexts) != 1 || w.Contexts[0] != "DB" {
		t.Fatalf("unexpected contexts: %+v", w.Contexts)
	}
}

func TestParseGenericFunAndTypeParams(t *testing.T) {
	prog := mustParse(t, `fun id<T> = x: T { x }`)
	fn := prog.Declarations[0].(*ast.FunDecl)
	if len(fn.TypeParams) != 1 || fn.TypeParams[0].Name != "T" {
		t.Fatalf("unexpected type params: %+v", fn.TypeParams)
	}
}

func TestParseLambdaAndListArray(t *testing.T) {
	prog := mustParse(t, `fun main = {
	val f = |x, y| x
	val xs = [1, 2, 3]
	val ys = [|1, 2, 3|]
	xs
}`)
	body := firstFunBody(t, prog, "main")
	lambda := body.Statements[0].(*ast.StmtBinding).Value.(*ast.Lambda)
	if len(lambda.Params) != 2 {
		t.Fatalf("expected 2 lambda params, got %d", len(lambda.Params))
	}
	list := body.Statements[1].(*ast.StmtBinding).Value.(*ast.ListLit)
	if len(list.Elements) != 3 {
		t.Fatalf("expected 3 list elements, got %d", len(list.Elements))
	}
	arr := body.Statements[2].(*ast.StmtBinding).Value.(*ast.ArrayLit)
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 array elements, got %d", len(arr.Elements))
	}
}

func TestParseSomeNone(t *testing.T) {
	prog := mustParse(t, `fun main = {
	val a = Some(1)
	val b = None
	a
}`)
	body := firstFunBody(t, prog, "main")
	some := body.Statements[0].(*ast.StmtBinding).Value.(*ast.SomeExpr)
	if _, ok := some.Value.(*ast.IntLit); !ok {
		t.Fatalf("expected IntLit payload, got %T", some.Value)
	}
	if _, ok := body.Statements[1].(*ast.StmtBinding).Value.(*ast.NoneExpr); !ok {
		t.Fatalf("expected NoneExpr")
	}
}

func TestParseRecovering(t *testing.T) {
	prog, errs := parser.ParseRecovering(`record Point { x: Int y: Int }
fun broken = {
fun ok = { 1 }`)
	if len(errs) == 0 {
		t.Fatalf("expected at least one parse error")
	}
	var names []string
	for _, d := range prog.Declarations {
		if fn, ok := d.(*ast.FunDecl); ok {
			names = append(names, fn.Name)
		}
	}
	found := false
	for _, n := range names {
		if n == "ok" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected recovering parser to still find `ok` after a broken declaration, got %v", names)
	}
}
