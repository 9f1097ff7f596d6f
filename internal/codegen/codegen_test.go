package codegen_test

import (
	"strings"
	"testing"

	"github.com/restrict-lang/rlc/internal/analyzer"
	"github.com/restrict-lang/rlc/internal/codegen"
	"github.com/restrict-lang/rlc/internal/parser"
)

func mustGenerate(t *testing.T, src string, profile codegen.Profile) string {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	chk, err := analyzer.CheckProgram(prog)
	if err != nil {
		t.Fatalf("unexpected check error: %v", err)
	}
	wat, err := codegen.Generate(prog, chk, profile)
	if err != nil {
		t.Fatalf("unexpected codegen error: %v", err)
	}
	return wat
}

func TestGenerateArithmeticFunction(t *testing.T) {
	wat := mustGenerate(t, `fun add = a: Int b: Int { a + b }
fun main = { add(1, 2) }`, codegen.ProfileWASI)

	if !strings.Contains(wat, "(module") {
		t.Fatalf("expected a module form, got:\n%s", wat)
	}
	if !strings.Contains(wat, "i32.add") {
		t.Fatalf("expected an i32.add instruction, got:\n%s", wat)
	}
	if !strings.Contains(wat, `(export "_start" (func $_start))`) {
		t.Fatalf("expected main exported as _start, got:\n%s", wat)
	}
	if !strings.Contains(wat, `(export "memory" (memory 0))`) {
		t.Fatalf("expected memory export, got:\n%s", wat)
	}
}

func TestGenerateWASIImports(t *testing.T) {
	wat := mustGenerate(t, `fun main = { 1 }`, codegen.ProfileWASI)
	if !strings.Contains(wat, "wasi_snapshot_preview1") {
		t.Fatalf("expected WASI imports in wasi profile, got:\n%s", wat)
	}
	if strings.Contains(wat, "js_print") {
		t.Fatalf("wasi profile should not import js_print, got:\n%s", wat)
	}
}

func TestGenerateWebImports(t *testing.T) {
	wat := mustGenerate(t, `fun main = { 1 }`, codegen.ProfileWeb)
	if !strings.Contains(wat, "js_print") {
		t.Fatalf("expected js_print import in web profile, got:\n%s", wat)
	}
	if strings.Contains(wat, "wasi_snapshot_preview1") {
		t.Fatalf("web profile should not import WASI, got:\n%s", wat)
	}
}

func TestGenerateArenaPrelude(t *testing.T) {
	wat := mustGenerate(t, `fun main = { 1 }`, codegen.ProfileWASI)
	for _, fn := range []string{"$arena_init", "$arena_reset", "$arena_alloc", "$allocate"} {
		if !strings.Contains(wat, fn) {
			t.Fatalf("expected arena prelude to define %s, got:\n%s", fn, wat)
		}
	}
	if !strings.Contains(wat, "$current_arena") {
		t.Fatalf("expected a $current_arena global, got:\n%s", wat)
	}
}

func TestGenerateRecordFieldAccess(t *testing.T) {
	wat := mustGenerate(t, `record Point { x: Int y: Int }
fun main = {
	val p = Point { x = 10, y = 20 }
	p.y
}`, codegen.ProfileWASI)
	if !strings.Contains(wat, "i32.load") {
		t.Fatalf("expected a field load, got:\n%s", wat)
	}
}

func TestGenerateListConsMatch(t *testing.T) {
	wat := mustGenerate(t, `fun main = {
	val xs = [1, 2, 3]
	xs match {
		[] => { 0 }
		[h|t] => { h }
	}
}`, codegen.ProfileWASI)
	if !strings.Contains(wat, "memory.copy") {
		t.Fatalf("expected the list-cons tail slice to use memory.copy, got:\n%s", wat)
	}
	if !strings.Contains(wat, "unreachable") {
		t.Fatalf("expected an unreachable fallback after exhaustive arms, got:\n%s", wat)
	}
}

func TestGenerateOptionMatch(t *testing.T) {
	wat := mustGenerate(t, `fun main = {
	val x = Some(1)
	x match {
		Some(v) => { v }
		None => { 0 }
	}
}`, codegen.ProfileWASI)
	if !strings.Contains(wat, "(module") {
		t.Fatalf("expected a module form, got:\n%s", wat)
	}
}

func TestGenerateStartExitsWithMainResult(t *testing.T) {
	wat := mustGenerate(t, `fun main = { 30 }`, codegen.ProfileWASI)
	if !strings.Contains(wat, "(local.set $rlc_main_result") {
		t.Fatalf("expected main's result to be captured into a local, got:\n%s", wat)
	}
	if !strings.Contains(wat, "(call $proc_exit (local.get $rlc_main_result))") {
		t.Fatalf("expected proc_exit to read main's captured result, got:\n%s", wat)
	}
	if strings.Contains(wat, "(call $proc_exit (i32.const 0))") {
		t.Fatalf("proc_exit should not be hardcoded to 0 when main returns Int32, got:\n%s", wat)
	}
}

func TestGenerateNotImplementedForWith(t *testing.T) {
	_, err := func() (string, error) {
		prog, perr := parser.Parse(`fun main = {
	with (Arena) {
		1
	}
}`)
		if perr != nil {
			t.Fatalf("unexpected parse error: %v", perr)
		}
		chk, cerr := analyzer.CheckProgram(prog)
		if cerr != nil {
			t.Fatalf("unexpected check error: %v", cerr)
		}
		return codegen.Generate(prog, chk, codegen.ProfileWASI)
	}()
	if err == nil {
		t.Fatalf("expected a codegen error for `with`, got none")
	}
	cgErr, ok := err.(*codegen.Error)
	if !ok {
		t.Fatalf("expected *codegen.Error, got %T: %v", err, err)
	}
	if cgErr.Code != "G004" {
		t.Fatalf("expected code G004 (NotImplemented), got %s", cgErr.Code)
	}
}
