package analyzer_test

import (
	"testing"

	"github.com/restrict-lang/rlc/internal/analyzer"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/parser"
)

func mustCheck(t *testing.T, src string) *analyzer.Checker {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	chk, err := analyzer.CheckProgram(prog)
	if err != nil {
		t.Fatalf("unexpected check error: %v", err)
	}
	return chk
}

func collectErrors(t *testing.T, src string) []*diagnostics.DiagnosticError {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	_, errs := analyzer.CheckProgramCollecting(prog)
	return errs
}

func expectSingleCode(t *testing.T, src string, code diagnostics.Code) {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	_, checkErr := analyzer.CheckProgram(prog)
	if checkErr == nil {
		t.Fatalf("expected a %s diagnostic, got none", code)
	}
	de, ok := checkErr.(*diagnostics.DiagnosticError)
	if !ok {
		t.Fatalf("expected *diagnostics.DiagnosticError, got %T", checkErr)
	}
	if de.Code != code {
		t.Fatalf("expected code %s, got %s: %s", code, de.Code, de.Message)
	}
}

func TestCheckSimpleFunctionOK(t *testing.T) {
	mustCheck(t, `fun add = a: Int b: Int { a + b }
fun main = { add(1, 2) }`)
}

func TestCheckUndefinedVariable(t *testing.T) {
	expectSingleCode(t, `fun main = { x }`, diagnostics.TUndefinedVariable)
}

func TestCheckTypeMismatchInBinary(t *testing.T) {
	expectSingleCode(t, `fun main = { 1 + true }`, diagnostics.TTypeMismatch)
}

func TestCheckAffineDoubleUseIsViolation(t *testing.T) {
	expectSingleCode(t, `record Box { v: Int }
fun consume = b: Box { b.v }
fun main = {
	val b = Box { v = 1 }
	consume(b)
	consume(b)
}`, diagnostics.TAffineViolation)
}

func TestCheckImmutableReassign(t *testing.T) {
	expectSingleCode(t, `fun main = {
	val x = 1
	x = 2
	x
}`, diagnostics.TImmutableReassign)
}

func TestCheckCloneFrozenRecord(t *testing.T) {
	expectSingleCode(t, `record Point { x: Int y: Int }
fun main = {
	val p = Point { x = 1, y = 2 } freeze
	val q = p.clone { x = 5 }
	q
}`, diagnostics.TCloneFrozenRecord)
}

func TestCheckFreezeAlreadyFrozen(t *testing.T) {
	expectSingleCode(t, `record Point { x: Int y: Int }
fun main = {
	val p = Point { x = 1, y = 2 } freeze
	val q = p freeze
	q
}`, diagnostics.TFreezeAlreadyFrozen)
}

func TestCheckUndefinedRecord(t *testing.T) {
	expectSingleCode(t, `fun main = { Missing { x = 1 } }`, diagnostics.TUndefinedRecord)
}

func TestCheckUndefinedFunction(t *testing.T) {
	expectSingleCode(t, `fun main = { missing(1) }`, diagnostics.TUndefinedFunction)
}

func TestCheckArityMismatch(t *testing.T) {
	expectSingleCode(t, `fun add = a: Int b: Int { a + b }
fun main = { add(1) }`, diagnostics.TArityMismatch)
}

func TestCheckUnavailableContext(t *testing.T) {
	expectSingleCode(t, `fun main = {
	with (Missing) {
		1
	}
}`, diagnostics.TUnavailableContext)
}

func TestCheckNonExhaustiveMatch(t *testing.T) {
	expectSingleCode(t, `fun main = {
	val x = Some(1)
	x match {
		Some(v) => { v }
	}
}`, diagnostics.TNonExhaustiveMatch)
}

func TestCheckCollectingGathersMultipleErrors(t *testing.T) {
	errs := collectErrors(t, `fun main = {
	val x = y
	val z = 1 + true
	x
}`)
	if len(errs) < 2 {
		t.Fatalf("expected at least 2 collected diagnostics, got %d: %v", len(errs), errs)
	}
}

func TestCheckWithKnownContextOK(t *testing.T) {
	mustCheck(t, `fun main = {
	with (Arena) {
		1
	}
}`)
}

func TestCheckPipeFreshBinding(t *testing.T) {
	mustCheck(t, `fun main = {
	5 |> x
	x
}`)
}

func TestCheckPipeFunctionCall(t *testing.T) {
	mustCheck(t, `fun double = a: Int { a * 2 }
fun main = {
	5 |> double
}`)
}

func TestCheckGenericFunctionInference(t *testing.T) {
	mustCheck(t, `fun identity<T> = x: T { x }
fun main = {
	val a = identity(1)
	val b = identity(true)
	a
}`)
}

func TestCheckGenericFunctionWithSatisfiedTraitBound(t *testing.T) {
	mustCheck(t, `fun show<T: Display> = x: T { x }
fun main = { show(1) }`)
}

func TestCheckGenericFunctionWithUnsatisfiedTraitBound(t *testing.T) {
	expectSingleCode(t, `record Box { v: Int }
fun show<T: Display> = x: T { x }
fun main = {
	val b = Box { v = 1 }
	show(b)
}`, diagnostics.TUnsupportedFeature)
}

func TestCheckFieldAccessUnknownField(t *testing.T) {
	expectSingleCode(t, `record Point { x: Int y: Int }
fun main = {
	val p = Point { x = 1, y = 2 }
	p.z
}`, diagnostics.TUnknownField)
}

func TestCheckMatchListConsExhaustive(t *testing.T) {
	mustCheck(t, `fun main = {
	val xs = [1, 2, 3]
	xs match {
		[] => { 0 }
		[h|t] => { h }
	}
}`)
}
