package codegen

import (
	"fmt"
	"strings"

	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/symbols"
	"github.com/restrict-lang/rlc/internal/typesystem"

	"github.com/google/uuid"
)

// fnCtx is one function's lowering state. Locals are addressed by name in
// the emitted text, so fnCtx just needs to know every name in scope and its
// WASM type, plus which names are parameters (emitted as `(param ...)`
// rather than `(local ...)`). Lowering can synthesize additional locals
// mid-pass (match scrutinee temporaries, record-literal pointers); those
// are appended to extraLocals and only rendered into the function header
// after the body has been fully lowered, so declaration order never
// matters.
type fnCtx struct {
	m           *Module
	funcName    string
	params      []string
	extraLocals []string
	types       map[string]typesystem.Type
}

func newFnCtx(m *Module, funcName string) *fnCtx {
	return &fnCtx{m: m, funcName: funcName, types: map[string]typesystem.Type{}}
}

func (f *fnCtx) declareParam(name string, t typesystem.Type) {
	f.params = append(f.params, name)
	f.types[name] = t
}

func (f *fnCtx) declarePrecomputedLocal(name string, t typesystem.Type) {
	if _, ok := f.types[name]; ok {
		return
	}
	f.extraLocals = append(f.extraLocals, name)
	f.types[name] = t
}

// freshLocal synthesizes a collision-free temporary local (spec §4.4's
// match scrutinee/list-cons-tail temporaries), naming it with a UUID
// suffix so generated and hand-written names can never collide.
func (f *fnCtx) freshLocal(prefix string, t typesystem.Type) string {
	name := strings.TrimPrefix(freshName(prefix), "$")
	f.extraLocals = append(f.extraLocals, name)
	f.types[name] = t
	return name
}

func freshName(prefix string) string {
	return fmt.Sprintf("$%s_%s", prefix, strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// methodFuncName mangles a method's WAT function name with its owning
// record so methods on different records never collide.
func methodFuncName(recordName, methodName string) string {
	if recordName == "" {
		return "$" + methodName
	}
	return "$" + recordName + "_" + methodName
}

func (m *Module) emitFunction(d *ast.FunDecl, methodOf string) (string, error) {
	fn := newFnCtx(m, methodFuncName(methodOf, d.Name))
	sig := m.lookupSig(d.Name, methodOf)
	if sig == nil {
		return "", fail(diagnostics.GUndefinedFunction, d.Span(), "no registered signature for %q", d.Name)
	}

	for i, p := range d.Params {
		fn.declareParam(p.Name, paramType(sig, i))
	}
	for _, ld := range m.collectLocals(d.Body) {
		t := ld.Type
		if t == nil {
			t = typesystem.Int32{}
		}
		fn.declarePrecomputedLocal(ld.Name, t)
	}

	bodyCode, err := fn.lowerBlockAsExpr(d.Body, sig.Return)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("  (func " + fn.funcName)
	for _, p := range fn.params {
		b.WriteString(fmt.Sprintf(" (param $%s %s)", p, wasmType(fn.types[p])))
	}
	b.WriteString(" (result " + wasmType(sig.Return) + ")\n")
	for _, l := range fn.extraLocals {
		b.WriteString(fmt.Sprintf("    (local $%s %s)\n", l, wasmType(fn.types[l])))
	}
	b.WriteString(bodyCode)
	b.WriteString(")\n")
	return b.String(), nil
}

// emitStart wraps main's body in arena_init/arena_reset (spec §4.4: "wraps
// its body in default-arena init/reset so that all unscoped allocations
// share a process-wide arena") and exposes it as $_start.
func (m *Module) emitStart(mainFn *ast.FunDecl) (string, error) {
	fn := newFnCtx(m, "$_start")
	sig := m.lookupSig("main", "")
	if sig == nil {
		return "", fail(diagnostics.GUndefinedFunction, mainFn.Span(), "no registered signature for main")
	}
	fn.declarePrecomputedLocal("rlc_main_arena_save", typesystem.Int32{})
	for _, ld := range m.collectLocals(mainFn.Body) {
		t := ld.Type
		if t == nil {
			t = typesystem.Int32{}
		}
		fn.declarePrecomputedLocal(ld.Name, t)
	}

	// main's result becomes the process exit code (spec §8: "_start
	// terminates with exit code equal to the integer value of main's
	// body"). proc_exit takes an i32, so only an i32-represented return
	// captures into $rlc_main_result; anything else (f64 main) still runs
	// and exits 0, since there is no lossless i32 exit code for it.
	resultIsI32 := wasmType(sig.Return) == "i32"
	if resultIsI32 {
		fn.declarePrecomputedLocal("rlc_main_result", sig.Return)
	}

	bodyCode, err := fn.lowerBlockAsExpr(mainFn.Body, sig.Return)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("  (func $_start\n")
	for _, l := range fn.extraLocals {
		b.WriteString(fmt.Sprintf("    (local $%s %s)\n", l, wasmType(fn.types[l])))
	}
	b.WriteString("    (local.set $rlc_main_arena_save (call $arena_init))\n")
	if resultIsI32 {
		b.WriteString("    (local.set $rlc_main_result\n")
		b.WriteString(bodyCode)
		b.WriteString("    )\n")
	} else {
		b.WriteString("    (drop\n")
		b.WriteString(bodyCode)
		b.WriteString("    )\n")
	}
	b.WriteString("    (call $arena_reset (local.get $rlc_main_arena_save))\n")
	if resultIsI32 {
		b.WriteString("    (call $proc_exit (local.get $rlc_main_result))\n")
	} else {
		b.WriteString("    (call $proc_exit (i32.const 0))\n")
	}
	b.WriteString(")\n")
	return b.String(), nil
}

func (m *Module) lookupSig(name, methodOf string) *funcSignature {
	if methodOf != "" {
		if methods, ok := m.Table.Methods[methodOf]; ok {
			if sig, ok := methods[name]; ok {
				return &funcSignature{Params: paramTypesOf(sig.Params), Return: sig.Return}
			}
		}
		return nil
	}
	if sig, ok := m.Table.Functions[name]; ok {
		return &funcSignature{Params: paramTypesOf(sig.Params), Return: sig.Return}
	}
	return nil
}

// funcSignature is codegen's narrow view of symbols.FuncSig: only the
// resolved parameter and return types matter once checking has finished.
type funcSignature struct {
	Params []typesystem.Type
	Return typesystem.Type
}

func paramType(sig *funcSignature, i int) typesystem.Type {
	if i < len(sig.Params) {
		return sig.Params[i]
	}
	return typesystem.Int32{}
}

func paramTypesOf(params []symbols.Param) []typesystem.Type {
	out := make([]typesystem.Type, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}
