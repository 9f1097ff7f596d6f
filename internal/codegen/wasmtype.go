package codegen

import "github.com/restrict-lang/rlc/internal/typesystem"

// wasmType maps a TypedType to its WAT value type (spec §4.4's WAT type
// strings table): i32 for pointers/ints/booleans/Unit, f64 for floats.
func wasmType(t typesystem.Type) string {
	switch t.(type) {
	case typesystem.Float64:
		return "f64"
	default:
		return "i32"
	}
}

// zeroLiteral is the WAT constant instruction producing a type's default
// value, used when a Then without an else needs a "0-of-T" result (spec
// §4.4's lowering table) and when a block has no trailing expression.
func zeroLiteral(t typesystem.Type) string {
	if wasmType(t) == "f64" {
		return "(f64.const 0)"
	}
	return "(i32.const 0)"
}
