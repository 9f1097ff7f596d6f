package ast

import "github.com/restrict-lang/rlc/internal/source"

// Type is the syntactic type form written in source (spec §3 Type
// variants); the analyzer lowers these to typesystem.Type via
// the analyzer's convertType.
type Type interface {
	Node
	typeNode()
}

// NamedType is a bare type name, e.g. `Int`, `String`, a record name, or an
// in-scope type parameter.
type NamedType struct {
	SpanVal source.Span
	Name    string
}

func (t *NamedType) Span() source.Span { return t.SpanVal }
func (*NamedType) typeNode()           {}

// GenericType is a parameterized type, e.g. `Option<Int>`, `List<T>`.
type GenericType struct {
	SpanVal source.Span
	Name    string
	Args    []Type
}

func (t *GenericType) Span() source.Span { return t.SpanVal }
func (*GenericType) typeNode()           {}

// FunctionType is a function-typed parameter/return annotation.
type FunctionType struct {
	SpanVal source.Span
	Params  []Type
	Return  Type
}

func (t *FunctionType) Span() source.Span { return t.SpanVal }
func (*FunctionType) typeNode()           {}
