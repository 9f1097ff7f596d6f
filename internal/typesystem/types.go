// Package typesystem defines the TypedType lattice produced by the analyzer
// (spec §4.3) and the substitution/unification machinery generic function
// inference needs (spec §4.3.7).
package typesystem

import "fmt"

// Type is any TypedType value. Unlike the richer kind-polymorphic lattice
// this is grounded on, THE CORE has no higher-kinded types, row
// polymorphism, or type aliases — so Kind() and FreeTypeVariables() are not
// carried; unify.go walks each variant's shape directly.
type Type interface {
	String() string
	Apply(Subst) Type
}

// Int32, Float64, Boolean, Str (String), Char and Unit are primitives; they
// carry no fields and compare by type switch.
type Int32 struct{}
type Float64 struct{}
type Boolean struct{}
type Str struct{}
type Char struct{}
type Unit struct{}

func (Int32) String() string   { return "Int32" }
func (Float64) String() string { return "Float64" }
func (Boolean) String() string { return "Boolean" }
func (Str) String() string     { return "String" }
func (Char) String() string    { return "Char" }
func (Unit) String() string    { return "Unit" }

func (t Int32) Apply(Subst) Type   { return t }
func (t Float64) Apply(Subst) Type { return t }
func (t Boolean) Apply(Subst) Type { return t }
func (t Str) Apply(Subst) Type     { return t }
func (t Char) Apply(Subst) Type    { return t }
func (t Unit) Apply(Subst) Type    { return t }

// Record is a named, possibly-frozen record value (spec §4.3.3).
type Record struct {
	Name   string
	Frozen bool
}

func (t Record) String() string {
	if t.Frozen {
		return fmt.Sprintf("%s(frozen)", t.Name)
	}
	return t.Name
}

func (t Record) Apply(Subst) Type { return t }

// Function is a function's or lambda's type.
type Function struct {
	Params []Type
	Return Type
}

func (t Function) String() string {
	s := "("
	for i, p := range t.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") -> " + t.Return.String()
}

func (t Function) Apply(s Subst) Type {
	params := make([]Type, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.Apply(s)
	}
	return Function{Params: params, Return: t.Return.Apply(s)}
}

// Option wraps a single element type.
type Option struct{ Elem Type }

func (t Option) String() string   { return "Option(" + t.Elem.String() + ")" }
func (t Option) Apply(s Subst) Type { return Option{Elem: t.Elem.Apply(s)} }

// List is a homogeneous, arbitrary-length sequence.
type List struct{ Elem Type }

func (t List) String() string     { return "List(" + t.Elem.String() + ")" }
func (t List) Apply(s Subst) Type { return List{Elem: t.Elem.Apply(s)} }

// Array is a fixed-size (or, with Size==0, any-size) homogeneous sequence.
// Size 0 is used for built-ins like array_get that accept any array length
// (spec §4.3.7).
type Array struct {
	Elem Type
	Size int
}

func (t Array) String() string {
	if t.Size == 0 {
		return "Array(" + t.Elem.String() + ")"
	}
	return fmt.Sprintf("Array(%s, %d)", t.Elem.String(), t.Size)
}

func (t Array) Apply(s Subst) Type { return Array{Elem: t.Elem.Apply(s), Size: t.Size} }

// TypeParam is an unbound (or bound-via-substitution) generic parameter.
type TypeParam struct{ Name string }

func (t TypeParam) String() string { return t.Name }

func (t TypeParam) Apply(s Subst) Type {
	if replacement, ok := s[t.Name]; ok {
		return replacement
	}
	return t
}

// Subst maps type-parameter names to concrete types (spec §4.3.7).
type Subst map[string]Type

// Compose applies s2 to every binding in s1, then merges in s2's own
// bindings, so that (t.Apply(s1)).Apply(s2) == t.Apply(s1.Compose(s2)).
func (s1 Subst) Compose(s2 Subst) Subst {
	out := Subst{}
	for k, v := range s2 {
		out[k] = v
	}
	for k, v := range s1 {
		out[k] = v.Apply(s2)
	}
	return out
}
