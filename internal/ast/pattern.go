package ast

import "github.com/restrict-lang/rlc/internal/source"

// Pattern is any pattern used in a `match` arm (spec §3 Pattern variants).
type Pattern interface {
	Node
	patternNode()
}

type WildcardPattern struct {
	SpanVal source.Span
}

func (p *WildcardPattern) Span() source.Span { return p.SpanVal }
func (*WildcardPattern) patternNode()        {}

// LiteralPattern matches a literal value exactly.
type LiteralPattern struct {
	SpanVal source.Span
	Value   Expr // IntLit, FloatLit, StringLit, CharLit, or BoolLit
}

func (p *LiteralPattern) Span() source.Span { return p.SpanVal }
func (*LiteralPattern) patternNode()        {}

// IdentPattern binds the scrutinee to a fresh name.
type IdentPattern struct {
	SpanVal source.Span
	Name    string
}

func (p *IdentPattern) Span() source.Span { return p.SpanVal }
func (*IdentPattern) patternNode()        {}

type FieldPattern struct {
	Name    string
	Pattern Pattern
}

// RecordPattern destructures a record, e.g. `Name { field = pat, ... }`.
type RecordPattern struct {
	SpanVal source.Span
	Name    string
	Fields  []FieldPattern
}

func (p *RecordPattern) Span() source.Span { return p.SpanVal }
func (*RecordPattern) patternNode()        {}

type SomePattern struct {
	SpanVal source.Span
	Inner   Pattern
}

func (p *SomePattern) Span() source.Span { return p.SpanVal }
func (*SomePattern) patternNode()        {}

type NonePattern struct {
	SpanVal source.Span
}

func (p *NonePattern) Span() source.Span { return p.SpanVal }
func (*NonePattern) patternNode()        {}

// EmptyListPattern matches `[]`.
type EmptyListPattern struct {
	SpanVal source.Span
}

func (p *EmptyListPattern) Span() source.Span { return p.SpanVal }
func (*EmptyListPattern) patternNode()        {}

// ListConsPattern matches `[hd | tl]`.
type ListConsPattern struct {
	SpanVal source.Span
	Head    Pattern
	Tail    Pattern
}

func (p *ListConsPattern) Span() source.Span { return p.SpanVal }
func (*ListConsPattern) patternNode()        {}

// ListExactPattern matches `[p1, ..., pn]`.
type ListExactPattern struct {
	SpanVal  source.Span
	Elements []Pattern
}

func (p *ListExactPattern) Span() source.Span { return p.SpanVal }
func (*ListExactPattern) patternNode()        {}
