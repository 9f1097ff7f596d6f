// Package ast defines the algebraic data model produced by the parser (spec
// §3). Every node carries a Span for diagnostics; passes over the tree use
// plain type switches rather than a visitor interface, following the
// analyzer's own dominant style in the teacher package.
package ast

import "github.com/restrict-lang/rlc/internal/source"

// Node is implemented by every AST node.
type Node interface {
	Span() source.Span
}

// Program is the root of every parsed file.
type Program struct {
	Imports      []*ImportDecl
	Declarations []TopDecl
}

func (p *Program) Span() source.Span {
	if len(p.Declarations) == 0 {
		return source.Span{}
	}
	return p.Declarations[0].Span().Join(p.Declarations[len(p.Declarations)-1].Span())
}

// ImportDecl is `import dotted.ident`.
type ImportDecl struct {
	SpanVal source.Span
	Path    []string
}

func (i *ImportDecl) Span() source.Span { return i.SpanVal }

// TopDecl is any declaration allowed at module scope.
type TopDecl interface {
	Node
	topDeclNode()
}

// Export wraps another TopDecl to mark it as exported.
type Export struct {
	SpanVal source.Span
	Decl    TopDecl
}

func (e *Export) Span() source.Span { return e.SpanVal }
func (*Export) topDeclNode()        {}

// TypeParam is a generic type parameter, optionally bound by traits and
// optionally marked as a temporal (borrow-like) parameter. Temporal markers
// are parsed for forward compatibility (spec §9) but otherwise inert in THE
// CORE.
type TypeParam struct {
	SpanVal    source.Span
	Name       string
	Bounds     []string
	IsTemporal bool
}

func (t *TypeParam) Span() source.Span { return t.SpanVal }

// RecordDecl declares a record type and its fields.
type RecordDecl struct {
	SpanVal             source.Span
	Name                string
	TypeParams          []*TypeParam
	Fields              []RecordField
	TemporalConstraints []string
}

type RecordField struct {
	Name string
	Type Type
}

func (r *RecordDecl) Span() source.Span { return r.SpanVal }
func (*RecordDecl) topDeclNode()        {}

// ImplDecl declares methods on a record or trait instance.
type ImplDecl struct {
	SpanVal   source.Span
	TargetName string
	Methods   []*FunDecl
}

func (i *ImplDecl) Span() source.Span { return i.SpanVal }
func (*ImplDecl) topDeclNode()        {}

// ContextDecl declares a named capability record usable with `with`.
type ContextDecl struct {
	SpanVal source.Span
	Name    string
	Fields  []RecordField
}

func (c *ContextDecl) Span() source.Span { return c.SpanVal }
func (*ContextDecl) topDeclNode()        {}

// Param is a function parameter, optionally requiring a context to be
// active (`context_bound`).
type Param struct {
	SpanVal       source.Span
	Name          string
	Type          Type
	ContextBound  string // empty if none
}

func (p *Param) Span() source.Span { return p.SpanVal }

// FunDecl declares a (possibly generic, possibly async) function.
type FunDecl struct {
	SpanVal    source.Span
	Name       string
	TypeParams []*TypeParam
	Params     []*Param
	IsAsync    bool
	Body       *Block
}

func (f *FunDecl) Span() source.Span { return f.SpanVal }
func (*FunDecl) topDeclNode()        {}

// BindDecl is a top-level `val`/`mut val` binding.
type BindDecl struct {
	SpanVal source.Span
	Mutable bool
	Name    string
	Value   Expr
}

func (b *BindDecl) Span() source.Span { return b.SpanVal }
func (*BindDecl) topDeclNode()        {}
