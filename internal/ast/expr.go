package ast

import "github.com/restrict-lang/rlc/internal/source"

// Expr is any expression node (spec §3 Expr variants).
type Expr interface {
	Node
	exprNode()
}

// Stmt is a block-level statement: a binding, an assignment, or a bare
// expression.
type Stmt interface {
	Node
	stmtNode()
}

// Block is `{ statements... expr? }`; a block with no trailing expression
// has type Unit.
type Block struct {
	SpanVal    source.Span
	Statements []Stmt
	Expr       Expr // nil if the block has no trailing expression
}

func (b *Block) Span() source.Span { return b.SpanVal }
func (b *Block) exprNode()         {}

// StmtBinding is a `val`/`mut val` binding used as a statement.
type StmtBinding struct {
	SpanVal source.Span
	Mutable bool
	Name    string
	Value   Expr
}

func (s *StmtBinding) Span() source.Span { return s.SpanVal }
func (*StmtBinding) stmtNode()           {}

// StmtAssignment is `ident = expr`.
type StmtAssignment struct {
	SpanVal source.Span
	Name    string
	Value   Expr
}

func (s *StmtAssignment) Span() source.Span { return s.SpanVal }
func (*StmtAssignment) stmtNode()           {}

// StmtExpr wraps a bare expression statement.
type StmtExpr struct {
	SpanVal source.Span
	Expr    Expr
}

func (s *StmtExpr) Span() source.Span { return s.SpanVal }
func (*StmtExpr) stmtNode()           {}

// --- Literals ---

type IntLit struct {
	SpanVal source.Span
	Value   int64
}

func (n *IntLit) Span() source.Span { return n.SpanVal }
func (*IntLit) exprNode()           {}

type FloatLit struct {
	SpanVal source.Span
	Value   float64
}

func (n *FloatLit) Span() source.Span { return n.SpanVal }
func (*FloatLit) exprNode()           {}

type StringLit struct {
	SpanVal source.Span
	Value   string
}

func (n *StringLit) Span() source.Span { return n.SpanVal }
func (*StringLit) exprNode()           {}

type CharLit struct {
	SpanVal source.Span
	Value   rune
}

func (n *CharLit) Span() source.Span { return n.SpanVal }
func (*CharLit) exprNode()           {}

type BoolLit struct {
	SpanVal source.Span
	Value   bool
}

func (n *BoolLit) Span() source.Span { return n.SpanVal }
func (*BoolLit) exprNode()           {}

type UnitLit struct {
	SpanVal source.Span
}

func (n *UnitLit) Span() source.Span { return n.SpanVal }
func (*UnitLit) exprNode()           {}

type Ident struct {
	SpanVal source.Span
	Name    string
}

func (n *Ident) Span() source.Span { return n.SpanVal }
func (*Ident) exprNode()           {}

// --- Records ---

type FieldInit struct {
	Name  string
	Value Expr
}

type RecordLit struct {
	SpanVal source.Span
	Name    string
	Fields  []FieldInit
}

func (n *RecordLit) Span() source.Span { return n.SpanVal }
func (*RecordLit) exprNode()           {}

// Clone is `base.clone { field = expr, ... }`.
type Clone struct {
	SpanVal source.Span
	Base    Expr
	Updates []FieldInit
}

func (n *Clone) Span() source.Span { return n.SpanVal }
func (*Clone) exprNode()           {}

// Freeze is `expr freeze`.
type Freeze struct {
	SpanVal source.Span
	Value   Expr
}

func (n *Freeze) Span() source.Span { return n.SpanVal }
func (*Freeze) exprNode()           {}

type FieldAccess struct {
	SpanVal source.Span
	Base    Expr
	Field   string
}

func (n *FieldAccess) Span() source.Span { return n.SpanVal }
func (*FieldAccess) exprNode()           {}

// --- Control flow ---

type ElseIf struct {
	Cond Expr
	Then *Block
}

// Then is the `cond then { ... } else if ... else { ... }` conditional form.
type Then struct {
	SpanVal  source.Span
	Cond     Expr
	ThenBody *Block
	ElseIfs  []ElseIf
	Else     *Block // nil if absent
}

func (n *Then) Span() source.Span { return n.SpanVal }
func (*Then) exprNode()           {}

type While struct {
	SpanVal source.Span
	Cond    Expr
	Body    *Block
}

func (n *While) Span() source.Span { return n.SpanVal }
func (*While) exprNode()           {}

type MatchArm struct {
	Pattern Pattern
	Body    *Block
}

type Match struct {
	SpanVal  source.Span
	Scrutinee Expr
	Arms     []MatchArm
}

func (n *Match) Span() source.Span { return n.SpanVal }
func (*Match) exprNode()           {}

// --- Calls, operators, pipes ---

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

func (op BinaryOp) String() string {
	return [...]string{"+", "-", "*", "/", "%", "==", "!=", "<", "<=", ">", ">="}[op]
}

type Binary struct {
	SpanVal source.Span
	Op      BinaryOp
	Left    Expr
	Right   Expr
}

func (n *Binary) Span() source.Span { return n.SpanVal }
func (*Binary) exprNode()           {}

type Call struct {
	SpanVal source.Span
	Func    Expr
	Args    []Expr
	// IsOSV records whether this call was written in Object-Subject-Verb
	// form ((args) verb / arg verb) rather than direct-call form (verb(args)).
	// Both lower identically (spec §4.3.8); the flag exists for tooling
	// (pretty-printing, diagnostics) that wants to preserve source shape.
	IsOSV bool
}

func (n *Call) Span() source.Span { return n.SpanVal }
func (*Call) exprNode()           {}

type PipeOp int

const (
	PipeForward PipeOp = iota // |>
	PipeMut                   // |>>
	PipeBar                   // |
)

// Pipe is `expr |> target` where target is either a binding identifier or
// an expression naming a function.
type Pipe struct {
	SpanVal source.Span
	Op      PipeOp
	Source  Expr
	// TargetIdent is set when the target is a fresh-binding identifier
	// (`e |> name`); TargetExpr is set when the target is a function
	// expression (`e |> f`). Exactly one is non-nil/non-empty.
	TargetIdent string
	TargetExpr  Expr
}

func (n *Pipe) Span() source.Span { return n.SpanVal }
func (*Pipe) exprNode()           {}

// With pushes named contexts onto the context stack for the body's scope.
type With struct {
	SpanVal  source.Span
	Contexts []string
	Body     *Block
}

func (n *With) Span() source.Span { return n.SpanVal }
func (*With) exprNode()           {}

// --- Collections ---

type ListLit struct {
	SpanVal  source.Span
	Elements []Expr
}

func (n *ListLit) Span() source.Span { return n.SpanVal }
func (*ListLit) exprNode()           {}

type ArrayLit struct {
	SpanVal  source.Span
	Elements []Expr
}

func (n *ArrayLit) Span() source.Span { return n.SpanVal }
func (*ArrayLit) exprNode()           {}

type SomeExpr struct {
	SpanVal source.Span
	Value   Expr
}

func (n *SomeExpr) Span() source.Span { return n.SpanVal }
func (*SomeExpr) exprNode()           {}

type NoneExpr struct {
	SpanVal source.Span
}

func (n *NoneExpr) Span() source.Span { return n.SpanVal }
func (*NoneExpr) exprNode()           {}

type Lambda struct {
	SpanVal source.Span
	Params  []*Param
	Body    Expr
}

func (n *Lambda) Span() source.Span { return n.SpanVal }
func (*Lambda) exprNode()           {}
