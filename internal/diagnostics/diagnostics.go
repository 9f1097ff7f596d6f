// Package diagnostics defines the error taxonomy shared by the lexer,
// parser, analyzer, and code generator, plus a renderer for presenting them
// against source text.
package diagnostics

import (
	"fmt"

	"github.com/restrict-lang/rlc/internal/source"
)

// Phase identifies which compiler stage raised a diagnostic.
type Phase string

const (
	PhaseLexer   Phase = "lexer"
	PhaseParser  Phase = "parser"
	PhaseChecker Phase = "checker"
	PhaseCodegen Phase = "codegen"
)

// Severity mirrors the machine-readable form from spec §6.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
	SeverityHelp    Severity = "help"
)

// Code identifies a specific diagnostic kind. Codes group by phase prefix:
// L (lexer), P (parser), T (type checker), G (codegen).
type Code string

const (
	// Lexer (spec §4.1)
	LInvalidChar         Code = "L001"
	LUnterminatedString  Code = "L002"
	LUnterminatedComment Code = "L003"
	LInvalidEscape       Code = "L004"

	// Parser (spec §4.2)
	PUnexpectedToken Code = "P001"
	PExpected        Code = "P002"

	// Type checker (spec §4.3.10)
	TUndefinedVariable   Code = "T001"
	TTypeMismatch        Code = "T002"
	TAffineViolation     Code = "T003"
	TImmutableReassign   Code = "T004"
	TUnknownType         Code = "T005"
	TUnknownField        Code = "T006"
	TCloneFrozenRecord   Code = "T007"
	TFreezeAlreadyFrozen Code = "T008"
	TUndefinedRecord     Code = "T009"
	TUndefinedFunction   Code = "T010"
	TArityMismatch       Code = "T011"
	TUnavailableContext  Code = "T012"
	TUnsupportedFeature  Code = "T013"
	TNonExhaustiveMatch  Code = "T014"

	// Codegen (spec §4.4)
	GUndefinedVariable Code = "G001"
	GUndefinedFunction Code = "G002"
	GUnsupportedType   Code = "G003"
	GNotImplemented    Code = "G004"
)

// Diagnostic is a fully-formed, renderable compiler message: a severity, a
// code, a primary span with a label, and optional secondary notes/help.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Phase    Phase
	Message  string
	Span     source.Span
	Label    string
	Notes    []string
	Help     []string
}

// Error implements the error interface so a Diagnostic can flow through any
// ordinary Go error-returning API.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
}

// DiagnosticError is the error type produced by compiler phases: a
// Diagnostic plus enough phase/span context to resynchronize or deduplicate.
type DiagnosticError struct {
	*Diagnostic
}

func New(phase Phase, code Code, span source.Span, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{&Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Phase:    phase,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	}}
}

// Key returns a deduplication key — same phase/code/span collapses to one
// reported diagnostic, matching the teacher's errorSet dedup strategy.
func (e *DiagnosticError) Key() string {
	return fmt.Sprintf("%s:%s:%d:%d", e.Phase, e.Code, e.Span.Start, e.Span.End)
}
