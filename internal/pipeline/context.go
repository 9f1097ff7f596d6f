package pipeline

import (
	"github.com/restrict-lang/rlc/internal/analyzer"
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/token"
)

// Context holds everything passed between pipeline stages, mirroring the
// teacher's PipelineContext: source text in, diagnostics and the final
// artifact (AST / Checker / WAT text) out.
type Context struct {
	SourceCode string
	FilePath   string

	Tokens  []token.Token
	AST     *ast.Program
	Checker *analyzer.Checker
	WAT     string

	// Fatal is set by the strict pipeline's stages on the first error; its
	// presence stops the remaining stages from running (spec §7).
	Fatal error

	// Diagnostics accumulates every non-fatal diagnostic in collecting mode
	// (parse recovery errors, collected type errors).
	Diagnostics []*diagnostics.DiagnosticError
}

// NewContext starts a fresh pipeline run over source.
func NewContext(filePath, source string) *Context {
	return &Context{FilePath: filePath, SourceCode: source}
}
