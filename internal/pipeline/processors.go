package pipeline

import (
	"github.com/restrict-lang/rlc/internal/analyzer"
	"github.com/restrict-lang/rlc/internal/codegen"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/lexer"
	"github.com/restrict-lang/rlc/internal/parser"
)

// LexProcessor tokenizes SourceCode for the CLI's token-dump diagnostic
// (spec §6: "Primary binary ... prints tokens and AST"). The parser
// re-tokenizes internally rather than consuming this stage's output,
// matching spec §5's "each phase owns its input" rule — phases don't share
// mutable state across the boundary, they only hand off source text.
type LexProcessor struct{}

func (LexProcessor) Process(ctx *Context) *Context {
	toks, lexErr := lexer.Tokenize(ctx.SourceCode)
	if lexErr != nil {
		ctx.Fatal = lexErr
		return ctx
	}
	ctx.Tokens = toks
	return ctx
}

// ParseProcessor runs the parser in strict or recovering mode.
type ParseProcessor struct {
	Recovering bool
}

func (p ParseProcessor) Process(ctx *Context) *Context {
	if p.Recovering {
		prog, errs := parser.ParseRecovering(ctx.SourceCode)
		ctx.AST = prog
		for _, e := range errs {
			ctx.Diagnostics = append(ctx.Diagnostics, diagnostics.New(diagnostics.PhaseParser, diagnostics.PUnexpectedToken, e.Span, "%s", e.Message))
		}
		return ctx
	}
	prog, err := parser.Parse(ctx.SourceCode)
	if err != nil {
		ctx.Fatal = err
		return ctx
	}
	ctx.AST = prog
	return ctx
}

// CheckProcessor runs the type checker in strict or collecting mode.
type CheckProcessor struct {
	Collecting bool
}

func (c CheckProcessor) Process(ctx *Context) *Context {
	if ctx.AST == nil {
		return ctx
	}
	if c.Collecting {
		chk, errs := analyzer.CheckProgramCollecting(ctx.AST)
		ctx.Checker = chk
		ctx.Diagnostics = append(ctx.Diagnostics, errs...)
		return ctx
	}
	chk, err := analyzer.CheckProgram(ctx.AST)
	if err != nil {
		ctx.Fatal = err
		return ctx
	}
	ctx.Checker = chk
	return ctx
}

// CodegenProcessor lowers the checked program to WAT. It never runs in
// collecting mode: codegen errors are always fatal (spec §7).
type CodegenProcessor struct {
	Profile codegen.Profile
}

func (g CodegenProcessor) Process(ctx *Context) *Context {
	if ctx.AST == nil || ctx.Checker == nil {
		return ctx
	}
	wat, err := codegen.Generate(ctx.AST, ctx.Checker, g.Profile)
	if err != nil {
		ctx.Fatal = err
		return ctx
	}
	ctx.WAT = wat
	return ctx
}
