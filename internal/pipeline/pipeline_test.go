package pipeline_test

import (
	"testing"

	"github.com/restrict-lang/rlc/internal/codegen"
	"github.com/restrict-lang/rlc/internal/pipeline"
)

func TestStrictPipelineProducesWAT(t *testing.T) {
	ctx := pipeline.NewContext("main.rl", `fun main = { 1 + 2 }`)
	pl := pipeline.New(
		pipeline.LexProcessor{},
		pipeline.ParseProcessor{},
		pipeline.CheckProcessor{},
		pipeline.CodegenProcessor{Profile: codegen.ProfileWASI},
	)
	ctx = pl.Run(ctx)
	if ctx.Fatal != nil {
		t.Fatalf("unexpected fatal error: %v", ctx.Fatal)
	}
	if ctx.WAT == "" {
		t.Fatalf("expected WAT output, got empty string")
	}
	if len(ctx.Tokens) == 0 {
		t.Fatalf("expected LexProcessor to populate Tokens")
	}
	if ctx.AST == nil {
		t.Fatalf("expected ParseProcessor to populate AST")
	}
	if ctx.Checker == nil {
		t.Fatalf("expected CheckProcessor to populate Checker")
	}
}

func TestStrictPipelineStopsAtParseError(t *testing.T) {
	ctx := pipeline.NewContext("main.rl", `fun main = {`)
	pl := pipeline.New(
		pipeline.LexProcessor{},
		pipeline.ParseProcessor{},
		pipeline.CheckProcessor{},
		pipeline.CodegenProcessor{Profile: codegen.ProfileWASI},
	)
	ctx = pl.Run(ctx)
	if ctx.Fatal == nil {
		t.Fatalf("expected a fatal parse error")
	}
	if ctx.Checker != nil {
		t.Fatalf("expected CheckProcessor to have been skipped after a parse failure")
	}
}

func TestStrictPipelineStopsAtCheckError(t *testing.T) {
	ctx := pipeline.NewContext("main.rl", `fun main = { x }`)
	pl := pipeline.New(
		pipeline.LexProcessor{},
		pipeline.ParseProcessor{},
		pipeline.CheckProcessor{},
		pipeline.CodegenProcessor{Profile: codegen.ProfileWASI},
	)
	ctx = pl.Run(ctx)
	if ctx.Fatal == nil {
		t.Fatalf("expected a fatal check error")
	}
	if ctx.WAT != "" {
		t.Fatalf("expected CodegenProcessor to have been skipped, got WAT output")
	}
}

func TestCollectingPipelineGathersDiagnosticsWithoutFatal(t *testing.T) {
	ctx := pipeline.NewContext("main.rl", "fun main = {\n\tval x = y\n\tx\n}")
	pl := pipeline.New(
		pipeline.LexProcessor{},
		pipeline.ParseProcessor{Recovering: true},
		pipeline.CheckProcessor{Collecting: true},
	)
	ctx = pl.Run(ctx)
	if ctx.Fatal != nil {
		t.Fatalf("collecting mode should not set Fatal, got: %v", ctx.Fatal)
	}
	if len(ctx.Diagnostics) == 0 {
		t.Fatalf("expected at least one collected diagnostic")
	}
}
