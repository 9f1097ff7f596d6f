// Command rlc is the primary driver: it lexes, parses, type-checks, and
// lowers a single source file, per spec §6. Invoked as `rlc <source_file>`
// it writes a `.wat` file alongside the source unless checking or code
// generation fails. Only with `-dump` does it also print the token stream
// and the top-level declarations as a developer diagnostic; without it,
// nothing of the tokens or AST is printed.
//
// An optional rlc.yaml next to the source file selects the target profile
// and output path (internal/config); CLI flags are not needed for the
// common case.
//
// Grounded on the teacher's cmd/funxy/main.go (os.Args subcommand dispatch,
// no flag package) and mcgru-funxy's pipeline-driven CLI wiring.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/codegen"
	"github.com/restrict-lang/rlc/internal/config"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/pipeline"
	"github.com/restrict-lang/rlc/internal/source"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-dump] <source_file>\n", os.Args[0])
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	dump := false
	args := os.Args[1:]
	if args[0] == "-dump" || args[0] == "--dump" {
		dump = true
		args = args[1:]
	}
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}
	sourcePath := args[0]

	if !config.HasSourceExt(sourcePath) {
		fmt.Fprintf(os.Stderr, "warning: %s does not have the %s extension\n", sourcePath, config.SourceFileExt)
	}

	text, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", os.Args[0], err)
		os.Exit(1)
	}

	proj, err := config.LoadProject(projectFilePath(sourcePath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: invalid rlc.yaml: %s\n", os.Args[0], err)
		os.Exit(1)
	}

	ctx := pipeline.NewContext(sourcePath, string(text))
	pl := pipeline.New(
		pipeline.LexProcessor{},
		pipeline.ParseProcessor{Recovering: true},
		pipeline.CheckProcessor{Collecting: true},
	)
	ctx = pl.Run(ctx)

	file := source.NewFile(sourcePath, string(text))
	renderer := diagnostics.NewRenderer(file, os.Stderr)

	if dump {
		dumpTokens(ctx)
		dumpAST(ctx.AST)
	}

	if ctx.Fatal != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", os.Args[0], ctx.Fatal)
		os.Exit(1)
	}

	if len(ctx.Diagnostics) > 0 {
		ds := make([]*diagnostics.Diagnostic, len(ctx.Diagnostics))
		for i, d := range ctx.Diagnostics {
			ds[i] = d.Diagnostic
		}
		renderer.RenderAll(os.Stderr, ds)
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}

	wat, err := codegen.Generate(ctx.AST, ctx.Checker, codegen.Profile(proj.Profile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", os.Args[0], err)
		os.Exit(1)
	}

	outPath := proj.Out
	if outPath == "" {
		outPath = config.TrimSourceExt(sourcePath) + ".wat"
	}
	if err := os.WriteFile(outPath, []byte(wat), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", os.Args[0], err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", outPath)
}

// projectFilePath looks for rlc.yaml next to the source file rather than in
// the working directory, so a driver invoked from anywhere still picks up a
// project's profile and output path.
func projectFilePath(sourcePath string) string {
	return filepath.Join(filepath.Dir(sourcePath), "rlc.yaml")
}

func dumpTokens(ctx *pipeline.Context) {
	fmt.Println("-- tokens --")
	for _, tok := range ctx.Tokens {
		fmt.Println(tok.String())
	}
}

func dumpAST(prog *ast.Program) {
	fmt.Println("-- ast --")
	if prog == nil {
		fmt.Println("<nil>")
		return
	}
	for _, d := range prog.Declarations {
		fmt.Printf("%T @%v\n", d, d.Span())
	}
}
