// Package pipeline wires the Lexer, Parser, Type Checker, and Code
// Generator into the two compilation modes spec §7 calls for: a strict
// driver pipeline that stops at the first error, and an editor/collecting
// pipeline that gathers every diagnostic. Grounded on the teacher's
// Pipeline/Processor/PipelineContext split (mcgru-funxy's
// internal/pipeline), reduced to this spec's four stages.
package pipeline

// Processor is any stage that can process a Context and hand back a
// (possibly modified) one.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline runs a fixed sequence of Processors over one Context.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline from an ordered stage list.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order. A stage that records a fatal error
// (ctx.Fatal != nil) short-circuits the remaining stages, matching spec
// §7's "errors never cross phase boundaries silently" rule: each phase's
// entry point either hands the next phase well-typed input or stops.
func (p *Pipeline) Run(initial *Context) *Context {
	ctx := initial
	for _, proc := range p.processors {
		if ctx.Fatal != nil {
			break
		}
		ctx = proc.Process(ctx)
	}
	return ctx
}
