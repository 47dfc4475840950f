package analyzer

import "github.com/yangfawu/decaf-compiler/internal/pipeline"

// Processor is the pipeline.Processor that registers every class into
// ctx.Tree and type-checks the program.
type Processor struct{}

func (ap *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.AstRoot == nil {
		return ctx
	}
	az := New(ctx.Tree, ctx.Counters)
	for _, err := range az.Analyze(ctx.AstRoot) {
		ctx.AddError(err)
	}
	return ctx
}
