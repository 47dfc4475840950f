package codegen

import "github.com/yangfawu/decaf-compiler/internal/pipeline"

// Processor is the pipeline.Processor that emits AMI for a type-correct
// program. It no-ops once the pipeline has already accumulated errors,
// since the code generator assumes every expression's resolution slot
// was filled in by a clean analyzer pass.
type Processor struct{}

func (cp *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if !ctx.OK() || ctx.AstRoot == nil {
		return ctx
	}
	g := New(ctx.Tree)
	ctx.AMI = g.Compile(ctx.AstRoot)
	for _, err := range g.Errors() {
		ctx.AddError(err)
	}
	return ctx
}
