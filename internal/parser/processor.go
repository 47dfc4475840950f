package parser

import (
	"github.com/yangfawu/decaf-compiler/internal/lexer"
	"github.com/yangfawu/decaf-compiler/internal/pipeline"
)

// Processor is the pipeline.Processor that lexes and parses ctx.Source
// into ctx.AstRoot.
type Processor struct{}

func (pp *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	ctx.Tokens = lexer.All(ctx.Source)
	prog, errs := ParseProgram(ctx.Tokens)
	ctx.AstRoot = prog
	for _, err := range errs {
		ctx.AddError(err)
	}
	return ctx
}
