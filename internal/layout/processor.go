package layout

import (
	"github.com/yangfawu/decaf-compiler/internal/deptree"
	"github.com/yangfawu/decaf-compiler/internal/pipeline"
)

// Processor is the pipeline.Processor that assigns field offsets and
// class sizes over whatever classes the analyzer managed to register,
// visited in source declaration order, regardless of earlier type errors, so a later stage (or a diagnostic
// consumer) can still inspect a partially laid-out tree.
type Processor struct{}

func (lp *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Tree == nil {
		return ctx
	}
	var classes []*deptree.ClassRecord
	if ctx.AstRoot != nil {
		for _, decl := range ctx.AstRoot.Classes {
			if rec, ok := ctx.Tree.Lookup(decl.Name); ok {
				classes = append(classes, rec)
			}
		}
	}
	result := Run(ctx.Tree, classes)
	ctx.StaticSlots = result.StaticSlots
	return ctx
}
