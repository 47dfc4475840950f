// Package pipeline threads a shared Context through an ordered list of
// compiler stages.
package pipeline

// Processor is one stage of the compiler pipeline.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline is a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline out of processors, run in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, threading ctx through each. Stages
// keep running even after one records errors, so the context accumulates
// every diagnostic a given run can produce; it is each Processor's own
// responsibility to no-op once upstream state it depends on is missing.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
