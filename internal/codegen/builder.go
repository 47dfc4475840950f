package codegen

import "fmt"

// Builder accumulates the tree-structured list of lines spec.md §4.5
// describes: a flat line is a plain string, and a nested group (one per
// class, one per member) is a []interface{} appended as a single item,
// so the emitter's DFS walk reproduces the program's natural grouping
// without codegen having to know anything about indentation.
type Builder struct {
	items []interface{}
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Line appends a single line verbatim.
func (b *Builder) Line(s string) { b.items = append(b.items, s) }

// Linef appends a formatted line.
func (b *Builder) Linef(format string, args ...interface{}) {
	b.Line(fmt.Sprintf(format, args...))
}

// Append nests child's lines as one sub-tree under b.
func (b *Builder) Append(child *Builder) {
	if len(child.items) == 0 {
		return
	}
	b.items = append(b.items, child.items)
}

// Items returns the accumulated tree, ready to hang off pipeline.Context.AMI.
func (b *Builder) Items() []interface{} { return b.items }
