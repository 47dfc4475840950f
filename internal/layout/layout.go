// Package layout implements the instance/static layout pass of spec.md
// §4.4: it walks classes in the order the caller supplies (the same
// declaration order the analyzer registered them in, per spec.md §4.3),
// assigning each instance field an offset starting from its superclass's
// size, threading a single static-field counter across every class
// regardless of inheritance, and setting each ClassRecord's size exactly
// once.
package layout

import (
	"github.com/yangfawu/decaf-compiler/internal/ast"
	"github.com/yangfawu/decaf-compiler/internal/deptree"
)

// Result is the outcome of running the layout pass once over a program's
// classes.
type Result struct {
	// StaticSlots is the total number of static field slots across the
	// whole program; the backend reserves this many global slots.
	StaticSlots int
}

// Run assigns FieldRecord.Offset and ClassRecord.Size for every class in
// classes, which must be supplied in declaration order (so a class's
// super has already been laid out by the time the class itself is
// visited, true by construction since spec.md §4.2 forbids a class from
// extending a not-yet-registered class).
func Run(tree *deptree.Tree, classes []*deptree.ClassRecord) Result {
	staticCounter := 0
	for _, c := range classes {
		layoutClass(tree, c, &staticCounter)
	}
	return Result{StaticSlots: staticCounter}
}

func layoutClass(tree *deptree.Tree, c *deptree.ClassRecord, staticCounter *int) {
	if c.SizeIsSet() {
		return
	}

	instanceOffset := 0
	if c.Super != "" {
		super, ok := tree.Lookup(c.Super)
		if ok {
			if !super.SizeIsSet() {
				// Declaration order guarantees this shouldn't happen, but
				// laying out the super first keeps the pass correct even if
				// a caller hands classes out of order.
				layoutClass(tree, super, staticCounter)
			}
			instanceOffset = super.Size
		}
	}

	for _, f := range c.Fields {
		if f.Applicability == ast.Static {
			f.Offset = *staticCounter
			*staticCounter++
			continue
		}
		f.Offset = instanceOffset
		instanceOffset++
	}

	c.SetSize(instanceOffset)
}
