// Package codegen is the code generator of spec.md §4.5: it walks the
// typed, type-checked AST per class, per member, per statement, per
// expression, threading a register allocator through the walk and
// emitting three-address abstract-machine assembly ("AMI").
//
// There are three virtual register families (spec.md §4.5): argument
// registers a0.. (a0 carries `this` for an instance member and the
// callee's return value at a call site; a1.. carry positional
// arguments), temporary registers t0.. (reset at the top of every member,
// snapshotted as a "seed" around each call so the callee can reuse the
// same names without clobbering the caller's live values), and label
// registers L0.. (a single process-wide counter that is never reset).
package codegen

import (
	"fmt"

	"github.com/yangfawu/decaf-compiler/internal/ast"
	"github.com/yangfawu/decaf-compiler/internal/deptree"
	"github.com/yangfawu/decaf-compiler/internal/diagnostics"
	"github.com/yangfawu/decaf-compiler/internal/types"
)

// Gen is the code generator for one compilation. It holds the
// process-wide label counter (spec.md §4.5: "never reset during normal
// operation") and accumulates code-gen diagnostics (unsupported string
// emission, missing self_t, internal invariants).
type Gen struct {
	tree    *deptree.Tree
	labelN  int
	errs    []*diagnostics.DiagnosticError
}

// New constructs a Gen over an already analyzed and laid-out dependency
// tree.
func New(tree *deptree.Tree) *Gen { return &Gen{tree: tree} }

// Errors returns every code-gen diagnostic collected during Compile.
func (g *Gen) Errors() []*diagnostics.DiagnosticError { return g.errs }

func (g *Gen) err(code diagnostics.Code, n ast.Node, format string, args ...interface{}) {
	g.errs = append(g.errs, diagnostics.Newf(code, n.GetToken(), format, args...))
}

func (g *Gen) newLabel() string {
	l := fmt.Sprintf("L%d", g.labelN)
	g.labelN++
	return l
}

// memberCtx is the per-method/constructor code-gen state: the temporary
// counter (reset at the top of every member) and the innermost loop's
// test/end labels for break/continue.
type memberCtx struct {
	temp       int
	selfT      string // "a0" for an instance member; "" for a static one
	returnType types.Type
	loops      []loopLabels
}

type loopLabels struct {
	test string
	end  string
}

func (mc *memberCtx) pushLoop(test, end string) { mc.loops = append(mc.loops, loopLabels{test, end}) }
func (mc *memberCtx) popLoop()                  { mc.loops = mc.loops[:len(mc.loops)-1] }
func (mc *memberCtx) currentLoop() (loopLabels, bool) {
	if len(mc.loops) == 0 {
		return loopLabels{}, false
	}
	return mc.loops[len(mc.loops)-1], true
}

func (g *Gen) newTemp(mc *memberCtx) string {
	t := fmt.Sprintf("t%d", mc.temp)
	mc.temp++
	return t
}

// promote emits an itof when from is int and to is float, returning the
// (possibly new) register holding a value of type to. Every other
// from/to pairing is a no-op: the register already holds the right
// representation (spec.md §4.5's int→float promotion rule applies
// uniformly to arithmetic, comparison, assignment, argument passing, and
// return).
func (g *Gen) promote(b *Builder, mc *memberCtx, reg string, from, to types.Type) string {
	if from == types.Int && to == types.Float {
		t := g.newTemp(mc)
		b.Linef("itof %s, %s", t, reg)
		return t
	}
	return reg
}

// Compile emits AMI for every class in prog, in declaration order, and
// returns the resulting line tree for pipeline.Context.AMI.
func (g *Gen) Compile(prog *ast.Program) []interface{} {
	top := NewBuilder()
	for _, class := range prog.Classes {
		rec, ok := g.tree.Lookup(class.Name)
		if !ok {
			continue // registration already failed; nothing to emit
		}
		top.Append(g.genClass(rec))
	}
	return top.Items()
}

func (g *Gen) genClass(rec *deptree.ClassRecord) *Builder {
	cb := NewBuilder()
	cb.Linef("# class %s", rec.Name)
	if rec.Constructor != nil {
		cb.Append(g.genConstructor(rec.Constructor))
	}
	for _, m := range rec.Methods {
		cb.Append(g.genMethod(m))
	}
	return cb
}
