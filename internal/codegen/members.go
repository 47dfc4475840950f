package codegen

import (
	"fmt"

	"github.com/yangfawu/decaf-compiler/internal/ast"
	"github.com/yangfawu/decaf-compiler/internal/deptree"
	"github.com/yangfawu/decaf-compiler/internal/scope"
	"github.com/yangfawu/decaf-compiler/internal/types"
)

// preamble resets the temporary counter, assigns a0 to `this` for an
// instance member, and stamps a1.. onto each formal's value_reg
// (spec.md §4.5). The first numParams entries of table are exactly the
// formals, in declaration order, true by construction since the parser
// adds formals to the member's shared variable table before any local
// (spec.md §4.1).
func (g *Gen) preamble(table *scope.Table, isStatic bool, numParams int) *memberCtx {
	mc := &memberCtx{}
	argIdx := 0
	if !isStatic {
		mc.selfT = "a0"
		argIdx = 1
	}
	for i := 0; i < numParams && i < len(table.Vars); i++ {
		table.Vars[i].ValueReg = fmt.Sprintf("a%d", argIdx)
		argIdx++
	}
	return mc
}

func (g *Gen) genMethod(m *deptree.MethodRecord) *Builder {
	mc := g.preamble(m.VariableTable, m.Applicability == ast.Static, len(m.Params))
	mc.returnType = m.ReturnType

	mb := NewBuilder()
	mb.Linef("M_%s_%d:", m.Name, m.ID)
	g.genStmt(mb, mc, m.Body)
	if !alwaysReturns(m.Body) {
		mb.Line("ret")
	}
	return mb
}

func (g *Gen) genConstructor(c *deptree.ConstructorRecord) *Builder {
	mc := g.preamble(c.VariableTable, false, len(c.Params))
	mc.returnType = types.Void

	cb := NewBuilder()
	cb.Linef("C_%d:", c.ID)
	g.genStmt(cb, mc, c.Body)
	cb.Line("ret")
	return cb
}
