package codegen

import (
	"github.com/yangfawu/decaf-compiler/internal/ast"
	"github.com/yangfawu/decaf-compiler/internal/diagnostics"
)

func (g *Gen) genStmt(b *Builder, mc *memberCtx, s ast.Statement) {
	switch n := s.(type) {
	case *ast.IfStatement:
		g.genIf(b, mc, n)
	case *ast.WhileStatement:
		g.genWhile(b, mc, n)
	case *ast.ForStatement:
		g.genFor(b, mc, n)
	case *ast.ReturnStatement:
		g.genReturn(b, mc, n)
	case *ast.ExprStatement:
		g.evalExpr(b, mc, n.Expr)
	case *ast.BlockStatement:
		for _, stmt := range n.Statements {
			g.genStmt(b, mc, stmt)
		}
	case *ast.BreakStatement:
		if loop, ok := mc.currentLoop(); ok {
			b.Linef("jmp %s", loop.end)
		} else {
			g.err(diagnostics.ErrC003, n, "break used outside a loop")
		}
	case *ast.ContinueStatement:
		if loop, ok := mc.currentLoop(); ok {
			b.Linef("jmp %s", loop.test)
		} else {
			g.err(diagnostics.ErrC003, n, "continue used outside a loop")
		}
	case *ast.SkipStatement, *ast.VarDeclStatement:
		// Nothing to emit: a bare `;` is a no-op, and a local variable's
		// register is allocated lazily on first use (spec.md §4.5).
	default:
		g.err(diagnostics.ErrC003, s, "codegen: unhandled statement node %T", s)
	}
}

func (g *Gen) genIf(b *Builder, mc *memberCtx, n *ast.IfStatement) {
	elseLabel := g.newLabel()
	endLabel := g.newLabel()
	cond := g.evalExpr(b, mc, n.Cond)
	b.Linef("bz %s, %s", cond, elseLabel)
	g.genStmt(b, mc, n.Then)
	b.Linef("jmp %s", endLabel)
	b.Linef("%s:", elseLabel)
	if n.Else != nil {
		g.genStmt(b, mc, n.Else)
	}
	b.Linef("%s:", endLabel)
}

func (g *Gen) genWhile(b *Builder, mc *memberCtx, n *ast.WhileStatement) {
	testLabel := g.newLabel()
	endLabel := g.newLabel()
	mc.pushLoop(testLabel, endLabel)
	defer mc.popLoop()

	b.Linef("%s:", testLabel)
	cond := g.evalExpr(b, mc, n.Cond)
	b.Linef("bz %s, %s", cond, endLabel)
	g.genStmt(b, mc, n.Body)
	b.Linef("jmp %s", testLabel)
	b.Linef("%s:", endLabel)
}

func (g *Gen) genFor(b *Builder, mc *memberCtx, n *ast.ForStatement) {
	if n.Init != nil {
		g.evalExpr(b, mc, n.Init)
	}
	testLabel := g.newLabel()
	endLabel := g.newLabel()
	mc.pushLoop(testLabel, endLabel)
	defer mc.popLoop()

	b.Linef("%s:", testLabel)
	if n.Cond != nil {
		cond := g.evalExpr(b, mc, n.Cond)
		b.Linef("bz %s, %s", cond, endLabel)
	}
	g.genStmt(b, mc, n.Body)
	if n.Update != nil {
		g.evalExpr(b, mc, n.Update)
	}
	b.Linef("jmp %s", testLabel)
	b.Linef("%s:", endLabel)
}

// alwaysReturns reports whether every path through s ends in a return
// statement, i.e. whether control can never fall off the end of s.
// Used to decide whether a method body needs a synthesized trailing
// ret (spec.md line 35 reserves the unconditional implicit ret for
// constructors; a method only needs one if its body can fall through).
func alwaysReturns(s ast.Statement) bool {
	switch n := s.(type) {
	case *ast.ReturnStatement:
		return true
	case *ast.BlockStatement:
		if len(n.Statements) == 0 {
			return false
		}
		return alwaysReturns(n.Statements[len(n.Statements)-1])
	case *ast.IfStatement:
		return n.Else != nil && alwaysReturns(n.Then) && alwaysReturns(n.Else)
	default:
		return false
	}
}

func (g *Gen) genReturn(b *Builder, mc *memberCtx, n *ast.ReturnStatement) {
	if n.Value == nil {
		b.Line("ret")
		return
	}
	v := g.evalExpr(b, mc, n.Value)
	v = g.promote(b, mc, v, n.Value.Type(), mc.returnType)
	b.Linef("move a0, %s", v)
	b.Line("ret")
}
