package analyzer

import (
	"github.com/yangfawu/decaf-compiler/internal/ast"
	"github.com/yangfawu/decaf-compiler/internal/diagnostics"
	"github.com/yangfawu/decaf-compiler/internal/types"
)

// latch is satisfied by every concrete statement type via the embedded
// stmtBase, letting checkStmt record the one-shot type-correctness result
// without a type switch of its own (spec.md §3).
type latch interface {
	SetTypeCorrect(bool)
}

// checkStmt type-checks s and latches whether it introduced any new
// diagnostic.
func (a *Analyzer) checkStmt(s ast.Statement, c *ctx) {
	if s == nil {
		return
	}
	before := len(a.errs)
	a.checkStmtInner(s, c)
	if l, ok := s.(latch); ok {
		l.SetTypeCorrect(len(a.errs) == before)
	}
}

func (a *Analyzer) checkStmtInner(s ast.Statement, c *ctx) {
	switch n := s.(type) {
	case *ast.IfStatement:
		a.checkCondition(n.Cond, n, c)
		a.checkStmt(n.Then, c)
		a.checkStmt(n.Else, c)
	case *ast.WhileStatement:
		a.checkCondition(n.Cond, n, c)
		a.checkStmt(n.Body, c)
	case *ast.ForStatement:
		if n.Init != nil {
			a.typeOf(n.Init, c)
		}
		if n.Cond != nil {
			a.checkCondition(n.Cond, n, c)
		}
		if n.Update != nil {
			a.typeOf(n.Update, c)
		}
		a.checkStmt(n.Body, c)
	case *ast.ReturnStatement:
		a.checkReturn(n, c)
	case *ast.ExprStatement:
		a.typeOf(n.Expr, c)
	case *ast.BlockStatement:
		for _, stmt := range n.Statements {
			a.checkStmt(stmt, c)
		}
	case *ast.VarDeclStatement:
		a.checkDeclaredType(types.Resolve(n.Type.Name), n)
	case *ast.BreakStatement, *ast.ContinueStatement, *ast.SkipStatement:
		// No type information to check.
	default:
		a.err(diagnostics.ErrC003, s, "analyzer: unhandled statement node %T", s)
	}
}

func (a *Analyzer) checkCondition(cond ast.Expression, site ast.Node, c *ctx) {
	t := a.typeOf(cond, c)
	if poisoned(t) {
		return
	}
	if t != types.Boolean {
		a.err(diagnostics.ErrT010, site, "condition must be boolean, got %s", t)
	}
}

func (a *Analyzer) checkReturn(n *ast.ReturnStatement, c *ctx) {
	if c.isConstructor {
		a.err(diagnostics.ErrT008, n, "constructors cannot contain a return statement")
		return
	}
	if n.Value == nil {
		if c.returnType != types.Void {
			a.err(diagnostics.ErrT009, n, "missing return value in a method returning %s", c.returnType)
		}
		return
	}
	vt := a.typeOf(n.Value, c)
	if poisoned(vt) {
		return
	}
	if c.returnType == types.Void {
		a.err(diagnostics.ErrT009, n, "void method cannot return a value")
		return
	}
	if !a.tree.IsSubtype(vt, c.returnType) {
		a.err(diagnostics.ErrT009, n, "cannot return %s from a method declared to return %s", vt, c.returnType)
	}
}
