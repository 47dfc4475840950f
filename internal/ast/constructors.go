package ast

import "github.com/yangfawu/decaf-compiler/internal/token"

// The constructors below exist so other packages (chiefly parser) never
// need to name the unexported stmtBase/exprBase embeds directly; they just
// get a node with its token/range already set.

func base(tok token.Token, r Range) exprBase { return exprBase{Tok: tok, Rng: r} }
func sbase(tok token.Token, r Range) stmtBase { return stmtBase{Tok: tok, Rng: r} }

func NewVar(tok token.Token, r Range, name string) *VarExpr {
	return &VarExpr{exprBase: base(tok, r), Name: name}
}

func NewClassRef(tok token.Token, r Range, name string) *ClassReferenceExpr {
	return &ClassReferenceExpr{exprBase: base(tok, r), Name: name}
}

func NewUnary(tok token.Token, r Range, op UnaryOp, inner Expression) *UnaryExpr {
	return &UnaryExpr{exprBase: base(tok, r), Op: op, Inner: inner}
}

func NewBinary(tok token.Token, r Range, op BinaryOp, l, rhs Expression) *BinaryExpr {
	return &BinaryExpr{exprBase: base(tok, r), Op: op, Left: l, Right: rhs}
}

func NewAssign(tok token.Token, r Range, l, rhs Expression) *AssignExpr {
	return &AssignExpr{exprBase: base(tok, r), Left: l, Right: rhs}
}

func NewAuto(tok token.Token, r Range, inner Expression, op AutoOp, fix AutoFix) *AutoExpr {
	return &AutoExpr{exprBase: base(tok, r), Inner: inner, Op: op, Fix: fix}
}

func NewFieldAccess(tok token.Token, r Range, b Expression, name, containingClass string) *FieldAccessExpr {
	return &FieldAccessExpr{exprBase: base(tok, r), Base: b, Name: name, ContainingClass: containingClass}
}

func NewMethodCall(tok token.Token, r Range, b Expression, name string, args []Expression, containingClass string) *MethodCallExpr {
	return &MethodCallExpr{exprBase: base(tok, r), Base: b, Name: name, Args: args, ContainingClass: containingClass}
}

func NewNewObject(tok token.Token, r Range, className string, args []Expression, containingClass string) *NewObjectExpr {
	return &NewObjectExpr{exprBase: base(tok, r), ClassName: className, Args: args, ContainingClass: containingClass}
}

func NewThis(tok token.Token, r Range) *ThisExpr   { return &ThisExpr{exprBase: base(tok, r)} }
func NewSuper(tok token.Token, r Range) *SuperExpr { return &SuperExpr{exprBase: base(tok, r)} }

func NewIf(tok token.Token, r Range, cond Expression, then, els Statement) *IfStatement {
	return &IfStatement{stmtBase: sbase(tok, r), Cond: cond, Then: then, Else: els}
}

func NewWhile(tok token.Token, r Range, cond Expression, body Statement) *WhileStatement {
	return &WhileStatement{stmtBase: sbase(tok, r), Cond: cond, Body: body}
}

func NewFor(tok token.Token, r Range, init, cond, update Expression, body Statement) *ForStatement {
	return &ForStatement{stmtBase: sbase(tok, r), Init: init, Cond: cond, Update: update, Body: body}
}

func NewReturn(tok token.Token, r Range, value Expression) *ReturnStatement {
	return &ReturnStatement{stmtBase: sbase(tok, r), Value: value}
}

func NewExprStatement(tok token.Token, r Range, e Expression) *ExprStatement {
	return &ExprStatement{stmtBase: sbase(tok, r), Expr: e}
}

func NewBlock(tok token.Token, r Range) *BlockStatement {
	return &BlockStatement{stmtBase: sbase(tok, r)}
}

func NewBreak(tok token.Token, r Range) *BreakStatement { return &BreakStatement{stmtBase: sbase(tok, r)} }

func NewContinue(tok token.Token, r Range) *ContinueStatement {
	return &ContinueStatement{stmtBase: sbase(tok, r)}
}

func NewSkip(tok token.Token, r Range) *SkipStatement {
	return &SkipStatement{stmtBase: sbase(tok, r)}
}

func NewVarDecl(tok token.Token, r Range, t *TypeName, names []string) *VarDeclStatement {
	return &VarDeclStatement{stmtBase: sbase(tok, r), Type: t, Names: names}
}
