package analyzer

import (
	"github.com/yangfawu/decaf-compiler/internal/ast"
	"github.com/yangfawu/decaf-compiler/internal/deptree"
	"github.com/yangfawu/decaf-compiler/internal/diagnostics"
	"github.com/yangfawu/decaf-compiler/internal/scope"
	"github.com/yangfawu/decaf-compiler/internal/types"
)

// typeOf returns e's memoized type, computing and caching it on first
// call (spec.md §3: "lazily computed and memoized").
func (a *Analyzer) typeOf(e ast.Expression, c *ctx) types.Type {
	if t := e.Type(); t != nil {
		return t
	}
	t := a.computeType(e, c)
	e.SetType(t)
	return t
}

// poisoned reports whether t is the error type, in which case a caller
// should propagate it silently rather than report a second diagnostic for
// a failure already reported further down the expression tree.
func poisoned(t types.Type) bool { return t == types.Error }

func (a *Analyzer) computeType(e ast.Expression, c *ctx) types.Type {
	switch n := e.(type) {
	case *ast.ConstantExpr:
		return a.typeOfConstant(n)
	case *ast.VarExpr:
		return a.typeOfVar(n)
	case *ast.ClassReferenceExpr:
		return a.typeOfClassRef(n)
	case *ast.UnaryExpr:
		return a.typeOfUnary(n, c)
	case *ast.BinaryExpr:
		return a.typeOfBinary(n, c)
	case *ast.AssignExpr:
		return a.typeOfAssign(n, c)
	case *ast.AutoExpr:
		return a.typeOfAuto(n, c)
	case *ast.FieldAccessExpr:
		return a.typeOfFieldAccess(n, c)
	case *ast.MethodCallExpr:
		return a.typeOfMethodCall(n, c)
	case *ast.NewObjectExpr:
		return a.typeOfNewObject(n, c)
	case *ast.ThisExpr:
		return a.typeOfThis(n, c)
	case *ast.SuperExpr:
		return a.typeOfSuper(n, c)
	default:
		a.err(diagnostics.ErrC003, e, "analyzer: unhandled expression node %T", e)
		return types.Error
	}
}

func (a *Analyzer) typeOfConstant(n *ast.ConstantExpr) types.Type {
	switch n.Kind {
	case ast.IntConst:
		return types.Int
	case ast.FloatConst:
		return types.Float
	case ast.BoolConst:
		return types.Boolean
	case ast.NullConst:
		return types.Null
	case ast.StringConst:
		return types.String
	default:
		return types.Error
	}
}

func (a *Analyzer) typeOfVar(n *ast.VarExpr) types.Type {
	v, ok := n.GetResolved().(*scope.Variable)
	if !ok || v == nil {
		// The parser only ever produces a VarExpr after a successful scope
		// lookup; a missing binding here means the front end violated that
		// contract.
		a.err(diagnostics.ErrC003, n, "variable %s has no resolved binding", n.Name)
		return types.Error
	}
	return v.Type
}

func (a *Analyzer) typeOfClassRef(n *ast.ClassReferenceExpr) types.Type {
	if _, ok := a.tree.Lookup(n.Name); !ok {
		a.err(diagnostics.ErrT001, n, "unknown class %s", n.Name)
		return types.Error
	}
	return types.NewClassLit(n.Name)
}

func (a *Analyzer) typeOfUnary(n *ast.UnaryExpr, c *ctx) types.Type {
	it := a.typeOf(n.Inner, c)
	if poisoned(it) {
		return types.Error
	}
	switch n.Op {
	case ast.UnaryNeg:
		if !types.IsNumeric(it) {
			a.err(diagnostics.ErrT002, n, "unary - requires a numeric operand, got %s", it)
			return types.Error
		}
		return it
	case ast.UnaryNot:
		if it != types.Boolean {
			a.err(diagnostics.ErrT002, n, "unary ! requires a boolean operand, got %s", it)
			return types.Error
		}
		return types.Boolean
	default:
		return types.Error
	}
}

func (a *Analyzer) typeOfBinary(n *ast.BinaryExpr, c *ctx) types.Type {
	lt := a.typeOf(n.Left, c)
	rt := a.typeOf(n.Right, c)
	if poisoned(lt) || poisoned(rt) {
		return types.Error
	}
	switch n.Op {
	case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinDiv:
		if !types.IsNumeric(lt) || !types.IsNumeric(rt) {
			a.err(diagnostics.ErrT002, n, "operator %s requires numeric operands, got %s and %s", n.Op, lt, rt)
			return types.Error
		}
		if lt == types.Float || rt == types.Float {
			return types.Float
		}
		return types.Int
	case ast.BinAnd, ast.BinOr:
		if lt != types.Boolean || rt != types.Boolean {
			a.err(diagnostics.ErrT002, n, "operator %s requires boolean operands, got %s and %s", n.Op, lt, rt)
			return types.Error
		}
		return types.Boolean
	case ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		if !types.IsNumeric(lt) || !types.IsNumeric(rt) {
			a.err(diagnostics.ErrT002, n, "operator %s requires numeric operands, got %s and %s", n.Op, lt, rt)
			return types.Error
		}
		return types.Boolean
	case ast.BinEq, ast.BinNeq:
		if !a.tree.IsSubtype(lt, rt) && !a.tree.IsSubtype(rt, lt) {
			a.err(diagnostics.ErrT002, n, "%s and %s are never comparable for equality", lt, rt)
			return types.Error
		}
		return types.Boolean
	default:
		return types.Error
	}
}

func (a *Analyzer) typeOfAssign(n *ast.AssignExpr, c *ctx) types.Type {
	lt := a.typeOf(n.Left, c)
	rt := a.typeOf(n.Right, c)
	if poisoned(lt) || poisoned(rt) {
		return types.Error
	}
	if !a.tree.IsSubtype(rt, lt) {
		a.err(diagnostics.ErrT003, n, "cannot assign %s to a variable of type %s", rt, lt)
		return types.Error
	}
	// Per spec.md §4.3 the result of an assignment is the right-hand side's
	// type, not the left-hand side's, a deliberate deviation from Java.
	return rt
}

func (a *Analyzer) typeOfAuto(n *ast.AutoExpr, c *ctx) types.Type {
	it := a.typeOf(n.Inner, c)
	if poisoned(it) {
		return types.Error
	}
	if !types.IsNumeric(it) {
		a.err(diagnostics.ErrT002, n, "%s requires a numeric operand, got %s", n.Op, it)
		return types.Error
	}
	return it
}

// classAndMode extracts the class name a field/method access resolves
// against, and whether the access is static (via a ClassLit base) or
// instance (via a User base).
func classAndMode(t types.Type) (className string, static bool, ok bool) {
	switch bt := t.(type) {
	case *types.User:
		return bt.Name, false, true
	case *types.ClassLit:
		return bt.Name, true, true
	default:
		return "", false, false
	}
}

func (a *Analyzer) typeOfFieldAccess(n *ast.FieldAccessExpr, c *ctx) types.Type {
	bt := a.typeOf(n.Base, c)
	if poisoned(bt) {
		return types.Error
	}
	className, static, ok := classAndMode(bt)
	if !ok {
		a.err(diagnostics.ErrT004, n, "cannot access field %s on non-object type %s", n.Name, bt)
		return types.Error
	}
	fr, ok := a.tree.ResolveField(className, n.Name, static)
	if !ok {
		a.err(diagnostics.ErrT004, n, "class %s has no field named %s", className, n.Name)
		return types.Error
	}
	if fr.Visibility == ast.Private && fr.ContainingClass != c.containingClass {
		a.err(diagnostics.ErrT005, n, "field %s of class %s is private", n.Name, fr.ContainingClass)
		return types.Error
	}
	n.SetResolved(fr)
	return fr.Type
}

func (a *Analyzer) checkArgs(args []ast.Expression, params []deptree.Param, callSite ast.Node, kindLabel string, c *ctx) bool {
	if len(args) != len(params) {
		a.err(diagnostics.ErrT006, callSite, "%s expects %d argument(s), got %d", kindLabel, len(params), len(args))
		return false
	}
	ok := true
	for i, arg := range args {
		at := a.typeOf(arg, c)
		if poisoned(at) {
			ok = false
			continue
		}
		if !a.tree.IsSubtype(at, params[i].Type) {
			a.err(diagnostics.ErrT007, arg, "argument %d: cannot pass %s where %s is expected", i+1, at, params[i].Type)
			ok = false
		}
	}
	return ok
}

func (a *Analyzer) typeOfMethodCall(n *ast.MethodCallExpr, c *ctx) types.Type {
	bt := a.typeOf(n.Base, c)
	if poisoned(bt) {
		return types.Error
	}
	className, static, ok := classAndMode(bt)
	if !ok {
		a.err(diagnostics.ErrT004, n, "cannot call method %s on non-object type %s", n.Name, bt)
		return types.Error
	}
	mr, ok := a.tree.ResolveMethod(className, n.Name, static)
	if !ok {
		a.err(diagnostics.ErrT004, n, "class %s has no method named %s", className, n.Name)
		return types.Error
	}
	if mr.Visibility == ast.Private && mr.ContainingClass != c.containingClass {
		a.err(diagnostics.ErrT005, n, "method %s of class %s is private", n.Name, mr.ContainingClass)
		return types.Error
	}
	if !a.checkArgs(n.Args, mr.Params, n, "method "+n.Name, c) {
		return types.Error
	}
	n.SetResolved(mr)
	return mr.ReturnType
}

func (a *Analyzer) typeOfNewObject(n *ast.NewObjectExpr, c *ctx) types.Type {
	cls, ok := a.tree.Lookup(n.ClassName)
	if !ok {
		a.err(diagnostics.ErrT001, n, "unknown class %s", n.ClassName)
		return types.Error
	}
	if cls.Constructor == nil {
		a.err(diagnostics.ErrT012, n, "class %s declares no constructor", n.ClassName)
		return types.Error
	}
	ctor := cls.Constructor
	if ctor.Visibility == ast.Private && ctor.ContainingClass != c.containingClass {
		a.err(diagnostics.ErrT005, n, "constructor of class %s is private", n.ClassName)
		return types.Error
	}
	if !a.checkArgs(n.Args, ctor.Params, n, "constructor of "+n.ClassName, c) {
		return types.Error
	}
	n.SetResolved(ctor)
	return types.NewUser(n.ClassName)
}

func (a *Analyzer) typeOfThis(n *ast.ThisExpr, c *ctx) types.Type {
	if c.isStatic {
		a.err(diagnostics.ErrT013, n, "this cannot be used in a static context")
		return types.Error
	}
	return types.NewUser(c.containingClass)
}

func (a *Analyzer) typeOfSuper(n *ast.SuperExpr, c *ctx) types.Type {
	if c.isStatic {
		a.err(diagnostics.ErrT013, n, "super cannot be used in a static context")
		return types.Error
	}
	cls, ok := a.tree.Lookup(c.containingClass)
	if !ok || cls.Super == "" || cls.Super == deptree.RootClassName {
		a.err(diagnostics.ErrT011, n, "super cannot be used outside a subclass")
		return types.Error
	}
	return types.NewUser(cls.Super)
}
