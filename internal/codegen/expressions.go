package codegen

import (
	"fmt"
	"strconv"

	"github.com/yangfawu/decaf-compiler/internal/ast"
	"github.com/yangfawu/decaf-compiler/internal/deptree"
	"github.com/yangfawu/decaf-compiler/internal/diagnostics"
	"github.com/yangfawu/decaf-compiler/internal/scope"
	"github.com/yangfawu/decaf-compiler/internal/types"
)

// evalExpr emits e's code into b and returns the register holding its
// computed value, stamping it onto e via SetReg for any later pass that
// wants to inspect what register an already-generated node landed in.
func (g *Gen) evalExpr(b *Builder, mc *memberCtx, e ast.Expression) string {
	reg := g.eval(b, mc, e)
	e.SetReg(reg)
	return reg
}

func (g *Gen) eval(b *Builder, mc *memberCtx, e ast.Expression) string {
	switch n := e.(type) {
	case *ast.ConstantExpr:
		return g.evalConstant(b, mc, n)
	case *ast.VarExpr:
		return g.evalVar(b, mc, n)
	case *ast.ClassReferenceExpr:
		// A bare class reference has no runtime value. A static field
		// access short-circuits straight to "sap" without evaluating it;
		// a static method call, or a standalone use, evaluates it here
		// and gets a zero placeholder.
		t := g.newTemp(mc)
		b.Linef("move_immed_i %s, 0", t)
		return t
	case *ast.UnaryExpr:
		return g.evalUnary(b, mc, n)
	case *ast.BinaryExpr:
		return g.evalBinary(b, mc, n)
	case *ast.AssignExpr:
		return g.evalAssign(b, mc, n)
	case *ast.AutoExpr:
		return g.evalAuto(b, mc, n)
	case *ast.FieldAccessExpr:
		return g.evalFieldAccess(b, mc, n)
	case *ast.MethodCallExpr:
		return g.evalMethodCall(b, mc, n)
	case *ast.NewObjectExpr:
		return g.evalNewObject(b, mc, n)
	case *ast.ThisExpr:
		return g.evalThis(b, mc, n)
	case *ast.SuperExpr:
		return g.evalThis(b, mc, n) // super's runtime value is the same incoming this register
	default:
		g.err(diagnostics.ErrC003, e, "codegen: unhandled expression node %T", e)
		t := g.newTemp(mc)
		b.Linef("move_immed_i %s, 0", t)
		return t
	}
}

func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (g *Gen) evalConstant(b *Builder, mc *memberCtx, n *ast.ConstantExpr) string {
	t := g.newTemp(mc)
	switch n.Kind {
	case ast.IntConst:
		b.Linef("move_immed_i %s, %d", t, n.IntVal)
	case ast.FloatConst:
		b.Linef("move_immed_f %s, %s", t, formatFloat(n.FloatVal))
	case ast.BoolConst:
		v := 0
		if n.BoolVal {
			v = 1
		}
		b.Linef("move_immed_i %s, %d", t, v)
	case ast.NullConst:
		b.Linef("move_immed_i %s, 0", t)
	case ast.StringConst:
		g.err(diagnostics.ErrC001, n, "string literals cannot be code-generated")
		b.Linef("move_immed_i %s, 0", t)
	}
	return t
}

func (g *Gen) ensureVarReg(mc *memberCtx, v *scope.Variable, b *Builder) {
	if v.ValueReg == "" {
		v.ValueReg = g.newTemp(mc)
		b.Linef("# %s -> %s", v.Name, v.ValueReg)
	}
}

func (g *Gen) evalVar(b *Builder, mc *memberCtx, n *ast.VarExpr) string {
	v, ok := n.GetResolved().(*scope.Variable)
	if !ok || v == nil {
		g.err(diagnostics.ErrC003, n, "variable %s has no resolved binding", n.Name)
		t := g.newTemp(mc)
		b.Linef("move_immed_i %s, 0", t)
		return t
	}
	if v.ValueReg == "" {
		g.ensureVarReg(mc, v, b)
	} else {
		b.Linef("# %s", v.Name)
	}
	return v.ValueReg
}

func (g *Gen) evalUnary(b *Builder, mc *memberCtx, n *ast.UnaryExpr) string {
	inner := g.evalExpr(b, mc, n.Inner)
	isFloat := n.Type() == types.Float
	switch n.Op {
	case ast.UnaryNeg:
		negOne := g.newTemp(mc)
		if isFloat {
			b.Linef("move_immed_f %s, -1.0", negOne)
		} else {
			b.Linef("move_immed_i %s, -1", negOne)
		}
		dst := g.newTemp(mc)
		if isFloat {
			b.Linef("fmul %s, %s, %s", dst, negOne, inner)
		} else {
			b.Linef("imul %s, %s, %s", dst, negOne, inner)
		}
		return dst
	case ast.UnaryNot:
		one := g.newTemp(mc)
		b.Linef("move_immed_i %s, 1", one)
		dst := g.newTemp(mc)
		b.Linef("isub %s, %s, %s", dst, one, inner)
		return dst
	default:
		g.err(diagnostics.ErrC003, n, "codegen: unhandled unary operator %s", n.Op)
		return inner
	}
}

// emitOr implements the shared "iadd then igt ?, 0" collapse spec.md §4.5
// describes for logical-or, which is also the building block the
// equality emitter reuses for its "or the two comparisons" step.
func (g *Gen) emitOr(b *Builder, mc *memberCtx, l, r string) string {
	sum := g.newTemp(mc)
	b.Linef("iadd %s, %s, %s", sum, l, r)
	zero := g.newTemp(mc)
	b.Linef("move_immed_i %s, 0", zero)
	dst := g.newTemp(mc)
	b.Linef("igt %s, %s, %s", dst, sum, zero)
	return dst
}

func (g *Gen) evalBinary(b *Builder, mc *memberCtx, n *ast.BinaryExpr) string {
	l := g.evalExpr(b, mc, n.Left)
	r := g.evalExpr(b, mc, n.Right)
	lt, rt := n.Left.Type(), n.Right.Type()

	switch n.Op {
	case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinDiv:
		resultFloat := n.Type() == types.Float
		if resultFloat {
			l = g.promote(b, mc, l, lt, types.Float)
			r = g.promote(b, mc, r, rt, types.Float)
		}
		dst := g.newTemp(mc)
		b.Linef("%s %s, %s, %s", arithOp(n.Op, resultFloat), dst, l, r)
		return dst
	case ast.BinAnd:
		dst := g.newTemp(mc)
		b.Linef("imul %s, %s, %s", dst, l, r)
		return dst
	case ast.BinOr:
		return g.emitOr(b, mc, l, r)
	case ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		useFloat := lt == types.Float || rt == types.Float
		if useFloat {
			l = g.promote(b, mc, l, lt, types.Float)
			r = g.promote(b, mc, r, rt, types.Float)
		}
		dst := g.newTemp(mc)
		b.Linef("%s %s, %s, %s", relOp(n.Op, useFloat), dst, l, r)
		return dst
	case ast.BinEq, ast.BinNeq:
		return g.evalEquality(b, mc, n.Op, l, r, lt, rt)
	default:
		g.err(diagnostics.ErrC003, n, "codegen: unhandled binary operator %s", n.Op)
		return l
	}
}

func arithOp(op ast.BinaryOp, isFloat bool) string {
	prefix := "i"
	if isFloat {
		prefix = "f"
	}
	switch op {
	case ast.BinAdd:
		return prefix + "add"
	case ast.BinSub:
		return prefix + "sub"
	case ast.BinMul:
		return prefix + "mul"
	case ast.BinDiv:
		return prefix + "div"
	}
	return prefix + "add"
}

func relOp(op ast.BinaryOp, isFloat bool) string {
	prefix := "i"
	if isFloat {
		prefix = "f"
	}
	switch op {
	case ast.BinLt:
		return prefix + "lt"
	case ast.BinLe:
		return prefix + "leq"
	case ast.BinGt:
		return prefix + "gt"
	case ast.BinGe:
		return prefix + "geq"
	}
	return prefix + "lt"
}

// evalEquality implements spec.md §4.5's two-comparison trick: compute
// l<r and l>r, or the two together (true iff the operands differ), and
// for `==` flip the result with 1 − …. `==` and `!=` share this one
// helper, differing only in whether the final flip happens.
func (g *Gen) evalEquality(b *Builder, mc *memberCtx, op ast.BinaryOp, l, r string, lt, rt types.Type) string {
	useFloat := lt == types.Float || rt == types.Float
	cl, cr := l, r
	if useFloat {
		cl = g.promote(b, mc, l, lt, types.Float)
		cr = g.promote(b, mc, r, rt, types.Float)
	}
	ltReg := g.newTemp(mc)
	b.Linef("%s %s, %s, %s", relOp(ast.BinLt, useFloat), ltReg, cl, cr)
	gtReg := g.newTemp(mc)
	b.Linef("%s %s, %s, %s", relOp(ast.BinGt, useFloat), gtReg, cl, cr)
	neq := g.emitOr(b, mc, ltReg, gtReg)
	if op == ast.BinNeq {
		return neq
	}
	one := g.newTemp(mc)
	b.Linef("move_immed_i %s, 1", one)
	eq := g.newTemp(mc)
	b.Linef("isub %s, %s, %s", eq, one, neq)
	return eq
}

func (g *Gen) evalAssign(b *Builder, mc *memberCtx, n *ast.AssignExpr) string {
	rhs := g.evalExpr(b, mc, n.Right)
	rhs = g.promote(b, mc, rhs, n.Right.Type(), n.Left.Type())

	switch lhs := n.Left.(type) {
	case *ast.VarExpr:
		v, ok := lhs.GetResolved().(*scope.Variable)
		if !ok || v == nil {
			g.err(diagnostics.ErrC003, lhs, "variable %s has no resolved binding", lhs.Name)
			return rhs
		}
		g.ensureVarReg(mc, v, b)
		b.Linef("move %s, %s", v.ValueReg, rhs)
	case *ast.FieldAccessExpr:
		base, fr := g.fieldTarget(b, mc, lhs)
		b.Linef("hstore %s, %d, %s", base, fr.Offset, rhs)
	default:
		g.err(diagnostics.ErrC003, n, "codegen: unsupported assignment target %T", n.Left)
	}
	return rhs
}

// fieldTarget evaluates the base of a field access and returns the
// register/pseudo-register to store/load through, along with the
// resolved FieldRecord. A static field's base is always the reserved
// `sap` pseudo-register; an instance field's base is its object address.
func (g *Gen) fieldTarget(b *Builder, mc *memberCtx, n *ast.FieldAccessExpr) (string, *deptree.FieldRecord) {
	fr, ok := n.GetResolved().(*deptree.FieldRecord)
	if !ok || fr == nil {
		g.err(diagnostics.ErrC003, n, "field %s has no resolved record", n.Name)
		return "sap", &deptree.FieldRecord{Offset: 0}
	}
	if _, isClassRef := n.Base.(*ast.ClassReferenceExpr); isClassRef {
		return "sap", fr
	}
	base := g.evalExpr(b, mc, n.Base)
	return base, fr
}

func (g *Gen) evalFieldAccess(b *Builder, mc *memberCtx, n *ast.FieldAccessExpr) string {
	base, fr := g.fieldTarget(b, mc, n)
	dst := g.newTemp(mc)
	b.Linef("hload %s, %s, %d", dst, base, fr.Offset)
	return dst
}

func (g *Gen) evalAuto(b *Builder, mc *memberCtx, n *ast.AutoExpr) string {
	isFloat := n.Type() == types.Float

	switch inner := n.Inner.(type) {
	case *ast.VarExpr:
		v, ok := inner.GetResolved().(*scope.Variable)
		if !ok || v == nil {
			g.err(diagnostics.ErrC003, inner, "variable %s has no resolved binding", inner.Name)
			return g.newTemp(mc)
		}
		g.ensureVarReg(mc, v, b)
		oldReg := v.ValueReg
		newReg := g.autoStep(b, mc, oldReg, n.Op, isFloat)
		result := g.newTemp(mc)
		if n.Fix == ast.Prefix {
			b.Linef("move %s, %s", result, newReg)
		} else {
			b.Linef("move %s, %s", result, oldReg)
		}
		b.Linef("move %s, %s", v.ValueReg, newReg)
		return result
	case *ast.FieldAccessExpr:
		base, fr := g.fieldTarget(b, mc, inner)
		oldReg := g.newTemp(mc)
		b.Linef("hload %s, %s, %d", oldReg, base, fr.Offset)
		newReg := g.autoStep(b, mc, oldReg, n.Op, isFloat)
		result := g.newTemp(mc)
		if n.Fix == ast.Prefix {
			b.Linef("move %s, %s", result, newReg)
		} else {
			b.Linef("move %s, %s", result, oldReg)
		}
		b.Linef("hstore %s, %d, %s", base, fr.Offset, newReg)
		return result
	default:
		g.err(diagnostics.ErrC003, n, "codegen: unsupported auto-expression operand %T", n.Inner)
		return g.newTemp(mc)
	}
}

func (g *Gen) autoStep(b *Builder, mc *memberCtx, oldReg string, op ast.AutoOp, isFloat bool) string {
	one := g.newTemp(mc)
	if isFloat {
		b.Linef("move_immed_f %s, 1.0", one)
	} else {
		b.Linef("move_immed_i %s, 1", one)
	}
	dst := g.newTemp(mc)
	opName := arithOp(ast.BinAdd, isFloat)
	if op == ast.AutoDec {
		opName = arithOp(ast.BinSub, isFloat)
	}
	b.Linef("%s %s, %s, %s", opName, dst, oldReg, one)
	return dst
}

func (g *Gen) evalMethodCall(b *Builder, mc *memberCtx, n *ast.MethodCallExpr) string {
	seed := mc.temp
	_, static, _ := classAndModeCG(n.Base.Type())
	var recv string
	if !static {
		recv = g.evalExpr(b, mc, n.Base)
	} else {
		g.evalExpr(b, mc, n.Base) // evaluate for side effects/diagnostics only; a class literal has no runtime value
	}

	mr, ok := n.GetResolved().(*deptree.MethodRecord)
	if !ok || mr == nil {
		g.err(diagnostics.ErrC003, n, "method %s has no resolved record", n.Name)
		return g.newTemp(mc)
	}

	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		ar := g.evalExpr(b, mc, arg)
		if i < len(mr.Params) {
			ar = g.promote(b, mc, ar, arg.Type(), mr.Params[i].Type)
		}
		args[i] = ar
	}

	label := fmt.Sprintf("M_%s_%d", mr.Name, mr.ID)
	g.emitCallFrame(b, mc, seed, label, recv, args)

	rt := g.newTemp(mc)
	if mr.ReturnType == types.Void {
		b.Linef("move_immed_i %s, 0", rt)
	} else {
		b.Linef("move %s, a0", rt)
	}
	return rt
}

func classAndModeCG(t types.Type) (string, bool, bool) {
	switch bt := t.(type) {
	case *types.User:
		return bt.Name, false, true
	case *types.ClassLit:
		return bt.Name, true, true
	default:
		return "", false, false
	}
}

func (g *Gen) evalNewObject(b *Builder, mc *memberCtx, n *ast.NewObjectExpr) string {
	cls, ok := g.tree.Lookup(n.ClassName)
	if !ok {
		g.err(diagnostics.ErrC003, n, "class %s has no resolved record", n.ClassName)
		return g.newTemp(mc)
	}
	addr := g.newTemp(mc)
	b.Linef("halloc %s, %d", addr, cls.Size)
	seed := mc.temp

	ctor, ok := n.GetResolved().(*deptree.ConstructorRecord)
	if !ok || ctor == nil {
		g.err(diagnostics.ErrC003, n, "constructor of %s has no resolved record", n.ClassName)
		return addr
	}

	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		ar := g.evalExpr(b, mc, arg)
		if i < len(ctor.Params) {
			ar = g.promote(b, mc, ar, arg.Type(), ctor.Params[i].Type)
		}
		args[i] = ar
	}

	label := fmt.Sprintf("C_%d", ctor.ID)
	g.emitCallFrame(b, mc, seed, label, addr, args)

	rt := g.newTemp(mc)
	b.Linef("move %s, %s", rt, addr)
	return rt
}

func (g *Gen) evalThis(b *Builder, mc *memberCtx, n ast.Expression) string {
	if mc.selfT == "" {
		g.err(diagnostics.ErrC002, n, "this/super referenced outside an instance context")
		t := g.newTemp(mc)
		b.Linef("move_immed_i %s, 0", t)
		return t
	}
	t := g.newTemp(mc)
	b.Linef("move %s, %s", t, mc.selfT)
	return t
}
