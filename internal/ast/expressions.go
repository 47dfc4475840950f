package ast

import "github.com/yangfawu/decaf-compiler/internal/token"

// ConstantKind distinguishes the literal kinds a ConstantExpr can hold.
type ConstantKind int

const (
	IntConst ConstantKind = iota
	FloatConst
	BoolConst
	NullConst
	StringConst
)

// ConstantExpr is a literal: int, float, bool, null, or string.
type ConstantExpr struct {
	exprBase
	Kind     ConstantKind
	IntVal   int
	FloatVal float64
	BoolVal  bool
	StrVal   string
}

func NewConstant(tok token.Token, rng Range) *ConstantExpr {
	return &ConstantExpr{exprBase: exprBase{Tok: tok, Rng: rng}}
}

// VarExpr is a bare identifier bound to a VariableRecord in scope (parser
// already disambiguated this from ClassReferenceExpr, spec.md §4.3 "bare
// identifier").
type VarExpr struct {
	exprBase
	Name string
}

// ClassReferenceExpr is a bare identifier that denotes a class itself
// (used for static access), deferred to type-check time for a
// class-existence check.
type ClassReferenceExpr struct {
	exprBase
	Name string
}

// UnaryOp enumerates the unary operators.
type UnaryOp string

const (
	UnaryNeg UnaryOp = "-"
	UnaryNot UnaryOp = "!"
)

// UnaryExpr is `-x` or `!x`.
type UnaryExpr struct {
	exprBase
	Op    UnaryOp
	Inner Expression
}

// BinaryOp enumerates the binary operators.
type BinaryOp string

const (
	BinAdd BinaryOp = "+"
	BinSub BinaryOp = "-"
	BinMul BinaryOp = "*"
	BinDiv BinaryOp = "/"
	BinAnd BinaryOp = "&&"
	BinOr  BinaryOp = "||"
	BinLt  BinaryOp = "<"
	BinLe  BinaryOp = "<="
	BinGt  BinaryOp = ">"
	BinGe  BinaryOp = ">="
	BinEq  BinaryOp = "=="
	BinNeq BinaryOp = "!="
)

// BinaryExpr is `l op r`.
type BinaryExpr struct {
	exprBase
	Op    BinaryOp
	Left  Expression
	Right Expression
}

// AssignExpr is `l = r`. Per spec.md §4.3, its result type is the RHS's
// type, not the LHS's, intentional and a documented deviation from Java.
type AssignExpr struct {
	exprBase
	Left  Expression
	Right Expression
}

// AutoOp is ++ or --.
type AutoOp string

const (
	AutoInc AutoOp = "++"
	AutoDec AutoOp = "--"
)

// AutoFix says whether the operator appears before or after the operand.
type AutoFix int

const (
	Prefix AutoFix = iota
	Postfix
)

// AutoExpr is `++x`, `x++`, `--x`, or `x--`.
type AutoExpr struct {
	exprBase
	Inner Expression
	Op    AutoOp
	Fix   AutoFix
}

// FieldAccessExpr is `base.Name`. ContainingClass is the class enclosing
// the access expression (used for the private-field visibility check).
type FieldAccessExpr struct {
	exprBase
	Base            Expression
	Name            string
	ContainingClass string
}

// MethodCallExpr is `base.Name(args...)`.
type MethodCallExpr struct {
	exprBase
	Base            Expression
	Name            string
	Args            []Expression
	ContainingClass string
}

// NewObjectExpr is `new ClassName(args...)`.
type NewObjectExpr struct {
	exprBase
	ClassName       string
	Args            []Expression
	ContainingClass string
}

// ThisExpr is `this`.
type ThisExpr struct {
	exprBase
}

// SuperExpr is `super`, used only for access-level framing (spec.md §4.3).
type SuperExpr struct {
	exprBase
}
