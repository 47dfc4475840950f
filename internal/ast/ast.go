// Package ast defines the tagged-variant abstract syntax tree produced by
// the parser and consumed by the analyzer, layout pass, and code
// generator. Per spec.md §9 DESIGN NOTES, polymorphism across node kinds is
// a tagged variant dispatched with type switches, not subclass/visitor
// dispatch; every later pass is a total pattern match over these types.
package ast

import (
	"github.com/yangfawu/decaf-compiler/internal/scope"
	"github.com/yangfawu/decaf-compiler/internal/token"
	"github.com/yangfawu/decaf-compiler/internal/types"
)

// Range is a source range, as delivered by the parser per spec.md §6.
type Range struct {
	StartLine int
	EndLine   int
}

// Node is the base interface every AST node implements.
type Node interface {
	GetToken() token.Token
	GetRange() Range
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression. Type is lazily
// computed and memoized by the analyzer (ResolvedType starts nil); Resolved
// holds a *deptree.FieldRecord / *deptree.MethodRecord / *deptree.ConstructorRecord
// once name resolution succeeds, set generically to keep this package free
// of an import cycle with deptree (DESIGN NOTES §9: prefer resolved
// lookups over owning back-pointers). ValueReg is set by the code
// generator.
type Expression interface {
	Node
	expressionNode()
	Type() types.Type
	SetType(types.Type)
	GetResolved() interface{}
	SetResolved(interface{})
	Reg() string
	SetReg(string)
}

// Visibility is public|private; default is private (spec.md §6).
type Visibility int

const (
	Private Visibility = iota
	Public
)

// Applicability is static|instance.
type Applicability int

const (
	Instance Applicability = iota
	Static
)

// Modifiers is the modifier dictionary the parser builds for a member.
type Modifiers struct {
	Visibility Visibility
	IsStatic   bool
}

// TypeName is a raw, unresolved type reference as written in source: a
// built-in keyword ("int", "float", "boolean", "string", "void") or a class
// name. The analyzer resolves it to a types.Type.
type TypeName struct {
	Token token.Token
	Name  string
}

// Program is the root node: one or more class declarations in source order.
type Program struct {
	Classes []*ClassDecl
}

// ClassDecl is a class declaration: name, optional super, and an ordered
// bag of members tagged field/method/constructor (spec.md §6).
type ClassDecl struct {
	Token       token.Token
	Range       Range
	Name        string
	Super       string // "" if no `extends`
	Fields      []*FieldDecl
	Methods     []*MethodDecl
	Constructor *ConstructorDecl // nil if the class declares none
}

func (c *ClassDecl) GetToken() token.Token { return c.Token }
func (c *ClassDecl) GetRange() Range       { return c.Range }

// FieldDecl is a field declaration.
type FieldDecl struct {
	Token     token.Token
	Range     Range
	Modifiers Modifiers
	Type      *TypeName
	Name      string
}

func (f *FieldDecl) GetToken() token.Token { return f.Token }
func (f *FieldDecl) GetRange() Range       { return f.Range }

// Param is a single formal parameter.
type Param struct {
	Token token.Token
	Type  *TypeName
	Name  string
}

func (p *Param) GetToken() token.Token { return p.Token }
func (p *Param) GetRange() Range       { return Range{StartLine: p.Token.Line, EndLine: p.Token.Line} }

// MethodDecl is a method declaration. VarTable is the per-member variable
// table the parser's scope stack built while parsing Params and Body
// (spec.md §4.1); the analyzer copies it onto the resulting MethodRecord.
type MethodDecl struct {
	Token      token.Token
	Range      Range
	Modifiers  Modifiers
	ReturnType *TypeName // nil means void
	Name       string
	Params     []*Param
	Body       *BlockStatement
	VarTable   *scope.Table
}

func (m *MethodDecl) GetToken() token.Token { return m.Token }
func (m *MethodDecl) GetRange() Range       { return m.Range }

// ConstructorDecl is a constructor declaration. Constructors are implicitly
// instance members and have no return type (spec.md §3).
type ConstructorDecl struct {
	Token     token.Token
	Range     Range
	Modifiers Modifiers
	Params    []*Param
	Body      *BlockStatement
	VarTable  *scope.Table
}

func (c *ConstructorDecl) GetToken() token.Token { return c.Token }
func (c *ConstructorDecl) GetRange() Range       { return c.Range }

// exprBase carries the fields every Expression variant shares: its source
// range, its lazily-memoized type, an opaque resolution slot, and the
// register that will hold its computed value once the code generator
// visits it.
type exprBase struct {
	Tok          token.Token
	Rng          Range
	ResolvedType types.Type  // nil until the analyzer computes it
	Resolved     interface{} // *deptree.FieldRecord | *deptree.MethodRecord | *deptree.ConstructorRecord | *scope.Variable
	ValueReg     string      // set during code generation
}

func (e *exprBase) GetToken() token.Token { return e.Tok }
func (e *exprBase) GetRange() Range       { return e.Rng }
func (e *exprBase) expressionNode()       {}

// Type returns the memoized type, or nil if it has not been computed yet.
func (e *exprBase) Type() types.Type { return e.ResolvedType }

// SetType memoizes the computed type; only the first call sticks, matching
// the "lazily computed and memoized" contract of spec.md §3.
func (e *exprBase) SetType(t types.Type) {
	if e.ResolvedType == nil {
		e.ResolvedType = t
	}
}

func (e *exprBase) GetResolved() interface{}    { return e.Resolved }
func (e *exprBase) SetResolved(r interface{})   { e.Resolved = r }
func (e *exprBase) Reg() string                 { return e.ValueReg }
func (e *exprBase) SetReg(reg string)           { e.ValueReg = reg }
