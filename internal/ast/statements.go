package ast

import "github.com/yangfawu/decaf-compiler/internal/token"

// stmtBase carries the fields every Statement variant shares: its source
// range and a one-shot type-correctness latch (spec.md §3 "cached
// type_correct flag with a one-shot resolution latch").
type stmtBase struct {
	Tok           token.Token
	Rng           Range
	typeCorrect   bool
	typeCorrectOK bool // true once typeCorrect has been computed
}

func (s *stmtBase) GetToken() token.Token { return s.Tok }
func (s *stmtBase) GetRange() Range       { return s.Rng }
func (s *stmtBase) statementNode()        {}

// TypeCorrect returns the cached type-correctness result and whether it has
// been computed yet.
func (s *stmtBase) TypeCorrect() (ok bool, computed bool) {
	return s.typeCorrect, s.typeCorrectOK
}

// SetTypeCorrect latches the type-correctness result; subsequent calls are
// no-ops, matching the "one-shot" semantics spec.md describes.
func (s *stmtBase) SetTypeCorrect(ok bool) {
	if s.typeCorrectOK {
		return
	}
	s.typeCorrect = ok
	s.typeCorrectOK = true
}

// IfStatement is `if (cond) then [else else_]`.
type IfStatement struct {
	stmtBase
	Cond Expression
	Then Statement
	Else Statement // nil if no else clause
}

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	stmtBase
	Cond Expression
	Body Statement
}

// ForStatement is `for (init; cond; update) body`. Init and Update are any
// expressions (spec.md §4.3); either may be nil for the bare forms.
type ForStatement struct {
	stmtBase
	Init   Expression
	Cond   Expression
	Update Expression
	Body   Statement
}

// ReturnStatement is `return;` or `return expr;`.
type ReturnStatement struct {
	stmtBase
	Value Expression // nil for a bare `return;`
}

// ExprStatement wraps a bare expression used as a statement.
type ExprStatement struct {
	stmtBase
	Expr Expression
}

// BlockStatement is `{ stmt* }`.
type BlockStatement struct {
	stmtBase
	Statements []Statement
}

// BreakStatement is `break;`.
type BreakStatement struct {
	stmtBase
}

// ContinueStatement is `continue;`.
type ContinueStatement struct {
	stmtBase
}

// SkipStatement is the implicit statement the parser inserts for a bare
// `;` (spec.md §6).
type SkipStatement struct {
	stmtBase
}

// VarDeclStatement declares one or more locals of the same declared type.
type VarDeclStatement struct {
	stmtBase
	Type  *TypeName
	Names []string
}
