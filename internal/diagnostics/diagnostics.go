// Package diagnostics defines the single diagnostic shape every compiler
// stage reports errors through: DiagnosticError carries a Code, a
// token.Token for the offending range, an optional File, and a Message,
// with Error() rendering all of it into one line.
package diagnostics

import (
	"fmt"

	"github.com/yangfawu/decaf-compiler/internal/token"
)

// Code identifies the violated rule, grouped by spec.md §7 error kind.
type Code string

const (
	// Parse errors (P*), surfaced by the lexer/parser front end.
	ErrP001 Code = "P001" // unexpected token
	ErrP002 Code = "P002" // unexpected end of input

	// Declaration errors (D*)
	ErrD001 Code = "D001" // duplicate class
	ErrD002 Code = "D002" // class extends itself
	ErrD003 Code = "D003" // extends unknown class
	ErrD004 Code = "D004" // duplicate member in class
	ErrD005 Code = "D005" // duplicate formal parameter
	ErrD006 Code = "D006" // duplicate local variable
	ErrD007 Code = "D007" // more than one constructor

	// Type errors (T*)
	ErrT001 Code = "T001" // unknown class reference
	ErrT002 Code = "T002" // operand type mismatch
	ErrT003 Code = "T003" // assignment RHS not a subtype of LHS
	ErrT004 Code = "T004" // unknown field or method
	ErrT005 Code = "T005" // visibility violation
	ErrT006 Code = "T006" // arity mismatch
	ErrT007 Code = "T007" // argument not a subtype of parameter
	ErrT008 Code = "T008" // return inside constructor
	ErrT009 Code = "T009" // return type mismatch
	ErrT010 Code = "T010" // non-bool condition
	ErrT011 Code = "T011" // super used outside a subclass
	ErrT012 Code = "T012" // class has no constructor
	ErrT013 Code = "T013" // this/super used in static context

	// Code-gen errors (C*)
	ErrC001 Code = "C001" // unsupported string emission
	ErrC002 Code = "C002" // missing self_t when this/super referenced
	ErrC003 Code = "C003" // internal invariant violated
)

// DiagnosticError is the single error type the pipeline reports.
type DiagnosticError struct {
	Code    Code
	Token   token.Token
	Message string
	File    string
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Token.Line, e.Token.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: [%s] %s", e.Token.Line, e.Token.Column, e.Code, e.Message)
}

// NewError constructs a DiagnosticError for the given code, token, and message.
func NewError(code Code, tok token.Token, msg string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: msg}
}

// Newf is NewError with fmt.Sprintf-style formatting.
func Newf(code Code, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return NewError(code, tok, fmt.Sprintf(format, args...))
}
