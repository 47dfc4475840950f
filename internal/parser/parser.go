// Package parser is the other half of the front-end collaborator spec.md
// §1 treats as out of THE CORE's scope. It turns a token stream into the
// initial AST described by spec.md §6's "Input AST contract from the
// parser": source ranges on every node, modifier dictionaries, an implicit
// SkipStatement for a bare `;`, and bare identifiers already disambiguated
// into Var or ClassReference nodes using the scope stack from spec.md §4.1
// (which, per §2, is itself one of THE CORE's leaf components).
package parser

import (
	"github.com/yangfawu/decaf-compiler/internal/ast"
	"github.com/yangfawu/decaf-compiler/internal/diagnostics"
	"github.com/yangfawu/decaf-compiler/internal/scope"
	"github.com/yangfawu/decaf-compiler/internal/token"
	"github.com/yangfawu/decaf-compiler/internal/types"
)

// Parser is a recursive-descent parser over a pre-scanned token stream.
type Parser struct {
	tokens []token.Token
	pos    int
	errors []*diagnostics.DiagnosticError
}

// New constructs a Parser over tokens.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns every parse error collected while parsing.
func (p *Parser) Errors() []*diagnostics.DiagnosticError { return p.errors }

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(off int) token.Token {
	idx := p.pos + off
	if idx >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) at(t token.Type) bool { return p.cur().Type == t }

func (p *Parser) expect(t token.Type) token.Token {
	if p.at(t) {
		return p.advance()
	}
	got := p.cur()
	p.errors = append(p.errors, diagnostics.Newf(diagnostics.ErrP001, got,
		"expected %s, got %q", t, got.Lexeme))
	return got
}

func rng(start, end token.Token) ast.Range {
	return ast.Range{StartLine: start.Line, EndLine: end.Line}
}

// ParseProgram parses a full source file into a Program of class
// declarations in source order.
func ParseProgram(tokens []token.Token) (*ast.Program, []*diagnostics.DiagnosticError) {
	p := New(tokens)
	prog := &ast.Program{}
	for !p.at(token.EOF) {
		prog.Classes = append(prog.Classes, p.parseClass())
	}
	return prog, p.errors
}

func (p *Parser) parseClass() *ast.ClassDecl {
	startTok := p.expect(token.CLASS)
	nameTok := p.expect(token.IDENT)
	class := &ast.ClassDecl{Token: startTok, Name: nameTok.Lexeme}

	if p.at(token.EXTENDS) {
		p.advance()
		superTok := p.expect(token.IDENT)
		class.Super = superTok.Lexeme
	}

	p.expect(token.LBRACE)
	classScope := scope.NewClassScope(class.Name)
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		p.parseMember(class, classScope)
	}
	endTok := p.expect(token.RBRACE)
	class.Range = rng(startTok, endTok)
	return class
}

func (p *Parser) parseModifiers() ast.Modifiers {
	mods := ast.Modifiers{Visibility: ast.Private, IsStatic: false}
	for {
		switch p.cur().Type {
		case token.PUBLIC:
			mods.Visibility = ast.Public
			p.advance()
		case token.PRIVATE:
			mods.Visibility = ast.Private
			p.advance()
		case token.STATIC:
			mods.IsStatic = true
			p.advance()
		default:
			return mods
		}
	}
}

// parseTypeName consumes a type keyword or class-name identifier.
func (p *Parser) parseTypeName() *ast.TypeName {
	tok := p.cur()
	switch tok.Type {
	case token.INT_TYPE, token.FLOAT_TYPE, token.BOOL_TYPE, token.STRING_TYPE, token.VOID, token.IDENT:
		p.advance()
		return &ast.TypeName{Token: tok, Name: tok.Lexeme}
	default:
		p.errors = append(p.errors, diagnostics.Newf(diagnostics.ErrP001, tok, "expected a type, got %q", tok.Lexeme))
		return &ast.TypeName{Token: tok, Name: "int"}
	}
}

// parseMember dispatches on lookahead to a field, method, or constructor,
// and registers the result onto class.
func (p *Parser) parseMember(class *ast.ClassDecl, classScope *scope.Scope) {
	startTok := p.cur()
	mods := p.parseModifiers()

	// Constructor: `ClassName(...)` with the class's own name and no type.
	if p.at(token.IDENT) && p.cur().Lexeme == class.Name && p.peekAt(1).Type == token.LPAREN {
		ctorTok := p.advance()
		memberScope := scope.NewMemberScope(classScope)
		params := p.parseParams(memberScope)
		body := p.parseBlock(memberScope.Child(true))
		ctor := &ast.ConstructorDecl{
			Token: ctorTok, Modifiers: mods, Params: params, Body: body,
			Range: rng(startTok, body.GetToken()), VarTable: memberScope.VariableTable(),
		}
		if class.Constructor != nil {
			p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrD007, ctorTok,
				"class "+class.Name+" may declare at most one constructor"))
		} else {
			class.Constructor = ctor
		}
		return
	}

	typeName := p.parseTypeName()
	nameTok := p.expect(token.IDENT)

	if p.at(token.LPAREN) {
		// Method.
		memberScope := scope.NewMemberScope(classScope)
		params := p.parseParams(memberScope)
		body := p.parseBlock(memberScope.Child(true))
		var ret *ast.TypeName
		if typeName.Name != "void" {
			ret = typeName
		}
		method := &ast.MethodDecl{
			Token: startTok, Modifiers: mods, ReturnType: ret, Name: nameTok.Lexeme,
			Params: params, Body: body, Range: rng(startTok, body.GetToken()),
			VarTable: memberScope.VariableTable(),
		}
		class.Methods = append(class.Methods, method)
		return
	}

	// Field.
	semi := p.expect(token.SEMI)
	field := &ast.FieldDecl{
		Token: startTok, Modifiers: mods, Type: typeName, Name: nameTok.Lexeme,
		Range: rng(startTok, semi),
	}
	class.Fields = append(class.Fields, field)
}

func (p *Parser) parseParams(memberScope *scope.Scope) []*ast.Param {
	p.expect(token.LPAREN)
	var params []*ast.Param
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		if len(params) > 0 {
			p.expect(token.COMMA)
		}
		typeName := p.parseTypeName()
		nameTok := p.expect(token.IDENT)
		params = append(params, &ast.Param{Token: nameTok, Type: typeName, Name: nameTok.Lexeme})
		if _, ok := memberScope.Add(nameTok.Lexeme, scope.Formal, types.Resolve(typeName.Name)); !ok {
			p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrD005, nameTok,
				"duplicate formal parameter "+nameTok.Lexeme))
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseBlock(s *scope.Scope) *ast.BlockStatement {
	start := p.expect(token.LBRACE)
	block := ast.NewBlock(start, ast.Range{StartLine: start.Line, EndLine: start.Line})
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		block.Statements = append(block.Statements, p.parseStatement(s))
	}
	end := p.expect(token.RBRACE)
	block.Rng = rng(start, end)
	return block
}
