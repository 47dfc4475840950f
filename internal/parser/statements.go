package parser

import (
	"github.com/yangfawu/decaf-compiler/internal/ast"
	"github.com/yangfawu/decaf-compiler/internal/diagnostics"
	"github.com/yangfawu/decaf-compiler/internal/scope"
	"github.com/yangfawu/decaf-compiler/internal/token"
	"github.com/yangfawu/decaf-compiler/internal/types"
)

func (p *Parser) parseStatement(s *scope.Scope) ast.Statement {
	switch p.cur().Type {
	case token.IF:
		return p.parseIf(s)
	case token.WHILE:
		return p.parseWhile(s)
	case token.FOR:
		return p.parseFor(s)
	case token.RETURN:
		return p.parseReturn(s)
	case token.LBRACE:
		return p.parseBlock(s.Child(false))
	case token.BREAK:
		tok := p.advance()
		end := p.expect(token.SEMI)
		return ast.NewBreak(tok, rng(tok, end))
	case token.CONTINUE:
		tok := p.advance()
		end := p.expect(token.SEMI)
		return ast.NewContinue(tok, rng(tok, end))
	case token.SEMI:
		tok := p.advance()
		return ast.NewSkip(tok, rng(tok, tok))
	case token.INT_TYPE, token.FLOAT_TYPE, token.BOOL_TYPE, token.STRING_TYPE:
		return p.parseVarDecl(s)
	case token.IDENT:
		if p.peekAt(1).Type == token.IDENT {
			return p.parseVarDecl(s)
		}
		return p.parseExprStatement(s)
	default:
		return p.parseExprStatement(s)
	}
}

func (p *Parser) parseVarDecl(s *scope.Scope) ast.Statement {
	startTok := p.cur()
	typeName := p.parseTypeName()
	declType := types.Resolve(typeName.Name)

	var names []string
	for {
		nameTok := p.expect(token.IDENT)
		names = append(names, nameTok.Lexeme)
		if _, ok := s.Add(nameTok.Lexeme, scope.Local, declType); !ok {
			p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrD006, nameTok,
				"duplicate local variable "+nameTok.Lexeme))
		}
		if !p.at(token.COMMA) {
			break
		}
		p.advance()
	}
	end := p.expect(token.SEMI)
	return ast.NewVarDecl(startTok, rng(startTok, end), typeName, names)
}

func (p *Parser) parseIf(s *scope.Scope) ast.Statement {
	startTok := p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpr(s)
	p.expect(token.RPAREN)
	then := p.parseStatement(s)
	var els ast.Statement
	endTok := then.GetToken()
	if p.at(token.ELSE) {
		p.advance()
		els = p.parseStatement(s)
		endTok = els.GetToken()
	}
	return ast.NewIf(startTok, rng(startTok, endTok), cond, then, els)
}

func (p *Parser) parseWhile(s *scope.Scope) ast.Statement {
	startTok := p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpr(s)
	p.expect(token.RPAREN)
	body := p.parseStatement(s)
	return ast.NewWhile(startTok, rng(startTok, body.GetToken()), cond, body)
}

func (p *Parser) parseFor(s *scope.Scope) ast.Statement {
	startTok := p.expect(token.FOR)
	p.expect(token.LPAREN)
	var init, cond, update ast.Expression
	if !p.at(token.SEMI) {
		init = p.parseExpr(s)
	}
	p.expect(token.SEMI)
	if !p.at(token.SEMI) {
		cond = p.parseExpr(s)
	}
	p.expect(token.SEMI)
	if !p.at(token.RPAREN) {
		update = p.parseExpr(s)
	}
	p.expect(token.RPAREN)
	body := p.parseStatement(s)
	return ast.NewFor(startTok, rng(startTok, body.GetToken()), init, cond, update, body)
}

func (p *Parser) parseReturn(s *scope.Scope) ast.Statement {
	startTok := p.expect(token.RETURN)
	var value ast.Expression
	endTok := startTok
	if !p.at(token.SEMI) {
		value = p.parseExpr(s)
		endTok = value.GetToken()
	}
	semi := p.expect(token.SEMI)
	_ = endTok
	return ast.NewReturn(startTok, rng(startTok, semi), value)
}

func (p *Parser) parseExprStatement(s *scope.Scope) ast.Statement {
	startTok := p.cur()
	e := p.parseExpr(s)
	end := p.expect(token.SEMI)
	return ast.NewExprStatement(startTok, rng(startTok, end), e)
}
