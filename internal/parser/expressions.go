package parser

import (
	"strconv"

	"github.com/yangfawu/decaf-compiler/internal/ast"
	"github.com/yangfawu/decaf-compiler/internal/diagnostics"
	"github.com/yangfawu/decaf-compiler/internal/scope"
	"github.com/yangfawu/decaf-compiler/internal/token"
)

func (p *Parser) parseExpr(s *scope.Scope) ast.Expression {
	return p.parseAssignment(s)
}

func (p *Parser) parseAssignment(s *scope.Scope) ast.Expression {
	left := p.parseOr(s)
	if p.at(token.ASSIGN) {
		tok := p.advance()
		right := p.parseAssignment(s)
		return ast.NewAssign(tok, rng(left.GetToken(), right.GetToken()), left, right)
	}
	return left
}

func (p *Parser) parseOr(s *scope.Scope) ast.Expression {
	left := p.parseAnd(s)
	for p.at(token.OR) {
		tok := p.advance()
		right := p.parseAnd(s)
		left = ast.NewBinary(tok, rng(left.GetToken(), right.GetToken()), ast.BinOr, left, right)
	}
	return left
}

func (p *Parser) parseAnd(s *scope.Scope) ast.Expression {
	left := p.parseEquality(s)
	for p.at(token.AND) {
		tok := p.advance()
		right := p.parseEquality(s)
		left = ast.NewBinary(tok, rng(left.GetToken(), right.GetToken()), ast.BinAnd, left, right)
	}
	return left
}

func (p *Parser) parseEquality(s *scope.Scope) ast.Expression {
	left := p.parseRelational(s)
	for p.at(token.EQ) || p.at(token.NEQ) {
		tok := p.advance()
		op := ast.BinEq
		if tok.Type == token.NEQ {
			op = ast.BinNeq
		}
		right := p.parseRelational(s)
		left = ast.NewBinary(tok, rng(left.GetToken(), right.GetToken()), op, left, right)
	}
	return left
}

func (p *Parser) parseRelational(s *scope.Scope) ast.Expression {
	left := p.parseAdditive(s)
	for p.at(token.LT) || p.at(token.LE) || p.at(token.GT) || p.at(token.GE) {
		tok := p.advance()
		var op ast.BinaryOp
		switch tok.Type {
		case token.LT:
			op = ast.BinLt
		case token.LE:
			op = ast.BinLe
		case token.GT:
			op = ast.BinGt
		case token.GE:
			op = ast.BinGe
		}
		right := p.parseAdditive(s)
		left = ast.NewBinary(tok, rng(left.GetToken(), right.GetToken()), op, left, right)
	}
	return left
}

func (p *Parser) parseAdditive(s *scope.Scope) ast.Expression {
	left := p.parseMultiplicative(s)
	for p.at(token.PLUS) || p.at(token.MINUS) {
		tok := p.advance()
		op := ast.BinAdd
		if tok.Type == token.MINUS {
			op = ast.BinSub
		}
		right := p.parseMultiplicative(s)
		left = ast.NewBinary(tok, rng(left.GetToken(), right.GetToken()), op, left, right)
	}
	return left
}

func (p *Parser) parseMultiplicative(s *scope.Scope) ast.Expression {
	left := p.parseUnary(s)
	for p.at(token.STAR) || p.at(token.SLASH) {
		tok := p.advance()
		op := ast.BinMul
		if tok.Type == token.SLASH {
			op = ast.BinDiv
		}
		right := p.parseUnary(s)
		left = ast.NewBinary(tok, rng(left.GetToken(), right.GetToken()), op, left, right)
	}
	return left
}

func (p *Parser) parseUnary(s *scope.Scope) ast.Expression {
	switch p.cur().Type {
	case token.MINUS:
		tok := p.advance()
		inner := p.parseUnary(s)
		return ast.NewUnary(tok, rng(tok, inner.GetToken()), ast.UnaryNeg, inner)
	case token.BANG:
		tok := p.advance()
		inner := p.parseUnary(s)
		return ast.NewUnary(tok, rng(tok, inner.GetToken()), ast.UnaryNot, inner)
	case token.INCR, token.DECR:
		tok := p.advance()
		op := ast.AutoInc
		if tok.Type == token.DECR {
			op = ast.AutoDec
		}
		inner := p.parseUnary(s)
		return ast.NewAuto(tok, rng(tok, inner.GetToken()), inner, op, ast.Prefix)
	default:
		return p.parsePostfix(s)
	}
}

func (p *Parser) parsePostfix(s *scope.Scope) ast.Expression {
	e := p.parsePrimary(s)
	for {
		switch p.cur().Type {
		case token.INCR, token.DECR:
			tok := p.advance()
			op := ast.AutoInc
			if tok.Type == token.DECR {
				op = ast.AutoDec
			}
			e = ast.NewAuto(tok, rng(e.GetToken(), tok), e, op, ast.Postfix)
		case token.DOT:
			p.advance()
			nameTok := p.expect(token.IDENT)
			if p.at(token.LPAREN) {
				args := p.parseArgs(s)
				last := nameTok
				if len(args) > 0 {
					last = args[len(args)-1].GetToken()
				}
				e = ast.NewMethodCall(nameTok, rng(e.GetToken(), last), e, nameTok.Lexeme, args, s.ContainingClass())
			} else {
				e = ast.NewFieldAccess(nameTok, rng(e.GetToken(), nameTok), e, nameTok.Lexeme, s.ContainingClass())
			}
		default:
			return e
		}
	}
}

func (p *Parser) parseArgs(s *scope.Scope) []ast.Expression {
	p.expect(token.LPAREN)
	var args []ast.Expression
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		if len(args) > 0 {
			p.expect(token.COMMA)
		}
		args = append(args, p.parseExpr(s))
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parsePrimary(s *scope.Scope) ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.INT:
		p.advance()
		n, _ := strconv.Atoi(tok.Lexeme)
		c := ast.NewConstant(tok, rng(tok, tok))
		c.Kind = ast.IntConst
		c.IntVal = n
		return c
	case token.FLOAT:
		p.advance()
		f, _ := strconv.ParseFloat(tok.Lexeme, 64)
		c := ast.NewConstant(tok, rng(tok, tok))
		c.Kind = ast.FloatConst
		c.FloatVal = f
		return c
	case token.STRING:
		p.advance()
		c := ast.NewConstant(tok, rng(tok, tok))
		c.Kind = ast.StringConst
		c.StrVal = tok.Lexeme
		return c
	case token.TRUE, token.FALSE:
		p.advance()
		c := ast.NewConstant(tok, rng(tok, tok))
		c.Kind = ast.BoolConst
		c.BoolVal = tok.Type == token.TRUE
		return c
	case token.NULL:
		p.advance()
		c := ast.NewConstant(tok, rng(tok, tok))
		c.Kind = ast.NullConst
		return c
	case token.THIS:
		p.advance()
		return ast.NewThis(tok, rng(tok, tok))
	case token.SUPER:
		p.advance()
		return ast.NewSuper(tok, rng(tok, tok))
	case token.NEW:
		p.advance()
		classTok := p.expect(token.IDENT)
		args := p.parseArgs(s)
		last := classTok
		if len(args) > 0 {
			last = args[len(args)-1].GetToken()
		}
		return ast.NewNewObject(tok, rng(tok, last), classTok.Lexeme, args, s.ContainingClass())
	case token.LPAREN:
		p.advance()
		e := p.parseExpr(s)
		p.expect(token.RPAREN)
		return e
	case token.IDENT:
		p.advance()
		if v, ok := s.Lookup(tok.Lexeme); ok {
			ve := ast.NewVar(tok, rng(tok, tok), tok.Lexeme)
			ve.Resolved = v
			return ve
		}
		return ast.NewClassRef(tok, rng(tok, tok), tok.Lexeme)
	default:
		p.errors = append(p.errors, diagnostics.Newf(diagnostics.ErrP001, tok,
			"unexpected token %q in expression", tok.Lexeme))
		p.advance()
		c := ast.NewConstant(tok, rng(tok, tok))
		c.Kind = ast.IntConst
		return c
	}
}
