package parser

import (
	"strconv"

	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/token"
)

// parsePrimary implements spec §4.2 level 8: literals, identifier,
// parenthesized expression, block, record literal, list/array literals,
// lambda, Some(e), None, with (...) { ... }.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case token.INT:
		p.advance()
		v, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
		return &ast.IntLit{SpanVal: tok.Span, Value: v}
	case token.FLOAT:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return &ast.FloatLit{SpanVal: tok.Span, Value: v}
	case token.STRING:
		p.advance()
		return &ast.StringLit{SpanVal: tok.Span, Value: tok.Lexeme}
	case token.CHAR:
		p.advance()
		r, _ := tok.Literal.(rune)
		return &ast.CharLit{SpanVal: tok.Span, Value: r}
	case token.TRUE:
		p.advance()
		return &ast.BoolLit{SpanVal: tok.Span, Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BoolLit{SpanVal: tok.Span, Value: false}
	case token.UNIT:
		p.advance()
		return &ast.UnitLit{SpanVal: tok.Span}
	case token.IDENT:
		start := p.advance()
		if p.at(token.LBRACE) {
			return p.parseRecordLit(start)
		}
		return &ast.Ident{SpanVal: start.Span, Name: start.Lexeme}
	case token.SOME:
		p.advance()
		p.expect(token.LPAREN)
		inner := p.parseExpr(false)
		end := p.expect(token.RPAREN).Span
		return &ast.SomeExpr{SpanVal: tok.Span.Join(end), Value: inner}
	case token.NONE:
		p.advance()
		return &ast.NoneExpr{SpanVal: tok.Span}
	case token.LPAREN:
		return p.parseParenExpr()
	case token.LBRACE:
		return p.parseBlock()
	case token.LBRACKET:
		return p.parseListLit()
	case token.LBRACKET_BAR:
		return p.parseArrayLit()
	case token.BAR:
		return p.parseLambda()
	case token.WITH:
		return p.parseWithExpr()
	default:
		p.fail(tok.Span, "expected an expression, found %s %q", tok.Type, tok.Lexeme)
		return nil
	}
}

// parseParenExpr handles plain grouping: `(e)`. The multi-element OSV
// argument-group form `(e1, e2, ...)` is recognized earlier, in
// parseCallLevel/tryParseArgGroup, before falling through here.
func (p *Parser) parseParenExpr() ast.Expr {
	p.expect(token.LPAREN)
	inner := p.parseExpr(false)
	p.expect(token.RPAREN)
	return inner
}

func (p *Parser) parseRecordLit(nameTok token.Token) ast.Expr {
	fields, end := p.parseFieldInits()
	return &ast.RecordLit{SpanVal: nameTok.Span.Join(end), Name: nameTok.Lexeme, Fields: fields}
}

func (p *Parser) parseListLit() ast.Expr {
	start := p.expect(token.LBRACKET).Span
	var elems []ast.Expr
	for !p.at(token.RBRACKET) {
		elems = append(elems, p.parseExpr(false))
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	end := p.expect(token.RBRACKET).Span
	return &ast.ListLit{SpanVal: start.Join(end), Elements: elems}
}

func (p *Parser) parseArrayLit() ast.Expr {
	start := p.expect(token.LBRACKET_BAR).Span
	var elems []ast.Expr
	for !p.at(token.BAR_RBRACKET) {
		elems = append(elems, p.parseExpr(false))
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	end := p.expect(token.BAR_RBRACKET).Span
	return &ast.ArrayLit{SpanVal: start.Join(end), Elements: elems}
}

// parseLambda handles `|p1, p2, ...| body`. Lambda parameters carry no type
// annotation; their types are solved by inference at the call site.
func (p *Parser) parseLambda() ast.Expr {
	start := p.expect(token.BAR).Span
	var params []*ast.Param
	for !p.at(token.BAR) {
		name := p.expect(token.IDENT)
		params = append(params, &ast.Param{SpanVal: name.Span, Name: name.Lexeme})
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.BAR)
	body := p.parseExpr(false)
	return &ast.Lambda{SpanVal: start.Join(body.Span()), Params: params, Body: body}
}

// parseWithExpr handles `with (C1, ..., Cn) { body }`.
func (p *Parser) parseWithExpr() ast.Expr {
	start := p.expect(token.WITH).Span
	p.expect(token.LPAREN)
	var contexts []string
	for !p.at(token.RPAREN) {
		contexts = append(contexts, p.expect(token.IDENT).Lexeme)
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.With{SpanVal: start.Join(body.Span()), Contexts: contexts, Body: body}
}
