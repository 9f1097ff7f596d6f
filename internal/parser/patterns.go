package parser

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/token"
)

func (p *Parser) parsePattern() ast.Pattern {
	tok := p.peek()
	switch tok.Type {
	case token.IDENT:
		if tok.Lexeme == "_" {
			p.advance()
			return &ast.WildcardPattern{SpanVal: tok.Span}
		}
		start := p.advance()
		if p.at(token.LBRACE) {
			return p.parseRecordPattern(start)
		}
		return &ast.IdentPattern{SpanVal: start.Span, Name: start.Lexeme}
	case token.SOME:
		start := p.advance().Span
		p.expect(token.LPAREN)
		inner := p.parsePattern()
		end := p.expect(token.RPAREN).Span
		return &ast.SomePattern{SpanVal: start.Join(end), Inner: inner}
	case token.NONE:
		t := p.advance()
		return &ast.NonePattern{SpanVal: t.Span}
	case token.LBRACKET:
		return p.parseListPattern()
	case token.INT, token.FLOAT, token.STRING, token.CHAR, token.TRUE, token.FALSE, token.UNIT:
		return p.parseLiteralPattern()
	default:
		p.fail(tok.Span, "expected a pattern, found %s %q", tok.Type, tok.Lexeme)
		return nil
	}
}

func (p *Parser) parseLiteralPattern() ast.Pattern {
	lit := p.parsePrimary()
	return &ast.LiteralPattern{SpanVal: lit.Span(), Value: lit}
}

func (p *Parser) parseRecordPattern(nameTok token.Token) ast.Pattern {
	p.expect(token.LBRACE)
	var fields []ast.FieldPattern
	for !p.at(token.RBRACE) {
		fname := p.expect(token.IDENT).Lexeme
		p.expect(token.ASSIGN)
		fpat := p.parsePattern()
		fields = append(fields, ast.FieldPattern{Name: fname, Pattern: fpat})
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	end := p.expect(token.RBRACE).Span
	return &ast.RecordPattern{SpanVal: nameTok.Span.Join(end), Name: nameTok.Lexeme, Fields: fields}
}

// parseListPattern implements `[]`, `[hd | tl]`, and `[p1, ..., pn]`. Inside
// a pattern's `[`, `|` always means cons (spec §9 "Pipe vs list-cons
// ambiguity"), never a lambda delimiter or an infix pipe.
func (p *Parser) parseListPattern() ast.Pattern {
	start := p.expect(token.LBRACKET).Span
	if p.at(token.RBRACKET) {
		end := p.advance().Span
		return &ast.EmptyListPattern{SpanVal: start.Join(end)}
	}
	first := p.parsePattern()
	if p.at(token.BAR) {
		p.advance()
		tail := p.parsePattern()
		end := p.expect(token.RBRACKET).Span
		return &ast.ListConsPattern{SpanVal: start.Join(end), Head: first, Tail: tail}
	}
	elems := []ast.Pattern{first}
	for p.at(token.COMMA) {
		p.advance()
		elems = append(elems, p.parsePattern())
	}
	end := p.expect(token.RBRACKET).Span
	return &ast.ListExactPattern{SpanVal: start.Join(end), Elements: elems}
}
