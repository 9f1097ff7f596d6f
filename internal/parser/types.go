package parser

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/token"
)

// parseType implements the concrete grammar's `type` production:
//
//	type := Ident ('<' type (',' type)* '>')?
//
// Function types (ast.FunctionType / typesystem.Function) have no surface
// syntax in this language — they only ever arise internally, as the
// inferred type of a Lambda or a function identifier (spec §9.iii).
func (p *Parser) parseType() ast.Type {
	start := p.peek().Span
	name := p.expect(token.IDENT).Lexeme
	if !p.at(token.LT) {
		return &ast.NamedType{SpanVal: start, Name: name}
	}
	p.advance()
	var args []ast.Type
	for {
		args = append(args, p.parseType())
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	end := p.expect(token.GT).Span
	return &ast.GenericType{SpanVal: start.Join(end), Name: name, Args: args}
}
