package parser

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/token"
)

// parseBlock parses `{ stmt* expr? }`. A block ends with an optional final
// expression that becomes its value; otherwise it has type Unit.
func (p *Parser) parseBlock() *ast.Block {
	start := p.expect(token.LBRACE).Span
	block := &ast.Block{}
	for !p.at(token.RBRACE) {
		if p.isBindingStart() {
			block.Statements = append(block.Statements, p.parseStmtBinding())
			continue
		}
		if p.isAssignmentStart() {
			block.Statements = append(block.Statements, p.parseStmtAssignment())
			continue
		}
		expr := p.parseExpr(true)
		if p.at(token.RBRACE) {
			block.Expr = expr
			break
		}
		block.Statements = append(block.Statements, &ast.StmtExpr{SpanVal: expr.Span(), Expr: expr})
	}
	end := p.expect(token.RBRACE).Span
	block.SpanVal = start.Join(end)
	return block
}

func (p *Parser) isBindingStart() bool {
	return p.at(token.VAL) || p.at(token.MUT)
}

// isAssignmentStart detects `ident =` without consuming tokens — the
// statement-context heuristic's one genuinely ambiguous case (spec §9).
func (p *Parser) isAssignmentStart() bool {
	return p.at(token.IDENT) && p.peekN(1).Type == token.ASSIGN
}

func (p *Parser) parseStmtBinding() *ast.StmtBinding {
	start := p.peek().Span
	mutable := false
	if p.at(token.MUT) {
		p.advance()
		mutable = true
	}
	p.expect(token.VAL)
	name := p.expect(token.IDENT).Lexeme
	p.expect(token.ASSIGN)
	value := p.parseExpr(true)
	return &ast.StmtBinding{SpanVal: start.Join(value.Span()), Mutable: mutable, Name: name, Value: value}
}

func (p *Parser) parseStmtAssignment() *ast.StmtAssignment {
	name := p.expect(token.IDENT)
	p.expect(token.ASSIGN)
	value := p.parseExpr(true)
	return &ast.StmtAssignment{SpanVal: name.Span.Join(value.Span()), Name: name.Lexeme, Value: value}
}
