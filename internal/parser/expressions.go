// Precedence chain (low to high), per spec §4.2:
//
//	1. then/else/else-if              parseThen
//	2. match postfix                   parseMatchLevel
//	3. while postfix                   parseWhileLevel
//	4. pipe operators |> |>> |         parsePipeLevel
//	5. binary (single level)           parseBinaryLevel
//	6. call (direct + OSV)             parseCallLevel
//	7. postfix (.field .clone freeze)  parsePostfixLevel
//	8. primaries                       parsePrimary
//
// The Open Question on further splitting level 5 is resolved in DESIGN.md:
// the spec intentionally keeps one level, and so do we.
package parser

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/source"
	"github.com/restrict-lang/rlc/internal/token"
)

func (p *Parser) parseExpr(inStatement bool) ast.Expr {
	return p.parseThen(inStatement)
}

func (p *Parser) parseThen(inStatement bool) ast.Expr {
	cond := p.parseMatchLevel(inStatement)
	if !p.at(token.THEN) {
		return cond
	}
	p.advance()
	thenBody := p.parseBlock()
	then := &ast.Then{SpanVal: cond.Span().Join(thenBody.Span()), Cond: cond, ThenBody: thenBody}
	// 'if' is not its own keyword in this grammar: "else if" is recognized
	// lexically as ELSE followed by the identifier "if".
	for p.at(token.ELSE) && p.peekN(1).Type == token.IDENT && p.peekN(1).Lexeme == "if" {
		p.advance() // else
		p.advance() // if
		elseCond := p.parseMatchLevel(false)
		elseBody := p.parseBlock()
		then.ElseIfs = append(then.ElseIfs, ast.ElseIf{Cond: elseCond, Then: elseBody})
		then.SpanVal = then.SpanVal.Join(elseBody.Span())
	}
	if p.at(token.ELSE) {
		p.advance()
		elseBody := p.parseBlock()
		then.Else = elseBody
		then.SpanVal = then.SpanVal.Join(elseBody.Span())
	}
	return then
}

func (p *Parser) parseMatchLevel(inStatement bool) ast.Expr {
	left := p.parseWhileLevel(inStatement)
	for p.at(token.MATCH) {
		p.advance()
		start := p.expect(token.LBRACE).Span
		_ = start
		var arms []ast.MatchArm
		for !p.at(token.RBRACE) {
			pat := p.parsePattern()
			p.expect(token.FAT_ARROW)
			body := p.parseBlock()
			arms = append(arms, ast.MatchArm{Pattern: pat, Body: body})
		}
		end := p.expect(token.RBRACE).Span
		left = &ast.Match{SpanVal: left.Span().Join(end), Scrutinee: left, Arms: arms}
	}
	return left
}

func (p *Parser) parseWhileLevel(inStatement bool) ast.Expr {
	left := p.parsePipeLevel(inStatement)
	for p.at(token.WHILE) {
		p.advance()
		body := p.parseBlock()
		left = &ast.While{SpanVal: left.Span().Join(body.Span()), Cond: left, Body: body}
	}
	return left
}

var pipeOps = map[token.Type]ast.PipeOp{
	token.PIPE_GT:    ast.PipeForward,
	token.PIPE_GT_GT: ast.PipeMut,
	token.BAR:        ast.PipeBar,
}

func (p *Parser) parsePipeLevel(inStatement bool) ast.Expr {
	left := p.parseBinaryLevel(inStatement)
	for {
		op, ok := pipeOps[p.peek().Type]
		if !ok {
			break
		}
		p.advance()
		target := p.parseBinaryLevel(false)
		pipe := &ast.Pipe{SpanVal: left.Span().Join(target.Span()), Op: op, Source: left, TargetExpr: target}
		if ident, isIdent := target.(*ast.Ident); isIdent {
			pipe.TargetIdent = ident.Name
		}
		left = pipe
	}
	return left
}

var binaryOps = map[token.Type]ast.BinaryOp{
	token.PLUS: ast.OpAdd, token.MINUS: ast.OpSub, token.STAR: ast.OpMul,
	token.SLASH: ast.OpDiv, token.PERCENT: ast.OpMod,
	token.EQ: ast.OpEq, token.NOT_EQ: ast.OpNe,
	token.LT: ast.OpLt, token.LTE: ast.OpLe, token.GT: ast.OpGt, token.GTE: ast.OpGe,
}

func (p *Parser) parseBinaryLevel(inStatement bool) ast.Expr {
	left := p.parseCallLevel(inStatement)
	for {
		op, ok := binaryOps[p.peek().Type]
		if !ok {
			break
		}
		p.advance()
		right := p.parseCallLevel(false)
		left = &ast.Binary{SpanVal: left.Span().Join(right.Span()), Op: op, Left: left, Right: right}
	}
	return left
}

// startsPrimary reports whether t can begin a primary expression that
// composes as an OSV operand; its only caller is canComposeOSV. `|` is left
// out: after a primary it is the infix bar pipe, and a lambda begins only
// where parsePrimary is called directly.
func startsPrimary(t token.Type) bool {
	switch t {
	case token.IDENT, token.INT, token.FLOAT, token.STRING, token.CHAR,
		token.TRUE, token.FALSE, token.UNIT, token.LPAREN, token.LBRACE,
		token.LBRACKET, token.LBRACKET_BAR, token.SOME, token.NONE,
		token.WITH:
		return true
	default:
		return false
	}
}

// canComposeOSV implements the statement-context heuristic (spec §4.2,
// §9): stop absorbing further primaries if the next token begins a new
// statement (val, mut, ident =, }) or is a binary operator. Binary operators
// and `}`/`val`/`mut` never satisfy startsPrimary, so the only case needing
// an explicit check is a bare identifier immediately followed by `=`.
func (p *Parser) canComposeOSV(inStatement bool) bool {
	if !startsPrimary(p.peek().Type) {
		return false
	}
	if inStatement && p.at(token.IDENT) && p.peekN(1).Type == token.ASSIGN {
		return false
	}
	return true
}

// parseCallLevel handles both call syntaxes (spec §4.2 level 6):
//   - direct: f(args) — recognized in parsePostfixLevel right after a primary
//   - OSV: (args) verb / arg verb — recognized here by composing primaries
func (p *Parser) parseCallLevel(inStatement bool) ast.Expr {
	if p.at(token.LPAREN) {
		if args, span, ok := p.tryParseArgGroup(); ok {
			verb := p.parsePostfixLevel()
			return &ast.Call{SpanVal: span.Join(verb.Span()), Func: verb, Args: args, IsOSV: true}
		}
	}
	left := p.parsePostfixLevel()
	for p.canComposeOSV(inStatement) {
		verb := p.parsePostfixLevel()
		left = &ast.Call{SpanVal: left.Span().Join(verb.Span()), Func: verb, Args: []ast.Expr{left}, IsOSV: true}
	}
	return left
}

// tryParseArgGroup attempts to parse "(e1, e2, ...)" with two or more
// elements as an OSV argument group. A single-element or empty parenthesized
// form is not an argument group (it's an ordinary grouping parenthesis,
// handled by parsePrimary instead) — on that path the parser position is
// rewound and ok is false.
func (p *Parser) tryParseArgGroup() (args []ast.Expr, span source.Span, ok bool) {
	save := p.pos
	start := p.expect(token.LPAREN).Span
	if p.at(token.RPAREN) {
		p.pos = save
		return nil, source.Span{}, false
	}
	first := p.parseExpr(false)
	if !p.at(token.COMMA) {
		p.pos = save
		return nil, source.Span{}, false
	}
	elems := []ast.Expr{first}
	for p.at(token.COMMA) {
		p.advance()
		elems = append(elems, p.parseExpr(false))
	}
	end := p.expect(token.RPAREN).Span
	return elems, start.Join(end), true
}

func (p *Parser) parsePostfixLevel() ast.Expr {
	left := p.parsePrimary()
	for {
		switch p.peek().Type {
		case token.DOT:
			p.advance()
			if p.at(token.CLONE) {
				p.advance()
				updates, end := p.parseFieldInits()
				left = &ast.Clone{SpanVal: left.Span().Join(end), Base: left, Updates: updates}
				continue
			}
			field := p.expect(token.IDENT)
			left = &ast.FieldAccess{SpanVal: left.Span().Join(field.Span), Base: left, Field: field.Lexeme}
		case token.FREEZE:
			t := p.advance()
			left = &ast.Freeze{SpanVal: left.Span().Join(t.Span), Value: left}
		case token.LPAREN:
			// Direct call: `(` immediately follows a primary in call position.
			args, end := p.parseArgListParen()
			left = &ast.Call{SpanVal: left.Span().Join(end), Func: left, Args: args, IsOSV: false}
		default:
			return left
		}
	}
}

func (p *Parser) parseArgListParen() ([]ast.Expr, source.Span) {
	p.expect(token.LPAREN)
	var args []ast.Expr
	for !p.at(token.RPAREN) {
		args = append(args, p.parseExpr(false))
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	end := p.expect(token.RPAREN).Span
	return args, end
}

func (p *Parser) parseFieldInits() ([]ast.FieldInit, source.Span) {
	p.expect(token.LBRACE)
	var fields []ast.FieldInit
	for !p.at(token.RBRACE) {
		name := p.expect(token.IDENT).Lexeme
		p.expect(token.ASSIGN)
		value := p.parseExpr(false)
		fields = append(fields, ast.FieldInit{Name: name, Value: value})
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	end := p.expect(token.RBRACE).Span
	return fields, end
}
