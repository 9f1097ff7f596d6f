package parser

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/source"
	"github.com/restrict-lang/rlc/internal/token"
)

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.at(token.IMPORT) {
		prog.Imports = append(prog.Imports, p.parseImport())
	}
	for !p.at(token.EOF) {
		prog.Declarations = append(prog.Declarations, p.parseTopDecl())
	}
	return prog
}

// parseOneTopLevelItem parses a single import or top-level declaration and
// appends it to prog; used by the recovering parser so that a failure mid-
// item can resynchronize without losing already-parsed items.
func (p *Parser) parseOneTopLevelItem(prog *ast.Program) {
	if p.at(token.IMPORT) {
		prog.Imports = append(prog.Imports, p.parseImport())
		return
	}
	prog.Declarations = append(prog.Declarations, p.parseTopDecl())
}

func (p *Parser) parseImport() *ast.ImportDecl {
	start := p.expect(token.IMPORT).Span
	var parts []string
	parts = append(parts, p.expect(token.IDENT).Lexeme)
	end := start
	for p.at(token.DOT) {
		p.advance()
		if p.at(token.STAR) {
			end = p.advance().Span
			break
		}
		tok := p.expect(token.IDENT)
		parts = append(parts, tok.Lexeme)
		end = tok.Span
	}
	return &ast.ImportDecl{SpanVal: start.Join(end), Path: parts}
}

func (p *Parser) parseTopDecl() ast.TopDecl {
	if p.at(token.EXPORT) {
		start := p.advance().Span
		inner := p.parseTopDecl()
		return &ast.Export{SpanVal: start.Join(inner.Span()), Decl: inner}
	}
	switch p.peek().Type {
	case token.RECORD:
		return p.parseRecordDecl()
	case token.IMPL:
		return p.parseImplDecl()
	case token.CONTEXT:
		return p.parseContextDecl()
	case token.FUN:
		return p.parseFunDecl()
	case token.ASYNC:
		return p.parseFunDecl()
	case token.VAL, token.MUT:
		return p.parseTopBindDecl()
	default:
		p.fail(p.peek().Span, "expected a top-level declaration, found %s %q", p.peek().Type, p.peek().Lexeme)
		return nil
	}
}

func (p *Parser) parseTypeParams() []*ast.TypeParam {
	if !p.at(token.LT) {
		return nil
	}
	p.advance()
	var params []*ast.TypeParam
	for {
		temporal := false
		if p.at(token.TILDE) {
			p.advance()
			temporal = true
		}
		name := p.expect(token.IDENT)
		tp := &ast.TypeParam{SpanVal: name.Span, Name: name.Lexeme, IsTemporal: temporal}
		if p.at(token.COLON) {
			p.advance()
			tp.Bounds = append(tp.Bounds, p.expect(token.IDENT).Lexeme)
			for p.at(token.PLUS) {
				p.advance()
				tp.Bounds = append(tp.Bounds, p.expect(token.IDENT).Lexeme)
			}
		}
		params = append(params, tp)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.GT)
	return params
}

func (p *Parser) parseFields() []ast.RecordField {
	p.expect(token.LBRACE)
	var fields []ast.RecordField
	for !p.at(token.RBRACE) {
		name := p.expect(token.IDENT).Lexeme
		p.expect(token.COLON)
		ty := p.parseType()
		fields = append(fields, ast.RecordField{Name: name, Type: ty})
	}
	p.expect(token.RBRACE)
	return fields
}

func (p *Parser) parseRecordDecl() *ast.RecordDecl {
	start := p.expect(token.RECORD).Span
	name := p.expect(token.IDENT).Lexeme
	tps := p.parseTypeParams()
	fields := p.parseFields()
	end := p.toks[p.pos-1].Span
	return &ast.RecordDecl{SpanVal: start.Join(end), Name: name, TypeParams: tps, Fields: fields}
}

func (p *Parser) parseContextDecl() *ast.ContextDecl {
	start := p.expect(token.CONTEXT).Span
	name := p.expect(token.IDENT).Lexeme
	fields := p.parseFields()
	end := p.toks[p.pos-1].Span
	return &ast.ContextDecl{SpanVal: start.Join(end), Name: name, Fields: fields}
}

func (p *Parser) parseImplDecl() *ast.ImplDecl {
	start := p.expect(token.IMPL).Span
	target := p.expect(token.IDENT).Lexeme
	p.expect(token.LBRACE)
	var methods []*ast.FunDecl
	for !p.at(token.RBRACE) {
		methods = append(methods, p.parseFunDecl())
	}
	end := p.expect(token.RBRACE).Span
	return &ast.ImplDecl{SpanVal: start.Join(end), TargetName: target, Methods: methods}
}

func (p *Parser) parseParam() *ast.Param {
	start := p.peek().Span
	name := p.expect(token.IDENT).Lexeme
	p.expect(token.COLON)
	ty := p.parseType()
	param := &ast.Param{SpanVal: start.Join(ty.Span()), Name: name, Type: ty}
	if p.at(token.WITH) {
		p.advance()
		param.ContextBound = p.expect(token.IDENT).Lexeme
	}
	return param
}

func (p *Parser) parseFunDecl() *ast.FunDecl {
	isAsync := false
	var start source.Span
	if p.at(token.ASYNC) {
		start = p.advance().Span
		isAsync = true
	}
	if start == (source.Span{}) {
		start = p.peek().Span
	}
	p.expect(token.FUN)
	name := p.expect(token.IDENT).Lexeme
	tps := p.parseTypeParams()
	var params []*ast.Param
	for p.at(token.IDENT) {
		params = append(params, p.parseParam())
	}
	p.expect(token.ASSIGN)
	body := p.parseBlock()
	return &ast.FunDecl{SpanVal: start.Join(body.Span()), Name: name, TypeParams: tps, Params: params, IsAsync: isAsync, Body: body}
}

func (p *Parser) parseTopBindDecl() *ast.BindDecl {
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
	return &ast.BindDecl{SpanVal: start.Join(value.Span()), Mutable: mutable, Name: name, Value: value}
}
