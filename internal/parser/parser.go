// Package parser turns a token stream into an AST (spec §4.2). Two entry
// points are provided: Parse (strict — stops at the first error) and
// ParseRecovering (resynchronizes at top-level keywords and returns a
// partial Program plus every ParseError gathered along the way).
package parser

import (
	"fmt"

	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/lexer"
	"github.com/restrict-lang/rlc/internal/source"
	"github.com/restrict-lang/rlc/internal/token"
)

// ParseError is a parser diagnostic with the span of the first unexpected
// token (spec §4.2 "Error strategy").
type ParseError struct {
	Span    source.Span
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// stopParsing is a sentinel panic value used by the strict parser to unwind
// to Parse's recover() on the first error, avoiding an `if err != nil` check
// after every single production rule.
type stopParsing struct{ err *ParseError }

// Parser consumes a pre-lexed token slice.
type Parser struct {
	toks       []token.Token
	pos        int
	recovering bool
	errors     []*ParseError
}

func newParser(toks []token.Token, recovering bool) *Parser {
	return &Parser{toks: toks, recovering: recovering}
}

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[idx]
}

func (p *Parser) advance() token.Token {
	t := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(t token.Type) bool { return p.peek().Type == t }

func (p *Parser) fail(span source.Span, format string, args ...interface{}) {
	err := &ParseError{Span: span, Message: fmt.Sprintf(format, args...)}
	if p.recovering {
		p.errors = append(p.errors, err)
		panic(err) // unwind to the nearest resynchronization point
	}
	panic(stopParsing{err})
}

func (p *Parser) expect(t token.Type) token.Token {
	if !p.at(t) {
		p.fail(p.peek().Span, "expected %s, found %s %q", t, p.peek().Type, p.peek().Lexeme)
	}
	return p.advance()
}

// Parse lexes and parses input strictly: the first lex or parse error aborts
// and is returned.
func Parse(input string) (prog *ast.Program, err error) {
	toks, lexErr := lexer.Tokenize(input)
	if lexErr != nil {
		return nil, diagnostics.New(diagnostics.PhaseLexer, lexCodeFor(lexErr.Kind), lexErr.Span, "%s", lexErr.Error())
	}
	p := newParser(toks, false)
	defer func() {
		if r := recover(); r != nil {
			sp, ok := r.(stopParsing)
			if !ok {
				panic(r)
			}
			err = diagnostics.New(diagnostics.PhaseParser, diagnostics.PUnexpectedToken, sp.err.Span, "%s", sp.err.Message)
		}
	}()
	return p.parseProgram(), nil
}

// ParseRecovering lexes and parses input, resynchronizing at top-level
// keywords (fun, record, impl, context, export, import) after each error,
// per spec §4.2. Always returns a (possibly partial) Program.
func ParseRecovering(input string) (*ast.Program, []*ParseError) {
	toks, lexErr := lexer.Tokenize(input)
	var errs []*ParseError
	if lexErr != nil {
		errs = append(errs, &ParseError{Span: lexErr.Span, Message: lexErr.Error()})
	}
	p := newParser(toks, true)
	prog := &ast.Program{}

	for !p.at(token.EOF) {
		startPos := p.pos
		ok := func() (ok bool) {
			defer func() {
				if r := recover(); r != nil {
					if _, isErr := r.(*ParseError); isErr {
						ok = false
						return
					}
					panic(r)
				}
			}()
			p.parseOneTopLevelItem(prog)
			return true
		}()
		if !ok {
			p.resynchronize()
			if p.pos == startPos {
				p.advance() // guarantee forward progress
			}
		}
	}
	return prog, append(errs, p.errors...)
}

var topLevelKeywords = map[token.Type]bool{
	token.FUN: true, token.RECORD: true, token.IMPL: true,
	token.CONTEXT: true, token.EXPORT: true, token.IMPORT: true,
}

func (p *Parser) resynchronize() {
	for !p.at(token.EOF) && !topLevelKeywords[p.peek().Type] {
		p.advance()
	}
}

func lexCodeFor(k lexer.Kind) diagnostics.Code {
	switch k {
	case lexer.UnterminatedString:
		return diagnostics.LUnterminatedString
	case lexer.UnterminatedComment:
		return diagnostics.LUnterminatedComment
	case lexer.InvalidEscape:
		return diagnostics.LInvalidEscape
	default:
		return diagnostics.LInvalidChar
	}
}
