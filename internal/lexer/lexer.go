// Package lexer turns source text into a stream of tokens with byte spans,
// per spec §4.1. Whitespace and comments (line and nested block) are skipped
// between tokens; operator scanning is longest-match.
package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/restrict-lang/rlc/internal/source"
	"github.com/restrict-lang/rlc/internal/token"
)

// Kind classifies a lex-time error (spec §4.1).
type Kind int

const (
	InvalidChar Kind = iota
	UnterminatedString
	UnterminatedComment
	InvalidEscape
)

// Error is a lex-time failure; fatal for the stream.
type Error struct {
	Span source.Span
	Kind Kind
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnterminatedString:
		return "unterminated string literal"
	case UnterminatedComment:
		return "unterminated block comment"
	case InvalidEscape:
		return "invalid escape sequence"
	default:
		return "invalid character"
	}
}

// Lexer scans one source string into tokens.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           rune
}

// New constructs a Lexer over input.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekChar2() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	_, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	pos2 := l.readPosition + w
	if pos2 >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos2:])
	return r
}

// skipTrivia consumes whitespace, line comments, and possibly-nested block
// comments. Returns a lexer error if a block comment never closes.
func (l *Lexer) skipTrivia() *Error {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			start := l.position
			l.readChar()
			l.readChar()
			depth := 1
			for depth > 0 {
				if l.ch == 0 {
					return &Error{Span: source.Span{Start: start, End: l.position}, Kind: UnterminatedComment}
				}
				if l.ch == '/' && l.peekChar() == '*' {
					depth++
					l.readChar()
					l.readChar()
					continue
				}
				if l.ch == '*' && l.peekChar() == '/' {
					depth--
					l.readChar()
					l.readChar()
					continue
				}
				l.readChar()
			}
			continue
		}
		return nil
	}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isAlnum(ch rune) bool {
	return isLetter(ch) || isDigit(ch)
}

func newTok(t token.Type, lexeme string, start, end int) token.Token {
	return token.Token{Type: t, Lexeme: lexeme, Span: source.Span{Start: start, End: end}}
}

// NextToken returns the next token, and a non-nil *Error if the token
// represents (or was preceded by) a lex failure. On error the returned token
// is a best-effort ILLEGAL token and the stream should stop (spec §4.1).
func (l *Lexer) NextToken() (token.Token, *Error) {
	if err := l.skipTrivia(); err != nil {
		return newTok(token.ILLEGAL, "", err.Span.Start, err.Span.End), err
	}

	start := l.position
	ch := l.ch

	switch {
	case ch == 0:
		return newTok(token.EOF, "", start, start), nil
	case isLetter(ch):
		for isAlnum(l.ch) {
			l.readChar()
		}
		lexeme := l.input[start:l.position]
		return newTok(token.LookupIdent(lexeme), lexeme, start, l.position), nil
	case isDigit(ch):
		return l.readNumber(start)
	case ch == '"':
		return l.readString(start)
	case ch == '\'':
		return l.readChar_(start)
	}

	// Longest-match operator/delimiter scanning.
	switch ch {
	case '|':
		if l.peekChar() == '>' {
			l.readChar()
			if l.peekChar() == '>' {
				l.readChar()
				l.readChar()
				return newTok(token.PIPE_GT_GT, "|>>", start, l.position), nil
			}
			l.readChar()
			return newTok(token.PIPE_GT, "|>", start, l.position), nil
		}
		if l.peekChar() == ']' {
			l.readChar()
			l.readChar()
			return newTok(token.BAR_RBRACKET, "|]", start, l.position), nil
		}
		l.readChar()
		return newTok(token.BAR, "|", start, l.position), nil
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return newTok(token.EQ, "==", start, l.position), nil
		}
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return newTok(token.FAT_ARROW, "=>", start, l.position), nil
		}
		l.readChar()
		return newTok(token.ASSIGN, "=", start, l.position), nil
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return newTok(token.NOT_EQ, "!=", start, l.position), nil
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return newTok(token.LTE, "<=", start, l.position), nil
		}
		l.readChar()
		return newTok(token.LT, "<", start, l.position), nil
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return newTok(token.GTE, ">=", start, l.position), nil
		}
		l.readChar()
		return newTok(token.GT, ">", start, l.position), nil
	case '[':
		if l.peekChar() == '|' {
			l.readChar()
			l.readChar()
			return newTok(token.LBRACKET_BAR, "[|", start, l.position), nil
		}
		l.readChar()
		return newTok(token.LBRACKET, "[", start, l.position), nil
	}

	single := map[rune]token.Type{
		'+': token.PLUS, '-': token.MINUS, '*': token.STAR, '/': token.SLASH,
		'%': token.PERCENT, '~': token.TILDE,
		'{': token.LBRACE, '}': token.RBRACE, '(': token.LPAREN, ')': token.RPAREN,
		']': token.RBRACKET, ',': token.COMMA, ':': token.COLON, ';': token.SEMI,
		'.': token.DOT,
	}
	if t, ok := single[ch]; ok {
		l.readChar()
		return newTok(t, string(ch), start, l.position), nil
	}

	l.readChar()
	return newTok(token.ILLEGAL, string(ch), start, l.position), &Error{Span: source.Span{Start: start, End: l.position}, Kind: InvalidChar}
}

func (l *Lexer) readNumber(start int) (token.Token, *Error) {
	for isDigit(l.ch) {
		l.readChar()
	}
	isFloat := false
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	lexeme := l.input[start:l.position]
	if isFloat {
		v, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return newTok(token.ILLEGAL, lexeme, start, l.position), &Error{Span: source.Span{Start: start, End: l.position}, Kind: InvalidChar}
		}
		tok := newTok(token.FLOAT, lexeme, start, l.position)
		tok.Literal = v
		return tok, nil
	}
	v, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return newTok(token.ILLEGAL, lexeme, start, l.position), &Error{Span: source.Span{Start: start, End: l.position}, Kind: InvalidChar}
	}
	tok := newTok(token.INT, lexeme, start, l.position)
	tok.Literal = v
	return tok, nil
}

var simpleEscapes = map[rune]rune{
	'\\': '\\', '"': '"', 'n': '\n', 'r': '\r', 't': '\t', '\'': '\'',
}

func (l *Lexer) readString(start int) (token.Token, *Error) {
	l.readChar() // consume opening quote
	var sb []rune
	for {
		if l.ch == 0 {
			return newTok(token.ILLEGAL, l.input[start:l.position], start, l.position), &Error{Span: source.Span{Start: start, End: l.position}, Kind: UnterminatedString}
		}
		if l.ch == '"' {
			l.readChar()
			break
		}
		if l.ch == '\\' {
			escStart := l.position
			l.readChar()
			r, ok := simpleEscapes[l.ch]
			if !ok {
				return newTok(token.ILLEGAL, l.input[start:l.position], start, l.position), &Error{Span: source.Span{Start: escStart, End: l.position + 1}, Kind: InvalidEscape}
			}
			sb = append(sb, r)
			l.readChar()
			continue
		}
		sb = append(sb, l.ch)
		l.readChar()
	}
	tok := newTok(token.STRING, l.input[start:l.position], start, l.position)
	tok.Literal = string(sb)
	return tok, nil
}

func (l *Lexer) readChar_(start int) (token.Token, *Error) {
	l.readChar() // consume opening '
	var value rune
	if l.ch == '\\' {
		l.readChar()
		r, ok := simpleEscapes[l.ch]
		if !ok {
			return newTok(token.ILLEGAL, l.input[start:l.position], start, l.position), &Error{Span: source.Span{Start: start, End: l.position + 1}, Kind: InvalidEscape}
		}
		value = r
		l.readChar()
	} else if l.ch == 0 || l.ch == '\'' {
		return newTok(token.ILLEGAL, l.input[start:l.position], start, l.position), &Error{Span: source.Span{Start: start, End: l.position}, Kind: UnterminatedString}
	} else {
		value = l.ch
		l.readChar()
	}
	if l.ch != '\'' {
		return newTok(token.ILLEGAL, l.input[start:l.position], start, l.position), &Error{Span: source.Span{Start: start, End: l.position}, Kind: UnterminatedString}
	}
	l.readChar()
	tok := newTok(token.CHAR, l.input[start:l.position], start, l.position)
	tok.Literal = value
	return tok, nil
}

// Tokenize scans the whole input to EOF, stopping at the first error (the
// "strict" lexer path from spec §4.1). Returns tokens scanned so far plus
// the error, if any.
func Tokenize(input string) ([]token.Token, *Error) {
	l := New(input)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}
