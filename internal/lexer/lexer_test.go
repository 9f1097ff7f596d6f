package lexer

import (
	"testing"

	"github.com/restrict-lang/rlc/internal/token"
)

func TestNextTokenBasics(t *testing.T) {
	input := `val x = 42
mut val y = x |> z
record Point { x: Int y: Int }
p.clone { x = 1 }
// a comment
/* nested /* block */ comment */
"hi\n" 'a' 3.14`

	testCases := []struct {
		wantType   token.Type
		wantLexeme string
	}{
		{token.VAL, "val"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "42"},
		{token.MUT, "mut"},
		{token.VAL, "val"},
		{token.IDENT, "y"},
		{token.ASSIGN, "="},
		{token.IDENT, "x"},
		{token.PIPE_GT, "|>"},
		{token.IDENT, "z"},
		{token.RECORD, "record"},
		{token.IDENT, "Point"},
		{token.LBRACE, "{"},
		{token.IDENT, "x"},
		{token.COLON, ":"},
		{token.IDENT, "Int"},
		{token.IDENT, "y"},
		{token.COLON, ":"},
		{token.IDENT, "Int"},
		{token.RBRACE, "}"},
		{token.IDENT, "p"},
		{token.DOT, "."},
		{token.CLONE, "clone"},
		{token.LBRACE, "{"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "1"},
		{token.RBRACE, "}"},
		{token.STRING, `"hi\n"`},
		{token.CHAR, "'a'"},
		{token.FLOAT, "3.14"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tc := range testCases {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("case %d: unexpected lex error: %v", i, err)
		}
		if tok.Type != tc.wantType || tok.Lexeme != tc.wantLexeme {
			t.Fatalf("case %d: got %s %q, want %s %q", i, tok.Type, tok.Lexeme, tc.wantType, tc.wantLexeme)
		}
	}
}

func TestLongestMatchOperators(t *testing.T) {
	testCases := []struct {
		input string
		want  token.Type
	}{
		{"|>>", token.PIPE_GT_GT},
		{"|>", token.PIPE_GT},
		{"|", token.BAR},
		{"=>", token.FAT_ARROW},
		{"=", token.ASSIGN},
		{"<=", token.LTE},
		{"<", token.LT},
		{"[|", token.LBRACKET_BAR},
		{"|]", token.BAR_RBRACKET},
	}
	for _, tc := range testCases {
		l := New(tc.input)
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("input %q: unexpected error %v", tc.input, err)
		}
		if tok.Type != tc.want {
			t.Errorf("input %q: got %s, want %s", tc.input, tok.Type, tc.want)
		}
	}
}

func TestUnterminatedStringErrors(t *testing.T) {
	l := New(`"abc`)
	_, err := l.NextToken()
	if err == nil || err.Kind != UnterminatedString {
		t.Fatalf("expected UnterminatedString error, got %v", err)
	}
}

func TestUnterminatedNestedComment(t *testing.T) {
	l := New("/* /* nested */ ")
	_, err := l.NextToken()
	if err == nil || err.Kind != UnterminatedComment {
		t.Fatalf("expected UnterminatedComment error, got %v", err)
	}
}

func TestInvalidEscape(t *testing.T) {
	l := New(`"bad\q"`)
	_, err := l.NextToken()
	if err == nil || err.Kind != InvalidEscape {
		t.Fatalf("expected InvalidEscape error, got %v", err)
	}
}

func TestInvalidChar(t *testing.T) {
	l := New("@")
	_, err := l.NextToken()
	if err == nil || err.Kind != InvalidChar {
		t.Fatalf("expected InvalidChar error, got %v", err)
	}
}

func TestTokenizeStopsAtFirstError(t *testing.T) {
	toks, err := Tokenize(`val x = 1 @`)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, tok := range toks {
		if tok.Type == token.ILLEGAL {
			t.Fatalf("Tokenize should not include the illegal token in its results, got %v", toks)
		}
	}
}
