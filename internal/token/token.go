// Package token defines the lexical token kinds produced by the lexer.
package token

import (
	"fmt"

	"github.com/restrict-lang/rlc/internal/source"
)

// Type identifies a lexical category.
type Type string

// Token is a single lexeme together with its span in the source.
type Token struct {
	Type    Type
	Lexeme  string
	Span    source.Span
	Literal interface{}
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @[%d,%d)", t.Type, t.Lexeme, t.Span.Start, t.Span.End)
}

const (
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	// Literals & identifiers
	IDENT   Type = "IDENT"
	INT     Type = "INT"
	FLOAT   Type = "FLOAT"
	STRING  Type = "STRING"
	CHAR    Type = "CHAR"

	// Keywords
	RECORD  Type = "record"
	CLONE   Type = "clone"
	FREEZE  Type = "freeze"
	IMPL    Type = "impl"
	CONTEXT Type = "context"
	WITH    Type = "with"
	FUN     Type = "fun"
	VAL     Type = "val"
	MUT     Type = "mut"
	THEN    Type = "then"
	ELSE    Type = "else"
	WHILE   Type = "while"
	MATCH   Type = "match"
	ASYNC   Type = "async"
	RETURN  Type = "return"
	TRUE    Type = "true"
	FALSE   Type = "false"
	UNIT    Type = "Unit"
	SOME    Type = "Some"
	NONE    Type = "None"
	IMPORT  Type = "import"
	EXPORT  Type = "export"

	// Operators
	PIPE_GT    Type = "|>"  // pipe
	PIPE_GT_GT Type = "|>>" // pipe-mut
	BAR        Type = "|"   // lambda delim / bar-pipe / list-cons
	ASSIGN     Type = "="
	FAT_ARROW  Type = "=>"
	PLUS       Type = "+"
	MINUS      Type = "-"
	STAR       Type = "*"
	SLASH      Type = "/"
	PERCENT    Type = "%"
	EQ         Type = "=="
	NOT_EQ     Type = "!="
	LT         Type = "<"
	LTE        Type = "<="
	GT         Type = ">"
	GTE        Type = ">="
	TILDE      Type = "~"

	// Delimiters
	LBRACE       Type = "{"
	RBRACE       Type = "}"
	LPAREN       Type = "("
	RPAREN       Type = ")"
	LBRACKET     Type = "["
	RBRACKET     Type = "]"
	LBRACKET_BAR Type = "[|"
	BAR_RBRACKET Type = "|]"
	COMMA        Type = ","
	COLON        Type = ":"
	SEMI         Type = ";"
	DOT          Type = "."
)

var keywords = map[string]Type{
	"record":  RECORD,
	"clone":   CLONE,
	"freeze":  FREEZE,
	"impl":    IMPL,
	"context": CONTEXT,
	"with":    WITH,
	"fun":     FUN,
	"val":     VAL,
	"mut":     MUT,
	"then":    THEN,
	"else":    ELSE,
	"while":   WHILE,
	"match":   MATCH,
	"async":   ASYNC,
	"return":  RETURN,
	"true":    TRUE,
	"false":   FALSE,
	"Unit":    UNIT,
	"Some":    SOME,
	"None":    NONE,
	"import":  IMPORT,
	"export":  EXPORT,
}

// LookupIdent promotes ident to a keyword Type if it matches the keyword
// table exactly; otherwise it is a plain identifier.
func LookupIdent(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}
