package lang

import (
	"fmt"

	"github.com/npillmayer/pengo"
	"github.com/npillmayer/pengo/lr/scanner"
	"github.com/npillmayer/pengo/lr/scanner/lexmach"
)

// Token types of Pengo.
const (
	IDENT = iota + 1
	NUMBER
	FLOAT
	STRING
	// keywords
	VAR
	FUNC
	IF
	ELSEIF
	ELSE
	WHILE
	RETURN
	BREAK
	CONTINUE
	TRUE
	FALSE
	NULL
	// punctuation and operators
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	COMMA
	SEMICOLON
	ASSIGN
	PLUS
	MINUS
	STAR
	SLASH
	BANG
	EQ
	NE
	LT
	GT
	LE
	GE
	AND
	OR
)

// Keywords is the keyword table of Pengo.
var Keywords = lexmach.KeywordTable{
	"var":      VAR,
	"func":     FUNC,
	"if":       IF,
	"elseif":   ELSEIF,
	"else":     ELSE,
	"while":    WHILE,
	"return":   RETURN,
	"break":    BREAK,
	"continue": CONTINUE,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
}

// Literals maps punctuation and operator lexemes to their token types.
var Literals = map[string]int{
	"(":  LPAREN,
	")":  RPAREN,
	"{":  LBRACE,
	"}":  RBRACE,
	",":  COMMA,
	";":  SEMICOLON,
	"=":  ASSIGN,
	"+":  PLUS,
	"-":  MINUS,
	"*":  STAR,
	"/":  SLASH,
	"!":  BANG,
	"==": EQ,
	"!=": NE,
	"<":  LT,
	">":  GT,
	"<=": LE,
	">=": GE,
	"&&": AND,
	"||": OR,
}

var tokenNames = func() map[int]string {
	names := map[int]string{
		scanner.EOF: "#eof",
		IDENT:       "IDENT",
		NUMBER:      "NUMBER",
		FLOAT:       "FLOAT",
		STRING:      "STRING",
	}
	for kw, tt := range Keywords {
		names[tt] = kw
	}
	for lit, tt := range Literals {
		names[tt] = lit
	}
	return names
}()

// TokenName returns a name for a token type. It is used as the name of the
// corresponding grammar terminal.
func TokenName(tt pengo.TokType) string {
	if name, ok := tokenNames[int(tt)]; ok {
		return name
	}
	return fmt.Sprintf("<%d>", tt)
}

var _ pengo.TokTypeStringer = TokenName

func tokType(tt int) pengo.TokType {
	return pengo.TokType(tt)
}
