/*
Package scanner defines an interface for scanners to be used with parsers of package lr.

Two scanner implementations are provided in this package: (1) a thin wrapper over
the Go std lib 'text/scanner', and (2) a queue replaying tokens which have been
scanned beforehand. An adapter for lexmachine lives in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/pengo"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pengo.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("pengo.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() pengo.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s %s", pengo.At(s.Position.Line, s.Position.Column), msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() pengo.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	return DefaultToken{
		kind:   pengo.TokType(t.lastToken),
		lexeme: t.TokenText(),
		pos:    pengo.At(t.Position.Line, t.Position.Column),
	}
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   pengo.TokType
	lexeme string
	Val    interface{}
	pos    pengo.Position
}

// MakeDefaultToken creates a token. The token's value is left empty.
func MakeDefaultToken(typ pengo.TokType, lexeme string, pos pengo.Position) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		pos:    pos,
	}
}

// TokType is part of the pengo.Token interface.
func (t DefaultToken) TokType() pengo.TokType {
	return t.kind
}

// Value is part of the pengo.Token interface.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

// Lexeme is part of the pengo.Token interface.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Pos is part of the pengo.Token interface.
func (t DefaultToken) Pos() pengo.Position {
	return t.pos
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("<%d|%q %s>", t.kind, t.lexeme, t.pos)
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenier.
type Option func(p *DefaultTokenizer)

// SkipComments set or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// --- Token queue -----------------------------------------------------------

// TokenQueue is a tokenizer replaying a slice of tokens. After the last token
// it produces EOF tokens, positioned behind the last token.
type TokenQueue struct {
	tokens []pengo.Token
	next   int
}

var _ Tokenizer = (*TokenQueue)(nil)

// NewTokenQueue creates a tokenizer for a sequence of tokens. A trailing EOF
// token is optional.
func NewTokenQueue(tokens []pengo.Token) *TokenQueue {
	return &TokenQueue{tokens: tokens}
}

// NextToken is part of the Tokenizer interface.
func (q *TokenQueue) NextToken() pengo.Token {
	if q.next < len(q.tokens) {
		tok := q.tokens[q.next]
		q.next++
		return tok
	}
	var pos pengo.Position
	if len(q.tokens) > 0 {
		pos = q.tokens[len(q.tokens)-1].Pos()
	}
	return MakeDefaultToken(EOF, "", pos)
}

// SetErrorHandler is part of the Tokenizer interface. A queue does not produce
// errors.
func (q *TokenQueue) SetErrorHandler(func(error)) {}

// Len returns the number of tokens not yet consumed.
func (q *TokenQueue) Len() int {
	return len(q.tokens) - q.next
}
