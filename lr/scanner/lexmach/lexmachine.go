package lexmach

import (
	"fmt"
	"strings"

	"github.com/npillmayer/pengo"
	"github.com/npillmayer/pengo/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'pengo.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("pengo.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives an initializer
// for the lexer's patterns, a list of literals ('[', ';', …) and a map for
// translating literal strings to their token values. Literals are added
// after the patterns of init.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	for _, lit := range literals {
		id, ok := tokenIds[lit]
		if !ok {
			return nil, fmt.Errorf("no token value for literal %q", lit)
		}
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, id))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
	last    pengo.Position // position behind the last token
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// LexError is reported to the error handler for input no pattern matches.
type LexError struct {
	Pos  pengo.Position
	Text string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s unrecognized input %q", e.Pos, e.Text)
}

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface. Unrecognized input is reported
// to the error handler and skipped.
func (lms *LMScanner) NextToken() pengo.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.Error(&LexError{
				Pos:  pengo.At(ui.StartLine, ui.StartColumn),
				Text: string(ui.Text),
			})
			lms.scanner.TC = ui.FailTC
			if ui.FailTC <= ui.StartTC { // skip at least one byte
				lms.scanner.TC = ui.StartTC + 1
			}
		} else {
			lms.Error(err)
			return scanner.MakeDefaultToken(scanner.EOF, "", lms.last)
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return scanner.MakeDefaultToken(scanner.EOF, "", lms.last)
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d %q at %d:%d", token.Type, token.Lexeme, token.StartLine, token.StartColumn)
	lms.last = pengo.At(token.EndLine, token.EndColumn+1)
	t := scanner.MakeDefaultToken(
		pengo.TokType(token.Type),
		string(token.Lexeme),
		pengo.At(token.StartLine, token.StartColumn),
	)
	t.Val = token.Value
	return t
}

// unconsumed returns the input from the start of a failed match up to the
// point of failure, ui.Text being the complete input.
func unconsumed(ui *machines.UnconsumedInput) string {
	start, end := ui.StartTC, ui.FailTC
	if start >= len(ui.Text) {
		return ""
	}
	if end <= start {
		end = start + 1
	}
	if end > len(ui.Text) {
		end = len(ui.Text)
	}
	return string(ui.Text[start:end])
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// KeywordTable maps keywords to their token values.
type KeywordTable map[string]int

// MakeIdentifier is an action for identifiers. Identifiers found in the
// keyword table are turned into keyword tokens, all others get token value id.
func MakeIdentifier(id int, keywords KeywordTable) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		lexeme := string(m.Bytes)
		if kw, ok := keywords[lexeme]; ok {
			return s.Token(kw, lexeme, m), nil
		}
		return s.Token(id, lexeme, m), nil
	}
}

var unescaper = strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\"`, `"`, `\\`, `\`)

// MakeString is an action for double-quoted string literals. The quotes are
// stripped and the escape sequences \n, \t, \" and \\ are resolved; the
// resulting text becomes the token's lexeme and value.
func MakeString(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		text := string(m.Bytes)
		text = unescaper.Replace(text[1 : len(text)-1])
		tok := s.Token(id, text, m)
		tok.Lexeme = []byte(text)
		return tok, nil
	}
}
