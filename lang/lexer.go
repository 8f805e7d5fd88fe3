package lang

import (
	"sort"
	"sync"

	"github.com/npillmayer/pengo"
	"github.com/npillmayer/pengo/lr/scanner"
	"github.com/npillmayer/pengo/lr/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

var lexerOnce struct {
	sync.Once
	adapter *lexmach.LMAdapter
	err     error
}

// lexer returns the lexmachine adapter for Pengo, compiling its DFA at first
// use.
func lexer() (*lexmach.LMAdapter, error) {
	lexerOnce.Do(func() {
		literals := make([]string, 0, len(Literals))
		for lit := range Literals {
			literals = append(literals, lit)
		}
		sort.Strings(literals)
		lexerOnce.adapter, lexerOnce.err = lexmach.NewLMAdapter(initLexer, literals, Literals)
	})
	return lexerOnce.adapter, lexerOnce.err
}

func initLexer(lexer *lexmachine.Lexer) {
	lexer.Add([]byte(`//[^\n]*`), lexmach.Skip)
	lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	lexer.Add([]byte(`\"([^\\"]|(\\.))*\"`), lexmach.MakeString(STRING))
	lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), lexmach.MakeIdentifier(IDENT, Keywords))
	lexer.Add([]byte(`[0-9]+\.[0-9]+`), lexmach.MakeToken("FLOAT", FLOAT))
	lexer.Add([]byte(`[0-9]+`), lexmach.MakeToken("NUMBER", NUMBER))
}

// Tokenize splits a Pengo source into tokens. The result is terminated by an
// EOF token. Input which is not a Pengo token results in a *lexmach.LexError
// for its first occurrence.
func Tokenize(src string) ([]pengo.Token, error) {
	adapter, err := lexer()
	if err != nil {
		return nil, err
	}
	sc, err := adapter.Scanner(src)
	if err != nil {
		return nil, err
	}
	var lexErr error
	sc.SetErrorHandler(func(e error) {
		if lexErr == nil {
			lexErr = e
		}
	})
	var tokens []pengo.Token
	for {
		tok := sc.NextToken()
		if lexErr != nil {
			return nil, lexErr
		}
		tokens = append(tokens, tok)
		if tok.TokType() == scanner.EOF {
			break
		}
	}
	tracer().Debugf("tokenized input into %d tokens", len(tokens))
	return tokens, nil
}
