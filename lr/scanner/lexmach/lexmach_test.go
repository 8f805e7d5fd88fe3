package lexmach

import (
	"strings"
	"testing"

	"github.com/npillmayer/pengo"
	"github.com/npillmayer/pengo/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello World",
	`x="mystring" // commented `,
	"1,22,333",
	"if x then nil",
}

var tokenCounts = []int{1, 3, 2, 3, 3, 4}

func makeAdapter(t *testing.T) *LMAdapter {
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"([^\\"]|(\\.))*\"`), MakeString(tokenIds["STRING"]))
		lexer.Add([]byte(`([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_)*`), MakeIdentifier(tokenIds["ID"], keywords))
		lexer.Add([]byte(`[0-9]+`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	return LM
}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != scanner.EOF {
			t.Logf(" %4d | %15s | @%s", token.TokType(), token.Lexeme(), token.Pos())
			token = sc.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestKeywordsAndStrings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	sc, _ := LM.Scanner("if \"a\\tb\\\"c\"\n  then")
	kw := sc.NextToken()
	if kw.TokType() != pengo.TokType(keywords["if"]) {
		t.Errorf("expected keyword token for 'if', have %d", kw.TokType())
	}
	str := sc.NextToken()
	if str.TokType() != pengo.TokType(tokenIds["STRING"]) || str.Lexeme() != "a\tb\"c" {
		t.Errorf("expected resolved string, have %d %q", str.TokType(), str.Lexeme())
	}
	then := sc.NextToken()
	if then.Pos() != pengo.At(2, 3) {
		t.Errorf("expected 'then' at (2:3), is at %s", then.Pos())
	}
}

func TestUnrecognizedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	sc, _ := LM.Scanner("x @ y")
	var errs []error
	sc.SetErrorHandler(func(e error) { errs = append(errs, e) })
	count := 0
	for tok := sc.NextToken(); tok.TokType() != scanner.EOF; tok = sc.NextToken() {
		count++
	}
	if count != 2 {
		t.Errorf("expected 2 tokens around the bad input, have %d", count)
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, have %d", len(errs))
	}
	if lexerr, ok := errs[0].(*LexError); !ok || lexerr.Pos != pengo.At(1, 3) || !strings.HasPrefix(lexerr.Text, "@") {
		t.Errorf("expected LexError for '@' at (1:3), have %v", errs[0])
	}
}

func TestUnterminatedString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	sc, _ := LM.Scanner(`x = "unterminated`)
	var errs []error
	sc.SetErrorHandler(func(e error) { errs = append(errs, e) })
	for tok := sc.NextToken(); tok.TokType() != scanner.EOF; tok = sc.NextToken() {
	}
	if len(errs) == 0 {
		t.Fatalf("expected an error for unterminated string")
	}
	lexerr, ok := errs[0].(*LexError)
	if !ok || lexerr.Pos != pengo.At(1, 5) {
		t.Fatalf("expected LexError at (1:5), have %v", errs[0])
	}
	if !strings.HasPrefix(lexerr.Text, `"unterminated`) {
		t.Errorf("expected error text to start at the quote, have %q", lexerr.Text)
	}
}

var literals []string       // The tokens representing literal strings
var keywords KeywordTable   // The keyword tokens
var tokenIds map[string]int // A map from the token names to their int ids

func initTokens() {
	literals = []string{
		"'",
		"(",
		")",
		"[",
		"]",
		"=",
		"+",
		"-",
		"*",
		"/",
	}
	keywords = KeywordTable{
		"nil":  20,
		"if":   21,
		"then": 22,
	}
	tokenIds = make(map[string]int)
	tokenIds["ID"] = scanner.Ident
	tokenIds["NUM"] = scanner.Int
	tokenIds["STRING"] = scanner.String
	for i, lit := range literals {
		tokenIds[lit] = i + 100
	}
}
