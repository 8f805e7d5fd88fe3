package scanner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/pengo"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestScan1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader, SkipComments(true))
		token := scanner.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %15s | @%s", token.TokType(), token.Lexeme(), token.Pos())
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.scanner")
	defer teardown()
	//
	scanner := GoTokenizer("positions", strings.NewReader("a\n  b"))
	a := scanner.NextToken()
	b := scanner.NextToken()
	if a.Pos() != pengo.At(1, 1) || b.Pos() != pengo.At(2, 3) {
		t.Errorf("unexpected positions %s and %s", a.Pos(), b.Pos())
	}
}

func TestTokenQueue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.scanner")
	defer teardown()
	//
	q := NewTokenQueue([]pengo.Token{
		MakeDefaultToken(Ident, "x", pengo.At(1, 1)),
		MakeDefaultToken(Int, "7", pengo.At(1, 3)),
	})
	if q.NextToken().Lexeme() != "x" || q.NextToken().Lexeme() != "7" {
		t.Errorf("queue does not replay tokens in order")
	}
	for i := 0; i < 2; i++ {
		eof := q.NextToken()
		if eof.TokType() != EOF || eof.Pos() != pengo.At(1, 3) {
			t.Errorf("expected EOF behind last token, have %v", eof)
		}
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue")
	}
}
