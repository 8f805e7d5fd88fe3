package lalr

import (
	"bytes"
	"strings"
	"testing"
	"text/scanner"

	"github.com/npillmayer/pengo/lr"
	sc "github.com/npillmayer/pengo/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func exprTables(t *testing.T) *lr.Tables {
	b := lr.NewGrammarBuilder("Expressions")
	b.LHS("Sum").N("Sum").T("+", '+').N("Product").End()
	b.LHS("Sum").N("Product").End()
	b.LHS("Product").N("Product").T("*", '*').N("Factor").End()
	b.LHS("Product").N("Factor").End()
	b.LHS("Factor").T("(", '(').N("Sum").T(")", ')').End()
	b.LHS("Factor").T("number", scanner.Int).End()
	return tablesFor(t, b)
}

func signedVarTables(t *testing.T) *lr.Tables {
	b := lr.NewGrammarBuilder("Signed Variables")
	b.LHS("Var").N("Sign").T("a", scanner.Ident).End()
	b.LHS("Sign").T("+", '+').End()
	b.LHS("Sign").T("-", '-').End()
	b.LHS("Sign").Epsilon()
	return tablesFor(t, b)
}

func tablesFor(t *testing.T, b *lr.GrammarBuilder) *lr.Tables {
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	tables, err := lr.NewTableGenerator(g).CreateTables()
	if err != nil {
		t.Fatal(err)
	}
	if tables.HasConflicts() {
		t.Fatalf("grammar %s has conflicts: %v", g.Name, tables.Conflicts())
	}
	return tables
}

func parse(t *testing.T, tables *lr.Tables, input string) (*Node, error) {
	p := NewParser(tables)
	return p.Parse(sc.GoTokenizer(t.Name(), strings.NewReader(input)))
}

// --- the Tests -------------------------------------------------------------

func TestParseExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.lr")
	defer teardown()
	//
	root, err := parse(t, exprTables(t), "1+2*3")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	root.Dump(&buf)
	expected := `Sum
  Sum
    Product
      Factor "1"
  Product
    Product
      Factor "2"
    Factor "3"
`
	if buf.String() != expected {
		t.Errorf("unexpected parse tree:\n%s", buf.String())
	}
	if root.Pos().Column != 1 {
		t.Errorf("expected root to start at column 1, is %s", root.Pos())
	}
}

func TestParseGrouping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.lr")
	defer teardown()
	//
	root, err := parse(t, exprTables(t), "(1+2)*3")
	if err != nil {
		t.Fatal(err)
	}
	leaves := 0
	root.Each(func(n *Node, depth int) bool {
		if n.IsLeaf() {
			leaves++
		}
		return true
	})
	if leaves != 3 {
		t.Errorf("expected 3 leaves, have %d", leaves)
	}
	root.Each(func(n *Node, depth int) bool {
		if n.Symbol.Name == "Factor" && !n.IsLeaf() && n.Pos().Column != 1 {
			t.Errorf("expected grouping to start at '(' in column 1, is %s", n.Pos())
		}
		return true
	})
	product := root.Children[0]
	if product.Symbol.Name != "Product" || len(product.Children) != 2 {
		t.Errorf("expected product with 2 children, have %v", product)
	}
}

func TestParseEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.lr")
	defer teardown()
	//
	tables := signedVarTables(t)
	root, err := parse(t, tables, "a")
	if err != nil {
		t.Fatal(err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected Var to have 1 child, have %d", len(root.Children))
	}
	sign := root.Children[0]
	if sign.IsLeaf() || len(sign.Children) != 0 || !sign.Rule.IsEps() {
		t.Errorf("expected empty interior node for epsilon rule, have %v", sign)
	}
	root, err = parse(t, tables, "-a")
	if err != nil {
		t.Fatal(err)
	}
	if sign = root.Children[0]; !sign.IsLeaf() || sign.Token.Lexeme() != "-" {
		t.Errorf("expected leaf for sign '-', have %v", sign)
	}
}

func TestSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.lr")
	defer teardown()
	//
	tables := exprTables(t)
	_, err := parse(t, tables, "1+*2")
	serr, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("expected syntax error, have %v", err)
	}
	if serr.AtEOF || serr.Pos.Line != 1 || serr.Pos.Column != 3 {
		t.Errorf("expected unexpected token at (1:3), have %v", serr)
	}
	if len(serr.Expected) != 2 {
		t.Errorf("expected '(' and number to be acceptable, have %v", serr.Expected)
	}
	_, err = parse(t, tables, "1+")
	if serr, ok = err.(*SyntaxError); !ok || !serr.AtEOF {
		t.Errorf("expected premature end of input, have %v", err)
	}
	if !strings.Contains(err.Error(), "unexpected end of input") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestScannerErrorsAreFatal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.lr")
	defer teardown()
	//
	_, err := parse(t, exprTables(t), `1+"unterminated`)
	if err == nil {
		t.Fatalf("expected scanner error to stop the parse")
	}
	if _, ok := err.(*SyntaxError); ok {
		t.Errorf("expected scanner error, have syntax error %v", err)
	}
}

func TestParserReuse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.lr")
	defer teardown()
	//
	p := NewParser(exprTables(t), StackSize(4))
	for _, input := range []string{"1", "1+2", "((3))*4"} {
		if _, err := p.Parse(sc.GoTokenizer(input, strings.NewReader(input))); err != nil {
			t.Errorf("%q: %v", input, err)
		}
	}
}
