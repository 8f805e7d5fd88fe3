package lr

import (
	"bytes"
	"strings"
	"testing"
	"text/scanner"

	"github.com/npillmayer/pengo"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// We use a small unambiguous expression grammar for testing.
//
//     Sum     = Sum     '+' Product
//             | Product
//     Product = Product '*' Factor
//             | Factor
//     Factor  = '(' Sum ')'
//             | number
//
func makeExprGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Expressions")
	b.LHS("Sum").N("Sum").T("+", '+').N("Product").End()
	b.LHS("Sum").N("Product").End()
	b.LHS("Product").N("Product").T("*", '*').N("Factor").End()
	b.LHS("Product").N("Factor").End()
	b.LHS("Factor").T("(", '(').N("Sum").T(")", ')').End()
	b.LHS("Factor").T("number", scanner.Int).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// A grammar which is LALR(1), but not SLR(1):
//
//     S = L '=' R | R
//     L = '*' R | id
//     R = L
//
func makeAssignGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Assignments")
	b.LHS("S").N("L").T("=", '=').N("R").End()
	b.LHS("S").N("R").End()
	b.LHS("L").T("*", '*').N("R").End()
	b.LHS("L").T("id", scanner.Ident).End()
	b.LHS("R").N("L").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func createTables(t *testing.T, g *Grammar) (*TableGenerator, *Tables) {
	gen := NewTableGenerator(g)
	tables, err := gen.CreateTables()
	if err != nil {
		t.Fatal(err)
	}
	return gen, tables
}

// --- the Tests -------------------------------------------------------------

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	g.Dump()
	if g.Size() != 6 {
		t.Errorf("expected 6 rules, have %d", g.Size())
	}
	if g.Start().Name != "Sum" {
		t.Errorf("expected start symbol Sum, have %s", g.Start())
	}
	if g.EOF() != g.Terminals()[0] || g.EOF().TokenType() != scanner.EOF {
		t.Errorf("expected #eof to be the first terminal")
	}
	if T := g.Terminal('+'); T == nil || T.Name != "+" {
		t.Errorf("cannot find terminal for '+'")
	}
	if !g.Rule(0).Equals(g.Rule(0)) || g.Rule(0).Equals(g.Rule(1)) {
		t.Errorf("rule equality broken")
	}
}

func TestGrammarErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Missing")
	b.LHS("S").N("A").End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected error for non-terminal without rules")
	}
	b = NewGrammarBuilder("Clash")
	b.LHS("S").T("a", 1).End()
	b.LHS("S").T("b", 1).End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected error for terminals sharing a token value")
	}
	b = NewGrammarBuilder("Duplicate")
	b.LHS("S").T("a", 1).End()
	b.LHS("S").T("a", 1).End()
	_, err := b.Grammar()
	if _, ok := err.(*GrammarError); !ok {
		t.Errorf("expected GrammarError for duplicate rule, got %v", err)
	}
	if _, err := NewGrammarBuilder("Empty").Grammar(); err == nil {
		t.Errorf("expected error for empty grammar")
	}
}

func TestExpressionTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	gen, tables := createTables(t, g)
	if tables.HasConflicts() {
		t.Errorf("expected expression grammar to be conflict free, have %v", tables.Conflicts())
	}
	accepting := 0
	for _, s := range gen.States() {
		if s.Accept {
			accepting++
		}
	}
	if accepting != 1 {
		t.Errorf("expected exactly 1 accepting state, have %d", accepting)
	}
	s1, ok := gen.States()[0].Successor(g.Start())
	if !ok {
		t.Fatalf("no transition on start symbol from state 0")
	}
	if a := tables.Action(s1, g.EOF()); a.Type != AcceptAction {
		t.Errorf("expected accept action in state %d on #eof, have %s", s1, a)
	}
	var buf bytes.Buffer
	tables.Dump(&buf)
	t.Logf("\n%s", buf.String())
}

func TestTableDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	_, t1 := createTables(t, g)
	_, t2 := createTables(t, g)
	if t1.StateCount() != t2.StateCount() {
		t.Fatalf("state counts differ: %d vs %d", t1.StateCount(), t2.StateCount())
	}
	for s := 0; s < t1.StateCount(); s++ {
		for _, T := range g.Terminals() {
			if t1.Action(s, T) != t2.Action(s, T) {
				t.Errorf("ACTION(%d,%s) differs: %s vs %s", s, T, t1.Action(s, T), t2.Action(s, T))
			}
		}
		for _, N := range g.NonTerminals() {
			g1, _ := t1.Goto(s, N)
			g2, _ := t2.Goto(s, N)
			if g1 != g2 {
				t.Errorf("GOTO(%d,%s) differs: %d vs %d", s, N, g1, g2)
			}
		}
	}
	fp1, err := t1.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	fp2, _ := t2.Fingerprint()
	if fp1 != fp2 {
		t.Errorf("fingerprints differ: %s vs %s", fp1, fp2)
	}
}

func TestClosureIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	gen, _ := createTables(t, g)
	for _, s := range gen.States() {
		again := gen.closure(s.Items())
		if gen.signature(again) != s.sig {
			t.Errorf("closure of closed state %d added items", s.ID)
		}
	}
}

func TestLookaheadMonotonicity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.lr")
	defer teardown()
	//
	type key struct{ state, item int }
	sizes := make(map[key]int)
	observations := 0
	lookaheadObserver = func(state, item, size int) {
		k := key{state, item}
		if size < sizes[k] {
			t.Errorf("lookahead set of item %d in state %d shrank from %d to %d",
				item, state, sizes[k], size)
		}
		sizes[k] = size
		observations++
	}
	defer func() { lookaheadObserver = nil }()
	gen, _ := createTables(t, makeAssignGrammar(t))
	if observations == 0 {
		t.Errorf("observer has not been called")
	}
	pairs := 0
	for _, s := range gen.States() {
		pairs += len(s.items)
	}
	if gen.rounds > len(gen.states)+pairs {
		t.Errorf("propagation took %d rounds for %d states and %d items",
			gen.rounds, len(gen.states), pairs)
	}
}

func TestLALRGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.lr")
	defer teardown()
	//
	g := makeAssignGrammar(t)
	_, tables := createTables(t, g)
	if tables.HasConflicts() {
		t.Errorf("expected LALR grammar to be conflict free, have %v", tables.Conflicts())
	}
}

func TestNullableLookahead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.lr")
	defer teardown()
	//
	// S = A B 'c' ;  A = 'a' ;  B = 'b' | ε
	b := NewGrammarBuilder("Nullable")
	b.LHS("S").N("A").N("B").T("c", 'c').End()
	rA := b.LHS("A").T("a", 'a').End()
	b.LHS("B").T("b", 'b').End()
	b.LHS("B").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	gen, tables := createTables(t, g)
	if !gen.IsNullable(g.SymbolByName("B")) || gen.IsNullable(g.SymbolByName("A")) {
		t.Errorf("nullable analysis broken")
	}
	shift := tables.Action(0, g.Terminal('a'))
	if shift.Type != ShiftAction {
		t.Fatalf("expected shift on 'a' in state 0, have %s", shift)
	}
	for _, la := range []rune{'b', 'c'} {
		a := tables.Action(shift.Value, g.Terminal(pengo.TokType(la)))
		if a != Reduce(rA.Serial) {
			t.Errorf("expected reduce %d on %q, have %s", rA.Serial, la, a)
		}
	}
	if red := tables.Reduction(rA.Serial); !red.Leaf || red.Children != 0 || red.RHSLen != 1 {
		t.Errorf("unexpected reduction info for A: %+v", red)
	}
	if red := tables.Reduction(0); red.Leaf || red.Children != 2 || red.RHSLen != 3 {
		t.Errorf("unexpected reduction info for S: %+v", red)
	}
	if red := tables.Reduction(3); red.Leaf || red.RHSLen != 0 {
		t.Errorf("epsilon rules must not produce leafs: %+v", red)
	}
}

func TestConflictDetection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.lr")
	defer teardown()
	tracing.Select("pengo.lr").SetTraceLevel(tracing.LevelInfo)
	//
	// E = E '+' E | n   is ambiguous
	b := NewGrammarBuilder("Ambiguous")
	b.LHS("E").N("E").T("+", '+').N("E").End()
	b.LHS("E").T("n", scanner.Int).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	_, tables := createTables(t, g)
	conflicts := tables.Conflicts()
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, have %d: %v", len(conflicts), conflicts)
	}
	c := conflicts[0]
	if c.Kind() != "shift/reduce" || c.Symbol.Name != "+" {
		t.Errorf("unexpected conflict: %s", c)
	}
	if a := tables.Action(c.State, c.Symbol); a != c.Replacement || a.Type != ReduceAction {
		t.Errorf("expected reduce to win, ACTION is %s", a)
	}
}

func TestExports(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.lr")
	defer teardown()
	//
	gen, tables := createTables(t, makeExprGrammar(t))
	var dot, html bytes.Buffer
	if err := gen.Automaton2GraphViz(&dot); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(dot.String(), "digraph") || !strings.Contains(dot.String(), "s000") {
		t.Errorf("unexpected Dot output")
	}
	tables.ActionTableAsHTML(&html)
	tables.GotoTableAsHTML(&html)
	if strings.Count(html.String(), "<table") != 2 {
		t.Errorf("expected 2 HTML tables")
	}
}
