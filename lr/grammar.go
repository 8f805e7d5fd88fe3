package lr

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/pengo"
)

// EOFName is the name of the end-of-input terminal every grammar contains.
const EOFName = "#eof"

// --- Symbols ---------------------------------------------------------------

// Symbol is a grammar symbol, either a terminal or a non-terminal.
// Terminals carry the token value of their input tokens, non-terminals carry
// a negative serial number.
//
// Symbols are created by a GrammarBuilder and owned by the grammar. Clients
// may compare them by pointer as long as they stem from the same grammar;
// Equals compares by name and kind.
type Symbol struct {
	Name     string
	Value    int  // token value for terminals, negative serial for non-terminals
	Tracked  bool // symbol denotes a distinguishable node kind for AST building
	terminal bool
	id       int // unique within a grammar, in order of creation
	col      int // column within its table (terminals or non-terminals)
}

// IsTerminal returns true if this symbol represents a terminal.
func (A *Symbol) IsTerminal() bool {
	return A.terminal
}

// TokenType returns the token type of a terminal symbol.
func (A *Symbol) TokenType() pengo.TokType {
	return pengo.TokType(A.Value)
}

// ID returns the ordinal of A within its grammar.
func (A *Symbol) ID() int {
	return A.id
}

// Equals compares two symbols by name and kind.
func (A *Symbol) Equals(B *Symbol) bool {
	if A == nil || B == nil {
		return A == B
	}
	return A.Name == B.Name && A.terminal == B.terminal
}

func (A *Symbol) String() string {
	if A == nil {
		return "<nil>"
	}
	return A.Name
}

// symbolComparator orders symbols by creation order within a grammar. It is
// the comparator for all ordered symbol containers of this package.
func symbolComparator(a, b interface{}) int {
	return utils.IntComparator(a.(*Symbol).id, b.(*Symbol).id)
}

// --- Rules -----------------------------------------------------------------

// Rule is a grammar production.
type Rule struct {
	Serial int     // ordinal number of this rule within its grammar
	LHS    *Symbol // left hand side non-terminal
	rhs    []*Symbol
}

// RHS returns a copy of the right hand side of a rule.
func (r *Rule) RHS() []*Symbol {
	return append([]*Symbol(nil), r.rhs...)
}

// Len returns the number of symbols of the right hand side.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// IsEps is true for epsilon productions.
func (r *Rule) IsEps() bool {
	return len(r.rhs) == 0
}

// Equals compares two rules structurally.
func (r *Rule) Equals(other *Rule) bool {
	if r == nil || other == nil {
		return r == other
	}
	if !r.LHS.Equals(other.LHS) || len(r.rhs) != len(other.rhs) {
		return false
	}
	for i, A := range r.rhs {
		if !A.Equals(other.rhs[i]) {
			return false
		}
	}
	return true
}

func (r *Rule) String() string {
	return fmt.Sprintf("[%s] ::= %v", r.LHS, r.rhs)
}

// --- Grammar ---------------------------------------------------------------

// Grammar is an immutable context-free grammar, created by a GrammarBuilder.
// The start symbol is the left hand side of the first rule.
type Grammar struct {
	Name         string
	rules        []*Rule
	terminals    []*Symbol
	nonterminals []*Symbol
	byLHS        map[*Symbol][]*Rule
	byToken      map[pengo.TokType]*Symbol
	eof          *Symbol
}

// GrammarError is returned for malformed grammars.
type GrammarError struct {
	Grammar string
	Msg     string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("grammar %s: %s", e.Grammar, e.Msg)
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule returns rule no. i.
func (g *Grammar) Rule(i int) *Rule {
	if i < 0 || i >= len(g.rules) {
		return nil
	}
	return g.rules[i]
}

// Start returns the start symbol.
func (g *Grammar) Start() *Symbol {
	return g.rules[0].LHS
}

// EOF returns the end-of-input terminal.
func (g *Grammar) EOF() *Symbol {
	return g.eof
}

// Terminals returns the terminals in creation order. The EOF terminal is the
// first one.
func (g *Grammar) Terminals() []*Symbol {
	return append([]*Symbol(nil), g.terminals...)
}

// NonTerminals returns the non-terminals in creation order.
func (g *Grammar) NonTerminals() []*Symbol {
	return append([]*Symbol(nil), g.nonterminals...)
}

// Terminal finds the terminal for a token type, or nil.
func (g *Grammar) Terminal(tt pengo.TokType) *Symbol {
	return g.byToken[tt]
}

// SymbolByName finds a symbol by name, preferring non-terminals.
func (g *Grammar) SymbolByName(name string) *Symbol {
	for _, N := range g.nonterminals {
		if N.Name == name {
			return N
		}
	}
	for _, T := range g.terminals {
		if T.Name == name {
			return T
		}
	}
	return nil
}

// FindNonTermRules returns all rules with left hand side N, in grammar order.
func (g *Grammar) FindNonTermRules(N *Symbol) []*Rule {
	return g.byLHS[N]
}

// EachSymbol iterates over all terminals first, then over all non-terminals.
func (g *Grammar) EachSymbol(mapper func(A *Symbol)) {
	for _, A := range g.terminals {
		mapper(A)
	}
	for _, A := range g.nonterminals {
		mapper(A)
	}
}

// TrackedSymbols returns all symbols flagged as node kinds for AST building.
func (g *Grammar) TrackedSymbols() []*Symbol {
	var tracked []*Symbol
	g.EachSymbol(func(A *Symbol) {
		if A.Tracked {
			tracked = append(tracked, A)
		}
	})
	return tracked
}

// Dump is a debugging helper, tracing all the rules of a grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars. Use as:
//
//    b := lr.NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a", 1).End()  // S  ->  A a
//    b.LHS("A").N("B").End()            // A  ->  B
//    b.LHS("B").T("b", 2).End()         // B  ->  b
//    b.LHS("B").Epsilon()               // B  ->
//    g, err := b.Grammar()
//
type GrammarBuilder struct {
	g       *Grammar
	symbols map[string]*Symbol // keyed by kind prefix + name
	errs    []string
	nextID  int
}

// RuleBuilder builds the right hand side of a single rule.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs *Symbol
	rhs []*Symbol
}

// NewGrammarBuilder creates a builder for a grammar named gname.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	gb := &GrammarBuilder{
		g: &Grammar{
			Name:    gname,
			byLHS:   make(map[*Symbol][]*Rule),
			byToken: make(map[pengo.TokType]*Symbol),
		},
		symbols: make(map[string]*Symbol),
	}
	gb.g.eof = gb.terminal(EOFName, scanner.EOF)
	return gb
}

func (gb *GrammarBuilder) terminal(name string, tokval int) *Symbol {
	if T, ok := gb.symbols["t:"+name]; ok {
		if T.Value != tokval {
			gb.errs = append(gb.errs, fmt.Sprintf("terminal %q used with token values %d and %d",
				name, T.Value, tokval))
		}
		return T
	}
	if other, ok := gb.g.byToken[pengo.TokType(tokval)]; ok {
		gb.errs = append(gb.errs, fmt.Sprintf("terminals %q and %q share token value %d",
			other.Name, name, tokval))
	}
	T := &Symbol{Name: name, Value: tokval, terminal: true, id: gb.nextID, col: len(gb.g.terminals)}
	gb.nextID++
	gb.symbols["t:"+name] = T
	gb.g.terminals = append(gb.g.terminals, T)
	gb.g.byToken[pengo.TokType(tokval)] = T
	return T
}

func (gb *GrammarBuilder) nonterminal(name string) *Symbol {
	if N, ok := gb.symbols["n:"+name]; ok {
		return N
	}
	n := len(gb.g.nonterminals)
	N := &Symbol{Name: name, Value: -1 - n, id: gb.nextID, col: n}
	gb.nextID++
	gb.symbols["n:"+name] = N
	gb.g.nonterminals = append(gb.g.nonterminals, N)
	return N
}

// LHS starts a new rule for non-terminal name.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: gb.nonterminal(name)}
}

// Track flags non-terminals as distinguishable node kinds.
func (gb *GrammarBuilder) Track(names ...string) *GrammarBuilder {
	for _, name := range names {
		gb.nonterminal(name).Tracked = true
	}
	return gb
}

// N appends a non-terminal to the right hand side.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.gb.nonterminal(name))
	return rb
}

// T appends a terminal with token value tokval to the right hand side.
func (rb *RuleBuilder) T(name string, tokval int) *RuleBuilder {
	if name == EOFName {
		rb.gb.errs = append(rb.gb.errs, "end-of-input may not be used in rules")
	}
	rb.rhs = append(rb.rhs, rb.gb.terminal(name, tokval))
	return rb
}

// End completes the rule.
func (rb *RuleBuilder) End() *Rule {
	g := rb.gb.g
	r := &Rule{Serial: len(g.rules), LHS: rb.lhs, rhs: rb.rhs}
	for _, other := range g.byLHS[r.LHS] {
		if other.Equals(r) {
			rb.gb.errs = append(rb.gb.errs, fmt.Sprintf("duplicate rule %s", r))
		}
	}
	g.rules = append(g.rules, r)
	g.byLHS[r.LHS] = append(g.byLHS[r.LHS], r)
	return r
}

// Epsilon completes the rule as an epsilon production. Symbols appended
// before are discarded.
func (rb *RuleBuilder) Epsilon() *Rule {
	rb.rhs = nil
	return rb.End()
}

// Grammar returns the completed grammar, or an error if it is malformed.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	g := gb.g
	if len(g.rules) == 0 {
		return nil, &GrammarError{g.Name, "grammar has no rules"}
	}
	for _, N := range g.nonterminals {
		if len(g.byLHS[N]) == 0 {
			gb.errs = append(gb.errs, fmt.Sprintf("non-terminal %s has no rules", N))
		}
	}
	if len(gb.errs) > 0 {
		return nil, &GrammarError{g.Name, strings.Join(gb.errs, "; ")}
	}
	tracer().Debugf("grammar %s has %d rules, %d terminals, %d non-terminals",
		g.Name, len(g.rules), len(g.terminals), len(g.nonterminals))
	return g, nil
}
