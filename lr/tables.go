package lr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/sets/treeset"
	"golang.org/x/tools/container/intsets"
)

// lookaheadObserver, if set, is called after every merge into the
// lookahead set of an item during propagation. Used by tests.
var lookaheadObserver func(state int, item int, size int)

// TableGenerator is a generator object to construct LR parser tables.
// Clients create a Grammar G and then a table generator.
// TableGenerator.CreateTables() constructs the automaton and the parser tables
// for an LR-parser recognizing grammar G.
//
// The automaton merges states with identical item cores, and computes
// lookaheads by propagation over the automaton's edges. This yields LALR(1)
// tables.
type TableGenerator struct {
	g        *Grammar
	start    *Rule          // augmented start rule S' → S, not part of g
	stride   int            // for numbering item cores
	nullable intsets.Sparse // IDs of nullable non-terminals
	states   []*State
	bySig    map[string]*State
	edges    *arraylist.List // all the edges between states
	tables   *Tables
	rounds   int // number of states processed during lookahead propagation
}

// NewTableGenerator creates a new TableGenerator for a grammar.
func NewTableGenerator(g *Grammar) *TableGenerator {
	S := &Symbol{Name: g.Start().Name + "'", Value: 1, id: -1}
	gen := &TableGenerator{
		g:     g,
		start: &Rule{Serial: len(g.rules), LHS: S, rhs: []*Symbol{g.Start()}},
		bySig: make(map[string]*State),
		edges: arraylist.New(),
	}
	for _, r := range g.rules {
		if len(r.rhs)+1 > gen.stride {
			gen.stride = len(r.rhs) + 1
		}
	}
	if gen.stride < 2 {
		gen.stride = 2
	}
	return gen
}

// Grammar returns the grammar tables are generated for.
func (gen *TableGenerator) Grammar() *Grammar {
	return gen.g
}

// States returns the states of the automaton, ordered by ID. CreateTables must
// have been called beforehand.
func (gen *TableGenerator) States() []*State {
	return append([]*State(nil), gen.states...)
}

// Tables returns the generated tables, or nil if CreateTables has not been called.
func (gen *TableGenerator) Tables() *Tables {
	return gen.tables
}

// HasConflicts is true if table generation detected conflicts.
func (gen *TableGenerator) HasConflicts() bool {
	return gen.tables != nil && gen.tables.HasConflicts()
}

// Conflicts returns the conflicts detected during table generation.
func (gen *TableGenerator) Conflicts() []Conflict {
	if gen.tables == nil {
		return nil
	}
	return gen.tables.Conflicts()
}

// CreateTables builds the automaton and derives ACTION and GOTO tables from it.
// Calling it more than once returns the tables of the first call.
//
// Conflicts do not result in an error: the later action overwrites the earlier
// one, and the conflict is recorded (see Tables.Conflicts).
func (gen *TableGenerator) CreateTables() (*Tables, error) {
	if gen.tables != nil {
		return gen.tables, nil
	}
	if gen.g.Start() == nil {
		return nil, &GrammarError{gen.g.Name, "no start symbol"}
	}
	tracer().Debugf("=== build tables for %s ==========================================", gen.g.Name)
	gen.findNullables()
	gen.buildAutomaton()
	gen.propagateLookaheads()
	gen.deriveLookaheads()
	gen.tables = gen.buildTables()
	tracer().Infof("grammar %s: %d states, %d conflicts", gen.g.Name,
		len(gen.states), len(gen.tables.conflicts))
	return gen.tables, nil
}

// core numbers an item core (rule, dot) uniquely.
func (gen *TableGenerator) core(r *Rule, dot int) int {
	return r.Serial*gen.stride + dot
}

// === Nullable non-terminals ================================================

func (gen *TableGenerator) findNullables() {
	for changed := true; changed; {
		changed = false
		for _, r := range gen.g.rules {
			if gen.nullable.Has(r.LHS.id) {
				continue
			}
			if gen.nullableSeq(r.rhs) {
				gen.nullable.Insert(r.LHS.id)
				changed = true
			}
		}
	}
}

// nullableSeq is true if every symbol of seq derives the empty word.
func (gen *TableGenerator) nullableSeq(seq []*Symbol) bool {
	for _, A := range seq {
		if A.IsTerminal() || !gen.nullable.Has(A.id) {
			return false
		}
	}
	return true
}

// IsNullable is true if non-terminal N derives the empty word.
func (gen *TableGenerator) IsNullable(N *Symbol) bool {
	return !N.IsTerminal() && gen.nullable.Has(N.id)
}

// === Closure and Goto-Set Operations =======================================

// closure computes the closure of a kernel: for every item with the dot in front
// of a non-terminal N, add items for all the rules of N with the dot at
// position 0 and an empty lookahead set. Item cores already present are not
// added again; this makes closure terminate for recursive rules.
func (gen *TableGenerator) closure(kernel []*Item) []*Item {
	var visited intsets.Sparse
	items := make([]*Item, 0, 2*len(kernel))
	for _, i := range kernel {
		if visited.Insert(gen.core(i.rule, i.dot)) {
			items = append(items, i)
		}
	}
	for k := 0; k < len(items); k++ {
		N := items[k].PeekSymbol()
		if N == nil || N.IsTerminal() {
			continue
		}
		for _, r := range gen.g.FindNonTermRules(N) {
			if visited.Insert(gen.core(r, 0)) {
				items = append(items, newItem(r, 0))
			}
		}
	}
	return items
}

// signature is the core sequence of an item set, in insertion order.
func (gen *TableGenerator) signature(items []*Item) string {
	var b strings.Builder
	for _, i := range items {
		b.WriteString(strconv.Itoa(gen.core(i.rule, i.dot)))
		b.WriteByte(',')
	}
	return b.String()
}

// gotoKernels groups the advanceable items of a state by the symbol after
// the dot. Symbols are returned in order of their first appearance.
func gotoKernels(s *State) ([]*Symbol, map[*Symbol][]*Item) {
	var order []*Symbol
	kernels := make(map[*Symbol][]*Item)
	for _, i := range s.items {
		A := i.PeekSymbol()
		if A == nil {
			continue
		}
		if _, seen := kernels[A]; !seen {
			order = append(order, A)
		}
		kernels[A] = append(kernels[A], i.advance())
	}
	return order, kernels
}

// === Automaton Construction ================================================

func (gen *TableGenerator) addState(kernelSize int, items []*Item, sig string) *State {
	s := &State{
		ID:     len(gen.states),
		items:  items,
		kernel: kernelSize,
		succ:   treemap.NewWith(symbolComparator),
		sig:    sig,
	}
	for _, i := range items {
		if i.rule == gen.start && i.PeekSymbol() == nil {
			s.Accept = true
		}
	}
	gen.states = append(gen.states, s)
	gen.bySig[sig] = s
	return s
}

// buildAutomaton constructs the states breadth-first, starting from the closure
// of the augmented start item. States with an identical core sequence are
// merged.
func (gen *TableGenerator) buildAutomaton() {
	i0 := newItem(gen.start, 0)
	i0.la.Add(gen.g.eof)
	items := gen.closure([]*Item{i0})
	s0 := gen.addState(1, items, gen.signature(items))
	queue := linkedlistqueue.New()
	queue.Enqueue(s0)
	for !queue.Empty() {
		v, _ := queue.Dequeue()
		s := v.(*State)
		symbols, kernels := gotoKernels(s)
		for _, A := range symbols {
			kernel := kernels[A]
			items := gen.closure(kernel)
			sig := gen.signature(items)
			t, exists := gen.bySig[sig]
			if exists {
				for k, i := range items {
					t.items[k].merge(i.la.Values()...)
				}
			} else {
				t = gen.addState(len(kernel), items, sig)
				queue.Enqueue(t)
			}
			s.succ.Put(A, t.ID)
			gen.edges.Add(&edge{from: s, to: t, label: A})
			tracer().Debugf("goto(%d, %s) = %d", s.ID, A, t.ID)
		}
	}
	tracer().Debugf("automaton has %d states and %d edges", len(gen.states), gen.edges.Size())
}

// === Lookahead Propagation =================================================

// beyond computes the lookahead contribution of item i = [A → α • N β, L] to
// the items for N in the same state: the symbols of β up to and including
// the first one which does not derive the empty word, plus L if all of β
// is nullable. Non-terminals are contributed as placeholders and resolved by
// deriveLookaheads.
func (gen *TableGenerator) beyond(i *Item) []interface{} {
	var las []interface{}
	for _, B := range i.rule.rhs[i.dot+1:] {
		las = append(las, B)
		if B.IsTerminal() || !gen.nullable.Has(B.id) {
			return las
		}
	}
	return append(las, i.la.Values()...)
}

// closeLookaheads propagates lookaheads inside a state until nothing changes.
func (gen *TableGenerator) closeLookaheads(s *State) {
	for changed := true; changed; {
		changed = false
		for _, i := range s.items {
			N := i.PeekSymbol()
			if N == nil || N.IsTerminal() {
				continue
			}
			las := gen.beyond(i)
			for k, j := range s.items {
				if j.dot == 0 && j.rule.LHS == N {
					if j.merge(las...) {
						changed = true
					}
					gen.observe(s, k, j)
				}
			}
		}
	}
}

// pushLookaheads moves the lookaheads of items in s with A after the dot to
// the advanced items in successor t. Returns true if t changed.
func (gen *TableGenerator) pushLookaheads(s *State, A *Symbol, t *State) bool {
	changed := false
	for _, i := range s.items {
		if i.PeekSymbol() != A {
			continue
		}
		j := t.find(i.rule, i.dot+1)
		if j == nil {
			panic(fmt.Sprintf("state %d lacks advanced item for %s", t.ID, i))
		}
		if j.merge(i.la.Values()...) {
			changed = true
		}
	}
	return changed
}

func (gen *TableGenerator) observe(s *State, k int, i *Item) {
	if lookaheadObserver != nil {
		lookaheadObserver(s.ID, k, i.la.Size())
	}
}

// propagateLookaheads computes the fixpoint of lookahead propagation. Every
// state is processed at least once; a state is queued again whenever one of
// its predecessors pushed new lookaheads into it.
func (gen *TableGenerator) propagateLookaheads() {
	queue := linkedlistqueue.New()
	var dirty intsets.Sparse
	for _, s := range gen.states {
		queue.Enqueue(s.ID)
		dirty.Insert(s.ID)
	}
	gen.rounds = 0
	for !queue.Empty() {
		v, _ := queue.Dequeue()
		s := gen.states[v.(int)]
		dirty.Remove(s.ID)
		gen.rounds++
		gen.closeLookaheads(s)
		it := s.succ.Iterator()
		for it.Next() {
			A := it.Key().(*Symbol)
			t := gen.states[it.Value().(int)]
			if gen.pushLookaheads(s, A, t) {
				for k, j := range t.items[:t.kernel] {
					gen.observe(t, k, j)
				}
				if dirty.Insert(t.ID) {
					queue.Enqueue(t.ID)
				}
			}
		}
	}
	tracer().Debugf("lookahead propagation processed %d states", gen.rounds)
}

// === Lookahead Resolution ==================================================

// first computes the terminals which may start a derivation of N.
func (gen *TableGenerator) first(N *Symbol, memo map[*Symbol][]interface{}) []interface{} {
	if f, ok := memo[N]; ok {
		return f
	}
	result := treeset.NewWith(symbolComparator)
	var visited intsets.Sparse
	visited.Insert(N.id)
	stack := []*Symbol{N}
	for len(stack) > 0 {
		A := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, r := range gen.g.FindNonTermRules(A) {
			for _, B := range r.rhs {
				if B.IsTerminal() {
					result.Add(B)
					break
				}
				if visited.Insert(B.id) {
					stack = append(stack, B)
				}
				if !gen.nullable.Has(B.id) {
					break
				}
			}
		}
	}
	memo[N] = result.Values()
	return memo[N]
}

// deriveLookaheads replaces non-terminal placeholders in lookahead sets by
// the terminals they may start with.
func (gen *TableGenerator) deriveLookaheads() {
	memo := make(map[*Symbol][]interface{})
	for _, s := range gen.states {
		for _, i := range s.items {
			resolved := treeset.NewWith(symbolComparator)
			for _, v := range i.la.Values() {
				A := v.(*Symbol)
				if A.IsTerminal() {
					resolved.Add(A)
				} else {
					resolved.Add(gen.first(A, memo)...)
				}
			}
			i.la = resolved
		}
	}
}

// === Table Construction ====================================================

// buildTables creates shift and goto entries from the edges of the automaton,
// then reduce and accept entries from completed items.
func (gen *TableGenerator) buildTables() *Tables {
	t := newTables(gen.g, len(gen.states))
	it := gen.edges.Iterator()
	for it.Next() {
		e := it.Value().(*edge)
		if e.label.IsTerminal() {
			t.setAction(e.from.ID, e.label, Shift(e.to.ID))
		} else {
			t.setGoto(e.from.ID, e.label, e.to.ID)
		}
	}
	for _, s := range gen.states {
		for _, i := range s.items {
			if i.PeekSymbol() != nil {
				continue
			}
			for _, A := range i.Lookaheads() {
				if i.rule == gen.start {
					t.setAction(s.ID, A, Accept())
				} else {
					t.setAction(s.ID, A, Reduce(i.rule.Serial))
				}
			}
		}
	}
	return t
}
