package lr

import (
	"bytes"
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
)

// --- Items -----------------------------------------------------------------

// Item is an LR item: a rule, a dot position within the rule's right hand side
// and a set of lookahead symbols.
//
// During construction of the tables the lookahead set may contain
// non-terminals as placeholders for their FIRST sets. After table generation
// is complete, lookaheads consist of terminals only.
type Item struct {
	rule *Rule
	dot  int
	la   *treeset.Set // of *Symbol
}

func newItem(r *Rule, dot int) *Item {
	return &Item{rule: r, dot: dot, la: treeset.NewWith(symbolComparator)}
}

// Rule returns the item's rule.
func (i *Item) Rule() *Rule {
	return i.rule
}

// Dot returns the dot position.
func (i *Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol after the dot, or nil for completed items.
func (i *Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Lookaheads returns the lookahead symbols of an item, in grammar order.
func (i *Item) Lookaheads() []*Symbol {
	vals := i.la.Values()
	las := make([]*Symbol, len(vals))
	for k, v := range vals {
		las[k] = v.(*Symbol)
	}
	return las
}

// sameCore is true if two items share rule and dot position, regardless of
// lookaheads.
func (i *Item) sameCore(other *Item) bool {
	return i.rule == other.rule && i.dot == other.dot
}

// advance returns a copy of i with the dot moved one symbol to the right.
func (i *Item) advance() *Item {
	a := newItem(i.rule, i.dot+1)
	a.la.Add(i.la.Values()...)
	return a
}

// merge adds lookaheads to i and reports if the set grew.
func (i *Item) merge(las ...interface{}) bool {
	size := i.la.Size()
	i.la.Add(las...)
	return i.la.Size() > size
}

func (i *Item) String() string {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("[%s] ::= [", i.rule.LHS))
	for k, A := range i.rule.rhs {
		if k == i.dot {
			b.WriteString("• ")
		}
		b.WriteString(A.Name)
		if k < len(i.rule.rhs)-1 {
			b.WriteString(" ")
		}
	}
	if i.dot == len(i.rule.rhs) {
		b.WriteString(" •")
	}
	b.WriteString("]")
	if !i.la.Empty() {
		b.WriteString(fmt.Sprintf(" %v", i.Lookaheads()))
	}
	return b.String()
}

// --- States ----------------------------------------------------------------

// State is a state of the LR automaton, i.e. a closed set of items.
// Items are kept in the order of insertion: kernel items first, followed by
// the items added by the closure.
type State struct {
	ID     int
	items  []*Item
	kernel int          // number of kernel items
	succ   *treemap.Map // *Symbol → state ID
	sig    string       // core signature
	Accept bool         // contains the completed augmented start rule
}

// Items returns the items of a state.
func (s *State) Items() []*Item {
	return append([]*Item(nil), s.items...)
}

// Kernel returns the kernel items of a state.
func (s *State) Kernel() []*Item {
	return append([]*Item(nil), s.items[:s.kernel]...)
}

// Successor returns the target state ID of the transition on A.
func (s *State) Successor(A *Symbol) (int, bool) {
	v, found := s.succ.Get(A)
	if !found {
		return -1, false
	}
	return v.(int), true
}

// find returns the item with the given core, or nil.
func (s *State) find(r *Rule, dot int) *Item {
	for _, i := range s.items {
		if i.rule == r && i.dot == dot {
			return i
		}
	}
	return nil
}

func (s *State) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, len(s.items))
}

// Dump is a debugging helper
func (s *State) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, i := range s.items {
		tracer().Debugf("    %s", i)
	}
	tracer().Debugf("-------------------------")
}

// CFSM edge between 2 states, directed and labeled with a grammar symbol
type edge struct {
	from  *State
	to    *State
	label *Symbol
}
