package lr

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/npillmayer/pengo"
	"github.com/npillmayer/pengo/lr/sparse"
)

// --- Actions ---------------------------------------------------------------

// ActionType is the kind of an ACTION table entry.
type ActionType int8

// Kinds of parser actions.
const (
	NoAction ActionType = iota
	ShiftAction
	ReduceAction
	AcceptAction
)

// Action is an ACTION table entry. For shift actions Value is the target state,
// for reduce actions it is the serial number of the rule to reduce.
type Action struct {
	Type  ActionType
	Value int
}

// Shift creates a shift action to state s.
func Shift(s int) Action { return Action{Type: ShiftAction, Value: s} }

// Reduce creates a reduce action for rule r.
func Reduce(r int) Action { return Action{Type: ReduceAction, Value: r} }

// Accept creates an accept action.
func Accept() Action { return Action{Type: AcceptAction} }

// encode packs an action into a table cell. NoAction encodes as 0, which is the
// null-value of action tables.
func (a Action) encode() int32 {
	return int32(a.Value)<<2 | int32(a.Type)
}

func decodeAction(v int32) Action {
	return Action{Type: ActionType(v & 3), Value: int(v >> 2)}
}

func (a Action) String() string {
	switch a.Type {
	case ShiftAction:
		return fmt.Sprintf("s%d", a.Value)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.Value)
	case AcceptAction:
		return "acc"
	}
	return "-"
}

// --- Reductions and conflicts ----------------------------------------------

// Reduction holds the information a parser needs for reducing a rule.
type Reduction struct {
	Rule     *Rule
	LHS      *Symbol
	RHSLen   int  // number of states to pop
	Children int  // number of child nodes to pop, i.e. non-terminals of the RHS
	Leaf     bool // rule consists of terminals only: produce a leaf for the last token
}

func reductionFor(r *Rule) Reduction {
	red := Reduction{Rule: r, LHS: r.LHS, RHSLen: len(r.rhs)}
	for _, A := range r.rhs {
		if !A.IsTerminal() {
			red.Children++
		}
	}
	red.Leaf = len(r.rhs) > 0 && red.Children == 0
	return red
}

// Conflict records an ACTION table cell which has been written twice with
// different actions. The later action is the one stored in the table.
type Conflict struct {
	State       int
	Symbol      *Symbol
	Existing    Action
	Replacement Action
}

// Kind returns "shift/reduce" or "reduce/reduce".
func (c Conflict) Kind() string {
	if c.Existing.Type == ShiftAction || c.Replacement.Type == ShiftAction {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict in state %d on %s: %s replaced by %s",
		c.Kind(), c.State, c.Symbol, c.Existing, c.Replacement)
}

// --- Tables ----------------------------------------------------------------

// Tables holds the ACTION and GOTO tables for a grammar, together with the
// reduction information for each rule. Tables are created by a TableGenerator.
type Tables struct {
	G          *Grammar
	actions    *sparse.IntMatrix // states x terminals
	gotos      *sparse.IntMatrix // states x non-terminals
	reductions []Reduction
	conflicts  []Conflict
}

func newTables(g *Grammar, statecnt int) *Tables {
	t := &Tables{
		G:          g,
		actions:    sparse.NewIntMatrix(statecnt, len(g.terminals), 0),
		gotos:      sparse.NewIntMatrix(statecnt, len(g.nonterminals), -1),
		reductions: make([]Reduction, len(g.rules)),
	}
	for i, r := range g.rules {
		t.reductions[i] = reductionFor(r)
	}
	return t
}

// setAction writes an ACTION cell, last write wins. A different action already
// present is recorded as a conflict.
func (t *Tables) setAction(state int, A *Symbol, a Action) {
	old := decodeAction(t.actions.Set(state, A.col, a.encode()))
	if old.Type != NoAction && old != a {
		c := Conflict{State: state, Symbol: A, Existing: old, Replacement: a}
		tracer().Infof("%s", c)
		t.conflicts = append(t.conflicts, c)
	}
}

func (t *Tables) setGoto(state int, N *Symbol, target int) {
	t.gotos.Set(state, N.col, int32(target))
}

// StateCount returns the number of states (rows) of the tables.
func (t *Tables) StateCount() int {
	return t.actions.M()
}

// Action returns the ACTION table entry for a state and a terminal.
func (t *Tables) Action(state int, A *Symbol) Action {
	if A == nil || !A.IsTerminal() || state < 0 || state >= t.actions.M() {
		return Action{}
	}
	return decodeAction(t.actions.Value(state, A.col))
}

// ActionFor returns the ACTION table entry for a state and a token type.
// Token types unknown to the grammar have no action.
func (t *Tables) ActionFor(state int, tt pengo.TokType) Action {
	return t.Action(state, t.G.Terminal(tt))
}

// Goto returns the GOTO table entry for a state and a non-terminal.
func (t *Tables) Goto(state int, N *Symbol) (int, bool) {
	if N == nil || N.IsTerminal() || state < 0 || state >= t.gotos.M() {
		return -1, false
	}
	v := t.gotos.Value(state, N.col)
	return int(v), v != t.gotos.NullValue()
}

// Reduction returns the reduction information for rule no. r.
func (t *Tables) Reduction(r int) Reduction {
	return t.reductions[r]
}

// Reductions returns reduction information for all rules, indexed by rule serial.
func (t *Tables) Reductions() []Reduction {
	return append([]Reduction(nil), t.reductions...)
}

// Conflicts returns all conflicts detected during table construction.
func (t *Tables) Conflicts() []Conflict {
	return append([]Conflict(nil), t.conflicts...)
}

// HasConflicts is true if table construction detected conflicts.
func (t *Tables) HasConflicts() bool {
	return len(t.conflicts) > 0
}

// ActionEntry is a non-empty ACTION cell.
type ActionEntry struct {
	Terminal *Symbol
	Action   Action
}

// GotoEntry is a non-empty GOTO cell.
type GotoEntry struct {
	NonTerminal *Symbol
	State       int
}

// ActionRow returns the ACTION map of a state, ordered by terminal.
func (t *Tables) ActionRow(state int) []ActionEntry {
	row := make([]ActionEntry, 0, t.actions.RowCount(state))
	t.actions.EachInRow(state, func(j int, v int32) {
		row = append(row, ActionEntry{Terminal: t.G.terminals[j], Action: decodeAction(v)})
	})
	return row
}

// GotoRow returns the GOTO map of a state, ordered by non-terminal.
func (t *Tables) GotoRow(state int) []GotoEntry {
	row := make([]GotoEntry, 0, t.gotos.RowCount(state))
	t.gotos.EachInRow(state, func(j int, v int32) {
		row = append(row, GotoEntry{NonTerminal: t.G.nonterminals[j], State: int(v)})
	})
	return row
}

// Expected returns the terminals which have an action in a state.
func (t *Tables) Expected(state int) []*Symbol {
	var exp []*Symbol
	for _, e := range t.ActionRow(state) {
		exp = append(exp, e.Terminal)
	}
	return exp
}

// fingerprinted is the hash input for Fingerprint. Symbols are represented by
// name to keep the hash independent of pointer identity.
type fingerprinted struct {
	Grammar string
	States  int
	Cells   []string
	Rules   []string
}

// Fingerprint returns a hash over all table cells and reductions. Two
// generator runs for the same grammar must produce the same fingerprint.
func (t *Tables) Fingerprint() (string, error) {
	fp := fingerprinted{Grammar: t.G.Name, States: t.StateCount()}
	for s := 0; s < t.StateCount(); s++ {
		for _, e := range t.ActionRow(s) {
			fp.Cells = append(fp.Cells, fmt.Sprintf("%d/%s=%s", s, e.Terminal, e.Action))
		}
		for _, e := range t.GotoRow(s) {
			fp.Cells = append(fp.Cells, fmt.Sprintf("%d/%s=g%d", s, e.NonTerminal, e.State))
		}
	}
	for _, red := range t.reductions {
		fp.Rules = append(fp.Rules, fmt.Sprintf("%s/%d/%d/%v", red.LHS, red.RHSLen, red.Children, red.Leaf))
	}
	return structhash.Hash(fp, 1)
}
