package lr

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// Automaton2GraphViz exports the automaton to the Graphviz Dot format.
// CreateTables must have been called beforehand.
func (gen *TableGenerator) Automaton2GraphViz(w io.Writer) error {
	if len(gen.states) == 0 {
		return fmt.Errorf("automaton for %s not yet built", gen.g.Name)
	}
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range gen.states {
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s)))
	}
	it := gen.edges.Iterator()
	for it.Next() {
		e := it.Value().(*edge)
		b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n",
			e.from.ID, e.to.ID, escapeDot(e.label.Name)))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *State) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(s *State) string {
	lines := make([]string, len(s.items))
	for k, i := range s.items {
		lines[k] = escapeDot(i.String())
	}
	return strings.Join(lines, "\\l") + "\\l"
}

var dotEscaper = strings.NewReplacer(
	`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`, `\`, `\\`,
)

func escapeDot(s string) string {
	return dotEscaper.Replace(s)
}

// --- HTML ------------------------------------------------------------------

// ActionTableAsHTML exports the ACTION table in HTML-format.
func (t *Tables) ActionTableAsHTML(w io.Writer) error {
	return t.asHTML("ACTION", t.G.terminals, w, func(state int, A *Symbol) string {
		if a := t.Action(state, A); a.Type != NoAction {
			return a.String()
		}
		return ""
	})
}

// GotoTableAsHTML exports the GOTO table in HTML-format.
func (t *Tables) GotoTableAsHTML(w io.Writer) error {
	return t.asHTML("GOTO", t.G.nonterminals, w, func(state int, N *Symbol) string {
		if target, ok := t.Goto(state, N); ok {
			return fmt.Sprintf("%d", target)
		}
		return ""
	})
}

func (t *Tables) asHTML(tname string, symbols []*Symbol, w io.Writer,
	cell func(int, *Symbol) string) error {
	//
	var b strings.Builder
	b.WriteString("<html><body>\n")
	b.WriteString(fmt.Sprintf("%s table for %s, %d states<p>\n",
		tname, html.EscapeString(t.G.Name), t.StateCount()))
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	b.WriteString("<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range symbols {
		b.WriteString(fmt.Sprintf("<td>%s</td>", html.EscapeString(A.Name)))
	}
	b.WriteString("</tr>\n")
	for state := 0; state < t.StateCount(); state++ {
		b.WriteString(fmt.Sprintf("<tr><td>state %d</td>\n", state))
		for _, A := range symbols {
			td := cell(state, A)
			if td == "" {
				td = "&nbsp;"
			}
			b.WriteString("<td>" + td + "</td>\n")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// --- Text ------------------------------------------------------------------

// Dump writes a textual listing of the tables: per state the ACTION and GOTO
// entries, followed by the reduction information and any conflicts.
func (t *Tables) Dump(w io.Writer) error {
	var b strings.Builder
	for state := 0; state < t.StateCount(); state++ {
		b.WriteString(fmt.Sprintf("state %d\n", state))
		for _, e := range t.ActionRow(state) {
			b.WriteString(fmt.Sprintf("    %-12s %s\n", e.Terminal, e.Action))
		}
		for _, e := range t.GotoRow(state) {
			b.WriteString(fmt.Sprintf("    %-12s g%d\n", e.NonTerminal, e.State))
		}
	}
	b.WriteString("rules\n")
	for _, red := range t.reductions {
		leaf := ""
		if red.Leaf {
			leaf = " leaf"
		}
		b.WriteString(fmt.Sprintf("  %3d: %s  pop=%d children=%d%s\n",
			red.Rule.Serial, red.Rule, red.RHSLen, red.Children, leaf))
	}
	for _, c := range t.conflicts {
		b.WriteString(c.String() + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
