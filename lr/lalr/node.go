package lalr

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/pengo"
	"github.com/npillmayer/pengo/lr"
)

// Node is a node of a generic parse tree. Leaf nodes carry the token they
// have been reduced from, interior nodes carry their children in input order.
type Node struct {
	Symbol   *lr.Symbol // left hand side of the reduced rule
	Rule     *lr.Rule   // rule the node has been reduced by
	Token    pengo.Token
	Start    pengo.Position // position of the first token covered, terminals included
	Children []*Node
}

// IsLeaf is true for nodes carrying a token.
func (n *Node) IsLeaf() bool {
	return n.Token != nil
}

// Pos returns the position of the first token covered by n. Nodes for
// epsilon rules have no position.
func (n *Node) Pos() pengo.Position {
	if n.Token != nil {
		return n.Token.Pos()
	}
	if !n.Start.IsNull() {
		return n.Start
	}
	for _, ch := range n.Children {
		if pos := ch.Pos(); !pos.IsNull() {
			return pos
		}
	}
	return pengo.Position{}
}

func (n *Node) String() string {
	if n.Token != nil {
		return fmt.Sprintf("%s %q", n.Symbol.Name, n.Token.Lexeme())
	}
	return n.Symbol.Name
}

// Each walks the tree in pre-order, calling f for every node with its depth.
// If f returns false, the children of the current node are skipped.
func (n *Node) Each(f func(node *Node, depth int) bool) {
	n.each(f, 0)
}

func (n *Node) each(f func(*Node, int) bool, depth int) {
	if !f(n, depth) {
		return
	}
	for _, ch := range n.Children {
		ch.each(f, depth+1)
	}
}

// Dump writes an indented text representation of the tree to w.
func (n *Node) Dump(w io.Writer) error {
	var b strings.Builder
	n.Each(func(node *Node, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(node.String())
		b.WriteByte('\n')
		return true
	})
	_, err := io.WriteString(w, b.String())
	return err
}
