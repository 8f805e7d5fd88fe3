package lalr

import (
	"fmt"
	"strings"

	"github.com/npillmayer/pengo"
	"github.com/npillmayer/pengo/lr"
	"github.com/npillmayer/pengo/lr/scanner"
)

// Parser is a shift-reduce parser driven by LR tables. Create and initialize
// one with lalr.NewParser(...). A parser may be re-used for consecutive
// parses, but must not be shared between goroutines.
type Parser struct {
	tables *lr.Tables
	stack  []int            // parser stack of state IDs
	starts []pengo.Position // per stack entry, position of the first token covered
	output []*Node          // partially built parse tree nodes
	names  pengo.TokTypeStringer
}

// Option configures a parser.
type Option func(p *Parser)

// StackSize sets the initial capacity of the parser stacks.
func StackSize(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.stack = make([]int, 0, n)
			p.starts = make([]pengo.Position, 0, n)
			p.output = make([]*Node, 0, n)
		}
	}
}

// TokenNames sets a function for naming token types in error messages. Without
// it, the parser uses the names of the grammar's terminals.
func TokenNames(names pengo.TokTypeStringer) Option {
	return func(p *Parser) {
		p.names = names
	}
}

// NewParser creates a parser for a set of tables.
func NewParser(tables *lr.Tables, opts ...Option) *Parser {
	p := &Parser{
		tables: tables,
		stack:  make([]int, 0, 256),
		starts: make([]pengo.Position, 0, 256),
		output: make([]*Node, 0, 256),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs the parser on the tokens delivered by scan. If the input is
// accepted, the root of the parse tree is returned.
//
// Errors reported by scan are fatal. A token without an action in the current
// state results in a *SyntaxError.
func (p *Parser) Parse(scan scanner.Tokenizer) (*Node, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.tables == nil || p.tables.G == nil {
		return nil, fmt.Errorf("parser not initialized")
	}
	var scanErr error
	scan.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = e
		}
	})
	p.stack = append(p.stack[:0], 0) // push S0
	p.starts = append(p.starts[:0], pengo.Position{})
	p.output = p.output[:0]
	var last pengo.Token // last token consumed
	token := scan.NextToken()
	for {
		if scanErr != nil {
			return nil, scanErr
		}
		state := p.stack[len(p.stack)-1] // TOS
		action := p.tables.ActionFor(state, token.TokType())
		tracer().Debugf("action(%d,%q)=%s", state, token.Lexeme(), action)
		switch action.Type {
		case lr.ShiftAction:
			p.stack = append(p.stack, action.Value)
			p.starts = append(p.starts, token.Pos())
			last = token
			token = scan.NextToken()
		case lr.ReduceAction:
			if err := p.reduce(p.tables.Reduction(action.Value), last); err != nil {
				return nil, err
			}
		case lr.AcceptAction:
			if len(p.output) != 1 {
				return nil, fmt.Errorf("parser accepted input with %d root nodes", len(p.output))
			}
			root := p.output[0]
			p.output = p.output[:0]
			tracer().Infof("input accepted")
			return root, nil
		default:
			return nil, p.syntaxError(state, token)
		}
	}
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// States for X1 to Xn are on the state stack, nodes for the non-terminals
// among them are on the output stack, in input order.
func (p *Parser) reduce(red lr.Reduction, last pengo.Token) error {
	tracer().Debugf("reduce %v", red.Rule)
	if len(p.stack) <= red.RHSLen {
		return fmt.Errorf("parser stack underflow reducing %v", red.Rule)
	}
	var start pengo.Position // epsilon rules cover no token
	if red.RHSLen > 0 {
		start = p.starts[len(p.starts)-red.RHSLen]
	}
	p.stack = p.stack[:len(p.stack)-red.RHSLen]
	p.starts = p.starts[:len(p.starts)-red.RHSLen]
	state := p.stack[len(p.stack)-1]
	next, ok := p.tables.Goto(state, red.LHS)
	if !ok {
		return fmt.Errorf("no GOTO entry for state %d and %v", state, red.LHS)
	}
	node := &Node{Symbol: red.LHS, Rule: red.Rule, Start: start}
	if red.Leaf {
		node.Token = last
	} else {
		n := red.Children
		if len(p.output) < n {
			return fmt.Errorf("output stack underflow reducing %v", red.Rule)
		}
		node.Children = append([]*Node(nil), p.output[len(p.output)-n:]...)
		p.output = p.output[:len(p.output)-n]
	}
	p.output = append(p.output, node)
	p.stack = append(p.stack, next)
	p.starts = append(p.starts, start)
	return nil
}

// --- Errors ----------------------------------------------------------------

// SyntaxError is returned for an input token the parser has no action for.
type SyntaxError struct {
	Token    pengo.Token
	Pos      pengo.Position
	AtEOF    bool     // input ended prematurely
	Expected []string // names of the terminals which would have been accepted
	name     string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	if e.AtEOF {
		b.WriteString(fmt.Sprintf("%s unexpected end of input", e.Pos))
	} else {
		b.WriteString(fmt.Sprintf("%s unexpected token %s", e.Pos, e.name))
	}
	if len(e.Expected) > 0 {
		b.WriteString(", expected one of ")
		b.WriteString(strings.Join(e.Expected, " "))
	}
	return b.String()
}

func (p *Parser) syntaxError(state int, token pengo.Token) *SyntaxError {
	e := &SyntaxError{
		Token: token,
		Pos:   token.Pos(),
		AtEOF: token.TokType() == scanner.EOF,
	}
	for _, T := range p.tables.Expected(state) {
		e.Expected = append(e.Expected, T.Name)
	}
	name := ""
	if p.names != nil {
		name = p.names(token.TokType())
	} else if T := p.tables.G.Terminal(token.TokType()); T != nil {
		name = T.Name
	}
	e.name = fmt.Sprintf("%q", token.Lexeme())
	if name != "" && name != token.Lexeme() {
		e.name = name + " " + e.name
	}
	tracer().Errorf("syntax error: %v", e)
	return e
}
