package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/pengo"
	"github.com/npillmayer/pengo/ast"
	"github.com/npillmayer/pengo/interp"
	"github.com/npillmayer/pengo/lang"
	"github.com/npillmayer/pengo/lr/lalr"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Pengo session",
		Long: `repl reads Pengo statements line by line and executes them. Global
variables and functions persist across lines. Statements may span
several lines, the prompt changes until the statement is complete.
Quit with <ctrl>D or :quit.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

const continuationPrompt = "   ... "

// Intp is an interactive session.
type Intp struct {
	ip        *interp.Interpreter
	repl      *readline.Instance
	prompt    string
	setPrompt func(string)
	pending   []string        // lines of an incomplete statement
	held      []ast.Statement // statements ending in an if, waiting for else branches
}

func newIntp(ip *interp.Interpreter, prompt string, setPrompt func(string)) *Intp {
	return &Intp{ip: ip, prompt: prompt, setPrompt: setPrompt}
}

func runREPL(cmd *cobra.Command, args []string) error {
	repl, err := readline.New(conf.Prompt)
	if err != nil {
		return errors.Wrap(err, "cannot start line editor")
	}
	defer repl.Close()
	opts := append(conf.interpOptions(), interp.WithOutput(repl.Stdout()))
	intp := newIntp(interp.New(opts...), conf.Prompt, repl.SetPrompt)
	intp.repl = repl
	pterm.Info.Println("Welcome to Pengo")
	intp.REPL()
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// REPL reads lines until end of input.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err == readline.ErrInterrupt {
			intp.reset()
			continue
		} else if err != nil { // io.EOF
			break
		}
		if strings.TrimSpace(line) == ":quit" {
			break
		}
		intp.Eval(line)
	}
	intp.Flush()
	pterm.Println("Good bye!")
}

// Eval executes a line of input. Input which ends in the middle of a
// statement is kept and completed by the following lines. Input ending with
// an if statement is held until a line arrives which does not continue it
// with elseif or else; an empty line executes it as well.
func (intp *Intp) Eval(line string) {
	if intp.held != nil && !startsElse(line) {
		intp.Flush()
	}
	if len(intp.pending) == 0 && strings.TrimSpace(line) == "" {
		return
	}
	intp.pending = append(intp.pending, line)
	src := strings.Join(intp.pending, "\n")
	stmts, _, err := lang.Parse(src)
	if err != nil {
		if serr, ok := errors.Cause(err).(*lalr.SyntaxError); ok && serr.AtEOF {
			intp.held = nil
			intp.setPrompt(continuationPrompt)
			return
		}
		pterm.Error.Println(err.Error())
		intp.reset()
		return
	}
	if openIf(stmts) {
		intp.held = stmts
		intp.setPrompt(continuationPrompt)
		return
	}
	intp.reset()
	intp.execute(stmts)
}

// Flush executes held statements.
func (intp *Intp) Flush() {
	stmts := intp.held
	intp.reset()
	if stmts != nil {
		intp.execute(stmts)
	}
}

func (intp *Intp) execute(stmts []ast.Statement) {
	if len(stmts) == 1 {
		if x, ok := stmts[0].(*ast.ExprStmt); ok {
			v, err := intp.ip.Eval(x.X)
			if err != nil {
				pterm.Error.Println(err.Error())
			} else if !v.IsNull() {
				pterm.Info.Println(v.String())
			}
			return
		}
	}
	if err := intp.ip.Run(stmts); err != nil {
		pterm.Error.Println(err.Error())
	}
}

func (intp *Intp) reset() {
	intp.pending = intp.pending[:0]
	intp.held = nil
	intp.setPrompt(intp.prompt)
}

// openIf is true if the last statement is an if which may still get an
// else branch.
func openIf(stmts []ast.Statement) bool {
	if len(stmts) == 0 {
		return false
	}
	s, ok := stmts[len(stmts)-1].(*ast.If)
	return ok && s.Tail().Else == nil
}

// startsElse is true if line starts with elseif or else.
func startsElse(line string) bool {
	tokens, err := lang.Tokenize(line)
	if err != nil || len(tokens) == 0 {
		return false
	}
	tt := tokens[0].TokType()
	return tt == pengo.TokType(lang.ELSE) || tt == pengo.TokType(lang.ELSEIF)
}
