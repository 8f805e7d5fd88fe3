package main

import (
	"os"

	"github.com/npillmayer/pengo/interp"
	"github.com/npillmayer/pengo/lang"
	"github.com/npillmayer/pengo/lr/lalr"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var runFlags = struct {
	dump *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "run <source file path>",
		Short:   "Run a Pengo program",
		Example: `  pengo run -d fib.pengo`,
		Args:    cobra.ExactArgs(1),
		RunE:    runRun,
	}
	runFlags.dump = cmd.Flags().BoolP("dump", "d", false, "print the parse tree before running the program")
	rootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrapf(err, "cannot read source file %s", args[0])
	}
	stmts, tree, err := lang.Parse(string(src))
	if err != nil {
		return err
	}
	if *runFlags.dump {
		renderTree(tree)
	}
	tracer().Infof("running %s, %d top-level statements", args[0], len(stmts))
	ip := interp.New(conf.interpOptions()...)
	return ip.Run(stmts)
}

// renderTree prints a parse tree to the terminal.
func renderTree(root *lalr.Node) {
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(leveledList(root))).Render()
}

func leveledList(root *lalr.Node) pterm.LeveledList {
	ll := pterm.LeveledList{}
	root.Each(func(n *lalr.Node, depth int) bool {
		ll = append(ll, pterm.LeveledListItem{Level: depth, Text: n.String()})
		return true
	})
	return ll
}
