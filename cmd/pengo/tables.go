package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/pengo/lang"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var tablesFlags = struct {
	dot  *string
	html *string
	list *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "tables",
		Short:   "Describe the LALR(1) tables of the Pengo grammar",
		Example: `  pengo tables --dot pengo.dot --html pengo.html`,
		Args:    cobra.NoArgs,
		RunE:    runTables,
	}
	tablesFlags.dot = cmd.Flags().String("dot", "", "write the LR(0) automaton in GraphViz Dot format to a file")
	tablesFlags.html = cmd.Flags().String("html", "", "write the ACTION and GOTO tables as HTML to a file")
	tablesFlags.list = cmd.Flags().BoolP("list", "l", false, "list the tables per state")
	rootCmd.AddCommand(cmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	gen, err := lang.TableGenerator()
	if err != nil {
		return err
	}
	tables, err := lang.Tables()
	if err != nil {
		return err
	}
	fp, err := tables.Fingerprint()
	if err != nil {
		return errors.Wrap(err, "cannot compute fingerprint")
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "grammar %s: %d rules, %d states\n", tables.G.Name, tables.G.Size(), tables.StateCount())
	fmt.Fprintf(out, "fingerprint %s\n", fp)
	for _, c := range tables.Conflicts() {
		fmt.Fprintln(out, c)
	}
	if *tablesFlags.list {
		if err := tables.Dump(out); err != nil {
			return err
		}
	}
	if *tablesFlags.dot != "" {
		if err := writeFile(*tablesFlags.dot, func(f *os.File) error {
			return gen.Automaton2GraphViz(f)
		}); err != nil {
			return err
		}
	}
	if *tablesFlags.html != "" {
		return writeFile(*tablesFlags.html, func(f *os.File) error {
			if err := tables.ActionTableAsHTML(f); err != nil {
				return err
			}
			return tables.GotoTableAsHTML(f)
		})
	}
	return nil
}

func writeFile(filename string, write func(*os.File) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "cannot create %s", filename)
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "cannot write %s", filename)
	}
	return f.Close()
}
