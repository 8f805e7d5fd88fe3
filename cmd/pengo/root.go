package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	trace  *string
	config *string
}{}

// conf is the configuration in effect, set up before any sub-command runs.
var conf = defaultConfig()

var rootCmd = &cobra.Command{
	Use:   "pengo",
	Short: "Run programs of the Pengo toy language",
	Long: `pengo provides three features:
- Runs a Pengo program from a file.
- Starts an interactive session (REPL).
- Lists the LALR(1) parser tables of the Pengo grammar.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().StringP("trace", "t", "", "trace level for all packages [Debug|Info|Error]")
	rootFlags.config = rootCmd.PersistentFlags().StringP("config", "c", "", "configuration file (YAML)")
}

func setup(cmd *cobra.Command, args []string) error {
	installTracing()
	if *rootFlags.config != "" {
		c, err := loadConfig(*rootFlags.config)
		if err != nil {
			return err
		}
		conf = c
	}
	if *rootFlags.trace != "" {
		conf.setTraceLevel(*rootFlags.trace)
	}
	conf.apply()
	return nil
}

// Execute runs the root command and prints an error, if any, to stderr.
func Execute() error {
	initDisplay()
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprint(os.Stderr, diagnostic(err))
		return err
	}
	return nil
}

// diagnostic formats an error for the terminal.
func diagnostic(err error) string {
	return pterm.Error.Sprintln(err.Error())
}
