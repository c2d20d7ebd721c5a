package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruthlang/ruth/pkg/eval"
	"github.com/ruthlang/ruth/pkg/stdlib"
)

var rootTrace bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ruth",
	Short: "A small lisp interpreter",
	Long: `Ruth is a small lisp with lexical closures, macros, proper tail calls
and destructuring binds.  Run programs with the run command or explore the
language interactively with the repl command.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newEngine returns an engine with the standard library configured by the
// global flags.
func newEngine() (*eval.Engine, error) {
	opts := []eval.Option{
		eval.WithLogger(log.New(os.Stderr, "ruth: ", 0)),
	}
	if rootTrace {
		opts = append(opts, eval.WithTraceLog())
	}
	return stdlib.NewEngine(opts...)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootTrace, "trace", false,
		"Log every destructuring step to stderr")
}
