package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruthlang/ruth/repl"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Start an interactive read-eval-print loop.  An expression spanning
several lines is evaluated once it is complete.  Press Ctrl-C to discard
pending input and Ctrl-D to exit.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e, err := newEngine()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		err = repl.RunRepl(e)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
