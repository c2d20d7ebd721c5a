package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruthlang/ruth/pkg/eval"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE...",
	Short: "Run lisp code",
	Long:  `Run lisp code supplied on the command line or in files.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		names, sources, err := runReadExpressions(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		e, err := newEngine()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		err = runSources(e, names, sources, runPrint)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// runSources evaluates each source in the root environment of e.  If print
// is true the value of every top level expression is written to e.Stdout.
// The first syntax error or error value is returned as a Go error.
func runSources(e *eval.Engine, names []string, sources [][]byte, print bool) error {
	for i := range sources {
		exprs, err := e.Reader.Read(names[i], bytes.NewReader(sources[i]))
		if err != nil {
			return err
		}
		for _, expr := range exprs {
			v := e.Eval(e.Root(), expr)
			if err := e.GoError(v); err != nil {
				return fmt.Errorf("%s: %s", names[i], e.Write(v))
			}
			if print {
				fmt.Fprintln(e.Stdout, e.Write(v))
			}
		}
	}
	return nil
}

func runReadExpressions(args []string) ([]string, [][]byte, error) {
	names := make([]string, len(args))
	exprs := make([][]byte, len(args))
	if runExpression {
		for i := range args {
			names[i] = fmt.Sprintf("arg%d", i)
			exprs[i] = []byte(args[i])
		}
		return names, exprs, nil
	}
	for i, path := range args {
		b, err := readSource(path)
		if err != nil {
			return nil, nil, err
		}
		names[i] = path
		exprs[i] = b
	}
	return names, exprs, nil
}

// readSource reads the named file, or stdin if path is "-".
func readSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
