// Package repl implements an interactive read-eval-print loop.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ruthlang/ruth/pkg/eval"
	"github.com/ruthlang/ruth/pkg/lisp"
	"github.com/ruthlang/ruth/parser"
)

// The prompts are read from these root bindings before every line so a
// program can change them.
const (
	primaryPrompt      = "ps1"
	continuationPrompt = "ps2"
)

// LineReader reads lines of input from a terminal.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// RunRepl runs an interactive loop on the terminal until the input is
// closed.
func RunRepl(e *eval.Engine) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt(e, primaryPrompt, ">>> "),
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	return Run(e, rl)
}

// Run reads expressions from rl and evaluates them in the root environment
// of e, writing each value to e.Stdout.  Input lines are accumulated until
// they form complete expressions.  An interrupt discards pending input.  Run
// returns nil when rl reaches the end of its input.
func Run(e *eval.Engine, rl LineReader) error {
	var buf strings.Builder
	reset := func() {
		buf.Reset()
		rl.SetPrompt(prompt(e, primaryPrompt, ">>> "))
	}
	reset()
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		buf.WriteString(line)
		buf.WriteString("\n")
		if strings.TrimSpace(buf.String()) == "" {
			reset()
			continue
		}
		exprs, err := e.Reader.Read("stdin", strings.NewReader(buf.String()))
		if errors.Is(err, parser.ErrIncomplete) {
			rl.SetPrompt(prompt(e, continuationPrompt, "... "))
			continue
		}
		if err != nil {
			fmt.Fprintln(e.Stderr, err)
		} else {
			evalPrint(e, exprs)
		}
		reset()
	}
}

// evalPrint stops at the first error value.
func evalPrint(e *eval.Engine, exprs []lisp.LVal) {
	for _, expr := range exprs {
		v := e.Eval(e.Root(), expr)
		fmt.Fprintln(e.Stdout, e.Write(v))
		if e.IsError(v) {
			return
		}
	}
}

func prompt(e *eval.Engine, name, dflt string) string {
	v, ok := e.Root().Get(e.Intern(name))
	if !ok {
		return dflt
	}
	if s, ok := lisp.GetString(v); ok {
		return s
	}
	return dflt
}
