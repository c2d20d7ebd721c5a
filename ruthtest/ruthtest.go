// Package ruthtest runs lisp test programs against fresh engines.
package ruthtest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ruthlang/ruth/pkg/eval"
	"github.com/ruthlang/ruth/pkg/lisp"
	"github.com/ruthlang/ruth/pkg/stdlib"
	"github.com/ruthlang/ruth/pkg/symbol"
)

// TestPrefix marks the procedures of a test file that RunTestFile calls.
const TestPrefix = "test-"

// Runner is a test runner.
type Runner struct {
	// Options are passed to each new engine after the standard library and
	// an output buffer have been configured.
	Options []eval.Option
}

// NewEngine returns an engine with the standard library whose program output
// is written to stdout.
func (r *Runner) NewEngine(stdout *bytes.Buffer) (*eval.Engine, error) {
	opts := []eval.Option{eval.WithStdout(stdout)}
	opts = append(opts, r.Options...)
	e, err := stdlib.NewEngine(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	return e, nil
}

// RunTestFile loads the file at path and then calls, each in its own subtest
// and on a fresh engine, every procedure the file defines whose name begins
// with TestPrefix.  A test fails if loading the file or calling the procedure
// returns an error value.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}
	name := filepath.Base(path)

	var tests []string
	ok := t.Run("$load", func(t *testing.T) {
		e, ok := r.load(t, name, source)
		if !ok {
			return
		}
		e.Root().Each(func(id symbol.ID, v lisp.LVal) {
			sym, _ := e.Symbols.Symbol(id)
			if strings.HasPrefix(sym, TestPrefix) && v.Type() == lisp.LProc {
				tests = append(tests, sym)
			}
		})
		if len(tests) == 0 {
			t.Errorf("no tests defined in %s", name)
		}
	})
	if !ok {
		return
	}

	for _, test := range tests {
		// The result of t.Run is not checked so every test in the file
		// runs even after a failure.
		test := test
		t.Run(test, func(t *testing.T) {
			e, ok := r.load(t, name, source)
			if !ok {
				return
			}
			v := e.Eval(e.Root(), lisp.Expr(e.Symbol(test)))
			if e.IsError(v) {
				t.Errorf("%s: %s", test, e.Write(v))
			}
		})
	}
}

func (r *Runner) load(t *testing.T, name string, source []byte) (*eval.Engine, bool) {
	t.Helper()
	var stdout bytes.Buffer
	e, err := r.NewEngine(&stdout)
	if err != nil {
		t.Error(err.Error())
		return nil, false
	}
	v, err := e.Load(name, bytes.NewReader(source))
	if err != nil {
		t.Error(err.Error())
		return nil, false
	}
	if e.IsError(v) {
		t.Errorf("%s: %s", name, e.Write(v))
		return nil, false
	}
	return e, true
}

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by one engine.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result, in readable form
	Output string // text the expression writes to stdout
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on an isolated engine.
func RunTestSuite(t *testing.T, tests TestSuite) {
	var r Runner
	r.RunTestSuite(t, tests)
}

// RunTestSuite runs each TestSequence in tests on an isolated engine.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		var stdout bytes.Buffer
		e, err := r.NewEngine(&stdout)
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			stdout.Reset()
			v, err := e.LoadString("test", expr.Expr)
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			result := e.Write(v)
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if stdout.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, stdout.String())
			}
		}
	}
}
