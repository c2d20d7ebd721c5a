// Package eval implements the evaluator core: a trampolined tree-walking
// interpreter over lisp.LVal expressions with lexical closures, special
// forms, native procedures and macros.
//
// Language-level failures never surface as Go errors or panics.  They are
// error values, lists of the form (! message [payload]), returned through
// the ordinary value path.
package eval

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/ruthlang/ruth/pkg/destructure"
	"github.com/ruthlang/ruth/pkg/environ"
	"github.com/ruthlang/ruth/pkg/lisp"
	"github.com/ruthlang/ruth/pkg/symbol"
)

// Reader parses source streams into expressions.
type Reader interface {
	Read(name string, r io.Reader) ([]lisp.LVal, error)
}

// Engine evaluates expressions.  An Engine owns a symbol table and a root
// environment.  Engines are not safe for concurrent use.
type Engine struct {
	Symbols symbol.Table
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *log.Logger
	Reader  Reader

	root     *environ.Environ
	binder   *destructure.Binder
	tracer   destructure.Tracer
	traceLog bool
	libs     []Library

	marker symbol.ID
	symT   symbol.ID
	symF   symbol.ID
}

// New initializes and returns a new Engine with the provided configuration
// options.  If any error is encountered it will be returned with a nil
// engine.
func New(options ...Option) (*Engine, error) {
	e := &Engine{
		Symbols: symbol.NewTable(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
	for _, fn := range options {
		err := fn(e)
		if err != nil {
			return nil, err
		}
	}
	if e.Logger == nil {
		e.Logger = log.New(e.Stderr, "", 0)
	}
	ids := symbol.InternAll(e.Symbols, "!", "default", "_", "true", "false")
	e.marker, e.symT, e.symF = ids[0], ids[3], ids[4]

	var bopts []destructure.Option
	switch {
	case e.tracer != nil:
		bopts = append(bopts, destructure.WithTracer(e.tracer))
	case e.traceLog:
		bopts = append(bopts, destructure.WithTracer(&destructure.LogTracer{
			Logger: e.Logger,
			Table:  e.Symbols,
		}))
	}
	e.binder = destructure.New(e.Symbols, bopts...)

	e.root = environ.New(nil, nil)
	for _, lib := range e.libs {
		err := lib(e)
		if err != nil {
			return nil, fmt.Errorf("library: %w", err)
		}
	}
	return e, nil
}

// Root returns the top level environment of e.
func (e *Engine) Root() *environ.Environ {
	return e.root
}

// Binder returns the binder used to destructure values.
func (e *Engine) Binder() *destructure.Binder {
	return e.binder
}

// Intern returns the id of name in the engine's symbol table.
func (e *Engine) Intern(name string) symbol.ID {
	return e.Symbols.Intern(name)
}

// Symbol returns the symbol named name.
func (e *Engine) Symbol(name string) lisp.LVal {
	return lisp.Symbol(e.Intern(name))
}

// ErrorMarker returns the id of the symbol that heads error values.
func (e *Engine) ErrorMarker() symbol.ID {
	return e.marker
}

// Bool returns the symbol true or false.
func (e *Engine) Bool(b bool) lisp.LVal {
	if b {
		return lisp.Symbol(e.symT)
	}
	return lisp.Symbol(e.symF)
}

// IsTrue returns false if v is nil or the symbol false and true otherwise.
func (e *Engine) IsTrue(v lisp.LVal) bool {
	return !lisp.IsNil(v) && !lisp.IsSymbol(v, e.symF)
}

// Define binds name to v in the root environment.
func (e *Engine) Define(name string, v lisp.LVal) {
	e.root.Put(e.Intern(name), v)
}

// DefineSpecialForm binds name to a special form in the root environment.
func (e *Engine) DefineSpecialForm(name string, fn SpecialFormFunc) {
	e.Define(name, NewSpecialForm(name, fn))
}

// DefineNative binds name to a native procedure in the root environment.
func (e *Engine) DefineNative(name string, fn NativeFunc) {
	e.Define(name, NewNativeProc(name, fn))
}

// Write returns the readable representation of v.
func (e *Engine) Write(v lisp.LVal) string {
	return lisp.Sprint(v, e.Symbols)
}

// Print returns the display representation of v.
func (e *Engine) Print(v lisp.LVal) string {
	return lisp.SprintDisplay(v, e.Symbols)
}

// Destructure matches pattern against value and binds the resulting
// variables in env.  Destructure returns nil on success and an error value
// if the match fails, in which case env is not modified.
func (e *Engine) Destructure(env *environ.Environ, pattern, value lisp.LVal) lisp.LVal {
	bindings, err := e.binder.Bind(pattern, value)
	if err != nil {
		return e.bindError(err)
	}
	ids := make([]symbol.ID, 0, len(bindings))
	for id := range bindings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		env.Put(id, bindings[id])
	}
	return lisp.Nil()
}

func (e *Engine) bindError(err error) lisp.LVal {
	berr, ok := err.(*destructure.Error)
	if !ok {
		return e.Errorf("%v", err)
	}
	if berr.HasPayload {
		return e.ErrorPayload(berr.Payload, berr.Error())
	}
	return e.Error(berr.Error())
}
