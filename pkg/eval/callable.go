package eval

import (
	"fmt"
	"io"
	"strings"

	"github.com/ruthlang/ruth/pkg/environ"
	"github.com/ruthlang/ruth/pkg/lisp"
	"github.com/ruthlang/ruth/pkg/symbol"
)

// TailRec is the result of a single evaluation step.  It is either a final
// value or a request to continue by evaluating an expression in an
// environment.
type TailRec struct {
	expr lisp.LVal
	env  *environ.Environ
	tail bool
}

// Exit returns a TailRec holding the final value v.
func Exit(v lisp.LVal) TailRec {
	return TailRec{expr: v}
}

// TailCall returns a TailRec that continues by evaluating expr in env.
func TailCall(expr lisp.LVal, env *environ.Environ) TailRec {
	return TailRec{expr: expr, env: env, tail: true}
}

// IsTailCall returns true if r requests further evaluation.
func (r TailRec) IsTailCall() bool {
	return r.tail
}

// Value returns the final value of r, or the expression to evaluate next if
// r is a tail call.
func (r TailRec) Value() lisp.LVal {
	return r.expr
}

// Env returns the environment of a tail call.
func (r TailRec) Env() *environ.Environ {
	return r.env
}

// SpecialFormFunc receives unevaluated operands and the caller's
// environment.
type SpecialFormFunc func(e *Engine, env *environ.Environ, args []lisp.LVal) TailRec

// NativeFunc receives evaluated arguments.
type NativeFunc func(e *Engine, args []lisp.LVal) lisp.LVal

// SpecialForm is a callable that decides how its own operands are evaluated.
type SpecialForm struct {
	Name string
	Fn   SpecialFormFunc
}

// NativeProc is a procedure implemented in Go.
type NativeProc struct {
	Name string
	Fn   NativeFunc
}

// Param is a procedure parameter.  When HasDefault is true a call that
// supplies no argument for the parameter binds it to Default, evaluated in
// the procedure's new environment.
type Param struct {
	Name       symbol.ID
	Default    lisp.LVal
	HasDefault bool
}

// Proc is a closure or, when Lambda is false, a macro.
type Proc struct {
	Params []Param
	Body   []lisp.LVal
	Env    *environ.Environ
	// Variadic procedures bind their final parameter to a list of all
	// remaining arguments.
	Variadic bool
	Lambda   bool
}

// NewSpecialForm wraps fn as a callable value.
func NewSpecialForm(name string, fn SpecialFormFunc) lisp.LVal {
	return lisp.Callable(lisp.LSpecialForm, &SpecialForm{Name: name, Fn: fn})
}

// NewNativeProc wraps fn as a callable value.
func NewNativeProc(name string, fn NativeFunc) lisp.LVal {
	return lisp.Callable(lisp.LNativeProc, &NativeProc{Name: name, Fn: fn})
}

// NewProc wraps p as a callable value.
func NewProc(p *Proc) lisp.LVal {
	return lisp.Callable(lisp.LProc, p)
}

// GetProc returns the Proc backing v.
func GetProc(v lisp.LVal) (*Proc, bool) {
	if v.Type() != lisp.LProc {
		return nil, false
	}
	p, ok := v.Native.(*Proc)
	return p, ok
}

// GetSpecialForm returns the SpecialForm backing v.
func GetSpecialForm(v lisp.LVal) (*SpecialForm, bool) {
	if v.Type() != lisp.LSpecialForm {
		return nil, false
	}
	f, ok := v.Native.(*SpecialForm)
	return f, ok
}

// GetNativeProc returns the NativeProc backing v.
func GetNativeProc(v lisp.LVal) (*NativeProc, bool) {
	if v.Type() != lisp.LNativeProc {
		return nil, false
	}
	f, ok := v.Native.(*NativeProc)
	return f, ok
}

func (f *SpecialForm) FormatLisp(w io.Writer, table symbol.Table, display bool) error {
	_, err := fmt.Fprintf(w, "<special form %s>", f.Name)
	return err
}

func (f *NativeProc) FormatLisp(w io.Writer, table symbol.Table, display bool) error {
	_, err := fmt.Fprintf(w, "<native func %s>", f.Name)
	return err
}

// FormatLisp writes p as the lambda or macro expression that would create
// it.  The display form hides the body.
func (p *Proc) FormatLisp(w io.Writer, table symbol.Table, display bool) error {
	head, short := "lambda", "<procedure>"
	if !p.Lambda {
		head, short = "macro", "<macro>"
	}
	if display {
		_, err := io.WriteString(w, short)
		return err
	}
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(head)
	b.WriteString(" ")
	b.WriteString(p.paramString(table))
	for _, expr := range p.Body {
		b.WriteString(" ")
		b.WriteString(lisp.Sprint(expr, table))
	}
	b.WriteString(")")
	_, err := io.WriteString(w, b.String())
	return err
}

func (p *Proc) paramString(table symbol.Table) string {
	fixed := p.Params
	if p.Variadic {
		fixed = p.Params[:len(p.Params)-1]
	}
	var parts []string
	for _, prm := range fixed {
		name := symbol.String(prm.Name, table)
		if prm.HasDefault {
			name = "(" + name + " " + lisp.Sprint(prm.Default, table) + ")"
		}
		parts = append(parts, name)
	}
	if !p.Variadic {
		return "(" + strings.Join(parts, " ") + ")"
	}
	rest := symbol.String(p.Params[len(p.Params)-1].Name, table)
	if len(parts) == 0 {
		return rest
	}
	return "(" + strings.Join(parts, " ") + " . " + rest + ")"
}
