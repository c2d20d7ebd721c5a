package eval

import (
	"github.com/ruthlang/ruth/pkg/environ"
	"github.com/ruthlang/ruth/pkg/lisp"
)

// Eval evaluates expr in env and returns the result, which may be an error
// value.  Expressions in tail position are evaluated iteratively so tail
// recursion does not grow the Go stack.
func (e *Engine) Eval(env *environ.Environ, expr lisp.LVal) lisp.LVal {
	for {
		r := e.step(env, expr)
		if !r.tail {
			return r.expr
		}
		expr, env = r.expr, r.env
	}
}

// Finish completes the evaluation requested by r.
func (e *Engine) Finish(r TailRec) lisp.LVal {
	if !r.tail {
		return r.expr
	}
	return e.Eval(r.env, r.expr)
}

func (e *Engine) step(env *environ.Environ, expr lisp.LVal) TailRec {
	switch expr.Type() {
	case lisp.LSymbol:
		id, _ := lisp.GetSymbol(expr)
		v, ok := env.Get(id)
		if !ok {
			return Exit(e.ErrorPayloadf(expr, "application: '%s is undefined", e.Write(expr)))
		}
		return Exit(v)
	case lisp.LCons:
		return e.application(env, lisp.MustCons(expr))
	default:
		return Exit(expr)
	}
}

func (e *Engine) application(env *environ.Environ, expr lisp.ConsVal) TailRec {
	op := e.Eval(env, expr.CAR())
	operands, tail := lisp.SliceList(expr.CDR())
	if !lisp.IsNil(tail) {
		return Exit(e.ErrorPayload(expr.CDR(), "application: cdr must be a proper list"))
	}
	switch op.Type() {
	case lisp.LSpecialForm:
		f, _ := GetSpecialForm(op)
		return f.Fn(e, env, operands)
	case lisp.LNativeProc:
		f, _ := GetNativeProc(op)
		return Exit(f.Fn(e, e.evalArgs(env, operands)))
	case lisp.LProc:
		p, _ := GetProc(op)
		if p.Lambda {
			return e.applyProc(env, p, e.evalArgs(env, operands))
		}
		return e.applyProc(env, p, operands)
	}
	if e.IsError(op) {
		return Exit(op)
	}
	return Exit(e.ErrorPayload(op, "application: not a procedure"))
}

func (e *Engine) evalArgs(env *environ.Environ, operands []lisp.LVal) []lisp.LVal {
	args := make([]lisp.LVal, len(operands))
	for i := range operands {
		args[i] = e.Eval(env, operands[i])
	}
	return args
}

// Apply calls fn with args, which are not evaluated again.  Special forms
// and macro expansions run in the root environment.
func (e *Engine) Apply(fn lisp.LVal, args []lisp.LVal) lisp.LVal {
	return e.Finish(e.TailApply(e.root, fn, args))
}

// TailApply is like Apply but returns the remaining work as a TailRec so a
// special form can apply a procedure in tail position.  Special forms and
// macro expansions run in env.
func (e *Engine) TailApply(env *environ.Environ, fn lisp.LVal, args []lisp.LVal) TailRec {
	switch fn.Type() {
	case lisp.LSpecialForm:
		f, _ := GetSpecialForm(fn)
		return f.Fn(e, env, args)
	case lisp.LNativeProc:
		f, _ := GetNativeProc(fn)
		return Exit(f.Fn(e, args))
	case lisp.LProc:
		p, _ := GetProc(fn)
		return e.applyProc(env, p, args)
	}
	if e.IsError(fn) {
		return Exit(fn)
	}
	return Exit(e.ErrorPayload(fn, "application: not a procedure"))
}

// applyProc binds args in a new child of the closure's environment and
// evaluates the body.  The last body expression of a lambda is returned as a
// tail call.  The expansion produced by a macro is tail called in env, the
// caller's environment.
func (e *Engine) applyProc(env *environ.Environ, p *Proc, args []lisp.LVal) TailRec {
	child, errv := e.bindParams(p, args)
	if child == nil {
		return Exit(errv)
	}
	if len(p.Body) == 0 {
		return Exit(e.Error("application: had a procedure with no body expressions"))
	}
	last := len(p.Body) - 1
	for _, expr := range p.Body[:last] {
		e.Eval(child, expr)
	}
	if p.Lambda {
		return TailCall(p.Body[last], child)
	}
	expansion := e.Eval(child, p.Body[last])
	if e.IsError(expansion) {
		return Exit(expansion)
	}
	return TailCall(expansion, env)
}

// bindParams returns the environment for a call of p.  If the arguments
// cannot be bound bindParams returns a nil environment and an error value.
func (e *Engine) bindParams(p *Proc, args []lisp.LVal) (*environ.Environ, lisp.LVal) {
	fixed := len(p.Params)
	if p.Variadic {
		fixed--
	}
	for i := len(args); i < fixed; i++ {
		if !p.Params[i].HasDefault {
			return nil, e.arityError(p, len(args))
		}
	}
	child := environ.New(p.Env, environ.NewBindings(len(p.Params)))
	for i, prm := range p.Params[:fixed] {
		if i < len(args) {
			child.Put(prm.Name, args[i])
			continue
		}
		v := e.Eval(child, prm.Default)
		if e.IsError(v) {
			return nil, v
		}
		child.Put(prm.Name, v)
	}
	if p.Variadic {
		var rest []lisp.LVal
		if len(args) > fixed {
			rest = args[fixed:]
		}
		child.Put(p.Params[fixed].Name, lisp.Expr(rest...))
	}
	return child, lisp.Nil()
}

func (e *Engine) arityError(p *Proc, supplied int) lisp.LVal {
	more := ""
	if p.Variadic {
		more = " or more"
	}
	payload := lisp.Expr(lisp.Int(len(p.Params)), e.Bool(p.Variadic), lisp.Int(supplied))
	return e.ErrorPayloadf(payload, "application: expected %d%s args but only got %d",
		len(p.Params), more, supplied)
}
