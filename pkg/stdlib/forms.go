package stdlib

import (
	"github.com/ruthlang/ruth/pkg/environ"
	"github.com/ruthlang/ruth/pkg/eval"
	"github.com/ruthlang/ruth/pkg/lisp"
)

func exit(v lisp.LVal) eval.TailRec {
	return eval.Exit(v)
}

func specialQuote(e *eval.Engine, env *environ.Environ, args []lisp.LVal) eval.TailRec {
	if err := checkArgc(e, args, 1, 1); !lisp.IsNil(err) {
		return exit(err)
	}
	return exit(args[0])
}

func specialDefine(e *eval.Engine, env *environ.Environ, args []lisp.LVal) eval.TailRec {
	return define(e, env, args, "lambda")
}

func specialDefineMacro(e *eval.Engine, env *environ.Environ, args []lisp.LVal) eval.TailRec {
	return define(e, env, args, "macro")
}

// define binds a symbol in env.
//
//	(define NAME EXPR)
//	(define (NAME . PARAMS) BODY...)
//
// The second form is rewritten as (define NAME (ctor PARAMS BODY...)) and
// evaluated as a tail call.
func define(e *eval.Engine, env *environ.Environ, args []lisp.LVal, ctor string) eval.TailRec {
	if err := checkMinArgc(e, args, 2); !lisp.IsNil(err) {
		return exit(err)
	}
	switch args[0].Type() {
	case lisp.LSymbol:
		if err := checkArgc(e, args, 2, 2); !lisp.IsNil(err) {
			return exit(err)
		}
		v := e.Eval(env, args[1])
		if e.IsError(v) {
			return exit(v)
		}
		id, _ := lisp.GetSymbol(args[0])
		env.Put(id, v)
		return exit(lisp.Nil())
	case lisp.LCons:
		head := lisp.MustCons(args[0])
		if head.CAR().Type() != lisp.LSymbol {
			return exit(badArgType(e, args[0], 0, "(symbol . params)"))
		}
		fn := lisp.ExprTail(lisp.Expr(args[1:]...), e.Symbol(ctor), head.CDR())
		return eval.TailCall(lisp.Expr(e.Symbol("define"), head.CAR(), fn), env)
	default:
		return exit(badArgType(e, args[0], 0, "symbol"))
	}
}

func specialLambda(e *eval.Engine, env *environ.Environ, args []lisp.LVal) eval.TailRec {
	return makeProc(e, env, args, false, true)
}

func specialLambdaVariadic(e *eval.Engine, env *environ.Environ, args []lisp.LVal) eval.TailRec {
	return makeProc(e, env, args, true, true)
}

func specialMacro(e *eval.Engine, env *environ.Environ, args []lisp.LVal) eval.TailRec {
	return makeProc(e, env, args, false, false)
}

func makeProc(e *eval.Engine, env *environ.Environ, args []lisp.LVal, variadic, lambda bool) eval.TailRec {
	if err := checkMinArgc(e, args, 1); !lisp.IsNil(err) {
		return exit(err)
	}
	return exit(e.MakeProc(env, args[0], args[1:], variadic, lambda))
}

// (if COND THEN [ELSE])
func specialIf(e *eval.Engine, env *environ.Environ, args []lisp.LVal) eval.TailRec {
	if err := checkArgc(e, args, 2, 3); !lisp.IsNil(err) {
		return exit(err)
	}
	cond := e.Eval(env, args[0])
	if e.IsError(cond) {
		return exit(cond)
	}
	if e.IsTrue(cond) {
		return eval.TailCall(args[1], env)
	}
	if len(args) == 3 {
		return eval.TailCall(args[2], env)
	}
	return exit(lisp.Nil())
}

func specialBegin(e *eval.Engine, env *environ.Environ, args []lisp.LVal) eval.TailRec {
	return body(e, env, args)
}

// body evaluates exprs for effect and tail calls the last one.
func body(e *eval.Engine, env *environ.Environ, exprs []lisp.LVal) eval.TailRec {
	if len(exprs) == 0 {
		return exit(lisp.Nil())
	}
	last := len(exprs) - 1
	for _, expr := range exprs[:last] {
		e.Eval(env, expr)
	}
	return eval.TailCall(exprs[last], env)
}

// specialLet binds variables in a new scope.
//
//	(let ((PATTERN EXPR) ...) BODY...)
//	(let NAME ((VAR EXPR) ...) BODY...)
//
// Each EXPR is evaluated in the new scope after the bindings before it, and
// its value is destructured against PATTERN.  The named form binds NAME to a
// procedure of the VARs whose body is BODY and calls it with the values.
func specialLet(e *eval.Engine, env *environ.Environ, args []lisp.LVal) eval.TailRec {
	var name lisp.LVal
	named := len(args) > 0 && args[0].Type() == lisp.LSymbol
	if named {
		name, args = args[0], args[1:]
	}
	if err := checkMinArgc(e, args, 2); !lisp.IsNil(err) {
		return exit(err)
	}
	bindings, tail := lisp.SliceList(args[0])
	if !lisp.IsNil(tail) {
		return exit(badArgType(e, args[0], 0, "list of (pattern expr)"))
	}
	inner := environ.New(env, nil)
	var params, vals []lisp.LVal
	for _, b := range bindings {
		pair, tail := lisp.SliceList(b)
		if len(pair) != 2 || !lisp.IsNil(tail) || (named && pair[0].Type() != lisp.LSymbol) {
			return exit(badArgType(e, args[0], 0, "list of (pattern expr)"))
		}
		v := e.Eval(inner, pair[1])
		if e.IsError(v) {
			return exit(v)
		}
		if err := e.Destructure(inner, pair[0], v); e.IsError(err) {
			return exit(err)
		}
		params = append(params, pair[0])
		vals = append(vals, v)
	}
	if !named {
		return body(e, inner, args[1:])
	}
	scope := environ.New(env, nil)
	fn := e.MakeProc(scope, lisp.Expr(params...), args[1:], false, true)
	if e.IsError(fn) {
		return exit(fn)
	}
	id, _ := lisp.GetSymbol(name)
	scope.Put(id, fn)
	return e.TailApply(scope, fn, vals)
}

// (destructure PATTERN EXPR BODY...)
func specialDestructure(e *eval.Engine, env *environ.Environ, args []lisp.LVal) eval.TailRec {
	if err := checkMinArgc(e, args, 2); !lisp.IsNil(err) {
		return exit(err)
	}
	v := e.Eval(env, args[1])
	if e.IsError(v) {
		return exit(v)
	}
	inner := environ.New(env, nil)
	if err := e.Destructure(inner, args[0], v); e.IsError(err) {
		return exit(err)
	}
	return body(e, inner, args[2:])
}
