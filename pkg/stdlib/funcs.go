package stdlib

import (
	"github.com/ruthlang/ruth/pkg/eval"
	"github.com/ruthlang/ruth/pkg/lisp"
)

// (error MESSAGE [PAYLOAD])
func builtinError(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkArgc(e, args, 1, 2); !lisp.IsNil(err) {
		return err
	}
	msg, ok := lisp.GetString(args[0])
	if !ok {
		return badArgType(e, args[0], 0, "string")
	}
	if len(args) == 2 {
		return e.ErrorPayload(args[1], msg)
	}
	return e.Error(msg)
}

func builtinErrorP(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkArgc(e, args, 1, 1); !lisp.IsNil(err) {
		return err
	}
	return e.Bool(e.IsError(args[0]))
}

// (apply FN ARGS)
func builtinApply(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkArgc(e, args, 2, 2); !lisp.IsNil(err) {
		return err
	}
	if !lisp.IsCallable(args[0]) {
		return badArgType(e, args[0], 0, "procedure")
	}
	fnargs, tail := lisp.SliceList(args[1])
	if !lisp.IsNil(tail) {
		return badArgType(e, args[1], 1, "list")
	}
	return e.Apply(args[0], fnargs)
}

// (eval EXPR) evaluates EXPR in the root environment.
func builtinEval(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkArgc(e, args, 1, 1); !lisp.IsNil(err) {
		return err
	}
	return e.Eval(e.Root(), args[0])
}
