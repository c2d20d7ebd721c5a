package stdlib

import (
	"github.com/ruthlang/ruth/pkg/eval"
	"github.com/ruthlang/ruth/pkg/lisp"
)

func builtinCons(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkArgc(e, args, 2, 2); !lisp.IsNil(err) {
		return err
	}
	return lisp.Cons(args[0], args[1])
}

func builtinCAR(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkArgc(e, args, 1, 1); !lisp.IsNil(err) {
		return err
	}
	car, ok := lisp.GetCAR(args[0])
	if !ok {
		return badArgType(e, args[0], 0, "pair")
	}
	return car
}

func builtinCDR(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkArgc(e, args, 1, 1); !lisp.IsNil(err) {
		return err
	}
	cdr, ok := lisp.GetCDR(args[0])
	if !ok {
		return badArgType(e, args[0], 0, "pair")
	}
	return cdr
}

func builtinList(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	return lisp.Expr(args...)
}

// builtinLength returns the number of elements in a proper list or the
// number of entries in a map.
func builtinLength(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkArgc(e, args, 1, 1); !lisp.IsNil(err) {
		return err
	}
	if m, ok := lisp.GetMap(args[0]); ok {
		return lisp.Int(m.Len())
	}
	n, ok := lisp.ListLen(args[0])
	if !ok {
		return badArgType(e, args[0], 0, "list or map")
	}
	return lisp.Int(n)
}

// (hash-map KEY VALUE ...)
func builtinHashMap(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if len(args)%2 != 0 {
		return e.ErrorPayloadf(lisp.Int(len(args)), "expected an even number of args but got %d", len(args))
	}
	m := lisp.NewMapData(len(args) / 2)
	for i := 0; i < len(args); i += 2 {
		m.Put(args[i], args[i+1])
	}
	return lisp.Map(m)
}

// (get MAP KEY [DEFAULT])
func builtinGet(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkArgc(e, args, 2, 3); !lisp.IsNil(err) {
		return err
	}
	m, ok := lisp.GetMap(args[0])
	if !ok {
		return badArgType(e, args[0], 0, "map")
	}
	v, ok := m.Get(args[1])
	if !ok && len(args) == 3 {
		return args[2]
	}
	return v
}
