package stdlib

import (
	"fmt"

	"github.com/ruthlang/ruth/pkg/eval"
	"github.com/ruthlang/ruth/pkg/lisp"
)

// checkArgc returns an error value unless min <= len(args) <= max.  Otherwise
// checkArgc returns nil.
func checkArgc(e *eval.Engine, args []lisp.LVal, min, max int) lisp.LVal {
	n := len(args)
	if min <= n && n <= max {
		return lisp.Nil()
	}
	var msg string
	if min == max {
		msg = fmt.Sprintf("expected exactly %d args but got %d", min, n)
	} else {
		msg = fmt.Sprintf("expected between %d and %d args but got %d", min, max, n)
	}
	return e.ErrorPayload(lisp.Expr(lisp.Int(min), lisp.Int(max), lisp.Int(n)), msg)
}

func checkMinArgc(e *eval.Engine, args []lisp.LVal, min int) lisp.LVal {
	n := len(args)
	if n >= min {
		return lisp.Nil()
	}
	return e.ErrorPayloadf(lisp.Expr(lisp.Int(min), lisp.Int(n)),
		"expected %d args or more but got %d", min, n)
}

// badArgType reports that the argument at index idx is not a want.
func badArgType(e *eval.Engine, arg lisp.LVal, idx int, want string) lisp.LVal {
	return e.ErrorPayloadf(lisp.Expr(lisp.Int(idx), lisp.String(want), arg),
		"in argument #%d, expected %s", idx, want)
}

// kindError returns an error value whose message is prefixed with a
// category such as "math/div-by-zero".
func kindError(e *eval.Engine, kind string, payload lisp.LVal, format string, v ...interface{}) lisp.LVal {
	msg := kind + ": " + fmt.Sprintf(format, v...)
	if lisp.IsNil(payload) {
		return e.Error(msg)
	}
	return e.ErrorPayload(payload, msg)
}
