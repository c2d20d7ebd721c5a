package stdlib

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ruthlang/ruth/pkg/eval"
	"github.com/ruthlang/ruth/pkg/lisp"
)

// builtinString concatenates the display forms of its arguments.
func builtinString(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	var b strings.Builder
	for _, v := range args {
		b.WriteString(e.Print(v))
	}
	return lisp.String(b.String())
}

// builtinStringLen returns the length of a string in bytes.
func builtinStringLen(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkArgc(e, args, 1, 1); !lisp.IsNil(err) {
		return err
	}
	s, ok := lisp.GetString(args[0])
	if !ok {
		return badArgType(e, args[0], 0, "string")
	}
	return lisp.Int(len(s))
}

// (string-slice STRING START [END])
//
// START and END are byte offsets.  A false or missing bound means the start
// or end of the string.
func builtinStringSlice(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkArgc(e, args, 2, 3); !lisp.IsNil(err) {
		return err
	}
	s, ok := lisp.GetString(args[0])
	if !ok {
		return badArgType(e, args[0], 0, "string")
	}
	start, errv := sliceBound(e, args, 1, 0)
	if !lisp.IsNil(errv) {
		return errv
	}
	end, errv := sliceBound(e, args, 2, len(s))
	if !lisp.IsNil(errv) {
		return errv
	}
	if start > end {
		return kindError(e, "string/slice-out-of-order", lisp.Expr(lisp.Int(start), lisp.Int(end)),
			"the start %d was after the end %d", start, end)
	}
	if end > len(s) {
		return kindError(e, "string/slice-too-far", lisp.Expr(lisp.Int(end), lisp.Int(len(s))),
			"%d was out of bounds (string had len %d)", end, len(s))
	}
	for _, i := range []int{start, end} {
		if i < len(s) && !utf8.RuneStart(s[i]) {
			return kindError(e, "string/slice-boundary", lisp.Nil(), "%d is not on a char boundary", i)
		}
	}
	return lisp.String(s[start:end])
}

func sliceBound(e *eval.Engine, args []lisp.LVal, idx int, dflt int) (int, lisp.LVal) {
	if idx >= len(args) || !e.IsTrue(args[idx]) {
		return dflt, lisp.Nil()
	}
	x, ok := lisp.GetInt(args[idx])
	if !ok || x < 0 {
		return 0, badArgType(e, args[idx], idx, "positive int or falsy")
	}
	return x, lisp.Nil()
}

// (string-find NEEDLE HAYSTACK) returns the byte offset of the first NEEDLE
// in HAYSTACK or false.
func builtinStringFind(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkArgc(e, args, 2, 2); !lisp.IsNil(err) {
		return err
	}
	needle, ok := lisp.GetString(args[0])
	if !ok {
		return badArgType(e, args[0], 0, "string")
	}
	haystack, ok := lisp.GetString(args[1])
	if !ok {
		return badArgType(e, args[1], 1, "string")
	}
	i := strings.Index(haystack, needle)
	if i < 0 {
		return e.Bool(false)
	}
	return lisp.Int(i)
}

// (prn VALUE [NEWLINE]) writes the display form of VALUE to the engine's
// stdout, followed by a newline unless NEWLINE is false.
func builtinPrn(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkArgc(e, args, 1, 2); !lisp.IsNil(err) {
		return err
	}
	out := e.Print(args[0])
	if len(args) < 2 || e.IsTrue(args[1]) {
		out += "\n"
	}
	if _, err := fmt.Fprint(e.Stdout, out); err != nil {
		return kindError(e, "io/write", lisp.Nil(), "%v", err)
	}
	return args[0]
}
