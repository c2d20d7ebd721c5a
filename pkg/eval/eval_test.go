package eval

import (
	"bytes"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruthlang/ruth/pkg/environ"
	"github.com/ruthlang/ruth/pkg/lisp"
)

// testLib is just enough of a language to exercise the evaluator without a
// parser.
func testLib(e *Engine) error {
	e.DefineSpecialForm("quote", func(e *Engine, env *environ.Environ, args []lisp.LVal) TailRec {
		return Exit(args[0])
	})
	e.DefineSpecialForm("lambda", func(e *Engine, env *environ.Environ, args []lisp.LVal) TailRec {
		return Exit(e.MakeProc(env, args[0], args[1:], false, true))
	})
	e.DefineSpecialForm("macro", func(e *Engine, env *environ.Environ, args []lisp.LVal) TailRec {
		return Exit(e.MakeProc(env, args[0], args[1:], false, false))
	})
	e.DefineNative("list", func(e *Engine, args []lisp.LVal) lisp.LVal {
		return lisp.Expr(args...)
	})
	return nil
}

func testEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	opts = append(opts, WithLibrary(testLib))
	e, err := New(opts...)
	require.NoError(t, err)
	return e
}

func TestEval_selfEvaluating(t *testing.T) {
	e := testEngine(t)
	for _, v := range []lisp.LVal{
		lisp.Nil(),
		lisp.Int(3),
		lisp.Float(0.5),
		lisp.String("abc"),
		lisp.Map(lisp.NewMapData(0)),
	} {
		assert.Equal(t, e.Write(v), e.Write(e.Eval(e.Root(), v)))
	}
}

func TestEval_symbol(t *testing.T) {
	e := testEngine(t)
	e.Define("x", lisp.Int(1))
	v := e.Eval(e.Root(), e.Symbol("x"))
	assert.Equal(t, "1", e.Write(v))

	child := environ.New(e.Root(), nil)
	child.Put(e.Intern("x"), lisp.Int(2))
	assert.Equal(t, "2", e.Write(e.Eval(child, e.Symbol("x"))))
	assert.Equal(t, "1", e.Write(e.Eval(e.Root(), e.Symbol("x"))))

	v = e.Eval(e.Root(), e.Symbol("y"))
	assert.True(t, e.IsError(v))
	assert.Equal(t, `(! "application: 'y is undefined" y)`, e.Write(v))
}

func TestEval_application(t *testing.T) {
	e := testEngine(t)
	sym := e.Symbol
	e.Define("boom", e.Error("boom"))
	tests := []struct {
		expr   lisp.LVal
		result string
	}{
		{lisp.Expr(sym("list"), lisp.Int(1), lisp.Expr(sym("list"), lisp.Int(2))), "(1 (2))"},
		{lisp.Expr(sym("list")), "()"},
		{lisp.Expr(lisp.Int(1), lisp.Int(2)), `(! "application: not a procedure" 1)`},
		{lisp.Cons(sym("list"), lisp.Int(1)), `(! "application: cdr must be a proper list" 1)`},
		{lisp.Expr(sym("boom"), lisp.Int(1)), `(! "boom")`},
		{lisp.Expr(sym("quote"), sym("unbound")), "unbound"},
	}
	for i, test := range tests {
		v := e.Eval(e.Root(), test.expr)
		assert.Equal(t, test.result, e.Write(v), "test %d", i)
	}
}

func TestEval_lambda(t *testing.T) {
	e := testEngine(t)
	sym := e.Symbol
	lambda := func(params lisp.LVal, body ...lisp.LVal) lisp.LVal {
		return lisp.ExprTail(lisp.Expr(body...), sym("lambda"), params)
	}
	tests := []struct {
		expr   lisp.LVal
		result string
	}{
		{
			lisp.Expr(lambda(lisp.Expr(sym("x"), sym("y")), lisp.Expr(sym("list"), sym("y"), sym("x"))),
				lisp.Int(1), lisp.Int(2)),
			"(2 1)",
		},
		{
			lisp.Expr(lambda(lisp.Expr(sym("x"), sym("y")), sym("x")), lisp.Int(1)),
			`(! "application: expected 2 args but only got 1" (2 false 1))`,
		},
		{
			lisp.Expr(lambda(lisp.Cons(sym("x"), sym("r")), sym("r")), lisp.Int(1), lisp.Int(2), lisp.Int(3)),
			"(2 3)",
		},
		{
			lisp.Expr(lambda(sym("r"), sym("r"))),
			"()",
		},
		{
			lisp.Expr(lambda(lisp.Cons(sym("x"), sym("r")), sym("r"))),
			`(! "application: expected 2 or more args but only got 0" (2 true 0))`,
		},
		{
			lisp.Expr(lambda(lisp.Expr(sym("x"), lisp.Expr(sym("y"), lisp.Expr(sym("list"), sym("x")))), sym("y")),
				lisp.Int(1)),
			"(1)",
		},
		{
			lisp.Expr(lambda(lisp.Expr(lisp.Expr(sym("y"), sym("nope"))), sym("y"))),
			`(! "application: 'nope is undefined" nope)`,
		},
		{
			lisp.Expr(lambda(lisp.Expr(sym("x"))), lisp.Int(1)),
			`(! "application: had a procedure with no body expressions")`,
		},
		{
			lisp.Expr(lambda(lisp.Expr(sym("x")), sym("x")), lisp.Int(1), lisp.Int(2)),
			"1",
		},
	}
	for i, test := range tests {
		v := e.Eval(e.Root(), test.expr)
		assert.Equal(t, test.result, e.Write(v), "test %d", i)
	}
}

func TestEval_macro(t *testing.T) {
	e := testEngine(t)
	sym := e.Symbol
	quote := func(v lisp.LVal) lisp.LVal { return lisp.Expr(sym("quote"), v) }
	macro := func(params lisp.LVal, body ...lisp.LVal) lisp.LVal {
		return lisp.ExprTail(lisp.Expr(body...), sym("macro"), params)
	}

	// ((macro (x) (list 'list x x)) 5)
	twice := macro(lisp.Expr(sym("x")), lisp.Expr(sym("list"), quote(sym("list")), sym("x"), sym("x")))
	v := e.Eval(e.Root(), lisp.Expr(twice, lisp.Int(5)))
	assert.Equal(t, "(5 5)", e.Write(v))

	// Operands are passed unevaluated.
	quoter := macro(lisp.Expr(sym("x")), lisp.Expr(sym("list"), quote(sym("quote")), sym("x")))
	v = e.Eval(e.Root(), lisp.Expr(quoter, lisp.Expr(sym("a"), sym("b"))))
	assert.Equal(t, "(a b)", e.Write(v))

	// The expansion is evaluated where the macro was called.
	// ((lambda (z) ((macro () 'z))) 7)
	inner := lisp.Expr(macro(lisp.Nil(), quote(sym("z"))))
	outer := lisp.Expr(sym("lambda"), lisp.Expr(sym("z")), inner)
	v = e.Eval(e.Root(), lisp.Expr(outer, lisp.Int(7)))
	assert.Equal(t, "7", e.Write(v))
}

func TestMakeProc(t *testing.T) {
	e := testEngine(t)
	sym := e.Symbol
	tests := []struct {
		params   lisp.LVal
		variadic bool
		result   string
		display  string
	}{
		{lisp.Expr(sym("a")), false, "(lambda (a) a)", "<procedure>"},
		{sym("rest"), false, "(lambda rest a)", "<procedure>"},
		{lisp.ExprTail(sym("rest"), sym("a"), lisp.Expr(sym("b"), lisp.Int(10))), false,
			"(lambda (a (b 10) . rest) a)", "<procedure>"},
		{lisp.Expr(sym("a"), sym("rest")), true, "(lambda (a . rest) a)", "<procedure>"},
		{lisp.Expr(sym("a"), sym("a")), false, "(! \"lambda: duplicate parameter `a`\" a)", ""},
		{lisp.Cons(sym("a"), sym("a")), false, "(! \"lambda: duplicate parameter `a`\" a)", ""},
		{lisp.Expr(lisp.Int(1)), false, "(! \"lambda: invalid parameter `1`\" 1)", ""},
		{lisp.Expr(lisp.Expr(sym("a"))), false, "(! \"lambda: invalid parameter `(a)`\" (a))", ""},
		{lisp.Cons(sym("a"), lisp.Int(1)), false, "(! \"lambda: invalid parameter `1`\" 1)", ""},
		{lisp.Nil(), true, `(! "lambda*: no variadic parameter" ())`, ""},
		{lisp.Expr(lisp.Expr(sym("a"), lisp.Int(1))), true,
			`(! "lambda*: variadic parameter cannot have a default" ((a 1)))`, ""},
	}
	for i, test := range tests {
		v := e.MakeProc(e.Root(), test.params, []lisp.LVal{sym("a")}, test.variadic, true)
		assert.Equal(t, test.result, e.Write(v), "test %d", i)
		if test.display != "" {
			assert.Equal(t, test.display, e.Print(v), "test %d", i)
		}
	}

	m := e.MakeProc(e.Root(), lisp.Nil(), []lisp.LVal{lisp.Int(1)}, false, false)
	assert.Equal(t, "(macro () 1)", e.Write(m))
	assert.Equal(t, "<macro>", e.Print(m))
}

func TestApply(t *testing.T) {
	e := testEngine(t)
	list, ok := e.Root().Get(e.Intern("list"))
	require.True(t, ok)
	v := e.Apply(list, []lisp.LVal{lisp.Int(1), e.Symbol("x")})
	assert.Equal(t, "(1 x)", e.Write(v))

	v = e.Apply(lisp.Int(1), nil)
	assert.Equal(t, `(! "application: not a procedure" 1)`, e.Write(v))

	fn := e.MakeProc(e.Root(), lisp.Expr(e.Symbol("x")), []lisp.LVal{e.Symbol("x")}, false, true)
	v = e.Apply(fn, []lisp.LVal{e.Symbol("unevaluated")})
	assert.Equal(t, "unevaluated", e.Write(v))

	r := e.TailApply(e.Root(), fn, []lisp.LVal{lisp.Int(4)})
	assert.True(t, r.IsTailCall())
	assert.Equal(t, "4", e.Write(e.Finish(r)))
}

func TestTailRec(t *testing.T) {
	e := testEngine(t)
	r := Exit(lisp.Int(1))
	assert.False(t, r.IsTailCall())
	assert.Equal(t, "1", e.Write(e.Finish(r)))

	env := environ.New(e.Root(), nil)
	env.Put(e.Intern("y"), lisp.Int(2))
	r = TailCall(e.Symbol("y"), env)
	assert.True(t, r.IsTailCall())
	assert.Equal(t, env, r.Env())
	assert.Equal(t, "y", e.Write(r.Value()))
	assert.Equal(t, "2", e.Write(e.Finish(r)))
}

func TestDestructure(t *testing.T) {
	e := testEngine(t)
	sym := e.Symbol
	env := environ.New(e.Root(), nil)
	v := e.Destructure(env, lisp.Expr(sym("a"), sym("b")), lisp.Expr(lisp.Int(1), lisp.Int(2)))
	assert.True(t, lisp.IsNil(v))
	a, ok := env.Get(e.Intern("a"))
	if assert.True(t, ok) {
		assert.Equal(t, "1", e.Write(a))
	}
	b, ok := env.Get(e.Intern("b"))
	if assert.True(t, ok) {
		assert.Equal(t, "2", e.Write(b))
	}

	env = environ.New(e.Root(), nil)
	v = e.Destructure(env, lisp.Expr(sym("c"), sym("d")), lisp.Expr(lisp.Int(1)))
	assert.Equal(t, `(! "assignment/no-default: lack of value with no default")`, e.Write(v))
	assert.Equal(t, 0, env.Len())

	v = e.Destructure(env, lisp.Expr(sym("c"), sym("c")), lisp.Expr(lisp.Int(1), lisp.Int(2)))
	assert.Equal(t, "(! \"assignment/duplicate: `c` is bound more than once\" c)", e.Write(v))
	assert.Equal(t, 0, env.Len())
}

func TestGoError(t *testing.T) {
	e := testEngine(t)
	assert.NoError(t, e.GoError(lisp.Int(1)))

	err := e.GoError(e.ErrorPayload(lisp.Int(7), "bad thing"))
	require.Error(t, err)
	assert.Equal(t, "bad thing", err.Error())
	var lerr *LispError
	require.True(t, errors.As(err, &lerr))
	assert.True(t, lerr.HasPayload)
	assert.Equal(t, "7", e.Write(lerr.Payload))
	assert.Equal(t, `(! "bad thing" 7)`, e.Write(lerr.Value))

	err = e.GoError(e.Errorf("no %s", "payload"))
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, "no payload", lerr.Message)
	assert.False(t, lerr.HasPayload)
}

func TestNew(t *testing.T) {
	_, err := New(WithStdout(nil))
	assert.Error(t, err)

	_, err = New(WithLibrary(func(e *Engine) error {
		return errors.New("broken")
	}))
	if assert.Error(t, err) {
		assert.Equal(t, "library: broken", err.Error())
	}

	e := testEngine(t)
	assert.Equal(t, "true", e.Write(e.Bool(true)))
	assert.Equal(t, "false", e.Write(e.Bool(false)))
	assert.False(t, e.IsTrue(lisp.Nil()))
	assert.False(t, e.IsTrue(e.Bool(false)))
	assert.True(t, e.IsTrue(lisp.Int(0)))
	assert.True(t, e.IsTrue(lisp.String("")))

	_, err = e.LoadString("empty", "")
	assert.EqualError(t, err, "no reader configured")
}

func TestWithTraceLog(t *testing.T) {
	var buf bytes.Buffer
	e := testEngine(t, WithLogger(log.New(&buf, "", 0)), WithTraceLog())
	env := environ.New(e.Root(), nil)
	v := e.Destructure(env, e.Symbol("a"), lisp.Int(1))
	assert.True(t, lisp.IsNil(v))
	assert.Contains(t, buf.String(), "a <- 1")
}

type sliceReader []lisp.LVal

func (r sliceReader) Read(name string, _ io.Reader) ([]lisp.LVal, error) {
	return r, nil
}

func TestLoad(t *testing.T) {
	e := testEngine(t)
	sym := e.Symbol
	e.Reader = sliceReader{
		lisp.Expr(sym("list"), lisp.Int(1)),
		lisp.Expr(sym("undefined")),
		lisp.Expr(sym("list"), lisp.Int(2)),
	}
	v, err := e.LoadString("test", "ignored")
	require.NoError(t, err)
	assert.Equal(t, `(! "application: 'undefined is undefined" undefined)`, e.Write(v))
}
