package stdlib_test

import (
	"testing"

	"github.com/ruthlang/ruth/ruthtest"
)

func TestLiterals(t *testing.T) {
	tests := ruthtest.TestSuite{
		{"self-evaluating", ruthtest.TestSequence{
			{`3`, `3`, ``},
			{`-1.5`, `-1.5`, ``},
			{`"abc"`, `"abc"`, ``},
			{`()`, `()`, ``},
			{`{"a" 1}`, `{"a" 1}`, ``},
		}},
		{"atoms", ruthtest.TestSequence{
			{`true`, `true`, ``},
			{`false`, `false`, ``},
			{`!`, `!`, ``},
			{`null`, `()`, ``},
			{`ps1`, `">>> "`, ``},
			{`ps2`, `"... "`, ``},
		}},
		{"quote", ruthtest.TestSequence{
			{`'x`, `x`, ``},
			{`'(1 2 3)`, `(1 2 3)`, ``},
			{`''x`, `(quote x)`, ``},
			{`(quote (a . b))`, `(a . b)`, ``},
			{`(quote)`, `(! "expected exactly 1 args but got 0" (1 1 0))`, ``},
		}},
	}
	ruthtest.RunTestSuite(t, tests)
}

func TestDefine(t *testing.T) {
	tests := ruthtest.TestSuite{
		{"symbols", ruthtest.TestSequence{
			{`x`, `(! "application: 'x is undefined" x)`, ``},
			{`(define x 5)`, `()`, ``},
			{`x`, `5`, ``},
			{`(define x 6)`, `()`, ``},
			{`x`, `6`, ``},
		}},
		{"procedures", ruthtest.TestSequence{
			{`(define (f x) (+ x x))`, `()`, ``},
			{`(f 2)`, `4`, ``},
			{`f`, `(lambda (x) (+ x x))`, ``},
			{`(define (g . xs) xs)`, `()`, ``},
			{`(g 1 2)`, `(1 2)`, ``},
			{`g`, `(lambda xs xs)`, ``},
		}},
		{"errors", ruthtest.TestSequence{
			{`(define 1 2)`, `(! "in argument #0, expected symbol" (0 "symbol" 1))`, ``},
			{`(define x)`, `(! "expected 2 args or more but got 1" (2 1))`, ``},
			{`(define x 1 2)`, `(! "expected exactly 2 args but got 3" (2 2 3))`, ``},
			{`(define y (car 1))`, `(! "in argument #0, expected pair" (0 "pair" 1))`, ``},
			{`y`, `(! "application: 'y is undefined" y)`, ``},
		}},
	}
	ruthtest.RunTestSuite(t, tests)
}

func TestApplication(t *testing.T) {
	tests := ruthtest.TestSuite{
		{"basics", ruthtest.TestSequence{
			{`(car (cons 1 2))`, `1`, ``},
			{`(cdr (cons 1 2))`, `2`, ``},
			{`((lambda (x) x) 5)`, `5`, ``},
			{`((lambda () (+ 1 1)))`, `2`, ``},
			{`((lambda (x) x) 1 2)`, `1`, ``},
		}},
		{"failures", ruthtest.TestSequence{
			{`(1 2)`, `(! "application: not a procedure" 1)`, ``},
			{`("f")`, `(! "application: not a procedure" "f")`, ``},
			{`(car . 1)`, `(! "application: cdr must be a proper list" 1)`, ``},
			{`((lambda (x) x))`, `(! "application: expected 1 args but only got 0" (1 false 0))`, ``},
			{`((lambda (x)) 1)`, `(! "application: had a procedure with no body expressions")`, ``},
			{`((error "bad") 1)`, `(! "bad")`, ``},
			{`(lambda (1) 1)`, "(! \"lambda: invalid parameter `1`\" 1)", ``},
			{`(lambda (a a) 1)`, "(! \"lambda: duplicate parameter `a`\" a)", ``},
		}},
		{"variadic", ruthtest.TestSequence{
			{`((lambda (a b . c) c) 1 2)`, `()`, ``},
			{`((lambda (a b . c) c) 1 2 3 4)`, `(3 4)`, ``},
			{`((lambda args args) 1 2)`, `(1 2)`, ``},
			{`((lambda* (a b c) c) 1 2 3 4)`, `(3 4)`, ``},
			{`((lambda* (a b c) c) 1 2)`, `()`, ``},
			{`((lambda* (a b c) c) 1)`, `(! "application: expected 3 or more args but only got 1" (3 true 1))`, ``},
			{`(lambda* () 1)`, `(! "lambda*: no variadic parameter" ())`, ``},
		}},
		{"defaults", ruthtest.TestSequence{
			{`(define (f a (b (+ a 1))) (list a b))`, `()`, ``},
			{`(f 1)`, `(1 2)`, ``},
			{`(f 1 5)`, `(1 5)`, ``},
			{`f`, `(lambda (a (b (+ a 1))) (list a b))`, ``},
			{`(f)`, `(! "application: expected 2 args but only got 0" (2 false 0))`, ``},
		}},
		{"closures", ruthtest.TestSequence{
			{`(define (make-adder n) (lambda (x) (+ x n)))`, `()`, ``},
			{`(define add3 (make-adder 3))`, `()`, ``},
			{`(add3 4)`, `7`, ``},
			{`(define n 100)`, `()`, ``},
			{`(add3 4)`, `7`, ``},
			{`(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))`, `()`, ``},
			{`(fact 10)`, `3628800`, ``},
		}},
	}
	ruthtest.RunTestSuite(t, tests)
}

func TestControl(t *testing.T) {
	tests := ruthtest.TestSuite{
		{"if", ruthtest.TestSequence{
			{`(if () 1 2)`, `2`, ``},
			{`(if false 1 2)`, `2`, ``},
			{`(if 0 1 2)`, `1`, ``},
			{`(if "" 1 2)`, `1`, ``},
			{`(if true 1)`, `1`, ``},
			{`(if false 1)`, `()`, ``},
			{`(if (car 1) 1 2)`, `(! "in argument #0, expected pair" (0 "pair" 1))`, ``},
			{`(if)`, `(! "expected between 2 and 3 args but got 0" (2 3 0))`, ``},
		}},
		{"begin", ruthtest.TestSequence{
			{`(begin 1 2 3)`, `3`, ``},
			{`(begin)`, `()`, ``},
			{`(begin (prn 1) 2)`, `2`, "1\n"},
		}},
		{"let", ruthtest.TestSequence{
			{`(let ((x 1) (y (+ x 1))) (list x y))`, `(1 2)`, ``},
			{`x`, `(! "application: 'x is undefined" x)`, ``},
			{`(let (((a b) (list 1 2))) (+ a b))`, `3`, ``},
			{`(let (((a b) (list 1))) a)`, `(! "assignment/no-default: lack of value with no default")`, ``},
			{`(let ((x (car 1))) x)`, `(! "in argument #0, expected pair" (0 "pair" 1))`, ``},
			{`(let ((x 1)))`, `(! "expected 2 args or more but got 1" (2 1))`, ``},
			{`(let (x) x)`, `(! "in argument #0, expected list of (pattern expr)" (0 "list of (pattern expr)" (x)))`, ``},
		}},
		{"named let", ruthtest.TestSequence{
			{`(let loop ((i 0) (acc ())) (if (= i 3) acc (loop (+ i 1) (cons i acc))))`, `(2 1 0)`, ``},
			{`(let loop ((i 0)) (if (= i 100000) i (loop (+ i 1))))`, `100000`, ``},
		}},
		{"macros", ruthtest.TestSequence{
			{`(define-macro (unless c body) (list 'if c () body))`, `()`, ``},
			{`(unless false 7)`, `7`, ``},
			{`(unless true 7)`, `()`, ``},
			{`unless`, `(macro (c body) (list (quote if) c () body))`, ``},
			{`(define m (macro (x) x))`, `()`, ``},
			{`(m (+ 1 2))`, `3`, ``},
			{`(define bad (macro () (error "no expansion")))`, `()`, ``},
			{`(bad)`, `(! "no expansion")`, ``},
		}},
	}
	ruthtest.RunTestSuite(t, tests)
}

func TestDestructure(t *testing.T) {
	tests := ruthtest.TestSuite{
		{"destructure", ruthtest.TestSequence{
			{`(destructure (a b c) '(1 2 3) (list c b a))`, `(3 2 1)`, ``},
			{`(destructure (a (default b 10)) (list 1) (list a b))`, `(1 10)`, ``},
			{`(destructure (a (default b 10)) (list 1 2) (list a b))`, `(1 2)`, ``},
			{`(destructure {"k" v} (hash-map "k" 42) v)`, `42`, ``},
			{`(destructure ("tag" x) '("tag" 9) x)`, `9`, ``},
			{`(destructure _ 5)`, `()`, ``},
			{`(destructure (a b) '(1 2 3) a)`, "(! \"assignment/invalid: cannot bind `(3)` to `()`\" (() (3)))", ``},
			{`(destructure (a a) '(1 2) a)`, "(! \"assignment/duplicate: `a` is bound more than once\" a)", ``},
			{`(destructure (a b c) '(1 2) a)`, `(! "assignment/no-default: lack of value with no default")`, ``},
		}},
	}
	ruthtest.RunTestSuite(t, tests)
}

func TestMath(t *testing.T) {
	tests := ruthtest.TestSuite{
		{"arithmetic", ruthtest.TestSequence{
			{`(+)`, `0`, ``},
			{`(*)`, `1`, ``},
			{`(+ 1 2 3)`, `6`, ``},
			{`(+ 1 1.5)`, `2.5`, ``},
			{`(- 5)`, `-5`, ``},
			{`(- 10 1 2)`, `7`, ``},
			{`(* 2 0.75)`, `1.5`, ``},
			{`(// 7 2)`, `3`, ``},
			{`(// -7 2)`, `-4`, ``},
			{`(// 7.0 2)`, `3.0`, ``},
			{`(// 1 0)`, `(! "math/div-by-zero: division by zero" 1)`, ``},
			{`(+ 1 "a")`, `(! "in argument #1, expected number" (1 "number" "a"))`, ``},
			{`(-)`, `(! "expected 1 args or more but got 0" (1 0))`, ``},
		}},
		{"comparison", ruthtest.TestSequence{
			{`(= 1 1.0)`, `true`, ``},
			{`(= 1 2)`, `false`, ``},
			{`(= '(1 2) '(1 2))`, `true`, ``},
			{`(= "a" "a" "b")`, `false`, ``},
			{`(< 1 2 3)`, `true`, ``},
			{`(< 1 3 2)`, `false`, ``},
			{`(> 2 1.5)`, `true`, ``},
			{`(> 1 1)`, `false`, ``},
		}},
		{"logic", ruthtest.TestSequence{
			{`(and true 1)`, `true`, ``},
			{`(and true ())`, `false`, ``},
			{`(or false ())`, `false`, ``},
			{`(or false 1)`, `true`, ``},
			{`(not ())`, `true`, ``},
			{`(not 0)`, `false`, ``},
			{`(xor true false)`, `true`, ``},
			{`(xor true true)`, `false`, ``},
		}},
	}
	ruthtest.RunTestSuite(t, tests)
}

func TestListsAndMaps(t *testing.T) {
	tests := ruthtest.TestSuite{
		{"lists", ruthtest.TestSequence{
			{`(list 1 2 3)`, `(1 2 3)`, ``},
			{`(list)`, `()`, ``},
			{`(cons 1 (cons 2 ()))`, `(1 2)`, ``},
			{`(length '(1 2 3))`, `3`, ``},
			{`(length ())`, `0`, ``},
			{`(length (cons 1 2))`, `(! "in argument #0, expected list or map" (0 "list or map" (1 . 2)))`, ``},
			{`(car ())`, `(! "in argument #0, expected pair" (0 "pair" ()))`, ``},
		}},
		{"maps", ruthtest.TestSequence{
			{`(hash-map "a" 1)`, `{"a" 1}`, ``},
			{`(get (hash-map "a" 1 'b 2) 'b)`, `2`, ``},
			{`(get (hash-map) 'x 7)`, `7`, ``},
			{`(get (hash-map) 'x)`, `()`, ``},
			{`(length {1 2 3 4})`, `2`, ``},
			{`(hash-map 1)`, `(! "expected an even number of args but got 1" 1)`, ``},
			{`(get 1 2)`, `(! "in argument #0, expected map" (0 "map" 1))`, ``},
		}},
	}
	ruthtest.RunTestSuite(t, tests)
}

func TestStrings(t *testing.T) {
	tests := ruthtest.TestSuite{
		{"strings", ruthtest.TestSequence{
			{`(string "a" 1 'b "c")`, `"a1bc"`, ``},
			{`(string)`, `""`, ``},
			{`(string-len "hello")`, `5`, ``},
			{`(string-len 5)`, `(! "in argument #0, expected string" (0 "string" 5))`, ``},
			{`(string-slice "hello" 1 3)`, `"el"`, ``},
			{`(string-slice "hello" false 2)`, `"he"`, ``},
			{`(string-slice "hello" 2)`, `"llo"`, ``},
			{`(string-slice "hello" 0 5)`, `"hello"`, ``},
			{`(string-slice "hello" 3 1)`, `(! "string/slice-out-of-order: the start 3 was after the end 1" (3 1))`, ``},
			{`(string-slice "hello" 0 9)`, `(! "string/slice-too-far: 9 was out of bounds (string had len 5)" (9 5))`, ``},
			{`(string-slice "hello" -1 2)`, `(! "in argument #1, expected positive int or falsy" (1 "positive int or falsy" -1))`, ``},
			{`(string-slice "héllo" 0 2)`, `(! "string/slice-boundary: 2 is not on a char boundary")`, ``},
			{`(string-find "l" "hello")`, `2`, ``},
			{`(string-find "z" "hello")`, `false`, ``},
		}},
		{"prn", ruthtest.TestSequence{
			{`(prn "hi")`, `"hi"`, "hi\n"},
			{`(prn '(1 "a") false)`, `(1 "a")`, `(1 a)`},
			{`(prn (lambda (x) x))`, `(lambda (x) x)`, "<procedure>\n"},
			{`(prn car)`, `<native func car>`, "<native func car>\n"},
			{`(prn if)`, `<special form if>`, "<special form if>\n"},
		}},
	}
	ruthtest.RunTestSuite(t, tests)
}

func TestErrors(t *testing.T) {
	tests := ruthtest.TestSuite{
		{"error values", ruthtest.TestSequence{
			{`(error "boom")`, `(! "boom")`, ``},
			{`(error "boom" 42)`, `(! "boom" 42)`, ``},
			{`(error 1)`, `(! "in argument #0, expected string" (0 "string" 1))`, ``},
			{`(error? (error "x"))`, `true`, ``},
			{`(error? 1)`, `false`, ``},
			{`(error? (car 1))`, `true`, ``},
			{`(error? '(! "handmade"))`, `true`, ``},
		}},
		{"apply and eval", ruthtest.TestSequence{
			{`(apply + '(1 2 3))`, `6`, ``},
			{`(apply (lambda (a b) (- a b)) (list 5 3))`, `2`, ``},
			{`(apply 1 ())`, `(! "in argument #0, expected procedure" (0 "procedure" 1))`, ``},
			{`(apply + 1)`, `(! "in argument #1, expected list" (1 "list" 1))`, ``},
			{`(eval '(+ 1 2))`, `3`, ``},
			{`(eval (list 'car (list 'quote '(9 8))))`, `9`, ``},
		}},
	}
	ruthtest.RunTestSuite(t, tests)
}
