package stdlib

import (
	"math"

	"github.com/ruthlang/ruth/pkg/eval"
	"github.com/ruthlang/ruth/pkg/lisp"
)

// number is an int or float operand.  Arithmetic on two ints stays integral;
// any float operand makes the result a float.
type number struct {
	i       int
	f       float64
	isFloat bool
}

func toNumber(v lisp.LVal) (number, bool) {
	if x, ok := lisp.GetInt(v); ok {
		return number{i: x}, true
	}
	if x, ok := lisp.GetFloat(v); ok {
		return number{f: x, isFloat: true}, true
	}
	return number{}, false
}

func (n number) float() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func (n number) lval() lisp.LVal {
	if n.isFloat {
		return lisp.Float(n.f)
	}
	return lisp.Int(n.i)
}

func numbers(e *eval.Engine, args []lisp.LVal) ([]number, lisp.LVal) {
	nums := make([]number, len(args))
	for i, v := range args {
		n, ok := toNumber(v)
		if !ok {
			return nil, badArgType(e, v, i, "number")
		}
		nums[i] = n
	}
	return nums, lisp.Nil()
}

type binop struct {
	i func(a, b int) int
	f func(a, b float64) float64
}

var (
	opAdd = binop{func(a, b int) int { return a + b }, func(a, b float64) float64 { return a + b }}
	opSub = binop{func(a, b int) int { return a - b }, func(a, b float64) float64 { return a - b }}
	opMul = binop{func(a, b int) int { return a * b }, func(a, b float64) float64 { return a * b }}
)

func fold(z number, nums []number, op binop) lisp.LVal {
	acc := z
	for _, n := range nums {
		if acc.isFloat || n.isFloat {
			acc = number{f: op.f(acc.float(), n.float()), isFloat: true}
		} else {
			acc = number{i: op.i(acc.i, n.i)}
		}
	}
	return acc.lval()
}

func builtinAdd(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	nums, err := numbers(e, args)
	if !lisp.IsNil(err) {
		return err
	}
	return fold(number{}, nums, opAdd)
}

func builtinMul(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	nums, err := numbers(e, args)
	if !lisp.IsNil(err) {
		return err
	}
	return fold(number{i: 1}, nums, opMul)
}

// builtinSub negates a single argument and otherwise subtracts the rest of
// the arguments from the first.
func builtinSub(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkMinArgc(e, args, 1); !lisp.IsNil(err) {
		return err
	}
	nums, err := numbers(e, args)
	if !lisp.IsNil(err) {
		return err
	}
	if len(nums) == 1 {
		return fold(number{}, nums, opSub)
	}
	return fold(nums[0], nums[1:], opSub)
}

// builtinDivFloor divides the first argument by the rest, rounding toward
// negative infinity.
func builtinDivFloor(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkMinArgc(e, args, 2); !lisp.IsNil(err) {
		return err
	}
	nums, err := numbers(e, args)
	if !lisp.IsNil(err) {
		return err
	}
	acc := nums[0]
	for i, n := range nums[1:] {
		if n.float() == 0 {
			return kindError(e, "math/div-by-zero", lisp.Int(i+1), "division by zero")
		}
		if acc.isFloat || n.isFloat {
			acc = number{f: math.Floor(acc.float() / n.float()), isFloat: true}
			continue
		}
		q := acc.i / n.i
		if (acc.i%n.i != 0) && ((acc.i < 0) != (n.i < 0)) {
			q--
		}
		acc = number{i: q}
	}
	return acc.lval()
}

// builtinNumEqual compares numbers by value, so (= 1 1.0) is true.  Other
// values are compared structurally.
func builtinNumEqual(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkMinArgc(e, args, 1); !lisp.IsNil(err) {
		return err
	}
	for _, v := range args[1:] {
		a, aok := toNumber(args[0])
		b, bok := toNumber(v)
		if aok && bok {
			if a.float() != b.float() || (!a.isFloat && !b.isFloat && a.i != b.i) {
				return e.Bool(false)
			}
			continue
		}
		if !lisp.Equal(args[0], v) {
			return e.Bool(false)
		}
	}
	return e.Bool(true)
}

func builtinLess(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	return compareChain(e, args, func(a, b number) bool {
		if !a.isFloat && !b.isFloat {
			return a.i < b.i
		}
		return a.float() < b.float()
	})
}

func builtinGreater(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	return compareChain(e, args, func(a, b number) bool {
		if !a.isFloat && !b.isFloat {
			return a.i > b.i
		}
		return a.float() > b.float()
	})
}

func compareChain(e *eval.Engine, args []lisp.LVal, ok func(a, b number) bool) lisp.LVal {
	if err := checkMinArgc(e, args, 1); !lisp.IsNil(err) {
		return err
	}
	nums, err := numbers(e, args)
	if !lisp.IsNil(err) {
		return err
	}
	for i := 1; i < len(nums); i++ {
		if !ok(nums[i-1], nums[i]) {
			return e.Bool(false)
		}
	}
	return e.Bool(true)
}

func builtinAnd(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	for _, v := range args {
		if !e.IsTrue(v) {
			return e.Bool(false)
		}
	}
	return e.Bool(true)
}

func builtinOr(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	for _, v := range args {
		if e.IsTrue(v) {
			return e.Bool(true)
		}
	}
	return e.Bool(false)
}

func builtinNot(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	if err := checkArgc(e, args, 1, 1); !lisp.IsNil(err) {
		return err
	}
	return e.Bool(!e.IsTrue(args[0]))
}

// builtinXor is true when an odd number of its arguments are true.
func builtinXor(e *eval.Engine, args []lisp.LVal) lisp.LVal {
	odd := false
	for _, v := range args {
		if e.IsTrue(v) {
			odd = !odd
		}
	}
	return e.Bool(odd)
}
