// Package lisp defines LVal, the node type of the value graph shared by the
// reader, the evaluator and native procedures.  Values are immutable once
// constructed.  They reference each other through ordinary Go pointers and are
// reclaimed by the Go collector, which is safe for cyclic graphs such as a
// closure whose environment binds the closure itself.
package lisp

import (
	"fmt"
	"math"

	"github.com/ruthlang/ruth/pkg/symbol"
)

func panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

// LTypeData holds the type tag of an LVal.
type LTypeData uint32

// Type returns the LTypeData for t.
func Type(t LType) LTypeData {
	return LTypeData(t)
}

// Type returns the LType of t.
func (t LTypeData) Type() LType {
	return LType(t & LTypeMask)
}

func (t LTypeData) mustBeType(t2 LType) {
	if t.Type() != t2 {
		panicf("value is not type %v: %v", t2, t.Type())
	}
}

type LType uint8

const LTypeMax = 0xff
const LTypeMask = LTypeMax

const (
	// LNil is the absense of a value but also acts as an empty list.
	LNil LType = iota
	// LSymbol is an interned name.
	// Schema:
	// 	Data: symbol.ID value
	LSymbol
	// LString is a go string value
	// Schema:
	// 	Native: string value
	LString
	// LInt is a go int value
	// Schema:
	// 	Data: int value
	LInt
	// LFloat is a go float64 value
	// Schema:
	// 	Data: math.Float64bits value
	LFloat
	// LCons is a pair.  Chains of pairs terminated by LNil form lists.
	// Schema:
	// 	Native: *ConsData
	LCons
	// LMap is an associative structure keyed by arbitrary values.
	// Schema:
	// 	Native: *MapData
	LMap
	// LSpecialForm is a callable that receives unevaluated operands.
	// Schema:
	// 	Native: callable defined by the evaluator
	LSpecialForm
	// LNativeProc is a callable that receives evaluated operands.
	// Schema:
	// 	Native: callable defined by the evaluator
	LNativeProc
	// LProc is a closure or macro.
	// Schema:
	// 	Native: callable defined by the evaluator
	LProc
	ltypeInvalid
)

var typeNames = []string{
	LNil:         "nil",
	LSymbol:      "symbol",
	LString:      "string",
	LInt:         "int",
	LFloat:       "float",
	LCons:        "pair",
	LMap:         "map",
	LSpecialForm: "special-form",
	LNativeProc:  "native-procedure",
	LProc:        "procedure",
}

func (t LType) String() string {
	if t >= ltypeInvalid {
		return fmt.Sprintf("LType(%d)", uint8(t))
	}
	return typeNames[t]
}

// LVal is a lisp value.  The zero LVal is a valid LNil value.
type LVal struct {
	LTypeData
	Data   uint64
	Native interface{}
}

// Nil returns an LNil value
func Nil() LVal {
	return LVal{}
}

// IsNil return true if v is LNil
func IsNil(v LVal) bool {
	return v.Type() == LNil
}

// Float returns an LFloat value
func Float(x float64) LVal {
	return LVal{
		LTypeData: Type(LFloat),
		Data:      math.Float64bits(x),
	}
}

// GetFloat returns the float64 value from v.
// GetFloat returns false if v is not LFloat.
func GetFloat(v LVal) (float64, bool) {
	if v.Type() != LFloat {
		return 0, false
	}
	return math.Float64frombits(v.Data), true
}

// Int returns an LInt value
func Int(x int) LVal {
	return LVal{
		LTypeData: Type(LInt),
		Data:      uint64(x),
	}
}

// GetInt returns the int value from v.
// GetInt returns false if v is not LInt.
func GetInt(v LVal) (int, bool) {
	if v.Type() != LInt {
		return 0, false
	}
	return int(v.Data), true
}

// Symbol returns an LSymbol value
func Symbol(id symbol.ID) LVal {
	return LVal{
		LTypeData: Type(LSymbol),
		Data:      uint64(id),
	}
}

// GetSymbol extracts the symbol.ID from v.  GetSymbol returns false if v is
// not a LSymbol.
func GetSymbol(v LVal) (symbol.ID, bool) {
	if v.Type() != LSymbol {
		return 0, false
	}
	return symbol.ID(v.Data), true
}

// IsSymbol returns true if v is the symbol id.
func IsSymbol(v LVal, id symbol.ID) bool {
	return v.Type() == LSymbol && symbol.ID(v.Data) == id
}

// String returns an LString value
func String(str string) LVal {
	return LVal{
		LTypeData: Type(LString),
		Native:    str,
	}
}

// GetString extracts string data from v.  GetString returns false if v is not
// LString.
func GetString(v LVal) (string, bool) {
	if v.Type() != LString {
		return "", false
	}
	return v.Native.(string), true
}

// Callable wraps fn, a callable implemented outside this package, as an LVal
// of type t.  Callable panics if t is not one of LSpecialForm, LNativeProc or
// LProc, or if fn is nil.  Callables compare equal only to themselves so fn
// should be a pointer.
func Callable(t LType, fn interface{}) LVal {
	switch t {
	case LSpecialForm, LNativeProc, LProc:
	default:
		panicf("not a callable type: %v", t)
	}
	if fn == nil {
		panic("nil callable")
	}
	return LVal{
		LTypeData: Type(t),
		Native:    fn,
	}
}

// IsCallable returns true if v may appear as the operator of an application.
func IsCallable(v LVal) bool {
	switch v.Type() {
	case LSpecialForm, LNativeProc, LProc:
		return true
	default:
		return false
	}
}

// Equal returns true if v1 is structurally identical to v2.  Pairs and maps
// are compared element by element, callables by identity.  An LInt is never
// equal to an LFloat.
func Equal(v1 LVal, v2 LVal) bool {
	for {
		if v1.Type() != v2.Type() {
			return false
		}
		switch v1.Type() {
		case LNil:
			return true
		case LSymbol, LInt:
			return v1.Data == v2.Data
		case LFloat:
			x1, _ := GetFloat(v1)
			x2, _ := GetFloat(v2)
			return x1 == x2
		case LString:
			return v1.Native.(string) == v2.Native.(string)
		case LCons:
			c1 := v1.Native.(*ConsData)
			c2 := v2.Native.(*ConsData)
			if c1 == c2 {
				return true
			}
			if !Equal(c1.CAR, c2.CAR) {
				return false
			}
			// iterate down the spine instead of recursing so long lists
			// don't consume stack.
			v1, v2 = c1.CDR, c2.CDR
		case LMap:
			return v1.Native.(*MapData).equal(v2.Native.(*MapData))
		case LSpecialForm, LNativeProc, LProc:
			return v1.Native == v2.Native
		default:
			return false
		}
	}
}
