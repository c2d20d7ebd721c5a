// Package stdlib installs the standard special forms, native procedures and
// constants into the root environment of an eval.Engine.
package stdlib

import (
	"github.com/ruthlang/ruth/parser"
	"github.com/ruthlang/ruth/pkg/eval"
	"github.com/ruthlang/ruth/pkg/lisp"
)

type specialFormDef struct {
	name string
	fn   eval.SpecialFormFunc
}

type nativeDef struct {
	name string
	fn   eval.NativeFunc
}

var langSpecialForms = []specialFormDef{
	{"quote", specialQuote},
	{"define", specialDefine},
	{"define-macro", specialDefineMacro},
	{"lambda", specialLambda},
	{"lambda*", specialLambdaVariadic},
	{"macro", specialMacro},
	{"if", specialIf},
	{"begin", specialBegin},
	{"let", specialLet},
	{"destructure", specialDestructure},
}

var langNatives = []nativeDef{
	// math
	{"+", builtinAdd},
	{"-", builtinSub},
	{"*", builtinMul},
	{"//", builtinDivFloor},
	{"=", builtinNumEqual},
	{"<", builtinLess},
	{">", builtinGreater},
	// logic
	{"and", builtinAnd},
	{"or", builtinOr},
	{"not", builtinNot},
	{"xor", builtinXor},
	// pairs, lists and maps
	{"cons", builtinCons},
	{"car", builtinCAR},
	{"cdr", builtinCDR},
	{"list", builtinList},
	{"length", builtinLength},
	{"hash-map", builtinHashMap},
	{"get", builtinGet},
	// strings
	{"string", builtinString},
	{"string-len", builtinStringLen},
	{"string-slice", builtinStringSlice},
	{"string-find", builtinStringFind},
	{"prn", builtinPrn},
	// errors and evaluation
	{"error", builtinError},
	{"error?", builtinErrorP},
	{"apply", builtinApply},
	{"eval", builtinEval},
}

// Install defines the standard library in the root environment of e.  If e
// has no Reader, Install gives it one that interns symbols in e.Symbols.
func Install(e *eval.Engine) error {
	for _, def := range langSpecialForms {
		e.DefineSpecialForm(def.name, def.fn)
	}
	for _, def := range langNatives {
		e.DefineNative(def.name, def.fn)
	}
	// atoms evaluate to themselves
	for _, atom := range []string{"true", "false", "!"} {
		e.Define(atom, e.Symbol(atom))
	}
	e.Define("null", lisp.Nil())
	e.Define("ps1", lisp.String(">>> "))
	e.Define("ps2", lisp.String("... "))
	if e.Reader == nil {
		e.Reader = parser.NewReader(e.Symbols)
	}
	return nil
}

// NewEngine returns an engine with the standard library installed.
func NewEngine(opts ...eval.Option) (*eval.Engine, error) {
	opts = append(opts[:len(opts):len(opts)], eval.WithLibrary(Install))
	return eval.New(opts...)
}
