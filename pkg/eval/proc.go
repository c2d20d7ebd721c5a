package eval

import (
	"github.com/ruthlang/ruth/pkg/environ"
	"github.com/ruthlang/ruth/pkg/lisp"
	"github.com/ruthlang/ruth/pkg/symbol"
)

// MakeProc returns a procedure closed over env.  A parameter is either a
// symbol or a list (name default-expr).  An improper parameter list, or a
// lone symbol, declares a variadic procedure whose final parameter is the
// tail symbol.  If variadic is true the last element of a proper parameter
// list is the variadic parameter.  If lambda is false the result is a macro.
// MakeProc returns an error value if params is malformed.
func (e *Engine) MakeProc(env *environ.Environ, params lisp.LVal, body []lisp.LVal, variadic, lambda bool) lisp.LVal {
	elems, tail := lisp.SliceList(params)
	p := &Proc{
		Params: make([]Param, 0, len(elems)+1),
		Body:   body,
		Env:    env,
		Lambda: lambda,
	}
	seen := make(map[symbol.ID]bool, len(elems)+1)
	add := func(prm Param, src lisp.LVal) lisp.LVal {
		if seen[prm.Name] {
			return e.ErrorPayloadf(src, "lambda: duplicate parameter `%s`", e.Write(src))
		}
		seen[prm.Name] = true
		p.Params = append(p.Params, prm)
		return lisp.Nil()
	}
	for _, v := range elems {
		prm, ok := e.param(v)
		if !ok {
			return e.ErrorPayloadf(v, "lambda: invalid parameter `%s`", e.Write(v))
		}
		if errv := add(prm, v); e.IsError(errv) {
			return errv
		}
	}
	switch {
	case lisp.IsNil(tail):
		if variadic {
			if len(p.Params) == 0 {
				return e.ErrorPayload(params, "lambda*: no variadic parameter")
			}
			if p.Params[len(p.Params)-1].HasDefault {
				return e.ErrorPayload(params, "lambda*: variadic parameter cannot have a default")
			}
			p.Variadic = true
		}
	case tail.Type() == lisp.LSymbol:
		if variadic {
			return e.ErrorPayload(params, "lambda*: parameters must be a proper list")
		}
		id, _ := lisp.GetSymbol(tail)
		if errv := add(Param{Name: id}, tail); e.IsError(errv) {
			return errv
		}
		p.Variadic = true
	default:
		return e.ErrorPayloadf(tail, "lambda: invalid parameter `%s`", e.Write(tail))
	}
	return NewProc(p)
}

func (e *Engine) param(v lisp.LVal) (Param, bool) {
	if id, ok := lisp.GetSymbol(v); ok {
		return Param{Name: id}, true
	}
	elems, tail := lisp.SliceList(v)
	if len(elems) != 2 || !lisp.IsNil(tail) {
		return Param{}, false
	}
	id, ok := lisp.GetSymbol(elems[0])
	if !ok {
		return Param{}, false
	}
	return Param{Name: id, Default: elems[1], HasDefault: true}, true
}
