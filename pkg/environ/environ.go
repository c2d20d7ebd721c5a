// Package environ implements the chain of lexical scopes used by the
// evaluator.  Environments are shared by pointer between callers, closures
// and the values that capture them.
package environ

import (
	"github.com/ruthlang/ruth/pkg/lisp"
	"github.com/ruthlang/ruth/pkg/symbol"
)

// Environ is an lexical environment.  Environ contains local symbol bindings
// and a parent environment.  Environ is in the scope of its parent's bindings.
type Environ struct {
	parent   *Environ
	root     *Environ
	bindings Bindings
}

// New returns a new environment.  If parent is nil a root Environ will be
// returned.  If bindings is nil the environment starts empty.
func New(parent *Environ, bindings Bindings) *Environ {
	if bindings == nil {
		bindings = NewBindings(0)
	}
	env := &Environ{
		parent:   parent,
		bindings: bindings,
	}
	if parent != nil {
		env.root = parent.Root()
	}
	return env
}

// Parent returns the enclosing scope of env, or nil if env is a root.
func (env *Environ) Parent() *Environ {
	return env.parent
}

// Root returns the outermost ancestor of env.
func (env *Environ) Root() *Environ {
	if env.root != nil {
		return env.root
	}
	return env
}

// Len returns the number of local bindings in env.
func (env *Environ) Len() int {
	return env.bindings.Len()
}

// Get returns the value bound to id in the nearest scope, starting at env and
// moving outward.
func (env *Environ) Get(id symbol.ID) (lisp.LVal, bool) {
	for ; env != nil; env = env.parent {
		v, ok := env.bindings.Get(id)
		if ok {
			return v, true
		}
	}
	return lisp.Nil(), false
}

// Put binds id to v in env.  Ancestor scopes are never modified, so Put
// shadows any outer binding of id.
func (env *Environ) Put(id symbol.ID, v lisp.LVal) {
	env.bindings.Put(id, v)
}

// Each iterates over the local bindings of env in binding order.
func (env *Environ) Each(fn func(symbol.ID, lisp.LVal)) {
	env.bindings.Each(fn)
}
