// Package destructure matches patterns against values and produces the
// variable bindings implied by the match.  A Binder has no side effects
// beyond an optional Tracer.
//
// Patterns are ordinary values.  The wildcard symbol _ matches anything, a
// symbol captures the value it is matched against, pairs and maps match
// values of the same shape element by element, and any other pattern must be
// Equal to its value.  The form
//
//	(default SPEC FALLBACK . REST)
//
// matches SPEC against the value when possible and otherwise matches SPEC
// against the literal FALLBACK and REST against the value.
package destructure

import (
	"fmt"

	"github.com/ruthlang/ruth/pkg/lisp"
	"github.com/ruthlang/ruth/pkg/symbol"
)

// Error kinds reported by Bind.
const (
	KindNoDefault = "assignment/no-default"
	KindInvalid   = "assignment/invalid"
	KindDuplicate = "assignment/duplicate"
)

// Bindings maps pattern variables to the values they matched.
type Bindings map[symbol.ID]lisp.LVal

// Error is a failed match.
type Error struct {
	Kind    string
	Message string
	// Payload is diagnostic data for the failure.  HasPayload is false when
	// there is none.
	Payload    lisp.LVal
	HasPayload bool
}

func (err *Error) Error() string {
	return err.Kind + ": " + err.Message
}

// Binder matches patterns against values.
type Binder struct {
	table    symbol.Table
	wildcard symbol.ID
	dflt     symbol.ID
	tracer   Tracer
}

// New returns a Binder that interns its reserved symbols in table and uses
// it to print values in error messages.
func New(table symbol.Table, opts ...Option) *Binder {
	ids := symbol.InternAll(table, "_", "default")
	b := &Binder{
		table:    table,
		wildcard: ids[0],
		dflt:     ids[1],
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bind matches pattern against value.  If the match fails Bind returns a
// non-nil *Error and no bindings.
func (b *Binder) Bind(pattern, value lisp.LVal) (Bindings, error) {
	out := make(Bindings)
	if err := b.match(out, pattern, value, true); err != nil {
		return nil, err
	}
	return out, nil
}

// BindAbsent matches pattern as though there were no value to match against.
// Only patterns that need no value, such as _ or a default form, succeed.
func (b *Binder) BindAbsent(pattern lisp.LVal) (Bindings, error) {
	out := make(Bindings)
	if err := b.match(out, pattern, lisp.Nil(), false); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Binder) match(out Bindings, pattern, value lisp.LVal, present bool) *Error {
	if b.tracer != nil {
		b.tracer.Trace(pattern, value, present)
	}
	if lisp.IsSymbol(pattern, b.wildcard) {
		return nil
	}
	if spec, fallback, rest, ok := b.defaultForm(pattern); ok {
		return b.matchDefault(out, spec, fallback, rest, value, present)
	}
	switch pattern.Type() {
	case lisp.LSymbol:
		if !present {
			return noDefault()
		}
		id, _ := lisp.GetSymbol(pattern)
		return b.put(out, id, value)
	case lisp.LCons:
		cons := lisp.MustCons(pattern)
		if present && value.Type() == lisp.LCons {
			vcons := lisp.MustCons(value)
			if err := b.match(out, cons.CAR(), vcons.CAR(), true); err != nil {
				return err
			}
			return b.match(out, cons.CDR(), vcons.CDR(), true)
		}
		if !present || lisp.IsNil(value) {
			// the value ran out before the pattern did
			if err := b.match(out, cons.CAR(), lisp.Nil(), false); err != nil {
				return err
			}
			return b.match(out, cons.CDR(), lisp.Nil(), false)
		}
	case lisp.LMap:
		if present && value.Type() == lisp.LMap {
			return b.matchMap(out, pattern, value)
		}
	case lisp.LNil:
		if !present {
			return nil
		}
	}
	if !present {
		return noDefault()
	}
	if lisp.Equal(pattern, value) {
		return nil
	}
	return &Error{
		Kind: KindInvalid,
		Message: fmt.Sprintf("cannot bind `%s` to `%s`",
			lisp.Sprint(value, b.table),
			lisp.Sprint(pattern, b.table)),
		Payload:    lisp.Expr(pattern, value),
		HasPayload: true,
	}
}

func (b *Binder) matchMap(out Bindings, pattern, value lisp.LVal) *Error {
	pmap, _ := lisp.GetMap(pattern)
	vmap, _ := lisp.GetMap(value)
	var err *Error
	pmap.Each(func(k, sub lisp.LVal) {
		if err != nil {
			return
		}
		v, ok := vmap.Get(k)
		err = b.match(out, sub, v, ok)
	})
	return err
}

// defaultForm decomposes (default SPEC FALLBACK . REST).
func (b *Binder) defaultForm(pattern lisp.LVal) (spec, fallback, rest lisp.LVal, ok bool) {
	elems, tail := lisp.SliceList(pattern)
	if len(elems) < 3 || !lisp.IsSymbol(elems[0], b.dflt) {
		return lisp.Nil(), lisp.Nil(), lisp.Nil(), false
	}
	return elems[1], elems[2], lisp.ExprTail(tail, elems[3:]...), true
}

func (b *Binder) matchDefault(out Bindings, spec, fallback, rest, value lisp.LVal, present bool) *Error {
	if present {
		attempt := make(Bindings)
		if b.match(attempt, spec, value, true) == nil {
			return b.merge(out, attempt)
		}
	}
	defaulted := make(Bindings)
	if err := b.match(defaulted, spec, fallback, true); err != nil {
		return err
	}
	if err := b.match(defaulted, rest, value, present); err != nil {
		return err
	}
	return b.merge(out, defaulted)
}

func (b *Binder) merge(out, in Bindings) *Error {
	for id, v := range in {
		if err := b.put(out, id, v); err != nil {
			return err
		}
	}
	return nil
}

func (b *Binder) put(out Bindings, id symbol.ID, v lisp.LVal) *Error {
	if _, ok := out[id]; ok {
		return &Error{
			Kind:       KindDuplicate,
			Message:    fmt.Sprintf("`%s` is bound more than once", symbol.String(id, b.table)),
			Payload:    lisp.Symbol(id),
			HasPayload: true,
		}
	}
	out[id] = v
	return nil
}

func noDefault() *Error {
	return &Error{
		Kind:    KindNoDefault,
		Message: "lack of value with no default",
	}
}
