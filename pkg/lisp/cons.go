package lisp

// ConsData is the container that backs LCons values.
type ConsData struct {
	CAR LVal
	CDR LVal
}

func makeCons(data *ConsData) LVal {
	return LVal{
		LTypeData: Type(LCons),
		Native:    data,
	}
}

// Cons returns a new LCons value from head and tail.  If tail is a list then
// Cons returns a list as well.
// 	(cons head tail)
func Cons(head, tail LVal) LVal {
	return makeCons(&ConsData{
		CAR: head,
		CDR: tail,
	})
}

// GetCAR returns the head of pair v.
// GetCAR returns false if v is not LCons.
func GetCAR(v LVal) (LVal, bool) {
	if v.Type() != LCons {
		return Nil(), false
	}
	return v.Native.(*ConsData).CAR, true
}

// GetCDR returns the tail of pair v.
// GetCDR returns false if v is not LCons.
func GetCDR(v LVal) (LVal, bool) {
	if v.Type() != LCons {
		return Nil(), false
	}
	return v.Native.(*ConsData).CDR, true
}

// Expr returns a proper list containing the elements of v.  The cells of the
// returned list are allocated together, so the list cannot be reclaimed until
// all references to it and its cdrs have been released.
func Expr(v ...LVal) LVal {
	return ExprTail(Nil(), v...)
}

// ExprTail is like Expr but terminates the list with tail instead of LNil.
// If tail is not LNil or LCons the result is an improper list.
func ExprTail(tail LVal, v ...LVal) LVal {
	if len(v) == 0 {
		return tail
	}
	cons := make([]ConsData, len(v))
	lis := tail
	for i := len(v) - 1; i >= 0; i-- {
		cons[i].CAR = v[i]
		cons[i].CDR = lis
		lis = makeCons(&cons[i])
	}
	return lis
}

// SliceList collects the leading elements of the pair chain v.  The value
// terminating the chain is returned as tail.  The chain is a proper list if
// and only if tail is LNil.  SliceList(Nil()) returns no elements and LNil.
func SliceList(v LVal) (elems []LVal, tail LVal) {
	for v.Type() == LCons {
		data := v.Native.(*ConsData)
		elems = append(elems, data.CAR)
		v = data.CDR
	}
	return elems, v
}

// ListLen performs an efficient iteration of list v to compute its length.
// ListLen returns false if v is not a proper list.
func ListLen(v LVal) (int, bool) {
	n := 0
	for v.Type() == LCons {
		v = v.Native.(*ConsData).CDR
		n++
	}
	return n, IsNil(v)
}

// ConsVal wraps LCons values and provides convenience methods.
type ConsVal struct {
	v    LVal
	data *ConsData
}

func consVal(v LVal) ConsVal {
	return ConsVal{v: v, data: v.Native.(*ConsData)}
}

// MustCons wraps v as a ConsVal.
// MustCons panics if v.Type() is not LCons.
func MustCons(v LVal) ConsVal {
	v.mustBeType(LCons)
	return consVal(v)
}

// CAR returns the head of list v.
func (v ConsVal) CAR() LVal {
	return v.data.CAR
}

// CDR returns the tail of list v.
func (v ConsVal) CDR() LVal {
	return v.data.CDR
}
