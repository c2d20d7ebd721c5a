package lisp

import "github.com/ruthlang/ruth/pkg/symbol"

// MakeError returns an error value, the list (marker msg).  Error values are
// ordinary data; callers detect them with IsErrorValue.
func MakeError(marker symbol.ID, msg string) LVal {
	return Expr(Symbol(marker), String(msg))
}

// MakeErrorPayload returns the error value (marker msg payload), where payload
// carries diagnostic data about the failure.
func MakeErrorPayload(marker symbol.ID, msg string, payload LVal) LVal {
	return Expr(Symbol(marker), String(msg), payload)
}

// IsErrorValue returns true if v is a pair whose first element is the marker
// symbol.
func IsErrorValue(v LVal, marker symbol.ID) bool {
	car, ok := GetCAR(v)
	return ok && IsSymbol(car, marker)
}

// ErrorData is the decomposed form of an error value.
type ErrorData struct {
	// Message is the second element of the error value.  It is normally an
	// LString but user code may construct error values with any message.
	Message LVal
	// Payload is the optional third element.
	Payload    LVal
	HasPayload bool
}

// GetErrorValue decomposes the error value v.  GetErrorValue returns false if
// IsErrorValue(v, marker) is false.
func GetErrorValue(v LVal, marker symbol.ID) (ErrorData, bool) {
	if !IsErrorValue(v, marker) {
		return ErrorData{}, false
	}
	var data ErrorData
	rest, _ := GetCDR(v)
	data.Message, _ = GetCAR(rest)
	rest, _ = GetCDR(rest)
	data.Payload, data.HasPayload = GetCAR(rest)
	return data, true
}
