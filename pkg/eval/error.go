package eval

import (
	"fmt"

	"github.com/ruthlang/ruth/pkg/lisp"
)

// Error returns the error value (! msg).
func (e *Engine) Error(msg string) lisp.LVal {
	return lisp.MakeError(e.marker, msg)
}

// Errorf returns an error value with a formatted message.
func (e *Engine) Errorf(format string, v ...interface{}) lisp.LVal {
	return e.Error(fmt.Sprintf(format, v...))
}

// ErrorPayload returns the error value (! msg payload).
func (e *Engine) ErrorPayload(payload lisp.LVal, msg string) lisp.LVal {
	return lisp.MakeErrorPayload(e.marker, msg, payload)
}

// ErrorPayloadf returns an error value with a payload and a formatted
// message.
func (e *Engine) ErrorPayloadf(payload lisp.LVal, format string, v ...interface{}) lisp.LVal {
	return e.ErrorPayload(payload, fmt.Sprintf(format, v...))
}

// IsError returns true if v is an error value.
func (e *Engine) IsError(v lisp.LVal) bool {
	return lisp.IsErrorValue(v, e.marker)
}

// LispError is an error value converted for Go callers.
type LispError struct {
	Message    string
	Payload    lisp.LVal
	HasPayload bool
	// Value is the original error value.
	Value lisp.LVal
}

func (err *LispError) Error() string {
	return err.Message
}

// GoError returns a *LispError describing v if v is an error value.
// Otherwise GoError returns nil.
func (e *Engine) GoError(v lisp.LVal) error {
	data, ok := lisp.GetErrorValue(v, e.marker)
	if !ok {
		return nil
	}
	return &LispError{
		Message:    e.Print(data.Message),
		Payload:    data.Payload,
		HasPayload: data.HasPayload,
		Value:      v,
	}
}
