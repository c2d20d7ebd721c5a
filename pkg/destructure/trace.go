package destructure

import (
	"log"

	"github.com/ruthlang/ruth/pkg/lisp"
	"github.com/ruthlang/ruth/pkg/symbol"
)

// Tracer observes every (pattern, value) pair a Binder attempts to match.
// When present is false the pattern is being matched against no value.
type Tracer interface {
	Trace(pattern, value lisp.LVal, present bool)
}

// LogTracer writes one "pattern <- value" line per match step.
type LogTracer struct {
	Logger *log.Logger
	Table  symbol.Table
}

func (t *LogTracer) Trace(pattern, value lisp.LVal, present bool) {
	if !present {
		t.Logger.Printf("%s <- #<no value>", lisp.Sprint(pattern, t.Table))
		return
	}
	t.Logger.Printf("%s <- %s", lisp.Sprint(pattern, t.Table), lisp.Sprint(value, t.Table))
}

// Option configures a Binder.
type Option func(*Binder)

// WithTracer reports each match step to tracer.
func WithTracer(tracer Tracer) Option {
	return func(b *Binder) {
		b.tracer = tracer
	}
}
