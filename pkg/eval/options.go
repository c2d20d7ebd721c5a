package eval

import (
	"fmt"
	"io"
	"log"

	"github.com/ruthlang/ruth/pkg/destructure"
	"github.com/ruthlang/ruth/pkg/symbol"
)

// Option is a function that configures a new Engine.
type Option func(*Engine) error

// Library installs definitions into the root environment of an engine.
type Library func(*Engine) error

// WithSymbols makes the engine intern symbols in table instead of a new
// private table.
func WithSymbols(table symbol.Table) Option {
	return func(e *Engine) error {
		if table == nil {
			return fmt.Errorf("nil symbol table")
		}
		e.Symbols = table
		return nil
	}
}

// WithStdout redirects program output to w instead of the default os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(e *Engine) error {
		if w == nil {
			return fmt.Errorf("nil stdout")
		}
		e.Stdout = w
		return nil
	}
}

// WithStderr redirects an engine's diagnostic output to w instead of the
// default os.Stderr.  WithStderr has no effect on a logger configured with
// WithLogger.
func WithStderr(w io.Writer) Option {
	return func(e *Engine) error {
		if w == nil {
			return fmt.Errorf("nil stderr")
		}
		e.Stderr = w
		return nil
	}
}

// WithLogger makes the engine log diagnostics to logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			return fmt.Errorf("nil logger")
		}
		e.Logger = logger
		return nil
	}
}

// WithReader makes the engine use r to parse source streams.  There is no
// default Reader for an engine.
func WithReader(r Reader) Option {
	return func(e *Engine) error {
		e.Reader = r
		return nil
	}
}

// WithTracer reports every destructuring step to tracer.
func WithTracer(tracer destructure.Tracer) Option {
	return func(e *Engine) error {
		e.tracer = tracer
		return nil
	}
}

// WithTraceLog logs every destructuring step to the engine's logger.
func WithTraceLog() Option {
	return func(e *Engine) error {
		e.traceLog = true
		return nil
	}
}

// WithLibrary installs lib into the root environment once the engine has
// been initialized.  Libraries are installed in the order given.
func WithLibrary(lib Library) Option {
	return func(e *Engine) error {
		if lib == nil {
			return fmt.Errorf("nil library")
		}
		e.libs = append(e.libs, lib)
		return nil
	}
}
