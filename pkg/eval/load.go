package eval

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ruthlang/ruth/pkg/lisp"
)

// Load reads all expressions from r and evaluates them in the root
// environment.  Load returns the value of the last expression, or the first
// error value produced.  A non-nil error is returned only if the source could
// not be read.
func (e *Engine) Load(name string, r io.Reader) (lisp.LVal, error) {
	if e.Reader == nil {
		return lisp.Nil(), fmt.Errorf("no reader configured")
	}
	exprs, err := e.Reader.Read(name, r)
	if err != nil {
		return lisp.Nil(), err
	}
	v := lisp.Nil()
	for _, expr := range exprs {
		v = e.Eval(e.root, expr)
		if e.IsError(v) {
			return v, nil
		}
	}
	return v, nil
}

// LoadString is like Load but reads source from a string.
func (e *Engine) LoadString(name, source string) (lisp.LVal, error) {
	return e.Load(name, strings.NewReader(source))
}

// LoadFile is like Load but reads source from the named file.
func (e *Engine) LoadFile(path string) (lisp.LVal, error) {
	f, err := os.Open(path)
	if err != nil {
		return lisp.Nil(), err
	}
	defer f.Close()
	v, err := e.Load(path, f)
	if err != nil {
		return v, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
