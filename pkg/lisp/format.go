package lisp

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ruthlang/ruth/pkg/symbol"
)

// Formatter is implemented by the Native data of callable values so they can
// be printed.  When display is false the callable should write a readable
// source form where one exists.
type Formatter interface {
	FormatLisp(w io.Writer, table symbol.Table, display bool) error
}

// Format writes a source-code representation of v to w, using table to
// translate symbols.  Strings are quoted.  Reading the output of Format
// produces a value Equal to v for any value without callables.
func Format(w io.Writer, v LVal, table symbol.Table) (int, error) {
	return format(w, v, table, false)
}

// Display writes a human-readable representation of v to w.  Unlike Format,
// strings are written without quotes and procedures are not expanded.
func Display(w io.Writer, v LVal, table symbol.Table) (int, error) {
	return format(w, v, table, true)
}

// Sprint returns the output of Format as a string.  Formatting errors from
// callables are written inline.
func Sprint(v LVal, table symbol.Table) string {
	return sprint(v, table, false)
}

// SprintDisplay returns the output of Display as a string.
func SprintDisplay(v LVal, table symbol.Table) string {
	return sprint(v, table, true)
}

func sprint(v LVal, table symbol.Table, display bool) string {
	var b strings.Builder
	p := &printer{w: &b, table: table, display: display}
	if err := p.print(v); err != nil {
		fmt.Fprintf(&b, "#<format error: %v>", err)
	}
	return b.String()
}

func format(w io.Writer, v LVal, table symbol.Table, display bool) (int, error) {
	var b strings.Builder
	p := &printer{w: &b, table: table, display: display}
	if err := p.print(v); err != nil {
		return 0, err
	}
	return io.WriteString(w, b.String())
}

type printer struct {
	w       *strings.Builder
	table   symbol.Table
	display bool
}

func (p *printer) print(v LVal) error {
	switch v.Type() {
	case LNil:
		p.w.WriteString("()")
	case LSymbol:
		id, _ := GetSymbol(v)
		p.w.WriteString(symbol.String(id, p.table))
	case LString:
		s, _ := GetString(v)
		if p.display {
			p.w.WriteString(s)
		} else {
			p.w.WriteString(strconv.Quote(s))
		}
	case LInt:
		x, _ := GetInt(v)
		p.w.WriteString(strconv.Itoa(x))
	case LFloat:
		x, _ := GetFloat(v)
		p.w.WriteString(formatFloat(x))
	case LCons:
		return p.printCons(v)
	case LMap:
		return p.printMap(v)
	case LSpecialForm, LNativeProc, LProc:
		fn, ok := v.Native.(Formatter)
		if !ok {
			fmt.Fprintf(p.w, "<%v>", v.Type())
			return nil
		}
		return fn.FormatLisp(p.w, p.table, p.display)
	default:
		return fmt.Errorf("unrecognized type: %v", v.Type())
	}
	return nil
}

func (p *printer) printCons(v LVal) error {
	p.w.WriteString("(")
	for {
		data := v.Native.(*ConsData)
		if err := p.print(data.CAR); err != nil {
			return err
		}
		switch data.CDR.Type() {
		case LNil:
			p.w.WriteString(")")
			return nil
		case LCons:
			p.w.WriteString(" ")
			v = data.CDR
		default:
			p.w.WriteString(" . ")
			if err := p.print(data.CDR); err != nil {
				return err
			}
			p.w.WriteString(")")
			return nil
		}
	}
}

func (p *printer) printMap(v LVal) error {
	m := v.Native.(*MapData)
	p.w.WriteString("{")
	for i := range m.keys {
		if i > 0 {
			p.w.WriteString(" ")
		}
		if err := p.print(m.keys[i]); err != nil {
			return err
		}
		p.w.WriteString(" ")
		if err := p.print(m.vals[i]); err != nil {
			return err
		}
	}
	p.w.WriteString("}")
	return nil
}

// formatFloat keeps integral floats distinguishable from ints when read back.
func formatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}
