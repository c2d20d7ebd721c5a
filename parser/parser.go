// Package parser reads lisp source text into values.
//
//	expr     := <comment>* (<list> | <map> | <quoted> | <term>)
//	list     := '(' <item>* ')'
//	item     := '.' <expr> | <expr>
//	map      := '{' <expr>* '}'
//	quoted   := '\'' <expr>
//	term     := <string> | <number> | <symbol>
//	number   := /[+-]?[0-9]+/ <fraction>? <exponent>?
//	fraction := '.' /[0-9]+/
//	exponent := e /[+-]?[0-9]+/
//	comment  := ';' /[^\n]*/
//
// A dotted item may only appear as the last item of a non-empty list.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	parsec "github.com/prataprc/goparsec"
	"github.com/ruthlang/ruth/pkg/lisp"
	"github.com/ruthlang/ruth/pkg/symbol"
)

// ErrIncomplete is returned when source text ends inside an unterminated
// expression.  A REPL can respond by reading another line of input.
var ErrIncomplete = errors.New("incomplete expression")

// SyntaxError describes malformed source text.
type SyntaxError struct {
	Source string
	Line   int
	Col    int
	Msg    string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", err.Source, err.Line, err.Col, err.Msg)
}

// Reader parses source text, interning symbols in its table.
type Reader struct {
	table symbol.Table
	quote symbol.ID
}

// NewReader returns a Reader that interns symbols in table.
func NewReader(table symbol.Table) *Reader {
	return &Reader{
		table: table,
		quote: table.Intern("quote"),
	}
}

// Read parses every expression in r.  name identifies the source in error
// messages.
func (rd *Reader) Read(name string, r io.Reader) ([]lisp.LVal, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rd.Parse(name, text)
}

// ReadString is like Read but parses a string.
func (rd *Reader) ReadString(name, source string) ([]lisp.LVal, error) {
	return rd.Parse(name, []byte(source))
}

// Parse parses every expression in text.
func (rd *Reader) Parse(name string, text []byte) ([]lisp.LVal, error) {
	if inString(text) {
		return nil, fmt.Errorf("%s: %w", name, ErrIncomplete)
	}
	p := &parse{rd: rd, name: name, text: text}
	expr := p.grammar()
	var exprs []lisp.LVal
	s := parsec.NewScanner(text)
	root, s := expr(s)
	for root != nil {
		if v, ok := firstValue(root); ok {
			exprs = append(exprs, v)
		}
		root, s = expr(s)
	}
	if p.err != nil {
		return nil, p.err
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		return nil, p.stuck(s.GetCursor())
	}
	return exprs, nil
}

// parse is the state of a single call to Parse.  Node constructors cannot
// fail so the first semantic error is recorded in err.
type parse struct {
	rd   *Reader
	name string
	text []byte
	err  error
}

func (p *parse) grammar() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	openB := parsec.Atom("{", "OPENB")
	closeB := parsec.Atom("}", "CLOSEB")
	dot := parsec.Atom(".", "DOT")
	q := parsec.Atom("'", "QUOTE")
	comment := parsec.Token(`;[^\n]*`, "COMMENT")
	decimal := parsec.Token(`[+-]?[0-9]+([.][0-9]+)?([eE][+-]?[0-9]+)?`, "DECIMAL")
	sym := parsec.Token(`(?:\pL|[_+\-*/=<>!&~%?^:|])(?:\pL|[0-9]|[_+\-*/=<>!&~%?^:|])*`, "SYMBOL")
	term := parsec.OrdChoice(p.term,
		parsec.String(),
		decimal,
		sym, // symbol comes last because it swallows anything
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	item := parsec.OrdChoice(nil, parsec.And(nil, dot, &expr), &expr)
	list := parsec.And(p.list, openP, parsec.Kleene(nil, item), closeP)
	hmap := parsec.And(p.hashMap, openB, parsec.Kleene(nil, &expr), closeB)
	quoted := parsec.And(p.quoted, q, &expr)
	expr = parsec.OrdChoice(nil, comment, term, list, hmap, quoted)
	return expr
}

func (p *parse) fail(format string, v ...interface{}) lisp.LVal {
	if p.err == nil {
		p.err = fmt.Errorf("%s: %s", p.name, fmt.Sprintf(format, v...))
	}
	return lisp.Nil()
}

func (p *parse) term(nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	switch term := nodes[0].(type) {
	case string:
		return p.str(term)
	case *parsec.Terminal:
		switch term.Name {
		case "STRING":
			return p.str(term.Value)
		case "DECIMAL":
			if strings.ContainsAny(term.Value, ".eE") {
				f, err := strconv.ParseFloat(term.Value, 64)
				if err != nil {
					return p.fail("bad number: %v", err)
				}
				return lisp.Float(f)
			}
			x, err := strconv.Atoi(term.Value)
			if err != nil {
				return p.fail("bad number: %v", err)
			}
			return lisp.Int(x)
		case "SYMBOL":
			return lisp.Symbol(p.rd.table.Intern(term.Value))
		}
	}
	return p.fail("unexpected token: %v", nodes[0])
}

func (p *parse) str(lit string) lisp.LVal {
	if s, err := strconv.Unquote(lit); err == nil {
		return lisp.String(s)
	}
	// the scanner may have decoded escapes already
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		return lisp.String(lit[1 : len(lit)-1])
	}
	return p.fail("bad string literal %s", lit)
}

func (p *parse) list(nodes []parsec.ParsecNode) parsec.ParsecNode {
	var elems []lisp.LVal
	tail := lisp.Nil()
	dotted := false
	for _, n := range cleanParsecNodeList(nodes) {
		switch n := n.(type) {
		case lisp.LVal:
			if dotted {
				if !lisp.IsNil(tail) {
					return p.fail("more than one expression follows '.'")
				}
				tail = n
				continue
			}
			elems = append(elems, n)
		case *parsec.Terminal:
			if n.Name != "DOT" {
				continue
			}
			if dotted || len(elems) == 0 {
				return p.fail("unexpected '.'")
			}
			dotted = true
		}
	}
	if dotted && lisp.IsNil(tail) {
		// (a . ()) is the list (a)
		return lisp.Expr(elems...)
	}
	return lisp.ExprTail(tail, elems...)
}

func (p *parse) hashMap(nodes []parsec.ParsecNode) parsec.ParsecNode {
	vals := values(nodes)
	if len(vals)%2 != 0 {
		return p.fail("map literal has a key with no value")
	}
	m := lisp.NewMapData(len(vals) / 2)
	for i := 0; i < len(vals); i += 2 {
		m.Put(vals[i], vals[i+1])
	}
	return lisp.Map(m)
}

func (p *parse) quoted(nodes []parsec.ParsecNode) parsec.ParsecNode {
	vals := values(nodes)
	if len(vals) != 1 {
		return p.fail("quote is missing an expression")
	}
	return lisp.Expr(lisp.Symbol(p.rd.quote), vals[0])
}

// stuck explains why parsing stopped at offset.
func (p *parse) stuck(offset int) error {
	if unterminated(p.text[offset:]) {
		return fmt.Errorf("%s: %w", p.name, ErrIncomplete)
	}
	line := 1 + bytes.Count(p.text[:offset], []byte("\n"))
	col := offset - bytes.LastIndexByte(p.text[:offset], '\n')
	rest := p.text[offset:]
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	if len(rest) > 20 {
		rest = rest[:20]
	}
	return &SyntaxError{
		Source: p.name,
		Line:   line,
		Col:    col,
		Msg:    fmt.Sprintf("syntax error near %q", rest),
	}
}

// unterminated returns true if text ends inside a string or with more
// opening than closing brackets, or with a dangling quote.
func unterminated(text []byte) bool {
	st := scan(text)
	return st.inString || st.depth > 0 || st.last == '\''
}

// inString returns true if text ends inside a string literal.  The string
// scanner cannot recover from a missing closing quote.
func inString(text []byte) bool {
	return scan(text).inString
}

type scanState struct {
	depth    int
	inString bool
	last     byte
}

func scan(text []byte) scanState {
	var st scanState
	escaped, inComment := false, false
	for _, c := range text {
		switch {
		case inComment:
			if c == '\n' {
				inComment = false
			}
			continue
		case st.inString:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				st.inString = false
			}
			continue
		}
		switch c {
		case ';':
			inComment = true
		case '"':
			st.inString = true
		case '(', '{':
			st.depth++
		case ')', '}':
			st.depth--
		}
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			st.last = c
		}
	}
	return st
}

func values(nodes []parsec.ParsecNode) []lisp.LVal {
	var vals []lisp.LVal
	for _, n := range cleanParsecNodeList(nodes) {
		if v, ok := n.(lisp.LVal); ok {
			vals = append(vals, v)
		}
	}
	return vals
}

func firstValue(root parsec.ParsecNode) (lisp.LVal, bool) {
	vals := values([]parsec.ParsecNode{root})
	if len(vals) == 0 {
		// only a comment was read
		return lisp.Nil(), false
	}
	return vals[0], true
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}
