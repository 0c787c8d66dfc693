// Released under an MIT license. See LICENSE.

// Package parser provides a recursive descent parser for mal.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/adapted"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/sequence"
	"github.com/michaelmacinnis/mal/internal/common/struct/loc"
	"github.com/michaelmacinnis/mal/internal/common/struct/token"
	"github.com/michaelmacinnis/mal/internal/common/type/boolean"
	"github.com/michaelmacinnis/mal/internal/common/type/float"
	"github.com/michaelmacinnis/mal/internal/common/type/hashmap"
	"github.com/michaelmacinnis/mal/internal/common/type/list"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
	"github.com/michaelmacinnis/mal/internal/common/type/num"
	"github.com/michaelmacinnis/mal/internal/common/type/octet"
	"github.com/michaelmacinnis/mal/internal/common/type/set"
	"github.com/michaelmacinnis/mal/internal/common/type/str"
	"github.com/michaelmacinnis/mal/internal/common/type/sym"
	"github.com/michaelmacinnis/mal/internal/common/type/vector"
	"github.com/michaelmacinnis/mal/internal/reader/lexer"
)

// Error is a syntax error.
type Error struct {
	loc.T
	Msg string
}

// Error returns the error message with the location that caused it.
func (e *Error) Error() string {
	return e.T.String() + ": " + e.Msg
}

// T holds the state of the parser.
type T struct {
	ahead int             // Lookahead count.
	emit  func(cell.I)    // Function to call to emit a parsed form.
	item  func() *token.T // Function to call to get another token.
	last  loc.T           // Location of the most recently consumed token.
	token *token.T        // Token lookahead.
}

type parser = T

//nolint:gochecknoglobals
var chars = map[string]byte{
	"backspace": '\b',
	"formfeed":  '\f',
	"newline":   '\n',
	"nul":       0,
	"return":    '\r',
	"space":     ' ',
	"tab":       '\t',
}

// New creates a new parser.
// It connects a producer of tokens with a consumer of cells.
func New(emit func(cell.I), item func() *token.T) *T {
	return &T{emit: emit, item: item}
}

// Parse consumes tokens and emits cells until there are no more tokens.
// It stops at the first lexical or syntax error and returns it.
func (p *parser) Parse() (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		e, ok := r.(error)
		if !ok {
			panic(r)
		}

		err = e
	}()

	for t := p.peek(); t != nil; t = p.peek() {
		p.emit(p.form())
	}

	return nil
}

func (p *parser) consume() *token.T {
	if p.ahead == 0 {
		panic("nothing to consume.")
	}

	t := p.token

	p.ahead = 0
	p.token = nil

	if t != nil {
		p.last = *t.Source()
	}

	return t
}

func (p *parser) errorf(t *token.T, format string, args ...interface{}) *Error {
	e := &Error{T: p.last, Msg: fmt.Sprintf(format, args...)}
	if t != nil {
		e.T = *t.Source()
	}

	return e
}

func (p *parser) next() *token.T {
	t := p.peek()
	if t == nil {
		panic(p.errorf(nil, "unexpected end of input"))
	}

	return p.consume()
}

func (p *parser) peek() *token.T {
	if p.ahead > 0 {
		return p.token
	}

	t := p.item()

	p.token = t
	p.ahead = 1

	return t
}

// T state functions.

// <form> ::= <atom> | <container> | '^' <form> <form> .
func (p *parser) form() cell.I {
	t := p.next()

	switch c := t.Class(); {
	case c == token.Error:
		panic(&lexer.Error{T: *t.Source(), Msg: t.Value()})
	case c == token.Metadata:
		m := p.form()

		return list.New(sym.New("with-meta"), p.form(), m)
	case c.IsStart():
		return p.container(t)
	case c.IsEnd():
		panic(p.errorf(t, "unexpected '%s'", t.Value()))
	}

	return p.atom(t)
}

// <container> ::= Start <form>* End .
func (p *parser) container(start *token.T) cell.I {
	var cs []cell.I

	for {
		t := p.peek()
		if t == nil {
			panic(p.errorf(start, "unexpected end of input, expected %v", start.Class()+token.End-token.Start))
		}

		if t.Class().IsEnd() {
			p.consume()

			if !t.Class().Closes(start.Class()) {
				panic(p.errorf(t, "unexpected '%s'", t.Value()))
			}

			break
		}

		cs = append(cs, p.form())
	}

	switch start.Class() {
	case token.VectorStart:
		return vector.New(cs...)
	case token.MapStart:
		if len(cs)%2 != 0 {
			panic(p.errorf(start, "map literal requires an even number of forms, got %d", len(cs)))
		}

		return hashmap.New(cs...)
	case token.SetStart:
		return set.New(cs...)
	case token.LambdaStart:
		return lambda(cs)
	}

	return list.New(cs...)
}

// <atom> ::= Char | Keyword | Number | String | Symbol .
func (p *parser) atom(t *token.T) cell.I {
	text := t.Value()

	switch t.Class() {
	case token.Char:
		return p.char(t)
	case token.Keyword:
		return sym.Keyword(text[1:])
	case token.Number:
		return p.number(t)
	case token.String:
		s, err := adapted.ActualBytes(text[1 : len(text)-1])
		if err != nil {
			panic(p.errorf(t, "%v", err))
		}

		return str.New(s)
	}

	switch text {
	case "nil":
		return null.Nil
	case "true":
		return boolean.True
	case "false":
		return boolean.False
	}

	return sym.Token(t)
}

func (p *parser) char(t *token.T) cell.I {
	name := t.Value()[1:]

	if len(name) == 1 {
		return octet.New(name[0])
	}

	if b, ok := chars[name]; ok {
		return octet.New(b)
	}

	if name[0] == 'o' {
		n, err := strconv.ParseUint(name[1:], 8, 8)
		if err == nil {
			return octet.New(byte(n))
		}
	}

	panic(p.errorf(t, "invalid character %q", t.Value()))
}

func (p *parser) number(t *token.T) cell.I {
	text := t.Value()

	lower := strings.ToLower(text)
	if strings.Contains(text, ".") && !strings.Contains(lower, "x") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			panic(p.errorf(t, "invalid number %q", text))
		}

		return float.New(f)
	}

	i, err := strconv.ParseInt(strings.TrimSuffix(text, "L"), 0, 32)
	if err != nil {
		panic(p.errorf(t, "number %s out of range", text))
	}

	return num.New(int32(i))
}

// lambda expands #(...) into (fn* [%1 .. %n & %&] (...)).
// The symbol % is a synonym for %1.
func lambda(body []cell.I) cell.I {
	arity, rest, bare := 0, false, false

	var scan func(c cell.I)
	scan = func(c cell.I) {
		if s, ok := c.(sequence.I); ok {
			s.Each(func(c cell.I) bool {
				scan(c)

				return true
			})

			return
		}

		if hashmap.Is(c) {
			hashmap.To(c).Each(func(k, v cell.I) bool {
				scan(k)
				scan(v)

				return true
			})

			return
		}

		if !sym.IsSymbol(c) {
			return
		}

		name := sym.To(c).Text()

		switch {
		case name == "%":
			bare = true
			if arity < 1 {
				arity = 1
			}
		case name == "%&":
			rest = true
		case strings.HasPrefix(name, "%"):
			if n, err := strconv.Atoi(name[1:]); err == nil && n > arity {
				arity = n
			}
		}
	}

	for _, c := range body {
		scan(c)
	}

	params := make([]cell.I, 0, arity+2)
	for i := 1; i <= arity; i++ {
		params = append(params, sym.New("%"+strconv.Itoa(i)))
	}

	if rest {
		params = append(params, sym.New("&"), sym.New("%&"))
	}

	expr := list.New(body...)
	if bare {
		expr = list.New(
			sym.New("let*"),
			vector.New(sym.New("%"), sym.New("%1")),
			expr,
		)
	}

	return list.New(sym.New("fn*"), vector.New(params...), expr)
}
