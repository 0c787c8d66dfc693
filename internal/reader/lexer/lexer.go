// Released under an MIT license. See LICENSE.

// Package lexer provides a lexical scanner for mal.
//
// The lexer adapts the state function approach used by Go's text/template
// lexer and described in detail in Rob Pike's talk "Lexical Scanning in Go".
// See https://talks.golang.org/2011/lex.slide for more information.
//
// Unlike text/template, states may call other states. A state that needs
// to scan a nested form pushes the state to return to and transitions to
// the nested state. When the nested state completes it returns to the
// state on the top of the stack. Containers close this way: the state that
// scans a container's contents returns to a state that expects the
// matching closing delimiter.
//
// Input may arrive in pieces. A state that runs out of input before it can
// decide what to emit asks to wait. Token then returns nil until more text
// is scanned or the lexer is closed.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/michaelmacinnis/mal/internal/common/struct/loc"
	"github.com/michaelmacinnis/mal/internal/common/struct/token"
)

// MaxDepth is the deepest nesting of forms the lexer will accept.
const MaxDepth = 256

// Error is a lexical error.
type Error struct {
	loc.T
	Msg string
}

// Error returns the error message with the location that caused it.
func (e *Error) Error() string {
	return e.T.String() + ": " + e.Msg
}

// T holds the state of the scanner.
type T struct {
	bytes   string   // Buffer being scanned.
	closed  bool     // No more input will be scanned.
	first   int      // Index of the current token's first byte.
	index   int      // Index of the current byte.
	line    int      // Line of the current byte.
	mark    int      // Offset of a joined name, relative to first.
	queue   []string // Buffers waiting to be scanned.
	runes   int      // Column of the current byte.
	stack   []action // States to return to.
	state   action   // Current action.
	waiting bool     // Current action needs more input.

	source loc.T

	tokens []*token.T
}

type lexer = T

// New creates a new T. Label can be a file name or other identifier.
func New(label string) *T {
	return &T{
		line:  1,
		runes: 1,
		source: loc.T{
			Char: 1,
			Line: 1,
			Name: label,
		},
		state: skipSpace,
	}
}

// Close tells the lexer that no more text will be scanned.
func (l *lexer) Close() {
	l.closed = true
}

// Scan passes a text buffer to the lexer for scanning.
// If a buffer is currently being scanned, the new buffer will
// be appended to the list of buffers waiting to be scanned.
func (l *lexer) Scan(text string) {
	l.queue = append(l.queue, text)
}

// Text is used to return the text corresponding to the current token.
func (l *lexer) Text() string {
	return l.bytes[l.first:l.index]
}

// Token returns the next scanned token, or nil if no token is available.
// After an error token or the end of closed input, Token always returns nil.
func (l *lexer) Token() *token.T {
	for {
		if len(l.tokens) > 0 {
			t := l.tokens[0]

			l.tokens[0] = nil
			l.tokens = l.tokens[1:]

			return t
		}

		if l.state == nil {
			return nil
		}

		more := l.gather()
		if l.waiting && !more && !l.closed {
			return nil
		}

		l.waiting = false
		l.state = l.state(l)
	}
}

type action func(*T) action

const eof = -1

func (l *lexer) accept(r rune, w int) {
	if r == '\n' {
		l.line++
		l.runes = 1
	} else {
		l.runes++
	}

	l.index += w
}

func (l *lexer) call(next, a action) action {
	// Each level of nesting holds two states: the closer and the caller.
	if len(l.stack) >= 2*MaxDepth {
		return l.errorf("forms nested more than %d deep", MaxDepth)
	}

	l.stack = append(l.stack, next)

	return a
}

func (l *lexer) emit(c token.Class, v string) {
	l.tokens = append(l.tokens, token.New(c, v, l.source))
	l.skip()
}

func (l *lexer) errorf(format string, args ...interface{}) action {
	l.emit(token.Error, fmt.Sprintf(format, args...))
	l.stack = nil

	return nil
}

func (l *lexer) gather() bool {
	if len(l.queue) == 0 {
		return false
	}

	l.bytes = l.bytes[l.first:] + strings.Join(l.queue, "")
	l.index -= l.first
	l.first = 0
	l.queue = nil

	return true
}

// more waits for input and retries a, or, when the input is closed, continues with done.
func (l *lexer) more(a, done action) action {
	if l.closed {
		if done == nil {
			return nil
		}

		return done(l)
	}

	l.waiting = true

	return a
}

func (l *lexer) peek() (rune, int) {
	if l.index >= len(l.bytes) {
		return eof, 0
	}

	return utf8.DecodeRuneInString(l.bytes[l.index:])
}

func (l *lexer) ret() action {
	n := len(l.stack) - 1
	if n < 0 {
		return skipSpace
	}

	a := l.stack[n]

	l.stack[n] = nil
	l.stack = l.stack[:n]

	return a
}

func (l *lexer) skip() {
	l.first = l.index
	l.source.Char = l.runes
	l.source.Line = l.line
}

// Character classes.

func isClosing(r rune) bool {
	return r == ')' || r == ']' || r == '}'
}

func isDelimiter(r rune) bool {
	return r == eof || isSpace(r) || isClosing(r) ||
		strings.ContainsRune("([{\";", r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isHex(r rune) bool {
	return isDigit(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

func isOctal(r rune) bool {
	return '0' <= r && r <= '7'
}

func isSpace(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

func isSymbolic(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		strings.ContainsRune("~@-+\\/*_=><?!.%'$", r)
}

// T states.

// Actions that are reached only at the end of closed input.

func endOfInput(l *lexer) action {
	return l.errorf("unexpected end of input")
}

func unterminated(l *lexer) action {
	return l.errorf("unterminated string")
}

func ampersand(l *lexer) action {
	for {
		r, w := l.peek()

		switch {
		case l.mark == 0 && isSpace(r):
			l.accept(r, w)
		case l.mark == 0 && isSymbolic(r) && !isDigit(r):
			l.mark = l.index - l.first
			l.accept(r, w)
		case l.mark > 0 && isSymbolic(r):
			l.accept(r, w)
		case r == eof:
			return l.more(ampersand, emitAmpersand)
		default:
			return emitAmpersand(l)
		}
	}
}

func emitAmpersand(l *lexer) action {
	name := ""
	if l.mark > 0 {
		name = l.bytes[l.first+l.mark : l.index]
	}

	l.mark = 0
	l.emit(token.Symbol, "&"+name)

	return l.ret()
}

func char(l *lexer) action {
	r, w := l.peek()
	if r == eof {
		return l.more(char, endOfInput)
	}

	l.accept(r, w)

	if unicode.IsLetter(r) {
		return charName
	}

	l.emit(token.Char, l.Text())

	return l.ret()
}

func charName(l *lexer) action {
	for {
		r, w := l.peek()

		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			l.accept(r, w)
		case r == eof:
			return l.more(charName, emitChar)
		default:
			return emitChar(l)
		}
	}
}

func emitChar(l *lexer) action {
	l.emit(token.Char, l.Text())

	return l.ret()
}

func closeMacro(l *lexer) action {
	l.tokens = append(l.tokens, token.New(token.ListEnd, ")", l.source))

	return l.ret()
}

func closer(c rune, class token.Class) action {
	return func(l *lexer) action {
		r, w := l.peek()
		l.accept(r, w)

		if r != c {
			return l.errorf("unexpected '%c', expected '%c'", r, c)
		}

		l.emit(class, l.Text())

		return l.ret()
	}
}

func comment(l *lexer) action {
	for {
		r, w := l.peek()

		switch r {
		case eof:
			if l.closed {
				l.skip()
				return l.ret()
			}

			return l.more(comment, nil)
		case '\n':
			l.accept(r, w)
			l.skip()

			return l.ret()
		default:
			l.accept(r, w)
		}
	}
}

func decimal(l *lexer) action {
	for {
		r, w := l.peek()

		switch {
		case isDigit(r):
			l.accept(r, w)
		case r == '.':
			l.accept(r, w)
			return fraction
		case r == 'L':
			l.accept(r, w)
			return number
		case r == eof:
			return l.more(decimal, number)
		default:
			return number(l)
		}
	}
}

func escape(l *lexer) action {
	r, w := l.peek()
	if r == eof {
		return l.more(escape, unterminated)
	}

	l.accept(r, w)

	if !strings.ContainsRune("\"\\nrt", r) {
		return l.errorf("invalid escape sequence '\\%c'", r)
	}

	return str
}

func form(l *lexer) action {
	for {
		r, w := l.peek()

		switch {
		case r == eof:
			return l.more(form, endOfInput)
		case isSpace(r):
			l.accept(r, w)
			l.skip()
		case r == ';':
			return l.call(form, comment)
		default:
			l.accept(r, w)
			return dispatch(l, r)
		}
	}
}

func dispatch(l *lexer, r rune) action {
	switch r {
	case '"':
		return str
	case '(':
		l.emit(token.ListStart, l.Text())
		return l.call(closer(')', token.ListEnd), inside)
	case '[':
		l.emit(token.VectorStart, l.Text())
		return l.call(closer(']', token.VectorEnd), inside)
	case '{':
		l.emit(token.MapStart, l.Text())
		return l.call(closer('}', token.MapEnd), inside)
	case '#':
		return hash
	case '\'':
		return l.macro("quote")
	case '`':
		return l.macro("quasiquote")
	case '~':
		return tilde
	case '@':
		return l.macro("deref")
	case '^':
		l.emit(token.Metadata, l.Text())
		return l.call(form, form)
	case '\\':
		return char
	case ':':
		return keyword
	case '&':
		l.mark = 0
		return ampersand
	case '0':
		return zero
	case '+', '-':
		return sign
	}

	switch {
	case isDigit(r):
		return decimal
	case isClosing(r):
		return l.errorf("unexpected '%c'", r)
	case isSymbolic(r):
		return symbol
	}

	return l.errorf("unexpected '%c'", r)
}

func fraction(l *lexer) action {
	for {
		r, w := l.peek()

		switch {
		case isDigit(r):
			l.accept(r, w)
		case r == eof:
			return l.more(fraction, number)
		default:
			return number(l)
		}
	}
}

func hash(l *lexer) action {
	r, w := l.peek()
	if r == eof {
		return l.more(hash, endOfInput)
	}

	l.accept(r, w)

	switch r {
	case '{':
		l.emit(token.SetStart, l.Text())
		return l.call(closer('}', token.SetEnd), inside)
	case '(':
		l.emit(token.LambdaStart, l.Text())
		return l.call(closer(')', token.LambdaEnd), inside)
	}

	return l.errorf("unexpected '#%c'", r)
}

func hexadecimal(l *lexer) action {
	for {
		r, w := l.peek()

		switch {
		case isHex(r):
			l.accept(r, w)
		case r == eof:
			return l.more(hexadecimal, hexNumber)
		default:
			return hexNumber(l)
		}
	}
}

func hexNumber(l *lexer) action {
	if strings.IndexFunc(strings.TrimLeft(l.Text(), "+-")[2:], isHex) < 0 {
		return l.errorf("invalid number %q", l.Text())
	}

	return number(l)
}

func inside(l *lexer) action {
	for {
		r, w := l.peek()

		switch {
		case r == eof:
			return l.more(inside, endOfInput)
		case isSpace(r):
			l.accept(r, w)
			l.skip()
		case r == ';':
			return l.call(inside, comment)
		case isClosing(r):
			return l.ret()
		default:
			return l.call(inside, form)
		}
	}
}

func keyword(l *lexer) action {
	for {
		r, w := l.peek()

		switch {
		case isSymbolic(r):
			l.accept(r, w)
		case r == eof:
			return l.more(keyword, emitKeyword)
		default:
			return emitKeyword(l)
		}
	}
}

func emitKeyword(l *lexer) action {
	if len(l.Text()) == 1 {
		return l.errorf("expected keyword name after ':'")
	}

	l.emit(token.Keyword, l.Text())

	return l.ret()
}

func (l *lexer) macro(name string) action {
	l.emit(token.ListStart, "(")
	l.tokens = append(l.tokens, token.New(token.Symbol, name, l.source))

	return l.call(closeMacro, form)
}

// number checks that a number is followed by a delimiter and emits it.
func number(l *lexer) action {
	r, w := l.peek()
	if !isDelimiter(r) {
		l.accept(r, w)
		return l.errorf("invalid number %q", l.Text())
	}

	l.emit(token.Number, l.Text())

	return l.ret()
}

func octal(l *lexer) action {
	for {
		r, w := l.peek()

		switch {
		case isOctal(r):
			l.accept(r, w)
		case r == '8' || r == '9':
			l.accept(r, w)
			return l.errorf("invalid octal number %q", l.Text())
		case r == 'L':
			l.accept(r, w)
			return number
		case r == eof:
			return l.more(octal, number)
		default:
			return number(l)
		}
	}
}

func sign(l *lexer) action {
	r, w := l.peek()

	switch {
	case isDigit(r):
		l.accept(r, w)
		if r == '0' {
			return zero
		}

		return decimal
	case r == eof:
		return l.more(sign, emitSymbol)
	}

	return symbol
}

func skipSpace(l *lexer) action {
	for {
		r, w := l.peek()

		switch {
		case r == eof:
			return l.more(skipSpace, nil)
		case isSpace(r):
			l.accept(r, w)
			l.skip()
		case r == ';':
			return l.call(skipSpace, comment)
		case isClosing(r):
			l.accept(r, w)
			return l.errorf("unexpected '%c'", r)
		default:
			return l.call(skipSpace, form)
		}
	}
}

func str(l *lexer) action {
	for {
		r, w := l.peek()

		switch r {
		case eof:
			return l.more(str, unterminated)
		case '"':
			l.accept(r, w)
			l.emit(token.String, l.Text())

			return l.ret()
		case '\\':
			l.accept(r, w)
			return escape
		default:
			l.accept(r, w)
		}
	}
}

func symbol(l *lexer) action {
	for {
		r, w := l.peek()

		switch {
		case isSymbolic(r) || r == '&':
			l.accept(r, w)
		case r == eof:
			return l.more(symbol, emitSymbol)
		default:
			return emitSymbol(l)
		}
	}
}

func emitSymbol(l *lexer) action {
	l.emit(token.Symbol, l.Text())

	return l.ret()
}

func tilde(l *lexer) action {
	r, w := l.peek()

	switch r {
	case eof:
		return l.more(tilde, endOfInput)
	case '@':
		l.accept(r, w)
		return l.macro("splice-unquote")
	}

	return l.macro("unquote")
}

func zero(l *lexer) action {
	r, w := l.peek()

	switch {
	case r == 'x' || r == 'X':
		l.accept(r, w)
		return hexadecimal
	case isDigit(r):
		return octal
	case r == '.':
		l.accept(r, w)
		return fraction
	case r == 'L':
		l.accept(r, w)
		return number
	case r == eof:
		return l.more(zero, number)
	}

	return number(l)
}
