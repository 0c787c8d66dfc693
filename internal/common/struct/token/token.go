// Released under an MIT license. See LICENSE.

// Package token is shared by the mal lexer and parser.
package token

import (
	"strconv"

	"github.com/michaelmacinnis/mal/internal/common/struct/loc"
)

// Class is a token's type.
//
// Container delimiters carry start or end bits in the top of the low byte,
// so that the parser can recognize them with a mask. The bits below the
// mask identify the kind of container.
type Class rune

// T (token) is a lexical item returned by the scanner.
type T struct {
	class  Class
	source loc.T
	value  string
}

type token = T

// Delimiter bits.
const (
	Start Class = 0x80
	End   Class = 0xC0
	Mask  Class = 0xC0
)

// Token classes.
const (
	Error Class = iota
	Char
	Keyword
	Metadata
	Number
	String
	Symbol
)

// Container classes.
const (
	ListStart   = Start | 1
	ListEnd     = End | 1
	VectorStart = Start | 2
	VectorEnd   = End | 2
	MapStart    = Start | 3
	MapEnd      = End | 3
	SetStart    = Start | 4
	SetEnd      = End | 4
	LambdaStart = Start | 5
	LambdaEnd   = End | 5
)

// New creates a new token.
func New(class Class, value string, source loc.T) *token {
	return &token{
		class:  class,
		source: source,
		value:  value,
	}
}

// Closes returns true if c is the end delimiter for the start delimiter s.
func (c Class) Closes(s Class) bool {
	return c.IsEnd() && s.IsStart() && c&^Mask == s&^Mask
}

// IsEnd returns true if c closes a container.
func (c Class) IsEnd() bool {
	return c&Mask == End
}

// IsStart returns true if c opens a container.
func (c Class) IsStart() bool {
	return c&Mask == Start
}

// String returns a string representation of Class. Useful for debugging.
func (c Class) String() string {
	switch c {
	case Error:
		return "Error"
	case Char:
		return "Char"
	case Keyword:
		return "Keyword"
	case Metadata:
		return "Metadata"
	case Number:
		return "Number"
	case String:
		return "String"
	case Symbol:
		return "Symbol"
	case ListStart:
		return "'('"
	case ListEnd:
		return "')'"
	case VectorStart:
		return "'['"
	case VectorEnd:
		return "']'"
	case MapStart:
		return "'{'"
	case MapEnd:
		return "'}'"
	case SetStart:
		return "'#{'"
	case SetEnd:
		return "'}'"
	case LambdaStart:
		return "'#('"
	case LambdaEnd:
		return "')'"
	}

	return strconv.QuoteRune(rune(c))
}

// Class returns the token's class.
func (t *token) Class() Class {
	return t.class
}

// Is returns true if the token t is any of the classes in cs.
func (t *token) Is(cs ...Class) bool {
	if t == nil {
		return false
	}

	for _, c := range cs {
		if t.class == c {
			return true
		}
	}

	return false
}

// Source returns the source location for this token.
func (t *token) Source() *loc.T {
	return &t.source
}

// String returns the token's string representation. Useful for debugging.
func (t *token) String() string {
	return strconv.Quote(t.value) + "(" +
		t.class.String() + "," +
		t.source.String() + ")"
}

// Value returns the token's string value.
func (t *token) Value() string {
	return t.value
}
