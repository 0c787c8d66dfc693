// Released under an MIT license. See LICENSE.

// Package sym provides mal's symbol and keyword type.
//
// A keyword is a symbol whose text starts with a sentinel byte that cannot
// appear in source text.
package sym

import (
	"strings"
	"unsafe"

	"github.com/michaelmacinnis/mal/internal/common"
	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/literal"
	"github.com/michaelmacinnis/mal/internal/common/struct/token"
)

const (
	name     = "symbol"
	sentinel = "\xff"
)

// T (sym) wraps Go's string type.
type T struct {
	gc.Header

	v string
}

type sym = T

// New creates a sym cell.
func New(v string) cell.I {
	s := &sym{v: v}

	gc.Register(s, unsafe.Sizeof(*s)+uintptr(len(v)))

	return s
}

// Keyword creates a keyword with the name v (without the leading colon).
func Keyword(v string) cell.I {
	return New(sentinel + v)
}

// Token creates a sym cell from a token.
func Token(t *token.T) cell.I {
	return New(t.Value())
}

// Equal returns true if c is a sym and wraps the same string.
func (s *sym) Equal(c cell.I) bool {
	return Is(c) && s.v == To(c).v
}

// Free releases nothing.
func (s *sym) Free() {}

// Hash returns the hash of the sym s.
func (s *sym) Hash() uint32 {
	return cell.Text(cell.SeedSymbol, s.v)
}

// Keyword returns true if s is a keyword.
func (s *sym) Keyword() bool {
	return strings.HasPrefix(s.v, sentinel)
}

// Literal returns the literal representation of the sym s.
func (s *sym) Literal() string {
	if s.Keyword() {
		return ":" + s.v[len(sentinel):]
	}

	return s.v
}

// Name returns the type name for the sym s.
func (s *sym) Name() string {
	if s.Keyword() {
		return "keyword"
	}

	return name
}

// String returns the text of the sym s. Keywords include their colon.
func (s *sym) String() string {
	return s.Literal()
}

// Text returns the name of the sym s without any keyword sentinel.
func (s *sym) Text() string {
	return strings.TrimPrefix(s.v, sentinel)
}

// Walk visits nothing.
func (s *sym) Walk(func(cell.I)) {}

// IsKeyword returns true if c is a keyword.
func IsKeyword(c cell.I) bool {
	return Is(c) && To(c).Keyword()
}

// IsSymbol returns true if c is a symbol that is not a keyword.
func IsSymbol(c cell.I) bool {
	return Is(c) && !To(c).Keyword()
}

// Named returns true if c is the symbol n.
func Named(c cell.I, n string) bool {
	return Is(c) && To(c).v == n
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t sym

	// The sym type is a cell.
	_ = cell.I(&t)

	// The sym type lives in the arena.
	_ = gc.Object(&t)

	// The sym type has a literal representation.
	_ = literal.I(&t)

	// The sym type is a stringer.
	_ = common.Stringer(&t)
}
