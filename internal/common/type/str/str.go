// Released under an MIT license. See LICENSE.

// Package str provides mal's string type.
package str

import (
	"strings"
	"unsafe"

	"github.com/michaelmacinnis/mal/internal/common"
	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/literal"
)

const name = "string"

// T (str) wraps Go's string type.
type T struct {
	gc.Header

	v string
}

type str = T

//nolint:gochecknoglobals
var escapes = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// New creates a new str cell.
func New(v string) cell.I {
	s := &str{v: v}

	gc.Register(s, unsafe.Sizeof(*s)+uintptr(len(v)))

	return s
}

// Equal returns true if the cell c wraps the same string and false otherwise.
func (s *str) Equal(c cell.I) bool {
	return Is(c) && s.v == To(c).v
}

// Free releases nothing.
func (s *str) Free() {}

// Hash returns the hash of the str s.
func (s *str) Hash() uint32 {
	return cell.Text(cell.SeedString, s.v)
}

// Literal returns the literal representation of the str s.
func (s *str) Literal() string {
	return `"` + escapes.Replace(s.v) + `"`
}

// Name returns the name of the str type.
func (s *str) Name() string {
	return name
}

// String returns the text of the str s.
func (s *str) String() string {
	return s.v
}

// Walk visits nothing.
func (s *str) Walk(func(cell.I)) {}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t str

	// The str type is a cell.
	_ = cell.I(&t)

	// The str type lives in the arena.
	_ = gc.Object(&t)

	// The str type has a literal representation.
	_ = literal.I(&t)

	// The str type is a stringer.
	_ = common.Stringer(&t)
}
