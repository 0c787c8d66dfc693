// Released under an MIT license. See LICENSE.

// Package vector provides mal's vector type.
package vector

import (
	"unsafe"

	"github.com/michaelmacinnis/mal/internal/common"
	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/literal"
	"github.com/michaelmacinnis/mal/internal/common/interface/meta"
	"github.com/michaelmacinnis/mal/internal/common/interface/sequence"
	"github.com/michaelmacinnis/mal/internal/common/struct/vec"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
)

const name = "vector"

// T (vector) wraps a persistent block array.
type T struct {
	gc.Header

	items *vec.T
	meta  cell.I
}

type vector = T

// New creates a vector holding cs.
func New(cs ...cell.I) cell.I {
	return Wrap(vec.From(cs...))
}

// Wrap creates a vector that takes ownership of items.
func Wrap(items *vec.T) *T {
	v := &vector{items: items, meta: null.Nil}

	gc.Register(v, unsafe.Sizeof(*v))

	return v
}

// Count returns the number of elements in the vector v.
func (v *vector) Count() int {
	return v.items.Count()
}

// Each calls f with each element until f returns false.
func (v *vector) Each(f func(cell.I) bool) {
	v.items.Each(f)
}

// Equal returns true if c is a list or vector with equal elements.
func (v *vector) Equal(c cell.I) bool {
	s, ok := c.(sequence.Ordered)

	return ok && sequence.Equal(v, s)
}

// Free releases the blocks of the vector v.
func (v *vector) Free() {
	v.items.Release()
}

// Nth returns the element at index i, if there is one.
func (v *vector) Nth(i int) (cell.I, bool) {
	return v.items.Get(i)
}

// Hash returns the structural hash of the vector v.
func (v *vector) Hash() uint32 {
	return sequence.Hash(v)
}

// Items returns the block array of the vector v.
func (v *vector) Items() *vec.T {
	return v.items
}

// Literal returns the literal representation of the vector v.
func (v *vector) Literal() string {
	return "[" + sequence.Join(v, literal.String) + "]"
}

// Meta returns the metadata of the vector v.
func (v *vector) Meta() cell.I {
	return v.meta
}

// Name returns the name for a vector type.
func (v *vector) Name() string {
	return name
}

// String returns the text representation of the vector v.
func (v *vector) String() string {
	return "[" + sequence.Join(v, common.String) + "]"
}

// Walk marks every element and the metadata of the vector v.
func (v *vector) Walk(mark func(cell.I)) {
	mark(v.meta)

	v.items.Each(func(c cell.I) bool {
		mark(c)

		return true
	})
}

// WithMeta returns a vector sharing the blocks of v with the metadata m.
func (v *vector) WithMeta(m cell.I) cell.I {
	c := Wrap(v.items.Duplicate())
	c.meta = m

	return c
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t vector

	// The vector type is a cell.
	_ = cell.I(&t)

	// The vector type lives in the arena.
	_ = gc.Object(&t)

	// The vector type has a literal representation.
	_ = literal.I(&t)

	// The vector type carries metadata.
	_ = meta.I(&t)

	// The vector type is an ordered sequence.
	_ = sequence.Ordered(&t)

	// The vector type is a stringer.
	_ = common.Stringer(&t)
}
