// Released under an MIT license. See LICENSE.

// Package list provides mal's list type.
package list

import (
	"unsafe"

	"github.com/michaelmacinnis/mal/internal/common"
	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/literal"
	"github.com/michaelmacinnis/mal/internal/common/interface/meta"
	"github.com/michaelmacinnis/mal/internal/common/interface/sequence"
	"github.com/michaelmacinnis/mal/internal/common/struct/cons"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
)

const name = "list"

// T (list) wraps a chain of reference-counted cells.
type T struct {
	gc.Header

	cells *cons.T
	meta  cell.I
}

type list = T

// New creates a list holding cs.
func New(cs ...cell.I) cell.I {
	return Wrap(cons.New(cs...))
}

// Wrap creates a list that takes ownership of one reference to cells.
func Wrap(cells *cons.T) *T {
	l := &list{cells: cells, meta: null.Nil}

	gc.Register(l, unsafe.Sizeof(*l))

	return l
}

// Cells returns the cells of the list l without acquiring them.
func (l *list) Cells() *cons.T {
	return l.cells
}

// Count returns the number of elements in the list l.
func (l *list) Count() int {
	return l.cells.Count()
}

// Each calls f with each element until f returns false.
func (l *list) Each(f func(cell.I) bool) {
	l.cells.Each(f)
}

// Empty returns true if the list l has no elements.
func (l *list) Empty() bool {
	return l.cells == nil
}

// Equal returns true if c is a list or vector with equal elements.
func (l *list) Equal(c cell.I) bool {
	s, ok := c.(sequence.Ordered)

	return ok && sequence.Equal(l, s)
}

// First returns the first element of the list l, or nil.
func (l *list) First() cell.I {
	if l.cells == nil {
		return null.Nil
	}

	return l.cells.Head()
}

// Free releases the cells of the list l.
func (l *list) Free() {
	cons.Release(l.cells)
	l.cells = nil
}

// Hash returns the structural hash of the list l.
func (l *list) Hash() uint32 {
	return sequence.Hash(l)
}

// Literal returns the literal representation of the list l.
func (l *list) Literal() string {
	return "(" + sequence.Join(l, literal.String) + ")"
}

// Nth returns the element at index i, if there is one.
func (l *list) Nth(i int) (cell.I, bool) {
	return l.cells.Nth(i)
}

// Meta returns the metadata of the list l.
func (l *list) Meta() cell.I {
	return l.meta
}

// Name returns the name for a list type.
func (l *list) Name() string {
	return name
}

// Rest returns a list sharing every cell of l but the first.
func (l *list) Rest() *T {
	return Wrap(cons.Drop(l.cells, 1))
}

// Slice returns the elements of the list l.
func (l *list) Slice() []cell.I {
	return l.cells.Slice()
}

// String returns the text representation of the list l.
func (l *list) String() string {
	return "(" + sequence.Join(l, common.String) + ")"
}

// Walk marks every element and the metadata of the list l.
func (l *list) Walk(mark func(cell.I)) {
	mark(l.meta)

	l.cells.Each(func(c cell.I) bool {
		mark(c)

		return true
	})
}

// WithMeta returns a list sharing the cells of l with the metadata m.
func (l *list) WithMeta(m cell.I) cell.I {
	c := Wrap(cons.Acquire(l.cells))
	c.meta = m

	return c
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t list

	// The list type is a cell.
	_ = cell.I(&t)

	// The list type lives in the arena.
	_ = gc.Object(&t)

	// The list type has a literal representation.
	_ = literal.I(&t)

	// The list type carries metadata.
	_ = meta.I(&t)

	// The list type is an ordered sequence.
	_ = sequence.Ordered(&t)

	// The list type is a stringer.
	_ = common.Stringer(&t)
}
