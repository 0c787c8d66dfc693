// Released under an MIT license. See LICENSE.

// Package atom provides mal's mutable reference cell.
package atom

import (
	"unsafe"

	"github.com/michaelmacinnis/mal/internal/common"
	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/literal"
)

const name = "atom"

// T (atom) holds a single value that can be replaced.
type T struct {
	gc.Header

	value cell.I
}

type atom = T

// New creates an atom holding v.
func New(v cell.I) cell.I {
	a := &atom{value: v}

	gc.Register(a, unsafe.Sizeof(*a))

	return a
}

// Deref returns the value held by the atom a.
func (a *atom) Deref() cell.I {
	return a.value
}

// Equal returns true if c is the same atom.
func (a *atom) Equal(c cell.I) bool {
	return a == c
}

// Free releases nothing. The held value is collected separately.
func (a *atom) Free() {}

// Hash returns the hash of the atom a.
func (a *atom) Hash() uint32 {
	return cell.Mix(cell.SeedAtom, uint32(uintptr(unsafe.Pointer(a))))
}

// Literal returns the literal representation of the atom a.
func (a *atom) Literal() string {
	return "(atom " + literal.String(a.value) + ")"
}

// Name returns the type name for the atom a.
func (a *atom) Name() string {
	return name
}

// Reset replaces the value held by the atom a.
func (a *atom) Reset(v cell.I) cell.I {
	a.value = v

	return v
}

// String returns the text of the atom a.
func (a *atom) String() string {
	return "(atom " + common.String(a.value) + ")"
}

// Walk marks the value held by the atom a.
func (a *atom) Walk(mark func(cell.I)) {
	mark(a.value)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t atom

	// The atom type is a cell.
	_ = cell.I(&t)

	// The atom type lives in the arena.
	_ = gc.Object(&t)

	// The atom type has a literal representation.
	_ = literal.I(&t)

	// The atom type is a stringer.
	_ = common.Stringer(&t)
}
