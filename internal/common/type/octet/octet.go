// Released under an MIT license. See LICENSE.

// Package octet provides mal's byte type.
package octet

import (
	"fmt"
	"unsafe"

	"github.com/michaelmacinnis/mal/internal/common"
	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/integer"
	"github.com/michaelmacinnis/mal/internal/common/interface/literal"
)

const name = "byte"

// T (octet) wraps Go's byte type.
type T struct {
	gc.Header

	v byte
}

type octet = T

// New creates a new octet cell.
func New(b byte) cell.I {
	o := &octet{v: b}

	gc.Register(o, unsafe.Sizeof(*o))

	return o
}

// Byte returns the value of the octet o.
func (o *octet) Byte() byte {
	return o.v
}

// Equal returns true if c is an octet with the same value.
func (o *octet) Equal(c cell.I) bool {
	return Is(c) && o.v == To(c).v
}

// Free releases nothing.
func (o *octet) Free() {}

// Hash returns the hash of the octet o.
func (o *octet) Hash() uint32 {
	return (cell.SeedByte * uint32(o.v)) % cell.Modulus
}

// Int returns the value of the octet o as an integer.
func (o *octet) Int() int32 {
	return int32(o.v)
}

// Literal returns the character literal for the octet o.
func (o *octet) Literal() string {
	if o.v > ' ' && o.v < 0x7f {
		return `\` + string(rune(o.v))
	}

	return fmt.Sprintf(`\o%03o`, o.v)
}

// Name returns the type name for the octet o.
func (o *octet) Name() string {
	return name
}

// String returns the octet o as a one byte string.
func (o *octet) String() string {
	return string([]byte{o.v})
}

// Walk visits nothing.
func (o *octet) Walk(func(cell.I)) {}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t octet

	// The octet type is a cell.
	_ = cell.I(&t)

	// The octet type lives in the arena.
	_ = gc.Object(&t)

	// The octet type has an integer value.
	_ = integer.I(&t)

	// The octet type has a literal representation.
	_ = literal.I(&t)

	// The octet type is a stringer.
	_ = common.Stringer(&t)
}
