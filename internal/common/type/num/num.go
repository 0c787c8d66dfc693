// Released under an MIT license. See LICENSE.

// Package num provides mal's 32-bit integer type.
package num

import (
	"strconv"
	"unsafe"

	"github.com/michaelmacinnis/mal/internal/common"
	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/integer"
	"github.com/michaelmacinnis/mal/internal/common/interface/literal"
	"github.com/michaelmacinnis/mal/internal/common/interface/numeric"
)

const name = "number"

// T (num) wraps Go's int32 type.
type T struct {
	gc.Header

	v int32
}

type num = T

// New creates a new num cell.
func New(i int32) cell.I {
	n := &num{v: i}

	gc.Register(n, unsafe.Sizeof(*n))

	return n
}

// Equal returns true if c is the same number as the num n.
func (n *num) Equal(c cell.I) bool {
	return Is(c) && n.v == To(c).v
}

// Float returns the value of the num n as a float64.
func (n *num) Float() float64 {
	return float64(n.v)
}

// Free releases nothing. A num holds no shared structure.
func (n *num) Free() {}

// Hash returns the hash of the num n.
func (n *num) Hash() uint32 {
	h := (int64(cell.SeedNumber) * int64(n.v)) % cell.Modulus
	if h < 0 {
		h += cell.Modulus
	}

	return uint32(h)
}

// Int returns the value of the num n.
func (n *num) Int() int32 {
	return n.v
}

// Literal returns the literal representation of the num n.
func (n *num) Literal() string {
	return n.String()
}

// Name returns the type name for the num n.
func (n *num) Name() string {
	return name
}

// String returns the text of the num n.
func (n *num) String() string {
	return strconv.FormatInt(int64(n.v), 10)
}

// Walk visits nothing. A num holds no other values.
func (n *num) Walk(func(cell.I)) {}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t num

	// The num type is a cell.
	_ = cell.I(&t)

	// The num type lives in the arena.
	_ = gc.Object(&t)

	// The num type has an integer value.
	_ = integer.I(&t)

	// The num type has a literal representation.
	_ = literal.I(&t)

	// The num type is a number.
	_ = numeric.I(&t)

	// The num type is a stringer.
	_ = common.Stringer(&t)
}
