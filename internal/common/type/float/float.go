// Released under an MIT license. See LICENSE.

// Package float provides mal's floating point type.
package float

import (
	"math"
	"strconv"
	"strings"
	"unsafe"

	"github.com/michaelmacinnis/mal/internal/common"
	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/literal"
	"github.com/michaelmacinnis/mal/internal/common/interface/numeric"
)

const name = "float"

// T (float) wraps Go's float64 type.
type T struct {
	gc.Header

	v float64
}

type float = T

// New creates a new float cell.
func New(f float64) cell.I {
	v := &float{v: f}

	gc.Register(v, unsafe.Sizeof(*v))

	return v
}

// Equal returns true if c is a float with the same value.
func (f *float) Equal(c cell.I) bool {
	return Is(c) && f.v == To(c).v
}

// Float returns the value of the float f.
func (f *float) Float() float64 {
	return f.v
}

// Free releases nothing.
func (f *float) Free() {}

// Hash returns the hash of the float f.
func (f *float) Hash() uint32 {
	b := math.Float64bits(f.v)

	return cell.Mix(cell.Mix(cell.SeedNumber, uint32(b>>32)), uint32(b))
}

// Literal returns the literal representation of the float f.
// The text always contains a decimal point so that it reads back as a float.
func (f *float) Literal() string {
	s := f.String()
	if strings.ContainsAny(s, ".NI") {
		return s
	}

	return s + ".0"
}

// Name returns the type name for the float f.
func (f *float) Name() string {
	return name
}

// String returns the text of the float f.
func (f *float) String() string {
	return strconv.FormatFloat(f.v, 'f', -1, 64)
}

// Walk visits nothing.
func (f *float) Walk(func(cell.I)) {}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t float

	// The float type is a cell.
	_ = cell.I(&t)

	// The float type lives in the arena.
	_ = gc.Object(&t)

	// The float type has a literal representation.
	_ = literal.I(&t)

	// The float type is a number.
	_ = numeric.I(&t)

	// The float type is a stringer.
	_ = common.Stringer(&t)
}
