// Released under an MIT license. See LICENSE.

// Package numeric defines the interface shared by mal's number types.
package numeric

import (
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
)

// I (numeric) is anything that can take part in arithmetic.
type I interface {
	Float() float64
}

// Is returns true if c is a number.
func Is(c cell.I) bool {
	_, ok := c.(I)

	return ok
}

// Value returns the floating point value for a cell or panics.
func Value(c cell.I) float64 {
	n, ok := c.(I)
	if !ok {
		panic(c.Name() + " is not a number")
	}

	return n.Float()
}
