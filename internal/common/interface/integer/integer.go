// Released under an MIT license. See LICENSE.

// Package integer converts a mal cell to an int value, if possible.
package integer

import (
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
)

// I (integer) is anything with an exact integer value.
type I interface {
	Int() int32
}

// Is returns true if c has an integer value.
func Is(c cell.I) bool {
	_, ok := c.(I)

	return ok
}

// Value returns the int value for a cell, if possible.
func Value(c cell.I) (int, bool) {
	i, ok := c.(I)
	if !ok {
		return 0, false
	}

	return int(i.Int()), true
}
