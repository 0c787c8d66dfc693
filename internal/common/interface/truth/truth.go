// Released under an MIT license. See LICENSE.

// Package truth defines the interface for mal types that may be false.
package truth

import (
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
)

// I (truth) is anything that evaluates to a true or false value.
type I interface {
	Bool() bool
}

// Value returns the truth value for a cell. Only nil and false are false.
func Value(c cell.I) bool {
	b, ok := c.(I)
	if !ok {
		return true
	}

	return b.Bool()
}
