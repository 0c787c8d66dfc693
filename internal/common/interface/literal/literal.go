// Released under an MIT license. See LICENSE.

// Package literal defines the interface for mal types that can be read back.
package literal

import (
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
)

// I (literal) is any type that can be expressed as a literal.
type I interface {
	Literal() string
}

// String returns the literal string representation for a cell, if possible.
func String(c cell.I) string {
	l, ok := c.(I)
	if !ok {
		panic(c.Name() + " does not have a literal representation")
	}

	return l.Literal()
}
