// Released under an MIT license. See LICENSE.

// Package meta defines the interface for values that carry metadata.
package meta

import (
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
)

// I (meta) is any value that can carry metadata.
type I interface {
	Meta() cell.I
	WithMeta(m cell.I) cell.I
}

// Is returns true if c can carry metadata.
func Is(c cell.I) bool {
	_, ok := c.(I)

	return ok
}
