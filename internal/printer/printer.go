// Released under an MIT license. See LICENSE.

// Package printer renders mal values as text.
package printer

import (
	"strings"

	"github.com/michaelmacinnis/mal/internal/common"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/literal"
)

// Print returns the text for c. If readably is true, the text can be
// read back: strings are quoted and escaped and characters are prefixed.
func Print(c cell.I, readably bool) string {
	if readably {
		return literal.String(c)
	}

	return common.String(c)
}

// Join prints each of cs and joins the results with sep.
func Join(cs []cell.I, sep string, readably bool) string {
	s := make([]string, len(cs))
	for i, c := range cs {
		s[i] = Print(c, readably)
	}

	return strings.Join(s, sep)
}
