// Released under an MIT license. See LICENSE.

// Package loc provides the type used to track where tokens were read from.
package loc

import (
	"strconv"
)

// T (loc) is a lexical location.
type T struct {
	Char int    // Column of the first rune, counting from 1.
	Line int    // Line number, counting from 1.
	Name string // Label for the source, usually a file name.
}

type loc = T

func (l *loc) String() string {
	return l.Name + ":" + strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Char)
}
