// Released under an MIT license. See LICENSE.

// Package sequence defines the interfaces shared by lists, vectors and sets.
package sequence

import (
	"strings"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
)

// I (sequence) is an ordered collection of values.
type I interface {
	cell.I

	Count() int
	Each(f func(cell.I) bool)
}

// Ordered is a sequence with positions: a list or a vector.
type Ordered interface {
	I

	Nth(i int) (cell.I, bool)
}

// Is returns true if c is a sequence.
func Is(c cell.I) bool {
	_, ok := c.(I)

	return ok
}

// To returns c as a sequence or panics.
func To(c cell.I) I {
	if s, ok := c.(I); ok {
		return s
	}

	panic("not a sequence")
}

// Equal compares two sequences element by element.
func Equal(a, b I) bool {
	if a.Count() != b.Count() {
		return false
	}

	x := Slice(a)
	i := 0
	equal := true

	b.Each(func(c cell.I) bool {
		equal = x[i].Equal(c)
		i++

		return equal
	})

	return equal
}

// Hash returns the structural hash of the sequence s.
func Hash(s I) uint32 {
	h := uint32(cell.SeedSequence)

	s.Each(func(c cell.I) bool {
		h = cell.Mix(h, c.Hash())

		return true
	})

	return h
}

// Slice returns the elements of s.
func Slice(s I) []cell.I {
	cs := make([]cell.I, 0, s.Count())

	s.Each(func(c cell.I) bool {
		cs = append(cs, c)

		return true
	})

	return cs
}

// Join formats each element of s with f, separated by spaces.
func Join(s I, f func(cell.I) string) string {
	var b strings.Builder

	first := true

	s.Each(func(c cell.I) bool {
		if !first {
			b.WriteByte(' ')
		}

		first = false

		b.WriteString(f(c))

		return true
	})

	return b.String()
}
