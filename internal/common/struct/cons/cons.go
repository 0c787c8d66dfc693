// Released under an MIT license. See LICENSE.

// Package cons provides reference-counted, singly-linked list cells.
//
// A nil *T is the empty list. Tails are shared between lists; each cell
// counts the lists and cells that refer to it.
package cons

import (
	"unsafe"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/system/heap"
)

// T (cons) is a list cell.
type T struct {
	head cell.I
	tail *T
	refs int
}

type cons = T

const size = unsafe.Sizeof(cons{})

// Acquire adds a reference to l and returns it.
func Acquire(l *cons) *cons {
	if l != nil {
		l.refs++
	}

	return l
}

// Concat returns a list with the elements of a followed by b.
// The cells of a are copied; b is shared.
func Concat(a, b *cons) *cons {
	if a == nil {
		return Acquire(b)
	}

	var first, last *cons

	for ; a != nil; a = a.tail {
		c := Weak(a.head, nil)
		if last == nil {
			first = c
		} else {
			last.tail = c
		}

		last = c
	}

	last.tail = Acquire(b)

	return first
}

// Cons returns a new cell with head h and tail t. The tail is acquired.
func Cons(h cell.I, t *cons) *cons {
	return Weak(h, Acquire(t))
}

// Drop returns (an acquired reference to) l without its first n cells.
func Drop(l *cons, n int) *cons {
	for ; n > 0 && l != nil; n-- {
		l = l.tail
	}

	return Acquire(l)
}

// New creates a fresh list from cs.
func New(cs ...cell.I) *cons {
	var l *cons

	for i := len(cs) - 1; i >= 0; i-- {
		l = Weak(cs[i], l)
	}

	return l
}

// Release drops a reference to l, freeing cells that are no longer shared.
func Release(l *cons) {
	for l != nil {
		l.refs--
		if l.refs > 0 {
			return
		}

		if l.refs < 0 {
			panic("list cell released too many times")
		}

		heap.Free(size)

		l = l.tail
	}
}

// Reverse reverses the freshly built, unshared list l in place.
func Reverse(l *cons) *cons {
	var r *cons

	for l != nil {
		if l.refs != 1 {
			panic("cannot reverse a shared list in place")
		}

		next := l.tail
		l.tail = r
		r = l
		l = next
	}

	return r
}

// Weak returns a new cell with head h and tail t. The caller's reference
// to t is transferred to the new cell.
func Weak(h cell.I, t *cons) *cons {
	heap.Alloc(size)

	return &cons{head: h, tail: t, refs: 1}
}

// Count returns the number of cells in the list l.
func (l *cons) Count() int {
	n := 0
	for ; l != nil; l = l.tail {
		n++
	}

	return n
}

// Each calls f with each element until f returns false.
func (l *cons) Each(f func(cell.I) bool) {
	for ; l != nil; l = l.tail {
		if !f(l.head) {
			return
		}
	}
}

// Head returns the first element of the list l.
func (l *cons) Head() cell.I {
	return l.head
}

// Nth returns the element at index i, if there is one.
func (l *cons) Nth(i int) (cell.I, bool) {
	if i < 0 {
		return nil, false
	}

	for ; l != nil; l = l.tail {
		if i == 0 {
			return l.head, true
		}
		i--
	}

	return nil, false
}

// Refs returns the number of references to the cell l.
func (l *cons) Refs() int {
	return l.refs
}

// Slice returns the elements of the list l.
func (l *cons) Slice() []cell.I {
	cs := make([]cell.I, 0, l.Count())
	for ; l != nil; l = l.tail {
		cs = append(cs, l.head)
	}

	return cs
}

// Tail returns the rest of the list l (without acquiring it).
func (l *cons) Tail() *cons {
	return l.tail
}
