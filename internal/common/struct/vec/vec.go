// Released under an MIT license. See LICENSE.

// Package vec provides a block-structured persistent array.
//
// Elements live in fixed-size blocks. Blocks are reference counted and
// shared between duplicates; a shared block is copied before it is written.
package vec

import (
	"unsafe"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/system/heap"
)

// BlockSize is the number of elements in each block.
const BlockSize = 8

type block struct {
	items [BlockSize]cell.I
	refs  int
}

// T (vec) is a persistent array of cells.
type T struct {
	blocks []*block
	count  int
	offset int
}

type vec = T

const (
	blockSize = unsafe.Sizeof(block{})
	vecSize   = unsafe.Sizeof(vec{})
)

// New creates an empty vec.
func New() *vec {
	heap.Alloc(vecSize)

	return &vec{}
}

// From creates a vec holding cs.
func From(cs ...cell.I) *vec {
	v := New()
	for _, c := range cs {
		v.Append(c)
	}

	return v
}

// Concat creates a new vec with the elements of a followed by those of b.
func Concat(a, b *vec) *vec {
	v := New()

	a.Each(func(c cell.I) bool {
		v.Append(c)

		return true
	})

	b.Each(func(c cell.I) bool {
		v.Append(c)

		return true
	})

	return v
}

// Append adds c after the last element.
func (v *vec) Append(c cell.I) {
	i := v.offset + v.count

	if i/BlockSize == len(v.blocks) {
		v.blocks = append(v.blocks, fresh())
	}

	v.own(i / BlockSize).items[i%BlockSize] = c
	v.count++
}

// Count returns the number of elements.
func (v *vec) Count() int {
	return v.count
}

// Duplicate returns a vec that shares every block with v.
func (v *vec) Duplicate() *vec {
	d := New()

	d.blocks = make([]*block, len(v.blocks))
	d.count = v.count
	d.offset = v.offset

	for i, b := range v.blocks {
		b.refs++
		d.blocks[i] = b
	}

	return d
}

// Each calls f with each element, in index order, until f returns false.
func (v *vec) Each(f func(cell.I) bool) {
	for i := 0; i < v.count; i++ {
		if !f(v.at(i)) {
			return
		}
	}
}

// Get returns the element at index i, if there is one.
func (v *vec) Get(i int) (cell.I, bool) {
	if i < 0 || i >= v.count {
		return nil, false
	}

	return v.at(i), true
}

// Prepend adds c before the first element.
func (v *vec) Prepend(c cell.I) {
	if v.offset == 0 {
		v.blocks = append([]*block{fresh()}, v.blocks...)
		v.offset = BlockSize
	}

	v.offset--
	v.own(v.offset / BlockSize).items[v.offset%BlockSize] = c
	v.count++
}

// Release drops every block reference held by v.
func (v *vec) Release() {
	for _, b := range v.blocks {
		b.refs--
		if b.refs < 0 {
			panic("vector block released too many times")
		}

		if b.refs == 0 {
			heap.Free(blockSize)
		}
	}

	v.blocks = nil
	v.count = 0
	v.offset = 0

	heap.Free(vecSize)
}

// Shared returns the reference count of the block holding index i.
func (v *vec) Shared(i int) int {
	return v.blocks[(v.offset+i)/BlockSize].refs
}

// Slice creates a new vec holding n elements starting at index from.
func (v *vec) Slice(from, n int) *vec {
	s := New()

	for i := from; i < from+n && i < v.count; i++ {
		s.Append(v.at(i))
	}

	return s
}

// Update replaces the element at index i with c.
func (v *vec) Update(i int, c cell.I) bool {
	if i < 0 || i >= v.count {
		return false
	}

	j := v.offset + i

	v.own(j / BlockSize).items[j%BlockSize] = c

	return true
}

func (v *vec) at(i int) cell.I {
	j := v.offset + i

	return v.blocks[j/BlockSize].items[j%BlockSize]
}

// Own returns block n, copying it first if it is shared.
func (v *vec) own(n int) *block {
	b := v.blocks[n]
	if b.refs == 1 {
		return b
	}

	c := fresh()
	c.items = b.items

	b.refs--
	v.blocks[n] = c

	return c
}

func fresh() *block {
	heap.Alloc(blockSize)

	return &block{refs: 1}
}
