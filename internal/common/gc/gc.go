// Released under an MIT license. See LICENSE.

// Package gc provides the arena of all live values and the mark/sweep
// collector that reclaims them.
//
// Values are shells. The containers beneath them (list cells, vector
// blocks, map entries) are reference counted and released by each value's
// Free method when the value itself is swept.
package gc

import (
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/system/heap"
	"github.com/tliron/commonlog"
)

// DefaultThreshold is the initial live-value count that triggers collection.
const DefaultThreshold = 64

// Header is embedded by every heap-allocated value.
type Header struct {
	next   Object
	size   uintptr
	marked bool
	freed  bool
}

// GC returns the header. Embedding Header promotes this method.
func (h *Header) GC() *Header {
	return h
}

// Object is a value that lives in the arena.
type Object interface {
	cell.I

	GC() *Header
	Walk(mark func(cell.I))
	Free()
}

// Walker is anything, like an environment, that can mark the values it holds.
type Walker interface {
	Walk(mark func(cell.I))
}

type arena struct {
	count     int
	epoch     uint64
	head      Object
	pinned    []interface{}
	roots     []*Walker
	threshold int
}

//nolint:gochecknoglobals
var (
	all = &arena{threshold: DefaultThreshold}
	log = commonlog.GetLogger("mal.gc")
)

// Collect runs a collection if the live-value count exceeds the threshold,
// or unconditionally if force is true. It returns the number of values freed.
func Collect(force bool) int {
	if !force && all.count <= all.threshold {
		return 0
	}

	before := heap.Items()

	all.epoch++

	for _, r := range all.roots {
		(*r).Walk(Mark)
	}

	for _, p := range all.pinned {
		switch p := p.(type) {
		case cell.I:
			Mark(p)
		case Walker:
			p.Walk(Mark)
		}
	}

	freed := all.sweep()

	if n := 2 * all.count; n > all.threshold {
		all.threshold = n
	}

	log.Debugf("collected %d values, %d live, %d heap items released, next at %d",
		freed, all.count, before-heap.Items(), all.threshold)

	return freed
}

// Count returns the number of values in the arena.
func Count() int {
	return all.count
}

// Epoch returns the number of the current (or most recent) mark phase.
func Epoch() uint64 {
	return all.epoch
}

// Height returns the height of the pinned-temporaries stack.
func Height() int {
	return len(all.pinned)
}

// Mark marks c and everything reachable from it.
func Mark(c cell.I) {
	o, ok := c.(Object)
	if !ok {
		return
	}

	h := o.GC()
	if h.marked {
		return
	}

	h.marked = true

	o.Walk(Mark)
}

// Pin keeps c alive until the stack is restored below its position.
func Pin(c cell.I) cell.I {
	all.pinned = append(all.pinned, c)

	return c
}

// Protect keeps everything reachable from w alive until the stack is
// restored below its position.
func Protect(w Walker) {
	all.pinned = append(all.pinned, w)
}

// Register links o into the arena.
func Register(o Object, size uintptr) {
	heap.Alloc(size)

	h := o.GC()
	h.next = all.head
	h.size = size

	all.head = o
	all.count++
}

// Restore pops the pinned-temporaries stack back to height n.
func Restore(n int) {
	if n > len(all.pinned) || n < 0 {
		panic("pinned stack underflow")
	}

	for i := n; i < len(all.pinned); i++ {
		all.pinned[i] = nil
	}

	all.pinned = all.pinned[:n]
}

// Root adds w to the permanent roots. The returned function removes it.
func Root(w Walker) func() {
	r := &w

	all.roots = append(all.roots, r)

	return func() {
		for i, v := range all.roots {
			if v == r {
				all.roots = append(all.roots[:i], all.roots[i+1:]...)

				return
			}
		}
	}
}

// SetThreshold sets the live-value count that triggers collection.
func SetThreshold(n int) {
	if n <= 0 {
		n = DefaultThreshold
	}

	all.threshold = n
}

// Threshold returns the live-value count that triggers collection.
func Threshold() int {
	return all.threshold
}

func (a *arena) sweep() int {
	freed := 0

	var prev Object

	for o := a.head; o != nil; {
		h := o.GC()
		next := h.next

		if h.marked {
			h.marked = false
			prev = o
			o = next

			continue
		}

		if prev == nil {
			a.head = next
		} else {
			prev.GC().next = next
		}

		h.next = nil

		if !h.freed {
			h.freed = true

			o.Free()
			heap.Free(h.size)
		}

		a.count--
		freed++

		o = next
	}

	return freed
}
