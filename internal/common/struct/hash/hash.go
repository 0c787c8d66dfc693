// Released under an MIT license. See LICENSE.

// Package hash provides mal's hash table. It backs both maps and sets.
//
// Tables are open hashed. The bucket count is taken from a fixed ladder of
// small primes and grows whenever a new key would share a bucket.
package hash

import (
	"unsafe"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/system/heap"
)

type entry struct {
	key   cell.I
	value cell.I
	next  *entry
}

// T (hash) maps keys to values.
type T struct {
	buckets []*entry
	count   int
	refs    int
}

type hash = T

const (
	entrySize = unsafe.Sizeof(entry{})
	hashSize  = unsafe.Sizeof(hash{})
)

//nolint:gochecknoglobals
var ladder = [...]int{3, 7, 17, 37, 59, 127, 251}

// New creates a hash with room for at least n entries before it must grow.
func New(n int) *hash {
	heap.Alloc(hashSize)

	return &hash{buckets: make([]*entry, next(n)), refs: 1}
}

// Acquire adds a reference to h and returns it.
func (h *hash) Acquire() *hash {
	h.refs++

	return h
}

// Add associates k with v. An existing equal key is overwritten in place.
func (h *hash) Add(k, v cell.I) {
	b := h.bucket(k)

	for e := h.buckets[b]; e != nil; e = e.next {
		if e.key.Equal(k) {
			e.value = v

			return
		}
	}

	if h.buckets[b] != nil && len(h.buckets) < ladder[len(ladder)-1] {
		h.rebuild(grow(len(h.buckets)))

		b = h.bucket(k)
	}

	heap.Alloc(entrySize)

	h.buckets[b] = &entry{key: k, value: v, next: h.buckets[b]}
	h.count++
}

// Count returns the number of entries in h.
func (h *hash) Count() int {
	return h.count
}

// Duplicate copies the structure of h. Keys and values are shared.
func (h *hash) Duplicate() *hash {
	d := New(0)

	d.buckets = make([]*entry, len(h.buckets))

	for i, e := range h.buckets {
		var last *entry

		for ; e != nil; e = e.next {
			heap.Alloc(entrySize)

			c := &entry{key: e.key, value: e.value}
			if last == nil {
				d.buckets[i] = c
			} else {
				last.next = c
			}

			last = c
		}
	}

	d.count = h.count

	return d
}

// Each calls f with each key and value until f returns false.
func (h *hash) Each(f func(k, v cell.I) bool) {
	for _, e := range h.buckets {
		for ; e != nil; e = e.next {
			if !f(e.key, e.value) {
				return
			}
		}
	}
}

// Equal returns true if h and o hold equal keys mapped to equal values.
func (h *hash) Equal(o *hash) bool {
	if h.count != o.count {
		return false
	}

	equal := true

	h.Each(func(k, v cell.I) bool {
		w, ok := o.Find(k)
		equal = ok && same(v, w)

		return equal
	})

	return equal
}

// Find returns the value associated with k.
func (h *hash) Find(k cell.I) (cell.I, bool) {
	for e := h.buckets[h.bucket(k)]; e != nil; e = e.next {
		if e.key.Equal(k) {
			return e.value, true
		}
	}

	return nil, false
}

// Hash returns a structural hash of h that does not depend on bucket order.
func (h *hash) Hash(seed uint32) uint32 {
	sum := seed

	h.Each(func(k, v cell.I) bool {
		x := k.Hash()
		if v != nil {
			x = cell.Mix(x, v.Hash())
		}

		sum = (sum + x) % cell.Modulus

		return true
	})

	return sum
}

// Release drops a reference to h, freeing its entries when none remain.
func (h *hash) Release() {
	h.refs--
	if h.refs > 0 {
		return
	}

	if h.refs < 0 {
		panic("hash released too many times")
	}

	for i, e := range h.buckets {
		for ; e != nil; e = e.next {
			heap.Free(entrySize)
		}

		h.buckets[i] = nil
	}

	h.count = 0

	heap.Free(hashSize)
}

// Remove deletes k from h, returning true if it was present.
func (h *hash) Remove(k cell.I) bool {
	b := h.bucket(k)

	var prev *entry

	for e := h.buckets[b]; e != nil; e = e.next {
		if e.key.Equal(k) {
			if prev == nil {
				h.buckets[b] = e.next
			} else {
				prev.next = e.next
			}

			heap.Free(entrySize)

			h.count--

			return true
		}

		prev = e
	}

	return false
}

// Size returns the number of buckets in h.
func (h *hash) Size() int {
	return len(h.buckets)
}

func (h *hash) bucket(k cell.I) int {
	return int(k.Hash() % uint32(len(h.buckets)))
}

func (h *hash) rebuild(n int) {
	old := h.buckets

	h.buckets = make([]*entry, n)

	for _, e := range old {
		for e != nil {
			next := e.next

			b := h.bucket(e.key)
			e.next = h.buckets[b]
			h.buckets[b] = e

			e = next
		}
	}
}

// Grow returns the next ladder size above n.
func grow(n int) int {
	for _, s := range ladder {
		if s > n {
			return s
		}
	}

	return ladder[len(ladder)-1]
}

// Next returns the smallest ladder size that is at least n.
func next(n int) int {
	for _, s := range ladder {
		if s >= n {
			return s
		}
	}

	return ladder[len(ladder)-1]
}

func same(a, b cell.I) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Equal(b)
}
