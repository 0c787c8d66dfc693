// Released under an MIT license. See LICENSE.

// Package set provides mal's set type. Sets are hash tables without values.
package set

import (
	"strings"
	"unsafe"

	"github.com/michaelmacinnis/mal/internal/common"
	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/literal"
	"github.com/michaelmacinnis/mal/internal/common/interface/meta"
	"github.com/michaelmacinnis/mal/internal/common/struct/hash"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
)

const name = "set"

// T (set) wraps a hash table whose values are unused.
type T struct {
	gc.Header

	table *hash.T
	meta  cell.I
}

type set = T

// New creates a set holding cs. Duplicates collapse.
func New(cs ...cell.I) cell.I {
	h := hash.New(len(cs))

	for _, c := range cs {
		h.Add(c, nil)
	}

	return wrap(h)
}

// Conj returns a new set with cs added. The set s is unchanged.
func (s *set) Conj(cs ...cell.I) *T {
	h := s.table.Duplicate()

	for _, c := range cs {
		h.Add(c, nil)
	}

	return wrap(h)
}

// Contains returns true if c is in the set s.
func (s *set) Contains(c cell.I) bool {
	_, ok := s.table.Find(c)

	return ok
}

// Count returns the number of elements in the set s.
func (s *set) Count() int {
	return s.table.Count()
}

// Disj returns a new set without cs. The set s is unchanged.
func (s *set) Disj(cs ...cell.I) *T {
	h := s.table.Duplicate()

	for _, c := range cs {
		h.Remove(c)
	}

	return wrap(h)
}

// Each calls f with each element until f returns false.
func (s *set) Each(f func(cell.I) bool) {
	s.table.Each(func(k, _ cell.I) bool {
		return f(k)
	})
}

// Equal returns true if c is a set with the same elements.
func (s *set) Equal(c cell.I) bool {
	return Is(c) && s.table.Equal(To(c).table)
}

// Free releases the table of the set s.
func (s *set) Free() {
	s.table.Release()
}

// Hash returns the structural hash of the set s.
func (s *set) Hash() uint32 {
	return s.table.Hash(cell.SeedMap + 1)
}

// Literal returns the literal representation of the set s.
func (s *set) Literal() string {
	return "#{" + s.join(literal.String) + "}"
}

// Meta returns the metadata of the set s.
func (s *set) Meta() cell.I {
	return s.meta
}

// Name returns the name for a set type.
func (s *set) Name() string {
	return name
}

// String returns the text representation of the set s.
func (s *set) String() string {
	return "#{" + s.join(common.String) + "}"
}

// Walk marks every element and the metadata of the set s.
func (s *set) Walk(mark func(cell.I)) {
	mark(s.meta)

	s.Each(func(c cell.I) bool {
		mark(c)

		return true
	})
}

// WithMeta returns a copy of the set s with the metadata m.
func (s *set) WithMeta(m cell.I) cell.I {
	c := wrap(s.table.Duplicate())
	c.meta = m

	return c
}

func (s *set) join(f func(cell.I) string) string {
	cs := make([]string, 0, s.Count())

	s.Each(func(c cell.I) bool {
		cs = append(cs, f(c))

		return true
	})

	return strings.Join(cs, " ")
}

func wrap(table *hash.T) *T {
	s := &set{table: table, meta: null.Nil}

	gc.Register(s, unsafe.Sizeof(*s))

	return s
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t set

	// The set type is a cell.
	_ = cell.I(&t)

	// The set type lives in the arena.
	_ = gc.Object(&t)

	// The set type has a literal representation.
	_ = literal.I(&t)

	// The set type carries metadata.
	_ = meta.I(&t)

	// The set type is a stringer.
	_ = common.Stringer(&t)
}
