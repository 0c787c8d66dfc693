// Released under an MIT license. See LICENSE.

// Package hashmap provides mal's map type.
package hashmap

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

const name = "map"

// T (hashmap) wraps a hash table of keys to values.
type T struct {
	gc.Header

	table *hash.T
	meta  cell.I
}

type hashmap = T

// New creates a map from alternating keys and values.
// The caller must ensure len(kvs) is even.
func New(kvs ...cell.I) cell.I {
	h := hash.New(len(kvs) / 2)

	for i := 0; i+1 < len(kvs); i += 2 {
		h.Add(kvs[i], kvs[i+1])
	}

	return Wrap(h)
}

// Wrap creates a map that takes ownership of one reference to table.
func Wrap(table *hash.T) *T {
	m := &hashmap{table: table, meta: null.Nil}

	gc.Register(m, unsafe.Sizeof(*m))

	return m
}

// Assoc returns a new map with the alternating keys and values in kvs added.
// The map m is unchanged.
func (m *hashmap) Assoc(kvs ...cell.I) *T {
	h := m.table.Duplicate()

	for i := 0; i+1 < len(kvs); i += 2 {
		h.Add(kvs[i], kvs[i+1])
	}

	return Wrap(h)
}

// Count returns the number of entries in the map m.
func (m *hashmap) Count() int {
	return m.table.Count()
}

// Dissoc returns a new map without the keys ks. The map m is unchanged.
func (m *hashmap) Dissoc(ks ...cell.I) *T {
	h := m.table.Duplicate()

	for _, k := range ks {
		h.Remove(k)
	}

	return Wrap(h)
}

// Each calls f with each key and value until f returns false.
func (m *hashmap) Each(f func(k, v cell.I) bool) {
	m.table.Each(f)
}

// Equal returns true if c is a map with equal entries.
func (m *hashmap) Equal(c cell.I) bool {
	return Is(c) && m.table.Equal(To(c).table)
}

// Free releases the table of the map m.
func (m *hashmap) Free() {
	m.table.Release()
}

// Get returns the value for the key k.
func (m *hashmap) Get(k cell.I) (cell.I, bool) {
	return m.table.Find(k)
}

// Hash returns the structural hash of the map m.
func (m *hashmap) Hash() uint32 {
	return m.table.Hash(cell.SeedMap)
}

// Literal returns the literal representation of the map m.
func (m *hashmap) Literal() string {
	return "{" + m.join(literal.String) + "}"
}

// Meta returns the metadata of the map m.
func (m *hashmap) Meta() cell.I {
	return m.meta
}

// Name returns the name for a map type.
func (m *hashmap) Name() string {
	return name
}

// String returns the text representation of the map m.
func (m *hashmap) String() string {
	return "{" + m.join(common.String) + "}"
}

// Walk marks every key, value and the metadata of the map m.
func (m *hashmap) Walk(mark func(cell.I)) {
	mark(m.meta)

	m.table.Each(func(k, v cell.I) bool {
		mark(k)
		mark(v)

		return true
	})
}

// WithMeta returns a copy of the map m with the metadata md.
func (m *hashmap) WithMeta(md cell.I) cell.I {
	c := Wrap(m.table.Duplicate())
	c.meta = md

	return c
}

func (m *hashmap) join(f func(cell.I) string) string {
	var b strings.Builder

	first := true

	m.table.Each(func(k, v cell.I) bool {
		if !first {
			b.WriteByte(' ')
		}

		first = false

		b.WriteString(f(k))
		b.WriteByte(' ')
		b.WriteString(f(v))

		return true
	})

	return b.String()
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t hashmap

	// The hashmap type is a cell.
	_ = cell.I(&t)

	// The hashmap type lives in the arena.
	_ = gc.Object(&t)

	// The hashmap type has a literal representation.
	_ = literal.I(&t)

	// The hashmap type carries metadata.
	_ = meta.I(&t)

	// The hashmap type is a stringer.
	_ = common.Stringer(&t)
}
