package vec

import (
	"strconv"
	"testing"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/system/heap"
)

type n int

func (i n) Equal(c cell.I) bool { return c == i }
func (i n) Hash() uint32        { return uint32(i) }
func (i n) Name() string        { return "n" }

func digits(v *T) string {
	s := ""
	v.Each(func(c cell.I) bool {
		s += strconv.Itoa(int(c.(n)))

		return true
	})

	return s
}

func TestAppendAcrossBlocks(t *testing.T) {
	v := New()
	for i := 0; i < 3*BlockSize+1; i++ {
		v.Append(n(i % 10))
	}

	if v.Count() != 3*BlockSize+1 {
		t.Fatalf("expected %d elements, got %d", 3*BlockSize+1, v.Count())
	}

	for i := 0; i < v.Count(); i++ {
		c, ok := v.Get(i)
		if !ok || c != n(i%10) {
			t.Fatalf("index %d: expected %d, got %v", i, i%10, c)
		}
	}

	if _, ok := v.Get(v.Count()); ok {
		t.Fatal("expected no element past the end")
	}

	v.Release()
}

func TestPrepend(t *testing.T) {
	v := From(n(8), n(9))

	for i := 7; i >= 0; i-- {
		v.Prepend(n(i))
	}

	if got := digits(v); got != "0123456789" {
		t.Fatalf("expected 0123456789, got %s", got)
	}

	v.Append(n(0))

	if got := digits(v); got != "01234567890" {
		t.Fatalf("expected 01234567890, got %s", got)
	}

	v.Release()
}

func TestUpdateCopiesSharedBlock(t *testing.T) {
	before := heap.Items()

	v := From(n(1), n(2), n(3))
	d := v.Duplicate()

	if d.Shared(0) != 2 {
		t.Fatalf("expected block to be shared, refs %d", d.Shared(0))
	}

	d.Update(1, n(9))

	if got := digits(v); got != "123" {
		t.Fatalf("original changed: %s", got)
	}

	if got := digits(d); got != "193" {
		t.Fatalf("expected 193, got %s", got)
	}

	if v.Shared(0) != 1 || d.Shared(0) != 1 {
		t.Fatal("expected both blocks to be unshared after the write")
	}

	d.Append(n(4))
	v.Append(n(5))

	if digits(v) != "1235" || digits(d) != "1934" {
		t.Fatalf("unexpected contents %s and %s", digits(v), digits(d))
	}

	d.Release()
	v.Release()

	if heap.Items() != before {
		t.Fatalf("expected %d heap items, got %d", before, heap.Items())
	}
}

func TestSliceAndConcat(t *testing.T) {
	v := From(n(1), n(2), n(3), n(4))

	s := v.Slice(1, 2)
	if got := digits(s); got != "23" {
		t.Fatalf("expected 23, got %s", got)
	}

	c := Concat(s, v)
	if got := digits(c); got != "231234" {
		t.Fatalf("expected 231234, got %s", got)
	}

	c.Release()
	s.Release()
	v.Release()
}
