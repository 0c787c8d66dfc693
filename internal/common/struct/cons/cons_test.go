package cons

import (
	"testing"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/system/heap"
)

type word string

func (w word) Equal(c cell.I) bool { return c == w }
func (w word) Hash() uint32        { return cell.Text(0, string(w)) }
func (w word) Name() string        { return "word" }

func words(l *T) string {
	s := ""
	l.Each(func(c cell.I) bool {
		s += string(c.(word))

		return true
	})

	return s
}

func TestSharedTail(t *testing.T) {
	before := heap.Items()

	tail := New(word("b"), word("c"))
	a := Cons(word("a"), tail)
	z := Cons(word("z"), tail)

	if words(a) != "abc" || words(z) != "zbc" {
		t.Fatalf("unexpected lists %q and %q", words(a), words(z))
	}

	if tail.Refs() != 3 {
		t.Fatalf("expected 3 references to the shared tail, got %d", tail.Refs())
	}

	Release(a)

	if words(z) != "zbc" {
		t.Fatalf("releasing one list changed another: %q", words(z))
	}

	Release(z)
	Release(tail)

	if heap.Items() != before {
		t.Fatalf("expected %d heap items, got %d", before, heap.Items())
	}
}

func TestReverse(t *testing.T) {
	var l *T
	for _, w := range []word{"a", "b", "c"} {
		l = Weak(w, l)
	}

	l = Reverse(l)
	if words(l) != "abc" {
		t.Fatalf("expected abc, got %q", words(l))
	}

	Release(l)
}

func TestConcatAndDrop(t *testing.T) {
	a := New(word("a"), word("b"))
	b := New(word("c"))

	c := Concat(a, b)
	if words(c) != "abc" || c.Count() != 3 {
		t.Fatalf("expected abc, got %q", words(c))
	}

	d := Drop(c, 2)
	if words(d) != "c" || d != b {
		t.Fatalf("expected shared tail c, got %q", words(d))
	}

	if v, ok := c.Nth(1); !ok || v != word("b") {
		t.Fatalf("expected b at index 1, got %v", v)
	}

	if _, ok := c.Nth(3); ok {
		t.Fatal("expected no element at index 3")
	}

	Release(d)
	Release(c)
	Release(b)
	Release(a)
}
