// Released under an MIT license. See LICENSE.

package gc

import (
	"testing"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
)

type node struct {
	Header

	frees int
	kids  []*node
}

func (n *node) Equal(c cell.I) bool { return n == c }
func (n *node) Hash() uint32        { return 0 }
func (n *node) Name() string        { return "node" }
func (n *node) Free()               { n.frees++ }

func (n *node) Walk(mark func(cell.I)) {
	for _, k := range n.kids {
		mark(k)
	}
}

type holder []cell.I

func (h holder) Walk(mark func(cell.I)) {
	for _, c := range h {
		mark(c)
	}
}

func alloc(kids ...*node) *node {
	n := &node{kids: kids}

	Register(n, 16)

	return n
}

func reset(t *testing.T) {
	t.Helper()

	Collect(true)

	if Count() != 0 {
		t.Fatalf("%d values survived between tests", Count())
	}
}

func TestCollectUnreachable(t *testing.T) {
	reset(t)

	a := alloc()
	b := alloc(a)
	c := alloc()

	unroot := Root(holder{b})
	defer unroot()

	if n := Collect(true); n != 1 {
		t.Fatalf("expected 1 value freed, got %d", n)
	}

	if a.frees != 0 || b.frees != 0 {
		t.Fatal("reachable value was freed")
	}

	if c.frees != 1 {
		t.Fatal("unreachable value was not freed")
	}

	unroot()

	if n := Collect(true); n != 2 {
		t.Fatalf("expected 2 values freed after unroot, got %d", n)
	}
}

func TestCycles(t *testing.T) {
	reset(t)

	a := alloc()
	b := alloc(a)
	a.kids = append(a.kids, b)

	if n := Collect(true); n != 2 {
		t.Fatalf("expected cycle to be freed, got %d", n)
	}

	if a.frees != 1 || b.frees != 1 {
		t.Fatal("each value should be freed exactly once")
	}
}

func TestPinAndRestore(t *testing.T) {
	reset(t)

	h := Height()

	a := alloc()
	Pin(a)

	b := alloc()
	Protect(holder{b})

	if Height() != h+2 {
		t.Fatalf("expected height %d, got %d", h+2, Height())
	}

	if n := Collect(true); n != 0 {
		t.Fatalf("pinned values were freed: %d", n)
	}

	Restore(h)

	if n := Collect(true); n != 2 {
		t.Fatalf("expected 2 values freed after restore, got %d", n)
	}
}

func TestRestoreUnderflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()

	Restore(Height() + 1)
}

func TestThreshold(t *testing.T) {
	reset(t)

	defer SetThreshold(0)

	SetThreshold(3)

	for i := 0; i < 3; i++ {
		alloc()
	}

	if n := Collect(false); n != 0 {
		t.Fatalf("collected below threshold: %d", n)
	}

	alloc()

	epoch := Epoch()

	if n := Collect(false); n != 4 {
		t.Fatalf("expected 4 values freed, got %d", n)
	}

	if Epoch() != epoch+1 {
		t.Fatal("epoch did not advance")
	}

	SetThreshold(-1)

	if Threshold() != DefaultThreshold {
		t.Fatalf("expected default threshold, got %d", Threshold())
	}
}
