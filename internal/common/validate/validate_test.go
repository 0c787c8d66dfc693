package validate

import (
	"testing"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
)

type word string

func (w word) Equal(c cell.I) bool { return c == w }
func (w word) Hash() uint32        { return 0 }
func (w word) Name() string        { return string(w) }

//nolint:gochecknoglobals
var wordKind = Kind{Name: "word", Is: func(c cell.I) bool {
	_, ok := c.(word)

	return ok
}}

func TestArgs(t *testing.T) {
	for _, tc := range []struct {
		args     []cell.I
		min, max int
		kinds    []Kind
		err      string
	}{
		{[]cell.I{word("a")}, 1, 1, nil, ""},
		{nil, 1, 1, nil, "expected 1 argument, passed 0"},
		{[]cell.I{word("a"), word("b"), word("c")}, 2, 2, nil,
			"expected 2 arguments, passed 3"},
		{nil, 1, -1, nil, "expected at least 1 argument, passed 0"},
		{[]cell.I{word("a")}, 2, 3, nil, "expected 2 to 3 arguments, passed 1"},
		{[]cell.I{word("a"), word("b")}, 0, -1, []Kind{Any, wordKind}, ""},
		{[]cell.I{word("a")}, 0, -1, []Kind{Any, wordKind}, ""},
	} {
		err := Args(tc.args, tc.min, tc.max, tc.kinds...)

		switch {
		case tc.err == "" && err != nil:
			t.Fatalf("unexpected error: %v", err)
		case tc.err != "" && (err == nil || err.Error() != tc.err):
			t.Fatalf("expected %q, got %v", tc.err, err)
		}
	}
}

func TestKindMismatch(t *testing.T) {
	never := Kind{Name: "nothing", Is: func(cell.I) bool { return false }}

	err := Args([]cell.I{word("string")}, 1, 1, never)
	if err == nil || err.Error() != "argument 1: expected nothing, passed string" {
		t.Fatalf("unexpected error: %v", err)
	}

	if All([]cell.I{word("a"), word("b")}, wordKind) != nil {
		t.Fatal("expected every argument to be a word")
	}

	if All([]cell.I{word("a")}, never) == nil {
		t.Fatal("expected a mismatch")
	}
}
