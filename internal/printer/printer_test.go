// Released under an MIT license. See LICENSE.

package printer

import (
	"testing"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/type/boolean"
	"github.com/michaelmacinnis/mal/internal/common/type/float"
	"github.com/michaelmacinnis/mal/internal/common/type/hashmap"
	"github.com/michaelmacinnis/mal/internal/common/type/list"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
	"github.com/michaelmacinnis/mal/internal/common/type/num"
	"github.com/michaelmacinnis/mal/internal/common/type/octet"
	"github.com/michaelmacinnis/mal/internal/common/type/str"
	"github.com/michaelmacinnis/mal/internal/common/type/sym"
	"github.com/michaelmacinnis/mal/internal/common/type/vector"
)

func TestPrint(t *testing.T) {
	for _, tc := range []struct {
		value    cell.I
		readably string
		plain    string
	}{
		{null.Nil, "nil", "nil"},
		{boolean.True, "true", "true"},
		{num.New(-42), "-42", "-42"},
		{float.New(1.5), "1.5", "1.5"},
		{float.New(3), "3.0", "3"},
		{str.New("a\"b\n"), `"a\"b\n"`, "a\"b\n"},
		{octet.New('x'), `\x`, "x"},
		{sym.Keyword("k"), ":k", ":k"},
		{list.New(sym.New("f"), str.New("s")), `(f "s")`, "(f s)"},
		{vector.New(), "[]", "[]"},
		{hashmap.New(sym.Keyword("a"), str.New("b")), `{:a "b"}`, "{:a b}"},
	} {
		if got := Print(tc.value, true); got != tc.readably {
			t.Fatalf("Expected readable %s; got %s", tc.readably, got)
		}

		if got := Print(tc.value, false); got != tc.plain {
			t.Fatalf("Expected plain %q; got %q", tc.plain, got)
		}
	}
}

func TestJoin(t *testing.T) {
	cs := []cell.I{str.New("a"), num.New(1), str.New("")}

	if got := Join(cs, " ", true); got != `"a" 1 ""` {
		t.Fatalf("Unexpected readable join: %s", got)
	}

	if got := Join(cs, "", false); got != "a1" {
		t.Fatalf("Unexpected plain join: %s", got)
	}
}
