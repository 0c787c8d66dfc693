// Released under an MIT license. See LICENSE.

package ui

import (
	"reflect"
	"strings"
	"testing"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/literal"
)

type recorder struct {
	forms []string
	names []string
}

func (r *recorder) Complete(prefix string) []string {
	var cs []string

	for _, n := range r.names {
		if strings.HasPrefix(n, prefix) {
			cs = append(cs, n)
		}
	}

	return cs
}

func (r *recorder) Evaluate(c cell.I) {
	r.forms = append(r.forms, literal.String(c))
}

func TestBatch(t *testing.T) {
	r := &recorder{}

	err := Batch(r, strings.NewReader("(+ 1\n 2) [3]\n; comment\n\"multi\nline\" :k\n"))
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"(+ 1 2)", "[3]", `"multi\nline"`, ":k"}
	if !reflect.DeepEqual(r.forms, want) {
		t.Fatalf("Expected %q; got %q", want, r.forms)
	}
}

func TestBatchError(t *testing.T) {
	r := &recorder{}

	err := Batch(r, strings.NewReader("(a) (b"))
	if err == nil {
		t.Fatal("Expected an error for an unterminated list")
	}

	if len(r.forms) != 1 {
		t.Fatalf("Expected one form before the error; got %q", r.forms)
	}
}

func TestComplete(t *testing.T) {
	r := &recorder{names: []string{"map", "macro?", "meta", "list"}}

	tests := []struct {
		line  string
		pos   int
		head  string
		names []string
		tail  string
	}{
		{"(ma", 3, "(", []string{"macro?", "map"}, ""},
		{"(list (me x)", 9, "(list (", []string{"meta"}, " x)"},
		{"(list ", 6, "(list ", nil, ""},
	}

	for _, tt := range tests {
		head, names, tail := complete(r, tt.line, tt.pos)

		if head != tt.head || tail != tt.tail || !reflect.DeepEqual(names, tt.names) {
			t.Fatalf("Unexpected completion of %q at %d: %q %q %q",
				tt.line, tt.pos, head, names, tail)
		}
	}
}
