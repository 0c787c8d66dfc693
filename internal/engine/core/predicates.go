// Released under an MIT license. See LICENSE.

package core

import (
	"fmt"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/integer"
	"github.com/michaelmacinnis/mal/internal/common/interface/sequence"
	"github.com/michaelmacinnis/mal/internal/common/type/atom"
	"github.com/michaelmacinnis/mal/internal/common/type/boolean"
	"github.com/michaelmacinnis/mal/internal/common/type/function"
	"github.com/michaelmacinnis/mal/internal/common/type/hashmap"
	"github.com/michaelmacinnis/mal/internal/common/type/list"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
	"github.com/michaelmacinnis/mal/internal/common/type/octet"
	"github.com/michaelmacinnis/mal/internal/common/type/set"
	"github.com/michaelmacinnis/mal/internal/common/type/str"
	"github.com/michaelmacinnis/mal/internal/common/type/sym"
	"github.com/michaelmacinnis/mal/internal/common/type/vector"
)

func predicates() []Builtin {
	return []Builtin{
		is("nil?", null.Is),
		is("true?", func(c cell.I) bool { return c == boolean.True }),
		is("false?", func(c cell.I) bool { return c == boolean.False }),
		is("symbol?", sym.IsSymbol),
		is("keyword?", sym.IsKeyword),
		is("string?", str.Is),
		is("number?", isNumber),
		is("fn?", func(c cell.I) bool { return function.Is(c) && !function.To(c).IsMacro() }),
		is("macro?", func(c cell.I) bool { return function.Is(c) && function.To(c).IsMacro() }),
		is("list?", list.Is),
		is("vector?", vector.Is),
		is("map?", hashmap.Is),
		is("set?", set.Is),
		is("sequential?", isOrdered),
		is("atom?", atom.Is),
		is("byte?", octet.Is),
		{"empty?", 1, 1, nil, empty},
		{"contains?", 2, 2, nil, contains},
	}
}

func contains(args []cell.I) (cell.I, error) {
	c, k := args[0], args[1]

	found := false

	switch {
	case hashmap.Is(c):
		_, found = hashmap.To(c).Get(k)
	case set.Is(c):
		found = set.To(c).Contains(k)
	case vector.Is(c):
		if i, ok := integer.Value(k); ok {
			_, found = vector.To(c).Nth(i)
		}
	case !null.Is(c):
		return nil, fmt.Errorf("expected a map, set or vector, passed %s", c.Name())
	}

	return boolean.Bool(found), nil
}

func empty(args []cell.I) (cell.I, error) {
	n, err := count(args[0])
	if err != nil {
		return nil, err
	}

	return boolean.Bool(n == 0), nil
}

// count returns the number of elements in c.
func count(c cell.I) (int, error) {
	switch {
	case null.Is(c):
		return 0, nil
	case sequence.Is(c):
		return sequence.To(c).Count(), nil
	case hashmap.Is(c):
		return hashmap.To(c).Count(), nil
	case str.Is(c):
		return len(str.To(c).String()), nil
	}

	return 0, fmt.Errorf("cannot count %s", c.Name())
}

func is(name string, p func(cell.I) bool) Builtin {
	return Builtin{name, 1, 1, nil, func(args []cell.I) (cell.I, error) {
		return boolean.Bool(p(args[0])), nil
	}}
}
