// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/sequence"
	"github.com/michaelmacinnis/mal/internal/common/type/hashmap"
	"github.com/michaelmacinnis/mal/internal/common/type/list"
	"github.com/michaelmacinnis/mal/internal/common/type/set"
	"github.com/michaelmacinnis/mal/internal/common/type/sym"
	"github.com/michaelmacinnis/mal/internal/common/type/vector"
)

// quasiquote rewrites ast into an expression that builds it with cons,
// concat and vec, evaluating only the unquoted parts.
func quasiquote(ast cell.I) cell.I {
	switch {
	case list.Is(ast):
		l := list.To(ast)
		if arg, ok := unquote(l, "unquote"); ok {
			return arg
		}

		return build(l.Slice())

	case vector.Is(ast):
		return list.New(sym.New("vec"), build(sequence.Slice(vector.To(ast))))

	case sym.IsSymbol(ast), hashmap.Is(ast), set.Is(ast):
		return list.New(sym.New("quote"), ast)
	}

	return ast
}

func build(cs []cell.I) cell.I {
	acc := list.New()

	for i := len(cs) - 1; i >= 0; i-- {
		c := cs[i]

		if list.Is(c) {
			if arg, ok := unquote(list.To(c), "splice-unquote"); ok {
				acc = list.New(sym.New("concat"), arg, acc)

				continue
			}
		}

		acc = list.New(sym.New("cons"), quasiquote(c), acc)
	}

	return acc
}

// unquote returns the argument of (name arg).
func unquote(l *list.T, name string) (cell.I, bool) {
	if l.Count() != 2 || !sym.Named(l.First(), name) {
		return nil, false
	}

	arg, _ := l.Nth(1)

	return arg, true
}
