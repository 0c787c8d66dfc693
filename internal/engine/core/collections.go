// Released under an MIT license. See LICENSE.

package core

import (
	"errors"
	"fmt"

	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/integer"
	"github.com/michaelmacinnis/mal/internal/common/interface/sequence"
	"github.com/michaelmacinnis/mal/internal/common/struct/cons"
	"github.com/michaelmacinnis/mal/internal/common/struct/vec"
	"github.com/michaelmacinnis/mal/internal/common/type/atom"
	"github.com/michaelmacinnis/mal/internal/common/type/hashmap"
	"github.com/michaelmacinnis/mal/internal/common/type/list"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
	"github.com/michaelmacinnis/mal/internal/common/type/num"
	"github.com/michaelmacinnis/mal/internal/common/type/set"
	"github.com/michaelmacinnis/mal/internal/common/type/str"
	"github.com/michaelmacinnis/mal/internal/common/type/sym"
	"github.com/michaelmacinnis/mal/internal/common/type/vector"
	"github.com/michaelmacinnis/mal/internal/common/validate"
	"github.com/michaelmacinnis/mal/internal/engine/eval"
)

var errIndexOutOfRange = errors.New("index out of range") //nolint:gochecknoglobals

//nolint:gochecknoglobals
var (
	collection = validate.Kind{Name: "collection", Is: func(c cell.I) bool {
		return hashmap.Is(c) || sequence.Is(c)
	}}
	seqable = validate.Kind{Name: "sequence", Is: func(c cell.I) bool {
		return null.Is(c) || sequence.Is(c)
	}}
	named = validate.Kind{Name: "string, symbol or keyword", Is: func(c cell.I) bool {
		return str.Is(c) || sym.Is(c)
	}}
)

func constructors() []Builtin {
	return []Builtin{
		{"list", 0, -1, nil, func(args []cell.I) (cell.I, error) {
			return list.New(args...), nil
		}},
		{"vector", 0, -1, nil, func(args []cell.I) (cell.I, error) {
			return vector.New(args...), nil
		}},
		{"hash-map", 0, -1, nil, func(args []cell.I) (cell.I, error) {
			if len(args)%2 != 0 {
				return nil, errors.New("expected an even number of arguments")
			}

			return hashmap.New(args...), nil
		}},
		{"hash-set", 0, -1, nil, func(args []cell.I) (cell.I, error) {
			return set.New(args...), nil
		}},
		{"vec", 1, 1, []validate.Kind{seqable}, func(args []cell.I) (cell.I, error) {
			if vector.Is(args[0]) {
				return args[0], nil
			}

			return vector.New(elements(args[0])...), nil
		}},
		{"symbol", 1, 1, []validate.Kind{text}, func(args []cell.I) (cell.I, error) {
			return sym.New(str.To(args[0]).String()), nil
		}},
		{"keyword", 1, 1, []validate.Kind{named}, func(args []cell.I) (cell.I, error) {
			if sym.IsKeyword(args[0]) {
				return args[0], nil
			}

			return sym.Keyword(name(args[0])), nil
		}},
		{"atom", 1, 1, nil, func(args []cell.I) (cell.I, error) {
			return atom.New(args[0]), nil
		}},
	}
}

func sequences() []Builtin {
	return []Builtin{
		{"cons", 2, 2, []validate.Kind{value, seqable}, prepend},
		{"concat", 0, -1, nil, concat},
		{"conj", 1, -1, []validate.Kind{orNil(collection)}, conj},
		{"first", 1, 1, []validate.Kind{seqable}, first},
		{"rest", 1, 1, []validate.Kind{seqable}, rest},
		{"nth", 2, 2, []validate.Kind{ordered, integral}, nth},
		{"count", 1, 1, nil, func(args []cell.I) (cell.I, error) {
			n, err := count(args[0])
			if err != nil {
				return nil, err
			}

			return num.New(int32(n)), nil
		}},
		{"seq", 1, 1, nil, seq},
		{"apply", 1, -1, []validate.Kind{callable}, apply},
		{"map", 2, 2, []validate.Kind{callable, seqable}, mapped},
		{"reverse", 1, 1, []validate.Kind{seqable}, reverse},
		{"into", 2, 2, []validate.Kind{orNil(collection), seqable}, into},
		{"subvec", 2, 3, []validate.Kind{vectorKind, integral, integral}, subvec},
	}
}

func apply(args []cell.I) (cell.I, error) {
	n := len(args) - 1
	if n == 0 {
		return eval.Apply(args[0], nil)
	}

	last := args[n]
	if !seqable.Is(last) {
		return nil, fmt.Errorf("argument %d: expected sequence, passed %s", n+1, last.Name())
	}

	spread := append(append([]cell.I{}, args[1:n]...), elements(last)...)

	return eval.Apply(args[0], spread)
}

// concat shares the cells of the final list argument.
func concat(args []cell.I) (cell.I, error) {
	if err := validate.All(args, seqable); err != nil {
		return nil, err
	}

	n := len(args)
	if n == 0 {
		return list.New(), nil
	}

	var l *cons.T

	if last := args[n-1]; list.Is(last) {
		l = cons.Acquire(list.To(last).Cells())
	} else {
		l = cons.New(elements(last)...)
	}

	for i := n - 2; i >= 0; i-- {
		cs := elements(args[i])
		for j := len(cs) - 1; j >= 0; j-- {
			l = cons.Weak(cs[j], l)
		}
	}

	return list.Wrap(l), nil
}

func conj(args []cell.I) (cell.I, error) {
	return into([]cell.I{args[0], list.New(args[1:]...)})
}

func first(args []cell.I) (cell.I, error) {
	c := args[0]

	switch {
	case null.Is(c):
		return null.Nil, nil
	case list.Is(c):
		return list.To(c).First(), nil
	}

	v := cell.I(null.Nil)

	sequence.To(c).Each(func(e cell.I) bool {
		v = e

		return false
	})

	return v, nil
}

func into(args []cell.I) (cell.I, error) {
	to, from := args[0], elements(args[1])

	switch {
	case null.Is(to) || list.Is(to):
		var l *cons.T
		if list.Is(to) {
			l = cons.Acquire(list.To(to).Cells())
		}

		for _, c := range from {
			l = cons.Weak(c, l)
		}

		return list.Wrap(l), nil

	case vector.Is(to):
		v := vector.To(to).Items().Duplicate()
		for _, c := range from {
			v.Append(c)
		}

		return vector.Wrap(v), nil

	case set.Is(to):
		return set.To(to).Conj(from...), nil

	case hashmap.Is(to):
		kvs := make([]cell.I, 0, len(from)*2)

		for _, c := range from {
			if hashmap.Is(c) {
				hashmap.To(c).Each(func(k, v cell.I) bool {
					kvs = append(kvs, k, v)

					return true
				})

				continue
			}

			if !vector.Is(c) || vector.To(c).Count() != 2 {
				return nil, fmt.Errorf("expected a map or [key value] vector, passed %s", c.Name())
			}

			k, _ := vector.To(c).Nth(0)
			v, _ := vector.To(c).Nth(1)
			kvs = append(kvs, k, v)
		}

		return hashmap.To(to).Assoc(kvs...), nil
	}

	return nil, fmt.Errorf("cannot add to %s", to.Name())
}

// mapped calls f on each element. Each result is pinned until the
// caller's frame is restored.
func mapped(args []cell.I) (cell.I, error) {
	f, cs := args[0], elements(args[1])

	vs := make([]cell.I, len(cs))

	for i, c := range cs {
		v, err := eval.Apply(f, []cell.I{c})
		if err != nil {
			return nil, err
		}

		vs[i] = gc.Pin(v)
	}

	return list.New(vs...), nil
}

func nth(args []cell.I) (cell.I, error) {
	i, _ := integer.Value(args[1])

	v, ok := args[0].(sequence.Ordered).Nth(i)
	if !ok {
		return nil, fmt.Errorf("%w: %d", errIndexOutOfRange, i)
	}

	return v, nil
}

func prepend(args []cell.I) (cell.I, error) {
	x, s := args[0], args[1]

	if list.Is(s) {
		return list.Wrap(cons.Cons(x, list.To(s).Cells())), nil
	}

	return list.New(append([]cell.I{x}, elements(s)...)...), nil
}

func rest(args []cell.I) (cell.I, error) {
	c := args[0]

	switch {
	case null.Is(c):
		return list.New(), nil
	case list.Is(c):
		return list.To(c).Rest(), nil
	}

	cs := elements(c)
	if len(cs) == 0 {
		return list.New(), nil
	}

	return list.New(cs[1:]...), nil
}

func reverse(args []cell.I) (cell.I, error) {
	c := args[0]

	if vector.Is(c) {
		v := vec.New()

		vector.To(c).Each(func(e cell.I) bool {
			v.Prepend(e)

			return true
		})

		return vector.Wrap(v), nil
	}

	var l *cons.T

	for _, e := range elements(c) {
		l = cons.Weak(e, l)
	}

	return list.Wrap(l), nil
}

func seq(args []cell.I) (cell.I, error) {
	c := args[0]

	switch {
	case null.Is(c):
		return null.Nil, nil

	case str.Is(c):
		s := str.To(c).String()
		if s == "" {
			return null.Nil, nil
		}

		cs := []cell.I{}
		for _, r := range s {
			cs = append(cs, str.New(string(r)))
		}

		return list.New(cs...), nil

	case sequence.Is(c):
		if sequence.To(c).Count() == 0 {
			return null.Nil, nil
		}

		if list.Is(c) {
			return c, nil
		}

		return list.New(elements(c)...), nil

	case hashmap.Is(c):
		if hashmap.To(c).Count() == 0 {
			return null.Nil, nil
		}

		var cs []cell.I

		hashmap.To(c).Each(func(k, v cell.I) bool {
			cs = append(cs, gc.Pin(vector.New(k, v)))

			return true
		})

		return list.New(cs...), nil
	}

	return nil, fmt.Errorf("cannot make a sequence from %s", c.Name())
}

func subvec(args []cell.I) (cell.I, error) {
	v := vector.To(args[0])

	start, _ := integer.Value(args[1])
	end := v.Count()

	if len(args) > 2 {
		end, _ = integer.Value(args[2])
	}

	if start < 0 || end < start || end > v.Count() {
		return nil, fmt.Errorf("%w: [%d, %d)", errIndexOutOfRange, start, end)
	}

	return vector.Wrap(v.Items().Slice(start, end-start)), nil
}
