// Released under an MIT license. See LICENSE.

package core

import (
	"errors"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/integer"
	"github.com/michaelmacinnis/mal/internal/common/type/hashmap"
	"github.com/michaelmacinnis/mal/internal/common/type/list"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
	"github.com/michaelmacinnis/mal/internal/common/type/set"
	"github.com/michaelmacinnis/mal/internal/common/type/vector"
	"github.com/michaelmacinnis/mal/internal/common/validate"
)

func maps() []Builtin {
	return []Builtin{
		{"assoc", 1, -1, []validate.Kind{orNil(mapping)}, assoc},
		{"dissoc", 1, -1, []validate.Kind{orNil(mapping)}, dissoc},
		{"get", 2, 3, nil, get},
		{"keys", 1, 1, []validate.Kind{orNil(mapping)}, entries(true)},
		{"vals", 1, 1, []validate.Kind{orNil(mapping)}, entries(false)},
		{"disj", 1, -1, []validate.Kind{orNil(sets)}, func(args []cell.I) (cell.I, error) {
			if null.Is(args[0]) {
				return null.Nil, nil
			}

			return set.To(args[0]).Disj(args[1:]...), nil
		}},
	}
}

func assoc(args []cell.I) (cell.I, error) {
	kvs := args[1:]
	if len(kvs)%2 != 0 {
		return nil, errors.New("expected an even number of keys and values")
	}

	if null.Is(args[0]) {
		return hashmap.New(kvs...), nil
	}

	return hashmap.To(args[0]).Assoc(kvs...), nil
}

func dissoc(args []cell.I) (cell.I, error) {
	if null.Is(args[0]) {
		return null.Nil, nil
	}

	return hashmap.To(args[0]).Dissoc(args[1:]...), nil
}

// entries returns the keys, or the values, of a map as a list.
func entries(keys bool) func([]cell.I) (cell.I, error) {
	return func(args []cell.I) (cell.I, error) {
		if null.Is(args[0]) {
			return list.New(), nil
		}

		m := hashmap.To(args[0])
		cs := make([]cell.I, 0, m.Count())

		m.Each(func(k, v cell.I) bool {
			if keys {
				cs = append(cs, k)
			} else {
				cs = append(cs, v)
			}

			return true
		})

		return list.New(cs...), nil
	}
}

// get looks up a key in a map, a member of a set or an index in a vector.
// The optional third argument is returned when nothing is found.
func get(args []cell.I) (cell.I, error) {
	c, k := args[0], args[1]

	var (
		v  cell.I
		ok bool
	)

	switch {
	case hashmap.Is(c):
		v, ok = hashmap.To(c).Get(k)
	case set.Is(c):
		if set.To(c).Contains(k) {
			v, ok = k, true
		}
	case vector.Is(c):
		if i, isInt := integer.Value(k); isInt {
			v, ok = vector.To(c).Nth(i)
		}
	}

	if ok {
		return v, nil
	}

	if len(args) > 2 {
		return args[2], nil
	}

	return null.Nil, nil
}
