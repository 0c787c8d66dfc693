// Released under an MIT license. See LICENSE.

package core

import (
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/numeric"
	"github.com/michaelmacinnis/mal/internal/common/type/boolean"
	"github.com/michaelmacinnis/mal/internal/common/type/function"
	"github.com/michaelmacinnis/mal/internal/common/validate"
)

func relational() []Builtin {
	return []Builtin{
		{"=", 1, -1, nil, equal},
		{"<", 1, -1, nil, compare(func(a, b float64) bool { return a < b })},
		{"<=", 1, -1, nil, compare(func(a, b float64) bool { return a <= b })},
		{">", 1, -1, nil, compare(func(a, b float64) bool { return a > b })},
		{">=", 1, -1, nil, compare(func(a, b float64) bool { return a >= b })},
	}
}

// compare returns true if each adjacent pair of arguments is ordered by f.
// Every int32 is exactly representable as a float64.
func compare(f func(a, b float64) bool) function.Native {
	return func(args []cell.I) (cell.I, error) {
		if err := validate.All(args, number); err != nil {
			return nil, err
		}

		for i := 1; i < len(args); i++ {
			if !f(numeric.Value(args[i-1]), numeric.Value(args[i])) {
				return boolean.False, nil
			}
		}

		return boolean.True, nil
	}
}

func equal(args []cell.I) (cell.I, error) {
	for _, c := range args[1:] {
		if !args[0].Equal(c) {
			return boolean.False, nil
		}
	}

	return boolean.True, nil
}
