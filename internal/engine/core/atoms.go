// Released under an MIT license. See LICENSE.

package core

import (
	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/type/atom"
	"github.com/michaelmacinnis/mal/internal/common/validate"
	"github.com/michaelmacinnis/mal/internal/engine/eval"
)

func atoms() []Builtin {
	return []Builtin{
		{"deref", 1, 1, []validate.Kind{atomic}, func(args []cell.I) (cell.I, error) {
			return atom.To(args[0]).Deref(), nil
		}},
		{"reset!", 2, 2, []validate.Kind{atomic}, func(args []cell.I) (cell.I, error) {
			return atom.To(args[0]).Reset(args[1]), nil
		}},
		{"swap!", 2, -1, []validate.Kind{atomic, callable}, swap},
	}
}

// swap calls f with the atom's value followed by any extra arguments and
// stores the result in the atom.
func swap(args []cell.I) (cell.I, error) {
	a := atom.To(args[0])

	vs := append([]cell.I{gc.Pin(a.Deref())}, args[2:]...)

	v, err := eval.Apply(args[1], vs)
	if err != nil {
		return nil, err
	}

	return a.Reset(v), nil
}
