// Released under an MIT license. See LICENSE.

package core

import (
	"errors"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/numeric"
	"github.com/michaelmacinnis/mal/internal/common/type/float"
	"github.com/michaelmacinnis/mal/internal/common/type/function"
	"github.com/michaelmacinnis/mal/internal/common/type/num"
	"github.com/michaelmacinnis/mal/internal/common/validate"
)

var errDivideByZero = errors.New("divide by zero") //nolint:gochecknoglobals

// An operator combines integers, with int32 wraparound, or floats.
type operator struct {
	integer func(a, b int32) (int32, error)
	real    func(a, b float64) float64
}

func arithmetic() []Builtin {
	return []Builtin{
		{"+", 0, -1, nil, fold(num.New(0), plus)},
		{"-", 1, -1, nil, fold(num.New(0), minus)},
		{"*", 0, -1, nil, fold(num.New(1), times)},
		{"/", 1, -1, nil, fold(num.New(1), divide)},
		{"mod", 2, 2, []validate.Kind{integral, integral}, mod},
	}
}

//nolint:gochecknoglobals
var (
	divide = operator{
		integer: func(a, b int32) (int32, error) {
			if b == 0 {
				return 0, errDivideByZero
			}

			return a / b, nil
		},
		real: func(a, b float64) float64 { return a / b },
	}

	minus = operator{
		integer: func(a, b int32) (int32, error) { return a - b, nil },
		real:    func(a, b float64) float64 { return a - b },
	}

	plus = operator{
		integer: func(a, b int32) (int32, error) { return a + b, nil },
		real:    func(a, b float64) float64 { return a + b },
	}

	times = operator{
		integer: func(a, b int32) (int32, error) { return a * b, nil },
		real:    func(a, b float64) float64 { return a * b },
	}
)

func combine(op operator, a, b cell.I) (cell.I, error) {
	if num.Is(a) && num.Is(b) {
		v, err := op.integer(num.To(a).Int(), num.To(b).Int())
		if err != nil {
			return nil, err
		}

		return num.New(v), nil
	}

	return float.New(op.real(numeric.Value(a), numeric.Value(b))), nil
}

// fold applies op from left to right. With no arguments it returns the
// identity. With one argument, the identity is the left operand, so that
// (- x) negates and (/ x) inverts.
func fold(identity cell.I, op operator) function.Native {
	return func(args []cell.I) (cell.I, error) {
		if err := validate.All(args, number); err != nil {
			return nil, err
		}

		switch len(args) {
		case 0:
			return identity, nil
		case 1:
			return combine(op, identity, args[0])
		}

		acc := args[0]

		for _, arg := range args[1:] {
			v, err := combine(op, acc, arg)
			if err != nil {
				return nil, err
			}

			acc = v
		}

		return acc, nil
	}
}

func mod(args []cell.I) (cell.I, error) {
	a, b := num.To(args[0]).Int(), num.To(args[1]).Int()
	if b == 0 {
		return nil, errDivideByZero
	}

	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}

	return num.New(m), nil
}
