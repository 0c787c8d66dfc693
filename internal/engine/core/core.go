// Released under an MIT license. See LICENSE.

// Package core provides mal's native functions.
package core

import (
	"errors"
	"io"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/meta"
	"github.com/michaelmacinnis/mal/internal/common/interface/sequence"
	"github.com/michaelmacinnis/mal/internal/common/type/atom"
	"github.com/michaelmacinnis/mal/internal/common/type/env"
	"github.com/michaelmacinnis/mal/internal/common/type/exception"
	"github.com/michaelmacinnis/mal/internal/common/type/float"
	"github.com/michaelmacinnis/mal/internal/common/type/function"
	"github.com/michaelmacinnis/mal/internal/common/type/hashmap"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
	"github.com/michaelmacinnis/mal/internal/common/type/num"
	"github.com/michaelmacinnis/mal/internal/common/type/octet"
	"github.com/michaelmacinnis/mal/internal/common/type/set"
	"github.com/michaelmacinnis/mal/internal/common/type/str"
	"github.com/michaelmacinnis/mal/internal/common/type/sym"
	"github.com/michaelmacinnis/mal/internal/common/type/vector"
	"github.com/michaelmacinnis/mal/internal/common/validate"
)

// Builtin describes a native function and the arguments it accepts.
// A negative Max means there is no upper bound.
type Builtin struct {
	Name  string
	Min   int
	Max   int
	Kinds []validate.Kind
	Fn    function.Native
}

// Options are the host facilities used by the I/O builtins.
type Options struct {
	// Encoding names the character set used by slurp and spit.
	Encoding string

	// Output receives the text written by prn and println.
	Output io.Writer

	// Readline prompts for and returns a line of input. It returns
	// io.EOF when there is no more input.
	Readline func(prompt string) (string, error)
}

//nolint:gochecknoglobals
var (
	value = validate.Any

	atomic     = validate.Kind{Name: "atom", Is: atom.Is}
	callable   = validate.Kind{Name: "function", Is: function.Is}
	integral   = validate.Kind{Name: "integer", Is: num.Is}
	mapping    = validate.Kind{Name: "map", Is: hashmap.Is}
	metadata   = validate.Kind{Name: "value with metadata", Is: meta.Is}
	number     = validate.Kind{Name: "number", Is: isNumber}
	ordered    = validate.Kind{Name: "list or vector", Is: isOrdered}
	sets       = validate.Kind{Name: "set", Is: set.Is}
	text       = validate.Kind{Name: "string", Is: str.Is}
	vectorKind = validate.Kind{Name: "vector", Is: vector.Is}
)

// Builtins returns the native functions in registration order.
func Builtins(o *Options) []Builtin {
	if o.Output == nil {
		o.Output = io.Discard
	}

	var bs []Builtin

	for _, group := range [][]Builtin{
		arithmetic(),
		relational(),
		predicates(),
		constructors(),
		sequences(),
		maps(),
		textual(o),
		atoms(),
		miscellaneous(),
	} {
		bs = append(bs, group...)
	}

	return bs
}

// Register defines each builtin in e. Each builtin's arguments are
// validated before it is called and errors that are not mal exceptions
// are prefixed with the builtin's name.
func Register(e *env.T, bs []Builtin) {
	for _, b := range bs {
		e.Define(b.Name, function.Builtin(b.Name, wrap(b)))
	}
}

func wrap(b Builtin) function.Native {
	return func(args []cell.I) (cell.I, error) {
		if err := validate.Args(args, b.Min, b.Max, b.Kinds...); err != nil {
			return nil, exception.Errorf("%s: %v", b.Name, err)
		}

		v, err := b.Fn(args)
		if err != nil {
			var x *exception.T
			if !errors.As(err, &x) {
				err = exception.Errorf("%s: %v", b.Name, err)
			}

			return nil, err
		}

		return v, nil
	}
}

func bytes(c cell.I) ([]byte, error) {
	if !sequence.Is(c) {
		return nil, errors.New("expected a vector of bytes")
	}

	var (
		b   []byte
		err error
	)

	sequence.To(c).Each(func(e cell.I) bool {
		if !octet.Is(e) {
			err = errors.New("expected a vector of bytes, found " + e.Name())

			return false
		}

		b = append(b, octet.To(e).Byte())

		return true
	})

	return b, err
}

// elements returns the elements of a sequence, or nothing for nil.
func elements(c cell.I) []cell.I {
	if null.Is(c) {
		return nil
	}

	return sequence.Slice(sequence.To(c))
}

func isNumber(c cell.I) bool {
	return num.Is(c) || float.Is(c)
}

func isOrdered(c cell.I) bool {
	_, ok := c.(sequence.Ordered)

	return ok
}

func name(c cell.I) string {
	if sym.Is(c) {
		return sym.To(c).Text()
	}

	return str.To(c).String()
}

func orNil(kind validate.Kind) validate.Kind {
	return validate.Kind{
		Name: kind.Name + " or nil",
		Is: func(c cell.I) bool {
			return null.Is(c) || kind.Is(c)
		},
	}
}
