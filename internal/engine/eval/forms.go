// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/sequence"
	"github.com/michaelmacinnis/mal/internal/common/interface/truth"
	"github.com/michaelmacinnis/mal/internal/common/type/env"
	"github.com/michaelmacinnis/mal/internal/common/type/exception"
	"github.com/michaelmacinnis/mal/internal/common/type/function"
	"github.com/michaelmacinnis/mal/internal/common/type/list"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
	"github.com/michaelmacinnis/mal/internal/common/type/sym"
	"github.com/michaelmacinnis/mal/internal/common/validate"
)

// A special form either completes with a value or an error, or gives the
// frame a new expression and returns nil and nil.
type special func(f *frame, args []cell.I) (cell.I, error)

//nolint:gochecknoglobals
var (
	specials map[string]special

	symbol = validate.Kind{Name: "symbol", Is: sym.IsSymbol}
)

//nolint:gochecknoinits
func init() {
	specials = map[string]special{
		"comment":          comment,
		"def!":             define,
		"defmacro!":        defmacro,
		"do":               do,
		"fn*":              fn,
		"if":               branch,
		"let*":             let,
		"macroexpand":      expand,
		"quasiquote":       quasi,
		"quasiquoteexpand": quasiexpand,
		"quote":            quote,
		"recur":            recur,
		"splice-unquote":   unquoted("splice-unquote"),
		"try*":             try,
		"unquote":          unquoted("unquote"),
	}
}

func check(name string, args []cell.I, min, max int, kinds ...validate.Kind) error {
	if err := validate.Args(args, min, max, kinds...); err != nil {
		return exception.Errorf("%s: %v", name, err)
	}

	return nil
}

// body evaluates all but the last form and makes the last the frame's
// expression.
func (f *frame) body(forms []cell.I) (cell.I, error) {
	if len(forms) == 0 {
		return null.Nil, nil
	}

	n := len(forms) - 1
	for _, c := range forms[:n] {
		if _, err := Eval(c, f.env); err != nil {
			return nil, err
		}
	}

	f.ast = forms[n]

	return nil, nil
}

func branch(f *frame, args []cell.I) (cell.I, error) {
	if err := check("if", args, 2, 3); err != nil {
		return nil, err
	}

	c, err := Eval(args[0], f.env)
	if err != nil {
		return nil, err
	}

	switch {
	case truth.Value(c):
		f.ast = args[1]
	case len(args) == 3:
		f.ast = args[2]
	default:
		return null.Nil, nil
	}

	return nil, nil
}

func comment(*frame, []cell.I) (cell.I, error) {
	return null.Nil, nil
}

func define(f *frame, args []cell.I) (cell.I, error) {
	if err := check("def!", args, 2, 2, symbol); err != nil {
		return nil, err
	}

	v, err := Eval(args[1], f.env)
	if err != nil {
		return nil, err
	}

	f.env.Set(args[0], v)

	return v, nil
}

func defmacro(f *frame, args []cell.I) (cell.I, error) {
	if err := check("defmacro!", args, 2, 2, symbol); err != nil {
		return nil, err
	}

	v, err := Eval(args[1], f.env)
	if err != nil {
		return nil, err
	}

	c, ok := v.(*function.T)
	if !ok || c.Native() {
		return nil, exception.Errorf("defmacro!: expected a function, passed %s", v.Name())
	}

	m := c.Macro()

	f.env.Set(args[0], m)

	return m, nil
}

func do(f *frame, args []cell.I) (cell.I, error) {
	return f.body(args)
}

func expand(f *frame, args []cell.I) (cell.I, error) {
	if err := check("macroexpand", args, 1, 1); err != nil {
		return nil, err
	}

	return macroexpand(args[0], f.env)
}

func fn(f *frame, args []cell.I) (cell.I, error) {
	c, err := function.New(f.env, args)
	if err != nil {
		return nil, exception.Errorf("fn*: %v", err)
	}

	return c, nil
}

func let(f *frame, args []cell.I) (cell.I, error) {
	if err := check("let*", args, 1, -1); err != nil {
		return nil, err
	}

	if !sequence.Is(args[0]) {
		return nil, exception.Errorf("let*: expected a list or vector of bindings, passed %s", args[0].Name())
	}

	bindings := sequence.Slice(sequence.To(args[0]))
	if len(bindings)%2 != 0 {
		return nil, exception.Errorf("let*: expected an even number of binding forms, passed %d", len(bindings))
	}

	e := env.New(f.env)

	gc.Protect(e)

	for i := 0; i < len(bindings); i += 2 {
		v, err := Eval(bindings[i+1], e)
		if err == nil {
			err = e.Bind(bindings[i], v)
			if err != nil {
				err = exception.Errorf("let*: %v", err)
			}
		}

		if err != nil {
			e.Release()

			return nil, err
		}
	}

	f.replace(e)

	return f.body(args[1:])
}

func quasi(f *frame, args []cell.I) (cell.I, error) {
	if err := check("quasiquote", args, 1, 1); err != nil {
		return nil, err
	}

	f.ast = quasiquote(args[0])

	return nil, nil
}

func quasiexpand(_ *frame, args []cell.I) (cell.I, error) {
	if err := check("quasiquoteexpand", args, 1, 1); err != nil {
		return nil, err
	}

	return quasiquote(args[0]), nil
}

func quote(_ *frame, args []cell.I) (cell.I, error) {
	if err := check("quote", args, 1, 1); err != nil {
		return nil, err
	}

	return args[0], nil
}

func recur(f *frame, args []cell.I) (cell.I, error) {
	if f.self == nil {
		return nil, exception.Errorf("recur: not in tail position of a function")
	}

	vs, err := each(args, f.env)
	if err != nil {
		return nil, err
	}

	return nil, f.call(f.self, vs)
}

func try(f *frame, args []cell.I) (cell.I, error) {
	body, handler := args, []cell.I(nil)

	if n := len(args) - 1; n >= 0 && list.Is(args[n]) {
		if c := list.To(args[n]); sym.Named(c.First(), "catch*") {
			body, handler = args[:n], c.Slice()
		}
	}

	if handler != nil && (len(handler) != 3 || !sym.IsSymbol(handler[1])) {
		return nil, exception.Errorf("catch*: expected a symbol and a handler")
	}

	var (
		err error
		v   cell.I = null.Nil
	)

	for _, c := range body {
		if v, err = Eval(c, f.env); err != nil {
			break
		}

		gc.Pin(v)
	}

	if err == nil || handler == nil {
		return v, err
	}

	log.Debugf("caught %v", err)

	e := env.New(f.env)
	e.Set(handler[1], exception.Value(err))

	f.replace(e)
	f.ast = handler[2]

	return nil, nil
}

func unquoted(name string) special {
	return func(*frame, []cell.I) (cell.I, error) {
		return nil, exception.Errorf("%s: not inside quasiquote", name)
	}
}
