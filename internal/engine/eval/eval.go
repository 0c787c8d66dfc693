// Released under an MIT license. See LICENSE.

// Package eval provides the mal evaluator.
//
// Evaluation is a loop over a frame. Forms in tail position replace the
// frame's expression (and environment) and go around the loop again rather
// than recursing, so tail calls run in constant Go stack space.
//
// At the top of each iteration the frame pins its expression, environment
// and current function, and gives the collector a chance to run. Anything
// else a frame needs across an evaluation must be pinned before it calls
// Eval.
package eval

import (
	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/sequence"
	"github.com/michaelmacinnis/mal/internal/common/type/env"
	"github.com/michaelmacinnis/mal/internal/common/type/exception"
	"github.com/michaelmacinnis/mal/internal/common/type/function"
	"github.com/michaelmacinnis/mal/internal/common/type/hashmap"
	"github.com/michaelmacinnis/mal/internal/common/type/list"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
	"github.com/michaelmacinnis/mal/internal/common/type/set"
	"github.com/michaelmacinnis/mal/internal/common/type/sym"
	"github.com/michaelmacinnis/mal/internal/common/type/vector"
	"github.com/tliron/commonlog"
)

type frame struct {
	ast  cell.I
	env  *env.T
	self *function.T
}

var log = commonlog.GetLogger("mal.eval") //nolint:gochecknoglobals

// Apply calls the function c with args. The caller must keep args alive.
func Apply(c cell.I, args []cell.I) (cell.I, error) {
	f, ok := c.(*function.T)
	if !ok {
		return nil, exception.Errorf("cannot apply %s", c.Name())
	}

	if f.Native() {
		return value(f.Call(args))
	}

	e, expr, err := f.Bind(args)
	if err != nil {
		return nil, exception.Errorf("%v", err)
	}

	return run(expr, e, f)
}

// Eval evaluates ast in the environment e.
func Eval(ast cell.I, e *env.T) (cell.I, error) {
	return run(ast, e.Acquire(), nil)
}

// run evaluates ast in e, taking ownership of one reference to e.
func run(ast cell.I, e *env.T, self *function.T) (cell.I, error) {
	f := &frame{ast: ast, env: e, self: self}
	h := gc.Height()

	defer func() {
		gc.Restore(h)
		f.env.Release()
	}()

	for {
		gc.Restore(h)
		gc.Pin(f.ast)
		gc.Protect(f.env)

		if f.self != nil {
			gc.Pin(f.self)
		}

		gc.Collect(false)

		v, err := f.step()
		if err != nil || v != nil {
			return v, err
		}
	}
}

// step evaluates the frame's expression. It returns a value or an error
// when evaluation is complete, or nil and nil when the frame has been
// given a new expression to evaluate.
func (f *frame) step() (cell.I, error) {
	if !list.Is(f.ast) || list.To(f.ast).Empty() {
		return evaluate(f.ast, f.env)
	}

	ast, err := macroexpand(f.ast, f.env)
	if err != nil {
		return nil, err
	}

	if !list.Is(ast) {
		return evaluate(ast, f.env)
	}

	f.ast = gc.Pin(ast)

	cs := list.To(ast).Slice()
	if len(cs) == 0 {
		return ast, nil
	}

	head, args := cs[0], cs[1:]

	switch {
	case sym.IsSymbol(head):
		if s, ok := specials[sym.To(head).Text()]; ok {
			return s(f, args)
		}
	case sym.IsKeyword(head):
		if len(args) == 0 {
			return nil, exception.Errorf("%s: expected a map", sym.To(head).Literal())
		}

		get := append([]cell.I{sym.New("get"), args[0], head}, args[1:]...)
		f.ast = list.New(get...)

		return nil, nil
	}

	vs, err := each(cs, f.env)
	if err != nil {
		return nil, err
	}

	fn, ok := vs[0].(*function.T)
	if !ok {
		return nil, exception.Errorf("cannot apply %s", vs[0].Name())
	}

	if fn.Native() {
		return value(fn.Call(vs[1:]))
	}

	return nil, f.call(fn, vs[1:])
}

// call replaces the frame's expression and environment with the body of fn
// bound to args.
func (f *frame) call(fn *function.T, args []cell.I) error {
	e, expr, err := fn.Bind(args)
	if err != nil {
		return exception.Errorf("%v", err)
	}

	f.replace(e)

	f.ast = expr
	f.self = fn

	return nil
}

func (f *frame) replace(e *env.T) {
	f.env.Release()
	f.env = e
}

// each evaluates every element of cs. The results are pinned.
func each(cs []cell.I, e *env.T) ([]cell.I, error) {
	vs := make([]cell.I, len(cs))

	for i, c := range cs {
		v, err := Eval(c, e)
		if err != nil {
			return nil, err
		}

		vs[i] = gc.Pin(v)
	}

	return vs, nil
}

// evaluate returns the value of anything other than a non-empty list.
// Symbols are looked up and the elements of collections are evaluated.
func evaluate(ast cell.I, e *env.T) (cell.I, error) {
	switch {
	case sym.IsSymbol(ast):
		v, ok := e.Get(ast)
		if !ok {
			return nil, exception.Errorf("'%s' not found", sym.To(ast).Text())
		}

		return v, nil

	case list.Is(ast):
		vs, err := each(list.To(ast).Slice(), e)
		if err != nil {
			return nil, err
		}

		return list.New(vs...), nil

	case vector.Is(ast):
		vs, err := each(sequence.Slice(vector.To(ast)), e)
		if err != nil {
			return nil, err
		}

		return vector.New(vs...), nil

	case hashmap.Is(ast):
		var kvs []cell.I

		hashmap.To(ast).Each(func(k, v cell.I) bool {
			kvs = append(kvs, k, v)

			return true
		})

		for i := 1; i < len(kvs); i += 2 {
			v, err := Eval(kvs[i], e)
			if err != nil {
				return nil, err
			}

			kvs[i] = gc.Pin(v)
		}

		return hashmap.New(kvs...), nil

	case set.Is(ast):
		vs, err := each(sequence.Slice(set.To(ast)), e)
		if err != nil {
			return nil, err
		}

		return set.New(vs...), nil
	}

	return ast, nil
}

// macro returns the macro named by the head of ast, if there is one.
func macro(ast cell.I, e *env.T) *function.T {
	if !list.Is(ast) {
		return nil
	}

	head := list.To(ast).First()
	if !sym.IsSymbol(head) {
		return nil
	}

	v, ok := e.Get(head)
	if !ok {
		return nil
	}

	if f, ok := v.(*function.T); ok && f.IsMacro() {
		return f
	}

	return nil
}

func macroexpand(ast cell.I, e *env.T) (cell.I, error) {
	for m := macro(ast, e); m != nil; m = macro(ast, e) {
		v, err := Apply(m, list.To(ast).Slice()[1:])
		if err != nil {
			return nil, err
		}

		ast = gc.Pin(v)
	}

	return ast, nil
}

// value guards against natives that return no value.
func value(v cell.I, err error) (cell.I, error) {
	if err == nil && v == nil {
		v = null.Nil
	}

	return v, err
}
