// Released under an MIT license. See LICENSE.

// Package function provides mal's closures, macros and native functions.
package function

import (
	"fmt"
	"sort"
	"unsafe"

	"github.com/michaelmacinnis/mal/internal/common"
	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/literal"
	"github.com/michaelmacinnis/mal/internal/common/interface/meta"
	"github.com/michaelmacinnis/mal/internal/common/interface/sequence"
	"github.com/michaelmacinnis/mal/internal/common/type/env"
	"github.com/michaelmacinnis/mal/internal/common/type/list"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
	"github.com/michaelmacinnis/mal/internal/common/type/sym"
)

const name = "function"

// Native is the signature of a builtin.
type Native func(args []cell.I) (cell.I, error)

// Body is one arity of a closure.
type Body struct {
	Arity    int
	Variadic bool
	Binds    []cell.I
	Rest     cell.I
	Expr     cell.I
}

// T (function) is either a native builtin or a closure with one or more
// bodies sorted by arity.
type T struct {
	gc.Header

	bodies []*Body
	env    *env.T
	label  string
	macro  bool
	meta   cell.I
	native Native
}

type function = T

// Builtin creates a native function.
func Builtin(label string, fn Native) cell.I {
	return register(&function{label: label, meta: null.Nil, native: fn})
}

// New creates a closure over e from the arguments of an fn* form.
//
// Either: [binds] body...
// Or:     ([binds] body...) ([binds] body...) ...
func New(e *env.T, args []cell.I) (cell.I, error) {
	var forms [][]cell.I

	if multiple(args) {
		for _, a := range args {
			forms = append(forms, sequence.Slice(sequence.To(a)))
		}
	} else {
		forms = append(forms, args)
	}

	bodies := make([]*Body, 0, len(forms))

	for _, f := range forms {
		b, err := body(f)
		if err != nil {
			return nil, err
		}

		bodies = append(bodies, b)
	}

	if err := check(bodies); err != nil {
		return nil, err
	}

	return register(&function{
		bodies: bodies,
		env:    e.Acquire(),
		meta:   null.Nil,
	}), nil
}

// Bind selects the body for args and binds them in a new env enclosed by
// the closure's env. The caller owns the returned env.
func (f *function) Bind(args []cell.I) (*env.T, cell.I, error) {
	b := f.Select(len(args))
	if b == nil {
		return nil, nil, fmt.Errorf("wrong number of arguments (%d) passed to %s",
			len(args), f.Literal())
	}

	e := env.New(f.env)

	rest := b.Rest
	if !b.Variadic {
		rest = nil
	}

	if err := e.BindAll(b.Binds, rest, args); err != nil {
		e.Release()

		return nil, nil, err
	}

	return e, b.Expr, nil
}

// Bodies returns the bodies of the closure f.
func (f *function) Bodies() []*Body {
	return f.bodies
}

// Call invokes the native function f.
func (f *function) Call(args []cell.I) (cell.I, error) {
	return f.native(args)
}

// Equal returns true if c is the same function.
func (f *function) Equal(c cell.I) bool {
	return f == c
}

// Free releases the closure's reference to its env.
func (f *function) Free() {
	if f.env != nil {
		f.env.Release()
		f.env = nil
	}
}

// Hash returns the hash of the function f.
func (f *function) Hash() uint32 {
	return cell.Mix(cell.SeedFunction, uint32(uintptr(unsafe.Pointer(f))))
}

// Literal returns the printed form of the function f.
func (f *function) Literal() string {
	switch {
	case f.native != nil:
		return "#<native " + f.label + ">"
	case f.macro:
		return "#<macro>"
	}

	return "#<function>"
}

// Macro returns a copy of the closure f flagged as a macro.
func (f *function) Macro() *T {
	c := f.copy()
	c.macro = true

	return c
}

// IsMacro returns true if f is a macro.
func (f *function) IsMacro() bool {
	return f.macro
}

// Meta returns the metadata of the function f.
func (f *function) Meta() cell.I {
	return f.meta
}

// Name returns the type name for the function f.
func (f *function) Name() string {
	return name
}

// Native returns true if f is a builtin.
func (f *function) Native() bool {
	return f.native != nil
}

// Select returns the body that accepts n arguments, if any.
func (f *function) Select(n int) *Body {
	for _, b := range f.bodies {
		if !b.Variadic && b.Arity == n {
			return b
		}
	}

	if len(f.bodies) > 0 {
		if b := f.bodies[len(f.bodies)-1]; b.Variadic && n >= b.Arity {
			return b
		}
	}

	return nil
}

// String returns the printed form of the function f.
func (f *function) String() string {
	return f.Literal()
}

// Walk marks the bodies, metadata and captured env of the function f.
func (f *function) Walk(mark func(cell.I)) {
	mark(f.meta)

	for _, b := range f.bodies {
		for _, c := range b.Binds {
			mark(c)
		}

		if b.Rest != nil {
			mark(b.Rest)
		}

		mark(b.Expr)
	}

	if f.env != nil {
		f.env.Walk(mark)
	}
}

// WithMeta returns a copy of the function f with the metadata m.
func (f *function) WithMeta(m cell.I) cell.I {
	c := f.copy()
	c.meta = m

	return c
}

func (f *function) copy() *T {
	c := &function{
		bodies: f.bodies,
		label:  f.label,
		macro:  f.macro,
		meta:   f.meta,
		native: f.native,
	}

	if f.env != nil {
		c.env = f.env.Acquire()
	}

	return register(c)
}

func body(form []cell.I) (*Body, error) {
	if len(form) == 0 || !sequence.Is(form[0]) {
		return nil, fmt.Errorf("fn* expects a list or vector of bindings")
	}

	fixed, rest, err := env.Split(sequence.Slice(sequence.To(form[0])))
	if err != nil {
		return nil, err
	}

	b := &Body{
		Arity:    len(fixed),
		Variadic: rest != nil,
		Binds:    fixed,
		Rest:     rest,
	}

	switch exprs := form[1:]; len(exprs) {
	case 0:
		b.Expr = null.Nil
	case 1:
		b.Expr = exprs[0]
	default:
		b.Expr = list.New(append([]cell.I{sym.New("do")}, exprs...)...)
	}

	return b, nil
}

func check(bodies []*Body) error {
	sort.SliceStable(bodies, func(i, j int) bool {
		if bodies[i].Variadic != bodies[j].Variadic {
			return bodies[j].Variadic
		}

		return bodies[i].Arity < bodies[j].Arity
	})

	seen := map[int]bool{}
	variadic := 0
	highest := 0

	for _, b := range bodies {
		if b.Variadic {
			variadic++

			if b.Arity < highest {
				return fmt.Errorf("a variadic body must not have fewer bindings than a fixed body")
			}

			continue
		}

		if seen[b.Arity] {
			return fmt.Errorf("more than one body with %d bindings", b.Arity)
		}

		seen[b.Arity] = true
		highest = b.Arity
	}

	if variadic > 1 {
		return fmt.Errorf("at most one body may be variadic")
	}

	return nil
}

// Multiple returns true if args is a list of ([binds] body...) forms.
func multiple(args []cell.I) bool {
	if len(args) == 0 {
		return false
	}

	for _, a := range args {
		if !list.Is(a) || list.To(a).Empty() || !sequence.Is(list.To(a).First()) {
			return false
		}
	}

	return true
}

func register(f *function) *function {
	gc.Register(f, unsafe.Sizeof(*f))

	return f
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t function

	// The function type is a cell.
	_ = cell.I(&t)

	// The function type lives in the arena.
	_ = gc.Object(&t)

	// The function type has a printed representation.
	_ = literal.I(&t)

	// The function type carries metadata.
	_ = meta.I(&t)

	// The function type is a stringer.
	_ = common.Stringer(&t)
}
