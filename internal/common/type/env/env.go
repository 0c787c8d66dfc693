// Released under an MIT license. See LICENSE.

// Package env provides mal's lexical environments.
//
// Each environment maps symbols to values and refers to its parent.
// Environments are reference counted: closures and child environments
// acquire their parent; the frame that created one releases it on exit.
package env

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/integer"
	"github.com/michaelmacinnis/mal/internal/common/interface/sequence"
	"github.com/michaelmacinnis/mal/internal/common/struct/hash"
	"github.com/michaelmacinnis/mal/internal/common/type/hashmap"
	"github.com/michaelmacinnis/mal/internal/common/type/list"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
	"github.com/michaelmacinnis/mal/internal/common/type/sym"
	"github.com/michaelmacinnis/mal/internal/common/type/vector"
	"github.com/michaelmacinnis/mal/internal/system/heap"
)

// T (env) maps symbols to values.
type T struct {
	epoch  uint64
	parent *T
	refs   int
	table  *hash.T
}

type env = T

const size = unsafe.Sizeof(env{})

// New creates a new env enclosed by parent, which may be nil.
func New(parent *T) *env {
	heap.Alloc(size)

	if parent != nil {
		parent.refs++
	}

	return &env{parent: parent, refs: 1, table: hash.New(0)}
}

// Split separates a binding pattern into positional targets and an
// optional rest target. The rest target follows a bare & or is written
// as a single &name symbol. Symbol text is never modified.
func Split(targets []cell.I) ([]cell.I, cell.I, error) {
	for i, t := range targets {
		if !sym.IsSymbol(t) {
			continue
		}

		s := sym.To(t).Text()
		if !strings.HasPrefix(s, "&") {
			continue
		}

		if s == "&" {
			if i != len(targets)-2 {
				return nil, nil, fmt.Errorf("& must be followed by exactly one binding")
			}

			return targets[:i], targets[i+1], nil
		}

		if i != len(targets)-1 {
			return nil, nil, fmt.Errorf("%s must be the last binding", s)
		}

		return targets[:i], sym.New(s[1:]), nil
	}

	return targets, nil, nil
}

// Acquire adds a reference to e.
func (e *env) Acquire() *env {
	e.refs++

	return e
}

// Bind binds target to value. The target may be a symbol, a sequence
// pattern or a map pattern.
func (e *env) Bind(target, value cell.I) error {
	switch {
	case sym.IsSymbol(target):
		e.Set(target, value)

		return nil

	case sequence.Is(target):
		fixed, rest, err := Split(sequence.Slice(sequence.To(target)))
		if err != nil {
			return err
		}

		values, err := elements(value)
		if err != nil {
			return err
		}

		return e.BindAll(fixed, rest, values)

	case hashmap.Is(target):
		return e.associative(hashmap.To(target), value)
	}

	return fmt.Errorf("cannot bind to %s", target.Name())
}

// BindAll binds each target in fixed to the value in the same position.
// Missing values are nil. Remaining values are bound to rest as a list.
func (e *env) BindAll(fixed []cell.I, rest cell.I, values []cell.I) error {
	for i, t := range fixed {
		var v cell.I = null.Nil
		if i < len(values) {
			v = values[i]
		}

		if err := e.Bind(t, v); err != nil {
			return err
		}
	}

	if rest == nil {
		return nil
	}

	var more []cell.I
	if len(values) > len(fixed) {
		more = values[len(fixed):]
	}

	return e.Bind(rest, list.New(more...))
}

// Define binds the name k to v in the env e.
func (e *env) Define(k string, v cell.I) {
	e.Set(sym.New(k), v)
}

// Each calls f with each binding made directly in e until f returns false.
func (e *env) Each(f func(k, v cell.I) bool) {
	e.table.Each(f)
}

// Flush removes every binding from e.
func (e *env) Flush() {
	e.table.Release()
	e.table = hash.New(0)
}

// Get looks up the symbol k in e and then in each enclosing env.
func (e *env) Get(k cell.I) (cell.I, bool) {
	for ; e != nil; e = e.parent {
		if v, ok := e.table.Find(k); ok {
			return v, true
		}
	}

	return nil, false
}

// Parent returns the enclosing env.
func (e *env) Parent() *env {
	return e.parent
}

// Release drops a reference to e. When no references remain its bindings
// are released along with its reference to its parent.
func (e *env) Release() {
	for e != nil {
		e.refs--
		if e.refs > 0 {
			return
		}

		if e.refs < 0 {
			panic("environment released too many times")
		}

		e.table.Release()
		e.table = nil

		heap.Free(size)

		e = e.parent
	}
}

// Set binds the symbol k to v in the env e.
func (e *env) Set(k, v cell.I) {
	e.table.Add(k, v)
}

// Walk marks every symbol and value visible from e.
// Each env is visited at most once per collection.
func (e *env) Walk(mark func(cell.I)) {
	epoch := gc.Epoch()

	for ; e != nil; e = e.parent {
		if e.epoch == epoch || e.table == nil {
			return
		}

		e.epoch = epoch

		e.table.Each(func(k, v cell.I) bool {
			mark(k)
			mark(v)

			return true
		})
	}
}

func (e *env) associative(pattern *hashmap.T, value cell.I) error {
	var defaults *hashmap.T

	pattern.Each(func(k, v cell.I) bool {
		if keyword(k, "or") && hashmap.Is(v) {
			defaults = hashmap.To(v)
		}

		return true
	})

	fallback := func(s cell.I) cell.I {
		if defaults != nil {
			if v, ok := defaults.Get(s); ok {
				return v
			}
		}

		return null.Nil
	}

	var err error

	pattern.Each(func(k, v cell.I) bool {
		switch {
		case keyword(k, "as"):
			err = e.Bind(v, value)

		case keyword(k, "keys"):
			if !sequence.Is(v) {
				err = fmt.Errorf(":keys must be followed by a sequence of symbols")

				break
			}

			sequence.To(v).Each(func(s cell.I) bool {
				if !sym.IsSymbol(s) {
					err = fmt.Errorf(":keys expects symbols, not %s", s.Name())

					return false
				}

				found, ok := lookup(value, sym.Keyword(sym.To(s).Text()))
				if !ok {
					found = fallback(s)
				}

				e.Set(s, found)

				return true
			})

		case keyword(k, "or"):

		default:
			found, ok := lookup(value, v)
			if !ok {
				found = fallback(k)
			}

			err = e.Bind(k, found)
		}

		return err == nil
	})

	return err
}

func elements(c cell.I) ([]cell.I, error) {
	if null.Is(c) {
		return nil, nil
	}

	if s, ok := c.(sequence.I); ok {
		return sequence.Slice(s), nil
	}

	return nil, fmt.Errorf("cannot destructure %s as a sequence", c.Name())
}

func keyword(c cell.I, name string) bool {
	return sym.IsKeyword(c) && sym.To(c).Text() == name
}

func lookup(c, k cell.I) (cell.I, bool) {
	switch {
	case hashmap.Is(c):
		return hashmap.To(c).Get(k)

	case vector.Is(c):
		if i, ok := integer.Value(k); ok {
			return vector.To(c).Nth(i)
		}
	}

	return nil, false
}
