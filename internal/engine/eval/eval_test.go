// Released under an MIT license. See LICENSE.

package eval

import (
	"errors"
	"strings"
	"testing"

	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/integer"
	"github.com/michaelmacinnis/mal/internal/common/interface/literal"
	"github.com/michaelmacinnis/mal/internal/common/interface/sequence"
	"github.com/michaelmacinnis/mal/internal/common/type/boolean"
	"github.com/michaelmacinnis/mal/internal/common/type/env"
	"github.com/michaelmacinnis/mal/internal/common/type/exception"
	"github.com/michaelmacinnis/mal/internal/common/type/function"
	"github.com/michaelmacinnis/mal/internal/common/type/hashmap"
	"github.com/michaelmacinnis/mal/internal/common/type/list"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
	"github.com/michaelmacinnis/mal/internal/common/type/num"
	"github.com/michaelmacinnis/mal/internal/common/type/vector"
	"github.com/michaelmacinnis/mal/internal/reader"
	"github.com/michaelmacinnis/mal/internal/system/heap"
)

type harness struct {
	env *env.T
	t   *testing.T
}

func arithmetic(op func(a, b int) int) function.Native {
	return func(args []cell.I) (cell.I, error) {
		a, _ := integer.Value(args[0])
		b, _ := integer.Value(args[1])

		return num.New(int32(op(a, b))), nil
	}
}

func setup(t *testing.T) *harness {
	e := env.New(nil)

	natives := map[string]function.Native{
		"+": arithmetic(func(a, b int) int { return a + b }),
		"-": arithmetic(func(a, b int) int { return a - b }),
		"=": func(args []cell.I) (cell.I, error) {
			return boolean.Bool(args[0].Equal(args[1])), nil
		},
		"concat": func(args []cell.I) (cell.I, error) {
			var cs []cell.I
			for _, a := range args {
				cs = append(cs, sequence.Slice(sequence.To(a))...)
			}

			return list.New(cs...), nil
		},
		"cons": func(args []cell.I) (cell.I, error) {
			cs := append([]cell.I{args[0]}, sequence.Slice(sequence.To(args[1]))...)

			return list.New(cs...), nil
		},
		"get": func(args []cell.I) (cell.I, error) {
			if v, ok := hashmap.To(args[0]).Get(args[1]); ok {
				return v, nil
			}

			return null.Nil, nil
		},
		"list": func(args []cell.I) (cell.I, error) {
			return list.New(args...), nil
		},
		"throw": func(args []cell.I) (cell.I, error) {
			return nil, exception.New(args[0])
		},
		"vec": func(args []cell.I) (cell.I, error) {
			return vector.New(sequence.Slice(sequence.To(args[0]))...), nil
		},
	}

	for k, fn := range natives {
		e.Define(k, function.Builtin(k, fn))
	}

	t.Cleanup(gc.Root(e))

	return &harness{env: e, t: t}
}

func (h *harness) eval(s string) (cell.I, error) {
	h.t.Helper()

	c, err := reader.Read(s)
	if err != nil {
		h.t.Fatalf("Reading %s failed: %v", s, err)
	}

	n := gc.Height()
	defer gc.Restore(n)

	return Eval(gc.Pin(c), h.env)
}

func (h *harness) expect(s, want string) {
	h.t.Helper()

	v, err := h.eval(s)
	if err != nil {
		h.t.Fatalf("Evaluating %s failed: %v", s, err)
	}

	if got := literal.String(v); got != want {
		h.t.Fatalf("Expected %s to evaluate to %s; got %s", s, want, got)
	}
}

func (h *harness) fail(s, msg string) {
	h.t.Helper()

	_, err := h.eval(s)
	if err == nil {
		h.t.Fatalf("Expected %s to fail", s)
	}

	if !strings.Contains(err.Error(), msg) {
		h.t.Fatalf("Expected error containing %q from %s; got %v", msg, s, err)
	}
}

func TestArityDispatch(t *testing.T) {
	h := setup(t)

	h.expect(`(def! f (fn* ([] 0) ([a] 1) ([a b] 2) ([a b & more] more)))`, "#<function>")
	h.expect(`(f)`, "0")
	h.expect(`(f 1)`, "1")
	h.expect(`(f 1 2)`, "2")
	h.expect(`(f 1 2 3 4)`, "(3 4)")

	h.fail(`((fn* ([a] a)) 1 2)`, "wrong number of arguments (2)")
	h.fail(`(fn* ([a] 1) ([b] 2))`, "more than one body")
}

func TestDestructuring(t *testing.T) {
	h := setup(t)

	h.expect(`(let* [[a [b c] & d] [1 [2 3] 4 5]] (list a b c d))`, "(1 2 3 (4 5))")
	h.expect(`(let* [{:keys [x y] :or {y 9} :as m} {:x 1}] (list x y m))`, "(1 9 {:x 1})")
	h.expect(`(let* [{a :k} {:k 7}] a)`, "7")
	h.expect(`((fn* [a &rest] rest) 1 2 3)`, "(2 3)")
}

func TestEvaluatesCollections(t *testing.T) {
	h := setup(t)

	h.expect(`[(+ 1 1) (list)]`, "[2 ()]")
	h.expect(`{:a (+ 1 2)}`, "{:a 3}")
	h.expect(`#{(+ 1 1)}`, "#{2}")
	h.expect(`()`, "()")
	h.expect(`:kw`, ":kw")
	h.expect(`(:a {:a 5})`, "5")
}

func TestErrors(t *testing.T) {
	h := setup(t)

	h.fail(`undefined`, "'undefined' not found")
	h.fail(`(1 2)`, "cannot apply")
	h.fail(`(if)`, "if: expected 2 to 3 arguments")
	h.fail(`(def! 1 2)`, "def!: argument 1: expected symbol")
	h.fail(`(let* [a] a)`, "even number")
	h.fail(`(unquote a)`, "not inside quasiquote")
	h.fail(`(recur 1)`, "recur")
}

func TestIf(t *testing.T) {
	h := setup(t)

	h.expect(`(if nil 1 2)`, "2")
	h.expect(`(if false 1)`, "nil")
	h.expect(`(if 0 1 2)`, "1")
	h.expect(`(if "" 1 2)`, "1")
}

func TestListAndVectorEquality(t *testing.T) {
	h := setup(t)

	h.expect(`(= [1 2 (list 3)] (list 1 2 [3]))`, "true")
	h.expect(`(= [1 2] (list 1 2 3))`, "false")
}

func TestMacros(t *testing.T) {
	h := setup(t)

	h.expect("(defmacro! unless (fn* [c a b] `(if ~c ~b ~a)))", "#<macro>")
	h.expect(`(unless false 1 2)`, "1")
	h.expect(`(macroexpand (unless x y z))`, "(if x z y)")
	h.expect("(quasiquoteexpand (a ~b ~@c))", "(cons (quote a) (cons b (concat c ())))")
	h.expect("(let* [b 2 c [3 4]] `[1 ~b ~@c])", "[1 2 3 4]")
}

func TestMapPersistence(t *testing.T) {
	h := setup(t)

	h.expect(`(def! m {:a 1})`, "{:a 1}")
	h.expect(`(let* [n m] (get n :a))`, "1")
	h.expect(`m`, "{:a 1}")
}

func TestRecur(t *testing.T) {
	h := setup(t)

	h.expect(`(def! sum (fn* [n acc] (if (= n 0) acc (recur (- n 1) (+ acc n)))))`, "#<function>")
	h.expect(`(sum 1000 0)`, "500500")
}

func TestTailCalls(t *testing.T) {
	h := setup(t)

	h.expect(`(def! loop (fn* [n] (if (= n 0) :done (loop (- n 1)))))`, "#<function>")
	h.expect(`(loop 100000)`, ":done")
}

func TestTryCatch(t *testing.T) {
	h := setup(t)

	h.expect(`(try* (throw {:code 1}) (catch* e (get e :code)))`, "1")
	h.expect(`(try* 1 (catch* e 2))`, "1")
	h.expect(`(try* missing (catch* e e))`, `"'missing' not found"`)
	h.expect(`(try* (+ 1 1))`, "2")

	_, err := h.eval(`(throw [1 2])`)

	var x *exception.T
	if !errors.As(err, &x) {
		t.Fatalf("Expected an exception; got %v", err)
	}

	if got := literal.String(x.Value()); got != "[1 2]" {
		t.Fatalf("Expected thrown [1 2]; got %s", got)
	}
}

func TestCollectionKeepsLiveValues(t *testing.T) {
	h := setup(t)

	h.expect(`(def! keep (list 1 2 3))`, "(1 2 3)")
	h.expect(`(def! loop (fn* [n acc] (if (= n 0) acc (loop (- n 1) (list n)))))`, "#<function>")

	h.expect(`(loop 5000 nil)`, "(1)")

	gc.Collect(true)

	before := heap.Items()

	h.expect(`(loop 5000 nil)`, "(1)")

	gc.Collect(true)

	if after := heap.Items(); after > before+16 {
		t.Fatalf("Expected heap to return to about %d items; got %d", before, after)
	}

	h.expect(`keep`, "(1 2 3)")
}
