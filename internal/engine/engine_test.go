// Released under an MIT license. See LICENSE.

package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/reader"
	"github.com/michaelmacinnis/mal/internal/system/config"
	"github.com/michaelmacinnis/mal/internal/system/heap"
)

func setup(t *testing.T, input string, argv ...string) (*T, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}

	e, err := New(config.Default(), strings.NewReader(input), out, argv...)
	if err != nil {
		t.Fatalf("Booting failed: %v", err)
	}

	t.Cleanup(e.Close)

	return e, out
}

func expect(t *testing.T, e *T, text, want string) {
	t.Helper()

	got, err := e.Rep(text)
	if err != nil {
		t.Fatalf("Evaluating %s failed: %v", text, err)
	}

	if got != want {
		t.Fatalf("Expected %s to evaluate to %s; got %s", text, want, got)
	}
}

func TestArgv(t *testing.T) {
	e, _ := setup(t, "", "a", "b")

	expect(t, e, `*ARGV*`, `("a" "b")`)
	expect(t, e, `*host-language*`, `"go"`)
}

func TestBootDefinitions(t *testing.T) {
	e, _ := setup(t, "")

	expect(t, e, `(not nil)`, "true")
	expect(t, e, `(not 0)`, "false")
	expect(t, e, `(defn twice [x] (* 2 x))`, "#<function>")
	expect(t, e, `(twice 21)`, "42")
	expect(t, e, `(def x 7)`, "7")
	expect(t, e, `(cond false 1 nil 2 :else 3)`, "3")
	expect(t, e, `(cond)`, "nil")
	expect(t, e, `(inc (dec 5))`, "5")
	expect(t, e, `(defmacro swap-args [f a b] (list f b a))`, "#<macro>")
	expect(t, e, `(swap-args - 1 10)`, "9")

	if _, err := e.Rep(`(cond true)`); err == nil || !strings.Contains(err.Error(), "odd number") {
		t.Fatalf("Expected an odd number of forms error; got %v", err)
	}
}

func TestClose(t *testing.T) {
	gc.Collect(true)

	before := heap.Items()

	e, err := New(nil, nil, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.Rep(`(def! f (fn* [] f)) (def! a (atom {:m [1 2 3]}))`); err != nil {
		t.Fatal(err)
	}

	e.Close()
	e.Close()

	if after := heap.Items(); after > before+16 {
		t.Fatalf("Expected about %d live items after close; got %d", before, after)
	}
}

func TestEvalBuiltin(t *testing.T) {
	e, _ := setup(t, "")

	expect(t, e, `(eval (list + 1 2))`, "3")
	expect(t, e, `(let* [x 1] (eval '(def! y 5))) y`, "5")
	expect(t, e, `(eval (read-string "(+ 2 3)"))`, "5")
}

func TestEvaluatePrints(t *testing.T) {
	e, out := setup(t, "")

	for _, s := range []string{`"hi"`, `(throw {:a 1})`, `(nth [1] 5)`, `[1 :a]`} {
		c, err := reader.Read(s)
		if err != nil {
			t.Fatal(err)
		}

		e.Evaluate(c)
	}

	want := "\"hi\"\nException: {:a 1}\nException: nth: index out of range: 5\n[1 :a]\n"
	if got := out.String(); got != want {
		t.Fatalf("Expected output %q; got %q", want, got)
	}
}

func TestLoad(t *testing.T) {
	e, out := setup(t, "")

	path := filepath.Join(t.TempDir(), "lib.mal")

	text := "(def! sq (fn* [x] (* x x)))\n(println \"loaded\")\n"
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := e.Load(path); err != nil {
		t.Fatalf("Loading %s failed: %v", path, err)
	}

	expect(t, e, `(sq 9)`, "81")

	expect(t, e, `(load-file "`+path+`")`, "nil")

	if got := out.String(); got != "loaded\nloaded\n" {
		t.Fatalf("Expected two lines of output; got %q", got)
	}

	if err := e.Load(filepath.Join(t.TempDir(), "missing.mal")); err == nil {
		t.Fatal("Expected an error loading a missing file")
	}
}

func TestReadline(t *testing.T) {
	e, out := setup(t, "first\nsecond")

	expect(t, e, `(readline "> ")`, `"first"`)
	expect(t, e, `(readline "> ")`, `"second"`)
	expect(t, e, `(readline "> ")`, "nil")

	if got := out.String(); got != "> > > " {
		t.Fatalf("Expected three prompts; got %q", got)
	}
}

func TestRepRecovers(t *testing.T) {
	e, _ := setup(t, "")

	if _, err := e.Rep(`(undefined-thing)`); err == nil {
		t.Fatal("Expected an error")
	}

	if _, err := e.Rep(`(+ 1`); err == nil {
		t.Fatal("Expected a syntax error")
	}

	expect(t, e, `(+ 1 1)`, "2")
}

func TestComplete(t *testing.T) {
	e, _ := setup(t, "")

	expect(t, e, `(def! reduce-all 1)`, "1")

	names := e.Complete("red")

	if len(names) != 1 || names[0] != "reduce-all" {
		t.Fatalf("Expected [reduce-all]; got %q", names)
	}

	found := false

	for _, n := range e.Complete("read") {
		if n == "read-string" {
			found = true
		}
	}

	if !found {
		t.Fatal("Expected read-string to be offered")
	}
}
