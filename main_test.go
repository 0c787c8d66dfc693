// Released under an MIT license. See LICENSE.

package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestInput(t *testing.T) {
	out := &bytes.Buffer{}

	input := `
(def! fib (fn* [n] (if (< n 2) n (+ (fib (- n 1)) (fib (- n 2))))))
(fib 15)
(prn {:answer (* 6 7)})
(undefined)
(let* [[a & more] [1 2 3]]
  more)
`

	if code := run(strings.NewReader(input), out); code != 0 {
		t.Fatalf("Expected exit status 0; got %d", code)
	}

	want := strings.Join([]string{
		"#<function>",
		"610",
		"{:answer 42}",
		"nil",
		"Exception: 'undefined' not found",
		"(2 3)",
		"",
	}, "\n")

	if got := out.String(); got != want {
		t.Fatalf("Expected output:\n%s\ngot:\n%s", want, got)
	}
}

func TestSyntaxError(t *testing.T) {
	out := &bytes.Buffer{}

	if code := run(strings.NewReader("(+ 1 2)\n(+ 1"), out); code != 1 {
		t.Fatalf("Expected exit status 1; got %d", code)
	}

	if got := out.String(); !strings.HasPrefix(got, "3\nstdin:") {
		t.Fatalf("Expected a result followed by a located error; got %q", got)
	}
}
