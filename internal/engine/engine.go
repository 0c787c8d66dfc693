// Released under an MIT license. See LICENSE.

// Package engine provides an evaluator for parsed mal code.
package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/type/boolean"
	"github.com/michaelmacinnis/mal/internal/common/type/env"
	"github.com/michaelmacinnis/mal/internal/common/type/function"
	"github.com/michaelmacinnis/mal/internal/common/type/list"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
	"github.com/michaelmacinnis/mal/internal/common/type/str"
	"github.com/michaelmacinnis/mal/internal/common/type/sym"
	"github.com/michaelmacinnis/mal/internal/common/validate"
	"github.com/michaelmacinnis/mal/internal/engine/boot"
	"github.com/michaelmacinnis/mal/internal/engine/core"
	"github.com/michaelmacinnis/mal/internal/engine/eval"
	"github.com/michaelmacinnis/mal/internal/printer"
	"github.com/michaelmacinnis/mal/internal/reader"
	"github.com/michaelmacinnis/mal/internal/system/config"
	"github.com/michaelmacinnis/mal/internal/system/file"
	"github.com/michaelmacinnis/mal/internal/system/heap"
)

// Language is bound to *host-language*.
const Language = "go"

// T (engine) is a facade in front of the machinery for evaluating mal code.
type T struct {
	cfg     *config.Config
	env     *env.T
	in      *bufio.Reader
	options *core.Options
	out     io.Writer
	unroot  func()
}

var log = commonlog.GetLogger("mal.engine") //nolint:gochecknoglobals

// New creates an engine with a fresh root environment. The values in argv
// are bound, as strings, to *ARGV*. Input for readline is taken from in.
func New(cfg *config.Config, in io.Reader, out io.Writer, argv ...string) (*T, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	heap.SetLimit(cfg.Heap.Limit)
	gc.SetThreshold(cfg.Heap.Threshold)

	e := &T{
		cfg: cfg,
		env: env.New(nil),
		out: out,
	}

	if in != nil {
		e.in = bufio.NewReader(in)
	}

	e.unroot = gc.Root(e.env)

	e.options = &core.Options{
		Encoding: cfg.IO.Encoding,
		Output:   out,
		Readline: e.readline,
	}

	core.Register(e.env, core.Builtins(e.options))

	e.env.Define("nil", null.Nil)
	e.env.Define("true", boolean.True)
	e.env.Define("false", boolean.False)
	e.env.Define("*host-language*", str.New(Language))
	e.env.Define("eval", function.Builtin("eval", e.eval))

	e.SetArgs(argv...)

	if _, err := e.Rep(boot.Script()); err != nil {
		e.Close()

		return nil, fmt.Errorf("boot: %w", err)
	}

	log.Infof("booted with %d values live, %d bytes in use", gc.Count(), heap.Bytes())

	return e, nil
}

// Close releases the root environment and everything reachable from it.
func (e *T) Close() {
	if e.env == nil {
		return
	}

	e.env.Flush()
	e.env.Release()
	e.env = nil

	e.unroot()

	freed := gc.Collect(true)

	log.Debugf("closed, %d values freed", freed)
}

// Complete returns the names bound in the root environment that start
// with prefix.
func (e *T) Complete(prefix string) []string {
	var names []string

	e.env.Each(func(k, _ cell.I) bool {
		if s := sym.To(k).Text(); strings.HasPrefix(s, prefix) {
			names = append(names, s)
		}

		return true
	})

	return names
}

// Evaluate evaluates c in the root environment and prints the result, or
// the exception raised, to the engine's output.
func (e *T) Evaluate(c cell.I) {
	v, err := e.Eval(c)
	if err != nil {
		log.Debugf("uncaught: %v", err)
		fmt.Fprintf(e.out, "Exception: %v\n", err)

		return
	}

	fmt.Fprintln(e.out, printer.Print(v, true))
}

// Eval evaluates c in the root environment.
func (e *T) Eval(c cell.I) (cell.I, error) {
	n := gc.Height()
	defer gc.Restore(n)

	return eval.Eval(gc.Pin(c), e.env)
}

// Load evaluates every form in the file at path.
func (e *T) Load(path string) error {
	text, err := file.Read(path, e.cfg.IO.Encoding)
	if err != nil {
		return err
	}

	cs, err := reader.ReadAll(path, text)
	if err != nil {
		return err
	}

	n := gc.Height()
	defer gc.Restore(n)

	for _, c := range cs {
		gc.Pin(c)
	}

	for _, c := range cs {
		if _, err := e.Eval(c); err != nil {
			return err
		}
	}

	return nil
}

// Rep reads every form in text, evaluates each in turn and returns the
// printed value of the last.
func (e *T) Rep(text string) (string, error) {
	cs, err := reader.ReadAll("string", text)
	if err != nil {
		return "", err
	}

	n := gc.Height()
	defer gc.Restore(n)

	for _, c := range cs {
		gc.Pin(c)
	}

	v := cell.I(null.Nil)

	for _, c := range cs {
		v, err = e.Eval(c)
		if err != nil {
			return "", err
		}

		gc.Pin(v)
	}

	return printer.Print(v, true), nil
}

// SetArgs binds *ARGV* to a list of the strings in argv.
func (e *T) SetArgs(argv ...string) {
	cs := make([]cell.I, len(argv))
	for i, a := range argv {
		cs[i] = str.New(a)
	}

	e.env.Define("*ARGV*", list.New(cs...))
}

// SetReadline replaces the function used by the readline builtin.
func (e *T) SetReadline(f func(prompt string) (string, error)) {
	e.options.Readline = f
}

func (e *T) eval(args []cell.I) (cell.I, error) {
	if err := validate.Args(args, 1, 1); err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}

	return eval.Eval(args[0], e.env)
}

func (e *T) readline(prompt string) (string, error) {
	if e.in == nil {
		return "", io.EOF
	}

	fmt.Fprint(e.out, prompt)

	line, err := e.in.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}

	return strings.TrimRight(line, "\r\n"), err
}
