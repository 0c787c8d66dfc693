// Released under an MIT license. See LICENSE.

/*
Mal is a small Lisp. This implementation is written for hosts where memory
is tight: values are reference counted where ownership is simple and
collected by a mark and sweep pass where it is not.

	mal                 Start the REPL (when stdin is a terminal).
	mal script.mal a b  Load script.mal with *ARGV* bound to ("a" "b").
	mal -e '(+ 1 2)'    Print the value of an expression.

Runtime limits, logging and history are configured in mal.toml.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/kutil/util"

	"github.com/michaelmacinnis/mal/internal/engine"
	"github.com/michaelmacinnis/mal/internal/system/config"
	"github.com/michaelmacinnis/mal/internal/system/options"
	"github.com/michaelmacinnis/mal/internal/ui"
)

var log = commonlog.GetLogger("mal") //nolint:gochecknoglobals

func main() {
	options.Parse()

	util.Exit(run(os.Stdin, os.Stdout))
}

func run(stdin io.Reader, stdout io.Writer) int {
	cfg, err := config.Find(options.Config())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return 1
	}

	commonlog.Initialize(cfg.Log.Verbosity, cfg.Log.File)

	if cfg.Path != "" {
		log.Infof("using configuration %s", cfg.Path)
	}

	// Forms come from stdin unless a script or expression is given.
	in := stdin
	if options.Script() == "" && options.Expression() == "" {
		in = nil
	}

	e, err := engine.New(cfg, in, stdout, options.Args()...)
	if err != nil {
		log.Critical(err.Error())
		fmt.Fprintln(os.Stderr, err)

		return 1
	}
	defer e.Close()

	switch {
	case options.Expression() != "":
		s, err := e.Rep(options.Expression())
		if err != nil {
			fmt.Fprintf(stdout, "Exception: %v\n", err)

			return 1
		}

		fmt.Fprintln(stdout, s)

	case options.Script() != "":
		if err := e.Load(options.Script()); err != nil {
			fmt.Fprintf(stdout, "Exception: %v\n", err)

			return 1
		}

	case options.Interactive():
		u := ui.New(cfg.History.File)
		defer u.Close()

		e.SetReadline(u.Readline)

		if _, err := e.Rep(`(println (str "Mal [" *host-language* "]"))`); err != nil {
			log.Error(err.Error())
		}

		u.Run(e)

	default:
		if err := ui.Batch(e, stdin); err != nil {
			fmt.Fprintln(stdout, err)

			return 1
		}
	}

	return 0
}
