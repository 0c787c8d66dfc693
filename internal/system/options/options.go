// Released under an MIT license. See LICENSE.

// Package options parses mal's command line.
package options

import (
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

// Version is printed by -v.
const Version = "mal 0.1.0"

//nolint:gochecknoglobals
var (
	args        []string
	config      string
	expression  string
	interactive bool
	script      string
	usage       = `mal

Usage:
  mal [-c CONFIG] [-i] [SCRIPT [ARGUMENTS...]]
  mal [-c CONFIG] -e EXPR
  mal -h
  mal -v

Arguments:
  ARGUMENTS  Bound, as strings, to *ARGV*.
  SCRIPT     Path to a mal script.

Options:
  -c, --config=CONFIG  Path to a mal.toml configuration file.
  -e, --eval=EXPR      Evaluate EXPR and print the result.
  -i, --interactive    Disable interactive mode.
  -h, --help           Display this help.
  -v, --version        Print mal version.

If mal's stdin is a TTY, and mal was invoked with no script or expression,
the interactive REPL is started. Otherwise, forms are read from stdin.
`
)

// Args returns the arguments that follow the script.
func Args() []string {
	return args
}

// Config returns the configuration path, if one was given.
func Config() string {
	return config
}

// Expression returns the expression passed with -e.
func Expression() string {
	return expression
}

// Interactive returns true if the line-editing REPL should run.
func Interactive() bool {
	return interactive
}

// Parse parses os.Args. Help and version requests exit.
func Parse() {
	parse(os.Args[1:], isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()))
}

// Script returns the path of the script to run, if one was given.
func Script() string {
	return script
}

func parse(argv []string, terminal bool) {
	if argv == nil {
		argv = []string{}
	}

	parser := &docopt.Parser{
		HelpHandler:  docopt.PrintHelpAndExit,
		OptionsFirst: true,
	}

	opts, err := parser.ParseArgs(usage, argv, Version)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	config, _ = opts.String("--config")
	expression, _ = opts.String("--eval")
	script, _ = opts.String("SCRIPT")

	args, _ = opts["ARGUMENTS"].([]string)

	interactive = terminal && script == "" && expression == ""

	invertInteractive, _ := opts.Bool("--interactive")
	if invertInteractive {
		interactive = false
	}
}
