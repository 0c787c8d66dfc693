// Released under an MIT license. See LICENSE.

// Package ui provides a command-line interface for the mal language.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/tliron/commonlog"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/struct/token"
	"github.com/michaelmacinnis/mal/internal/reader/lexer"
	"github.com/michaelmacinnis/mal/internal/reader/parser"
	"github.com/michaelmacinnis/mal/internal/system/history"
)

// Prompt is displayed when the REPL is waiting for a new form.
const Prompt = "user> "

// Evaluator is the interface for things that want to process parsed forms.
type Evaluator interface {
	Evaluate(c cell.I)
}

// Completer is implemented by evaluators that can suggest names.
type Completer interface {
	Complete(prefix string) []string
}

// T holds the state of the line editor.
type T struct {
	cli     *liner.State
	history string
}

var log = commonlog.GetLogger("mal.ui") //nolint:gochecknoglobals

// New creates a line editor. History is loaded from, and saved to, the
// file at path if path is not empty.
func New(path string) *T {
	cli := liner.NewLiner()

	cli.SetCtrlCAborts(true)
	cli.SetMultiLineMode(true)

	if path != "" {
		if err := history.Load(path, cli.ReadHistory); err != nil {
			log.Warningf("cannot load history from %s: %v", path, err)
		}
	}

	return &T{cli: cli, history: path}
}

// Close saves the history and restores the terminal.
func (u *T) Close() {
	if u.history != "" {
		if err := history.Save(u.history, u.cli.WriteHistory); err != nil {
			log.Warningf("cannot save history to %s: %v", u.history, err)
		}
	}

	u.cli.Close()
}

// Readline prompts for a line of input. It returns io.EOF at the end of
// input. Lines that are not blank are added to the history.
func (u *T) Readline(prompt string) (string, error) {
	line, err := u.cli.Prompt(prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(line) != "" {
		u.cli.AppendHistory(line)
	}

	return line, nil
}

// Run reads forms and passes them to e until the end of input. After a
// lexical or syntax error, or Ctrl-C, any partial form is discarded.
func (u *T) Run(e Evaluator) {
	if c, ok := e.(Completer); ok {
		u.cli.SetWordCompleter(func(line string, pos int) (string, []string, string) {
			return complete(c, line, pos)
		})
	}

	for {
		restart := false

		l := lexer.New("user")

		err := parser.New(e.Evaluate, func() *token.T {
			for {
				if t := l.Token(); t != nil {
					return t
				}

				line, err := u.Readline(Prompt)
				if errors.Is(err, liner.ErrPromptAborted) {
					restart = true

					return nil
				} else if err != nil {
					l.Close()

					return l.Token()
				}

				l.Scan(line + "\n")
			}
		}).Parse()
		if err != nil && !restart {
			fmt.Fprintln(os.Stdout, err)

			continue
		}

		if !restart {
			return
		}
	}
}

// Batch reads forms from r and passes them to e. It is used when input
// is not a terminal.
func Batch(e Evaluator, r io.Reader) error {
	l := lexer.New("stdin")
	s := bufio.NewScanner(r)

	return parser.New(e.Evaluate, func() *token.T {
		for {
			if t := l.Token(); t != nil {
				return t
			}

			if !s.Scan() {
				l.Close()

				return l.Token()
			}

			l.Scan(s.Text() + "\n")
		}
	}).Parse()
}

func complete(c Completer, line string, pos int) (string, []string, string) {
	head, tail := line[:pos], line[pos:]

	start := strings.LastIndexAny(head, " \t\n()[]{}'`~@,^") + 1

	word := head[start:]
	if word == "" {
		return head, nil, tail
	}

	names := c.Complete(word)
	sort.Strings(names)

	return head[:start], names, tail
}
