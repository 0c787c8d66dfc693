// Released under an MIT license. See LICENSE.

package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
	"github.com/michaelmacinnis/mal/internal/common/type/str"
	"github.com/michaelmacinnis/mal/internal/common/validate"
	"github.com/michaelmacinnis/mal/internal/printer"
	"github.com/michaelmacinnis/mal/internal/reader"
	"github.com/michaelmacinnis/mal/internal/system/file"
)

func textual(o *Options) []Builtin {
	return []Builtin{
		{"str", 0, -1, nil, func(args []cell.I) (cell.I, error) {
			return str.New(printer.Join(args, "", false)), nil
		}},
		{"pr-str", 0, -1, nil, func(args []cell.I) (cell.I, error) {
			return str.New(printer.Join(args, " ", true)), nil
		}},
		{"prn", 0, -1, nil, output(o.Output, true)},
		{"println", 0, -1, nil, output(o.Output, false)},
		{"read-string", 1, 1, []validate.Kind{text}, func(args []cell.I) (cell.I, error) {
			v, err := reader.Read(str.To(args[0]).String())
			if err != nil {
				return nil, err
			}

			if v == nil {
				return null.Nil, nil
			}

			return v, nil
		}},
		{"slurp", 1, 1, []validate.Kind{text}, func(args []cell.I) (cell.I, error) {
			s, err := file.Read(str.To(args[0]).String(), o.Encoding)
			if err != nil {
				return nil, err
			}

			return str.New(s), nil
		}},
		{"spit", 2, 2, []validate.Kind{text, text}, func(args []cell.I) (cell.I, error) {
			path, s := str.To(args[0]).String(), str.To(args[1]).String()

			return null.Nil, file.Write(path, o.Encoding, s)
		}},
		{"readline", 1, 1, []validate.Kind{text}, func(args []cell.I) (cell.I, error) {
			if o.Readline == nil {
				return null.Nil, nil
			}

			line, err := o.Readline(str.To(args[0]).String())
			if errors.Is(err, io.EOF) {
				return null.Nil, nil
			} else if err != nil {
				return nil, err
			}

			return str.New(line), nil
		}},
	}
}

func output(w io.Writer, readably bool) func([]cell.I) (cell.I, error) {
	return func(args []cell.I) (cell.I, error) {
		if _, err := fmt.Fprintln(w, printer.Join(args, " ", readably)); err != nil {
			return nil, err
		}

		return null.Nil, nil
	}
}
