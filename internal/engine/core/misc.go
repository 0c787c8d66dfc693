// Released under an MIT license. See LICENSE.

package core

import (
	"time"

	"github.com/michaelmacinnis/mal/internal/codec"
	"github.com/michaelmacinnis/mal/internal/common/gc"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/meta"
	"github.com/michaelmacinnis/mal/internal/common/type/exception"
	"github.com/michaelmacinnis/mal/internal/common/type/float"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
	"github.com/michaelmacinnis/mal/internal/common/type/num"
	"github.com/michaelmacinnis/mal/internal/common/type/octet"
	"github.com/michaelmacinnis/mal/internal/common/type/vector"
	"github.com/michaelmacinnis/mal/internal/common/validate"
)

var now = time.Now //nolint:gochecknoglobals

func miscellaneous() []Builtin {
	return []Builtin{
		{"meta", 1, 1, nil, func(args []cell.I) (cell.I, error) {
			if m, ok := args[0].(meta.I); ok {
				return m.Meta(), nil
			}

			return null.Nil, nil
		}},
		{"with-meta", 2, 2, []validate.Kind{metadata}, func(args []cell.I) (cell.I, error) {
			return args[0].(meta.I).WithMeta(args[1]), nil
		}},
		{"throw", 1, 1, nil, func(args []cell.I) (cell.I, error) {
			return nil, exception.New(args[0])
		}},
		{"gc", 0, 0, nil, func([]cell.I) (cell.I, error) {
			return num.New(int32(gc.Collect(true))), nil
		}},
		{"time-ms", 0, 0, nil, func([]cell.I) (cell.I, error) {
			return float.New(float64(now().UnixNano()) / float64(time.Millisecond)), nil
		}},
		{"cbor-encode", 1, 1, nil, func(args []cell.I) (cell.I, error) {
			b, err := codec.Encode(args[0])
			if err != nil {
				return nil, err
			}

			cs := make([]cell.I, len(b))
			for i, c := range b {
				cs[i] = octet.New(c)
			}

			return vector.New(cs...), nil
		}},
		{"cbor-decode", 1, 1, []validate.Kind{ordered}, func(args []cell.I) (cell.I, error) {
			b, err := bytes(args[0])
			if err != nil {
				return nil, err
			}

			return codec.Decode(b)
		}},
	}
}
