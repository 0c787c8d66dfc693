// Released under an MIT license. See LICENSE.

// Package codec converts mal values to and from CBOR.
//
// Nil, booleans, integers, floats and strings use the native CBOR types.
// Lists are CBOR arrays. Other values are tagged:
//
//	40100 byte     unsigned integer
//	40101 symbol   text string
//	40102 keyword  text string (without the colon)
//	40103 vector   array
//	40104 map      array of alternating keys and values
//	40105 set      array
package codec

import (
	"errors"
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/sequence"
	"github.com/michaelmacinnis/mal/internal/common/type/boolean"
	"github.com/michaelmacinnis/mal/internal/common/type/float"
	"github.com/michaelmacinnis/mal/internal/common/type/hashmap"
	"github.com/michaelmacinnis/mal/internal/common/type/list"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
	"github.com/michaelmacinnis/mal/internal/common/type/num"
	"github.com/michaelmacinnis/mal/internal/common/type/octet"
	"github.com/michaelmacinnis/mal/internal/common/type/set"
	"github.com/michaelmacinnis/mal/internal/common/type/str"
	"github.com/michaelmacinnis/mal/internal/common/type/sym"
	"github.com/michaelmacinnis/mal/internal/common/type/vector"
)

// Tag numbers for mal values without a native CBOR representation.
const (
	TagByte uint64 = 40100 + iota
	TagSymbol
	TagKeyword
	TagVector
	TagMap
	TagSet
)

// ErrUnsupported is returned for values that cannot be encoded or decoded.
var ErrUnsupported = errors.New("unsupported value")

//nolint:gochecknoglobals
var (
	decMode cbor.DecMode
	encMode cbor.EncMode
)

func init() { //nolint:gochecknoinits
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: failed to create CBOR enc mode: %v", err))
	}

	encMode = em

	dm, err := cbor.DecOptions{
		IntDec: cbor.IntDecConvertNone,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("codec: failed to create CBOR dec mode: %v", err))
	}

	decMode = dm
}

// Encode returns the CBOR encoding of c.
func Encode(c cell.I) ([]byte, error) {
	v, err := marshal(c)
	if err != nil {
		return nil, err
	}

	return encMode.Marshal(v)
}

// Decode returns the value encoded in data.
func Decode(data []byte) (cell.I, error) {
	var v interface{}

	if err := decMode.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}

	return unmarshal(v)
}

func marshal(c cell.I) (interface{}, error) {
	switch {
	case null.Is(c):
		return nil, nil
	case boolean.Is(c):
		return boolean.To(c).Bool(), nil
	case num.Is(c):
		return int64(num.To(c).Int()), nil
	case float.Is(c):
		return float.To(c).Float(), nil
	case str.Is(c):
		return str.To(c).String(), nil
	case octet.Is(c):
		return cbor.Tag{Number: TagByte, Content: octet.To(c).Byte()}, nil
	case sym.IsKeyword(c):
		return cbor.Tag{Number: TagKeyword, Content: sym.To(c).Text()}, nil
	case sym.Is(c):
		return cbor.Tag{Number: TagSymbol, Content: sym.To(c).Text()}, nil
	case list.Is(c):
		return items(list.To(c))
	case vector.Is(c):
		return tagged(TagVector, vector.To(c))
	case set.Is(c):
		return tagged(TagSet, set.To(c))
	case hashmap.Is(c):
		var (
			kvs []interface{}
			err error
		)

		hashmap.To(c).Each(func(k, v cell.I) bool {
			var mk, mv interface{}

			if mk, err = marshal(k); err != nil {
				return false
			}

			if mv, err = marshal(v); err != nil {
				return false
			}

			kvs = append(kvs, mk, mv)

			return true
		})

		if err != nil {
			return nil, err
		}

		return cbor.Tag{Number: TagMap, Content: kvs}, nil
	}

	return nil, fmt.Errorf("%w: cannot encode %s", ErrUnsupported, c.Name())
}

func items(s sequence.I) ([]interface{}, error) {
	vs := make([]interface{}, 0, s.Count())

	var err error

	s.Each(func(c cell.I) bool {
		var v interface{}

		v, err = marshal(c)
		vs = append(vs, v)

		return err == nil
	})

	return vs, err
}

func tagged(n uint64, s sequence.I) (interface{}, error) {
	vs, err := items(s)
	if err != nil {
		return nil, err
	}

	return cbor.Tag{Number: n, Content: vs}, nil
}

func unmarshal(v interface{}) (cell.I, error) {
	switch v := v.(type) {
	case nil:
		return null.Nil, nil
	case bool:
		return boolean.Bool(v), nil
	case uint64:
		if v > math.MaxInt32 {
			return nil, fmt.Errorf("%w: integer %d out of range", ErrUnsupported, v)
		}

		return num.New(int32(v)), nil
	case int64:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, fmt.Errorf("%w: integer %d out of range", ErrUnsupported, v)
		}

		return num.New(int32(v)), nil
	case float64:
		return float.New(v), nil
	case string:
		return str.New(v), nil
	case []byte:
		cs := make([]cell.I, len(v))
		for i, b := range v {
			cs[i] = octet.New(b)
		}

		return vector.New(cs...), nil
	case []interface{}:
		cs, err := all(v)
		if err != nil {
			return nil, err
		}

		return list.New(cs...), nil
	case map[interface{}]interface{}:
		kvs := make([]cell.I, 0, len(v)*2)

		for k, e := range v {
			ck, err := unmarshal(k)
			if err != nil {
				return nil, err
			}

			ce, err := unmarshal(e)
			if err != nil {
				return nil, err
			}

			kvs = append(kvs, ck, ce)
		}

		return hashmap.New(kvs...), nil
	case cbor.Tag:
		return tag(v)
	}

	return nil, fmt.Errorf("%w: cannot decode %T", ErrUnsupported, v)
}

func all(vs []interface{}) ([]cell.I, error) {
	cs := make([]cell.I, len(vs))

	for i, v := range vs {
		c, err := unmarshal(v)
		if err != nil {
			return nil, err
		}

		cs[i] = c
	}

	return cs, nil
}

func tag(t cbor.Tag) (cell.I, error) {
	switch t.Number {
	case TagByte:
		if b, ok := t.Content.(uint64); ok && b <= math.MaxUint8 {
			return octet.New(byte(b)), nil
		}
	case TagSymbol, TagKeyword:
		if s, ok := t.Content.(string); ok {
			if t.Number == TagKeyword {
				return sym.Keyword(s), nil
			}

			return sym.New(s), nil
		}
	case TagVector, TagMap, TagSet:
		vs, ok := t.Content.([]interface{})
		if !ok {
			break
		}

		cs, err := all(vs)
		if err != nil {
			return nil, err
		}

		switch t.Number {
		case TagVector:
			return vector.New(cs...), nil
		case TagSet:
			return set.New(cs...), nil
		}

		if len(cs)%2 != 0 {
			return nil, fmt.Errorf("%w: map with odd number of items", ErrUnsupported)
		}

		return hashmap.New(cs...), nil
	default:
		return nil, fmt.Errorf("%w: tag %d", ErrUnsupported, t.Number)
	}

	return nil, fmt.Errorf("%w: malformed content for tag %d", ErrUnsupported, t.Number)
}
