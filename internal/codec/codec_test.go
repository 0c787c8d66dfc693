// Released under an MIT license. See LICENSE.

package codec_test

import (
	"errors"
	"math"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/michaelmacinnis/mal/internal/codec"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/type/atom"
	"github.com/michaelmacinnis/mal/internal/common/type/boolean"
	"github.com/michaelmacinnis/mal/internal/common/type/float"
	"github.com/michaelmacinnis/mal/internal/common/type/hashmap"
	"github.com/michaelmacinnis/mal/internal/common/type/list"
	"github.com/michaelmacinnis/mal/internal/common/type/null"
	"github.com/michaelmacinnis/mal/internal/common/type/num"
	"github.com/michaelmacinnis/mal/internal/common/type/octet"
	"github.com/michaelmacinnis/mal/internal/common/type/str"
	"github.com/michaelmacinnis/mal/internal/common/type/sym"
	"github.com/michaelmacinnis/mal/internal/common/type/vector"
)

func TestRoundTrip(t *testing.T) {
	for _, c := range []cell.I{
		null.Nil,
		boolean.True,
		num.New(-7),
		num.New(math.MaxInt32),
		float.New(0.25),
		str.New("héllo"),
		octet.New(255),
		sym.New("x"),
		sym.Keyword("k"),
		list.New(num.New(1), list.New()),
		vector.New(str.New("a"), sym.Keyword("b")),
		hashmap.New(sym.Keyword("a"), vector.New(num.New(1))),
	} {
		b, err := codec.Encode(c)
		if err != nil {
			t.Fatalf("encode %s: %v", c.Name(), err)
		}

		d, err := codec.Decode(b)
		if err != nil {
			t.Fatalf("decode %s: %v", c.Name(), err)
		}

		if !c.Equal(d) || c.Name() != d.Name() {
			t.Fatalf("%s did not survive a round trip", c.Name())
		}
	}
}

func TestCanonical(t *testing.T) {
	a, err := codec.Encode(hashmap.New(num.New(1), num.New(2), num.New(3), num.New(4)))
	if err != nil {
		t.Fatal(err)
	}

	b, err := codec.Encode(hashmap.New(num.New(3), num.New(4), num.New(1), num.New(2)))
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != len(b) {
		t.Fatalf("equal maps encoded to %d and %d bytes", len(a), len(b))
	}
}

func TestDecodeNative(t *testing.T) {
	b, err := cbor.Marshal(map[string]int{"one": 1})
	if err != nil {
		t.Fatal(err)
	}

	c, err := codec.Decode(b)
	if err != nil {
		t.Fatal(err)
	}

	v, ok := hashmap.To(c).Get(str.New("one"))
	if !ok || !v.Equal(num.New(1)) {
		t.Fatal("native CBOR map did not decode to a map")
	}

	b, err = cbor.Marshal([]byte{1, 2})
	if err != nil {
		t.Fatal(err)
	}

	c, err = codec.Decode(b)
	if err != nil {
		t.Fatal(err)
	}

	if !c.Equal(vector.New(octet.New(1), octet.New(2))) {
		t.Fatal("byte string did not decode to a vector of bytes")
	}
}

func TestUnsupported(t *testing.T) {
	if _, err := codec.Encode(atom.New(num.New(1))); !errors.Is(err, codec.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported encoding an atom, got %v", err)
	}

	for name, v := range map[string]interface{}{
		"too large":   uint64(math.MaxInt32) + 1,
		"too small":   int64(math.MinInt32) - 1,
		"unknown tag": cbor.Tag{Number: 99999, Content: 1},
		"bad byte":    cbor.Tag{Number: codec.TagByte, Content: 256},
		"odd map":     cbor.Tag{Number: codec.TagMap, Content: []int{1}},
	} {
		b, err := cbor.Marshal(v)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}

		if _, err := codec.Decode(b); !errors.Is(err, codec.ErrUnsupported) {
			t.Fatalf("%s: expected ErrUnsupported, got %v", name, err)
		}
	}

	if _, err := codec.Decode([]byte{0xff}); err == nil {
		t.Fatal("expected an error decoding malformed input")
	}
}
