// Released under an MIT license. See LICENSE.

// Package file reads and writes text files in a named character encoding.
package file

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

//nolint:gochecknoglobals
var encodings = map[string]encoding.Encoding{
	"":            unicode.UTF8,
	"utf8":        unicode.UTF8,
	"latin1":      charmap.ISO8859_1,
	"iso88591":    charmap.ISO8859_1,
	"ascii":       charmap.Windows1252,
	"windows1252": charmap.Windows1252,
	"cp1252":      charmap.Windows1252,
	"cp437":       charmap.CodePage437,
	"koi8r":       charmap.KOI8R,
	"utf16":       unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf32":       utf32.UTF32(utf32.LittleEndian, utf32.UseBOM),
	"macintosh":   charmap.Macintosh,
	"iso885915":   charmap.ISO8859_15,
	"windows1251": charmap.Windows1251,
}

// Lookup returns the encoding called name. Case, hyphens and underscores
// are ignored so "UTF-8", "utf8" and "Latin1" are all accepted.
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(name))

	e, ok := encodings[key]
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}

	return e, nil
}

// Read returns the contents of the file at path decoded from enc.
func Read(path, enc string) (string, error) {
	e, err := Lookup(enc)
	if err != nil {
		return "", err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	b, err = e.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}

	return string(b), nil
}

// Write replaces the contents of the file at path with text encoded as enc.
func Write(path, enc, text string) error {
	e, err := Lookup(enc)
	if err != nil {
		return err
	}

	b, err := e.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	return os.WriteFile(path, b, 0o644) //nolint:gosec
}
