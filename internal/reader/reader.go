// Released under an MIT license. See LICENSE.

// Package reader turns complete mal source text into forms.
package reader

import (
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/struct/token"
	"github.com/michaelmacinnis/mal/internal/reader/lexer"
	"github.com/michaelmacinnis/mal/internal/reader/parser"
)

// Read returns the first form in text, or nil if text contains no forms.
// Text after the first form is not examined.
func Read(text string) (cell.I, error) {
	l := lexer.New("string")

	l.Scan(text)
	l.Close()

	var v cell.I

	err := parser.New(func(c cell.I) {
		v = c
	}, func() *token.T {
		if v != nil {
			return nil
		}

		return l.Token()
	}).Parse()

	return v, err
}

// ReadAll returns every form in text. Label names the source in errors.
func ReadAll(label, text string) ([]cell.I, error) {
	l := lexer.New(label)

	l.Scan(text)
	l.Close()

	var cs []cell.I

	err := parser.New(func(c cell.I) {
		cs = append(cs, c)
	}, l.Token).Parse()

	return cs, err
}
