// Released under an MIT license. See LICENSE.

// Package exception provides the error type used to throw mal values.
package exception

import (
	"errors"
	"fmt"

	"github.com/michaelmacinnis/mal/internal/common"
	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
	"github.com/michaelmacinnis/mal/internal/common/interface/literal"
	"github.com/michaelmacinnis/mal/internal/common/type/str"
)

// T (exception) carries a thrown value up the call stack.
type T struct {
	value cell.I
}

type exception = T

// New creates an exception that throws v.
func New(v cell.I) *exception {
	return &exception{value: v}
}

// Errorf creates an exception that throws a formatted string.
func Errorf(format string, args ...interface{}) *exception {
	return New(str.New(fmt.Sprintf(format, args...)))
}

// Error returns the text of the thrown value. Strings are not quoted.
func (e *exception) Error() string {
	if str.Is(e.value) {
		return common.String(e.value)
	}

	return literal.String(e.value)
}

// Value returns the thrown value.
func (e *exception) Value() cell.I {
	return e.value
}

// Value returns the value carried by err. Errors that were not thrown by
// mal code become strings.
func Value(err error) cell.I {
	var e *exception
	if errors.As(err, &e) {
		return e.value
	}

	return str.New(err.Error())
}
