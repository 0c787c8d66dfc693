// Released under an MIT license. See LICENSE.

// Package validate checks the arguments passed to builtins.
package validate

import (
	"fmt"

	"github.com/michaelmacinnis/mal/internal/common/interface/cell"
)

// Kind names a positional type requirement.
type Kind struct {
	Name string
	Is   func(cell.I) bool
}

// Any accepts every value.
var Any = Kind{Name: "value", Is: func(cell.I) bool { return true }} //nolint:gochecknoglobals

// Args checks that there are between min and max arguments (max < 0 means
// no upper bound) and that each leading argument satisfies the matching kind.
// Nothing is allocated unless validation fails.
func Args(args []cell.I, min, max int, kinds ...Kind) error {
	n := len(args)

	if n < min || (max >= 0 && n > max) {
		return fmt.Errorf("expected %s, passed %d", expected(min, max), n)
	}

	for i, k := range kinds {
		if i >= n {
			break
		}

		if !k.Is(args[i]) {
			return fmt.Errorf("argument %d: expected %s, passed %s",
				i+1, k.Name, args[i].Name())
		}
	}

	return nil
}

// All checks that every argument satisfies k.
func All(args []cell.I, k Kind) error {
	for i, a := range args {
		if !k.Is(a) {
			return fmt.Errorf("argument %d: expected %s, passed %s",
				i+1, k.Name, a.Name())
		}
	}

	return nil
}

// Count returns a phrase like "1 argument" or "3 arguments".
func Count(n int, label string, p string) string {
	if n == 1 {
		p = ""
	}

	return fmt.Sprintf("%d %s%s", n, label, p)
}

func expected(min, max int) string {
	switch {
	case max < 0:
		return "at least " + Count(min, "argument", "s")
	case min == max:
		return Count(min, "argument", "s")
	}

	return fmt.Sprintf("%d to %d arguments", min, max)
}
