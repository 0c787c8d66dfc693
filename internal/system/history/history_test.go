// Released under an MIT license. See LICENSE.

package history

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestMissingFile(t *testing.T) {
	called := false

	err := Load(filepath.Join(t.TempDir(), "none"), func(io.Reader) (int, error) {
		called = true

		return 0, nil
	})
	if err != nil {
		t.Fatalf("Expected no error for a missing history file; got %v", err)
	}

	if called {
		t.Fatal("Expected read not to be called")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	err := Save(path, func(w io.Writer) (int, error) {
		return io.WriteString(w, "(+ 1 2)\n(def! x 1)\n")
	})
	if err != nil {
		t.Fatal(err)
	}

	var lines []string

	err = Load(path, func(r io.Reader) (int, error) {
		b, err := io.ReadAll(r)
		lines = strings.Split(strings.TrimSpace(string(b)), "\n")

		return len(lines), err
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(lines) != 2 || lines[1] != "(def! x 1)" {
		t.Fatalf("Unexpected history %q", lines)
	}
}
