// Released under an MIT license. See LICENSE.

package file

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"", "UTF-8", "utf_16le", "Latin1", "windows-1252"} {
		if _, err := Lookup(name); err != nil {
			t.Fatalf("Expected encoding %q to be known: %v", name, err)
		}
	}

	if _, err := Lookup("ebcdic"); err == nil {
		t.Fatal("Expected an error for an unknown encoding")
	}
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		enc  string
		text string
		size int
	}{
		{"utf-8", "café", 5},
		{"latin1", "café", 4},
		{"utf-16le", "hi", 4},
	}

	for _, tt := range tests {
		path := filepath.Join(dir, tt.enc+".txt")

		if err := Write(path, tt.enc, tt.text); err != nil {
			t.Fatalf("Writing %s failed: %v", tt.enc, err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}

		if int(info.Size()) != tt.size {
			t.Fatalf("Expected %d bytes in %s; got %d", tt.size, tt.enc, info.Size())
		}

		got, err := Read(path, tt.enc)
		if err != nil {
			t.Fatalf("Reading %s failed: %v", tt.enc, err)
		}

		if got != tt.text {
			t.Fatalf("Expected %q from %s; got %q", tt.text, tt.enc, got)
		}
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "missing"), ""); err == nil {
		t.Fatal("Expected an error reading a missing file")
	}
}
