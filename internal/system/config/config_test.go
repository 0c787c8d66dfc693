// Released under an MIT license. See LICENSE.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	c := Default()

	if c.IO.Encoding != "utf-8" {
		t.Fatalf("Expected default encoding utf-8; got %q", c.IO.Encoding)
	}

	if c.Heap.Limit != 0 || c.Heap.Threshold != 0 {
		t.Fatalf("Expected zero heap settings; got %+v", c.Heap)
	}
}

func TestFindExplicitMissing(t *testing.T) {
	if _, err := Find(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("Expected an error for an explicit path that does not exist")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), Name)

	text := `
[heap]
limit = 1048576
threshold = 128

[log]
verbosity = 2

[io]
encoding = "latin1"
`

	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Loading %s failed: %v", path, err)
	}

	if c.Path != path {
		t.Fatalf("Expected path %s; got %s", path, c.Path)
	}

	if c.Heap.Limit != 1048576 || c.Heap.Threshold != 128 {
		t.Fatalf("Unexpected heap settings %+v", c.Heap)
	}

	if c.Log.Verbosity != 2 {
		t.Fatalf("Expected verbosity 2; got %d", c.Log.Verbosity)
	}

	if c.IO.Encoding != "latin1" {
		t.Fatalf("Expected encoding latin1; got %q", c.IO.Encoding)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		text string
		msg  string
	}{
		{"[heap]\nlimit = \"lots\"", "limit"},
		{"[heap]\nsize = 1", "unknown key heap.size"},
		{"[heap", ""},
	}

	for _, tt := range tests {
		_, err := Parse(tt.text)
		if err == nil {
			t.Fatalf("Expected %q to fail", tt.text)
		}

		if !strings.Contains(err.Error(), tt.msg) {
			t.Fatalf("Expected error containing %q for %q; got %v", tt.msg, tt.text, err)
		}
	}
}
