// Released under an MIT license. See LICENSE.

package options

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		argv        []string
		terminal    bool
		config      string
		expression  string
		interactive bool
		script      string
		args        []string
	}{
		{nil, true, "", "", true, "", nil},
		{nil, false, "", "", false, "", nil},
		{[]string{"-i"}, true, "", "", false, "", nil},
		{[]string{"-c", "my.toml", "run.mal", "a", "b"}, true, "my.toml", "", false, "run.mal", []string{"a", "b"}},
		{[]string{"-e", "(+ 1 2)"}, true, "", "(+ 1 2)", false, "", nil},
	}

	for _, tt := range tests {
		parse(tt.argv, tt.terminal)

		if Config() != tt.config || Expression() != tt.expression ||
			Interactive() != tt.interactive || Script() != tt.script {
			t.Fatalf("Unexpected options for %q: config=%q expression=%q interactive=%v script=%q",
				tt.argv, Config(), Expression(), Interactive(), Script())
		}

		if len(tt.args) > 0 && !reflect.DeepEqual(Args(), tt.args) {
			t.Fatalf("Expected arguments %q for %q; got %q", tt.args, tt.argv, Args())
		}

		if len(tt.args) == 0 && len(Args()) != 0 {
			t.Fatalf("Expected no arguments for %q; got %q", tt.argv, Args())
		}
	}
}
