package slug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "acme", "acme"},
		{"uppercase", "ACME", "acme"},
		{"space", "Acme Corp", "acme_corp"},
		{"punctuation", "Acme Corp!", "acme_corp"},
		{"surrounding whitespace", "  Acme  ", "acme"},
		{"run of separators", "Acme -- Corp", "acme_corp"},
		{"leading separators", "!!Acme", "acme"},
		{"trailing separators", "Acme!!", "acme"},
		{"digits", "Acme 2000", "acme_2000"},
		{"only separators", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestMakeIsFixedPoint(t *testing.T) {
	inputs := []string{"Acme Corp!", "  Big Co  ", "a--b--c", "Plain"}
	for _, in := range inputs {
		out := Make(in)
		require.Equal(t, out, Make(out), "Make(%q) should be a fixed point", in)
	}
}

func TestMakeIsDeterministic(t *testing.T) {
	require.Equal(t, Make("Acme Corp!"), Make("Acme Corp!"))
}
