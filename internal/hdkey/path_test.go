package hdkey

import (
	"errors"
	"testing"

	"github.com/Fantasim/hdkeygen/internal/config"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		input string
		want  Path
	}{
		{"m", Path{}},
		{"m/44'/0'/0'/0/0", BIP44(44, 0, 0, 0, 0)},
		{"m/84h/0H/0'/0/12", BIP44(84, 0, 0, 0, 12)},
		{"m/2147483647'", Path{Hardened(2147483647)}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePath(tt.input)
			if err != nil {
				t.Fatalf("ParsePath(%q) error = %v", tt.input, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParsePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParsePath(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParsePathInvalid(t *testing.T) {
	for _, input := range []string{"", "44'/0'", "m/", "m/abc", "m/-1", "m/2147483648", "m/4294967296'", "m/0''"} {
		if _, err := ParsePath(input); !errors.Is(err, config.ErrInvalidPath) {
			t.Errorf("ParsePath(%q) error = %v, want ErrInvalidPath", input, err)
		}
	}
}

func TestPathString(t *testing.T) {
	tests := []struct {
		path Path
		want string
	}{
		{Path{}, "m"},
		{BIP44(44, 195, 0, 0, 9), "m/44'/195'/0'/0/9"},
		{Path{Normal(1), Hardened(2)}, "m/1/2'"},
	}

	for _, tt := range tests {
		if got := tt.path.String(); got != tt.want {
			t.Errorf("Path.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestChildIndex(t *testing.T) {
	if got := Hardened(44).ChildIndex(); got != 0x8000002C {
		t.Errorf("Hardened(44).ChildIndex() = %#x, want 0x8000002c", got)
	}
	if got := Normal(5).ChildIndex(); got != 5 {
		t.Errorf("Normal(5).ChildIndex() = %d, want 5", got)
	}
}
