package util

import "testing"

func TestCapRunes(t *testing.T) {
	tests := []struct {
		s    string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"héllo", 2, "hé"},
		{"", 5, ""},
	}

	for _, tt := range tests {
		if got := CapRunes(tt.s, tt.max); got != tt.want {
			t.Errorf("CapRunes(%q, %d) = %q, want %q", tt.s, tt.max, got, tt.want)
		}
	}
}

func TestCollapseSpace(t *testing.T) {
	tests := []struct {
		s    string
		want string
	}{
		{"  a   b \n c\t", "a b c"},
		{"single", "single"},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := CollapseSpace(tt.s); got != tt.want {
			t.Errorf("CollapseSpace(%q) = %q, want %q", tt.s, got, tt.want)
		}
	}
}
