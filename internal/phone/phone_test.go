package phone

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"ten digits get prefix", "9876543210", "919876543210"},
		{"already prefixed unchanged", "919876543210", "919876543210"},
		{"formatting stripped", "+91 98765-43210", "919876543210"},
		{"local with separators", "(987) 654-3210", "919876543210"},
		{"empty input", "", ""},
		{"non-numeric input", "not a number", ""},
		{"short number kept as-is", "12345", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw, "91"); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeCountryCode(t *testing.T) {
	if got := Normalize("2025550123", "1"); got != "12025550123" {
		t.Errorf("Normalize with country code 1 = %q, want %q", got, "12025550123")
	}
}
