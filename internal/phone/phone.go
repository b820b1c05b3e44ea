// Package phone normalizes raw phone number input into the canonical
// digit-only form used by every lookup platform.
package phone

import "strings"

const localNumberLength = 10

// Normalize strips every non-digit rune from raw and, when exactly ten
// digits remain, prefixes countryCode. Empty or non-numeric input yields
// the empty string, which callers treat as a client error.
func Normalize(raw, countryCode string) string {
	if raw == "" {
		return ""
	}

	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	result := digits.String()
	if len(result) == localNumberLength {
		return countryCode + result
	}
	return result
}
