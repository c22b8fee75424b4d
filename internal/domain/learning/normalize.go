// Package learning implements the deterministic categorization engine:
// description normalization, merchant fingerprint extraction, and rule matching.
// All functions in this package are pure and safe for concurrent use.
package learning

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a raw bank-transaction description.
// The result contains only uppercase letters, digits and single spaces,
// with no leading or trailing whitespace. Normalize is total and idempotent.
func Normalize(raw string) string {
	upper := strings.ToUpper(raw)

	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	// Collapsing after stripping keeps the function idempotent: removing a
	// character between two spaces must not leave a double space behind.
	return strings.Join(strings.Fields(b.String()), " ")
}
