package learning

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "empty string",
			raw:      "",
			expected: "",
		},
		{
			name:     "lowercase uppercased",
			raw:      "glovo madrid",
			expected: "GLOVO MADRID",
		},
		{
			name:     "whitespace runs collapsed",
			raw:      "PAGO   EN\t\tGLOVO",
			expected: "PAGO EN GLOVO",
		},
		{
			name:     "punctuation stripped without inserting spaces",
			raw:      "NETFLIX.COM",
			expected: "NETFLIXCOM",
		},
		{
			name:     "punctuation between spaces leaves single space",
			raw:      "ALBERT  .  HEIJN",
			expected: "ALBERT HEIJN",
		},
		{
			name:     "leading and trailing whitespace trimmed",
			raw:      "  COMPRA EN MERCADONA  ",
			expected: "COMPRA EN MERCADONA",
		},
		{
			name:     "digits preserved",
			raw:      "Glovo 01Jan bc6l1ktb",
			expected: "GLOVO 01JAN BC6L1KTB",
		},
		{
			name:     "only punctuation",
			raw:      "***---***",
			expected: "",
		},
		{
			name:     "accented characters removed",
			raw:      "CAFÉ MARTÍN",
			expected: "CAF MARTN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"PAGO EN GLOVO01JAN BC6L1KTB",
		"netflix.com",
		"  a  .  b  ",
		"ALBERT  HEIJN 1234",
		"\t\n mixed whitespace \v",
	}

	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}
