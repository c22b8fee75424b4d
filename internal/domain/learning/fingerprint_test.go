package learning

import "testing"

func TestExtractLearningKey(t *testing.T) {
	tests := []struct {
		name       string
		normalized string
		expected   string
	}{
		{
			name:       "empty input",
			normalized: "",
			expected:   "",
		},
		{
			name:       "boilerplate prefix and embedded day-month marker",
			normalized: "PAGO EN GLOVO01JAN BC6L1KTB",
			expected:   "GLOVO",
		},
		{
			name:       "no noise keeps first word",
			normalized: "NETFLIXCOM",
			expected:   "NETFLIXCOM",
		},
		{
			name:       "multi word merchant takes first word",
			normalized: "COMPRA EN ALBERT HEIJN1234",
			expected:   "ALBERT",
		},
		{
			name:       "prefix list order makes PAYMENT shadow PAYMENT TO",
			normalized: "PAYMENT TO ACME",
			expected:   "ACME",
		},
		{
			name:       "transfer prefix stripped",
			normalized: "TRANSFER JOHN DOE",
			expected:   "JOHN",
		},
		{
			name:       "compact date removed",
			normalized: "ACME 20240101 REF",
			expected:   "ACME",
		},
		{
			name:       "separator date removed before digit pass",
			normalized: "ACME 2024-01-01 SHOP",
			expected:   "ACME",
		},
		{
			name:       "short reference tokens removed",
			normalized: "MERCADONA ES X1 T",
			expected:   "MERCADONA",
		},
		{
			name:       "noise removal destroying text falls back to prefix stripped",
			normalized: "AB 12",
			expected:   "AB 12",
		},
		{
			name:       "single short word kept on fallback",
			normalized: "A1",
			expected:   "A1",
		},
		{
			name:       "short first word survives only through fallback",
			normalized: "EL 99",
			expected:   "EL 99",
		},
		{
			name:       "result truncated to sixteen characters",
			normalized: "SUPERCALIFRAGILISTICEXPIALIDOCIOUS STORE",
			expected:   "SUPERCALIFRAGILI",
		},
		{
			name:       "prefix stripped once only",
			normalized: "PAGO PAGO HOLDINGS",
			expected:   "PAGO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractLearningKey(tt.normalized)
			if got != tt.expected {
				t.Errorf("ExtractLearningKey(%q) = %q, want %q", tt.normalized, got, tt.expected)
			}
		})
	}
}

func TestExtractLearningKeyLengthBounds(t *testing.T) {
	inputs := []string{
		"",
		"X",
		"PAGO EN GLOVO01JAN BC6L1KTB",
		"SUPERCALIFRAGILISTICEXPIALIDOCIOUS",
		"TRANSFER TO SOMEONE WITH A VERY LONG NAME INDEED",
		"1 2 3 4 5 6 7 8 9",
		Normalize("  compra en  café  martín 2024-01-01  "),
	}

	for _, in := range inputs {
		key := ExtractLearningKey(in)
		if len(key) > MaxLearningKeyLength {
			t.Errorf("ExtractLearningKey(%q) = %q exceeds %d characters", in, key, MaxLearningKeyLength)
		}
		if in != "" && key == "" {
			t.Errorf("ExtractLearningKey(%q) returned empty key for non-empty input", in)
		}
	}
}

func TestExtractLearningKeyEndToEnd(t *testing.T) {
	// Raw bank text through the full normalize + extract path.
	tests := []struct {
		raw      string
		expected string
	}{
		{"Pago en Glovo01Jan bc6l1ktb", "GLOVO"},
		{"NETFLIX.COM", "NETFLIXCOM"},
		{"COMPRA EN ALBERT HEIJN1234", "ALBERT"},
	}

	for _, tt := range tests {
		got := ExtractLearningKey(Normalize(tt.raw))
		if got != tt.expected {
			t.Errorf("ExtractLearningKey(Normalize(%q)) = %q, want %q", tt.raw, got, tt.expected)
		}
	}
}
