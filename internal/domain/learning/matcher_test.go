package learning

import "testing"

func TestParseRuleKey(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		wantMode    MatchMode
		wantPattern string
		wantOK      bool
	}{
		{"contains key", "contains:GLOVO", MatchModeContains, "GLOVO", true},
		{"starts_with key", "starts_with:PAGO EN", MatchModeStartsWith, "PAGO EN", true},
		{"exact key", "exact:NETFLIXCOM", MatchModeExact, "NETFLIXCOM", true},
		{"legacy fingerprint key", "GLOVO", "", "GLOVO", false},
		{"unknown mode treated as legacy", "regex:GLOVO", "", "regex:GLOVO", false},
		{"empty key", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, pattern, ok := ParseRuleKey(tt.key)
			if ok != tt.wantOK {
				t.Fatalf("ParseRuleKey(%q) ok = %v, want %v", tt.key, ok, tt.wantOK)
			}
			if mode != tt.wantMode || pattern != tt.wantPattern {
				t.Errorf("ParseRuleKey(%q) = (%q, %q), want (%q, %q)", tt.key, mode, pattern, tt.wantMode, tt.wantPattern)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name        string
		ruleKey     string
		description string
		learningKey string
		expected    bool
	}{
		{
			name:        "contains matches substring",
			ruleKey:     "contains:GLOVO",
			description: "PAGO EN GLOVO01JAN",
			learningKey: "GLOVO",
			expected:    true,
		},
		{
			name:        "contains misses",
			ruleKey:     "contains:UBER",
			description: "PAGO EN GLOVO01JAN",
			learningKey: "GLOVO",
			expected:    false,
		},
		{
			name:        "starts_with matches prefix",
			ruleKey:     "starts_with:PAGO EN",
			description: "PAGO EN GLOVO01JAN",
			learningKey: "GLOVO",
			expected:    true,
		},
		{
			name:        "starts_with does not match mid string",
			ruleKey:     "starts_with:GLOVO",
			description: "PAGO EN GLOVO01JAN",
			learningKey: "GLOVO",
			expected:    false,
		},
		{
			name:        "exact compares fingerprint not description",
			ruleKey:     "exact:GLOVO",
			description: "PAGO EN GLOVO01JAN",
			learningKey: "GLOVO",
			expected:    true,
		},
		{
			name:        "exact misses when only description contains pattern",
			ruleKey:     "exact:PAGO",
			description: "PAGO EN GLOVO01JAN",
			learningKey: "GLOVO",
			expected:    false,
		},
		{
			name:        "legacy matches on fingerprint equality",
			ruleKey:     "GLOVO",
			description: "SOMETHING ELSE ENTIRELY",
			learningKey: "GLOVO",
			expected:    true,
		},
		{
			name:        "legacy matches on description containment",
			ruleKey:     "HEIJN",
			description: "ALBERT HEIJN AMSTERDAM",
			learningKey: "ALBERT",
			expected:    true,
		},
		{
			name:        "legacy misses both conditions",
			ruleKey:     "MERCADONA",
			description: "ALBERT HEIJN AMSTERDAM",
			learningKey: "ALBERT",
			expected:    false,
		},
		{
			name:        "empty pattern never matches",
			ruleKey:     "contains:",
			description: "ALBERT HEIJN AMSTERDAM",
			learningKey: "ALBERT",
			expected:    false,
		},
		{
			name:        "empty legacy key never matches empty fingerprint",
			ruleKey:     "",
			description: "ALBERT HEIJN AMSTERDAM",
			learningKey: "",
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Matches(tt.ruleKey, tt.description, tt.learningKey)
			if got != tt.expected {
				t.Errorf("Matches(%q, %q, %q) = %v, want %v", tt.ruleKey, tt.description, tt.learningKey, got, tt.expected)
			}
		})
	}
}

func TestBuildPatternKey(t *testing.T) {
	got := BuildPatternKey(MatchModeContains, "  glovo  ")
	if got != "contains:GLOVO" {
		t.Errorf("BuildPatternKey = %q, want %q", got, "contains:GLOVO")
	}
}
