package learning

import "strings"

// MatchMode identifies how a pattern rule compares against a transaction.
type MatchMode string

const (
	MatchModeContains   MatchMode = "contains"
	MatchModeStartsWith MatchMode = "starts_with"
	MatchModeExact      MatchMode = "exact"
)

// ruleKeySeparator splits the match mode from the pattern in a rule key.
// Legacy fingerprint keys never contain it: normalized text has no colons.
const ruleKeySeparator = ":"

// IsValidMatchMode reports whether mode is one of the supported match modes.
func IsValidMatchMode(mode MatchMode) bool {
	switch mode {
	case MatchModeContains, MatchModeStartsWith, MatchModeExact:
		return true
	}
	return false
}

// BuildPatternKey builds the storage key for an explicitly authored pattern
// rule. The pattern is stored uppercase; matching is case-insensitive by
// construction because descriptions and fingerprints are pre-uppercased.
func BuildPatternKey(mode MatchMode, pattern string) string {
	return string(mode) + ruleKeySeparator + strings.ToUpper(strings.TrimSpace(pattern))
}

// ParseRuleKey splits a stored rule key into its match mode and pattern.
// Keys without a separator, or with an unrecognized mode, are legacy
// fingerprint rules and report ok=false.
func ParseRuleKey(key string) (mode MatchMode, pattern string, ok bool) {
	idx := strings.Index(key, ruleKeySeparator)
	if idx < 0 {
		return "", key, false
	}
	mode = MatchMode(key[:idx])
	if !IsValidMatchMode(mode) {
		return "", key, false
	}
	return mode, key[idx+len(ruleKeySeparator):], true
}

// Matches evaluates one rule key against a transaction's normalized
// description and fingerprint.
//
// Pattern rules match per their mode: contains and starts_with run against
// the normalized description, exact runs against the fingerprint. Legacy
// fingerprint rules keep their historical dual condition: they match when the
// fingerprint equals the key exactly OR the normalized description contains
// the key as a substring. Both halves are load-bearing; legacy rules predate
// pattern-typed rules and must keep matching both populations.
func Matches(ruleKey, normalizedDescription, learningKey string) bool {
	mode, pattern, ok := ParseRuleKey(ruleKey)
	if !ok {
		if ruleKey == "" {
			return false
		}
		return learningKey == ruleKey || strings.Contains(normalizedDescription, ruleKey)
	}
	if pattern == "" {
		return false
	}

	switch mode {
	case MatchModeContains:
		return strings.Contains(normalizedDescription, pattern)
	case MatchModeStartsWith:
		return strings.HasPrefix(normalizedDescription, pattern)
	case MatchModeExact:
		return learningKey == pattern
	}
	return false
}
