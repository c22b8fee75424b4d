package learning

import (
	"regexp"
	"strings"
)

const (
	// MaxLearningKeyLength is the maximum length of an extracted fingerprint.
	MaxLearningKeyLength = 16

	// minCleanedLength is the threshold below which a noise-cleaned text is
	// considered destroyed and the prefix-stripped original is used instead.
	minCleanedLength = 3
)

// boilerplatePrefixes are stripped from the start of a normalized description
// before fingerprint extraction. Order matters: the first matching prefix wins,
// so "PAYMENT " shadows "PAYMENT TO " and "TRANSFER " shadows "TRANSFER TO ".
var boilerplatePrefixes = []string{
	"PAGO EN ",
	"PAGO ",
	"PAYMENT ",
	"PAYMENT TO ",
	"TRANSFER ",
	"TRANSFER TO ",
	"COMPRA EN ",
	"COMPRA ",
}

var (
	// 1-2 digits immediately followed by a month abbreviation, no word
	// boundary required ("GLOVO01JAN" contains a match).
	dayMonthPattern = regexp.MustCompile(`(?i)[0-9]{1,2}(?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)`)

	// Compact and separator-delimited dates. The separator forms cannot
	// survive normalization, but raw callers still get them cleaned.
	datePattern = regexp.MustCompile(`[0-9]{4}[-/][0-9]{2}[-/][0-9]{2}|[0-9]{2}[-/][0-9]{2}[-/][0-9]{4}|[0-9]{8}`)

	digitPattern = regexp.MustCompile(`[0-9]`)
)

// ExtractLearningKey derives a short merchant fingerprint from a normalized
// transaction description. The result is at most MaxLearningKeyLength
// characters and is empty only for empty input.
func ExtractLearningKey(normalized string) string {
	stripped := stripBoilerplatePrefix(normalized)

	working := removeNoise(stripped)
	if len(working) < minCleanedLength {
		// Noise removal destroyed the text (e.g. a bare reference code);
		// fall back to the prefix-stripped original.
		working = strings.TrimSpace(stripped)
	}

	words := strings.Fields(working)
	var key string
	switch {
	case len(words) == 0:
		return ""
	case len(words[0]) >= 3 || len(words) == 1:
		key = words[0]
	default:
		key = words[0] + " " + words[1]
	}

	if len(key) > MaxLearningKeyLength {
		key = strings.TrimRight(key[:MaxLearningKeyLength], " ")
	}
	return key
}

// stripBoilerplatePrefix removes the first matching bank boilerplate prefix.
// A single prefix is removed at most once per extraction.
func stripBoilerplatePrefix(text string) string {
	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(text, prefix) {
			return text[len(prefix):]
		}
	}
	return text
}

// removeNoise strips transaction-specific noise: embedded day-month markers,
// date stamps, stray digits, and the 1-2 letter reference-code fragments they
// leave behind.
func removeNoise(text string) string {
	cleaned := dayMonthPattern.ReplaceAllString(text, "")
	cleaned = datePattern.ReplaceAllString(cleaned, "")
	cleaned = digitPattern.ReplaceAllString(cleaned, "")

	words := strings.Fields(cleaned)
	kept := words[:0]
	for _, w := range words {
		if len(w) > 2 {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
