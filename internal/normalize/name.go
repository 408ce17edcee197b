package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper decomposes to NFD, drops combining marks and recomposes,
// turning "Gérard Müller" into "Gerard Muller".
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold produces the canonical comparison form of a name: lower-cased,
// accent-stripped, punctuation replaced by spaces, whitespace collapsed.
// Folding is lossy on purpose; it is only used for similarity comparison,
// never for display.
func Fold(s string) string {
	stripped, _, err := transform.String(accentStripper, s)
	if err != nil {
		// Transliteration failure degrades to the raw string rather than
		// dropping the value.
		stripped = s
	}
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens splits a name into folded word tokens.
func Tokens(s string) []string {
	folded := Fold(s)
	if folded == "" {
		return nil
	}
	return strings.Fields(folded)
}

// Identifier canonicalises registration numbers, passport numbers, tax IDs
// and similar codes: upper-case alphanumerics only. "ru-84 BA/99810" and
// "RU84BA99810" compare equal.
func Identifier(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// TokenOverlap computes the Jaccard ratio of two token sets.
func TokenOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	setA := make(map[string]bool, len(a))
	for _, t := range a {
		setA[t] = true
	}
	setB := make(map[string]bool, len(b))
	for _, t := range b {
		setB[t] = true
	}
	common := 0
	for t := range setA {
		if setB[t] {
			common++
		}
	}
	union := len(setA) + len(setB) - common
	if union == 0 {
		return 0.0
	}
	return float64(common) / float64(union)
}
