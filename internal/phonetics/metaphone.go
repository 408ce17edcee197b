// Package phonetics wraps Double Metaphone encoding for name comparison.
// Phonetic equality is a secondary signal behind string similarity: it
// catches transliteration variants ("Yusupov" / "Jussupow") that edit
// distance misses.
package phonetics

import (
	"github.com/antzucaro/matchr"

	"github.com/watchlist-screener/internal/normalize"
)

// Matcher compares tokens by Double Metaphone code. It is stateless and
// safe for concurrent use.
type Matcher struct{}

// New returns a phonetic matcher.
func New() *Matcher {
	return &Matcher{}
}

// Encode returns the primary and alternate metaphone codes for a token.
func (m *Matcher) Encode(token string) (primary, alternate string) {
	return matchr.DoubleMetaphone(token)
}

// TokenMatch reports whether two tokens share any metaphone code, primary
// or alternate on either side.
func (m *Matcher) TokenMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	p1, s1 := matchr.DoubleMetaphone(a)
	p2, s2 := matchr.DoubleMetaphone(b)
	if p1 == "" || p2 == "" {
		return false
	}
	if p1 == p2 {
		return true
	}
	if s1 != "" && (s1 == p2 || s1 == s2) {
		return true
	}
	return s2 != "" && s2 == p1
}

// NameMatch reports whether two full names agree phonetically: every token
// of the shorter name must find a phonetic partner in the other. Token
// order does not matter, so "Putin Vladimir" matches "Vladimir Putin".
func (m *Matcher) NameMatch(a, b string) bool {
	ta := normalize.Tokens(a)
	tb := normalize.Tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return false
	}
	if len(tb) < len(ta) {
		ta, tb = tb, ta
	}
	for _, t1 := range ta {
		found := false
		for _, t2 := range tb {
			if m.TokenMatch(t1, t2) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
