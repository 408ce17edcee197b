// Package address canonicalises postal address strings for the address
// overlap feature. Addresses on watchlists are free-text and noisy; token
// overlap on expanded, folded forms is the comparable signal.
package address

import (
	"strings"

	"github.com/watchlist-screener/internal/normalize"
)

// abbreviations covers the street-term contractions that survive folding.
// The libpostal build handles far more; this table keeps the pure-Go build
// usable.
var abbreviations = map[string]string{
	"st":   "street",
	"rd":   "road",
	"ave":  "avenue",
	"av":   "avenue",
	"blvd": "boulevard",
	"ln":   "lane",
	"dr":   "drive",
	"sq":   "square",
	"bldg": "building",
	"apt":  "apartment",
	"ul":   "ulitsa",
	"pr":   "prospekt",
}

// Tokens returns the canonical comparison tokens for an address string.
func Tokens(s string) []string {
	var out []string
	for _, form := range expansions(s) {
		for _, tok := range strings.Fields(form) {
			if full, ok := abbreviations[tok]; ok {
				tok = full
			}
			out = append(out, tok)
		}
	}
	return out
}

// Overlap scores two address strings by Jaccard overlap of their canonical
// tokens.
func Overlap(a, b string) float64 {
	return normalize.TokenOverlap(Tokens(a), Tokens(b))
}
