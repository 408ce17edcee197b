//go:build !libpostal

package address

import "github.com/watchlist-screener/internal/normalize"

// expansions without libpostal: a single folded form, with abbreviation
// handling left to the Tokens table.
func expansions(s string) []string {
	return []string{normalize.Fold(s)}
}
