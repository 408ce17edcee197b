//go:build libpostal

package address

import (
	expand "github.com/openvenues/gopostal/expand"

	"github.com/watchlist-screener/internal/normalize"
)

// expansions uses libpostal to produce the canonical expansions of an
// address ("123 Main St" -> "123 main street"). Requires the libpostal C
// library at build time.
func expansions(s string) []string {
	expanded := expand.ExpandAddress(s)
	if len(expanded) == 0 {
		return []string{normalize.Fold(s)}
	}
	out := make([]string, 0, len(expanded))
	for _, e := range expanded {
		out = append(out, normalize.Fold(e))
	}
	return out
}
