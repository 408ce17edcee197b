package feature

import (
	"github.com/watchlist-screener/internal/address"
	"github.com/watchlist-screener/internal/model"
)

// Address compares free-text addresses by canonical token overlap, best
// pair across the cross product of recorded addresses.
func Address() Extractor {
	return Extractor{
		Name:  FeatureAddress,
		Props: []string{"address"},
		Compare: func(query, candidate map[string][]string) model.FeatureScore {
			qAddrs := pooled(query)
			cAddrs := pooled(candidate)
			if len(qAddrs) == 0 || len(cAddrs) == 0 {
				return model.NotApplicable(FeatureAddress, "no address on one side")
			}
			best := 0.0
			for _, q := range qAddrs {
				for _, c := range cAddrs {
					if s := address.Overlap(q, c); s > best {
						best = s
					}
				}
			}
			return model.FeatureScore{Feature: FeatureAddress, Score: best, Applicable: true}
		},
	}
}
