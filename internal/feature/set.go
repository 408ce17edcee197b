package feature

import (
	"strings"

	"github.com/watchlist-screener/internal/model"
	"github.com/watchlist-screener/internal/normalize"
)

// Country compares the country-like domains (country codes, company
// jurisdictions, vessel flags) as sets via Jaccard overlap.
func Country() Extractor {
	return setExtractor(FeatureCountry, []string{"country", "jurisdiction", "flag"})
}

// Nationality compares declared nationalities. Kept separate from Country:
// a Russian national living in Cyprus overlaps on nationality, not country.
func Nationality() Extractor {
	return setExtractor(FeatureNationality, []string{"nationality"})
}

// Program compares sanctions program tags. Two listings under the same
// program corroborate each other even when the listing sources differ.
func Program() Extractor {
	return setExtractor(FeatureProgram, []string{"program"})
}

func setExtractor(name string, props []string) Extractor {
	return Extractor{
		Name:  name,
		Props: props,
		Compare: func(query, candidate map[string][]string) model.FeatureScore {
			q := foldSet(pooled(query))
			c := foldSet(pooled(candidate))
			if len(q) == 0 || len(c) == 0 {
				return model.NotApplicable(name, "empty set on one side")
			}
			return model.FeatureScore{
				Feature:    name,
				Score:      normalize.TokenOverlap(q, c),
				Applicable: true,
			}
		},
	}
}

func foldSet(values []string) []string {
	var out []string
	for _, v := range values {
		if t := strings.ToLower(strings.TrimSpace(v)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
