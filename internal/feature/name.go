package feature

import (
	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"

	"github.com/watchlist-screener/internal/model"
	"github.com/watchlist-screener/internal/normalize"
	"github.com/watchlist-screener/internal/phonetics"
)

// phoneticScore is the value assigned when two names agree phonetically but
// not textually. Phonetic-only evidence is weaker than near-exact string
// evidence, so it sits below 1.0.
const phoneticScore = 0.85

// Name builds the name similarity extractor. All aliases on both sides are
// compared pairwise and the best pair wins: aliases are alternative
// identities, so one strong hit is a match and weak aliases never dilute it.
func Name(ph *phonetics.Matcher) Extractor {
	return Extractor{
		Name:  FeatureName,
		Props: []string{"name", "alias"},
		Compare: func(query, candidate map[string][]string) model.FeatureScore {
			qNames := foldAll(pooled(query))
			cNames := foldAll(pooled(candidate))
			if len(qNames) == 0 || len(cNames) == 0 {
				return model.NotApplicable(FeatureName, "no name on one side")
			}
			best := 0.0
			for _, q := range qNames {
				for _, c := range cNames {
					s := stringSimilarity(q, c)
					if s < phoneticScore && ph != nil && ph.NameMatch(q, c) {
						s = phoneticScore
					}
					if s > best {
						best = s
					}
					if best >= 1.0 {
						return model.FeatureScore{Feature: FeatureName, Score: 1.0, Applicable: true}
					}
				}
			}
			return model.FeatureScore{Feature: FeatureName, Score: best, Applicable: true}
		},
	}
}

// stringSimilarity combines Jaro-Winkler with normalized Levenshtein on
// folded strings, taking whichever is more favourable. Jaro-Winkler rewards
// shared prefixes, which suits surname-first transliterations; Levenshtein
// handles insertions in long organization names better.
func stringSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	jw := matchr.JaroWinkler(a, b, false)
	lev := levenshteinSimilarity(a, b)
	if lev > jw {
		return lev
	}
	return jw
}

func levenshteinSimilarity(a, b string) float64 {
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

func foldAll(values []string) []string {
	var out []string
	for _, v := range values {
		if folded := normalize.Fold(v); folded != "" {
			out = append(out, folded)
		}
	}
	return out
}
