package feature

import (
	"github.com/watchlist-screener/internal/model"
	"github.com/watchlist-screener/internal/normalize"
)

// identifierProps are the property domains treated as government-issued or
// registry-issued identifiers. A hit on any of them is near-conclusive
// evidence; a clean miss is strong negative evidence. Both overrides are
// applied by the weighting model, not here.
var identifierProps = []string{
	"idNumber",
	"passportNumber",
	"taxNumber",
	"registrationNumber",
	"imoNumber",
	"mmsi",
}

// Identifier builds the exact-match extractor over identifier values. The
// score is binary across the cross product of normalized values within each
// identifier type; a tax number equal to a passport number is a string
// coincidence, not an identity hit. No type populated on both sides yields
// not-applicable rather than 0.0 so unpopulated records are not penalized.
func Identifier() Extractor {
	return Extractor{
		Name:  FeatureIdentifier,
		Props: identifierProps,
		Compare: func(query, candidate map[string][]string) model.FeatureScore {
			shared := false
			for _, prop := range identifierProps {
				qIDs := normalizeIDs(query[prop])
				cIDs := normalizeIDs(candidate[prop])
				if len(qIDs) == 0 || len(cIDs) == 0 {
					continue
				}
				shared = true
				for id := range qIDs {
					if cIDs[id] {
						return model.FeatureScore{Feature: FeatureIdentifier, Score: 1.0, Applicable: true}
					}
				}
			}
			if !shared {
				return model.NotApplicable(FeatureIdentifier, "no identifier type populated on both sides")
			}
			return model.FeatureScore{Feature: FeatureIdentifier, Score: 0.0, Applicable: true}
		},
	}
}

func normalizeIDs(values []string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		if id := normalize.Identifier(v); id != "" {
			out[id] = true
		}
	}
	return out
}
