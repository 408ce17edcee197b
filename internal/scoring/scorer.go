package scoring

import (
	"github.com/watchlist-screener/internal/feature"
	"github.com/watchlist-screener/internal/model"
)

// Aggregate folds a feature breakdown into one score in [0,1].
//
// Order of evidence:
//  1. Schema incompatibility forces 0.0 outright.
//  2. Applicable features are averaged with renormalized weights, so a
//     field that is unpopulated on one side neither helps nor hurts.
//  3. An applicable identifier comparison overrides the soft evidence:
//     an exact hit lifts the score to at least IdentifierFloor, a miss
//     caps it MismatchMargin below the match threshold.
//
// No applicable evidence at all means no match: 0.0.
func Aggregate(cfg Config, features []model.FeatureScore) float64 {
	var sum, totalWeight float64
	idHit, idMiss := false, false

	for _, f := range features {
		if !f.Applicable {
			continue
		}
		if f.Feature == feature.FeatureSchema {
			if f.Score == 0 {
				return 0.0
			}
			// The gate passed; it is not evidence on its own.
			continue
		}
		if f.Feature == feature.FeatureIdentifier {
			if f.Score >= 1.0 {
				idHit = true
			} else if f.Score == 0 {
				idMiss = true
			}
		}
		w := cfg.weight(f.Feature)
		if w <= 0 {
			continue
		}
		sum += w * f.Score
		totalWeight += w
	}

	if totalWeight == 0 {
		return 0.0
	}
	score := sum / totalWeight

	if idHit && score < cfg.IdentifierFloor {
		score = cfg.IdentifierFloor
	}
	if idMiss {
		if ceiling := cfg.MatchThreshold - cfg.MismatchMargin; score > ceiling {
			score = ceiling
		}
	}

	return clamp01(score)
}

// Classify maps an aggregate score onto the three-way decision.
func Classify(cfg Config, score float64) model.Classification {
	switch {
	case score >= cfg.MatchThreshold:
		return model.Match
	case score >= cfg.PossibleThreshold:
		return model.Possible
	default:
		return model.NoMatch
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
